package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// WaitOptions bound receipt polling.
type WaitOptions struct {
	PollInterval time.Duration
	Timeout      time.Duration
}

// DefaultWaitOptions polls every 2s for up to 3 minutes.
func DefaultWaitOptions() WaitOptions {
	return WaitOptions{PollInterval: 2 * time.Second, Timeout: 3 * time.Minute}
}

// EVMSubmitter signs legacy transactions with the account's key and polls for receipts.
type EVMSubmitter struct {
	account Account
	wait    WaitOptions
	logger  *zap.Logger
}

// NewEVMSubmitter creates a submitter for account.
func NewEVMSubmitter(account Account, wait WaitOptions, logger *zap.Logger) *EVMSubmitter {
	if wait.PollInterval <= 0 || wait.Timeout <= 0 {
		wait = DefaultWaitOptions()
	}
	return &EVMSubmitter{
		account: account,
		wait:    wait,
		logger:  logger.Named("submitter"),
	}
}

// Submit builds, signs and broadcasts call.
func (s *EVMSubmitter) Submit(ctx context.Context, call Call) (Pending, error) {
	backend, err := s.account.Backend()
	if err != nil {
		return nil, err
	}

	data, err := call.data()
	if err != nil {
		return nil, err
	}

	from := s.account.Address()
	to := call.target()
	value := call.value()

	nonce, err := backend.PendingNonceAt(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	gas, err := backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}
	gas = gas * 12 / 10

	tx := types.NewTransaction(nonce, to, value, gas, gasPrice, data)
	signed, err := s.account.SignTx(tx, s.account.ChainIDBig())
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	s.logger.Info("Transaction sent",
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.String("to", to.Hex()),
		zap.String("method", call.Method),
		zap.String("value", value.String()),
		zap.Uint64("nonce", nonce))

	return &pendingTx{
		hash:     signed.Hash(),
		backend:  backend,
		contract: call.Contract,
		wait:     s.wait,
		logger:   s.logger,
	}, nil
}

// CallView runs a read-only call and unpacks its outputs.
func (s *EVMSubmitter) CallView(ctx context.Context, call Call) ([]interface{}, error) {
	if call.Contract == nil {
		return nil, fmt.Errorf("view call %s needs a contract", call.Method)
	}
	backend, err := s.account.Backend()
	if err != nil {
		return nil, err
	}

	data, err := call.data()
	if err != nil {
		return nil, err
	}

	to := call.Contract.Address
	out, err := backend.CallContract(ctx, ethereum.CallMsg{
		From: s.account.Address(),
		To:   &to,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", call.Method, err)
	}

	values, err := call.Contract.ABI.Unpack(call.Method, out)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", call.Method, err)
	}
	return values, nil
}

type pendingTx struct {
	hash     common.Hash
	backend  Backend
	contract *Contract
	wait     WaitOptions
	logger   *zap.Logger
}

func (p *pendingTx) Hash() common.Hash {
	return p.hash
}

// Wait polls for the receipt until it is mined or the wait timeout elapses.
func (p *pendingTx) Wait(ctx context.Context) (*Receipt, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = p.wait.PollInterval
	policy.MaxInterval = p.wait.PollInterval * 4

	op := func() (*types.Receipt, error) {
		receipt, err := p.backend.TransactionReceipt(ctx, p.hash)
		if errors.Is(err, ethereum.NotFound) {
			return nil, err
		}
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("failed to fetch receipt: %w", err))
		}
		return receipt, nil
	}

	receipt, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(policy),
		backoff.WithMaxElapsedTime(p.wait.Timeout))
	if err != nil {
		return nil, fmt.Errorf("waiting for %s: %w", p.hash.Hex(), err)
	}

	out := &Receipt{
		TxHash:      receipt.TxHash,
		Status:      receipt.Status,
		BlockNumber: receipt.BlockNumber,
		GasUsed:     receipt.GasUsed,
	}
	if p.contract != nil {
		out.Events = p.contract.DecodeLogs(receipt.Logs)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		p.logger.Warn("Transaction reverted", zap.String("tx_hash", p.hash.Hex()))
		return out, ErrReverted
	}

	p.logger.Info("Transaction confirmed",
		zap.String("tx_hash", p.hash.Hex()),
		zap.Uint64("gas_used", receipt.GasUsed))
	return out, nil
}
