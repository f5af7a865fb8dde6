package transfer

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/launchpad/internal/chain"
	"github.com/rovshanmuradov/launchpad/internal/events"
	"github.com/rovshanmuradov/launchpad/internal/metrics"
)

var ErrInvalidToken = errors.New("invalid token address")

// TokenDetails is what the transfer screen needs to know about a token.
type TokenDetails struct {
	Token     common.Address
	Owner     common.Address
	Decimals  uint8
	Allowance *big.Int
}

// Service sends one token to many recipients through the batch contract.
type Service struct {
	submitter chain.Submitter
	batch     *chain.Contract
	bus       *events.Bus
	logger    *zap.Logger
}

// NewService creates a transfer service for the given batch-transfer contract.
func NewService(submitter chain.Submitter, batch *chain.Contract, bus *events.Bus, logger *zap.Logger) *Service {
	return &Service{
		submitter: submitter,
		batch:     batch,
		bus:       bus,
		logger:    logger.Named("transfer"),
	}
}

func erc20(token common.Address) (*chain.Contract, error) {
	return chain.NewContract(token, chain.ERC20ABI)
}

// Inspect reads the token's decimals and owner's allowance for the batch contract.
func (s *Service) Inspect(ctx context.Context, token, owner string) (TokenDetails, error) {
	if !common.IsHexAddress(token) {
		return TokenDetails{}, fmt.Errorf("%w: %q", ErrInvalidToken, token)
	}
	details := TokenDetails{
		Token: common.HexToAddress(token),
		Owner: common.HexToAddress(owner),
	}
	contract, err := erc20(details.Token)
	if err != nil {
		return TokenDetails{}, err
	}

	out, err := s.submitter.CallView(ctx, chain.Call{Contract: contract, Method: "decimals"})
	if err != nil {
		return TokenDetails{}, fmt.Errorf("failed to read decimals: %w", err)
	}
	dec, ok := out[0].(uint8)
	if !ok {
		return TokenDetails{}, fmt.Errorf("unexpected decimals type %T", out[0])
	}
	details.Decimals = dec

	allowance, err := s.allowance(ctx, contract, details.Owner)
	if err != nil {
		return TokenDetails{}, err
	}
	details.Allowance = allowance
	return details, nil
}

func (s *Service) allowance(ctx context.Context, token *chain.Contract, owner common.Address) (*big.Int, error) {
	out, err := s.submitter.CallView(ctx, chain.Call{
		Contract: token,
		Method:   "allowance",
		Args:     []interface{}{owner, s.batch.Address},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read allowance: %w", err)
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected allowance type %T", out[0])
	}
	return v, nil
}

// NeedsApproval reports whether the allowance is below the batch total.
func (s *Service) NeedsApproval(details TokenDetails, b *Batch) bool {
	if details.Allowance == nil {
		return true
	}
	return details.Allowance.Cmp(b.Total(details.Decimals)) < 0
}

// Approve lets the batch contract spend amount and returns the refreshed details.
func (s *Service) Approve(ctx context.Context, details TokenDetails, amount *big.Int) (TokenDetails, error) {
	contract, err := erc20(details.Token)
	if err != nil {
		return details, err
	}

	err = metrics.MeasureTransaction(metrics.KindApprove, func() error {
		pending, err := s.submitter.Submit(ctx, chain.Call{
			Contract: contract,
			Method:   "approve",
			Args:     []interface{}{s.batch.Address, amount},
		})
		if err != nil {
			return err
		}
		_, err = pending.Wait(ctx)
		return err
	})
	if err != nil {
		return details, fmt.Errorf("approval failed: %w", err)
	}

	allowance, err := s.allowance(ctx, contract, details.Owner)
	if err != nil {
		return details, err
	}
	details.Allowance = allowance

	s.logger.Info("Approval confirmed",
		zap.String("token", details.Token.Hex()),
		zap.String("allowance", allowance.String()))
	return details, nil
}

// Execute sends the batch and returns the transaction hash.
func (s *Service) Execute(ctx context.Context, details TokenDetails, b *Batch) (common.Hash, error) {
	addresses, amounts, err := b.Validate(details.Decimals)
	if err != nil {
		return common.Hash{}, err
	}

	var receipt *chain.Receipt
	err = metrics.MeasureTransaction(metrics.KindBatchTransfer, func() error {
		pending, err := s.submitter.Submit(ctx, chain.Call{
			Contract: s.batch,
			Method:   "batchTransfer",
			Args:     []interface{}{details.Token, addresses, amounts},
		})
		if err != nil {
			return err
		}
		receipt, err = pending.Wait(ctx)
		return err
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("transfer failed: %w", err)
	}

	s.logger.Info("Batch transfer confirmed",
		zap.String("token", details.Token.Hex()),
		zap.Int("recipients", len(addresses)),
		zap.String("tx_hash", receipt.TxHash.Hex()))

	if s.bus != nil {
		ev := events.TransferCompletedEvent{
			BaseEvent:  events.Stamp(events.TransferCompleted),
			Token:      details.Token.Hex(),
			Recipients: len(addresses),
			TxHash:     receipt.TxHash.Hex(),
		}
		if err := s.bus.Publish(ev); err != nil {
			s.logger.Warn("Failed to publish transfer event", zap.Error(err))
		}
	}
	return receipt.TxHash, nil
}
