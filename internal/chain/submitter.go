// Package chain submits EVM transactions and decodes their receipts.
package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var (
	// ErrReverted is returned by Wait when the transaction was mined with status 0.
	ErrReverted = errors.New("transaction reverted")
	// ErrNoAccount is returned when no wallet account is connected.
	ErrNoAccount = errors.New("wallet not connected")
)

// Backend is the slice of an RPC client the submitter needs.
// *ethclient.Client satisfies it.
type Backend interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Account is a connected signer on its active chain.
type Account interface {
	Address() common.Address
	ChainIDBig() *big.Int
	Backend() (Backend, error)
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// Call describes one contract call or, with a nil Contract, a plain value transfer to To.
type Call struct {
	Contract *Contract
	To       common.Address
	Method   string
	Args     []interface{}
	Value    *big.Int
}

func (c Call) target() common.Address {
	if c.Contract != nil {
		return c.Contract.Address
	}
	return c.To
}

func (c Call) data() ([]byte, error) {
	if c.Contract == nil {
		if c.Method != "" {
			return nil, fmt.Errorf("method %s given without a contract", c.Method)
		}
		return nil, nil
	}
	data, err := c.Contract.ABI.Pack(c.Method, c.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", c.Method, err)
	}
	return data, nil
}

func (c Call) value() *big.Int {
	if c.Value == nil {
		return big.NewInt(0)
	}
	return c.Value
}

// Receipt is a mined transaction with its logs decoded against the called contract.
type Receipt struct {
	TxHash      common.Hash
	Status      uint64
	BlockNumber *big.Int
	GasUsed     uint64
	Events      []DecodedEvent
}

// Event returns the first decoded event with the given name.
func (r *Receipt) Event(name string) (DecodedEvent, bool) {
	for _, ev := range r.Events {
		if ev.Name == name {
			return ev, true
		}
	}
	return DecodedEvent{}, false
}

// Pending is a broadcast transaction.
type Pending interface {
	Hash() common.Hash
	Wait(ctx context.Context) (*Receipt, error)
}

// Submitter sends transactions from the connected account.
type Submitter interface {
	Submit(ctx context.Context, call Call) (Pending, error)
	CallView(ctx context.Context, call Call) ([]interface{}, error)
}
