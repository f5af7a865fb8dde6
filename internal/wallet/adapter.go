package wallet

import (
	"context"
	"errors"
	"fmt"
)

// EIP-1193 provider error codes.
const (
	CodeUserRejected      = 4001
	CodeChainUnrecognized = 4902
)

var (
	ErrChainUnrecognized  = errors.New("chain has not been added to the wallet")
	ErrUserRejected       = errors.New("user rejected the request")
	ErrWalletNotConnected = errors.New("wallet not connected")
)

// RPCError is a provider error carrying an EIP-1193 code.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("wallet rpc error %d: %s", e.Code, e.Message)
}

// Is maps provider codes onto the package sentinels.
func (e *RPCError) Is(target error) bool {
	switch e.Code {
	case CodeChainUnrecognized:
		return target == ErrChainUnrecognized
	case CodeUserRejected:
		return target == ErrUserRejected
	}
	return false
}

// Adapter is the wallet capability the launchpad flows consume.
type Adapter interface {
	// Accounts returns the exposed accounts, empty when disconnected.
	Accounts(ctx context.Context) ([]string, error)
	// RequestAccounts asks the wallet to connect.
	RequestAccounts(ctx context.Context) ([]string, error)
	// ChainID returns the active chain as a 0x-prefixed hex string.
	ChainID(ctx context.Context) (string, error)
	SwitchChain(ctx context.Context, chainID string) error
	AddChain(ctx context.Context, network Network) error
	OnAccountsChanged(fn func(accounts []string)) (unsubscribe func())
	OnChainChanged(fn func(chainID string)) (unsubscribe func())
}

// CurrentAccount returns the first exposed account or "" when disconnected.
func CurrentAccount(ctx context.Context, a Adapter) (string, error) {
	accounts, err := a.Accounts(ctx)
	if err != nil {
		return "", err
	}
	if len(accounts) == 0 {
		return "", nil
	}
	return accounts[0], nil
}

// RequireAccount is CurrentAccount that fails when nothing is connected.
func RequireAccount(ctx context.Context, a Adapter) (string, error) {
	account, err := CurrentAccount(ctx, a)
	if err != nil {
		return "", err
	}
	if account == "" {
		return "", ErrWalletNotConnected
	}
	return account, nil
}
