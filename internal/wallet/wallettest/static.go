// Package wallettest provides a fixed wallet.Adapter for tests.
package wallettest

import (
	"context"

	"github.com/rovshanmuradov/launchpad/internal/wallet"
)

// Static is an Adapter with a fixed account and chain.
type Static struct {
	Account string
	Chain   string
}

var _ wallet.Adapter = (*Static)(nil)

func (s *Static) Accounts(context.Context) ([]string, error) {
	if s.Account == "" {
		return []string{}, nil
	}
	return []string{s.Account}, nil
}

func (s *Static) RequestAccounts(ctx context.Context) ([]string, error) {
	return s.Accounts(ctx)
}

func (s *Static) ChainID(context.Context) (string, error) {
	return s.Chain, nil
}

func (s *Static) SwitchChain(_ context.Context, chainID string) error {
	s.Chain = chainID
	return nil
}

func (s *Static) AddChain(context.Context, wallet.Network) error {
	return nil
}

func (s *Static) OnAccountsChanged(func([]string)) func() {
	return func() {}
}

func (s *Static) OnChainChanged(func(string)) func() {
	return func() {}
}
