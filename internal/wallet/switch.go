package wallet

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// SwitchNetwork moves the wallet to network. A wallet that does not know
// the chain yet gets it added first; any other failure is returned as is.
func SwitchNetwork(ctx context.Context, a Adapter, network Network, logger *zap.Logger) error {
	err := a.SwitchChain(ctx, network.ChainID)
	if err == nil {
		logger.Info("Network switched", zap.String("network", network.Name))
		return nil
	}
	if !errors.Is(err, ErrChainUnrecognized) {
		return fmt.Errorf("failed to switch to %s: %w", network.Name, err)
	}

	logger.Info("Chain unknown to wallet, adding it",
		zap.String("network", network.Name),
		zap.String("chain_id", network.ChainID))

	if err := a.AddChain(ctx, network); err != nil {
		return fmt.Errorf("failed to add %s: %w", network.Name, err)
	}
	if err := a.SwitchChain(ctx, network.ChainID); err != nil {
		return fmt.Errorf("failed to switch to %s: %w", network.Name, err)
	}
	logger.Info("Network switched", zap.String("network", network.Name))
	return nil
}
