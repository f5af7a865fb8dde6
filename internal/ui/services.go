package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/launchpad/internal/discovery"
	"github.com/rovshanmuradov/launchpad/internal/export"
	"github.com/rovshanmuradov/launchpad/internal/logger"
	"github.com/rovshanmuradov/launchpad/internal/presale"
	"github.com/rovshanmuradov/launchpad/internal/purchase"
	"github.com/rovshanmuradov/launchpad/internal/token"
	"github.com/rovshanmuradov/launchpad/internal/transfer"
	"github.com/rovshanmuradov/launchpad/internal/wallet"
)

// Wallet is what the screens need from the connected wallet.
type Wallet interface {
	wallet.Adapter
	Disconnect(ctx context.Context)
	ActiveNetwork() wallet.Network
}

// Services gives screens access to the application services.
type Services struct {
	Ctx       context.Context
	Logger    *zap.Logger
	Wallet    Wallet
	Networks  []wallet.Network
	Presale   *presale.Service
	Discovery *discovery.Service
	Purchase  *purchase.Service
	Tokens    *token.Service
	Transfer  *transfer.Service
	Exporter  *export.HistoryExporter
	Logs      *logger.LogBuffer
	Bridge    *Bridge

	// CommandTimeout bounds each background command started by a screen.
	CommandTimeout time.Duration
}

// Context returns a context for one background command.
func (s *Services) Context() (context.Context, context.CancelFunc) {
	ctx := s.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if s.CommandTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.CommandTimeout)
}

// Account returns the connected account or "".
func (s *Services) Account() string {
	ctx, cancel := s.Context()
	defer cancel()
	account, err := wallet.CurrentAccount(ctx, s.Wallet)
	if err != nil {
		return ""
	}
	return account
}

// Listen re-arms the bridge listener, or returns nil without a bridge.
func (s *Services) Listen() tea.Cmd {
	if s.Bridge == nil {
		return nil
	}
	return s.Bridge.Listen()
}
