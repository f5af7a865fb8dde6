package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/launchpad/internal/chain"
	"github.com/rovshanmuradov/launchpad/internal/config"
	"github.com/rovshanmuradov/launchpad/internal/discovery"
	"github.com/rovshanmuradov/launchpad/internal/docstore"
	"github.com/rovshanmuradov/launchpad/internal/events"
	"github.com/rovshanmuradov/launchpad/internal/export"
	"github.com/rovshanmuradov/launchpad/internal/logger"
	"github.com/rovshanmuradov/launchpad/internal/metrics"
	"github.com/rovshanmuradov/launchpad/internal/presale"
	"github.com/rovshanmuradov/launchpad/internal/purchase"
	"github.com/rovshanmuradov/launchpad/internal/token"
	"github.com/rovshanmuradov/launchpad/internal/transfer"
	"github.com/rovshanmuradov/launchpad/internal/ui"
	"github.com/rovshanmuradov/launchpad/internal/wallet"
)

const (
	eventBufferSize  = 256
	bridgeBufferSize = 64
	commandTimeout   = 5 * time.Minute
)

func main() {
	configPath := flag.String("config", "", "Path to config file (yaml, json or toml)")
	envPath := flag.String("env", ".env", "Path to .env file")
	flag.Parse()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := config.LoadEnvFile(*envPath); err != nil {
		log.Fatalf("Failed to load env file: %v", err)
	}
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.PrivateKey == "" {
		log.Fatalf("No wallet key configured, set %s_PRIVATE_KEY", config.EnvPrefix)
	}

	logBuffer, err := logger.NewLogBuffer(cfg.LogBufferSize, cfg.LogSpillFile, zap.NewNop())
	if err != nil {
		log.Fatalf("Failed to create log buffer: %v", err)
	}
	defer func() {
		_ = logBuffer.Close()
	}()

	appLogger, err := logger.CreateTUILoggerWithBuffer(cfg.DebugLogging, logBuffer)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	if err := run(rootCtx, cfg, logBuffer, appLogger); err != nil {
		appLogger.Error("Launchpad exited with error", zap.Error(err))
		log.Fatalf("%v", err)
	}
	appLogger.Info("Launchpad stopped")
}

func run(ctx context.Context, cfg *config.Config, logBuffer *logger.LogBuffer, appLogger *zap.Logger) error {
	appLogger.Info("Starting launchpad",
		zap.String("network", cfg.DefaultNetwork),
		zap.String("store", cfg.Store.Backend))

	store, closeStore, err := docstore.Open(ctx, cfg.StoreOptions(), appLogger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			appLogger.Warn("Failed to close store", zap.Error(err))
		}
	}()

	bus := events.NewBus(appLogger, eventBufferSize)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := bus.Shutdown(shutdownCtx); err != nil {
			appLogger.Warn("Event bus shutdown incomplete", zap.Error(err))
		}
	}()

	keyWallet, err := wallet.NewKeyWallet(cfg.PrivateKey, cfg.ActiveNetwork(), wallet.DialEthClient, bus, appLogger)
	if err != nil {
		return err
	}
	defer keyWallet.Close()

	submitter := chain.NewEVMSubmitter(keyWallet, chain.WaitOptions{
		PollInterval: cfg.Tx.PollInterval,
		Timeout:      cfg.Tx.WaitTimeout,
	}, appLogger)

	factory, err := chain.NewContract(common.HexToAddress(cfg.Contracts.TokenFactory), chain.TokenFactoryABI)
	if err != nil {
		return err
	}
	batch, err := chain.NewContract(common.HexToAddress(cfg.Contracts.BatchTransfer), chain.BatchTransferABI)
	if err != nil {
		return err
	}

	loc := cfg.Location()
	tokens := token.NewService(store, keyWallet, submitter, factory, bus, appLogger)
	sales := discovery.NewService(store, loc, appLogger)

	bridge := ui.NewBridge(bus, bridgeBufferSize, appLogger)
	defer bridge.Close()

	svc := &ui.Services{
		Ctx:            ctx,
		Logger:         appLogger,
		Wallet:         keyWallet,
		Networks:       cfg.WalletNetworks(),
		Presale:        presale.NewService(store, tokens, bus, loc, appLogger),
		Discovery:      sales,
		Purchase:       purchase.NewService(sales, store, submitter, bus, appLogger),
		Tokens:         tokens,
		Transfer:       transfer.NewService(submitter, batch, bus, appLogger),
		Exporter:       export.NewHistoryExporter(cfg.ExportDir, appLogger),
		Logs:           logBuffer,
		Bridge:         bridge,
		CommandTimeout: commandTimeout,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			return metrics.Serve(gctx, cfg.MetricsAddr, appLogger)
		})
	}

	g.Go(func() error {
		// the UI owns the process lifetime; stop everything else once it exits
		defer cancel()
		recovery := ui.NewRecoveryHandler(appLogger, func() (tea.Model, []tea.ProgramOption) {
			model := ui.NewSafeUIWrapper(NewAppModel(svc), appLogger)
			return model, []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(gctx)}
		})
		return recovery.RunWithRecovery(gctx)
	})

	return g.Wait()
}
