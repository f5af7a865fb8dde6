package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/launchpad/internal/config"
	"github.com/rovshanmuradov/launchpad/internal/discovery"
	"github.com/rovshanmuradov/launchpad/internal/docstore"
	"github.com/rovshanmuradov/launchpad/internal/logger"
	"github.com/rovshanmuradov/launchpad/internal/metrics"
)

type options struct {
	wallet      string
	all         bool
	metricsAddr string
	csvPath     string
}

func main() {
	configPath := flag.String("config", "", "Path to config file (yaml, json or toml)")
	envPath := flag.String("env", ".env", "Path to .env file")
	var opts options
	flag.StringVar(&opts.wallet, "wallet", "", "Wallet to check eligibility for; empty shows public sales only")
	flag.BoolVar(&opts.all, "all", false, "Include upcoming and ended sales")
	flag.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve /metrics on this address and keep running")
	flag.StringVar(&opts.csvPath, "csv", "", "Append listings to this csv file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := config.LoadEnvFile(*envPath); err != nil {
		log.Fatalf("Failed to load env file: %v", err)
	}
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if opts.metricsAddr == "" {
		opts.metricsAddr = cfg.MetricsAddr
	}

	appLogger, err := logger.CreatePrettyLogger(cfg.DebugLogging)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	if err := run(ctx, cfg, opts, appLogger); err != nil {
		appLogger.Error("Scan failed", zap.Error(err))
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options, appLogger *zap.Logger) error {
	store, closeStore, err := docstore.Open(ctx, cfg.StoreOptions(), appLogger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			appLogger.Warn("Failed to close store", zap.Error(err))
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	if opts.metricsAddr != "" {
		g.Go(func() error {
			return metrics.Serve(gctx, opts.metricsAddr, appLogger)
		})
	}

	g.Go(func() error {
		sales := discovery.NewService(store, cfg.Location(), appLogger)
		if err := scan(gctx, sales, opts, appLogger); err != nil {
			return err
		}
		if opts.metricsAddr != "" {
			appLogger.Info("Scan finished, serving metrics until interrupted")
		}
		return nil
	})

	return g.Wait()
}

func scan(ctx context.Context, sales *discovery.Service, opts options, appLogger *zap.Logger) error {
	var (
		listings []discovery.Listing
		err      error
	)
	if opts.all {
		listings, err = sales.All(ctx, opts.wallet)
	} else {
		listings, err = sales.Active(ctx, opts.wallet)
	}
	if err != nil {
		return err
	}

	var out *logger.SafeCSVWriter
	if opts.csvPath != "" {
		out, err = logger.NewSafeCSVWriter(opts.csvPath, csvHeader, time.Second, appLogger)
		if err != nil {
			return fmt.Errorf("failed to open csv: %w", err)
		}
		defer func() {
			if err := out.Close(); err != nil {
				appLogger.Warn("Failed to close csv", zap.Error(err))
			}
		}()
	}

	for _, l := range listings {
		appLogger.Info("Sale listed", listingFields(l)...)
		if out != nil {
			if err := out.WriteRecord(listingRecord(l)); err != nil {
				return err
			}
		}
	}

	appLogger.Info("Scan complete", zap.Int("listings", len(listings)), zap.Bool("all", opts.all))
	return nil
}
