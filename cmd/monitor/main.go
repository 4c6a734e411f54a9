package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"krxmon/config"
	"krxmon/internal/krx/console"
	"krxmon/internal/krx/fetcher"
	"krxmon/internal/krx/memorystore"
	"krxmon/internal/krx/recorder"
	"krxmon/logger"
	"krxmon/pkg/krx"
	"krxmon/pkg/storage/postgres"

	"go.uber.org/zap"
)

func main() {
	// viper config; validation failure is the only fatal error path
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// zap logger
	zlog, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if krx.IsMarketOpen(time.Now()) {
		zlog.Info("market is open, collecting live data")
	} else {
		zlog.Info("market is closed, showing last session closes")
	}

	// Shared quote store: one fetcher writes, consumers read copies.
	names := make([]string, len(cfg.Monitor.Instruments))
	for i, inst := range cfg.Monitor.Instruments {
		names[i] = inst.Name
	}
	store := memorystore.NewQuoteStore(names, cfg.Monitor.HistorySize)

	provider := krx.NewRESTClient(cfg.KRX.REST.BaseURL, cfg.KRX.REST.ServiceKey, cfg.KRX.REST.Timeout)

	f := fetcher.New(fetcher.Config{
		Interval:   cfg.Monitor.Interval,
		MaxRetries: cfg.Monitor.MaxRetries,
		RetryDelay: cfg.Monitor.RetryDelay,
	}, provider, store, cfg.Monitor.Instruments, zlog)
	f.Start(ctx)

	// Console presentation mode reads on its own cadence.
	console.New(store, cfg.Monitor.Instruments, cfg.Monitor.Interval, os.Stdout).Start(ctx)

	// Optional archival consumer.
	if cfg.Recorder.Enabled {
		pgClient, err := postgres.InitializeAndMigrateQuoteRecord(cfg.Postgres, cfg.Log.Environment, true)
		if err != nil {
			zlog.Fatal("failed to initialize quote archive", zap.Error(err))
		}
		recorder.New(store, cfg.Monitor.Instruments, cfg.Recorder.Interval, pgClient, zlog).Start(ctx)
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := f.Stop(stopCtx); err != nil {
		zlog.Warn("fetcher did not stop cleanly", zap.Error(err))
	}
}
