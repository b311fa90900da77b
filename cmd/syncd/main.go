package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/easemail/mailsync/internal/config"
	"github.com/easemail/mailsync/internal/provider"
	"github.com/easemail/mailsync/internal/store"
	"github.com/easemail/mailsync/internal/sync"
	"github.com/easemail/mailsync/pkg/types"
)

var (
	version     = "dev"
	showVersion = flag.Bool("version", false, "Show version information")
	runOnce     = flag.Bool("once", false, "Run a single sync pass and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("easemail-syncd version %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.Info("Starting EaseMail sync engine")

	// Open the mirror database
	st, err := store.New(cfg.DatabasePath, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open mirror database")
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Register accounts and build their provider clients
	clients := make(map[string]provider.Client, len(cfg.Accounts))
	accountIDs := make(map[string]string, len(cfg.Accounts))
	for i := range cfg.Accounts {
		accCfg := &cfg.Accounts[i]

		id, err := st.UpsertAccount(ctx, &types.EmailAccount{
			UserID:   accCfg.UserID,
			Name:     accCfg.Name,
			Provider: accCfg.Provider,
		})
		if err != nil {
			logger.WithError(err).WithField("account", accCfg.Name).Fatal("Failed to register account")
		}

		client, err := provider.New(accCfg, logger)
		if err != nil {
			logger.WithError(err).WithField("account", accCfg.Name).Fatal("Failed to create provider client")
		}

		accountIDs[accCfg.Name] = id
		clients[id] = client
	}

	orchestrator := sync.NewOrchestrator(st, cfg, logger)
	synchronizer := sync.NewSynchronizer(st, logger)

	// Backfill accounts that have never completed one
	for name, id := range accountIDs {
		acc, err := st.GetAccount(ctx, id)
		if err != nil {
			logger.WithError(err).WithField("account", name).Error("Failed to load account")
			continue
		}
		if acc.LastBackfillAt != nil {
			continue
		}

		logger.WithField("account", name).Info("Running initial backfill")
		result := orchestrator.Run(ctx, id, clients[id])
		for _, msg := range result.Folders.Errors {
			logger.WithField("account", name).WithField("stage", "folders").Warn(msg)
		}
		for _, msg := range result.Messages.Errors {
			logger.WithField("account", name).WithField("stage", "messages").Warn(msg)
		}
		for _, msg := range result.Calendars.Errors {
			logger.WithField("account", name).WithField("stage", "calendars").Warn(msg)
		}
	}

	if *runOnce {
		logger.Info("Single pass complete")
		return
	}

	// Periodic folder re-sync
	interval := time.Duration(cfg.SyncIntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.WithField("interval", interval).Info("Entering periodic sync loop")
	for {
		select {
		case <-ticker.C:
			for name, id := range accountIDs {
				result := synchronizer.Sync(ctx, id, clients[id])
				for _, msg := range result.Errors {
					logger.WithField("account", name).Warn(msg)
				}
			}
		case sig := <-sigChan:
			logger.WithField("signal", sig).Info("Received shutdown signal")
			cancel()
			logger.Info("Shutting down EaseMail sync engine")
			return
		}
	}
}
