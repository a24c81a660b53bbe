// Phototeka - Mock Photo-Sharing REST API with Tiered Access Control
// Copyright 2026 Phototeka contributors
// SPDX-License-Identifier: MIT
// https://github.com/phototeka/phototeka

// Command server runs the Phototeka mock API.
//
// Startup order: configuration, logging, dataset and accounts, the
// authorization engine, the router, then the supervised HTTP server.
// SIGINT/SIGTERM trigger a graceful drain bounded by the configured
// shutdown timeout.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/phototeka/phototeka/internal/access"
	"github.com/phototeka/phototeka/internal/api"
	"github.com/phototeka/phototeka/internal/auth"
	"github.com/phototeka/phototeka/internal/config"
	"github.com/phototeka/phototeka/internal/logging"
	"github.com/phototeka/phototeka/internal/store"
	"github.com/phototeka/phototeka/internal/supervisor"
	"github.com/phototeka/phototeka/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logging.Info().
		Str("addr", cfg.Addr()).
		Str("db", cfg.Data.DBPath).
		Msg("Starting Phototeka")

	db, err := store.Open(cfg.Data.DBPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load database")
	}

	accounts, err := auth.LoadAccounts(cfg.Data.AccountsPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load accounts")
	}

	authn := auth.NewBasic(accounts, cfg.Security.Realm)
	engine := access.NewEngine(authn, db)
	router := api.NewRouter(cfg, engine, api.NewHandler(db))

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Server stopped gracefully")
}
