package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-chat-vault/internal/config"
	"github.com/MKhiriev/go-chat-vault/internal/handler"
	"github.com/MKhiriev/go-chat-vault/internal/logger"
	"github.com/MKhiriev/go-chat-vault/internal/metrics"
	"github.com/MKhiriev/go-chat-vault/internal/server"
	"github.com/MKhiriev/go-chat-vault/internal/service"
	"github.com/MKhiriev/go-chat-vault/internal/store"
	"github.com/MKhiriev/go-chat-vault/models"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const defaultAppVersion = "dev"

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("go-chat-vault-server", "info").
			Fatal().Err(err).Msg("error getting configs")
	}
	if buildInfo.IsRelease() && cfg.App.Version == defaultAppVersion {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log := logger.NewLogger("go-chat-vault-server", cfg.App.LogLevel)
	if err = run(context.Background(), cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) error {
	m := metrics.New(prometheus.DefaultRegisterer)

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		return fmt.Errorf("error creating storages: %w", err)
	}
	defer func() {
		if closeErr := storages.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, *cfg, m, log)
	if err != nil {
		return fmt.Errorf("error creating services: %w", err)
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, m, log)
	if err != nil {
		return fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	log.Info().
		Str("address", cfg.Server.HTTPAddress).
		Str("environment", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting go-chat-vault server")

	return srv.RunServer(ctx)
}
