package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-chat-vault/internal/adapter"
	"github.com/MKhiriev/go-chat-vault/internal/client"
	"github.com/MKhiriev/go-chat-vault/internal/config"
	"github.com/MKhiriev/go-chat-vault/internal/logger"
	"github.com/MKhiriev/go-chat-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Fprintln(os.Stderr, buildInfo)

	log := logger.NewClientLogger("go-chat-vault-client", os.Getenv("APP_LOG_LEVEL"))
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server adapter")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := client.NewApp(serverAdapter, os.Stdout, log)
	if err = app.Run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, client.ErrNoCommand) || errors.Is(err, client.ErrUnknownCommand) {
			fmt.Fprintln(os.Stderr, "usage: go-chat-vault-client <register|login|me|list|update|whoami|version> [flags]")
		}
		log.Error().Err(err).Msg("command failed")
		stop()
		os.Exit(1)
	}
}
