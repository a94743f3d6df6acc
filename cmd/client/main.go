package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-seed-api/internal/adapter"
	"github.com/MKhiriev/go-seed-api/internal/client"
	"github.com/MKhiriev/go-seed-api/internal/config"
	"github.com/MKhiriev/go-seed-api/internal/logger"
	"github.com/MKhiriev/go-seed-api/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const (
	logFileName     = "go-seed-client.log"
	sessionFileName = ".go-seed-client-session"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "build-info" {
		models.NewAppBuildInfo(buildVersion, buildDate, buildCommit).Print(os.Stdout)
		return
	}

	log := logger.NewFileLogger("go-seed-client", logFileName)
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = log.SetLevel(cfg.LogLevel); err != nil {
		log.Warn().Err(err).Msg("invalid log level, keeping debug")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	session, err := client.NewExecutableSession(sessionFileName)
	if err != nil {
		log.Fatal().Err(err).Msg("create session")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := client.NewApp(serverAdapter, session, os.Stdout, log)
	if err = app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if errors.Is(err, client.ErrNoCommand) || errors.Is(err, client.ErrUnknownCommand) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
