package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-attendance-sync/internal/client"
	"github.com/MKhiriev/go-attendance-sync/internal/config"
	"github.com/MKhiriev/go-attendance-sync/internal/logger"
	"github.com/MKhiriev/go-attendance-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("attendance-device").Fatal().Err(err).Msg("error getting configs")
	}
	cfg.App.Version = buildInfo.Version(cfg.App.Version)

	log := logger.NewDeviceLogger("attendance-device", cfg.Log)
	log.Debug().Any("config", cfg).Msg("received configs")

	app, err := client.NewApp(*cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init device agent error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("device agent stopped with error")
	}
}
