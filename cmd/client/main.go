package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/MKhiriev/go-diary/internal/adapter"
	"github.com/MKhiriev/go-diary/internal/client"
	"github.com/MKhiriev/go-diary/internal/config"
	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/service"
	"github.com/MKhiriev/go-diary/internal/store"
	"github.com/MKhiriev/go-diary/internal/workers"
	"github.com/MKhiriev/go-diary/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	once := flag.Bool("once", false, "Run a single sync and exit")

	printBuildInfo()

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("diary-sync").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger("diary-sync", filepath.Dir(cfg.Storage.DB.DSN))

	remote, err := adapter.NewHTTPRemoteService(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create record service adapter")
	}

	localStore, err := store.NewClientStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services := service.NewClientServices(localStore, remote, cfg, log)
	jobs := workers.NewWorkers(log, services.SyncJob)

	app, err := client.NewApp(services.Coordinator, jobs, *once, log)
	if err != nil {
		localStore.Close()
		log.Fatal().Err(err).Msg("init client app error")
	}

	err = app.Run()
	if closeErr := localStore.Close(); closeErr != nil {
		log.Error().Err(closeErr).Msg("close local storage")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() models.AppBuildInfo {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(info)
	return info
}
