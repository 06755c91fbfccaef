package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/MKhiriev/go-diary/internal/config"
	"github.com/MKhiriev/go-diary/internal/handler"
	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/server"
	"github.com/MKhiriev/go-diary/internal/service"
	"github.com/MKhiriev/go-diary/internal/store"
	"github.com/MKhiriev/go-diary/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	issueToken := flag.Int64("issue-token", 0, "Print a bearer token for the owner id and exit")

	buildInfo := printBuildInfo()

	log := logger.NewLogger("diary-records")
	cfg, err := config.GetServerConfig()

	// issuing a token needs only the token settings
	if *issueToken != 0 && cfg != nil && (err == nil || errors.Is(err, config.ErrInvalidStorageConfigs)) {
		token, err := service.NewAuthService(cfg.App, log).CreateToken(context.Background(), *issueToken)
		if err != nil {
			log.Fatal().Err(err).Int64("owner_id", *issueToken).Msg("error issuing token")
		}
		fmt.Println(token.String())
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("address", cfg.Server.HTTPAddress).Str("assets", cfg.Storage.Assets.Backend).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo() models.AppBuildInfo {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(info)
	return info
}
