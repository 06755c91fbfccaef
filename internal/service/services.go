package service

import (
	"github.com/MKhiriev/go-diary/internal/config"
	"github.com/MKhiriev/go-diary/internal/logger"
	"github.com/MKhiriev/go-diary/internal/store"
	"github.com/MKhiriev/go-diary/models"
)

// Services groups the record service business layer.
type Services struct {
	RecordService  RecordService
	AuthService    AuthService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.ServerConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(buildInfo, logger)
	if err != nil {
		return nil, err
	}

	records := NewRecordValidationService().Wrap(NewRecordService(storages.RecordStorage, cfg.Server, logger))

	return &Services{
		RecordService:  records,
		AuthService:    NewAuthService(cfg.App, logger),
		AppInfoService: appInfo,
	}, nil
}
