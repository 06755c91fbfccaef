package config

import (
	"fmt"
	"time"
)

// Server defaults applied when a setting is left zero.
const (
	DefaultHTTPAddress   = "localhost:8080"
	DefaultRateLimit     = "600-M"
	DefaultRetryAfter    = 5 * time.Second
	DefaultTokenDuration = 30 * 24 * time.Hour
	DefaultAssetsBackend = AssetsBackendFS

	DefaultMaxRequestBody int64 = 512 << 20
)

// Asset store backends.
const (
	AssetsBackendFS = "fs"
	AssetsBackendS3 = "s3"
)

// ServerApp holds token settings of the record service.
type ServerApp struct {
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
}

// ServerStorage holds the record service persistence settings.
type ServerStorage struct {
	// DSN is the PostgreSQL connection string.
	DSN string
	// Assets selects and configures the asset store.
	Assets Assets
}

// ServerConfig is the record service configuration assembled from
// [StructuredConfig].
type ServerConfig struct {
	App     ServerApp
	Server  Server
	Storage ServerStorage
}

// GetServerConfig builds and validates the record service config view from
// the merged structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := newServerConfig(cfg)
	return serverCfg, serverCfg.validate()
}

func newServerConfig(cfg *StructuredConfig) *ServerConfig {
	assets := cfg.Storage.Assets
	assets.Backend = orDefault(assets.Backend, DefaultAssetsBackend)

	return &ServerConfig{
		App: ServerApp{
			TokenSignKey:  cfg.App.TokenSignKey,
			TokenIssuer:   cfg.App.TokenIssuer,
			TokenDuration: orDefault(cfg.App.TokenDuration, DefaultTokenDuration),
		},
		Server: Server{
			HTTPAddress:    orDefault(cfg.Server.HTTPAddress, DefaultHTTPAddress),
			RequestTimeout: orDefault(cfg.Server.RequestTimeout, DefaultRequestTimeout),
			RateLimit:      orDefault(cfg.Server.RateLimit, DefaultRateLimit),
			RetryAfter:     orDefault(cfg.Server.RetryAfter, DefaultRetryAfter),
			PageSize:       orDefault(cfg.Server.PageSize, DefaultPageSize),
			MaxRequestBody: orDefault(cfg.Server.MaxRequestBody, DefaultMaxRequestBody),
		},
		Storage: ServerStorage{
			DSN:    cfg.Storage.DB.DSN,
			Assets: assets,
		},
	}
}
