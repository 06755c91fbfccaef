package config

import (
	"fmt"
	"time"
)

// Client defaults applied when a setting is left zero.
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultSyncInterval   = 5 * time.Minute
	DefaultMaxRetries     = 8
	DefaultMaxBackoff     = 15 * time.Minute
	DefaultTombstoneGrace = 30 * 24 * time.Hour
	DefaultPageSize       = 200
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// Token is the bearer token presented to the record service.
	Token string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the record service address used by the client.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite database file path.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
	// PhotoDir is the document root of photo files.
	PhotoDir string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the background sync job runs.
	SyncInterval time.Duration
}

// ClientSync holds replication engine settings.
type ClientSync struct {
	MaxRetries     int
	MaxBackoff     time.Duration
	TombstoneGrace time.Duration
	PageSize       int
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	Sync    ClientSync
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			Token: cfg.App.Token,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: orDefault(cfg.Adapter.RequestTimeout, DefaultRequestTimeout),
		},
		Storage: ClientStorage{
			DB:       ClientDB{DSN: cfg.Storage.DB.DSN},
			PhotoDir: cfg.Storage.Files.PhotoDir,
		},
		Workers: ClientWorkers{
			SyncInterval: orDefault(cfg.Workers.SyncInterval, DefaultSyncInterval),
		},
		Sync: ClientSync{
			MaxRetries:     orDefault(cfg.Sync.MaxRetries, DefaultMaxRetries),
			MaxBackoff:     orDefault(cfg.Sync.MaxBackoff, DefaultMaxBackoff),
			TombstoneGrace: orDefault(cfg.Sync.TombstoneGrace, DefaultTombstoneGrace),
			PageSize:       orDefault(cfg.Sync.PageSize, DefaultPageSize),
		},
	}
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
