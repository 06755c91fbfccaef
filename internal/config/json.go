package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the JSON
// configuration file.
type StructuredJSONConfig struct {
	App struct {
		Token         string   `json:"token"`
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			PhotoDir string `json:"photo_dir"`
		} `json:"files,omitempty"`

		Assets struct {
			Backend string `json:"backend"`
			Dir     string `json:"dir"`
			S3      S3     `json:"s3"`
		} `json:"assets,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		RateLimit      string   `json:"rate_limit"`
		RetryAfter     Duration `json:"retry_after"`
		PageSize       int      `json:"page_size"`
		MaxRequestBody int64    `json:"max_request_body"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`

	Sync struct {
		MaxRetries     int      `json:"max_retries"`
		MaxBackoff     Duration `json:"max_backoff"`
		TombstoneGrace Duration `json:"tombstone_grace"`
		PageSize       int      `json:"page_size"`
	} `json:"sync,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Token:         jsonCfg.App.Token,
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
		},
		Storage: Storage{
			DB:    DB{DSN: jsonCfg.Storage.DB.DSN},
			Files: Files{PhotoDir: jsonCfg.Storage.Files.PhotoDir},
			Assets: Assets{
				Backend: jsonCfg.Storage.Assets.Backend,
				Dir:     jsonCfg.Storage.Assets.Dir,
				S3:      jsonCfg.Storage.Assets.S3,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			RateLimit:      jsonCfg.Server.RateLimit,
			RetryAfter:     time.Duration(jsonCfg.Server.RetryAfter),
			PageSize:       jsonCfg.Server.PageSize,
			MaxRequestBody: jsonCfg.Server.MaxRequestBody,
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval)},
		Sync: Sync{
			MaxRetries:     jsonCfg.Sync.MaxRetries,
			MaxBackoff:     time.Duration(jsonCfg.Sync.MaxBackoff),
			TombstoneGrace: time.Duration(jsonCfg.Sync.TombstoneGrace),
			PageSize:       jsonCfg.Sync.PageSize,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" and from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
