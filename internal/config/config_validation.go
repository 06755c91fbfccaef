// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks the merged [StructuredConfig] for values that are wrong
// regardless of which binary uses them.
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.MaxRetries < 0 || cfg.Sync.PageSize < 0 || cfg.Server.PageSize < 0 {
		return ErrInvalidSyncConfigs
	}
	if cfg.Sync.MaxBackoff < 0 || cfg.Sync.TombstoneGrace < 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.PhotoDir == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.Token == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Storage.Assets.Backend {
	case AssetsBackendFS:
		if cfg.Storage.Assets.Dir == "" {
			return ErrInvalidStorageConfigs
		}
	case AssetsBackendS3:
		if cfg.Storage.Assets.S3.Bucket == "" || cfg.Storage.Assets.S3.Region == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.RequestTimeout <= 0 || cfg.Server.RetryAfter <= 0 || cfg.Server.MaxRequestBody <= 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
