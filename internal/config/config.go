// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// diary client and the record service. It is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token settings of both sides.
	App App `envPrefix:"APP_"`

	// Storage holds the database, photo directory and asset store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the record service listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's connection settings to the record service.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background job settings of the client.
	Workers Workers `envPrefix:"WORKERS_"`

	// Sync holds the replication engine tuning knobs.
	Sync Sync `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds token configuration.
type App struct {
	// TokenSignKey is the HMAC key used by the record service to sign and
	// verify bearer tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of issued tokens (e.g. "720h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Token is the bearer token the client presents to the record service.
	// Env: APP_TOKEN
	Token string `env:"TOKEN"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the database connection settings: a SQLite file path on the
	// client, a PostgreSQL DSN on the server.
	DB DB `envPrefix:"DB_"`

	// Files holds the client photo directory.
	Files Files `envPrefix:"FILES_"`

	// Assets holds the record service asset store settings.
	Assets Assets `envPrefix:"ASSETS_"`
}

// DB holds database connection settings.
type DB struct {
	// DSN is a SQLite file path (client) or a PostgreSQL connection string
	// (server).
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings of the client.
type Files struct {
	// PhotoDir is the document root holding yyyyMMdd/NNN.jpg photo files.
	// Env: STORAGE_FILES_PHOTO_DIR
	PhotoDir string `env:"PHOTO_DIR"`
}

// Assets selects where the record service keeps record assets.
type Assets struct {
	// Backend is "fs" or "s3".
	// Env: STORAGE_ASSETS_BACKEND
	Backend string `env:"BACKEND"`

	// Dir is the root directory of the "fs" backend.
	// Env: STORAGE_ASSETS_DIR
	Dir string `env:"DIR"`

	// S3 holds the "s3" backend settings.
	S3 S3 `envPrefix:"S3_"`
}

// S3 holds object storage settings. Endpoint is set for S3-compatible
// services such as MinIO and switches the client to path-style addressing.
type S3 struct {
	Endpoint  string `env:"ENDPOINT" json:"endpoint"`
	Region    string `env:"REGION" json:"region"`
	Bucket    string `env:"BUCKET" json:"bucket"`
	AccessKey string `env:"ACCESS_KEY" json:"access_key"`
	SecretKey string `env:"SECRET_KEY" json:"secret_key"`
}

// Server holds network and throttling settings of the record service.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the handling of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RateLimit is a ulule/limiter formatted rate per owner (e.g. "600-M").
	// Env: SERVER_RATE_LIMIT
	RateLimit string `env:"RATE_LIMIT"`

	// RetryAfter is the hint sent with 503 responses caused by transient
	// database failures.
	// Env: SERVER_RETRY_AFTER
	RetryAfter time.Duration `env:"RETRY_AFTER"`

	// PageSize is the default and maximum number of records per query page.
	// Env: SERVER_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`

	// MaxRequestBody caps a request body in bytes. A modify batch carries
	// every pending photo of the client base64-encoded.
	// Env: SERVER_MAX_REQUEST_BODY
	MaxRequestBody int64 `env:"MAX_REQUEST_BODY"`
}

// Adapter holds the client's record service connection settings.
type Adapter struct {
	// HTTPAddress is the base URL or "host:port" of the record service.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is the period of the background sync job.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// Sync holds replication engine settings.
type Sync struct {
	// MaxRetries caps retry-after driven retries of a single remote call.
	// Env: SYNC_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`

	// MaxBackoff caps the cumulative retry-after delay of a single remote
	// call.
	// Env: SYNC_MAX_BACKOFF
	MaxBackoff time.Duration `env:"MAX_BACKOFF"`

	// TombstoneGrace is how long a soft-deleted entity is kept before it is
	// sent as a remote delete and purged.
	// Env: SYNC_TOMBSTONE_GRACE
	TombstoneGrace time.Duration `env:"TOMBSTONE_GRACE"`

	// PageSize is the query page size requested by the client.
	// Env: SYNC_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`
}

// GetStructuredConfig loads and merges the configuration from all available
// sources in the following priority order (last source wins for non-zero
// fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
