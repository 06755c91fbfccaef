package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags registers the configuration flags on [flag.CommandLine] and
// parses os.Args. Binaries may register their own extra flags before calling
// it.
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-s record service address used by the client
//	-d database DSN (SQLite path on the client, PostgreSQL DSN on the server)
//	-p photo document root
//	-assets-backend asset store backend ("fs" or "s3")
//	-assets-dir asset directory of the "fs" backend
//	-s3-endpoint / -s3-region / -s3-bucket S3 settings
//	-c/-config json file path with configs
//	-token client bearer token
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "720h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-rate-limit per owner rate (e.g., "600-M")
//	-sync-interval background sync period
//	-max-retries retries of one remote call
//	-max-backoff cumulative retry delay of one remote call
//	-tombstone-grace age before a tombstone is purged
//	-page-size records per query page
//	-max-request-body server request body limit in bytes
func ParseFlags() (*StructuredConfig, error) {
	return parseFlagSet(flag.CommandLine, os.Args[1:])
}

func parseFlagSet(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var (
		serverAddress  NetAddress
		adapterAddress string
		databaseDSN    string
		photoDir       string
		assetsBackend  string
		assetsDir      string
		s3Endpoint     string
		s3Region       string
		s3Bucket       string
		jsonConfigPath string
		token          string
		tokenSignKey   string
		tokenIssuer    string
		tokenDuration  time.Duration
		requestTimeout time.Duration
		rateLimit      string
		syncInterval   time.Duration
		maxRetries     int
		maxBackoff     time.Duration
		tombstoneGrace time.Duration
		pageSize       int
		maxRequestBody int64
	)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&adapterAddress, "s", "", "Record service address")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&photoDir, "p", "", "Photo document root")
	fs.StringVar(&assetsBackend, "assets-backend", "", "Asset store backend (fs, s3)")
	fs.StringVar(&assetsDir, "assets-dir", "", "Asset directory of the fs backend")
	fs.StringVar(&s3Endpoint, "s3-endpoint", "", "S3 endpoint")
	fs.StringVar(&s3Region, "s3-region", "", "S3 region")
	fs.StringVar(&s3Bucket, "s3-bucket", "", "S3 bucket")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&token, "token", "", "Bearer token")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 720h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&rateLimit, "rate-limit", "", "Rate limit per owner (e.g., 600-M)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval")
	fs.IntVar(&maxRetries, "max-retries", 0, "Retries of one remote call")
	fs.DurationVar(&maxBackoff, "max-backoff", 0, "Cumulative retry delay of one remote call")
	fs.DurationVar(&tombstoneGrace, "tombstone-grace", 0, "Age before a tombstone is purged")
	fs.IntVar(&pageSize, "page-size", 0, "Records per query page")
	fs.Int64Var(&maxRequestBody, "max-request-body", 0, "Request body limit of the server in bytes")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			Token:         token,
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB:    DB{DSN: databaseDSN},
			Files: Files{PhotoDir: photoDir},
			Assets: Assets{
				Backend: assetsBackend,
				Dir:     assetsDir,
				S3:      S3{Endpoint: s3Endpoint, Region: s3Region, Bucket: s3Bucket},
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			RateLimit:      rateLimit,
			PageSize:       pageSize,
			MaxRequestBody: maxRequestBody,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{SyncInterval: syncInterval},
		Sync: Sync{
			MaxRetries:     maxRetries,
			MaxBackoff:     maxBackoff,
			TombstoneGrace: tombstoneGrace,
			PageSize:       pageSize,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
