// Package config defines the server configuration structure.
package config

import (
	"github.com/yndnr/rekv-go/internal/rerr"
)

// Verify validates the configuration.
//
// The dir/dbfilename pairing rule comes directly from the CLI surface
// contract: both flags are optional, but one without the other is a
// configuration mistake, not a "start with an empty cache" request.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	return verifyStorage(&cfg.Storage)
}

func verifyServer(cfg *ServerSection) error {
	if cfg.Redis.Addr == "" {
		return rerr.New(rerr.ConfigError, "server.redis.addr is required")
	}
	if cfg.Redis.MaxConns < 1 {
		return rerr.New(rerr.ConfigError, "server.redis.max_conns must be at least 1")
	}
	if cfg.Redis.RateLimit < 0 {
		return rerr.New(rerr.ConfigError, "server.redis.rate_limit must not be negative")
	}
	if cfg.Redis.MaxBulkLen < 0 {
		return rerr.New(rerr.ConfigError, "server.redis.max_bulk_len must not be negative")
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	if (cfg.Dir == "") != (cfg.DBFilename == "") {
		return rerr.New(rerr.ConfigError, "storage.dir and storage.dbfilename must be set together")
	}
	return nil
}
