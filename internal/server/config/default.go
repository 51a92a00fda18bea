// Package config defines the server configuration structure.
package config

// Default configuration values.
const (
	DefaultRedisAddr   = "127.0.0.1:6379"
	DefaultMaxConns    = 100
	DefaultRateLimit   = 0
	DefaultMaxBulkLen  = 512 * 1024 * 1024
	DefaultMetricsAddr = "127.0.0.1:9121"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Redis: RedisConfig{
				Addr:       DefaultRedisAddr,
				MaxConns:   DefaultMaxConns,
				RateLimit:  DefaultRateLimit,
				MaxBulkLen: DefaultMaxBulkLen,
			},
			Metrics: MetricsConfig{
				Addr: DefaultMetricsAddr,
			},
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
