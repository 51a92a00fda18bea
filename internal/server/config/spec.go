// Package config defines the server configuration structure.
package config

// ServerConfig is the root configuration for rekv-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Storage StorageSection `koanf:"storage"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures the server's listeners.
type ServerSection struct {
	Redis   RedisConfig   `koanf:"redis"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// RedisConfig configures the RESP2 listener.
type RedisConfig struct {
	// Addr is the TCP address the RESP2 listener binds to.
	Addr string `koanf:"addr"`

	// MaxConns is the concurrency ceiling (N_MAX) enforced by the
	// server supervisor: the number of connection handlers that may
	// run at once before new accepts block.
	MaxConns int `koanf:"max_conns"`

	// RateLimit is the maximum number of commands per second accepted
	// from a single peer address. Zero disables rate limiting.
	RateLimit int `koanf:"rate_limit"`

	// MaxBulkLen is the largest bulk string the RESP2 decoder accepts,
	// in bytes. Zero means keep the decoder's built-in default.
	MaxBulkLen int `koanf:"max_bulk_len"`
}

// MetricsConfig configures the Prometheus metrics HTTP endpoint.
type MetricsConfig struct {
	// Addr is the address /metrics is served on. Empty disables it.
	Addr string `koanf:"addr"`
}

// StorageSection configures the optional RDB bootstrap snapshot.
//
// Dir and DBFilename must either both be set or both be empty; this is
// the Config the RESP dispatcher exposes through CONFIG GET dir /
// CONFIG GET dbfilename.
type StorageSection struct {
	Dir        string `koanf:"dir"`
	DBFilename string `koanf:"dbfilename"`
}

// LogSection configures structured logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
