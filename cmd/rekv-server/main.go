// Package main provides the entry point for rekv-server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/yndnr/rekv-go/internal/cache"
	"github.com/yndnr/rekv-go/internal/infra/buildinfo"
	"github.com/yndnr/rekv-go/internal/infra/confloader"
	"github.com/yndnr/rekv-go/internal/infra/shutdown"
	"github.com/yndnr/rekv-go/internal/rdb"
	"github.com/yndnr/rekv-go/internal/resp"
	"github.com/yndnr/rekv-go/internal/server/config"
	"github.com/yndnr/rekv-go/internal/server/httpserver"
	"github.com/yndnr/rekv-go/internal/server/httpserver/handler"
	"github.com/yndnr/rekv-go/internal/server/redisserver"
	"github.com/yndnr/rekv-go/internal/telemetry/logger"
	"github.com/yndnr/rekv-go/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// flags holds the command-line overrides layered on top of config.
type flags struct {
	configFile  string
	addr        string
	metricsAddr string
	dir         string
	dbFilename  string
	logLevel    string
	logFormat   string
	maxBulkLen  int
	showVersion bool
}

func parseFlags() *flags {
	f := &flags{}
	flag.StringVar(&f.configFile, "config", "", "path to a YAML configuration file")
	flag.StringVar(&f.addr, "addr", "", "override server.redis.addr")
	flag.StringVar(&f.metricsAddr, "metrics-addr", "", "override server.metrics.addr")
	flag.StringVar(&f.dir, "dir", "", "override storage.dir (RDB snapshot directory)")
	flag.StringVar(&f.dbFilename, "dbfilename", "", "override storage.dbfilename")
	flag.StringVar(&f.logLevel, "log-level", "", "override log.level")
	flag.StringVar(&f.logFormat, "log-format", "", "override log.format")
	flag.IntVar(&f.maxBulkLen, "max-bulk-len", 0, "override server.redis.max_bulk_len (bytes)")
	flag.BoolVar(&f.showVersion, "version", false, "show version information")
	flag.Parse()
	return f
}

func run() error {
	f := parseFlags()

	if f.showVersion {
		fmt.Printf("rekv-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(f)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	log.Info("starting rekv-server", "version", buildinfo.Version, "commit", buildinfo.Commit, "config", f.configFile)

	if cfg.Server.Redis.MaxBulkLen > 0 {
		resp.MaxBulkLen = cfg.Server.Redis.MaxBulkLen
	}

	metrics := metric.NewRegistry()
	c := cache.New()

	if cfg.Storage.Dir != "" && cfg.Storage.DBFilename != "" {
		if err := loadSnapshot(cfg, c, metrics, log); err != nil {
			// Fail-open: an unreadable or malformed snapshot starts the
			// server with an empty cache rather than refusing to serve.
			log.Warn("RDB load failed, starting with an empty cache", "error", err)
		}
	}

	redis := redisserver.New(cfg, c, log, metrics)
	ctx := context.Background()
	if err := redis.Start(ctx); err != nil {
		return fmt.Errorf("start redis server: %w", err)
	}

	healthHandler := handler.New()
	var httpSrv *httpserver.Server
	if cfg.Server.Metrics.Addr != "" {
		router := httpserver.NewRouter(healthHandler, metrics, log)
		httpSrv = httpserver.New(cfg.Server.Metrics.Addr, router)
		go func() {
			log.Info("http server listening", "addr", cfg.Server.Metrics.Addr)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("http server error", "error", err)
			}
		}()
	}
	healthHandler.MarkReady()

	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		if httpSrv == nil {
			return nil
		}
		log.Info("shutting down http server")
		return httpSrv.Shutdown(ctx)
	})

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down redis server")
		return redis.Shutdown(ctx)
	})

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from defaults, an optional file, the
// environment, then applies explicit flag overrides (highest priority).
func loadConfig(f *flags) (*config.ServerConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if f.configFile != "" {
		opts = append(opts, confloader.WithConfigFile(f.configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if f.addr != "" {
		cfg.Server.Redis.Addr = f.addr
	}
	if f.metricsAddr != "" {
		cfg.Server.Metrics.Addr = f.metricsAddr
	}
	if f.dir != "" {
		cfg.Storage.Dir = f.dir
	}
	if f.dbFilename != "" {
		cfg.Storage.DBFilename = f.dbFilename
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
	if f.maxBulkLen != 0 {
		cfg.Server.Redis.MaxBulkLen = f.maxBulkLen
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadSnapshot loads the configured RDB file into c and records the
// load duration in metrics.
func loadSnapshot(cfg *config.ServerConfig, c *cache.Cache, metrics *metric.Registry, log logger.Logger) error {
	path := cfg.Storage.Dir + "/" + cfg.Storage.DBFilename
	log.Info("loading RDB snapshot", "path", path)

	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("opening RDB file: %w", err)
	}
	snapshot, skipped, err := rdb.DecodeWithSkippedAux(data)
	if err != nil {
		return err
	}
	for _, key := range skipped {
		log.Info("ignoring unrecognized RDB AUX field", "key", key)
	}
	c.LoadFrom(snapshot)
	elapsed := time.Since(start)

	metrics.SetRDBLoadSeconds(elapsed.Seconds())
	metrics.SetCacheKeys(c.Len())
	log.Info("RDB snapshot loaded", "path", path, "keys", c.Len(), "elapsed", elapsed)
	return nil
}
