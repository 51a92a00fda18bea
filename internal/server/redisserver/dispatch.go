package redisserver

import (
	"time"

	"github.com/yndnr/rekv-go/internal/cache"
	"github.com/yndnr/rekv-go/internal/resp"
	"github.com/yndnr/rekv-go/internal/server/config"
	"github.com/yndnr/rekv-go/internal/telemetry/logger"
	"github.com/yndnr/rekv-go/internal/telemetry/metric"
)

// Dispatcher turns validated Commands (or the lenient fallback for
// unrecognized input) into replies, applying their cache side effects
// first so a GET issued after a SET's response is observed sees it.
type Dispatcher struct {
	cache   *cache.Cache
	config  *config.ServerConfig
	logger  logger.Logger
	metrics *metric.Registry
}

// NewDispatcher builds a Dispatcher over shared, read-mostly
// references to the cache, configuration, logger and metrics registry.
func NewDispatcher(c *cache.Cache, cfg *config.ServerConfig, log logger.Logger, metrics *metric.Registry) *Dispatcher {
	if log == nil {
		log = logger.Default()
	}
	if metrics == nil {
		metrics = metric.Global()
	}
	return &Dispatcher{cache: c, config: cfg, logger: log, metrics: metrics}
}

// Dispatch validates msg and returns the reply Message. It never
// returns an error: an unrecognized or malformed command falls through
// to the lenient OK reply per the source's own leniency policy.
func (d *Dispatcher) Dispatch(msg resp.Message) resp.Message {
	start := time.Now()

	cmd, ok := Validate(msg)
	if !ok {
		d.logger.Warn("unrecognized or malformed command", "message", msg.String())
		d.metrics.RecordCommand("unknown", time.Since(start).Seconds())
		return resp.SimpleString("OK")
	}

	reply := d.dispatch(cmd)
	d.metrics.RecordCommand(cmd.Verb.String(), time.Since(start).Seconds())
	return reply
}

func (d *Dispatcher) dispatch(cmd Command) resp.Message {
	switch cmd.Verb {
	case Ping:
		if len(cmd.Args) == 1 {
			return resp.BulkString(cmd.Args[0])
		}
		return resp.SimpleString("PONG")

	case Echo:
		return resp.BulkString(cmd.Args[0])

	case Get:
		value, ok := d.cache.Get(string(cmd.Args[0]))
		if !ok {
			return resp.NullBulkString()
		}
		return resp.BulkString(value)

	case Set:
		var ttl time.Duration
		if cmd.HasTTL {
			ttl = time.Duration(cmd.SetTTL) * time.Millisecond
		}
		d.cache.Set(string(cmd.Args[0]), cmd.Args[1], ttl)
		d.metrics.SetCacheKeys(d.cache.Len())
		return resp.SimpleString("OK")

	case ConfigGet:
		return d.dispatchConfigGet(cmd)

	case Keys:
		items := make([]resp.Message, 0, d.cache.Len())
		for _, k := range d.cache.Keys() {
			items = append(items, resp.BulkString(k))
		}
		return resp.Array(items)

	case Del:
		var count int64
		for _, k := range cmd.Args {
			if d.cache.Delete(string(k)) {
				count++
			}
		}
		d.metrics.SetCacheKeys(d.cache.Len())
		return resp.Integer(count)

	case Exists:
		var count int64
		for _, k := range cmd.Args {
			if d.cache.Exists(string(k)) {
				count++
			}
		}
		return resp.Integer(count)

	default:
		return resp.SimpleString("OK")
	}
}

func (d *Dispatcher) dispatchConfigGet(cmd Command) resp.Message {
	if len(cmd.Args) == 0 {
		return resp.Array(nil)
	}

	var value string
	var ok bool
	switch lowerASCII(cmd.Args[0]) {
	case "dir":
		value, ok = d.config.Storage.Dir, d.config.Storage.Dir != ""
	case "dbfilename":
		value, ok = d.config.Storage.DBFilename, d.config.Storage.DBFilename != ""
	}

	if !ok {
		return resp.Array(nil)
	}
	return resp.Array([]resp.Message{
		resp.BulkStringFrom(lowerASCII(cmd.Args[0])),
		resp.BulkStringFrom(value),
	})
}
