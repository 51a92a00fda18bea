package redisserver

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/rekv-go/internal/cache"
	"github.com/yndnr/rekv-go/internal/rerr"
	"github.com/yndnr/rekv-go/internal/resp"
	"github.com/yndnr/rekv-go/internal/server/config"
	"github.com/yndnr/rekv-go/internal/telemetry/logger"
	"github.com/yndnr/rekv-go/internal/telemetry/metric"
)

// Connection-lifecycle timeouts. These bound resource usage per
// connection; they are not part of the RESP2 protocol itself.
const (
	idleTimeout  = 5 * time.Minute
	readTimeout  = 30 * time.Second
	writeTimeout = 30 * time.Second
)

// Server is the RESP2 TCP listener: it accepts connections under a
// bounded concurrency ceiling and hands each one to a streaming
// decode/dispatch/encode loop.
type Server struct {
	addr    string
	maxConn int

	dispatcher *Dispatcher
	logger     logger.Logger
	metrics    *metric.Registry
	limiter    *rate.Limiter

	ln net.Listener

	sem      chan struct{}
	inFlight atomic.Int64
	running  atomic.Bool
	wg       sync.WaitGroup

	stopTicker chan struct{}
}

// New builds a Server. cfg.Server.Redis.MaxConns sets N_MAX; a
// cfg.Server.Redis.RateLimit of 0 disables per-connection rate
// limiting.
func New(cfg *config.ServerConfig, c *cache.Cache, log logger.Logger, metrics *metric.Registry) *Server {
	if log == nil {
		log = logger.Default()
	}
	if metrics == nil {
		metrics = metric.Global()
	}

	maxConn := cfg.Server.Redis.MaxConns
	if maxConn < 1 {
		maxConn = config.DefaultMaxConns
	}

	s := &Server{
		addr:       cfg.Server.Redis.Addr,
		maxConn:    maxConn,
		dispatcher: NewDispatcher(c, cfg, log, metrics),
		logger:     log,
		metrics:    metrics,
		sem:        make(chan struct{}, maxConn),
	}
	metrics.ConnectionsActive().Track(&s.inFlight)

	if cfg.Server.Redis.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Server.Redis.RateLimit), cfg.Server.Redis.RateLimit)
	}

	return s
}

// Start binds the listener and begins accepting connections. It
// returns once the listener is bound; the accept loop runs in the
// background until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return rerr.Wrap(rerr.BindError, "binding redis listener on "+s.addr, err)
	}
	s.ln = ln
	s.running.Store(true)
	s.logger.Info("redis server listening", "addr", s.addr, "max_conns", s.maxConn)

	s.stopTicker = make(chan struct{})
	go s.reportInFlight()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.acceptLoop(ctx); err != nil {
			s.logger.Error("redis accept loop exited", "error", err)
		}
	}()

	return nil
}

func (s *Server) reportInFlight() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.logger.Debug("connections in flight", "count", s.inFlight.Load())
		case <-s.stopTicker:
			return
		}
	}
}

func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return rerr.Wrap(rerr.ListenError, "accepting redis connection", err)
		}

		s.metrics.IncConnectionsTotal()

		select {
		case s.sem <- struct{}{}:
		case <-ctx.Done():
			_ = conn.Close()
			return nil
		}

		s.inFlight.Add(1)
		s.wg.Add(1)
		go func() {
			defer func() {
				s.inFlight.Add(-1)
				<-s.sem
				s.wg.Done()
			}()
			s.serveConn(conn)
		}()
	}
}

// Shutdown stops accepting new connections and waits, up to ctx's
// deadline, for in-flight handlers to drain.
func (s *Server) Shutdown(ctx context.Context) error {
	s.running.Store(false)

	var err error
	if s.ln != nil {
		err = s.ln.Close()
	}
	if s.stopTicker != nil {
		close(s.stopTicker)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	remote := conn.RemoteAddr()
	br := bufio.NewReader(conn)
	bw := bufio.NewWriter(conn)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(idleTimeout)); err != nil {
			return
		}
		if _, err := br.Peek(1); err != nil {
			if !errors.Is(err, io.EOF) {
				s.logger.Debug("connection idle read error", "remote", remote, "error", err)
			}
			return
		}

		if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return
		}

		msg, err := resp.DecodeFrom(br)
		if err != nil {
			if kind, ok := rerr.KindOf(err); ok && kind == rerr.ShortRead {
				return
			}
			s.logger.Debug("connection protocol error", "remote", remote, "error", err)
			s.writeError(conn, bw, "ERR protocol error")
			return
		}

		if s.limiter != nil && !s.limiter.Allow() {
			s.writeError(conn, bw, "ERR rate limit exceeded")
			continue
		}

		reply := s.dispatcher.Dispatch(msg)

		if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			return
		}
		if _, err := bw.Write(resp.Encode(reply)); err != nil {
			return
		}
		if err := bw.Flush(); err != nil {
			return
		}
	}
}

func (s *Server) writeError(conn net.Conn, bw *bufio.Writer, message string) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_, _ = bw.Write(resp.Encode(resp.SimpleError(message)))
	_ = bw.Flush()
}
