package server

import (
	"context"
	"errors"
	"net"
	"sync"
	"sync/atomic"

	"github.com/Brownie44l1/tinyhttp/internal/files"
)

// ErrServerClosed is returned by Serve after Shutdown
var ErrServerClosed = errors.New("server closed")

// Config holds process-level settings
type Config struct {
	// Addr is the TCP address to listen on
	Addr string
	// Directory is the root for the file routes. Empty disables them:
	// every file request answers 404.
	Directory string
	// Logger receives server and request logs. Nil means DefaultLogger.
	Logger Logger
}

// DefaultConfig returns the settings used when nothing is overridden
func DefaultConfig() Config {
	return Config{
		Addr: "0.0.0.0:4221",
	}
}

// Handler serves one request. The returned error is for failures that
// could not be turned into a response, such as a dead socket.
type Handler interface {
	ServeHTTP(ctx *Context) error
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(ctx *Context) error

func (f HandlerFunc) ServeHTTP(ctx *Context) error {
	return f(ctx)
}

// Middleware wraps a Handler
type Middleware func(Handler) Handler

// Server accepts connections and serves exactly one request on each
type Server struct {
	Logger Logger

	config      Config
	handler     Handler
	middlewares []Middleware
	store       files.Store
	metrics     *Metrics

	mu       sync.Mutex
	listener net.Listener
	closed   atomic.Bool
	conns    sync.WaitGroup
	nextID   atomic.Uint64
}

func New(config Config, handler Handler) *Server {
	logger := config.Logger
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &Server{
		Logger:  logger,
		config:  config,
		handler: handler,
		store:   files.NewDir(config.Directory),
		metrics: NewMetrics(),
	}
}

// Use adds middleware. The first one added runs outermost.
func (s *Server) Use(mw Middleware) {
	s.middlewares = append(s.middlewares, mw)
}

// Metrics returns the live counters of this server
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) Stats() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// Addr returns the listener address, or nil before Serve
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

func (s *Server) ListenAndServe() error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve accepts connections on listener until Shutdown, handing each
// one to its own goroutine.
func (s *Server) Serve(listener net.Listener) error {
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		listener.Close()
		return ErrServerClosed
	}
	s.listener = listener
	s.mu.Unlock()

	s.Logger.Info("listening",
		Field{"addr", listener.Addr().String()},
		Field{"directory", s.config.Directory},
	)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if s.closed.Load() {
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			s.Logger.Error("accept failed", Field{"error", err})
			continue
		}

		// Add and Shutdown's closed flag share mu so Add never races Wait
		s.mu.Lock()
		if s.closed.Load() {
			s.mu.Unlock()
			conn.Close()
			return ErrServerClosed
		}
		s.conns.Add(1)
		s.mu.Unlock()

		go s.serveConn(conn)
	}
}

// Shutdown stops accepting connections and waits for in-flight ones
// to finish or ctx to end.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed.Store(true)
	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.conns.Wait()
		close(done)
	}()

	select {
	case <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// chain wraps the handler in the registered middleware
func (s *Server) chain() Handler {
	h := s.handler
	for i := len(s.middlewares) - 1; i >= 0; i-- {
		h = s.middlewares[i](h)
	}
	return h
}
