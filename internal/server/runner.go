// Package server runs the daemon: the v1 API over HTTP with its event bus.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	v1 "github.com/vmunix/marquee/internal/api/v1"
	"github.com/vmunix/marquee/internal/events"
)

// DefaultShutdownTimeout bounds graceful shutdown.
const DefaultShutdownTimeout = 30 * time.Second

// Config for the daemon server.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	API             v1.Config
}

// Runner manages the daemon components.
type Runner struct {
	deps       v1.ServerDeps
	config     Config
	logger     *slog.Logger
	middleware []func(http.Handler) http.Handler

	mu    sync.Mutex
	addr  net.Addr
	ready chan struct{}
}

// NewRunner creates a new runner. The event bus is created by Run.
func NewRunner(deps v1.ServerDeps, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	return &Runner{
		deps:   deps,
		config: cfg,
		logger: logger,
		ready:  make(chan struct{}),
	}
}

// Use wraps the API handler. The first middleware added is the outermost.
func (r *Runner) Use(mw func(http.Handler) http.Handler) {
	r.middleware = append(r.middleware, mw)
}

// Ready is closed once the server is listening.
func (r *Runner) Ready() <-chan struct{} {
	return r.ready
}

// Addr returns the listening address, or nil before Ready.
func (r *Runner) Addr() net.Addr {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addr
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails. Open event streams are ended on shutdown.
func (r *Runner) Run(ctx context.Context) error {
	bus := events.NewBus(r.logger.With("component", "bus"))
	defer func() { _ = bus.Close() }()

	deps := r.deps
	deps.Bus = bus
	if deps.Logger == nil {
		deps.Logger = r.logger
	}

	api, err := v1.New(deps, r.config.API)
	if err != nil {
		return err
	}
	defer api.Close()

	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	var handler http.Handler = mux
	for i := len(r.middleware) - 1; i >= 0; i-- {
		handler = r.middleware[i](handler)
	}

	ln, err := net.Listen("tcp", r.config.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	// Request contexts derive from base so streaming handlers return when
	// shutdown begins.
	base, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}

	r.mu.Lock()
	r.addr = ln.Addr()
	r.mu.Unlock()
	close(r.ready)

	r.logger.Info("server listening", "addr", ln.Addr().String())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		r.logger.Info("shutting down")
		cancelBase()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), r.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	r.logger.Info("server stopped")
	return nil
}
