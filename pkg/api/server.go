package api

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// EngineSlots bounds how many requests may be running a Dijkstra search
	// at once. A Route Service shares one Engine, and an Engine's work
	// arrays (dist, settled, pred, the heap) are drawn per query from a
	// sync.Pool rather than truly shared, so concurrent queries against it
	// are memory-safe. EngineSlots exists anyway, set to 1 by default, to
	// honor the routing engine's single-flight scheduling model: one engine
	// instance serves one query at a time, and a caller wanting parallelism
	// is expected to run multiple server processes (one engine each), not
	// drive one engine from many goroutines. Raise it only if that
	// single-flight model is deliberately relaxed.
	EngineSlots int

	CORSOrigin string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(addr string) ServerConfig {
	return ServerConfig{
		Addr:         addr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		EngineSlots:  1,
		CORSOrigin:   "",
	}
}

// NewServer creates an HTTP server with all routes and middleware. Only
// /route runs a Dijkstra search, so only /route is gated by the engine's
// single-flight admission slots; /nearest (a linear scan of the node table),
// /bounds, and /health never touch the Engine and would otherwise queue
// behind it for no reason.
func NewServer(cfg ServerConfig, handlers *Handlers) *http.Server {
	mux := http.NewServeMux()

	engineSlots := make(chan struct{}, cfg.EngineSlots)

	mux.HandleFunc("GET /nearest", withCommon(handlers.HandleNearest, cfg))
	mux.HandleFunc("GET /route", withCommon(withEngineGate(handlers.HandleRoute, engineSlots), cfg))
	mux.HandleFunc("GET /bounds", withCommon(handlers.HandleBounds, cfg))
	mux.HandleFunc("GET /health", withCommon(handlers.HandleHealth, cfg))

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// ListenAndServe starts the server and blocks until shutdown signal.
func ListenAndServe(srv *http.Server) error {
	// Graceful shutdown on SIGTERM/SIGINT.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Printf("Received %s, shutting down...", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

// withCommon wraps a handler with the parts every endpoint needs: security
// headers, CORS, panic recovery, a request-scoped timeout (the Engine checks
// ctx.Err() every 1024 heap pops, so a slow one-to-all-sized query on a
// large graph is actually interruptible), and a timing log line.
func withCommon(handler http.HandlerFunc, cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Security headers.
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Cache-Control", "no-store")

		// CORS.
		if cfg.CORSOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSOrigin)
		}

		// Recovery.
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic: %v", rec)
				http.Error(w, `{"error":"internal_error"}`, http.StatusInternalServerError)
			}
		}()

		// Request timeout.
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		start := time.Now()
		handler(w, r.WithContext(ctx))
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start).Round(time.Microsecond))
	}
}

// withEngineGate enforces the routing engine's single-flight scheduling
// model at the HTTP boundary: only ServerConfig.EngineSlots requests may be
// running a search against the shared Engine at once. A request that can't
// acquire a slot is rejected rather than queued, so a burst of route
// requests fails fast instead of piling up behind a single Engine.
func withEngineGate(handler http.HandlerFunc, slots chan struct{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case slots <- struct{}{}:
			defer func() { <-slots }()
		default:
			w.Header().Set("Retry-After", "1")
			http.Error(w, `{"error":"engine busy, retry"}`, http.StatusServiceUnavailable)
			return
		}
		handler(w, r)
	}
}
