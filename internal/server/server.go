// Package server boots the HTTP server: config, store, cache, middleware
// stack, routes, and graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spokeworks/gearhub/app/routes"
	"github.com/spokeworks/gearhub/config"
	"github.com/spokeworks/gearhub/pkg/cache"
	"github.com/spokeworks/gearhub/pkg/logger"
	"github.com/spokeworks/gearhub/pkg/metrics"
	"github.com/spokeworks/gearhub/pkg/middleware"
	"github.com/spokeworks/gearhub/pkg/payments"
	"github.com/spokeworks/gearhub/pkg/reqid"
	"github.com/spokeworks/gearhub/pkg/router"
	"github.com/spokeworks/gearhub/pkg/store"
)

// Start runs the server until SIGINT/SIGTERM, then drains in-flight
// requests and disconnects the store.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	ctx := context.Background()

	st, err := store.Connect(ctx, config.MongoURI(), config.MongoDatabase())
	if err != nil {
		return err
	}
	defer func() {
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = st.Disconnect(shutCtx)
	}()

	// Redis is optional: without it the catalog cache and the shared rate
	// limiter degrade to store reads and per-process counters.
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, continuing without cache", "error", err.Error())
	}

	// In production, fan request logs out to the store as well as stdout.
	var mongoSink *logger.MongoHandler
	if env := config.AppEnv(); env == "production" || env == "prod" {
		mongoSink = logger.NewMongoHandler(st.Logs())
		stdout := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
		logger.UseHandler(logger.NewMultiHandler(stdout, mongoSink))
	}
	if mongoSink != nil {
		defer mongoSink.Close()
	}

	handler := buildHandler(st)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}

	return nil
}

// buildHandler assembles the middleware stack and the route table.
//
// Stack, outermost first:
//  1. Prometheus metrics: outermost for accurate total latency
//  2. Recovery:           catches panics before they kill the goroutine
//  3. Request ID:         inject unique ID before anything logs
//  4. Logger:             logs request_id from context
//  5. CORS:               set CORS headers
//  6. Rate limiter:       reject abusers early
func buildHandler(st *store.Store) http.Handler {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	// Prometheus scrape endpoint. No auth; scrape volume is negligible next
	// to the rate limit.
	r.HandleFunc("/metrics", metrics.Handler())

	routes.RegisterAPI(r, st, intentCreator())

	return r.Handler()
}

// intentCreator builds the Stripe client, or nil when no key is configured.
// A nil collaborator makes intent creation fail with a clear 503 rather
// than a bad request to Stripe.
func intentCreator() payments.IntentCreator {
	client, err := payments.NewStripeClient(config.StripeKey())
	if err != nil {
		logger.Warn("payment provider not configured, intent creation disabled")
		return nil
	}
	return client
}
