package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"whatsupp/internal/api"
	"whatsupp/internal/httpapi"
	"whatsupp/internal/supplement"
	"whatsupp/pkg/config"
	"whatsupp/pkg/db"
	"whatsupp/pkg/logger"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code: 0 after a complete drain, 1 on startup
// failure or when the drain deadline expires.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Open(ctx, cfg)
	if err != nil {
		log.Error("db open", zap.Error(err))
		return 1
	}
	defer pool.Close()

	origins := api.ParseOrigins(cfg.AllowedOrigins)

	router := httpapi.NewRouter(httpapi.Dependencies{
		Cfg:         cfg,
		Log:         log,
		Origins:     origins,
		Supplements: supplement.NewRepository(pool),
		Metrics:     api.NewMetrics(),
	})

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		log.Error("http listen", zap.String("addr", cfg.HTTPAddr), zap.Error(err))
		return 1
	}
	log.Info("http listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("env", cfg.AppEnv),
		zap.String("allowed_origins", origins.String()),
	)

	return serve(ctx, stop, srv, ln, cfg.ShutdownTimeout, log)
}

// serve runs srv on ln until ctx is done, then drains within grace. stop is
// called as soon as the drain begins so a second signal terminates the
// process immediately. It returns 0 after a complete drain and 1 when serving
// fails or the grace period expires.
func serve(ctx context.Context, stop context.CancelFunc, srv *http.Server, ln net.Listener, grace time.Duration, log *zap.Logger) int {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		stop()
		log.Info("shutdown signal received, draining", zap.Duration("grace", grace))
	case err := <-errCh:
		log.Error("http serve", zap.Error(err))
		return 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("drain deadline exceeded, forcing exit", zap.Error(err))
		_ = srv.Close()
		return 1
	}
	log.Info("http server closed")
	return 0
}
