package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/5w1tchy/books-service/internal/api/handlers/health"
	mw "github.com/5w1tchy/books-service/internal/api/middlewares"
	"github.com/5w1tchy/books-service/internal/api/router"
	"github.com/5w1tchy/books-service/internal/bootstrap"
	"github.com/5w1tchy/books-service/internal/books"
	"github.com/5w1tchy/books-service/internal/config"
	"github.com/5w1tchy/books-service/internal/logging"
	"github.com/5w1tchy/books-service/internal/seed"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)
	for _, w := range cfg.HardeningWarnings() {
		log.Warn("config", "warning", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			log.Warn("closing store", "error", err)
		}
	}()

	if cfg.SeedSampleData {
		if _, err := seed.Run(ctx, st, log); err != nil {
			log.Error("seeding sample data failed", "error", err)
		}
	}

	checks := []health.Check{{Name: "store", Pinger: st}}

	var limiter func(http.Handler) http.Handler
	if cfg.RedisURL != "" {
		rdb, err := cfg.NewRedisClient()
		if err != nil {
			return err
		}
		defer rdb.Close()
		if err := config.PingRedis(ctx, rdb, 3*time.Second); err != nil {
			log.Warn("redis unreachable at startup; rate limiter fails open", "error", err)
		} else {
			log.Info("connected to redis")
		}
		limiter = mw.NewRedisTokenBucket(rdb, cfg.RateLimitRPS, cfg.RateLimitBurst, mw.PerIPKey("tb"), log).Middleware
		checks = append(checks, health.Check{Name: "redis", Pinger: redisPinger(rdb)})
	} else {
		local := mw.NewLocalTokenBucket(cfg.RateLimitRPS, cfg.RateLimitBurst, mw.PerIPKey("tb"))
		go local.Run(ctx, time.Minute)
		limiter = local.Middleware
	}

	svc := books.NewService(st, log)

	handler := mw.Chain(
		router.Router(svc, log, checks...),
		mw.RequestID,
		mw.AccessLog(log),
		mw.Recovery(log),
		mw.CORS(cfg.AllowedOrigins, log),
		mw.SecurityHeaders(cfg.TLSEnabled()),
		limiter,
		mw.BodySizeLimit(cfg.MaxBodySize),
		mw.Compression,
	)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
	}
	if cfg.TLSEnabled() {
		server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server is running", "addr", cfg.Addr, "tls", cfg.TLSEnabled(), "store", cfg.StoreDriver)
		if cfg.TLSEnabled() {
			errCh <- server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
		} else {
			errCh <- server.ListenAndServe()
		}
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

func redisPinger(rdb *redis.Client) health.PingFunc {
	return func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
}
