package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"componente-compartido/componente"
	"componente-compartido/componente/application"
	"componente-compartido/componente/domain"
	"componente-compartido/componente/infra"
	"componente-compartido/internal/config"
	"componente-compartido/internal/logging"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(logging.Config{
		Level:      cfg.Log.Level,
		OutputPath: cfg.Log.Output,
		Encoding:   cfg.Log.Encoding,
		DevMode:    cfg.Log.Dev,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg config.Config, log *logging.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	phrases := domain.Phrasebook(domain.DefaultPhrasebook())
	if cfg.PhrasebookPath != "" {
		book, err := infra.LoadPhrasebookYAML(cfg.PhrasebookPath)
		if err != nil {
			return err
		}
		phrases = book
	}

	stats, closeStats, err := newStats(ctx, cfg.Stats)
	if err != nil {
		return err
	}
	defer closeStats()

	builder := application.Builder{
		Phrases:  phrases,
		Fallback: domain.ParseLocale(cfg.DefaultLocale),
		Stats:    stats,
	}
	if !builder.Supported(builder.Fallback) {
		log.Warnw("default locale has no phrase, using embedded spanish", "locale", builder.Fallback)
	}

	store := infra.NewStore(cfg.RateRPS, cfg.RateBurst)
	store.StartJanitor(ctx)

	h := componente.NewHandler(builder, stats, log).Routes()
	h = componente.ConcurrencyMiddleware(componente.ConcurrencyOptions{
		Max:            cfg.ConcurrencyMax,
		RejectStatus:   http.StatusServiceUnavailable,
		AcquireTimeout: cfg.ConcurrencyTimeout,
	})(h)
	if cfg.RateEnabled {
		h = componente.Middleware(componente.Options{
			Store:               store,
			Stats:               stats,
			Logger:              log,
			KeyHeader:           cfg.KeyHeader,
			TrustXForwardedFor:  cfg.TrustXFF,
			RejectStatus:        http.StatusTooManyRequests,
			RetryAfter:          cfg.RetryAfter,
			AddRateLimitHeaders: cfg.AddHeaders,
		})(h)
	}
	h = componente.RequestLog(log)(h)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infow("listening", "addr", cfg.ListenAddr, "locales", builder.Locales(), "fallback", builder.Fallback)
	log.Infow("rate", "enabled", cfg.RateEnabled, "rps", cfg.RateRPS, "burst", cfg.RateBurst, "keyHeader", cfg.KeyHeader, "trustXFF", cfg.TrustXFF)
	log.Infow("stats", "redis", cfg.Stats.RedisEnabled, "redisAddr", cfg.Stats.RedisAddr, "bucket", cfg.Stats.Bucket, "ttl", cfg.Stats.TTL, "trackKeys", cfg.Stats.TrackKeys)
	log.Infow("concurrency", "max", cfg.ConcurrencyMax, "acquireTimeout", cfg.ConcurrencyTimeout)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// statsBackend é o que o servidor precisa de um store: gravar e ler.
type statsBackend interface {
	domain.StatsStore
	domain.StatsReader
}

// newStats usa Redis quando habilitado; senão contadores em memória.
func newStats(ctx context.Context, cfg config.StatsConfig) (statsBackend, func(), error) {
	if !cfg.RedisEnabled {
		return infra.NewMemoryStatsStore(infra.WithTrackKeys(cfg.TrackKeys)), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis stats ping: %w", err)
	}

	store := infra.NewRedisStatsStore(
		rdb,
		infra.WithStatsPrefix(cfg.Prefix),
		infra.WithStatsTTL(cfg.TTL),
		infra.WithStatsBucket(cfg.Bucket),
		infra.WithStatsTrackKeys(cfg.TrackKeys),
	)
	return store, func() { _ = rdb.Close() }, nil
}
