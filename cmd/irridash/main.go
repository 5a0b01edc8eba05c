package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/redis/go-redis/v9"
	"github.com/tendant/chi-demo/app"

	"github.com/verdantops/irridash/pkg/config"
	"github.com/verdantops/irridash/pkg/guard"
	"github.com/verdantops/irridash/pkg/impersonate"
	"github.com/verdantops/irridash/pkg/metrics"
	"github.com/verdantops/irridash/pkg/notification"
)

type Config struct {
	AppConfig      app.AppConfig
	DatabaseConfig config.DatabaseConfig
	JWTConfig      config.JWTConfig
	RedisConfig    config.RedisConfig
	EmailConfig    config.EmailConfig
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}

	cfg := Config{}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseConfig.ToDatabaseURL())
	if err != nil {
		slog.Error("failed to create database pool", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	var validateOpts []jwt.ValidateOption
	if cfg.JWTConfig.Issuer != "" {
		validateOpts = append(validateOpts, jwt.WithIssuer(cfg.JWTConfig.Issuer))
	}
	if cfg.JWTConfig.Audience != "" {
		validateOpts = append(validateOpts, jwt.WithAudience(cfg.JWTConfig.Audience))
	}
	verifier, err := guard.DefaultVerifier(cfg.JWTConfig.Secret, validateOpts...)
	if err != nil {
		slog.Error("failed to create token verifier", "err", err)
		os.Exit(1)
	}
	if cfg.RedisConfig.Enabled {
		rdb := redis.NewClient(cfg.RedisConfig.ToOptions())
		verifier = guard.NewCachingVerifier(verifier, rdb, guard.DefaultCacheTTL)
		slog.Info("token verification cache enabled", "addr", cfg.RedisConfig.Addr)
	}
	gate := guard.NewGate(verifier)

	notificationOpts := []notification.ServiceOption{}
	if cfg.EmailConfig.Enabled {
		emailNotifier, err := notification.NewEmailNotifier(cfg.EmailConfig.ToSMTPConfig())
		if err != nil {
			slog.Error("failed to create email notifier", "err", err)
			os.Exit(1)
		}
		notificationOpts = append(notificationOpts, notification.WithNotifier(emailNotifier))
	}
	notificationService := notification.NewService(notification.NewPostgresRepository(pool), notificationOpts...)

	impersonateService := impersonate.NewService(
		impersonate.NewPostgresAuditRepository(pool),
		impersonate.WithStartNotifier(notificationService),
	)

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)
	server.R.Handle("/metrics", metrics.Handler())
	server.R.Route("/api", func(r chi.Router) {
		impersonate.NewHandle(impersonateService, gate).Routes(r)
		notification.NewHandle(notificationService, gate).Routes(r)
	})

	server.Run()
}
