package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/metric"

	"github.com/JonMunkholm/ipoadmin/internal/config"
	"github.com/JonMunkholm/ipoadmin/internal/core"
	"github.com/JonMunkholm/ipoadmin/internal/ipo"
	"github.com/JonMunkholm/ipoadmin/internal/logging"
	"github.com/JonMunkholm/ipoadmin/internal/seed"
	"github.com/JonMunkholm/ipoadmin/internal/store"
	"github.com/JonMunkholm/ipoadmin/internal/store/migrations"
	"github.com/JonMunkholm/ipoadmin/internal/telemetry"
	"github.com/JonMunkholm/ipoadmin/internal/web"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"version", version,
		"port", cfg.Server.Port,
		"in_memory", cfg.Database.InMemory(),
		"remote_base_url", cfg.Remote.BaseURL,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		Interval:       cfg.Telemetry.Interval,
		ServiceName:    "ipoadmin",
		ServiceVersion: version,
		Environment:    cfg.Server.Environment,
	})
	if err != nil {
		slog.Error("failed to start telemetry", "error", err)
		os.Exit(1)
	}
	meter := tp.Meter("github.com/JonMunkholm/ipoadmin")

	repos, closeRepos, err := openRepositories(ctx, cfg, meter)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer closeRepos()

	if cfg.Seed.Enabled {
		data, err := seed.Load()
		if err != nil {
			slog.Error("failed to load seed data", "error", err)
			os.Exit(1)
		}
		if _, err := seed.Apply(ctx, repos, data); err != nil {
			slog.Error("failed to seed storage", "error", err)
			os.Exit(1)
		}
	}

	service := core.NewService(repos)

	remote := ipo.NewClient(ipo.Options{
		BaseURL:  cfg.Remote.BaseURL,
		Timeout:  cfg.Remote.Timeout,
		PageSize: cfg.Remote.PageSize,
		CacheTTL: cfg.Remote.CacheTTL,
		Meter:    meter,
	})

	server := web.NewServer(service, remote, web.Options{
		TrustedProxies:     cfg.Security.TrustedProxies,
		EnableCSP:          cfg.Security.EnableCSP,
		RateLimit:          cfg.Rate.Enabled,
		RequestsPerMinute:  cfg.Rate.RequestsPerMinute,
		RateBurst:          cfg.Rate.Burst,
		RequestTimeout:     cfg.Server.RequestTimeout,
		ReadTimeout:        cfg.Server.ReadTimeout,
		WriteTimeout:       cfg.Server.WriteTimeout,
		IdleTimeout:        cfg.Server.IdleTimeout,
		AuditRetentionDays: cfg.Audit.RetentionDays,
	})

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())

	go service.StartAuditPruner(jobCtx, core.PruneConfig{
		RetentionDays: cfg.Audit.RetentionDays,
		CheckInterval: cfg.Audit.CheckInterval,
	})

	// Graceful shutdown
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
		if err := tp.Shutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown error", "error", err)
		}
	}()

	if err := server.Start(jobCtx, cfg.Server.Addr()); err != nil {
		slog.Error("server stopped", "error", err)
		cancelJobs()
		closeRepos()
		os.Exit(1)
	}
	<-stopped
	slog.Info("server stopped")
}

// openRepositories returns in-memory repositories when no database is
// configured, otherwise Postgres repositories over a fresh pool. Every
// repository is instrumented with meter. The returned func releases the
// pool.
func openRepositories(ctx context.Context, cfg *config.Config, meter metric.Meter) (core.Repositories, func(), error) {
	if cfg.Database.InMemory() {
		slog.Info("no database configured, keeping records in memory")
		return core.MemoryRepositories().Instrument(meter), func() {}, nil
	}

	if cfg.Database.Migrate {
		if err := migrations.Apply(ctx, cfg.Database.URL); err != nil {
			return core.Repositories{}, nil, err
		}
	}

	pool, err := store.Connect(ctx, cfg.Database.URL,
		int32(cfg.Database.MaxConns), int32(cfg.Database.MinConns))
	if err != nil {
		return core.Repositories{}, nil, err
	}

	// Log which database we connected to
	if u, err := url.Parse(cfg.Database.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}

	return core.PostgresRepositories(pool).Instrument(meter), pool.Close, nil
}
