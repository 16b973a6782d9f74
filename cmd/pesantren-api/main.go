package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	rdb "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/pondokdigital/pesantren-api/internal/config"
	"github.com/pondokdigital/pesantren-api/internal/health"
	"github.com/pondokdigital/pesantren-api/internal/http/router"
	"github.com/pondokdigital/pesantren-api/internal/http/server"
	"github.com/pondokdigital/pesantren-api/internal/identity"
	"github.com/pondokdigital/pesantren-api/internal/keuangan"
	"github.com/pondokdigital/pesantren-api/internal/metrics"
	"github.com/pondokdigital/pesantren-api/internal/migrate"
	"github.com/pondokdigital/pesantren-api/internal/observability/logger"
	"github.com/pondokdigital/pesantren-api/internal/profile"
	"github.com/pondokdigital/pesantren-api/internal/rate"
	"github.com/pondokdigital/pesantren-api/internal/santri"
	migrations "github.com/pondokdigital/pesantren-api/migrations/postgres"
)

var version = "dev"

func main() {
	var (
		configPath string
		envFile    string
		cfg        *config.Config
	)

	root := &cobra.Command{
		Use:           "pesantren-api",
		Short:         "Role-gated API for the pesantren management app",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load(envFile)

			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}

			logger.Init(logger.Config{
				Env:         cfg.App.Env,
				Level:       cfg.Log.Level,
				ServiceName: "pesantren-api",
				Version:     version,
			})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "configs/config.yaml", "path to YAML config")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to env file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), cfg)
		},
	}

	root.AddCommand(serveCmd, migrateCmd)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		logger.L().Error("command failed", logger.Err(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func runServe(ctx context.Context, cfg *config.Config) error {
	log := logger.L().With(logger.Component("bootstrap"))

	// Identity resolver
	var resolver identity.Resolver
	switch cfg.Auth.Mode {
	case "oidc":
		r, err := identity.NewOIDCResolver(ctx, cfg.Auth.Issuer, cfg.Auth.Audience)
		if err != nil {
			return err
		}
		resolver = r
	case "hs256":
		r, err := identity.NewHS256Resolver(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Audience)
		if err != nil {
			return err
		}
		resolver = r
	default:
		return fmt.Errorf("unknown auth mode %q", cfg.Auth.Mode)
	}

	// Stores. Without a DSN the service runs on in-memory stores, which is
	// only useful for local development.
	var (
		profiles profile.Store
		roster   santri.Store
		kas      keuangan.Store
		pool     *pgxpool.Pool
	)
	if cfg.Storage.DSN != "" {
		pg, err := profile.NewPGStore(ctx, profile.PGConfig{
			DSN:             cfg.Storage.DSN,
			MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Storage.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
		})
		if err != nil {
			return err
		}
		defer pg.Close()

		pool = pg.Pool()
		profiles = pg
		roster = santri.NewPGStore(pool)
		kas = keuangan.NewPGStore(pool)
		log.Info("postgres connected")
	} else {
		log.Warn("no database DSN configured, using in-memory stores")
		profiles = profile.NewMemoryStore()
		roster = santri.NewMemoryStore()
		kas = keuangan.NewMemoryStore()
	}

	// Redis, rate limiters
	var (
		redisClient   *rdb.Client
		globalLimiter rate.Limiter
		switchLimiter rate.Limiter
	)
	if cfg.Redis.Enabled {
		redisClient = rdb.NewClient(&rdb.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		defer func() { _ = redisClient.Close() }()
		log.Info("redis connected", logger.String("addr", cfg.Redis.Addr))
	}
	if cfg.Rate.Enabled {
		window := config.MustDuration(cfg.Rate.Window, 0)
		swWindow := config.MustDuration(cfg.Rate.Switch.Window, 0)
		if redisClient != nil {
			globalLimiter = rate.NewRedisLimiter(redisClient, cfg.Redis.Prefix+"rl:", cfg.Rate.MaxRequests, window)
			switchLimiter = rate.NewRedisLimiter(redisClient, cfg.Redis.Prefix+"rl:switch:", cfg.Rate.Switch.Limit, swWindow)
		} else {
			globalLimiter = rate.NewMemoryLimiter(cfg.Rate.MaxRequests, window)
			switchLimiter = rate.NewMemoryLimiter(cfg.Rate.Switch.Limit, swWindow)
		}
	}

	// Health monitor
	probes := []health.Probe{
		{Name: "postgres", Check: profiles.Ping},
	}
	if redisClient != nil {
		probes = append(probes, health.Probe{Name: "redis", Check: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})
	}
	monitor := health.NewMonitor(
		config.MustDuration(cfg.Health.ProbeInterval, 0),
		config.MustDuration(cfg.Health.ProbeTimeout, 0),
		probes...,
	)
	monitor.Start(ctx)
	defer monitor.Stop()

	metricsHandler, err := metrics.RegisterMetrics(metrics.Config{
		Pool: func() *pgxpool.Pool { return pool },
	})
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	handler := router.New(router.Deps{
		Resolver:           resolver,
		Profiles:           profiles,
		Santri:             roster,
		Keuangan:           kas,
		Monitor:            monitor,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		GlobalLimiter:      globalLimiter,
		SwitchLimiter:      switchLimiter,
	})

	srv := server.New(server.Options{
		Addr:            cfg.Server.Addr,
		Handler:         handler,
		ReadTimeout:     config.MustDuration(cfg.Server.ReadTimeout, 0),
		WriteTimeout:    config.MustDuration(cfg.Server.WriteTimeout, 0),
		ShutdownTimeout: config.MustDuration(cfg.Server.ShutdownTimeout, 0),
	})

	log.Info("service starting",
		logger.String("env", cfg.App.Env),
		logger.String("auth_mode", cfg.Auth.Mode),
		logger.String("version", version),
	)
	return srv.Run(ctx)
}

func runMigrate(ctx context.Context, cfg *config.Config) error {
	if cfg.Storage.DSN == "" {
		return fmt.Errorf("migrate requires a database DSN")
	}

	pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
	if err != nil {
		return fmt.Errorf("pgxpool: %w", err)
	}
	defer pool.Close()

	res, err := migrate.New(migrations.FS, migrations.Dir).Run(ctx, pool)
	if err != nil {
		return err
	}

	logger.L().Info("migrations completed",
		logger.Count(len(res.Applied)),
		logger.Int("skipped", len(res.Skipped)),
		logger.DurationMs(res.Duration.Milliseconds()),
	)
	return nil
}
