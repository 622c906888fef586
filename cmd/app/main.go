package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	"dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/jobs"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "dispatch",
		Short:        "Tour dispatch and shipment lifecycle service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML file overriding environment settings")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API and the scheduled jobs",
			RunE: func(c *cobra.Command, _ []string) error {
				return withApp(c.Context(), configPath, serve)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or extend the database schema",
			RunE: func(c *cobra.Command, _ []string) error {
				return withApp(c.Context(), configPath, func(_ context.Context, a *app) error {
					if err := postgres.Migrate(a.db); err != nil {
						return fmt.Errorf("migrate: %w", err)
					}
					a.logger.Info("schema is up to date")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "audit",
			Short: "Check the allocation table once and exit non-zero on anomalies",
			RunE: func(c *cobra.Command, _ []string) error {
				return withApp(c.Context(), configPath, func(ctx context.Context, a *app) error {
					anomalies, err := a.root.CreateAllocationAuditJob().RunOnce(ctx)
					if err != nil {
						return err
					}
					if len(anomalies) > 0 {
						return fmt.Errorf("%d allocation anomalies found", len(anomalies))
					}
					a.logger.Info("allocations consistent")
					return nil
				})
			},
		},
	)
	return root
}

type app struct {
	cfg    cmd.Config
	logger *logrus.Logger
	db     *gorm.DB
	rdb    *redis.Client
	root   cmd.CompositionRoot
}

func withApp(ctx context.Context, configPath string, run func(context.Context, *app) error) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := cmd.LoadConfig(configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	db, err := openDatabase(cfg, logger)
	if err != nil {
		return err
	}
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		defer sqlDB.Close()
	}

	var rdb *redis.Client
	if cfg.RedisAddress != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddress})
		defer rdb.Close()
		if err = rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
	}

	a := &app{cfg: cfg, logger: logger, db: db, rdb: rdb}
	// A nil *redis.Client must not reach the root as a non-nil interface.
	if rdb != nil {
		a.root = cmd.NewCompositionRoot(cfg, db, rdb, logger)
	} else {
		a.root = cmd.NewCompositionRoot(cfg, db, nil, logger)
	}
	return run(ctx, a)
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	logger.SetOutput(os.Stdout)
	if lvl, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

func openDatabase(cfg cmd.Config, logger logrus.FieldLogger) (*gorm.DB, error) {
	db, err := gorm.Open(pgdriver.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err = db.Use(otelgorm.NewPlugin(
		otelgorm.WithTracerProvider(otel.GetTracerProvider()),
		otelgorm.WithDBName(cfg.DBName),
	)); err != nil {
		logger.WithError(err).Warn("database tracing disabled")
	}
	return db, nil
}

func serve(ctx context.Context, a *app) error {
	spec, err := http.LoadSpec(ctx)
	if err != nil {
		return err
	}
	server := http.NewServer(a.root.HTTPHandlers())
	e := http.NewRouter(server, spec, a.logger.WithField("component", "http"), echoLevel(a.logger.GetLevel()))

	manager := jobs.NewJobManager()
	if a.cfg.AuditSchedule != "" {
		manager = jobs.NewJobManager(a.root.CreateAllocationAuditJob())
	}
	if err = manager.StartAll(); err != nil {
		return err
	}
	defer manager.StopAll()

	errCh := make(chan error, 1)
	go func() {
		a.logger.WithField("port", a.cfg.HTTPPort).Info("http server listening")
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", a.cfg.HTTPPort))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.logger.Info("shutting down")
	return e.Shutdown(shutdownCtx)
}

func echoLevel(level logrus.Level) log.Lvl {
	switch {
	case level >= logrus.DebugLevel:
		return log.DEBUG
	case level == logrus.InfoLevel:
		return log.INFO
	case level == logrus.WarnLevel:
		return log.WARN
	default:
		return log.ERROR
	}
}
