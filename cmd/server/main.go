package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sheikh-saqib/personal-ledger-service/internal/accounts"
	"github.com/sheikh-saqib/personal-ledger-service/internal/config"
	"github.com/sheikh-saqib/personal-ledger-service/internal/events/kafka"
	"github.com/sheikh-saqib/personal-ledger-service/internal/httpapi"
	interfaces "github.com/sheikh-saqib/personal-ledger-service/internal/interfaces"
	"github.com/sheikh-saqib/personal-ledger-service/internal/ledger"
	"github.com/sheikh-saqib/personal-ledger-service/internal/logging"
	"github.com/sheikh-saqib/personal-ledger-service/internal/session"
	"github.com/sheikh-saqib/personal-ledger-service/internal/storage/memory"
	"github.com/sheikh-saqib/personal-ledger-service/internal/storage/postgres"
	"github.com/sheikh-saqib/personal-ledger-service/internal/validation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	var (
		credentials interfaces.CredentialStore
		entries     interfaces.LedgerStore
	)

	switch cfg.StoreDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		credentials = memory.NewMemoryCredentialStore()
		entries = memory.NewMemoryLedgerStore()
	default:
		db, err := openDatabase(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("close database", zap.Error(err))
			}
		}()
		credentials = postgres.NewPostgresCredentialStore(db, cfg.StoreTimeout)
		entries = postgres.NewPostgresLedgerStore(db, cfg.StoreTimeout)
	}

	var publisher interfaces.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kp := kafka.NewPublisher(cfg.KafkaBrokers)
		defer func() {
			if err := kp.Close(); err != nil {
				logger.Error("close kafka publisher", zap.Error(err))
			}
		}()
		publisher = kp
		logger.Info("publishing ledger events", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
	}

	sessions := session.Config{Secret: []byte(cfg.JWTSecret), TTL: cfg.JWTExpiresIn}
	validator, err := validation.New()
	if err != nil {
		return err
	}

	api := httpapi.NewAPI(
		accounts.NewService(credentials, session.NewIssuer(credentials, sessions), cfg.BcryptCost, logger),
		ledger.NewLedger(entries, publisher, cfg.KafkaTopic, logger),
		session.NewValidator(credentials, sessions),
		validator,
		logger,
	)
	app := httpapi.NewApp(api, httpapi.Options{
		Production:    cfg.Production(),
		CORSOrigin:    cfg.CORSOrigin,
		AuthRateLimit: cfg.AuthRateLimit,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("listener returned", zap.Error(err))
	}
	return nil
}

func openDatabase(ctx context.Context, cfg config.Config, logger *zap.Logger) (*sql.DB, error) {
	if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
		return nil, err
	}

	db, err := postgres.Open(ctx, postgres.Config{
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		Timeout:         cfg.StoreTimeout,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("connected to postgres", zap.Int("max_open_conns", cfg.MaxOpenConns))
	return db, nil
}
