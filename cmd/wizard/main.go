// cmd/wizard/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"loan-wizard/internal/api"
	"loan-wizard/internal/archive"
	"loan-wizard/internal/common/config"
	"loan-wizard/internal/common/database"
	"loan-wizard/internal/common/logger"
	"loan-wizard/internal/common/observability"
	"loan-wizard/internal/draft"
	"loan-wizard/internal/notify"
	"loan-wizard/internal/wizard"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting loan wizard...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Draft store ---
	var store draft.Store
	switch cfg.Storage.Backend {
	case "redis":
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Storage.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")

		store = draft.NewRedisStore(redis, uuid.New().String(), log)
	default:
		store, err = draft.NewFileStore(cfg.Storage.File.Dir, log)
		if err != nil {
			zapLog.Fatal("file store init failed", zap.Error(err))
		}
	}

	// --- Archive (optional) ---
	var recorder *archive.Recorder
	if cfg.Archive.Enabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")

		var indexer *archive.Indexer
		if cfg.Archive.Indexing {
			var esClient *database.ElasticsearchClient
			err = retryWithBackoff(func() error {
				var err error
				esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
				if err != nil {
					return err
				}
				return esClient.Ping()
			}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
			if err != nil {
				zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
			}
			zapLog.Info("Elasticsearch connected successfully")

			indexer = archive.NewIndexer(esClient, cfg.Archive.Index, log)
		}

		recorder = archive.NewRecorder(pg.GetDB(), indexer, log)
	}

	// --- Notifiers ---
	notifiers := notify.Multi{notify.NewLogNotifier(log)}
	if cfg.Notifications.Email.Enabled || cfg.Notifications.SMS.Enabled {
		awsNotifier, err := notify.NewAWSNotifier(ctx, cfg.Notifications, log)
		if err != nil {
			zapLog.Fatal("AWS notifier init failed", zap.Error(err))
		}
		notifiers = append(notifiers, awsNotifier)
	}

	// --- Sequencer ---
	opts := []wizard.Option{wizard.WithObservability(obs)}
	if recorder != nil {
		opts = append(opts, wizard.WithRecorder(recorder))
	}
	seq := wizard.New(store, notifiers, log, opts...)
	if err := seq.Start(ctx); err != nil {
		zapLog.Fatal("wizard start failed", zap.Error(err))
	}

	// --- HTTP server ---
	server := api.NewServer(cfg.Server, seq, log)
	go func() {
		if err := server.Start(); err != nil {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP shutdown failed", zap.Error(err))
	}
	zapLog.Info("Shutdown complete")
}
