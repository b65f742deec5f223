package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"food-delivery/internal/config"
	"food-delivery/internal/notify"
	"food-delivery/internal/queue"
	mongostore "food-delivery/internal/store/mongo"
	"food-delivery/internal/worker"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := newLogger(cfg)
	defer logger.Sync() //nolint:errcheck

	if cfg.RabbitMQURL == "" {
		logger.Fatalw("worker: RABBITMQ_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	broker, err := queue.NewRabbitMQBroker(queue.Config{URL: cfg.RabbitMQURL, PrefetchCount: cfg.RabbitMQPrefetchCount}, logger)
	if err != nil {
		logger.Fatalw("connect to rabbitmq", "error", err)
	}
	defer broker.Close()

	var audits worker.AuditStore
	if cfg.MongoURI != "" {
		storage, err := mongostore.New(ctx, mongostore.Config{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
		if err != nil {
			logger.Fatalw("connect to mongo", "error", err)
		}
		defer storage.Close(context.Background()) //nolint:errcheck
		if err := storage.CreateIndexes(ctx); err != nil {
			logger.Fatalw("create mongo indexes", "error", err)
		}
		audits = mongostore.NewOrderStatusAuditRepository(storage.Database())
	}

	var webhook worker.Notifier
	if cfg.StatusWebhookURL != "" {
		webhook = notify.NewWebhook(cfg.StatusWebhookURL, &http.Client{Timeout: cfg.WebhookTimeout})
	}

	w := worker.NewOrderStatusWorker(broker, audits, webhook, logger)
	if err := w.Start(ctx); err != nil {
		logger.Fatalw("start worker", "error", err)
	}
	<-ctx.Done()
	logger.Infow("worker: stopped")
}

func newLogger(cfg config.Config) *zap.SugaredLogger {
	build := zap.NewProduction
	if cfg.Development() {
		build = zap.NewDevelopment
	}
	l, err := build()
	if err != nil {
		panic(err)
	}
	return l.Sugar()
}
