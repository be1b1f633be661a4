package main

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/spotme/spotme-api/adapters/event"
	"github.com/spotme/spotme-api/adapters/persistence"
	mailerUC "github.com/spotme/spotme-api/internal/application/usecase/mailer"
	portfolioUC "github.com/spotme/spotme-api/internal/application/usecase/portfolio"
	"github.com/spotme/spotme-api/internal/config"
	"github.com/spotme/spotme-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting SpotMe worker...")

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect to Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect to Redis", err)
	}
	defer redisClient.Close()

	portfolioRepo := persistence.NewPostgresPortfolioRepo(dbPool)
	documentCache := persistence.NewRedisDocumentCache(redisClient)

	processAuthUC := mailerUC.NewProcessAuthEventUseCase(cfg.App.PublicBaseURL, appLogger)
	processPortfolioUC := portfolioUC.NewProcessPortfolioEventUseCase(portfolioRepo, documentCache, appLogger)

	ctx := context.Background()
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		consumeAuthEvents(ctx, cfg, processAuthUC, appLogger)
	}()
	go func() {
		defer wg.Done()
		consumePortfolioEvents(ctx, cfg, processPortfolioUC, appLogger)
	}()
	wg.Wait()
}

func consumeAuthEvents(ctx context.Context, cfg config.Config, uc *mailerUC.ProcessAuthEventUseCase, appLogger logger.Logger) {
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicAuthEvents,
		GroupID:  "mailer-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicAuthEvents))

	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			appLogger.Error("Failed to read message from Kafka", err, zap.String("topic", event.TopicAuthEvents))
			continue
		}

		var payload event.AuthEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Error("Failed to unmarshal auth event, skipping", err)
			commitMessage(consumer, msg, appLogger)
			continue
		}

		if err := uc.Execute(ctx, payload); err != nil {
			appLogger.Error("Failed to process auth event", err, zap.String("event_type", payload.EventType))
			continue
		}

		commitMessage(consumer, msg, appLogger)
	}
}

func consumePortfolioEvents(ctx context.Context, cfg config.Config, uc *portfolioUC.ProcessPortfolioEventUseCase, appLogger logger.Logger) {
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicPortfolioEvents,
		GroupID:  "cache-warmer-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicPortfolioEvents))

	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			appLogger.Error("Failed to read message from Kafka", err, zap.String("topic", event.TopicPortfolioEvents))
			continue
		}

		var payload event.PortfolioEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Error("Failed to unmarshal portfolio event, skipping", err)
			commitMessage(consumer, msg, appLogger)
			continue
		}

		if err := uc.Execute(ctx, payload); err != nil {
			appLogger.Error("Failed to process portfolio event", err, zap.String("slug", payload.Slug))
			continue
		}

		commitMessage(consumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, appLogger logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		appLogger.Error("Failed to commit message", err)
	}
}
