package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/spotme/spotme-api/internal/config"
)

const (
	TopicAuthEvents      = "auth.events"
	TopicPortfolioEvents = "portfolio.events"
)

const (
	AuthEventTypeSignedUp       = "user.signed_up"
	AuthEventTypeResetRequested = "user.reset_requested"

	PortfolioEventTypePublished = "portfolio.published"
	PortfolioEventTypeDeleted   = "portfolio.deleted"
)

// AuthEventPayload is consumed by the mailer worker to deliver confirmation
// and password-reset emails out of band.
type AuthEventPayload struct {
	EventType string     `json:"event_type"`
	UserID    uuid.UUID  `json:"user_id"`
	Email     string     `json:"email"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// PortfolioEventPayload is consumed by the cache worker to keep the
// published-portfolio cache in step with durable storage. PreviousSlug is
// set when a republish moved the portfolio to a new slug; the cache entry
// for the old slug must be dropped.
type PortfolioEventPayload struct {
	EventType    string    `json:"event_type"`
	PortfolioID  uuid.UUID `json:"portfolio_id"`
	UserID       uuid.UUID `json:"user_id"`
	Slug         string    `json:"slug"`
	PreviousSlug string    `json:"previous_slug,omitempty"`
}

type ProducerClient struct {
	AuthEventsWriter      *kafka.Writer
	PortfolioEventsWriter *kafka.Writer
}

func NewProducerClient(cfg config.Config) (*ProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	authWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicAuthEvents,
		Balancer: &kafka.LeastBytes{},
	}

	portfolioWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicPortfolioEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &ProducerClient{
		AuthEventsWriter:      authWriter,
		PortfolioEventsWriter: portfolioWriter,
	}, nil
}

func (c *ProducerClient) PublishAuthEvent(ctx context.Context, payload AuthEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal auth event: %w", err)
	}
	return c.AuthEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.UserID.String()),
		Value: value,
	})
}

func (c *ProducerClient) PublishPortfolioEvent(ctx context.Context, payload PortfolioEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal portfolio event: %w", err)
	}
	return c.PortfolioEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.Slug),
		Value: value,
	})
}

func (c *ProducerClient) Close() {
	if c.AuthEventsWriter != nil {
		c.AuthEventsWriter.Close()
	}
	if c.PortfolioEventsWriter != nil {
		c.PortfolioEventsWriter.Close()
	}
}
