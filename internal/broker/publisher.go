package broker

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"cataloger/internal/logger"
	"cataloger/internal/models"

	"github.com/segmentio/kafka-go"
)

const (
	EventProductPublished = "product.published"
	EventSyncCompleted    = "sync.completed"
)

type Event struct {
	Type      string                 `json:"type"`
	ProductID string                 `json:"product_id,omitempty"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
}

// Publisher writes pipeline events to Kafka. Callers treat publishing as
// fire-and-forget and log failures.
type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewPublisher(brokers, topic string, logger *logger.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}
	return &Publisher{writer: writer, logger: logger}
}

func (p *Publisher) publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Type),
		Value: value,
	})
}

func (p *Publisher) PublishProductPublished(ctx context.Context, product *models.Product) error {
	return p.publish(ctx, Event{
		Type:      EventProductPublished,
		ProductID: product.ID,
		Data: map[string]interface{}{
			"title":  product.Title,
			"woo_id": product.WooID,
			"images": product.Images,
		},
		Timestamp: time.Now(),
	})
}

func (p *Publisher) PublishSyncCompleted(ctx context.Context, total, processed int) error {
	return p.publish(ctx, Event{
		Type: EventSyncCompleted,
		Data: map[string]interface{}{
			"total":     total,
			"processed": processed,
		},
		Timestamp: time.Now(),
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
