package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/bookie-app/bookie-api/internal/logger"
	"github.com/bookie-app/bookie-api/internal/models"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// publishAuditEvent publishes an audit event to Kafka. Publishing is
// best-effort: a nil writer skips it and failures are logged, never
// surfaced to the request.
func publishAuditEvent(ctx context.Context, w KafkaWriter, event models.AuditEvent) {
	if w == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping audit event", "event", event.Event)
		return
	}

	event.EventID = uuid.NewString()
	event.Timestamp = time.Now().Unix()

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal audit event", "event", event.Event, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish audit event", "event", event.Event, "error", err)
	} else {
		logger.Log.Infow("Audit event published", "event", event.Event, "event_id", event.EventID)
	}
}
