package kafka

import (
	"context"
	"time"

	"tablebot/pkg/logger"
)

// LoggingMiddleware records every publish attempt and its outcome.
func LoggingMiddleware(log *logger.Logger) ProducerMiddleware {
	return func(ctx context.Context, msg Message, next func(ctx context.Context, msg Message) error) error {
		start := time.Now()
		err := next(ctx, msg)

		attrs := []any{
			"topic", msg.Topic,
			"key", msg.Key,
			"event_id", msg.EventID(),
			"event_type", msg.EventType(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if err != nil {
			log.Error("Failed to publish message", append(attrs, "error", err)...)
			return err
		}
		log.Debug("Published message", attrs...)
		return nil
	}
}
