package events

import (
	"context"
	"strconv"
	"time"

	"tablebot/pkg/kafka"
	"tablebot/pkg/model"
)

type EventType string

const (
	BookingCreated   EventType = "booking.created"
	BookingUpdated   EventType = "booking.updated"
	BookingCancelled EventType = "booking.cancelled"

	SchemaVersion = "1"
)

// Event is the JSON body published for every booking change.
type Event struct {
	Type       EventType      `json:"type"`
	Booking    *model.Booking `json:"booking"`
	Field      string         `json:"field,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type conversationKey struct{}

// WithConversationID tags ctx so published events carry the conversation
// that caused them.
func WithConversationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, conversationKey{}, id)
}

func ConversationID(ctx context.Context) string {
	id, _ := ctx.Value(conversationKey{}).(string)
	return id
}

type KafkaPublisher struct {
	producer MessagePublisher
	source   string
}

func NewKafkaPublisher(producer MessagePublisher, source string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, source: source}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	msg, err := kafka.NewMessage(strconv.FormatInt(event.Booking.ID, 10), event,
		kafka.WithEventType(string(event.Type)),
		kafka.WithSchemaVersion(SchemaVersion),
		kafka.WithSource(p.source),
		kafka.WithConversationID(ConversationID(ctx)),
		kafka.WithTimestamp(event.OccurredAt),
	)
	if err != nil {
		return err
	}

	return p.producer.Publish(ctx, msg)
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
