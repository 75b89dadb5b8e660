package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	HeaderEventID        = "event_id"
	HeaderEventType      = "event_type"
	HeaderConversationID = "conversation_id"
	HeaderSchemaVersion  = "schema_version"
	HeaderSource         = "source"
)

// Message is a record handed to the producer. Topic is set by the producer.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Topic     string
	Timestamp time.Time
}

// Option sets an optional part of a message.
type Option func(*Message)

// NewMessage JSON-encodes value under key. Every message gets a fresh
// event id and the current time unless an option overrides them.
func NewMessage(key string, value any, opts ...Option) (Message, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return Message{}, fmt.Errorf("failed to encode message value: %w", err)
	}

	msg := Message{
		Key:       key,
		Value:     data,
		Headers:   map[string]string{HeaderEventID: uuid.NewString()},
		Timestamp: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&msg)
	}
	return msg, nil
}

func WithHeader(key, value string) Option {
	return func(m *Message) {
		if value != "" {
			m.Headers[key] = value
		}
	}
}

func WithEventType(eventType string) Option { return WithHeader(HeaderEventType, eventType) }

// WithConversationID is a no-op for an empty id.
func WithConversationID(id string) Option { return WithHeader(HeaderConversationID, id) }

func WithSchemaVersion(version string) Option { return WithHeader(HeaderSchemaVersion, version) }

func WithSource(source string) Option { return WithHeader(HeaderSource, source) }

func WithTimestamp(ts time.Time) Option {
	return func(m *Message) { m.Timestamp = ts }
}

func (m *Message) DecodeValue(v any) error {
	return json.Unmarshal(m.Value, v)
}

func (m *Message) EventID() string {
	return m.Headers[HeaderEventID]
}

func (m *Message) EventType() string {
	return m.Headers[HeaderEventType]
}
