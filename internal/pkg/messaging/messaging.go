package messaging

import (
	"context"
	"io"
	"time"
)

// Messaging is a broker-agnostic client that can publish messages.
type Messaging interface {
	io.Closer

	// Publish sends a message to the destination (topic/subject/queue).
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// OutgoingMessage represents a broker-agnostic message to be published.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte

	// Headers support arbitrary binary values and duplicate keys.
	Headers []Header
}

// Header is a key/value pair used for message headers.
type Header struct {
	// Key is the header name.
	Key string
	// Value is the header value.
	Value []byte
}

// PublishResult carries optional broker-specific publish metadata.
type PublishResult struct {
	// MessageID is the broker-assigned message ID, when exposed.
	MessageID string

	// Topic is the destination the message was published to.
	Topic string

	// Timestamp is when the broker accepted the message.
	Timestamp time.Time
}
