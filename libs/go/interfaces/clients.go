package interfaces

import (
	"context"
)

// MessagePublisher sends a message body to a queue and returns the message id
type MessagePublisher interface {
	Publish(ctx context.Context, body []byte, attributes map[string]string) (string, error)
}
