package notification

import "context"

// Message is an outbound side-channel message (today: email).
type Message struct {
	To      string // recipient address
	Subject string
	Body    string
}

// Notifier delivers side-channel messages. Delivery is best-effort; callers
// log failures rather than propagate them.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
