package notification

import "context"

type MockNotifier struct {
	SentMessages []Message
}

func (m *MockNotifier) Send(ctx context.Context, msg Message) error {
	m.SentMessages = append(m.SentMessages, msg)
	return nil
}
