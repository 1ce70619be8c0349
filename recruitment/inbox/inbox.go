package inbox

import (
	"context"
	"slices"
	"sync"

	"github.com/Abraxas-365/hireflow/pkg/kernel"
)

// Inbox holds unread messages per user. Delivering a text that is already
// unread for that user is a no-op.
type Inbox interface {
	Deliver(ctx context.Context, userID kernel.UserID, text string) error
	// Drain returns the unread messages in delivery order and clears them.
	Drain(ctx context.Context, userID kernel.UserID) ([]string, error)
}

// Message is a pending delivery.
type Message struct {
	UserID kernel.UserID
	Text   string
}

// Outbox collects messages raised while a command runs, so they reach the
// inbox only once the command has succeeded.
type Outbox struct {
	pending []Message
}

func (o *Outbox) ReceiveMessage(userID kernel.UserID, text string) {
	o.pending = append(o.pending, Message{UserID: userID, Text: text})
}

func (o *Outbox) Len() int { return len(o.pending) }

// Discard drops everything collected so far.
func (o *Outbox) Discard() { o.pending = nil }

// Flush hands the collected messages to in and empties the outbox. It keeps
// going past failures and returns the messages that could not be delivered.
func (o *Outbox) Flush(ctx context.Context, in Inbox) []Message {
	var failed []Message
	for _, m := range o.pending {
		if err := in.Deliver(ctx, m.UserID, m.Text); err != nil {
			failed = append(failed, m)
		}
	}
	o.pending = nil
	return failed
}

// MemoryInbox keeps messages in process memory.
type MemoryInbox struct {
	mu       sync.Mutex
	messages map[kernel.UserID][]string
}

var _ Inbox = (*MemoryInbox)(nil)

func NewMemoryInbox() *MemoryInbox {
	return &MemoryInbox{messages: make(map[kernel.UserID][]string)}
}

func (m *MemoryInbox) Deliver(ctx context.Context, userID kernel.UserID, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if slices.Contains(m.messages[userID], text) {
		return nil
	}
	m.messages[userID] = append(m.messages[userID], text)
	return nil
}

func (m *MemoryInbox) Drain(ctx context.Context, userID kernel.UserID) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.messages[userID]
	delete(m.messages, userID)
	if out == nil {
		out = []string{}
	}
	return out, nil
}
