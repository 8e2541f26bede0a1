package memory

import (
	"context"
	"sync"
)

// SentNotification records a single Notifier.Send call.
type SentNotification struct {
	To      string
	Subject string
	Body    string
}

// Notifier records notifications instead of delivering them. Tests
// inspect Sent() to assert exactly-once delivery; FailWith forces the
// next Send to return an error so the save-then-notify policy can be
// exercised.
type Notifier struct {
	mu   sync.Mutex
	sent []SentNotification
	err  error
}

// NewNotifier returns an empty recording notifier.
func NewNotifier() *Notifier { return &Notifier{} }

// Send records the notification, or returns the configured error
// without recording anything.
func (n *Notifier) Send(_ context.Context, to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, SentNotification{To: to, Subject: subject, Body: body})
	return nil
}

// FailWith makes every subsequent Send return err. Pass nil to restore
// normal recording.
func (n *Notifier) FailWith(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.err = err
}

// Sent returns a copy of all recorded notifications.
func (n *Notifier) Sent() []SentNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]SentNotification, len(n.sent))
	copy(out, n.sent)
	return out
}
