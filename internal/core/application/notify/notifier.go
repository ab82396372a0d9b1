// Package notify fans out non-blocking board notifications to the UI layer:
// board changes, conflicts resolved against the backend, and exhausted sync
// retries. No notification is fatal to the board session.
package notify

import (
	"sync"
	"time"
)

// Kind classifies a notification.
type Kind string

const (
	// BoardChanged signals that the order store changed and lanes should
	// be re-read.
	BoardChanged Kind = "board_changed"

	// ConflictResolved signals that another staff member already moved an
	// order; the local view has been corrected to the server's state.
	ConflictResolved Kind = "conflict_resolved"

	// SyncFailed signals that a push exhausted its retries; the optimistic
	// change was rolled back to the server's state.
	SyncFailed Kind = "sync_failed"
)

// Notification is one event surfaced to the UI.
type Notification struct {
	Kind       Kind
	OrderID    string
	Message    string
	OccurredAt time.Time
}

// Notifier delivers notifications to subscribers and keeps a bounded buffer
// for consumers that poll instead of subscribing (the HTTP notifications
// endpoint). Publish never blocks on slow consumers.
type Notifier struct {
	mu        sync.Mutex
	listeners map[int]func(Notification)
	nextToken int
	buffer    []Notification
	maxBuffer int
}

// NewNotifier creates a notifier whose poll buffer keeps at most maxBuffer
// undrained notifications, discarding the oldest on overflow.
func NewNotifier(maxBuffer int) *Notifier {
	if maxBuffer <= 0 {
		maxBuffer = 100
	}
	return &Notifier{
		listeners: make(map[int]func(Notification)),
		maxBuffer: maxBuffer,
	}
}

// Publish delivers the notification to all subscribers and appends it to the
// poll buffer.
func (n *Notifier) Publish(notification Notification) {
	n.mu.Lock()
	n.buffer = append(n.buffer, notification)
	if len(n.buffer) > n.maxBuffer {
		n.buffer = n.buffer[len(n.buffer)-n.maxBuffer:]
	}
	listeners := make([]func(Notification), 0, len(n.listeners))
	for _, fn := range n.listeners {
		listeners = append(listeners, fn)
	}
	n.mu.Unlock()

	for _, fn := range listeners {
		fn(notification)
	}
}

// Subscribe registers a listener and returns its unsubscribe function.
func (n *Notifier) Subscribe(listener func(Notification)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	token := n.nextToken
	n.nextToken++
	n.listeners[token] = listener

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, token)
	}
}

// Drain removes and returns up to max buffered notifications, oldest first.
// A non-positive max drains everything.
func (n *Notifier) Drain(max int) []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	if max <= 0 || max > len(n.buffer) {
		max = len(n.buffer)
	}
	out := make([]Notification, max)
	copy(out, n.buffer[:max])
	n.buffer = n.buffer[max:]
	return out
}
