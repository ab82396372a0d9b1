package ports

import (
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
)

// TransitionRecord is the result of an accepted local transition: the order
// moved from FromStatus to ToStatus and its version is now Version. The
// pre-transition version the backend must check against is Version-1.
type TransitionRecord struct {
	OrderID    kernel.UUID
	FromStatus order.Status
	ToStatus   order.Status
	Version    int64
}

// ExpectedVersion returns the pre-transition version carried on the push.
func (r TransitionRecord) ExpectedVersion() int64 {
	return r.Version - 1
}

// TransitionPusher accepts locally-accepted transitions for delivery to the
// backend. Implemented by the sync engine; the propose handler reserves the
// pending slot here before applying its optimistic store update.
type TransitionPusher interface {
	// EnqueuePush schedules the transition for asynchronous delivery with
	// retry. Returns an error only when the transition cannot be accepted
	// at all (e.g. one is already pending for the order).
	EnqueuePush(record TransitionRecord) error

	// HasPending reports whether a push is currently in flight for the
	// given order.
	HasPending(orderID kernel.UUID) bool
}
