package ports

import (
	"context"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
)

// PendingTransition is the ephemeral record of a locally-accepted transition
// that has not yet been acknowledged by the backend. It exists from the drop
// event until server ack or rollback, and is owned exclusively by the sync
// engine.
type PendingTransition struct {
	OrderID         kernel.UUID
	FromStatus      order.Status
	ToStatus        order.Status
	ExpectedVersion int64
	ClientRequestID kernel.UUID
	SubmittedAt     time.Time
}

// TransitionJournal durably records pending transitions so an accepted drop
// survives a process restart: journaled entries are replayed on startup with
// their original client request IDs, preserving the at-most-once effect.
type TransitionJournal interface {
	// Append persists a pending transition.
	Append(ctx context.Context, pending PendingTransition) error

	// Delete removes the entry with the given client request ID.
	// Deleting an absent entry is not an error.
	Delete(ctx context.Context, clientRequestID kernel.UUID) error

	// Pending returns all journaled transitions, oldest first.
	Pending(ctx context.Context) ([]PendingTransition, error)
}
