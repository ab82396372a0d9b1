package ports

import (
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
)

// OrderStore is the authoritative in-memory projection of all visible orders,
// keyed by order ID. It is the single source of truth for the UI and the only
// mutable shared resource within a client; all writes flow through Upsert so
// last-writer-wins-by-version is enforced at one choke point.
type OrderStore interface {
	// Get retrieves a clone of the order with the given ID.
	// The second return value reports whether the order is present.
	Get(id kernel.UUID) (*order.Order, bool)

	// Snapshot returns clones of all orders currently held.
	// Order of the result is unspecified; callers needing determinism
	// project through the LaneProjector.
	Snapshot() []*order.Order

	// Upsert applies an order snapshot using replace-if-newer-version
	// semantics: an incoming version lower than or equal to the held
	// version is a silent no-op. Returns true and emits exactly one change
	// event when state actually changed. Upsert is idempotent and
	// commutative with respect to version, so applying updates out of
	// arrival order never regresses state.
	Upsert(o *order.Order) bool

	// Correct replaces the held order with an authoritative snapshot,
	// bypassing the version gate. The gate exists to discard out-of-order
	// network arrivals; a rollback must instead overwrite a repudiated
	// optimistic copy whose version the server never granted. Returns true
	// and emits a change event unless the snapshot matches the held state.
	// Only the sync engine's rollback path may call this.
	Correct(o *order.Order) bool

	// Remove deletes the order with the given ID.
	// Returns true and emits a change event if the order was present.
	Remove(id kernel.UUID) bool

	// Subscribe registers a listener invoked after every effective change.
	// The returned function unsubscribes the listener. Listeners must not
	// call back into the store's mutating methods.
	Subscribe(listener func()) (unsubscribe func())

	// Revision returns a counter that increments on every effective
	// change. Consumers use it to detect whether a recompute is needed.
	Revision() uint64
}
