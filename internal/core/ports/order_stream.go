package ports

import (
	"context"

	"orderboard/internal/core/domain/model/order"
)

// OrderStream is the optional push channel delivering order snapshots on any
// server-side change, so other clients' transitions show up without waiting
// for the next poll. The pull path remains the baseline: correctness never
// depends on the stream being connected.
type OrderStream interface {
	// Run subscribes to the channel and feeds every received snapshot to
	// sink until the context is cancelled. Returns the subscription error
	// on failure; returning is not fatal to the board session.
	Run(ctx context.Context, sink func(*order.Order)) error
}
