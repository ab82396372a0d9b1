package ports

import (
	"context"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
)

// TransitionPush is the wire-level request for advancing an order on the
// backend. ExpectedVersion is the pre-transition version the client observed;
// ClientRequestID is the idempotency key, reused verbatim across retries so a
// server that receives a duplicate treats it as already applied.
type TransitionPush struct {
	OrderID         kernel.UUID
	ToStatus        order.Status
	ExpectedVersion int64
	ClientRequestID kernel.UUID
}

// OrdersGateway is the outbound contract to the Orders service, the source of
// truth for order records.
//
// Error classification (checked with errors.Is):
//   - errs.ErrVersionConflict: the server rejected the push with 409
//   - errs.ErrIllegalTransition: the server rejected the push with 422
//   - errs.ErrObjectNotFound: the order is absent server-side (404)
//   - anything else: network failure or timeout, retryable
type OrdersGateway interface {
	// ListOrders fetches snapshots of all active orders for the venue.
	ListOrders(ctx context.Context) ([]*order.Order, error)

	// GetOrder fetches the authoritative snapshot of a single order.
	GetOrder(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// PushTransition submits a local transition to the backend and returns
	// the server's resulting order snapshot on success.
	PushTransition(ctx context.Context, push TransitionPush) (*order.Order, error)
}
