package queries

import (
	"context"

	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"
)

// GetOrderQueryHandler serves single-order lookups from the store.
type GetOrderQueryHandler struct {
	store ports.OrderStore
}

// NewGetOrderQueryHandler creates a handler reading from the given store.
func NewGetOrderQueryHandler(store ports.OrderStore) GetOrderQueryHandler {
	return GetOrderQueryHandler{store: store}
}

// Handle returns the order view, or errs.ErrObjectNotFound when the order is
// not on the board.
func (h GetOrderQueryHandler) Handle(_ context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, ok := h.store.Get(query.OrderID())
	if !ok {
		return OrderView{}, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}

	return newOrderView(o), nil
}
