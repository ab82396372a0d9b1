package queries

import (
	"context"
	"sync"

	"orderboard/internal/core/domain/services"
	"orderboard/internal/core/ports"
)

// GetBoardQueryHandler serves the four-lane board view.
//
// The handler subscribes to the order store and recomputes the projection
// only when the store emits a change event; reads between changes serve the
// cached view. Drag-visual state never reaches this handler, so dragging a
// card across the board cannot trigger recomputation — only committed data
// changes can. Recomputes exposes the counter the render-stability regression
// checks.
//
// Example:
//
//	handler := NewGetBoardQueryHandler(store)
//	defer handler.Close()
//
//	board, err := handler.Handle(ctx, NewGetBoardQuery())
//	if err != nil {
//	    return err
//	}
//	for _, card := range board.Ready {
//	    fmt.Printf("ready for pickup: %s\n", card.Number)
//	}
type GetBoardQueryHandler struct {
	store     ports.OrderStore
	projector services.LaneProjector

	mu          sync.Mutex
	cached      BoardView
	recomputes  uint64
	unsubscribe func()
}

// NewGetBoardQueryHandler creates a handler subscribed to the given store.
// The initial projection is computed eagerly; call Close to detach the
// subscription when the handler is no longer needed.
func NewGetBoardQueryHandler(store ports.OrderStore) *GetBoardQueryHandler {
	h := &GetBoardQueryHandler{
		store:     store,
		projector: services.NewLaneProjector(),
	}
	h.recompute()
	h.unsubscribe = store.Subscribe(h.recompute)
	return h
}

// Handle returns the current board view.
// Serving a query never triggers recomputation; observing the board is free.
func (h *GetBoardQueryHandler) Handle(_ context.Context, query GetBoardQuery) (BoardView, error) {
	if err := query.Validate(); err != nil {
		return BoardView{}, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cached, nil
}

// Recomputes returns how many times the projection has been rebuilt,
// including the initial computation.
func (h *GetBoardQueryHandler) Recomputes() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.recomputes
}

// Close detaches the store subscription.
func (h *GetBoardQueryHandler) Close() {
	if h.unsubscribe != nil {
		h.unsubscribe()
	}
}

// recompute rebuilds the cached projection from a fresh store snapshot.
// Invoked once at construction and once per store change event.
func (h *GetBoardQueryHandler) recompute() {
	board, err := h.projector.Project(h.store.Snapshot())
	if err != nil {
		// the store validates on upsert, so this cannot happen with a
		// healthy store; keep serving the previous projection
		return
	}

	view := BoardView{
		New:       newLaneView(board.New),
		Preparing: newLaneView(board.Preparing),
		Ready:     newLaneView(board.Ready),
		Served:    newLaneView(board.Served),
	}

	h.mu.Lock()
	h.cached = view
	h.recomputes++
	h.mu.Unlock()
}
