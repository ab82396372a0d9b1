package commands

import (
	"context"

	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/clock"
	"orderboard/internal/pkg/errs"
)

// ProposeTransitionCommandHandler is the status state machine's entry point:
// it validates a proposed transition against the current store state, applies
// it optimistically, and hands the accepted record to the sync engine for
// delivery to the backend.
//
// The handler itself never touches the network. Rejections are purely local:
//   - errs.ErrStaleOrder: the order is no longer on the board
//   - errs.ErrVersionConflict: the caller's view of the order is outdated
//   - errs.ErrTransitionPending: a push for this order is already in flight
//   - errs.ErrIllegalTransition: the edge is not part of the lifecycle
//
// Example:
//
//	handler := NewProposeTransitionCommandHandler(store, engine, clock.NewSystem())
//	cmd, _ := NewProposeTransitionCommand(orderID, order.Preparing, "staff-7", 3)
//
//	record, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    // card snaps back; store untouched
//	    return err
//	}
//	// store now shows the order in preparing at record.Version
type ProposeTransitionCommandHandler struct {
	store  ports.OrderStore
	pusher ports.TransitionPusher
	clk    clock.Clock
}

// NewProposeTransitionCommandHandler creates a handler wired to the order
// store, the sync engine's pusher port, and a clock for updatedAt stamps.
func NewProposeTransitionCommandHandler(
	store ports.OrderStore,
	pusher ports.TransitionPusher,
	clk clock.Clock,
) ProposeTransitionCommandHandler {
	return ProposeTransitionCommandHandler{
		store:  store,
		pusher: pusher,
		clk:    clk,
	}
}

// Handle processes the proposal.
//
// On acceptance the store reflects the new status immediately (optimistic
// update), the order's version is bumped by exactly one, and the returned
// record has been queued for push. On any rejection the store is untouched.
func (h *ProposeTransitionCommandHandler) Handle(
	ctx context.Context,
	cmd ProposeTransitionCommand,
) (ports.TransitionRecord, error) {
	if err := cmd.Validate(); err != nil {
		return ports.TransitionRecord{}, err
	}

	current, ok := h.store.Get(cmd.OrderID())
	if !ok {
		return ports.TransitionRecord{}, errs.NewStaleOrderError(cmd.OrderID().String())
	}

	if cmd.ExpectedVersion() > 0 && cmd.ExpectedVersion() != current.Version() {
		return ports.TransitionRecord{}, errs.NewVersionConflictError(
			cmd.OrderID().String(), cmd.ExpectedVersion(), current.Version(),
		)
	}

	if h.pusher.HasPending(cmd.OrderID()) {
		return ports.TransitionRecord{}, errs.NewTransitionPendingError(cmd.OrderID().String())
	}

	from := current.Status()
	if err := current.TransitionTo(cmd.Target(), h.clk.Now()); err != nil {
		return ports.TransitionRecord{}, err
	}

	record := ports.TransitionRecord{
		OrderID:    cmd.OrderID(),
		FromStatus: from,
		ToStatus:   cmd.Target(),
		Version:    current.Version(),
	}

	// Reserve the pending slot before the optimistic update so a competing
	// proposal between Upsert and EnqueuePush cannot slip in.
	if err := h.pusher.EnqueuePush(record); err != nil {
		return ports.TransitionRecord{}, err
	}

	h.store.Upsert(current)
	return record, nil
}
