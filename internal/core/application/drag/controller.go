// Package drag holds the per-device drag session. The session is transient
// and disjoint from the order store: lifting, hovering, and cancelling never
// touch store state, so dragging a card across the board emits no change
// events. Only a legal drop reaches the command handler.
package drag

import (
	"context"
	"errors"
	"sync"

	"orderboard/internal/core/application/usecases/commands"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"
)

var (
	// ErrDragInProgress is returned by Lift when a card is already lifted.
	ErrDragInProgress = errors.New("a card is already being dragged")

	// ErrNoActiveDrag is returned by Drop when nothing is lifted.
	ErrNoActiveDrag = errors.New("no card is being dragged")
)

// TransitionProposer accepts a proposed status transition. Implemented by
// commands.ProposeTransitionCommandHandler.
type TransitionProposer interface {
	Handle(ctx context.Context, cmd commands.ProposeTransitionCommand) (ports.TransitionRecord, error)
}

// View is the render snapshot of the drag session: the ghost card, the lane
// under the pointer, and the lanes a drop would be accepted into.
type View struct {
	// Lifted is a clone of the dragged order, nil when no drag is active.
	Lifted *order.Order

	// Hovered is the lane under the pointer, order.Unknown when none.
	Hovered order.Status

	// LegalTargets lists the lanes the lifted card may be dropped into.
	LegalTargets []order.Status
}

// Controller owns one device's drag session: at most one lifted card at a
// time, operated by a single actor.
type Controller struct {
	store    ports.OrderStore
	proposer TransitionProposer
	actorID  string

	mu      sync.Mutex
	lifted  *order.Order
	hovered order.Status
}

// NewController creates a drag controller for the given actor.
func NewController(store ports.OrderStore, proposer TransitionProposer, actorID string) *Controller {
	return &Controller{
		store:    store,
		proposer: proposer,
		actorID:  actorID,
	}
}

// Lift starts dragging the given card. Returns ErrDragInProgress when a card
// is already lifted, or errs.ErrStaleOrder when the order left the board.
func (c *Controller) Lift(orderID kernel.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lifted != nil {
		return ErrDragInProgress
	}

	o, ok := c.store.Get(orderID)
	if !ok {
		return errs.NewStaleOrderError(orderID.String())
	}

	c.lifted = o
	c.hovered = order.Unknown
	return nil
}

// Hover records the lane under the pointer and reports whether dropping there
// would be legal. Purely local; no store event, no network.
func (c *Controller) Hover(lane order.Status) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lifted == nil {
		return false
	}
	c.hovered = lane
	return c.lifted.Status().CanTransitionTo(lane)
}

// Drop releases the lifted card onto the given lane. An illegal edge snaps
// the card back immediately with errs.ErrIllegalTransition and never reaches
// the command handler. A legal edge is submitted as a transition proposal
// carrying the lifted card's version; any rejection also snaps the card back.
// The session is cleared either way.
func (c *Controller) Drop(ctx context.Context, lane order.Status) error {
	c.mu.Lock()
	lifted := c.lifted
	c.lifted = nil
	c.hovered = order.Unknown
	c.mu.Unlock()

	if lifted == nil {
		return ErrNoActiveDrag
	}

	if !lifted.Status().CanTransitionTo(lane) {
		return errs.NewIllegalTransitionError(lifted.Status().String(), lane.String())
	}

	cmd, err := commands.NewProposeTransitionCommand(lifted.ID(), lane, c.actorID, lifted.Version())
	if err != nil {
		return err
	}

	_, err = c.proposer.Handle(ctx, cmd)
	return err
}

// CancelDrag clears the session; the card snaps back to its lane.
func (c *Controller) CancelDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lifted = nil
	c.hovered = order.Unknown
}

// View returns the current drag session for rendering.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lifted == nil {
		return View{Hovered: order.Unknown}
	}
	return View{
		Lifted:       c.lifted.Clone(),
		Hovered:      c.hovered,
		LegalTargets: c.lifted.Status().Successors(),
	}
}
