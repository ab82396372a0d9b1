package commands

import (
	"errors"
	"fmt"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/pkg/errs"
	"orderboard/internal/pkg/guard"
)

var (
	ErrProposeTransitionCommandIsNotConstructed = errors.New(
		"ProposeTransitionCommand must be created via NewProposeTransitionCommand constructor",
	)
	ErrActorIsRequired = errors.New("actor is required")
)

// ProposeTransitionCommand represents a staff member's request to move an
// order into another lane: the intent produced by dropping a card.
//
// ExpectedVersion is the version of the order the actor was looking at when
// they dropped the card. Zero means the caller holds no version opinion and
// only the lifecycle rules are checked.
//
// Example:
//
//	cmd, err := NewProposeTransitionCommand(orderID, order.Preparing, "staff-7", 3)
//	if err != nil {
//	    return fmt.Errorf("invalid drop: %w", err)
//	}
//
//	record, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrIllegalTransition) {
//	    // snap the card back, nothing was mutated
//	}
type ProposeTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	target          order.Status
	actorID         string
	expectedVersion int64

	guard guard.ConstructorGuard
}

// NewProposeTransitionCommand creates a validated transition proposal.
// Validates that the order ID is constructed, the target status is one of
// the five lifecycle states, the actor is named, and the expected version is
// not negative.
func NewProposeTransitionCommand(
	orderID kernel.UUID,
	target order.Status,
	actorID string,
	expectedVersion int64,
) (ProposeTransitionCommand, error) {
	cmd := ProposeTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActorID(actorID),
		cmd.setExpectedVersion(expectedVersion),
	); err != nil {
		return ProposeTransitionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrProposeTransitionCommandIsNotConstructed if validation fails.
func (c ProposeTransitionCommand) Validate() error {
	return c.guard.Validate(ErrProposeTransitionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being moved.
func (c ProposeTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the status of the lane the card was dropped on.
func (c ProposeTransitionCommand) Target() order.Status {
	return c.target
}

// ActorID returns the staff member who performed the drop.
func (c ProposeTransitionCommand) ActorID() string {
	return c.actorID
}

// ExpectedVersion returns the order version the actor acted upon, or zero
// when no version opinion is held.
func (c ProposeTransitionCommand) ExpectedVersion() int64 {
	return c.expectedVersion
}

func (c *ProposeTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ProposeTransitionCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *ProposeTransitionCommand) setActorID(actorID string) error {
	if actorID == "" {
		return ErrActorIsRequired
	}
	c.actorID = actorID
	return nil
}

func (c *ProposeTransitionCommand) setExpectedVersion(expectedVersion int64) error {
	if expectedVersion < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"expectedVersion",
			fmt.Errorf("%d is negative", expectedVersion),
		)
	}
	c.expectedVersion = expectedVersion
	return nil
}
