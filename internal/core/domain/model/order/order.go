package order

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// orderNumberPattern matches the human-readable order number format
// PREFIX-YYYYMMDD-NNN, e.g. "SKN-20250922-007".
var orderNumberPattern = regexp.MustCompile(`^[A-Z]+-\d{8}-\d{3}$`)

// Order represents one restaurant order as the board sees it: a card that
// moves through the lanes. It is the aggregate root that manages the order
// lifecycle from new through preparing and ready to served (or cancelled).
//
// Order follows these invariants:
//   - Identity (id) is server-assigned and immutable
//   - Status transitions follow the edges defined by Status
//   - version increases by exactly one on every accepted transition
//   - updatedAt is monotonically non-decreasing
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation; all mutation flows
// through TransitionTo.
type Order struct {
	// id is the server-assigned unique identifier
	id kernel.UUID

	// number is the human-readable order number (PREFIX-YYYYMMDD-NNN)
	number string

	// tableNumber identifies the table the order belongs to
	tableNumber string

	// status is the current state in the order lifecycle
	status Status

	// items is the ordered sequence of line items
	items []LineItem

	// createdAt is when the backend created the order
	createdAt time.Time

	// updatedAt is when the order last changed; never moves backwards
	updatedAt time.Time

	// version is the optimistic-concurrency counter, bumped on every
	// accepted transition
	version int64

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in New status with version 1.
// The board itself never creates orders in production (the backend does, when
// a customer places one); this constructor exists for composing test fixtures
// and for completeness of the aggregate.
//
// Parameters:
//   - id: Server-assigned identifier (must be a valid UUID)
//   - number: Human-readable order number, format PREFIX-YYYYMMDD-NNN
//   - tableNumber: Table the order belongs to (must not be empty)
//   - items: Line items (at least one)
//   - createdAt: Creation timestamp (must not be zero)
func NewOrder(
	id kernel.UUID,
	number string,
	tableNumber string,
	items []LineItem,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        New,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setTableNumber(tableNumber),
		o.setItems(items),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.updatedAt = createdAt
	return o, nil
}

// RestoreOrder reconstructs an Order from a backend snapshot.
// Unlike NewOrder it accepts any valid status and the server-held version;
// the snapshot is the authority, so no lifecycle rules are re-checked beyond
// field validity.
func RestoreOrder(
	id kernel.UUID,
	number string,
	tableNumber string,
	status Status,
	items []LineItem,
	createdAt time.Time,
	updatedAt time.Time,
	version int64,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setTableNumber(tableNumber),
		o.setStatus(status),
		o.setItems(items),
		o.setCreatedAt(createdAt),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	o.updatedAt = updatedAt
	if o.updatedAt.Before(o.createdAt) {
		o.updatedAt = o.createdAt
	}
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed for zero-value or directly-instantiated
// structs. Called when orders cross component boundaries.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's server-assigned identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() string {
	return o.number
}

// TableNumber returns the table the order belongs to.
func (o *Order) TableNumber() string {
	return o.tableNumber
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// CreatedAt returns when the backend created the order.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order last changed.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version returns the optimistic-concurrency counter.
func (o *Order) Version() int64 {
	return o.version
}

// TransitionTo advances the order along a legal lifecycle edge.
//
// On acceptance the status changes, version is bumped by exactly one, and
// updatedAt is set to at (or kept, if at would move it backwards).
//
// Returns:
//   - nil on success
//   - *errs.IllegalTransitionError if the edge is not part of the lifecycle
func (o *Order) TransitionTo(target Status, at time.Time) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.version++
	if at.After(o.updatedAt) {
		o.updatedAt = at
	}
	return nil
}

// Clone returns a deep copy of the order. The store hands out clones so
// callers can never mutate store-held state through a shared pointer.
func (o *Order) Clone() *Order {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)

	return &Order{
		id:            o.id,
		number:        o.number,
		tableNumber:   o.tableNumber,
		status:        o.status,
		items:         items,
		createdAt:     o.createdAt,
		updatedAt:     o.updatedAt,
		version:       o.version,
		isConstructed: o.isConstructed,
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	if !orderNumberPattern.MatchString(number) {
		return errs.NewValueIsInvalidErrorWithCause(
			"number",
			fmt.Errorf("%q does not match PREFIX-YYYYMMDD-NNN", number),
		)
	}
	o.number = number
	return nil
}

func (o *Order) setTableNumber(tableNumber string) error {
	if tableNumber == "" {
		return errs.NewValueIsRequiredError("tableNumber")
	}
	o.tableNumber = tableNumber
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

func (o *Order) setVersion(version int64) error {
	if version < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"version",
			fmt.Errorf("%d is not greater than 0", version),
		)
	}
	o.version = version
	return nil
}
