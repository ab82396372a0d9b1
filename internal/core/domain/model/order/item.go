package order

import (
	"fmt"

	"orderboard/internal/pkg/errs"
)

// LineItem is a value object describing one ordered item: what was ordered,
// how many, and the unit price in cents. Line items are immutable once
// constructed.
type LineItem struct {
	name       string
	quantity   int
	priceCents int64
}

// NewLineItem creates a validated line item.
//
// Validation rules:
//   - name must not be empty
//   - quantity must be greater than 0
//   - priceCents must not be negative
func NewLineItem(name string, quantity int, priceCents int64) (LineItem, error) {
	if name == "" {
		return LineItem{}, errs.NewValueIsRequiredError("name")
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	if priceCents < 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"priceCents",
			fmt.Errorf("%d is negative", priceCents),
		)
	}

	return LineItem{
		name:       name,
		quantity:   quantity,
		priceCents: priceCents,
	}, nil
}

// Name returns the menu-item name.
func (i LineItem) Name() string {
	return i.name
}

// Quantity returns how many units were ordered.
func (i LineItem) Quantity() int {
	return i.quantity
}

// PriceCents returns the unit price in cents.
func (i LineItem) PriceCents() int64 {
	return i.priceCents
}
