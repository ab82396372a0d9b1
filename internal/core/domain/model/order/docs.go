// Package order provides domain entities and business logic for the order
// board. It implements the Order aggregate root with lifecycle management and
// state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, line items, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - LineItem: A value object describing one ordered item
//
// Key business rules:
//   - Order status follows a defined workflow: new -> preparing -> ready -> served
//   - Any non-terminal order can be cancelled
//   - Every accepted transition increments the order's version exactly once
//   - updatedAt never moves backwards for a given order
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are
// enforced.
package order
