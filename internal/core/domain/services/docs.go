// Package services contains stateless domain services that implement business
// logic spanning the order model without belonging to a single aggregate.
//
// The package provides:
//   - LaneProjector: pure projection of a set of orders into the four board
//     lanes with a stable, deterministic ordering
//
// Domain services here hold no state and perform no I/O; they are safe to
// call from any component.
package services
