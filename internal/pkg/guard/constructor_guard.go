// Package guard provides a defensive construction pattern for value objects
// and commands. Embedding a ConstructorGuard in a struct makes zero-value
// instances detectable, so objects that bypass their constructor fail
// validation instead of carrying silently-invalid state.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when a
// nil error is passed as the validation error. This ensures validation always
// fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and commands are only created through
// their designated constructor functions. The guard maintains an internal flag
// that is only set when the object is created through the proper constructor;
// a zero-value struct fails validation.
//
// Example usage:
//
//	var ErrMoveOrderNotConstructed = errors.New("MoveOrder must be created via NewMoveOrder")
//
//	type MoveOrder struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewMoveOrder(orderID kernel.UUID) (MoveOrder, error) {
//	    if err := orderID.Validate(); err != nil {
//	        return MoveOrder{}, err
//	    }
//	    return MoveOrder{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c MoveOrder) Validate() error {
//	    return c.guard.Validate(ErrMoveOrderNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it in the constructor of domain objects so they can be
// distinguished from zero-value instances.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was properly constructed.
//
// Returns:
//   - nil if the object was properly constructed
//   - validationError if the object was not constructed through its constructor
//   - ErrDefaultConstructorGuard if validationError is nil and object not constructed
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
