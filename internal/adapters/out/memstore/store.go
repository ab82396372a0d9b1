// Package memstore implements the order store as a mutex-guarded in-memory
// map. It is the board's single source of truth on the client: every write
// flows through Upsert, which enforces replace-if-newer-version semantics so
// out-of-order arrivals from the network can never regress state.
package memstore

import (
	"sync"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
)

// Store is an in-memory, versioned order store. The zero value is not usable;
// create instances with NewStore.
//
// Change listeners are invoked synchronously after every effective change, in
// subscription order, outside the store's lock. Listeners may read the store
// but must not call its mutating methods.
type Store struct {
	mu        sync.Mutex
	orders    map[kernel.UUID]*order.Order
	revision  uint64
	listeners map[int]func()
	nextToken int
}

// NewStore creates an empty order store.
func NewStore() *Store {
	return &Store{
		orders:    make(map[kernel.UUID]*order.Order),
		listeners: make(map[int]func()),
	}
}

// Get retrieves a clone of the order with the given ID.
func (s *Store) Get(id kernel.UUID) (*order.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, false
	}
	return o.Clone(), true
}

// Snapshot returns clones of all orders currently held.
func (s *Store) Snapshot() []*order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*order.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	return out
}

// Upsert applies an order snapshot with replace-if-newer-version semantics.
// An incoming version lower than or equal to the held version is a silent
// no-op returning false. On effective change the revision is bumped and every
// listener is notified exactly once.
func (s *Store) Upsert(o *order.Order) bool {
	if err := o.Validate(); err != nil {
		return false
	}

	s.mu.Lock()
	held, exists := s.orders[o.ID()]
	if exists && o.Version() <= held.Version() {
		s.mu.Unlock()
		return false
	}
	s.orders[o.ID()] = o.Clone()
	s.revision++
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return true
}

// Correct replaces the held order with an authoritative snapshot regardless
// of its version. A snapshot identical to the held state (same version,
// status, and update time) is a no-op, so a rollback that lands on the state
// already shown causes no flicker.
func (s *Store) Correct(o *order.Order) bool {
	if err := o.Validate(); err != nil {
		return false
	}

	s.mu.Lock()
	held, exists := s.orders[o.ID()]
	if exists && held.Version() == o.Version() &&
		held.Status() == o.Status() && held.UpdatedAt().Equal(o.UpdatedAt()) {
		s.mu.Unlock()
		return false
	}
	s.orders[o.ID()] = o.Clone()
	s.revision++
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return true
}

// Remove deletes the order with the given ID. Returns true and notifies
// listeners if the order was present.
func (s *Store) Remove(id kernel.UUID) bool {
	s.mu.Lock()
	if _, ok := s.orders[id]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.orders, id)
	s.revision++
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
	return true
}

// Subscribe registers a change listener and returns its unsubscribe function.
func (s *Store) Subscribe(listener func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.nextToken
	s.nextToken++
	s.listeners[token] = listener

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, token)
	}
}

// Revision returns the change counter. It increments only on effective
// changes, never on reads or discarded upserts.
func (s *Store) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// snapshotListeners copies the listener set in subscription order.
// Caller must hold the lock.
func (s *Store) snapshotListeners() []func() {
	tokens := make([]int, 0, len(s.listeners))
	for token := range s.listeners {
		tokens = append(tokens, token)
	}
	// insertion sort keeps notification order deterministic
	for i := 1; i < len(tokens); i++ {
		for j := i; j > 0 && tokens[j] < tokens[j-1]; j-- {
			tokens[j], tokens[j-1] = tokens[j-1], tokens[j]
		}
	}
	out := make([]func(), 0, len(tokens))
	for _, token := range tokens {
		out = append(out, s.listeners[token])
	}
	return out
}
