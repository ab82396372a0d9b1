// Package sync bridges the order store to the Orders backend. The engine
// owns both reconciliation directions: the pull path feeds server snapshots
// into the store, and the push path delivers locally-accepted transitions
// with retry, idempotent delivery, and conflict resolution.
//
// The backend is the serialization point between staff devices; this engine
// never talks to other clients directly. Ordinary snapshots flow through the
// store's version-gated Upsert, so reconciliation can never regress an order;
// only rollback corrections, where the store may hold a version the server
// never granted, bypass the gate.
package sync

import (
	"context"
	"errors"
	"log/slog"
	stdsync "sync"
	"time"

	"orderboard/internal/core/application/notify"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/clock"
	"orderboard/internal/pkg/errs"
)

// Config tunes the push retry policy. Zero values fall back to the defaults
// below.
type Config struct {
	// MaxAttempts is how many times one push is tried before rollback.
	MaxAttempts int

	// BaseBackoff is the delay before the second attempt; it doubles per
	// attempt.
	BaseBackoff time.Duration

	// BackoffCap bounds the exponential backoff.
	BackoffCap time.Duration

	// RequestTimeout bounds each individual push or fetch request.
	RequestTimeout time.Duration
}

const (
	defaultMaxAttempts    = 5
	defaultBaseBackoff    = 500 * time.Millisecond
	defaultBackoffCap     = 8 * time.Second
	defaultRequestTimeout = 10 * time.Second
)

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.BaseBackoff <= 0 {
		c.BaseBackoff = defaultBaseBackoff
	}
	if c.BackoffCap <= 0 {
		c.BackoffCap = defaultBackoffCap
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	return c
}

// pendingPush is the in-flight record of one accepted transition. At most one
// exists per order; it lives from EnqueuePush until server ack or rollback.
type pendingPush struct {
	record      ports.TransitionRecord
	requestID   kernel.UUID
	submittedAt time.Time

	// stale is set when the order is superseded while the push is in
	// flight; a stale response is discarded rather than applied.
	stale bool
}

// Engine reconciles the order store with the backend. It implements
// ports.TransitionPusher for the propose handler and exposes Pull,
// ApplySnapshot, Recover and PruneTerminal for jobs, streams, and startup.
type Engine struct {
	store    ports.OrderStore
	gateway  ports.OrdersGateway
	journal  ports.TransitionJournal
	notifier *notify.Notifier
	clk      clock.Clock
	logger   *slog.Logger
	cfg      Config

	mu      stdsync.Mutex
	pending map[kernel.UUID]*pendingPush
	wg      stdsync.WaitGroup

	// unreconciled holds orders whose rollback re-fetch failed. Their store
	// copy may carry a version the server never granted, so the next incoming
	// snapshot is applied as an authoritative correction instead of an upsert.
	unreconciled map[kernel.UUID]struct{}
}

// NewEngine creates a sync engine. All dependencies are required; cfg fields
// left zero use the documented defaults (5 attempts, 500 ms base backoff,
// 8 s cap, 10 s request timeout).
func NewEngine(
	store ports.OrderStore,
	gateway ports.OrdersGateway,
	journal ports.TransitionJournal,
	notifier *notify.Notifier,
	clk clock.Clock,
	logger *slog.Logger,
	cfg Config,
) *Engine {
	return &Engine{
		store:        store,
		gateway:      gateway,
		journal:      journal,
		notifier:     notifier,
		clk:          clk,
		logger:       logger.With("component", "sync_engine"),
		cfg:          cfg.withDefaults(),
		pending:      make(map[kernel.UUID]*pendingPush),
		unreconciled: make(map[kernel.UUID]struct{}),
	}
}

// Pull fetches the venue's active orders and feeds every snapshot to the
// store. Identical snapshots are discarded by the store's version gate, so a
// no-op pull emits no change events.
func (e *Engine) Pull(ctx context.Context) error {
	reqCtx, cancel := context.WithTimeout(ctx, e.cfg.RequestTimeout)
	defer cancel()

	orders, err := e.gateway.ListOrders(reqCtx)
	if err != nil {
		return err
	}

	for _, o := range orders {
		e.ApplySnapshot(o)
	}
	return nil
}

// ApplySnapshot feeds one server-side order snapshot into the store. It is
// the sink for both the pull path and the push stream. A snapshot that
// supersedes an order with a push in flight marks that pending record stale,
// so the eventual response is discarded.
func (e *Engine) ApplySnapshot(o *order.Order) {
	if err := o.Validate(); err != nil {
		e.logger.Error("Discarding invalid order snapshot", "error", err)
		return
	}

	e.mu.Lock()
	if p, ok := e.pending[o.ID()]; ok && o.Version() >= p.record.Version {
		p.stale = true
	}
	_, correct := e.unreconciled[o.ID()]
	delete(e.unreconciled, o.ID())
	e.mu.Unlock()

	if correct {
		// a rollback for this order never reached the server; the store may
		// hold a phantom version the upsert gate would protect
		e.store.Correct(o)
		return
	}
	e.store.Upsert(o)
}

// HasPending reports whether a push is in flight for the given order.
func (e *Engine) HasPending(orderID kernel.UUID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.pending[orderID]
	return ok
}

// EnqueuePush schedules an accepted transition for delivery. A fresh client
// request ID is minted and reused verbatim across every retry, so the server
// deduplicates at-least-once delivery into an at-most-once effect.
//
// Returns errs.ErrTransitionPending if the order already has a push in
// flight.
func (e *Engine) EnqueuePush(record ports.TransitionRecord) error {
	return e.enqueue(record, kernel.NewUUID(), e.clk.Now(), true)
}

// Recover replays journaled transitions that never got acknowledged before
// the last shutdown. Replayed pushes keep their original client request IDs;
// a transition the server already applied is recognized and collapsed.
func (e *Engine) Recover(ctx context.Context) error {
	entries, err := e.journal.Pending(ctx)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		record := ports.TransitionRecord{
			OrderID:    entry.OrderID,
			FromStatus: entry.FromStatus,
			ToStatus:   entry.ToStatus,
			Version:    entry.ExpectedVersion + 1,
		}
		if err := e.enqueue(record, entry.ClientRequestID, entry.SubmittedAt, false); err != nil {
			e.logger.Error("Skipping journaled transition", "orderId", entry.OrderID.String(), "error", err)
		}
	}

	e.logger.InfoContext(ctx, "Journal replay finished", "entries", len(entries))
	return nil
}

// PruneTerminal removes served and cancelled orders that aged out of the
// visible window. The backend retains them permanently; this only trims the
// board view.
func (e *Engine) PruneTerminal(window time.Duration) int {
	cutoff := e.clk.Now().Add(-window)
	removed := 0

	for _, o := range e.store.Snapshot() {
		if o.Status().IsTerminal() && o.UpdatedAt().Before(cutoff) {
			if e.store.Remove(o.ID()) {
				removed++
			}
		}
	}
	return removed
}

// Wait blocks until every in-flight push has settled. Used on shutdown and
// by tests.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// enqueue registers the pending record and starts the push loop. journal
// controls whether a new journal entry is written (replays already have one).
func (e *Engine) enqueue(record ports.TransitionRecord, requestID kernel.UUID, submittedAt time.Time, journal bool) error {
	e.mu.Lock()
	if _, ok := e.pending[record.OrderID]; ok {
		e.mu.Unlock()
		return errs.NewTransitionPendingError(record.OrderID.String())
	}
	p := &pendingPush{
		record:      record,
		requestID:   requestID,
		submittedAt: submittedAt,
	}
	e.pending[record.OrderID] = p
	e.mu.Unlock()

	if journal {
		if err := e.journal.Append(context.Background(), ports.PendingTransition{
			OrderID:         record.OrderID,
			FromStatus:      record.FromStatus,
			ToStatus:        record.ToStatus,
			ExpectedVersion: record.ExpectedVersion(),
			ClientRequestID: requestID,
			SubmittedAt:     submittedAt,
		}); err != nil {
			// the push proceeds; only restart durability is lost
			e.logger.Error("Failed to journal pending transition",
				"orderId", record.OrderID.String(), "error", err)
		}
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.push(p)
	}()
	return nil
}

// push drives one pending transition to completion: retry with exponential
// backoff on network failures, resolve rejections by re-fetching the
// authoritative order, roll back once the retry attempts are exhausted.
func (e *Engine) push(p *pendingPush) {
	push := ports.TransitionPush{
		OrderID:         p.record.OrderID,
		ToStatus:        p.record.ToStatus,
		ExpectedVersion: p.record.ExpectedVersion(),
		ClientRequestID: p.requestID,
	}

	for attempt := 1; ; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), e.cfg.RequestTimeout)
		snapshot, err := e.gateway.PushTransition(ctx, push)
		cancel()

		switch {
		case err == nil:
			e.settle(p)
			if e.isStale(p) {
				// a newer snapshot arrived while this push was in
				// flight; its response no longer matters
				return
			}
			if snapshot != nil {
				e.store.Upsert(snapshot)
			}
			return

		case errors.Is(err, errs.ErrVersionConflict):
			e.settle(p)
			e.refetch(p.record.OrderID)
			e.notify(notify.ConflictResolved, p.record.OrderID,
				"another staff member already moved this order")
			return

		case errors.Is(err, errs.ErrIllegalTransition), errors.Is(err, errs.ErrObjectNotFound):
			e.settle(p)
			e.refetch(p.record.OrderID)
			e.notify(notify.SyncFailed, p.record.OrderID,
				"the server rejected this move; the board has been corrected")
			return

		default:
			if attempt >= e.cfg.MaxAttempts {
				e.logger.Error("Push retries exhausted, rolling back",
					"orderId", p.record.OrderID.String(),
					"attempts", attempt, "error", err)
				e.settle(p)
				e.refetch(p.record.OrderID)
				e.notify(notify.SyncFailed, p.record.OrderID,
					"could not reach the server; the move was rolled back")
				return
			}
			e.logger.Warn("Push attempt failed, backing off",
				"orderId", p.record.OrderID.String(),
				"attempt", attempt, "error", err)
			<-e.clk.After(e.backoff(attempt))
		}
	}
}

// settle clears the pending record and its journal entry.
func (e *Engine) settle(p *pendingPush) {
	e.mu.Lock()
	delete(e.pending, p.record.OrderID)
	e.mu.Unlock()

	if err := e.journal.Delete(context.Background(), p.requestID); err != nil {
		e.logger.Error("Failed to delete journal entry",
			"clientRequestId", p.requestID.String(), "error", err)
	}
}

func (e *Engine) isStale(p *pendingPush) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return p.stale
}

// refetch corrects the local view of one order from the backend. A 404 means
// the order is gone server-side, so it leaves the board too. Any other
// failure marks the order unreconciled so the next incoming snapshot heals
// it, version gate notwithstanding.
func (e *Engine) refetch(orderID kernel.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.RequestTimeout)
	defer cancel()

	o, err := e.gateway.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			e.clearUnreconciled(orderID)
			e.store.Remove(orderID)
			return
		}
		e.logger.Error("Re-fetch after rollback failed; awaiting next pull",
			"orderId", orderID.String(), "error", err)
		e.mu.Lock()
		e.unreconciled[orderID] = struct{}{}
		e.mu.Unlock()
		return
	}
	// the optimistic copy may carry a version the server never granted, so
	// the correction must bypass the upsert version gate
	e.clearUnreconciled(orderID)
	e.store.Correct(o)
}

func (e *Engine) clearUnreconciled(orderID kernel.UUID) {
	e.mu.Lock()
	delete(e.unreconciled, orderID)
	e.mu.Unlock()
}

func (e *Engine) notify(kind notify.Kind, orderID kernel.UUID, message string) {
	e.notifier.Publish(notify.Notification{
		Kind:       kind,
		OrderID:    orderID.String(),
		Message:    message,
		OccurredAt: e.clk.Now(),
	})
}

// backoff returns the delay after the given (1-based) failed attempt:
// base * 2^(attempt-1), capped.
func (e *Engine) backoff(attempt int) time.Duration {
	d := e.cfg.BaseBackoff << (attempt - 1)
	if d > e.cfg.BackoffCap || d <= 0 {
		d = e.cfg.BackoffCap
	}
	return d
}
