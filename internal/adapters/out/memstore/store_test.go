package memstore_test

import (
	"testing"
	"time"

	"orderboard/internal/adapters/out/memstore"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storeBase = time.Date(2025, 9, 22, 18, 0, 0, 0, time.UTC)

func snapshotOrder(t *testing.T, id kernel.UUID, status order.Status, version int64) *order.Order {
	t.Helper()
	item, err := order.NewLineItem("Lasagna", 1, 1600)
	require.NoError(t, err)

	o, err := order.RestoreOrder(id, "SKN-20250922-003", "7", status,
		[]order.LineItem{item}, storeBase, storeBase, version)
	require.NoError(t, err)
	return o
}

func TestStore_Upsert(t *testing.T) {
	t.Run("inserts new order and bumps revision", func(t *testing.T) {
		store := memstore.NewStore()
		id := kernel.NewUUID()

		changed := store.Upsert(snapshotOrder(t, id, order.New, 1))

		assert.True(t, changed)
		assert.Equal(t, uint64(1), store.Revision())

		got, ok := store.Get(id)
		require.True(t, ok)
		assert.Equal(t, order.New, got.Status())
	})

	t.Run("replaces when incoming version is newer", func(t *testing.T) {
		store := memstore.NewStore()
		id := kernel.NewUUID()
		store.Upsert(snapshotOrder(t, id, order.New, 1))

		changed := store.Upsert(snapshotOrder(t, id, order.Preparing, 2))

		assert.True(t, changed)
		got, _ := store.Get(id)
		assert.Equal(t, order.Preparing, got.Status())
		assert.Equal(t, int64(2), got.Version())
	})

	t.Run("discards equal version", func(t *testing.T) {
		store := memstore.NewStore()
		id := kernel.NewUUID()
		store.Upsert(snapshotOrder(t, id, order.Preparing, 2))
		before := store.Revision()

		changed := store.Upsert(snapshotOrder(t, id, order.Ready, 2))

		assert.False(t, changed)
		assert.Equal(t, before, store.Revision())
		got, _ := store.Get(id)
		assert.Equal(t, order.Preparing, got.Status())
	})

	t.Run("discards older version arriving late", func(t *testing.T) {
		store := memstore.NewStore()
		id := kernel.NewUUID()
		store.Upsert(snapshotOrder(t, id, order.Ready, 3))

		changed := store.Upsert(snapshotOrder(t, id, order.New, 1))

		assert.False(t, changed)
		got, _ := store.Get(id)
		assert.Equal(t, order.Ready, got.Status())
		assert.Equal(t, int64(3), got.Version())
	})

	t.Run("is idempotent", func(t *testing.T) {
		store := memstore.NewStore()
		id := kernel.NewUUID()
		snapshot := snapshotOrder(t, id, order.Preparing, 2)

		require.True(t, store.Upsert(snapshot))
		before := store.Revision()
		require.False(t, store.Upsert(snapshot))

		assert.Equal(t, before, store.Revision())
	})

	t.Run("is commutative with respect to version", func(t *testing.T) {
		id := kernel.NewUUID()
		v1 := snapshotOrder(t, id, order.New, 1)
		v2 := snapshotOrder(t, id, order.Preparing, 2)
		v3 := snapshotOrder(t, id, order.Ready, 3)

		inOrder := memstore.NewStore()
		for _, o := range []*order.Order{v1, v2, v3} {
			inOrder.Upsert(o)
		}

		outOfOrder := memstore.NewStore()
		for _, o := range []*order.Order{v3, v1, v2} {
			outOfOrder.Upsert(o)
		}

		a, _ := inOrder.Get(id)
		b, _ := outOfOrder.Get(id)
		assert.Equal(t, a.Status(), b.Status())
		assert.Equal(t, a.Version(), b.Version())
	})

	t.Run("rejects unconstructed orders", func(t *testing.T) {
		store := memstore.NewStore()
		var zero order.Order

		assert.False(t, store.Upsert(&zero))
		assert.Equal(t, uint64(0), store.Revision())
	})
}

func TestStore_Get(t *testing.T) {
	t.Run("returns clone, not shared pointer", func(t *testing.T) {
		store := memstore.NewStore()
		id := kernel.NewUUID()
		store.Upsert(snapshotOrder(t, id, order.New, 1))

		got, ok := store.Get(id)
		require.True(t, ok)
		require.NoError(t, got.TransitionTo(order.Preparing, storeBase.Add(time.Minute)))

		held, _ := store.Get(id)
		assert.Equal(t, order.New, held.Status())
	})

	t.Run("reports absence", func(t *testing.T) {
		store := memstore.NewStore()

		_, ok := store.Get(kernel.NewUUID())

		assert.False(t, ok)
	})
}

func TestStore_Correct(t *testing.T) {
	t.Run("overwrites repudiated optimistic copy", func(t *testing.T) {
		store := memstore.NewStore()
		id := kernel.NewUUID()
		// optimistic local copy at a version the server never granted
		store.Upsert(snapshotOrder(t, id, order.Ready, 4))

		changed := store.Correct(snapshotOrder(t, id, order.Preparing, 4))

		assert.True(t, changed)
		got, _ := store.Get(id)
		assert.Equal(t, order.Preparing, got.Status())
		assert.Equal(t, int64(4), got.Version())
	})

	t.Run("regresses version where upsert would not", func(t *testing.T) {
		store := memstore.NewStore()
		id := kernel.NewUUID()
		store.Upsert(snapshotOrder(t, id, order.Preparing, 4))

		require.False(t, store.Upsert(snapshotOrder(t, id, order.New, 3)))
		require.True(t, store.Correct(snapshotOrder(t, id, order.New, 3)))

		got, _ := store.Get(id)
		assert.Equal(t, order.New, got.Status())
		assert.Equal(t, int64(3), got.Version())
	})

	t.Run("matching snapshot is a no-op", func(t *testing.T) {
		store := memstore.NewStore()
		id := kernel.NewUUID()
		store.Upsert(snapshotOrder(t, id, order.Preparing, 2))
		before := store.Revision()

		changed := store.Correct(snapshotOrder(t, id, order.Preparing, 2))

		assert.False(t, changed)
		assert.Equal(t, before, store.Revision())
	})
}

func TestStore_Remove(t *testing.T) {
	store := memstore.NewStore()
	id := kernel.NewUUID()
	store.Upsert(snapshotOrder(t, id, order.Served, 4))

	assert.True(t, store.Remove(id))
	_, ok := store.Get(id)
	assert.False(t, ok)

	assert.False(t, store.Remove(id))
}

func TestStore_Subscribe(t *testing.T) {
	t.Run("notifies once per effective change", func(t *testing.T) {
		store := memstore.NewStore()
		var events int
		unsubscribe := store.Subscribe(func() { events++ })
		defer unsubscribe()

		id := kernel.NewUUID()
		store.Upsert(snapshotOrder(t, id, order.New, 1))
		store.Upsert(snapshotOrder(t, id, order.Preparing, 2))

		assert.Equal(t, 2, events)
	})

	t.Run("no events for discarded upserts", func(t *testing.T) {
		store := memstore.NewStore()
		id := kernel.NewUUID()
		store.Upsert(snapshotOrder(t, id, order.Preparing, 2))

		var events int
		unsubscribe := store.Subscribe(func() { events++ })
		defer unsubscribe()

		// 1,000 identical pulls must not produce a single event
		for i := 0; i < 1000; i++ {
			store.Upsert(snapshotOrder(t, id, order.Preparing, 2))
		}

		assert.Equal(t, 0, events)
	})

	t.Run("unsubscribe stops notifications", func(t *testing.T) {
		store := memstore.NewStore()
		var events int
		unsubscribe := store.Subscribe(func() { events++ })

		store.Upsert(snapshotOrder(t, kernel.NewUUID(), order.New, 1))
		unsubscribe()
		store.Upsert(snapshotOrder(t, kernel.NewUUID(), order.New, 1))

		assert.Equal(t, 1, events)
	})

	t.Run("listener may read the store", func(t *testing.T) {
		store := memstore.NewStore()
		var seen int
		unsubscribe := store.Subscribe(func() { seen = len(store.Snapshot()) })
		defer unsubscribe()

		store.Upsert(snapshotOrder(t, kernel.NewUUID(), order.New, 1))

		assert.Equal(t, 1, seen)
	})
}

func TestStore_Snapshot(t *testing.T) {
	store := memstore.NewStore()
	store.Upsert(snapshotOrder(t, kernel.NewUUID(), order.New, 1))
	store.Upsert(snapshotOrder(t, kernel.NewUUID(), order.Ready, 2))

	snapshot := store.Snapshot()

	assert.Len(t, snapshot, 2)
	for _, o := range snapshot {
		require.NoError(t, o.Validate())
	}
}
