package journal_test

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"orderboard/internal/adapters/out/journal"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var journalBase = time.Date(2025, 9, 22, 18, 0, 0, 0, time.UTC)

func newJournal(t *testing.T) *journal.GormTransitionJournal {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	j, err := journal.NewGormTransitionJournal(db)
	require.NoError(t, err)
	return j
}

func pendingEntry(submittedAt time.Time) ports.PendingTransition {
	return ports.PendingTransition{
		OrderID:         kernel.NewUUID(),
		FromStatus:      order.New,
		ToStatus:        order.Preparing,
		ExpectedVersion: 3,
		ClientRequestID: kernel.NewUUID(),
		SubmittedAt:     submittedAt,
	}
}

func TestGormTransitionJournal_AppendAndPending(t *testing.T) {
	j := newJournal(t)
	ctx := context.Background()

	entry := pendingEntry(journalBase)
	require.NoError(t, j.Append(ctx, entry))

	entries, err := j.Pending(ctx)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].OrderID.IsEqual(entry.OrderID))
	assert.True(t, entries[0].ClientRequestID.IsEqual(entry.ClientRequestID))
	assert.Equal(t, order.New, entries[0].FromStatus)
	assert.Equal(t, order.Preparing, entries[0].ToStatus)
	assert.Equal(t, int64(3), entries[0].ExpectedVersion)
}

func TestGormTransitionJournal_PendingOldestFirst(t *testing.T) {
	j := newJournal(t)
	ctx := context.Background()

	later := pendingEntry(journalBase.Add(time.Minute))
	earlier := pendingEntry(journalBase)
	require.NoError(t, j.Append(ctx, later))
	require.NoError(t, j.Append(ctx, earlier))

	entries, err := j.Pending(ctx)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].ClientRequestID.IsEqual(earlier.ClientRequestID))
	assert.True(t, entries[1].ClientRequestID.IsEqual(later.ClientRequestID))
}

func TestGormTransitionJournal_Delete(t *testing.T) {
	j := newJournal(t)
	ctx := context.Background()

	entry := pendingEntry(journalBase)
	require.NoError(t, j.Append(ctx, entry))

	require.NoError(t, j.Delete(ctx, entry.ClientRequestID))

	entries, err := j.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// deleting an absent entry is not an error
	require.NoError(t, j.Delete(ctx, entry.ClientRequestID))
}
