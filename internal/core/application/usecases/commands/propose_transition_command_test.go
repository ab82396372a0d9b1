package commands_test

import (
	"testing"

	"orderboard/internal/core/application/usecases/commands"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProposeTransitionCommand(t *testing.T) {
	t.Run("creates valid command", func(t *testing.T) {
		id := kernel.NewUUID()

		cmd, err := commands.NewProposeTransitionCommand(id, order.Preparing, "staff-7", 3)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(id))
		assert.Equal(t, order.Preparing, cmd.Target())
		assert.Equal(t, "staff-7", cmd.ActorID())
		assert.Equal(t, int64(3), cmd.ExpectedVersion())
	})

	t.Run("accepts zero expected version", func(t *testing.T) {
		_, err := commands.NewProposeTransitionCommand(kernel.NewUUID(), order.Ready, "staff-7", 0)

		require.NoError(t, err)
	})

	t.Run("rejects unconstructed order id", func(t *testing.T) {
		var zero kernel.UUID

		_, err := commands.NewProposeTransitionCommand(zero, order.Preparing, "staff-7", 1)

		require.Error(t, err)
	})

	t.Run("rejects invalid target status", func(t *testing.T) {
		_, err := commands.NewProposeTransitionCommand(kernel.NewUUID(), order.Unknown, "staff-7", 1)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects empty actor", func(t *testing.T) {
		_, err := commands.NewProposeTransitionCommand(kernel.NewUUID(), order.Preparing, "", 1)

		require.ErrorIs(t, err, commands.ErrActorIsRequired)
	})

	t.Run("rejects negative expected version", func(t *testing.T) {
		_, err := commands.NewProposeTransitionCommand(kernel.NewUUID(), order.Preparing, "staff-7", -1)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.ProposeTransitionCommand

		err := cmd.Validate()

		require.Error(t, err)
		assert.Equal(t, commands.ErrProposeTransitionCommandIsNotConstructed, err)
	})
}

func TestProposeTransitionCommand_Accessors(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewProposeTransitionCommand(id, order.Cancelled, "manager-1", 2)
	require.NoError(t, err)

	assert.Equal(t, order.Cancelled, cmd.Target())
	assert.Equal(t, "manager-1", cmd.ActorID())
	assert.Equal(t, int64(2), cmd.ExpectedVersion())
}
