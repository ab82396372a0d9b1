package commands_test

import (
	"context"
	"testing"
	"time"

	"orderboard/internal/core/application/usecases/commands"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/clock"
	"orderboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderStore struct{ mock.Mock }

func (m *MockOrderStore) Get(id kernel.UUID) (*order.Order, bool) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*order.Order), args.Bool(1)
}

func (m *MockOrderStore) Snapshot() []*order.Order {
	args := m.Called()
	return args.Get(0).([]*order.Order)
}

func (m *MockOrderStore) Upsert(o *order.Order) bool {
	args := m.Called(o)
	return args.Bool(0)
}

func (m *MockOrderStore) Correct(o *order.Order) bool {
	args := m.Called(o)
	return args.Bool(0)
}

func (m *MockOrderStore) Remove(id kernel.UUID) bool {
	args := m.Called(id)
	return args.Bool(0)
}

func (m *MockOrderStore) Subscribe(listener func()) func() {
	args := m.Called(listener)
	return args.Get(0).(func())
}

func (m *MockOrderStore) Revision() uint64 {
	args := m.Called()
	return args.Get(0).(uint64)
}

type MockTransitionPusher struct{ mock.Mock }

func (m *MockTransitionPusher) EnqueuePush(record ports.TransitionRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockTransitionPusher) HasPending(orderID kernel.UUID) bool {
	args := m.Called(orderID)
	return args.Bool(0)
}

var handlerBase = time.Date(2025, 9, 22, 18, 0, 0, 0, time.UTC)

func storedOrder(t *testing.T, id kernel.UUID, status order.Status, version int64) *order.Order {
	t.Helper()
	item, err := order.NewLineItem("Bruschetta", 1, 700)
	require.NoError(t, err)

	o, err := order.RestoreOrder(id, "SKN-20250922-007", "3", status,
		[]order.LineItem{item}, handlerBase, handlerBase, version)
	require.NoError(t, err)
	return o
}

func TestProposeTransitionCommandHandler_Handle_Success(t *testing.T) {
	ctx := context.Background()
	id := kernel.NewUUID()
	cmd, _ := commands.NewProposeTransitionCommand(id, order.Preparing, "staff-7", 3)

	store := new(MockOrderStore)
	pusher := new(MockTransitionPusher)
	fake := clock.NewFake(handlerBase.Add(time.Minute))

	expectedRecord := ports.TransitionRecord{
		OrderID:    id,
		FromStatus: order.New,
		ToStatus:   order.Preparing,
		Version:    4,
	}

	mock.InOrder(
		store.On("Get", id).Return(storedOrder(t, id, order.New, 3), true).Once(),
		pusher.On("HasPending", id).Return(false).Once(),
		pusher.On("EnqueuePush", expectedRecord).Return(nil).Once(),
		store.On("Upsert", mock.AnythingOfType("*order.Order")).Return(true).Once(),
	)

	h := commands.NewProposeTransitionCommandHandler(store, pusher, fake)
	record, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, expectedRecord, record)
	assert.Equal(t, int64(3), record.ExpectedVersion())
	store.AssertExpectations(t)
	pusher.AssertExpectations(t)

	// the upserted order carries the optimistic state
	upserted := store.Calls[1].Arguments.Get(0).(*order.Order)
	assert.Equal(t, order.Preparing, upserted.Status())
	assert.Equal(t, int64(4), upserted.Version())
	assert.Equal(t, handlerBase.Add(time.Minute), upserted.UpdatedAt())
}

func TestProposeTransitionCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := context.Background()
	var cmd commands.ProposeTransitionCommand // not constructed properly

	h := commands.NewProposeTransitionCommandHandler(
		new(MockOrderStore), new(MockTransitionPusher), clock.NewFake(handlerBase))
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
}

func TestProposeTransitionCommandHandler_Handle_StaleOrder(t *testing.T) {
	ctx := context.Background()
	id := kernel.NewUUID()
	cmd, _ := commands.NewProposeTransitionCommand(id, order.Preparing, "staff-7", 0)

	store := new(MockOrderStore)
	store.On("Get", id).Return(nil, false).Once()

	h := commands.NewProposeTransitionCommandHandler(store, new(MockTransitionPusher), clock.NewFake(handlerBase))
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStaleOrder)
	store.AssertExpectations(t)
}

func TestProposeTransitionCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := context.Background()
	id := kernel.NewUUID()
	cmd, _ := commands.NewProposeTransitionCommand(id, order.Ready, "staff-7", 3)

	store := new(MockOrderStore)
	store.On("Get", id).Return(storedOrder(t, id, order.Preparing, 4), true).Once()

	h := commands.NewProposeTransitionCommandHandler(store, new(MockTransitionPusher), clock.NewFake(handlerBase))
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionConflict)
	var conflict *errs.VersionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(3), conflict.ExpectedVersion)
	assert.Equal(t, int64(4), conflict.ActualVersion)
	store.AssertExpectations(t)
}

func TestProposeTransitionCommandHandler_Handle_TransitionPending(t *testing.T) {
	ctx := context.Background()
	id := kernel.NewUUID()
	cmd, _ := commands.NewProposeTransitionCommand(id, order.Preparing, "staff-7", 0)

	store := new(MockOrderStore)
	pusher := new(MockTransitionPusher)
	mock.InOrder(
		store.On("Get", id).Return(storedOrder(t, id, order.New, 3), true).Once(),
		pusher.On("HasPending", id).Return(true).Once(),
	)

	h := commands.NewProposeTransitionCommandHandler(store, pusher, clock.NewFake(handlerBase))
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrTransitionPending)
	store.AssertExpectations(t)
	pusher.AssertExpectations(t)
}

func TestProposeTransitionCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := context.Background()
	id := kernel.NewUUID()
	cmd, _ := commands.NewProposeTransitionCommand(id, order.Served, "staff-7", 0)

	store := new(MockOrderStore)
	pusher := new(MockTransitionPusher)
	mock.InOrder(
		store.On("Get", id).Return(storedOrder(t, id, order.New, 3), true).Once(),
		pusher.On("HasPending", id).Return(false).Once(),
	)

	h := commands.NewProposeTransitionCommandHandler(store, pusher, clock.NewFake(handlerBase))
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrIllegalTransition)
	// store never upserted, pusher never enqueued
	store.AssertNotCalled(t, "Upsert", mock.Anything)
	pusher.AssertNotCalled(t, "EnqueuePush", mock.Anything)
}

func TestProposeTransitionCommandHandler_Handle_EnqueueError(t *testing.T) {
	ctx := context.Background()
	id := kernel.NewUUID()
	cmd, _ := commands.NewProposeTransitionCommand(id, order.Preparing, "staff-7", 0)

	store := new(MockOrderStore)
	pusher := new(MockTransitionPusher)
	mock.InOrder(
		store.On("Get", id).Return(storedOrder(t, id, order.New, 3), true).Once(),
		pusher.On("HasPending", id).Return(false).Once(),
		pusher.On("EnqueuePush", mock.AnythingOfType("ports.TransitionRecord")).
			Return(errs.NewTransitionPendingError(id.String())).Once(),
	)

	h := commands.NewProposeTransitionCommandHandler(store, pusher, clock.NewFake(handlerBase))
	_, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrTransitionPending)
	store.AssertNotCalled(t, "Upsert", mock.Anything)
}
