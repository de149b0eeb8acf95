package commands_test

import (
	"errors"
	"testing"
	"time"

	"gharkakhana/internal/core/application/usecases/commands"
	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/core/domain/model/order"
	"gharkakhana/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testOrderItem(t *testing.T, mealID kernel.UUID, qty int) order.Item {
	t.Helper()
	price, err := kernel.NewMoneyFromString("10.00")
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), mealID, qty, price)
	require.NoError(t, err)
	return item
}

func testOrderInStatus(t *testing.T, status order.Status, items []order.Item) *order.Order {
	t.Helper()
	placedAt := time.Date(2025, 3, 9, 18, 30, 0, 0, time.UTC)
	o, err := order.RestoreOrder(kernel.NewUUID(), order.NewNumber(placedAt),
		kernel.NewUUID(), kernel.NewUUID(), items,
		testPickupDate, testPickupTime(t), "+91-9876543210", "",
		status, placedAt, placedAt)
	require.NoError(t, err)
	return o
}

func TestTransitionOrderStatusCommandHandler_Handle_Confirm(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrderInStatus(t, order.Pending,
		[]order.Item{testOrderItem(t, kernel.NewUUID(), 2)})
	cmd, err := commands.NewTransitionOrderStatusCommand(aggregate.ID(), order.Confirmed)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderStatusCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, order.Confirmed, updated.Status())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_Handle_CancelReleasesEveryItem(t *testing.T) {
	ctx := t.Context()
	mealOneID := kernel.NewUUID()
	mealTwoID := kernel.NewUUID()
	aggregate := testOrderInStatus(t, order.Confirmed, []order.Item{
		testOrderItem(t, mealOneID, 2),
		testOrderItem(t, mealTwoID, 1),
	})
	cmd, err := commands.NewTransitionOrderStatusCommand(aggregate.ID(), order.Cancelled)
	require.NoError(t, err)

	mealRepo := new(MockMealRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("MealRepository").Return(mealRepo).Once(),
		mealRepo.On("ReleaseQuantity", mock.Anything, mealOneID, 2).Return(nil).Once(),
		mealRepo.On("ReleaseQuantity", mock.Anything, mealTwoID, 1).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderStatusCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, updated.Status())
	mealRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewTransitionOrderStatusCommand(orderID, order.Confirmed)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderId", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderStatusCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_Handle_IllegalTransition(t *testing.T) {
	ctx := t.Context()
	aggregate := testOrderInStatus(t, order.Ready,
		[]order.Item{testOrderItem(t, kernel.NewUUID(), 1)})
	cmd, err := commands.NewTransitionOrderStatusCommand(aggregate.ID(), order.Cancelled)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderStatusCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, order.Ready, aggregate.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_Handle_CancelWithMissingMealCommits(t *testing.T) {
	ctx := t.Context()
	mealOneID := kernel.NewUUID()
	mealTwoID := kernel.NewUUID()
	aggregate := testOrderInStatus(t, order.Pending, []order.Item{
		testOrderItem(t, mealOneID, 2),
		testOrderItem(t, mealTwoID, 1),
	})
	cmd, err := commands.NewTransitionOrderStatusCommand(aggregate.ID(), order.Cancelled)
	require.NoError(t, err)

	mealRepo := new(MockMealRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("MealRepository").Return(mealRepo).Once(),
		mealRepo.On("ReleaseQuantity", mock.Anything, mealOneID, 2).
			Return(errs.NewObjectNotFoundError("mealId", mealOneID)).Once(),
		mealRepo.On("ReleaseQuantity", mock.Anything, mealTwoID, 1).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderStatusCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrReleaseIncomplete)
	// the cancellation itself committed; only the release leaked
	require.NotNil(t, updated)
	assert.Equal(t, order.Cancelled, updated.Status())
	mealRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestTransitionOrderStatusCommandHandler_Handle_CancelAbortsOnInfrastructureError(t *testing.T) {
	ctx := t.Context()
	mealID := kernel.NewUUID()
	aggregate := testOrderInStatus(t, order.Pending,
		[]order.Item{testOrderItem(t, mealID, 1)})
	cmd, err := commands.NewTransitionOrderStatusCommand(aggregate.ID(), order.Cancelled)
	require.NoError(t, err)

	mealRepo := new(MockMealRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("MealRepository").Return(mealRepo).Once(),
		mealRepo.On("ReleaseQuantity", mock.Anything, mealID, 1).
			Return(errors.New("connection reset")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewTransitionOrderStatusCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	mealRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
