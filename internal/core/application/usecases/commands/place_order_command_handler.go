package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/core/domain/model/order"
	"gharkakhana/internal/core/domain/services"
	"gharkakhana/internal/core/ports"
)

// ErrRollbackFailed indicates that releasing already-granted reservations
// after a failed placement did not complete. This represents a leaked
// reservation and is escalated to the caller instead of being swallowed;
// the underlying release errors are attached as the cause.
var ErrRollbackFailed = errors.New("failed to roll back inventory reservations")

// PlaceOrderCommandHandler orchestrates order placement: it validates the
// request against the meal catalog, reserves inventory atomically per line
// item, and persists the assembled order inside one unit of work.
//
// The reservation discipline follows the submission order of the line
// items. If any reservation fails, reservations already granted for this
// order are released in reverse order, so either every reservation plus the
// persisted order become visible, or none do.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory)
//	placed, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, meal.ErrInsufficientInventory):
//	    // another customer got there first
//	case errors.Is(err, services.ErrMixedChefOrder):
//	    // cart spans two chefs; split it
//	case err != nil:
//	    // validation or infrastructure failure
//	default:
//	    fmt.Printf("order %s placed, total %s", placed.Number(), placed.TotalAmount())
//	}
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	assembler  *services.OrderAssembler
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
// Requires a UoWFactory for transactional persistence.
func NewPlaceOrderCommandHandler(uowFactory UoWFactory) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		assembler:  services.NewOrderAssembler(),
	}
}

// Handle processes the place-order command and returns the persisted order.
//
// Validation short-circuits on the first failure and every failure mode is
// a distinct, inspectable error: errs.ErrObjectNotFound (meal absent),
// meal.ErrMealNotOrderable, services.ErrMixedChefOrder,
// services.ErrPickupOutsideWindow, meal.ErrInsufficientInventory, and
// ErrRollbackFailed when compensating releases could not complete.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	mealRepo := uow.MealRepository()
	orderRepo := uow.OrderRepository()

	lines := make([]services.OrderLine, 0, len(cmd.LineItems()))
	for _, li := range cmd.LineItems() {
		m, err := mealRepo.GetOrderable(ctx, li.MealID())
		if err != nil {
			return nil, err
		}
		lines = append(lines, services.OrderLine{Meal: m, Quantity: li.Quantity()})
	}

	now := time.Now().UTC()
	placed, err := h.assembler.Assemble(
		kernel.NewUUID(),
		cmd.UserID(),
		lines,
		cmd.PickupDate(),
		cmd.PickupTime(),
		cmd.ContactPhone(),
		cmd.SpecialInstructions(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = h.reserveAll(ctx, mealRepo, placed.Items()); err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return placed, nil
}

// reserveAll reserves inventory for every item in submission order.
// On failure it releases the already-granted reservations in reverse
// order; if any release fails, the error escalates as ErrRollbackFailed.
func (h PlaceOrderCommandHandler) reserveAll(
	ctx context.Context,
	mealRepo ports.MealRepository,
	items []order.Item,
) error {
	for i, item := range items {
		reserveErr := mealRepo.ReserveQuantity(ctx, item.MealID(), item.Quantity())
		if reserveErr == nil {
			continue
		}

		var releaseErrs []error
		for j := i - 1; j >= 0; j-- {
			granted := items[j]
			if err := mealRepo.ReleaseQuantity(ctx, granted.MealID(), granted.Quantity()); err != nil {
				releaseErrs = append(releaseErrs, err)
			}
		}

		if len(releaseErrs) > 0 {
			return fmt.Errorf("%w: %w", ErrRollbackFailed, errors.Join(releaseErrs...))
		}

		return reserveErr
	}

	return nil
}
