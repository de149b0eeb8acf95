package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gharkakhana/internal/core/domain/model/order"
	"gharkakhana/internal/core/ports"
	"gharkakhana/internal/pkg/errs"
)

// ErrReleaseIncomplete indicates that a cancellation committed but one or
// more inventory releases could not be applied (e.g. the meal record was
// removed after placement). The affected quantities must be reconciled
// out-of-band; the error carries the per-item causes.
var ErrReleaseIncomplete = errors.New("order cancelled but some inventory releases failed")

// TransitionOrderStatusCommandHandler moves an order along its lifecycle.
// Legal transitions are decided by the Order aggregate's state machine;
// the handler adds the cross-aggregate side effect: transitioning to
// Cancelled releases every line item's inventory reservation.
//
// Releases on cancellation are best-effort per item. A missing meal record
// does not veto the cancellation: the new status commits and the failure
// is reported via ErrReleaseIncomplete so it is never silently hidden.
// Any other infrastructure failure aborts the whole transaction.
type TransitionOrderStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewTransitionOrderStatusCommandHandler creates a handler for status transitions.
// Requires a UoWFactory for transactional persistence.
func NewTransitionOrderStatusCommandHandler(uowFactory UoWFactory) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transition command and returns the updated order.
//
// Failure modes: errs.ErrObjectNotFound when the order does not exist,
// order.ErrInvalidTransition when the edge is not in the lifecycle, and
// ErrReleaseIncomplete when a cancellation committed with leaked inventory.
// In the last case the returned order is valid and carries the Cancelled
// status alongside the error.
func (h TransitionOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderStatusCommand,
) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.TransitionTo(cmd.Status(), time.Now().UTC()); err != nil {
		return nil, err
	}

	var releaseErr error
	if cmd.Status() == order.Cancelled {
		releaseErr = releaseReservations(ctx, uow.MealRepository(), aggregate)
		if releaseErr != nil && !errors.Is(releaseErr, ErrReleaseIncomplete) {
			return nil, releaseErr
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, releaseErr
}

// releaseReservations compensates the reservations of a cancelled order.
// Missing meal records are collected and reported as ErrReleaseIncomplete;
// any other failure is returned as-is and aborts the cancellation.
func releaseReservations(ctx context.Context, mealRepo ports.MealRepository, aggregate *order.Order) error {
	var missing []error
	for _, item := range aggregate.Items() {
		err := mealRepo.ReleaseQuantity(ctx, item.MealID(), item.Quantity())
		if err == nil {
			continue
		}
		if errors.Is(err, errs.ErrObjectNotFound) {
			missing = append(missing, err)
			continue
		}
		return err
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %w", ErrReleaseIncomplete, errors.Join(missing...))
	}

	return nil
}
