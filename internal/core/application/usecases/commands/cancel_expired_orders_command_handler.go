package commands

import (
	"context"
	"errors"
	"time"

	"gharkakhana/internal/core/domain/model/order"
)

// CancelExpiredOrdersCommandHandler sweeps orders that were never confirmed:
// Pending orders whose pickup moment passed more than the grace period ago
// are cancelled and their inventory reservations released, exactly as a
// manual cancellation would.
//
// Each expired order is processed in its own unit of work so that one bad
// record cannot block the rest of the sweep.
type CancelExpiredOrdersCommandHandler struct {
	uowFactory UoWFactory
	grace      time.Duration
}

// NewCancelExpiredOrdersCommandHandler creates the sweep handler.
// grace is how long after the declared pickup moment a Pending order is
// left alone before being cancelled.
func NewCancelExpiredOrdersCommandHandler(uowFactory UoWFactory, grace time.Duration) CancelExpiredOrdersCommandHandler {
	return CancelExpiredOrdersCommandHandler{
		uowFactory: uowFactory,
		grace:      grace,
	}
}

// Handle cancels all expired Pending orders and returns how many were
// cancelled. Per-order failures are joined into the returned error; the
// sweep continues past them.
func (h CancelExpiredOrdersCommandHandler) Handle(ctx context.Context, cmd CancelExpiredOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-h.grace)

	expired, err := h.findExpired(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	var sweepErrs []error
	for _, aggregate := range expired {
		if err := h.cancelOne(ctx, aggregate); err != nil {
			sweepErrs = append(sweepErrs, err)
			continue
		}
		cancelled++
	}

	return cancelled, errors.Join(sweepErrs...)
}

func (h CancelExpiredOrdersCommandHandler) findExpired(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expired, err := uow.OrderRepository().GetPendingBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return expired, nil
}

func (h CancelExpiredOrdersCommandHandler) cancelOne(ctx context.Context, aggregate *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := aggregate.TransitionTo(order.Cancelled, time.Now().UTC()); err != nil {
		return err
	}

	releaseErr := releaseReservations(ctx, uow.MealRepository(), aggregate)
	if releaseErr != nil && !errors.Is(releaseErr, ErrReleaseIncomplete) {
		return releaseErr
	}

	if err := uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	return releaseErr
}
