package ports

import (
	"context"
	"time"

	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates
// and the list views the marketplace exposes to customers and chefs.
type OrderRepository interface {
	// Add persists a new order aggregate together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Only the mutable fields (status, update timestamp) are written;
	// items and totals are immutable after placement.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items by unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByUser retrieves a customer's orders, most recent first.
	GetByUser(ctx context.Context, userID kernel.UUID) ([]*order.Order, error)

	// GetByChef retrieves a chef's incoming orders, most recent first.
	GetByChef(ctx context.Context, chefID kernel.UUID) ([]*order.Order, error)

	// GetByChefAndStatus retrieves a chef's orders in the given status,
	// most recent first.
	GetByChefAndStatus(ctx context.Context, chefID kernel.UUID, status order.Status) ([]*order.Order, error)

	// GetByChefAndPickupDate retrieves a chef's orders for a pickup date,
	// ordered by pickup time ascending for the day's schedule.
	GetByChefAndPickupDate(ctx context.Context, chefID kernel.UUID, date time.Time) ([]*order.Order, error)

	// GetPendingBefore retrieves orders still Pending whose declared
	// pickup moment lies before the given cutoff. Used by the expiry job.
	GetPendingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
