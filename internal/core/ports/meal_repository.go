// Package ports defines repository interfaces for the marketplace domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/core/domain/model/meal"
)

// MealRepository defines the persistence contract for the meal catalog,
// including the atomic inventory operations the order workflow depends on.
type MealRepository interface {
	// Add persists a new meal aggregate to storage.
	Add(ctx context.Context, aggregate *meal.Meal) error

	// Update persists changes to an existing meal aggregate.
	Update(ctx context.Context, aggregate *meal.Meal) error

	// Get retrieves a meal by its unique identifier regardless of its
	// publication state. Returns errs.ErrObjectNotFound if absent.
	Get(ctx context.Context, id kernel.UUID) (*meal.Meal, error)

	// GetOrderable retrieves a meal that can currently accept orders.
	// Returns errs.ErrObjectNotFound if the meal does not exist and
	// meal.ErrMealNotOrderable if it exists but is unpublished, inactive,
	// or out of stock, so callers can distinguish the two.
	GetOrderable(ctx context.Context, id kernel.UUID) (*meal.Meal, error)

	// ReserveQuantity atomically decrements the meal's available quantity
	// and increments its order counter. The decrement is conditional on
	// sufficient stock: two concurrent reservations can never oversell.
	// Returns meal.ErrInsufficientInventory when stock is too low and
	// errs.ErrObjectNotFound when the meal does not exist.
	ReserveQuantity(ctx context.Context, id kernel.UUID, qty int) error

	// ReleaseQuantity atomically restores previously reserved quantity,
	// compensating a reservation when an order is cancelled.
	ReleaseQuantity(ctx context.Context, id kernel.UUID, qty int) error
}
