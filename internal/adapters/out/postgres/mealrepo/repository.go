package mealrepo

import (
	"context"
	"errors"
	"fmt"

	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/core/domain/model/meal"
	"gharkakhana/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMealRepository implements MealRepository using GORM.
type GormMealRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormMealRepository creates a new GORM meal repository.
func NewGormMealRepository(db *gorm.DB, tracker aggregateTracker) *GormMealRepository {
	return &GormMealRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new meal to the database.
func (r *GormMealRepository) Add(ctx context.Context, aggregate *meal.Meal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing meal to the database.
func (r *GormMealRepository) Update(ctx context.Context, aggregate *meal.Meal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&MealDTO{}).Where("id = ?", dto.ID).
		Select("*").Omit("id").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a meal by ID regardless of its publication state.
func (r *GormMealRepository) Get(ctx context.Context, id kernel.UUID) (*meal.Meal, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MealDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("meal", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOrderable retrieves a meal that can currently accept orders.
// Distinguishes a missing meal from one that exists but cannot be ordered.
func (r *GormMealRepository) GetOrderable(ctx context.Context, id kernel.UUID) (*meal.Meal, error) {
	aggregate, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !aggregate.IsOrderable() {
		return nil, fmt.Errorf("meal %s: %w", id, meal.ErrMealNotOrderable)
	}

	return aggregate, nil
}

// ReserveQuantity atomically decrements available inventory and increments
// the order counter. The decrement is a single conditional UPDATE, so two
// concurrent reservations can never drive the quantity negative: the losing
// transaction matches zero rows and gets an error instead.
func (r *GormMealRepository) ReserveQuantity(ctx context.Context, id kernel.UUID, qty int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if qty < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", qty, 1, qty)
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE meals
		SET available_quantity = available_quantity - ?,
		    total_orders = total_orders + 1
		WHERE id = ?
		  AND is_published
		  AND is_active
		  AND available_quantity >= ?
	`, qty, id.Bytes(), qty)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return r.explainReservationFailure(ctx, id, qty)
	}

	return nil
}

// explainReservationFailure probes the meal row to turn a zero-row
// conditional update into the precise business error.
func (r *GormMealRepository) explainReservationFailure(ctx context.Context, id kernel.UUID, qty int) error {
	aggregate, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	if !aggregate.IsOrderable() {
		return fmt.Errorf("meal %s: %w", id, meal.ErrMealNotOrderable)
	}

	return fmt.Errorf("%w: requested %d, available %d",
		meal.ErrInsufficientInventory, qty, aggregate.AvailableQuantity())
}

// ReleaseQuantity atomically restores previously reserved inventory.
func (r *GormMealRepository) ReleaseQuantity(ctx context.Context, id kernel.UUID, qty int) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if qty < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", qty, 1, qty)
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE meals
		SET available_quantity = available_quantity + ?
		WHERE id = ?
	`, qty, id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("meal", id.String())
	}

	return nil
}
