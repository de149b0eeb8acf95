package orderrepo

import (
	"context"
	"errors"
	"time"

	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/core/domain/model/order"
	"gharkakhana/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its items to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves an existing order to the database.
// Items and totals are immutable after placement, so only the status and
// update timestamp are written.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{
			"status":     int(aggregate.Status()),
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its items by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Preload("Items", itemsInSubmissionOrder).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByUser retrieves a customer's orders, most recent first.
func (r *GormOrderRepository) GetByUser(ctx context.Context, userID kernel.UUID) ([]*order.Order, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	return r.find(ctx, "created_at DESC", "user_id = ?", userID.Bytes())
}

// GetByChef retrieves a chef's incoming orders, most recent first.
func (r *GormOrderRepository) GetByChef(ctx context.Context, chefID kernel.UUID) ([]*order.Order, error) {
	if err := chefID.Validate(); err != nil {
		return nil, err
	}

	return r.find(ctx, "created_at DESC", "chef_id = ?", chefID.Bytes())
}

// GetByChefAndStatus retrieves a chef's orders in one status, most recent first.
func (r *GormOrderRepository) GetByChefAndStatus(
	ctx context.Context,
	chefID kernel.UUID,
	status order.Status,
) ([]*order.Order, error) {
	if err := chefID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return r.find(ctx, "created_at DESC", "chef_id = ? AND status = ?", chefID.Bytes(), int(status))
}

// GetByChefAndPickupDate retrieves a chef's orders for a pickup date,
// earliest pickup first.
func (r *GormOrderRepository) GetByChefAndPickupDate(
	ctx context.Context,
	chefID kernel.UUID,
	date time.Time,
) ([]*order.Order, error) {
	if err := chefID.Validate(); err != nil {
		return nil, err
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return r.find(ctx, "pickup_time_minutes", "chef_id = ? AND pickup_date = ?", chefID.Bytes(), day)
}

// GetPendingBefore retrieves Pending orders whose declared pickup moment
// lies before the cutoff.
func (r *GormOrderRepository) GetPendingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	return r.find(ctx, "created_at",
		"status = ? AND pickup_date + make_interval(mins => pickup_time_minutes) < ?",
		int(order.Pending), cutoff)
}

func (r *GormOrderRepository) find(
	ctx context.Context,
	orderBy string,
	condition string,
	values ...any,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Items", itemsInSubmissionOrder).
		Where(condition, values...).Order(orderBy).Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func itemsInSubmissionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
