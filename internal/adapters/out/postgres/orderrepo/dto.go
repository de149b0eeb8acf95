// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, storing the order header and its line items in separate tables.
package orderrepo

import (
	"time"

	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Timestamps are owned by the domain, so GORM's automatic time tracking is
// disabled. The pickup moment is split into a date column and minutes since
// midnight so schedule queries can sort on it directly.
type OrderDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number              string          `gorm:"uniqueIndex"`
	UserID              uuid.UUID       `gorm:"type:uuid;index"`
	ChefID              uuid.UUID       `gorm:"type:uuid;index"`
	TotalAmount         decimal.Decimal `gorm:"type:numeric(12,2)"`
	PickupDate          time.Time       `gorm:"index"`
	PickupTimeMinutes   int
	ContactPhone        string
	SpecialInstructions string
	Status              int            `gorm:"index"`
	CreatedAt           time.Time      `gorm:"autoCreateTime:false"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime:false"`
	Items               []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one persisted line item. Position records the
// submission order so the aggregate's item ordering survives a round trip.
type OrderItemDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index"`
	MealID    uuid.UUID       `gorm:"type:uuid;index"`
	Position  int
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName specifies the database table name for order item entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   aggregate.ID().Bytes(),
			MealID:    item.MealID().Bytes(),
			Position:  i,
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().Decimal(),
		})
	}

	pickupTime := aggregate.PickupTime()

	return OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		Number:              aggregate.Number().String(),
		UserID:              aggregate.UserID().Bytes(),
		ChefID:              aggregate.ChefID().Bytes(),
		TotalAmount:         aggregate.TotalAmount().Decimal(),
		PickupDate:          aggregate.PickupDate(),
		PickupTimeMinutes:   pickupTime.Hour()*60 + pickupTime.Minute(),
		ContactPhone:        aggregate.ContactPhone(),
		SpecialInstructions: aggregate.SpecialInstructions(),
		Status:              int(aggregate.Status()),
		CreatedAt:           aggregate.CreatedAt(),
		UpdatedAt:           aggregate.UpdatedAt(),
		Items:               itemDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	chefID, err := kernel.UUIDFromBytes(dto.ChefID[:])
	if err != nil {
		return nil, err
	}

	number, err := order.NumberFromString(dto.Number)
	if err != nil {
		return nil, err
	}

	pickupTime, err := kernel.NewTimeOfDay(dto.PickupTimeMinutes/60, dto.PickupTimeMinutes%60)
	if err != nil {
		return nil, err
	}

	items, err := itemsToDomain(dto.Items)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		number,
		userID,
		chefID,
		items,
		dto.PickupDate,
		pickupTime,
		dto.ContactPhone,
		dto.SpecialInstructions,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func itemsToDomain(dtos []OrderItemDTO) ([]order.Item, error) {
	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}

		mealID, err := kernel.UUIDFromBytes(dto.MealID[:])
		if err != nil {
			return nil, err
		}

		price, err := kernel.MoneyFromDecimal(dto.UnitPrice)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(id, mealID, dto.Quantity, price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
