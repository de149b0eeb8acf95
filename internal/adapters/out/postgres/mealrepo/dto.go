// Package mealrepo provides data transfer objects and mapping functions for
// meal persistence. It implements the repository pattern for the meal
// aggregate, including the atomic inventory operations the order workflow
// relies on.
package mealrepo

import (
	"time"

	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/core/domain/model/meal"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MealDTO represents the database structure for persisting meal aggregates.
// The pickup window is flattened into a date plus start and end minutes
// since midnight; inventory columns are mutated only through conditional
// updates so concurrent reservations cannot oversell.
type MealDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChefID             uuid.UUID `gorm:"type:uuid;index"`
	Name               string
	Description        string
	Price              decimal.Decimal `gorm:"type:numeric(12,2)"`
	AvailableQuantity  int
	TotalOrders        int
	PickupDate         time.Time `gorm:"index"`
	PickupStartMinutes int
	PickupEndMinutes   int
	PickupLocation     string
	IsPublished        bool
	IsActive           bool
}

// TableName specifies the database table name for meal entities.
func (MealDTO) TableName() string {
	return "meals"
}

func minutesOf(t kernel.TimeOfDay) int {
	return t.Hour()*60 + t.Minute()
}

// fromDomain converts a meal domain aggregate to its database representation.
func fromDomain(aggregate *meal.Meal) MealDTO {
	window := aggregate.PickupWindow()

	return MealDTO{
		ID:                 aggregate.ID().Bytes(),
		ChefID:             aggregate.ChefID().Bytes(),
		Name:               aggregate.Name(),
		Description:        aggregate.Description(),
		Price:              aggregate.Price().Decimal(),
		AvailableQuantity:  aggregate.AvailableQuantity(),
		TotalOrders:        aggregate.TotalOrders(),
		PickupDate:         window.Date(),
		PickupStartMinutes: minutesOf(window.Start()),
		PickupEndMinutes:   minutesOf(window.End()),
		PickupLocation:     aggregate.PickupLocation(),
		IsPublished:        aggregate.IsPublished(),
		IsActive:           aggregate.IsActive(),
	}
}

// toDomain converts a database DTO to a meal domain aggregate using RestoreMeal.
func toDomain(dto MealDTO) (*meal.Meal, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	chefID, err := kernel.UUIDFromBytes(dto.ChefID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.MoneyFromDecimal(dto.Price)
	if err != nil {
		return nil, err
	}

	start, err := kernel.NewTimeOfDay(dto.PickupStartMinutes/60, dto.PickupStartMinutes%60)
	if err != nil {
		return nil, err
	}

	end, err := kernel.NewTimeOfDay(dto.PickupEndMinutes/60, dto.PickupEndMinutes%60)
	if err != nil {
		return nil, err
	}

	window, err := kernel.NewPickupWindow(dto.PickupDate, start, end)
	if err != nil {
		return nil, err
	}

	return meal.RestoreMeal(
		id,
		chefID,
		dto.Name,
		dto.Description,
		price,
		dto.AvailableQuantity,
		dto.TotalOrders,
		window,
		dto.PickupLocation,
		dto.IsPublished,
		dto.IsActive,
	)
}
