package order

import (
	"errors"
	"fmt"

	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item was not created through
// the NewItem factory function.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a line item inside an Order. It holds a non-owning reference to
// the meal plus the quantity and the unit price captured at placement time.
// The price snapshot is deliberately independent of later meal price
// changes: what the customer saw is what the customer pays.
//
// Items are exclusively owned by their Order and immutable after creation.
type Item struct {
	id        kernel.UUID
	mealID    kernel.UUID
	quantity  int
	unitPrice kernel.Money

	isConstructed bool
}

// NewItem creates a line item for the given meal.
// Quantity must be at least 1 and unitPrice strictly positive.
func NewItem(id kernel.UUID, mealID kernel.UUID, quantity int, unitPrice kernel.Money) (Item, error) {
	item := Item{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setMealID(mealID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item was properly constructed.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i Item) ID() kernel.UUID {
	return i.id
}

// MealID returns the identifier of the referenced meal.
func (i Item) MealID() kernel.UUID {
	return i.mealID
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price captured at order time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Subtotal returns unit price times quantity.
func (i Item) Subtotal() kernel.Money {
	return i.unitPrice.MulInt(i.quantity)
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setMealID(mealID kernel.UUID) error {
	if err := mealID.Validate(); err != nil {
		return err
	}
	i.mealID = mealID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is less than 1", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	if !unitPrice.GreaterThanZero() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%s is not greater than 0", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}
