package services

import (
	"errors"
	"fmt"
	"time"

	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/core/domain/model/meal"
	"gharkakhana/internal/core/domain/model/order"
)

var (
	// ErrMixedChefOrder indicates that the requested line items reference
	// meals from more than one chef. An order is fulfilled by exactly one
	// chef; mixed carts must be split by the caller.
	ErrMixedChefOrder = errors.New("order cannot mix meals from different chefs")

	// ErrPickupOutsideWindow indicates that the declared pickup date/time
	// does not fall inside the pickup window of every requested meal.
	ErrPickupOutsideWindow = errors.New("pickup is outside the meal's pickup window")
)

// OrderLine pairs a fetched meal with the requested quantity,
// in the submission order of the customer's cart.
type OrderLine struct {
	Meal     *meal.Meal
	Quantity int
}

// OrderAssembler is the domain service that validates a place-order request
// against the meal catalog and assembles the Order aggregate. It enforces
// the rules that span both aggregates and cannot live in either one:
//
//  1. every referenced meal is orderable
//  2. all meals belong to a single chef
//  3. the declared pickup falls inside every meal's window
//
// On success it snapshots each meal's current price into the line items and
// produces a Pending order with a freshly generated order number. Inventory
// reservation is not performed here; it belongs to the transactional
// application layer.
type OrderAssembler struct {
}

// NewOrderAssembler creates the assembler service.
func NewOrderAssembler() *OrderAssembler {
	return &OrderAssembler{}
}

// Assemble validates the request and builds the Order aggregate.
// Validation short-circuits on the first failure, in the order listed above,
// so the caller always learns the earliest problem with the request.
func (a *OrderAssembler) Assemble(
	orderID kernel.UUID,
	userID kernel.UUID,
	lines []OrderLine,
	pickupDate time.Time,
	pickupTime kernel.TimeOfDay,
	contactPhone string,
	specialInstructions string,
	now time.Time,
) (*order.Order, error) {
	if len(lines) == 0 {
		return nil, order.ErrOrderHasNoItems
	}

	for _, line := range lines {
		if err := line.Meal.Validate(); err != nil {
			return nil, err
		}
		if !line.Meal.IsOrderable() {
			return nil, fmt.Errorf("%w: %s", meal.ErrMealNotOrderable, line.Meal.ID())
		}
	}

	chefID := lines[0].Meal.ChefID()
	for _, line := range lines[1:] {
		if !line.Meal.ChefID().IsEqual(chefID) {
			return nil, ErrMixedChefOrder
		}
	}

	for _, line := range lines {
		if !line.Meal.PickupWindow().Contains(pickupDate, pickupTime) {
			return nil, fmt.Errorf("%w: %s", ErrPickupOutsideWindow, line.Meal.ID())
		}
	}

	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		item, err := order.NewItem(kernel.NewUUID(), line.Meal.ID(), line.Quantity, line.Meal.Price())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.NewOrder(
		orderID,
		order.NewNumber(now),
		userID,
		chefID,
		items,
		pickupDate,
		pickupTime,
		contactPhone,
		specialInstructions,
		now,
	)
}
