package meal

import (
	"errors"
	"fmt"

	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/pkg/errs"
)

var (
	// ErrMealIsNotConstructed is returned when a Meal instance was not created
	// through the NewMeal or RestoreMeal factory functions.
	ErrMealIsNotConstructed = errors.New("Meal must be created via NewMeal or RestoreMeal constructor")

	// ErrMealNotOrderable indicates that the meal cannot accept orders:
	// it is unpublished, deactivated, or has no remaining quantity.
	ErrMealNotOrderable = errors.New("meal is not orderable")

	// ErrInsufficientInventory indicates that the requested quantity exceeds
	// the meal's remaining available quantity.
	ErrInsufficientInventory = errors.New("insufficient inventory")
)

// Meal is the aggregate root for a chef's published dish. It owns the
// inventory that the order workflow reserves and releases, along with the
// pickup window an order must respect.
//
// Meal maintains these invariants:
//   - availableQuantity is never negative
//   - price is strictly positive
//   - a meal is orderable only when published, active, and in stock
//
// Inventory is mutated only through Reserve and Release so that the
// invariants cannot be bypassed. Concurrent reservation safety is the
// persistence adapter's responsibility (conditional update); the aggregate
// enforces the same rule for in-memory use.
type Meal struct {
	id     kernel.UUID
	chefID kernel.UUID

	name        string
	description string
	price       kernel.Money

	availableQuantity int
	totalOrders       int

	pickupWindow   kernel.PickupWindow
	pickupLocation string

	isPublished bool
	isActive    bool

	isConstructed bool
}

// NewMeal creates an unpublished, active meal for the given chef.
// The meal starts with the supplied inventory and zero orders.
//
// Validation rules:
//   - id and chefID must be valid UUIDs
//   - name and pickupLocation must not be empty
//   - price must be strictly positive
//   - availableQuantity must not be negative
//   - pickupWindow must be a constructed window
func NewMeal(
	id kernel.UUID,
	chefID kernel.UUID,
	name string,
	description string,
	price kernel.Money,
	availableQuantity int,
	pickupWindow kernel.PickupWindow,
	pickupLocation string,
) (*Meal, error) {
	m := &Meal{
		isActive:      true,
		isConstructed: true,
	}

	if err := errors.Join(
		m.setID(id),
		m.setChefID(chefID),
		m.setName(name),
		m.setPrice(price),
		m.setAvailableQuantity(availableQuantity),
		m.setPickupWindow(pickupWindow),
		m.setPickupLocation(pickupLocation),
	); err != nil {
		return nil, err
	}

	m.description = description
	return m, nil
}

// RestoreMeal reconstructs a meal from persistence, including publication
// state and order counters. The restored meal behaves identically to one
// built through normal domain operations.
func RestoreMeal(
	id kernel.UUID,
	chefID kernel.UUID,
	name string,
	description string,
	price kernel.Money,
	availableQuantity int,
	totalOrders int,
	pickupWindow kernel.PickupWindow,
	pickupLocation string,
	isPublished bool,
	isActive bool,
) (*Meal, error) {
	m, err := NewMeal(id, chefID, name, description, price, availableQuantity, pickupWindow, pickupLocation)
	if err != nil {
		return nil, err
	}

	if totalOrders < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalOrders",
			fmt.Errorf("%d is negative", totalOrders))
	}

	m.totalOrders = totalOrders
	m.isPublished = isPublished
	m.isActive = isActive
	return m, nil
}

// Validate ensures the Meal instance was properly constructed.
func (m *Meal) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMealIsNotConstructed
	}
	return nil
}

// IsEqual compares two meals by identity.
func (m *Meal) IsEqual(other *Meal) bool {
	return other != nil && m.id.IsEqual(other.id)
}

// ID returns the meal's unique identifier.
func (m *Meal) ID() kernel.UUID {
	return m.id
}

// ChefID returns the identifier of the chef who owns this meal.
func (m *Meal) ChefID() kernel.UUID {
	return m.chefID
}

// Name returns the meal's display name.
func (m *Meal) Name() string {
	return m.name
}

// Description returns the meal's description.
func (m *Meal) Description() string {
	return m.description
}

// Price returns the current unit price.
func (m *Meal) Price() kernel.Money {
	return m.price
}

// AvailableQuantity returns the remaining inventory.
func (m *Meal) AvailableQuantity() int {
	return m.availableQuantity
}

// TotalOrders returns the informational counter of successful reservations.
func (m *Meal) TotalOrders() int {
	return m.totalOrders
}

// PickupWindow returns the date and time range during which the meal may be collected.
func (m *Meal) PickupWindow() kernel.PickupWindow {
	return m.pickupWindow
}

// PickupLocation returns where the meal is collected.
func (m *Meal) PickupLocation() string {
	return m.pickupLocation
}

// IsPublished reports whether the chef has made the meal visible to customers.
func (m *Meal) IsPublished() bool {
	return m.isPublished
}

// IsActive reports whether the meal is active in the catalog.
func (m *Meal) IsActive() bool {
	return m.isActive
}

// Publish makes the meal visible and orderable (subject to inventory).
func (m *Meal) Publish() {
	m.isPublished = true
}

// Unpublish hides the meal from customers without deleting it.
func (m *Meal) Unpublish() {
	m.isPublished = false
}

// Deactivate takes the meal out of the catalog. Existing orders are
// unaffected; cancellations still release inventory against the record.
func (m *Meal) Deactivate() {
	m.isActive = false
}

// IsOrderable reports whether the meal can accept new orders:
// it must be published, active, and have remaining inventory.
func (m *Meal) IsOrderable() bool {
	return m.isPublished && m.isActive && m.availableQuantity > 0
}

// Reserve decrements available inventory by qty and increments the order
// counter. The decrement never drives availableQuantity negative: when qty
// exceeds the remaining quantity, ErrInsufficientInventory is returned and
// the meal is left unchanged.
func (m *Meal) Reserve(qty int) error {
	if qty < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", qty, 1, m.availableQuantity)
	}
	if !m.IsOrderable() {
		return ErrMealNotOrderable
	}
	if qty > m.availableQuantity {
		return fmt.Errorf("%w: requested %d, available %d", ErrInsufficientInventory, qty, m.availableQuantity)
	}

	m.availableQuantity -= qty
	m.totalOrders++
	return nil
}

// Release restores previously reserved inventory, compensating a
// reservation when its order is cancelled.
func (m *Meal) Release(qty int) error {
	if qty < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", qty, 1, qty)
	}

	m.availableQuantity += qty
	return nil
}

func (m *Meal) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Meal) setChefID(chefID kernel.UUID) error {
	if err := chefID.Validate(); err != nil {
		return err
	}
	m.chefID = chefID
	return nil
}

func (m *Meal) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	m.name = name
	return nil
}

func (m *Meal) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	if !price.GreaterThanZero() {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%s is not greater than 0", price))
	}
	m.price = price
	return nil
}

func (m *Meal) setAvailableQuantity(qty int) error {
	if qty < 0 {
		return errs.NewValueIsInvalidErrorWithCause("availableQuantity",
			fmt.Errorf("%d is negative", qty))
	}
	m.availableQuantity = qty
	return nil
}

func (m *Meal) setPickupWindow(window kernel.PickupWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}
	m.pickupWindow = window
	return nil
}

func (m *Meal) setPickupLocation(location string) error {
	if location == "" {
		return errs.NewValueIsRequiredError("pickupLocation")
	}
	m.pickupLocation = location
	return nil
}
