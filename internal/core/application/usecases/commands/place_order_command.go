package commands

import (
	"errors"
	"time"

	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/pkg/errs"
	"gharkakhana/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrLineItemIsNotConstructed = errors.New(
		"LineItem must be created via NewLineItem constructor",
	)
	ErrNoLineItems = errors.New("at least one line item is required")
)

// LineItem is a (meal, quantity) pair submitted as part of a place-order
// request. Quantity must be at least 1.
type LineItem struct {
	mealID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

// NewLineItem creates a validated line item for the command.
func NewLineItem(mealID kernel.UUID, quantity int) (LineItem, error) {
	if err := mealID.Validate(); err != nil {
		return LineItem{}, err
	}
	if quantity < 1 {
		return LineItem{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, quantity)
	}

	return LineItem{
		mealID:   mealID,
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the line item was created through the constructor.
func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// MealID returns the referenced meal's identifier.
func (li LineItem) MealID() kernel.UUID {
	return li.mealID
}

// Quantity returns the requested quantity.
func (li LineItem) Quantity() int {
	return li.quantity
}

// PlaceOrderCommand represents a customer's request to place an order for
// pickup: the line items, the declared pickup moment, and contact details.
//
// Example:
//
//	item, _ := NewLineItem(mealID, 2)
//	cmd, err := NewPlaceOrderCommand(userID, []LineItem{item},
//	    pickupDate, pickupTime, "+91-9876543210", "ring the bell")
//	if err != nil {
//	    return fmt.Errorf("invalid order request: %w", err)
//	}
//
//	placed, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	userID              kernel.UUID
	lineItems           []LineItem
	pickupDate          time.Time
	pickupTime          kernel.TimeOfDay
	contactPhone        string
	specialInstructions string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place an order.
// Validates that the user ID is valid, at least one line item is present
// and constructed, the pickup moment is supplied, and a contact phone is
// given. Special instructions are optional.
func NewPlaceOrderCommand(
	userID kernel.UUID,
	lineItems []LineItem,
	pickupDate time.Time,
	pickupTime kernel.TimeOfDay,
	contactPhone string,
	specialInstructions string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		specialInstructions: specialInstructions,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setLineItems(lineItems),
		cmd.setPickup(pickupDate, pickupTime),
		cmd.setContactPhone(contactPhone),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// UserID returns the ordering customer's identifier.
func (c PlaceOrderCommand) UserID() kernel.UUID {
	return c.userID
}

// LineItems returns the requested line items in submission order.
func (c PlaceOrderCommand) LineItems() []LineItem {
	items := make([]LineItem, len(c.lineItems))
	copy(items, c.lineItems)
	return items
}

// PickupDate returns the declared pickup date.
func (c PlaceOrderCommand) PickupDate() time.Time {
	return c.pickupDate
}

// PickupTime returns the declared pickup time of day.
func (c PlaceOrderCommand) PickupTime() kernel.TimeOfDay {
	return c.pickupTime
}

// ContactPhone returns the customer's pickup contact number.
func (c PlaceOrderCommand) ContactPhone() string {
	return c.contactPhone
}

// SpecialInstructions returns the optional free-form instructions.
func (c PlaceOrderCommand) SpecialInstructions() string {
	return c.specialInstructions
}

func (c *PlaceOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *PlaceOrderCommand) setLineItems(lineItems []LineItem) error {
	if len(lineItems) == 0 {
		return ErrNoLineItems
	}
	for _, li := range lineItems {
		if err := li.Validate(); err != nil {
			return err
		}
	}

	c.lineItems = make([]LineItem, len(lineItems))
	copy(c.lineItems, lineItems)
	return nil
}

func (c *PlaceOrderCommand) setPickup(date time.Time, t kernel.TimeOfDay) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("pickupDate")
	}
	if err := t.Validate(); err != nil {
		return err
	}

	c.pickupDate = date
	c.pickupTime = t
	return nil
}

func (c *PlaceOrderCommand) setContactPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("contactPhone")
	}
	c.contactPhone = phone
	return nil
}
