package order

import (
	"errors"
	"time"

	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderHasNoItems indicates an attempt to create an order without
	// any line items.
	ErrOrderHasNoItems = errors.New("order must contain at least one item")
)

// Order is the aggregate root of the fulfillment workflow. It records who
// ordered, which chef fulfills, the line items with their price snapshots,
// the exact total, the declared pickup moment, and the lifecycle status.
//
// Order maintains these invariants:
//   - at least one item; item order is the submission order
//   - totalAmount always equals the sum of item subtotals
//   - all items are fulfilled by a single chef (enforced at assembly)
//   - after creation only status and updatedAt may change
type Order struct {
	id     kernel.UUID
	number Number
	userID kernel.UUID
	chefID kernel.UUID

	items       []Item
	totalAmount kernel.Money

	pickupDate time.Time
	pickupTime kernel.TimeOfDay

	contactPhone        string
	specialInstructions string

	status    Status
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a freshly placed order in Pending status.
// The total amount is computed from the item subtotals; it is not a
// parameter, so it can never disagree with the items.
func NewOrder(
	id kernel.UUID,
	number Number,
	userID kernel.UUID,
	chefID kernel.UUID,
	items []Item,
	pickupDate time.Time,
	pickupTime kernel.TimeOfDay,
	contactPhone string,
	specialInstructions string,
	placedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setUserID(userID),
		o.setChefID(chefID),
		o.setItems(items),
		o.setPickup(pickupDate, pickupTime),
		o.setContactPhone(contactPhone),
	); err != nil {
		return nil, err
	}

	o.specialInstructions = specialInstructions
	o.createdAt = placedAt
	o.updatedAt = placedAt
	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its status
// and timestamps. The total is recomputed from the restored items, keeping
// the total-equals-sum invariant independent of what was stored.
func RestoreOrder(
	id kernel.UUID,
	number Number,
	userID kernel.UUID,
	chefID kernel.UUID,
	items []Item,
	pickupDate time.Time,
	pickupTime kernel.TimeOfDay,
	contactPhone string,
	specialInstructions string,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o, err := NewOrder(id, number, userID, chefID, items,
		pickupDate, pickupTime, contactPhone, specialInstructions, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	o.status = status
	o.updatedAt = updatedAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() Number {
	return o.number
}

// UserID returns the identifier of the ordering customer.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// ChefID returns the identifier of the fulfilling chef.
func (o *Order) ChefID() kernel.UUID {
	return o.chefID
}

// Items returns the line items in submission order.
// The returned slice is a copy; the aggregate's items are immutable.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount returns the exact order total.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// PickupDate returns the declared pickup date.
func (o *Order) PickupDate() time.Time {
	return o.pickupDate
}

// PickupTime returns the declared pickup time of day.
func (o *Order) PickupTime() kernel.TimeOfDay {
	return o.pickupTime
}

// ContactPhone returns the customer's pickup contact number.
func (o *Order) ContactPhone() string {
	return o.contactPhone
}

// SpecialInstructions returns the optional free-form instructions.
func (o *Order) SpecialInstructions() string {
	return o.specialInstructions
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order last changed status.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// TransitionTo moves the order along the lifecycle state machine.
// The transition must be a legal edge (see Status); on success the status
// and updatedAt change and nothing else. Inventory compensation for
// cancellations is the caller's responsibility, since it spans aggregates.
func (o *Order) TransitionTo(next Status, at time.Time) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = at
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number Number) error {
	if err := number.Validate(); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	o.userID = userID
	return nil
}

func (o *Order) setChefID(chefID kernel.UUID) error {
	if err := chefID.Validate(); err != nil {
		return err
	}
	o.chefID = chefID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrOrderHasNoItems
	}

	total := kernel.ZeroMoney()
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		total = total.Add(item.Subtotal())
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	o.totalAmount = total
	return nil
}

func (o *Order) setPickup(date time.Time, t kernel.TimeOfDay) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("pickupDate")
	}
	if err := t.Validate(); err != nil {
		return err
	}

	o.pickupDate = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	o.pickupTime = t
	return nil
}

func (o *Order) setContactPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("contactPhone")
	}
	o.contactPhone = phone
	return nil
}
