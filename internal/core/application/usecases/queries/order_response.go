// Package queries contains read-only operations for the marketplace.
// Implements the Query pattern for data retrieval in the CQRS architecture.
// Queries bypass the domain aggregates and read projections straight from
// the database for efficiency.
package queries

import (
	"time"

	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItemResponse represents one line item of an order projection.
type OrderItemResponse struct {
	MealID    kernel.UUID
	Quantity  int
	UnitPrice kernel.Money
	Subtotal  kernel.Money
}

// OrderResponse represents an order projection with its line items.
// All order list queries return this shape; they differ only in filtering
// and ordering.
type OrderResponse struct {
	ID                  kernel.UUID
	Number              string
	UserID              kernel.UUID
	ChefID              kernel.UUID
	TotalAmount         kernel.Money
	PickupDate          time.Time
	PickupTime          kernel.TimeOfDay
	ContactPhone        string
	SpecialInstructions string
	Status              order.Status
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Items               []OrderItemResponse
}

// orderColumns is the fixed select list every order projection query uses.
// collectOrderResponses scans exactly these columns, in this order.
const orderColumns = `
	o.id,
	o.number,
	o.user_id,
	o.chef_id,
	o.total_amount,
	o.pickup_date,
	o.pickup_time_minutes,
	o.contact_phone,
	o.special_instructions,
	o.status,
	o.created_at,
	o.updated_at,
	i.meal_id,
	i.quantity,
	i.unit_price`

// collectOrderResponses executes the given orders/order_items join and
// groups the item rows under their order. Rows must arrive grouped by
// order id, which the callers guarantee via their ORDER BY clauses.
func collectOrderResponses(db *gorm.DB, sql string, values ...any) ([]OrderResponse, error) {
	rows, err := db.Raw(sql, values...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]OrderResponse, 0)

	for rows.Next() {
		var (
			id, userID, chefID, mealID uuid.UUID
			number                     string
			total, unitPrice           decimal.Decimal
			pickupDate                 time.Time
			pickupMinutes              int
			phone, instructions        string
			status                     int
			createdAt, updatedAt       time.Time
			quantity                   int
		)

		err = rows.Scan(
			&id,
			&number,
			&userID,
			&chefID,
			&total,
			&pickupDate,
			&pickupMinutes,
			&phone,
			&instructions,
			&status,
			&createdAt,
			&updatedAt,
			&mealID,
			&quantity,
			&unitPrice,
		)
		if err != nil {
			return nil, err
		}

		item, itemErr := buildItemResponse(mealID, quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}

		if n := len(responses); n > 0 && responses[n-1].ID.Bytes() == id {
			responses[n-1].Items = append(responses[n-1].Items, item)
			continue
		}

		resp, respErr := buildOrderResponse(
			id, number, userID, chefID, total,
			pickupDate, pickupMinutes, phone, instructions,
			status, createdAt, updatedAt,
		)
		if respErr != nil {
			return nil, respErr
		}
		resp.Items = append(resp.Items, item)
		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

func buildItemResponse(mealID uuid.UUID, quantity int, unitPrice decimal.Decimal) (OrderItemResponse, error) {
	mID, err := kernel.UUIDFromBytes(mealID[:])
	if err != nil {
		return OrderItemResponse{}, err
	}

	price, err := kernel.MoneyFromDecimal(unitPrice)
	if err != nil {
		return OrderItemResponse{}, err
	}

	return OrderItemResponse{
		MealID:    mID,
		Quantity:  quantity,
		UnitPrice: price,
		Subtotal:  price.MulInt(quantity),
	}, nil
}

func buildOrderResponse(
	id uuid.UUID,
	number string,
	userID uuid.UUID,
	chefID uuid.UUID,
	total decimal.Decimal,
	pickupDate time.Time,
	pickupMinutes int,
	phone string,
	instructions string,
	status int,
	createdAt time.Time,
	updatedAt time.Time,
) (OrderResponse, error) {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}

	uID, err := kernel.UUIDFromBytes(userID[:])
	if err != nil {
		return OrderResponse{}, err
	}

	cID, err := kernel.UUIDFromBytes(chefID[:])
	if err != nil {
		return OrderResponse{}, err
	}

	totalAmount, err := kernel.MoneyFromDecimal(total)
	if err != nil {
		return OrderResponse{}, err
	}

	pickupTime, err := kernel.NewTimeOfDay(pickupMinutes/60, pickupMinutes%60)
	if err != nil {
		return OrderResponse{}, err
	}

	orderStatus := order.Status(status)
	if err = orderStatus.Validate(); err != nil {
		return OrderResponse{}, err
	}

	return OrderResponse{
		ID:                  orderID,
		Number:              number,
		UserID:              uID,
		ChefID:              cID,
		TotalAmount:         totalAmount,
		PickupDate:          pickupDate,
		PickupTime:          pickupTime,
		ContactPhone:        phone,
		SpecialInstructions: instructions,
		Status:              orderStatus,
		CreatedAt:           createdAt,
		UpdatedAt:           updatedAt,
	}, nil
}
