package queries

import (
	"errors"

	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/core/domain/model/order"
	"gharkakhana/internal/pkg/guard"
)

var ErrGetChefOrdersQueryIsNotConstructed = errors.New(
	"GetChefOrdersQuery must be created via NewGetChefOrdersQuery constructor",
)

// GetChefOrdersQuery retrieves a chef's incoming orders, most recent first,
// optionally narrowed to a single lifecycle status.
type GetChefOrdersQuery struct { //nolint:recvcheck //using for validation
	chefID       kernel.UUID
	statusFilter *order.Status

	guard guard.ConstructorGuard
}

// NewGetChefOrdersQuery creates a query for all of a chef's orders.
func NewGetChefOrdersQuery(chefID kernel.UUID) (GetChefOrdersQuery, error) {
	if err := chefID.Validate(); err != nil {
		return GetChefOrdersQuery{}, err
	}

	return GetChefOrdersQuery{
		chefID: chefID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// NewGetChefOrdersQueryWithStatus creates a query for a chef's orders in
// one lifecycle status, e.g. the Pending orders awaiting confirmation.
func NewGetChefOrdersQueryWithStatus(chefID kernel.UUID, status order.Status) (GetChefOrdersQuery, error) {
	query, err := NewGetChefOrdersQuery(chefID)
	if err != nil {
		return GetChefOrdersQuery{}, err
	}

	if err = status.Validate(); err != nil {
		return GetChefOrdersQuery{}, err
	}

	query.statusFilter = &status
	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetChefOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetChefOrdersQueryIsNotConstructed)
}

// ChefID returns the chef's identifier.
func (q GetChefOrdersQuery) ChefID() kernel.UUID {
	return q.chefID
}

// StatusFilter returns the requested status filter, or nil for all orders.
func (q GetChefOrdersQuery) StatusFilter() *order.Status {
	return q.statusFilter
}
