package queries

import (
	"errors"
	"time"

	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/pkg/errs"
	"gharkakhana/internal/pkg/guard"
)

var ErrGetChefScheduleQueryIsNotConstructed = errors.New(
	"GetChefScheduleQuery must be created via NewGetChefScheduleQuery constructor",
)

// GetChefScheduleQuery retrieves a chef's orders for one pickup date,
// sorted by pickup time so the chef can work through the day in order.
type GetChefScheduleQuery struct { //nolint:recvcheck //using for validation
	chefID kernel.UUID
	date   time.Time

	guard guard.ConstructorGuard
}

// NewGetChefScheduleQuery creates a query for a chef's day schedule.
// The date is truncated to its UTC day.
func NewGetChefScheduleQuery(chefID kernel.UUID, date time.Time) (GetChefScheduleQuery, error) {
	if err := chefID.Validate(); err != nil {
		return GetChefScheduleQuery{}, err
	}
	if date.IsZero() {
		return GetChefScheduleQuery{}, errs.NewValueIsRequiredError("date")
	}

	return GetChefScheduleQuery{
		chefID: chefID,
		date:   time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetChefScheduleQuery) Validate() error {
	return q.guard.Validate(ErrGetChefScheduleQueryIsNotConstructed)
}

// ChefID returns the chef's identifier.
func (q GetChefScheduleQuery) ChefID() kernel.UUID {
	return q.chefID
}

// Date returns the schedule day, truncated to UTC midnight.
func (q GetChefScheduleQuery) Date() time.Time {
	return q.date
}
