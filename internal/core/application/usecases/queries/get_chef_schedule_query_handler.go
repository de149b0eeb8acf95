package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetChefScheduleQueryHandler reads a chef's pickup schedule for one day
// from the database, sorted by pickup time ascending.
type GetChefScheduleQueryHandler struct {
	db *gorm.DB
}

// NewGetChefScheduleQueryHandler creates a handler for schedule queries.
// Requires a GORM database connection for query execution.
func NewGetChefScheduleQueryHandler(db *gorm.DB) GetChefScheduleQueryHandler {
	return GetChefScheduleQueryHandler{db: db}
}

// Handle returns the chef's orders for the day, earliest pickup first.
func (h GetChefScheduleQueryHandler) Handle(
	ctx context.Context,
	query GetChefScheduleQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return collectOrderResponses(h.db.WithContext(ctx), `
		SELECT `+orderColumns+`
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE o.chef_id = ? AND o.pickup_date = ?
		ORDER BY o.pickup_time_minutes, o.id, i.id
	`, query.ChefID().Bytes(), query.Date())
}
