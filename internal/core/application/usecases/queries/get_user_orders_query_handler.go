package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetUserOrdersQueryHandler reads a customer's order history from the
// database, bypassing the domain aggregates.
type GetUserOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUserOrdersQueryHandler creates a handler for customer order queries.
// Requires a GORM database connection for query execution.
func NewGetUserOrdersQueryHandler(db *gorm.DB) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{db: db}
}

// Handle returns the customer's orders, most recent first, with items.
func (h GetUserOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUserOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return collectOrderResponses(h.db.WithContext(ctx), `
		SELECT `+orderColumns+`
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE o.user_id = ?
		ORDER BY o.created_at DESC, o.id, i.id
	`, query.UserID().Bytes())
}
