package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetChefOrdersQueryHandler reads a chef's incoming orders from the
// database, optionally filtered by lifecycle status.
type GetChefOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetChefOrdersQueryHandler creates a handler for chef order queries.
// Requires a GORM database connection for query execution.
func NewGetChefOrdersQueryHandler(db *gorm.DB) GetChefOrdersQueryHandler {
	return GetChefOrdersQueryHandler{db: db}
}

// Handle returns the chef's orders, most recent first, with items.
func (h GetChefOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetChefOrdersQuery,
) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if filter := query.StatusFilter(); filter != nil {
		return collectOrderResponses(h.db.WithContext(ctx), `
			SELECT `+orderColumns+`
			FROM orders o
			JOIN order_items i ON i.order_id = o.id
			WHERE o.chef_id = ? AND o.status = ?
			ORDER BY o.created_at DESC, o.id, i.id
		`, query.ChefID().Bytes(), int(*filter))
	}

	return collectOrderResponses(h.db.WithContext(ctx), `
		SELECT `+orderColumns+`
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE o.chef_id = ?
		ORDER BY o.created_at DESC, o.id, i.id
	`, query.ChefID().Bytes())
}
