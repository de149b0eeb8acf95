// Package meal provides the catalog side of the marketplace: the Meal
// aggregate with its price, inventory, publication flags, and pickup window.
//
// Key business rules:
//   - A meal is orderable only when published, active, and in stock
//   - Available quantity never goes negative; Reserve fails instead
//   - Reserve also increments the informational totalOrders counter
//   - Release compensates a reservation when an order is cancelled
//
// The order workflow consumes this package through the MealRepository port;
// the catalog owner mutates publication state and inventory directly.
package meal
