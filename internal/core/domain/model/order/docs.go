// Package order provides the Order aggregate of the fulfillment workflow:
// line items with immutable price snapshots, an exact decimal total, a
// human-readable order number, and a status state machine.
//
// Key business rules:
//   - An order has at least one item; items keep their submission order
//   - The total always equals the sum of item subtotals
//   - Status follows Pending -> Confirmed -> Preparing -> Ready -> Completed,
//     with cancellation allowed from Pending, Confirmed, and Preparing only
//   - After placement, only the status and update timestamp change
//
// Cross-aggregate rules (single-chef orders, pickup windows, inventory
// reservation) live in the services and application layers, which compose
// this aggregate with the meal catalog.
package order
