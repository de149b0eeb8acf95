// Package services contains domain services: business logic that spans
// multiple aggregates and therefore cannot live inside any single one.
//
// OrderAssembler composes the meal catalog with the order aggregate,
// enforcing the single-chef rule and pickup-window consistency while
// snapshotting prices into the order's line items.
package services
