// Package kernel provides the shared value objects of the domain model.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Money: exact fixed-point monetary amount wrapping shopspring/decimal
//   - TimeOfDay and PickupWindow: when a meal may be collected
//
// All value objects are immutable, created through validating constructors,
// and carry a Validate method that rejects zero values. This keeps invalid
// state out of the aggregates that are built from them.
package kernel
