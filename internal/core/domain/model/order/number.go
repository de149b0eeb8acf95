package order

import (
	"encoding/hex"
	"fmt"
	"time"

	"gharkakhana/internal/pkg/errs"

	"github.com/google/uuid"
)

// Number is the human-readable order identifier shown to customers and
// chefs, e.g. "ORD-20250310-153045-9f3a2c1b". It combines a UTC timestamp
// with a random suffix so concurrently placed orders cannot collide, and
// the prefix keeps numbers traceable to their placement time.
type Number string

// NewNumber generates an order number for the given placement time.
func NewNumber(placedAt time.Time) Number {
	id := uuid.New()
	suffix := hex.EncodeToString(id[:4])
	return Number(fmt.Sprintf("ORD-%s-%s", placedAt.UTC().Format("20060102-150405"), suffix))
}

// NumberFromString restores an order number from persistence.
func NumberFromString(s string) (Number, error) {
	if s == "" {
		return "", errs.NewValueIsRequiredError("orderNumber")
	}
	return Number(s), nil
}

// String returns the order number text.
func (n Number) String() string {
	return string(n)
}

// Validate checks that the number is not empty.
func (n Number) Validate() error {
	if n == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	return nil
}
