package kernel

import (
	"fmt"

	"gharkakhana/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed indicates that a Money value was not created
// through one of the constructor functions.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError("Money must be created via NewMoneyFromString or MoneyFromDecimal")

// Money is a value object representing a monetary amount with exact
// fixed-point arithmetic. It wraps github.com/shopspring/decimal so that
// prices and order totals never accumulate floating-point rounding drift.
//
// Money carries no currency; all amounts in the marketplace are expressed
// in the platform's single settlement currency.
//
// The zero value is invalid and fails Validate. Money is immutable: all
// arithmetic operations return a new value.
type Money struct {
	amount decimal.Decimal

	isConstructed bool
}

// NewMoneyFromString parses a monetary amount from its decimal string
// representation, e.g. "149.50". Negative amounts are rejected.
func NewMoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount))
	}

	return Money{amount: amount, isConstructed: true}, nil
}

// MoneyFromDecimal wraps an existing decimal value.
// Used when reconstructing amounts from persistence.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", d))
	}
	return Money{amount: d, isConstructed: true}, nil
}

// ZeroMoney returns a constructed zero amount, used as the seed for summation.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, isConstructed: true}
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), isConstructed: true}
}

// MulInt returns the amount multiplied by an integer quantity.
// Used to compute line-item subtotals (unit price times quantity).
func (m Money) MulInt(qty int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(qty))), isConstructed: true}
}

// IsEqual reports whether two amounts are numerically equal.
// "25.00" and "25" compare equal.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// GreaterThanZero reports whether the amount is strictly positive.
func (m Money) GreaterThanZero() bool {
	return m.amount.IsPositive()
}

// Decimal returns the underlying decimal value for persistence.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String returns the decimal string representation, e.g. "149.5".
func (m Money) String() string {
	return m.amount.String()
}

// Validate checks that the Money value was properly constructed.
func (m Money) Validate() error {
	if !m.isConstructed {
		return ErrMoneyIsNotConstructed
	}
	return nil
}
