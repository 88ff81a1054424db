package money

import (
	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the canonical scale for monetary outputs.
const CurrencyPlaces = 2

// Round rounds a monetary amount to 2 decimals, half-up.
// Every calculator routes its outputs through this before returning them;
// intermediate math keeps full precision.
func Round(value decimal.Decimal) decimal.Decimal {
	return RoundTo(value, CurrencyPlaces)
}

// RoundTo rounds half-up to the given number of decimal places and returns a
// value with exactly that scale.
func RoundTo(value decimal.Decimal, places int32) decimal.Decimal {
	return value.Round(places)
}

// SafeDivide divides a by b, returning zero when b is zero.
// A zero divisor is a business zero here (optional configuration values may
// legitimately be zero), not a fault.
func SafeDivide(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// Percentage computes value * pct / 100.
func Percentage(value, pct decimal.Decimal) decimal.Decimal {
	return value.Mul(pct).Div(decimal.NewFromInt(100))
}

// ZeroFloor clamps a negative amount to zero.
func ZeroFloor(value decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		return decimal.Zero
	}
	return value
}

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// String formats an amount at the canonical 2-decimal scale.
func String(value decimal.Decimal) string {
	return value.StringFixed(CurrencyPlaces)
}
