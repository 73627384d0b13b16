// Package types provides common type aliases and utilities.
package types

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: Use NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// Round2 rounds a Money value to 2 decimal places (currency precision).
func Round2(m Money) Money {
	return m.Round(2)
}

// NonNeg clamps a Money value to be non-negative via absolute value.
// Upstream order snapshots have been observed to carry negative prices;
// every surfaced monetary figure must render as a non-negative number.
func NonNeg(m Money) Money {
	return m.Abs()
}

// Amount is a monetary field as it arrives on an order snapshot.
//
// Order snapshots are produced by several upstream writers and a numeric
// field may arrive as a JSON number, a numeric string, a null, or be
// absent entirely. Invalid or missing input decodes to zero rather than
// failing: pricing must always produce a best-effort breakdown.
type Amount struct {
	d decimal.Decimal
}

// NewAmount creates an Amount from a float.
func NewAmount(f float64) Amount {
	return Amount{d: decimal.NewFromFloat(f)}
}

// AmountFromDecimal wraps a decimal as an Amount.
func AmountFromDecimal(d decimal.Decimal) Amount {
	return Amount{d: d}
}

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() Money { return a.d }

// IsZero reports whether the amount is zero (or was absent/invalid).
func (a Amount) IsZero() bool { return a.d.IsZero() }

// IsPositive reports whether the amount is strictly positive.
func (a Amount) IsPositive() bool { return a.d.IsPositive() }

// Abs returns the absolute value as Money.
func (a Amount) Abs() Money { return a.d.Abs() }

// Float64 returns the amount as a float64 for display-only use.
func (a Amount) Float64() float64 {
	f, _ := a.d.Float64()
	return f
}

// String returns the decimal string form.
func (a Amount) String() string { return a.d.String() }

// MarshalJSON encodes the amount as a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.String()), nil
}

// UnmarshalJSON accepts a JSON number, a numeric string, or null.
// Anything unparsable decodes to zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.d = decimal.Zero
		return nil
	}

	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			a.d = decimal.Zero
			return nil
		}
		a.d = parseLoose(s)
		return nil
	}

	a.d = parseLoose(string(data))
	return nil
}

func parseLoose(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
