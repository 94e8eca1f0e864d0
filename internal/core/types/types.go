// Package types provides common type aliases and utilities.
//
// The transaction collections are stored as JSON documents and may carry
// quantities and prices written by older clients as strings, or malformed
// entirely. Decoding is lenient by policy: a value that cannot be parsed
// contributes zero, it never fails the decode and never poisons a sum.
package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Quantity is a signed item count.
// Stock levels are signed sums of quantities and may go negative.
type Quantity int64

// Int64 returns the quantity as a plain int64.
func (q Quantity) Int64() int64 { return int64(q) }

// IsZero reports whether the quantity is zero.
func (q Quantity) IsZero() bool { return q == 0 }

// Neg returns the negated quantity.
func (q Quantity) Neg() Quantity { return -q }

// Abs returns the absolute value.
func (q Quantity) Abs() Quantity {
	if q < 0 {
		return -q
	}
	return q
}

// Decimal converts the quantity for price arithmetic.
func (q Quantity) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(q))
}

// MarshalJSON encodes Quantity as a JSON number.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(q), 10)), nil
}

// UnmarshalJSON accepts a JSON number or numeric string.
// Malformed values decode to zero without error.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	*q = Quantity(parseLenientInt(data))
	return nil
}

// Money is a monetary value with full precision.
// Decodes leniently: malformed values become zero.
type Money struct {
	decimal.Decimal
}

// NewMoney creates Money from a decimal.
func NewMoney(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates Money from a string.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// MustMoney creates Money from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return Money{d}
}

// ZeroMoney returns zero Money value.
func ZeroMoney() Money {
	return Money{decimal.Zero}
}

// MarshalJSON encodes Money as a quoted decimal string, preserving
// precision across clients that would round large JSON numbers.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.Decimal.MarshalJSON()
}

// UnmarshalJSON accepts a JSON number or numeric string.
// Malformed values decode to zero without error.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		m.Decimal = decimal.Zero
		return nil
	}

	s := string(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			m.Decimal = decimal.Zero
			return nil
		}
		s = unquoted
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		m.Decimal = decimal.Zero
		return nil
	}
	m.Decimal = d
	return nil
}

// parseLenientInt parses a JSON token into an int64, zero on failure.
// Fractional values round half away from zero, matching how the stored
// documents were summed before.
func parseLenientInt(data []byte) int64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0
	}

	s := string(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return 0
		}
		s = unquoted
	}
	s = strings.TrimSpace(s)

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int64(math.Round(f))
	}
	return 0
}
