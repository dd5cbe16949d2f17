package domain

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// Money represents a monetary value with precise decimal arithmetic using big.Rat.
// It stores the value as a rational number (numerator/denominator) to avoid floating-point precision issues.
type Money struct {
	rat *big.Rat
}

// NewMoney creates a new Money instance from numerator and denominator.
// Example: NewMoney(1250, 100) represents 12.50
func NewMoney(numerator, denominator int64) (*Money, error) {
	if denominator <= 0 {
		return nil, fmt.Errorf("denominator must be positive")
	}

	rat := big.NewRat(numerator, denominator)
	return &Money{rat: rat}, nil
}

// MustMoney is NewMoney for constant values in fixtures and seeds.
func MustMoney(numerator, denominator int64) *Money {
	m, err := NewMoney(numerator, denominator)
	if err != nil {
		panic(err)
	}
	return m
}

// NewMoneyFromRat creates a new Money instance from a big.Rat.
func NewMoneyFromRat(rat *big.Rat) *Money {
	if rat == nil {
		return &Money{rat: big.NewRat(0, 1)}
	}
	return &Money{rat: new(big.Rat).Set(rat)}
}

// ParseMoney parses a decimal string such as "12.50" (the NUMERIC wire format).
func ParseMoney(s string) (*Money, error) {
	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid decimal %q", s)
	}
	return &Money{rat: rat}, nil
}

// Rat returns a copy of the underlying rational number.
func (m *Money) Rat() *big.Rat {
	return new(big.Rat).Set(m.rat)
}

// Numerator returns the numerator of the rational number.
func (m *Money) Numerator() int64 {
	return m.rat.Num().Int64()
}

// Denominator returns the denominator of the rational number.
func (m *Money) Denominator() int64 {
	return m.rat.Denom().Int64()
}

// Add adds two Money values and returns a new Money instance.
func (m *Money) Add(other *Money) *Money {
	result := new(big.Rat).Add(m.rat, other.rat)
	return &Money{rat: result}
}

// Subtract subtracts another Money value from this one and returns a new Money instance.
func (m *Money) Subtract(other *Money) *Money {
	result := new(big.Rat).Sub(m.rat, other.rat)
	return &Money{rat: result}
}

// MultiplyByInt multiplies this Money value by an integer quantity.
func (m *Money) MultiplyByInt(n int64) *Money {
	result := new(big.Rat).Mul(m.rat, new(big.Rat).SetInt64(n))
	return &Money{rat: result}
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// Cmp compares m with other and returns -1, 0 or +1.
func (m *Money) Cmp(other *Money) int {
	return m.rat.Cmp(other.rat)
}

// CmpFloat compares m with a float bound, as used by price range filters.
func (m *Money) CmpFloat(f float64) int {
	bound := new(big.Rat)
	if bound.SetFloat64(f) == nil {
		// NaN or Inf; treat as an unreachable bound.
		if f > 0 {
			return -1
		}
		return 1
	}
	return m.rat.Cmp(bound)
}

// Equals returns true if this Money value equals another.
func (m *Money) Equals(other *Money) bool {
	return m.rat.Cmp(other.rat) == 0
}

// Float64 returns an approximate float64 representation (for display only, not calculations).
func (m *Money) Float64() float64 {
	f, _ := m.rat.Float64()
	return f
}

// String returns a string representation of the money value.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// MarshalJSON encodes the value as a decimal string, e.g. "12.50".
func (m *Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts both a decimal string and a JSON number.
func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		s = string(data)
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	m.rat = parsed.rat
	return nil
}

// Copy creates a deep copy of this Money instance.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}
