package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BigDecString wraps an arbitrary-precision integer value that must cross the
// presentation boundary as a decimal string, never as binary floating point.
// Used for protocol-faithful Q96 fixed-point prices.
type BigDecString struct {
	decimal.Decimal
}

// NewBigDecString wraps a decimal value.
func NewBigDecString(d decimal.Decimal) BigDecString {
	return BigDecString{Decimal: d}
}

// MarshalJSON emits the value as a quoted decimal string.
func (b BigDecString) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.Decimal.String() + `"`), nil
}

// UnmarshalJSON accepts a quoted decimal string.
func (b *BigDecString) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("big decimal value must be a quoted string, got %s", s)
	}
	d, err := decimal.NewFromString(s[1 : len(s)-1])
	if err != nil {
		return fmt.Errorf("parse big decimal: %w", err)
	}
	b.Decimal = d
	return nil
}
