// Package pricemath provides pure conversions between linear price,
// square-root price, and discrete tick index on the standard 1.0001
// geometric grid.
package pricemath

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is returned for non-positive or non-finite prices.
var ErrInvalidInput = errors.New("price must be a positive finite number")

// Tick bounds of the supported grid.
const (
	MinTick = -887272
	MaxTick = 887272
)

// TickBase is the price ratio between adjacent ticks.
const TickBase = 1.0001

var (
	logTickBase = math.Log(TickBase)

	// Q96 is the 2^96 fixed-point scale used for protocol sqrt prices.
	Q96 = decimal.NewFromInt(2).Pow(decimal.NewFromInt(96))
)

func validate(price float64) error {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return ErrInvalidInput
	}
	return nil
}

// PriceToSqrt converts a linear price to its square root.
func PriceToSqrt(price float64) (float64, error) {
	if err := validate(price); err != nil {
		return 0, err
	}
	return math.Sqrt(price), nil
}

// SqrtToPrice converts a square-root price back to linear price.
func SqrtToPrice(sqrtPrice float64) (float64, error) {
	if err := validate(sqrtPrice); err != nil {
		return 0, err
	}
	return sqrtPrice * sqrtPrice, nil
}

// PriceToTick returns the highest tick whose price does not exceed the
// given price: floor(log(price) / log(1.0001)).
func PriceToTick(price float64) (int, error) {
	if err := validate(price); err != nil {
		return 0, err
	}
	tick := int(math.Floor(math.Log(price) / logTickBase))
	if tick < MinTick {
		tick = MinTick
	}
	if tick > MaxTick {
		tick = MaxTick
	}
	return tick, nil
}

// TickToPrice returns 1.0001^tick. Round-tripping through PriceToTick is
// lossy by up to one tick's relative width (~0.01%); that is expected.
func TickToPrice(tick int) float64 {
	return math.Pow(TickBase, float64(tick))
}

// SqrtPriceX96 returns floor(sqrt(price) * 2^96) as an arbitrary-precision
// value. This is the protocol-faithful fixed-point representation and must
// cross the presentation boundary as a decimal string.
func SqrtPriceX96(price float64) (decimal.Decimal, error) {
	if err := validate(price); err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromFloat(math.Sqrt(price)).Mul(Q96).Floor(), nil
}

// X96ToPrice inverts SqrtPriceX96 back to a linear float price.
func X96ToPrice(x96 decimal.Decimal) (float64, error) {
	sqrt, _ := x96.Div(Q96).Float64()
	if err := validate(sqrt); err != nil {
		return 0, err
	}
	return sqrt * sqrt, nil
}
