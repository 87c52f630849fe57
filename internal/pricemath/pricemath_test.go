package pricemath

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"token-launch-lab/internal/domain"
)

func TestPriceToSqrt_RoundTrip(t *testing.T) {
	for _, price := range []float64{0.0001, 0.1, 1.0, 42.5, 1e6} {
		s, err := PriceToSqrt(price)
		require.NoError(t, err)

		back, err := SqrtToPrice(s)
		require.NoError(t, err)
		assert.InEpsilon(t, price, back, 1e-12)
	}
}

func TestPriceToTick_RoundTripWithinOneTick(t *testing.T) {
	// Round-trip must land within one tick's relative width (~0.01%).
	for _, price := range []float64{0.001, 0.1, 0.4537, 1.0, 17.3, 9999.0} {
		tick, err := PriceToTick(price)
		require.NoError(t, err)

		back := TickToPrice(tick)
		ratio := price / back
		if ratio < 1.0 {
			ratio = 1.0 / ratio
		}
		assert.LessOrEqual(t, ratio, TickBase*(1+1e-9),
			"price %f tick %d back %f", price, tick, back)
	}
}

func TestPriceToTick_KnownValues(t *testing.T) {
	tick, err := PriceToTick(1.0)
	require.NoError(t, err)
	assert.Equal(t, 0, tick)

	// 1.0001^100 is slightly above 1.01005
	tick, err = PriceToTick(math.Pow(TickBase, 100))
	require.NoError(t, err)
	assert.Equal(t, 100, tick)
}

func TestInvalidInputs(t *testing.T) {
	for _, price := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := PriceToSqrt(price)
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = PriceToTick(price)
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = SqrtPriceX96(price)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestSqrtPriceX96_DecimalStringBoundary(t *testing.T) {
	x96, err := SqrtPriceX96(0.45)
	require.NoError(t, err)

	// Must serialize as a quoted decimal string, never binary float.
	raw, err := json.Marshal(domain.NewBigDecString(x96))
	require.NoError(t, err)
	assert.Equal(t, `"`+x96.String()+`"`, string(raw))
	assert.NotContains(t, string(raw), "e")

	var parsed domain.BigDecString
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.True(t, parsed.Decimal.Equal(x96))

	back, err := X96ToPrice(x96)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.45, back, 1e-9)
}
