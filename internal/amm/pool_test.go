package amm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"token-launch-lab/internal/domain"
)

const testFee = 0.003

// seededPool returns a PT/USDC pool at price 0.30 with a wide range and
// balanced inventory.
func seededPool(t *testing.T) *Pool {
	t.Helper()
	p := New(domain.PoolStableClaim, testFee, 60)
	err := p.Seed(0.30, 0.075, 1.20, 10_000, 50_000)
	require.NoError(t, err)
	return p
}

func TestSeed_PriceInRange(t *testing.T) {
	p := seededPool(t)

	assert.InEpsilon(t, 0.30, p.Price(), 1e-9)
	assert.Positive(t, p.Liquidity())
	require.Len(t, p.Positions(), 1)

	pos := p.Positions()[0]
	assert.Less(t, pos.LowerTick, p.Tick())
	assert.Greater(t, pos.UpperTick, p.Tick())
	assert.Equal(t, 0, pos.LowerTick%60)
	assert.Equal(t, 0, pos.UpperTick%60)
}

func TestSeed_SingleSided(t *testing.T) {
	// Price at or below the range: base-only deposit carries the liquidity.
	below := New("test", testFee, 60)
	require.NoError(t, below.Seed(0.05, 0.075, 1.20, 0, 50_000))
	assert.Positive(t, below.Liquidity()+belowRangeLiquidity(below))

	// Price above the range: quote-only.
	above := New("test", testFee, 60)
	require.NoError(t, above.Seed(2.0, 0.075, 1.20, 10_000, 0))
	require.Len(t, above.Positions(), 1)
	assert.Positive(t, above.Positions()[0].Liquidity)
}

func belowRangeLiquidity(p *Pool) float64 {
	if len(p.positions) == 0 {
		return 0
	}
	return p.positions[0].Liquidity
}

func TestSeed_InvalidRange(t *testing.T) {
	p := New("test", testFee, 60)
	assert.ErrorIs(t, p.Seed(0.30, 1.20, 0.075, 1000, 1000), ErrInvalidRange)
	assert.ErrorIs(t, p.Seed(0.30, 0.075, 1.20, 0, 0), ErrEmptyDeposit)
}

func TestSwap_SellQuoteMovesPriceUp(t *testing.T) {
	p := seededPool(t)
	before := p.Price()

	res := p.Swap(500, domain.SwapSellQuote)

	assert.Greater(t, p.Price(), before)
	assert.Positive(t, res.AmountOut)
	assert.InEpsilon(t, 500.0, res.AmountIn, 1e-9)
	assert.InEpsilon(t, 500*testFee, res.Fee, 1e-6)
	assert.False(t, res.Capped)
}

func TestSwap_SellBaseMovesPriceDown(t *testing.T) {
	p := seededPool(t)
	before := p.Price()

	res := p.Swap(2000, domain.SwapSellBase)

	assert.Less(t, p.Price(), before)
	assert.Positive(t, res.AmountOut)
	assert.False(t, res.Capped)
}

func TestSwap_OutputBelowNoFeeTheoretical(t *testing.T) {
	// With a fee, output must stay below the zero-fee closed form.
	p := seededPool(t)
	liq := p.Liquidity()
	sp := 0.5477225575051661 // sqrt(0.30)
	in := 1000.0

	noFeeOut := liq * ((sp + in/liq) - sp) / (sp * (sp + in/liq))
	res := p.Swap(in, domain.SwapSellQuote)

	assert.Less(t, res.AmountOut, noFeeOut)
	assert.Greater(t, res.AmountOut, noFeeOut*(1-2*testFee))
}

func TestSwap_RoundTripLosesOnlyFees(t *testing.T) {
	// Selling quote then selling back the received base must return the
	// price toward (never beyond) the start, net of fees.
	p := seededPool(t)
	start := p.Price()

	buy := p.Swap(1000, domain.SwapSellQuote)
	sell := p.Swap(buy.AmountOut, domain.SwapSellBase)

	assert.LessOrEqual(t, p.Price(), buy.PriceAfter)
	assert.GreaterOrEqual(t, p.Price(), start*(1-0.05))
	assert.Less(t, sell.AmountOut, 1000.0, "round trip cannot profit")
}

func TestSwap_NoOpOnBadInput(t *testing.T) {
	p := seededPool(t)
	before := p.Price()

	res := p.Swap(0, domain.SwapSellQuote)
	assert.Zero(t, res.AmountOut)
	assert.Zero(t, res.AmountIn)
	assert.Equal(t, before, res.PriceAfter)

	res = p.Swap(-5, domain.SwapSellBase)
	assert.Zero(t, res.AmountOut)

	empty := New("empty", testFee, 60)
	res = empty.Swap(100, domain.SwapSellQuote)
	assert.Zero(t, res.AmountOut, "zero-liquidity swap is a no-op")
}

func TestSwap_ExitsRangeAndStops(t *testing.T) {
	// An input large enough to push price past the upper boundary leaves
	// the pool with zero active liquidity and unspent input.
	p := New("test", testFee, 60)
	require.NoError(t, p.Seed(0.30, 0.25, 0.36, 100, 300))

	res := p.Swap(1e9, domain.SwapSellQuote)

	assert.Zero(t, p.Liquidity())
	assert.Less(t, res.AmountIn, 1e9, "leftover input returns unspent")
	assert.False(t, res.Capped)
	upper := p.Positions()[0].UpperTick
	assert.GreaterOrEqual(t, p.Tick(), upper-1)
}

func TestSwap_WalksThroughStackedRanges(t *testing.T) {
	// Three nested positions initialize six boundary ticks; a draining swap
	// must visit them in order, shedding liquidity at each crossing until
	// the price leaves the outermost range.
	build := func() *Pool {
		p := New("test", testFee, 60)
		require.NoError(t, p.Seed(0.30, 0.15, 0.50, 5_000, 20_000))
		require.NoError(t, p.Seed(0.30, 0.20, 0.40, 5_000, 20_000))
		require.NoError(t, p.Seed(0.30, 0.25, 0.36, 5_000, 20_000))
		return p
	}

	down := build()
	require.GreaterOrEqual(t, len(down.sortedTicks), 6)
	prev := down.Liquidity()
	for i := 0; i < 200 && down.Liquidity() > 0; i++ {
		res := down.Swap(20_000, domain.SwapSellBase)
		assert.False(t, res.Capped, "iteration %d", i)
		assert.LessOrEqual(t, down.Liquidity(), prev*(1+1e-9),
			"liquidity only sheds on the way down")
		prev = down.Liquidity()
	}
	assert.Zero(t, down.Liquidity())
	assert.LessOrEqual(t, down.Price(), 0.15, "price exits at or below the outermost range")

	up := build()
	res := up.Swap(1e9, domain.SwapSellQuote)
	assert.Zero(t, up.Liquidity())
	assert.Less(t, res.AmountIn, 1e9, "leftover input returns unspent")
	assert.Greater(t, up.Price(), 0.49, "price exits at the outermost upper boundary")
}

func TestSnapshot_ResetsAccumulators(t *testing.T) {
	p := seededPool(t)

	p.Swap(500, domain.SwapSellQuote)
	p.Swap(200, domain.SwapSellQuote)
	snap1 := p.Snapshot(0)

	assert.Positive(t, snap1.StepVolume)
	assert.Positive(t, snap1.StepFees)
	assert.Equal(t, 0, snap1.TimeIndex)

	snap2 := p.Snapshot(1)
	assert.Zero(t, snap2.StepVolume, "accumulators reset after snapshot")
	assert.Zero(t, snap2.StepFees)
	assert.Len(t, p.History(), 2)
}

func TestDepth_BucketsAroundCurrentTick(t *testing.T) {
	p := seededPool(t)

	buckets := p.Depth(21)
	require.Len(t, buckets, 21)

	// The bucket containing the current tick must carry the position's
	// liquidity; far-out buckets carry none.
	foundActive := false
	for _, b := range buckets {
		if b.TickLower <= p.Tick() && p.Tick() < b.TickUpper {
			assert.InEpsilon(t, p.Liquidity(), b.Liquidity, 1e-9)
			foundActive = true
		}
	}
	assert.True(t, foundActive)
	assert.Nil(t, p.Depth(0))
}
