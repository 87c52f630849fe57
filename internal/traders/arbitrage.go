package traders

import (
	"math"
	"math/rand"

	"token-launch-lab/internal/domain"
)

// Arbitrage trader parameters.
const (
	arbThreshold = 0.02 // relative mispricing required to act
)

// ArbitrageTrader trades toward theoretical fair value on whichever pool
// shows the larger relative mispricing.
type ArbitrageTrader struct {
	base
	rng *rand.Rand
}

// NewArbitrageTrader creates an arbitrage trader drawing from the
// archetype's shared generator.
func NewArbitrageTrader(index int, st State, rng *rand.Rand) *ArbitrageTrader {
	return &ArbitrageTrader{base: newBase(domain.ArchetypeArbitrage, index, st), rng: rng}
}

// Archetype returns the archetype tag.
func (t *ArbitrageTrader) Archetype() string { return domain.ArchetypeArbitrage }

// Decide measures each pool's deviation from fair value and trades the
// larger one once it exceeds the threshold, sized by deviation magnitude.
// A zero fair value makes the deviation undefined; that pool is skipped.
func (t *ArbitrageTrader) Decide(mc *MarketContext) *Intent {
	stableDev := deviation(mc.StablePrice, mc.StableFair)
	upsideDev := deviation(mc.UpsidePrice, mc.UpsideFair)

	pool := domain.PoolStableClaim
	dev := stableDev
	if math.Abs(upsideDev) > math.Abs(stableDev) {
		pool = domain.PoolUpsideClaim
		dev = upsideDev
	}
	if math.Abs(dev) <= arbThreshold {
		return nil
	}

	// Overpriced: sell the claim back toward fair. Underpriced: buy.
	direction := domain.SwapSellBase
	if dev < 0 {
		direction = domain.SwapSellQuote
	}

	frac := math.Min(maxBalanceFraction, math.Abs(dev))
	size := t.state.balanceFor(pool, direction) * frac
	if size <= 0 {
		return nil
	}
	return &Intent{Pool: pool, Direction: direction, Size: size}
}

// deviation returns (price - fair) / fair, or 0 for a degenerate fair value.
func deviation(price, fair float64) float64 {
	if fair <= 0 {
		return 0
	}
	return (price - fair) / fair
}

var _ Trader = (*ArbitrageTrader)(nil)
