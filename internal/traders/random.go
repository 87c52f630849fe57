package traders

import (
	"math/rand"

	"token-launch-lab/internal/domain"
)

// Random trader parameters.
const (
	randomActProbability = 0.50
	randomMinSizeFrac    = 0.01
	randomMaxSizeFrac    = 0.10
)

// RandomTrader acts half the time, choosing pool, direction, and size
// uniformly at random. Provides baseline noise flow.
type RandomTrader struct {
	base
	rng *rand.Rand // shared per-archetype generator
}

// NewRandomTrader creates a random trader drawing from the archetype's
// shared generator.
func NewRandomTrader(index int, st State, rng *rand.Rand) *RandomTrader {
	return &RandomTrader{base: newBase(domain.ArchetypeRandom, index, st), rng: rng}
}

// Archetype returns the archetype tag.
func (t *RandomTrader) Archetype() string { return domain.ArchetypeRandom }

// Decide flips for participation, then picks a uniform pool, direction,
// and size fraction of the relevant balance.
func (t *RandomTrader) Decide(_ *MarketContext) *Intent {
	if t.rng.Float64() >= randomActProbability {
		return nil
	}

	pool := domain.PoolStableClaim
	if t.rng.Float64() < 0.5 {
		pool = domain.PoolUpsideClaim
	}
	direction := domain.SwapSellQuote
	if t.rng.Float64() < 0.5 {
		direction = domain.SwapSellBase
	}

	frac := randomMinSizeFrac + t.rng.Float64()*(randomMaxSizeFrac-randomMinSizeFrac)
	size := t.state.balanceFor(pool, direction) * frac
	if size <= 0 {
		return nil
	}
	return &Intent{Pool: pool, Direction: direction, Size: size}
}

var _ Trader = (*RandomTrader)(nil)
