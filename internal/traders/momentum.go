package traders

import (
	"math"
	"math/rand"

	"token-launch-lab/internal/domain"
)

// Momentum trader parameters.
const (
	momentumLookback    = 3     // steps back for the reference price
	momentumDeadZone    = 0.005 // relative move below which no trade fires
	momentumSuppression = 0.70  // probability of sitting out a valid signal
	momentumMinHistory  = 4     // recorded points required before acting
	momentumSizeScale   = 2.0   // size fraction per unit of relative move
)

// MomentumTrader chases the stronger recent move across the two pools.
// Probabilistic suppression keeps the population from herding in sync.
type MomentumTrader struct {
	base
	rng *rand.Rand
}

// NewMomentumTrader creates a momentum trader drawing from the archetype's
// shared generator.
func NewMomentumTrader(index int, st State, rng *rand.Rand) *MomentumTrader {
	return &MomentumTrader{base: newBase(domain.ArchetypeMomentum, index, st), rng: rng}
}

// Archetype returns the archetype tag.
func (t *MomentumTrader) Archetype() string { return domain.ArchetypeMomentum }

// Decide compares each pool's current price to the price three steps prior
// and trades in the direction of the stronger move.
func (t *MomentumTrader) Decide(mc *MarketContext) *Intent {
	stableMove := relativeMove(mc.StablePrice, mc.StableHistory)
	upsideMove := relativeMove(mc.UpsidePrice, mc.UpsideHistory)

	pool := domain.PoolStableClaim
	move := stableMove
	if math.Abs(upsideMove) > math.Abs(stableMove) {
		pool = domain.PoolUpsideClaim
		move = upsideMove
	}
	if math.Abs(move) <= momentumDeadZone {
		return nil
	}
	if t.rng.Float64() < momentumSuppression {
		return nil
	}

	direction := domain.SwapSellQuote // rising market: buy the claim
	if move < 0 {
		direction = domain.SwapSellBase
	}

	frac := math.Min(maxBalanceFraction, math.Abs(move)*momentumSizeScale)
	size := t.state.balanceFor(pool, direction) * frac
	if size <= 0 {
		return nil
	}
	return &Intent{Pool: pool, Direction: direction, Size: size}
}

// relativeMove returns the relative change from the price momentumLookback
// steps prior, or 0 when too few points are recorded.
func relativeMove(current float64, history []float64) float64 {
	if len(history) < momentumMinHistory {
		return 0
	}
	ref := history[len(history)-momentumLookback]
	if ref <= 0 {
		return 0
	}
	return (current - ref) / ref
}

var _ Trader = (*MomentumTrader)(nil)
