package traders

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"token-launch-lab/internal/domain"
)

func TestBuildPopulation_FixedOrder(t *testing.T) {
	mix := domain.TraderMix{Random: 2, Momentum: 2, Arbitrage: 1}
	pop := BuildPopulation(mix, 42, State{Cash: 100})

	require.Len(t, pop, 5)
	assert.Equal(t, "RANDOM-01", pop[0].ID())
	assert.Equal(t, "RANDOM-02", pop[1].ID())
	assert.Equal(t, "MOMENTUM-01", pop[2].ID())
	assert.Equal(t, "MOMENTUM-02", pop[3].ID())
	assert.Equal(t, "ARBITRAGE-01", pop[4].ID())
	assert.Equal(t, 100.0, pop[3].State().Cash)
}

func TestRandomTrader_SizeWithinBand(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := NewRandomTrader(1, State{Cash: 1000, Stable: 500, Upside: 200}, rng)

	acted := 0
	for i := 0; i < 200; i++ {
		intent := tr.Decide(&MarketContext{})
		if intent == nil {
			continue
		}
		acted++
		balance := tr.State().balanceFor(intent.Pool, intent.Direction)
		assert.GreaterOrEqual(t, intent.Size, balance*randomMinSizeFrac*(1-1e-9))
		assert.LessOrEqual(t, intent.Size, balance*randomMaxSizeFrac*(1+1e-9))
	}
	// 50% participation over 200 trials.
	assert.Greater(t, acted, 60)
	assert.Less(t, acted, 140)
}

func TestMomentumTrader_NeedsHistory(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := NewMomentumTrader(1, State{Cash: 1000, Stable: 500, Upside: 200}, rng)

	// Three recorded points: below the minimum, never acts.
	mc := &MarketContext{
		StablePrice:   0.40,
		StableHistory: []float64{0.30, 0.30, 0.30},
		UpsideHistory: []float64{0.10, 0.10, 0.10},
	}
	for i := 0; i < 50; i++ {
		assert.Nil(t, tr.Decide(mc))
	}
}

func TestMomentumTrader_DeadZoneAndDirection(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := NewMomentumTrader(1, State{Cash: 1000, Stable: 500, Upside: 200}, rng)

	// Flat market inside the dead zone: no trade regardless of suppression.
	flat := &MarketContext{
		StablePrice:   0.3001,
		UpsidePrice:   0.1000,
		StableHistory: []float64{0.30, 0.30, 0.30, 0.30},
		UpsideHistory: []float64{0.10, 0.10, 0.10, 0.10},
	}
	for i := 0; i < 50; i++ {
		assert.Nil(t, tr.Decide(flat))
	}

	// Strong upward move on the stable pool: any fired trade buys it.
	rising := &MarketContext{
		StablePrice:   0.36,
		UpsidePrice:   0.10,
		StableHistory: []float64{0.30, 0.30, 0.30, 0.30},
		UpsideHistory: []float64{0.10, 0.10, 0.10, 0.10},
	}
	fired := 0
	for i := 0; i < 200; i++ {
		intent := tr.Decide(rising)
		if intent == nil {
			continue
		}
		fired++
		assert.Equal(t, domain.PoolStableClaim, intent.Pool)
		assert.Equal(t, domain.SwapSellQuote, intent.Direction)
	}
	// 30% of valid signals survive suppression.
	assert.Greater(t, fired, 30)
	assert.Less(t, fired, 95)
}

func TestArbitrageTrader_TradesTowardFair(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := NewArbitrageTrader(1, State{Cash: 1000, Stable: 500, Upside: 200}, rng)

	// PT trading 10% above fair: sell it.
	mc := &MarketContext{
		StablePrice: 0.33, StableFair: 0.30,
		UpsidePrice: 0.10, UpsideFair: 0.10,
	}
	intent := tr.Decide(mc)
	require.NotNil(t, intent)
	assert.Equal(t, domain.PoolStableClaim, intent.Pool)
	assert.Equal(t, domain.SwapSellBase, intent.Direction)

	// RT 20% below fair and PT on fair: buy RT instead.
	mc = &MarketContext{
		StablePrice: 0.30, StableFair: 0.30,
		UpsidePrice: 0.08, UpsideFair: 0.10,
	}
	intent = tr.Decide(mc)
	require.NotNil(t, intent)
	assert.Equal(t, domain.PoolUpsideClaim, intent.Pool)
	assert.Equal(t, domain.SwapSellQuote, intent.Direction)
}

func TestArbitrageTrader_WithinThresholdOrDegenerate(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := NewArbitrageTrader(1, State{Cash: 1000, Stable: 500, Upside: 200}, rng)

	// 1% deviations sit inside the threshold.
	assert.Nil(t, tr.Decide(&MarketContext{
		StablePrice: 0.303, StableFair: 0.30,
		UpsidePrice: 0.101, UpsideFair: 0.10,
	}))

	// Zero fair values are skipped, never divided by.
	assert.Nil(t, tr.Decide(&MarketContext{
		StablePrice: 0.30, StableFair: 0,
		UpsidePrice: 0.10, UpsideFair: 0,
	}))
}
