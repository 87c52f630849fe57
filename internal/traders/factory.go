package traders

import (
	"math/rand"

	"token-launch-lab/internal/domain"
)

// Archetype seed offsets. Each archetype owns a private generator so one
// population's draw sequence is insensitive to another population's size.
const (
	seedOffsetRandom    = 1
	seedOffsetMomentum  = 2
	seedOffsetArbitrage = 3
)

// BuildPopulation constructs the configured trader population in a fixed,
// stable order: random, then momentum, then arbitrage.
func BuildPopulation(mix domain.TraderMix, seed int64, initial State) []Trader {
	randomRNG := rand.New(rand.NewSource(seed + seedOffsetRandom))
	momentumRNG := rand.New(rand.NewSource(seed + seedOffsetMomentum))
	arbRNG := rand.New(rand.NewSource(seed + seedOffsetArbitrage))

	population := make([]Trader, 0, mix.Total())
	for i := 0; i < mix.Random; i++ {
		population = append(population, NewRandomTrader(i+1, initial, randomRNG))
	}
	for i := 0; i < mix.Momentum; i++ {
		population = append(population, NewMomentumTrader(i+1, initial, momentumRNG))
	}
	for i := 0; i < mix.Arbitrage; i++ {
		population = append(population, NewArbitrageTrader(i+1, initial, arbRNG))
	}
	return population
}
