// Package comparison replays one shared synthetic demand pool through four
// allocation mechanisms and scores them on fairness and efficiency.
package comparison

import (
	"math"
	"math/rand"
	"sort"

	"token-launch-lab/internal/domain"
)

// Participant pool parameters.
const (
	wealthSigma = 1.5 // log-normal spread of budgets
	// Aggregate budget relative to the fair-price value of supply; >1
	// keeps every mechanism oversubscribed.
	budgetMultiple = 2.0
	// Weight of size rank vs noise in the speed attribute. Larger
	// participants run faster infrastructure.
	speedSizeWeight = 0.6
)

// BuildParticipants draws the shared synthetic pool: log-normal wealth,
// size-correlated desired quantity and speed, bottom half by desired size
// flagged retail. Deterministic per seed.
func BuildParticipants(n int, seed int64, fairPrice, supply float64) []domain.Participant {
	rng := rand.New(rand.NewSource(seed))

	baseBudget := fairPrice * supply * budgetMultiple / float64(n)
	participants := make([]domain.Participant, n)
	noise := make([]float64, n)
	for i := range participants {
		wealth := baseBudget * lognormal(rng)
		participants[i] = domain.Participant{
			ID:         i + 1,
			Wealth:     wealth,
			DesiredQty: wealth / fairPrice * (0.5 + rng.Float64()),
		}
		noise[i] = rng.Float64()
	}

	// Rank by desired size to derive speed percentile and the retail flag.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if participants[order[a]].DesiredQty != participants[order[b]].DesiredQty {
			return participants[order[a]].DesiredQty < participants[order[b]].DesiredQty
		}
		return order[a] < order[b]
	})
	for rank, idx := range order {
		percentile := 1.0
		if n > 1 {
			percentile = float64(rank) / float64(n-1)
		}
		participants[idx].Speed = clamp01(speedSizeWeight*percentile + (1-speedSizeWeight)*noise[idx])
		participants[idx].Retail = rank < n/2
	}
	return participants
}

func lognormal(rng *rand.Rand) float64 {
	return math.Exp(rng.NormFloat64() * wealthSigma)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
