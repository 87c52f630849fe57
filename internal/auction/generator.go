// Package auction implements synthetic bid generation and uniform-price
// batch clearing.
package auction

import (
	"math"
	"math/rand"

	"token-launch-lab/internal/domain"
)

// Bid quantity bounds as fractions of total supply.
const (
	minQtyFraction = 0.001
	maxQtyFraction = 0.05
)

// Bids are priced between the floor and this multiple of the floor.
const maxPriceMultiple = 10.0

// GenerateBids draws a deterministic bid set from the configured shape.
// The same seed always yields the identical set.
func GenerateBids(cfg domain.ScenarioConfig) []domain.Bid {
	rng := rand.New(rand.NewSource(cfg.Seed))

	bids := make([]domain.Bid, cfg.BidCount)
	for i := range bids {
		qty := cfg.TotalSupply * (minQtyFraction + rng.Float64()*(maxQtyFraction-minQtyFraction))
		bids[i] = domain.Bid{
			ID:       i + 1,
			Quantity: qty,
			Price:    drawPrice(rng, cfg.FloorPrice, cfg.BidShape),
		}
	}
	return bids
}

// drawPrice draws one limit price in [floor, maxPriceMultiple*floor]
// shaped by the configured distribution.
func drawPrice(rng *rand.Rand, floor float64, shape string) float64 {
	u := rng.Float64()
	switch shape {
	case domain.BidShapeLogUniform:
		// Evenly spread on a log scale across one decade.
		return floor * math.Pow(maxPriceMultiple, u)
	case domain.BidShapePowerLaw:
		// Cubing the uniform draw skews mass toward the floor.
		return floor * (1 + (maxPriceMultiple-1)*u*u*u)
	default: // domain.BidShapeUniform
		return floor * (1 + (maxPriceMultiple-1)*u)
	}
}
