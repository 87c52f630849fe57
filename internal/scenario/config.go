// Package scenario validates configurations and orchestrates one full
// simulation run: auction, claim split, pool seeding, trading, settlement,
// and the mechanism comparison.
package scenario

import (
	"errors"
	"fmt"

	"token-launch-lab/internal/domain"
)

// ErrInvalidConfig is returned when a configuration is rejected before any
// computation begins. Nothing partially mutates on rejection.
var ErrInvalidConfig = errors.New("invalid scenario config")

// DefaultConfig returns the reference scenario. Callers mutate their copy
// freely; this is a plain value, not shared state.
func DefaultConfig() domain.ScenarioConfig {
	return domain.ScenarioConfig{
		TotalSupply:   1_000_000,
		FloorPrice:    0.10,
		CapMultiplier: 3,
		BidCount:      100,
		BidShape:      domain.BidShapePowerLaw,
		Traders:       domain.TraderMix{Random: 6, Momentum: 4, Arbitrage: 2},
		TradingDays:   7,
		TGEPrice:      0.45,
		PayoutReserve: 50_000,
		Seed:          42,
	}
}

// Validate rejects out-of-range configurations.
func Validate(cfg domain.ScenarioConfig) error {
	switch {
	case cfg.TotalSupply <= 0:
		return fmt.Errorf("%w: total supply must be positive, got %g", ErrInvalidConfig, cfg.TotalSupply)
	case cfg.FloorPrice <= 0:
		return fmt.Errorf("%w: floor price must be positive, got %g", ErrInvalidConfig, cfg.FloorPrice)
	case cfg.CapMultiplier < 1:
		return fmt.Errorf("%w: cap multiplier must be >= 1, got %g", ErrInvalidConfig, cfg.CapMultiplier)
	case cfg.BidCount <= 0:
		return fmt.Errorf("%w: bid count must be positive, got %d", ErrInvalidConfig, cfg.BidCount)
	case cfg.TradingDays < 1:
		return fmt.Errorf("%w: trading days must be >= 1, got %d", ErrInvalidConfig, cfg.TradingDays)
	case cfg.TGEPrice < 0:
		return fmt.Errorf("%w: TGE price must not be negative, got %g", ErrInvalidConfig, cfg.TGEPrice)
	case cfg.PayoutReserve < 0:
		return fmt.Errorf("%w: payout reserve must not be negative, got %g", ErrInvalidConfig, cfg.PayoutReserve)
	case cfg.Traders.Total() < 1:
		return fmt.Errorf("%w: at least one trader is required", ErrInvalidConfig)
	}

	switch cfg.BidShape {
	case domain.BidShapeUniform, domain.BidShapeLogUniform, domain.BidShapePowerLaw:
	default:
		return fmt.Errorf("%w: unknown bid shape %q", ErrInvalidConfig, cfg.BidShape)
	}
	return nil
}
