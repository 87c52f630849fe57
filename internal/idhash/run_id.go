// Package idhash computes deterministic SHA-256 identifiers.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"token-launch-lab/internal/domain"
)

// ComputeRunID computes a deterministic run identifier from the full
// scenario configuration. Two runs with identical configuration share an
// identifier, which is also the reproducibility contract.
// Returns a hex-encoded hash (64 characters).
func ComputeRunID(cfg domain.ScenarioConfig) string {
	data := fmt.Sprintf("%.12g|%.12g|%.12g|%d|%s|%d|%d|%d|%d|%.12g|%.12g|%d",
		cfg.TotalSupply,
		cfg.FloorPrice,
		cfg.CapMultiplier,
		cfg.BidCount,
		cfg.BidShape,
		cfg.Traders.Random,
		cfg.Traders.Momentum,
		cfg.Traders.Arbitrage,
		cfg.TradingDays,
		cfg.TGEPrice,
		cfg.PayoutReserve,
		cfg.Seed,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
