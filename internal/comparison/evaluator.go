package comparison

import (
	"errors"

	"token-launch-lab/internal/domain"
)

// ErrNoAuction is returned when the evaluator runs without a cleared
// auction to anchor the fair price.
var ErrNoAuction = errors.New("comparison requires an auction result")

// Mechanism evaluation order, fixed for deterministic output.
var mechanismOrder = []string{
	domain.MechanismBatchAuction,
	domain.MechanismFCFS,
	domain.MechanismWhitelist,
	domain.MechanismDutch,
}

// Run replays one shared synthetic participant pool through the core batch
// auction and the three alternative sale designs, scoring each on the same
// demand. The auction's clearing price anchors the fair price.
func Run(auction *domain.AuctionResult, cfg domain.ScenarioConfig) (*domain.ComparisonResult, error) {
	if auction == nil {
		return nil, ErrNoAuction
	}

	fairPrice := auction.ClearingPrice
	participants := BuildParticipants(len(auction.Outcomes), cfg.Seed, fairPrice, cfg.TotalSupply)

	allocations := map[string][]domain.ICOAllocation{
		domain.MechanismBatchAuction: runBatchAuction(participants, auction),
		domain.MechanismFCFS:         runFCFS(participants, cfg.TotalSupply, fairPrice),
		domain.MechanismWhitelist:    runWhitelist(participants, cfg.TotalSupply, fairPrice, cfg.Seed),
		domain.MechanismDutch:        runDutch(participants, cfg.TotalSupply, fairPrice, cfg.FloorPrice, cfg.Seed),
	}

	metrics := make([]domain.ICOMetrics, 0, len(mechanismOrder))
	for _, mech := range mechanismOrder {
		metrics = append(metrics, scoreMechanism(mech, participants, allocations[mech], cfg.TotalSupply, fairPrice))
	}

	return &domain.ComparisonResult{
		FairPrice:    fairPrice,
		Participants: participants,
		Allocations:  allocations,
		Metrics:      metrics,
	}, nil
}
