package scenario

import (
	"math"

	"token-launch-lab/internal/amm"
	"token-launch-lab/internal/auction"
	"token-launch-lab/internal/comparison"
	"token-launch-lab/internal/domain"
	"token-launch-lab/internal/idhash"
	"token-launch-lab/internal/settlement"
	"token-launch-lab/internal/traders"
)

// Pool parameters for the two claim markets.
const (
	poolFeeRate     = 0.003
	poolTickSpacing = 60
	// Pool ranges span this factor below and above the seed price.
	poolRangeFactor = 4.0
	// Claim inventory deposited per pool, as a fraction of filled supply.
	poolBaseFraction = 0.05
	// Discount applied to the expected upside payout when pricing the RT
	// pool, mirroring the arbitrage fair value.
	upsideSeedDiscount = 0.05
	// RT price floor relative to clearing price so the pool always seeds
	// at a positive price even when the expected payout is zero.
	upsideMinPriceFrac = 0.01
)

// Trader endowments relative to the auction outcome.
const (
	traderCashFraction  = 0.02 // of amount raised, per trader
	traderClaimFraction = 0.01 // of filled supply, per claim token, per trader
)

// Buckets in each pool's depth chart.
const depthBuckets = 41

// Runner executes complete scenario runs.
type Runner struct{}

// NewRunner creates a scenario runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes one full scenario.
// Steps:
//  1. Validate configuration (nothing mutates on rejection)
//  2. Generate and clear the batch auction
//  3. Split filled supply into stable and upside claims
//  4. Seed the two claim pools from the liquidity-bootstrap reserve
//  5. Drive the trader population over the configured days
//  6. Settle payouts and sweep TGE sensitivity
//  7. Score the mechanism comparison on the shared demand pool
func (r *Runner) Run(cfg domain.ScenarioConfig) (*domain.SimulationResult, error) {
	// 1. Validation boundary.
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	// 2. Auction.
	bids := auction.GenerateBids(cfg)
	auctionResult, err := auction.Clear(bids, cfg)
	if err != nil {
		return nil, err
	}

	// 3. Claim split: every filled token mints one PT and one RT.
	vault := domain.VaultAllocation{
		StableClaims: auctionResult.TotalFilled,
		UpsideClaims: auctionResult.TotalFilled,
		Receipts:     countReceipts(auctionResult),
	}

	// 4. Pool seeding.
	stablePool, upsidePool, err := r.seedPools(cfg, auctionResult)
	if err != nil {
		return nil, err
	}

	// 5. Trading loop.
	endowment := traders.State{
		Cash:   auctionResult.AmountRaised * traderCashFraction,
		Stable: auctionResult.TotalFilled * traderClaimFraction,
		Upside: auctionResult.TotalFilled * traderClaimFraction,
	}
	population := traders.BuildPopulation(cfg.Traders, cfg.Seed, endowment)
	sim := traders.NewSimulator(traders.Options{
		StablePool:    stablePool,
		UpsidePool:    upsidePool,
		Population:    population,
		ClearingPrice: auctionResult.ClearingPrice,
		TGEPrice:      cfg.TGEPrice,
		CapMultiplier: cfg.CapMultiplier,
	})
	sim.Run(cfg.TradingDays)

	// 6. Settlement and sensitivity.
	settlementResult, err := settlement.Settle(auctionResult, cfg)
	if err != nil {
		return nil, err
	}
	sensitivity, err := settlement.Sensitivity(auctionResult, cfg)
	if err != nil {
		return nil, err
	}

	// 7. Mechanism comparison.
	comparisonResult, err := comparison.Run(auctionResult, cfg)
	if err != nil {
		return nil, err
	}

	return &domain.SimulationResult{
		RunID:   idhash.ComputeRunID(cfg),
		Config:  cfg,
		Auction: auctionResult,
		Vault:   vault,
		StablePool: domain.PoolReport{
			Label:     stablePool.Label(),
			Snapshots: stablePool.History(),
			Depth:     stablePool.Depth(depthBuckets),
		},
		UpsidePool: domain.PoolReport{
			Label:     upsidePool.Label(),
			Snapshots: upsidePool.History(),
			Depth:     upsidePool.Depth(depthBuckets),
		},
		Trades:      sim.Trades(),
		Traders:     sim.Summaries(),
		Settlement:  settlementResult,
		Sensitivity: sensitivity,
		Comparison:  comparisonResult,
	}, nil
}

// seedPools bootstraps the PT and RT markets. The PT pool opens at the
// clearing price; the RT pool opens at the discounted expected payout,
// floored at a small fraction of clearing so the pool always has a
// positive price. The bootstrap reserve splits evenly between the pools.
func (r *Runner) seedPools(cfg domain.ScenarioConfig, auctionResult *domain.AuctionResult) (*amm.Pool, *amm.Pool, error) {
	clearing := auctionResult.ClearingPrice
	quotePerPool := auctionResult.LiquidityReserve / 2
	basePerPool := auctionResult.TotalFilled * poolBaseFraction

	effective := math.Min(cfg.TGEPrice, clearing*cfg.CapMultiplier)
	expectedPayout := math.Max(0, effective-clearing) * (1 - upsideSeedDiscount)
	upsidePrice := math.Max(expectedPayout, clearing*upsideMinPriceFrac)

	stablePool := amm.New(domain.PoolStableClaim, poolFeeRate, poolTickSpacing)
	if err := stablePool.Seed(clearing, clearing/poolRangeFactor, clearing*poolRangeFactor, quotePerPool, basePerPool); err != nil {
		return nil, nil, err
	}

	upsidePool := amm.New(domain.PoolUpsideClaim, poolFeeRate, poolTickSpacing)
	if err := upsidePool.Seed(upsidePrice, upsidePrice/poolRangeFactor, upsidePrice*poolRangeFactor, quotePerPool, basePerPool); err != nil {
		return nil, nil, err
	}
	return stablePool, upsidePool, nil
}

func countReceipts(auctionResult *domain.AuctionResult) int {
	n := 0
	for _, o := range auctionResult.Outcomes {
		if o.ReceiptID > 0 {
			n++
		}
	}
	return n
}
