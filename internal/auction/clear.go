package auction

import (
	"errors"
	"sort"

	"token-launch-lab/internal/domain"
)

// Clearing errors.
var (
	ErrNoBids = errors.New("auction requires at least one bid")
)

// Clear runs the uniform-price batch auction.
// Steps:
//  1. Drop bids priced below the floor (zero fill, full refund)
//  2. Sort eligible bids by price descending, bid id ascending
//  3. Walk the sorted list until cumulative quantity reaches supply;
//     the marginal bid's price is the clearing price
//  4. Pro-rate the clearing-price tier by the supply remaining above it
//  5. Issue sequential allocation receipts and compute refunds
func Clear(bids []domain.Bid, cfg domain.ScenarioConfig) (*domain.AuctionResult, error) {
	if len(bids) == 0 {
		return nil, ErrNoBids
	}

	// 1. Floor filter.
	eligible := make([]domain.Bid, 0, len(bids))
	for _, b := range bids {
		if b.Price >= cfg.FloorPrice {
			eligible = append(eligible, b)
		}
	}

	// 2. Price-descending order; id ascending breaks ties deterministically.
	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].Price != eligible[j].Price {
			return eligible[i].Price > eligible[j].Price
		}
		return eligible[i].ID < eligible[j].ID
	})

	// 3. Find the clearing price. If demand never reaches supply the
	// auction clears at the floor and every eligible bid fills in full.
	clearing := cfg.FloorPrice
	totalDemand := 0.0
	cum := 0.0
	cleared := false
	for _, b := range eligible {
		totalDemand += b.Quantity
	}
	for _, b := range eligible {
		cum += b.Quantity
		if cum >= cfg.TotalSupply {
			clearing = b.Price
			cleared = true
			break
		}
	}

	// 4. Tier pro-rata. The tier is exact price equality with the marginal
	// bid; a lower-priced bid never joins it even when the cumulative sum
	// lands exactly on supply at the marginal bid.
	filledAbove := 0.0
	tierQty := 0.0
	for _, b := range eligible {
		switch {
		case b.Price > clearing:
			filledAbove += b.Quantity
		case b.Price == clearing:
			tierQty += b.Quantity
		}
	}
	tierRatio := 1.0
	if cleared && tierQty > 0 {
		remaining := cfg.TotalSupply - filledAbove
		if remaining < 0 {
			remaining = 0
		}
		if remaining < tierQty {
			tierRatio = remaining / tierQty
		}
	}

	// 5. Build outcomes in sorted order so receipts are sequential by
	// price priority, then restore input order for the result.
	outcomeByID := make(map[int]domain.BidOutcome, len(bids))
	totalFilled := 0.0
	nextReceipt := 1
	for _, b := range eligible {
		filled := 0.0
		switch {
		case !cleared || b.Price > clearing:
			filled = b.Quantity
		case b.Price == clearing:
			filled = b.Quantity * tierRatio
		}

		out := domain.BidOutcome{
			Bid:    b,
			Filled: filled,
			Refund: (b.Price-clearing)*b.Quantity + clearing*(b.Quantity-filled),
			Winner: filled > 0,
		}
		if out.Winner {
			out.ReceiptID = nextReceipt
			nextReceipt++
		}
		totalFilled += filled
		outcomeByID[b.ID] = out
	}
	for _, b := range bids {
		if _, ok := outcomeByID[b.ID]; !ok {
			// Below-floor bid: zero fill, deposit returned in full.
			outcomeByID[b.ID] = domain.BidOutcome{Bid: b, Refund: b.Deposit()}
		}
	}

	outcomes := make([]domain.BidOutcome, 0, len(bids))
	for _, b := range bids {
		outcomes = append(outcomes, outcomeByID[b.ID])
	}

	fillRatio := 1.0
	if totalDemand > cfg.TotalSupply && totalDemand > 0 {
		fillRatio = cfg.TotalSupply / totalDemand
	}

	raised := totalFilled * clearing
	return &domain.AuctionResult{
		ClearingPrice:    clearing,
		FillRatio:        fillRatio,
		AmountRaised:     raised,
		LiquidityReserve: raised * domain.LiquidityReserveFraction,
		TotalFilled:      totalFilled,
		Outcomes:         outcomes,
	}, nil
}
