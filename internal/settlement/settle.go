// Package settlement computes final payouts for upside claims and the
// per-bidder cash outcome of a run.
package settlement

import (
	"errors"
	"math"

	"token-launch-lab/internal/domain"
)

// ErrNoAuction is returned when settlement is invoked without a cleared
// auction result.
var ErrNoAuction = errors.New("settlement requires an auction result")

// Settle computes the payout schedule from the auction outcome and
// configuration:
//
//	effective  = min(tgePrice, clearingPrice * capMultiplier)
//	perClaim   = max(0, effective - clearingPrice)
//	liability  = totalFilled * perClaim
//	proRata    = 1 if reserve covers liability, else reserve / liability
func Settle(auction *domain.AuctionResult, cfg domain.ScenarioConfig) (*domain.SettlementResult, error) {
	if auction == nil {
		return nil, ErrNoAuction
	}

	effective := math.Min(cfg.TGEPrice, auction.ClearingPrice*cfg.CapMultiplier)
	perClaim := math.Max(0, effective-auction.ClearingPrice)
	liability := auction.TotalFilled * perClaim

	proRata := 1.0
	reserveUsed := liability
	if liability > cfg.PayoutReserve {
		reserveUsed = cfg.PayoutReserve
		if liability > 0 {
			proRata = cfg.PayoutReserve / liability
		}
	}

	bidders := make([]domain.BidderSettlement, 0, len(auction.Outcomes))
	for _, o := range auction.Outcomes {
		if !o.Winner {
			continue
		}
		stableValue := o.Filled * cfg.TGEPrice
		upsidePayout := o.Filled * perClaim * proRata
		cost := o.Filled * auction.ClearingPrice
		bidders = append(bidders, domain.BidderSettlement{
			BidID:        o.ID,
			ReceiptID:    o.ReceiptID,
			Claims:       o.Filled,
			StableValue:  stableValue,
			UpsidePayout: upsidePayout,
			AuctionCost:  cost,
			NetOutcome:   stableValue + upsidePayout - cost,
		})
	}

	return &domain.SettlementResult{
		TGEPrice:       cfg.TGEPrice,
		ClearingPrice:  auction.ClearingPrice,
		CapMultiplier:  cfg.CapMultiplier,
		EffectivePrice: effective,
		PayoutPerClaim: perClaim,
		TotalLiability: liability,
		ReserveUsed:    reserveUsed,
		ProRataFactor:  proRata,
		Bidders:        bidders,
	}, nil
}

// TGE multipliers swept by Sensitivity, as multiples of clearing price.
var sensitivityLadder = []float64{0.5, 0.75, 1.0, 1.25, 1.5, 2.0, 3.0, 5.0}

// Sensitivity recomputes settlement across a fixed ladder of TGE prices
// relative to the clearing price, holding everything else constant.
func Sensitivity(auction *domain.AuctionResult, cfg domain.ScenarioConfig) ([]domain.SensitivityPoint, error) {
	if auction == nil {
		return nil, ErrNoAuction
	}

	points := make([]domain.SensitivityPoint, 0, len(sensitivityLadder))
	for _, mult := range sensitivityLadder {
		swept := cfg
		swept.TGEPrice = auction.ClearingPrice * mult

		res, err := Settle(auction, swept)
		if err != nil {
			return nil, err
		}

		mean := 0.0
		if len(res.Bidders) > 0 {
			for _, b := range res.Bidders {
				mean += b.NetOutcome
			}
			mean /= float64(len(res.Bidders))
		}

		points = append(points, domain.SensitivityPoint{
			TGEMultiplier:  mult,
			TGEPrice:       swept.TGEPrice,
			PayoutPerClaim: res.PayoutPerClaim,
			TotalLiability: res.TotalLiability,
			ProRataFactor:  res.ProRataFactor,
			MeanNetOutcome: mean,
		})
	}
	return points, nil
}
