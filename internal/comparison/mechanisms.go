package comparison

import (
	"math/rand"
	"sort"

	"token-launch-lab/internal/domain"
)

// Alternative-mechanism parameters.
const (
	fcfsDiscount      = 0.10 // FCFS and whitelist sell at this discount to fair
	whitelistFraction = 0.25 // share of the pool admitted to the whitelist
	dutchStartMult    = 2.0  // Dutch auction opens at this multiple of fair
)

// runBatchAuction maps the core mechanism's bid outcomes onto the shared
// pool: the i-th largest participant takes the fill fraction and pricing of
// the i-th largest bid, scaled to their own desired quantity.
func runBatchAuction(participants []domain.Participant, auction *domain.AuctionResult) []domain.ICOAllocation {
	outcomes := make([]domain.BidOutcome, len(auction.Outcomes))
	copy(outcomes, auction.Outcomes)
	sort.Slice(outcomes, func(i, j int) bool {
		if outcomes[i].Quantity != outcomes[j].Quantity {
			return outcomes[i].Quantity > outcomes[j].Quantity
		}
		return outcomes[i].ID < outcomes[j].ID
	})

	bySize := sortedBySizeDesc(participants)

	allocations := make([]domain.ICOAllocation, len(participants))
	for i, p := range bySize {
		alloc := domain.ICOAllocation{ParticipantID: p.ID}
		if i < len(outcomes) {
			o := outcomes[i]
			fillFrac := 0.0
			if o.Quantity > 0 {
				fillFrac = o.Filled / o.Quantity
			}
			alloc.Filled = p.DesiredQty * fillFrac
			alloc.Spent = p.DesiredQty * o.Price
			if alloc.Filled > 0 {
				alloc.PricePaid = auction.ClearingPrice
			}
			alloc.Refunded = alloc.Spent - alloc.Filled*auction.ClearingPrice
		}
		allocations[p.ID-1] = alloc
	}
	return allocations
}

// runFCFS is a first-come-first-served fixed-discount sale ordered by the
// speed attribute. No refunds: the slow simply buy nothing.
func runFCFS(participants []domain.Participant, supply, fairPrice float64) []domain.ICOAllocation {
	price := fairPrice * (1 - fcfsDiscount)
	byLatency := make([]domain.Participant, len(participants))
	copy(byLatency, participants)
	sort.Slice(byLatency, func(i, j int) bool {
		if byLatency[i].Speed != byLatency[j].Speed {
			return byLatency[i].Speed > byLatency[j].Speed
		}
		return byLatency[i].ID < byLatency[j].ID
	})

	allocations := make([]domain.ICOAllocation, len(participants))
	remaining := supply
	for _, p := range byLatency {
		alloc := domain.ICOAllocation{ParticipantID: p.ID}
		if remaining > 0 {
			filled := p.DesiredQty
			if filled > remaining {
				filled = remaining
			}
			alloc.Filled = filled
			alloc.PricePaid = price
			alloc.Spent = filled * price
			remaining -= filled
		}
		allocations[p.ID-1] = alloc
	}
	return allocations
}

// runWhitelist admits a random fixed fraction of the pool with equal
// per-slot caps at the discounted price.
func runWhitelist(participants []domain.Participant, supply, fairPrice float64, seed int64) []domain.ICOAllocation {
	rng := rand.New(rand.NewSource(seed))
	price := fairPrice * (1 - fcfsDiscount)

	slots := int(float64(len(participants)) * whitelistFraction)
	if slots < 1 {
		slots = 1
	}
	capPerSlot := supply / float64(slots)

	order := rng.Perm(len(participants))
	allocations := make([]domain.ICOAllocation, len(participants))
	for i, idx := range order {
		p := participants[idx]
		alloc := domain.ICOAllocation{ParticipantID: p.ID}
		if i < slots {
			filled := p.DesiredQty
			if filled > capPerSlot {
				filled = capPerSlot
			}
			alloc.Filled = filled
			alloc.PricePaid = price
			alloc.Spent = filled * price
		}
		allocations[p.ID-1] = alloc
	}
	return allocations
}

// runDutch is a linearly-decaying Dutch auction from dutchStartMult * fair
// down to the floor. Each participant holds out for a personal trigger
// price; larger, faster participants wait for deeper discounts while
// retail jumps in earlier at higher prices.
func runDutch(participants []domain.Participant, supply, fairPrice, floorPrice float64, seed int64) []domain.ICOAllocation {
	rng := rand.New(rand.NewSource(seed + 1))
	start := fairPrice * dutchStartMult

	type entry struct {
		p       domain.Participant
		trigger float64
	}
	entries := make([]entry, len(participants))
	for i, p := range participants {
		// Archetype bias: retail triggers cluster just above fair,
		// whales and bots hold out below it.
		var trigger float64
		if p.Retail {
			trigger = fairPrice * (0.95 + 0.30*rng.Float64())
		} else {
			trigger = fairPrice * (0.80 + 0.20*rng.Float64())
		}
		if trigger > start {
			trigger = start
		}
		if trigger < floorPrice {
			trigger = floorPrice
		}
		entries[i] = entry{p: p, trigger: trigger}
	}

	// The clock descends, so higher triggers execute first.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].trigger != entries[j].trigger {
			return entries[i].trigger > entries[j].trigger
		}
		return entries[i].p.ID < entries[j].p.ID
	})

	allocations := make([]domain.ICOAllocation, len(participants))
	remaining := supply
	for _, e := range entries {
		alloc := domain.ICOAllocation{ParticipantID: e.p.ID}
		if remaining > 0 {
			filled := e.p.DesiredQty
			if filled > remaining {
				filled = remaining
			}
			alloc.Filled = filled
			alloc.PricePaid = e.trigger
			alloc.Spent = filled * e.trigger
			remaining -= filled
		}
		allocations[e.p.ID-1] = alloc
	}
	return allocations
}

func sortedBySizeDesc(participants []domain.Participant) []domain.Participant {
	out := make([]domain.Participant, len(participants))
	copy(out, participants)
	sort.Slice(out, func(i, j int) bool {
		if out[i].DesiredQty != out[j].DesiredQty {
			return out[i].DesiredQty > out[j].DesiredQty
		}
		return out[i].ID < out[j].ID
	})
	return out
}
