package comparison

import (
	"math"
	"sort"

	"token-launch-lab/internal/domain"
)

// A fill is "dumpable" when obtained more than this far under fair price.
const dumpDiscountThreshold = 0.05

// Access-advantage ratios are capped here to keep the radar bounded when
// the slow half receives nothing at all.
const accessAdvantageCap = 10.0

// scoreMechanism computes the fairness/efficiency metrics for one
// mechanism's allocations over the shared pool.
func scoreMechanism(mechanism string, participants []domain.Participant, allocations []domain.ICOAllocation, supply, fairPrice float64) domain.ICOMetrics {
	var totalFilled, totalSpent, totalRefunded, raised float64
	holdings := make([]float64, len(allocations))
	for i, a := range allocations {
		holdings[i] = a.Filled
		totalFilled += a.Filled
		totalSpent += a.Spent
		totalRefunded += a.Refunded
		raised += a.Spent - a.Refunded
	}

	effective := 0.0
	if totalFilled > 0 {
		effective = raised / totalFilled
	}

	m := domain.ICOMetrics{
		Mechanism:       mechanism,
		EffectivePrice:  effective,
		AmountRaised:    raised,
		Gini:            gini(holdings),
		WhaleShare:      topDecileShare(holdings),
		RetailFillRate:  fillRate(participants, allocations, func(p domain.Participant) bool { return p.Retail }),
		RefundRate:      ratio(totalRefunded, totalSpent),
		DumpRisk:        dumpRisk(allocations, supply, fairPrice),
		AccessAdvantage: accessAdvantage(participants, allocations),
		DiscoveryScore:  discoveryScore(effective, fairPrice),
	}
	m.Radar = radar(m, supply, fairPrice)
	return m
}

// gini computes the Gini coefficient over final holdings, zero holdings
// included. Result is in [0, 1]; an all-zero distribution scores 0.
func gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum, weighted float64
	for i, v := range sorted {
		sum += v
		weighted += float64(2*(i+1)-n-1) * v
	}
	if sum == 0 {
		return 0
	}
	g := weighted / (float64(n) * sum)
	if g < 0 {
		g = 0
	}
	if g > 1 {
		g = 1
	}
	return g
}

// topDecileShare returns the share of total holdings captured by the top
// 10% of holders.
func topDecileShare(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	decile := (n + 9) / 10
	var top, total float64
	for i, v := range sorted {
		total += v
		if i < decile {
			top += v
		}
	}
	return ratio(top, total)
}

// fillRate returns filled / desired over the participants matching the
// predicate.
func fillRate(participants []domain.Participant, allocations []domain.ICOAllocation, match func(domain.Participant) bool) float64 {
	var filled, desired float64
	for i, p := range participants {
		if !match(p) {
			continue
		}
		desired += p.DesiredQty
		filled += allocations[i].Filled
	}
	return ratio(filled, desired)
}

// dumpRisk is the share of supply obtained at more than the threshold
// discount to fair price, i.e. immediately profitable to flip.
func dumpRisk(allocations []domain.ICOAllocation, supply, fairPrice float64) float64 {
	cutoff := fairPrice * (1 - dumpDiscountThreshold)
	var discounted float64
	for _, a := range allocations {
		if a.Filled > 0 && a.PricePaid < cutoff {
			discounted += a.Filled
		}
	}
	return ratio(discounted, supply)
}

// accessAdvantage compares the fill rate of the fastest decile against the
// slowest half of the pool.
func accessAdvantage(participants []domain.Participant, allocations []domain.ICOAllocation) float64 {
	bySpeed := make([]int, len(participants))
	for i := range bySpeed {
		bySpeed[i] = i
	}
	sort.Slice(bySpeed, func(a, b int) bool {
		if participants[bySpeed[a]].Speed != participants[bySpeed[b]].Speed {
			return participants[bySpeed[a]].Speed > participants[bySpeed[b]].Speed
		}
		return bySpeed[a] < bySpeed[b]
	})

	decile := (len(participants) + 9) / 10
	fast := make(map[int]bool, decile)
	slow := make(map[int]bool)
	for rank, idx := range bySpeed {
		if rank < decile {
			fast[idx] = true
		}
		if rank >= len(bySpeed)/2 {
			slow[idx] = true
		}
	}

	fastRate := groupFillRate(participants, allocations, fast)
	slowRate := groupFillRate(participants, allocations, slow)
	if slowRate == 0 {
		if fastRate == 0 {
			return 1
		}
		return accessAdvantageCap
	}
	adv := fastRate / slowRate
	if adv > accessAdvantageCap {
		adv = accessAdvantageCap
	}
	return adv
}

func groupFillRate(participants []domain.Participant, allocations []domain.ICOAllocation, group map[int]bool) float64 {
	var filled, desired float64
	for i, p := range participants {
		if !group[i] {
			continue
		}
		desired += p.DesiredQty
		filled += allocations[i].Filled
	}
	return ratio(filled, desired)
}

// discoveryScore maps closeness of the effective sale price to fair price
// onto [0, 100].
func discoveryScore(effective, fairPrice float64) float64 {
	if fairPrice <= 0 || effective <= 0 {
		return 0
	}
	score := 100 * (1 - math.Abs(effective-fairPrice)/fairPrice)
	if score < 0 {
		return 0
	}
	return score
}

// radar rolls the metrics into the six 0-100 chart axes.
func radar(m domain.ICOMetrics, supply, fairPrice float64) domain.Radar {
	capital := 0.0
	if fairPrice > 0 && supply > 0 {
		capital = clampScore(100 * m.AmountRaised / (fairPrice * supply))
	}
	return domain.Radar{
		Fairness:       clampScore(100 * (1 - m.Gini)),
		RetailAccess:   clampScore(100 * m.RetailFillRate),
		PriceDiscovery: clampScore(m.DiscoveryScore),
		CapitalRaised:  capital,
		Stability:      clampScore(100 * (1 - m.DumpRisk)),
		BotResistance:  clampScore(100 / m.AccessAdvantage),
	}
}

func clampScore(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}
