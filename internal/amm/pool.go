// Package amm implements a concentrated-liquidity pool for one trading
// pair: tick-bounded positions, closed-form single-range swap steps, and
// tick crossing against registered liquidity deltas.
package amm

import (
	"errors"
	"math"
	"sort"

	"token-launch-lab/internal/domain"
	"token-launch-lab/internal/pricemath"
)

// Seeding errors.
var (
	ErrInvalidRange = errors.New("lower price must be below upper price")
	ErrEmptyDeposit = errors.New("seeding requires a positive deposit on at least one side")
)

// maxSwapSteps bounds the tick-walk loop. Exceeding it returns the partial
// result accumulated so far instead of failing the run.
const maxSwapSteps = 256

// Pool owns all state for one trading pair. Not safe for concurrent use;
// the simulation invokes swaps strictly sequentially.
type Pool struct {
	label       string
	feeRate     float64
	tickSpacing int

	sqrtPrice float64
	tick      int
	liquidity float64

	positions   []domain.LiquidityPosition
	tickDeltas  map[int]float64 // tick -> net liquidity change when crossing upward
	sortedTicks []int           // initialized ticks, ascending

	stepVolume float64 // quote-denominated volume since last snapshot
	stepFees   float64 // quote-denominated fees since last snapshot

	history []domain.PoolSnapshot
}

// New creates an empty pool. Call Seed before swapping.
func New(label string, feeRate float64, tickSpacing int) *Pool {
	return &Pool{
		label:       label,
		feeRate:     feeRate,
		tickSpacing: tickSpacing,
		tickDeltas:  make(map[int]float64),
	}
}

// Label returns the pair label.
func (p *Pool) Label() string { return p.label }

// Price returns the current linear price (quote per base).
func (p *Pool) Price() float64 { return p.sqrtPrice * p.sqrtPrice }

// Tick returns the current tick index.
func (p *Pool) Tick() int { return p.tick }

// Liquidity returns the currently active liquidity.
func (p *Pool) Liquidity() float64 { return p.liquidity }

// History returns the ordered snapshot sequence.
func (p *Pool) History() []domain.PoolSnapshot { return p.history }

// Positions returns the registered liquidity positions.
func (p *Pool) Positions() []domain.LiquidityPosition { return p.positions }

// Seed deposits liquidity into [lowerPrice, upperPrice) at initialPrice.
// The liquidity magnitude follows the standard concentrated-liquidity
// formula: with price inside the range the binding constraint is whichever
// side's amount is scarcer; at or outside a boundary the single-sided
// formula applies.
func (p *Pool) Seed(initialPrice, lowerPrice, upperPrice, quoteAmount, baseAmount float64) error {
	if lowerPrice >= upperPrice {
		return ErrInvalidRange
	}
	if quoteAmount <= 0 && baseAmount <= 0 {
		return ErrEmptyDeposit
	}

	lowerTick, err := pricemath.PriceToTick(lowerPrice)
	if err != nil {
		return err
	}
	upperTick, err := pricemath.PriceToTick(upperPrice)
	if err != nil {
		return err
	}
	tick, err := pricemath.PriceToTick(initialPrice)
	if err != nil {
		return err
	}
	lowerTick = snapDown(lowerTick, p.tickSpacing)
	upperTick = snapUp(upperTick, p.tickSpacing)
	if upperTick <= lowerTick {
		upperTick = lowerTick + p.tickSpacing
	}

	sa := math.Sqrt(pricemath.TickToPrice(lowerTick))
	sb := math.Sqrt(pricemath.TickToPrice(upperTick))
	sp := math.Sqrt(initialPrice)

	var liq float64
	switch {
	case sp <= sa:
		// Entirely base-denominated below the range.
		liq = baseAmount * (sa * sb) / (sb - sa)
	case sp >= sb:
		// Entirely quote-denominated above the range.
		liq = quoteAmount / (sb - sa)
	default:
		liqBase := baseAmount * (sp * sb) / (sb - sp)
		liqQuote := quoteAmount / (sp - sa)
		liq = math.Min(liqBase, liqQuote)
	}
	if liq <= 0 || math.IsInf(liq, 0) || math.IsNaN(liq) {
		return ErrEmptyDeposit
	}

	p.positions = append(p.positions, domain.LiquidityPosition{
		LowerTick: lowerTick,
		UpperTick: upperTick,
		Liquidity: liq,
	})
	p.addTickDelta(lowerTick, liq)
	p.addTickDelta(upperTick, -liq)

	p.sqrtPrice = sp
	p.tick = tick
	if tick >= lowerTick && tick < upperTick {
		p.liquidity += liq
	}
	return nil
}

// Swap executes a trade against the pool. direction is SwapSellBase
// (price moves down) or SwapSellQuote (price moves up). A swap against
// zero liquidity or non-positive input is a no-op, not an error.
func (p *Pool) Swap(amountIn float64, direction string) domain.SwapResult {
	if amountIn <= 0 || p.liquidity <= 0 {
		return domain.SwapResult{PriceAfter: p.Price(), TickAfter: p.tick}
	}

	remaining := amountIn
	var totalOut, totalFee float64
	capped := true

	for step := 0; step < maxSwapSteps; step++ {
		if remaining <= 0 {
			capped = false
			break
		}
		if p.liquidity <= 0 {
			// Crossed out of every position; leftover input is unspent.
			capped = false
			break
		}

		grossAvail := remaining
		fee := grossAvail * p.feeRate
		netAvail := grossAvail - fee

		target, hasTarget := p.nextBoundary(direction)
		stepOut, netUsed, crossed := p.stepWithinRange(netAvail, direction, target, hasTarget)

		grossUsed := grossAvail
		feeCharged := fee
		if netUsed < netAvail {
			// Boundary reached before the input ran out: charge fee only
			// on the consumed portion.
			grossUsed = netUsed / (1 - p.feeRate)
			feeCharged = grossUsed - netUsed
		}

		remaining -= grossUsed
		if remaining < 1e-15*amountIn {
			remaining = 0
		}
		totalOut += stepOut
		totalFee += feeCharged
		p.accumulate(direction, netUsed, stepOut, feeCharged)

		if crossed {
			p.crossTick(direction, target)
			continue
		}
		capped = false
		break
	}

	if remaining == 0 {
		capped = false
	}
	if totalOut < 0 {
		totalOut = 0
	}
	if tick, err := pricemath.PriceToTick(p.Price()); err == nil {
		p.tick = tick
	}

	return domain.SwapResult{
		AmountIn:   amountIn - remaining,
		AmountOut:  totalOut,
		Fee:        totalFee,
		PriceAfter: p.Price(),
		TickAfter:  p.tick,
		Capped:     capped,
	}
}

// stepWithinRange executes a single-tick-range swap step against current
// liquidity. Returns the output amount, the net input consumed, and
// whether the step ran into the target boundary.
func (p *Pool) stepWithinRange(netIn float64, direction string, target float64, hasTarget bool) (out, used float64, crossed bool) {
	liq := p.liquidity
	sp := p.sqrtPrice

	if direction == domain.SwapSellBase {
		// Selling base: sqrt price falls along L*sp / (L + dx*sp).
		newSqrt := liq * sp / (liq + netIn*sp)
		if hasTarget && newSqrt <= target {
			// dx to land exactly on the boundary.
			used = liq * (sp - target) / (sp * target)
			out = liq * (sp - target)
			p.sqrtPrice = target
			return out, used, true
		}
		out = liq * (sp - newSqrt)
		p.sqrtPrice = newSqrt
		return out, netIn, false
	}

	// Selling quote: sqrt price rises along sp + dy/L.
	newSqrt := sp + netIn/liq
	if hasTarget && newSqrt >= target {
		used = liq * (target - sp)
		out = liq * (target - sp) / (sp * target)
		p.sqrtPrice = target
		return out, used, true
	}
	out = liq * (newSqrt - sp) / (sp * newSqrt)
	p.sqrtPrice = newSqrt
	return out, netIn, false
}

// Relative tolerance for matching the current price against an initialized
// tick. A boundary this close was just landed on by a crossing and is not
// a target again.
const boundaryEps = 1e-12

// nextBoundary returns the sqrt price of the next initialized tick in the
// trade's direction, or false when no boundary remains. Tick prices are
// monotone in the tick index, so a binary search over sortedTicks finds
// the boundary.
func (p *Pool) nextBoundary(direction string) (float64, bool) {
	price := p.Price()

	if direction == domain.SwapSellBase {
		// Greatest initialized tick strictly below the current price.
		i := sort.Search(len(p.sortedTicks), func(i int) bool {
			return pricemath.TickToPrice(p.sortedTicks[i]) >= price*(1-boundaryEps)
		})
		if i == 0 {
			return 0, false
		}
		return math.Sqrt(pricemath.TickToPrice(p.sortedTicks[i-1])), true
	}

	// Smallest initialized tick strictly above the current price.
	i := sort.Search(len(p.sortedTicks), func(i int) bool {
		return pricemath.TickToPrice(p.sortedTicks[i]) > price*(1+boundaryEps)
	})
	if i == len(p.sortedTicks) {
		return 0, false
	}
	return math.Sqrt(pricemath.TickToPrice(p.sortedTicks[i])), true
}

// crossTick updates active liquidity from the registered delta at the
// boundary the price just reached.
func (p *Pool) crossTick(direction string, targetSqrt float64) {
	// Identify the initialized tick whose sqrt price matches the target.
	for _, t := range p.sortedTicks {
		tp := math.Sqrt(pricemath.TickToPrice(t))
		if math.Abs(tp-targetSqrt) < 1e-12*targetSqrt {
			if direction == domain.SwapSellBase {
				p.liquidity -= p.tickDeltas[t]
			} else {
				p.liquidity += p.tickDeltas[t]
			}
			if p.liquidity < 0 {
				p.liquidity = 0
			}
			return
		}
	}
}

// accumulate records step volume and fees in quote terms.
func (p *Pool) accumulate(direction string, netIn, out, fee float64) {
	price := p.Price()
	if direction == domain.SwapSellQuote {
		p.stepVolume += netIn
		p.stepFees += fee
		return
	}
	// Base-denominated input: convert to quote at the post-step price.
	p.stepVolume += out
	p.stepFees += fee * price
}

// Snapshot appends the current state plus accumulated step volume and fees
// to the pool history and resets the accumulators. One snapshot per
// simulation step regardless of how many swaps occurred within it.
func (p *Pool) Snapshot(timeIndex int) domain.PoolSnapshot {
	x96, _ := pricemath.SqrtPriceX96(p.Price())
	snap := domain.PoolSnapshot{
		TimeIndex:    timeIndex,
		Price:        p.Price(),
		SqrtPriceX96: domain.NewBigDecString(x96),
		Tick:         p.tick,
		Liquidity:    p.liquidity,
		StepVolume:   p.stepVolume,
		StepFees:     p.stepFees,
	}
	p.history = append(p.history, snap)
	p.stepVolume = 0
	p.stepFees = 0
	return snap
}

// Depth returns liquidity per tick bucket around the current tick.
// Purely derived; no mutation.
func (p *Pool) Depth(bucketCount int) []domain.DepthBucket {
	if bucketCount <= 0 {
		return nil
	}
	width := p.tickSpacing
	if width <= 0 {
		width = 1
	}
	start := p.tick - (bucketCount/2)*width

	buckets := make([]domain.DepthBucket, 0, bucketCount)
	for i := 0; i < bucketCount; i++ {
		lo := start + i*width
		hi := lo + width
		mid := lo + width/2
		buckets = append(buckets, domain.DepthBucket{
			TickLower: lo,
			TickUpper: hi,
			Price:     pricemath.TickToPrice(mid),
			Liquidity: p.liquidityAt(lo),
		})
	}
	return buckets
}

// liquidityAt sums registered deltas at or below the tick.
func (p *Pool) liquidityAt(tick int) float64 {
	liq := 0.0
	for _, t := range p.sortedTicks {
		if t > tick {
			break
		}
		liq += p.tickDeltas[t]
	}
	if liq < 0 {
		return 0
	}
	return liq
}

func (p *Pool) addTickDelta(tick int, delta float64) {
	if _, ok := p.tickDeltas[tick]; !ok {
		i := sort.SearchInts(p.sortedTicks, tick)
		p.sortedTicks = append(p.sortedTicks, 0)
		copy(p.sortedTicks[i+1:], p.sortedTicks[i:])
		p.sortedTicks[i] = tick
	}
	p.tickDeltas[tick] += delta
}

func snapDown(tick, spacing int) int {
	if spacing <= 1 {
		return tick
	}
	t := tick / spacing * spacing
	if tick < 0 && tick%spacing != 0 {
		t -= spacing
	}
	return t
}

func snapUp(tick, spacing int) int {
	if spacing <= 1 {
		return tick
	}
	t := snapDown(tick, spacing)
	if t < tick {
		t += spacing
	}
	return t
}
