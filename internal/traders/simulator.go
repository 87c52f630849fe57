package traders

import (
	"math"

	"token-launch-lab/internal/amm"
	"token-launch-lab/internal/domain"
)

// Discount rate applied to the expected upside payout when computing the
// RT fair value.
const upsideDiscount = 0.05

// Simulator drives the trader population against the two claim pools over
// discrete time. Single-threaded; a full run is reproducible bit for bit
// given identical configuration and seed.
type Simulator struct {
	stablePool *amm.Pool
	upsidePool *amm.Pool
	population []Trader

	stableFair float64
	upsideFair float64

	stableHistory []float64
	upsideHistory []float64
	trades        []domain.TradeEvent

	// Mark value per trader at the start of the run, aligned with
	// population order. P&L series are measured against these.
	initialValues []float64
}

// Options configures a Simulator.
type Options struct {
	StablePool    *amm.Pool
	UpsidePool    *amm.Pool
	Population    []Trader
	ClearingPrice float64
	TGEPrice      float64
	CapMultiplier float64
}

// NewSimulator creates the trading loop for one run.
// PT fair value is the clearing price; RT fair value is the discounted
// expected payout under the configured TGE price and cap.
func NewSimulator(opts Options) *Simulator {
	effective := math.Min(opts.TGEPrice, opts.ClearingPrice*opts.CapMultiplier)
	upsideFair := math.Max(0, effective-opts.ClearingPrice) * (1 - upsideDiscount)

	return &Simulator{
		stablePool: opts.StablePool,
		upsidePool: opts.UpsidePool,
		population: opts.Population,
		stableFair: opts.ClearingPrice,
		upsideFair: upsideFair,
	}
}

// Run executes StepsPerDay * tradingDays steps. Each step gives every
// trader one opportunity to act in fixed order, marks every trader to
// market, and snapshots both pools exactly once.
func (s *Simulator) Run(tradingDays int) {
	s.initialValues = make([]float64, len(s.population))
	for i, trader := range s.population {
		s.initialValues[i] = s.markValue(trader.State())
	}

	steps := StepsPerDay * tradingDays
	for step := 0; step < steps; step++ {
		mc := &MarketContext{
			Step:          step,
			StablePrice:   s.stablePool.Price(),
			UpsidePrice:   s.upsidePool.Price(),
			StableHistory: s.stableHistory,
			UpsideHistory: s.upsideHistory,
			StableFair:    s.stableFair,
			UpsideFair:    s.upsideFair,
		}

		for _, trader := range s.population {
			s.executeStep(step, trader, mc)
		}

		// Mark every trader after all agents acted so P&L series stay
		// step-aligned across the population.
		for i, trader := range s.population {
			st := trader.State()
			st.PnLHistory = append(st.PnLHistory, s.markValue(st)-s.initialValues[i])
		}

		stableSnap := s.stablePool.Snapshot(step)
		upsideSnap := s.upsidePool.Snapshot(step)
		s.stableHistory = append(s.stableHistory, stableSnap.Price)
		s.upsideHistory = append(s.upsideHistory, upsideSnap.Price)
	}
}

// executeStep runs one trader's decide-and-execute. A nil decision or a
// non-positive clamped size is dropped silently.
func (s *Simulator) executeStep(step int, trader Trader, mc *MarketContext) {
	intent := trader.Decide(mc)
	if intent == nil {
		return
	}

	st := trader.State()
	size := math.Min(intent.Size, st.balanceFor(intent.Pool, intent.Direction)*maxBalanceFraction)
	if size <= 0 {
		return
	}

	pool := s.stablePool
	if intent.Pool == domain.PoolUpsideClaim {
		pool = s.upsidePool
	}

	before := s.markValue(st)
	res := pool.Swap(size, intent.Direction)
	if res.AmountIn <= 0 {
		return
	}
	s.settleBalances(st, intent, res)
	delta := s.markValue(st) - before

	event := domain.TradeEvent{
		TimeIndex: step,
		TraderID:  trader.ID(),
		Archetype: trader.Archetype(),
		Pool:      intent.Pool,
		Direction: intent.Direction,
		AmountIn:  res.AmountIn,
		AmountOut: res.AmountOut,
		Fee:       res.Fee,
		Price:     res.PriceAfter,
		PnLDelta:  delta,
	}
	st.Trades = append(st.Trades, event)
	s.trades = append(s.trades, event)
}

// settleBalances applies a swap result to the trader's balances.
func (s *Simulator) settleBalances(st *State, intent *Intent, res domain.SwapResult) {
	if intent.Direction == domain.SwapSellQuote {
		st.Cash -= res.AmountIn
		if intent.Pool == domain.PoolStableClaim {
			st.Stable += res.AmountOut
		} else {
			st.Upside += res.AmountOut
		}
		return
	}
	if intent.Pool == domain.PoolStableClaim {
		st.Stable -= res.AmountIn
	} else {
		st.Upside -= res.AmountIn
	}
	st.Cash += res.AmountOut
}

// markValue prices a trader's holdings at current pool marks.
func (s *Simulator) markValue(st *State) float64 {
	return st.Cash + st.Stable*s.stablePool.Price() + st.Upside*s.upsidePool.Price()
}

// Trades returns the full chronological trade log.
func (s *Simulator) Trades() []domain.TradeEvent { return s.trades }

// Summaries builds the per-trader result views. Total P&L is measured
// against each trader's mark value at the start of the run.
func (s *Simulator) Summaries() []domain.TraderSummary {
	summaries := make([]domain.TraderSummary, 0, len(s.population))
	for i, trader := range s.population {
		st := trader.State()
		final := s.markValue(st)
		initial := final
		if i < len(s.initialValues) {
			initial = s.initialValues[i]
		}
		summaries = append(summaries, domain.TraderSummary{
			ID:          trader.ID(),
			Archetype:   trader.Archetype(),
			FinalCash:   st.Cash,
			FinalStable: st.Stable,
			FinalUpside: st.Upside,
			FinalValue:  final,
			TotalPnL:    final - initial,
			TradeCount:  len(st.Trades),
			PnLHistory:  st.PnLHistory,
		})
	}
	return summaries
}
