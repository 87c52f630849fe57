// Package traders implements the trading archetypes and the discrete-time
// loop that drives the two claim pools over simulated days.
package traders

import (
	"fmt"

	"token-launch-lab/internal/domain"
)

// StepsPerDay is the number of discrete trading steps per simulated day.
const StepsPerDay = 24

// Per-order size is clamped to this fraction of the relevant balance.
const maxBalanceFraction = 0.10

// Intent is a trader's desired swap for one step.
type Intent struct {
	Pool      string  // domain.PoolStableClaim | domain.PoolUpsideClaim
	Direction string  // domain.SwapSellBase | domain.SwapSellQuote
	Size      float64 // input amount in the direction's input units
}

// MarketContext is the read-only market view traders decide against.
type MarketContext struct {
	Step          int
	StablePrice   float64   // current PT pool price
	UpsidePrice   float64   // current RT pool price
	StableHistory []float64 // one recorded price per completed step
	UpsideHistory []float64
	StableFair    float64 // theoretical PT value (clearing price)
	UpsideFair    float64 // discounted expected RT payout
}

// Trader is one market participant. Decide returns nil when the trader
// sits out the step.
type Trader interface {
	ID() string
	Archetype() string
	Decide(mc *MarketContext) *Intent
	State() *State
}

// State holds a trader's balances and append-only histories.
// Mutated only by that trader's own decision-and-execute step.
type State struct {
	Cash       float64
	Stable     float64 // PT balance
	Upside     float64 // RT balance
	PnLHistory []float64
	Trades     []domain.TradeEvent
}

// base carries the identity and state shared by all archetypes.
type base struct {
	id    string
	state State
}

func newBase(archetype string, index int, st State) base {
	return base{id: fmt.Sprintf("%s-%02d", archetype, index), state: st}
}

func (b *base) ID() string    { return b.id }
func (b *base) State() *State { return &b.state }

// balanceFor returns the balance an intent draws from.
func (s *State) balanceFor(pool, direction string) float64 {
	if direction == domain.SwapSellQuote {
		return s.Cash
	}
	if pool == domain.PoolStableClaim {
		return s.Stable
	}
	return s.Upside
}
