package domain

// Trader archetypes.
const (
	ArchetypeRandom    = "RANDOM"
	ArchetypeMomentum  = "MOMENTUM"
	ArchetypeArbitrage = "ARBITRAGE"
)

// TradeEvent is an immutable record of one executed swap.
type TradeEvent struct {
	TimeIndex int     `json:"time_index"`
	TraderID  string  `json:"trader_id"`
	Archetype string  `json:"archetype"`
	Pool      string  `json:"pool"`      // PoolStableClaim | PoolUpsideClaim
	Direction string  `json:"direction"` // SwapSellBase | SwapSellQuote
	AmountIn  float64 `json:"amount_in"`
	AmountOut float64 `json:"amount_out"`
	Fee       float64 `json:"fee"`
	Price     float64 `json:"price"`     // pool price after execution
	PnLDelta  float64 `json:"pnl_delta"` // mark-to-market change attributable to this trade
}

// TraderSummary is the per-trader view included in the simulation result.
type TraderSummary struct {
	ID           string    `json:"id"`
	Archetype    string    `json:"archetype"`
	FinalCash    float64   `json:"final_cash"`
	FinalStable  float64   `json:"final_stable"`  // PT balance
	FinalUpside  float64   `json:"final_upside"`  // RT balance
	FinalValue   float64   `json:"final_value"`   // cash + holdings at mark price
	TotalPnL     float64   `json:"total_pnl"`
	TradeCount   int       `json:"trade_count"`
	PnLHistory   []float64 `json:"pnl_history"` // one entry per step, step-aligned across traders
}
