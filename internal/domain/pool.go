package domain

// Swap directions. Selling the base asset moves price down,
// selling the quote asset moves it up.
const (
	SwapSellBase  = "sell_base"
	SwapSellQuote = "sell_quote"
)

// Pool labels for the two claim markets.
const (
	PoolStableClaim = "PT/USDC"
	PoolUpsideClaim = "RT/USDC"
)

// LiquidityPosition is one tick-bounded liquidity range.
// The range is [LowerTick, UpperTick).
type LiquidityPosition struct {
	LowerTick int     `json:"lower_tick"`
	UpperTick int     `json:"upper_tick"`
	Liquidity float64 `json:"liquidity"`
}

// SwapResult is the outcome of one pool swap call.
// A swap against zero liquidity or non-positive input yields a zero-valued
// result rather than an error.
type SwapResult struct {
	AmountIn   float64 `json:"amount_in"`  // input actually consumed
	AmountOut  float64 `json:"amount_out"` // output delivered, floored at zero
	Fee        float64 `json:"fee"`        // protocol fee retained, in input units
	PriceAfter float64 `json:"price_after"`
	TickAfter  int     `json:"tick_after"`
	Capped     bool    `json:"capped"` // true if the tick-walk iteration cap cut the swap short
}

// PoolSnapshot is an immutable point-in-time pool observation.
// One snapshot is recorded per simulation step per pool.
type PoolSnapshot struct {
	TimeIndex    int          `json:"time_index"`
	Price        float64      `json:"price"`
	SqrtPriceX96 BigDecString `json:"sqrt_price_x96"` // protocol fixed-point form, decimal string
	Tick         int          `json:"tick"`
	Liquidity    float64      `json:"liquidity"`
	StepVolume   float64      `json:"step_volume"` // quote-denominated volume since previous snapshot
	StepFees     float64      `json:"step_fees"`   // fees accrued since previous snapshot
}

// DepthBucket is one bar of the liquidity-depth chart.
type DepthBucket struct {
	TickLower int     `json:"tick_lower"`
	TickUpper int     `json:"tick_upper"`
	Price     float64 `json:"price"` // price at the bucket midpoint
	Liquidity float64 `json:"liquidity"`
}
