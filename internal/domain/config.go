package domain

// BidShape selects the distribution bids are drawn from.
const (
	BidShapeUniform    = "uniform"
	BidShapeLogUniform = "log-uniform"
	BidShapePowerLaw   = "power-law"
)

// TraderMix holds the population size per archetype.
type TraderMix struct {
	Random    int `json:"random"`
	Momentum  int `json:"momentum"`
	Arbitrage int `json:"arbitrage"`
}

// Total returns the total trader population.
func (m TraderMix) Total() int {
	return m.Random + m.Momentum + m.Arbitrage
}

// ScenarioConfig holds every parameter of one simulation run.
// Immutable once a run starts; callers construct a value and pass it by value.
type ScenarioConfig struct {
	TotalSupply   float64   `json:"total_supply"`   // tokens offered in the auction
	FloorPrice    float64   `json:"floor_price"`    // minimum accepted bid price
	CapMultiplier float64   `json:"cap_multiplier"` // upside-claim cap, multiple of clearing price
	BidCount      int       `json:"bid_count"`      // number of synthetic bids to draw
	BidShape      string    `json:"bid_shape"`      // BidShapeUniform | BidShapeLogUniform | BidShapePowerLaw
	Traders       TraderMix `json:"traders"`        // trader population per archetype
	TradingDays   int       `json:"trading_days"`   // simulated days of secondary trading
	TGEPrice      float64   `json:"tge_price"`      // token price at generation event
	PayoutReserve float64   `json:"payout_reserve"` // currency units funding upside payouts
	Seed          int64     `json:"seed"`           // master RNG seed
}
