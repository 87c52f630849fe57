package domain

// Allocation mechanisms scored by the comparative evaluator.
const (
	MechanismBatchAuction = "BATCH_AUCTION"
	MechanismFCFS         = "FCFS"
	MechanismWhitelist    = "WHITELIST"
	MechanismDutch        = "DUTCH"
)

// Participant is one member of the shared synthetic demand pool.
// The same pool is replayed through every mechanism.
type Participant struct {
	ID         int     `json:"id"`
	Wealth     float64 `json:"wealth"`      // log-normal budget in currency units
	DesiredQty float64 `json:"desired_qty"` // size-correlated demand in tokens
	Speed      float64 `json:"speed"`       // execution speed score in [0, 1]
	Retail     bool    `json:"retail"`      // bottom half of the pool by desired size
}

// ICOAllocation is one participant's outcome under one mechanism.
type ICOAllocation struct {
	ParticipantID int     `json:"participant_id"`
	Filled        float64 `json:"filled"`
	PricePaid     float64 `json:"price_paid"` // 0 when nothing filled
	Spent         float64 `json:"spent"`
	Refunded      float64 `json:"refunded"`
}

// ICOMetrics scores one mechanism on the shared participant pool.
type ICOMetrics struct {
	Mechanism       string  `json:"mechanism"`
	EffectivePrice  float64 `json:"effective_price"`
	AmountRaised    float64 `json:"amount_raised"`
	Gini            float64 `json:"gini"`              // holdings inequality, zeros included
	WhaleShare      float64 `json:"whale_share"`       // top decile capture of filled supply
	RetailFillRate  float64 `json:"retail_fill_rate"`  // filled / desired over retail participants
	RefundRate      float64 `json:"refund_rate"`       // refunded / spent gross
	DumpRisk        float64 `json:"dump_risk"`         // share of supply sold >5% under fair price
	AccessAdvantage float64 `json:"access_advantage"`  // fast-decile fill rate / slow-half fill rate
	DiscoveryScore  float64 `json:"discovery_score"`   // 0-100, closeness to fair price
	Radar           Radar   `json:"radar"`
}

// Radar is the six-axis 0-100 rollup used by the comparison chart.
type Radar struct {
	Fairness       float64 `json:"fairness"`        // inverse Gini
	RetailAccess   float64 `json:"retail_access"`   // retail fill rate
	PriceDiscovery float64 `json:"price_discovery"` // discovery score
	CapitalRaised  float64 `json:"capital_raised"`  // raised vs fair-price raise
	Stability      float64 `json:"stability"`       // inverse dump risk
	BotResistance  float64 `json:"bot_resistance"`  // inverse access advantage
}

// ComparisonResult holds the four scored mechanisms plus the shared pool.
type ComparisonResult struct {
	FairPrice    float64                    `json:"fair_price"` // auction clearing price
	Participants []Participant              `json:"participants"`
	Allocations  map[string][]ICOAllocation `json:"allocations"` // mechanism -> per-participant
	Metrics      []ICOMetrics               `json:"metrics"`     // fixed mechanism order
}
