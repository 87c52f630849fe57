package domain

// PoolReport is one pool's full observation history for the result object.
type PoolReport struct {
	Label     string         `json:"label"`
	Snapshots []PoolSnapshot `json:"snapshots"`
	Depth     []DepthBucket  `json:"depth"` // depth chart at final state
}

// SimulationResult aggregates everything one scenario run produces.
// This is the single object handed to the presentation layer.
type SimulationResult struct {
	RunID       string             `json:"run_id"` // deterministic hash of config
	Config      ScenarioConfig     `json:"config"`
	Auction     *AuctionResult     `json:"auction"`
	Vault       VaultAllocation    `json:"vault"`
	StablePool  PoolReport         `json:"stable_pool"`
	UpsidePool  PoolReport         `json:"upside_pool"`
	Trades      []TradeEvent       `json:"trades"`
	Traders     []TraderSummary    `json:"traders"`
	Settlement  *SettlementResult  `json:"settlement"`
	Sensitivity []SensitivityPoint `json:"sensitivity"`
	Comparison  *ComparisonResult  `json:"comparison"`
}
