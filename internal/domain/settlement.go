package domain

// BidderSettlement is the final cash outcome for one winning bidder.
type BidderSettlement struct {
	BidID        int     `json:"bid_id"`
	ReceiptID    int     `json:"receipt_id"`
	Claims       float64 `json:"claims"`        // filled quantity, same count of PT and RT
	StableValue  float64 `json:"stable_value"`  // PT value at TGE price
	UpsidePayout float64 `json:"upside_payout"` // RT payout after pro-rata scaling
	AuctionCost  float64 `json:"auction_cost"`  // clearing price * claims
	NetOutcome   float64 `json:"net_outcome"`   // StableValue + UpsidePayout - AuctionCost
}

// SettlementResult is the payout computation for one run.
// Computed once from the auction result and configuration; read-only.
type SettlementResult struct {
	TGEPrice       float64            `json:"tge_price"`
	ClearingPrice  float64            `json:"clearing_price"`
	CapMultiplier  float64            `json:"cap_multiplier"`
	EffectivePrice float64            `json:"effective_price"`  // min(TGE, clearing * cap)
	PayoutPerClaim float64            `json:"payout_per_claim"` // max(0, effective - clearing)
	TotalLiability float64            `json:"total_liability"`
	ReserveUsed    float64            `json:"reserve_used"`
	ProRataFactor  float64            `json:"pro_rata_factor"` // in (0, 1]
	Bidders        []BidderSettlement `json:"bidders"`
}

// SensitivityPoint is one rung of the TGE-price sensitivity ladder.
type SensitivityPoint struct {
	TGEMultiplier  float64 `json:"tge_multiplier"` // TGE price as multiple of clearing price
	TGEPrice       float64 `json:"tge_price"`
	PayoutPerClaim float64 `json:"payout_per_claim"`
	TotalLiability float64 `json:"total_liability"`
	ProRataFactor  float64 `json:"pro_rata_factor"`
	MeanNetOutcome float64 `json:"mean_net_outcome"` // mean bidder net outcome at this rung
}
