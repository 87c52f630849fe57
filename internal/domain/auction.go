package domain

// Fraction of the auction raise set aside to bootstrap the claim pools.
const LiquidityReserveFraction = 0.10

// Bid is one sealed bid submitted to the batch auction.
type Bid struct {
	ID       int     `json:"id"`
	Quantity float64 `json:"quantity"` // requested token quantity
	Price    float64 `json:"price"`    // limit price per token
}

// Deposit returns the currency amount escrowed with the bid.
func (b Bid) Deposit() float64 {
	return b.Quantity * b.Price
}

// BidOutcome is a Bid after clearing.
// Invariants: Filled <= Quantity, Refund >= 0.
type BidOutcome struct {
	Bid
	Filled    float64 `json:"filled"`     // token quantity won
	Refund    float64 `json:"refund"`     // currency returned to the bidder
	Winner    bool    `json:"winner"`     // true if Filled > 0
	ReceiptID int     `json:"receipt_id"` // sequential allocation receipt, 0 if none
}

// AuctionResult is the output of one uniform-price clearing.
// Created once per run; read-only afterward.
type AuctionResult struct {
	ClearingPrice    float64      `json:"clearing_price"`
	FillRatio        float64      `json:"fill_ratio"`        // supply / eligible demand, capped at 1
	AmountRaised     float64      `json:"amount_raised"`     // TotalFilled * ClearingPrice
	LiquidityReserve float64      `json:"liquidity_reserve"` // LiquidityReserveFraction of the raise
	TotalFilled      float64      `json:"total_filled"`
	Outcomes         []BidOutcome `json:"outcomes"`
}

// VaultAllocation summarizes the claim split of the auctioned supply.
// Every filled token mints one stable claim (PT) and one upside claim (RT).
type VaultAllocation struct {
	StableClaims float64 `json:"stable_claims"` // PT minted, equals TotalFilled
	UpsideClaims float64 `json:"upside_claims"` // RT minted, equals TotalFilled
	Receipts     int     `json:"receipts"`      // allocation receipts issued
}
