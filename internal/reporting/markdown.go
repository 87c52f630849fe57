// Package reporting renders a SimulationResult as Markdown and CSV for
// human review outside the JSON API.
package reporting

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"token-launch-lab/internal/domain"
)

// RenderMarkdown renders the scenario result as a Markdown report.
func RenderMarkdown(r *domain.SimulationResult) string {
	var sb strings.Builder

	sb.WriteString("# Launch Scenario Report\n\n")
	sb.WriteString(fmt.Sprintf("Run: `%s`\n\n", r.RunID))
	sb.WriteString(fmt.Sprintf("Supply: %s | Floor: $%.4f | Bids: %d (%s) | Seed: %d\n\n",
		humanize.CommafWithDigits(r.Config.TotalSupply, 0),
		r.Config.FloorPrice, r.Config.BidCount, r.Config.BidShape, r.Config.Seed))

	// Auction
	sb.WriteString("## Auction\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Clearing Price | $%.4f |\n", r.Auction.ClearingPrice))
	sb.WriteString(fmt.Sprintf("| Fill Ratio | %.2f%% |\n", r.Auction.FillRatio*100))
	sb.WriteString(fmt.Sprintf("| Amount Raised | $%s |\n", humanize.CommafWithDigits(r.Auction.AmountRaised, 2)))
	sb.WriteString(fmt.Sprintf("| Liquidity Reserve | $%s |\n", humanize.CommafWithDigits(r.Auction.LiquidityReserve, 2)))
	sb.WriteString(fmt.Sprintf("| Total Filled | %s |\n", humanize.CommafWithDigits(r.Auction.TotalFilled, 0)))
	sb.WriteString(fmt.Sprintf("| Receipts Issued | %d |\n", r.Vault.Receipts))
	sb.WriteString("\n")

	// Markets
	sb.WriteString("## Claim Markets\n\n")
	sb.WriteString("| Pool | Final Price | Final Liquidity | Snapshots |\n")
	sb.WriteString("|------|-------------|-----------------|----------|\n")
	for _, pool := range []domain.PoolReport{r.StablePool, r.UpsidePool} {
		last := pool.Snapshots[len(pool.Snapshots)-1]
		sb.WriteString(fmt.Sprintf("| %s | $%.4f | %s | %d |\n",
			pool.Label, last.Price,
			humanize.CommafWithDigits(last.Liquidity, 0), len(pool.Snapshots)))
	}
	sb.WriteString(fmt.Sprintf("\nTrades executed: %d\n\n", len(r.Trades)))

	// Traders
	sb.WriteString("## Traders\n\n")
	sb.WriteString("| Trader | Archetype | Trades | Final Value | P&L |\n")
	sb.WriteString("|--------|-----------|--------|-------------|-----|\n")
	for _, tr := range r.Traders {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | $%s | %+.2f |\n",
			tr.ID, tr.Archetype, tr.TradeCount,
			humanize.CommafWithDigits(tr.FinalValue, 2), tr.TotalPnL))
	}
	sb.WriteString("\n")

	// Settlement
	sb.WriteString("## Settlement\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| TGE Price | $%.4f |\n", r.Settlement.TGEPrice))
	sb.WriteString(fmt.Sprintf("| Effective Price | $%.4f |\n", r.Settlement.EffectivePrice))
	sb.WriteString(fmt.Sprintf("| Payout Per Claim | $%.6f |\n", r.Settlement.PayoutPerClaim))
	sb.WriteString(fmt.Sprintf("| Total Liability | $%s |\n", humanize.CommafWithDigits(r.Settlement.TotalLiability, 2)))
	sb.WriteString(fmt.Sprintf("| Pro-Rata Factor | %.4f |\n", r.Settlement.ProRataFactor))
	sb.WriteString("\n")

	// Comparison
	sb.WriteString("## Mechanism Comparison\n\n")
	sb.WriteString("| Mechanism | Eff. Price | Raised | Gini | Whale Share | Retail Fill | Dump Risk | Discovery |\n")
	sb.WriteString("|-----------|-----------|--------|------|-------------|-------------|-----------|----------|\n")
	for _, m := range r.Comparison.Metrics {
		sb.WriteString(fmt.Sprintf("| %s | $%.4f | $%s | %.3f | %.1f%% | %.1f%% | %.1f%% | %.0f |\n",
			m.Mechanism, m.EffectivePrice,
			humanize.CommafWithDigits(m.AmountRaised, 0),
			m.Gini, m.WhaleShare*100, m.RetailFillRate*100, m.DumpRisk*100,
			m.DiscoveryScore))
	}
	sb.WriteString("\n")

	return sb.String()
}
