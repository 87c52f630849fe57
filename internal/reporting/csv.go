package reporting

import (
	"fmt"
	"strings"

	"token-launch-lab/internal/domain"
)

// RenderSensitivityCSV renders the TGE sensitivity sweep as CSV.
func RenderSensitivityCSV(points []domain.SensitivityPoint) string {
	var sb strings.Builder
	sb.WriteString("tge_multiplier,tge_price,payout_per_claim,total_liability,pro_rata_factor,mean_net_outcome\n")
	for _, p := range points {
		sb.WriteString(fmt.Sprintf("%.4f,%.6f,%.6f,%.6f,%.6f,%.6f\n",
			p.TGEMultiplier,
			p.TGEPrice,
			p.PayoutPerClaim,
			p.TotalLiability,
			p.ProRataFactor,
			p.MeanNetOutcome,
		))
	}
	return sb.String()
}

// RenderComparisonCSV renders the mechanism scores as CSV.
func RenderComparisonCSV(metrics []domain.ICOMetrics) string {
	var sb strings.Builder
	sb.WriteString("mechanism,effective_price,amount_raised,gini,whale_share,retail_fill_rate,")
	sb.WriteString("refund_rate,dump_risk,access_advantage,discovery_score\n")
	for _, m := range metrics {
		sb.WriteString(fmt.Sprintf("%s,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.2f\n",
			m.Mechanism,
			m.EffectivePrice,
			m.AmountRaised,
			m.Gini,
			m.WhaleShare,
			m.RetailFillRate,
			m.RefundRate,
			m.DumpRisk,
			m.AccessAdvantage,
			m.DiscoveryScore,
		))
	}
	return sb.String()
}

// RenderTradesCSV renders the full trade log as CSV.
func RenderTradesCSV(trades []domain.TradeEvent) string {
	var sb strings.Builder
	sb.WriteString("time_index,trader_id,archetype,pool,direction,amount_in,amount_out,fee,price,pnl_delta\n")
	for _, t := range trades {
		sb.WriteString(fmt.Sprintf("%d,%s,%s,%s,%s,%.8f,%.8f,%.8f,%.8f,%.8f\n",
			t.TimeIndex,
			t.TraderID,
			t.Archetype,
			t.Pool,
			t.Direction,
			t.AmountIn,
			t.AmountOut,
			t.Fee,
			t.Price,
			t.PnLDelta,
		))
	}
	return sb.String()
}
