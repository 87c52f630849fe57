package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"token-launch-lab/internal/domain"
	"token-launch-lab/internal/reporting"
	"token-launch-lab/internal/scenario"
)

func main() {
	// Parse flags
	supply := flag.Float64("supply", 0, "Total token supply offered (0 = default)")
	floor := flag.Float64("floor", 0, "Auction floor price (0 = default)")
	cap := flag.Float64("cap", 0, "Upside cap as a multiple of clearing price (0 = default)")
	bids := flag.Int("bids", 0, "Number of synthetic bids (0 = default)")
	shape := flag.String("shape", "", "Bid shape: uniform, log-uniform, power-law (empty = default)")
	days := flag.Int("days", 0, "Trading days to simulate (0 = default)")
	tge := flag.Float64("tge", -1, "TGE price (-1 = default)")
	reserve := flag.Float64("reserve", -1, "Payout reserve (-1 = default)")
	seed := flag.Int64("seed", 0, "Master RNG seed (0 = default)")

	configPath := flag.String("config", "", "JSON config file (flags override its fields)")
	outputDir := flag.String("output", "", "Write report files to this directory instead of stdout")
	outputJSON := flag.Bool("json", false, "Print the full result as JSON instead of Markdown")

	flag.Parse()

	logger := log.New(os.Stderr, "[scenario] ", log.LstdFlags)

	cfg := scenario.DefaultConfig()
	if *configPath != "" {
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			logger.Fatalf("Read config: %v", err)
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			logger.Fatalf("Parse config: %v", err)
		}
	}

	// Flags override the config file
	if *supply > 0 {
		cfg.TotalSupply = *supply
	}
	if *floor > 0 {
		cfg.FloorPrice = *floor
	}
	if *cap > 0 {
		cfg.CapMultiplier = *cap
	}
	if *bids > 0 {
		cfg.BidCount = *bids
	}
	if *shape != "" {
		cfg.BidShape = strings.ToLower(*shape)
	}
	if *days > 0 {
		cfg.TradingDays = *days
	}
	if *tge >= 0 {
		cfg.TGEPrice = *tge
	}
	if *reserve >= 0 {
		cfg.PayoutReserve = *reserve
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	logger.Printf("Running scenario: supply=%.0f floor=%.4f bids=%d shape=%s days=%d seed=%d",
		cfg.TotalSupply, cfg.FloorPrice, cfg.BidCount, cfg.BidShape, cfg.TradingDays, cfg.Seed)

	result, err := scenario.NewRunner().Run(cfg)
	if err != nil {
		logger.Fatalf("Scenario failed: %v", err)
	}

	logger.Printf("Run %s: clearing=%.4f filled=%.0f trades=%d",
		result.RunID[:8], result.Auction.ClearingPrice, result.Auction.TotalFilled, len(result.Trades))

	if *outputDir != "" {
		if err := writeReports(*outputDir, result, logger); err != nil {
			logger.Fatalf("Write reports: %v", err)
		}
		return
	}

	if *outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			logger.Fatalf("Encode result: %v", err)
		}
		return
	}

	fmt.Print(reporting.RenderMarkdown(result))
}

// writeReports emits the Markdown report, full JSON result, and CSV extracts.
func writeReports(dir string, result *domain.SimulationResult, logger *log.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	files := map[string][]byte{
		"result.json":     raw,
		"report.md":       []byte(reporting.RenderMarkdown(result)),
		"sensitivity.csv": []byte(reporting.RenderSensitivityCSV(result.Sensitivity)),
		"comparison.csv":  []byte(reporting.RenderComparisonCSV(result.Comparison.Metrics)),
		"trades.csv":      []byte(reporting.RenderTradesCSV(result.Trades)),
	}
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		logger.Printf("Wrote %s (%d bytes)", path, len(data))
	}
	return nil
}
