package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"token-launch-lab/internal/domain"
	"token-launch-lab/internal/scenario"
)

// sweepRow is one seed's headline numbers.
type sweepRow struct {
	Seed          int64
	ClearingPrice float64
	FillRatio     float64
	AmountRaised  float64
	FinalStable   float64
	FinalUpside   float64
	PayoutPer     float64
	ProRata       float64
	BatchGini     float64
}

func main() {
	seedStart := flag.Int64("seed-start", 1, "First seed in the sweep")
	seedCount := flag.Int("seed-count", 20, "Number of consecutive seeds to run")
	workers := flag.Int("workers", runtime.NumCPU(), "Parallel scenario runs")
	configPath := flag.String("config", "", "JSON config file for the base scenario")
	flag.Parse()

	logger := log.New(os.Stderr, "[sweep] ", log.LstdFlags)

	base := scenario.DefaultConfig()
	if *configPath != "" {
		raw, err := os.ReadFile(*configPath)
		if err != nil {
			logger.Fatalf("Read config: %v", err)
		}
		if err := json.Unmarshal(raw, &base); err != nil {
			logger.Fatalf("Parse config: %v", err)
		}
	}
	if *seedCount <= 0 {
		logger.Fatal("--seed-count must be positive")
	}

	logger.Printf("Sweeping %d seeds from %d with %d workers", *seedCount, *seedStart, *workers)

	seeds := make(chan int64)
	rows := make([]sweepRow, 0, *seedCount)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runner := scenario.NewRunner()
			for seed := range seeds {
				cfg := base
				cfg.Seed = seed
				result, err := runner.Run(cfg)
				if err != nil {
					logger.Printf("Seed %d failed: %v", seed, err)
					continue
				}
				mu.Lock()
				rows = append(rows, summarize(seed, result))
				mu.Unlock()
			}
		}()
	}

	for i := 0; i < *seedCount; i++ {
		seeds <- *seedStart + int64(i)
	}
	close(seeds)
	wg.Wait()

	sort.Slice(rows, func(i, j int) bool { return rows[i].Seed < rows[j].Seed })
	fmt.Print(renderCSV(rows))
	logger.Printf("Completed %d/%d runs", len(rows), *seedCount)
}

func summarize(seed int64, r *domain.SimulationResult) sweepRow {
	row := sweepRow{
		Seed:          seed,
		ClearingPrice: r.Auction.ClearingPrice,
		FillRatio:     r.Auction.FillRatio,
		AmountRaised:  r.Auction.AmountRaised,
		PayoutPer:     r.Settlement.PayoutPerClaim,
		ProRata:       r.Settlement.ProRataFactor,
	}
	if n := len(r.StablePool.Snapshots); n > 0 {
		row.FinalStable = r.StablePool.Snapshots[n-1].Price
		row.FinalUpside = r.UpsidePool.Snapshots[n-1].Price
	}
	for _, m := range r.Comparison.Metrics {
		if m.Mechanism == domain.MechanismBatchAuction {
			row.BatchGini = m.Gini
		}
	}
	return row
}

func renderCSV(rows []sweepRow) string {
	var sb strings.Builder
	sb.WriteString("seed,clearing_price,fill_ratio,amount_raised,final_stable_price,final_upside_price,payout_per_claim,pro_rata_factor,batch_gini\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%d,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f\n",
			r.Seed, r.ClearingPrice, r.FillRatio, r.AmountRaised,
			r.FinalStable, r.FinalUpside, r.PayoutPer, r.ProRata, r.BatchGini))
	}
	return sb.String()
}
