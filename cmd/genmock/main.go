// Command genmock reads the scenario request fixture and generates the
// matching simulation result fixture. It runs the real simulator over the
// built-in zone catalog so the output matches pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -requests data/mock/scenario_requests.json \
//	  -out data/mock/simulation_results.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/climatquartier/scenario-service/internal/catalog"
	"github.com/climatquartier/scenario-service/internal/domain"
	"github.com/climatquartier/scenario-service/internal/observability"
	"github.com/climatquartier/scenario-service/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	requestsPath := flag.String("requests", "data/mock/scenario_requests.json", "scenario request fixture")
	zonesPath := flag.String("zones", "", "YAML zone catalog (default: built-in)")
	out := flag.String("out", "", "output path for the simulation result fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	// Set a fixed clock for reproducible SimulatedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2025, time.June, 21, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	zones, err := catalog.Load(*zonesPath)
	if err != nil {
		return fmt.Errorf("load zone catalog: %w", err)
	}

	data, err := os.ReadFile(*requestsPath)
	if err != nil {
		return fmt.Errorf("read requests: %w", err)
	}
	var requests []json.RawMessage
	if err := json.Unmarshal(data, &requests); err != nil {
		return fmt.Errorf("decode requests: %w", err)
	}

	sim := pipeline.NewSimulator(zones, nil, slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewDetachedMetrics())

	results := make([]domain.SimulationResult, 0, len(requests))
	for i, payload := range requests {
		req, err := domain.ParseScenarioRequest(domain.RawMessage{Value: payload})
		if err != nil {
			return fmt.Errorf("request %d: %w", i, err)
		}
		res, err := sim.Simulate(context.Background(), req)
		if err != nil {
			return fmt.Errorf("request %d: %w", i, err)
		}
		results = append(results, res)
	}
	log.Printf("simulated %d requests", len(results))

	if err := writeJSON(*out, results); err != nil {
		return fmt.Errorf("writing result fixture: %w", err)
	}
	log.Printf("wrote result fixture: %s", *out)

	printStats(results)
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printStats(results []domain.SimulationResult) {
	byZone := map[string]int{}
	var clamped int
	for i := range results {
		byZone[results[i].Zone]++
	}
	zones := make([]string, 0, len(byZone))
	for z := range byZone {
		zones = append(zones, z)
	}
	sort.Strings(zones)

	fmt.Println("\nResults by zone:")
	for _, z := range zones {
		fmt.Printf("  %-10s %d\n", z, byZone[z])
	}

	fmt.Println("\nTemperature change:")
	for i := range results {
		r := &results[i]
		delta := r.Simulated.Temperature - r.Baseline.Temperature
		fmt.Printf("  %-26s %s/%-7s %+.2f °C\n", r.ID, r.Scenario, r.Horizon, delta)
		if r.Actions.NbArbres == domain.MaxArbres || r.Actions.PctPerm == domain.MaxPctPermeable {
			clamped++
		}
	}
	fmt.Printf("\nRequests at an action ceiling: %d\n", clamped)
}
