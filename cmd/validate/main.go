// Command validate performs data-authoring checks for the scenario service:
// interpolation tables, the zone catalog, the reference scenarios the tables
// are calibrated against, and the mock fixtures under data/mock.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -zones internal/catalog/zones.yaml \
//	  -requests data/mock/scenario_requests.json \
//	  -results data/mock/simulation_results.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/climatquartier/scenario-service/internal/catalog"
	"github.com/climatquartier/scenario-service/internal/domain"
	"github.com/climatquartier/scenario-service/internal/observability"
	"github.com/climatquartier/scenario-service/internal/pipeline"
)

// fixtureTime matches genmock so result IDs and timestamps are reproducible.
var fixtureTime = time.Date(2025, time.June, 21, 6, 0, 0, 0, time.UTC)

const tolerance = 1e-9

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// reference is a calibration point: actions applied to the reference record
// must produce exactly these field values.
type reference struct {
	name    string
	actions domain.Actions
	want    map[string]float64
}

var references = []reference{
	{
		name:    "10000 trees",
		actions: domain.Actions{NbArbres: 10000},
		want: map[string]float64{
			domain.FieldTemperature:  12.3,
			domain.FieldICU:          0.8,
			domain.FieldPM25:         8.5,
			domain.FieldBiodiversite: 1.45,
		},
	},
	{
		name:    "+25% green space",
		actions: domain.Actions{DeltaEVPct: 25},
		want: map[string]float64{
			domain.FieldVegetation:    37.5,
			domain.FieldSurfaceParHab: 1.28,
			domain.FieldICU:           0.5,
			domain.FieldBiodiversite:  1.65,
			domain.FieldLoisirs:       1.45,
		},
	},
	{
		name:    "10000 trees then +15% density",
		actions: domain.Actions{NbArbres: 10000, DeltaDensitePct: 15},
		want: map[string]float64{
			domain.FieldPM25: 9.35,
		},
	},
	{
		name:    "no actions",
		actions: domain.Actions{},
		want: map[string]float64{
			domain.FieldTemperature: 13.8,
			domain.FieldICU:         1.5,
			domain.FieldPM25:        10,
			domain.FieldVegetation:  30,
		},
	},
}

// referenceRecord is the Cergy present-day state with a PM2.5 of 10.
func referenceRecord() domain.Indicators {
	return domain.Extend(domain.Baseline{
		Temperature:   13.8,
		Heatwave:      8,
		Precipitation: 700,
		ICU:           1.5,
		Vegetation:    30,
	}, 10)
}

func main() {
	zonesPath := flag.String("zones", "", "YAML zone catalog (default: built-in)")
	requestsPath := flag.String("requests", "data/mock/scenario_requests.json", "scenario request fixture")
	resultsPath := flag.String("results", "", "simulation result fixture produced by genmock (optional)")
	flag.Parse()

	if code := run(*zonesPath, *requestsPath, *resultsPath); code != 0 {
		os.Exit(code)
	}
}

func run(zonesPath, requestsPath, resultsPath string) int {
	domain.SetClock(clockwork.NewFakeClockAt(fixtureTime))
	defer domain.SetClock(nil)

	fmt.Println("=== Scenario Data Validation ===")
	fmt.Println()

	zones, err := catalog.Load(zonesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load zone catalog: %v\n", err)
		return 1
	}

	requests, err := loadJSON[json.RawMessage](requestsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load requests: %v\n", err)
		return 1
	}

	var results []domain.SimulationResult
	if resultsPath != "" {
		results, err = loadJSON[domain.SimulationResult](resultsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load results: %v\n", err)
			return 1
		}
	}

	sim := pipeline.NewSimulator(zones, nil, slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewDetachedMetrics())

	phases := []*phase{
		validateTables(),
		validateCatalog(zones),
		validateReferences(),
		validateFixtures(sim, requests, results),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Data: %d tables, %d zones, %d references, %d requests, %d results\n",
		len(domain.Tables()), len(zones.Zones()), len(references), len(requests), len(results))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// ── Phase 1: tables ──

func validateTables() *phase {
	p := &phase{name: "Interpolation tables"}
	if err := domain.ValidateTables(); err != nil {
		p.errorf("%v", err)
	}
	for _, t := range domain.Tables() {
		if len(t.Points) == 0 {
			p.errorf("%s: empty table", t.Name())
			continue
		}
		if y := t.Points.At(0); math.Abs(y) > tolerance {
			p.errorf("%s: zero action yields %g, want 0", t.Name(), y)
		}
		if t.Unit != "degC" && t.Unit != "pct" {
			p.errorf("%s: unknown unit %q", t.Name(), t.Unit)
		}
	}
	return p
}

// ── Phase 2: catalog ──

func validateCatalog(zones *domain.Catalog) *phase {
	p := &phase{name: "Zone catalog"}
	for _, z := range zones.Zones() {
		if z.Name == "" {
			p.errorf("zone %s: missing name", z.ID)
		}
		if z.PM25 <= 0 {
			p.errorf("zone %s: pm25 %g must be positive", z.ID, z.PM25)
		}
		checkBaseline(p, z.ID, "current", z.Current)
		for _, s := range domain.Scenarios() {
			for _, h := range domain.Horizons {
				b, err := z.Baseline(s.ID, h)
				if err != nil {
					p.errorf("%v", err)
					continue
				}
				checkBaseline(p, z.ID, fmt.Sprintf("%s/%s", s.ID, h), b)
			}
		}
	}
	return p
}

func checkBaseline(p *phase, zone, label string, b domain.Baseline) {
	if b.Vegetation < 0 || b.Vegetation > 100 {
		p.errorf("zone %s: %s: vegetation %g outside 0..100", zone, label, b.Vegetation)
	}
	if b.Heatwave < 0 {
		p.errorf("zone %s: %s: negative heatwave days %g", zone, label, b.Heatwave)
	}
	if b.Precipitation <= 0 {
		p.errorf("zone %s: %s: precipitation %g must be positive", zone, label, b.Precipitation)
	}
}

// ── Phase 3: reference scenarios ──

func validateReferences() *phase {
	p := &phase{name: "Reference scenarios"}
	for _, ref := range references {
		got := domain.ComposeScenario(referenceRecord(), ref.actions)
		for field, want := range ref.want {
			v, ok := got.Get(field)
			if !ok {
				p.errorf("%s: unknown field %s", ref.name, field)
				continue
			}
			if math.Abs(v-want) > tolerance {
				p.errorf("%s: %s = %.6f, want %g", ref.name, field, v, want)
			}
		}
	}
	return p
}

// ── Phase 4: fixtures ──

func validateFixtures(sim *pipeline.ScenarioSimulator, requests []json.RawMessage, results []domain.SimulationResult) *phase {
	p := &phase{name: "Mock fixtures"}
	if results != nil && len(results) != len(requests) {
		p.errorf("result count %d, want %d (one per request)", len(results), len(requests))
	}

	for i, payload := range requests {
		out, err := sim.Transform(context.Background(), domain.RawMessage{Value: payload})
		if err != nil {
			p.errorf("request %d: %v", i, err)
			continue
		}
		var res domain.SimulationResult
		if err := json.Unmarshal(out.Value, &res); err != nil {
			p.errorf("request %d: decode result: %v", i, err)
			continue
		}
		if err := res.Simulated.Validate(); err != nil {
			p.errorf("request %d: %v", i, err)
		}
		if i < len(results) {
			compareResults(p, i, res, results[i])
		}
	}
	return p
}

func compareResults(p *phase, i int, got, want domain.SimulationResult) {
	if got.ID != want.ID {
		p.errorf("result %d: id %s, fixture has %s", i, got.ID, want.ID)
	}
	if got.Actions != want.Actions {
		p.errorf("result %d: actions %+v, fixture has %+v", i, got.Actions, want.Actions)
	}
	for _, field := range domain.FieldNames() {
		g, _ := got.Simulated.Get(field)
		w, _ := want.Simulated.Get(field)
		if math.Abs(g-w) > tolerance {
			p.errorf("result %d: %s = %g, fixture has %g", i, field, g, w)
		}
	}
}
