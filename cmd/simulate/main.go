// Command simulate runs one scenario against the zone catalog and prints the
// result as JSON, or prints the interpolation tables.
//
// Usage:
//
//	go run ./cmd/simulate run cergy --horizon 2050 --trees 10000 --green 20 --permeable 40
//	go run ./cmd/simulate tables
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/alecthomas/kong"

	"github.com/climatquartier/scenario-service/internal/catalog"
	"github.com/climatquartier/scenario-service/internal/domain"
	"github.com/climatquartier/scenario-service/internal/observability"
	"github.com/climatquartier/scenario-service/internal/pipeline"
)

// Globals are flags shared by every subcommand.
type Globals struct {
	Zones  string `help:"YAML zone catalog replacing the built-in one." env:"ZONES_FILE"`
	Indent bool   `help:"Indent JSON output." default:"true" negatable:""`
}

type cli struct {
	Globals

	Run    runCmd    `cmd:"" help:"Simulate one zone, scenario and horizon."`
	Tables tablesCmd `cmd:"" help:"Print the interpolation tables."`
}

type runCmd struct {
	Zone      string  `arg:"" help:"Zone ID (cergy, annecy, saintmalo)."`
	Scenario  string  `help:"Climate scenario." enum:"ssp2,ssp5" default:"ssp2"`
	Horizon   int     `help:"Projection year, or 0 for the current state." default:"0"`
	Trees     float64 `help:"Trees planted (0 to 20000)." default:"0"`
	Green     float64 `help:"Green-space change in percent (0 to 50)." default:"0"`
	Density   float64 `help:"Built density change in percent (-10 to 15)." default:"0"`
	Permeable float64 `help:"Share of permeable ground in percent (0 to 70)." default:"0"`
}

func (c *runCmd) Run(g *Globals) error {
	zones, err := catalog.Load(g.Zones)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	sim := pipeline.NewSimulator(zones, nil, logger, observability.NewDetachedMetrics())

	res, err := sim.Simulate(context.Background(), domain.ScenarioRequest{
		Zone:     c.Zone,
		Scenario: domain.ScenarioID(c.Scenario),
		Horizon:  domain.Horizon(c.Horizon),
		Actions: domain.Actions{
			NbArbres:        c.Trees,
			DeltaEVPct:      c.Green,
			DeltaDensitePct: c.Density,
			PctPerm:         c.Permeable,
		},
	})
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, res, g.Indent)
}

type tablesCmd struct {
	JSON bool `help:"Print as JSON instead of a table."`
}

func (c *tablesCmd) Run(g *Globals) error {
	tables := domain.Tables()
	if c.JSON {
		return writeJSON(os.Stdout, tables, g.Indent)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tUNIT\tPOINTS")
	for _, t := range tables {
		fmt.Fprintf(w, "%s\t%s\t", t.Name(), t.Unit)
		for i, p := range t.Points {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "(%g, %g)", p.X, p.Y)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func writeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("simulate"),
		kong.Description("Compose urban adaptation actions over a zone's climate baseline."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(&c.Globals))
}
