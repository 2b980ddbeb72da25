package domain

import (
	"context"
	"fmt"
	"log/slog"
)

// Baseline provenance reported on every simulation result.
const (
	SourceStatic   = "static"   // built-in or file catalog
	SourceRemote   = "remote"   // catalog overlaid with table-store fields
	SourceFallback = "fallback" // table store failed, catalog used
)

// BaselineStore fetches indicator overrides for a zone from a remote source.
// found is false when the store has no row for the key.
type BaselineStore interface {
	FetchBaseline(ctx context.Context, zone string, scenario ScenarioID, horizon Horizon) (fields map[string]float64, found bool, err error)
}

// ResolveBaseline returns the extended baseline for a request and where it
// came from. The catalog supplies the static record; a non-nil store may
// override any of its fields. Store failures degrade to the static record.
// The final record is validated; a non-finite field is a configuration error.
func ResolveBaseline(ctx context.Context, catalog *Catalog, store BaselineStore, zone string, scenario ScenarioID, horizon Horizon, logger *slog.Logger) (Indicators, string, error) {
	base, err := catalog.Baseline(zone, scenario, horizon)
	if err != nil {
		return Indicators{}, "", err
	}
	source := SourceStatic

	if store != nil {
		fields, found, err := store.FetchBaseline(ctx, zone, scenario, horizon)
		switch {
		case err != nil:
			logger.Warn("baseline lookup failed, using static catalog",
				"zone", zone,
				"scenario", scenario,
				"horizon", horizon.String(),
				"error", err,
			)
			source = SourceFallback
		case found:
			var unknown []string
			base, unknown = base.WithOverrides(fields)
			if len(unknown) > 0 {
				logger.Debug("ignoring unknown baseline fields",
					"zone", zone,
					"fields", unknown,
				)
			}
			source = SourceRemote
		}
	}

	if err := base.Validate(); err != nil {
		return Indicators{}, "", fmt.Errorf("baseline %s %s/%s (%s): %w", zone, scenario, horizon, source, err)
	}
	return base, source, nil
}
