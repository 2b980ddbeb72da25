package domain

import (
	"fmt"
	"sort"
	"strconv"
)

// ScenarioID names a climate emissions pathway.
type ScenarioID string

const (
	ScenarioSSP2 ScenarioID = "ssp2"
	ScenarioSSP5 ScenarioID = "ssp5"
)

// DefaultScenario is used when a request does not name one.
const DefaultScenario = ScenarioSSP2

// Horizon is a projection year. HorizonCurrent selects the present-day state.
type Horizon int

const (
	HorizonCurrent Horizon = 0
	Horizon2030    Horizon = 2030
	Horizon2050    Horizon = 2050
	Horizon2100    Horizon = 2100
)

// Horizons lists the projection years every zone must provide.
var Horizons = []Horizon{Horizon2030, Horizon2050, Horizon2100}

func (h Horizon) String() string {
	if h == HorizonCurrent {
		return "current"
	}
	return strconv.Itoa(int(h))
}

// Scenario describes a climate pathway for display.
type Scenario struct {
	ID          ScenarioID `json:"id"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
}

// Scenarios returns the supported climate pathways.
func Scenarios() []Scenario {
	return []Scenario{
		{
			ID:          ScenarioSSP2,
			Label:       "SSP2-4.5 (modéré)",
			Description: "Emissions peak around 2050 then decline progressively.",
		},
		{
			ID:          ScenarioSSP5,
			Label:       "SSP5-8.5 (extrême)",
			Description: "Sustained fossil-fuel dependence and the steepest warming.",
		},
	}
}

// KnownScenario reports whether id is a supported pathway.
func KnownScenario(id ScenarioID) bool {
	for _, s := range Scenarios() {
		if s.ID == id {
			return true
		}
	}
	return false
}

// LatLng is a geographic coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Zone is one modelled municipality and its climate projections.
type Zone struct {
	ID          string                              `json:"id"`
	Name        string                              `json:"name"`
	Region      string                              `json:"region"`
	Center      LatLng                              `json:"center"`
	Bounds      [2]LatLng                           `json:"bounds"`
	Color       string                              `json:"color"`
	Description string                              `json:"description"`
	Population  int                                 `json:"population"`
	AreaKm2     float64                             `json:"areaKm2"`
	PM25        float64                             `json:"pm25"`
	Current     Baseline                            `json:"current"`
	Projections map[ScenarioID]map[Horizon]Baseline `json:"projections"`
}

// Baseline returns the zone's state for a scenario and horizon.
// HorizonCurrent ignores the scenario.
func (z Zone) Baseline(scenario ScenarioID, horizon Horizon) (Baseline, error) {
	if horizon == HorizonCurrent {
		return z.Current, nil
	}
	b, ok := z.Projections[scenario][horizon]
	if !ok {
		return Baseline{}, fmt.Errorf("%w: zone %s has no %s/%s projection", ErrUnknownProjection, z.ID, scenario, horizon)
	}
	return b, nil
}

// Validate checks that the zone has an ID, a finite PM2.5 and a complete
// current state and projection grid.
func (z Zone) Validate() error {
	if z.ID == "" {
		return fmt.Errorf("%w: zone without id", ErrInvalidIndicator)
	}
	if !finite(z.PM25) {
		return fmt.Errorf("zone %s: %w: pm25 is %v", z.ID, ErrInvalidIndicator, z.PM25)
	}
	if err := z.Current.Validate(); err != nil {
		return fmt.Errorf("zone %s: current: %w", z.ID, err)
	}
	for _, s := range Scenarios() {
		for _, h := range Horizons {
			b, ok := z.Projections[s.ID][h]
			if !ok {
				return fmt.Errorf("zone %s: %s/%s: %w: projection missing", z.ID, s.ID, h, ErrInvalidIndicator)
			}
			if err := b.Validate(); err != nil {
				return fmt.Errorf("zone %s: %s/%s: %w", z.ID, s.ID, h, err)
			}
		}
	}
	return nil
}

// Catalog is a validated, read-only set of zones.
type Catalog struct {
	zones map[string]Zone
	order []string
}

// NewCatalog validates every zone and indexes them by ID.
func NewCatalog(zones []Zone) (*Catalog, error) {
	c := &Catalog{zones: make(map[string]Zone, len(zones))}
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.zones[z.ID]; dup {
			return nil, fmt.Errorf("zone %s: duplicate id", z.ID)
		}
		c.zones[z.ID] = z
		c.order = append(c.order, z.ID)
	}
	sort.Strings(c.order)
	return c, nil
}

// Zone looks up a zone by ID.
func (c *Catalog) Zone(id string) (Zone, error) {
	z, ok := c.zones[id]
	if !ok {
		return Zone{}, fmt.Errorf("%w: %q", ErrUnknownZone, id)
	}
	return z, nil
}

// Zones returns every zone sorted by ID.
func (c *Catalog) Zones() []Zone {
	out := make([]Zone, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.zones[id])
	}
	return out
}

// Baseline returns the extended static record for a zone, scenario and horizon.
func (c *Catalog) Baseline(zone string, scenario ScenarioID, horizon Horizon) (Indicators, error) {
	z, err := c.Zone(zone)
	if err != nil {
		return Indicators{}, err
	}
	b, err := z.Baseline(scenario, horizon)
	if err != nil {
		return Indicators{}, err
	}
	return Extend(b, z.PM25), nil
}
