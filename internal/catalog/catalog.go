// Package catalog loads zone climate data from YAML, either the built-in
// catalog shipped with the binary or an operator-supplied file.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/climatquartier/scenario-service/internal/domain"
)

//go:embed zones.yaml
var builtin []byte

// Default returns the built-in catalog of Cergy, Annecy and Saint-Malo.
func Default() (*domain.Catalog, error) {
	c, err := Decode(bytes.NewReader(builtin))
	if err != nil {
		return nil, fmt.Errorf("built-in catalog: %w", err)
	}
	return c, nil
}

// Load returns the catalog at path, or the built-in one when path is empty.
func Load(path string) (*domain.Catalog, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// LoadFile reads and validates a YAML catalog file.
func LoadFile(path string) (*domain.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Decode parses a YAML catalog. Unknown keys are rejected; a missing
// baseline field is reported with its zone, scenario and horizon.
func Decode(r io.Reader) (*domain.Catalog, error) {
	var doc fileDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty catalog")
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(doc.Zones) == 0 {
		return nil, errors.New("catalog has no zones")
	}

	ids := make([]string, 0, len(doc.Zones))
	for id := range doc.Zones {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	zones := make([]domain.Zone, 0, len(ids))
	for _, id := range ids {
		z, err := doc.Zones[id].toDomain(id)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	return domain.NewCatalog(zones)
}

type fileDoc struct {
	Zones map[string]fileZone `yaml:"zones"`
}

type fileZone struct {
	Name        string                           `yaml:"name"`
	Region      string                           `yaml:"region"`
	Center      [2]float64                       `yaml:"center"`
	Bounds      [2][2]float64                    `yaml:"bounds"`
	Color       string                           `yaml:"color"`
	Description string                           `yaml:"description"`
	Population  int                              `yaml:"population"`
	AreaKm2     float64                          `yaml:"area_km2"`
	PM25        *float64                         `yaml:"pm25"`
	Current     *fileBaseline                    `yaml:"current"`
	Simulations map[string]map[int]*fileBaseline `yaml:"simulations"`
}

// fileBaseline uses pointers so an absent key is distinguishable from zero.
// Keys use the short names of the front-end data files (temp, not temperature).
type fileBaseline struct {
	Temp          *float64 `yaml:"temp"`
	Heatwave      *float64 `yaml:"heatwave"`
	Precipitation *float64 `yaml:"precipitation"`
	ICU           *float64 `yaml:"icu"`
	Vegetation    *float64 `yaml:"vegetation"`
}

func (z fileZone) toDomain(id string) (domain.Zone, error) {
	if z.Current == nil {
		return domain.Zone{}, fmt.Errorf("zone %s: missing current data", id)
	}
	if len(z.Simulations) == 0 {
		return domain.Zone{}, fmt.Errorf("zone %s: missing simulations", id)
	}
	if z.PM25 == nil {
		return domain.Zone{}, fmt.Errorf("zone %s: missing field pm25", id)
	}

	current, err := z.Current.toDomain()
	if err != nil {
		return domain.Zone{}, fmt.Errorf("zone %s: current: %w", id, err)
	}

	projections := make(map[domain.ScenarioID]map[domain.Horizon]domain.Baseline, len(z.Simulations))
	for scenario, horizons := range z.Simulations {
		sid := domain.ScenarioID(strings.ToLower(scenario))
		if !domain.KnownScenario(sid) {
			return domain.Zone{}, fmt.Errorf("zone %s: unknown scenario %q", id, scenario)
		}
		projections[sid] = make(map[domain.Horizon]domain.Baseline, len(horizons))
		for year, rec := range horizons {
			if rec == nil {
				return domain.Zone{}, fmt.Errorf("zone %s: %s/%d: empty record", id, sid, year)
			}
			b, err := rec.toDomain()
			if err != nil {
				return domain.Zone{}, fmt.Errorf("zone %s: %s/%d: %w", id, sid, year, err)
			}
			projections[sid][domain.Horizon(year)] = b
		}
	}

	return domain.Zone{
		ID:          id,
		Name:        z.Name,
		Region:      z.Region,
		Center:      domain.LatLng{Lat: z.Center[0], Lng: z.Center[1]},
		Bounds:      [2]domain.LatLng{{Lat: z.Bounds[0][0], Lng: z.Bounds[0][1]}, {Lat: z.Bounds[1][0], Lng: z.Bounds[1][1]}},
		Color:       z.Color,
		Description: z.Description,
		Population:  z.Population,
		AreaKm2:     z.AreaKm2,
		PM25:        *z.PM25,
		Current:     current,
		Projections: projections,
	}, nil
}

func (b fileBaseline) toDomain() (domain.Baseline, error) {
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"temp", b.Temp},
		{"heatwave", b.Heatwave},
		{"precipitation", b.Precipitation},
		{"icu", b.ICU},
		{"vegetation", b.Vegetation},
	} {
		if f.v == nil {
			return domain.Baseline{}, fmt.Errorf("missing field %s", f.name)
		}
	}
	return domain.Baseline{
		Temperature:   *b.Temp,
		Heatwave:      *b.Heatwave,
		Precipitation: *b.Precipitation,
		ICU:           *b.ICU,
		Vegetation:    *b.Vegetation,
	}, nil
}
