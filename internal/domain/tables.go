package domain

import (
	"fmt"
	"strings"
)

// Calibration tables. x is the action magnitude, y the indicator delta:
// °C for temperature and icu, percent for every other field.

// Tree planting, x = trees planted.
var (
	treesTemperature = Table{{1000, -0.2}, {5000, -0.8}, {10000, -1.5}, {20000, -2.5}}
	treesICU         = Table{{1000, -0.1}, {5000, -0.4}, {10000, -0.7}, {20000, -1.2}}
	treesPM25        = Table{{1000, -2}, {5000, -8}, {10000, -15}, {20000, -25}}
	treesBiodiv      = Table{{1000, 5}, {5000, 22}, {10000, 45}, {20000, 80}}
)

// Green-space growth, x = % increase in green-space area.
var (
	greenSurfaceParHab = Table{{10, 11}, {25, 28}, {50, 60}}
	greenICU           = Table{{10, -0.4}, {25, -1.0}, {50, -1.8}}
	greenBiodiv        = Table{{10, 25}, {25, 65}, {50, 120}}
	greenLoisirs       = Table{{10, 18}, {25, 45}, {50, 85}}
)

// Density change, x = signed % change in built density. The (0, 0) point
// keeps a zero change neutral on both sides of the origin.
var (
	densityICU             = Table{{-10, -0.5}, {0, 0}, {5, 0.2}, {15, 0.6}}
	densityPM25            = Table{{-10, -6}, {0, 0}, {5, 3}, {15, 10}}
	densitySurfaceEVParHab = Table{{-10, 10}, {0, 0}, {5, -5}, {15, -14}}
)

// Soil permeability, x = % of surface made permeable.
var (
	permInfiltration = Table{{10, 15}, {30, 45}, {50, 75}, {70, 100}}
	permInondations  = Table{{10, -8}, {30, -25}, {50, -40}, {70, -52}}
	permTemperature  = Table{{10, -0.1}, {30, -0.3}, {50, -0.5}, {70, -0.7}}
	permNappes       = Table{{10, 5}, {30, 15}, {50, 25}, {70, 32}}
)

// NamedTable pairs a calibration table with the action and field it drives.
type NamedTable struct {
	Action string `json:"action"`
	Field  string `json:"field"`
	Unit   string `json:"unit"`
	Points Table  `json:"points"`
}

// Name returns "action.field", e.g. "trees.pm25".
func (n NamedTable) Name() string {
	return n.Action + "." + n.Field
}

// Tables lists every calibration table in composition order. The returned
// slice and its points are copies; mutating them does not affect the engine.
func Tables() []NamedTable {
	defs := []NamedTable{
		{"trees", FieldTemperature, "degC", treesTemperature},
		{"trees", FieldICU, "degC", treesICU},
		{"trees", FieldPM25, "pct", treesPM25},
		{"trees", FieldBiodiversite, "pct", treesBiodiv},
		{"greenspace", FieldSurfaceParHab, "pct", greenSurfaceParHab},
		{"greenspace", FieldICU, "degC", greenICU},
		{"greenspace", FieldBiodiversite, "pct", greenBiodiv},
		{"greenspace", FieldLoisirs, "pct", greenLoisirs},
		{"density", FieldICU, "degC", densityICU},
		{"density", FieldPM25, "pct", densityPM25},
		{"density", FieldSurfaceEVParHab, "pct", densitySurfaceEVParHab},
		{"permeability", FieldInfiltration, "pct", permInfiltration},
		{"permeability", FieldInondations, "pct", permInondations},
		{"permeability", FieldTemperature, "degC", permTemperature},
		{"permeability", FieldNappes, "pct", permNappes},
	}
	for i := range defs {
		defs[i].Points = append(Table(nil), defs[i].Points...)
	}
	return defs
}

// ValidateTables checks every calibration table and reports all failures.
func ValidateTables() error {
	var problems []string
	for _, t := range Tables() {
		if err := t.Points.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", t.Name(), err))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTable, strings.Join(problems, "; "))
	}
	return nil
}
