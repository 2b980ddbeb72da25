package domain

import (
	"fmt"
	"math"
	"sort"
)

// Indicator field names, as they appear in JSON and in the remote table store.
const (
	FieldTemperature     = "temperature"
	FieldHeatwave        = "heatwave"
	FieldPrecipitation   = "precipitation"
	FieldICU             = "icu"
	FieldVegetation      = "vegetation"
	FieldPM25            = "pm25"
	FieldBiodiversite    = "biodiversite"
	FieldSurfaceParHab   = "surfaceParHab"
	FieldSurfaceEVParHab = "surfaceEVParHab"
	FieldLoisirs         = "loisirs"
	FieldInfiltration    = "infiltration"
	FieldInondations     = "inondations"
	FieldNappes          = "nappes"
)

// fieldAliases maps short names used by older data sources to field names.
var fieldAliases = map[string]string{
	"temp": FieldTemperature,
}

// Baseline is the five-field climate state stored per zone, scenario and horizon.
type Baseline struct {
	Temperature   float64 `json:"temperature"`
	Heatwave      float64 `json:"heatwave"`
	Precipitation float64 `json:"precipitation"`
	ICU           float64 `json:"icu"`
	Vegetation    float64 `json:"vegetation"`
}

// Validate reports the first non-finite field.
func (b Baseline) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{FieldTemperature, b.Temperature},
		{FieldHeatwave, b.Heatwave},
		{FieldPrecipitation, b.Precipitation},
		{FieldICU, b.ICU},
		{FieldVegetation, b.Vegetation},
	} {
		if !finite(f.v) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidIndicator, f.name, f.v)
		}
	}
	return nil
}

// Indicators is the full record the transforms read and write.
type Indicators struct {
	Temperature     float64 `json:"temperature"`
	Heatwave        float64 `json:"heatwave"`
	Precipitation   float64 `json:"precipitation"`
	ICU             float64 `json:"icu"`
	Vegetation      float64 `json:"vegetation"`
	PM25            float64 `json:"pm25"`
	Biodiversite    float64 `json:"biodiversite"`
	SurfaceParHab   float64 `json:"surfaceParHab"`
	SurfaceEVParHab float64 `json:"surfaceEVParHab"`
	Loisirs         float64 `json:"loisirs"`
	Infiltration    float64 `json:"infiltration"`
	Inondations     float64 `json:"inondations"`
	Nappes          float64 `json:"nappes"`
}

// Extend builds a full record from a baseline, the zone's static PM2.5 and
// 1.0 for every dimensionless index.
func Extend(b Baseline, pm25 float64) Indicators {
	return Indicators{
		Temperature:     b.Temperature,
		Heatwave:        b.Heatwave,
		Precipitation:   b.Precipitation,
		ICU:             b.ICU,
		Vegetation:      b.Vegetation,
		PM25:            pm25,
		Biodiversite:    1,
		SurfaceParHab:   1,
		SurfaceEVParHab: 1,
		Loisirs:         1,
		Infiltration:    1,
		Inondations:     1,
		Nappes:          1,
	}
}

// indicatorFields lists accessors in a stable order. Every field of
// Indicators appears exactly once.
var indicatorFields = []struct {
	name string
	ptr  func(*Indicators) *float64
}{
	{FieldTemperature, func(r *Indicators) *float64 { return &r.Temperature }},
	{FieldHeatwave, func(r *Indicators) *float64 { return &r.Heatwave }},
	{FieldPrecipitation, func(r *Indicators) *float64 { return &r.Precipitation }},
	{FieldICU, func(r *Indicators) *float64 { return &r.ICU }},
	{FieldVegetation, func(r *Indicators) *float64 { return &r.Vegetation }},
	{FieldPM25, func(r *Indicators) *float64 { return &r.PM25 }},
	{FieldBiodiversite, func(r *Indicators) *float64 { return &r.Biodiversite }},
	{FieldSurfaceParHab, func(r *Indicators) *float64 { return &r.SurfaceParHab }},
	{FieldSurfaceEVParHab, func(r *Indicators) *float64 { return &r.SurfaceEVParHab }},
	{FieldLoisirs, func(r *Indicators) *float64 { return &r.Loisirs }},
	{FieldInfiltration, func(r *Indicators) *float64 { return &r.Infiltration }},
	{FieldInondations, func(r *Indicators) *float64 { return &r.Inondations }},
	{FieldNappes, func(r *Indicators) *float64 { return &r.Nappes }},
}

// FieldNames returns every indicator field name in record order.
func FieldNames() []string {
	names := make([]string, len(indicatorFields))
	for i, f := range indicatorFields {
		names[i] = f.name
	}
	return names
}

// Get returns the named field. Unknown names report false.
func (r Indicators) Get(name string) (float64, bool) {
	for _, f := range indicatorFields {
		if f.name == canonicalField(name) {
			return *f.ptr(&r), true
		}
	}
	return 0, false
}

// Validate reports the first missing or non-finite field.
func (r Indicators) Validate() error {
	for _, f := range indicatorFields {
		if v := *f.ptr(&r); !finite(v) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidIndicator, f.name, v)
		}
	}
	return nil
}

// WithOverrides returns a copy of r with the given fields replaced. Short
// aliases such as "temp" are accepted. Unknown keys are returned sorted so
// callers can log them; they are not an error.
func (r Indicators) WithOverrides(overrides map[string]float64) (Indicators, []string) {
	var unknown []string
	for key, v := range overrides {
		name := canonicalField(key)
		if name != key {
			// The full name wins over an alias.
			if _, ok := overrides[name]; ok {
				continue
			}
		}
		matched := false
		for _, f := range indicatorFields {
			if f.name == name {
				*f.ptr(&r) = v
				matched = true
				break
			}
		}
		if !matched {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return r, unknown
}

func canonicalField(name string) string {
	if alias, ok := fieldAliases[name]; ok {
		return alias
	}
	return name
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
