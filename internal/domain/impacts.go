package domain

// ProjectionImpacts summarises how a projection differs from the current state.
type ProjectionImpacts struct {
	HeatwaveDays     float64  `json:"heatwaveDays"`
	PrecipitationPct *float64 `json:"precipitationPct,omitempty"`
	VegetationPct    *float64 `json:"vegetationPct,omitempty"`
	ICU              float64  `json:"icu"`
}

// ProjectImpacts compares a projected baseline against the current one.
// Percent changes are omitted when the current value is zero.
func ProjectImpacts(current, projected Baseline) ProjectionImpacts {
	return ProjectionImpacts{
		HeatwaveDays:     projected.Heatwave - current.Heatwave,
		PrecipitationPct: percentChange(current.Precipitation, projected.Precipitation),
		VegetationPct:    percentChange(current.Vegetation, projected.Vegetation),
		ICU:              projected.ICU - current.ICU,
	}
}

// Change is the difference of one indicator between two records.
type Change struct {
	Field    string   `json:"field"`
	Base     float64  `json:"base"`
	Value    float64  `json:"value"`
	Absolute float64  `json:"absolute"`
	Percent  *float64 `json:"percent,omitempty"`
}

// CompareIndicators returns per-field changes from base to simulated, in
// record order.
func CompareIndicators(base, simulated Indicators) []Change {
	changes := make([]Change, 0, len(indicatorFields))
	for _, f := range indicatorFields {
		b, v := *f.ptr(&base), *f.ptr(&simulated)
		changes = append(changes, Change{
			Field:    f.name,
			Base:     b,
			Value:    v,
			Absolute: v - b,
			Percent:  percentChange(b, v),
		})
	}
	return changes
}

func percentChange(base, value float64) *float64 {
	if base == 0 {
		return nil
	}
	p := (value - base) / base * 100
	return &p
}
