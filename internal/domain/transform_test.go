package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

const floatTolerance = 1e-9

// referenceBase is the Cergy present-day record with a PM2.5 of 10.
func referenceBase() Indicators {
	return Indicators{
		Temperature:     13.8,
		Heatwave:        8,
		Precipitation:   700,
		ICU:             1.5,
		Vegetation:      30,
		PM25:            10,
		Biodiversite:    1,
		SurfaceParHab:   1,
		SurfaceEVParHab: 1,
		Loisirs:         1,
		Infiltration:    1,
		Inondations:     1,
		Nappes:          1,
	}
}

var approx = cmpopts.EquateApprox(0, floatTolerance)

func TestComposeScenario_Identity(t *testing.T) {
	base := referenceBase()
	got := ComposeScenario(base, Actions{})

	if diff := cmp.Diff(base, got, approx); diff != "" {
		t.Errorf("zero actions changed the record (-want +got):\n%s", diff)
	}
}

func TestComposeScenario_TreesOnly(t *testing.T) {
	base := referenceBase()
	got := ComposeScenario(base, Actions{NbArbres: 10000})

	want := base
	want.Temperature = 12.3
	want.ICU = 0.8
	want.PM25 = 8.5
	want.Biodiversite = 1.45

	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("unexpected record (-want +got):\n%s", diff)
	}
}

func TestComposeScenario_GreenSpaceOnly(t *testing.T) {
	base := referenceBase()
	got := ComposeScenario(base, Actions{DeltaEVPct: 25})

	want := base
	want.Vegetation = 37.5
	want.SurfaceParHab = 1.28
	want.ICU = 0.5
	want.Biodiversite = 1.65
	want.Loisirs = 1.45

	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("unexpected record (-want +got):\n%s", diff)
	}
}

func TestComposeScenario_CompoundsSequentially(t *testing.T) {
	got := ComposeScenario(referenceBase(), Actions{NbArbres: 10000, DeltaDensitePct: 15})

	// Density's +10% applies to the 8.5 left by the trees, not the original 10.
	assert.InDelta(t, 9.35, got.PM25, floatTolerance)
	assert.InDelta(t, 1.5-0.7+0.6, got.ICU, floatTolerance)
	assert.InDelta(t, 0.86, got.SurfaceEVParHab, floatTolerance)
}

func TestComposeScenario_AllActions(t *testing.T) {
	base := referenceBase()
	got := ComposeScenario(base, Actions{NbArbres: 5000, DeltaEVPct: 10, DeltaDensitePct: -10, PctPerm: 30})

	assert.InDelta(t, 13.8-0.8-0.3, got.Temperature, floatTolerance)
	assert.InDelta(t, 1.5-0.4-0.4-0.5, got.ICU, floatTolerance)
	assert.InDelta(t, 10*0.92*0.94, got.PM25, floatTolerance)
	assert.InDelta(t, 1.22*1.25, got.Biodiversite, floatTolerance)
	assert.InDelta(t, 33.0, got.Vegetation, floatTolerance)
	assert.InDelta(t, 1.10, got.SurfaceEVParHab, floatTolerance)
	assert.InDelta(t, 1.45, got.Infiltration, floatTolerance)
	assert.InDelta(t, 0.75, got.Inondations, floatTolerance)
	assert.InDelta(t, 1.15, got.Nappes, floatTolerance)
	assert.Equal(t, base.Heatwave, got.Heatwave)
	assert.Equal(t, base.Precipitation, got.Precipitation)
}

func TestComposeScenario_DoesNotMutateInputs(t *testing.T) {
	base := referenceBase()
	actions := Actions{NbArbres: 20000, DeltaEVPct: 50, DeltaDensitePct: 15, PctPerm: 70}

	_ = ComposeScenario(base, actions)

	assert.Equal(t, referenceBase(), base)
	assert.Equal(t, Actions{NbArbres: 20000, DeltaEVPct: 50, DeltaDensitePct: 15, PctPerm: 70}, actions)
}

func TestComposeScenario_Deterministic(t *testing.T) {
	actions := Actions{NbArbres: 7300, DeltaEVPct: 18, DeltaDensitePct: 4, PctPerm: 41}
	first := ComposeScenario(referenceBase(), actions)
	for range 10 {
		assert.Equal(t, first, ComposeScenario(referenceBase(), actions))
	}
}

func TestApplyTransforms_TouchOnlyTheirFields(t *testing.T) {
	base := referenceBase()

	tests := []struct {
		name    string
		apply   func(Indicators) Indicators
		touched []string
	}{
		{
			name:    "vegetalisation",
			apply:   func(r Indicators) Indicators { return ApplyVegetalisation(r, 3000) },
			touched: []string{FieldTemperature, FieldICU, FieldPM25, FieldBiodiversite},
		},
		{
			name:    "espaces verts",
			apply:   func(r Indicators) Indicators { return ApplyEspacesVerts(r, 20) },
			touched: []string{FieldSurfaceParHab, FieldICU, FieldBiodiversite, FieldLoisirs, FieldVegetation},
		},
		{
			name:    "densite",
			apply:   func(r Indicators) Indicators { return ApplyDensite(r, 8) },
			touched: []string{FieldICU, FieldPM25, FieldSurfaceEVParHab},
		},
		{
			name:    "sols permeables",
			apply:   func(r Indicators) Indicators { return ApplySolsPermeables(r, 25) },
			touched: []string{FieldInfiltration, FieldInondations, FieldTemperature, FieldNappes},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.apply(base)
			touched := map[string]bool{}
			for _, f := range tt.touched {
				touched[f] = true
			}
			for _, name := range FieldNames() {
				before, _ := base.Get(name)
				after, _ := got.Get(name)
				if touched[name] {
					assert.NotEqual(t, before, after, "%s should change", name)
				} else {
					assert.Equal(t, before, after, "%s should not change", name)
				}
			}
		})
	}
}

func TestApplyDensite_NegativeChange(t *testing.T) {
	got := ApplyDensite(referenceBase(), -5)

	assert.InDelta(t, 1.25, got.ICU, floatTolerance)
	assert.InDelta(t, 10*0.97, got.PM25, floatTolerance)
	assert.InDelta(t, 1.05, got.SurfaceEVParHab, floatTolerance)
}

func TestApplyVegetalisation_BeyondLastPoint(t *testing.T) {
	// 30000 trees extends the 10000..20000 slope: -2.5 + (-1.0) = -3.5.
	got := ApplyVegetalisation(referenceBase(), 30000)
	assert.InDelta(t, 13.8-3.5, got.Temperature, floatTolerance)
}

func TestActions_Clamp(t *testing.T) {
	tests := []struct {
		name     string
		in       Actions
		expected Actions
	}{
		{"in range unchanged", Actions{100, 10, -5, 20}, Actions{100, 10, -5, 20}},
		{"upper bounds", Actions{50000, 80, 40, 100}, Actions{20000, 50, 15, 70}},
		{"lower bounds", Actions{-1, -5, -30, -2}, Actions{0, 0, -10, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.in.Clamp())
		})
	}
}

func TestActions_IsZero(t *testing.T) {
	assert.True(t, Actions{}.IsZero())
	assert.False(t, Actions{PctPerm: 1}.IsZero())
}
