package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolate(t *testing.T) {
	points := []Point{{10, 20}, {20, 40}, {40, 50}}

	tests := []struct {
		name     string
		x        float64
		expected float64
	}{
		{"below first point is proportional", 5, 10},
		{"zero is zero", 0, 0},
		{"negative below first point", -10, -20},
		{"exact first point", 10, 20},
		{"inside first segment", 15, 30},
		{"exact interior point", 20, 40},
		{"inside second segment", 30, 45},
		{"exact last point", 40, 50},
		{"beyond last point extends final slope", 60, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Interpolate(tt.x, points), 1e-9)
		})
	}
}

func TestInterpolate_Proportional_NotFirstSegment(t *testing.T) {
	// First segment extrapolated to x=0 would give 10, the proportional rule gives 0.
	points := []Point{{10, 20}, {20, 30}}
	assert.InDelta(t, 10.0, Interpolate(5, points), 1e-9)
	assert.InDelta(t, 0.0, Interpolate(0, points), 1e-9)
}

func TestInterpolate_FirstPointAtOrigin(t *testing.T) {
	points := []Point{{0, 2}, {10, 12}}

	assert.InDelta(t, -6.0, Interpolate(-3, points), 1e-9)
	assert.InDelta(t, 0.0, Interpolate(0, points), 1e-9)
	assert.InDelta(t, 7.0, Interpolate(5, points), 1e-9)
}

func TestInterpolate_DegenerateTables(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0.0, Interpolate(42, nil))
		assert.Equal(t, 0.0, Interpolate(-1, []Point{}))
	})

	t.Run("single point", func(t *testing.T) {
		single := []Point{{100, 7}}
		for _, x := range []float64{-50, 0, 100, 1e6} {
			assert.Equal(t, 7.0, Interpolate(x, single))
		}
	})
}

func TestInterpolate_MonotonicWithinSegments(t *testing.T) {
	for _, nt := range Tables() {
		t.Run(nt.Name(), func(t *testing.T) {
			pts := nt.Points
			for i := 0; i < len(pts)-1; i++ {
				p1, p2 := pts[i], pts[i+1]
				lo, hi := min(p1.Y, p2.Y), max(p1.Y, p2.Y)
				for step := 0; step <= 10; step++ {
					x := p1.X + (p2.X-p1.X)*float64(step)/10
					y := Interpolate(x, pts)
					assert.GreaterOrEqual(t, y, lo-1e-9)
					assert.LessOrEqual(t, y, hi+1e-9)
				}
			}
		})
	}
}

func TestTable_Validate(t *testing.T) {
	assert.NoError(t, Table{}.Validate())
	assert.NoError(t, Table{{1, 1}}.Validate())
	assert.NoError(t, Table{{-1, 0}, {0, 0}, {3, 1}}.Validate())

	err := Table{{1, 1}, {1, 2}}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTable)

	err = Table{{5, 1}, {2, 2}}.Validate()
	assert.ErrorIs(t, err, ErrInvalidTable)
}

func TestValidateTables(t *testing.T) {
	require.NoError(t, ValidateTables())
}

func TestTables(t *testing.T) {
	tables := Tables()

	counts := map[string]int{}
	for _, nt := range tables {
		counts[nt.Action]++
		assert.NotEmpty(t, nt.Points, nt.Name())
		_, ok := Indicators{}.Get(nt.Field)
		assert.True(t, ok, "unknown field %s", nt.Field)
	}
	assert.Equal(t, map[string]int{"trees": 4, "greenspace": 4, "density": 3, "permeability": 4}, counts)

	t.Run("returned points are copies", func(t *testing.T) {
		tables[0].Points[0].Y = 999
		assert.NotEqual(t, 999.0, Tables()[0].Points[0].Y)
	})
}
