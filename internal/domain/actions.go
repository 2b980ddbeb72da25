package domain

// Slider ranges exposed by the interface. The engine itself accepts any value.
const (
	MaxArbres       = 20000
	MaxDeltaEVPct   = 50
	MinDensitePct   = -10
	MaxDensitePct   = 15
	MaxPctPermeable = 70
)

// Actions is the land-use intervention vector applied to a baseline.
type Actions struct {
	NbArbres        float64 `json:"nbArbres"`
	DeltaEVPct      float64 `json:"deltaEVpct"`
	DeltaDensitePct float64 `json:"deltaDensitePct"`
	PctPerm         float64 `json:"pctPerm"`
}

// Clamp returns a copy with every magnitude bounded to its interface range.
func (a Actions) Clamp() Actions {
	return Actions{
		NbArbres:        clamp(a.NbArbres, 0, MaxArbres),
		DeltaEVPct:      clamp(a.DeltaEVPct, 0, MaxDeltaEVPct),
		DeltaDensitePct: clamp(a.DeltaDensitePct, MinDensitePct, MaxDensitePct),
		PctPerm:         clamp(a.PctPerm, 0, MaxPctPermeable),
	}
}

// IsZero reports whether no action is applied.
func (a Actions) IsZero() bool {
	return a == Actions{}
}

// clamp bounds v to [lo, hi]. NaN clamps to lo.
func clamp(v, lo, hi float64) float64 {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
