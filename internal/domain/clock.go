package domain

import "github.com/jonboulle/clockwork"

// clock stamps SimulationResult.SimulatedAt. Tests freeze it with SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the simulation time source. Pass nil to restore real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
