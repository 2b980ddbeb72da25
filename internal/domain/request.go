package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RawMessage is an unprocessed message from the source topic.
type RawMessage struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputMessage is the serialized form destined for the sink topic.
type OutputMessage struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// ScenarioRequest asks for one zone, scenario and horizon with an action vector.
type ScenarioRequest struct {
	ID       string     `json:"id,omitempty"`
	Zone     string     `json:"zone"`
	Scenario ScenarioID `json:"scenario,omitempty"`
	Horizon  Horizon    `json:"horizon,omitempty"`
	Actions  Actions    `json:"actions"`
}

// Normalize fills defaults and checks the request shape. It does not consult
// the catalog; unknown zones surface later as ErrUnknownZone.
func (r ScenarioRequest) Normalize() (ScenarioRequest, error) {
	r.Zone = strings.ToLower(strings.TrimSpace(r.Zone))
	if r.Zone == "" {
		return r, fmt.Errorf("%w: zone is required", ErrInvalidRequest)
	}
	if r.Scenario == "" {
		r.Scenario = DefaultScenario
	}
	if !KnownScenario(r.Scenario) {
		return r, fmt.Errorf("%w: unknown scenario %q", ErrInvalidRequest, r.Scenario)
	}
	if r.Horizon != HorizonCurrent && !knownHorizon(r.Horizon) {
		return r, fmt.Errorf("%w: unknown horizon %d", ErrInvalidRequest, r.Horizon)
	}
	return r, nil
}

// ParseScenarioRequest decodes and normalizes a request from the source topic.
func ParseScenarioRequest(raw RawMessage) (ScenarioRequest, error) {
	var req ScenarioRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return ScenarioRequest{}, fmt.Errorf("parse scenario request: %w: %w", ErrInvalidRequest, err)
	}
	return req.Normalize()
}

func knownHorizon(h Horizon) bool {
	for _, k := range Horizons {
		if k == h {
			return true
		}
	}
	return false
}

// SimulationResult is the outcome of composing a request's actions over its baseline.
type SimulationResult struct {
	ID             string     `json:"id"`
	Zone           string     `json:"zone"`
	Scenario       ScenarioID `json:"scenario"`
	Horizon        Horizon    `json:"horizon"`
	Actions        Actions    `json:"actions"`
	Baseline       Indicators `json:"baseline"`
	Simulated      Indicators `json:"simulated"`
	Changes        []Change   `json:"changes"`
	BaselineSource string     `json:"baseline_source"`
	SimulatedAt    time.Time  `json:"simulated_at"`
}

// NewSimulationResult clamps the request's actions, composes them over base
// and stamps the result. req must already be normalized.
func NewSimulationResult(req ScenarioRequest, base Indicators, source string) SimulationResult {
	actions := req.Actions.Clamp()
	simulated := ComposeScenario(base, actions)

	id := req.ID
	if id == "" {
		id = generateID(req.Zone, req.Scenario, req.Horizon, actions)
	}

	return SimulationResult{
		ID:             id,
		Zone:           req.Zone,
		Scenario:       req.Scenario,
		Horizon:        req.Horizon,
		Actions:        actions,
		Baseline:       base,
		Simulated:      simulated,
		Changes:        CompareIndicators(base, simulated),
		BaselineSource: source,
		SimulatedAt:    clock.Now().UTC(),
	}
}

// generateID produces a deterministic ID from the request key and the
// clamped actions, so replays of the same request share a key downstream.
func generateID(zone string, scenario ScenarioID, horizon Horizon, a Actions) string {
	input := fmt.Sprintf("%s|%s|%d|%g|%g|%g|%g", zone, scenario, horizon, a.NbArbres, a.DeltaEVPct, a.DeltaDensitePct, a.PctPerm)
	hash := sha256.Sum256([]byte(input))
	return zone + "-" + hex.EncodeToString(hash[:8])
}

// SerializeSimulationResult encodes a result for the sink topic, keyed by ID.
func SerializeSimulationResult(res SimulationResult) (OutputMessage, error) {
	value, err := json.Marshal(res)
	if err != nil {
		return OutputMessage{}, fmt.Errorf("marshal simulation result: %w", err)
	}
	return OutputMessage{
		Key:   []byte(res.ID),
		Value: value,
		Headers: map[string]string{
			"zone":         res.Zone,
			"scenario":     string(res.Scenario),
			"horizon":      strconv.Itoa(int(res.Horizon)),
			"simulated_at": res.SimulatedAt.Format(time.RFC3339),
		},
	}, nil
}
