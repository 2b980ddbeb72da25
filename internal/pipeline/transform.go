package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/climatquartier/scenario-service/internal/domain"
	"github.com/climatquartier/scenario-service/internal/observability"
)

// Simulation origins recorded on SimulationDuration.
const (
	OriginKafka = "kafka"
	OriginHTTP  = "http"
)

// ScenarioSimulator implements Transformer: it turns a scenario request into
// a serialized simulation result. It is also the entry point for
// synchronous simulations from the HTTP API.
type ScenarioSimulator struct {
	catalog *domain.Catalog
	store   domain.BaselineStore
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewSimulator creates a ScenarioSimulator. Pass a nil store to use the
// static catalog only.
func NewSimulator(catalog *domain.Catalog, store domain.BaselineStore, logger *slog.Logger, metrics *observability.Metrics) *ScenarioSimulator {
	return &ScenarioSimulator{
		catalog: catalog,
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// Transform parses, simulates and serializes one source message.
func (s *ScenarioSimulator) Transform(ctx context.Context, raw domain.RawMessage) (domain.OutputMessage, error) {
	req, err := domain.ParseScenarioRequest(raw)
	if err != nil {
		return domain.OutputMessage{}, err
	}
	res, err := s.simulate(ctx, req, OriginKafka)
	if err != nil {
		return domain.OutputMessage{}, err
	}
	return domain.SerializeSimulationResult(res)
}

// Simulate normalizes req and computes its result.
func (s *ScenarioSimulator) Simulate(ctx context.Context, req domain.ScenarioRequest) (domain.SimulationResult, error) {
	req, err := req.Normalize()
	if err != nil {
		return domain.SimulationResult{}, err
	}
	return s.simulate(ctx, req, OriginHTTP)
}

func (s *ScenarioSimulator) simulate(ctx context.Context, req domain.ScenarioRequest, origin string) (domain.SimulationResult, error) {
	start := time.Now()
	defer func() {
		s.metrics.SimulationDuration.WithLabelValues(origin).Observe(time.Since(start).Seconds())
	}()

	base, source, err := domain.ResolveBaseline(ctx, s.catalog, s.store, req.Zone, req.Scenario, req.Horizon, s.logger)
	if err != nil {
		return domain.SimulationResult{}, err
	}
	s.metrics.BaselineLookups.WithLabelValues(source).Inc()

	res := domain.NewSimulationResult(req, base, source)
	s.logger.Debug("scenario simulated",
		"id", res.ID,
		"zone", res.Zone,
		"scenario", res.Scenario,
		"horizon", res.Horizon.String(),
		"baseline_source", source,
		"origin", origin,
	)
	return res, nil
}
