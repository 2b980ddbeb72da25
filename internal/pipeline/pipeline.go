package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/couchcryptid/storm-data-shared/retry"

	"github.com/climatquartier/scenario-service/internal/domain"
	"github.com/climatquartier/scenario-service/internal/observability"
)

// BatchExtractor reads up to batchSize raw messages from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawMessage, error)
}

// Transformer converts a raw request into an output message.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawMessage) (domain.OutputMessage, error)
}

// BatchLoader writes multiple output messages to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, msgs []domain.OutputMessage) error
}

// Pipeline orchestrates the extract-simulate-load loop.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
	backoff     backoff.BackOff
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
		backoff:     newTransportBackOff(),
	}
}

// newTransportBackOff starts at 200ms, doubles each retry and caps at 5s.
// It never gives up; the pipeline stops only on context cancellation.
func newTransportBackOff() *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = 0
	bo.Reset()
	return bo
}

// CheckReadiness returns nil if the pipeline has loaded at least one batch,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not processed any messages yet")
	}
	return nil
}

// Ready reports whether a batch has been loaded.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// Run executes the batch loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !p.processBatch(ctx) {
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		}
	}
}

// processBatch runs one extract-simulate-load cycle. Returns false if the pipeline should stop.
func (p *Pipeline) processBatch(ctx context.Context) bool {
	start := time.Now()

	rawBatch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err)
		return p.backoffOrStop(ctx)
	}

	if len(rawBatch) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.RequestsConsumed.Add(float64(len(rawBatch)))
	p.metrics.BatchSize.Observe(float64(len(rawBatch)))

	loaded, ok := p.transformAndLoad(ctx, rawBatch)
	if !ok {
		return false
	}
	p.backoff.Reset()

	if loaded > 0 {
		p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
		p.ready.Store(true)
	}
	return true
}

// transformAndLoad simulates each request in the batch, loads the successes,
// and commits offsets. Returns the number of loaded messages and false if the
// pipeline should stop.
//
// Offsets are committed only once the batch is loaded, in fetch order with
// failed requests included. Committing a later offset marks every earlier one
// on the partition as consumed, so no commit may precede the load.
func (p *Pipeline) transformAndLoad(ctx context.Context, rawBatch []domain.RawMessage) (int, bool) {
	outBatch := make([]domain.OutputMessage, 0, len(rawBatch))

	for _, raw := range rawBatch {
		out, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("simulation failed, skipping message",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.SimulationErrors.WithLabelValues(errorReason(err)).Inc()
			continue
		}
		outBatch = append(outBatch, out)
	}

	if len(outBatch) > 0 {
		for {
			err := p.loader.LoadBatch(ctx, outBatch)
			if err == nil {
				break
			}
			p.logger.Error("load batch failed", "error", err, "batch_size", len(outBatch))
			if !p.backoffOrStop(ctx) {
				return 0, false
			}
		}
		p.metrics.ResultsProduced.Add(float64(len(outBatch)))
	}

	for _, raw := range rawBatch {
		p.commitOffset(ctx, raw)
	}

	return len(outBatch), true
}

// errorReason labels a simulation failure for metrics.
func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return "parse"
	case errors.Is(err, domain.ErrUnknownZone), errors.Is(err, domain.ErrUnknownProjection):
		return "unknown"
	case errors.Is(err, domain.ErrInvalidIndicator):
		return "baseline"
	default:
		return "other"
	}
}

// backoffOrStop sleeps for the next backoff interval unless the context is
// cancelled first. Returns false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	wait := p.backoff.NextBackOff()
	if wait == backoff.Stop {
		return false
	}
	return retry.SleepWithContext(ctx, wait)
}

// commitOffset commits the message offset if a commit function is available.
func (p *Pipeline) commitOffset(ctx context.Context, raw domain.RawMessage) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}
