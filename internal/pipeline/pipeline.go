package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/metar-etl-service/internal/domain"
	"github.com/couchcryptid/metar-etl-service/internal/observability"
)

// BatchExtractor reads up to batchSize raw reports from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer turns one raw report message into an output event.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error)
}

// BatchLoader writes decoded reports to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, events []domain.OutputEvent) error
}

// Pipeline moves reports from the source topic to the sink topic in batches.
// Offsets are committed only after the batch has been written, so a crash
// between load and commit re-delivers reports rather than losing them.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
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
	}
}

// CheckReadiness returns nil once the pipeline has written at least one report.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not processed any reports yet")
	}
	return nil
}

// Run executes the batch loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	backoff := newRetryBackoff(200*time.Millisecond, 5*time.Second)
	for {
		if ctx.Err() != nil {
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		}
		if !p.runBatch(ctx, backoff) {
			return nil
		}
	}
}

// batchResult summarises one cycle for logging.
type batchResult struct {
	consumed int
	skipped  int
	loaded   int
}

// runBatch runs one extract-transform-load cycle. It returns false when the
// pipeline should stop.
func (p *Pipeline) runBatch(ctx context.Context, backoff *retryBackoff) bool {
	start := time.Now()

	raws, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err)
		return backoff.wait(ctx)
	}
	if len(raws) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.MessagesConsumed.Add(float64(len(raws)))
	p.metrics.BatchSize.Observe(float64(len(raws)))
	backoff.reset()

	outs, kept := p.transformBatch(ctx, raws)
	res := batchResult{consumed: len(raws), skipped: len(raws) - len(kept)}
	if len(outs) > 0 {
		if err := p.loader.LoadBatch(ctx, outs); err != nil {
			p.logger.Error("load batch failed", "error", err, "batch_size", len(outs))
			return backoff.wait(ctx)
		}
		p.metrics.MessagesProduced.Add(float64(len(outs)))
		for _, raw := range kept {
			p.commit(ctx, raw)
		}
		res.loaded = len(outs)
	}

	if res.loaded > 0 {
		p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
		p.ready.Store(true)
	}
	p.logger.Debug("batch processed",
		"consumed", res.consumed,
		"loaded", res.loaded,
		"skipped", res.skipped,
		"duration", time.Since(start),
	)
	return true
}

// transformBatch transforms every message and returns the outputs together
// with the raw messages they came from. Messages that cannot be transformed
// will never succeed, so their offsets are committed straight away.
func (p *Pipeline) transformBatch(ctx context.Context, raws []domain.RawEvent) ([]domain.OutputEvent, []domain.RawEvent) {
	outs := make([]domain.OutputEvent, 0, len(raws))
	kept := make([]domain.RawEvent, 0, len(raws))

	for _, raw := range raws {
		out, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("transform failed, skipping report",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.TransformErrors.Inc()
			p.commit(ctx, raw)
			continue
		}
		outs = append(outs, out)
		kept = append(kept, raw)
	}
	return outs, kept
}

// commit commits the message offset if a commit function is available.
func (p *Pipeline) commit(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}
