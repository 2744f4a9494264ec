package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/metar-etl-service/internal/domain"
	"github.com/couchcryptid/metar-etl-service/internal/observability"
	"github.com/couchcryptid/metar-etl-service/internal/pipeline"
)

const testMETAR = "METAR KJFK 211751Z 24010KT 10SM FEW250 12/M02 A2992"

// --- mocks ---

type mockExtractor struct {
	mu      sync.Mutex
	batches [][]domain.RawEvent
	errs    []error
}

func (m *mockExtractor) ExtractBatch(ctx context.Context, _ int) ([]domain.RawEvent, error) {
	m.mu.Lock()
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		m.mu.Unlock()
		return nil, err
	}
	if len(m.batches) > 0 {
		b := m.batches[0]
		m.batches = m.batches[1:]
		m.mu.Unlock()
		return b, nil
	}
	m.mu.Unlock()

	// block until context cancelled to simulate waiting for messages
	<-ctx.Done()
	return nil, ctx.Err()
}

type mockTransformer struct {
	err error
}

func (m *mockTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	if m.err != nil {
		return domain.OutputEvent{}, m.err
	}
	return domain.OutputEvent{Key: raw.Key, Value: raw.Value}, nil
}

type mockLoader struct {
	mu       sync.Mutex
	loaded   []domain.OutputEvent
	failures int
}

func (m *mockLoader) LoadBatch(_ context.Context, events []domain.OutputEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failures > 0 {
		m.failures--
		return errors.New("broker unavailable")
	}
	m.loaded = append(m.loaded, events...)
	return nil
}

func (m *mockLoader) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.loaded)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func rawEvent(key, value string, commits *atomic.Int32) domain.RawEvent {
	raw := domain.RawEvent{Key: []byte(key), Value: []byte(value), Topic: "raw-metar-reports"}
	if commits != nil {
		raw.Commit = func(_ context.Context) error {
			commits.Add(1)
			return nil
		}
	}
	return raw
}

func runFor(t *testing.T, p *pipeline.Pipeline, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	require.NoError(t, p.Run(ctx))
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	var commits atomic.Int32
	ext := &mockExtractor{batches: [][]domain.RawEvent{{
		rawEvent("a", testMETAR, &commits),
		rawEvent("b", testMETAR, &commits),
	}}}
	ldr := &mockLoader{}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ext, &mockTransformer{}, ldr, discardLogger(), metrics, 50)
	require.Error(t, p.CheckReadiness(context.Background()))

	runFor(t, p, 300*time.Millisecond)

	assert.Equal(t, 2, ldr.count())
	assert.Equal(t, int32(2), commits.Load())
	assert.NoError(t, p.CheckReadiness(context.Background()))
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.MessagesConsumed), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.MessagesProduced), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.PipelineRunning), 0)
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	ldr := &mockLoader{}
	p := pipeline.New(&mockExtractor{}, &mockTransformer{}, ldr, discardLogger(), observability.NewMetricsForTesting(), 50)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.Run(ctx))
	assert.Zero(t, ldr.count())
}

func TestPipeline_Run_TransformErrorCommitsPoisonMessage(t *testing.T) {
	var commits atomic.Int32
	ext := &mockExtractor{batches: [][]domain.RawEvent{{rawEvent("a", "", &commits)}}}
	ldr := &mockLoader{}
	metrics := observability.NewMetricsForTesting()

	p := pipeline.New(ext, &mockTransformer{err: domain.ErrEmptyReport}, ldr, discardLogger(), metrics, 50)
	runFor(t, p, 300*time.Millisecond)

	assert.Zero(t, ldr.count())
	assert.Equal(t, int32(1), commits.Load())
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.TransformErrors), 0)
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_LoadFailureSkipsCommit(t *testing.T) {
	var commits atomic.Int32
	ext := &mockExtractor{batches: [][]domain.RawEvent{
		{rawEvent("a", testMETAR, &commits)},
		{rawEvent("b", testMETAR, &commits)},
	}}
	ldr := &mockLoader{failures: 1}

	p := pipeline.New(ext, &mockTransformer{}, ldr, discardLogger(), observability.NewMetricsForTesting(), 50)
	runFor(t, p, time.Second)

	assert.Equal(t, 1, ldr.count())
	assert.Equal(t, int32(1), commits.Load())
}

func TestPipeline_Run_RecoversFromExtractError(t *testing.T) {
	ext := &mockExtractor{
		errs:    []error{errors.New("fetch failed")},
		batches: [][]domain.RawEvent{{rawEvent("a", testMETAR, nil)}},
	}
	ldr := &mockLoader{}

	p := pipeline.New(ext, &mockTransformer{}, ldr, discardLogger(), observability.NewMetricsForTesting(), 50)
	runFor(t, p, time.Second)

	assert.Equal(t, 1, ldr.count())
}
