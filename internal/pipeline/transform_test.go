package pipeline_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/couchcryptid/metar-etl-service/internal/domain"
	"github.com/couchcryptid/metar-etl-service/internal/metar"
	"github.com/couchcryptid/metar-etl-service/internal/observability"
	"github.com/couchcryptid/metar-etl-service/internal/pipeline"
)

var msgTime = time.Date(2024, time.March, 21, 18, 0, 0, 0, time.UTC)

type stubDirectory struct{}

func (stubDirectory) LookupStation(_ context.Context, icao string) (domain.Station, error) {
	if icao == "KJFK" {
		return domain.Station{ICAO: "KJFK", Name: "New York/JF Kennedy Intl", State: "NY"}, nil
	}
	return domain.Station{}, domain.ErrStationNotFound
}

func TestReportTransformer_Transform(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(msgTime))
	t.Cleanup(func() { domain.SetClock(nil) })

	metrics := observability.NewMetricsForTesting()
	tfm := pipeline.NewTransformer(stubDirectory{}, metar.RolloverPreviousMonth, domain.FormatJSON, discardLogger(), metrics)

	out, err := tfm.Transform(context.Background(), domain.RawEvent{Value: []byte(testMETAR), Timestamp: msgTime})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(out.Key), "kjfk-"))
	assert.Equal(t, "VFR", out.Headers["flight_category"])

	var report domain.WeatherReport
	require.NoError(t, json.Unmarshal(out.Value, &report))
	assert.Equal(t, "KJFK", report.Airport)
	assert.Equal(t, "directory", report.StationSource)
	require.NotNil(t, report.Station)
	assert.Equal(t, "NY", report.Station.State)
	assert.Equal(t, msgTime, report.ProcessedAt)

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ReportsDecoded.WithLabelValues("VFR")), 0)
}

func TestReportTransformer_Msgpack(t *testing.T) {
	tfm := pipeline.NewTransformer(nil, metar.RolloverStrict, domain.FormatMsgpack, discardLogger(), observability.NewMetricsForTesting())

	out, err := tfm.Transform(context.Background(), domain.RawEvent{Value: []byte(testMETAR), Timestamp: msgTime})
	require.NoError(t, err)
	assert.Equal(t, "application/msgpack", out.Headers["content-type"])

	dec := msgpack.NewDecoder(bytes.NewReader(out.Value))
	dec.SetCustomStructTag("json")
	var report domain.WeatherReport
	require.NoError(t, dec.Decode(&report))
	assert.Equal(t, "KJFK", report.Airport)
	assert.Empty(t, report.StationSource)
}

func TestReportTransformer_UnrecognizedText(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	tfm := pipeline.NewTransformer(nil, metar.RolloverStrict, domain.FormatJSON, discardLogger(), metrics)

	out, err := tfm.Transform(context.Background(), domain.RawEvent{Value: []byte("hello world"), Timestamp: msgTime})
	require.NoError(t, err)

	assert.Equal(t, "1", out.Headers["parse_errors"])
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ReportsWithoutGroups), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ReportsDecoded.WithLabelValues("unknown")), 0)
}

func TestReportTransformer_EmptyMessage(t *testing.T) {
	tfm := pipeline.NewTransformer(nil, metar.RolloverStrict, domain.FormatJSON, discardLogger(), observability.NewMetricsForTesting())

	_, err := tfm.Transform(context.Background(), domain.RawEvent{Value: []byte("  ")})
	assert.ErrorIs(t, err, domain.ErrEmptyReport)
}

func TestReportTransformer_Fixtures(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "metars.txt"))
	require.NoError(t, err)

	tfm := pipeline.NewTransformer(nil, metar.RolloverPreviousMonth, domain.FormatJSON, discardLogger(), observability.NewMetricsForTesting())

	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		fields := strings.Fields(line)
		t.Run(fields[1], func(t *testing.T) {
			out, err := tfm.Transform(context.Background(), domain.RawEvent{Value: []byte(line), Timestamp: msgTime})
			require.NoError(t, err)

			var report domain.WeatherReport
			require.NoError(t, json.Unmarshal(out.Value, &report))
			assert.Equal(t, fields[1], report.Airport)
			assert.Empty(t, report.Decoded.ParseErrors)
			assert.NotEmpty(t, report.FlightCategory)
			assert.Equal(t, 21, report.ObservedAt.Day())
		})
	}
}
