package domain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockDirectory struct {
	station Station
	err     error
	calls   int
}

func (m *mockDirectory) LookupStation(_ context.Context, _ string) (Station, error) {
	m.calls++
	return m.station, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnrichWithStation_NilDirectory(t *testing.T) {
	report := WeatherReport{ID: "kjfk-1", Airport: "KJFK"}

	result := EnrichWithStation(context.Background(), report, nil, discardLogger())

	assert.Nil(t, result.Station)
	assert.Empty(t, result.StationSource)
}

func TestEnrichWithStation_Found(t *testing.T) {
	dir := &mockDirectory{station: Station{ICAO: "KJFK", Name: "New York/JF Kennedy Intl", State: "NY", Lat: 40.6392, Lon: -73.7639}}

	result := EnrichWithStation(context.Background(), WeatherReport{Airport: "KJFK"}, dir, discardLogger())

	require.NotNil(t, result.Station)
	assert.Equal(t, "NY", result.Station.State)
	assert.Equal(t, "directory", result.StationSource)
	assert.Equal(t, 1, dir.calls)
}

func TestEnrichWithStation_NotFound(t *testing.T) {
	dir := &mockDirectory{err: ErrStationNotFound}

	result := EnrichWithStation(context.Background(), WeatherReport{Airport: "ZZZZ"}, dir, discardLogger())

	assert.Nil(t, result.Station)
	assert.Equal(t, "unknown", result.StationSource)
}

func TestEnrichWithStation_Failure(t *testing.T) {
	dir := &mockDirectory{err: errors.New("connection refused")}

	result := EnrichWithStation(context.Background(), WeatherReport{Airport: "KJFK"}, dir, discardLogger())

	assert.Nil(t, result.Station)
	assert.Equal(t, "failed", result.StationSource)
}

func TestEnrichWithStation_NoAirport(t *testing.T) {
	dir := &mockDirectory{}

	result := EnrichWithStation(context.Background(), WeatherReport{}, dir, discardLogger())

	assert.Empty(t, result.StationSource)
	assert.Zero(t, dir.calls)
}
