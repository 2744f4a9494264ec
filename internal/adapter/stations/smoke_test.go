//go:build smoke

package stations

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/metar-etl-service/internal/domain"
	"github.com/couchcryptid/metar-etl-service/internal/observability"
)

// These tests hit the real aviationweather.gov API.
// Run with: go test -tags=smoke ./internal/adapter/stations/ -v -count=1

func smokeClient() *Client {
	return NewClient(
		"https://aviationweather.gov/api/data/stationinfo",
		10*time.Second,
		observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestSmoke_LookupStation(t *testing.T) {
	station, err := smokeClient().LookupStation(context.Background(), "KJFK")
	require.NoError(t, err)

	assert.Equal(t, "KJFK", station.ICAO)
	assert.Equal(t, "NY", station.State)
	assert.InDelta(t, 40.64, station.Lat, 0.05)
	assert.InDelta(t, -73.78, station.Lon, 0.05)
}

func TestSmoke_LookupUnknownStation(t *testing.T) {
	_, err := smokeClient().LookupStation(context.Background(), "QQQQ")
	assert.ErrorIs(t, err, domain.ErrStationNotFound)
}
