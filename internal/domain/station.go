package domain

import (
	"context"
	"errors"
	"log/slog"
)

// ErrStationNotFound is returned by a StationDirectory that has no entry for
// the requested ICAO code.
var ErrStationNotFound = errors.New("station not found")

// StationDirectory resolves ICAO codes to station metadata.
type StationDirectory interface {
	LookupStation(ctx context.Context, icao string) (Station, error)
}

// EnrichWithStation attaches station metadata to a report. A nil directory
// disables enrichment; lookup failures are logged and recorded in
// StationSource but never fail the report.
func EnrichWithStation(ctx context.Context, report WeatherReport, dir StationDirectory, logger *slog.Logger) WeatherReport {
	if dir == nil || report.Airport == "" {
		return report
	}

	station, err := dir.LookupStation(ctx, report.Airport)
	switch {
	case errors.Is(err, ErrStationNotFound):
		report.StationSource = "unknown"
	case err != nil:
		logger.Warn("station lookup failed",
			"report_id", report.ID,
			"airport", report.Airport,
			"error", err,
		)
		report.StationSource = "failed"
	default:
		report.Station = &station
		report.StationSource = "directory"
	}
	return report
}
