package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/metar-etl-service/internal/domain"
	"github.com/couchcryptid/metar-etl-service/internal/metar"
	"github.com/couchcryptid/metar-etl-service/internal/observability"
)

// ReportTransformer implements Transformer by decoding the METAR, enriching
// it, and encoding it for the sink topic.
type ReportTransformer struct {
	stations domain.StationDirectory
	rollover metar.RolloverPolicy
	format   string
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewTransformer creates a ReportTransformer. Pass a nil directory to disable
// station enrichment.
func NewTransformer(stations domain.StationDirectory, rollover metar.RolloverPolicy, format string, logger *slog.Logger, metrics *observability.Metrics) *ReportTransformer {
	return &ReportTransformer{
		stations: stations,
		rollover: rollover,
		format:   format,
		logger:   logger,
		metrics:  metrics,
	}
}

func (t *ReportTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	report, err := domain.ParseRawEvent(raw, t.rollover)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	report = domain.EnrichWeatherReport(report)
	report = domain.EnrichWithStation(ctx, report, t.stations, t.logger)
	t.observe(report)

	return domain.SerializeWeatherReport(report, t.format)
}

func (t *ReportTransformer) observe(report domain.WeatherReport) {
	errs := report.Decoded.ParseErrors
	if len(errs) == 1 && errs[0] == metar.ErrNoGroups {
		t.metrics.ReportsWithoutGroups.Inc()
	}
	t.metrics.ReportParseErrors.Observe(float64(len(errs)))

	category := report.FlightCategory
	if category == "" {
		category = "unknown"
	}
	t.metrics.ReportsDecoded.WithLabelValues(category).Inc()

	if len(errs) > 0 {
		t.logger.Debug("report decoded with errors",
			"report_id", report.ID,
			"airport", report.Airport,
			"errors", errs,
		)
	}
}
