package domain

import (
	"context"
	"time"

	"github.com/couchcryptid/metar-etl-service/internal/metar"
)

// RawMETARRecord is the JSON envelope the collector publishes. It mirrors the
// aviationweather.gov data API fields. Collectors that forward plain report
// text skip the envelope entirely.
type RawMETARRecord struct {
	ICAO       string `json:"icaoId"`
	RawOb      string `json:"rawOb"`
	ReportTime string `json:"reportTime"`
	Source     string `json:"source"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Station describes the reporting aerodrome.
type Station struct {
	ICAO       string  `json:"icao"`
	Name       string  `json:"name,omitempty"`
	State      string  `json:"state,omitempty"`
	Country    string  `json:"country,omitempty"`
	Lat        float64 `json:"lat,omitempty"`
	Lon        float64 `json:"lon,omitempty"`
	ElevationM float64 `json:"elevation_m,omitempty"`
}

// WeatherReport is a decoded METAR plus the fields derived from it.
type WeatherReport struct {
	ID         string       `json:"id"`
	Airport    string       `json:"airport,omitempty"`
	RawText    string       `json:"raw_text"`
	Source     string       `json:"source,omitempty"`
	ObservedAt time.Time    `json:"observed_at"`
	Decoded    metar.Report `json:"decoded"`

	FlightCategory string    `json:"flight_category,omitempty"` // VFR, MVFR, IFR, LIFR
	TimeBucket     time.Time `json:"time_bucket"`

	// Station enrichment fields.
	Station       *Station `json:"station,omitempty"`
	StationSource string   `json:"station_source,omitempty"` // "directory", "unknown", "failed"

	RawPayload  []byte    `json:"-"`
	ProcessedAt time.Time `json:"processed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
