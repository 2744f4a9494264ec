package domain

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/couchcryptid/metar-etl-service/internal/metar"
)

// ErrEmptyReport is returned for messages that carry no report text.
var ErrEmptyReport = errors.New("empty METAR report")

// Sink encodings accepted by SerializeWeatherReport.
const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

const metersPerStatuteMile = 1609.344

// ParseRawEvent decodes a RawEvent into a WeatherReport. Decoding problems
// inside the report are not errors: they end up in Decoded.ParseErrors.
// Only an unreadable envelope or an empty report fails.
func ParseRawEvent(raw RawEvent, rollover metar.RolloverPolicy) (WeatherReport, error) {
	rec, err := decodeRecord(raw.Value)
	if err != nil {
		return WeatherReport{}, fmt.Errorf("parse raw event: %w", err)
	}

	text := normalizeReportText(rec.RawOb)
	if text == "" {
		return WeatherReport{}, ErrEmptyReport
	}

	ref := referenceTime(rec.ReportTime, raw.Timestamp)
	decoded := metar.Parse(text, metar.ContextAt(ref).WithRollover(rollover))

	report := WeatherReport{
		Airport:    rec.ICAO,
		RawText:    text,
		Source:     rec.Source,
		Decoded:    decoded,
		RawPayload: raw.Value,
	}
	if decoded.Airport != nil {
		report.Airport = *decoded.Airport
	}
	if decoded.ObservationDayTime != nil {
		report.ObservedAt = decoded.ObservationDayTime.Time
	}
	report.ID = generateID(report.Airport, report.ObservedAt, text)
	return report, nil
}

// decodeRecord accepts either the JSON envelope or plain report text.
func decodeRecord(value []byte) (RawMETARRecord, error) {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return RawMETARRecord{RawOb: string(trimmed)}, nil
	}
	var rec RawMETARRecord
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return RawMETARRecord{}, err
	}
	return rec, nil
}

// normalizeReportText collapses whitespace runs so equal reports hash equally.
func normalizeReportText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// referenceTime picks the time used to resolve the report's month: the
// collector's reportTime, then the message timestamp, then now.
func referenceTime(reportTime string, msgTime time.Time) time.Time {
	if reportTime != "" {
		for _, layout := range []string{time.DateTime, time.RFC3339, "2006-01-02T15:04:05.999Z"} {
			if t, err := time.Parse(layout, reportTime); err == nil {
				return t.UTC()
			}
		}
	}
	if !msgTime.IsZero() {
		return msgTime.UTC()
	}
	return clock.Now().UTC()
}

// generateID produces a deterministic ID from the report's key fields.
func generateID(airport string, observedAt time.Time, text string) string {
	ts := ""
	if !observedAt.IsZero() {
		ts = observedAt.UTC().Format(time.RFC3339)
	}
	hash := sha256.Sum256([]byte(airport + "|" + ts + "|" + text))
	short := hex.EncodeToString(hash[:8])
	if airport == "" {
		return short
	}
	return strings.ToLower(airport) + "-" + short
}

// EnrichWeatherReport derives the flight category and hourly time bucket
// and stamps the processing time.
func EnrichWeatherReport(report WeatherReport) WeatherReport {
	report.FlightCategory = deriveFlightCategory(report.Decoded)
	report.TimeBucket = deriveTimeBucket(report.ObservedAt)
	report.ProcessedAt = clock.Now()
	return report
}

// deriveFlightCategory returns "" when neither clouds nor visibility were decoded.
func deriveFlightCategory(r metar.Report) string {
	vis, visKnown := visibilityMiles(r.PrevailingVisibility)
	ceiling, ceilingKnown := ceilingFeet(r)
	if !visKnown && !ceilingKnown {
		return ""
	}

	switch {
	case (ceilingKnown && ceiling < 500) || (visKnown && vis < 1):
		return "LIFR"
	case (ceilingKnown && ceiling < 1000) || (visKnown && vis < 3):
		return "IFR"
	case (ceilingKnown && ceiling <= 3000) || (visKnown && vis <= 5):
		return "MVFR"
	default:
		return "VFR"
	}
}

func visibilityMiles(v *metar.PrevailingVisibility) (float64, bool) {
	switch {
	case v == nil:
		return 0, false
	case v.CAVOK:
		return 10, true
	case v.StatuteMiles != nil:
		return *v.StatuteMiles, true
	case v.Meters != nil:
		return float64(*v.Meters) / metersPerStatuteMile, true
	default:
		return 0, false
	}
}

// ceilingFeet returns the lowest broken or overcast layer, or the vertical
// visibility. A cloud group without such a layer means unlimited ceiling.
func ceilingFeet(r metar.Report) (int, bool) {
	if r.PrevailingVisibility != nil && r.PrevailingVisibility.CAVOK {
		return 5000, true
	}
	c := r.CloudLayers
	if c == nil {
		return 0, false
	}
	if c.VerticalVisibilityFeet != nil {
		return *c.VerticalVisibilityFeet, true
	}
	lowest := -1
	for _, l := range c.Layers {
		if (l.Cover != metar.CoverBroken && l.Cover != metar.CoverOvercast) || l.HeightFeet == nil {
			continue
		}
		if lowest < 0 || *l.HeightFeet < lowest {
			lowest = *l.HeightFeet
		}
	}
	if lowest < 0 {
		return 99999, true
	}
	return lowest, true
}

// deriveTimeBucket truncates the observation time to the hour in UTC.
// Returns zero time if the input is zero.
func deriveTimeBucket(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC().Truncate(time.Hour)
}

// SerializeWeatherReport encodes a report for the sink topic in the given
// format ("json" or "msgpack"). Headers carry routing metadata so consumers
// can filter without decoding the value.
func SerializeWeatherReport(report WeatherReport, format string) (OutputEvent, error) {
	var (
		value       []byte
		contentType string
		err         error
	)
	switch format {
	case FormatJSON, "":
		value, err = json.Marshal(report)
		contentType = "application/json"
	case FormatMsgpack:
		value, err = marshalMsgpack(report)
		contentType = "application/msgpack"
	default:
		return OutputEvent{}, fmt.Errorf("unsupported sink format %q", format)
	}
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize weather report: %w", err)
	}

	headers := map[string]string{
		"content-type": contentType,
		"airport":      report.Airport,
		"parse_errors": strconv.Itoa(len(report.Decoded.ParseErrors)),
		"processed_at": report.ProcessedAt.UTC().Format(time.RFC3339),
	}
	if report.FlightCategory != "" {
		headers["flight_category"] = report.FlightCategory
	}
	return OutputEvent{
		Key:     []byte(report.ID),
		Value:   value,
		Headers: headers,
	}, nil
}

// marshalMsgpack reuses the json tags so both encodings share field names.
func marshalMsgpack(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
