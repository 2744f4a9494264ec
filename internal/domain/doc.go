// Package domain turns raw METAR messages into enriched weather reports.
//
// # Message Format
//
// The collector publishes one report per Kafka message, either as plain text
//
//	METAR KJFK 211751Z 24010KT 10SM FEW250 12/M02 A2992 RMK AO2
//
// or wrapped in the aviationweather.gov JSON shape:
//
//	{"icaoId":"KJFK","rawOb":"METAR KJFK ...","reportTime":"2024-03-21 17:51:00"}
//
// A METAR carries only day-of-month, so the month and year are taken from
// reportTime when present and from the Kafka message timestamp otherwise.
// The configured rollover policy decides what happens to a report dated
// later in the month than that reference (see [metar.RolloverPolicy]).
//
// # Flight Category
//
// Derived from ceiling (lowest BKN, OVC or vertical visibility) and
// prevailing visibility using the FAA thresholds:
//
//	LIFR  ceiling < 500 ft     or visibility < 1 SM
//	IFR   ceiling < 1000 ft    or visibility < 3 SM
//	MVFR  ceiling <= 3000 ft   or visibility <= 5 SM
//	VFR   otherwise
//
// Metric visibility is converted at 1609.344 m per statute mile. CAVOK
// counts as VFR. Reports with neither clouds nor visibility get no category.
//
// # ID Generation
//
// Report IDs are deterministic SHA-256 hashes of station|observation time|text
// so that replays of the same message produce the same ID downstream.
// See [generateID].
package domain
