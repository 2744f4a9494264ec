// Package metar decodes ICAO METAR/SPECI aviation routine weather reports.
//
// # Pipeline
//
// A report is processed in three stages, each a pure function:
//
//	Tokenize  "KJFK 211751Z 24010KT ..."  →  []RawToken (text + byte offset)
//	Classify  []RawToken                  →  GroupedTokens (TokenType → tokens, in order)
//	Parse     GroupedTokens + Context     →  Report (every field optional + ParseErrors)
//
// Decoding never stops at the first bad group. Every field decoder receives
// the tokens of its own group, appends a human-readable message to the
// shared error list when it cannot produce a value, and leaves that field
// nil. The only short circuit is input with no recognizable group at all,
// which yields a Report holding a single error.
//
// # Report Conventions
//
// Group order in a METAR body:
//
//	[METAR|SPECI] CCCC DDHHMMZ [AUTO|COR|NIL] wind [dddVddd] visibility [RVR...]
//	[weather...] [clouds...] TT/DD Qnnnn|Annnn [REww...] [WS ...] [runway state...]
//	[NOSIG|BECMG ...|TEMPO ...] [RMK ...]
//
// Day and time:
//
//	"211751Z" = day 21, 17:51 UTC. The month and year are not part of the
//	report; they come from the caller's Context. Near a month boundary the
//	report day can be larger than today's day (a report from the 31st read on
//	the 1st). Context.Rollover decides whether that means the previous month.
//
// Wind:
//
//	"24010G20KT"  direction 240°, 10 kt, gusting 20 kt
//	"VRB03KT"     variable direction
//	"00000KT"     calm
//	"180V240"     direction varying between 180° and 240°
//	Units: KT (knots), MPS (metres per second), KMH (kilometres per hour).
//
// Visibility:
//
//	"9999" ≥ 10 km, "0800" 800 m, "4000 1500SW" prevailing + minimum with direction,
//	"CAVOK" ceiling and visibility OK, "10SM", "1 1/2SM", "M1/4SM" (less than),
//	"P6SM" (more than). Statute-mile groups come from North American reports.
//
// Runway visual range:
//
//	"R24L/P1500U" runway 24L, more than 1500 m, upward tendency.
//	"R28/0600V1000FT" varying between 600 and 1000 ft.
//
// Weather:
//
//	[intensity|VC][descriptor][phenomena...], e.g. "+TSRA", "VCSH", "-FZDZ", "BR".
//	Intensity: "-" light, none moderate, "+" heavy, "VC" in the vicinity.
//	Recent weather carries an "RE" prefix: "RERA".
//
// Clouds:
//
//	"BKN015CB" broken at 1500 ft with cumulonimbus, "VV002" vertical visibility
//	200 ft, "NSC"/"SKC"/"CLR"/"NCD" no cloud of significance.
//
// Temperature and pressure:
//
//	"M05/M10" -5 °C, dew point -10 °C. "Q1013" hectopascals, "A2992" inches of mercury.
//
// Runway state (MOTNE):
//
//	"R24/490195" deposit 4, extent 9, depth code 01, braking code 95.
//	"R24/CLRD70" contamination cleared. "88290195" legacy 8-digit form.
//
// Trend:
//
//	"NOSIG" no significant change. "BECMG FM1100 25015KT" and "TEMPO TL1200 4000 SHRA"
//	forecast changes whose groups are decoded like the body.
package metar
