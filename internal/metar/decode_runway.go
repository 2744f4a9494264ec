package metar

import (
	"fmt"
	"strings"
)

// decodeWindShear decodes "WS ALL RWY" and "WS [TKOF|LDG] Rdd[LCR]" sequences.
// The group always starts with the WS marker.
func decodeWindShear(tokens []RawToken, errs *errorSink, _ Context) *WindShear {
	if len(tokens) == 0 {
		return nil
	}

	var ws WindShear
	phase := ""
	for i := 0; i < len(tokens); i++ {
		text := tokens[i].Text
		switch {
		case text == "WS":
			phase = ""
		case text == "ALL":
			if i+1 < len(tokens) && tokens[i+1].Text == "RWY" {
				i++
			}
			ws.AllRunways = true
		case text == "TKOF" || text == "LDG":
			phase = text
		case strings.HasPrefix(text, "R"):
			runway := strings.TrimPrefix(strings.TrimPrefix(text, "RWY"), "R")
			if runway == "" {
				errs.addf("Wind shear runway %q at offset %d is malformed", text, tokens[i].Offset)
				continue
			}
			ws.Runways = append(ws.Runways, WindShearRunway{Runway: runway, Phase: phase})
			phase = ""
		default:
			errs.addf("Unexpected wind shear group %q at offset %d", text, tokens[i].Offset)
		}
	}
	if !ws.AllRunways && len(ws.Runways) == 0 {
		errs.add("Wind shear group has no runway")
		return nil
	}
	return &ws
}

// decodeMotne decodes runway state groups, both Rdd/ERCReeBB and the legacy
// eight-digit form where 88 means all runways and 99 a repeat of the last.
func decodeMotne(tokens []RawToken, errs *errorSink, _ Context) *Motne {
	if len(tokens) == 0 {
		return nil
	}

	var mt Motne
	for _, tok := range tokens {
		text := tok.Text
		if text == "SNOCLO" || text == "R/SNOCLO" {
			mt.AerodromeClosed = true
			continue
		}
		if m := runwayStateRe.FindStringSubmatch(text); m != nil {
			rc := RunwayCondition{Runway: m[1]}
			if strings.Contains(text, "CLRD") {
				rc.Cleared = true
				rc.FrictionCode = optionalInt(m[6])
			} else {
				rc.Deposit = optionalInt(m[2])
				rc.Contamination = optionalInt(m[3])
				rc.DepthCode = optionalInt(m[4])
				rc.FrictionCode = optionalInt(m[5])
			}
			mt.Runways = append(mt.Runways, rc)
			continue
		}
		if m := legacyStateRe.FindStringSubmatch(text); m != nil {
			mt.Runways = append(mt.Runways, RunwayCondition{
				Runway:        legacyRunway(m[1]),
				Deposit:       optionalInt(m[2]),
				Contamination: optionalInt(m[3]),
				DepthCode:     optionalInt(m[4]),
				FrictionCode:  optionalInt(m[5]),
			})
			continue
		}
		errs.addf("Runway state group %q at offset %d is malformed", text, tok.Offset)
	}
	if !mt.AerodromeClosed && len(mt.Runways) == 0 {
		return nil
	}
	return &mt
}

// legacyRunway maps the two-digit designator of the old runway state format.
// Designators above 50 denote the right-hand parallel of dd-50.
func legacyRunway(dd string) string {
	switch n := atoi(dd); {
	case n == 88:
		return "ALL"
	case n == 99:
		return "REPEAT"
	case n > 50:
		return fmt.Sprintf("%02dR", n-50)
	default:
		return dd
	}
}
