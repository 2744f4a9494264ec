package metar

// decodePrevailingVisibility decodes metric, CAVOK and statute-mile groups.
// "4000 1500SW" yields a prevailing value plus a directional minimum;
// "1 1/2SM" arrives as two tokens and is summed.
func decodePrevailingVisibility(tokens []RawToken, errs *errorSink, _ Context) *PrevailingVisibility {
	if len(tokens) == 0 {
		return nil
	}

	var vis PrevailingVisibility
	var whole *int
	for _, tok := range tokens {
		text := tok.Text
		switch {
		case text == "CAVOK":
			vis.CAVOK = true
		case text == "////":
			// not observed
		case visWholeRe.MatchString(text):
			n := atoi(text)
			whole = &n
		case visMetersRe.MatchString(text):
			m := visMetersRe.FindStringSubmatch(text)
			meters, dir := atoi(m[1]), m[2]
			switch {
			case vis.Meters == nil && (dir == "" || dir == "NDV"):
				vis.Meters = &meters
				vis.NoDirectionalVariation = dir == "NDV"
			case dir != "" && dir != "NDV" && vis.Minimum == nil:
				vis.Minimum = &DirectionalVisibility{Meters: meters, Direction: dir}
			default:
				errs.addf("Unexpected visibility group %q at offset %d", text, tok.Offset)
			}
		case visMilesRe.MatchString(text):
			m := visMilesRe.FindStringSubmatch(text)
			miles := float64(atoi(m[2]))
			setMiles(&vis, m[1], miles)
		case visFractionRe.MatchString(text):
			m := visFractionRe.FindStringSubmatch(text)
			num, den := atoi(m[2]), atoi(m[3])
			if den == 0 {
				errs.addf("Visibility fraction %q has a zero denominator", text)
				return nil
			}
			miles := float64(num) / float64(den)
			if whole != nil {
				miles += float64(*whole)
				whole = nil
			}
			setMiles(&vis, m[1], miles)
		default:
			errs.addf("Visibility group %q at offset %d is malformed", text, tok.Offset)
			return nil
		}
	}
	if whole != nil {
		errs.addf("Visibility whole miles %d without a fraction", *whole)
		return nil
	}
	return &vis
}

func setMiles(vis *PrevailingVisibility, prefix string, miles float64) {
	vis.StatuteMiles = &miles
	vis.LessThan = prefix == "M"
	vis.GreaterThan = prefix == "P"
}

// decodeRunwayVisualRange decodes each RVR group independently; a malformed
// group is reported and skipped without dropping the others.
func decodeRunwayVisualRange(tokens []RawToken, errs *errorSink, _ Context) *RunwayVisualRange {
	if len(tokens) == 0 {
		return nil
	}

	var rvr RunwayVisualRange
	for _, tok := range tokens {
		m := rvrRe.FindStringSubmatch(tok.Text)
		if m == nil {
			errs.addf("Runway visual range group %q at offset %d is malformed", tok.Text, tok.Offset)
			continue
		}
		rr := RunwayRange{
			Runway:     m[1],
			Visibility: rangeValue(m[2], m[3]),
			Unit:       Meters,
			Tendency:   Tendency(m[7]),
		}
		if m[5] != "" {
			upTo := rangeValue(m[4], m[5])
			rr.VariableUpTo = &upTo
		}
		if m[6] == "FT" {
			rr.Unit = Feet
		}
		rvr.Runways = append(rvr.Runways, rr)
	}
	if len(rvr.Runways) == 0 {
		return nil
	}
	return &rvr
}

func rangeValue(prefix, digits string) RangeValue {
	return RangeValue{Value: atoi(digits), Below: prefix == "M", Above: prefix == "P"}
}
