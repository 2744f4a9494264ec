package metar

import "strings"

// decodeTrend splits the trend section at its markers and decodes each BECMG
// or TEMPO block with the regular field decoders. Errors from a block are
// reported with a "Trend: " prefix.
func decodeTrend(tokens []RawToken, errs *errorSink, ctx Context) *Trend {
	if len(tokens) == 0 {
		return nil
	}

	var trend Trend
	var blocks [][]RawToken
	for _, tok := range tokens {
		switch tok.Text {
		case "NOSIG":
			trend.NoSignificantChange = true
			continue
		case string(TrendBecoming), string(TrendTemporary):
			blocks = append(blocks, []RawToken{tok})
			continue
		}
		if len(blocks) == 0 {
			errs.addf("Trend group %q at offset %d has no change indicator", tok.Text, tok.Offset)
			continue
		}
		last := len(blocks) - 1
		blocks[last] = append(blocks[last], tok)
	}

	for _, block := range blocks {
		var sub errorSink
		change := decodeTrendChange(block, &sub, ctx)
		errs.merge("Trend: ", &sub)
		trend.Changes = append(trend.Changes, change)
	}
	if trend.NoSignificantChange && len(trend.Changes) > 0 {
		errs.add("Trend: NOSIG reported together with change groups")
	}
	return &trend
}

func decodeTrendChange(block []RawToken, errs *errorSink, ctx Context) TrendChange {
	change := TrendChange{Kind: TrendKind(block[0].Text)}
	rest := block[1:]

	for len(rest) > 0 {
		m := trendTimeRe.FindStringSubmatch(rest[0].Text)
		if m == nil {
			break
		}
		t, ok := trendTime(m[2], m[3])
		if !ok {
			errs.addf("%s time %q at offset %d is out of range", change.Kind, rest[0].Text, rest[0].Offset)
		} else {
			switch m[1] {
			case "FM":
				change.From = t
			case "TL":
				change.Until = t
			case "AT":
				change.At = t
			}
		}
		rest = rest[1:]
	}

	body := make([]RawToken, 0, len(rest))
	for _, tok := range rest {
		if tok.Text == "NSW" {
			change.NoSignificantWeather = true
			continue
		}
		body = append(body, tok)
	}

	g := classifyForecast(body)
	change.SurfaceWind = decodeSurfaceWind(g.Get(TokenSurfaceWind), errs, ctx)
	change.Visibility = decodePrevailingVisibility(g.Get(TokenPrevailingVisibility), errs, ctx)
	change.Weather = decodePresentWeather(g.Get(TokenPresentWeather), errs, ctx)
	change.Clouds = decodeCloudLayers(g.Get(TokenCloudLayers), errs, ctx)

	for t := TokenUnknown; t < tokenTypeCount; t++ {
		switch t {
		case TokenSurfaceWind, TokenPrevailingVisibility, TokenPresentWeather, TokenCloudLayers:
			continue
		}
		for _, tok := range g.Get(t) {
			errs.addf("%s group %q at offset %d is not allowed in a trend", change.Kind, tok.Text, tok.Offset)
		}
	}
	return change
}

// trendTime accepts HHMM with 2400 allowed for end of day.
func trendTime(hh, mm string) (*TimeOfDay, bool) {
	h, m := atoi(hh), atoi(mm)
	if h > 24 || m > 59 || (h == 24 && m != 0) {
		return nil, false
	}
	return &TimeOfDay{Hour: h, Minute: m}, true
}

// decodeRemarks returns the free text after RMK, without the marker.
func decodeRemarks(tokens []RawToken, _ *errorSink, _ Context) *string {
	if len(tokens) == 0 {
		return nil
	}
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Text == "RMK" && len(parts) == 0 {
			continue
		}
		parts = append(parts, tok.Text)
	}
	text := strings.Join(parts, " ")
	return &text
}
