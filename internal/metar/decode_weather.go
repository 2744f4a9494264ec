package metar

import "strings"

// splitPhenomena cuts a run of two-letter codes such as "RAGR".
func splitPhenomena(codes string) []string {
	if codes == "" {
		return nil
	}
	out := make([]string, 0, len(codes)/2)
	for i := 0; i+1 < len(codes); i += 2 {
		out = append(out, codes[i:i+2])
	}
	return out
}

func parseWeather(text string) (WeatherPhenomenon, bool) {
	if text == "//" {
		return WeatherPhenomenon{NotObserved: true}, true
	}
	m := weatherRe.FindStringSubmatch(text)
	if m == nil || (m[2] == "" && m[3] == "") {
		return WeatherPhenomenon{}, false
	}
	return WeatherPhenomenon{
		Intensity:  Intensity(m[1]),
		Descriptor: m[2],
		Phenomena:  splitPhenomena(m[3]),
	}, true
}

func decodePresentWeather(tokens []RawToken, errs *errorSink, _ Context) *PresentWeather {
	if len(tokens) == 0 {
		return nil
	}
	var pw PresentWeather
	for _, tok := range tokens {
		w, ok := parseWeather(tok.Text)
		if !ok {
			errs.addf("Present weather group %q at offset %d is malformed", tok.Text, tok.Offset)
			continue
		}
		pw.Conditions = append(pw.Conditions, w)
	}
	if len(pw.Conditions) == 0 {
		return nil
	}
	return &pw
}

func decodeRecentWeather(tokens []RawToken, errs *errorSink, _ Context) *RecentWeather {
	if len(tokens) == 0 {
		return nil
	}
	var rw RecentWeather
	for _, tok := range tokens {
		code, ok := strings.CutPrefix(tok.Text, "RE")
		var w WeatherPhenomenon
		if ok {
			w, ok = parseWeather(code)
		}
		if !ok || w.Intensity != IntensityModerate || w.NotObserved {
			errs.addf("Recent weather group %q at offset %d is malformed", tok.Text, tok.Offset)
			continue
		}
		rw.Conditions = append(rw.Conditions, w)
	}
	if len(rw.Conditions) == 0 {
		return nil
	}
	return &rw
}
