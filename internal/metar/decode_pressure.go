package metar

import "strings"

// signedTemp decodes "M05" as -5. "//" yields nil.
func signedTemp(s string) *int {
	neg := strings.HasPrefix(s, "M")
	v := optionalInt(strings.TrimPrefix(s, "M"))
	if v != nil && neg {
		*v = -*v
	}
	return v
}

func decodeTemperature(tokens []RawToken, errs *errorSink, _ Context) *TemperatureInfo {
	if len(tokens) == 0 {
		return nil
	}
	if len(tokens) > 1 {
		errs.addf("Multiple temperature groups found, using %q", tokens[0].Text)
	}
	tok := tokens[0]
	m := temperatureRe.FindStringSubmatch(tok.Text)
	if m == nil {
		errs.addf("Temperature group %q at offset %d is malformed", tok.Text, tok.Offset)
		return nil
	}
	info := TemperatureInfo{Celsius: signedTemp(m[1])}
	if m[2] != "" {
		info.DewPointCelsius = signedTemp(m[2])
	}
	if info.Celsius != nil && info.DewPointCelsius != nil && *info.DewPointCelsius > *info.Celsius {
		errs.addf("Dew point %d exceeds temperature %d in %q", *info.DewPointCelsius, *info.Celsius, tok.Text)
	}
	return &info
}

// decodeAltimeterSetting decodes QNH as Qpppp (hPa) or Aiiii (hundredths of inHg).
// When both are reported the first one wins.
func decodeAltimeterSetting(tokens []RawToken, errs *errorSink, _ Context) *AltimeterSetting {
	if len(tokens) == 0 {
		return nil
	}
	for _, tok := range tokens {
		m := altimeterRe.FindStringSubmatch(tok.Text)
		if m == nil {
			errs.addf("Altimeter setting %q at offset %d is malformed", tok.Text, tok.Offset)
			continue
		}
		v := optionalInt(m[2])
		if v == nil {
			errs.addf("Altimeter setting %q was not reported", tok.Text)
			continue
		}
		if m[1] == "A" {
			return &AltimeterSetting{Value: float64(*v) / 100, Unit: InchesOfMercury}
		}
		return &AltimeterSetting{Value: float64(*v), Unit: Hectopascals}
	}
	return nil
}
