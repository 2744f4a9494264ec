package metar

// decodeSurfaceWind decodes the wind group and an optional dddVddd sector.
func decodeSurfaceWind(tokens []RawToken, errs *errorSink, _ Context) *SurfaceWind {
	if len(tokens) == 0 {
		return nil
	}

	main := tokens[0]
	m := windRe.FindStringSubmatch(main.Text)
	if m == nil {
		errs.addf("Surface wind group %q at offset %d is malformed", main.Text, main.Offset)
		return nil
	}

	wind := SurfaceWind{Unit: SpeedUnit(m[4])}
	switch dir := m[1]; dir {
	case "VRB":
		wind.Variable = true
	case "///":
	default:
		d := atoi(dir)
		if d > 360 {
			errs.addf("Surface wind direction %d in %q is out of range", d, main.Text)
			return nil
		}
		wind.Direction = &d
	}
	wind.Speed = optionalInt(m[2])
	if m[3] != "" {
		gust := atoi(m[3])
		wind.Gust = &gust
	}
	wind.Calm = wind.Direction != nil && *wind.Direction == 0 &&
		wind.Speed != nil && *wind.Speed == 0 && wind.Gust == nil

	for _, tok := range tokens[1:] {
		v := windVariationRe.FindStringSubmatch(tok.Text)
		if v == nil {
			errs.addf("Unexpected surface wind group %q at offset %d", tok.Text, tok.Offset)
			continue
		}
		from, to := atoi(v[1]), atoi(v[2])
		if from > 360 || to > 360 {
			errs.addf("Variable wind sector %q is out of range", tok.Text)
			continue
		}
		wind.VariableFrom, wind.VariableTo = &from, &to
	}
	return &wind
}
