package metar

// decodeCloudLayers decodes cloud groups in report order. Vertical visibility
// and the no-cloud codes share the group with regular layers.
func decodeCloudLayers(tokens []RawToken, errs *errorSink, _ Context) *CloudLayers {
	if len(tokens) == 0 {
		return nil
	}

	var clouds CloudLayers
	valid := false
	for _, tok := range tokens {
		text := tok.Text
		switch text {
		case "SKC", "NSC", "CLR", "NCD":
			clouds.NoCloud = text
			valid = true
			continue
		}
		if m := verticalVisRe.FindStringSubmatch(text); m != nil {
			if clouds.VerticalVisibilityFeet != nil || clouds.SkyObscured {
				errs.addf("Duplicate vertical visibility group %q at offset %d", text, tok.Offset)
				continue
			}
			clouds.SkyObscured = true
			if h := optionalInt(m[1]); h != nil {
				feet := *h * 100
				clouds.VerticalVisibilityFeet = &feet
			}
			valid = true
			continue
		}
		m := cloudRe.FindStringSubmatch(text)
		if m == nil {
			errs.addf("Cloud group %q at offset %d is malformed", text, tok.Offset)
			continue
		}
		layer := CloudLayer{Cover: CloudCover(m[1])}
		if h := optionalInt(m[2]); h != nil {
			feet := *h * 100
			layer.HeightFeet = &feet
		}
		if m[3] != "///" {
			layer.Convective = m[3]
		}
		clouds.Layers = append(clouds.Layers, layer)
		valid = true
	}
	if !valid {
		return nil
	}
	if clouds.NoCloud != "" && len(clouds.Layers) > 0 {
		errs.addf("Cloud layers reported together with %s", clouds.NoCloud)
	}
	return &clouds
}
