package metar

import "time"

// Report is a decoded METAR. Every field except ParseErrors may be nil when
// the group was absent or could not be decoded.
type Report struct {
	Kind                 *ReportKind           `json:"kind,omitempty"`
	Airport              *string               `json:"airport,omitempty"`
	ObservationDayTime   *ObservationDayTime   `json:"observation,omitempty"`
	Modifier             *Modifier             `json:"modifier,omitempty"`
	SurfaceWind          *SurfaceWind          `json:"surface_wind,omitempty"`
	PrevailingVisibility *PrevailingVisibility `json:"visibility,omitempty"`
	RunwayVisualRange    *RunwayVisualRange    `json:"runway_visual_range,omitempty"`
	PresentWeather       *PresentWeather       `json:"present_weather,omitempty"`
	CloudLayers          *CloudLayers          `json:"clouds,omitempty"`
	Temperature          *TemperatureInfo      `json:"temperature,omitempty"`
	AltimeterSetting     *AltimeterSetting     `json:"altimeter,omitempty"`
	RecentWeather        *RecentWeather        `json:"recent_weather,omitempty"`
	WindShear            *WindShear            `json:"wind_shear,omitempty"`
	Motne                *Motne                `json:"runway_state,omitempty"`
	Trend                *Trend                `json:"trend,omitempty"`
	Remarks              *string               `json:"remarks,omitempty"`

	// Month is the month the report was decoded against. It is kept even
	// when the observation time could not be decoded.
	Month *time.Month `json:"month,omitempty"`

	ParseErrors []string `json:"parse_errors"`
}

// ErrNoGroups is the only entry of ParseErrors when the input contained
// nothing recognisable.
const ErrNoGroups = "No groups found"

// requiredGroups are reported as missing unless the report is NIL.
var requiredGroups = []struct {
	kind TokenType
	name string
}{
	{TokenSurfaceWind, "Surface wind"},
	{TokenPrevailingVisibility, "Prevailing visibility"},
	{TokenTemperature, "Temperature"},
	{TokenAltimeterSetting, "Altimeter setting"},
}

// Parse decodes report. It never fails: problems with individual groups are
// listed in Report.ParseErrors and the affected fields are left nil. Parse
// keeps no state between calls and is safe for concurrent use.
func Parse(report string, ctx Context) Report {
	g := Classify(Tokenize(report))
	if g.Empty() {
		return Report{ParseErrors: []string{ErrNoGroups}}
	}

	var errs errorSink
	r := Report{
		Kind:               decodeReportKind(g.Get(TokenReportKind), &errs, ctx),
		Airport:            decodeAirport(g.Get(TokenAirport), &errs, ctx),
		ObservationDayTime: decodeObservationDayTime(g.Get(TokenObservationDayTime), &errs, ctx),
		Modifier:           decodeModifier(g.Get(TokenModifier), &errs, ctx),
		Month:              contextMonth(ctx),
	}
	r.SurfaceWind = decodeSurfaceWind(g.Get(TokenSurfaceWind), &errs, ctx)
	r.PrevailingVisibility = decodePrevailingVisibility(g.Get(TokenPrevailingVisibility), &errs, ctx)
	r.RunwayVisualRange = decodeRunwayVisualRange(g.Get(TokenRunwayVisualRange), &errs, ctx)
	r.PresentWeather = decodePresentWeather(g.Get(TokenPresentWeather), &errs, ctx)
	r.CloudLayers = decodeCloudLayers(g.Get(TokenCloudLayers), &errs, ctx)
	r.Temperature = decodeTemperature(g.Get(TokenTemperature), &errs, ctx)
	r.AltimeterSetting = decodeAltimeterSetting(g.Get(TokenAltimeterSetting), &errs, ctx)
	r.RecentWeather = decodeRecentWeather(g.Get(TokenRecentWeather), &errs, ctx)
	r.WindShear = decodeWindShear(g.Get(TokenWindShear), &errs, ctx)
	r.Motne = decodeMotne(g.Get(TokenMotne), &errs, ctx)
	r.Trend = decodeTrend(g.Get(TokenTrend), &errs, ctx)
	r.Remarks = decodeRemarks(g.Get(TokenRemarks), &errs, ctx)

	if r.Modifier == nil || *r.Modifier != ModifierNil {
		for _, req := range requiredGroups {
			if len(g.Get(req.kind)) == 0 {
				errs.addf("%s not found", req.name)
			}
		}
	}
	for _, tok := range g.Get(TokenUnknown) {
		errs.addf("Unrecognized group %q at offset %d", tok.Text, tok.Offset)
	}

	r.ParseErrors = errs.freeze()
	return r
}

// IsNil reports whether the station sent a NIL report.
func (r *Report) IsNil() bool {
	return r.Modifier != nil && *r.Modifier == ModifierNil
}

// contextMonth returns the context month, or nil when it is not a calendar month.
func contextMonth(ctx Context) *time.Month {
	if ctx.Month < time.January || ctx.Month > time.December {
		return nil
	}
	m := ctx.Month
	return &m
}
