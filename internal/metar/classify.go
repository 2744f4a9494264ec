package metar

import (
	"regexp"
	"strings"
)

// TokenType is the semantic group a token belongs to.
type TokenType int

const (
	TokenUnknown TokenType = iota
	TokenReportKind
	TokenAirport
	TokenObservationDayTime
	TokenModifier
	TokenSurfaceWind
	TokenPrevailingVisibility
	TokenRunwayVisualRange
	TokenPresentWeather
	TokenCloudLayers
	TokenTemperature
	TokenAltimeterSetting
	TokenRecentWeather
	TokenWindShear
	TokenMotne
	TokenTrend
	TokenRemarks

	tokenTypeCount
)

var tokenTypeNames = [tokenTypeCount]string{
	TokenUnknown:              "Unknown",
	TokenReportKind:           "ReportKind",
	TokenAirport:              "Airport",
	TokenObservationDayTime:   "ObservationDayTime",
	TokenModifier:             "Modifier",
	TokenSurfaceWind:          "SurfaceWind",
	TokenPrevailingVisibility: "PrevailingVisibility",
	TokenRunwayVisualRange:    "RunwayVisualRange",
	TokenPresentWeather:       "PresentWeather",
	TokenCloudLayers:          "CloudLayers",
	TokenTemperature:          "Temperature",
	TokenAltimeterSetting:     "AltimeterSetting",
	TokenRecentWeather:        "RecentWeather",
	TokenWindShear:            "WindShear",
	TokenMotne:                "Motne",
	TokenTrend:                "Trend",
	TokenRemarks:              "Remarks",
}

func (t TokenType) String() string {
	if t < 0 || t >= tokenTypeCount {
		return "TokenType(?)"
	}
	return tokenTypeNames[t]
}

// GroupedTokens maps every TokenType to its tokens in report order. It is
// built once by Classify and only read afterwards; callers must not modify
// the slices returned by Get.
type GroupedTokens struct {
	groups [tokenTypeCount][]RawToken
}

// Get returns the tokens classified as t, or nil when the group is absent.
func (g *GroupedTokens) Get(t TokenType) []RawToken {
	if t < 0 || t >= tokenTypeCount {
		return nil
	}
	return g.groups[t]
}

// Empty reports whether no token was classified into a known group.
// Unknown tokens alone do not make a report.
func (g *GroupedTokens) Empty() bool {
	for t := TokenUnknown + 1; t < tokenTypeCount; t++ {
		if len(g.groups[t]) > 0 {
			return false
		}
	}
	return true
}

func (g *GroupedTokens) add(t TokenType, tok RawToken) {
	g.groups[t] = append(g.groups[t], tok)
}

const (
	descriptorCodes = `MI|PR|BC|DR|BL|SH|TS|FZ`
	phenomenonCodes = `DZ|RA|SN|SG|IC|PL|GR|GS|UP|BR|FG|FU|VA|DU|SA|HZ|PY|PO|SQ|FC|SS|DS`
)

var (
	airportRe       = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,3}$`)
	dayTimeRe       = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})Z?$`)
	strictDayTimeRe = regexp.MustCompile(`^\d{6}Z$`)
	looseDayTimeRe  = regexp.MustCompile(`^\d[0-9A-Z]{2,5}Z$|^\d{6}$`)
	windRe          = regexp.MustCompile(`^(\d{3}|VRB|///)(\d{2,3}|//)(?:G(\d{2,3}))?(KT|MPS|KMH)$`)
	windVariationRe = regexp.MustCompile(`^(\d{3})V(\d{3})$`)
	visMetersRe     = regexp.MustCompile(`^(\d{4})(N|NE|E|SE|S|SW|W|NW|NDV)?$`)
	visMilesRe      = regexp.MustCompile(`^([MP])?(\d{1,2})SM$`)
	visFractionRe   = regexp.MustCompile(`^([MP])?(\d{1,2})/(\d{1,2})SM$`)
	visWholeRe      = regexp.MustCompile(`^\d$`)
	rvrRe           = regexp.MustCompile(`^R(\d{2}[LCR]?)/([PM])?(\d{4})(?:V([PM])?(\d{4}))?(FT)?/?([UDN])?$`)
	runwayStateRe   = regexp.MustCompile(`^R(\d{2}[LCR]?)/(?:([0-9/])([0-9/])([0-9/]{2})([0-9/]{2})|CLRD([0-9/]{2}))$`)
	legacyStateRe   = regexp.MustCompile(`^(\d{2})([0-9/])([0-9/])([0-9/]{2})([0-9/]{2})$`)
	weatherRe       = regexp.MustCompile(`^([+-]|VC)?(` + descriptorCodes + `)?((?:` + phenomenonCodes + `)*)$`)
	recentWeatherRe = regexp.MustCompile(`^RE(` + descriptorCodes + `)?((?:` + phenomenonCodes + `)*)$`)
	cloudRe         = regexp.MustCompile(`^(FEW|SCT|BKN|OVC|///)(\d{3}|///)(CB|TCU|///)?$`)
	verticalVisRe   = regexp.MustCompile(`^VV(\d{3}|///)$`)
	temperatureRe   = regexp.MustCompile(`^(M?\d{2}|//)/(M?\d{2}|//)?$`)
	altimeterRe     = regexp.MustCompile(`^([QA])(\d{4}|////)$`)
	windShearPartRe = regexp.MustCompile(`^(?:ALL|RWY|TKOF|LDG|R\d{2}[LCR]?|RWY\d{2}[LCR]?)$`)
	trendTimeRe     = regexp.MustCompile(`^(FM|TL|AT)(\d{2})(\d{2})$`)
)

// shapeRule assigns kind to tokens whose text satisfies match.
type shapeRule struct {
	kind  TokenType
	match func(text string) bool
}

// groupRules are tried in order, first match wins. Positional groups
// (airport, time, wind shear, trend, remarks) are handled by Classify itself.
var groupRules = []shapeRule{
	{TokenModifier, isModifier},
	{TokenSurfaceWind, windRe.MatchString},
	{TokenSurfaceWind, windVariationRe.MatchString},
	{TokenPrevailingVisibility, isVisibility},
	{TokenRunwayVisualRange, rvrRe.MatchString},
	{TokenMotne, isRunwayState},
	{TokenRecentWeather, isRecentWeather},
	{TokenPresentWeather, isPresentWeather},
	{TokenCloudLayers, isCloud},
	{TokenTemperature, temperatureRe.MatchString},
	{TokenAltimeterSetting, altimeterRe.MatchString},
}

func isModifier(text string) bool {
	switch text {
	case "AUTO", "COR", "NIL":
		return true
	}
	return len(text) == 3 && strings.HasPrefix(text, "CC") && text[2] >= 'A' && text[2] <= 'Z'
}

func isVisibility(text string) bool {
	return text == "CAVOK" || text == "////" ||
		visMetersRe.MatchString(text) ||
		visMilesRe.MatchString(text) ||
		visFractionRe.MatchString(text)
}

func isRunwayState(text string) bool {
	return text == "SNOCLO" || text == "R/SNOCLO" ||
		runwayStateRe.MatchString(text) ||
		legacyStateRe.MatchString(text)
}

func isPresentWeather(text string) bool {
	if text == "//" {
		return true
	}
	m := weatherRe.FindStringSubmatch(text)
	return m != nil && (m[2] != "" || m[3] != "")
}

func isRecentWeather(text string) bool {
	m := recentWeatherRe.FindStringSubmatch(text)
	return m != nil && (m[1] != "" || m[2] != "")
}

func isCloud(text string) bool {
	switch text {
	case "SKC", "NSC", "CLR", "NCD":
		return true
	}
	return cloudRe.MatchString(text) || verticalVisRe.MatchString(text)
}

// isReservedCode reports whether text is a fixed report word that also
// fits the airport shape.
func isReservedCode(text string) bool {
	switch text {
	case "SKC", "NSC", "CLR", "NCD", "AUTO", "COR", "NIL", "WS":
		return true
	}
	return false
}

func isTrendMarker(text string) bool {
	return text == "NOSIG" || text == string(TrendBecoming) || text == string(TrendTemporary)
}

func classifyShape(text string) TokenType {
	for _, r := range groupRules {
		if r.match(text) {
			return r.kind
		}
	}
	return TokenUnknown
}

type section int

const (
	sectionBody section = iota
	sectionTrend
	sectionRemarks
)

// Classify assigns every token to exactly one TokenType.
//
// The report body is matched against groupRules. On top of that the
// classifier tracks where it is in the report: the airport is only accepted
// as the first group, the token right after it is taken as the observation
// time if it looks remotely like one, "WS" pulls in the runway designators
// that follow it, and NOSIG/BECMG/TEMPO and RMK open the trend and remarks
// sections which swallow everything after them. Trend and remarks markers are
// kept in their groups.
func Classify(tokens []RawToken) GroupedTokens {
	var g GroupedTokens
	sec := sectionBody
	seenGroup := false
	last := TokenUnknown

	if n := len(tokens); n > 0 && strings.HasSuffix(tokens[n-1].Text, "=") {
		end := tokens[n-1]
		end.Text = strings.TrimSuffix(end.Text, "=")
		tokens = tokens[: n-1 : n-1]
		if end.Text != "" {
			tokens = append(tokens, end)
		}
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		text := tok.Text

		switch {
		case sec == sectionRemarks:
			g.add(TokenRemarks, tok)
			continue
		case text == "RMK":
			sec = sectionRemarks
			g.add(TokenRemarks, tok)
			continue
		case sec == sectionTrend || isTrendMarker(text):
			sec = sectionTrend
			g.add(TokenTrend, tok)
			continue
		}

		var kind TokenType
		switch {
		case !seenGroup && (text == string(KindMETAR) || text == string(KindSPECI)):
			g.add(TokenReportKind, tok)
			continue
		case !seenGroup && airportRe.MatchString(text) && !isReservedCode(text):
			kind = TokenAirport
		case len(g.groups[TokenObservationDayTime]) == 0 &&
			(strictDayTimeRe.MatchString(text) || (last == TokenAirport && looseDayTimeRe.MatchString(text))):
			kind = TokenObservationDayTime
		case text == "WS":
			g.add(TokenWindShear, tok)
			for i+1 < len(tokens) && windShearPartRe.MatchString(tokens[i+1].Text) {
				i++
				g.add(TokenWindShear, tokens[i])
			}
			seenGroup, last = true, TokenWindShear
			continue
		case visWholeRe.MatchString(text) && i+1 < len(tokens) && visFractionRe.MatchString(tokens[i+1].Text):
			g.add(TokenPrevailingVisibility, tok)
			i++
			g.add(TokenPrevailingVisibility, tokens[i])
			seenGroup, last = true, TokenPrevailingVisibility
			continue
		default:
			kind = classifyShape(text)
		}

		g.add(kind, tok)
		seenGroup, last = true, kind
	}
	return g
}

// classifyForecast groups the body of a trend block. Only weather-group
// shapes apply; positional groups never occur inside a trend.
func classifyForecast(tokens []RawToken) GroupedTokens {
	var g GroupedTokens
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if visWholeRe.MatchString(tok.Text) && i+1 < len(tokens) && visFractionRe.MatchString(tokens[i+1].Text) {
			g.add(TokenPrevailingVisibility, tok)
			i++
			g.add(TokenPrevailingVisibility, tokens[i])
			continue
		}
		g.add(classifyShape(tok.Text), tok)
	}
	return g
}
