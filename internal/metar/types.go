package metar

import "time"

// ReportKind distinguishes routine reports from special ones.
type ReportKind string

const (
	KindMETAR ReportKind = "METAR"
	KindSPECI ReportKind = "SPECI"
)

// Modifier qualifies how the report was produced.
type Modifier string

const (
	ModifierAuto      Modifier = "AUTO" // fully automated observation
	ModifierCorrected Modifier = "COR"  // correction of an earlier report (COR, CCA, CCB, ...)
	ModifierNil       Modifier = "NIL"  // report missing
)

// ObservationDayTime is the decoded DDHHMMZ group resolved to a UTC instant.
type ObservationDayTime struct {
	Day    int       `json:"day"`
	Hour   int       `json:"hour"`
	Minute int       `json:"minute"`
	Time   time.Time `json:"time"`
}

// SpeedUnit is the unit of wind speeds in a report.
type SpeedUnit string

const (
	Knots             SpeedUnit = "KT"
	MetersPerSecond   SpeedUnit = "MPS"
	KilometersPerHour SpeedUnit = "KMH"
)

// SurfaceWind holds the wind group and the optional variable-direction sector.
type SurfaceWind struct {
	Direction    *int      `json:"direction,omitempty"` // degrees true; nil when variable or not reported
	Variable     bool      `json:"variable,omitempty"`
	Calm         bool      `json:"calm,omitempty"`
	Speed        *int      `json:"speed,omitempty"` // nil when not reported
	Gust         *int      `json:"gust,omitempty"`
	Unit         SpeedUnit `json:"unit"`
	VariableFrom *int      `json:"variable_from,omitempty"`
	VariableTo   *int      `json:"variable_to,omitempty"`
}

// DirectionalVisibility is a minimum visibility reported towards one direction.
type DirectionalVisibility struct {
	Meters    int    `json:"meters"`
	Direction string `json:"direction"`
}

// PrevailingVisibility holds either metric or statute-mile visibility.
type PrevailingVisibility struct {
	Meters                 *int                   `json:"meters,omitempty"`
	StatuteMiles           *float64               `json:"statute_miles,omitempty"`
	LessThan               bool                   `json:"less_than,omitempty"`
	GreaterThan            bool                   `json:"greater_than,omitempty"`
	CAVOK                  bool                   `json:"cavok,omitempty"`
	NoDirectionalVariation bool                   `json:"ndv,omitempty"`
	Minimum                *DirectionalVisibility `json:"minimum,omitempty"`
}

// DistanceUnit is the unit of a runway visual range.
type DistanceUnit string

const (
	Meters DistanceUnit = "m"
	Feet   DistanceUnit = "ft"
)

// Tendency is the RVR trend over the last ten minutes.
type Tendency string

const (
	TendencyNone     Tendency = ""
	TendencyUpward   Tendency = "U"
	TendencyDownward Tendency = "D"
	TendencyNoChange Tendency = "N"
)

// RangeValue is one RVR reading; Below and Above mirror the M and P prefixes.
type RangeValue struct {
	Value int  `json:"value"`
	Below bool `json:"below,omitempty"`
	Above bool `json:"above,omitempty"`
}

// RunwayRange is the visual range reported for one runway.
type RunwayRange struct {
	Runway       string       `json:"runway"`
	Visibility   RangeValue   `json:"visibility"`
	VariableUpTo *RangeValue  `json:"variable_up_to,omitempty"`
	Unit         DistanceUnit `json:"unit"`
	Tendency     Tendency     `json:"tendency,omitempty"`
}

// RunwayVisualRange lists RVR groups in report order.
type RunwayVisualRange struct {
	Runways []RunwayRange `json:"runways"`
}

// Intensity qualifies a weather phenomenon.
type Intensity string

const (
	IntensityModerate Intensity = ""
	IntensityLight    Intensity = "-"
	IntensityHeavy    Intensity = "+"
	IntensityVicinity Intensity = "VC"
)

// WeatherPhenomenon is one decoded weather group such as "+TSRA".
type WeatherPhenomenon struct {
	Intensity   Intensity `json:"intensity,omitempty"`
	Descriptor  string    `json:"descriptor,omitempty"`
	Phenomena   []string  `json:"phenomena,omitempty"`
	NotObserved bool      `json:"not_observed,omitempty"` // "//" from automated stations
}

// PresentWeather lists weather groups in report order.
type PresentWeather struct {
	Conditions []WeatherPhenomenon `json:"conditions"`
}

// RecentWeather lists RE-prefixed weather groups in report order.
type RecentWeather struct {
	Conditions []WeatherPhenomenon `json:"conditions"`
}

// CloudCover is the amount of sky covered by a layer.
type CloudCover string

const (
	CoverFew       CloudCover = "FEW"
	CoverScattered CloudCover = "SCT"
	CoverBroken    CloudCover = "BKN"
	CoverOvercast  CloudCover = "OVC"
	CoverUnknown   CloudCover = "///"
)

// CloudLayer is one cloud group. HeightFeet is above ground level.
type CloudLayer struct {
	Cover      CloudCover `json:"cover"`
	HeightFeet *int       `json:"height_ft,omitempty"`
	Convective string     `json:"convective,omitempty"` // CB or TCU
}

// CloudLayers lists layers in report order. NoCloud carries SKC, NSC, CLR or NCD.
type CloudLayers struct {
	Layers                 []CloudLayer `json:"layers,omitempty"`
	VerticalVisibilityFeet *int         `json:"vertical_visibility_ft,omitempty"`
	SkyObscured            bool         `json:"sky_obscured,omitempty"`
	NoCloud                string       `json:"no_cloud,omitempty"`
}

// TemperatureInfo holds air temperature and dew point in whole degrees Celsius.
type TemperatureInfo struct {
	Celsius         *int `json:"celsius,omitempty"`
	DewPointCelsius *int `json:"dew_point_celsius,omitempty"`
}

// PressureUnit is the unit of the altimeter setting.
type PressureUnit string

const (
	Hectopascals    PressureUnit = "hPa"
	InchesOfMercury PressureUnit = "inHg"
)

// AltimeterSetting is QNH in the unit the station reported.
type AltimeterSetting struct {
	Value float64      `json:"value"`
	Unit  PressureUnit `json:"unit"`
}

// WindShearRunway is a runway affected by wind shear. Phase is TKOF, LDG or empty.
type WindShearRunway struct {
	Runway string `json:"runway"`
	Phase  string `json:"phase,omitempty"`
}

// WindShear lists wind shear warnings.
type WindShear struct {
	AllRunways bool              `json:"all_runways,omitempty"`
	Runways    []WindShearRunway `json:"runways,omitempty"`
}

// RunwayCondition is one runway state group. The codes follow the ICAO
// runway state tables; nil means the digit was reported as "/".
type RunwayCondition struct {
	Runway        string `json:"runway"`
	Deposit       *int   `json:"deposit,omitempty"`
	Contamination *int   `json:"contamination,omitempty"`
	DepthCode     *int   `json:"depth_code,omitempty"`
	FrictionCode  *int   `json:"friction_code,omitempty"`
	Cleared       bool   `json:"cleared,omitempty"`
}

// Motne holds runway state groups. AerodromeClosed is set by SNOCLO.
type Motne struct {
	Runways         []RunwayCondition `json:"runways,omitempty"`
	AerodromeClosed bool              `json:"aerodrome_closed,omitempty"`
}

// TrendKind is the change indicator of a trend block.
type TrendKind string

const (
	TrendBecoming  TrendKind = "BECMG"
	TrendTemporary TrendKind = "TEMPO"
)

// TimeOfDay is an HHMM time in UTC; Hour may be 24 for end-of-day.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// TrendChange is one BECMG or TEMPO block.
type TrendChange struct {
	Kind                 TrendKind             `json:"kind"`
	From                 *TimeOfDay            `json:"from,omitempty"`
	Until                *TimeOfDay            `json:"until,omitempty"`
	At                   *TimeOfDay            `json:"at,omitempty"`
	SurfaceWind          *SurfaceWind          `json:"surface_wind,omitempty"`
	Visibility           *PrevailingVisibility `json:"visibility,omitempty"`
	Weather              *PresentWeather       `json:"weather,omitempty"`
	NoSignificantWeather bool                  `json:"nsw,omitempty"`
	Clouds               *CloudLayers          `json:"clouds,omitempty"`
}

// Trend is the landing forecast appended to the report.
type Trend struct {
	NoSignificantChange bool          `json:"nosig,omitempty"`
	Changes             []TrendChange `json:"changes,omitempty"`
}
