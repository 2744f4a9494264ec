package metar

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var march2024 = ForMonth(2024, time.March)

func TestParse_FullReport(t *testing.T) {
	r := Parse("METAR KJFK 211751Z 24010G20KT 180V240 10SM -RA BR FEW020 BKN035 OVC100 12/M02 A2992 RMK AO2 SLP132", march2024)

	assert.NotNil(t, r.ParseErrors)
	assert.Empty(t, r.ParseErrors)

	require.NotNil(t, r.Kind)
	assert.Equal(t, KindMETAR, *r.Kind)
	require.NotNil(t, r.Airport)
	assert.Equal(t, "KJFK", *r.Airport)
	require.NotNil(t, r.ObservationDayTime)
	assert.Equal(t, time.Date(2024, time.March, 21, 17, 51, 0, 0, time.UTC), r.ObservationDayTime.Time)

	require.NotNil(t, r.SurfaceWind)
	assert.Equal(t, intp(240), r.SurfaceWind.Direction)
	assert.Equal(t, intp(20), r.SurfaceWind.Gust)
	assert.Equal(t, intp(180), r.SurfaceWind.VariableFrom)

	require.NotNil(t, r.PrevailingVisibility)
	assert.InDelta(t, 10, *r.PrevailingVisibility.StatuteMiles, 1e-9)

	require.NotNil(t, r.PresentWeather)
	assert.Len(t, r.PresentWeather.Conditions, 2)

	require.NotNil(t, r.Temperature)
	assert.Equal(t, intp(12), r.Temperature.Celsius)
	assert.Equal(t, intp(-2), r.Temperature.DewPointCelsius)

	require.NotNil(t, r.AltimeterSetting)
	assert.Equal(t, InchesOfMercury, r.AltimeterSetting.Unit)

	require.NotNil(t, r.Remarks)
	assert.Equal(t, "AO2 SLP132", *r.Remarks)

	assert.Nil(t, r.Modifier)
	assert.Nil(t, r.RunwayVisualRange)
	assert.Nil(t, r.Trend)
}

func TestParse_CloudOrder(t *testing.T) {
	r := Parse("KJFK 211751Z 24010KT 10SM FEW020 BKN035 OVC100 12/M02 A2992", march2024)

	require.NotNil(t, r.CloudLayers)
	covers := make([]CloudCover, 0, len(r.CloudLayers.Layers))
	for _, l := range r.CloudLayers.Layers {
		covers = append(covers, l.Cover)
	}
	assert.Equal(t, []CloudCover{CoverFew, CoverBroken, CoverOvercast}, covers)
}

func TestParse_NoGroups(t *testing.T) {
	for _, input := range []string{"", "   ", "???? !!!"} {
		t.Run(input, func(t *testing.T) {
			r := Parse(input, march2024)
			assert.Equal(t, Report{ParseErrors: []string{ErrNoGroups}}, r)
		})
	}
}

func TestParse_MissingAirport(t *testing.T) {
	r := Parse("211751Z 24010KT 10SM 12/M02 A2992", march2024)

	assert.Nil(t, r.Airport)
	assert.NotNil(t, r.ObservationDayTime)
	assert.Equal(t, []string{"Airport ICAO code not found"}, r.ParseErrors)
}

func TestParse_MalformedTime(t *testing.T) {
	r := Parse("KJFK 99XXZ 24010KT 10SM 12/M02 A2992", march2024)

	require.NotNil(t, r.Airport)
	assert.Equal(t, "KJFK", *r.Airport)
	assert.Nil(t, r.ObservationDayTime)
	assert.NotNil(t, r.SurfaceWind)
	require.Len(t, r.ParseErrors, 1)
	assert.Contains(t, r.ParseErrors[0], "99XXZ")

	require.NotNil(t, r.Month, "context month survives a bad time group")
	assert.Equal(t, time.March, *r.Month)
}

func TestParse_MonthFromContext(t *testing.T) {
	r := Parse("KJFK 121851Z 24010KT 10SM 12/M02 A2992", ForMonth(2024, time.July))
	require.NotNil(t, r.Month)
	assert.Equal(t, time.July, *r.Month)

	r = Parse("KJFK 24010KT 10SM 12/M02 A2992", Context{Year: 2024})
	assert.Nil(t, r.Month)

	assert.Nil(t, Parse("", march2024).Month)
}

func TestParse_MissingMandatoryGroups(t *testing.T) {
	r := Parse("KJFK 211751Z", march2024)

	assert.Equal(t, []string{
		"Surface wind not found",
		"Prevailing visibility not found",
		"Temperature not found",
		"Altimeter setting not found",
	}, r.ParseErrors)
}

func TestParse_NilReport(t *testing.T) {
	r := Parse("METAR KJFK 211751Z NIL=", march2024)

	assert.True(t, r.IsNil())
	assert.Empty(t, r.ParseErrors)
}

func TestParse_UnknownGroups(t *testing.T) {
	r := Parse("KJFK 211751Z 24010KT 10SM 12/M02 A2992 XYZZY", march2024)

	assert.Equal(t, []string{`Unrecognized group "XYZZY" at offset 39`}, r.ParseErrors)
}

func TestParse_ErrorsFollowFieldOrder(t *testing.T) {
	r := Parse("KJFK 211761Z 40010KT 10SM 12/M02 Q////", march2024)

	require.Len(t, r.ParseErrors, 3)
	assert.Contains(t, r.ParseErrors[0], "minute")
	assert.Contains(t, r.ParseErrors[1], "Surface wind")
	assert.Contains(t, r.ParseErrors[2], "Altimeter")
}

func TestParse_Trend(t *testing.T) {
	r := Parse("EGLL 211750Z 24010KT 9999 FEW020 12/05 Q1013 TEMPO 3000 SHRA", march2024)

	assert.Empty(t, r.ParseErrors)
	require.NotNil(t, r.Trend)
	require.Len(t, r.Trend.Changes, 1)
	assert.Equal(t, TrendTemporary, r.Trend.Changes[0].Kind)
	assert.Equal(t, intp(3000), r.Trend.Changes[0].Visibility.Meters)
}

func TestParse_Idempotent(t *testing.T) {
	const input = "SPECI KJFK 211751Z AUTO 24010G20KT 1 1/2SM R04R/2200FT/U -RA BR BKN008 OVC015 12/11 A2992 RERA WS R04R BECMG 3SM RMK AO2"

	first := Parse(input, march2024)
	second := Parse(input, march2024)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("reparse mismatch (-first +second):\n%s", diff)
	}
}

func TestParse_Concurrent(t *testing.T) {
	const input = "KJFK 211751Z 24010KT 10SM FEW020 12/M02 A2992"
	want := Parse(input, march2024)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, Parse(input, march2024))
		}()
	}
	wg.Wait()
}
