package view_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/weather-dashboard/internal/dashboard"
	"github.com/neexbeast/weather-dashboard/internal/view"
	"github.com/neexbeast/weather-dashboard/internal/weather"
)

func TestIcon(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{1000, "fas fa-sun"},
		{1003, "fas fa-cloud-sun"},
		{1135, "fas fa-smog"},
		{1186, "fas fa-cloud-sun-rain"},
		{1225, "fas fa-snowflake"},
		{1282, "fas fa-bolt"},
		{9999, "fas fa-cloud"},
		{0, "fas fa-cloud"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, view.Icon(tc.code), "code %d", tc.code)
	}
}

func TestAirQualityBand(t *testing.T) {
	tests := []struct {
		index int
		want  view.Band
	}{
		{1, view.Band{Label: "Good", Color: "#00e400"}},
		{2, view.Band{Label: "Moderate", Color: "#ffff00"}},
		{3, view.Band{Label: "Unhealthy for Sensitive", Color: "#ff7e00"}},
		{4, view.Band{Label: "Unhealthy", Color: "#ff0000"}},
		{5, view.Band{Label: "Very Unhealthy", Color: "#8f3f97"}},
		{6, view.Band{Label: "Hazardous", Color: "#7e0023"}},
		{0, view.UnknownBand},
		{7, view.UnknownBand},
		{-1, view.UnknownBand},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, view.AirQualityBand(tc.index), "index %d", tc.index)
	}
}

func TestRound(t *testing.T) {
	assert.Equal(t, 15, view.Round(14.5))
	assert.Equal(t, 14, view.Round(14.49))
	assert.Equal(t, -2, view.Round(-2.5))
	assert.Equal(t, -3, view.Round(-2.51))
}

// ---- rendering ----

func newRenderer(t *testing.T) *view.Renderer {
	t.Helper()
	r, err := view.New()
	require.NoError(t, err)
	return r.WithClock(func() time.Time {
		return time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC)
	})
}

func render(t *testing.T, s dashboard.State) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, newRenderer(t).Render(&buf, s))
	return buf.String()
}

func readyState(v dashboard.View) dashboard.State {
	day := func(d int) weather.ForecastDay {
		return weather.ForecastDay{
			Date:          time.Date(2025, time.March, 14+d, 0, 0, 0, 0, time.UTC),
			MaxTempC:      12.6,
			MinTempC:      4.4,
			AvgHumidity:   81,
			MaxWindKph:    22.3,
			TotalPrecipMm: 1.2,
			Condition:     weather.Condition{Code: 1063, Text: "Patchy rain possible"},
		}
	}
	return dashboard.State{
		Place: "London",
		View:  v,
		Seq:   1,
		Status: dashboard.Status{
			Phase: dashboard.PhaseReady,
			Data: &weather.AggregatedWeather{
				Current: weather.CurrentConditions{
					Place:        weather.Place{Name: "London", Region: "City of London, Greater London", Country: "United Kingdom"},
					TempC:        14.5,
					FeelsLikeC:   13.2,
					Humidity:     72,
					WindKph:      15.1,
					PressureMb:   1012,
					VisibilityKm: 10,
					UV:           3,
					PrecipMm:     0.1,
					Condition:    weather.Condition{Code: 1003, Text: "Partly cloudy"},
				},
				Forecast:   []weather.ForecastDay{day(0), day(1)},
				AirQuality: &weather.AirQualitySample{Index: 2, PM25: 8.14, PM10: 12.5, O3: 60.04},
				Astronomy:  &weather.AstronomyInfo{Sunrise: "06:12 AM", Sunset: "06:03 PM", MoonPhase: "Waxing Gibbous"},
				Alerts: []weather.WeatherAlert{
					{Headline: "Wind warning", Description: "Gusts up to 60 mph"},
					{Headline: "Flood alert", Description: "River levels rising"},
					{Headline: "Fog advisory", Description: "Low visibility"},
				},
			},
		},
	}
}

func TestRender_Loading(t *testing.T) {
	html := render(t, dashboard.State{Place: "London", View: dashboard.ViewCurrent, Status: dashboard.Status{Phase: dashboard.PhaseLoading}})

	assert.Contains(t, html, "Loading weather data...")
	assert.Contains(t, html, `http-equiv="refresh"`)
	assert.Contains(t, html, `name="q"`)
	assert.NotContains(t, html, "tab-navigation")
}

func TestRender_Error(t *testing.T) {
	html := render(t, dashboard.State{
		View:   dashboard.ViewCurrent,
		Status: dashboard.Status{Phase: dashboard.PhaseError, Message: "Invalid location. Please try a different city name."},
	})

	assert.Contains(t, html, "Invalid location. Please try a different city name.")
	assert.Contains(t, html, "error-container")
	assert.NotContains(t, html, "Loading weather data...")
	assert.NotContains(t, html, `http-equiv="refresh"`)
}

func TestRender_ErrorMessageIsEscaped(t *testing.T) {
	html := render(t, dashboard.State{
		View:   dashboard.ViewCurrent,
		Status: dashboard.Status{Phase: dashboard.PhaseError, Message: "API Error (500): <script>x</script>"},
	})
	assert.NotContains(t, html, "<script>x</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRender_CurrentTab(t *testing.T) {
	html := render(t, readyState(dashboard.ViewCurrent))

	assert.Contains(t, html, "Weather Alerts (3)")
	assert.Contains(t, html, "Wind warning")
	assert.Contains(t, html, "Flood alert")
	assert.NotContains(t, html, "Fog advisory", "only the first two alerts are listed")

	assert.Contains(t, html, "London, United Kingdom")
	assert.Contains(t, html, "City of London, Greater London, Friday, March 14, 2025")
	assert.Contains(t, html, `<span class="temp-value">15</span>`)
	assert.Contains(t, html, "Feels like 13°C")
	assert.Contains(t, html, `class="fas fa-cloud-sun"`)

	assert.Contains(t, html, `<span class="aqi-label">Moderate</span>`)
	assert.Contains(t, html, "#ffff00")
	assert.Contains(t, html, "PM2.5: 8.1")
	assert.Contains(t, html, "O₃: 60.0")

	assert.Contains(t, html, "Sunrise: 06:12 AM")
	assert.Contains(t, html, "Moon Phase: Waxing Gibbous")

	assert.Contains(t, html, "72%")
	assert.Contains(t, html, "15.1 km/h")
	assert.Contains(t, html, "1012 mb")
	assert.Contains(t, html, "0.1 mm")

	assert.Contains(t, html, `value="current" class="tab-button active"`)
	assert.NotContains(t, html, "14-Day Weather Forecast")
}

func TestRender_CurrentTabWithoutOptionalSections(t *testing.T) {
	s := readyState(dashboard.ViewCurrent)
	s.Status.Data.AirQuality = nil
	s.Status.Data.Astronomy = nil
	s.Status.Data.Alerts = []weather.WeatherAlert{}
	s.Status.Data.Current.Place.Region = ""

	html := render(t, s)
	assert.NotContains(t, html, "air-quality-section")
	assert.NotContains(t, html, "astronomy-section")
	assert.NotContains(t, html, "weather-alerts")
	assert.Contains(t, html, `<p class="location-details">Friday, March 14, 2025</p>`)
}

func TestRender_UnknownAirQuality(t *testing.T) {
	s := readyState(dashboard.ViewCurrent)
	s.Status.Data.AirQuality.Index = 9

	html := render(t, s)
	assert.Contains(t, html, `<span class="aqi-label">Unknown</span>`)
}

func TestRender_ForecastTab(t *testing.T) {
	html := render(t, readyState(dashboard.ViewForecast))

	assert.Contains(t, html, "14-Day Weather Forecast")
	assert.Equal(t, 2, bytes.Count([]byte(html), []byte(`class="forecast-day-extended"`)))
	assert.Contains(t, html, "Friday, Mar 14")
	assert.Contains(t, html, "Saturday, Mar 15")
	assert.Contains(t, html, `<span class="forecast-high">13°</span>`)
	assert.Contains(t, html, `<span class="forecast-low">4°</span>`)
	assert.Contains(t, html, "22.3 km/h")
	assert.Contains(t, html, "1.2mm")
	assert.Contains(t, html, `value="forecast" class="tab-button active"`)
	assert.NotContains(t, html, "weather-alerts")
}
