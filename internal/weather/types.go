package weather

import (
	"strings"
	"time"
)

// MaxForecastDays is the longest forecast the dashboard shows.
const MaxForecastDays = 14

// Place identifies where a reading was taken, as reported by the provider.
type Place struct {
	Name    string `json:"name"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

// Condition is the provider's numeric condition code with its text label.
type Condition struct {
	Code int    `json:"code"`
	Text string `json:"text"`
}

// CurrentConditions is a snapshot of the weather at a place.
type CurrentConditions struct {
	Place        Place     `json:"place"`
	TempC        float64   `json:"temp_c"`
	FeelsLikeC   float64   `json:"feelslike_c"`
	Humidity     int       `json:"humidity"`
	WindKph      float64   `json:"wind_kph"`
	PressureMb   float64   `json:"pressure_mb"`
	VisibilityKm float64   `json:"vis_km"`
	UV           float64   `json:"uv"`
	PrecipMm     float64   `json:"precip_mm"`
	Condition    Condition `json:"condition"`
}

// ForecastDay is one day's outlook.
type ForecastDay struct {
	Date          time.Time `json:"date"`
	MaxTempC      float64   `json:"maxtemp_c"`
	MinTempC      float64   `json:"mintemp_c"`
	AvgHumidity   float64   `json:"avghumidity"`
	MaxWindKph    float64   `json:"maxwind_kph"`
	TotalPrecipMm float64   `json:"totalprecip_mm"`
	Condition     Condition `json:"condition"`
}

// AirQualitySample holds pollutant levels. Index is the US-EPA ordinal (1-6).
type AirQualitySample struct {
	Index int     `json:"us_epa_index"`
	PM25  float64 `json:"pm2_5"`
	PM10  float64 `json:"pm10"`
	O3    float64 `json:"o3"`
}

// AstronomyInfo holds solar and lunar timing, formatted by the provider.
type AstronomyInfo struct {
	Sunrise   string `json:"sunrise"`
	Sunset    string `json:"sunset"`
	MoonPhase string `json:"moon_phase"`
}

// WeatherAlert is a hazard notice.
type WeatherAlert struct {
	Headline    string `json:"headline"`
	Description string `json:"desc"`
}

// AggregatedWeather is the result of one successful search. It is only built
// when every request of the batch succeeded.
type AggregatedWeather struct {
	Current    CurrentConditions `json:"current"`
	Forecast   []ForecastDay     `json:"forecast"`
	AirQuality *AirQualitySample `json:"air_quality,omitempty"`
	Astronomy  *AstronomyInfo    `json:"astronomy,omitempty"`
	Alerts     []WeatherAlert    `json:"alerts"`
}

// NormalizePlace trims user input. ok is false when nothing is left to search for.
func NormalizePlace(input string) (place string, ok bool) {
	place = strings.TrimSpace(input)
	return place, place != ""
}
