package weather

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Wire shapes of the WeatherAPI.com responses the dashboard reads.

type apiCondition struct {
	Text string `json:"text"`
	Code int    `json:"code"`
}

type apiLocation struct {
	Name    string `json:"name"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

type apiAirQuality struct {
	USEPAIndex int     `json:"us-epa-index"`
	PM25       float64 `json:"pm2_5"`
	PM10       float64 `json:"pm10"`
	O3         float64 `json:"o3"`
}

type apiCurrent struct {
	TempC      float64        `json:"temp_c"`
	FeelsLikeC float64        `json:"feelslike_c"`
	Humidity   int            `json:"humidity"`
	WindKph    float64        `json:"wind_kph"`
	PressureMb float64        `json:"pressure_mb"`
	VisKm      float64        `json:"vis_km"`
	UV         float64        `json:"uv"`
	PrecipMm   float64        `json:"precip_mm"`
	Condition  apiCondition   `json:"condition"`
	AirQuality *apiAirQuality `json:"air_quality"`
}

type currentResponse struct {
	Location *apiLocation `json:"location"`
	Current  *apiCurrent  `json:"current"`
}

type forecastResponse struct {
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				MaxTempC      float64      `json:"maxtemp_c"`
				MinTempC      float64      `json:"mintemp_c"`
				AvgHumidity   float64      `json:"avghumidity"`
				MaxWindKph    float64      `json:"maxwind_kph"`
				TotalPrecipMm float64      `json:"totalprecip_mm"`
				Condition     apiCondition `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
	Alerts struct {
		Alert []struct {
			Headline string `json:"headline"`
			Desc     string `json:"desc"`
		} `json:"alert"`
	} `json:"alerts"`
}

type astronomyResponse struct {
	Astronomy struct {
		Astro *struct {
			Sunrise   string `json:"sunrise"`
			Sunset    string `json:"sunset"`
			MoonPhase string `json:"moon_phase"`
		} `json:"astro"`
	} `json:"astronomy"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

var errMissingCurrent = errors.New("response has no current conditions")

func parseCurrent(body []byte) (CurrentConditions, error) {
	var raw currentResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return CurrentConditions{}, err
	}
	if raw.Current == nil || raw.Location == nil {
		return CurrentConditions{}, errMissingCurrent
	}
	c := raw.Current
	return CurrentConditions{
		Place: Place{
			Name:    raw.Location.Name,
			Region:  raw.Location.Region,
			Country: raw.Location.Country,
		},
		TempC:        c.TempC,
		FeelsLikeC:   c.FeelsLikeC,
		Humidity:     c.Humidity,
		WindKph:      c.WindKph,
		PressureMb:   c.PressureMb,
		VisibilityKm: c.VisKm,
		UV:           c.UV,
		PrecipMm:     c.PrecipMm,
		Condition:    Condition{Code: c.Condition.Code, Text: c.Condition.Text},
	}, nil
}

func parseForecast(body []byte) ([]ForecastDay, error) {
	var raw forecastResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	src := raw.Forecast.ForecastDay
	if len(src) > MaxForecastDays {
		src = src[:MaxForecastDays]
	}
	days := make([]ForecastDay, 0, len(src))
	for _, fd := range src {
		date, err := time.Parse(time.DateOnly, fd.Date)
		if err != nil {
			return nil, fmt.Errorf("forecast date %q: %w", fd.Date, err)
		}
		days = append(days, ForecastDay{
			Date:          date,
			MaxTempC:      fd.Day.MaxTempC,
			MinTempC:      fd.Day.MinTempC,
			AvgHumidity:   fd.Day.AvgHumidity,
			MaxWindKph:    fd.Day.MaxWindKph,
			TotalPrecipMm: fd.Day.TotalPrecipMm,
			Condition:     Condition{Code: fd.Day.Condition.Code, Text: fd.Day.Condition.Text},
		})
	}
	return days, nil
}

func parseAirQuality(body []byte) (*AirQualitySample, error) {
	var raw currentResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if raw.Current == nil || raw.Current.AirQuality == nil {
		return nil, nil
	}
	aq := raw.Current.AirQuality
	return &AirQualitySample{
		Index: aq.USEPAIndex,
		PM25:  aq.PM25,
		PM10:  aq.PM10,
		O3:    aq.O3,
	}, nil
}

func parseAstronomy(body []byte) (*AstronomyInfo, error) {
	var raw astronomyResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if raw.Astronomy.Astro == nil {
		return nil, nil
	}
	a := raw.Astronomy.Astro
	return &AstronomyInfo{Sunrise: a.Sunrise, Sunset: a.Sunset, MoonPhase: a.MoonPhase}, nil
}

func parseAlerts(body []byte) ([]WeatherAlert, error) {
	var raw forecastResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	alerts := make([]WeatherAlert, 0, len(raw.Alerts.Alert))
	for _, a := range raw.Alerts.Alert {
		alerts = append(alerts, WeatherAlert{Headline: a.Headline, Description: a.Desc})
	}
	return alerts, nil
}

// providerMessage extracts error.message from a failure body. Unreadable
// bodies yield "" so the caller falls back to a generic label.
func providerMessage(body []byte) string {
	var raw errorResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return ""
	}
	return raw.Error.Message
}
