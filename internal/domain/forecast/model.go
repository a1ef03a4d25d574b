package forecast

import (
	"encoding/json"
	"fmt"
)

// Kind selects which forecast document the point metadata links to.
type Kind string

const (
	KindForecast       Kind = "forecast"
	KindForecastHourly Kind = "forecastHourly"
)

// Request is the validated argument set of the get_weather tool.
type Request struct {
	Lat  Coordinate `json:"lat" validate:"required"`
	Lon  Coordinate `json:"lon" validate:"required"`
	Kind Kind       `json:"type" validate:"required,oneof=forecast forecastHourly"`
}

// PointMetadata is the subset of /points/{lat},{lon} the pipeline relies on.
type PointMetadata struct {
	Forecast       string `json:"forecast" validate:"required,url,nwsurl"`
	ForecastHourly string `json:"forecastHourly" validate:"required,url,nwsurl"`
	ForecastZone   string `json:"forecastZone" validate:"required,url,nwsurl"`
	TimeZone       string `json:"timeZone" validate:"required"`
}

// URLFor returns the forecast document URL for kind.
func (p PointMetadata) URLFor(kind Kind) (string, error) {
	switch kind {
	case KindForecast:
		return p.Forecast, nil
	case KindForecastHourly:
		return p.ForecastHourly, nil
	default:
		return "", fmt.Errorf("unknown forecast type %q", kind)
	}
}

// UnitValue is a quantity tagged with a WMO unit code, e.g. wmoUnit:percent.
type UnitValue struct {
	UnitCode string   `json:"unitCode" validate:"required"`
	Value    *float64 `json:"value" validate:"required"`
}

// Period is one entry of a forecast document.
type Period struct {
	Number                     *int       `json:"number" validate:"required"`
	Name                       *string    `json:"name" validate:"required"`
	StartTime                  string     `json:"startTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	IsDaytime                  *bool      `json:"isDaytime" validate:"required"`
	Temperature                *float64   `json:"temperature" validate:"required"`
	TemperatureUnit            *string    `json:"temperatureUnit" validate:"required"`
	ProbabilityOfPrecipitation *UnitValue `json:"probabilityOfPrecipitation" validate:"required"`
	Dewpoint                   *UnitValue `json:"dewpoint,omitempty" validate:"omitempty"`
	RelativeHumidity           *UnitValue `json:"relativeHumidity,omitempty" validate:"omitempty"`
	WindSpeed                  *string    `json:"windSpeed" validate:"required"`
	WindDirection              *string    `json:"windDirection" validate:"required"`
	ShortForecast              *string    `json:"shortForecast" validate:"required"`
	DetailedForecast           *string    `json:"detailedForecast" validate:"required"`
}

// Document is a gridpoint forecast (daily or hourly).
type Document struct {
	GeneratedAt string     `json:"generatedAt" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	UpdateTime  string     `json:"updateTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	ValidTimes  string     `json:"validTimes" validate:"required"`
	Elevation   *UnitValue `json:"elevation" validate:"required"`
	Periods     []Period   `json:"periods" validate:"required,dive"`
}

// Result is the tool payload handed back to the model.
type Result struct {
	TimeZone string `json:"timeZone"`
	Document
}

// Encode renders the result as two-space indented JSON.
func (r Result) Encode() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
