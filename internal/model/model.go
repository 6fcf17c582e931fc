// Package model contains the values passed between the weather client, the estimator and the transport layer.
package model

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar date format used in requests and provider queries.
const DateLayout = "2006-01-02"

// EstimateRequest contains estimate request parameters.
type EstimateRequest struct {
	Points    []GeoPoint    `json:"points" yaml:"points"`
	Turbine   TurbineConfig `json:"turbine" yaml:"turbine"`
	StartDate string        `json:"startDate" yaml:"startDate"`
	EndDate   string        `json:"endDate" yaml:"endDate"`
}

// GeoPoint is a named location placed by the user.
type GeoPoint struct {
	Name      string  `json:"name,omitempty" yaml:"name"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Rounded returns the point with coordinates rounded to 3 decimal places.
func (p GeoPoint) Rounded() GeoPoint {
	return GeoPoint{
		Name:      p.Name,
		Latitude:  round3(p.Latitude),
		Longitude: round3(p.Longitude),
	}
}

// Validate checks that the point is a valid geographic coordinate.
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Latitude) || p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrConfigurationInvalid, p.Latitude)
	}
	if math.IsNaN(p.Longitude) || p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrConfigurationInvalid, p.Longitude)
	}
	return nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange parses ISO calendar dates and checks that start is not after end.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: invalid start date %q", ErrConfigurationInvalid, start)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: invalid end date %q", ErrConfigurationInvalid, end)
	}

	r := DateRange{Start: s, End: e}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}

	return r, nil
}

// Validate checks that start is not after end.
func (r DateRange) Validate() error {
	if r.Start.After(r.End) {
		return fmt.Errorf("%w: start date %s is after end date %s",
			ErrConfigurationInvalid, r.Start.Format(DateLayout), r.End.Format(DateLayout))
	}
	return nil
}

// Turbine parameter bounds.
const (
	MinRadius                  = 2.0
	MinPowerCoefficient        = 0.25
	MaxPowerCoefficient        = 0.45
	MinGeneratorEfficiency     = 0.15
	MaxGeneratorEfficiency     = 0.40
	DefaultRadius              = 5.0
	DefaultHeight              = 20.0
	DefaultPowerCoefficient    = 0.35
	DefaultGeneratorEfficiency = 0.25
)

// TurbineConfig describes turbine geometry and performance.
type TurbineConfig struct {
	Radius              float64 `json:"radius" yaml:"radius"`
	Height              float64 `json:"height" yaml:"height"`
	PowerCoefficient    float64 `json:"powerCoefficient" yaml:"powerCoefficient"`
	GeneratorEfficiency float64 `json:"generatorEfficiency" yaml:"generatorEfficiency"`
}

// DefaultTurbineConfig returns the turbine used when a request does not specify one.
func DefaultTurbineConfig() TurbineConfig {
	return TurbineConfig{
		Radius:              DefaultRadius,
		Height:              DefaultHeight,
		PowerCoefficient:    DefaultPowerCoefficient,
		GeneratorEfficiency: DefaultGeneratorEfficiency,
	}
}

// IsZero reports whether no turbine parameter was set.
func (c TurbineConfig) IsZero() bool {
	return c == TurbineConfig{}
}

// Validate checks parameter ranges and the height >= radius constraint.
func (c TurbineConfig) Validate() error {
	switch {
	case !(c.Radius >= MinRadius):
		return fmt.Errorf("%w: radius %v m is below %v m", ErrConfigurationInvalid, c.Radius, MinRadius)
	case !(c.Height >= c.Radius):
		return fmt.Errorf("%w: height %v m is below radius %v m", ErrConfigurationInvalid, c.Height, c.Radius)
	case !(c.PowerCoefficient >= MinPowerCoefficient && c.PowerCoefficient <= MaxPowerCoefficient):
		return fmt.Errorf("%w: power coefficient %v out of range [%v, %v]",
			ErrConfigurationInvalid, c.PowerCoefficient, MinPowerCoefficient, MaxPowerCoefficient)
	case !(c.GeneratorEfficiency >= MinGeneratorEfficiency && c.GeneratorEfficiency <= MaxGeneratorEfficiency):
		return fmt.Errorf("%w: generator efficiency %v out of range [%v, %v]",
			ErrConfigurationInvalid, c.GeneratorEfficiency, MinGeneratorEfficiency, MaxGeneratorEfficiency)
	}
	return nil
}

// HourlySample is one hour of provider data.
type HourlySample struct {
	Time         time.Time `json:"time"`
	TemperatureC float64   `json:"temperature"`
	PressureHPa  float64   `json:"pressure"`
	WindSpeedKmh float64   `json:"windSpeed"`
}

// WeatherSeries is the hourly history of one point over one date range.
type WeatherSeries struct {
	Point GeoPoint
	// GridLatitude and GridLongitude locate the provider grid cell the data was taken from.
	GridLatitude  float64
	GridLongitude float64
	Timezone      string
	Samples       []HourlySample
}

// Len returns the number of samples.
func (ws *WeatherSeries) Len() int {
	return len(ws.Samples)
}

// Times returns sample timestamps in order.
func (ws *WeatherSeries) Times() []time.Time {
	out := make([]time.Time, len(ws.Samples))
	for i, s := range ws.Samples {
		out[i] = s.Time
	}
	return out
}

// Temperatures returns sample temperatures in °C.
func (ws *WeatherSeries) Temperatures() []float64 {
	out := make([]float64, len(ws.Samples))
	for i, s := range ws.Samples {
		out[i] = s.TemperatureC
	}
	return out
}

// Pressures returns sample surface pressures in hPa.
func (ws *WeatherSeries) Pressures() []float64 {
	out := make([]float64, len(ws.Samples))
	for i, s := range ws.Samples {
		out[i] = s.PressureHPa
	}
	return out
}

// WindSpeeds returns sample wind speeds in km/h.
func (ws *WeatherSeries) WindSpeeds() []float64 {
	out := make([]float64, len(ws.Samples))
	for i, s := range ws.Samples {
		out[i] = s.WindSpeedKmh
	}
	return out
}

// PowerSeries holds instantaneous power in kW, aligned with the weather samples.
type PowerSeries []float64

// EnergySeries holds cumulative energy, aligned with the power series.
type EnergySeries []float64

// Summary aggregates one point's results.
type Summary struct {
	Samples             int     `json:"samples"`
	AverageWindSpeedKmh float64 `json:"averageWindSpeed"`
	PeakPowerKW         float64 `json:"peakPower"`
	TotalEnergy         float64 `json:"totalEnergy"`
}

// PointEstimate is the result for one point. Error is set instead of the series when the point failed.
type PointEstimate struct {
	Point          GeoPoint     `json:"point"`
	GridDistanceKm float64      `json:"gridDistanceKm,omitempty"`
	Times          []time.Time  `json:"times,omitempty"`
	AirDensity     []float64    `json:"airDensity,omitempty"`
	Power          PowerSeries  `json:"power,omitempty"`
	Energy         EnergySeries `json:"energy,omitempty"`
	Summary        *Summary     `json:"summary,omitempty"`
	Error          string       `json:"error,omitempty"`

	Err error `json:"-"`
}

// Failed reports whether the point could not be estimated.
func (pe *PointEstimate) Failed() bool {
	return pe.Err != nil
}
