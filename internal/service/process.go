package service

import (
	"context"
	"fmt"

	"github.com/katiamach/wind-yield-api/internal/model"
	"github.com/katiamach/wind-yield-api/internal/physics"
	"github.com/umahmood/haversine"
)

// estimatePoint runs fetch -> air density -> power -> energy for one point.
func (es *EstimatorService) estimatePoint(ctx context.Context, point model.GeoPoint, turbine model.TurbineConfig, dates model.DateRange) *model.PointEstimate {
	pe := &model.PointEstimate{Point: point}

	series, err := es.weather.Fetch(ctx, point, dates)
	if err != nil {
		return failed(pe, fmt.Errorf("failed to fetch weather history: %w", err))
	}

	pe.GridDistanceKm = gridDistance(point, series)

	series = downsample(series, es.stride)

	density, err := physics.AirDensity(series.Temperatures(), series.Pressures())
	if err != nil {
		return failed(pe, fmt.Errorf("failed to compute air density: %w", err))
	}

	windSpeeds := series.WindSpeeds()
	power, err := physics.Power(density, windSpeeds, physics.SweptArea(turbine.Radius),
		turbine.PowerCoefficient, turbine.GeneratorEfficiency)
	if err != nil {
		return failed(pe, fmt.Errorf("failed to compute power: %w", err))
	}

	energy := physics.CumulativeEnergy(power)

	pe.Times = series.Times()
	pe.AirDensity = density
	pe.Power = power
	pe.Energy = energy
	pe.Summary = summarize(windSpeeds, power, energy)

	return pe
}

func failed(pe *model.PointEstimate, err error) *model.PointEstimate {
	pe.Err = err
	pe.Error = err.Error()
	return pe
}

// downsample keeps every stride-th sample starting with the first one.
func downsample(series *model.WeatherSeries, stride int) *model.WeatherSeries {
	if stride <= 1 {
		return series
	}

	samples := make([]model.HourlySample, 0, (len(series.Samples)+stride-1)/stride)
	for i := 0; i < len(series.Samples); i += stride {
		samples = append(samples, series.Samples[i])
	}

	out := *series
	out.Samples = samples
	return &out
}

// gridDistance returns the distance in km between the requested point and the provider grid cell.
func gridDistance(point model.GeoPoint, series *model.WeatherSeries) float64 {
	requested := haversine.Coord{Lat: point.Latitude, Lon: point.Longitude}
	grid := haversine.Coord{Lat: series.GridLatitude, Lon: series.GridLongitude}

	_, km := haversine.Distance(requested, grid)
	return km
}

func summarize(windSpeeds []float64, power model.PowerSeries, energy model.EnergySeries) *model.Summary {
	s := &model.Summary{Samples: len(power)}
	if len(power) == 0 {
		return s
	}

	var sum float64
	for _, v := range windSpeeds {
		sum += v
	}
	s.AverageWindSpeedKmh = sum / float64(len(windSpeeds))

	s.PeakPowerKW = power[0]
	for _, p := range power[1:] {
		if p > s.PeakPowerKW {
			s.PeakPowerKW = p
		}
	}

	s.TotalEnergy = energy[len(energy)-1]

	return s
}
