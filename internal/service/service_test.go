package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/katiamach/wind-yield-api/internal/model"
	"github.com/katiamach/wind-yield-api/internal/physics"
	"github.com/tj/assert"

	mock "github.com/katiamach/wind-yield-api/internal/service/mock"
)

var errTest = errors.New("test error")

func hourlySeries(point model.GeoPoint, hours int) *model.WeatherSeries {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	samples := make([]model.HourlySample, hours)
	for i := range samples {
		samples[i] = model.HourlySample{
			Time:         start.Add(time.Duration(i) * time.Hour),
			TemperatureC: 15,
			PressureHPa:  1013.25,
			WindSpeedKmh: float64(10 + i%30),
		}
	}

	return &model.WeatherSeries{
		Point:         point,
		GridLatitude:  point.Latitude,
		GridLongitude: point.Longitude,
		Samples:       samples,
	}
}

func validRequest(points ...model.GeoPoint) *model.EstimateRequest {
	return &model.EstimateRequest{
		Points:    points,
		Turbine:   model.DefaultTurbineConfig(),
		StartDate: "2023-01-01",
		EndDate:   "2023-01-03",
	}
}

func TestEstimate(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	weather := mock.NewMockWeatherClient(ctrl)
	s := New(weather, Options{SampleStride: 24, Workers: 2})

	berlin := model.GeoPoint{Name: "Berlin", Latitude: 52.52, Longitude: 13.405}
	unnamed := model.GeoPoint{Latitude: 48.137, Longitude: 11.575}
	named := unnamed
	named.Name = "Point 2"

	weather.EXPECT().
		Fetch(gomock.Any(), berlin, gomock.Any()).
		Return(hourlySeries(berlin, 72), nil)
	weather.EXPECT().
		Fetch(gomock.Any(), named, gomock.Any()).
		Return(nil, errTest)

	estimates, err := s.Estimate(ctx, validRequest(berlin, unnamed))
	assert.Nil(t, err)
	assert.Len(t, estimates, 2)

	ok := estimates[0]
	assert.False(t, ok.Failed())
	assert.Equal(t, "Berlin", ok.Point.Name)
	// 72 hourly samples at a daily stride
	assert.Len(t, ok.Times, 3)
	assert.Len(t, ok.AirDensity, 3)
	assert.Len(t, ok.Power, 3)
	assert.Len(t, ok.Energy, 3)
	assert.Equal(t, 0.0, ok.Energy[0])
	assert.Equal(t, 3, ok.Summary.Samples)
	assert.Equal(t, ok.Energy[2], ok.Summary.TotalEnergy)
	assert.InDelta(t, 0, ok.GridDistanceKm, 1e-9)

	bad := estimates[1]
	assert.True(t, bad.Failed())
	assert.Equal(t, "Point 2", bad.Point.Name)
	assert.True(t, errors.Is(bad.Err, errTest))
	assert.Contains(t, bad.Error, "failed to fetch weather history")
	assert.Nil(t, bad.Power)
}

func TestEstimateDataUnavailableIsKeptPerPoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	weather := mock.NewMockWeatherClient(ctrl)
	s := New(weather, Options{SampleStride: 1, Workers: 1})

	weather.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, model.ErrDataUnavailable)

	estimates, err := s.Estimate(context.Background(), validRequest(model.GeoPoint{Name: "a", Latitude: 1, Longitude: 1}))
	assert.Nil(t, err)
	assert.Len(t, estimates, 1)
	assert.True(t, errors.Is(estimates[0].Err, model.ErrDataUnavailable))
}

func TestEstimateUsesDefaultTurbine(t *testing.T) {
	ctrl := gomock.NewController(t)
	weather := mock.NewMockWeatherClient(ctrl)
	s := New(weather, Options{SampleStride: 1})

	point := model.GeoPoint{Name: "a", Latitude: 1, Longitude: 1}
	series := hourlySeries(point, 2)

	weather.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(series, nil)

	req := validRequest(point)
	req.Turbine = model.TurbineConfig{}

	estimates, err := s.Estimate(context.Background(), req)
	assert.Nil(t, err)

	density, err := physics.AirDensity(series.Temperatures(), series.Pressures())
	assert.Nil(t, err)
	want, err := physics.Power(density, series.WindSpeeds(), physics.SweptArea(model.DefaultRadius),
		model.DefaultPowerCoefficient, model.DefaultGeneratorEfficiency)
	assert.Nil(t, err)

	assert.Equal(t, want, estimates[0].Power)
}

func TestEstimateInvalidRequest(t *testing.T) {
	point := model.GeoPoint{Latitude: 1, Longitude: 1}

	cases := []struct {
		name    string
		request *model.EstimateRequest
	}{
		{name: "nil", request: nil},
		{name: "no points", request: validRequest()},
		{name: "bad point", request: validRequest(model.GeoPoint{Latitude: 100})},
		{
			name: "height below radius",
			request: func() *model.EstimateRequest {
				r := validRequest(point)
				r.Turbine.Height = 3
				return r
			}(),
		},
		{
			name: "reversed dates",
			request: func() *model.EstimateRequest {
				r := validRequest(point)
				r.StartDate, r.EndDate = r.EndDate, r.StartDate
				return r
			}(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			weather := mock.NewMockWeatherClient(ctrl)
			s := New(weather, Options{})

			estimates, err := s.Estimate(context.Background(), tc.request)
			assert.Nil(t, estimates)
			assert.True(t, errors.Is(err, model.ErrConfigurationInvalid))
		})
	}
}

func TestEstimateEmptySeries(t *testing.T) {
	ctrl := gomock.NewController(t)
	weather := mock.NewMockWeatherClient(ctrl)
	s := New(weather, Options{SampleStride: 24})

	point := model.GeoPoint{Name: "empty", Latitude: 1, Longitude: 1}
	weather.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(hourlySeries(point, 0), nil)

	estimates, err := s.Estimate(context.Background(), validRequest(point))
	assert.Nil(t, err)

	pe := estimates[0]
	assert.False(t, pe.Failed())
	assert.Len(t, pe.Power, 0)
	assert.Len(t, pe.Energy, 0)
	assert.Equal(t, 0, pe.Summary.Samples)
}

func TestDownsample(t *testing.T) {
	series := hourlySeries(model.GeoPoint{}, 49)

	daily := downsample(series, 24)
	assert.Equal(t, 3, daily.Len())
	assert.Equal(t, series.Samples[24], daily.Samples[1])
	assert.Equal(t, series.Samples[48], daily.Samples[2])
	assert.Equal(t, 49, series.Len())

	assert.Equal(t, series, downsample(series, 1))
}

func TestSummarize(t *testing.T) {
	s := summarize([]float64{10, 20, 30}, model.PowerSeries{1, 4, 2}, model.EnergySeries{0, 4, 6})

	assert.Equal(t, 3, s.Samples)
	assert.InDelta(t, 20, s.AverageWindSpeedKmh, 1e-9)
	assert.Equal(t, 4.0, s.PeakPowerKW)
	assert.Equal(t, 6.0, s.TotalEnergy)
}

func TestGridDistance(t *testing.T) {
	point := model.GeoPoint{Latitude: 52.52, Longitude: 13.405}
	series := &model.WeatherSeries{GridLatitude: 52.52, GridLongitude: 13.42}

	km := gridDistance(point, series)
	assert.True(t, km > 0.9 && km < 1.1)
}
