package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/katiamach/wind-yield-api/internal/config"
	"github.com/katiamach/wind-yield-api/internal/model"
	"github.com/tj/assert"
)

const requestYAML = `
points:
  - name: Berlin
    latitude: 52.52
    longitude: 13.405
  - latitude: 48.137
    longitude: 11.575
turbine:
  radius: 6
  height: 30
  powerCoefficient: 0.4
  generatorEfficiency: 0.3
startDate: "2023-01-01"
endDate: "2023-01-31"
`

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	assert.Nil(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadRequest(t *testing.T) {
	req, err := loadRequest(writeFile(t, "request.yaml", requestYAML))
	assert.Nil(t, err)

	assert.Len(t, req.Points, 2)
	assert.Equal(t, "Berlin", req.Points[0].Name)
	assert.InDelta(t, 11.575, req.Points[1].Longitude, 1e-9)
	assert.Equal(t, 6.0, req.Turbine.Radius)
	assert.Equal(t, 0.3, req.Turbine.GeneratorEfficiency)
	assert.Equal(t, "2023-01-31", req.EndDate)
}

func TestLoadRequestJSON(t *testing.T) {
	body := `{"points": [{"name": "a", "latitude": 1, "longitude": 2}], "startDate": "2023-01-01", "endDate": "2023-01-02"}`

	req, err := loadRequest(writeFile(t, "request.json", body))
	assert.Nil(t, err)
	assert.Len(t, req.Points, 1)
	assert.True(t, req.Turbine.IsZero())
}

func TestApplyOverrides(t *testing.T) {
	cmd := estimateCmd(&config.Config{})
	assert.Nil(t, cmd.Flags().Set("radius", "3"))
	assert.Nil(t, cmd.Flags().Set("end", "2023-02-01"))

	req := &model.EstimateRequest{StartDate: "2023-01-01", EndDate: "2023-01-02"}
	var opts estimateOptions
	opts.radius = 3
	opts.end = "2023-02-01"

	applyOverrides(cmd, req, &opts)

	assert.Equal(t, 3.0, req.Turbine.Radius)
	assert.Equal(t, model.DefaultHeight, req.Turbine.Height)
	assert.Equal(t, model.DefaultPowerCoefficient, req.Turbine.PowerCoefficient)
	assert.Equal(t, "2023-01-01", req.StartDate)
	assert.Equal(t, "2023-02-01", req.EndDate)
}

func TestWriteEstimatesText(t *testing.T) {
	failure := errors.New("weather data unavailable: provider returned status 500")
	estimates := []*model.PointEstimate{
		{
			Point:   model.GeoPoint{Name: "Berlin"},
			Summary: &model.Summary{Samples: 31, AverageWindSpeedKmh: 14.2, PeakPowerKW: 1.5, TotalEnergy: 123456789},
		},
		{Point: model.GeoPoint{Name: "Offshore"}, Err: failure, Error: failure.Error()},
	}

	var buf bytes.Buffer
	assert.Nil(t, writeEstimates(&buf, "text", estimates))

	out := buf.String()
	assert.Contains(t, out, "Berlin")
	assert.Contains(t, out, "123,456,789")
	assert.Contains(t, out, "Offshore")
	assert.Contains(t, out, "provider returned status 500")
}

func TestWriteEstimatesUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.NotNil(t, writeEstimates(&buf, "png", nil))
}
