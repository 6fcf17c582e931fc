// Package weather retrieves hourly historical weather series from the archive API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/katiamach/wind-yield-api/internal/logger"
	"github.com/katiamach/wind-yield-api/internal/model"
	"golang.org/x/net/context/ctxhttp"
)

// Hourly variables requested from the provider.
const (
	varTemperature = "temperature_2m"
	varPressure    = "surface_pressure"
	varWindSpeed   = "windspeed_10m"
)

const hourLayout = "2006-01-02T15:04"

// Client fetches weather history for a point.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retries    int
	backoff    time.Duration
}

// NewClient creates new Client. Timeout bounds every single request.
func NewClient(baseURL string, timeout time.Duration, retries int, backoff time.Duration) *Client {
	if retries < 0 {
		retries = 0
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		retries:    retries,
		backoff:    backoff,
	}
}

type archiveResponse struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Timezone         string  `json:"timezone"`
	UTCOffsetSeconds int     `json:"utc_offset_seconds"`
	Hourly           struct {
		Time        []string   `json:"time"`
		Temperature []*float64 `json:"temperature_2m"`
		Pressure    []*float64 `json:"surface_pressure"`
		WindSpeed   []*float64 `json:"windspeed_10m"`
	} `json:"hourly"`
}

type errorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// Fetch retrieves hourly temperature, surface pressure and wind speed for the point over the date range.
// Provider and network failures are reported as model.ErrDataUnavailable.
func (c *Client) Fetch(ctx context.Context, point model.GeoPoint, dates model.DateRange) (*model.WeatherSeries, error) {
	point = point.Rounded()
	reqURL := c.buildURL(point, dates)

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var res archiveResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", model.ErrDataUnavailable, err)
	}

	return toSeries(point, &res)
}

func (c *Client) buildURL(point model.GeoPoint, dates model.DateRange) string {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(point.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(point.Longitude, 'f', -1, 64))
	params.Set("start_date", dates.Start.Format(model.DateLayout))
	params.Set("end_date", dates.End.Format(model.DateLayout))
	params.Set("hourly", varTemperature+","+varPressure+","+varWindSpeed)
	params.Set("models", "best_match")
	params.Set("timezone", "auto")

	return c.baseURL + "?" + params.Encode()
}

// get performs the request, retrying network errors, 5xx and 429 responses.
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", model.ErrDataUnavailable, ctx.Err())
			case <-time.After(time.Duration(attempt) * c.backoff):
			}
		}

		body, retry, err := c.do(ctx, reqURL)
		if err == nil {
			return body, nil
		}

		lastErr = err
		if !retry {
			break
		}

		logger.WithFields(map[string]interface{}{
			"attempt": attempt + 1,
			"url":     reqURL,
		}).Warn(err)
	}

	return nil, lastErr
}

func (c *Client) do(ctx context.Context, reqURL string) (body []byte, retry bool, err error) {
	resp, err := ctxhttp.Get(ctx, c.httpClient, reqURL)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, false, fmt.Errorf("%w: %v", model.ErrDataUnavailable, err)
		}
		return nil, true, fmt.Errorf("%w: failed to get weather history: %v", model.ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("%w: failed to read response body: %v", model.ErrDataUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		retry = resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests

		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Reason != "" {
			return nil, retry, fmt.Errorf("%w: provider returned status %d: %s",
				model.ErrDataUnavailable, resp.StatusCode, apiErr.Reason)
		}
		return nil, retry, fmt.Errorf("%w: provider returned status %d", model.ErrDataUnavailable, resp.StatusCode)
	}

	return body, false, nil
}

// toSeries converts the provider columns into aligned samples.
// Trailing hours with missing values are dropped, gaps inside the range are not tolerated.
func toSeries(point model.GeoPoint, res *archiveResponse) (*model.WeatherSeries, error) {
	h := res.Hourly
	n := len(h.Time)
	if len(h.Temperature) != n || len(h.Pressure) != n || len(h.WindSpeed) != n {
		return nil, fmt.Errorf("%w: hourly columns differ in length: time=%d %s=%d %s=%d %s=%d",
			model.ErrComputationFault, n, varTemperature, len(h.Temperature),
			varPressure, len(h.Pressure), varWindSpeed, len(h.WindSpeed))
	}

	for n > 0 && (h.Temperature[n-1] == nil || h.Pressure[n-1] == nil || h.WindSpeed[n-1] == nil) {
		n--
	}

	loc := time.FixedZone(res.Timezone, res.UTCOffsetSeconds)

	samples := make([]model.HourlySample, 0, n)
	for i := 0; i < n; i++ {
		if h.Temperature[i] == nil || h.Pressure[i] == nil || h.WindSpeed[i] == nil {
			return nil, fmt.Errorf("%w: missing values at %s", model.ErrDataUnavailable, h.Time[i])
		}

		ts, err := time.ParseInLocation(hourLayout, h.Time[i], loc)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid timestamp %q", model.ErrDataUnavailable, h.Time[i])
		}

		samples = append(samples, model.HourlySample{
			Time:         ts,
			TemperatureC: *h.Temperature[i],
			PressureHPa:  *h.Pressure[i],
			WindSpeedKmh: *h.WindSpeed[i],
		})
	}

	return &model.WeatherSeries{
		Point:         point,
		GridLatitude:  res.Latitude,
		GridLongitude: res.Longitude,
		Timezone:      res.Timezone,
		Samples:       samples,
	}, nil
}
