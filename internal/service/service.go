package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/katiamach/wind-yield-api/internal/logger"
	"github.com/katiamach/wind-yield-api/internal/model"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=service.go -destination=mock/mock.go WeatherClient

// WeatherClient provides weather history.
type WeatherClient interface {
	Fetch(ctx context.Context, point model.GeoPoint, dates model.DateRange) (*model.WeatherSeries, error)
}

// Options tune the estimation pipeline.
type Options struct {
	// SampleStride keeps every n-th hourly sample. Values below 1 keep every sample.
	SampleStride int
	// Workers limits how many points are estimated at once. Values below 1 mean one at a time.
	Workers int
}

// EstimatorService provides turbine yield estimation.
type EstimatorService struct {
	weather WeatherClient
	stride  int
	workers int
}

// New creates new EstimatorService.
func New(weather WeatherClient, opts Options) *EstimatorService {
	if opts.SampleStride < 1 {
		opts.SampleStride = 1
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	return &EstimatorService{
		weather: weather,
		stride:  opts.SampleStride,
		workers: opts.Workers,
	}
}

// Estimate validates the request and runs the pipeline for every point.
// Only an invalid request fails the whole call; a point that could not be estimated carries its error.
func (es *EstimatorService) Estimate(ctx context.Context, req *model.EstimateRequest) ([]*model.PointEstimate, error) {
	turbine, dates, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	log := logger.WithFields(map[string]interface{}{
		"requestID": requestID,
		"points":    len(req.Points),
		"startDate": req.StartDate,
		"endDate":   req.EndDate,
	})
	log.Info("estimating turbine yield")
	started := time.Now()

	estimates := make([]*model.PointEstimate, len(req.Points))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(es.workers)

	for i, p := range req.Points {
		i, p := i, p
		if p.Name == "" {
			p.Name = fmt.Sprintf("Point %d", i+1)
		}

		g.Go(func() error {
			pe := es.estimatePoint(gctx, p, turbine, dates)
			if pe.Failed() {
				log.WithField("point", p.Name).Error(pe.Err)
			}

			estimates[i] = pe
			return nil
		})
	}

	// goroutines never return errors, failures are kept per point
	_ = g.Wait()

	log.WithField("elapsed", time.Since(started).String()).Info("estimation finished")

	return estimates, nil
}

func validateRequest(req *model.EstimateRequest) (model.TurbineConfig, model.DateRange, error) {
	if req == nil || len(req.Points) == 0 {
		return model.TurbineConfig{}, model.DateRange{}, fmt.Errorf("%w: at least one point is required", model.ErrConfigurationInvalid)
	}

	for i, p := range req.Points {
		if err := p.Validate(); err != nil {
			return model.TurbineConfig{}, model.DateRange{}, fmt.Errorf("point %d: %w", i+1, err)
		}
	}

	turbine := req.Turbine
	if turbine.IsZero() {
		turbine = model.DefaultTurbineConfig()
	}
	if err := turbine.Validate(); err != nil {
		return model.TurbineConfig{}, model.DateRange{}, err
	}

	dates, err := model.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return model.TurbineConfig{}, model.DateRange{}, err
	}

	return turbine, dates, nil
}
