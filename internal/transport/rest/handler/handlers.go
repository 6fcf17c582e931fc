package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/katiamach/wind-yield-api/internal/logger"
	"github.com/katiamach/wind-yield-api/internal/model"
	"github.com/katiamach/wind-yield-api/internal/render"
)

//go:generate mockgen -source=handlers.go -destination=mock/mock.go EstimatorService

const maxBodyBytes = 1 << 20

var errGeometryNotFound = errors.New("turbine model is not available")

// EstimatorService provides turbine yield estimation.
type EstimatorService interface {
	Estimate(ctx context.Context, req *model.EstimateRequest) ([]*model.PointEstimate, error)
}

// EstimateServer is a server for turbine yield estimation.
type EstimateServer struct {
	service      EstimatorService
	geometryPath string
}

// NewEstimateServer creates new EstimateServer.
func NewEstimateServer(service EstimatorService, geometryPath string) *EstimateServer {
	return &EstimateServer{service: service, geometryPath: geometryPath}
}

// EstimateHandler handles Estimate request and responds with the series as JSON.
func (s *EstimateServer) EstimateHandler(w http.ResponseWriter, r *http.Request) {
	estimates, ok := s.estimate(w, r)
	if !ok {
		return
	}

	respond(w, http.StatusOK, estimates)
}

// PlotHandler handles Estimate request and responds with the performance plot as SVG.
func (s *EstimateServer) PlotHandler(w http.ResponseWriter, r *http.Request) {
	estimates, ok := s.estimate(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.PerformanceSVG(&buf, estimates); err != nil {
		logger.Error(fmt.Errorf("failed to render plot: %v", err))
		respondErr(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error(fmt.Errorf("failed to write plot: %v", err))
	}
}

// MapHandler responds with the requested points as GeoJSON.
func (s *EstimateServer) MapHandler(w http.ResponseWriter, r *http.Request) {
	var req model.EstimateRequest
	if err := decodeRequest(r, &req); err != nil {
		respondErr(w, http.StatusBadRequest, err)
		return
	}

	for i, p := range req.Points {
		if err := p.Validate(); err != nil {
			respondErr(w, http.StatusBadRequest, fmt.Errorf("point %d: %w", i+1, err))
			return
		}
	}

	respond(w, http.StatusOK, render.MapFeatures(req.Points))
}

// GeometryHandler serves the static turbine model.
func (s *EstimateServer) GeometryHandler(w http.ResponseWriter, r *http.Request) {
	f, err := os.Open(s.geometryPath)
	if errors.Is(err, os.ErrNotExist) {
		respondErr(w, http.StatusNotFound, errGeometryNotFound)
		return
	}
	if err != nil {
		logger.Error(fmt.Errorf("failed to open turbine model: %v", err))
		respondErr(w, http.StatusInternalServerError, errGeometryNotFound)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		logger.Error(fmt.Errorf("failed to stat turbine model: %v", err))
		respondErr(w, http.StatusInternalServerError, errGeometryNotFound)
		return
	}

	w.Header().Set("Content-Type", "model/gltf-binary")
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// HealthHandler reports that the service is up.
func (s *EstimateServer) HealthHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *EstimateServer) estimate(w http.ResponseWriter, r *http.Request) ([]*model.PointEstimate, bool) {
	var req model.EstimateRequest
	if err := decodeRequest(r, &req); err != nil {
		logger.Error(err)
		respondErr(w, http.StatusBadRequest, err)
		return nil, false
	}

	estimates, err := s.service.Estimate(r.Context(), &req)
	if errors.Is(err, model.ErrConfigurationInvalid) {
		respondErr(w, http.StatusBadRequest, err)
		return nil, false
	}
	if err != nil {
		logger.Error(fmt.Errorf("failed to estimate: %v", err))
		respondErr(w, http.StatusInternalServerError, err)
		return nil, false
	}

	return estimates, true
}

func decodeRequest(r *http.Request, req *model.EstimateRequest) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(req); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	return nil
}
