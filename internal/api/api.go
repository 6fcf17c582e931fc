package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/katiamach/wind-yield-api/internal/config"
	"github.com/katiamach/wind-yield-api/internal/logger"
	"github.com/katiamach/wind-yield-api/internal/service"
	"github.com/katiamach/wind-yield-api/internal/transport/rest/handler"
	"github.com/katiamach/wind-yield-api/internal/weather"
)

// NewRouter registers estimate routes.
func NewRouter(server *handler.EstimateServer) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/estimate", server.EstimateHandler).Methods(http.MethodPost)
	r.HandleFunc("/estimate/plot", server.PlotHandler).Methods(http.MethodPost)
	r.HandleFunc("/map", server.MapHandler).Methods(http.MethodPost)
	r.HandleFunc("/geometry", server.GeometryHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", server.HealthHandler).Methods(http.MethodGet)

	return r
}

// NewEstimator wires the weather client into the estimator service.
func NewEstimator(cfg *config.Config) *service.EstimatorService {
	client := weather.NewClient(cfg.WeatherAPIURL, cfg.WeatherTimeout, cfg.WeatherRetries, cfg.WeatherRetryBackoff)

	return service.New(client, service.Options{
		SampleStride: cfg.SampleStride,
		Workers:      cfg.Workers,
	})
}

// RunAPI runs turbine yield API until SIGINT or SIGTERM.
func RunAPI(cfg *config.Config) error {
	server := handler.NewEstimateServer(NewEstimator(cfg), cfg.GeometryPath)
	r := NewRouter(server)

	options := setupCorsOptions(cfg.Origin)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.CORS(options...)(r),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Starting turbine yield api at port %s", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	logger.Info("Shutting down turbine yield api")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}

	return nil
}
