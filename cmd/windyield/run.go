package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katiamach/wind-yield-api/internal/api"
	"github.com/katiamach/wind-yield-api/internal/config"
	"github.com/katiamach/wind-yield-api/internal/model"
	"github.com/katiamach/wind-yield-api/internal/render"
)

type estimateOptions struct {
	file   string
	output string
	out    string

	radius     float64
	height     float64
	cp         float64
	efficiency float64
	start      string
	end        string
}

// loadRequest reads an estimate request from a YAML (or JSON) file.
func loadRequest(path string) (*model.EstimateRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request: %w", err)
	}

	var req model.EstimateRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parsing request: %w", err)
	}

	return &req, nil
}

// applyOverrides copies explicitly set flags over the request values.
func applyOverrides(cmd *cobra.Command, req *model.EstimateRequest, opts *estimateOptions) {
	if req.Turbine.IsZero() {
		req.Turbine = model.DefaultTurbineConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("radius") {
		req.Turbine.Radius = opts.radius
	}
	if flags.Changed("height") {
		req.Turbine.Height = opts.height
	}
	if flags.Changed("cp") {
		req.Turbine.PowerCoefficient = opts.cp
	}
	if flags.Changed("efficiency") {
		req.Turbine.GeneratorEfficiency = opts.efficiency
	}
	if flags.Changed("start") {
		req.StartDate = opts.start
	}
	if flags.Changed("end") {
		req.EndDate = opts.end
	}
}

func runEstimate(cmd *cobra.Command, cfg *config.Config, opts *estimateOptions) error {
	req, err := loadRequest(opts.file)
	if err != nil {
		return err
	}
	applyOverrides(cmd, req, opts)

	estimates, err := api.NewEstimator(cfg).Estimate(context.Background(), req)
	if err != nil {
		return err
	}

	w := io.Writer(os.Stdout)
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}

	return writeEstimates(w, opts.output, estimates)
}

func writeEstimates(w io.Writer, format string, estimates []*model.PointEstimate) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(estimates)
	case "svg":
		return render.PerformanceSVG(w, estimates)
	case "text":
		printSummary(w, estimates)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
