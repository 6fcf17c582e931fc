package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katiamach/wind-yield-api/internal/api"
	"github.com/katiamach/wind-yield-api/internal/config"
	"github.com/katiamach/wind-yield-api/internal/logger"
)

func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.LogLevel)

	rootCmd := &cobra.Command{
		Use:   "windyield",
		Short: "Wind turbine energy yield estimator",
		Long:  "Estimates turbine power and cumulative energy from historical weather at one or more locations",
	}

	rootCmd.AddCommand(serveCmd(cfg))
	rootCmd.AddCommand(estimateCmd(cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the estimation HTTP API",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := api.RunAPI(cfg); err != nil {
				logger.Fatal(fmt.Errorf("failed to run turbine yield api: %v", err))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfg.Port, "port", "p", cfg.Port, "HTTP server port")
	return cmd
}

func estimateCmd(cfg *config.Config) *cobra.Command {
	var opts estimateOptions

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate yield for the points in a request file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd, cfg, &opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "request file (YAML or JSON)")
	flags.StringVarP(&opts.output, "output", "o", "text", "output format (text, json, svg)")
	flags.StringVar(&opts.out, "out", "", "write output to this file instead of stdout")
	flags.Float64Var(&opts.radius, "radius", 0, "turbine radius [m]")
	flags.Float64Var(&opts.height, "height", 0, "turbine height [m]")
	flags.Float64Var(&opts.cp, "cp", 0, "power coefficient")
	flags.Float64Var(&opts.efficiency, "efficiency", 0, "generator efficiency")
	flags.StringVar(&opts.start, "start", "", "start date (YYYY-MM-DD)")
	flags.StringVar(&opts.end, "end", "", "end date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
