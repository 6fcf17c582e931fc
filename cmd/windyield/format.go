package main

import (
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/katiamach/wind-yield-api/internal/model"
)

func printSummary(w io.Writer, estimates []*model.PointEstimate) {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "%-20s %8s %14s %14s %22s %10s\n",
		"POINT", "SAMPLES", "AVG WIND km/h", "PEAK POWER kW", "TOTAL ENERGY", "GRID km")
	p.Fprintln(w, strings.Repeat("-", 93))

	for _, pe := range estimates {
		if pe.Failed() {
			p.Fprintf(w, "%-20s %s\n", pe.Point.Name, pe.Error)
			continue
		}

		s := pe.Summary
		p.Fprintf(w, "%-20s %8d %14.2f %14.3f %22.0f %10.2f\n",
			pe.Point.Name, s.Samples, s.AverageWindSpeedKmh, s.PeakPowerKW, s.TotalEnergy, pe.GridDistanceKm)
	}
}
