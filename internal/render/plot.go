// Package render draws estimation results for the UI: performance plots and map features.
package render

import (
	"fmt"
	"io"

	"github.com/katiamach/wind-yield-api/internal/model"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Plot size.
const (
	Width  = 8 * vg.Inch
	Height = 8 * vg.Inch
)

// PerformanceSVG writes a two panel SVG: power over time on top, cumulative energy below.
// Failed points are listed in the legend with their error instead of a line.
func PerformanceSVG(w io.Writer, estimates []*model.PointEstimate) error {
	power := newPanel("Performance", "Power [kW]")
	energy := newPanel("", "Cumulative energy")

	powerLines := make([]interface{}, 0, 2*len(estimates))
	energyLines := make([]interface{}, 0, 2*len(estimates))

	for _, pe := range estimates {
		if pe.Failed() {
			power.Legend.Add(fmt.Sprintf("%s: %s", pe.Point.Name, pe.Error))
			continue
		}
		if len(pe.Times) == 0 {
			power.Legend.Add(fmt.Sprintf("%s: no data in range", pe.Point.Name))
			continue
		}

		powerLines = append(powerLines, pe.Point.Name, timeSeries(pe, pe.Power))
		energyLines = append(energyLines, pe.Point.Name, timeSeries(pe, pe.Energy))
	}

	if err := plotutil.AddLines(power, powerLines...); err != nil {
		return fmt.Errorf("failed to add power lines: %w", err)
	}
	if err := plotutil.AddLines(energy, energyLines...); err != nil {
		return fmt.Errorf("failed to add energy lines: %w", err)
	}

	canvas := vgsvg.New(Width, Height)
	dc := draw.New(canvas)

	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      4 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}

	panels := [][]*plot.Plot{{power}, {energy}}
	canvases := plot.Align(panels, tiles, dc)
	for i := range panels {
		panels[i][0].Draw(canvases[i][0])
	}

	if _, err := canvas.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write svg: %w", err)
	}

	return nil
}

func newPanel(title, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	p.X.Label.Text = "Date"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

func timeSeries(pe *model.PointEstimate, values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(pe.Times[i].Unix())
		pts[i].Y = v
	}
	return pts
}
