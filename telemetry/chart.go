package telemetry

import (
	"fmt"
	"image/color"
	"io"

	"cropadvisory/models"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Chart dimensions used by the dashboard.
var (
	ChartWidth  = 9 * vg.Inch
	ChartHeight = 2.6 * vg.Inch
)

type chartSeries struct {
	name     string
	values   []float64
	min, max float64
	color    color.RGBA
}

// RenderChart draws the three series as a PNG line chart. Each series is
// plotted as a percentage of its own display scale (temperature 10-40 °C,
// moisture and humidity 20-100 %).
func RenderChart(w io.Writer, snap models.TelemetrySnapshot, width, height vg.Length) error {
	p := plot.New()
	p.Title.Text = "24h Conditions"
	p.X.Label.Text = "Hour"
	p.Y.Label.Text = "% of scale"
	p.Add(plotter.NewGrid())

	series := []chartSeries{
		{name: "Temp", values: snap.Series.Temperature, min: 10, max: 40, color: color.RGBA{R: 5, G: 150, B: 105, A: 255}},
		{name: "Moisture", values: snap.Series.Moisture, min: 20, max: 100, color: color.RGBA{R: 22, G: 163, B: 74, A: 255}},
		{name: "Humidity", values: snap.Series.Humidity, min: 20, max: 100, color: color.RGBA{R: 16, G: 185, B: 129, A: 255}},
	}
	for _, s := range series {
		points := make(plotter.XYs, len(s.values))
		for i, v := range s.values {
			points[i].X = float64(i)
			points[i].Y = (v - s.min) / (s.max - s.min) * 100
		}
		line, err := plotter.NewLine(points)
		if err != nil {
			return fmt.Errorf("building %s line: %w", s.name, err)
		}
		line.Color = s.color
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	p.Legend.Top = true
	p.Y.Min = 0
	p.Y.Max = 100
	p.NominalX(snap.Series.Labels...)

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("preparing chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}
	return nil
}
