package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/anaysharma/csv-xl-to-doc/internal/config"
	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

// groupWidth is the share of one subject slot covered by its bars
const groupWidth = 0.8

// Renderer draws grouped bar charts as PNG images
type Renderer struct {
	cfg config.ChartConfig
}

// NewRenderer creates a chart renderer. Zero values in cfg fall back to the
// defaults.
func NewRenderer(cfg config.ChartConfig) *Renderer {
	defaults := config.Default().Chart
	if len(cfg.Palette) == 0 {
		cfg.Palette = defaults.Palette
	}
	if cfg.YMax <= 0 {
		cfg.YMax = defaults.YMax
	}
	if cfg.Width <= 0 {
		cfg.Width = defaults.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = defaults.Height
	}
	if cfg.YLabel == "" {
		cfg.YLabel = defaults.YLabel
	}
	return &Renderer{cfg: cfg}
}

// Render draws the chart for one student and returns the PNG bytes
func (r *Renderer) Render(student domain.StudentRecord, subjects []string) ([]byte, error) {
	p, err := r.Plot(student, subjects)
	if err != nil {
		return nil, err
	}

	wt, err := p.WriterTo(vg.Length(r.cfg.Width)*vg.Inch, vg.Length(r.cfg.Height)*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create png writer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Plot builds the chart without encoding it
func (r *Renderer) Plot(student domain.StudentRecord, subjects []string) (*plot.Plot, error) {
	p := plot.New()
	p.BackgroundColor = color.Transparent

	p.Y.Label.Text = r.cfg.YLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Tick.Label.Font.Size = vg.Points(11)
	p.X.Tick.Label.Font.Size = vg.Points(12)
	p.X.Tick.LineStyle.Width = 0

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(grid)

	series := BuildSeries(student, subjects, r.cfg.Palette)
	if len(subjects) > 0 && len(series) > 0 {
		plotWidth := vg.Length(r.cfg.Width) * vg.Inch
		slot := plotWidth / vg.Length(len(subjects)+1)
		barWidth := slot * groupWidth / vg.Length(len(series))
		start := -barWidth*vg.Length(len(series))/2 + barWidth/2

		for i, s := range series {
			bars, err := plotter.NewBarChart(plotter.Values(s.Values), barWidth)
			if err != nil {
				return nil, fmt.Errorf("failed to build bars for %q: %w", s.Name, err)
			}
			fill, err := ParseHexColor(s.Color)
			if err != nil {
				return nil, err
			}
			bars.Color = fill
			bars.LineStyle.Color = color.White
			bars.LineStyle.Width = vg.Points(0.5)
			bars.Offset = start + vg.Length(i)*barWidth

			p.Add(bars)
			p.Legend.Add(s.Name, bars)
		}
	}

	if len(subjects) > 0 {
		p.NominalX(subjects...)
	}
	if len(subjects) > r.cfg.RotateAfter {
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.TextStyle.Font.Size = vg.Points(13)

	p.Y.Min = 0
	p.Y.Max = r.cfg.YMax

	return p, nil
}
