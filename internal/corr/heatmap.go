package corr

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// HeatmapOptions controls rendering. Width and Height are in pixels at
// 96 DPI.
type HeatmapOptions struct {
	Title  string
	Width  int
	Height int
}

// grid adapts a Matrix to plotter.GridXYZ. The vertical axis is drawn
// in reverse order of the horizontal one: the first column's row sits
// at the top. NaN cells (the uncomputed upper triangle and undefined
// coefficients) are left unpainted by the heat map.
type grid struct {
	m Matrix
}

func (g grid) Dims() (c, r int) {
	n := len(g.m.Columns)
	return n, n
}

func (g grid) Z(c, r int) float64 {
	n := len(g.m.Columns)
	return g.m.Values[n-1-r][c]
}

func (g grid) X(c int) float64 { return float64(c) }
func (g grid) Y(r int) float64 { return float64(r) }

// labelTicks places one tick per axis position, labeled with a column
// name.
type labelTicks struct {
	labels []string
}

func (t labelTicks) Ticks(min, max float64) []plot.Tick {
	ticks := make([]plot.Tick, 0, len(t.labels))
	for i, l := range t.labels {
		v := float64(i)
		if v < min || v > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: l})
	}
	return ticks
}

// SavePNG renders the matrix as a labeled heatmap. Both axes carry the
// same ordered column list; the color scale is fixed to [-1, 1].
func (m Matrix) SavePNG(path string, opt HeatmapOptions) error {
	if len(m.Columns) == 0 {
		return fmt.Errorf("heatmap: no analyzable columns")
	}
	p := plot.New()
	p.Title.Text = opt.Title

	h := plotter.NewHeatMap(grid{m}, moreland.SmoothBlueRed().Palette(256))
	h.Min, h.Max = -1, 1
	p.Add(h)

	p.X.Tick.Marker = labelTicks{labels: m.Columns}
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	reversed := make([]string, len(m.Columns))
	for i, l := range m.Columns {
		reversed[len(m.Columns)-1-i] = l
	}
	p.Y.Tick.Marker = labelTicks{labels: reversed}

	w := vg.Length(opt.Width) * vg.Inch / 96
	hgt := vg.Length(opt.Height) * vg.Inch / 96
	if err := p.Save(w, hgt, path); err != nil {
		return fmt.Errorf("save heatmap: %w", err)
	}
	return nil
}
