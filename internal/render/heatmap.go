package render

import (
	"fmt"
	"image/color"
	"math"

	"medviz/internal/analysis"
	"medviz/internal/errors"
)

// HeatMapOptions controls the correlation figure
type HeatMapOptions struct {
	Width          int
	Height         int
	VMin           float64
	Center         float64
	VMax           float64
	Format         string  // annotation format
	LineWidth      float64 // grid lines between cells
	ColorBarShrink float64 // colour bar height relative to the grid
}

// DefaultHeatMapOptions returns a 12x10in figure at 100 dpi with a
// diverging [-1, 1] scale centred on 0
func DefaultHeatMapOptions() HeatMapOptions {
	return HeatMapOptions{
		Width:          1200,
		Height:         1000,
		VMin:           -1,
		Center:         0,
		VMax:           1,
		Format:         "%.1f",
		LineWidth:      0.5,
		ColorBarShrink: 0.5,
	}
}

const (
	heatLeft     = 130.0
	heatTop      = 40.0
	heatBottom   = 130.0
	heatRight    = 170.0
	colorBarGap  = 30.0
	colorBarWide = 20.0
)

// HeatMapLayout is the geometry of a heatmap figure, in pixels
type HeatMapLayout struct {
	Left float64
	Top  float64
	Cell float64
	N    int
	BarX float64
	BarY float64
	BarW float64
	BarH float64
}

// NewHeatMapLayout computes square cells for an n×n matrix
func NewHeatMapLayout(n int, opts HeatMapOptions) HeatMapLayout {
	avail := math.Min(float64(opts.Width)-heatLeft-heatRight, float64(opts.Height)-heatTop-heatBottom)
	cell := math.Floor(avail / float64(n))
	grid := cell * float64(n)
	barH := grid * opts.ColorBarShrink
	return HeatMapLayout{
		Left: heatLeft,
		Top:  heatTop,
		Cell: cell,
		N:    n,
		BarX: heatLeft + grid + colorBarGap,
		BarY: heatTop + (grid-barH)/2,
		BarW: colorBarWide,
		BarH: barH,
	}
}

// CellRect returns the rectangle of the cell at row i, column j
func (l HeatMapLayout) CellRect(i, j int) (x, y, w, h float64) {
	return l.Left + float64(j)*l.Cell, l.Top + float64(i)*l.Cell, l.Cell, l.Cell
}

// Grid returns the side length of the cell grid
func (l HeatMapLayout) Grid() float64 {
	return l.Cell * float64(l.N)
}

// HeatMap draws the cells of m not hidden by mask, annotated with their
// values. Masked and NaN cells are left blank.
func HeatMap(m *analysis.CorrelationMatrix, mask [][]bool, opts HeatMapOptions) (*Figure, error) {
	if m == nil || m.Size() == 0 {
		return nil, errors.ValidationError("heatmap needs a non-empty matrix")
	}
	n := m.Size()
	if mask != nil && len(mask) != n {
		return nil, errors.InvalidInput(fmt.Sprintf("mask has %d rows, matrix has %d", len(mask), n))
	}

	f := newFigure("heatmap", opts.Width, opts.Height)
	fc, err := loadFaces(12, 12, 13)
	if err != nil {
		return nil, err
	}
	dc := f.dc
	l := NewHeatMapLayout(n, opts)
	scale := Diverging{VMin: opts.VMin, Center: opts.Center, VMax: opts.VMax}

	dc.SetFontFace(fc.tick)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if mask != nil && mask[i][j] {
				continue
			}
			v := m.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			x, y, w, h := l.CellRect(i, j)
			fill := scale.At(v)
			dc.DrawRectangle(x, y, w, h)
			dc.SetColor(fill)
			dc.FillPreserve()
			dc.SetColor(color.White)
			dc.SetLineWidth(2 * opts.LineWidth)
			dc.Stroke()

			dc.SetColor(textOn(fill))
			dc.DrawStringAnchored(fmt.Sprintf(opts.Format, v), x+w/2, y+h/2, 0.5, 0.35)
		}
	}

	dc.SetColor(color.Black)
	for i, name := range m.Columns {
		c := (float64(i) + 0.5) * l.Cell
		dc.DrawStringAnchored(name, l.Left-8, l.Top+c, 1, 0.35)
		drawVerticalText(dc, name, l.Left+c, l.Top+l.Grid()+8, 1, 0.35)
	}

	drawColorBar(f, l, scale, opts)
	return f, nil
}

func drawColorBar(f *Figure, l HeatMapLayout, scale Diverging, opts HeatMapOptions) {
	dc := f.dc
	steps := int(math.Max(1, math.Round(l.BarH)))
	for s := 0; s < steps; s++ {
		// top of the bar is VMax
		t := 1 - float64(s)/float64(steps)
		v := opts.VMin + t*(opts.VMax-opts.VMin)
		dc.DrawRectangle(l.BarX, l.BarY+float64(s), l.BarW, 1)
		dc.SetColor(scale.At(v))
		dc.Fill()
	}

	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	dc.DrawRectangle(l.BarX, l.BarY, l.BarW, l.BarH)
	dc.Stroke()

	for k := 0; k <= 4; k++ {
		v := opts.VMin + float64(k)/4*(opts.VMax-opts.VMin)
		y := l.BarY + l.BarH - float64(k)/4*l.BarH
		dc.DrawLine(l.BarX+l.BarW, y, l.BarX+l.BarW+4, y)
		dc.Stroke()
		dc.DrawStringAnchored(fmt.Sprintf("%.1f", v), l.BarX+l.BarW+8, y, 0, 0.35)
	}
}
