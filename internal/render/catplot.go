package render

import (
	"fmt"
	"image/color"
	"strconv"

	"medviz/internal/analysis"
	"medviz/internal/errors"
)

// CatPlotOptions controls the categorical count figure
type CatPlotOptions struct {
	Width  int
	Height int
	XLabel string
	YLabel string
	Facet  string // name shown in panel titles, "cardio = N"
	Hue    string // legend title
}

// DefaultCatPlotOptions returns two 5in square facets at 100 dpi
func DefaultCatPlotOptions() CatPlotOptions {
	return CatPlotOptions{
		Width:  1000,
		Height: 500,
		XLabel: "variable",
		YLabel: "total",
		Facet:  "cardio",
		Hue:    "value",
	}
}

const (
	catLeft   = 70.0
	catTop    = 40.0
	catBottom = 60.0
	catGap    = 30.0
	catLegend = 100.0
	barGroup  = 0.8 // share of a category slot taken by its bars
)

// CatPlotLayout is the geometry of a categorical figure, in pixels
type CatPlotLayout struct {
	Left        float64
	Top         float64
	PanelWidth  float64
	PanelHeight float64
	Gap         float64
	Panels      int
	Categories  int
	Hues        int
	YTicks      []float64
	YTop        float64
}

// NewCatPlotLayout computes the figure geometry for counts
func NewCatPlotLayout(counts *analysis.FeatureCounts, opts CatPlotOptions) CatPlotLayout {
	panels := len(counts.CardioLevels)
	ticks, top := countTicks(float64(counts.Max())*1.05, 5)
	l := CatPlotLayout{
		Left:        catLeft,
		Top:         catTop,
		PanelHeight: float64(opts.Height) - catTop - catBottom,
		Gap:         catGap,
		Panels:      panels,
		Categories:  len(counts.Features),
		Hues:        len(counts.ValueLevels),
		YTicks:      ticks,
		YTop:        top,
	}
	if panels > 0 {
		l.PanelWidth = (float64(opts.Width) - catLeft - catLegend - catGap*float64(panels-1)) / float64(panels)
	}
	return l
}

// PanelOrigin returns the top-left corner of panel p's plot area
func (l CatPlotLayout) PanelOrigin(p int) (x, y float64) {
	return l.Left + float64(p)*(l.PanelWidth+l.Gap), l.Top
}

// BarRect returns the rectangle of one bar
func (l CatPlotLayout) BarRect(panel, category, hue int, count float64) (x, y, w, h float64) {
	px, py := l.PanelOrigin(panel)
	slot := l.PanelWidth / float64(l.Categories)
	group := slot * barGroup
	w = group / float64(l.Hues)
	x = px + float64(category)*slot + (slot-group)/2 + float64(hue)*w
	h = count / l.YTop * l.PanelHeight
	y = py + l.PanelHeight - h
	return x, y, w, h
}

func (l CatPlotLayout) yPixel(v float64) float64 {
	return l.Top + l.PanelHeight - v/l.YTop*l.PanelHeight
}

// CatPlot draws one panel per cardio level with grouped count bars per
// feature, coloured by feature value.
func CatPlot(counts *analysis.FeatureCounts, opts CatPlotOptions) (*Figure, error) {
	if counts == nil || len(counts.CardioLevels) == 0 || len(counts.ValueLevels) == 0 {
		return nil, errors.ValidationError("categorical plot has no rows to count")
	}

	f := newFigure("catplot", opts.Width, opts.Height)
	fc, err := loadFaces(11, 13, 13)
	if err != nil {
		return nil, err
	}
	dc := f.dc
	l := NewCatPlotLayout(counts, opts)

	for p, cardio := range counts.CardioLevels {
		px, py := l.PanelOrigin(p)

		for c, feature := range counts.Features {
			for h, value := range counts.ValueLevels {
				x, y, w, bh := l.BarRect(p, c, h, float64(counts.Count(cardio, feature, value)))
				dc.DrawRectangle(x, y, w, bh)
				dc.SetColor(paletteColor(h))
				dc.Fill()
			}
		}

		// spines
		dc.SetColor(color.Black)
		dc.SetLineWidth(1)
		dc.DrawLine(px, py, px, py+l.PanelHeight)
		dc.DrawLine(px, py+l.PanelHeight, px+l.PanelWidth, py+l.PanelHeight)
		dc.Stroke()

		// x ticks
		dc.SetFontFace(fc.tick)
		slot := l.PanelWidth / float64(l.Categories)
		for c, feature := range counts.Features {
			cx := px + (float64(c)+0.5)*slot
			dc.DrawLine(cx, py+l.PanelHeight, cx, py+l.PanelHeight+4)
			dc.Stroke()
			dc.DrawStringAnchored(feature, cx, py+l.PanelHeight+8, 0.5, 1)
		}

		// y ticks; facets share the axis, so only the first carries labels
		for _, v := range l.YTicks {
			y := l.yPixel(v)
			dc.DrawLine(px-4, y, px, y)
			dc.Stroke()
			if p == 0 {
				dc.DrawStringAnchored(strconv.Itoa(int(v)), px-7, y, 1, 0.5)
			}
		}

		dc.SetFontFace(fc.label)
		dc.DrawStringAnchored(opts.XLabel, px+l.PanelWidth/2, float64(opts.Height)-12, 0.5, 0)
		dc.SetFontFace(fc.title)
		dc.DrawStringAnchored(fmt.Sprintf("%s = %d", opts.Facet, cardio), px+l.PanelWidth/2, py-12, 0.5, 0)
	}

	dc.SetFontFace(fc.label)
	drawVerticalText(dc, opts.YLabel, 16, l.Top+l.PanelHeight/2, 0.5, 1)

	drawLegend(f, fc, opts.Hue, counts.ValueLevels, l)
	return f, nil
}

func drawLegend(f *Figure, fc *faces, title string, levels []int, l CatPlotLayout) {
	dc := f.dc
	lx := float64(f.Width) - catLegend + 20
	ly := l.Top + l.PanelHeight/2 - float64(len(levels)+1)*11

	dc.SetColor(color.Black)
	dc.SetFontFace(fc.label)
	dc.DrawStringAnchored(title, lx, ly, 0, 0.5)
	dc.SetFontFace(fc.tick)
	for i, v := range levels {
		y := ly + float64(i+1)*22
		dc.DrawRectangle(lx, y-6, 14, 12)
		dc.SetColor(paletteColor(i))
		dc.Fill()
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(strconv.Itoa(v), lx+22, y, 0, 0.5)
	}
}
