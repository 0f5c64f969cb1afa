package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// niceNum rounds x to 1, 2, 5 or 10 times a power of ten
func niceNum(x float64, round bool) float64 {
	if x <= 0 {
		return 1
	}
	exp := math.Floor(math.Log10(x))
	f := x / math.Pow(10, exp)
	var nf float64
	if round {
		switch {
		case f < 1.5:
			nf = 1
		case f < 3:
			nf = 2
		case f < 7:
			nf = 5
		default:
			nf = 10
		}
	} else {
		switch {
		case f <= 1:
			nf = 1
		case f <= 2:
			nf = 2
		case f <= 5:
			nf = 5
		default:
			nf = 10
		}
	}
	return nf * math.Pow(10, exp)
}

// countTicks returns evenly spaced tick values from 0 covering limit, and the
// axis top (the last tick).
func countTicks(limit float64, target int) ([]float64, float64) {
	if limit <= 0 {
		limit = 1
	}
	step := niceNum(niceNum(limit, false)/float64(target), true)
	top := math.Ceil(limit/step) * step
	ticks := make([]float64, 0, int(top/step)+1)
	for v := 0.0; v <= top+step/2; v += step {
		ticks = append(ticks, v)
	}
	return ticks, top
}

// Diverging palette endpoints: cool blue, neutral grey, warm red.
var (
	coolEnd = colorful.Color{R: 0.230, G: 0.299, B: 0.754}
	neutral = colorful.Color{R: 0.865, G: 0.865, B: 0.865}
	warmEnd = colorful.Color{R: 0.706, G: 0.016, B: 0.150}
)

// Diverging maps v in [vmin, vmax] onto a blue-grey-red scale whose grey
// midpoint sits at center. Values outside the range are clamped.
type Diverging struct {
	VMin, Center, VMax float64
}

// At returns the colour for v
func (d Diverging) At(v float64) colorful.Color {
	if v <= d.Center {
		t := 0.0
		if d.Center > d.VMin {
			t = (math.Max(v, d.VMin) - d.VMin) / (d.Center - d.VMin)
		}
		return coolEnd.BlendLab(neutral, t).Clamped()
	}
	t := 1.0
	if d.VMax > d.Center {
		t = (math.Min(v, d.VMax) - d.Center) / (d.VMax - d.Center)
	}
	return neutral.BlendLab(warmEnd, t).Clamped()
}

// relativeLuminance is the WCAG luminance of c
func relativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// textOn picks black or white text for legibility on background c
func textOn(c colorful.Color) color.Color {
	if relativeLuminance(c) > 0.408 {
		return color.Black
	}
	return color.White
}

// Categorical bar colours, one per hue level.
var palette = []colorful.Color{
	{R: 0.298, G: 0.447, B: 0.690},
	{R: 0.867, G: 0.518, B: 0.322},
	{R: 0.333, G: 0.659, B: 0.408},
	{R: 0.769, G: 0.306, B: 0.322},
}

func paletteColor(i int) colorful.Color {
	return palette[i%len(palette)]
}
