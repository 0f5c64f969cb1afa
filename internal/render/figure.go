// Package render draws the pipeline's figures onto raster canvases and
// encodes them as PNG.
package render

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sync"

	"medviz/domain/core"
	"medviz/internal/errors"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Figure is a rendered, in-memory image. It is the handle returned to
// callers; Save writes it to disk.
type Figure struct {
	Name   string
	Width  int
	Height int
	Path   string          // set by Save
	Hash   core.FigureHash // fingerprint of the last encoded PNG
	dc     *gg.Context
}

func newFigure(name string, width, height int) *Figure {
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	return &Figure{Name: name, Width: width, Height: height, dc: dc}
}

// Image returns the rendered pixels
func (f *Figure) Image() image.Image {
	return f.dc.Image()
}

// EncodePNG writes the figure as PNG to w
func (f *Figure) EncodePNG(w io.Writer) error {
	var buf bytes.Buffer
	if err := f.dc.EncodePNG(&buf); err != nil {
		return errors.RenderError(f.Name, err)
	}
	f.Hash = core.NewFigureHash(buf.Bytes())
	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(errors.WithCode(errors.CodeIOError, err), "failed to write png")
	}
	return nil
}

// Save encodes the figure to path, replacing any existing file. The image
// is written to a temporary file in the same directory first so a failed
// run never leaves a truncated PNG behind.
func (f *Figure) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.IOError(dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.IOError(path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := f.EncodePNG(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.IOError(tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.IOError(path, err)
	}
	f.Path = path
	return nil
}

var (
	fontOnce   sync.Once
	parsedFont *truetype.Font
	fontErr    error
)

// fontFace returns a new face of the embedded Go Regular font. Faces cache
// glyphs and are not safe for concurrent use, so every figure gets its own.
func fontFace(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		parsedFont, fontErr = truetype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, errors.RenderError("font", fontErr)
	}
	return truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// faces bundles the sizes a figure uses
type faces struct {
	tick  font.Face
	label font.Face
	title font.Face
}

func loadFaces(tick, label, title float64) (*faces, error) {
	t, err := fontFace(tick)
	if err != nil {
		return nil, err
	}
	l, err := fontFace(label)
	if err != nil {
		return nil, err
	}
	ti, err := fontFace(title)
	if err != nil {
		return nil, err
	}
	return &faces{tick: t, label: l, title: ti}, nil
}

// drawVerticalText draws s rotated a quarter turn counter-clockwise,
// anchored like DrawStringAnchored in the rotated frame.
func drawVerticalText(dc *gg.Context, s string, x, y, ax, ay float64) {
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), x, y)
	dc.DrawStringAnchored(s, x, y, ax, ay)
	dc.Pop()
}
