package render

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/recording"
	_ "github.com/gogpu/gg/recording/backends/raster"

	"cardboard/internal/style"
)

// PNG records paths with gg's recorder and rasterizes them on output.
type PNG struct {
	rec *recording.Recorder
}

// NewPNG starts a white width×height page.
func NewPNG(width, height int) *PNG {
	rec := recording.NewRecorder(width, height)
	rec.ClearWithColor(gg.RGBA{R: 1, G: 1, B: 1, A: 1})
	return &PNG{rec: rec}
}

func (p *PNG) NewPath()            { p.rec.ClearPath() }
func (p *PNG) MoveTo(x, y float64) { p.rec.MoveTo(x, y) }
func (p *PNG) LineTo(x, y float64) { p.rec.LineTo(x, y) }
func (p *PNG) ClosePath()          { p.rec.ClosePath() }

func (p *PNG) FillStroke(fill, stroke *style.Color, width float64) {
	if fill != nil {
		p.rec.SetFillRGBA(fill.R, fill.G, fill.B, fill.A)
		p.rec.FillPreserve()
	}
	if stroke != nil {
		p.rec.SetLineWidth(width)
		p.rec.SetStrokeRGBA(stroke.R, stroke.G, stroke.B, stroke.A)
		p.rec.StrokePreserve()
	}
	p.rec.ClearPath()
}

func (p *PNG) rasterize() (recording.Backend, error) {
	backend, err := recording.NewBackend("raster")
	if err != nil {
		return nil, err
	}
	if err := p.rec.FinishRecording().Playback(backend); err != nil {
		return nil, fmt.Errorf("png playback: %w", err)
	}
	return backend, nil
}

// WriteTo encodes the page as PNG.
func (p *PNG) WriteTo(w io.Writer) (int64, error) {
	backend, err := p.rasterize()
	if err != nil {
		return 0, err
	}
	wb, ok := backend.(recording.WriterBackend)
	if !ok {
		return 0, errors.New("png: raster backend cannot write streams")
	}
	return wb.WriteTo(w)
}

func (p *PNG) Save(path string) error {
	backend, err := p.rasterize()
	if err != nil {
		return err
	}
	fb, ok := backend.(recording.FileBackend)
	if !ok {
		return errors.New("png: raster backend cannot write files")
	}
	return fb.SaveToFile(path)
}

// Image rasterizes the page.
func (p *PNG) Image() (image.Image, error) {
	backend, err := p.rasterize()
	if err != nil {
		return nil, err
	}
	pb, ok := backend.(recording.PixmapBackend)
	if !ok {
		return nil, errors.New("png: raster backend has no pixmap")
	}
	return pb.Pixmap().ToImage(), nil
}
