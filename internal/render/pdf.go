package render

import (
	"io"

	"github.com/jung-kurt/gofpdf"

	"cardboard/internal/style"
)

// PDF draws paths on a single page measured in points.
type PDF struct {
	doc  *gofpdf.Fpdf
	open bool
}

func NewPDF(width, height float64) *PDF {
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	return &PDF{doc: doc}
}

// NewPath discards an unpainted path. gofpdf keeps the path in the page
// stream, so an open path is ended without painting ("n" operator).
func (p *PDF) NewPath() {
	if p.open {
		p.doc.RawWriteStr("n\n")
		p.open = false
	}
}

func (p *PDF) MoveTo(x, y float64) {
	p.doc.MoveTo(x, y)
	p.open = true
}

func (p *PDF) LineTo(x, y float64) { p.doc.LineTo(x, y) }

func (p *PDF) ClosePath() { p.doc.ClosePath() }

func (p *PDF) FillStroke(fill, stroke *style.Color, width float64) {
	op := ""
	alpha := 1.0
	if fill != nil {
		r, g, b, _ := fill.RGBA8()
		p.doc.SetFillColor(int(r), int(g), int(b))
		alpha = fill.A
		op += "F"
	}
	if stroke != nil {
		r, g, b, _ := stroke.RGBA8()
		p.doc.SetDrawColor(int(r), int(g), int(b))
		p.doc.SetLineWidth(width)
		if fill == nil {
			alpha = stroke.A
		}
		op += "D"
	}
	if op == "" {
		p.NewPath()
		return
	}
	p.doc.SetAlpha(alpha, "Normal")
	p.doc.DrawPath(op)
	p.open = false
}

func (p *PDF) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	err := p.doc.Output(cw)
	return cw.n, err
}

func (p *PDF) Save(path string) error {
	return p.doc.OutputFileAndClose(path)
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
