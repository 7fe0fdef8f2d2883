// Package render replays an operation list onto a drawing surface.
package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"cardboard/internal/draw"
	"cardboard/internal/style"
)

// Surface is a path-based drawing target.
type Surface interface {
	NewPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	// FillStroke paints the current path and starts a new one. A nil color
	// skips that part.
	FillStroke(fill, stroke *style.Color, width float64)
}

// Getter resolves the style of a plane from its layer and feature index.
type Getter interface {
	GetFor(layer, feature int) (style.Style, bool)
}

// Paint replays ops on s. Paint ops with no resolvable style draw nothing.
func Paint(ops draw.OpList, styles Getter, s Surface) {
	for _, op := range ops {
		switch op.Kind {
		case draw.Begin:
			s.NewPath()
		case draw.Move:
			s.MoveTo(op.X, op.Y)
		case draw.Line:
			s.LineTo(op.X, op.Y)
		case draw.Close:
			s.ClosePath()
		case draw.Paint:
			st, ok := styles.GetFor(op.Layer, op.Index)
			if !ok {
				s.NewPath()
				continue
			}
			s.FillStroke(st.Fill, st.Stroke, st.StrokeWidth)
		}
	}
}

// File paints ops onto a width×height page and writes it to path; the
// format comes from the extension (.png or .pdf).
func File(path string, width, height float64, ops draw.OpList, styles Getter) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		s := NewPNG(int(width), int(height))
		Paint(ops, styles, s)
		return s.Save(path)
	case ".pdf":
		s := NewPDF(width, height)
		Paint(ops, styles, s)
		return s.Save(path)
	}
	return fmt.Errorf("render: unsupported output %q (want .png or .pdf)", path)
}
