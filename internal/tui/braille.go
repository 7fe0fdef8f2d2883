package tui

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cardboard/internal/style"
)

// micro-pixel states
const (
	pxEmpty uint8 = iota
	pxFill
	pxEdge
)

type micro struct {
	state uint8
	color int16 // palette index
}

// brailleCanvas is a render.Surface drawing on a 2x4 micro-grid per terminal
// cell. Fills hide what lies under them; edges become braille dots. Each cell
// is colored with its dominant fill (background) and edge (foreground) color.
type brailleCanvas struct {
	w, h    int // in cells
	px      [][]micro
	palette []string
	index   map[string]int16
	offY    float64

	path  [][2]float64
	rings [][][2]float64
}

// newBrailleCanvas sizes a canvas of w×h cells. Drawing space is a square
// of side 2w micro-pixels, vertically centered.
func newBrailleCanvas(w, h int) *brailleCanvas {
	px := make([][]micro, h*4)
	for i := range px {
		px[i] = make([]micro, w*2)
	}
	return &brailleCanvas{
		w: w, h: h, px: px,
		index: map[string]int16{},
		offY:  float64(h*4-w*2) / 2,
	}
}

// drawWidth is the width to project for.
func (b *brailleCanvas) drawWidth() float64 { return float64(b.w * 2) }

func (b *brailleCanvas) NewPath() {
	b.path = nil
	b.rings = nil
}

func (b *brailleCanvas) MoveTo(x, y float64) {
	b.flushRing()
	b.path = append(b.path, [2]float64{x, y + b.offY})
}

func (b *brailleCanvas) LineTo(x, y float64) {
	b.path = append(b.path, [2]float64{x, y + b.offY})
}

func (b *brailleCanvas) ClosePath() { b.flushRing() }

func (b *brailleCanvas) flushRing() {
	if len(b.path) > 0 {
		b.rings = append(b.rings, b.path)
		b.path = nil
	}
}

func (b *brailleCanvas) FillStroke(fill, stroke *style.Color, _ float64) {
	b.flushRing()
	if fill != nil {
		c := b.colorIndex(*fill)
		for _, r := range b.rings {
			b.fillRing(r, c)
		}
	}
	if stroke != nil {
		c := b.colorIndex(*stroke)
		for _, r := range b.rings {
			for i := range r {
				p, q := r[i], r[(i+1)%len(r)]
				if p, q, ok := b.clip(p, q); ok {
					b.drawLineMicro(round(p[0]), round(p[1]), round(q[0]), round(q[1]), c)
				}
			}
		}
	}
	b.rings = nil
}

func (b *brailleCanvas) colorIndex(c style.Color) int16 {
	hex := c.Hex()
	if i, ok := b.index[hex]; ok {
		return i
	}
	i := int16(len(b.palette))
	b.palette = append(b.palette, hex)
	b.index[hex] = i
	return i
}

func round(v float64) int { return int(math.Floor(v + 0.5)) }

// clip trims segment pq to the micro-grid (Liang-Barsky). ok is false when
// nothing remains or a coordinate is not finite.
func (b *brailleCanvas) clip(p, q [2]float64) ([2]float64, [2]float64, bool) {
	for _, v := range [4]float64{p[0], p[1], q[0], q[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return p, q, false
		}
	}
	dx, dy := q[0]-p[0], q[1]-p[1]
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, p[0]},
		{dx, float64(b.w*2-1) - p[0]},
		{-dy, p[1]},
		{dy, float64(b.h*4-1) - p[1]},
	}
	for _, e := range edges {
		pe, qe := e[0], e[1]
		if pe == 0 {
			if qe < 0 {
				return p, q, false
			}
			continue
		}
		t := qe / pe
		if pe < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return p, q, false
		}
	}
	return [2]float64{p[0] + t0*dx, p[1] + t0*dy}, [2]float64{p[0] + t1*dx, p[1] + t1*dy}, true
}

func (b *brailleCanvas) set(mx, my int, state uint8, c int16) {
	if my < 0 || my >= len(b.px) || mx < 0 || mx >= len(b.px[my]) {
		return
	}
	b.px[my][mx] = micro{state: state, color: c}
}

// fillRing fills with the even-odd rule, sampling each micro row at its center.
func (b *brailleCanvas) fillRing(r [][2]float64, c int16) {
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range r {
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	if math.IsNaN(minY) || math.IsNaN(maxY) {
		return
	}
	minY, maxY = math.Max(minY, -1), math.Min(maxY, float64(len(b.px)))
	y0 := max(0, int(math.Floor(minY)))
	y1 := min(len(b.px)-1, int(math.Ceil(maxY)))
	var xs []float64
	for my := y0; my <= y1; my++ {
		sy := float64(my) + 0.5
		xs = xs[:0]
		for i := range r {
			a, q := r[i], r[(i+1)%len(r)]
			if a[1] == q[1] {
				continue
			}
			if (sy >= a[1] && sy < q[1]) || (sy >= q[1] && sy < a[1]) {
				t := (sy - a[1]) / (q[1] - a[1])
				xs = append(xs, a[0]+t*(q[0]-a[0]))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			lo := math.Max(xs[i], -1)
			hi := math.Min(xs[i+1], float64(b.w*2+1))
			start := max(0, int(math.Ceil(lo-0.5)))
			end := min(b.w*2-1, int(math.Floor(hi-0.5)))
			for mx := start; mx <= end; mx++ {
				b.set(mx, my, pxFill, c)
			}
		}
	}
}

// drawLineMicro draws a line on the micro-grid using Bresenham.
func (b *brailleCanvas) drawLineMicro(x0, y0, x1, y1 int, c int16) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.set(x0, y0, pxEdge, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

var brailleBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// cell returns the braille rune and the edge/fill palette indexes (-1 for none).
func (b *brailleCanvas) cell(cx, cy int) (rune, int16, int16) {
	var mask uint8
	fg, bg := int16(-1), int16(-1)
	var fills [8]int16
	nf := 0
	for ry := range 4 {
		for rx := range 2 {
			p := b.px[cy*4+ry][cx*2+rx]
			switch p.state {
			case pxEdge:
				mask |= brailleBits[ry][rx]
				fg = p.color
			case pxFill:
				fills[nf] = p.color
				nf++
			}
		}
	}
	// majority fill color of the cell
	best := 0
	for i := range nf {
		n := 0
		for j := range nf {
			if fills[j] == fills[i] {
				n++
			}
		}
		if n > best {
			best, bg = n, fills[i]
		}
	}
	if mask == 0 {
		return ' ', fg, bg
	}
	return rune(0x2800 + int(mask)), fg, bg
}

// lines renders the canvas, merging runs of equally colored cells into a
// single styled segment.
func (b *brailleCanvas) lines() []string {
	out := make([]string, b.h)
	for cy := range b.h {
		var sb strings.Builder
		var run []rune
		curFg, curBg := int16(-2), int16(-2)
		flush := func() {
			if len(run) == 0 {
				return
			}
			st := lipgloss.NewStyle()
			if curFg >= 0 {
				st = st.Foreground(lipgloss.Color(b.palette[curFg]))
			}
			if curBg >= 0 {
				st = st.Background(lipgloss.Color(b.palette[curBg]))
			}
			if curFg < 0 && curBg < 0 {
				sb.WriteString(string(run))
			} else {
				sb.WriteString(st.Render(string(run)))
			}
			run = run[:0]
		}
		for cx := range b.w {
			r, fg, bg := b.cell(cx, cy)
			if fg != curFg || bg != curBg {
				flush()
				curFg, curBg = fg, bg
			}
			run = append(run, r)
		}
		flush()
		out[cy] = sb.String()
	}
	return out
}

// plain renders without colors, marking filled blank cells with a shade.
func (b *brailleCanvas) plain() []string {
	out := make([]string, b.h)
	for cy := range b.h {
		row := make([]rune, b.w)
		for cx := range b.w {
			r, _, bg := b.cell(cx, cy)
			if r == ' ' && bg >= 0 {
				r = '░'
			}
			row[cx] = r
		}
		out[cy] = string(row)
	}
	return out
}
