package style

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Color is a straight (non-premultiplied) RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
)

func RGB(r, g, b float64) Color { return Color{r, g, b, 1} }

// ParseColor accepts CSS color names, #rgb / #rrggbb and rgb()/rgba() notation.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Color{}, fmt.Errorf("color: empty")
	}
	if c, ok := colornames.Map[s]; ok {
		return Color{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255}, nil
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: %w", s, err)
		}
		return Color{c.R, c.G, c.B, 1}, nil
	}
	if strings.HasPrefix(s, "rgb") {
		return parseFunctional(s)
	}
	return Color{}, fmt.Errorf("color %q: unknown format", s)
}

// parseFunctional reads rgb(r, g, b) and rgba(r, g, b, a); channels are 0-255
// or percentages, alpha is 0-1.
func parseFunctional(s string) (Color, error) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return Color{}, fmt.Errorf("color %q: unbalanced parentheses", s)
	}
	args := strings.Split(s[open+1:end], ",")
	if len(args) != 3 && len(args) != 4 {
		return Color{}, fmt.Errorf("color %q: want 3 or 4 components", s)
	}
	var v [4]float64
	v[3] = 1
	for i, a := range args {
		a = strings.TrimSpace(a)
		pct := strings.HasSuffix(a, "%")
		n, err := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: %w", s, err)
		}
		switch {
		case pct:
			n /= 100
		case i < 3:
			n /= 255
		}
		v[i] = clamp01(n)
	}
	return Color{v[0], v[1], v[2], v[3]}, nil
}

// Hex formats the color as #rrggbb, dropping alpha.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// RGBA8 returns the color as 8-bit channels.
func (c Color) RGBA8() (r, g, b, a uint8) {
	to8 := func(v float64) uint8 { return uint8(clamp01(v)*255 + 0.5) }
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
