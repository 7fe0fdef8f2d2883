// Package style classifies features into drawing styles. A List holds ordered
// rule/style pairs that end with an unconditional default; the first rule
// matching a feature's properties decides its style.
package style

import (
	"encoding/json"
	"strconv"

	"cardboard/internal/geom"
)

// Rule decides whether a style applies to a feature.
type Rule interface {
	Match(props geom.Properties) bool
}

// Always matches every feature.
type Always struct{}

func (Always) Match(geom.Properties) bool { return true }

// Interval matches numeric values of Prop in [Low, High).
type Interval struct {
	Prop      string
	Low, High float64
}

func (r Interval) Match(props geom.Properties) bool {
	n, ok := number(props[r.Prop])
	return ok && n >= r.Low && n < r.High
}

// OneOf matches string values of Prop equal to one of Tokens.
type OneOf struct {
	Prop   string
	Tokens []string
}

func (r OneOf) Match(props geom.Properties) bool {
	s, ok := props[r.Prop].(string)
	if !ok {
		return false
	}
	for _, t := range r.Tokens {
		if t == s {
			return true
		}
	}
	return false
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	}
	return 0, false
}

// Style describes how to paint a plane. A nil Stroke or Fill means that part
// is not painted.
type Style struct {
	StrokeWidth float64
	Stroke      *Color
	Fill        *Color
	Rule        Rule
}

// Default is stroked black, filled white, width 1, and matches everything.
func Default() Style {
	stroke, fill := Black, White
	return Style{StrokeWidth: 1, Stroke: &stroke, Fill: &fill, Rule: Always{}}
}

func (s Style) matches(props geom.Properties) bool {
	if s.Rule == nil {
		return true
	}
	return s.Rule.Match(props)
}

// List is an ordered set of styles for one layer. The last entry is always
// the default style.
type List struct {
	styles   []Style
	resolved []int
}

// NewList builds a list from styles and appends the default.
func NewList(styles ...Style) *List {
	l := &List{styles: make([]Style, 0, len(styles)+1)}
	l.styles = append(l.styles, styles...)
	l.styles = append(l.styles, Default())
	return l
}

func (l *List) Styles() []Style { return l.styles }

// Select returns the index of the first style matching props.
func (l *List) Select(props geom.Properties) int {
	for i, s := range l.styles {
		if s.matches(props) {
			return i
		}
	}
	// unreachable while the default is last
	return len(l.styles) - 1
}

// Apply resolves a style for every feature; props is indexed by feature.
func (l *List) Apply(props []geom.Properties) *List {
	l.resolved = make([]int, len(props))
	for i, p := range props {
		l.resolved[i] = l.Select(p)
	}
	return l
}

// Applied reports whether Apply has run.
func (l *List) Applied() bool { return l.resolved != nil }

// GetFor returns the resolved style of feature. ok is false before Apply and
// for features outside the applied range.
func (l *List) GetFor(feature int) (Style, bool) {
	if l == nil || l.resolved == nil || feature < 0 || feature >= len(l.resolved) {
		return Style{}, false
	}
	return l.styles[l.resolved[feature]], true
}

// Collection holds one List per layer.
type Collection []*List

func (c Collection) GetFor(layer, feature int) (Style, bool) {
	if layer < 0 || layer >= len(c) {
		return Style{}, false
	}
	return c[layer].GetFor(feature)
}
