package style

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrUnknownKind is returned for a style config whose kind is not simple,
// continuous or discrete.
var ErrUnknownKind = errors.New("unknown style kind")

type paint struct {
	StrokeColor string  `json:"strokeColor"`
	FillColor   string  `json:"fillColor"`
	StrokeWidth float64 `json:"strokeWidth"`
}

type interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
	paint
}

type group struct {
	Values []string `json:"values"`
	paint
}

type config struct {
	Kind      string     `json:"kind"`
	PropName  string     `json:"propName"`
	Intervals []interval `json:"intervals"`
	Groups    []group    `json:"groups"`
	paint
}

// ParseConfig decodes a JSON style config for layer into a List. The layer
// only contextualizes errors.
func ParseConfig(data []byte, layer int) (*List, error) {
	var c config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("layer %d: style config: %w", layer, err)
	}
	var styles []Style
	switch strings.ToLower(c.Kind) {
	case "simple":
		styles = append(styles, c.paint.style(Always{}))
	case "continuous":
		for _, it := range c.Intervals {
			styles = append(styles, it.paint.style(Interval{Prop: c.PropName, Low: it.Low, High: it.High}))
		}
	case "discrete":
		for _, g := range c.Groups {
			styles = append(styles, g.paint.style(OneOf{Prop: c.PropName, Tokens: g.Values}))
		}
	default:
		return nil, fmt.Errorf("layer %d: %w %q", layer, ErrUnknownKind, c.Kind)
	}
	return NewList(styles...), nil
}

func LoadConfig(path string, layer int) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layer %d: %w", layer, err)
	}
	return ParseConfig(data, layer)
}

func (p paint) style(r Rule) Style {
	return Style{
		StrokeWidth: p.StrokeWidth,
		Stroke:      configColor(p.StrokeColor),
		Fill:        configColor(p.FillColor),
		Rule:        r,
	}
}

// configColor resolves a config color. Empty and "none" disable painting;
// unparseable values fall back to white.
func configColor(s string) *Color {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return nil
	}
	c, err := ParseColor(s)
	if err != nil {
		c = White
	}
	return &c
}
