package style

import (
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"cardboard/internal/geom"
)

func colorPtr(c Color) *Color { return &c }

func TestRules(t *testing.T) {
	iv := Interval{Prop: "h", Low: 0, High: 10}
	oneOf := OneOf{Prop: "kind", Tokens: []string{"park", "garden"}}
	tests := []struct {
		name  string
		rule  Rule
		props geom.Properties
		want  bool
	}{
		{"always nil props", Always{}, nil, true},
		{"interval low bound", iv, geom.Properties{"h": 0.0}, true},
		{"interval high bound", iv, geom.Properties{"h": 10.0}, false},
		{"interval int", iv, geom.Properties{"h": 3}, true},
		{"interval json number", iv, geom.Properties{"h": json.Number("9.5")}, true},
		{"interval string", iv, geom.Properties{"h": "5"}, false},
		{"interval missing", iv, geom.Properties{}, false},
		{"interval nil props", iv, nil, false},
		{"oneof hit", oneOf, geom.Properties{"kind": "garden"}, true},
		{"oneof miss", oneOf, geom.Properties{"kind": "road"}, false},
		{"oneof number", oneOf, geom.Properties{"kind": 1.0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Match(tt.props); got != tt.want {
				t.Errorf("Match(%v) = %v, want %v", tt.props, got, tt.want)
			}
		})
	}
}

func TestNewListAppendsDefault(t *testing.T) {
	l := NewList()
	if len(l.Styles()) != 1 {
		t.Fatalf("styles = %d, want 1", len(l.Styles()))
	}
	d := l.Styles()[0]
	if d.StrokeWidth != 1 || *d.Stroke != Black || *d.Fill != White {
		t.Errorf("default = %+v", d)
	}
}

func TestSelectFirstMatchWins(t *testing.T) {
	red, blue := RGB(1, 0, 0), RGB(0, 0, 1)
	l := NewList(
		Style{StrokeWidth: 1, Fill: &red, Rule: Interval{Prop: "h", Low: 0, High: 100}},
		Style{StrokeWidth: 1, Fill: &blue, Rule: Interval{Prop: "h", Low: 0, High: 10}},
	)
	if got := l.Select(geom.Properties{"h": 5.0}); got != 0 {
		t.Errorf("Select = %d, want 0", got)
	}
	if got := l.Select(geom.Properties{"h": 500.0}); got != 2 {
		t.Errorf("Select = %d, want default 2", got)
	}
}

// continuous [0,10) red, default white; features valued 5 and 50
func TestApplyContinuous(t *testing.T) {
	l := NewList(Style{StrokeWidth: 1, Fill: colorPtr(RGB(1, 0, 0)), Rule: Interval{Prop: "v", Low: 0, High: 10}})
	if _, ok := l.GetFor(0); ok {
		t.Fatal("GetFor before Apply should fail")
	}
	l.Apply([]geom.Properties{{"v": 5.0}, {"v": 50.0}, nil})

	s, ok := l.GetFor(0)
	if !ok || *s.Fill != RGB(1, 0, 0) {
		t.Errorf("feature 0 = %+v, %v", s, ok)
	}
	s, ok = l.GetFor(1)
	if !ok || *s.Fill != White {
		t.Errorf("feature 1 = %+v, %v", s, ok)
	}
	if _, ok := l.GetFor(2); !ok {
		t.Error("feature without properties should resolve to default")
	}
	if _, ok := l.GetFor(3); ok {
		t.Error("out-of-range feature resolved")
	}
}

func TestCollectionGetFor(t *testing.T) {
	a := NewList().Apply([]geom.Properties{nil})
	b := NewList()
	c := Collection{a, b}
	if _, ok := c.GetFor(0, 0); !ok {
		t.Error("layer 0 feature 0 unresolved")
	}
	if _, ok := c.GetFor(1, 0); ok {
		t.Error("layer 1 not applied but resolved")
	}
	if _, ok := c.GetFor(2, 0); ok {
		t.Error("missing layer resolved")
	}
	var nilList *List
	if _, ok := (Collection{nilList}).GetFor(0, 0); ok {
		t.Error("nil list resolved")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"red", RGB(1, 0, 0), false},
		{"White", White, false},
		{"#00f", RGB(0, 0, 1), false},
		{"#ff0000", RGB(1, 0, 0), false},
		{"rgb(255, 0, 0)", RGB(1, 0, 0), false},
		{"rgba(0, 0, 255, 0.5)", Color{0, 0, 1, 0.5}, false},
		{"rgb(100%, 0%, 0%)", RGB(1, 0, 0), false},
		{"notacolor", Color{}, true},
		{"#zz0000", Color{}, true},
		{"rgb(1,2)", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !sameColor(got, tt.want) {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func sameColor(a, b Color) bool {
	const tol = 1e-3
	return math.Abs(a.R-b.R) < tol && math.Abs(a.G-b.G) < tol && math.Abs(a.B-b.B) < tol && math.Abs(a.A-b.A) < tol
}

func TestColorHex(t *testing.T) {
	if got := RGB(1, 0, 0).Hex(); got != "#ff0000" {
		t.Errorf("Hex = %q", got)
	}
	r, g, b, a := Color{0, 0.5, 1, 1}.RGBA8()
	if r != 0 || g != 128 || b != 255 || a != 255 {
		t.Errorf("RGBA8 = %d %d %d %d", r, g, b, a)
	}
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name   string
		json   string
		styles int
		check  func(t *testing.T, l *List)
	}{
		{
			name:   "simple",
			json:   `{"kind":"simple","strokeColor":"red","fillColor":"blue","strokeWidth":2.0}`,
			styles: 2,
			check: func(t *testing.T, l *List) {
				s := l.Styles()[0]
				if s.StrokeWidth != 2 || *s.Stroke != RGB(1, 0, 0) || *s.Fill != RGB(0, 0, 1) {
					t.Errorf("simple = %+v", s)
				}
			},
		},
		{
			name: "continuous",
			json: `{"kind":"continuous","propName":"height","intervals":[
				{"low":0,"high":10,"fillColor":"red","strokeColor":"none","strokeWidth":1},
				{"low":10,"high":20,"fillColor":"bogus","strokeColor":"","strokeWidth":0.5}]}`,
			styles: 3,
			check: func(t *testing.T, l *List) {
				first, second := l.Styles()[0], l.Styles()[1]
				if first.Stroke != nil || second.Stroke != nil {
					t.Error("none/empty stroke should be nil")
				}
				if *second.Fill != White {
					t.Errorf("bad color should fall back to white, got %+v", *second.Fill)
				}
				if iv, ok := first.Rule.(Interval); !ok || iv.Prop != "height" || iv.High != 10 {
					t.Errorf("rule = %#v", first.Rule)
				}
			},
		},
		{
			name: "discrete",
			json: `{"kind":"discrete","propName":"use","groups":[
				{"values":["park","wood"],"fillColor":"green","strokeColor":"black","strokeWidth":1}]}`,
			styles: 2,
			check: func(t *testing.T, l *List) {
				l.Apply([]geom.Properties{{"use": "wood"}, {"use": "road"}})
				if s, _ := l.GetFor(0); s.Rule == nil || *s.Fill == White {
					t.Errorf("wood = %+v", s)
				}
				if s, _ := l.GetFor(1); *s.Fill != White {
					t.Errorf("road = %+v", s)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ParseConfig([]byte(tt.json), 0)
			if err != nil {
				t.Fatalf("ParseConfig: %v", err)
			}
			if len(l.Styles()) != tt.styles {
				t.Fatalf("styles = %d, want %d", len(l.Styles()), tt.styles)
			}
			tt.check(t, l)
		})
	}
}

func TestParseConfigUnknownKind(t *testing.T) {
	_, err := ParseConfig([]byte(`{"kind":"gradient"}`), 3)
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("err = %v, want ErrUnknownKind", err)
	}
	if _, err := ParseConfig([]byte(`{`), 0); err == nil || errors.Is(err, ErrUnknownKind) {
		t.Errorf("syntax error = %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.json")
	if err := os.WriteFile(path, []byte(`{"kind":"simple","strokeColor":"black","fillColor":"#eee","strokeWidth":1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := LoadConfig(path, 0)
	if err != nil || len(l.Styles()) != 2 {
		t.Fatalf("LoadConfig = %v, %v", l, err)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"), 0); err == nil {
		t.Error("expected error for missing file")
	}
}
