package geom

import (
	"bufio"
	"errors"
	"os"
	"strconv"
	"strings"
)

// ParseWKT parses one POLYGON or MULTIPOLYGON (optionally tagged Z) into planes.
// Tuples are "x y" or "x y z"; malformed tuples are skipped. Other geometry
// types parse to zero planes without error.
func ParseWKT(wkt string, layer, feature int) (PlaneList, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	parseTuples := func(block string) []Point {
		var out []Point
		for _, tup := range strings.Split(block, ",") {
			parts := strings.Fields(strings.TrimSpace(tup))
			if len(parts) < 2 {
				continue
			}
			coords := make([]float64, 0, 3)
			for _, p := range parts[:min(3, len(parts))] {
				v, err := strconv.ParseFloat(strings.Trim(p, "()"), 64)
				if err != nil {
					coords = nil
					break
				}
				coords = append(coords, v)
			}
			if pt, ok := pointFromCoords(coords); ok {
				out = append(out, pt)
			}
		}
		return out
	}
	// exterior ring of "(ring), (hole), ..." without the outer parentheses
	exterior := func(rings string) []Point {
		rings = strings.TrimSpace(rings)
		if j := strings.Index(rings, ")"); j >= 0 {
			rings = rings[:j]
		}
		return parseTuples(strings.TrimLeft(rings, "( "))
	}
	switch {
	case strings.HasPrefix(up, "MULTIPOLYGON"):
		i := strings.Index(s, "(((")
		j := strings.LastIndex(s, ")))")
		if i < 0 || j <= i {
			return nil, errors.New("wkt multipolygon: invalid")
		}
		body := strings.ReplaceAll(s[i+1:j+2], ") ,", "),")
		var pl PlaneList
		for _, part := range strings.Split(body, ")),") {
			if p, ok := NewPlane(layer, feature, exterior(strings.TrimSpace(part))); ok {
				pl = append(pl, p)
			}
		}
		return pl, nil
	case strings.HasPrefix(up, "POLYGON"):
		i := strings.Index(s, "((")
		j := strings.LastIndex(s, "))")
		if i < 0 || j <= i {
			return nil, errors.New("wkt polygon: invalid")
		}
		if p, ok := NewPlane(layer, feature, exterior(s[i+1:j+1])); ok {
			return PlaneList{p}, nil
		}
		return nil, nil
	case strings.HasPrefix(up, "POINT"), strings.HasPrefix(up, "MULTIPOINT"),
		strings.HasPrefix(up, "LINESTRING"), strings.HasPrefix(up, "MULTILINESTRING"):
		return nil, nil
	}
	return nil, errors.New("unsupported wkt type")
}

// LoadWKT reads one WKT geometry per non-empty line; each line is a feature.
func LoadWKT(path string, layer int) (Layer, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layer{}, err
	}
	defer f.Close()
	var l Layer
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		feature := len(l.Properties)
		pl, err := ParseWKT(line, layer, feature)
		if err != nil {
			return Layer{}, err
		}
		l.Properties = append(l.Properties, nil)
		l.Planes = append(l.Planes, pl...)
	}
	if err := sc.Err(); err != nil {
		return Layer{}, err
	}
	return l, nil
}
