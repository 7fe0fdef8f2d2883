package geom

import (
	"errors"
	"fmt"
	"io"
	"os"

	geojson "github.com/paulmach/go.geojson"
)

// LoadGeo reads a GeoJSON file and returns its planes tagged with layer.
func LoadGeo(path string, layer int) (Layer, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layer{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return Layer{}, err
	}
	return ParseGeo(data, layer)
}

// ParseGeo decodes a FeatureCollection, a single Feature or a bare geometry.
// Only Polygon and MultiPolygon contribute planes (one per exterior ring);
// every other geometry yields zero planes but still occupies a feature slot.
func ParseGeo(data []byte, layer int) (Layer, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return Layer{}, fmt.Errorf("geojson: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		// not a collection: retry as Feature, then as Geometry
		if f, ferr := geojson.UnmarshalFeature(data); ferr == nil && f.Type == "Feature" {
			fc = geojson.NewFeatureCollection().AddFeature(f)
		} else if g, gerr := geojson.UnmarshalGeometry(data); gerr == nil {
			fc = geojson.NewFeatureCollection().AddFeature(geojson.NewFeature(g))
		} else {
			return Layer{}, errors.New("geojson: unsupported document type " + fc.Type)
		}
	}
	var l Layer
	for i, f := range fc.Features {
		l.Properties = append(l.Properties, f.Properties)
		if f.Geometry == nil {
			continue
		}
		l.Planes = append(l.Planes, planesFromGeometry(f.Geometry, layer, i)...)
	}
	return l, nil
}

func planesFromGeometry(g *geojson.Geometry, layer, feature int) PlaneList {
	switch g.Type {
	case geojson.GeometryPolygon:
		if p, ok := planeFromPolygon(g.Polygon, layer, feature); ok {
			return PlaneList{p}
		}
	case geojson.GeometryMultiPolygon:
		var out PlaneList
		for _, poly := range g.MultiPolygon {
			if p, ok := planeFromPolygon(poly, layer, feature); ok {
				out = append(out, p)
			}
		}
		return out
	}
	return nil
}

// planeFromPolygon keeps the exterior ring only; holes are not drawn.
func planeFromPolygon(poly [][][]float64, layer, feature int) (Plane, bool) {
	if len(poly) == 0 {
		return Plane{}, false
	}
	ring := make([]Point, 0, len(poly[0]))
	for _, c := range poly[0] {
		if pt, ok := pointFromCoords(c); ok {
			ring = append(ring, pt)
		}
	}
	return NewPlane(layer, feature, ring)
}
