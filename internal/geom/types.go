package geom

import "github.com/go-gl/mathgl/mgl64"

// Point is a world coordinate (x, y, z).
type Point = mgl64.Vec3

// Point2D is a coordinate in target drawing space.
type Point2D = mgl64.Vec2

// Properties holds the attributes of the feature a plane was extracted from.
type Properties = map[string]any

// Plane is one closed polygon ring. The ring is implicitly closed: the last
// point connects back to the first and the first point is not repeated.
type Plane struct {
	Layer   int // index of the source layer
	Feature int // feature position within the layer, used to resolve its style
	Points  []Point
}

// PlaneList is an unordered bag of planes; drawing order comes from the depth sort.
type PlaneList []Plane

// Layer is the geometry extracted from one data source.
type Layer struct {
	Planes     PlaneList
	Properties []Properties // one entry per feature, addressed by Plane.Feature
}

// NewPlane builds a plane from a ring, dropping a trailing point equal to the
// first. ok is false when fewer than three distinct positions remain.
func NewPlane(layer, feature int, ring []Point) (Plane, bool) {
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		ring = ring[:n-1]
	}
	if len(ring) < 3 {
		return Plane{}, false
	}
	return Plane{Layer: layer, Feature: feature, Points: ring}, true
}

// pointFromCoords reads a position; a missing z defaults to 0.
func pointFromCoords(c []float64) (Point, bool) {
	switch {
	case len(c) >= 3:
		return Point{c[0], c[1], c[2]}, true
	case len(c) == 2:
		return Point{c[0], c[1], 0}, true
	}
	return Point{}, false
}
