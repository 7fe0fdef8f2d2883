package geom

import "math"

// BBox holds the extents of a plane list.
type BBox struct {
	MinX float64
	MinY float64
	MinZ float64
	MaxX float64
	MaxY float64
	MaxZ float64
}

// FromPlanes folds every vertex into a box seeded with +Inf/-Inf. An empty
// list keeps the seeds, leaving a non-finite box.
func FromPlanes(pl PlaneList) BBox {
	b := BBox{
		MinX: math.Inf(1), MinY: math.Inf(1), MinZ: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1), MaxZ: math.Inf(-1),
	}
	for _, plane := range pl {
		for _, pt := range plane.Points {
			b.MinX = math.Min(b.MinX, pt[0])
			b.MinY = math.Min(b.MinY, pt[1])
			b.MinZ = math.Min(b.MinZ, pt[2])
			b.MaxX = math.Max(b.MaxX, pt[0])
			b.MaxY = math.Max(b.MaxY, pt[1])
			b.MaxZ = math.Max(b.MaxZ, pt[2])
		}
	}
	return b
}

func (b BBox) Center() Point {
	return Point{
		b.MinX + (b.MaxX-b.MinX)/2,
		b.MinY + (b.MaxY-b.MinY)/2,
		b.MinZ + (b.MaxZ-b.MinZ)/2,
	}
}

func (b BBox) Width() float64 { return b.MaxX - b.MinX }

func (b BBox) Height() float64 { return b.MaxZ - b.MinZ }

// TopLeftNear is the default eye position: (minx, miny, maxz).
func (b BBox) TopLeftNear() Point {
	return Point{b.MinX, b.MinY, b.MaxZ}
}

// Finite reports whether every extent is a finite number.
func (b BBox) Finite() bool {
	for _, v := range []float64{b.MinX, b.MinY, b.MinZ, b.MaxX, b.MaxY, b.MaxZ} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
