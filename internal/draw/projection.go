package draw

import (
	"github.com/go-gl/mathgl/mgl64"

	"cardboard/internal/camera"
	"cardboard/internal/geom"
)

// Projection holds the per-frame matrices derived from a camera and an output
// width. It is read-only once built and shared by all workers.
type Projection struct {
	View       mgl64.Mat4
	VP         mgl64.Mat4
	Corrective mgl64.Mat2
	Translate  mgl64.Mat3
	Scale      float64
	ClipZ      float64
}

// NewProjection builds an orthographic view of cam for a drawing width units
// wide. A camera whose eye equals its target yields NaN matrices.
func NewProjection(cam camera.Camera, width float64) Projection {
	scale := cam.Eye.Sub(cam.Target).Len()
	iscale := width / scale

	view := mgl64.LookAtV(cam.Eye, cam.Target, geom.VerticalAxis())
	ortho := mgl64.Ortho(-iscale, iscale, -iscale, iscale, -scale, 1)
	vp := ortho.Mul4(view)

	// roll correction: world up projects onto -y (screen up)
	ref := mgl64.TransformCoordinate(cam.Target.Add(geom.VerticalAxis()), vp)
	angle := geom.Angle(mgl64.Vec2{0, -1}, mgl64.Vec2{ref[0], ref[1]})
	if ref[0] >= 0 {
		angle = -angle
	}

	half := width / 2
	return Projection{
		View:       view,
		VP:         vp,
		Corrective: mgl64.Rotate2D(angle),
		Translate:  mgl64.Translate2D(half, half),
		Scale:      scale,
		ClipZ:      mgl64.TransformCoordinate(cam.Eye, view)[2],
	}
}

// Visible reports whether any vertex lies in front of the eye. Only the near
// side is tested; planes off to the side are kept.
func (p Projection) Visible(pl geom.Plane) bool {
	for _, pt := range pl.Points {
		if mgl64.TransformCoordinate(pt, p.View)[2] < p.ClipZ {
			return true
		}
	}
	return false
}

// Project maps a world point to drawing coordinates.
func (p Projection) Project(pt geom.Point) geom.Point2D {
	aligned := mgl64.TransformCoordinate(pt, p.VP)
	return geom.Transform2D(aligned, p.Corrective, p.Scale, p.Translate)
}

// Ops emits the path for one plane, or nil when it is not visible.
func (p Projection) Ops(pl geom.Plane) OpList {
	if !p.Visible(pl) {
		return nil
	}
	ops := make(OpList, 0, len(pl.Points)+3)
	ops = append(ops, Op{Kind: Begin})
	for i, pt := range pl.Points {
		xy := p.Project(pt)
		k := Line
		if i == 0 {
			k = Move
		}
		ops = append(ops, Op{Kind: k, X: xy[0], Y: xy[1]})
	}
	return append(ops,
		Op{Kind: Close},
		Op{Kind: Paint, Layer: pl.Layer, Index: pl.Feature},
	)
}
