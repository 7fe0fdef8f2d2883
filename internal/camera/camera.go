// Package camera holds the eye/target pair and the movement operators used
// to navigate the scene. Every operator returns a new Camera.
package camera

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"cardboard/internal/geom"
)

type Camera struct {
	Eye    geom.Point
	Target geom.Point
}

func New(eye, target geom.Point) Camera {
	return Camera{Eye: eye, Target: target}
}

// HorizontalAxis is the unit axis used for pitching the eye around the target.
// It is the normalized cross product of (eye-target) taken with the eye height
// and with the target height.
func (c Camera) HorizontalAxis() mgl64.Vec3 {
	d := c.Eye.Sub(c.Target)
	pt0 := geom.Point{d[0], d[1], c.Eye[2]}
	pt1 := geom.Point{d[0], d[1], c.Target[2]}
	return geom.CrossNorm(pt0, pt1)
}

func (c Camera) MoveCam(m mgl64.Mat4) Camera {
	return Camera{
		Eye:    mgl64.TransformCoordinate(c.Eye, m),
		Target: mgl64.TransformCoordinate(c.Target, m),
	}
}

func (c Camera) MoveEye(m mgl64.Mat4) Camera {
	return Camera{Eye: mgl64.TransformCoordinate(c.Eye, m), Target: c.Target}
}

func (c Camera) MoveTarget(m mgl64.Mat4) Camera {
	return Camera{Eye: c.Eye, Target: mgl64.TransformCoordinate(c.Target, m)}
}

// RotateEye rotates the eye by angle radians around axis, pivoting on the target.
func (c Camera) RotateEye(axis mgl64.Vec3, angle float64) Camera {
	return c.MoveEye(pivot(c.Target, mgl64.HomogRotate3D(angle, axis)))
}

// RotateTarget turns the view direction while the eye stays put: the target
// swings around the eye by xDeg about the vertical axis and yDeg about the
// horizontal axis.
func (c Camera) RotateTarget(xDeg, yDeg float64) Camera {
	vmat := mgl64.HomogRotate3D(geom.DegToRad(xDeg), geom.VerticalAxis())
	hmat := mgl64.HomogRotate3D(geom.DegToRad(yDeg), c.HorizontalAxis())
	var rot mgl64.Mat4
	switch {
	case xDeg == 0 && yDeg == 0:
		return c
	case xDeg == 0:
		rot = hmat
	case yDeg == 0:
		rot = vmat
	default:
		rot = vmat.Mul4(hmat)
	}
	return c.MoveTarget(pivot(c.Eye, rot))
}

// SideMov is a translation of step along the horizontal axis.
func (c Camera) SideMov(step float64) mgl64.Mat4 {
	m := c.HorizontalAxis().Mul(step)
	return mgl64.Translate3D(m[0], m[1], m[2])
}

// AxisMov is a translation of step along the eye→target direction.
func (c Camera) AxisMov(step float64) mgl64.Mat4 {
	m := c.Target.Sub(c.Eye).Normalize().Mul(step)
	return mgl64.Translate3D(m[0], m[1], m[2])
}

func (c Camera) String() string {
	return fmt.Sprintf("Camera %v %v %v %v %v %v",
		c.Eye[0], c.Eye[1], c.Eye[2], c.Target[0], c.Target[1], c.Target[2])
}

// pivot conjugates m with a translation so it operates around center.
func pivot(center geom.Point, m mgl64.Mat4) mgl64.Mat4 {
	tr := mgl64.Translate3D(center[0], center[1], center[2])
	itr := mgl64.Translate3D(-center[0], -center[1], -center[2])
	return tr.Mul4(m).Mul4(itr)
}
