package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Cross returns a × b.
func Cross(a, b Point) mgl64.Vec3 {
	return a.Cross(b)
}

// CrossNorm returns the unit vector along a × b. Parallel inputs yield NaN components.
func CrossNorm(a, b Point) mgl64.Vec3 {
	return Cross(a, b).Normalize()
}

// DegToRad converts degrees to radians.
func DegToRad(a float64) float64 {
	return a * math.Pi / 180.0
}

// VerticalAxis is the world up direction (+Z).
func VerticalAxis() mgl64.Vec3 {
	return mgl64.Vec3{0, 0, 1}
}

// Angle returns the unsigned angle in radians between a and b.
func Angle(a, b mgl64.Vec2) float64 {
	c := a.Dot(b) / (a.Len() * b.Len())
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

// Transform2D maps a projected point to drawing space: rotate its x/y by
// corrective, multiply by scale, then apply the homogeneous 2-D transform tr.
func Transform2D(aligned Point, corrective mgl64.Mat2, scale float64, tr mgl64.Mat3) Point2D {
	rotated := corrective.Mul2x1(mgl64.Vec2{aligned[0], aligned[1]})
	scaled := rotated.Mul(scale)
	out := tr.Mul3x1(mgl64.Vec3{scaled[0], scaled[1], 1})
	return Point2D{out[0] / out[2], out[1] / out[2]}
}
