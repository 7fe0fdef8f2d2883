package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCross(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want mgl64.Vec3
	}{
		{"basic", Point{1, 2, 3}, Point{1, 5, 7}, mgl64.Vec3{-1, -4, 3}},
		{"x cross y", Point{1, 0, 0}, Point{0, 1, 0}, mgl64.Vec3{0, 0, 1}},
		{"parallel", Point{1, 1, 1}, Point{2, 2, 2}, mgl64.Vec3{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cross(tt.a, tt.b); !got.ApproxEqual(tt.want) {
				t.Errorf("Cross(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCrossNorm(t *testing.T) {
	got := CrossNorm(Point{2, 0, 0}, Point{0, 3, 0})
	if !got.ApproxEqual(mgl64.Vec3{0, 0, 1}) {
		t.Errorf("CrossNorm = %v, want unit z", got)
	}
	if l := CrossNorm(Point{1, 2, 3}, Point{1, 5, 7}).Len(); math.Abs(l-1) > 1e-9 {
		t.Errorf("len = %v, want 1", l)
	}
}

func TestAngle(t *testing.T) {
	tests := []struct {
		name string
		a, b mgl64.Vec2
		want float64
	}{
		{"same", mgl64.Vec2{0, -1}, mgl64.Vec2{0, -3}, 0},
		{"right", mgl64.Vec2{0, -1}, mgl64.Vec2{1, 0}, math.Pi / 2},
		{"opposite", mgl64.Vec2{0, -1}, mgl64.Vec2{0, 2}, math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Angle(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Angle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDegToRad(t *testing.T) {
	if got := DegToRad(180); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("DegToRad(180) = %v", got)
	}
}

func TestTransform2D(t *testing.T) {
	// identity rotation, scale 2, translate (10, 10)
	got := Transform2D(Point{1, -1, 5}, mgl64.Ident2(), 2, mgl64.Translate2D(10, 10))
	if !got.ApproxEqual(Point2D{12, 8}) {
		t.Errorf("Transform2D = %v, want (12, 8)", got)
	}
	// quarter turn maps +x onto +y before scaling
	got = Transform2D(Point{1, 0, 0}, mgl64.Rotate2D(math.Pi/2), 1, mgl64.Ident3())
	if math.Abs(got[0]) > 1e-9 || math.Abs(got[1]-1) > 1e-9 {
		t.Errorf("rotated = %v, want (0, 1)", got)
	}
}
