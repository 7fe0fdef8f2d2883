package draw

import (
	"math"
	"math/rand"
	"reflect"
	"slices"
	"testing"

	"cardboard/internal/camera"
	"cardboard/internal/geom"
)

func plane(t *testing.T, layer, feature int, pts ...geom.Point) geom.Plane {
	t.Helper()
	p, ok := geom.NewPlane(layer, feature, pts)
	if !ok {
		t.Fatalf("invalid plane %v", pts)
	}
	return p
}

func randomPlanes(t *testing.T, n int) geom.PlaneList {
	r := rand.New(rand.NewSource(42))
	pl := make(geom.PlaneList, n)
	for i := range pl {
		c := geom.Point{r.Float64()*100 - 50, r.Float64()*100 - 50, r.Float64() * 10}
		pl[i] = plane(t, r.Intn(3), i,
			c, c.Add(geom.Point{1, 0, 0}), c.Add(geom.Point{0, 1, 0.5}))
	}
	return pl
}

func TestSortPlanesBijection(t *testing.T) {
	p := New(4)
	defer p.Close()
	for _, n := range []int{0, 1, 7, 200} {
		pl := randomPlanes(t, n)
		got := p.SortPlanes(geom.Point{0, -80, 30}, pl)
		sorted := slices.Clone(got)
		slices.Sort(sorted)
		for i, v := range sorted {
			if v != i {
				t.Fatalf("n=%d: not a permutation: %v", n, got)
			}
		}
	}
}

func TestSortPlanesFarthestFirst(t *testing.T) {
	p := New(3)
	defer p.Close()
	eye := geom.Point{5, -60, 20}
	pl := randomPlanes(t, 100)
	order := p.SortPlanes(eye, pl)
	for i := 1; i < len(order); i++ {
		a, b := maxDistSq(eye, pl[order[i-1]]), maxDistSq(eye, pl[order[i]])
		if a < b {
			t.Fatalf("position %d: %v before %v", i, a, b)
		}
	}
}

func TestSortPlanesTies(t *testing.T) {
	p := New(2)
	defer p.Close()
	pts := []geom.Point{{0, 5, 0}, {1, 5, 0}, {0, 5, 1}}
	pl := geom.PlaneList{
		plane(t, 1, 0, pts...),
		plane(t, 0, 0, pts...),
		plane(t, 0, 1, pts...),
		plane(t, 1, 1, pts...),
	}
	want := []int{1, 2, 0, 3}
	for range 5 {
		if got := p.SortPlanes(geom.Point{}, pl); !reflect.DeepEqual(got, want) {
			t.Fatalf("SortPlanes = %v, want %v", got, want)
		}
	}
}

// two triangles whose farthest vertices are 10 and 50 away
func TestScenarioDistanceOrder(t *testing.T) {
	pl := geom.PlaneList{
		plane(t, 0, 0, geom.Point{0, 10, 0}, geom.Point{0, 8, 1}, geom.Point{1, 8, 0}),
		plane(t, 0, 1, geom.Point{0, 50, 0}, geom.Point{1, 40, 0}, geom.Point{0, 40, 1}),
	}
	p := New(2)
	defer p.Close()
	if got := p.SortPlanes(geom.Point{}, pl); !reflect.DeepEqual(got, []int{1, 0}) {
		t.Errorf("SortPlanes = %v, want [1 0]", got)
	}
}

func TestScenarioSingleTriangle(t *testing.T) {
	cam := camera.New(geom.Point{0, -10, 10}, geom.Point{0, 0, 0})
	pl := geom.PlaneList{
		plane(t, 0, 0, geom.Point{-1, -1, 0}, geom.Point{1, -1, 0}, geom.Point{0, 1, 0}),
	}
	ops := DrawPlanes(pl, cam, 600)
	want := []Kind{Begin, Move, Line, Line, Close, Paint}
	if got := ops.Kinds(); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if last := ops[len(ops)-1]; last.Layer != 0 || last.Index != 0 {
		t.Errorf("paint = %v, want Paint(0, 0)", last)
	}
	for _, o := range ops[1:4] {
		if math.IsNaN(o.X) || math.IsNaN(o.Y) {
			t.Errorf("NaN coordinate in %v", o)
		}
	}
}

func TestNearClipBehindEye(t *testing.T) {
	cam := camera.New(geom.Point{0, 0, 0}, geom.Point{0, 10, 0})
	pl := geom.PlaneList{
		plane(t, 0, 0, geom.Point{0, -5, 0}, geom.Point{1, -5, 0}, geom.Point{0, -5, 1}),
	}
	if ops := DrawPlanes(pl, cam, 100); len(ops) != 0 {
		t.Errorf("plane behind eye emitted %v", ops)
	}
	proj := NewProjection(cam, 100)
	front := plane(t, 0, 0, geom.Point{0, 5, 0}, geom.Point{1, 5, 0}, geom.Point{0, 5, 1})
	straddle := plane(t, 0, 0, geom.Point{0, -5, 0}, geom.Point{1, -5, 0}, geom.Point{0, 5, 1})
	if !proj.Visible(front) || !proj.Visible(straddle) {
		t.Error("planes with a vertex in front should be visible")
	}
}

func TestOpBrackets(t *testing.T) {
	cam := camera.New(geom.Point{0, -20, 5}, geom.Point{0, 10, 0})
	pl := randomPlanes(t, 150)
	p := New(4)
	defer p.Close()
	ops := p.Draw(pl, cam, 800)

	proj := NewProjection(cam, 800)
	visible := 0
	for _, pln := range pl {
		if proj.Visible(pln) {
			visible++
		}
	}
	if visible == 0 || visible == len(pl) {
		t.Fatalf("fixture should mix visible and hidden planes, got %d/%d", visible, len(pl))
	}

	begins, paints := 0, 0
	for i := 0; i < len(ops); {
		if ops[i].Kind != Begin {
			t.Fatalf("op %d = %v, want Begin", i, ops[i])
		}
		begins++
		i++
		if ops[i].Kind != Move {
			t.Fatalf("op %d = %v, want Move", i, ops[i])
		}
		i++
		for ops[i].Kind == Line {
			i++
		}
		if ops[i].Kind != Close || ops[i+1].Kind != Paint {
			t.Fatalf("ops %d..%d = %v %v, want Close Paint", i, i+1, ops[i], ops[i+1])
		}
		paints++
		i += 2
	}
	if begins != visible || paints != visible {
		t.Errorf("begins=%d paints=%d visible=%d", begins, paints, visible)
	}
	if again := p.Draw(pl, cam, 800); !reflect.DeepEqual(again, ops) {
		t.Error("Draw is not deterministic")
	}
}

func TestProjectionCentersTarget(t *testing.T) {
	cam := camera.New(geom.Point{3, -10, 10}, geom.Point{3, 2, 1})
	proj := NewProjection(cam, 500)
	c := proj.Project(cam.Target)
	if math.Abs(c[0]-250) > 1e-6 || math.Abs(c[1]-250) > 1e-6 {
		t.Errorf("target projects to %v, want (250, 250)", c)
	}
	up := proj.Project(cam.Target.Add(geom.Point{0, 0, 1}))
	if up[1] >= 250 || math.Abs(up[0]-250) > 1e-6 {
		t.Errorf("world up projects to %v, want above center", up)
	}
	if math.Abs(proj.ClipZ) > 1e-9 {
		t.Errorf("ClipZ = %v, want 0", proj.ClipZ)
	}
}

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{Op{Kind: Begin}, "Begin"},
		{Op{Kind: Move, X: 1.5, Y: 2}, "Move(1.5, 2)"},
		{Op{Kind: Paint, Layer: 2, Index: 7}, "Paint(2, 7)"},
		{Op{Kind: Kind(9)}, "Kind(9)"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
