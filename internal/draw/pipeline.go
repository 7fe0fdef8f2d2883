package draw

import (
	"log/slog"
	"sort"
	"time"

	"cardboard/internal/camera"
	"cardboard/internal/geom"
	"cardboard/internal/parallel"
)

// Pipeline projects plane lists on a shared worker pool. It is safe for
// concurrent use; Close releases the workers.
type Pipeline struct {
	pool *parallel.Pool
}

// New starts a pipeline with workers goroutines (GOMAXPROCS when <= 0).
func New(workers int) *Pipeline {
	return &Pipeline{pool: parallel.NewPool(workers)}
}

func (p *Pipeline) Close() { p.pool.Close() }

// SortPlanes returns plane indices farthest first. A plane's distance is the
// largest squared distance from eye to any of its vertices. Equal distances
// keep a fixed order: lower layer first, then lower original index.
func (p *Pipeline) SortPlanes(eye geom.Point, pl geom.PlaneList) []int {
	dist := parallel.Map(p.pool, len(pl), func(i int) float64 {
		return maxDistSq(eye, pl[i])
	})
	idx := make([]int, len(pl))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		if dist[ia] != dist[ib] {
			return dist[ia] > dist[ib]
		}
		if pl[ia].Layer != pl[ib].Layer {
			return pl[ia].Layer < pl[ib].Layer
		}
		return ia < ib
	})
	return idx
}

func maxDistSq(eye geom.Point, plane geom.Plane) float64 {
	var d float64
	for _, v := range plane.Points {
		if s := v.Sub(eye).LenSqr(); s > d {
			d = s
		}
	}
	return d
}

// Draw depth-sorts pl and emits the path operations of every visible plane in
// that order. Brackets of different planes never interleave.
func (p *Pipeline) Draw(pl geom.PlaneList, cam camera.Camera, width float64) OpList {
	start := time.Now()
	order := p.SortPlanes(cam.Eye, pl)
	proj := NewProjection(cam, width)
	parts := parallel.Map(p.pool, len(order), func(i int) OpList {
		return proj.Ops(pl[order[i]])
	})
	n := 0
	for _, ops := range parts {
		n += len(ops)
	}
	out := make(OpList, 0, n)
	for _, ops := range parts {
		out = append(out, ops...)
	}
	slog.Debug("draw: frame", "planes", len(pl), "ops", len(out), "elapsed", time.Since(start))
	return out
}

// DrawPlanes runs a single-use pipeline sized to GOMAXPROCS.
func DrawPlanes(pl geom.PlaneList, cam camera.Camera, width float64) OpList {
	p := New(0)
	defer p.Close()
	return p.Draw(pl, cam, width)
}
