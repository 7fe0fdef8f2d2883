package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewPoolDefaults(t *testing.T) {
	p := NewPool(0)
	defer p.Close()
	if p.Workers() != runtime.GOMAXPROCS(0) {
		t.Errorf("Workers() = %d, want GOMAXPROCS", p.Workers())
	}
}

func TestExecuteAll(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	var count atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { count.Add(1) }
	}
	p.ExecuteAll(work)
	if got := count.Load(); got != 100 {
		t.Errorf("ran %d tasks, want 100", got)
	}
	p.ExecuteAll(nil)
}

func TestExecuteAllAfterClose(t *testing.T) {
	p := NewPool(2)
	p.Close()
	p.Close()
	ran := false
	p.ExecuteAll([]func(){func() { ran = true }})
	if !ran {
		t.Error("work dropped on closed pool")
	}
}

func TestMapPreservesOrder(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		n       int
	}{
		{"empty", 3, 0},
		{"fewer items than workers", 8, 3},
		{"uneven chunks", 3, 10},
		{"many", 4, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPool(tt.workers)
			defer p.Close()
			got := Map(p, tt.n, func(i int) int {
				// later indices finish first
				if i < 3 {
					time.Sleep(time.Millisecond)
				}
				return i * i
			})
			if len(got) != tt.n {
				t.Fatalf("len = %d, want %d", len(got), tt.n)
			}
			for i, v := range got {
				if v != i*i {
					t.Fatalf("out[%d] = %d, want %d", i, v, i*i)
				}
			}
		})
	}
}
