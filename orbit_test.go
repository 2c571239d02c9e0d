package newton

import (
	"image"
	"testing"
)

func TestTraceFixedPoint(t *testing.T) {
	// With a 201x201 grid over [-2,2]x[-2,2], pixel (50,100) maps exactly
	// onto the root at -1: the seed is already a fixed point.
	p := threeRootParams()
	p.Size = image.Pt(201, 201)
	p.Limits = NewLimits(p.Size)
	start := image.Pt(50, 100)
	if z := p.Limits.PointToComplex(start, p.RenderSize()); z != p.Roots[0].Value {
		t.Fatalf("seed pixel maps to %v, want exactly %v", z, p.Roots[0].Value)
	}

	orbit := Trace(start, &p)
	if len(orbit) != 1 {
		t.Errorf("orbit length = %d, want 1 (seed already converged)", len(orbit))
	}
	if orbit[0] != start {
		t.Errorf("orbit[0] = %v, want the starting point %v", orbit[0], start)
	}
}

func TestTraceConvergesTowardRoot(t *testing.T) {
	p := threeRootParams()
	p.Size = image.Pt(200, 200)
	size := p.RenderSize()

	// Seed a few pixels away from root 0 at -1.
	rootPx := p.Limits.ComplexToPoint(p.Roots[0].Value, size)
	start := rootPx.Add(image.Pt(3, 2))
	orbit := Trace(start, &p)

	if len(orbit) < 2 {
		t.Fatalf("orbit length = %d, want at least 2", len(orbit))
	}
	if orbit[0] != p.Limits.ComplexToPoint(p.Limits.PointToComplex(start, size), size) {
		t.Errorf("orbit does not begin at the starting point: %v", orbit[0])
	}
	last := orbit[len(orbit)-1]
	if dx, dy := last.X-rootPx.X, last.Y-rootPx.Y; dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		t.Errorf("orbit ends at %v, want within one pixel of root at %v", last, rootPx)
	}
	if len(orbit) > p.MaxIterations+1 {
		t.Errorf("orbit length = %d exceeds iteration limit", len(orbit))
	}
}

func TestTraceIsRestartable(t *testing.T) {
	p := threeRootParams()
	p.Size = image.Pt(150, 150)
	start := image.Pt(20, 130)

	first := Trace(start, &p)
	second := Trace(start, &p)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("point %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestTraceRespectsIterationLimit(t *testing.T) {
	p := threeRootParams()
	p.Size = image.Pt(100, 100)
	p.MaxIterations = 3
	// A seed far outside every basin cannot converge in 3 steps.
	p.Limits.Move(image.Pt(5000, 5000), p.Size)
	orbit := Trace(image.Pt(0, 0), &p)
	if len(orbit) > 4 {
		t.Errorf("orbit length = %d, want <= maxIterations+1", len(orbit))
	}
}
