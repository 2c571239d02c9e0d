package newton

import (
	"image"
	"math"
	"math/cmplx"
	"testing"
)

func TestNewParametersDefaults(t *testing.T) {
	p := NewParameters(3, image.Pt(640, 480))
	if len(p.Roots) != 3 {
		t.Fatalf("root count = %d, want 3", len(p.Roots))
	}
	if p.MaxIterations != DefaultMaxIterations {
		t.Errorf("MaxIterations = %d, want %d", p.MaxIterations, DefaultMaxIterations)
	}
	if p.Damping != DefaultDamping {
		t.Errorf("Damping = %v, want %v", p.Damping, DefaultDamping)
	}
	if p.Size != image.Pt(640, 480) {
		t.Errorf("Size = %v, want 640x480", p.Size)
	}
}

func TestEquidistantRoots(t *testing.T) {
	for n := 1; n <= MaxRoots; n++ {
		roots := EquidistantRoots(n)
		if len(roots) != n {
			t.Fatalf("EquidistantRoots(%d) returned %d roots", n, len(roots))
		}
		for i, r := range roots {
			if !approxEqual(cmplx.Abs(r.Value), 1, 1e-12) {
				t.Errorf("n=%d root %d has |value| = %f, want 1", n, i, cmplx.Abs(r.Value))
			}
			if r.Color != Palette[i] {
				t.Errorf("n=%d root %d color = %v, want palette entry", n, i, r.Color)
			}
		}
	}
	// Adjacent roots must be evenly spaced.
	roots := EquidistantRoots(5)
	step := 2 * math.Pi / 5
	for i := 1; i < len(roots); i++ {
		angle := cmplx.Phase(roots[i].Value / roots[i-1].Value)
		if !approxEqual(math.Abs(angle), step, 1e-9) {
			t.Errorf("angle between roots %d and %d = %f, want %f", i-1, i, angle, step)
		}
	}
	if got := len(EquidistantRoots(99)); got != MaxRoots {
		t.Errorf("EquidistantRoots(99) = %d roots, want %d", got, MaxRoots)
	}
}

func TestSnapshotIsDeep(t *testing.T) {
	p := NewParameters(3, image.Pt(100, 100))
	snap := p.Snapshot()
	p.Roots[0].Value = complex(42, 42)
	if snap.Roots[0].Value == complex(42, 42) {
		t.Error("snapshot shares root storage with the live parameters")
	}
}

func TestSnapshotClampsRoots(t *testing.T) {
	p := NewParameters(3, image.Pt(100, 100))
	for i := 0; i < 10; i++ {
		p.Roots = append(p.Roots, Root{Value: complex(float64(i), 0), Color: Palette[0]})
	}
	snap := p.Snapshot()
	if len(snap.Roots) != MaxRoots {
		t.Errorf("snapshot root count = %d, want %d", len(snap.Roots), MaxRoots)
	}
}

func TestRenderSize(t *testing.T) {
	p := NewParameters(3, image.Pt(800, 600))
	p.ScaleDownFactor = 0.5

	tests := []struct {
		name      string
		scaleDown bool
		benchmark bool
		want      image.Point
	}{
		{"full", false, false, image.Pt(800, 600)},
		{"scaled", true, false, image.Pt(400, 300)},
		{"benchmark overrides", true, true, image.Pt(800, 600)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.ScaleDown = tt.scaleDown
			p.Benchmark = tt.benchmark
			if got := p.RenderSize(); got != tt.want {
				t.Errorf("RenderSize() = %v, want %v", got, tt.want)
			}
		})
	}

	// Tiny sizes never collapse to zero.
	p.Size = image.Pt(1, 1)
	p.ScaleDown = true
	p.Benchmark = false
	if got := p.RenderSize(); got.X < 1 || got.Y < 1 {
		t.Errorf("RenderSize() = %v, want >= 1x1", got)
	}
}

func TestAddRemoveRoots(t *testing.T) {
	p := NewParameters(2, image.Pt(100, 100))
	p.AddRoot(complex(0.5, 0.5))
	if len(p.Roots) != 3 {
		t.Fatalf("root count after add = %d, want 3", len(p.Roots))
	}
	if p.Roots[2].Color != Palette[2] {
		t.Error("added root did not take the next palette color")
	}

	for i := 0; i < 10; i++ {
		p.AddRoot(complex(0, 0))
	}
	if len(p.Roots) != MaxRoots {
		t.Errorf("root count = %d, want clamped to %d", len(p.Roots), MaxRoots)
	}

	p.RemoveRoot(-1)
	if len(p.Roots) != MaxRoots-1 {
		t.Errorf("root count after remove = %d, want %d", len(p.Roots), MaxRoots-1)
	}

	p.Roots = p.Roots[:1]
	p.RemoveRoot(-1)
	if len(p.Roots) != 1 {
		t.Error("the last root must never be removed")
	}
}

func TestMirrorRoots(t *testing.T) {
	p := NewParameters(1, image.Pt(100, 100))
	p.Roots[0].Value = complex(0.3, 0.7)

	p.MirrorRootX(0)
	if len(p.Roots) != 2 || p.Roots[1].Value != complex(0.3, -0.7) {
		t.Errorf("MirrorRootX added %v", p.Roots[len(p.Roots)-1].Value)
	}
	p.MirrorRootY(0)
	if len(p.Roots) != 3 || p.Roots[2].Value != complex(-0.3, 0.7) {
		t.Errorf("MirrorRootY added %v", p.Roots[len(p.Roots)-1].Value)
	}
}

func TestParametersResize(t *testing.T) {
	p := NewParameters(3, image.Pt(400, 400))
	perPixel := p.Limits.Width() / 400
	p.Resize(image.Pt(800, 800))
	if p.Size != image.Pt(800, 800) {
		t.Errorf("Size = %v, want 800x800", p.Size)
	}
	if !approxEqual(p.Limits.Width()/800, perPixel, 1e-12) {
		t.Error("resize changed the plane-units-per-pixel ratio")
	}
}
