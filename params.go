package newton

import (
	"image"
	"math"
	"math/cmplx"
)

// Processor selects where the Newton kernel is evaluated. The numeric values
// are part of the persisted settings format.
type Processor uint8

const (
	ProcessorCPUSingle Processor = iota // one worker goroutine, no fan-out
	ProcessorCPUMulti                   // scanline fan-out across GOMAXPROCS
	ProcessorGPU                        // per-pixel Kage shader dispatch
)

// Root is a zero of the rendered polynomial together with the display color
// of its basin of attraction. Roots are ordered; the index is the stable
// identifier used for basin classification.
type Root struct {
	Value complex128
	Color Color
}

// Parameters is the complete description of one render: the polynomial (as
// its roots), iteration settings, output resolution, processor mode, orbit
// and benchmark flags, and the plane viewport.
//
// The UI-owned live instance is mutated freely between renders; everything
// crossing into the render worker goes through [Parameters.Snapshot] so the
// engine never holds a reference into caller-owned state. Duplicate or
// near-duplicate root values are permitted; pixels near them simply classify
// to the first match.
type Parameters struct {
	Roots         []Root
	MaxIterations int
	Damping       complex128

	// Size is the requested output resolution in pixels.
	Size image.Point

	// ScaleDownFactor shrinks the internal render resolution while
	// ScaleDown is set, trading detail for interactivity. Benchmark
	// disables the reduction.
	ScaleDownFactor float64
	ScaleDown       bool

	Processor Processor

	// OrbitMode switches a submission from frame rendering to orbit
	// tracing, seeded at the OrbitStart pixel.
	OrbitMode  bool
	OrbitStart image.Point

	// Benchmark makes the render worker re-render the same snapshot
	// continuously at full resolution for timing.
	Benchmark bool

	// Eps and Step override DefaultEps and DefaultStep when non-zero.
	Eps  float64
	Step complex128

	Limits Limits
}

// NewParameters creates render parameters with rootCount equidistant roots
// and documented defaults. rootCount is clamped to [1, MaxRoots].
func NewParameters(rootCount int, size image.Point) Parameters {
	if size.X <= 0 || size.Y <= 0 {
		size = image.Pt(DefaultSize, DefaultSize)
	}
	p := Parameters{
		Roots:           EquidistantRoots(rootCount),
		MaxIterations:   DefaultMaxIterations,
		Damping:         DefaultDamping,
		Size:            size,
		ScaleDownFactor: DefaultScaleDownFactor,
		Limits:          NewLimits(size),
	}
	return p
}

// EquidistantRoots places n roots evenly on the unit circle, starting at i
// and proceeding counterclockwise, colored from [Palette]. n is clamped to
// [1, MaxRoots].
func EquidistantRoots(n int) []Root {
	if n < 1 {
		n = 1
	}
	if n > MaxRoots {
		n = MaxRoots
	}
	roots := make([]Root, n)
	for i := range roots {
		angle := math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		roots[i] = Root{
			Value: cmplx.Rect(1, angle),
			Color: Palette[i],
		}
	}
	return roots
}

// Snapshot returns a deep copy safe to hand across the worker boundary.
// The root slice is cloned and the count clamped to MaxRoots; everything
// else is value state.
func (p Parameters) Snapshot() Parameters {
	snap := p
	n := len(p.Roots)
	if n > MaxRoots {
		n = MaxRoots
	}
	snap.Roots = make([]Root, n)
	copy(snap.Roots, p.Roots[:n])
	return snap
}

// RenderSize returns the internal resolution the next frame is computed at:
// Size, reduced by ScaleDownFactor while ScaleDown is active. Benchmark
// runs always render at full resolution. Both dimensions stay >= 1.
func (p Parameters) RenderSize() image.Point {
	if p.Benchmark || !p.ScaleDown {
		return p.Size
	}
	f := p.ScaleDownFactor
	if f <= 0 || f > 1 {
		return p.Size
	}
	w := int(float64(p.Size.X) * f)
	h := int(float64(p.Size.Y) * f)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return image.Pt(w, h)
}

// Resize changes the output resolution and rescales the viewport so the
// plane-units-per-pixel ratio is preserved.
func (p *Parameters) Resize(size image.Point) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	p.Limits.Resize(p.Size, size)
	p.Size = size
}

// AddRoot appends a root colored by the next free palette entry. It is a
// no-op once MaxRoots is reached.
func (p *Parameters) AddRoot(value complex128) {
	if len(p.Roots) >= MaxRoots {
		return
	}
	p.Roots = append(p.Roots, Root{Value: value, Color: Palette[len(p.Roots)]})
}

// RemoveRoot removes the root at index, or the last root when index is
// negative. Out-of-range indices are ignored; the last root is never removed.
func (p *Parameters) RemoveRoot(index int) {
	if len(p.Roots) <= 1 {
		return
	}
	if index < 0 {
		index = len(p.Roots) - 1
	}
	if index >= len(p.Roots) {
		return
	}
	p.Roots = append(p.Roots[:index], p.Roots[index+1:]...)
}

// MirrorRootX adds a new root mirrored across the real axis.
func (p *Parameters) MirrorRootX(index int) {
	if index < 0 || index >= len(p.Roots) {
		return
	}
	v := p.Roots[index].Value
	p.AddRoot(complex(real(v), -imag(v)))
}

// MirrorRootY adds a new root mirrored across the imaginary axis.
func (p *Parameters) MirrorRootY(index int) {
	if index < 0 || index >= len(p.Roots) {
		return
	}
	v := p.Roots[index].Value
	p.AddRoot(complex(-real(v), imag(v)))
}

// eps returns the effective convergence tolerance.
func (p *Parameters) eps() float64 {
	if p.Eps > 0 {
		return p.Eps
	}
	return DefaultEps
}

// step returns the effective finite-difference step.
func (p *Parameters) step() complex128 {
	if p.Step != 0 {
		return p.Step
	}
	return DefaultStep
}

// Equal reports whether two parameter sets describe the same render: same
// roots in the same order, same iteration settings, resolution, modes, and
// viewport bounds within tol.
func (p Parameters) Equal(other Parameters, tol float64) bool {
	if len(p.Roots) != len(other.Roots) {
		return false
	}
	for i := range p.Roots {
		if cmplx.Abs(p.Roots[i].Value-other.Roots[i].Value) > tol {
			return false
		}
		if p.Roots[i].Color.RGBA() != other.Roots[i].Color.RGBA() {
			return false
		}
	}
	return p.MaxIterations == other.MaxIterations &&
		cmplx.Abs(p.Damping-other.Damping) <= tol &&
		p.Size == other.Size &&
		math.Abs(p.ScaleDownFactor-other.ScaleDownFactor) <= tol &&
		p.ScaleDown == other.ScaleDown &&
		p.Processor == other.Processor &&
		p.OrbitMode == other.OrbitMode &&
		p.OrbitStart == other.OrbitStart &&
		p.Limits.Eq(other.Limits, tol)
}
