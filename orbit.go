package newton

import (
	"image"
	"math/cmplx"
)

// Trace computes the orbit of a single starting pixel: the ordered sequence
// of Newton iterates, converted back to pixel coordinates through the
// viewport. The sequence includes the starting point and stops at
// convergence or after p.MaxIterations steps, so a start placed exactly on a
// root yields a single point.
//
// Trace holds no state between calls; every call recomputes the orbit from
// scratch. In the interactive engine orbit jobs go through [Renderer.Submit]
// with OrbitMode set, so tracing never blocks input handling.
func Trace(start image.Point, p *Parameters) []image.Point {
	size := p.RenderSize()
	eps := p.eps()
	step := p.step()
	z := p.Limits.PointToComplex(start, size)
	points := make([]image.Point, 0, p.MaxIterations+1)
	points = append(points, p.Limits.ComplexToPoint(z, size))

	for i := 0; i < p.MaxIterations; i++ {
		fz := polyEval(z, p.Roots)
		dz := (polyEval(z+step, p.Roots) - fz) / step
		if dz == 0 {
			break
		}
		zn := z - p.Damping*fz/dz
		if cmplx.Abs(zn-z) < eps {
			break
		}
		z = zn
		points = append(points, p.Limits.ComplexToPoint(z, size))
	}
	return points
}
