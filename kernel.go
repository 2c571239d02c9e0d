package newton

import "math/cmplx"

// The Newton kernel: evaluate f(z) = Π(z - root_i), approximate f'(z) by a
// finite difference with a fixed small complex step, and apply the damped
// Newton step z' = z - damping·f(z)/f'(z) until two consecutive iterates
// are closer than eps or the iteration limit is reached.
//
// The derivative is a finite difference rather than the analytic product
// rule so the kernel can be re-parameterized for higher-degree or
// non-analytic variants without re-deriving derivatives. The same math is
// restated as a per-pixel shader in gpu.go; both implementations must
// classify basins identically for the same inputs, up to platform
// floating-point differences.

// polyEval evaluates the polynomial defined by its roots at z.
func polyEval(z complex128, roots []Root) complex128 {
	result := complex(1, 0)
	for i := range roots {
		result *= z - roots[i].Value
	}
	return result
}

// Iterate runs the Newton iteration from z0 and reports the index of the
// root the sequence converged to, or -1 when it did not converge within
// p.MaxIterations or converged to a value matching no known root (a spurious
// fixed point, treated as non-convergence rather than an error). The second result
// is the number of iterations actually spent.
//
// Iterate is pure: identical inputs always produce identical results, and
// no state is shared across pixels.
func Iterate(z0 complex128, p *Parameters) (root, iterations int) {
	eps := p.eps()
	step := p.step()
	z := z0
	for i := 0; i < p.MaxIterations; i++ {
		fz := polyEval(z, p.Roots)
		dz := (polyEval(z+step, p.Roots) - fz) / step
		if dz == 0 {
			// Flat spot; the Newton step is undefined.
			return -1, i
		}
		zn := z - p.Damping*fz/dz
		if cmplx.Abs(zn-z) < eps {
			for r := range p.Roots {
				if cmplx.Abs(zn-p.Roots[r].Value) < eps {
					return r, i
				}
			}
			return -1, i
		}
		z = zn
	}
	return -1, p.MaxIterations
}

// shade darkens a basin color according to how many iterations convergence
// took: the RGB channels are scaled by 100/(50+10·i) and clamped, so fast
// convergence brightens toward the saturated base color and slow convergence
// fades toward black. Deterministic for identical inputs.
func shade(base Color, iterations int) Color {
	return base.scaled(100 / float64(50+10*iterations))
}
