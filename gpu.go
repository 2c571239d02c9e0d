package newton

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// The GPU render path restates the Newton kernel from kernel.go as a
// per-pixel Kage fragment shader. One DrawRectShader dispatch covers the
// whole viewport quad; roots, colors, damping, iteration limit, and plane
// bounds travel as per-frame uniforms. The CPU routine and this shader are
// independent implementations of the same iteration formula and must agree
// on basin classification, modulo platform floating-point differences.

// gpuMaxIterations is the shader's compile-time iteration cap. MaxIterations
// values above it are clamped for the GPU path.
const gpuMaxIterations = 256

// gpuMinStep is the smallest finite-difference step magnitude used on the
// GPU. The shader runs in float32, where the CPU default step would vanish
// in cancellation.
const gpuMinStep = 1e-3

const newtonShaderSrc = `//kage:unit pixels
package main

var Roots [6]vec2
var Colors [6]vec4
var RootCount int
var MaxIter int
var Damping vec2
var Eps float
var Step vec2

// Area packs the plane bounds as (left, top, width, height); top is the
// imaginary value at pixel row 0.
var Area vec4
var Size vec2

func cmul(a, b vec2) vec2 {
	return vec2(a.x*b.x-a.y*b.y, a.x*b.y+a.y*b.x)
}

func cdiv(a, b vec2) vec2 {
	d := b.x*b.x + b.y*b.y
	return vec2((a.x*b.x+a.y*b.y)/d, (a.y*b.x-a.x*b.y)/d)
}

func cpoly(z vec2) vec2 {
	result := vec2(1, 0)
	for i := 0; i < 6; i++ {
		if i >= RootCount {
			break
		}
		result = cmul(result, z-Roots[i])
	}
	return result
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	p := dst.xy - imageDstOrigin()
	z := vec2(
		Area.x+p.x*Area.z/(Size.x-1),
		Area.y-p.y*Area.w/(Size.y-1),
	)
	for i := 0; i < 256; i++ {
		if i >= MaxIter {
			break
		}
		fz := cpoly(z)
		dz := cdiv(cpoly(z+Step)-fz, Step)
		zn := z - cmul(Damping, cdiv(fz, dz))
		if length(zn-z) < Eps {
			for r := 0; r < 6; r++ {
				if r >= RootCount {
					break
				}
				if length(zn-Roots[r]) < Eps {
					f := clamp(100.0/(50.0+10.0*float(i)), 0.0, 1.0)
					return vec4(Colors[r].rgb*f, 1)
				}
			}
			break
		}
		z = zn
	}
	return vec4(0, 0, 0, 1)
}
`

// GPURenderer draws fractal frames through the Kage shader. The uniform
// buffers are persistent and pre-stored in the uniforms map so a Draw does
// not allocate for the array-valued uniforms.
type GPURenderer struct {
	shader   *ebiten.Shader
	uniforms map[string]any
	roots    [MaxRoots * 2]float32
	colors   [MaxRoots * 4]float32
	damping  [2]float32
	step     [2]float32
	area     [4]float32
	size     [2]float32
	shaderOp ebiten.DrawRectShaderOptions
}

// NewGPURenderer compiles the fractal shader. A compilation error means the
// GPU path is unavailable on this platform; the caller is expected to force
// a CPU processor mode. There is no silent CPU fallback.
func NewGPURenderer() (*GPURenderer, error) {
	shader, err := ebiten.NewShader([]byte(newtonShaderSrc))
	if err != nil {
		return nil, fmt.Errorf("newton: gpu unavailable: %w", err)
	}
	g := &GPURenderer{
		shader:   shader,
		uniforms: make(map[string]any, 10),
	}
	g.uniforms["Roots"] = g.roots[:]
	g.uniforms["Colors"] = g.colors[:]
	g.uniforms["Damping"] = g.damping[:]
	g.uniforms["Step"] = g.step[:]
	g.uniforms["Area"] = g.area[:]
	g.uniforms["Size"] = g.size[:]
	return g, nil
}

// Draw renders the snapshot into dst with a single full-quad shader
// dispatch. Fire-and-forget from the engine's perspective; the graphics
// pipeline owns the parallelism.
func (g *GPURenderer) Draw(dst *ebiten.Image, p *Parameters) {
	bounds := dst.Bounds()
	rootCount, maxIter := g.fillUniforms(p, bounds.Dx(), bounds.Dy())
	// Scalar uniform boxing is unavoidable with Ebitengine's uniform API.
	g.uniforms["RootCount"] = rootCount
	g.uniforms["MaxIter"] = maxIter
	g.uniforms["Eps"] = float32(p.eps())
	g.shaderOp.Uniforms = g.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), g.shader, &g.shaderOp)
}

// fillUniforms packs the snapshot into the persistent uniform buffers and
// returns the clamped root count and iteration limit.
func (g *GPURenderer) fillUniforms(p *Parameters, w, h int) (rootCount, maxIter int) {
	rootCount = len(p.Roots)
	if rootCount > MaxRoots {
		rootCount = MaxRoots
	}
	for i := 0; i < rootCount; i++ {
		g.roots[i*2+0] = float32(real(p.Roots[i].Value))
		g.roots[i*2+1] = float32(imag(p.Roots[i].Value))
		c := p.Roots[i].Color
		g.colors[i*4+0] = float32(c.R)
		g.colors[i*4+1] = float32(c.G)
		g.colors[i*4+2] = float32(c.B)
		g.colors[i*4+3] = float32(c.A)
	}

	maxIter = p.MaxIterations
	if maxIter > gpuMaxIterations {
		maxIter = gpuMaxIterations
	}
	if maxIter < 0 {
		maxIter = 0
	}

	g.damping[0] = float32(real(p.Damping))
	g.damping[1] = float32(imag(p.Damping))

	step := p.step()
	sr, si := float32(real(step)), float32(imag(step))
	if sr < gpuMinStep {
		sr = gpuMinStep
	}
	if si < gpuMinStep {
		si = gpuMinStep
	}
	g.step[0], g.step[1] = sr, si

	g.area[0] = float32(p.Limits.Left())
	g.area[1] = float32(p.Limits.Top())
	g.area[2] = float32(p.Limits.Width())
	g.area[3] = float32(p.Limits.Height())
	g.size[0] = float32(w)
	g.size[1] = float32(h)
	return rootCount, maxIter
}
