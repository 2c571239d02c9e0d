// Package newton renders Newton fractals: every pixel of the output image
// is mapped to a point in the complex plane and run through damped
// Newton-Raphson iteration against a polynomial defined by its roots, then
// colored by the basin of attraction it converged into and how fast.
//
// # Quick start
//
// Describe the render with [Parameters], hand snapshots to a [Renderer],
// and consume finished frames from its callback:
//
//	params := newton.NewParameters(3, image.Pt(800, 800))
//	r := newton.NewRenderer()
//	r.OnFrame = func(f newton.Frame) {
//		// f.Image is the finished frame, f.FPS the achieved rate.
//	}
//	r.Submit(params)
//	defer r.Stop()
//
// Submit never blocks: the renderer keeps a single-slot queue of the latest
// requested snapshot and silently drops superseded ones, so it can absorb
// parameter changes at interactive rates while always rendering the most
// recent state.
//
// # Coordinate model
//
// [Limits] owns the viewport: the rectangular region of the complex plane
// mapped onto the image, with pan, focus-point zoom, proportional resize,
// and a baseline for reset. [Parameters] embeds a Limits by value; render
// snapshots never share viewport state with the caller.
//
// # GPU path
//
// [GPURenderer] evaluates the same kernel as a per-pixel Kage shader under
// [Ebitengine] for full-rate interactive rendering. Construction fails when
// shader compilation is unsupported; the caller then forces a CPU processor
// mode, since the engine never substitutes silently.
//
// # Orbits and persistence
//
// [Trace] (or a Submit with OrbitMode set) produces the ordered sequence of
// iterates from a chosen starting pixel for visualization. Parameters
// round-trip through an ini-shaped settings format via
// [Parameters.SaveSettings] and [LoadSettings], and frames export to PNG
// via [ExportPNG].
//
// Runnable front-ends live under examples/: an interactive desktop viewer,
// a websocket-backed browser viewer, and a headless benchmark.
//
// [Ebitengine]: https://ebitengine.org
package newton
