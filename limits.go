package newton

import (
	"image"
	"math"
)

// Limits maps between pixel coordinates and a rectangular region of the
// complex plane. The vertical convention is mathematical: Top holds the
// imaginary value at pixel row 0 and is greater than Bottom, so the
// invariants are Right > Left and Top > Bottom.
//
// A Limits also carries an immutable "original" baseline, captured at
// construction time, that [Limits.Reset] and proportional resizing restore
// from. Limits is a value type; it is copied into every render snapshot and
// has no concurrency concerns of its own.
type Limits struct {
	left, right float64
	top, bottom float64
	zoomFactor  float64

	// Baseline bounds, written once by newLimits and restoreLimits, only
	// read afterwards.
	origLeft, origRight float64
	origTop, origBottom float64
}

// NewLimits creates a viewport centered on the origin with a vertical span
// of 4 plane units ([-2i, 2i]) and a horizontal span matching the aspect
// ratio of size. The resulting bounds become the baseline for Reset.
func NewLimits(size image.Point) Limits {
	l := Limits{zoomFactor: DefaultZoomFactor}
	l.top, l.bottom = 2, -2
	halfW := 2.0
	if size.X > 0 && size.Y > 0 {
		halfW = 2 * float64(size.X) / float64(size.Y)
	}
	l.left, l.right = -halfW, halfW
	l.origLeft, l.origRight = l.left, l.right
	l.origTop, l.origBottom = l.top, l.bottom
	return l
}

// restoreLimits rebuilds a Limits from persisted bounds. Degenerate bounds
// fall back to the defaults of NewLimits so a zero-area viewport is never
// constructed.
func restoreLimits(left, right, top, bottom, origLeft, origRight, origTop, origBottom, zoomFactor float64) Limits {
	if right <= left || top <= bottom {
		left, right, top, bottom = -2, 2, 2, -2
	}
	if origRight <= origLeft || origTop <= origBottom {
		origLeft, origRight, origTop, origBottom = left, right, top, bottom
	}
	if zoomFactor <= 1 {
		zoomFactor = DefaultZoomFactor
	}
	return Limits{
		left: left, right: right, top: top, bottom: bottom,
		zoomFactor: zoomFactor,
		origLeft:   origLeft, origRight: origRight,
		origTop: origTop, origBottom: origBottom,
	}
}

// Left returns the real value at the left image edge.
func (l Limits) Left() float64 { return l.left }

// Right returns the real value at the right image edge.
func (l Limits) Right() float64 { return l.right }

// Top returns the imaginary value at the top image edge.
func (l Limits) Top() float64 { return l.top }

// Bottom returns the imaginary value at the bottom image edge.
func (l Limits) Bottom() float64 { return l.bottom }

// Width returns the horizontal plane span.
func (l Limits) Width() float64 { return l.right - l.left }

// Height returns the vertical plane span.
func (l Limits) Height() float64 { return l.top - l.bottom }

// ZoomFactor returns the multiplicative step applied per zoom event.
func (l Limits) ZoomFactor() float64 { return l.zoomFactor }

// SetZoomFactor sets the zoom step. Values <= 1 are ignored; a zoom step
// must strictly shrink the viewport when zooming in.
func (l *Limits) SetZoomFactor(factor float64) {
	if factor > 1 {
		l.zoomFactor = factor
	}
}

// Center returns the midpoint of the viewport.
func (l Limits) Center() complex128 {
	return complex((l.left+l.right)/2, (l.top+l.bottom)/2)
}

// PointToComplex maps a pixel inside an image of the given size to its plane
// value. Pixel (0,0) maps to (Left, Top) and (size.X-1, size.Y-1) to
// (Right, Bottom). Degenerate sizes yield the viewport center.
func (l Limits) PointToComplex(p image.Point, size image.Point) complex128 {
	if size.X < 2 || size.Y < 2 {
		return l.Center()
	}
	re := l.left + float64(p.X)*l.Width()/float64(size.X-1)
	im := l.top - float64(p.Y)*l.Height()/float64(size.Y-1)
	return complex(re, im)
}

// ComplexToPoint is the inverse of [Limits.PointToComplex], rounding to the
// nearest pixel. Degenerate sizes yield the center pixel.
func (l Limits) ComplexToPoint(z complex128, size image.Point) image.Point {
	if size.X < 2 || size.Y < 2 {
		return image.Pt(size.X/2, size.Y/2)
	}
	x := (real(z) - l.left) * float64(size.X-1) / l.Width()
	y := (l.top - imag(z)) * float64(size.Y-1) / l.Height()
	return image.Pt(int(math.Round(x)), int(math.Round(y)))
}

// Move pans the viewport by a pixel delta measured against the reference
// output size ref. Positive X moves the viewport right, positive Y moves it
// down (toward smaller imaginary values). The translation is linear in the
// delta. A degenerate reference size is a no-op.
func (l *Limits) Move(delta image.Point, ref image.Point) {
	if ref.X <= 0 || ref.Y <= 0 {
		return
	}
	dx := float64(delta.X) * l.Width() / float64(ref.X)
	dy := float64(delta.Y) * l.Height() / float64(ref.Y)
	l.left += dx
	l.right += dx
	l.top -= dy
	l.bottom -= dy
}

// Zoom scales the viewport by the zoom factor around a focus point given as
// fractions of the image size (0,0 = top-left corner, 1,1 = bottom-right).
// Zooming in divides the span by the factor, zooming out multiplies, so a
// zoom in followed by a zoom out at the same focus restores the bounds up to
// floating-point rounding.
func (l *Limits) Zoom(in bool, xw, yw float64) {
	scale := l.zoomFactor
	if in {
		scale = 1 / scale
	}
	fx := l.left + xw*l.Width()
	fy := l.top - yw*l.Height()
	w := l.Width() * scale
	h := l.Height() * scale
	l.left = fx - xw*w
	l.right = l.left + w
	l.top = fy + yw*h
	l.bottom = l.top - h
}

// Resize rescales the plane bounds when the output resolution changes from
// old to size, keeping the plane-units-per-pixel ratio and the viewport
// center fixed so the image content neither stretches nor shifts. A
// degenerate old size falls back to Reset.
func (l *Limits) Resize(old, size image.Point) {
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	if old.X <= 0 || old.Y <= 0 {
		l.Reset(size)
		return
	}
	c := l.Center()
	halfW := l.Width() * float64(size.X) / float64(old.X) / 2
	halfH := l.Height() * float64(size.Y) / float64(old.Y) / 2
	l.left = real(c) - halfW
	l.right = real(c) + halfW
	l.top = imag(c) + halfH
	l.bottom = imag(c) - halfH
}

// Reset restores the viewport from its baseline, keeping the baseline's
// vertical span and center and deriving the horizontal span from the aspect
// ratio of size.
func (l *Limits) Reset(size image.Point) {
	l.top, l.bottom = l.origTop, l.origBottom
	cx := (l.origLeft + l.origRight) / 2
	halfW := (l.origRight - l.origLeft) / 2
	if size.X > 0 && size.Y > 0 {
		halfW = l.Height() / 2 * float64(size.X) / float64(size.Y)
	}
	l.left = cx - halfW
	l.right = cx + halfW
}

// LerpLimits linearly interpolates the current bounds from one viewport
// toward another by t in [0, 1]; t >= 1 yields to exactly. The baseline and
// zoom factor are taken from to. Front-ends use this to animate viewport
// transitions such as an eased reset.
func LerpLimits(from, to Limits, t float64) Limits {
	if t >= 1 {
		return to
	}
	if t < 0 {
		t = 0
	}
	out := to
	out.left = from.left + (to.left-from.left)*t
	out.right = from.right + (to.right-from.right)*t
	out.top = from.top + (to.top-from.top)*t
	out.bottom = from.bottom + (to.bottom-from.bottom)*t
	return out
}

// Eq reports whether two viewports have the same current bounds within tol.
// The baseline and zoom factor are not compared.
func (l Limits) Eq(other Limits, tol float64) bool {
	return math.Abs(l.left-other.left) <= tol &&
		math.Abs(l.right-other.right) <= tol &&
		math.Abs(l.top-other.top) <= tol &&
		math.Abs(l.bottom-other.bottom) <= tol
}
