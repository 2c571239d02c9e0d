package newton

import (
	"fmt"
	"image/color"
)

// MaxRoots is the maximum number of polynomial roots the renderer supports,
// bounded by the number of distinct basin colors in [Palette].
const MaxRoots = 6

// Tunables for the Newton iteration. The values preserve the order of
// magnitude the visual output was tuned against; both can be overridden per
// [Parameters].
var (
	// DefaultEps is the convergence tolerance: iteration stops when two
	// consecutive iterates are closer than this, and a converged value is
	// matched against the roots with the same tolerance.
	DefaultEps = 1e-3

	// DefaultStep is the finite-difference step used to approximate f'(z).
	DefaultStep = complex(1e-6, 1e-6)
)

// Defaults used by [NewParameters] and as per-field fallbacks when importing
// persisted settings.
const (
	DefaultSize            = 800
	DefaultMaxIterations   = 100
	DefaultScaleDownFactor = 0.5
	DefaultZoomFactor      = 1.05
)

// DefaultDamping is the undamped Newton step multiplier.
var DefaultDamping = complex(1, 0)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Palette holds the basin colors assigned to roots by index:
// red, green, blue, cyan, magenta, yellow.
var Palette = [MaxRoots]Color{
	{1, 0, 0, 1},
	{0, 1, 0, 1},
	{0, 0, 1, 1},
	{0, 1, 1, 1},
	{1, 0, 1, 1},
	{1, 1, 0, 1},
}

// RGBA converts the color to 8-bit non-premultiplied RGBA.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// Hex formats the color as "#rrggbb". Alpha is dropped; basin colors are
// always opaque.
func (c Color) Hex() string {
	rgba := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// ParseHex parses a "#rrggbb" color string.
func ParseHex(s string) (Color, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return Color{}, fmt.Errorf("newton: invalid color %q: %w", s, err)
	}
	return Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: 1,
	}, nil
}

// scaled returns the color with its RGB channels multiplied by f and clamped.
// Alpha is unchanged.
func (c Color) scaled(f float64) Color {
	return Color{
		R: clamp01(c.R * f),
		G: clamp01(c.G * f),
		B: clamp01(c.B * f),
		A: c.A,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
