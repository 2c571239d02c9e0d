package newton

import (
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// Persisted parameter format: ini-style key/value groups matching the layout
// the desktop settings collaborator reads and writes.
//
//	[Parameters] size, maxIterations, damping ("re,im"), scaleDownFactor,
//	             scaleDown, processor (0/1/2), orbitMode, orbitStart ("x,y")
//	[Limits]     left, right, top, bottom, zoomFactor, original_* baseline
//	[Roots]      root<N> = "re,im : #rrggbb"
//
// Importing is lenient: a field that fails to parse falls back to its
// documented default and never aborts the remaining fields, so an identical
// render can be reconstructed from any well-formed subset.

// SaveSettings writes the parameters to path in the persisted format.
func (p Parameters) SaveSettings(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("newton: save settings: %w", err)
	}
	defer f.Close()
	return p.WriteSettings(f)
}

// WriteSettings writes the parameters to w in the persisted format.
func (p Parameters) WriteSettings(w io.Writer) error {
	file := ini.Empty()

	sec, err := file.NewSection("Parameters")
	if err != nil {
		return err
	}
	sec.Key("size").SetValue(formatSize(p.Size))
	sec.Key("maxIterations").SetValue(strconv.Itoa(p.MaxIterations))
	sec.Key("damping").SetValue(formatComplex(p.Damping))
	sec.Key("scaleDownFactor").SetValue(strconv.FormatFloat(p.ScaleDownFactor, 'g', -1, 64))
	sec.Key("scaleDown").SetValue(strconv.FormatBool(p.ScaleDown))
	sec.Key("processor").SetValue(strconv.Itoa(int(p.Processor)))
	sec.Key("orbitMode").SetValue(strconv.FormatBool(p.OrbitMode))
	sec.Key("orbitStart").SetValue(formatPoint(p.OrbitStart))

	lim, err := file.NewSection("Limits")
	if err != nil {
		return err
	}
	l := p.Limits
	lim.Key("left").SetValue(formatFloat(l.left))
	lim.Key("right").SetValue(formatFloat(l.right))
	lim.Key("top").SetValue(formatFloat(l.top))
	lim.Key("bottom").SetValue(formatFloat(l.bottom))
	lim.Key("zoomFactor").SetValue(formatFloat(l.zoomFactor))
	lim.Key("original_left").SetValue(formatFloat(l.origLeft))
	lim.Key("original_right").SetValue(formatFloat(l.origRight))
	lim.Key("original_top").SetValue(formatFloat(l.origTop))
	lim.Key("original_bottom").SetValue(formatFloat(l.origBottom))

	roots, err := file.NewSection("Roots")
	if err != nil {
		return err
	}
	for i, r := range p.Roots {
		roots.Key(fmt.Sprintf("root%d", i)).SetValue(
			formatComplex(r.Value) + " : " + r.Color.Hex())
	}

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("newton: write settings: %w", err)
	}
	return nil
}

// LoadSettings reads parameters from the file at path.
func LoadSettings(path string) (Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("newton: load settings: %w", err)
	}
	return parseSettings(data)
}

// ReadSettings reads parameters from r.
func ReadSettings(r io.Reader) (Parameters, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Parameters{}, fmt.Errorf("newton: read settings: %w", err)
	}
	return parseSettings(data)
}

func parseSettings(data []byte) (Parameters, error) {
	file, err := ini.Load(data)
	if err != nil {
		return Parameters{}, fmt.Errorf("newton: parse settings: %w", err)
	}

	sec := file.Section("Parameters")
	size := parseSize(sec.Key("size").String(), image.Pt(DefaultSize, DefaultSize))
	p := Parameters{
		MaxIterations:   sec.Key("maxIterations").MustInt(DefaultMaxIterations),
		Damping:         parseComplex(sec.Key("damping").String(), DefaultDamping),
		Size:            size,
		ScaleDownFactor: sec.Key("scaleDownFactor").MustFloat64(DefaultScaleDownFactor),
		ScaleDown:       sec.Key("scaleDown").MustBool(false),
		OrbitMode:       sec.Key("orbitMode").MustBool(false),
		OrbitStart:      parsePoint(sec.Key("orbitStart").String(), image.Point{}),
	}
	if p.MaxIterations < 1 {
		p.MaxIterations = DefaultMaxIterations
	}
	processor := sec.Key("processor").MustInt(int(ProcessorCPUMulti))
	if processor < int(ProcessorCPUSingle) || processor > int(ProcessorGPU) {
		processor = int(ProcessorCPUMulti)
	}
	p.Processor = Processor(processor)

	lim := file.Section("Limits")
	fallback := NewLimits(size)
	p.Limits = restoreLimits(
		lim.Key("left").MustFloat64(fallback.left),
		lim.Key("right").MustFloat64(fallback.right),
		lim.Key("top").MustFloat64(fallback.top),
		lim.Key("bottom").MustFloat64(fallback.bottom),
		lim.Key("original_left").MustFloat64(fallback.origLeft),
		lim.Key("original_right").MustFloat64(fallback.origRight),
		lim.Key("original_top").MustFloat64(fallback.origTop),
		lim.Key("original_bottom").MustFloat64(fallback.origBottom),
		lim.Key("zoomFactor").MustFloat64(DefaultZoomFactor),
	)

	roots := file.Section("Roots")
	for i := 0; i < MaxRoots; i++ {
		key := fmt.Sprintf("root%d", i)
		if !roots.HasKey(key) {
			break
		}
		p.Roots = append(p.Roots, parseRoot(roots.Key(key).String(), Palette[i]))
	}
	if len(p.Roots) == 0 {
		p.Roots = EquidistantRoots(3)
	}
	return p, nil
}

// parseRoot parses "re,im : #rrggbb". A malformed value or color falls back
// to the origin and the palette color for the slot.
func parseRoot(s string, fallbackColor Color) Root {
	value, colorPart := s, ""
	if idx := strings.LastIndex(s, ":"); idx >= 0 {
		value, colorPart = s[:idx], s[idx+1:]
	}
	root := Root{
		Value: parseComplex(strings.TrimSpace(value), 0),
		Color: fallbackColor,
	}
	if c, err := ParseHex(strings.TrimSpace(colorPart)); err == nil {
		root.Color = c
	}
	return root
}

// formatComplex formats z as "re,im".
func formatComplex(z complex128) string {
	return formatFloat(real(z)) + "," + formatFloat(imag(z))
}

// parseComplex parses "re,im", falling back on any malformation.
func parseComplex(s string, fallback complex128) complex128 {
	re, im, ok := splitPair(s)
	if !ok {
		return fallback
	}
	r, err1 := strconv.ParseFloat(re, 64)
	i, err2 := strconv.ParseFloat(im, 64)
	if err1 != nil || err2 != nil {
		return fallback
	}
	return complex(r, i)
}

func formatPoint(p image.Point) string {
	return strconv.Itoa(p.X) + "," + strconv.Itoa(p.Y)
}

func parsePoint(s string, fallback image.Point) image.Point {
	xs, ys, ok := splitPair(s)
	if !ok {
		return fallback
	}
	x, err1 := strconv.Atoi(strings.TrimSpace(xs))
	y, err2 := strconv.Atoi(strings.TrimSpace(ys))
	if err1 != nil || err2 != nil {
		return fallback
	}
	return image.Pt(x, y)
}

func formatSize(s image.Point) string {
	return strconv.Itoa(s.X) + "x" + strconv.Itoa(s.Y)
}

func parseSize(s string, fallback image.Point) image.Point {
	parts := strings.SplitN(strings.TrimSpace(s), "x", 2)
	if len(parts) != 2 {
		return fallback
	}
	w, err1 := strconv.Atoi(parts[0])
	h, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return fallback
	}
	return image.Pt(w, h)
}

func splitPair(s string) (a, b string, ok bool) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
