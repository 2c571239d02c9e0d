package newton

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/draw"
)

// EncodePNG writes a frame to w as PNG at the requested output resolution.
// Frames rendered at a reduced internal resolution (scale-down) are upscaled
// first so the exported file always matches Params.Size.
func EncodePNG(w io.Writer, frame Frame) error {
	if frame.Image == nil {
		return fmt.Errorf("newton: export: frame has no image")
	}
	img := frame.Image
	if size := frame.Params.Size; size.X > 0 && size.Y > 0 && img.Bounds().Size() != size {
		img = Upscale(img, size)
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("newton: export: %w", err)
	}
	return nil
}

// ExportPNG writes a frame to the file at path, creating it if needed.
func ExportPNG(frame Frame, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("newton: export: %w", err)
	}
	defer f.Close()
	return EncodePNG(f, frame)
}

// ExportName builds a timestamped file name for a frame, in the form
// fractal_YYMMDD_HHMMSS_<roots>roots_<W>x<H>.png, joined onto dir.
func ExportName(dir string, p *Parameters) string {
	name := fmt.Sprintf("fractal_%s_%droots_%dx%d.png",
		time.Now().Format("060102_150405"),
		len(p.Roots), p.Size.X, p.Size.Y)
	return filepath.Join(dir, name)
}

// Upscale resamples img to size using bilinear interpolation.
func Upscale(img *image.RGBA, size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
