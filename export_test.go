package newton

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEncodePNGUpscalesScaledDownFrames(t *testing.T) {
	p := testParams(64)
	p.ScaleDown = true
	p.ScaleDownFactor = 0.5

	img, err := renderImage(&p)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != image.Pt(32, 32) {
		t.Fatalf("render size = %v, want 32x32", got)
	}

	var buf bytes.Buffer
	if err := EncodePNG(&buf, Frame{Image: img, Params: p}); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got := decoded.Bounds().Size(); got != p.Size {
		t.Errorf("exported size = %v, want requested output size %v", got, p.Size)
	}
}

func TestEncodePNGRejectsEmptyFrame(t *testing.T) {
	if err := EncodePNG(&bytes.Buffer{}, Frame{}); err == nil {
		t.Error("EncodePNG accepted a frame without an image")
	}
}

func TestExportPNG(t *testing.T) {
	p := testParams(16)
	img, err := renderImage(&p)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.png")
	if err := ExportPNG(Frame{Image: img, Params: p}, path); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("exported file is not a valid PNG: %v", err)
	}
}

func TestExportName(t *testing.T) {
	p := NewParameters(3, image.Pt(800, 600))
	name := ExportName("/tmp/pics", &p)
	if !strings.HasPrefix(name, filepath.Join("/tmp/pics", "fractal_")) {
		t.Errorf("name = %q, want fractal_ prefix under the directory", name)
	}
	if !strings.HasSuffix(name, "_3roots_800x600.png") {
		t.Errorf("name = %q, want roots and size suffix", name)
	}
}
