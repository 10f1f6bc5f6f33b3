package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/image-tint-mcp/internal/params"
)

func TestCropOrigin(t *testing.T) {
	const w, h = 100, 60
	offset := image.Pt(-10, -5)

	tests := []struct {
		anchor params.Anchor
		want   image.Point
	}{
		{params.AnchorTopLeft, image.Pt(-10, -5)},
		{params.AnchorTopRight, image.Pt(90, -5)},
		{params.AnchorBottomRight, image.Pt(90, 55)},
		{params.AnchorBottomLeft, image.Pt(-10, 55)},
		{params.AnchorCenter, image.Pt(40, 25)},
	}

	for _, tt := range tests {
		t.Run(tt.anchor.String(), func(t *testing.T) {
			if got := CropOrigin(tt.anchor, offset, w, h); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCropOrigin_ZeroOffset(t *testing.T) {
	if got := CropOrigin(params.AnchorBottomRight, image.Point{}, 64, 32); got != image.Pt(64, 32) {
		t.Errorf("BottomRight: got %v, want (64,32)", got)
	}
	// Odd sizes use integer division.
	if got := CropOrigin(params.AnchorCenter, image.Point{}, 65, 33); got != image.Pt(32, 16) {
		t.Errorf("Center: got %v, want (32,16)", got)
	}
}

func TestCropRegion(t *testing.T) {
	p := params.Default()
	if _, ok := CropRegion(p, 10, 10); ok {
		t.Error("default parameters should not crop")
	}

	p.Crop = params.CropRect{X: -4, Y: -4, Width: 4, Height: 4}
	p.Anchor = params.AnchorBottomRight
	r, ok := CropRegion(p, 10, 10)
	if !ok || r != image.Rect(6, 6, 10, 10) {
		t.Errorf("got %v %v, want (6,6)-(10,10)", r, ok)
	}
}

func TestPipeline_Crop_Content(t *testing.T) {
	src := createPatternImage(100, 100)
	p := params.Default()
	p.Crop = params.CropRect{X: -50, Y: 0, Width: 50, Height: 50}
	p.Anchor = params.AnchorTopRight

	out, err := (&Pipeline{}).Run(src, p, params.DirtyFlags{Crop: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out.Bounds().Dx() != 50 || out.Bounds().Dy() != 50 {
		t.Fatalf("size: got %v, want 50x50", out.Bounds())
	}
	if got := nrgbaAt(out, 25, 25); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("top-right quadrant should be green, got %v", got)
	}
}

func TestPipeline_Crop_BeyondSource(t *testing.T) {
	src := createInMemoryImage(10, 10, color.NRGBA{255, 0, 0, 255})
	p := params.Default()
	p.Crop = params.CropRect{X: 5, Y: 5, Width: 10, Height: 10}

	out, err := (&Pipeline{}).Run(src, p, params.DirtyFlags{Crop: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out.Bounds().Dx() != 10 || out.Bounds().Dy() != 10 {
		t.Fatalf("size: got %v, want 10x10", out.Bounds())
	}
	if got := nrgbaAt(out, 0, 0); got.A != 255 || got.R != 255 {
		t.Errorf("inside source should be red, got %v", got)
	}
	if got := nrgbaAt(out, 9, 9); got.A != 0 {
		t.Errorf("outside source should be transparent, got %v", got)
	}
}

func TestPipeline_Crop_Degenerate(t *testing.T) {
	src := createInMemoryImage(20, 20, color.NRGBA{10, 20, 30, 255})
	p := params.Default()
	p.Crop = params.CropRect{X: 0, Y: 0, Width: 0, Height: 0}
	p.Greyscale = true
	p.Rotate = 45

	backend := &recordingBackend{}
	out, err := (&Pipeline{Backend: backend}).Run(src, p, params.DirtyFlags{Crop: true, Tint: true, Transform: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out == nil || !out.Bounds().Empty() {
		t.Fatalf("degenerate crop should give a 0x0 image, got %v", out)
	}
	if backend.matrices != 0 || backend.rotations != 0 {
		t.Errorf("tint/transform should be skipped, got %d matrix and %d rotate calls", backend.matrices, backend.rotations)
	}
}
