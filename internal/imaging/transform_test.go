package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/image-tint-mcp/internal/params"
)

func TestRotatedBounds(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		degrees      float64
		wantW, wantH int
	}{
		{"zero", 100, 50, 0, 100, 50},
		{"quarter", 100, 50, 90, 50, 100},
		{"half", 100, 50, 180, 100, 50},
		{"negative quarter", 100, 50, -90, 50, 100},
		{"forty five", 10, 10, 45, 14, 14},
		{"full turn", 30, 20, 360, 30, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := RotatedBounds(tt.w, tt.h, tt.degrees)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

// halvesImage is red on the left half and blue on the right half.
func halvesImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{0, 0, 255, 255})
			}
		}
	}
	return img
}

func TestPipeline_Rotate90(t *testing.T) {
	p := params.Default()
	p.Rotate = 90

	out, err := (&Pipeline{}).Run(halvesImage(100, 50), p, params.DirtyFlags{Transform: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out.Bounds().Dx() != 50 || out.Bounds().Dy() != 100 {
		t.Fatalf("size: got %v, want 50x100", out.Bounds())
	}

	// Clockwise: the left half ends up on top.
	if got := nrgbaAt(out, 25, 10); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("top: got %v, want red", got)
	}
	if got := nrgbaAt(out, 25, 90); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("bottom: got %v, want blue", got)
	}
}

func TestPipeline_Rotate45_TransparentCorners(t *testing.T) {
	p := params.Default()
	p.Rotate = 45

	out, err := (&Pipeline{}).Run(createInMemoryImage(20, 20, color.NRGBA{0, 255, 0, 255}), p, params.DirtyFlags{Transform: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out.Bounds().Dx() != 28 || out.Bounds().Dy() != 28 {
		t.Fatalf("size: got %v, want 28x28", out.Bounds())
	}
	if got := nrgbaAt(out, 0, 0); got.A != 0 {
		t.Errorf("corner should be transparent, got %v", got)
	}
	if got := nrgbaAt(out, 14, 14); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("center should be opaque green, got %v", got)
	}
}

func TestPipeline_Flip(t *testing.T) {
	src := createPatternImage(10, 10)

	tests := []struct {
		mode params.Flip
		want color.NRGBA // new top-left pixel
	}{
		{params.FlipHorizontal, color.NRGBA{0, 255, 0, 255}},
		{params.FlipVertical, color.NRGBA{0, 0, 255, 255}},
		{params.FlipBoth, color.NRGBA{255, 255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			p := params.Default()
			p.Flip = tt.mode

			out, err := (&Pipeline{}).Run(src, p, params.DirtyFlags{Transform: true})
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if out.Bounds().Dx() != 10 || out.Bounds().Dy() != 10 {
				t.Fatalf("flip must keep the size, got %v", out.Bounds())
			}
			if got := nrgbaAt(out, 0, 0); got != tt.want {
				t.Errorf("top-left: got %v, want %v", got, tt.want)
			}
		})
	}

	if got := nrgbaAt(src, 0, 0); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Error("flip modified the source image")
	}
}

func TestSoftware_Decode(t *testing.T) {
	data := encodeTestPNG(t, createInMemoryImage(3, 2, color.NRGBA{9, 8, 7, 255}))

	img, err := Software{}.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("size: got %v", img.Bounds())
	}

	if _, err := (Software{}).Decode([]byte("garbage")); err == nil {
		t.Error("Decode should fail for garbage")
	}
}
