package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"math"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp" // Register BMP format decoder
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/image-tint-mcp/internal/colormatrix"
	"github.com/ironsheep/image-tint-mcp/internal/params"
)

// Backend is the raster engine the pipeline draws with. Every method returns
// a newly allocated image and never modifies its input.
type Backend interface {
	// Decode decodes an encoded image held entirely in memory.
	Decode(data []byte) (image.Image, error)

	// NewBitmap allocates a transparent bitmap of the given size.
	NewBitmap(width, height int) *image.NRGBA

	// DrawColorMatrix renders src through m into a bitmap of the same size.
	DrawColorMatrix(src image.Image, m colormatrix.Matrix) (image.Image, error)

	// DrawRegion copies the src pixels inside r into a bitmap of r's size.
	// Parts of r outside src stay transparent.
	DrawRegion(src image.Image, r image.Rectangle) (image.Image, error)

	// Flip returns a flipped copy of src.
	Flip(src image.Image, mode params.Flip) (image.Image, error)

	// Rotate draws src rotated clockwise by degrees about the center of a
	// width x height bitmap.
	Rotate(src image.Image, degrees float64, width, height int) (image.Image, error)
}

// Software is the pure Go Backend. The zero value is ready to use.
type Software struct{}

var _ Backend = Software{}

// Decode decodes PNG, JPEG, GIF, BMP and WebP data.
func (Software) Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("failed to decode image: no data")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func (Software) NewBitmap(width, height int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

// DrawColorMatrix applies m to every pixel in non-premultiplied space.
func (Software) DrawColorMatrix(src image.Image, m colormatrix.Matrix) (image.Image, error) {
	return imaging.AdjustFunc(src, func(c color.NRGBA) color.NRGBA {
		return colormatrix.Apply(m, c)
	}), nil
}

func (s Software) DrawRegion(src image.Image, r image.Rectangle) (image.Image, error) {
	dst := s.NewBitmap(r.Dx(), r.Dy())
	xdraw.Copy(dst, image.Point{}, src, r.Add(src.Bounds().Min), xdraw.Src, nil)
	return dst, nil
}

func (Software) Flip(src image.Image, mode params.Flip) (image.Image, error) {
	switch mode {
	case params.FlipNone:
		return imaging.Clone(src), nil
	case params.FlipHorizontal:
		return imaging.FlipH(src), nil
	case params.FlipVertical:
		return imaging.FlipV(src), nil
	case params.FlipBoth:
		return imaging.Rotate180(src), nil
	}
	return nil, fmt.Errorf("unsupported flip mode %d", mode)
}

// Rotate pads src with one transparent pixel on every side before resampling
// so the rotated edge is blended instead of cut hard.
func (s Software) Rotate(src image.Image, degrees float64, width, height int) (image.Image, error) {
	b := src.Bounds()
	padded := s.NewBitmap(b.Dx()+2, b.Dy()+2)
	xdraw.Copy(padded, image.Pt(1, 1), src, b, xdraw.Src, nil)

	pw := float64(padded.Bounds().Dx())
	ph := float64(padded.Bounds().Dy())
	cx := float64(width) / 2
	cy := float64(height) / 2
	sin, cos := math.Sincos(degrees * math.Pi / 180)

	// Source center maps to (cx, cy); positive angles turn clockwise on a
	// y-down raster.
	s2d := f64.Aff3{
		cos, -sin, cx - (cos*pw/2 - sin*ph/2),
		sin, cos, cy - (sin*pw/2 + cos*ph/2),
	}

	dst := s.NewBitmap(width, height)
	xdraw.BiLinear.Transform(dst, s2d, padded, padded.Bounds(), xdraw.Over, nil)
	return dst, nil
}
