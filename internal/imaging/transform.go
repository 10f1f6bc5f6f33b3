package imaging

import (
	"image"
	"math"

	"github.com/ironsheep/image-tint-mcp/internal/params"
)

// RotatedBounds returns the size of the smallest bitmap that holds a
// width x height image rotated by degrees, rounded to the nearest pixel.
func RotatedBounds(width, height int, degrees float64) (int, int) {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	w, h := float64(width), float64(height)
	tw := math.Abs(w*cos) + math.Abs(h*sin)
	th := math.Abs(w*sin) + math.Abs(h*cos)
	return int(tw + 0.5), int(th + 0.5)
}

// transform runs the flip/rotate stage. The flip is applied to a copy and
// then rotated, so cur is never modified.
func (pl *Pipeline) transform(cur image.Image, p params.Parameters) (image.Image, error) {
	if p.Flip != params.FlipNone {
		flipped, err := pl.backend().Flip(cur, p.Flip)
		if err != nil {
			return nil, err
		}
		cur = flipped
	}
	if p.Rotate == 0 {
		return cur, nil
	}

	b := cur.Bounds()
	w, h := RotatedBounds(b.Dx(), b.Dy(), p.Rotate)
	return pl.backend().Rotate(cur, p.Rotate, w, h)
}
