package imaging

import (
	"image"

	"github.com/ironsheep/image-tint-mcp/internal/params"
)

// CropOrigin returns the top-left source pixel of a crop whose offset is
// measured from the given anchor of a width x height image.
func CropOrigin(anchor params.Anchor, offset image.Point, width, height int) image.Point {
	switch anchor {
	case params.AnchorTopRight:
		return image.Pt(offset.X+width, offset.Y)
	case params.AnchorBottomRight:
		return image.Pt(offset.X+width, offset.Y+height)
	case params.AnchorBottomLeft:
		return image.Pt(offset.X, offset.Y+height)
	case params.AnchorCenter:
		return image.Pt(offset.X+width/2, offset.Y+height/2)
	}
	return offset
}

// CropRegion returns the source rectangle selected by p, relative to the
// source's top-left corner. ok is false when p has no crop.
func CropRegion(p params.Parameters, width, height int) (r image.Rectangle, ok bool) {
	if !p.Crop.Enabled() {
		return image.Rectangle{}, false
	}
	origin := CropOrigin(p.Anchor, image.Pt(p.Crop.X, p.Crop.Y), width, height)
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(p.Crop.Width, p.Crop.Height))}, true
}

// crop runs the crop stage. A zero-sized crop yields an empty bitmap.
func (pl *Pipeline) crop(cur image.Image, p params.Parameters) (image.Image, error) {
	if p.Crop.Empty() {
		return pl.backend().NewBitmap(0, 0), nil
	}
	b := cur.Bounds()
	r, _ := CropRegion(p, b.Dx(), b.Dy())
	return pl.backend().DrawRegion(cur, r)
}
