package imaging

import (
	"image"

	"github.com/ironsheep/image-tint-mcp/internal/colormatrix"
	"github.com/ironsheep/image-tint-mcp/internal/params"
)

// tint runs the tint stage. Greyscale is a separate first pass so the
// luminance weights never reach the alpha channel of the tint pass.
func (pl *Pipeline) tint(cur image.Image, p params.Parameters) (image.Image, error) {
	if p.Greyscale {
		grey, err := pl.backend().DrawColorMatrix(cur, colormatrix.Greyscale())
		if err != nil {
			return nil, err
		}
		cur = grey
	}
	return pl.backend().DrawColorMatrix(cur, p.Matrix)
}
