package imaging

import (
	"image"

	"github.com/sirupsen/logrus"

	apperrors "github.com/ironsheep/image-tint-mcp/internal/errors"
	"github.com/ironsheep/image-tint-mcp/internal/params"
)

// Pipeline derives a transformed image from a source image by running the
// crop, tint and transform stages in that order.
type Pipeline struct {
	Backend Backend
	// Log receives a debug entry per stage. Nil disables logging.
	Log logrus.FieldLogger
}

// Run rebuilds the derived image of src.
//
// Nothing is done when dirty has no flag set or src has zero area; Run then
// returns a nil image. Otherwise every stage that p makes non-trivial is run
// on the output of the previous one, starting from src. A nil image with a
// nil error means no stage applied and src should be displayed as is.
//
// A zero-sized crop yields a 0x0 image and skips tint and transform. Stage
// failures are returned as *errors.ProcessingError in CategoryPipeline and no
// partial result is returned.
func (pl *Pipeline) Run(src image.Image, p params.Parameters, dirty params.DirtyFlags) (image.Image, error) {
	if src == nil || !dirty.Any() || src.Bounds().Empty() {
		return nil, nil
	}

	var derived image.Image
	current := func() image.Image {
		if derived != nil {
			return derived
		}
		return src
	}

	if p.Crop.Enabled() {
		out, err := pl.crop(current(), p)
		if err != nil {
			return nil, apperrors.New(apperrors.CategoryPipeline, "crop", err)
		}
		pl.debug("crop", out)
		derived = out
		if out.Bounds().Empty() {
			return derived, nil
		}
	}

	if p.NeedsTint() {
		out, err := pl.tint(current(), p)
		if err != nil {
			return nil, apperrors.New(apperrors.CategoryPipeline, "tint", err)
		}
		pl.debug("tint", out)
		derived = out
	}

	if p.NeedsTransform() {
		out, err := pl.transform(current(), p)
		if err != nil {
			return nil, apperrors.New(apperrors.CategoryPipeline, "transform", err)
		}
		pl.debug("transform", out)
		derived = out
	}

	return derived, nil
}

func (pl *Pipeline) backend() Backend {
	if pl.Backend == nil {
		return Software{}
	}
	return pl.Backend
}

func (pl *Pipeline) debug(stage string, out image.Image) {
	if pl.Log == nil {
		return
	}
	b := out.Bounds()
	pl.Log.WithFields(logrus.Fields{
		"stage":  stage,
		"width":  b.Dx(),
		"height": b.Dy(),
	}).Debug("pipeline stage applied")
}
