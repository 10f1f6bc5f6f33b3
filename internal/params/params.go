package params

import (
	"fmt"
	"strings"

	"github.com/ironsheep/image-tint-mcp/internal/colormatrix"
	apperrors "github.com/ironsheep/image-tint-mcp/internal/errors"
)

// Anchor is the reference point a crop offset is measured from.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTopRight
	AnchorBottomRight
	AnchorBottomLeft
	AnchorCenter
)

// ParseAnchor converts a configured anchor index to an Anchor.
func ParseAnchor(index int) (Anchor, error) {
	if index < int(AnchorTopLeft) || index > int(AnchorCenter) {
		return AnchorTopLeft, fmt.Errorf("%w: %d", apperrors.ErrInvalidAnchor, index)
	}
	return Anchor(index), nil
}

func (a Anchor) String() string {
	switch a {
	case AnchorTopLeft:
		return "TopLeft"
	case AnchorTopRight:
		return "TopRight"
	case AnchorBottomRight:
		return "BottomRight"
	case AnchorBottomLeft:
		return "BottomLeft"
	case AnchorCenter:
		return "Center"
	}
	return fmt.Sprintf("Anchor(%d)", int(a))
}

// Flip selects the mirroring applied by the transform stage.
type Flip int

const (
	FlipNone Flip = iota
	FlipHorizontal
	FlipVertical
	FlipBoth
)

// ParseFlip parses a flip keyword case-insensitively.
func ParseFlip(s string) (Flip, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NONE":
		return FlipNone, nil
	case "HORIZONTAL":
		return FlipHorizontal, nil
	case "VERTICAL":
		return FlipVertical, nil
	case "BOTH":
		return FlipBoth, nil
	}
	return FlipNone, fmt.Errorf("%w: %q", apperrors.ErrInvalidFlip, s)
}

func (f Flip) String() string {
	switch f {
	case FlipNone:
		return "NONE"
	case FlipHorizontal:
		return "HORIZONTAL"
	case FlipVertical:
		return "VERTICAL"
	case FlipBoth:
		return "BOTH"
	}
	return fmt.Sprintf("Flip(%d)", int(f))
}

// CropRect is a crop request. Width and Height of -1 mean "not set".
type CropRect struct {
	X, Y, Width, Height int
}

// NoCrop is the unset crop rectangle.
var NoCrop = CropRect{X: -1, Y: -1, Width: -1, Height: -1}

// Enabled reports whether the rectangle requests a crop.
func (r CropRect) Enabled() bool { return r.Width >= 0 && r.Height >= 0 }

// Empty reports whether an enabled crop has zero area.
func (r CropRect) Empty() bool { return r.Enabled() && (r.Width == 0 || r.Height == 0) }

// Parameters is the full declarative state of an image slot.
type Parameters struct {
	Crop      CropRect
	Anchor    Anchor
	Greyscale bool
	Matrix    colormatrix.Matrix
	Flip      Flip
	// Rotate is the clockwise rotation in degrees.
	Rotate float64
}

// Default returns the parameters of an unconfigured slot.
func Default() Parameters {
	return Parameters{
		Crop:   NoCrop,
		Anchor: AnchorTopLeft,
		Matrix: colormatrix.Identity(),
		Flip:   FlipNone,
	}
}

// NeedsTint reports whether the tint stage does anything.
func (p Parameters) NeedsTint() bool {
	return p.Greyscale || !colormatrix.IsIdentity(p.Matrix)
}

// NeedsTransform reports whether the transform stage does anything.
func (p Parameters) NeedsTransform() bool {
	return p.Flip != FlipNone || p.Rotate != 0
}
