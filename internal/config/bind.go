package config

import (
	"image/color"
	"strings"

	"github.com/ironsheep/image-tint-mcp/internal/colormatrix"
	apperrors "github.com/ironsheep/image-tint-mcp/internal/errors"
	"github.com/ironsheep/image-tint-mcp/internal/params"
)

// Keys names the configuration keys an image slot is bound from. Several
// slots can share one section by using different key prefixes.
type Keys struct {
	ImageName   string
	ImageCrop   string
	Greyscale   string
	ImageTint   string
	ImageAlpha  string
	ColorMatrix [5]string
	ImageFlip   string
	ImageRotate string
}

// DefaultKeys returns the unprefixed key names.
func DefaultKeys() Keys { return PrefixedKeys("") }

// PrefixedKeys returns the key names with prefix prepended, e.g.
// PrefixedKeys("Button") yields "ButtonImageCrop".
func PrefixedKeys(prefix string) Keys {
	return Keys{
		ImageName:  prefix + "ImageName",
		ImageCrop:  prefix + "ImageCrop",
		Greyscale:  prefix + "Greyscale",
		ImageTint:  prefix + "ImageTint",
		ImageAlpha: prefix + "ImageAlpha",
		ColorMatrix: [5]string{
			prefix + "ColorMatrix1",
			prefix + "ColorMatrix2",
			prefix + "ColorMatrix3",
			prefix + "ColorMatrix4",
			prefix + "ColorMatrix5",
		},
		ImageFlip:   prefix + "ImageFlip",
		ImageRotate: prefix + "ImageRotate",
	}
}

// BindOptions adjusts which keys Bind honours.
type BindOptions struct {
	// DisableTransform ignores ImageCrop and ImageRotate; the previous crop
	// and rotation are kept.
	DisableTransform bool
}

var opaqueWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Bind reads the parameters of one image slot from section. prev supplies
// the values kept when opts.DisableTransform is set.
//
// An invalid crop anchor or flip keyword returns a *errors.ConfigError naming
// the key, its value and the section; no parameters are returned with it.
func Bind(r Reader, section string, keys Keys, prev params.Parameters, opts BindOptions) (params.Parameters, error) {
	p := params.Default()
	p.Crop, p.Anchor, p.Rotate = prev.Crop, prev.Anchor, prev.Rotate

	if !opts.DisableTransform {
		crop, anchor, err := bindCrop(r, section, keys.ImageCrop)
		if err != nil {
			return prev, err
		}
		p.Crop, p.Anchor = crop, anchor
	}

	p.Greyscale = r.ReadInt(section, keys.Greyscale, 0) != 0
	p.Matrix = bindMatrix(r, section, keys)

	flip := r.ReadString(section, keys.ImageFlip, "NONE")
	f, err := params.ParseFlip(flip)
	if err != nil {
		return prev, &apperrors.ConfigError{Key: keys.ImageFlip, Value: flip, Section: section, Err: err}
	}
	p.Flip = f

	if !opts.DisableTransform {
		p.Rotate = r.ReadFloat(section, keys.ImageRotate, 0)
	}
	return p, nil
}

// bindCrop parses "x,y,width,height,anchor". The value is only split when it
// contains a comma; fields that are missing keep their unset defaults.
func bindCrop(r Reader, section, key string) (params.CropRect, params.Anchor, error) {
	crop := params.NoCrop
	value := r.ReadString(section, key, "")
	if value == "" {
		return crop, params.AnchorTopLeft, nil
	}

	anchorIndex := int(params.AnchorTopLeft)
	if strings.Contains(value, ",") {
		fields := strings.FieldsFunc(value, func(c rune) bool { return c == ',' })
		targets := []*int{&crop.X, &crop.Y, &crop.Width, &crop.Height, &anchorIndex}
		for i, f := range fields {
			if i == len(targets) {
				break
			}
			*targets[i] = Atoi(f)
		}
	}

	anchor, err := params.ParseAnchor(anchorIndex)
	if err != nil {
		return params.NoCrop, params.AnchorTopLeft, &apperrors.ConfigError{
			Key: key, Value: value, Section: section, Detail: "(origin)", Err: err,
		}
	}
	return crop, anchor, nil
}

// bindMatrix builds the tint matrix. ColorMatrix1..4 replace the first four
// columns of their row; when absent, the row's diagonal falls back to the
// legacy ImageTint channel (or ImageAlpha for row 4). ColorMatrix5 has no
// fallback.
func bindMatrix(r Reader, section string, keys Keys) colormatrix.Matrix {
	tint := r.ReadColor(section, keys.ImageTint, opaqueWhite)
	alpha := r.ReadInt(section, keys.ImageAlpha, int(tint.A))
	alpha = min(255, max(0, alpha))

	fallback := [4]float64{
		float64(tint.R) / 255,
		float64(tint.G) / 255,
		float64(tint.B) / 255,
		float64(alpha) / 255,
	}

	m := colormatrix.Identity()
	for row := 0; row < 5; row++ {
		if values := r.ReadFloats(section, keys.ColorMatrix[row]); values != nil {
			copy(m[row][:4], values[:4])
			continue
		}
		if row < 4 {
			m[row][row] = fallback[row]
		}
	}
	return m
}
