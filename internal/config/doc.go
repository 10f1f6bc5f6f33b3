// Package config reads image slot parameters from sectioned configuration.
//
// A Source holds sections of string values with case-insensitive section
// and key names. It is normally parsed from a TOML file in which every table
// is one section:
//
//	[Icon]
//	ImageName = "icons/gear"
//	ImageCrop = "0,0,32,32,4"
//	Greyscale = 1
//	ImageTint = "255,0,0,255"
//	ColorMatrix4 = [0, 0, 0, 0.5, 0]
//	ImageFlip = "horizontal"
//	ImageRotate = 45
//
// Bind maps the keys of one section onto params.Parameters. Lenient coercion
// (atoi-style integers, defaults for malformed colors and floats) happens in
// the Source; Bind only rejects values that cannot be mapped to a closed
// enum, namely the crop anchor index and the flip keyword.
//
// # Recognized Keys
//
//   - ImageCrop: "x,y,width,height,anchor"; anchor 0-4 is TopLeft, TopRight,
//     BottomRight, BottomLeft, Center
//   - Greyscale: 0 or 1
//   - ImageTint: color, default opaque white
//   - ImageAlpha: 0-255, defaults to the tint's alpha
//   - ColorMatrix1..ColorMatrix5: five floats each; only the first four are used
//   - ImageFlip: NONE, HORIZONTAL, VERTICAL or BOTH
//   - ImageRotate: degrees, clockwise
//
// When ColorMatrixN (N = 1..4) is absent, the diagonal entry of row N-1 falls
// back to the matching ImageTint channel divided by 255 (ImageAlpha for row 4).
package config
