// Package colormatrix implements the 5x5 color matrix used to tint images.
//
// A Matrix transforms an RGBA pixel, extended with a constant fifth
// component, using the row-vector convention:
//
//	out[j] = in[0]*m[0][j] + in[1]*m[1][j] + in[2]*m[2][j] + in[3]*m[3][j] + m[4][j]
//
// Row i therefore holds the contribution of input channel i (R, G, B, A) to
// every output channel, and row 4 holds a constant offset. Only the first four
// columns are meaningful; the fifth column is reserved and is expected to be
// {0, 0, 0, 0, 1}. Channel values are normalized to [0, 1] before the
// multiply and clamped afterwards.
package colormatrix

import (
	"image/color"
	"math"
)

// Matrix is a 5x5 color matrix indexed as m[row][column].
type Matrix [5][5]float64

var identity = Matrix{
	{1, 0, 0, 0, 0},
	{0, 1, 0, 0, 0},
	{0, 0, 1, 0, 0},
	{0, 0, 0, 1, 0},
	{0, 0, 0, 0, 1},
}

// greyscale maps every color channel to the ITU-R BT.601 luma of the input
// and leaves alpha untouched.
var greyscale = Matrix{
	{0.299, 0.299, 0.299, 0, 0},
	{0.587, 0.587, 0.587, 0, 0},
	{0.114, 0.114, 0.114, 0, 0},
	{0, 0, 0, 1, 0},
	{0, 0, 0, 0, 1},
}

// Identity returns the identity matrix.
func Identity() Matrix { return identity }

// Greyscale returns the luma-preserving greyscale matrix.
func Greyscale() Matrix { return greyscale }

// Equal reports whether a and b have the same entries in their first four
// columns. The reserved fifth column is ignored.
func Equal(a, b Matrix) bool {
	for i := 0; i < 5; i++ {
		for j := 0; j < 4; j++ {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

// IsIdentity reports whether m equals the identity matrix, ignoring the
// fifth column.
func IsIdentity(m Matrix) bool { return Equal(m, identity) }

// Multiply returns the matrix that applies a first and then b.
func Multiply(a, b Matrix) Matrix {
	var out Matrix
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			var sum float64
			for k := 0; k < 5; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Apply transforms a single non-premultiplied color through m.
func Apply(m Matrix, c color.NRGBA) color.NRGBA {
	in := [4]float64{
		float64(c.R) / 255,
		float64(c.G) / 255,
		float64(c.B) / 255,
		float64(c.A) / 255,
	}

	var out [4]uint8
	for j := 0; j < 4; j++ {
		v := m[4][j]
		for i := 0; i < 4; i++ {
			v += in[i] * m[i][j]
		}
		out[j] = to8(v)
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: out[3]}
}

// to8 clamps v to [0, 1] and rounds it to an 8-bit channel value.
func to8(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
