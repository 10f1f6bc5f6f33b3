package config

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Atoi parses the leading integer of s the way C's atoi does: leading
// whitespace and an optional sign are accepted, parsing stops at the first
// non-digit, and a string without digits yields 0.
func Atoi(s string) int {
	s = strings.TrimLeft(s, " \t\r\n")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}

// ParseFloats parses a ';' or ',' separated list. It returns nil unless the
// list holds exactly five numbers.
func ParseFloats(s string) []float64 {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' })
	if len(fields) != 5 {
		return nil
	}

	out := make([]float64, 0, 5)
	for _, f := range fields {
		v, ok := parseFloat(f)
		if !ok {
			return nil
		}
		out = append(out, v)
	}
	return out
}

// parseFloat parses a finite float. NaN and infinities are rejected.
func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseColor parses a color given either as decimal components
// "R,G,B[,A]" or as hex "RRGGBB[AA]" (an optional leading '#' is allowed).
// Missing alpha means fully opaque; decimal components are clamped to 0-255.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		if len(parts) < 3 || len(parts) > 4 {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: want 3 or 4 components", s)
		}
		var c [4]uint8
		c[3] = 255
		for i, p := range parts {
			c[i] = clamp8(Atoi(p))
		}
		return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
	}

	rgb, err := colorful.Hex("#" + hex[:6])
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := rgb.RGB255()

	alpha := uint64(255)
	if len(hex) == 8 {
		alpha, err = strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color alpha %q: %w", s, err)
		}
	}
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha)}, nil
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
