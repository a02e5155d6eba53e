package sim

import (
	"image/color"
	"math"

	"pixsim/pkg/core"
)

// Transparent is the color of an empty slot.
var Transparent = color.NRGBA{}

// RGBAf builds a color from channels in [0, 1].
func RGBAf(r, g, b, a float64) color.NRGBA {
	return color.NRGBA{R: unit8(r), G: unit8(g), B: unit8(b), A: unit8(a)}
}

func unit8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// Lerp blends a toward b by t in [0, 1].
func Lerp(a, b color.NRGBA, t float64) color.NRGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// ApproxEqual compares two colors by squared distance over all four channels
// normalized to [0, 1].
func ApproxEqual(a, b color.NRGBA, epsilon float64) bool {
	d := func(x, y uint8) float64 {
		v := (float64(x) - float64(y)) / 255
		return v * v
	}
	return d(a.R, b.R)+d(a.G, b.G)+d(a.B, b.B)+d(a.A, b.A) < epsilon*epsilon
}

// IsGrayscale reports whether the color has equal red, green and blue.
func IsGrayscale(c color.NRGBA) bool {
	return c.R == c.G && c.R == c.B
}

// Opaque reports whether the color leaves a visible trace.
func Opaque(c color.NRGBA) bool { return c.A > 0 }

func gradient(rng *core.RNG, a, b color.NRGBA) color.NRGBA {
	return Lerp(a, b, rng.Float64())
}
