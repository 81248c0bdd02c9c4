// Package palette maps arm indices to the fixed categorical colours used by
// every renderer.
package palette

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Category10 is the d3 ten-colour categorical scheme.
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Fallback colours arms past the end of the scheme.
var Fallback = colorful.Color{R: 160.0 / 255, G: 160.0 / 255, B: 160.0 / 255}

var colors = mustParse(Category10)

func mustParse(hexes []string) []colorful.Color {
	out := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}

func Len() int { return len(colors) }

// Color returns the colour of arm i, or Fallback past the scheme.
func Color(i int) colorful.Color {
	if i < 0 || i >= len(colors) {
		return Fallback
	}
	return colors[i]
}

func RGBA(i int) color.RGBA {
	r, g, b := Color(i).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func Hex(i int) string {
	return Color(i).Hex()
}

// Dim blends arm i's colour toward black, t in [0, 1].
func Dim(i int, t float64) color.RGBA {
	r, g, b := Color(i).BlendRgb(colorful.Color{}, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
