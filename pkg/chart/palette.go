package chart

import (
	"fmt"
	"math"
	"strconv"
)

// Palette spreads count hues evenly around the color wheel.
func Palette(count int, opacity float64) []string {
	colors := make([]string, 0, max(count, 0))
	for i := 0; i < count; i++ {
		hue := float64(i) * 360 / float64(count)
		colors = append(colors, HSLToRGBA(hue, 70, 50, opacity))
	}
	return colors
}

// HSLToRGBA takes h in degrees and s, l in percent.
func HSLToRGBA(h, s, l, a float64) string {
	h, s, l = h/360, s/100, l/100

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h*6, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 1.0/6:
		r, g, b = c, x, 0
	case h < 2.0/6:
		r, g, b = x, c, 0
	case h < 3.0/6:
		r, g, b = 0, c, x
	case h < 4.0/6:
		r, g, b = 0, x, c
	case h < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return RGBA(
		uint8(math.Round((r+m)*255)),
		uint8(math.Round((g+m)*255)),
		uint8(math.Round((b+m)*255)),
		a,
	)
}

func RGBA(r, g, b uint8, a float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(a, 'f', -1, 64))
}
