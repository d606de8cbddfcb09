package domain

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// White marks outcomes that belong to no player.
var White = Color{R: 0xff, G: 0xff, B: 0xff}

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// ParseColor reads a "#rrggbb" or "#rgb" string.
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, errors.WithMessagef(err, "parse color '%s'", s)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

func (c Color) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (c Color) Hex() string {
	return c.toColorful().Hex()
}

// Blend mixes c towards o; t=0 keeps c, t=1 yields o.
func (c Color) Blend(o Color, t float64) Color {
	r, g, b := c.toColorful().BlendRgb(o.toColorful(), t).Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
