package render

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/ayusman/posecatch/internal/game"
)

// fallbackColor is used for malformed color strings.
var fallbackColor = color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF}

// ParseColor converts a "#RRGGBB" target color to RGBA.
func ParseColor(c game.Color) color.RGBA {
	hex := strings.TrimPrefix(string(c), "#")
	if len(hex) != 6 {
		return fallbackColor
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fallbackColor
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xFF,
	}
}
