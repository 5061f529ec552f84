// Package palette parses the color strings used in dates.json and config.json.
package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Fallback is used for colors that cannot be parsed.
var Fallback = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// Parse accepts #rgb, #rrggbb, #rrggbbaa and SVG color names.
func Parse(value string) (color.NRGBA, bool) {
	text := strings.ToLower(strings.TrimSpace(value))
	if named, ok := colornames.Map[text]; ok {
		return color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A}, true
	}
	if !strings.HasPrefix(text, "#") {
		return Fallback, false
	}

	hex := text[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return Fallback, false
	}
	packed, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Fallback, false
	}
	return color.NRGBA{
		R: uint8(packed >> 24),
		G: uint8(packed >> 16),
		B: uint8(packed >> 8),
		A: uint8(packed),
	}, true
}

// Hex formats c as #rrggbb.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Contrast returns black or white, whichever reads better on background.
func Contrast(background color.NRGBA) color.NRGBA {
	luminance := 0.299*float64(background.R) + 0.587*float64(background.G) + 0.114*float64(background.B)
	if luminance > 150 {
		return color.NRGBA{A: 0xff}
	}
	return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}
