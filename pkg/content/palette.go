package content

import "github.com/vanderheijden86/archguide/pkg/catalog"

// Page colors.
const (
	HexBackground = "#FAFAF7"
	HexSurface    = "#FFFFFF"
	HexSurfaceAlt = "#F5F3EE"
	HexBorder     = "#E2DFD6"
	HexTextBody   = "#333333"
	HexTextMuted  = "#6B6B6B"
	HexTextLight  = "#999999"
)

var palette = map[catalog.Color]string{
	catalog.ColorText:   "#1A1A1A",
	catalog.ColorMuted:  HexTextLight,
	catalog.ColorAccent: "#D03027",
	catalog.ColorBlue:   "#1A6FB5",
	catalog.ColorGreen:  "#1B7A4A",
	catalog.ColorOrange: "#C67A2E",
	catalog.ColorPurple: "#6B4C9A",
	catalog.ColorTeal:   "#0E8A7D",
	catalog.ColorPink:   "#B5436E",
	catalog.ColorBorder: HexBorder,
}

// Hex maps a color token to its hex value. Unknown tokens that already look
// like a hex color are passed through; anything else is the muted color.
func Hex(c catalog.Color) string {
	if hex, ok := palette[c]; ok {
		return hex
	}
	if s := string(c); len(s) == 7 && s[0] == '#' {
		return s
	}
	return HexTextLight
}

// Colors returns the known color tokens.
func Colors() []catalog.Color {
	return []catalog.Color{
		catalog.ColorText, catalog.ColorMuted, catalog.ColorAccent,
		catalog.ColorBlue, catalog.ColorGreen, catalog.ColorOrange,
		catalog.ColorPurple, catalog.ColorTeal, catalog.ColorPink,
		catalog.ColorBorder,
	}
}
