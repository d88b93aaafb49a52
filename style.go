package gridlegend

import (
	"image/color"
	"strings"
)

// Color represents an ARGB color.
type Color struct {
	ARGB string // 8-character hex string, e.g., "FF000000" for black
}

// Predefined colors.
var (
	ColorBlack = Color{ARGB: "FF000000"}
	ColorWhite = Color{ARGB: "FFFFFFFF"}
	ColorRed   = Color{ARGB: "FFFF0000"}
	ColorGreen = Color{ARGB: "FF00FF00"}
	ColorBlue  = Color{ARGB: "FF0000FF"}
	ColorGray  = Color{ARGB: "FF808080"}
)

// NewColor creates a new Color from an ARGB hex string.
// Accepts 6-char RGB (e.g. "CC0000") or 8-char ARGB (e.g. "FFCC0000").
// A leading "#" is stripped automatically.
func NewColor(argb string) Color {
	argb = strings.TrimPrefix(argb, "#")
	if len(argb) == 6 {
		argb = "FF" + argb
	}
	argb = strings.ToUpper(argb)
	if !isValidARGB(argb) {
		return Color{ARGB: "FF000000"} // fallback to black
	}
	return Color{ARGB: argb}
}

// isValidARGB checks that s is exactly 8 hex characters.
func isValidARGB(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// RGBA converts the color for use with the image/draw machinery.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: parseHexByte(c.ARGB, 2),
		G: parseHexByte(c.ARGB, 4),
		B: parseHexByte(c.ARGB, 6),
		A: parseHexByte(c.ARGB, 0),
	}
}

// IsZero reports whether the color was never set.
func (c Color) IsZero() bool { return c.ARGB == "" }

// parseHexByte parses two hex characters at offset into a uint8.
// Returns 0 on any error (out of range, invalid chars).
func parseHexByte(s string, offset int) uint8 {
	if offset+2 > len(s) {
		return 0
	}
	h := hexVal(s[offset])
	l := hexVal(s[offset+1])
	if h < 0 || l < 0 {
		return 0
	}
	return uint8(h<<4 | l)
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return -1
	}
}

// Font represents the text properties used to measure and draw labels.
type Font struct {
	Name   string
	Size   float64 // in points
	Bold   bool
	Italic bool
	Color  Color
}

// NewFont creates a new Font with defaults.
func NewFont() *Font {
	return &Font{
		Name:  "Helvetica",
		Size:  10,
		Color: ColorBlack,
	}
}

// SetName sets the font family name.
func (f *Font) SetName(name string) *Font {
	f.Name = name
	return f
}

// SetSize sets the font size in points (clamped to 1–400).
func (f *Font) SetSize(size float64) *Font {
	if size < 1 {
		size = 1
	}
	if size > 400 {
		size = 400
	}
	f.Size = size
	return f
}

// SetBold sets the bold property and returns the font for chaining.
func (f *Font) SetBold(bold bool) *Font {
	f.Bold = bold
	return f
}

// SetItalic sets the italic property.
func (f *Font) SetItalic(italic bool) *Font {
	f.Italic = italic
	return f
}

// SetColor sets the font color.
func (f *Font) SetColor(c Color) *Font {
	f.Color = c
	return f
}

// HAlign is the horizontal alignment of a legend column.
type HAlign string

const (
	AlignLeft   HAlign = "left"
	AlignCenter HAlign = "center"
	AlignRight  HAlign = "right"
)

// LineStyle represents the stroke style of a sample line.
type LineStyle string

const (
	LineSolid   LineStyle = "solid"
	LineDash    LineStyle = "dash"
	LineDot     LineStyle = "dot"
	LineDashDot LineStyle = "dashdot"
	LineNone    LineStyle = "none"
)
