package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for board elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorBlue
	ColorWhite
	ColorBrightRed
	ColorBrightBlue
	ColorBrightYellow
	ColorOrange
	ColorGray
	ColorSlate
)

// ANSI returns the 256-color palette index used by terminal renderers.
// ColorDefault has none and returns "".
func (c Color) ANSI() string {
	switch c {
	case ColorRed:
		return "1"
	case ColorGreen:
		return "2"
	case ColorBlue:
		return "4"
	case ColorWhite:
		return "7"
	case ColorBrightRed:
		return "9"
	case ColorBrightYellow:
		return "11"
	case ColorBrightBlue:
		return "12"
	case ColorOrange:
		return "208"
	case ColorGray:
		return "245"
	case ColorSlate:
		return "238"
	default:
		return ""
	}
}

// String returns the CSS-style name of the color, used by renderers that
// draw with named colors.
func (c Color) String() string {
	switch c {
	case ColorRed, ColorBrightRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue, ColorBrightBlue:
		return "blue"
	case ColorWhite:
		return "white"
	case ColorBrightYellow:
		return "yellow"
	case ColorOrange:
		return "orange"
	case ColorGray:
		return "darkgrey"
	case ColorSlate:
		return "darkslategrey"
	default:
		return "black"
	}
}
