package core

// Color represents a foreground color for a screen cell.
// Platforms map it to ANSI 256-color codes or RGB values.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorOrange
	ColorYellow
	ColorGreen
	ColorBlue
	ColorCyan
	ColorMagenta
	ColorWhite
	ColorGray
	ColorDarkGray
)

// String returns the color name used in config files and logs.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorRed:
		return "red"
	case ColorOrange:
		return "orange"
	case ColorYellow:
		return "yellow"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorCyan:
		return "cyan"
	case ColorMagenta:
		return "magenta"
	case ColorWhite:
		return "white"
	case ColorGray:
		return "gray"
	case ColorDarkGray:
		return "darkgray"
	default:
		return "unknown"
	}
}
