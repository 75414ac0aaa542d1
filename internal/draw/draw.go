// Package draw renders logical shapes onto a terminal using half-block
// characters and 256-colour ANSI sequences.
package draw

import (
	"fmt"
	"io"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a palette entry. The zero value means "no pixel".
type Color uint8

// Palette.
const (
	ColorNone Color = iota
	ColorWhite
	ColorCyan
	ColorRed
	ColorYellow
	ColorBrown
	ColorBlue
	ColorLightBlue
	ColorMagenta
	ColorGreen
	ColorOrange
	ColorGray
	ColorDim
	ColorSkin
	colorCount
)

// ansi256 maps palette entries to xterm-256 colour indices.
var ansi256 = [colorCount]int{
	ColorNone:      0,
	ColorWhite:     15,
	ColorCyan:      51,
	ColorRed:       196,
	ColorYellow:    226,
	ColorBrown:     94,
	ColorBlue:      33,
	ColorLightBlue: 153,
	ColorMagenta:   201,
	ColorGreen:     46,
	ColorOrange:    208,
	ColorGray:      244,
	ColorDim:       237,
	ColorSkin:      223,
}

// ANSI256 returns the xterm-256 index for c.
func (c Color) ANSI256() int {
	if c >= colorCount {
		return ansi256[ColorWhite]
	}
	return ansi256[c]
}

// Bright colours used for confetti and sparkles.
var Confetti = []Color{ColorCyan, ColorRed, ColorYellow, ColorMagenta, ColorGreen, ColorOrange, ColorLightBlue}

// Raw escape sequences for text overlays.
const (
	ColorReset = "\033[0m"
)

// FG returns the escape sequence selecting c as the foreground colour.
func FG(c Color) string {
	return fmt.Sprintf("\033[38;5;%dm", c.ANSI256())
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// EnableMouse turns on button-press reporting in SGR encoding.
func EnableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1000h\033[?1006h")
}

// DisableMouse turns mouse reporting back off.
func DisableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1006l\033[?1000l")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
