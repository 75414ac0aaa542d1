package object

import (
	"github.com/tomz197/grabdiamond/internal/draw"
)

// Label is static text anchored to a logical position, centred horizontally.
type Label struct {
	X, Y  float64
	Value string
	Color draw.Color
}

// Update is a no-op for static text.
func (l *Label) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

// Draw is a no-op; labels are written by DrawText.
func (l *Label) Draw(ctx DrawContext) error {
	return nil
}

// DrawText writes the label over the rendered canvas.
func (l *Label) DrawText(ctx DrawContext) {
	writeCentered(ctx, l.X, l.Y, l.Value, l.Color)
}

// Popup is floating text such as "+5" that rises and disappears.
type Popup struct {
	X, Y     float64
	Value    string
	Color    draw.Color
	Lifetime float64 // seconds remaining
	Rise     float64 // logical units per second
}

// NewPopup creates a one second popup at (x, y).
func NewPopup(x, y float64, value string, color draw.Color) *Popup {
	return &Popup{X: x, Y: y, Value: value, Color: color, Lifetime: 1, Rise: 12}
}

// Update moves the popup upwards and expires it.
func (p *Popup) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()
	p.Lifetime -= dt
	p.Y -= p.Rise * dt
	return p.Lifetime <= 0, nil
}

// Draw is a no-op; popups are written by DrawText.
func (p *Popup) Draw(ctx DrawContext) error {
	return nil
}

// DrawText writes the popup over the rendered canvas.
func (p *Popup) DrawText(ctx DrawContext) {
	writeCentered(ctx, p.X, p.Y, p.Value, p.Color)
}

// writeCentered writes value centred on logical (x, y) and marks the cells
// dirty so the canvas repaints them once the text moves or goes away.
func writeCentered(ctx DrawContext, x, y float64, value string, color draw.Color) {
	if value == "" || ctx.Writer == nil {
		return
	}
	col, row := ctx.Canvas.LogicalToTerminal(x, y)
	width := len([]rune(value))
	col -= width / 2
	if row < 1 || row > ctx.Canvas.TerminalHeight() {
		return
	}
	if col < 1 || col+width-1 > ctx.Canvas.TerminalWidth() {
		return
	}
	ctx.Writer.WriteColorAt(col, row, color, value)
	ctx.Canvas.MarkTextDirty(col, row, width)
}
