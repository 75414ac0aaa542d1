package object

import (
	"math"

	"github.com/tomz197/grabdiamond/internal/draw"
)

// Table is the wooden table the diamond rests on.
type Table struct {
	X, Y          float64 // top-left of the table top
	Width, Height float64 // Height includes the legs
}

// Update is a no-op for static scenery.
func (t *Table) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

// Draw renders the table top with a darker front edge and two legs.
func (t *Table) Draw(ctx DrawContext) error {
	c := ctx.Canvas
	c.SetColor(draw.ColorBrown)
	c.FillRect(t.X, t.Y, t.Width, 3)
	c.SetColor(draw.ColorOrange)
	c.DrawLine(draw.Point{X: t.X, Y: t.Y}, draw.Point{X: t.X + t.Width - 1, Y: t.Y})

	c.SetColor(draw.ColorDim)
	legTop := t.Y + 3
	legHeight := t.Height - 3
	c.FillRect(t.X+3, legTop, 3, legHeight)
	c.FillRect(t.X+t.Width-6, legTop, 3, legHeight)
	return nil
}

// Glow is the pulsing halo drawn around the diamond while the light is on.
type Glow struct {
	X, Y   float64
	Radius float64
	On     bool

	pulse float64
}

// Update advances the pulse.
func (g *Glow) Update(ctx UpdateContext) (bool, error) {
	g.pulse += ctx.Delta.Seconds()
	return false, nil
}

// Draw renders three dotted rings, sparser towards the outside.
func (g *Glow) Draw(ctx DrawContext) error {
	if !g.On {
		return nil
	}
	c := ctx.Canvas
	wobble := math.Sin(g.pulse*4) * 0.8
	colors := [...]draw.Color{draw.ColorYellow, draw.ColorOrange, draw.ColorDim}
	for i, col := range colors {
		c.SetColor(col)
		c.DrawRing(g.X, g.Y, g.Radius*(0.55+0.2*float64(i))+wobble, i+1)
	}
	return nil
}

// Lamp is the light cue: lit while the grab window is closed.
type Lamp struct {
	X, Y   float64
	Radius float64
	On     bool
}

// Update is a no-op; the client sets On from the session snapshot.
func (l *Lamp) Update(ctx UpdateContext) (bool, error) {
	return false, nil
}

// Draw renders the lamp bulb and its cord.
func (l *Lamp) Draw(ctx DrawContext) error {
	c := ctx.Canvas
	c.SetColor(draw.ColorGray)
	c.DrawLine(draw.Point{X: l.X, Y: 0}, draw.Point{X: l.X, Y: l.Y - l.Radius})
	if l.On {
		c.SetColor(draw.ColorYellow)
	} else {
		c.SetColor(draw.ColorDim)
	}
	c.FillCircle(l.X, l.Y, l.Radius)
	return nil
}
