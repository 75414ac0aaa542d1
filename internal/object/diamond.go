package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/grabdiamond/internal/draw"
)

// Diamond is a rhombus-shaped gem. The target diamond sits still on the table;
// menu diamonds fall and spin, re-entering at the top when they leave the screen.
type Diamond struct {
	X, Y          float64
	Width, Height float64
	Angle         float64 // radians
	Spin          float64 // radians per second
	VY            float64 // fall speed, logical units per second
	Color         draw.Color
	Falling       bool

	buf [4]draw.Point
}

// NewTargetDiamond creates the stationary diamond both hands reach for.
func NewTargetDiamond(x, y float64) *Diamond {
	return &Diamond{
		X:      x,
		Y:      y,
		Width:  8,
		Height: 12,
		Color:  draw.ColorLightBlue,
	}
}

// NewFallingDiamond creates a menu background diamond somewhere on screen.
func NewFallingDiamond(screen Screen) *Diamond {
	size := 3 + rand.Float64()*4
	return &Diamond{
		X:       rand.Float64() * float64(screen.Width),
		Y:       rand.Float64() * float64(screen.Height),
		Width:   size,
		Height:  size * 1.5,
		Angle:   rand.Float64() * 2 * math.Pi,
		Spin:    (rand.Float64() - 0.5) * 2,
		VY:      4 + rand.Float64()*8,
		Color:   draw.Confetti[rand.Intn(len(draw.Confetti))],
		Falling: true,
	}
}

// Update moves a falling diamond. Stationary diamonds never change.
func (d *Diamond) Update(ctx UpdateContext) (bool, error) {
	if !d.Falling {
		return false, nil
	}
	dt := ctx.Delta.Seconds()
	d.Y += d.VY * dt
	d.Angle += d.Spin * dt

	if ctx.Screen.Height > 0 && d.Y-d.Height > float64(ctx.Screen.Height) {
		d.Y = -d.Height
		d.X = rand.Float64() * float64(ctx.Screen.Width)
	}
	return false, nil
}

// Draw fills the gem and outlines it with a white girdle.
func (d *Diamond) Draw(ctx DrawContext) error {
	pts := draw.DiamondPoints(d.buf[:], d.X, d.Y, d.Width, d.Height, d.Angle)
	c := ctx.Canvas

	c.SetColor(d.Color)
	c.DrawPolygon(pts, true)

	c.SetColor(draw.ColorWhite)
	c.DrawPolygon(pts, false)
	if d.Width >= 6 {
		c.DrawLine(pts[3], pts[1])
	}
	return nil
}
