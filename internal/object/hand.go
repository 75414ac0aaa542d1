package object

import (
	"math"

	"github.com/tomz197/grabdiamond/internal/draw"
	"github.com/tomz197/grabdiamond/internal/game"
	"github.com/tomz197/grabdiamond/internal/physics"
)

// Hand outlines, relative to the palm centre, pointing towards +X.
var (
	handPalm = []draw.Point{
		{X: -4, Y: -3}, {X: 1, Y: -4}, {X: 4, Y: -3},
		{X: 4, Y: 3}, {X: 1, Y: 4}, {X: -4, Y: 3},
	}
	handSleeve = []draw.Point{
		{X: -9, Y: -4}, {X: -4, Y: -4}, {X: -4, Y: 4}, {X: -9, Y: 4},
	}
	// Pairs of points, one line per finger plus the thumb.
	handFingers = []draw.Point{
		{X: 4, Y: -3}, {X: 7, Y: -3},
		{X: 4, Y: -1}, {X: 8, Y: -1},
		{X: 4, Y: 1}, {X: 8, Y: 1},
		{X: 4, Y: 3}, {X: 7, Y: 3},
		{X: 0, Y: -4}, {X: 3, Y: -6},
	}
)

// Hand draws one side's grabbing hand from the session's GrabState.
type Hand struct {
	Side         game.Side
	State        game.GrabState
	Color        draw.Color // sleeve colour
	BounceHeight float64    // peak vertical offset while moving
	Radius       float64    // hit-test radius for clicks
	Flip         bool       // mirror so the hand points towards -X

	wobble float64 // seconds of idle animation
	buf    [10]draw.Point
}

// NewHand creates a hand resting at origin. Side B is mirrored to face left.
func NewHand(side game.Side, origin game.Vec, color draw.Color) *Hand {
	return &Hand{
		Side:         side,
		State:        game.GrabState{Position: origin, Origin: origin},
		Color:        color,
		BounceHeight: 4,
		Radius:       8,
		Flip:         side == game.SideB,
	}
}

// SetState copies the latest session state for drawing.
func (h *Hand) SetState(g game.GrabState) {
	h.State = g
}

// Position returns where the hand is drawn, including bounce and idle wobble.
func (h *Hand) Position() (x, y float64) {
	x, y = h.State.Position.X, h.State.Position.Y
	if h.State.Busy() {
		return x, y + h.State.Bounce(h.BounceHeight)
	}
	// Offset the two sides so they do not wobble in lockstep.
	phase := float64(h.Side) * math.Pi / 2
	return x, y + math.Sin(h.wobble*3+phase)*0.6
}

// Contains reports whether the logical point lies on the hand.
func (h *Hand) Contains(x, y float64) bool {
	hx, hy := h.Position()
	return physics.PointInCircle(x, y, hx, hy, h.Radius)
}

// Update advances the idle animation.
func (h *Hand) Update(ctx UpdateContext) (bool, error) {
	h.wobble += ctx.Delta.Seconds()
	return false, nil
}

// Draw renders sleeve, palm and fingers.
func (h *Hand) Draw(ctx DrawContext) error {
	x, y := h.Position()
	c := ctx.Canvas

	c.SetColor(h.Color)
	c.DrawPolygon(draw.Transform(h.buf[:], handSleeve, x, y, 0, h.Flip), true)

	c.SetColor(draw.ColorSkin)
	c.DrawPolygon(draw.Transform(h.buf[:], handPalm, x, y, 0, h.Flip), true)

	fingers := draw.Transform(h.buf[:], handFingers, x, y, 0, h.Flip)
	for i := 0; i+1 < len(fingers); i += 2 {
		c.DrawLine(fingers[i], fingers[i+1])
	}
	return nil
}
