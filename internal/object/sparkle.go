package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/grabdiamond/internal/draw"
)

// Sparkle is a small twinkling star that shrinks to a dot before vanishing.
type Sparkle struct {
	X, Y        float64
	Lifetime    float64
	MaxLifetime float64
	Color       draw.Color
}

// NewSparkle creates a sparkle at (x, y) lasting lifetime seconds.
func NewSparkle(x, y, lifetime float64, color draw.Color) *Sparkle {
	return &Sparkle{X: x, Y: y, Lifetime: lifetime, MaxLifetime: lifetime, Color: color}
}

// SpawnSparkles scatters count sparkles within radius of (x, y).
func SpawnSparkles(x, y, radius float64, count int, spawner Spawner) {
	if spawner == nil {
		return
	}
	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		r := radius * math.Sqrt(rand.Float64())
		sx := x + math.Cos(angle)*r
		sy := y + math.Sin(angle)*r
		spawner.Spawn(NewSparkle(sx, sy, 0.4+rand.Float64()*0.4, draw.ColorWhite))
	}
}

// Update ages the sparkle.
func (s *Sparkle) Update(ctx UpdateContext) (bool, error) {
	s.Lifetime -= ctx.Delta.Seconds()
	return s.Lifetime <= 0, nil
}

// Draw renders a plus sign while young and a single dot afterwards.
func (s *Sparkle) Draw(ctx DrawContext) error {
	c := ctx.Canvas
	c.SetColor(s.Color)
	c.SetFloat(s.X, s.Y)
	if s.MaxLifetime > 0 && s.Lifetime/s.MaxLifetime > 0.5 {
		c.SetFloat(s.X-1, s.Y)
		c.SetFloat(s.X+1, s.Y)
		c.SetFloat(s.X, s.Y-1)
		c.SetFloat(s.X, s.Y+1)
	}
	return nil
}

// SparkleEmitter keeps spawning sparkles at random screen positions.
type SparkleEmitter struct {
	Rate float64 // sparkles per second

	acc float64
}

// NewSparkleEmitter creates an emitter producing rate sparkles per second.
func NewSparkleEmitter(rate float64) *SparkleEmitter {
	return &SparkleEmitter{Rate: rate}
}

// Update spawns the sparkles due this frame. The emitter is never removed.
func (e *SparkleEmitter) Update(ctx UpdateContext) (bool, error) {
	if ctx.Spawner == nil || ctx.Screen.Width <= 0 || ctx.Screen.Height <= 0 {
		return false, nil
	}
	e.acc += e.Rate * ctx.Delta.Seconds()
	for e.acc >= 1 {
		e.acc--
		x := rand.Float64() * float64(ctx.Screen.Width)
		y := rand.Float64() * float64(ctx.Screen.Height)
		color := draw.Confetti[rand.Intn(len(draw.Confetti))]
		ctx.Spawner.Spawn(NewSparkle(x, y, 0.5+rand.Float64()*0.8, color))
	}
	return false, nil
}

// Draw is a no-op; the emitter itself is invisible.
func (e *SparkleEmitter) Draw(ctx DrawContext) error {
	return nil
}
