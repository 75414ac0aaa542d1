package object

import (
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/grabdiamond/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity
	Gravity     float64 // Downward acceleration per second
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay (1.0 = no drag)
	Color       draw.Color
	Fade        bool // Whether to fade out over lifetime
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64, color draw.Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Gravity = 0
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	p.Color = color
	p.Fade = true
	return p
}

// Release returns the particle to the pool for reuse.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnBurst creates count particles of one colour flying out of (x, y).
func SpawnBurst(x, y float64, count int, speed, lifetime float64, color draw.Color, spawner Spawner) {
	if spawner == nil {
		return
	}

	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		// 50% to 150% of the base speed
		spd := speed * (0.5 + rand.Float64())
		life := lifetime * (0.5 + rand.Float64()*0.5)

		// Terminal cells are twice as tall as wide, so halve vertical spread.
		vx := math.Cos(angle) * spd
		vy := math.Sin(angle) * spd * 0.5

		spawner.Spawn(NewParticle(x, y, vx, vy, life, color))
	}
}

// SpawnConfetti throws count multicoloured particles upwards from (x, y). They
// fall back down under gravity.
func SpawnConfetti(x, y float64, count int, spawner Spawner) {
	if spawner == nil {
		return
	}

	for i := 0; i < count; i++ {
		angle := -math.Pi/2 + (rand.Float64()-0.5)*math.Pi*0.9
		spd := 15 + rand.Float64()*20
		life := 0.8 + rand.Float64()*0.7

		color := draw.Confetti[rand.Intn(len(draw.Confetti))]
		p := NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life, color)
		p.Gravity = 40
		p.Drag = 0.97
		p.Fade = false
		spawner.Spawn(p)
	}
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true, nil
	}

	dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.VX *= dragFactor
	p.VY *= dragFactor
	p.VY += p.Gravity * dt

	p.X += p.VX * dt
	p.Y += p.VY * dt

	// Particles just disappear at the edges.
	if ctx.Screen.Height > 0 && (p.Y > float64(ctx.Screen.Height) || p.Y < 0) {
		return true, nil
	}
	return false, nil
}

// Draw renders the particle as a pixel on the canvas.
func (p *Particle) Draw(ctx DrawContext) error {
	// Skip faded particles (< 25% lifetime)
	if p.Fade && p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25 {
		return nil
	}
	ctx.Canvas.SetColor(p.Color)
	ctx.Canvas.SetFloat(p.X, p.Y)
	return nil
}
