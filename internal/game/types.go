// Package game implements the timing, grab and scoring rules of a session.
// It is single-threaded: callers drive it through Advance and read it back
// through Snapshot and Events.
package game

import (
	"fmt"
	"math"
	"strings"
)

// Side identifies a participant.
type Side int

const (
	SideA Side = iota // Left hand, always a human player
	SideB             // Right hand, friend or bot
)

// Sides lists every side in tie-break order.
var Sides = [...]Side{SideA, SideB}

func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// Valid reports whether s is one of the known sides.
func (s Side) Valid() bool {
	return s == SideA || s == SideB
}

// Phase is the grab state machine position of a side.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseMovingToTarget
	PhaseReturningToOrigin
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseMovingToTarget:
		return "moving"
	case PhaseReturningToOrigin:
		return "returning"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Mode selects who plays side B.
type Mode int

const (
	ModeVsBot Mode = iota
	ModeVsFriend
)

func (m Mode) String() string {
	switch m {
	case ModeVsBot:
		return "bot"
	case ModeVsFriend:
		return "friend"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "bot" or "friend" into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bot":
		return ModeVsBot, nil
	case "friend":
		return ModeVsFriend, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Difficulty is a named animation speed.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// Difficulties lists every difficulty in menu order.
var Difficulties = [...]Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Speed returns the progress added per animation tick.
func (d Difficulty) Speed() float64 {
	switch d {
	case DifficultyEasy:
		return 0.03
	case DifficultyHard:
		return 0.08
	default:
		return 0.05
	}
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
}

// ParseDifficulty converts "easy", "medium" or "hard" into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// Vec is a position in logical canvas units.
type Vec struct {
	X, Y float64
}

// Lerp interpolates from a to b; t=0 yields a, t=1 yields b.
func Lerp(a, b Vec, t float64) Vec {
	return Vec{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// GrabState is the animation state of one hand.
type GrabState struct {
	Position Vec
	Origin   Vec
	Phase    Phase
	Progress float64 // 0..1 within the current leg
}

// Busy reports whether the side currently holds the target lock.
func (g GrabState) Busy() bool {
	return g.Phase != PhaseIdle
}

// Bounce returns a cosmetic vertical offset for an in-flight hand.
// Negative values lift the hand; idle hands never bounce.
func (g GrabState) Bounce(height float64) float64 {
	if !g.Busy() {
		return 0
	}
	p := math.Min(math.Max(g.Progress, 0), 1)
	return -math.Sin(math.Pi*p) * height
}

// LightCue is the grab window flag. The light is on while the window is closed.
type LightCue struct {
	WindowOpen bool
}

// LightOn reports whether the light is shining (grabbing not allowed).
func (l LightCue) LightOn() bool {
	return !l.WindowOpen
}
