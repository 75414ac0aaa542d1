package client

import (
	"time"

	"github.com/tomz197/grabdiamond/internal/draw"
	"github.com/tomz197/grabdiamond/internal/game"
	"github.com/tomz197/grabdiamond/internal/input"
	"github.com/tomz197/grabdiamond/internal/object"
)

// Screen represents which screen a client is showing.
type Screen int

const (
	ScreenMenu       Screen = iota // Title screen with mode selection
	ScreenDifficulty               // Difficulty modal over the menu
	ScreenPlaying                  // Active session
	ScreenShutdown                 // Server is shutting down
)

// Menu entries in display order.
const (
	menuPlayBot = iota
	menuPlayFriend
	menuHowTo
	menuItemCount
)

var menuLabels = [menuItemCount]string{
	menuPlayBot:    "Play with Bot",
	menuPlayFriend: "Play with Friend",
	menuHowTo:      "How to Play",
}

// ClientState holds per-connection UI state. The game rules live in the
// session; this only tracks what the terminal shows.
type ClientState struct {
	Input  input.Input
	View   object.Screen // Logical scene dimensions
	Screen Screen

	menuIndex       int
	difficultyIndex int
	pendingMode     game.Mode // mode picked on the menu, awaiting difficulty
	showHelp        bool      // how-to panel overlay

	termSizeFunc  draw.TermSizeFunc
	Running       bool
	delta         time.Duration // Frame delta time
	clock         time.Duration // Time since the client started
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	winnerBlink   float64       // Seconds left of the blinking winner banner
	isInactive    bool

	// Previous frame, for full clears on transitions
	prevScreen  Screen
	wasHelp     bool
	wasInactive bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Screen:          ScreenMenu,
		difficultyIndex: int(game.DifficultyMedium),
		Running:         true,
	}
}
