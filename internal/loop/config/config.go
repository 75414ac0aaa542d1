// Package config centralizes all tunable presentation and hosting parameters.
package config

import "time"

// View resolution - the visible scene in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical viewport width
	ViewHeight = 80  // Logical viewport height (in sub-pixels, so 40 terminal rows)
)

// Max render resolution - terminals larger than this get a centered, bordered canvas.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Scene layout in logical units.
const (
	OriginAX = 20.0
	OriginBX = 100.0
	HandY    = 40.0
	TargetX  = 60.0
	TargetY  = 40.0

	TableTop    = 47.0
	TableLeft   = 8.0
	TableWidth  = 104.0
	TableHeight = 20.0

	LampY      = 12.0
	LampRadius = 3.0
	GlowRadius = 14.0

	HandBounceHeight = 4.0
	HandHitRadius    = 8.0
)

// Effects
const (
	BurstParticles     = 24
	BurstSpeed         = 30.0
	BurstLifetime      = 0.6
	ConfettiParticles  = 30
	WinConfetti        = 80
	WindowSparkles     = 10
	MenuDiamonds       = 14
	MenuSparkleRate    = 6.0 // per second
	WinnerBlinkRateHz  = 4.0
	WinnerBlinkSeconds = 3.0
)

// Player
const (
	MaxUsernameLength = 16 // Maximum display length for player usernames
	LeaderboardSize   = 5
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Lobby tick rate
const (
	ServerTickRate = 10
	ServerTickTime = time.Second / ServerTickRate
)
