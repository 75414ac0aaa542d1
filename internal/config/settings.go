package config

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/grabdiamond/internal/game"
)

// GameSettings are the per-session knobs read from the environment.
type GameSettings struct {
	Points   int   // GRAB_POINTS, 0 keeps the default
	WinScore int   // GRAB_WIN_SCORE, 0 plays without a win condition
	Seed     int64 // GRAB_SEED, 0 seeds from the clock

	Mode       game.Mode       // GRAB_MODE, highlighted on the menu
	Difficulty game.Difficulty // GRAB_DIFFICULTY, highlighted in the difficulty modal

	ShutdownTimeout time.Duration // GRAB_SHUTDOWN_TIMEOUT, how long players get to leave
}

// DefaultShutdownTimeout is used when GRAB_SHUTDOWN_TIMEOUT is unset.
const DefaultShutdownTimeout = 15 * time.Second

// LoadGameSettings reads GameSettings from the environment.
func LoadGameSettings() (GameSettings, error) {
	s := GameSettings{
		Mode:            game.ModeVsBot,
		Difficulty:      game.DifficultyMedium,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
	var err error
	if s.Points, err = GetEnvInt("GRAB_POINTS", 0); err != nil {
		return s, err
	}
	if s.WinScore, err = GetEnvInt("GRAB_WIN_SCORE", 0); err != nil {
		return s, err
	}
	seed, err := GetEnvInt("GRAB_SEED", 0)
	if err != nil {
		return s, err
	}
	s.Seed = int64(seed)

	if v := GetEnv("GRAB_MODE", ""); v != "" {
		if s.Mode, err = game.ParseMode(v); err != nil {
			return s, fmt.Errorf("GRAB_MODE: %w", err)
		}
	}
	if v := GetEnv("GRAB_DIFFICULTY", ""); v != "" {
		if s.Difficulty, err = game.ParseDifficulty(v); err != nil {
			return s, fmt.Errorf("GRAB_DIFFICULTY: %w", err)
		}
	}
	if s.ShutdownTimeout, err = GetEnvDuration("GRAB_SHUTDOWN_TIMEOUT", DefaultShutdownTimeout); err != nil {
		return s, err
	}

	if s.Points < 0 {
		return s, fmt.Errorf("GRAB_POINTS must not be negative: %d", s.Points)
	}
	if s.WinScore < 0 {
		return s, fmt.Errorf("GRAB_WIN_SCORE must not be negative: %d", s.WinScore)
	}
	if s.ShutdownTimeout < 0 {
		return s, fmt.Errorf("GRAB_SHUTDOWN_TIMEOUT must not be negative: %v", s.ShutdownTimeout)
	}
	return s, nil
}

// NewLogger builds a leveled logger writing to w. The level comes from
// LOG_LEVEL (debug, info, warn, error) and defaults to info.
func NewLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level := log.InfoLevel
	if s := GetEnv("LOG_LEVEL", ""); s != "" {
		parsed, err := log.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("LOG_LEVEL: %w", err)
		}
		level = parsed
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	}), nil
}
