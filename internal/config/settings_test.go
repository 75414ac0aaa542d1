package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/grabdiamond/internal/game"
)

func TestLoadGameSettings(t *testing.T) {
	t.Setenv("GRAB_POINTS", "3")
	t.Setenv("GRAB_WIN_SCORE", "15")
	t.Setenv("GRAB_SEED", "42")
	s, err := LoadGameSettings()
	if err != nil {
		t.Fatal(err)
	}
	want := GameSettings{
		Points:          3,
		WinScore:        15,
		Seed:            42,
		Mode:            game.ModeVsBot,
		Difficulty:      game.DifficultyMedium,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
	if s != want {
		t.Fatalf("settings = %+v, want %+v", s, want)
	}

	t.Setenv("GRAB_WIN_SCORE", "-1")
	if _, err := LoadGameSettings(); err == nil {
		t.Fatal("negative win score accepted")
	}
}

func TestLoadGameSettingsPresetAndTimeout(t *testing.T) {
	t.Setenv("GRAB_MODE", "Friend")
	t.Setenv("GRAB_DIFFICULTY", "hard")
	t.Setenv("GRAB_SHUTDOWN_TIMEOUT", "3s")
	s, err := LoadGameSettings()
	if err != nil {
		t.Fatal(err)
	}
	if s.Mode != game.ModeVsFriend || s.Difficulty != game.DifficultyHard || s.ShutdownTimeout != 3*time.Second {
		t.Fatalf("settings = %+v", s)
	}

	t.Setenv("GRAB_DIFFICULTY", "brutal")
	if _, err := LoadGameSettings(); !errors.Is(err, game.ErrUnknownDifficulty) {
		t.Fatalf("err = %v, want ErrUnknownDifficulty", err)
	}
	t.Setenv("GRAB_DIFFICULTY", "")

	t.Setenv("GRAB_MODE", "solo")
	if _, err := LoadGameSettings(); !errors.Is(err, game.ErrUnknownMode) {
		t.Fatalf("err = %v, want ErrUnknownMode", err)
	}
	t.Setenv("GRAB_MODE", "")

	t.Setenv("GRAB_SHUTDOWN_TIMEOUT", "soon")
	if _, err := LoadGameSettings(); err == nil {
		t.Fatal("bad timeout accepted")
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv("LOG_LEVEL", "warn")
	logger, err := NewLogger(&buf, "test")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("level filtering failed: %q", buf.String())
	}

	t.Setenv("LOG_LEVEL", "loud")
	if _, err := NewLogger(&buf, ""); err == nil {
		t.Fatal("unknown level accepted")
	}
}
