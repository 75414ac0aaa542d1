package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/tomz197/grabdiamond/internal/config"
	"github.com/tomz197/grabdiamond/internal/loop"
	"github.com/tomz197/grabdiamond/internal/loop/client"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Load(); err != nil {
		return err
	}
	settings, err := config.LoadGameSettings()
	if err != nil {
		return err
	}

	// The raw-mode screen belongs to the game, so logs only go to a file.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("GRAB_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := config.NewLogger(logOut, "game")
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(reader, os.Stdout, client.ClientOptions{
		Username:   config.GetEnv("USER", ""),
		Logger:     logger,
		Points:     settings.Points,
		WinScore:   settings.WinScore,
		Seed:       settings.Seed,
		Mode:       settings.Mode,
		Difficulty: settings.Difficulty,
	})
}
