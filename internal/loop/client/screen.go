package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/grabdiamond/internal/game"
	"github.com/tomz197/grabdiamond/internal/loop/config"
	"github.com/tomz197/grabdiamond/internal/object"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen, overlay or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	screenChanged := c.state.Screen != c.state.prevScreen || c.state.showHelp != c.state.wasHelp
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if screenChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevScreen = c.state.Screen
		c.state.wasHelp = c.state.showHelp
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	ctx := object.DrawContext{
		Canvas: c.canvas,
		Writer: c.chunkWriter,
		Now:    c.state.clock,
	}

	switch c.state.Screen {
	case ScreenMenu, ScreenDifficulty:
		if err := c.menu.Draw(ctx); err != nil {
			return err
		}
	case ScreenPlaying:
		if err := c.scene.Draw(ctx); err != nil {
			return err
		}
	}
	if err := c.effects.Draw(ctx); err != nil {
		return err
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	// Text overlays go on top of the rendered canvas
	if c.state.Screen == ScreenPlaying {
		c.scene.DrawText(ctx)
	}
	c.effects.DrawText(ctx)

	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.Screen == ScreenShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.Screen {
	case ScreenMenu:
		c.writeBlock(centerX, centerY, c.styles.menuPanel(c.state.menuIndex, c.server.GetSnapshot()))
	case ScreenDifficulty:
		c.writeBlock(centerX, centerY, c.styles.difficultyPanel(c.state.pendingMode, c.state.difficultyIndex))
	case ScreenPlaying:
		c.drawPlayingHUD(termWidth, termHeight)
	}

	if c.state.showHelp {
		c.writeBlock(centerX, centerY, c.styles.helpPanel(c.points()))
	}
}

// drawPlayingHUD draws the scoreboard, light status, hints and winner banner.
func (c *Client) drawPlayingHUD(termWidth, termHeight int) {
	snap := c.session.Snapshot()

	score := c.styles.scoreLine(snap)
	if snap.HasWinner || c.session.Options().WinScore == 0 {
		c.writeText(termWidth/2-lipgloss.Width(score)/2, 1, score)
	} else {
		goal := c.styles.hint.Render(fmt.Sprintf("  first to %d", c.session.Options().WinScore))
		line := score + goal
		c.writeText(termWidth/2-lipgloss.Width(line)/2, 1, line)
	}

	if lobby := c.server.GetSnapshot(); lobby != nil && lobby.Players > 1 {
		online := c.styles.hint.Render(fmt.Sprintf("Online: %d", lobby.Players))
		c.writeText(termWidth-lipgloss.Width(online)-1, 1, online)
	}

	light := c.styles.lightLine(snap.LightOn)
	c.writeText(2, termHeight, light)

	hint := c.styles.hint.Render("R reset · Esc menu · H help")
	c.writeText(termWidth-lipgloss.Width(hint)-1, termHeight, hint)

	if snap.HasWinner && object.ShouldRenderBlink(c.state.winnerBlink, config.WinnerBlinkRateHz) {
		c.writeBlock(termWidth/2, termHeight/2-6, c.styles.winnerBanner(snap))
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	block := c.styles.warning.Render(lipgloss.JoinVertical(lipgloss.Center,
		c.styles.title.Render("INACTIVITY WARNING"),
		"",
		msg,
		"",
		c.styles.hint.Render("Press any key to continue"),
	))
	c.writeBlock(centerX, centerY, block)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	remaining := int(c.state.shutdownTimer) + 1
	block := c.styles.warning.Render(lipgloss.JoinVertical(lipgloss.Center,
		c.styles.title.Render("SERVER SHUTTING DOWN"),
		"",
		"The server is restarting for maintenance.",
		"Please reconnect in a moment.",
		"",
		fmt.Sprintf("Disconnecting in %d seconds...", remaining),
		"",
		c.styles.hint.Render("Press Q to disconnect now"),
	))
	c.writeBlock(centerX, centerY, block)
}

// writeText writes s at a 1-based canvas position and marks the cells dirty so
// the canvas overwrites them once the text changes.
func (c *Client) writeText(col, row int, s string) {
	if col < 1 {
		col = 1
	}
	if row < 1 || row > c.canvas.TerminalHeight() {
		return
	}
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, lipgloss.Width(s))
}

// writeBlock writes a multi-line block centred on (centerX, centerY).
func (c *Client) writeBlock(centerX, centerY int, block string) {
	lines := strings.Split(block, "\n")
	col := centerX - lipgloss.Width(block)/2
	row := centerY - len(lines)/2
	for i, line := range lines {
		c.writeText(col, row+i, line)
	}
}

// points is the per-grab score shown in the help panel.
func (c *Client) points() int {
	if c.session != nil {
		return c.session.Options().Points
	}
	if c.opts.Points > 0 {
		return c.opts.Points
	}
	return game.DefaultPoints
}
