package client

import (
	"fmt"

	"github.com/tomz197/grabdiamond/internal/draw"
	"github.com/tomz197/grabdiamond/internal/game"
	"github.com/tomz197/grabdiamond/internal/input"
	"github.com/tomz197/grabdiamond/internal/loop/config"
	"github.com/tomz197/grabdiamond/internal/object"
)

// sideColor is the colour of a side's sleeve, score and burst.
func sideColor(side game.Side) draw.Color {
	if side == game.SideB {
		return draw.ColorRed
	}
	return draw.ColorCyan
}

// opponentName is how the HUD and banner call side B.
func opponentName(mode game.Mode) string {
	if mode == game.ModeVsFriend {
		return "Friend"
	}
	return "Bot"
}

// layout places the hands and the diamond in the logical scene.
func layout() game.Layout {
	return game.Layout{
		OriginA: game.Vec{X: config.OriginAX, Y: config.HandY},
		OriginB: game.Vec{X: config.OriginBX, Y: config.HandY},
		Target:  game.Vec{X: config.TargetX, Y: config.TargetY},
	}
}

// startGame creates a fresh session for mode and difficulty and shows it.
func (c *Client) startGame(mode game.Mode, difficulty game.Difficulty) error {
	input.ResetKeyInput(c.inputStream)

	opts := game.DefaultOptions(mode, difficulty)
	opts.Layout = layout()
	if c.opts.Points > 0 {
		opts.Points = c.opts.Points
	}
	opts.WinScore = c.opts.WinScore
	switch {
	case c.opts.Delays != nil:
		opts.Delays = c.opts.Delays
	case c.opts.Seed != 0:
		opts.Delays = game.NewRandomDelay(c.sessionSeed())
	}
	c.gamesStarted++

	sess, err := game.NewSession(opts)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	if c.session != nil {
		c.session.Teardown()
	}
	c.session = sess
	c.buildScene(mode)
	c.state.Screen = ScreenPlaying
	c.state.showHelp = false
	c.state.winnerBlink = 0
	sess.Start()

	c.logger.Debug("session started", "mode", mode, "difficulty", difficulty, "speed", opts.Speed)
	return nil
}

// sessionSeed derives the delay seed for the next session from the configured
// seed, the client id and the number of games this client has started, so
// connections sharing GRAB_SEED do not see the same light timings.
func (c *Client) sessionSeed() int64 {
	return c.opts.Seed + int64(c.handle.ID)<<20 + c.gamesStarted
}

// buildScene lays out the static scenery and both hands.
func (c *Client) buildScene(mode game.Mode) {
	c.scene.Clear()

	l := layout()
	c.glow = &object.Glow{X: l.Target.X, Y: l.Target.Y, Radius: config.GlowRadius}
	c.lamp = &object.Lamp{X: l.Target.X, Y: config.LampY, Radius: config.LampRadius}
	c.scene.Add(&object.Table{
		X:      config.TableLeft,
		Y:      config.TableTop,
		Width:  config.TableWidth,
		Height: config.TableHeight,
	})
	c.scene.Add(c.glow)
	c.scene.Add(c.lamp)
	c.scene.Add(object.NewTargetDiamond(l.Target.X, l.Target.Y))

	for _, side := range game.Sides {
		h := object.NewHand(side, l.Origin(side), sideColor(side))
		h.BounceHeight = config.HandBounceHeight
		h.Radius = config.HandHitRadius
		c.hands[side] = h
		c.scene.Add(h)
	}

	c.scene.Add(&object.Label{X: l.OriginA.X, Y: l.OriginA.Y - 12, Value: "YOU", Color: sideColor(game.SideA)})
	name := "BOT"
	if mode == game.ModeVsFriend {
		name = "P2"
	}
	c.scene.Add(&object.Label{X: l.OriginB.X, Y: l.OriginB.Y - 12, Value: name, Color: sideColor(game.SideB)})
}

// updatePlayingState routes input to the session, advances it one frame and
// turns its events into effects.
func (c *Client) updatePlayingState() {
	in := c.state.Input

	switch {
	case c.state.showHelp:
		if closesPanel(in) {
			c.state.showHelp = false
		}
	case in.Help:
		c.state.showHelp = true
	case in.Escape || in.Back:
		c.backToMenu()
		return
	case in.Reset:
		c.resetGame()
	default:
		c.handleGrabInput(in)
	}

	c.session.Advance(c.state.delta)
	c.syncScene()
	c.consumeEvents()

	if c.state.winnerBlink > 0 {
		c.state.winnerBlink -= c.state.delta.Seconds()
	}
}

// handleGrabInput maps keys and clicks to grab attempts. Side B only answers
// to a human in friend mode.
func (c *Client) handleGrabInput(in input.Input) {
	friend := c.session.Options().Mode == game.ModeVsFriend

	if in.Left {
		c.grab(game.SideA)
	}
	if friend && (in.Right || in.Space) {
		c.grab(game.SideB)
	}
	if !friend && in.Space {
		c.grab(game.SideA)
	}

	for _, click := range in.Clicks {
		x, y := c.canvas.TerminalToLogical(click.Col, click.Row)
		for _, h := range c.hands {
			if h.Side == game.SideB && !friend {
				continue
			}
			if h.Contains(x, y) {
				c.grab(h.Side)
			}
		}
	}
}

func (c *Client) grab(side game.Side) {
	if c.session.AttemptGrab(side) {
		c.logger.Debug("grab", "side", side, "at", c.session.Elapsed())
	}
}

// syncScene copies the session snapshot into the scene objects.
func (c *Client) syncScene() {
	snap := c.session.Snapshot()
	for _, side := range game.Sides {
		c.hands[side].SetState(snap.Sides[side])
	}
	c.glow.On = snap.LightOn
	c.lamp.On = snap.LightOn
}

// consumeEvents turns session events into particles, popups and lobby wins.
func (c *Client) consumeEvents() {
	for _, ev := range c.session.Events() {
		switch ev.Kind {
		case game.EventWindowOpened:
			object.SpawnSparkles(config.TargetX, config.TargetY, config.GlowRadius*0.6, config.WindowSparkles, &c.effects)
		case game.EventArrival:
			color := sideColor(ev.Side)
			object.SpawnBurst(ev.Position.X, ev.Position.Y, config.BurstParticles, config.BurstSpeed, config.BurstLifetime, color, &c.effects)
			c.effects.Spawn(object.NewPopup(ev.Position.X, ev.Position.Y-8, fmt.Sprintf("+%d", ev.Points), color))
		case game.EventWinner:
			object.SpawnConfetti(config.TargetX, config.TargetY, config.WinConfetti, &c.effects)
			c.state.winnerBlink = config.WinnerBlinkSeconds
			mode := c.session.Options().Mode
			if ev.Side == game.SideA && mode == game.ModeVsBot {
				c.server.ReportWin(c.handle.ID)
			}
			c.logger.Info("game won", "side", ev.Side, "mode", mode, "scores", c.session.Snapshot().Scores)
			continue
		}
		c.logger.Debug("session event", "kind", ev.Kind, "side", ev.Side, "at", ev.At)
	}
}

// resetGame restarts the current session with zero scores.
func (c *Client) resetGame() {
	c.session.Reset()
	c.session.Events()
	c.syncScene()
	c.state.winnerBlink = 0
	object.SpawnConfetti(config.ViewWidth/2, 6, config.ConfettiParticles, &c.effects)
	c.logger.Debug("session reset")
}

// backToMenu ends the session and returns to the title screen.
func (c *Client) backToMenu() {
	c.session.Teardown()
	c.session = nil
	c.scene.Clear()
	c.state.Screen = ScreenMenu
	c.state.showHelp = false
	object.SpawnConfetti(config.ViewWidth/2, 6, config.ConfettiParticles, &c.effects)
	input.ResetKeyInput(c.inputStream)
	c.logger.Debug("back to menu")
}

// buildMenu fills the menu background.
func (c *Client) buildMenu() {
	c.menu.Clear()
	for i := 0; i < config.MenuDiamonds; i++ {
		c.menu.Add(object.NewFallingDiamond(c.state.View))
	}
	c.menu.Add(object.NewSparkleEmitter(config.MenuSparkleRate))
}
