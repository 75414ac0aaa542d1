package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/grabdiamond/internal/draw"
	"github.com/tomz197/grabdiamond/internal/game"
	"github.com/tomz197/grabdiamond/internal/input"
	"github.com/tomz197/grabdiamond/internal/loop/config"
	"github.com/tomz197/grabdiamond/internal/loop/server"
	"github.com/tomz197/grabdiamond/internal/object"
)

// Client handles rendering and input for a single connection. Every client
// plays its own session; the server only provides the shared lobby.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	opts         ClientOptions
	styles       styles

	session *game.Session
	hands   [len(game.Sides)]*object.Hand
	glow    *object.Glow
	lamp    *object.Lamp
	scene   object.Layer // table, lamp, diamond, hands and labels
	menu    object.Layer // falling diamonds behind the menu
	effects object.Layer // particles, sparkles and popups on every screen

	gamesStarted int64 // mixed into the delay seed
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Logger       *log.Logger // nil discards logs

	Points   int   // points per grab, 0 keeps the default
	WinScore int   // 0 plays without a win condition
	Seed     int64 // seeds light and bot delays, 0 uses the clock

	// Delays overrides Seed when set.
	Delays game.DelaySource

	// Mode and Difficulty are highlighted first on the menu and in the
	// difficulty modal.
	Mode       game.Mode
	Difficulty game.Difficulty
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	handle := gs.RegisterClient(opts.Username)
	state := NewClientState()
	state.termSizeFunc = termSizeFunc
	state.View = object.NewScreen(config.ViewWidth, config.ViewHeight)
	if opts.Mode == game.ModeVsFriend {
		state.menuIndex = menuPlayFriend
	}
	for i, d := range game.Difficulties {
		if d == opts.Difficulty {
			state.difficultyIndex = i
		}
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	c := &Client{
		server:       gs,
		handle:       handle,
		state:        state,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		logger:       logger.With("client", handle.ID),
		opts:         opts,
		styles:       newStyles(w),
	}
	c.buildMenu()
	return c
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer draw.ShowCursor(c.writer)
	defer draw.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)
	defer c.close()

	c.logger.Info("client started", "user", c.username)
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		if err := c.step(input.ReadInput(c.inputStream), delta); err != nil {
			return err
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}
	return nil
}

// close ends the session and unregisters from the server.
func (c *Client) close() {
	if c.session != nil {
		c.session.Teardown()
		c.session = nil
	}
	c.server.UnregisterClient(c.handle.ID)
	draw.ClearScreen(c.writer)
	c.logger.Info("client stopped", "user", c.username)
}

// step runs one frame of input handling and state updates.
func (c *Client) step(in input.Input, delta time.Duration) error {
	c.state.delta = delta
	c.state.clock += delta

	c.processInput(in)
	c.processServerEvents()
	c.updateScreen()
	if !c.state.Running {
		return nil
	}

	var err error
	switch c.state.Screen {
	case ScreenMenu:
		err = c.updateMenuState()
	case ScreenDifficulty:
		err = c.updateDifficultyState()
	case ScreenPlaying:
		c.updatePlayingState()
	case ScreenShutdown:
		c.updateShutdownState()
	}
	if err != nil {
		return err
	}

	return c.updateLayers()
}

// processInput records this frame's input and tracks inactivity.
func (c *Client) processInput(in input.Input) {
	c.state.Input = in

	if in.Closed {
		c.state.Running = false
		return
	}

	if len(in.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive client")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Quit {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.Screen = ScreenShutdown
				c.state.showHelp = false
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateLayers animates whichever object layers the current screen shows.
func (c *Client) updateLayers() error {
	ctx := object.UpdateContext{
		Delta:  c.state.delta,
		Screen: c.state.View,
	}
	switch c.state.Screen {
	case ScreenMenu, ScreenDifficulty:
		if err := c.menu.Update(ctx); err != nil {
			return err
		}
	case ScreenPlaying:
		if err := c.scene.Update(ctx); err != nil {
			return err
		}
	}
	return c.effects.Update(ctx)
}

// updateMenuState handles the title screen.
func (c *Client) updateMenuState() error {
	in := c.state.Input
	if c.state.showHelp {
		if closesPanel(in) {
			c.state.showHelp = false
		}
		return nil
	}

	switch {
	case in.Help:
		c.state.showHelp = true
	case in.Up:
		c.state.menuIndex = (c.state.menuIndex + menuItemCount - 1) % menuItemCount
	case in.Down:
		c.state.menuIndex = (c.state.menuIndex + 1) % menuItemCount
	case in.Number >= 1 && in.Number <= menuItemCount:
		c.state.menuIndex = in.Number - 1
		c.selectMenuItem()
	case in.Enter || in.Space:
		c.selectMenuItem()
	}
	return nil
}

func (c *Client) selectMenuItem() {
	switch c.state.menuIndex {
	case menuPlayBot:
		c.state.pendingMode = game.ModeVsBot
		c.state.Screen = ScreenDifficulty
	case menuPlayFriend:
		c.state.pendingMode = game.ModeVsFriend
		c.state.Screen = ScreenDifficulty
	case menuHowTo:
		c.state.showHelp = true
	}
	input.ResetKeyInput(c.inputStream)
}

// updateDifficultyState handles the difficulty modal.
func (c *Client) updateDifficultyState() error {
	in := c.state.Input
	n := len(game.Difficulties)

	switch {
	case in.Escape || in.Back:
		c.state.Screen = ScreenMenu
	case in.Up:
		c.state.difficultyIndex = (c.state.difficultyIndex + n - 1) % n
	case in.Down:
		c.state.difficultyIndex = (c.state.difficultyIndex + 1) % n
	case in.Number >= 1 && in.Number <= n:
		c.state.difficultyIndex = in.Number - 1
		return c.startGame(c.state.pendingMode, game.Difficulties[c.state.difficultyIndex])
	case in.Enter || in.Space:
		return c.startGame(c.state.pendingMode, game.Difficulties[c.state.difficultyIndex])
	}
	return nil
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// closesPanel reports whether in dismisses an overlay panel.
func closesPanel(in input.Input) bool {
	return in.Escape || in.Back || in.Enter || in.Space || in.Help
}
