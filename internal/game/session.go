package game

import (
	"fmt"
	"time"
)

// Layout holds the positions supplied by the presentation layer.
type Layout struct {
	OriginA Vec
	OriginB Vec
	Target  Vec
}

// Origin returns the resting position of side.
func (l Layout) Origin(side Side) Vec {
	if side == SideB {
		return l.OriginB
	}
	return l.OriginA
}

// Options configures a session. Use DefaultOptions and override fields.
type Options struct {
	Mode     Mode
	Speed    float64 // progress per tick, see Difficulty.Speed
	Layout   Layout
	Points   int // per successful grab
	WinScore int // 0 disables the win condition

	LightPeriod   time.Duration
	LightMinDelay time.Duration
	LightSpread   time.Duration
	BotMinDelay   time.Duration
	BotSpread     time.Duration

	// Delays draws the random waits; nil uses a time-seeded RandomDelay.
	Delays DelaySource
}

// Session defaults.
const (
	DefaultPoints        = 5
	DefaultLightPeriod   = 4000 * time.Millisecond
	DefaultLightMinDelay = 1000 * time.Millisecond
	DefaultLightSpread   = 2000 * time.Millisecond
	DefaultBotMinDelay   = 200 * time.Millisecond
	DefaultBotSpread     = 700 * time.Millisecond
)

// DefaultOptions returns the standard timings for mode and difficulty.
func DefaultOptions(mode Mode, difficulty Difficulty) Options {
	return Options{
		Mode:          mode,
		Speed:         difficulty.Speed(),
		Points:        DefaultPoints,
		LightPeriod:   DefaultLightPeriod,
		LightMinDelay: DefaultLightMinDelay,
		LightSpread:   DefaultLightSpread,
		BotMinDelay:   DefaultBotMinDelay,
		BotSpread:     DefaultBotSpread,
	}
}

func (o Options) validate() error {
	if o.Mode != ModeVsBot && o.Mode != ModeVsFriend {
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(o.Mode))
	}
	if o.Speed <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, o.Speed)
	}
	if o.Points <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPoints, o.Points)
	}
	if o.WinScore < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWinScore, o.WinScore)
	}
	for _, d := range []time.Duration{o.LightPeriod, o.LightMinDelay, o.LightSpread, o.BotMinDelay, o.BotSpread} {
		if d < 0 {
			return fmt.Errorf("%w: %v", ErrInvalidTiming, d)
		}
	}
	if o.LightPeriod == 0 {
		return fmt.Errorf("%w: light period is zero", ErrInvalidTiming)
	}
	return nil
}

// Snapshot is the per-tick view handed to the presentation layer.
type Snapshot struct {
	LightOn    bool
	WindowOpen bool
	Sides      [len(Sides)]GrabState
	Target     Vec
	Scores     [len(Sides)]int
	Winner     Side
	HasWinner  bool
	Mode       Mode
	Speed      float64
	Elapsed    time.Duration
}

// grabLock records which side holds the target.
type grabLock struct {
	held bool
	side Side
}

// Session owns the light cue, the scores and both hands for one game.
type Session struct {
	opts   Options
	delays DelaySource

	cue    LightCue
	sides  [len(Sides)]GrabState
	lock   grabLock
	scores *ScoreTracker
	light  *LightScheduler
	bot    *BotDriver

	timers  timerQueue
	gen     uint64 // bumped on reset and teardown, invalidates pending timers
	started bool
	closed  bool
	events  []Event
}

// NewSession validates opts and creates an idle session. Call Start to begin
// the light cycle.
func NewSession(opts Options) (*Session, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	s := &Session{
		opts:   opts,
		delays: opts.Delays,
		scores: NewScoreTracker(opts.WinScore),
	}
	if s.delays == nil {
		s.delays = NewRandomDelay(time.Now().UnixNano())
	}

	s.bot = &BotDriver{
		MinDelay: opts.BotMinDelay,
		Spread:   opts.BotSpread,
		session:  s,
	}
	s.light = &LightScheduler{
		Period:   opts.LightPeriod,
		MinDelay: opts.LightMinDelay,
		Spread:   opts.LightSpread,
		cue:      &s.cue,
		timers:   &s.timers,
		delays:   s.delays,
		halted: func() bool {
			_, won := s.scores.Winner()
			return won
		},
		onOpen: s.windowOpened,
		onShut: func() { s.emit(Event{Kind: EventWindowClosed}) },
	}

	s.placeHands()
	return s, nil
}

// Options returns the configuration the session was created with.
func (s *Session) Options() Options {
	return s.opts
}

// Start begins the light cycle. Calling it twice has no effect.
func (s *Session) Start() {
	if s.closed || s.started {
		return
	}
	s.started = true
	s.light.Start(s.gen)
}

// Reset zeroes the scores, returns both hands to their origins and restarts
// the light cycle. Mode and speed are kept.
func (s *Session) Reset() {
	if s.closed {
		return
	}
	s.gen++
	s.timers.clear()
	s.scores.Reset()
	s.placeHands()
	s.cue.WindowOpen = false
	s.events = s.events[:0]
	s.emit(Event{Kind: EventReset})
	if s.started {
		s.light.Start(s.gen)
	}
}

// Teardown ends the session. Pending timers are dropped and every later call
// is a no-op.
func (s *Session) Teardown() {
	if s.closed {
		return
	}
	s.closed = true
	s.gen++
	s.timers.clear()
	s.cue.WindowOpen = false
}

// Closed reports whether Teardown was called.
func (s *Session) Closed() bool {
	return s.closed
}

// Advance moves the session clock forward by dt, fires due timers and then
// runs one animation tick.
func (s *Session) Advance(dt time.Duration) {
	if s.closed {
		return
	}
	s.timers.advance(dt, func() uint64 { return s.gen })
	s.Tick()
}

// Elapsed returns the session clock.
func (s *Session) Elapsed() time.Duration {
	return s.timers.now
}

// Snapshot returns a copy of the state for drawing.
func (s *Session) Snapshot() Snapshot {
	winner, won := s.scores.Winner()
	return Snapshot{
		LightOn:    s.cue.LightOn(),
		WindowOpen: s.cue.WindowOpen,
		Sides:      s.sides,
		Target:     s.opts.Layout.Target,
		Scores:     s.scores.Scores(),
		Winner:     winner,
		HasWinner:  won,
		Mode:       s.opts.Mode,
		Speed:      s.opts.Speed,
		Elapsed:    s.timers.now,
	}
}

// Events drains the events produced since the previous call.
func (s *Session) Events() []Event {
	if len(s.events) == 0 {
		return nil
	}
	out := make([]Event, len(s.events))
	copy(out, s.events)
	s.events = s.events[:0]
	return out
}

func (s *Session) emit(e Event) {
	e.At = s.timers.now
	s.events = append(s.events, e)
}

func (s *Session) placeHands() {
	for _, side := range Sides {
		origin := s.opts.Layout.Origin(side)
		s.sides[side] = GrabState{Position: origin, Origin: origin, Phase: PhaseIdle}
	}
	s.lock = grabLock{}
}

func (s *Session) windowOpened() {
	s.emit(Event{Kind: EventWindowOpened})
	s.bot.windowOpened()
}
