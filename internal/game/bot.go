package game

import "time"

// BotDriver plays side B in bot mode. It reacts to the window opening by
// scheduling one grab attempt after a random reaction delay.
type BotDriver struct {
	MinDelay time.Duration
	Spread   time.Duration

	session *Session
}

// windowOpened is called by the scheduler each time the grab window opens.
func (b *BotDriver) windowOpened() {
	s := b.session
	if s.opts.Mode != ModeVsBot {
		return
	}
	if s.sides[SideB].Phase != PhaseIdle {
		return
	}
	if _, won := s.scores.Winner(); won {
		return
	}

	// A late attempt is harmless: AttemptGrab rejects it once the window closed.
	gen := s.gen
	s.timers.after(s.delays.Delay(b.MinDelay, b.Spread), gen, func() {
		s.AttemptGrab(SideB)
	})
}
