package game

import "time"

// LightScheduler toggles the grab window on a fixed period. Each cycle it
// switches the light on (window closed), then opens the window after a
// random sub-delay.
type LightScheduler struct {
	Period   time.Duration
	MinDelay time.Duration
	Spread   time.Duration

	cue    *LightCue
	timers *timerQueue
	delays DelaySource
	halted func() bool // true while a winner is set
	onOpen func()
	onShut func()
}

// Start closes the window immediately and begins cycling under generation gen.
func (l *LightScheduler) Start(gen uint64) {
	l.cycle(gen)
}

func (l *LightScheduler) cycle(gen uint64) {
	if l.halted() {
		return
	}
	l.close()

	l.timers.after(l.delays.Delay(l.MinDelay, l.Spread), gen, func() {
		if l.halted() || l.cue.WindowOpen {
			return
		}
		l.cue.WindowOpen = true
		if l.onOpen != nil {
			l.onOpen()
		}
	})
	l.timers.after(l.Period, gen, func() {
		l.cycle(gen)
	})
}

func (l *LightScheduler) close() {
	if !l.cue.WindowOpen {
		return
	}
	l.cue.WindowOpen = false
	if l.onShut != nil {
		l.onShut()
	}
}
