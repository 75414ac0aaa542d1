package game

import (
	"fmt"
	"time"
)

// EventKind identifies something the presentation layer may want to react to.
type EventKind int

const (
	EventWindowOpened EventKind = iota
	EventWindowClosed
	EventGrabStarted
	EventArrival // burst at the target, coloured per side
	EventReturned
	EventWinner
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventWindowOpened:
		return "window-opened"
	case EventWindowClosed:
		return "window-closed"
	case EventGrabStarted:
		return "grab-started"
	case EventArrival:
		return "arrival"
	case EventReturned:
		return "returned"
	case EventWinner:
		return "winner"
	case EventReset:
		return "reset"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a state change produced by the session.
type Event struct {
	Kind     EventKind
	Side     Side
	Position Vec
	Points   int
	At       time.Duration
}

// AttemptGrab starts side's hand towards the target. It returns false, and
// changes nothing, when the window is closed, another hand holds the target,
// the side is not idle, a winner exists or the session is over.
func (s *Session) AttemptGrab(side Side) bool {
	if s.closed || !side.Valid() {
		return false
	}
	if !s.cue.WindowOpen || s.lock.held {
		return false
	}
	if s.sides[side].Phase != PhaseIdle {
		return false
	}
	if _, won := s.scores.Winner(); won {
		return false
	}

	s.lock = grabLock{held: true, side: side}
	g := &s.sides[side]
	g.Phase = PhaseMovingToTarget
	g.Progress = 0
	g.Position = g.Origin
	s.emit(Event{Kind: EventGrabStarted, Side: side, Position: g.Origin})

	s.assertLock()
	return true
}

// Tick advances every in-flight hand by one animation step. Both sides are
// stepped from the state at the start of the tick; side effects are applied
// afterwards in side order.
func (s *Session) Tick() {
	if s.closed {
		return
	}
	if _, won := s.scores.Winner(); won {
		return
	}

	prev := s.sides
	var next [len(Sides)]GrabState
	var results [len(Sides)]stepResult
	for _, side := range Sides {
		next[side], results[side] = s.step(prev[side])
	}
	s.sides = next

	for _, side := range Sides {
		switch results[side] {
		case stepArrived:
			s.arrive(side)
		case stepReturned:
			s.returned(side)
		}
	}

	s.assertLock()
}

type stepResult int

const (
	stepNone stepResult = iota
	stepArrived
	stepReturned
)

// step computes the next state of one hand without side effects.
func (s *Session) step(g GrabState) (GrabState, stepResult) {
	target := s.opts.Layout.Target
	switch g.Phase {
	case PhaseMovingToTarget:
		g.Progress += s.opts.Speed
		if g.Progress >= 1 {
			g.Position = target
			g.Phase = PhaseReturningToOrigin
			g.Progress = 0
			return g, stepArrived
		}
		g.Position = Lerp(g.Origin, target, g.Progress)
	case PhaseReturningToOrigin:
		g.Progress += s.opts.Speed
		if g.Progress >= 1 {
			g.Position = g.Origin
			g.Phase = PhaseIdle
			g.Progress = 0
			return g, stepReturned
		}
		g.Position = Lerp(target, g.Origin, g.Progress)
	}
	return g, stepNone
}

func (s *Session) arrive(side Side) {
	points := s.opts.Points
	won := s.scores.Credit(side, points)
	s.emit(Event{Kind: EventArrival, Side: side, Position: s.opts.Layout.Target, Points: points})
	if won {
		s.emit(Event{Kind: EventWinner, Side: side})
		s.light.close()
	}
}

// returned releases the lock and forces the window shut so the next grab
// needs a fresh light cycle.
func (s *Session) returned(side Side) {
	s.lock = grabLock{}
	s.emit(Event{Kind: EventReturned, Side: side, Position: s.sides[side].Origin})
	s.light.close()
}

// assertLock panics if the single-holder rule is broken.
func (s *Session) assertLock() {
	busy := 0
	for _, side := range Sides {
		if s.sides[side].Busy() {
			busy++
			if !s.lock.held || s.lock.side != side {
				panic(fmt.Sprintf("game: side %s is %s without holding the lock", side, s.sides[side].Phase))
			}
		}
	}
	if busy > 1 {
		panic(fmt.Sprintf("game: %d sides hold the target", busy))
	}
	if s.lock.held && busy == 0 {
		panic(fmt.Sprintf("game: lock held by idle side %s", s.lock.side))
	}
}
