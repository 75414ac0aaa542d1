package game

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"
)

var testLayout = Layout{
	OriginA: Vec{X: 10, Y: 40},
	OriginB: Vec{X: 110, Y: 40},
	Target:  Vec{X: 60, Y: 40},
}

// minDelay always picks the shortest wait so tests know exactly when timers fire.
var minDelay = DelayFunc(func(min, _ time.Duration) time.Duration { return min })

func newTestSession(t *testing.T, mode Mode, mutate func(*Options)) *Session {
	t.Helper()
	opts := DefaultOptions(mode, DifficultyMedium)
	opts.Speed = 0.25 // four ticks per leg, exact in binary
	opts.Layout = testLayout
	opts.Delays = minDelay
	if mutate != nil {
		mutate(&opts)
	}
	s, err := NewSession(opts)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.Start()
	return s
}

func ticks(s *Session, n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

func TestGrabCycleScenario(t *testing.T) {
	s := newTestSession(t, ModeVsFriend, nil)

	if s.Snapshot().WindowOpen {
		t.Fatalf("window should start closed")
	}
	s.Advance(DefaultLightMinDelay)
	if !s.Snapshot().WindowOpen {
		t.Fatalf("window should be open after the minimum delay")
	}

	if !s.AttemptGrab(SideA) {
		t.Fatalf("A should win the grab")
	}
	if s.AttemptGrab(SideB) {
		t.Fatalf("B should be rejected while A holds the lock")
	}
	if got := s.Snapshot().Sides[SideB].Phase; got != PhaseIdle {
		t.Fatalf("B phase = %v, want idle", got)
	}

	ticks(s, 3)
	snap := s.Snapshot()
	if snap.Sides[SideA].Phase != PhaseMovingToTarget {
		t.Fatalf("A phase = %v, want moving", snap.Sides[SideA].Phase)
	}
	if snap.Scores[SideA] != 0 {
		t.Fatalf("score credited before arrival")
	}
	want := Lerp(testLayout.OriginA, testLayout.Target, 0.75)
	if snap.Sides[SideA].Position != want {
		t.Fatalf("A position = %+v, want %+v", snap.Sides[SideA].Position, want)
	}

	s.Tick() // arrival
	snap = s.Snapshot()
	if snap.Scores[SideA] != DefaultPoints {
		t.Fatalf("A score = %d, want %d", snap.Scores[SideA], DefaultPoints)
	}
	if snap.Sides[SideA].Phase != PhaseReturningToOrigin {
		t.Fatalf("A phase = %v, want returning", snap.Sides[SideA].Phase)
	}
	if snap.Sides[SideA].Position != testLayout.Target {
		t.Fatalf("A should sit on the target at arrival, got %+v", snap.Sides[SideA].Position)
	}
	if !snap.WindowOpen {
		t.Fatalf("window closes only after the return")
	}

	ticks(s, 4)
	snap = s.Snapshot()
	if snap.Sides[SideA].Phase != PhaseIdle {
		t.Fatalf("A phase = %v, want idle", snap.Sides[SideA].Phase)
	}
	if snap.Sides[SideA].Position != testLayout.OriginA {
		t.Fatalf("A position = %+v, want origin %+v", snap.Sides[SideA].Position, testLayout.OriginA)
	}
	if snap.WindowOpen {
		t.Fatalf("window should be forced closed after the return")
	}
	if s.AttemptGrab(SideB) {
		t.Fatalf("no second grab in the same light cycle")
	}
}

func TestGrabRejectedWhileWindowClosed(t *testing.T) {
	s := newTestSession(t, ModeVsFriend, nil)
	for _, side := range Sides {
		if s.AttemptGrab(side) {
			t.Fatalf("%s grabbed with the light on", side)
		}
		if got := s.Snapshot().Sides[side].Phase; got != PhaseIdle {
			t.Fatalf("%s phase = %v, want idle", side, got)
		}
	}
}

func TestAttemptGrabInvalidSide(t *testing.T) {
	s := newTestSession(t, ModeVsFriend, nil)
	s.Advance(DefaultLightMinDelay)
	if s.AttemptGrab(Side(7)) {
		t.Fatalf("unknown side should be ignored")
	}
}

func TestBotGrabsAfterReactionDelay(t *testing.T) {
	s := newTestSession(t, ModeVsBot, nil)
	s.Advance(DefaultLightMinDelay)
	if got := s.Snapshot().Sides[SideB].Phase; got != PhaseIdle {
		t.Fatalf("bot moved before its delay: %v", got)
	}

	s.Advance(DefaultBotMinDelay - time.Millisecond)
	if got := s.Snapshot().Sides[SideB].Phase; got != PhaseIdle {
		t.Fatalf("bot moved early: %v", got)
	}

	s.Advance(time.Millisecond)
	snap := s.Snapshot()
	if snap.Sides[SideB].Phase != PhaseMovingToTarget {
		t.Fatalf("bot phase = %v, want moving", snap.Sides[SideB].Phase)
	}

	ticks(s, 8)
	snap = s.Snapshot()
	if snap.Scores[SideB] != DefaultPoints {
		t.Fatalf("bot score = %d, want %d", snap.Scores[SideB], DefaultPoints)
	}
	if snap.Sides[SideB].Position != testLayout.OriginB {
		t.Fatalf("bot did not return to origin: %+v", snap.Sides[SideB].Position)
	}
}

func TestBotLosesToFasterHuman(t *testing.T) {
	s := newTestSession(t, ModeVsBot, nil)
	s.Advance(DefaultLightMinDelay)
	if !s.AttemptGrab(SideA) {
		t.Fatalf("human grab rejected")
	}
	s.Advance(DefaultBotMinDelay)
	if got := s.Snapshot().Sides[SideB].Phase; got != PhaseIdle {
		t.Fatalf("bot should no-op while A holds the lock, got %v", got)
	}
}

func TestBotInactiveInFriendMode(t *testing.T) {
	s := newTestSession(t, ModeVsFriend, nil)
	s.Advance(DefaultLightMinDelay)
	s.Advance(DefaultBotSpread + DefaultBotMinDelay)
	if got := s.Snapshot().Sides[SideB].Phase; got != PhaseIdle {
		t.Fatalf("friend side moved on its own: %v", got)
	}
}

func TestResetMidAnimation(t *testing.T) {
	s := newTestSession(t, ModeVsFriend, nil)
	s.Advance(DefaultLightMinDelay)
	s.AttemptGrab(SideA)
	ticks(s, 5) // arrived and partway back

	s.Reset()
	snap := s.Snapshot()
	for _, side := range Sides {
		g := snap.Sides[side]
		if g.Phase != PhaseIdle || g.Position != testLayout.Origin(side) {
			t.Fatalf("%s after reset = %+v", side, g)
		}
		if snap.Scores[side] != 0 {
			t.Fatalf("%s score after reset = %d", side, snap.Scores[side])
		}
	}
	if snap.WindowOpen {
		t.Fatalf("reset should close the window")
	}

	// The light cycle restarts from the reset.
	s.Advance(DefaultLightMinDelay)
	if !s.Snapshot().WindowOpen {
		t.Fatalf("window did not reopen after reset")
	}
	if !s.AttemptGrab(SideB) {
		t.Fatalf("lock not released by reset")
	}
}

func TestResetDropsPendingBotAttempt(t *testing.T) {
	s := newTestSession(t, ModeVsBot, func(o *Options) {
		o.LightMinDelay = time.Second
		o.BotMinDelay = 500 * time.Millisecond
	})
	s.Advance(time.Second) // window open, bot pending at 1.5s
	s.Reset()
	s.Advance(time.Second) // window reopens at t=2s after reset, new bot due later
	if got := s.Snapshot().Sides[SideB].Phase; got != PhaseIdle {
		t.Fatalf("stale bot attempt fired after reset: %v", got)
	}
	s.Advance(500 * time.Millisecond)
	if got := s.Snapshot().Sides[SideB].Phase; got != PhaseMovingToTarget {
		t.Fatalf("fresh bot attempt did not fire: %v", got)
	}
}

func TestTeardownStopsEverything(t *testing.T) {
	s := newTestSession(t, ModeVsBot, nil)
	s.Advance(DefaultLightMinDelay)
	s.Teardown()

	if !s.Closed() {
		t.Fatalf("session should report closed")
	}
	before := s.Snapshot()
	s.Advance(10 * time.Second)
	if s.AttemptGrab(SideA) {
		t.Fatalf("grab accepted after teardown")
	}
	after := s.Snapshot()
	if after.Sides != before.Sides || after.Elapsed != before.Elapsed {
		t.Fatalf("state changed after teardown")
	}
	s.Reset()
	if s.Snapshot().Elapsed != before.Elapsed {
		t.Fatalf("reset revived a torn-down session")
	}
}

func TestWinThresholdFreezesSession(t *testing.T) {
	s := newTestSession(t, ModeVsFriend, func(o *Options) {
		o.Points = 10
		o.WinScore = 20
	})

	// First cycle: A scores 10.
	s.Advance(DefaultLightMinDelay)
	s.AttemptGrab(SideA)
	ticks(s, 8)

	// Next cycle opens at 4s + 1s.
	s.Advance(DefaultLightPeriod)
	if !s.Snapshot().WindowOpen {
		t.Fatalf("second cycle did not open the window")
	}
	s.AttemptGrab(SideA)
	ticks(s, 4)

	snap := s.Snapshot()
	if !snap.HasWinner || snap.Winner != SideA {
		t.Fatalf("winner = %v/%v, want A", snap.Winner, snap.HasWinner)
	}
	if snap.Scores[SideA] != 20 {
		t.Fatalf("A score = %d, want 20", snap.Scores[SideA])
	}

	frozen := snap.Sides
	ticks(s, 10)
	s.Advance(3 * DefaultLightPeriod)
	snap = s.Snapshot()
	if snap.Sides != frozen {
		t.Fatalf("hands moved after the winner was declared")
	}
	if snap.WindowOpen {
		t.Fatalf("scheduler kept toggling after the winner was declared")
	}
	for _, side := range Sides {
		if s.AttemptGrab(side) {
			t.Fatalf("%s grab accepted after the winner was declared", side)
		}
	}

	s.Reset()
	snap = s.Snapshot()
	if snap.HasWinner || snap.Scores != [len(Sides)]int{} {
		t.Fatalf("reset did not clear winner and scores: %+v", snap)
	}
	s.Advance(DefaultLightMinDelay)
	if !s.AttemptGrab(SideB) {
		t.Fatalf("grab rejected after reset")
	}
}

func TestNoThresholdRunsIndefinitely(t *testing.T) {
	s := newTestSession(t, ModeVsFriend, nil)
	for cycle := 0; cycle < 5; cycle++ {
		if cycle > 0 {
			s.Advance(DefaultLightPeriod)
		} else {
			s.Advance(DefaultLightMinDelay)
		}
		if !s.AttemptGrab(SideB) {
			t.Fatalf("cycle %d: grab rejected", cycle)
		}
		ticks(s, 8)
	}
	snap := s.Snapshot()
	if snap.HasWinner {
		t.Fatalf("winner declared without a threshold")
	}
	if snap.Scores[SideB] != 5*DefaultPoints {
		t.Fatalf("B score = %d, want %d", snap.Scores[SideB], 5*DefaultPoints)
	}
}

func TestArrivalEvents(t *testing.T) {
	s := newTestSession(t, ModeVsFriend, nil)
	s.Advance(DefaultLightMinDelay)
	s.Events()

	s.AttemptGrab(SideB)
	ticks(s, 8)

	var kinds []EventKind
	for _, e := range s.Events() {
		kinds = append(kinds, e.Kind)
		if e.Kind == EventArrival {
			if e.Side != SideB || e.Position != testLayout.Target || e.Points != DefaultPoints {
				t.Fatalf("arrival event = %+v", e)
			}
		}
	}
	want := []EventKind{EventGrabStarted, EventArrival, EventReturned, EventWindowClosed}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("events = %v, want %v", kinds, want)
		}
	}
	if s.Events() != nil {
		t.Fatalf("events should be drained")
	}
}

func TestRandomAttemptsKeepSingleHolder(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, mode := range []Mode{ModeVsBot, ModeVsFriend} {
		s := newTestSession(t, mode, func(o *Options) {
			o.Speed = 0.05
			o.Delays = NewRandomDelay(7)
		})
		for i := 0; i < 5000; i++ {
			side := Sides[rng.Intn(len(Sides))]
			before := s.Snapshot()
			ok := s.AttemptGrab(side)
			if ok && !before.WindowOpen {
				t.Fatalf("grab accepted with the window closed")
			}
			if !before.WindowOpen && s.Snapshot().Sides[side].Phase != before.Sides[side].Phase {
				t.Fatalf("closed-window attempt changed %s", side)
			}
			s.Advance(time.Duration(rng.Intn(40)) * time.Millisecond)

			busy := 0
			for _, g := range s.Snapshot().Sides {
				if g.Busy() {
					busy++
				}
			}
			if busy > 1 {
				t.Fatalf("%d sides busy at step %d", busy, i)
			}
		}
	}
}

func TestNewSessionValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
		want   error
	}{
		{"zero speed", func(o *Options) { o.Speed = 0 }, ErrInvalidSpeed},
		{"zero points", func(o *Options) { o.Points = 0 }, ErrInvalidPoints},
		{"negative win", func(o *Options) { o.WinScore = -1 }, ErrInvalidWinScore},
		{"negative delay", func(o *Options) { o.BotSpread = -time.Second }, ErrInvalidTiming},
		{"zero period", func(o *Options) { o.LightPeriod = 0 }, ErrInvalidTiming},
		{"bad mode", func(o *Options) { o.Mode = Mode(9) }, ErrUnknownMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions(ModeVsBot, DifficultyEasy)
			tt.mutate(&opts)
			_, err := NewSession(opts)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBounceIsCosmetic(t *testing.T) {
	g := GrabState{Phase: PhaseMovingToTarget, Progress: 0.5}
	if got := g.Bounce(4); math.Abs(got+4) > 1e-9 {
		t.Fatalf("bounce at midpoint = %v, want -4", got)
	}
	g.Phase = PhaseIdle
	if got := g.Bounce(4); got != 0 {
		t.Fatalf("idle bounce = %v, want 0", got)
	}
}
