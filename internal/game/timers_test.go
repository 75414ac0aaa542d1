package game

import (
	"testing"
	"time"
)

func TestTimerQueueOrder(t *testing.T) {
	var q timerQueue
	gen := func() uint64 { return 0 }
	var fired []string

	q.after(30*time.Millisecond, 0, func() { fired = append(fired, "c") })
	q.after(10*time.Millisecond, 0, func() { fired = append(fired, "a") })
	q.after(10*time.Millisecond, 0, func() {
		fired = append(fired, "b")
		q.after(5*time.Millisecond, 0, func() { fired = append(fired, "nested") })
	})

	q.advance(20*time.Millisecond, gen)
	want := []string{"a", "b", "nested"}
	if len(fired) != len(want) {
		t.Fatalf("fired = %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Fatalf("fired = %v, want %v", fired, want)
		}
	}
	if q.now != 20*time.Millisecond {
		t.Fatalf("now = %v, want 20ms", q.now)
	}
	if q.len() != 1 {
		t.Fatalf("pending = %d, want 1", q.len())
	}
}

func TestTimerQueueSkipsStaleGeneration(t *testing.T) {
	var q timerQueue
	current := uint64(1)
	fired := 0
	q.after(time.Millisecond, 0, func() { fired++ })
	q.after(time.Millisecond, 1, func() { fired += 10 })

	q.advance(time.Second, func() uint64 { return current })
	if fired != 10 {
		t.Fatalf("fired = %d, want only the current generation", fired)
	}
}

func TestRandomDelayBounds(t *testing.T) {
	r := NewRandomDelay(1)
	for i := 0; i < 1000; i++ {
		d := r.Delay(DefaultBotMinDelay, DefaultBotSpread)
		if d < DefaultBotMinDelay || d > DefaultBotMinDelay+DefaultBotSpread {
			t.Fatalf("delay %v outside [%v, %v]", d, DefaultBotMinDelay, DefaultBotMinDelay+DefaultBotSpread)
		}
	}
	if d := r.Delay(time.Second, 0); d != time.Second {
		t.Fatalf("zero spread delay = %v, want 1s", d)
	}
}

func TestLightSchedulerCycle(t *testing.T) {
	var (
		q      timerQueue
		cue    LightCue
		opens  int
		draws  int
		halted bool
	)
	l := &LightScheduler{
		Period:   4 * time.Second,
		MinDelay: time.Second,
		Spread:   2 * time.Second,
		cue:      &cue,
		timers:   &q,
		delays: DelayFunc(func(min, spread time.Duration) time.Duration {
			draws++
			return min + spread // latest possible opening
		}),
		halted: func() bool { return halted },
		onOpen: func() { opens++ },
	}
	gen := func() uint64 { return 0 }

	cue.WindowOpen = true
	l.Start(0)
	if cue.WindowOpen {
		t.Fatalf("start must close the window")
	}

	q.advance(3*time.Second-time.Millisecond, gen)
	if cue.WindowOpen {
		t.Fatalf("window opened before the drawn delay")
	}
	q.advance(time.Millisecond, gen)
	if !cue.WindowOpen || opens != 1 {
		t.Fatalf("window open=%v opens=%d at 3s", cue.WindowOpen, opens)
	}

	q.advance(time.Second, gen) // next cycle at 4s
	if cue.WindowOpen {
		t.Fatalf("new cycle must close the window")
	}
	if draws != 2 {
		t.Fatalf("delay drawn %d times, want once per cycle", draws)
	}

	halted = true
	q.advance(20*time.Second, gen)
	if cue.WindowOpen || opens != 1 {
		t.Fatalf("halted scheduler toggled: open=%v opens=%d", cue.WindowOpen, opens)
	}
}

func TestScoreTracker(t *testing.T) {
	tests := []struct {
		name       string
		winScore   int
		points     int
		credits    []Side
		wantScores [len(Sides)]int
		wantWinner bool
		winner     Side
	}{
		{"no threshold", 0, 5, []Side{SideA, SideB, SideA}, [len(Sides)]int{10, 5}, false, SideA},
		{"threshold reached", 20, 10, []Side{SideB, SideA, SideB}, [len(Sides)]int{10, 20}, true, SideB},
		{"frozen after win", 10, 10, []Side{SideA, SideB, SideA}, [len(Sides)]int{10, 0}, true, SideA},
		{"exceeding counts", 7, 5, []Side{SideA, SideA}, [len(Sides)]int{10, 0}, true, SideA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewScoreTracker(tt.winScore)
			for _, side := range tt.credits {
				tr.Credit(side, tt.points)
			}
			if tr.Scores() != tt.wantScores {
				t.Fatalf("scores = %v, want %v", tr.Scores(), tt.wantScores)
			}
			winner, won := tr.Winner()
			if won != tt.wantWinner || (won && winner != tt.winner) {
				t.Fatalf("winner = %v/%v, want %v/%v", winner, won, tt.winner, tt.wantWinner)
			}

			tr.Reset()
			if tr.Scores() != [len(Sides)]int{} {
				t.Fatalf("reset left scores %v", tr.Scores())
			}
			if _, won := tr.Winner(); won {
				t.Fatalf("reset left a winner")
			}
		})
	}
}

func TestParseModeAndDifficulty(t *testing.T) {
	if m, err := ParseMode(" Friend "); err != nil || m != ModeVsFriend {
		t.Fatalf("ParseMode = %v, %v", m, err)
	}
	if _, err := ParseMode("robot"); err == nil {
		t.Fatalf("ParseMode accepted an unknown mode")
	}
	for _, d := range Difficulties {
		got, err := ParseDifficulty(d.String())
		if err != nil || got != d {
			t.Fatalf("ParseDifficulty(%q) = %v, %v", d.String(), got, err)
		}
	}
	if _, err := ParseDifficulty("insane"); err == nil {
		t.Fatalf("ParseDifficulty accepted an unknown level")
	}
	if DifficultyEasy.Speed() >= DifficultyMedium.Speed() || DifficultyMedium.Speed() >= DifficultyHard.Speed() {
		t.Fatalf("difficulty speeds must increase")
	}
}
