package game

import (
	"math/rand"
	"sort"
	"time"
)

// DelaySource draws the randomized waits used by the light scheduler and the bot.
type DelaySource interface {
	// Delay returns a duration in [min, min+spread].
	Delay(min, spread time.Duration) time.Duration
}

// DelayFunc adapts a plain function to DelaySource.
type DelayFunc func(min, spread time.Duration) time.Duration

// Delay calls f.
func (f DelayFunc) Delay(min, spread time.Duration) time.Duration {
	return f(min, spread)
}

// RandomDelay draws uniform delays from a seeded generator.
type RandomDelay struct {
	rng *rand.Rand
}

// NewRandomDelay creates a delay source with its own generator.
func NewRandomDelay(seed int64) *RandomDelay {
	return &RandomDelay{rng: rand.New(rand.NewSource(seed))}
}

// Delay returns min plus a uniform draw from [0, spread].
func (r *RandomDelay) Delay(min, spread time.Duration) time.Duration {
	if spread <= 0 {
		return min
	}
	return min + time.Duration(r.rng.Int63n(int64(spread)+1))
}

// timer is a pending callback on the session clock.
type timer struct {
	due time.Duration
	seq uint64 // insertion order, breaks ties between equal due times
	gen uint64 // session generation that scheduled it
	fn  func()
}

// timerQueue is a virtual clock with callbacks ordered by due time.
type timerQueue struct {
	now     time.Duration
	seq     uint64
	pending []timer
}

// after schedules fn to run d from now under generation gen.
func (q *timerQueue) after(d time.Duration, gen uint64, fn func()) {
	if d < 0 {
		d = 0
	}
	t := timer{due: q.now + d, seq: q.seq, gen: gen, fn: fn}
	q.seq++

	i := sort.Search(len(q.pending), func(i int) bool {
		p := q.pending[i]
		return p.due > t.due || (p.due == t.due && p.seq > t.seq)
	})
	q.pending = append(q.pending, timer{})
	copy(q.pending[i+1:], q.pending[i:])
	q.pending[i] = t
}

// advance moves the clock forward by dt, running every due callback whose
// generation still matches current(). Callbacks scheduled while advancing
// run in the same call if they fall due before the new time.
func (q *timerQueue) advance(dt time.Duration, current func() uint64) {
	target := q.now + dt
	for len(q.pending) > 0 && q.pending[0].due <= target {
		t := q.pending[0]
		q.pending = q.pending[1:]
		q.now = t.due
		if t.gen == current() {
			t.fn()
		}
	}
	q.now = target
}

// clear drops every pending callback.
func (q *timerQueue) clear() {
	q.pending = q.pending[:0]
}

// len returns the number of pending callbacks.
func (q *timerQueue) len() int {
	return len(q.pending)
}
