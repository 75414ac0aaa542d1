package game

// ScoreTracker accumulates points per side and detects the winner.
type ScoreTracker struct {
	winScore  int // 0 disables the win condition
	scores    [len(Sides)]int
	winner    Side
	hasWinner bool
}

// NewScoreTracker creates a tracker. A winScore of zero means the game never ends.
func NewScoreTracker(winScore int) *ScoreTracker {
	return &ScoreTracker{winScore: winScore}
}

// Credit adds points to side. It reports whether this credit decided the winner.
// Credits are ignored once a winner exists.
func (t *ScoreTracker) Credit(side Side, points int) bool {
	if t.hasWinner || !side.Valid() || points <= 0 {
		return false
	}
	t.scores[side] += points
	if t.winScore > 0 && t.scores[side] >= t.winScore {
		t.winner = side
		t.hasWinner = true
		return true
	}
	return false
}

// Score returns the current points of side.
func (t *ScoreTracker) Score(side Side) int {
	if !side.Valid() {
		return 0
	}
	return t.scores[side]
}

// Scores returns both sides' points indexed by Side.
func (t *ScoreTracker) Scores() [len(Sides)]int {
	return t.scores
}

// Winner returns the winning side, if any.
func (t *ScoreTracker) Winner() (Side, bool) {
	return t.winner, t.hasWinner
}

// Reset zeroes both scores and clears the winner.
func (t *ScoreTracker) Reset() {
	t.scores = [len(Sides)]int{}
	t.winner = SideA
	t.hasWinner = false
}
