package game

import "errors"

// Configuration errors returned by NewSession and the parse helpers.
var (
	ErrUnknownMode       = errors.New("unknown mode")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrInvalidSpeed      = errors.New("speed must be positive")
	ErrInvalidPoints     = errors.New("points per grab must be positive")
	ErrInvalidWinScore   = errors.New("win score must not be negative")
	ErrInvalidTiming     = errors.New("timer durations must not be negative")
)
