package engine

import (
	"time"

	"github.com/quartzchess/quartz/internal/board"
)

// ClockState carries the UCI time control for both sides.
type ClockState struct {
	Time      [2]time.Duration // remaining time per color
	Inc       [2]time.Duration // increment per move
	MovesToGo int              // moves to the next time control, 0 = sudden death
}

// AllocateTime converts clock state into a single move budget for the side
// to move. The returned duration is 0 when no clock information is present
// (depth-limited or infinite searches).
func AllocateTime(clock ClockState, us board.Color, overhead time.Duration) time.Duration {
	remaining := clock.Time[us]
	if remaining <= 0 {
		return 0
	}

	mtg := clock.MovesToGo
	if mtg <= 0 {
		mtg = 30 // sudden death: assume the game is about half over
	}

	budget := remaining/time.Duration(mtg) + clock.Inc[us]*9/10
	budget -= overhead

	// Never plan to spend more than half the clock on one move.
	if limit := remaining / 2; budget > limit {
		budget = limit
	}
	if budget < time.Millisecond {
		budget = time.Millisecond
	}
	return budget
}
