package engine

import (
	"github.com/quartzchess/quartz/internal/board"
)

// Engine is the top-level facade the surrounding application talks to: it
// owns one Search (and through it one transposition table).
type Engine struct {
	search *Search
}

// DefaultHashMB is the default transposition table size.
const DefaultHashMB = 64

// New creates an engine with a transposition table of ttMB megabytes.
func New(ttMB int) *Engine {
	return &Engine{search: NewSearch(ttMB)}
}

// Search runs a search on pos under the given limits. pos is mutated
// during the search by paired make/unmake calls and is restored before
// returning.
func (e *Engine) Search(pos *board.Position, limits SearchLimits) SearchResult {
	return e.search.Run(pos, limits)
}

// Cancel stops a running search. Safe from any goroutine.
func (e *Engine) Cancel() {
	e.search.Cancel()
}

// SetTTSize resizes the transposition table, clearing it.
func (e *Engine) SetTTSize(mb int) {
	e.search.TT().Resize(mb)
}

// ClearTT empties the transposition table.
func (e *Engine) ClearTT() {
	e.search.TT().Clear()
}

// Hashfull reports the table fill rate per mille.
func (e *Engine) Hashfull() int {
	return e.search.TT().Hashfull()
}

// ScoreString renders a score for display: mate distances as "mate N",
// anything else in pawns with two decimals.
func ScoreString(score int) string {
	if score > MateScore-MaxPly {
		return "mate " + itoa((MateScore-score+1)/2)
	}
	if score < -MateScore+MaxPly {
		return "mate " + itoa(-(MateScore+score+1)/2)
	}
	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return sign + itoa(score/100) + "." + pad2(score%100)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	s := ""
	for n > 0 {
		s = string(byte('0'+n%10)) + s
		n /= 10
	}
	if neg {
		s = "-" + s
	}
	return s
}

func pad2(n int) string {
	if n < 10 {
		return "0" + itoa(n)
	}
	return itoa(n)
}
