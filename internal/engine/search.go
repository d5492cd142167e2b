package engine

import (
	"sync/atomic"
	"time"

	"github.com/quartzchess/quartz/internal/board"
)

// Score constants. Everything stays inside int16 range so scores survive
// the transposition table payload unharmed.
const (
	Inf       = 30000
	MateScore = 29000
	MaxPly    = 128
	MaxDepth  = 64
)

// Search tuning constants.
const (
	nullMoveMinDepth      = 3
	nullMoveBaseReduction = 2
	lmrMinDepth           = 4
	lmrMinMoveIndex       = 3
	quiescenceMaxDepth    = 16
	futilityMargin        = 200 // centipawns per remaining depth
	reverseFutilityMargin = 300

	killerPrimaryBonus   = 9_000
	killerSecondaryBonus = 8_000
	historyMax           = 8_000
	ttMoveScore          = 100_000
	castlingBonus        = 120

	// The deadline is only consulted every timeCheckInterval nodes.
	timeCheckInterval = 4096
)

// MVV values for capture ordering, indexed by PieceType.Index(). The king
// scores zero: it is never captured.
var mvvValues = [board.NumPieceTypes]int{100, 320, 330, 500, 900, 0}

// SearchLimits bounds a search. MaxDepth is clamped to [1, MaxDepth];
// MoveTime <= 0 means no time limit.
type SearchLimits struct {
	MaxDepth int
	MoveTime time.Duration
}

// SearchResult is what a search hands back to the caller.
type SearchResult struct {
	BestMove board.Move // NoMove when the root has no legal moves
	Score    int        // centipawns from the root side's perspective
	Depth    int        // last fully completed iteration
	Nodes    uint64     // nodes visited, quiescence included
}

// Search owns one transposition table and the per-search heuristic state.
// It runs on a single goroutine; the only cross-goroutine touch point is
// Cancel, which flips an atomic flag the search polls cooperatively.
type Search struct {
	tt *TranspositionTable

	killers [MaxPly][2]board.Move
	history [2][64][64]int

	cancelled   atomic.Bool
	deadline    time.Time
	hasDeadline bool

	nodes uint64
}

// NewSearch creates a search with a transposition table of ttMB megabytes.
func NewSearch(ttMB int) *Search {
	return &Search{tt: NewTranspositionTable(ttMB)}
}

// TT exposes the transposition table for resizing and diagnostics.
func (s *Search) TT() *TranspositionTable {
	return s.tt
}

// Cancel stops a running search. Safe to call from any goroutine; the
// search notices the flag at its next node-level poll.
func (s *Search) Cancel() {
	s.cancelled.Store(true)
}

// Run performs an iterative-deepening search and returns the best move of
// the last fully completed iteration.
func (s *Search) Run(pos *board.Position, limits SearchLimits) SearchResult {
	s.cancelled.Store(false)
	s.nodes = 0
	s.resetHeuristics()
	s.tt.NewSearch()

	maxDepth := limits.MaxDepth
	if maxDepth < 1 {
		maxDepth = 1
	}
	if maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}

	s.hasDeadline = limits.MoveTime > 0
	if s.hasDeadline {
		s.deadline = time.Now().Add(limits.MoveTime)
	}

	rootMoves := pos.GenerateLegalMoves()
	if rootMoves.Len() == 0 {
		if pos.InCheck() {
			return SearchResult{board.NoMove, -MateScore, 0, s.nodes}
		}
		return SearchResult{board.NoMove, 0, 0, s.nodes}
	}

	s.orderMoves(pos, rootMoves, board.NoMove, 0)

	bestMove := rootMoves.Get(0)
	bestScore := -Inf
	completedDepth := 0

	for depth := 1; depth <= maxDepth; depth++ {
		if s.shouldStop() {
			break
		}

		score := -Inf
		iterBest := board.NoMove
		alpha, beta := -Inf, Inf

		for i := 0; i < rootMoves.Len(); i++ {
			if s.shouldStop() {
				break
			}
			m := rootMoves.Get(i)
			pos.MakeMove(m)
			v := -s.negamax(pos, depth-1, -beta, -alpha, 1, true)
			pos.UnmakeMove(m)

			if v > score {
				score = v
				iterBest = m
			}
			if v > alpha {
				alpha = v
			}
		}

		if s.shouldStop() || iterBest == board.NoMove {
			break
		}

		bestMove = iterBest
		bestScore = score
		completedDepth = depth

		// Previous best first: the next iteration refutes or confirms it
		// immediately.
		for i := 0; i < rootMoves.Len(); i++ {
			if rootMoves.Get(i) == bestMove {
				for j := i; j > 0; j-- {
					rootMoves.Swap(j, j-1)
				}
				break
			}
		}
	}

	return SearchResult{bestMove, bestScore, completedDepth, s.nodes}
}

func (s *Search) resetHeuristics() {
	s.killers = [MaxPly][2]board.Move{}
	s.history = [2][64][64]int{}
}

func (s *Search) shouldStop() bool {
	if s.cancelled.Load() {
		return true
	}
	if s.hasDeadline && s.nodes&(timeCheckInterval-1) == 0 {
		return !time.Now().Before(s.deadline)
	}
	return false
}

func (s *Search) negamax(pos *board.Position, depth, alpha, beta, ply int, allowNull bool) int {
	if s.shouldStop() {
		return Evaluate(pos)
	}

	s.nodes++

	if s.isDraw(pos) {
		return 0
	}

	alphaOrig := alpha

	// Transposition table probe. Mate-range scores are not used for
	// cutoffs: they are relative to the ply they were found at and replay
	// unstably elsewhere in the tree. The stored move still seeds the
	// ordering either way.
	ttMove := board.NoMove
	if entry, ok := s.tt.Probe(pos.Key()); ok {
		ttMove = entry.BestMove
		if int(entry.Depth) >= depth {
			ttScore := int(entry.Score)
			if ttScore < MateScore-MaxPly && ttScore > -MateScore+MaxPly {
				switch entry.Bound {
				case BoundExact:
					return ttScore
				case BoundLower:
					if ttScore > alpha {
						alpha = ttScore
					}
				case BoundUpper:
					if ttScore < beta {
						beta = ttScore
					}
				}
				if alpha >= beta {
					return ttScore
				}
			}
		}
	}

	if depth <= 0 {
		return s.quiescence(pos, alpha, beta, ply, 0)
	}

	inCheck := pos.InCheck()

	// Check extension: never stand at the horizon while in check.
	if inCheck {
		depth++
	}

	// Reverse futility: a static eval so far above beta that depth
	// remaining cannot pull it back down.
	if !inCheck && depth <= 3 && ply > 0 {
		staticEval := Evaluate(pos)
		if staticEval-reverseFutilityMargin*depth >= beta {
			return staticEval
		}
	}

	// Null move pruning: give the opponent a free shot at reduced depth.
	// Skipped without non-pawn material, where zugzwang breaks the logic.
	if allowNull && !inCheck && depth >= nullMoveMinDepth && ply > 0 &&
		pos.HasNonPawnMaterial(pos.SideToMove()) {
		reduction := nullMoveBaseReduction + depth/4
		nullDepth := depth - 1 - reduction
		if nullDepth < 0 {
			nullDepth = 0
		}

		pos.MakeNullMove()
		nullScore := -s.negamax(pos, nullDepth, -beta, -beta+1, ply+1, false)
		pos.UnmakeNullMove()

		if s.shouldStop() {
			return Evaluate(pos)
		}
		if nullScore >= beta {
			return beta
		}
	}

	moves := pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		if inCheck {
			return -MateScore + ply
		}
		return 0
	}

	scores := s.scoreMoves(pos, moves, ttMove, ply)

	bestScore := -Inf
	bestMove := board.NoMove
	sideToMove := pos.SideToMove()

	// Futility: when the static eval plus a depth-scaled margin cannot
	// reach alpha, quiet non-first moves are skipped outright.
	canFutility := false
	if !inCheck && depth <= 2 && ply > 0 {
		canFutility = Evaluate(pos)+futilityMargin*depth <= alpha
	}

	for i := 0; i < moves.Len(); i++ {
		pickMove(moves, scores, i)
		m := moves.Get(i)

		isCapture := !pos.Board().PieceAt(m.To()).IsNone()
		isQuiet := !isCapture && !m.IsEnPassant() && !m.IsPromotion()

		if canFutility && isQuiet && i > 0 && bestScore > -MateScore+MaxPly {
			continue
		}

		canLMR := isQuiet && !inCheck && depth >= lmrMinDepth && i >= lmrMinMoveIndex &&
			m != ttMove

		pos.MakeMove(m)

		var score int
		if canLMR && !pos.InCheck() {
			// Late move reduction: null-window probe at reduced depth,
			// full re-search only on a fail-high.
			r := lmrReduction(depth, i)
			reducedDepth := depth - 1 - r
			if reducedDepth < 0 {
				reducedDepth = 0
			}
			score = -s.negamax(pos, reducedDepth, -alpha-1, -alpha, ply+1, true)
			if score > alpha {
				score = -s.negamax(pos, depth-1, -beta, -alpha, ply+1, true)
			}
		} else {
			score = -s.negamax(pos, depth-1, -beta, -alpha, ply+1, true)
		}

		pos.UnmakeMove(m)

		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if isQuiet {
				s.recordKiller(m, ply)
				s.updateHistory(sideToMove, m, depth)
			}
			break
		}
		if s.shouldStop() {
			break
		}
	}

	if bestScore == -Inf {
		return Evaluate(pos)
	}

	bound := BoundExact
	if bestScore <= alphaOrig {
		bound = BoundUpper
	} else if bestScore >= beta {
		bound = BoundLower
	}
	s.tt.Store(pos.Key(), depth, bestScore, bound, bestMove, Evaluate(pos))

	return bestScore
}

func lmrReduction(depth, moveIndex int) int {
	r := 1
	if depth >= 8 && moveIndex >= 8 {
		r++
	}
	return r
}

// quiescence extends the horizon with tactical continuations only. In
// check every move is searched with no stand-pat; otherwise captures and
// promotions. The recursion depth is capped to bound check-evasion chains.
func (s *Search) quiescence(pos *board.Position, alpha, beta, ply, qDepth int) int {
	if s.shouldStop() {
		return Evaluate(pos)
	}

	s.nodes++

	if s.isDraw(pos) {
		return 0
	}

	if pos.InCheck() {
		moves := pos.GenerateLegalMoves()
		if moves.Len() == 0 {
			return -MateScore + ply
		}
		if qDepth >= quiescenceMaxDepth {
			return Evaluate(pos)
		}

		scores := s.scoreMoves(pos, moves, board.NoMove, ply)

		bestScore := -Inf
		for i := 0; i < moves.Len(); i++ {
			pickMove(moves, scores, i)
			m := moves.Get(i)

			pos.MakeMove(m)
			score := -s.quiescence(pos, -beta, -alpha, ply+1, qDepth+1)
			pos.UnmakeMove(m)

			if score > bestScore {
				bestScore = score
			}
			if score > alpha {
				alpha = score
			}
			if alpha >= beta {
				break
			}
			if s.shouldStop() {
				break
			}
		}
		return bestScore
	}

	standPat := Evaluate(pos)

	if qDepth >= quiescenceMaxDepth {
		return standPat
	}

	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	noisy := pos.GenerateCaptures()

	legal := &board.MoveList{}
	us := pos.SideToMove()
	for i := 0; i < noisy.Len(); i++ {
		m := noisy.Get(i)
		pos.MakeMove(m)
		if !pos.IsInCheck(us) {
			legal.Add(m)
		}
		pos.UnmakeMove(m)
	}

	if legal.Len() == 0 {
		return alpha
	}

	scores := s.scoreMoves(pos, legal, board.NoMove, ply)

	for i := 0; i < legal.Len(); i++ {
		pickMove(legal, scores, i)
		m := legal.Get(i)

		pos.MakeMove(m)
		score := -s.quiescence(pos, -beta, -alpha, ply+1, qDepth+1)
		pos.UnmakeMove(m)

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
		if s.shouldStop() {
			break
		}
	}

	return alpha
}

// isDraw applies the search's draw rules: fifty-move rule, repetition
// (twofold: any earlier occurrence of the current key counts), and
// insufficient material.
func (s *Search) isDraw(pos *board.Position) bool {
	if pos.HalfmoveClock() >= 100 {
		return true
	}
	if pos.RepetitionCount() >= 2 {
		return true
	}

	b := pos.Board()
	total := b.OccupiedAll().PopCount()

	if total == 2 {
		return true // bare kings
	}

	if total == 3 {
		for c := board.White; c <= board.Black; c++ {
			if b.Pieces(c, board.Knight)|b.Pieces(c, board.Bishop) != 0 {
				return true // king + minor vs king
			}
		}
	}

	if total == 4 {
		wb := b.Pieces(board.White, board.Bishop)
		bb := b.Pieces(board.Black, board.Bishop)
		if wb != 0 && bb != 0 {
			wLight := wb&board.LightSquares != 0
			bLight := bb&board.LightSquares != 0
			if wLight == bLight {
				return true // opposite bishops on same-colored squares
			}
		}
	}

	return false
}

// scoreMoves assigns an ordering score to every move in ml.
func (s *Search) scoreMoves(pos *board.Position, ml *board.MoveList, ttMove board.Move, ply int) []int {
	scores := make([]int, ml.Len())
	for i := 0; i < ml.Len(); i++ {
		scores[i] = s.moveScore(pos, ml.Get(i), ttMove, ply)
	}
	return scores
}

func (s *Search) moveScore(pos *board.Position, m board.Move, ttMove board.Move, ply int) int {
	if ttMove != board.NoMove && m == ttMove {
		return ttMoveScore
	}

	score := 0
	b := pos.Board()
	moving := b.PieceAt(m.From())
	target := b.PieceAt(m.To())

	if m.IsPromotion() && m.Promotion() != board.None {
		score += 20_000 + mvvValues[m.Promotion().Index()]
	}

	switch {
	case !target.IsNone():
		score += 10_000
		score += 10 * mvvValues[target.Type.Index()]
		score -= mvvValues[moving.Type.Index()]
	case m.IsEnPassant():
		score += 10_000 + 10*mvvValues[board.Pawn.Index()] - mvvValues[board.Pawn.Index()]
	default:
		if ply < MaxPly {
			if s.killers[ply][0] == m {
				score += killerPrimaryBonus
			} else if s.killers[ply][1] == m {
				score += killerSecondaryBonus
			}
		}
		score += s.history[pos.SideToMove()][m.From()][m.To()]
	}

	if m.IsCastling() {
		score += castlingBonus
	}

	return score
}

// orderMoves fully sorts ml by descending score. Selection sort is plenty
// for move-list sizes.
func (s *Search) orderMoves(pos *board.Position, ml *board.MoveList, ttMove board.Move, ply int) {
	scores := s.scoreMoves(pos, ml, ttMove, ply)
	for i := 0; i < ml.Len(); i++ {
		pickMove(ml, scores, i)
	}
}

// pickMove swaps the highest-scoring remaining move into position i,
// sorting lazily as the search walks the list.
func pickMove(ml *board.MoveList, scores []int, i int) {
	best := i
	for j := i + 1; j < ml.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != i {
		ml.Swap(i, best)
		scores[i], scores[best] = scores[best], scores[i]
	}
}

// recordKiller installs a cutoff move into the ply's killer slots.
func (s *Search) recordKiller(m board.Move, ply int) {
	if ply < 0 || ply >= MaxPly {
		return
	}
	if s.killers[ply][0] == m {
		return
	}
	s.killers[ply][1] = s.killers[ply][0]
	s.killers[ply][0] = m
}

// updateHistory rewards a quiet cutoff move by depth squared, saturating at
// historyMax.
func (s *Search) updateHistory(side board.Color, m board.Move, depth int) {
	h := &s.history[side][m.From()][m.To()]
	*h += depth * depth
	if *h > historyMax {
		*h = historyMax
	}
}
