// Package engine implements the search side of the chess engine: static
// evaluation, the transposition table, and alpha-beta search with
// iterative deepening.
package engine

import (
	"github.com/quartzchess/quartz/internal/board"
)

// Material values in centipawns, indexed by PieceType.Index().
var pieceValues = [board.NumPieceTypes]int{100, 320, 330, 500, 900, 0}

// Piece-square tables, from white's perspective and mirrored for black.
// Rank 8 is the first row of each literal.

var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// The king gets separate middlegame and endgame tables: hide behind the
// pawn shield early, walk to the center late.
var kingMidgamePST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var kingEndgamePST = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

var psts = [board.NumPieceTypes - 1][64]int{pawnPST, knightPST, bishopPST, rookPST, queenPST}

// Game phase weights for tapering: minors 1, rooks 2, queens 4.
var phaseWeight = [board.NumPieceTypes]int{0, 1, 1, 2, 4, 0}

const maxPhase = 24

const tempoBonus = 10

// pstSquare maps a square into white's PST orientation. The PST literals
// above are written rank 8 first, so white squares flip vertically.
func pstSquare(c board.Color, sq board.Square) board.Square {
	if c == board.White {
		return sq.Mirror()
	}
	return sq
}

// Evaluate scores the position in centipawns from the side-to-move's
// perspective, tapering piece-square values between the middlegame and
// endgame tables by remaining material.
func Evaluate(pos *board.Position) int {
	b := pos.Board()

	var mg, eg, phase int
	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		for pt := board.Pawn; pt <= board.King; pt++ {
			pieces := b.Pieces(c, pt)
			for pieces != 0 {
				sq := pieces.PopLSB()
				psq := pstSquare(c, sq)

				mg += sign * pieceValues[pt.Index()]
				eg += sign * pieceValues[pt.Index()]

				if pt == board.King {
					mg += sign * kingMidgamePST[psq]
					eg += sign * kingEndgamePST[psq]
				} else {
					v := psts[pt.Index()][psq]
					mg += sign * v
					eg += sign * v
				}

				phase += phaseWeight[pt.Index()]
			}
		}
	}

	if phase > maxPhase {
		phase = maxPhase
	}
	score := (mg*phase + eg*(maxPhase-phase)) / maxPhase
	if pos.SideToMove() == board.Black {
		score = -score
	}
	return score + tempoBonus
}

// Material scores raw material only, from the side-to-move's perspective.
func Material(pos *board.Position) int {
	b := pos.Board()
	score := 0
	for pt := board.Pawn; pt < board.King; pt++ {
		score += b.Pieces(board.White, pt).PopCount() * pieceValues[pt.Index()]
		score -= b.Pieces(board.Black, pt).PopCount() * pieceValues[pt.Index()]
	}
	if pos.SideToMove() == board.Black {
		return -score
	}
	return score
}
