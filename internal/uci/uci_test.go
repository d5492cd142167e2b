package uci

import (
	"strings"
	"testing"

	"github.com/quartzchess/quartz/internal/board"
	"github.com/quartzchess/quartz/internal/engine"
)

func newTestUCI() *UCI {
	return New(engine.New(1), nil, nil)
}

func TestHandlePositionStartposWithMoves(t *testing.T) {
	u := newTestUCI()

	u.handlePosition([]string{"startpos", "moves", "e2e4", "c7c5", "g1f3"})

	want := "rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
	if got := u.position.FEN(); got != want {
		t.Errorf("position = %q, want %q", got, want)
	}
}

func TestHandlePositionFEN(t *testing.T) {
	u := newTestUCI()

	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	args := append([]string{"fen"}, strings.Fields(fen)...)
	u.handlePosition(args)

	if got := u.position.FEN(); got != fen {
		t.Errorf("position = %q, want %q", got, fen)
	}
}

func TestHandlePositionFENWithMoves(t *testing.T) {
	u := newTestUCI()

	args := append([]string{"fen"}, strings.Fields(board.StartFEN)...)
	args = append(args, "moves", "d2d4", "d7d5")
	u.handlePosition(args)

	want := "rnbqkbnr/ppp1pppp/8/3p4/3P4/8/PPP1PPPP/RNBQKBNR w KQkq d6 0 2"
	if got := u.position.FEN(); got != want {
		t.Errorf("position = %q, want %q", got, want)
	}
}

func TestHandlePositionRejectsIllegalMove(t *testing.T) {
	u := newTestUCI()
	before := u.position.FEN()

	u.handlePosition([]string{"startpos", "moves", "e2e5"})

	// The bad line is ignored wholesale; the previous position stands.
	if got := u.position.FEN(); got != before {
		t.Errorf("position changed after an illegal move line: %q", got)
	}
}
