package board

import "testing"

func TestShiftsDoNotWrapFiles(t *testing.T) {
	tests := []struct {
		name  string
		shift func(Bitboard) Bitboard
		from  Square
		want  Bitboard
	}{
		{"east off h-file", Bitboard.East, H4, 0},
		{"west off a-file", Bitboard.West, A4, 0},
		{"northeast off h-file", Bitboard.NorthEast, H4, 0},
		{"southeast off h-file", Bitboard.SouthEast, H4, 0},
		{"northwest off a-file", Bitboard.NorthWest, A4, 0},
		{"southwest off a-file", Bitboard.SouthWest, A4, 0},
		{"east on board", Bitboard.East, D4, SquareBB(E4)},
		{"northwest on board", Bitboard.NorthWest, D4, SquareBB(C5)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.shift(SquareBB(tc.from)); got != tc.want {
				t.Errorf("shift of %v = %v, want %v", tc.from, got, tc.want)
			}
		})
	}
}

func TestShiftsOffBoardRanks(t *testing.T) {
	if got := SquareBB(E8).North(); got != 0 {
		t.Errorf("north off rank 8 = %v, want empty", got)
	}
	if got := SquareBB(E1).South(); got != 0 {
		t.Errorf("south off rank 1 = %v, want empty", got)
	}
}

func TestPopLSB(t *testing.T) {
	b := SquareBB(C3) | SquareBB(F7) | SquareBB(A1)

	if got := b.PopCount(); got != 3 {
		t.Fatalf("popcount = %d, want 3", got)
	}

	want := []Square{A1, C3, F7}
	for _, w := range want {
		if got := b.PopLSB(); got != w {
			t.Errorf("PopLSB = %v, want %v", got, w)
		}
	}
	if b != 0 {
		t.Errorf("bitboard not empty after popping all bits")
	}
	if got := b.LSB(); got != NoSquare {
		t.Errorf("LSB of empty board = %v, want NoSquare", got)
	}
}

func TestKnightAttacksCorners(t *testing.T) {
	if got := KnightAttacks(A1); got != SquareBB(B3)|SquareBB(C2) {
		t.Errorf("knight attacks from a1:\n%v", got)
	}
	if got := KnightAttacks(H8); got != SquareBB(G6)|SquareBB(F7) {
		t.Errorf("knight attacks from h8:\n%v", got)
	}
}

func TestPawnAttacksEdges(t *testing.T) {
	if got := PawnAttacks(White, A2); got != SquareBB(B3) {
		t.Errorf("white pawn on a2 attacks:\n%v", got)
	}
	if got := PawnAttacks(Black, H7); got != SquareBB(G6) {
		t.Errorf("black pawn on h7 attacks:\n%v", got)
	}
	if got := PawnAttacks(White, E4); got != SquareBB(D5)|SquareBB(F5) {
		t.Errorf("white pawn on e4 attacks:\n%v", got)
	}
}
