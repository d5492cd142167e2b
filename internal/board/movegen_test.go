package board

import "testing"

func TestStartingPositionMoves(t *testing.T) {
	pos := StartingPosition()

	pseudo := pos.GeneratePseudoLegalMoves()
	legal := pos.GenerateLegalMoves()

	if pseudo.Len() != 20 || legal.Len() != 20 {
		t.Errorf("start position: pseudo %d, legal %d, want 20/20", pseudo.Len(), legal.Len())
	}
}

func TestCastlingGeneration(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		kingside  bool
		queenside bool
	}{
		{"both open", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", true, true},
		{"no rights", "r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1", false, false},
		{"f1 occupied", "r3k2r/8/8/8/8/8/8/R3KB1R w KQkq - 0 1", false, true},
		{"b1 occupied", "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1", true, false},
		{"king in check", "r3k2r/8/8/8/8/4r3/8/R3K2R w KQkq - 0 1", false, false},
		// The rook on f3 guards f1, the crossing square of the kingside
		// castle; queenside crossing squares c1/d1 stay clean.
		{"crossing square attacked", "r3k2r/8/8/8/8/5r2/8/R3K2R w KQkq - 0 1", false, true},
		// b1 attacked is fine: the king never crosses b1.
		{"b1 attacked only", "r3k2r/8/8/8/8/1r6/8/R3K2R w KQkq - 0 1", true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}
			legal := pos.GenerateLegalMoves()

			var ks, qs bool
			for i := 0; i < legal.Len(); i++ {
				switch legal.Get(i).Flag() {
				case FlagCastleKingside:
					ks = true
				case FlagCastleQueenside:
					qs = true
				}
			}
			if ks != tc.kingside || qs != tc.queenside {
				t.Errorf("kingside %v queenside %v, want %v/%v", ks, qs, tc.kingside, tc.queenside)
			}
		})
	}
}

func TestPromotionExpansion(t *testing.T) {
	pos, err := ParseFEN("7k/4P3/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	legal := pos.GenerateLegalMoves()

	var promos []PieceType
	for i := 0; i < legal.Len(); i++ {
		if m := legal.Get(i); m.IsPromotion() {
			promos = append(promos, m.Promotion())
		}
	}

	want := []PieceType{Queen, Rook, Bishop, Knight}
	if len(promos) != len(want) {
		t.Fatalf("got %d promotions, want %d", len(promos), len(want))
	}
	for i := range want {
		if promos[i] != want[i] {
			t.Errorf("promotion %d = %v, want %v", i, promos[i], want[i])
		}
	}
}

func TestCapturesGeneratorIsNoisyOnly(t *testing.T) {
	// White can capture on d5, promote by capturing on d8, and push the
	// b-pawn. Only the first two belong in the capture list.
	pos, err := ParseFEN("3rk3/4P3/8/3p4/5N2/8/1P6/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	noisy := pos.GenerateCaptures()
	for i := 0; i < noisy.Len(); i++ {
		m := noisy.Get(i)
		isCapture := !pos.Board().PieceAt(m.To()).IsNone() || m.IsEnPassant()
		if !isCapture && !m.IsPromotion() {
			t.Errorf("quiet move %v in capture list", m)
		}
	}

	// The knight capture on d5 and all e7 promotions must be present; the
	// quiet b-pawn pushes must not.
	var sawKnightCapture, sawPromotion bool
	for i := 0; i < noisy.Len(); i++ {
		m := noisy.Get(i)
		if m.From() == F4 && m.To() == D5 {
			sawKnightCapture = true
		}
		if m.From() == E7 && m.IsPromotion() {
			sawPromotion = true
		}
		if m.From() == B2 {
			t.Errorf("pawn push %v in capture list", m)
		}
	}
	if !sawKnightCapture {
		t.Errorf("knight capture f4d5 missing from capture list")
	}
	if !sawPromotion {
		t.Errorf("promotions missing from capture list")
	}
}

func TestEnPassantGeneration(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	if err != nil {
		t.Fatal(err)
	}

	legal := pos.GenerateLegalMoves()
	var ep []Move
	for i := 0; i < legal.Len(); i++ {
		if legal.Get(i).IsEnPassant() {
			ep = append(ep, legal.Get(i))
		}
	}

	if len(ep) != 1 {
		t.Fatalf("got %d en passant moves, want 1", len(ep))
	}
	if ep[0].From() != E5 || ep[0].To() != F6 {
		t.Errorf("en passant = %v, want e5f6", ep[0])
	}

	// The captured pawn disappears from f5.
	pos.MakeMove(ep[0])
	if !pos.Board().IsEmpty(F5) {
		t.Errorf("captured pawn still on f5 after en passant")
	}
	pos.UnmakeMove(ep[0])
	if got := pos.Board().PieceAt(F5); got != (Piece{Black, Pawn}) {
		t.Errorf("pawn not restored on f5, got %v", got)
	}
}

// Move descriptors round-trip through serialization for every legal move.
func TestMoveRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		legal := pos.GenerateLegalMoves()
		for i := 0; i < legal.Len(); i++ {
			m := legal.Get(i)
			parsed, err := ParseMove(m.String(), pos)
			if err != nil {
				t.Errorf("%q: ParseMove(%q): %v", fen, m.String(), err)
				continue
			}
			if parsed != m {
				t.Errorf("%q: round trip of %q: got %v, want %v", fen, m.String(), parsed, m)
			}
		}
	}
}

func TestLegalMovesNeverLeaveKingInCheck(t *testing.T) {
	fens := []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"4k3/8/8/8/8/8/4r3/4K3 w - - 0 1",
	}
	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		us := pos.SideToMove()
		legal := pos.GenerateLegalMoves()
		for i := 0; i < legal.Len(); i++ {
			m := legal.Get(i)
			pos.MakeMove(m)
			if pos.IsInCheck(us) {
				t.Errorf("%q: legal move %v leaves own king in check", fen, m)
			}
			pos.UnmakeMove(m)
		}
	}
}
