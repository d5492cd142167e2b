package board

import "testing"

// The key stream is a pure function of the seed: parsing the same
// descriptor twice must give the same key, and distinct scalar state must
// hash differently.
func TestZobristDeterminismAndSensitivity(t *testing.T) {
	a, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatal(err)
	}
	if a.Key() != b.Key() {
		t.Fatalf("identical positions hash differently: %x vs %x", a.Key(), b.Key())
	}

	variants := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1",  // side flipped
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQk - 0 1",   // rights differ
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1", // placement differs
	}
	for _, fen := range variants {
		v, err := ParseFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		if v.Key() == a.Key() {
			t.Errorf("%q collides with the starting position", fen)
		}
	}
}

// Clocks are not hashed: two positions differing only in move counters
// share a key.
func TestZobristIgnoresClocks(t *testing.T) {
	a, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - - 37 12")
	if err != nil {
		t.Fatal(err)
	}
	if a.Key() != b.Key() {
		t.Errorf("clock fields leaked into the key")
	}
}

func TestZobristEnPassantAffectsKey(t *testing.T) {
	withEP, err := ParseFEN("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2")
	if err != nil {
		t.Fatal(err)
	}
	withoutEP, err := ParseFEN("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	if err != nil {
		t.Fatal(err)
	}
	if withEP.Key() == withoutEP.Key() {
		t.Errorf("en passant square not hashed")
	}
}

// Transpositions reached by different move orders share a key.
func TestZobristTransposition(t *testing.T) {
	a := StartingPosition()
	for _, s := range []string{"g1f3", "g8f6", "b1c3"} {
		m, err := ParseMove(s, a)
		if err != nil {
			t.Fatal(err)
		}
		a.MakeMove(m)
	}

	b := StartingPosition()
	for _, s := range []string{"b1c3", "g8f6", "g1f3"} {
		m, err := ParseMove(s, b)
		if err != nil {
			t.Fatal(err)
		}
		b.MakeMove(m)
	}

	if a.Key() != b.Key() {
		t.Errorf("transposed positions hash differently: %x vs %x", a.Key(), b.Key())
	}
}
