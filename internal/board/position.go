package board

// CastlingRights is a 4-bit mask of the still-available castles.
type CastlingRights uint8

const (
	WhiteKingside CastlingRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  CastlingRights = 0
	AllCastling CastlingRights = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// String returns the FEN castling field ("KQkq" subset or "-").
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingside != 0 {
		s += "K"
	}
	if cr&WhiteQueenside != 0 {
		s += "Q"
	}
	if cr&BlackKingside != 0 {
		s += "k"
	}
	if cr&BlackQueenside != 0 {
		s += "q"
	}
	return s
}

// castleMask[sq] holds the rights PRESERVED when sq is an endpoint of a
// move: rights &= castleMask[from] & castleMask[to]. Touching a king or
// rook home square strips the corresponding rights; every other square
// preserves all of them.
var castleMask [64]CastlingRights

func init() {
	for sq := A1; sq <= H8; sq++ {
		castleMask[sq] = AllCastling
	}
	castleMask[E1] = AllCastling &^ (WhiteKingside | WhiteQueenside)
	castleMask[H1] = AllCastling &^ WhiteKingside
	castleMask[A1] = AllCastling &^ WhiteQueenside
	castleMask[E8] = AllCastling &^ (BlackKingside | BlackQueenside)
	castleMask[H8] = AllCastling &^ BlackKingside
	castleMask[A8] = AllCastling &^ BlackQueenside
}

// Position is a full game state: placement, side to move, castling rights,
// en passant target, clocks, the incrementally maintained Zobrist key, an
// undo stack, and the key history used for repetition detection.
//
// The position is mutated only through MakeMove/UnmakeMove and
// MakeNullMove/UnmakeNullMove, which must be strictly paired.
type Position struct {
	board          Board
	sideToMove     Color
	castling       CastlingRights
	enPassant      Square
	halfmoveClock  int
	fullmoveNumber int
	key            uint64

	undo       []UndoInfo
	keyHistory []uint64
}

// NewPosition returns an empty board, white to move.
func NewPosition() *Position {
	p := &Position{
		enPassant:      NoSquare,
		fullmoveNumber: 1,
	}
	p.computeKey()
	return p
}

// StartingPosition returns the standard initial position.
func StartingPosition() *Position {
	p, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err) // StartFEN is a constant known-good descriptor
	}
	return p
}

// Board exposes the piece placement.
func (p *Position) Board() *Board {
	return &p.board
}

// SideToMove returns the color to play.
func (p *Position) SideToMove() Color {
	return p.sideToMove
}

// Castling returns the current castling rights mask.
func (p *Position) Castling() CastlingRights {
	return p.castling
}

// EnPassant returns the en passant target square, or NoSquare.
func (p *Position) EnPassant() Square {
	return p.enPassant
}

// HalfmoveClock returns the fifty-move-rule counter.
func (p *Position) HalfmoveClock() int {
	return p.halfmoveClock
}

// FullmoveNumber returns the full move counter (starts at 1).
func (p *Position) FullmoveNumber() int {
	return p.fullmoveNumber
}

// Key returns the Zobrist hash of the position.
func (p *Position) Key() uint64 {
	return p.key
}

// MakeMove applies a move produced by the pseudo-legal generator for this
// position. The move is never rejected; feeding a move from any other
// source is a contract violation.
func (p *Position) MakeMove(m Move) {
	from, to := m.From(), m.To()
	piece := p.board.PieceAt(from)

	// Locate the capture. En passant takes the pawn one rank behind the
	// destination from the mover's point of view.
	captureSq := to
	if m.Flag() == FlagEnPassant {
		captureSq = NewSquare(to.File(), from.Rank())
	}
	captured := p.board.PieceAt(captureSq)

	p.undo = append(p.undo, UndoInfo{
		Castling:      p.castling,
		EnPassant:     p.enPassant,
		HalfmoveClock: p.halfmoveClock,
		Captured:      captured,
		Key:           p.key,
	})

	// Lift the mover off its origin.
	p.key ^= ZobristPiece(piece, from)
	p.board.Remove(from)

	if !captured.IsNone() {
		p.key ^= ZobristPiece(captured, captureSq)
		p.board.Remove(captureSq)
	}

	// A promotion changes the piece that lands; everything else arrives
	// unchanged.
	placed := piece
	if m.Flag() == FlagPromotion && m.Promotion() != None {
		placed = Piece{piece.Color, m.Promotion()}
	}
	p.board.Put(to, placed)
	p.key ^= ZobristPiece(placed, to)

	// Castling also slides the rook: h-file to f-file kingside, a-file to
	// d-file queenside, on the mover's back rank.
	switch m.Flag() {
	case FlagCastleKingside:
		p.slideRook(NewSquare(7, from.Rank()), NewSquare(5, from.Rank()))
	case FlagCastleQueenside:
		p.slideRook(NewSquare(0, from.Rank()), NewSquare(3, from.Rank()))
	}

	if m.Flag() == FlagDoublePawn {
		p.setEnPassant(NewSquare(from.File(), (from.Rank()+to.Rank())/2))
	} else {
		p.setEnPassant(NoSquare)
	}

	p.setCastling(p.castling & castleMask[from] & castleMask[to])

	if piece.Type == Pawn || !captured.IsNone() {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}
	if p.sideToMove == Black {
		p.fullmoveNumber++
	}

	p.sideToMove = p.sideToMove.Other()
	p.key ^= ZobristSide()

	p.keyHistory = append(p.keyHistory, p.key)
}

// UnmakeMove reverses the most recent MakeMove of m.
func (p *Position) UnmakeMove(m Move) {
	p.keyHistory = p.keyHistory[:len(p.keyHistory)-1]

	undo := p.undo[len(p.undo)-1]
	p.undo = p.undo[:len(p.undo)-1]

	p.sideToMove = p.sideToMove.Other()
	if p.sideToMove == Black {
		p.fullmoveNumber--
	}

	from, to := m.From(), m.To()

	// A promoted piece reverts to the mover's pawn on the way back.
	placed := p.board.PieceAt(to)
	original := placed
	if m.Flag() == FlagPromotion {
		original = Piece{placed.Color, Pawn}
	}
	p.board.Remove(to)
	p.board.Put(from, original)

	if !undo.Captured.IsNone() {
		captureSq := to
		if m.Flag() == FlagEnPassant {
			captureSq = NewSquare(to.File(), from.Rank())
		}
		p.board.Put(captureSq, undo.Captured)
	}

	switch m.Flag() {
	case FlagCastleKingside:
		p.slideRookBack(NewSquare(5, from.Rank()), NewSquare(7, from.Rank()))
	case FlagCastleQueenside:
		p.slideRookBack(NewSquare(3, from.Rank()), NewSquare(0, from.Rank()))
	}

	// The stored key is authoritative; no hash toggling on the way back.
	p.castling = undo.Castling
	p.enPassant = undo.EnPassant
	p.halfmoveClock = undo.HalfmoveClock
	p.key = undo.Key
}

// MakeNullMove passes the turn without moving a piece, for null-move
// pruning. It must be reversed with UnmakeNullMove.
func (p *Position) MakeNullMove() {
	p.undo = append(p.undo, UndoInfo{
		Castling:      p.castling,
		EnPassant:     p.enPassant,
		HalfmoveClock: p.halfmoveClock,
		Captured:      NoPiece,
		Key:           p.key,
	})

	p.setEnPassant(NoSquare)

	p.halfmoveClock++
	if p.sideToMove == Black {
		p.fullmoveNumber++
	}

	p.sideToMove = p.sideToMove.Other()
	p.key ^= ZobristSide()

	p.keyHistory = append(p.keyHistory, p.key)
}

// UnmakeNullMove reverses the most recent MakeNullMove.
func (p *Position) UnmakeNullMove() {
	p.keyHistory = p.keyHistory[:len(p.keyHistory)-1]

	undo := p.undo[len(p.undo)-1]
	p.undo = p.undo[:len(p.undo)-1]

	p.sideToMove = p.sideToMove.Other()
	if p.sideToMove == Black {
		p.fullmoveNumber--
	}

	p.castling = undo.Castling
	p.enPassant = undo.EnPassant
	p.halfmoveClock = undo.HalfmoveClock
	p.key = undo.Key
}

// RepetitionCount returns how many times the current key occurs in the key
// history, the current position included.
func (p *Position) RepetitionCount() int {
	count := 0
	for _, k := range p.keyHistory {
		if k == p.key {
			count++
		}
	}
	return count
}

// HasNonPawnMaterial reports whether the side owns any piece besides pawns
// and the king. Null-move pruning is unsound in pure pawn endgames.
func (p *Position) HasNonPawnMaterial(c Color) bool {
	b := &p.board
	return b.Pieces(c, Knight)|b.Pieces(c, Bishop)|b.Pieces(c, Rook)|b.Pieces(c, Queen) != 0
}

func (p *Position) slideRook(from, to Square) {
	rook := p.board.PieceAt(from)
	p.key ^= ZobristPiece(rook, from)
	p.board.Remove(from)
	p.board.Put(to, rook)
	p.key ^= ZobristPiece(rook, to)
}

func (p *Position) slideRookBack(from, to Square) {
	rook := p.board.Remove(from)
	p.board.Put(to, rook)
}

func (p *Position) setCastling(cr CastlingRights) {
	if cr == p.castling {
		return
	}
	p.key ^= ZobristCastling(p.castling)
	p.castling = cr
	p.key ^= ZobristCastling(p.castling)
}

func (p *Position) setEnPassant(ep Square) {
	if ep == p.enPassant {
		return
	}
	if p.enPassant != NoSquare {
		p.key ^= ZobristEnPassant(p.enPassant)
	}
	p.enPassant = ep
	if p.enPassant != NoSquare {
		p.key ^= ZobristEnPassant(p.enPassant)
	}
}

// computeKey rebuilds the Zobrist key from scratch and resets the key
// history to contain exactly the current key.
func (p *Position) computeKey() {
	key := ZobristCastling(p.castling)
	if p.sideToMove == Black {
		key ^= ZobristSide()
	}
	if p.enPassant != NoSquare {
		key ^= ZobristEnPassant(p.enPassant)
	}
	for sq := A1; sq <= H8; sq++ {
		if piece := p.board.PieceAt(sq); !piece.IsNone() {
			key ^= ZobristPiece(piece, sq)
		}
	}
	p.key = key
	p.keyHistory = p.keyHistory[:0]
	p.keyHistory = append(p.keyHistory, key)
}
