package board

// MoveFlag classifies a move.
type MoveFlag uint8

const (
	FlagNormal MoveFlag = iota
	FlagDoublePawn
	FlagEnPassant
	FlagCastleKingside
	FlagCastleQueenside
	FlagPromotion
)

// Move encodes a chess move in 32 bits:
// bits 0-5   from square
// bits 6-11  to square
// bits 12-14 flag
// bits 15-17 promotion piece type (None when flag != FlagPromotion)
//
// The zero value is the null move sentinel.
type Move uint32

// NoMove is the null move.
const NoMove Move = 0

// NewMove creates a normal move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewDoublePawnMove creates a two-square pawn push.
func NewDoublePawnMove(from, to Square) Move {
	return NewMove(from, to) | Move(FlagDoublePawn)<<12
}

// NewEnPassantMove creates an en passant capture.
func NewEnPassantMove(from, to Square) Move {
	return NewMove(from, to) | Move(FlagEnPassant)<<12
}

// NewCastlingMove creates a castling move from the king's travel. The side
// of the castle is derived from the direction of the king step.
func NewCastlingMove(from, to Square) Move {
	flag := FlagCastleQueenside
	if to > from {
		flag = FlagCastleKingside
	}
	return NewMove(from, to) | Move(flag)<<12
}

// NewPromotionMove creates a promotion to the given piece type.
func NewPromotionMove(from, to Square, promo PieceType) Move {
	return NewMove(from, to) | Move(FlagPromotion)<<12 | Move(promo)<<15
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Flag returns the move classification.
func (m Move) Flag() MoveFlag {
	return MoveFlag((m >> 12) & 7)
}

// Promotion returns the promotion piece type (None unless flag is
// FlagPromotion).
func (m Move) Promotion() PieceType {
	return PieceType((m >> 15) & 7)
}

// IsPromotion reports whether this is a promotion.
func (m Move) IsPromotion() bool {
	return m.Flag() == FlagPromotion
}

// IsEnPassant reports whether this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == FlagEnPassant
}

// IsCastling reports whether this is a castling move of either side.
func (m Move) IsCastling() bool {
	f := m.Flag()
	return f == FlagCastleKingside || f == FlagCastleQueenside
}

// String returns the UCI long-algebraic form ("e2e4", "e7e8q"). The null
// move renders as the empty string.
func (m Move) String() string {
	if m == NoMove {
		return ""
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		switch m.Promotion() {
		case Knight:
			s += "n"
		case Bishop:
			s += "b"
		case Rook:
			s += "r"
		case Queen:
			s += "q"
		}
	}
	return s
}

// ParseMove resolves a UCI move string against the legal moves of pos. The
// string alone does not say whether "e1g1" castles or "e5d6" captures en
// passant, so the move is matched by origin, destination and promotion
// piece among the legal moves.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return NoMove, &ParseError{Msg: "invalid move", Input: s}
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, &ParseError{Msg: "invalid move", Input: s}
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, &ParseError{Msg: "invalid move", Input: s}
	}
	promo := None
	if len(s) == 5 {
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, &ParseError{Msg: "invalid promotion piece", Input: s}
		}
	}

	legal := pos.GenerateLegalMoves()
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		if m.From() == from && m.To() == to && m.Promotion() == promo {
			return m, nil
		}
	}
	return NoMove, &ParseError{Msg: "illegal move", Input: s}
}

// MoveList is a fixed-capacity move container. 256 covers the theoretical
// maximum of 218 pseudo-legal moves in any position.
type MoveList struct {
	moves [256]Move
	count int
}

// Add appends a move.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Swap exchanges two moves.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear empties the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Slice returns the populated moves.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// UndoInfo snapshots the irreversible parts of a position before a move so
// UnmakeMove can restore them.
type UndoInfo struct {
	Castling      CastlingRights
	EnPassant     Square
	HalfmoveClock int
	Captured      Piece // NoPiece when nothing was taken
	Key           uint64
}
