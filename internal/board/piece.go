package board

// Color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// PieceType enumerates the kinds of chess pieces. None is the zero value so
// an empty mailbox slot reads as (White, None).
type PieceType uint8

const (
	None PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// NumPieceTypes counts the real piece types (Pawn..King).
const NumPieceTypes = 6

// Index maps Pawn..King onto 0..5 for array indexing.
func (pt PieceType) Index() int {
	return int(pt) - 1
}

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Piece is a colored piece. The zero value (White, None) is the sentinel
// for an empty square.
type Piece struct {
	Color Color
	Type  PieceType
}

// NoPiece is the empty-square sentinel.
var NoPiece = Piece{White, None}

// IsNone reports whether p is the empty sentinel.
func (p Piece) IsNone() bool {
	return p.Type == None
}

// String returns the FEN character for the piece: uppercase for white,
// lowercase for black, space for the sentinel.
func (p Piece) String() string {
	if p.Type == None {
		return " "
	}
	chars := "PNBRQK"
	ch := chars[p.Type.Index()]
	if p.Color == Black {
		ch += 'a' - 'A'
	}
	return string(ch)
}

// PieceFromChar converts a FEN character to a Piece. Unknown characters
// yield NoPiece.
func PieceFromChar(c byte) Piece {
	var pt PieceType
	switch c {
	case 'P', 'p':
		pt = Pawn
	case 'N', 'n':
		pt = Knight
	case 'B', 'b':
		pt = Bishop
	case 'R', 'r':
		pt = Rook
	case 'Q', 'q':
		pt = Queen
	case 'K', 'k':
		pt = King
	default:
		return NoPiece
	}
	color := White
	if c >= 'a' {
		color = Black
	}
	return Piece{color, pt}
}
