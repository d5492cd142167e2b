package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseError reports a malformed position or move descriptor. Input holds
// the offending substring.
type ParseError struct {
	Msg   string
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", e.Msg, e.Input)
}

// ParseFEN parses a 4- to 6-field position descriptor. The halfmove clock
// and fullmove number default to 0 and 1 when absent.
func ParseFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, &ParseError{Msg: "need 4-6 FEN fields", Input: fen}
	}

	p := NewPosition()

	if err := parsePlacement(p, fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		return nil, &ParseError{Msg: "invalid side to move", Input: fields[1]}
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				p.castling |= WhiteKingside
			case 'Q':
				p.castling |= WhiteQueenside
			case 'k':
				p.castling |= BlackKingside
			case 'q':
				p.castling |= BlackQueenside
			default:
				return nil, &ParseError{Msg: "invalid castling character", Input: fields[2]}
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return nil, &ParseError{Msg: "invalid en passant square", Input: fields[3]}
		}
		p.enPassant = sq
	}

	if len(fields) > 4 {
		hmc, err := strconv.Atoi(fields[4])
		if err != nil || hmc < 0 {
			return nil, &ParseError{Msg: "invalid halfmove clock", Input: fields[4]}
		}
		p.halfmoveClock = hmc
	}

	if len(fields) > 5 {
		fmn, err := strconv.Atoi(fields[5])
		if err != nil || fmn < 1 {
			return nil, &ParseError{Msg: "invalid fullmove number", Input: fields[5]}
		}
		p.fullmoveNumber = fmn
	}

	p.computeKey()
	return p, nil
}

func parsePlacement(p *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return &ParseError{Msg: "need 8 ranks", Input: placement}
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN lists rank 8 first
		file := 0
		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				if file > 8 {
					return &ParseError{Msg: "rank too wide", Input: rankStr}
				}
				continue
			}
			piece := PieceFromChar(c)
			if piece.IsNone() {
				return &ParseError{Msg: "invalid piece character", Input: string(c)}
			}
			if file > 7 {
				return &ParseError{Msg: "rank too wide", Input: rankStr}
			}
			p.board.Put(NewSquare(file, rank), piece)
			file++
		}
		if file != 8 {
			return &ParseError{Msg: "rank too narrow", Input: rankStr}
		}
	}
	return nil
}

// FEN serializes the position canonically: empty runs collapse to a single
// digit, "-" for empty castling rights or absent en passant, and both
// clocks always emitted.
func (p *Position) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.board.PieceAt(NewSquare(file, rank))
			if piece.IsNone() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.castling.String())

	sb.WriteByte(' ')
	sb.WriteString(p.enPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfmoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullmoveNumber))

	return sb.String()
}

// String renders the board as a diagram plus the scalar state.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.board.PieceAt(NewSquare(file, rank))
			if piece.IsNone() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "FEN: %s\n", p.FEN())
	fmt.Fprintf(&sb, "Key: %016x\n", p.key)
	return sb.String()
}
