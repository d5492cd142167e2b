package board

// GeneratePseudoLegalMoves produces every move that respects piece
// geometry. Moves that leave the mover's own king in check are included;
// GenerateLegalMoves filters those out.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := &MoveList{}
	p.genPawnMoves(ml)
	p.genPieceMoves(ml, Knight)
	p.genPieceMoves(ml, Bishop)
	p.genPieceMoves(ml, Rook)
	p.genPieceMoves(ml, Queen)
	p.genPieceMoves(ml, King)
	p.genCastling(ml)
	return ml
}

// GenerateLegalMoves filters the pseudo-legal moves by make/unmake: a move
// is legal iff the mover's king is not attacked afterwards.
func (p *Position) GenerateLegalMoves() *MoveList {
	pseudo := p.GeneratePseudoLegalMoves()
	result := &MoveList{}
	us := p.sideToMove

	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		p.MakeMove(m)
		if !p.IsInCheck(us) {
			result.Add(m)
		}
		p.UnmakeMove(m)
	}
	return result
}

// GenerateCaptures produces the pseudo-legal tactical moves for quiescence:
// captures of every kind (en passant included) and all promotions,
// non-capture promotions too, with underpromotions.
func (p *Position) GenerateCaptures() *MoveList {
	ml := &MoveList{}
	us := p.sideToMove
	b := &p.board
	enemy := b.Occupied(us.Other())
	occ := b.OccupiedAll()

	p.genPawnCaptures(ml)

	for _, pt := range [5]PieceType{Knight, Bishop, Rook, Queen, King} {
		pieces := b.Pieces(us, pt)
		for pieces != 0 {
			from := pieces.PopLSB()
			attacks := pieceAttacks(pt, from, occ) & enemy
			for attacks != 0 {
				ml.Add(NewMove(from, attacks.PopLSB()))
			}
		}
	}
	return ml
}

func pieceAttacks(pt PieceType, from Square, occ Bitboard) Bitboard {
	switch pt {
	case Knight:
		return KnightAttacks(from)
	case Bishop:
		return BishopAttacks(from, occ)
	case Rook:
		return RookAttacks(from, occ)
	case Queen:
		return QueenAttacks(from, occ)
	case King:
		return KingAttacks(from)
	}
	return EmptyBB
}

// Promotion expansion order: queen first, knight last.
func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotionMove(from, to, Queen))
	ml.Add(NewPromotionMove(from, to, Rook))
	ml.Add(NewPromotionMove(from, to, Bishop))
	ml.Add(NewPromotionMove(from, to, Knight))
}

func (p *Position) genPawnMoves(ml *MoveList) {
	us := p.sideToMove
	b := &p.board
	pawns := b.Pieces(us, Pawn)
	empty := ^b.OccupiedAll()
	enemy := b.Occupied(us.Other())

	var single, dbl, capL, capR, promoRank Bitboard
	if us == White {
		single = pawns.North() & empty
		dbl = (single & Rank3).North() & empty
		capL = pawns.NorthWest() & enemy
		capR = pawns.NorthEast() & enemy
		promoRank = Rank8
	} else {
		single = pawns.South() & empty
		dbl = (single & Rank6).South() & empty
		capL = pawns.SouthWest() & enemy
		capR = pawns.SouthEast() & enemy
		promoRank = Rank1
	}

	// Per-target origin offsets. White pushes come from 8 below, NW
	// captures from 7 below, NE from 9 below; mirrored for black.
	push, left, right := -8, -7, -9
	if us == Black {
		push, left, right = 8, 9, 7
	}

	np := single &^ promoRank
	for np != 0 {
		to := np.PopLSB()
		ml.Add(NewMove(Square(int(to)+push), to))
	}
	pp := single & promoRank
	for pp != 0 {
		to := pp.PopLSB()
		addPromotions(ml, Square(int(to)+push), to)
	}

	for dbl != 0 {
		to := dbl.PopLSB()
		ml.Add(NewDoublePawnMove(Square(int(to)+2*push), to))
	}

	ncL := capL &^ promoRank
	for ncL != 0 {
		to := ncL.PopLSB()
		ml.Add(NewMove(Square(int(to)+left), to))
	}
	pcL := capL & promoRank
	for pcL != 0 {
		to := pcL.PopLSB()
		addPromotions(ml, Square(int(to)+left), to)
	}

	ncR := capR &^ promoRank
	for ncR != 0 {
		to := ncR.PopLSB()
		ml.Add(NewMove(Square(int(to)+right), to))
	}
	pcR := capR & promoRank
	for pcR != 0 {
		to := pcR.PopLSB()
		addPromotions(ml, Square(int(to)+right), to)
	}

	p.genEnPassant(ml, pawns)
}

func (p *Position) genEnPassant(ml *MoveList, pawns Bitboard) {
	if p.enPassant == NoSquare {
		return
	}
	// Our pawns that attack the EP target are exactly the pawns sitting on
	// the squares an enemy pawn on the target would attack.
	attackers := PawnAttacks(p.sideToMove.Other(), p.enPassant) & pawns
	for attackers != 0 {
		ml.Add(NewEnPassantMove(attackers.PopLSB(), p.enPassant))
	}
}

func (p *Position) genPieceMoves(ml *MoveList, pt PieceType) {
	us := p.sideToMove
	b := &p.board
	friendly := b.Occupied(us)
	occ := b.OccupiedAll()

	pieces := b.Pieces(us, pt)
	for pieces != 0 {
		from := pieces.PopLSB()
		attacks := pieceAttacks(pt, from, occ) &^ friendly
		for attacks != 0 {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}
}

// genCastling emits a castle when the right survives, the squares between
// king and rook are empty, the king is not in check, and the squares the
// king crosses are not attacked. Whether the king's landing square is safe
// is left to the legality filter, like every other move.
func (p *Position) genCastling(ml *MoveList) {
	us := p.sideToMove
	them := us.Other()
	b := &p.board
	kingSq := b.KingSquare(us)

	rank := 0
	ks, qs := WhiteKingside, WhiteQueenside
	if us == Black {
		rank = 7
		ks, qs = BlackKingside, BlackQueenside
	}

	if p.castling&(ks|qs) == 0 || p.IsSquareAttacked(kingSq, them) {
		return
	}

	if p.castling&ks != 0 {
		f, g := NewSquare(5, rank), NewSquare(6, rank)
		if b.IsEmpty(f) && b.IsEmpty(g) && !p.IsSquareAttacked(f, them) {
			ml.Add(NewCastlingMove(kingSq, g))
		}
	}

	if p.castling&qs != 0 {
		bSq, c, d := NewSquare(1, rank), NewSquare(2, rank), NewSquare(3, rank)
		if b.IsEmpty(bSq) && b.IsEmpty(c) && b.IsEmpty(d) &&
			!p.IsSquareAttacked(c, them) && !p.IsSquareAttacked(d, them) {
			ml.Add(NewCastlingMove(kingSq, c))
		}
	}
}

func (p *Position) genPawnCaptures(ml *MoveList) {
	us := p.sideToMove
	b := &p.board
	pawns := b.Pieces(us, Pawn)
	empty := ^b.OccupiedAll()
	enemy := b.Occupied(us.Other())

	var capL, capR, promoPush, promoRank Bitboard
	if us == White {
		capL = pawns.NorthWest() & enemy
		capR = pawns.NorthEast() & enemy
		promoRank = Rank8
		promoPush = pawns.North() & empty & promoRank
	} else {
		capL = pawns.SouthWest() & enemy
		capR = pawns.SouthEast() & enemy
		promoRank = Rank1
		promoPush = pawns.South() & empty & promoRank
	}

	push, left, right := -8, -7, -9
	if us == Black {
		push, left, right = 8, 9, 7
	}

	for capL != 0 {
		to := capL.PopLSB()
		from := Square(int(to) + left)
		if SquareBB(to)&promoRank != 0 {
			addPromotions(ml, from, to)
		} else {
			ml.Add(NewMove(from, to))
		}
	}
	for capR != 0 {
		to := capR.PopLSB()
		from := Square(int(to) + right)
		if SquareBB(to)&promoRank != 0 {
			addPromotions(ml, from, to)
		} else {
			ml.Add(NewMove(from, to))
		}
	}

	// Quiet promotions are tactically noisy and belong in quiescence.
	for promoPush != 0 {
		to := promoPush.PopLSB()
		addPromotions(ml, Square(int(to)+push), to)
	}

	p.genEnPassant(ml, pawns)
}

// Perft counts leaf nodes of the legal move tree to the given depth, with
// bulk counting at depth 1. It is the oracle that certifies the generator
// against the published node counts.
func Perft(p *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		p.MakeMove(m)
		nodes += Perft(p, depth-1)
		p.UnmakeMove(m)
	}
	return nodes
}
