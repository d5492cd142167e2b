package board

// Magic bitboards answer slider attack queries with one multiply and one
// shift per lookup. Unlike engines that ship hardcoded multiplier tables,
// the magic numbers are searched at init time with a sparse PRNG, which
// keeps the scheme correct for any square indexing.

type magicEntry struct {
	mask   Bitboard // relevant occupancy mask (edges along each ray excluded)
	magic  uint64
	shift  uint8
	offset uint32 // start of this square's span in the flat attack table
}

var (
	bishopMagics [64]magicEntry
	rookMagics   [64]magicEntry

	bishopTable []Bitboard
	rookTable   []Bitboard
)

// magicRng is the xorshift64* generator used only for the magic search.
type magicRng struct {
	state uint64
}

func (r *magicRng) next() uint64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return r.state * 0x2545F4914F6CDD1D
}

// sparse returns a candidate with few bits set; dense multipliers almost
// never produce a collision-free index.
func (r *magicRng) sparse() uint64 {
	return r.next() & r.next() & r.next()
}

func initMagics() {
	rng := &magicRng{state: 0x12345678ABCDEF01}
	bishopTable = initMagicTable(bishopMagics[:], false, rng)
	rookTable = initMagicTable(rookMagics[:], true, rng)
}

func initMagicTable(entries []magicEntry, isRook bool, rng *magicRng) []Bitboard {
	var table []Bitboard
	var offset uint32

	for sq := A1; sq <= H8; sq++ {
		mask := bishopMask(sq)
		if isRook {
			mask = rookMask(sq)
		}
		bits := mask.PopCount()

		occs, atks := enumerateSubsets(sq, mask, isRook)

		magic := findMagic(bits, mask, occs, atks, rng)
		if magic == 0 {
			panic("board: no magic number found for " + sq.String())
		}

		entries[sq] = magicEntry{
			mask:   mask,
			magic:  magic,
			shift:  uint8(64 - bits),
			offset: offset,
		}

		span := make([]Bitboard, 1<<bits)
		for i, occ := range occs {
			idx := (uint64(occ) * magic) >> (64 - bits)
			span[idx] = atks[i]
		}
		table = append(table, span...)
		offset += uint32(len(span))
	}
	return table
}

// enumerateSubsets walks every subset of mask with the Carry-Rippler trick
// and pairs it with the ray-traced reference attack set.
func enumerateSubsets(sq Square, mask Bitboard, isRook bool) (occs, atks []Bitboard) {
	n := 1 << mask.PopCount()
	occs = make([]Bitboard, 0, n)
	atks = make([]Bitboard, 0, n)

	sub := EmptyBB
	for {
		occs = append(occs, sub)
		if isRook {
			atks = append(atks, rookAttacksSlow(sq, sub))
		} else {
			atks = append(atks, bishopAttacksSlow(sq, sub))
		}
		sub = (sub - mask) & mask
		if sub == 0 {
			break
		}
	}
	return occs, atks
}

// findMagic searches for a multiplier that maps every occupancy subset to a
// slot holding its attack set. Collisions between subsets with identical
// attack sets are constructive and allowed.
func findMagic(bits int, mask Bitboard, occs, atks []Bitboard, rng *magicRng) uint64 {
	size := 1 << bits
	used := make([]Bitboard, size)
	filled := make([]bool, size)

	for attempt := 0; attempt < 100_000_000; attempt++ {
		magic := rng.sparse()

		// Quick reject: the index comes from the top bits of mask*magic,
		// so a candidate whose top byte is too sparse cannot separate the
		// subsets.
		if Bitboard((uint64(mask) * magic) & 0xFF00000000000000).PopCount() < 6 {
			continue
		}

		for i := range filled {
			filled[i] = false
		}

		ok := true
		for i, occ := range occs {
			idx := (uint64(occ) * magic) >> (64 - bits)
			if !filled[idx] {
				filled[idx] = true
				used[idx] = atks[i]
			} else if used[idx] != atks[i] {
				ok = false
				break
			}
		}
		if ok {
			return magic
		}
	}
	return 0
}

// bishopMask is the relevant occupancy mask for a bishop: the diagonal rays
// excluding the board edge, since an edge blocker changes nothing.
func bishopMask(sq Square) Bitboard {
	mask := EmptyBB
	f0, r0 := sq.File(), sq.Rank()
	dirs := [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	for _, d := range dirs {
		f, r := f0+d[0], r0+d[1]
		for f > 0 && f < 7 && r > 0 && r < 7 {
			mask |= SquareBB(NewSquare(f, r))
			f += d[0]
			r += d[1]
		}
	}
	return mask
}

// rookMask is the relevant occupancy mask for a rook.
func rookMask(sq Square) Bitboard {
	mask := EmptyBB
	f0, r0 := sq.File(), sq.Rank()
	for f := f0 + 1; f < 7; f++ {
		mask |= SquareBB(NewSquare(f, r0))
	}
	for f := f0 - 1; f > 0; f-- {
		mask |= SquareBB(NewSquare(f, r0))
	}
	for r := r0 + 1; r < 7; r++ {
		mask |= SquareBB(NewSquare(f0, r))
	}
	for r := r0 - 1; r > 0; r-- {
		mask |= SquareBB(NewSquare(f0, r))
	}
	return mask
}

// rayAttacks traces one ray until the edge or the first blocker, inclusive.
func rayAttacks(sq Square, occupied Bitboard, df, dr int) Bitboard {
	attacks := EmptyBB
	f, r := sq.File()+df, sq.Rank()+dr
	for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
		s := NewSquare(f, r)
		attacks |= SquareBB(s)
		if occupied.IsSet(s) {
			break
		}
		f += df
		r += dr
	}
	return attacks
}

func bishopAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(sq, occupied, 1, 1) | rayAttacks(sq, occupied, 1, -1) |
		rayAttacks(sq, occupied, -1, 1) | rayAttacks(sq, occupied, -1, -1)
}

func rookAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(sq, occupied, 1, 0) | rayAttacks(sq, occupied, -1, 0) |
		rayAttacks(sq, occupied, 0, 1) | rayAttacks(sq, occupied, 0, -1)
}
