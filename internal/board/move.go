package board

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-13: promotion piece (0=Knight, 1=Bishop, 2=Rook, 3=Queen)
// bits 14-15: flags (0=normal, 1=en passant, 2=castling, 3=promotion)
//
// Castling moves store the rook's origin square in the to field; the king
// and rook destinations are fixed by standard castling geometry.
type Move uint16

const (
	flagsMask  uint16 = 0b1100_0000_0000_0000
	promoFlag  uint16 = flagsMask
	castleFlag uint16 = 0b1000_0000_0000_0000
	epFlag     uint16 = 0b0100_0000_0000_0000
)

// NullMove is the all-zero move.
const NullMove Move = 0

// NewMove creates a normal move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a promotion move. promo must be Knight..Queen.
func NewPromotion(from, to Square, promo Piece) Move {
	return Move(from) | Move(to)<<6 | Move(promo-Knight)<<12 | Move(promoFlag)
}

// NewCastle creates a castling move; to is the rook's origin square.
func NewCastle(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(castleFlag)
}

// NewEnPassant creates an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(epFlag)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square (the rook origin for castling moves).
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Promo returns the promotion piece, or NoPiece if this is not a promotion.
func (m Move) Promo() Piece {
	if uint16(m)&flagsMask != promoFlag {
		return NoPiece
	}
	return Piece((m>>12)&3) + Knight
}

// IsCastling returns true for castling moves.
func (m Move) IsCastling() bool {
	return uint16(m)&flagsMask == castleFlag
}

// IsEnPassant returns true for en passant captures.
func (m Move) IsEnPassant() bool {
	return uint16(m)&flagsMask == epFlag
}

// IsNull returns true for the null move.
func (m Move) IsNull() bool {
	return m == 0
}

// Coords returns the UCI coordinate form of the move (e.g. "e2e4", "e7e8q").
// Castling prints the conventional king destination, not the rook square.
func (m Move) Coords() string {
	if m.IsNull() {
		return "0000"
	}
	if m.IsCastling() {
		castles := [2][2]string{{"e1c1", "e1g1"}, {"e8c8", "e8g8"}}
		black := 0
		if m.From().Rank() == 7 {
			black = 1
		}
		kingside := 0
		if m.To().File() > m.From().File() {
			kingside = 1
		}
		return castles[black][kingside]
	}

	s := m.From().String() + m.To().String()
	if promo := m.Promo(); promo != NoPiece {
		promoChars := [4]byte{'n', 'b', 'r', 'q'}
		s += string(promoChars[promo-Knight])
	}
	return s
}

// MoveListEntry pairs a move with its ordering score.
type MoveListEntry struct {
	Move  Move
	Score int16
}

// maxMoves bounds the number of pseudo-legal moves in any position.
const maxMoves = 218

// MoveList is a fixed-capacity list of scored moves.
type MoveList struct {
	moves [maxMoves]MoveListEntry
	len   int
}

// Push appends a move with score zero.
func (ml *MoveList) Push(m Move) {
	ml.moves[ml.len] = MoveListEntry{Move: m}
	ml.len++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.len
}

// Clear empties the list.
func (ml *MoveList) Clear() {
	ml.len = 0
}

// Entries returns the live entries for scoring.
func (ml *MoveList) Entries() []MoveListEntry {
	return ml.moves[:ml.len]
}

// Get returns the entry at index i without reordering, or false past the end.
func (ml *MoveList) Get(i int) (MoveListEntry, bool) {
	if i >= ml.len {
		return MoveListEntry{}, false
	}
	return ml.moves[i], true
}

// Next selects the highest-scored entry at or after index i, swaps it to
// position i, and returns it. Returns false when the list is exhausted.
// This is a lazy selection sort: only as much ordering work is done as the
// search actually consumes.
func (ml *MoveList) Next(i int) (MoveListEntry, bool) {
	if i >= ml.len {
		return MoveListEntry{}, false
	}
	best := i
	bestScore := ml.moves[i].Score
	for j := i + 1; j < ml.len; j++ {
		if ml.moves[j].Score >= bestScore {
			bestScore = ml.moves[j].Score
			best = j
		}
	}
	ml.moves[i], ml.moves[best] = ml.moves[best], ml.moves[i]
	return ml.moves[i], true
}

// Contains reports whether the list holds the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.len; i++ {
		if ml.moves[i].Move == m {
			return true
		}
	}
	return false
}
