package board

// Sliding attacks use fancy magic bitboards: the occupancy bits that can
// block a piece are hashed by a per-square multiplier into a dense table
// holding the attack set of every blocker arrangement. The multipliers are
// the standard published constants; the tables around them are rebuilt at
// startup from ray walks.

// slider is one square's magic lookup state.
type slider struct {
	mask    Bitboard   // occupancy bits that can alter the attack set
	magic   uint64     // hash multiplier
	shift   uint8      // 64 - popcount(mask)
	attacks []Bitboard // one entry per subset of mask
}

var (
	bishopSliders [64]slider
	rookSliders   [64]slider
)

var bishopMagicNumbers = [64]uint64{
	0x0002020202020200, 0x0002020202020000, 0x0004010202000000, 0x0004040080000000,
	0x0001104000000000, 0x0000821040000000, 0x0000410410400000, 0x0000104104104000,
	0x0000040404040400, 0x0000020202020200, 0x0000040102020000, 0x0000040400800000,
	0x0000011040000000, 0x0000008210400000, 0x0000004104104000, 0x0000002082082000,
	0x0004000808080800, 0x0002000404040400, 0x0001000202020200, 0x0000800802004000,
	0x0000800400A00000, 0x0000200100884000, 0x0000400082082000, 0x0000200041041000,
	0x0002080010101000, 0x0001040008080800, 0x0000208004010400, 0x0000404004010200,
	0x0000840000802000, 0x0000404002011000, 0x0000808001041000, 0x0000404000820800,
	0x0001041000202000, 0x0000820800101000, 0x0000104400080800, 0x0000020080080080,
	0x0000404040040100, 0x0000808100020100, 0x0001010100020800, 0x0000808080010400,
	0x0000820820004000, 0x0000410410002000, 0x0000082088001000, 0x0000002011000800,
	0x0000080100400400, 0x0001010101000200, 0x0002020202000400, 0x0001010101000200,
	0x0000410410400000, 0x0000208208200000, 0x0000002084100000, 0x0000000020880000,
	0x0000001002020000, 0x0000040408020000, 0x0004040404040000, 0x0002020202020000,
	0x0000104104104000, 0x0000002082082000, 0x0000000020841000, 0x0000000000208800,
	0x0000000010020200, 0x0000000404080200, 0x0000040404040400, 0x0002020202020200,
}

var rookMagicNumbers = [64]uint64{
	0x0080001020400080, 0x0040001000200040, 0x0080081000200080, 0x0080040800100080,
	0x0080020400080080, 0x0080010200040080, 0x0080008001000200, 0x0080002040800100,
	0x0000800020400080, 0x0000400020005000, 0x0000801000200080, 0x0000800800100080,
	0x0000800400080080, 0x0000800200040080, 0x0000800100020080, 0x0000800040800100,
	0x0000208000400080, 0x0000404000201000, 0x0000808010002000, 0x0000808008001000,
	0x0000808004000800, 0x0000808002000400, 0x0000010100020004, 0x0000020000408104,
	0x0000208080004000, 0x0000200040005000, 0x0000100080200080, 0x0000080080100080,
	0x0000040080080080, 0x0000020080040080, 0x0000010080800200, 0x0000800080004100,
	0x0000204000800080, 0x0000200040401000, 0x0000100080802000, 0x0000080080801000,
	0x0000040080800800, 0x0000020080800400, 0x0000020001010004, 0x0000800040800100,
	0x0000204000808000, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000010002008080, 0x0000004081020004,
	0x0000204000800080, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000800100020080, 0x0000800041000080,
	0x00FFFCDDFCED714A, 0x007FFCDDFCED714A, 0x003FFFCDFFD88096, 0x0000040810002101,
	0x0001000204080011, 0x0001000204000801, 0x0001000082000401, 0x0001FFFAABFAD1A2,
}

func init() {
	initSliders(&bishopSliders, &bishopMagicNumbers, diagonalSteps[:])
	initSliders(&rookSliders, &rookMagicNumbers, orthogonalSteps[:])
}

func initSliders(table *[64]slider, magics *[64]uint64, rays []direction) {
	for sq := A1; sq <= H8; sq++ {
		mask := relevantMask(sq, rays)
		s := slider{
			mask:    mask,
			magic:   magics[sq],
			shift:   uint8(64 - mask.PopCount()),
			attacks: make([]Bitboard, 1<<mask.PopCount()),
		}

		// enumerate every subset of the mask (carry-rippler)
		occ := Bitboard(0)
		for {
			s.attacks[(uint64(occ)*s.magic)>>s.shift] = rayAttacks(sq, occ, rays)
			occ = (occ - mask) & mask
			if occ == 0 {
				break
			}
		}

		table[sq] = s
	}
}

// relevantMask holds each ray except its terminal square: a blocker on the
// board edge cannot change what the slider attacks.
func relevantMask(sq Square, rays []direction) Bitboard {
	var mask Bitboard
	for _, d := range rays {
		for to := step(sq, d); to != NoSquare && step(to, d) != NoSquare; to = step(to, d) {
			mask |= SquareBB(to)
		}
	}
	return mask
}

// rayAttacks walks each ray until the edge or a blocker, which is included
// in the attack set. Used only to seed the tables.
func rayAttacks(sq Square, occupied Bitboard, rays []direction) Bitboard {
	var attacks Bitboard
	for _, d := range rays {
		for to := step(sq, d); to != NoSquare; to = step(to, d) {
			attacks |= SquareBB(to)
			if occupied&SquareBB(to) != 0 {
				break
			}
		}
	}
	return attacks
}

// BishopAttacks returns the bishop attack bitboard under the occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	s := &bishopSliders[sq]
	return s.attacks[(uint64(occupied&s.mask)*s.magic)>>s.shift]
}

// RookAttacks returns the rook attack bitboard under the occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	s := &rookSliders[sq]
	return s.attacks[(uint64(occupied&s.mask)*s.magic)>>s.shift]
}

// QueenAttacks returns the queen attack bitboard under the occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}
