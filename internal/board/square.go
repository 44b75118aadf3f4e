// Package board implements the chess position using bitboards.
package board

import "fmt"

// Square indexes a board square, a1 = 0 through h8 = 63, files running
// faster than ranks.
type Square uint8

// NoSquare is the off-board sentinel.
const NoSquare Square = 64

// Named squares, one rank per row.
const (
	A1, B1, C1, D1, E1, F1, G1, H1 Square = 0, 1, 2, 3, 4, 5, 6, 7
	A2, B2, C2, D2, E2, F2, G2, H2 Square = 8, 9, 10, 11, 12, 13, 14, 15
	A3, B3, C3, D3, E3, F3, G3, H3 Square = 16, 17, 18, 19, 20, 21, 22, 23
	A4, B4, C4, D4, E4, F4, G4, H4 Square = 24, 25, 26, 27, 28, 29, 30, 31
	A5, B5, C5, D5, E5, F5, G5, H5 Square = 32, 33, 34, 35, 36, 37, 38, 39
	A6, B6, C6, D6, E6, F6, G6, H6 Square = 40, 41, 42, 43, 44, 45, 46, 47
	A7, B7, C7, D7, E7, F7, G7, H7 Square = 48, 49, 50, 51, 52, 53, 54, 55
	A8, B8, C8, D8, E8, F8, G8, H8 Square = 56, 57, 58, 59, 60, 61, 62, 63
)

// NewSquare builds a square from 0-indexed file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank<<3 | file)
}

// ParseSquare reads coordinate notation ("e4").
func ParseSquare(s string) (Square, error) {
	if len(s) == 2 && s[0] >= 'a' && s[0] <= 'h' && s[1] >= '1' && s[1] <= '8' {
		return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
	}
	return NoSquare, fmt.Errorf("invalid square: %s", s)
}

// File is the square's column, 0 = file a.
func (sq Square) File() int {
	return int(sq) % 8
}

// Rank is the square's row, 0 = rank 1.
func (sq Square) Rank() int {
	return int(sq) / 8
}

// IsValid reports whether the square lies on the board.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// String is the coordinate notation of the square.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}
