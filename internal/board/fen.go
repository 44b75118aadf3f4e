package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFen is the FEN string for the starting position.
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FromFen parses a FEN string into a Board. The halfmove clock and fullmove
// number default to 0 and 1 when missing; at least four fields are required.
func FromFen(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	b := &Board{FullmoveCount: 1}

	if err := parsePiecePlacement(b, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		b.Player = White
	case "b":
		b.Player = Black
	default:
		return nil, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	if err := parseCastlingRights(b, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant square: %s", parts[3])
		}
		if sq.Rank() != 2 && sq.Rank() != 5 {
			return nil, fmt.Errorf("invalid en passant square: %s", parts[3])
		}
		b.EpMask = SquareBB(sq)
	}

	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 || hmc > 255 {
			return nil, fmt.Errorf("invalid halfmove clock: %s", parts[4])
		}
		b.HalfmoveClock = uint8(hmc)
	}

	if len(parts) > 5 {
		fmc, err := strconv.Atoi(parts[5])
		if err != nil || fmc < 0 {
			return nil, fmt.Errorf("invalid fullmove number: %s", parts[5])
		}
		b.FullmoveCount = uint16(fmc)
	}

	if b.Pieces[White][King].PopCount() != 1 || b.Pieces[Black][King].PopCount() != 1 {
		return nil, fmt.Errorf("invalid FEN: each side needs exactly one king")
	}

	b.Hash = b.RecalculateHash()
	b.PawnHash = b.RecalculatePawnHash()

	return b, nil
}

func parsePiecePlacement(b *Board, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0

		for j := 0; j < len(rankStr); j++ {
			if file > 7 {
				return fmt.Errorf("too many squares in rank %d", rank+1)
			}
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece, color, ok := PieceFromChar(ch)
			if !ok {
				return fmt.Errorf("invalid piece character: %c", ch)
			}
			sq := NewSquare(file, rank)
			b.Pieces[color][piece] |= SquareBB(sq)
			b.Occupied[color] |= SquareBB(sq)
			file++
		}

		if file != 8 {
			return fmt.Errorf("wrong number of squares in rank %d", rank+1)
		}
	}
	return nil
}

// parseCastlingRights installs the rook-square bitboards for K/Q/k/q
// letters. A right is only kept if the king and rook actually stand on
// their home squares.
func parseCastlingRights(b *Board, castling string) error {
	if castling == "-" {
		return nil
	}

	for _, ch := range castling {
		var color Color
		var side int
		var rookSq Square
		switch ch {
		case 'K':
			color, side, rookSq = White, 1, H1
		case 'Q':
			color, side, rookSq = White, 0, A1
		case 'k':
			color, side, rookSq = Black, 1, H8
		case 'q':
			color, side, rookSq = Black, 0, A8
		default:
			return fmt.Errorf("invalid castling character: %c", ch)
		}

		kingHome := E1
		if color == Black {
			kingHome = E8
		}
		if b.Pieces[color][King]&SquareBB(kingHome) != 0 &&
			b.Pieces[color][Rook]&SquareBB(rookSq) != 0 {
			b.Castles[color][side] = SquareBB(rookSq)
		}
	}
	return nil
}

// Fen returns the FEN representation of the position.
func (b *Board) Fen() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			piece, color := b.ColoredPieceOn(sq)
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(piece.Char(color))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if b.Player == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	castles := ""
	if b.Castles[White][1] != 0 {
		castles += "K"
	}
	if b.Castles[White][0] != 0 {
		castles += "Q"
	}
	if b.Castles[Black][1] != 0 {
		castles += "k"
	}
	if b.Castles[Black][0] != 0 {
		castles += "q"
	}
	if castles == "" {
		castles = "-"
	}
	sb.WriteString(castles)

	sb.WriteByte(' ')
	if b.EpMask == 0 {
		sb.WriteByte('-')
	} else {
		sb.WriteString(b.EpMask.First().String())
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(int(b.HalfmoveClock)))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(int(b.FullmoveCount)))

	return sb.String()
}

// MoveFromCoords resolves a UCI coordinate string against the position,
// returning the packed move. King moves of more than one file are folded
// into the castling encoding (to = rook origin square).
func (b *Board) MoveFromCoords(coords string) (Move, error) {
	if len(coords) < 4 {
		return NullMove, fmt.Errorf("invalid move: %s", coords)
	}

	from, err := ParseSquare(coords[0:2])
	if err != nil {
		return NullMove, fmt.Errorf("invalid move: %s", coords)
	}
	to, err := ParseSquare(coords[2:4])
	if err != nil {
		return NullMove, fmt.Errorf("invalid move: %s", coords)
	}

	promo := NoPiece
	if len(coords) >= 5 {
		switch coords[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NullMove, fmt.Errorf("invalid promotion piece: %c", coords[4])
		}
	}

	piece := b.PieceOn(from)
	if piece == King && abs(to.File()-from.File()) > 1 {
		side := 0
		if to.File() > from.File() {
			side = 1
		}
		if b.Castles[b.Player][side] == 0 {
			return NullMove, fmt.Errorf("no castling right for move: %s", coords)
		}
		return NewCastle(from, b.Castles[b.Player][side].First()), nil
	}
	if promo != NoPiece {
		return NewPromotion(from, to, promo), nil
	}
	if piece == Pawn && SquareBB(to) == b.EpMask {
		return NewEnPassant(from, to), nil
	}
	return NewMove(from, to), nil
}
