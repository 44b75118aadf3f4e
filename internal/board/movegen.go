package board

// GenerateMovesInto emits all pseudo-legal moves for the side to move,
// split into noisy moves (captures, en passant, all promotions) and quiet
// moves (everything else, including castling). Legality is decided later by
// the make-move trial.
func (b *Board) GenerateMovesInto(noisy, quiet *MoveList) {
	noisy.Clear()
	quiet.Clear()

	b.generatePawnMovesInto(noisy, quiet)
	b.generatePieceMovesInto(noisy, quiet)
	b.generateKingMovesInto(noisy, quiet)
	if b.Castles[b.Player] != [2]Bitboard{} {
		b.generateCastlesInto(quiet)
	}
}

func (b *Board) generatePawnMovesInto(noisy, quiet *MoveList) {
	us := b.Player
	pawns := b.Pieces[us][Pawn]
	occupied := b.AllPieces()
	empty := ^occupied
	enemies := b.Occupied[us.Other()]

	var push1, push2, attackW, attackE Bitboard
	var promoRank Bitboard
	var pushDir int

	if us == White {
		push1 = pawns.North() & empty
		push2 = (push1 & Rank3).North() & empty
		attackW = pawns.NorthWest() & (enemies | b.EpMask)
		attackE = pawns.NorthEast() & (enemies | b.EpMask)
		promoRank = Rank8
		pushDir = 8
	} else {
		push1 = pawns.South() & empty
		push2 = (push1 & Rank6).South() & empty
		attackW = pawns.SouthWest() & (enemies | b.EpMask)
		attackE = pawns.SouthEast() & (enemies | b.EpMask)
		promoRank = Rank1
		pushDir = -8
	}

	emit := func(from, to Square) {
		switch {
		case SquareBB(to)&promoRank != 0:
			noisy.Push(NewPromotion(from, to, Queen))
			noisy.Push(NewPromotion(from, to, Rook))
			noisy.Push(NewPromotion(from, to, Bishop))
			noisy.Push(NewPromotion(from, to, Knight))
		case SquareBB(to) == b.EpMask:
			noisy.Push(NewEnPassant(from, to))
		case b.enemyOn(to):
			noisy.Push(NewMove(from, to))
		default:
			quiet.Push(NewMove(from, to))
		}
	}

	for push1 != 0 {
		to := push1.PopFirst()
		emit(Square(int(to)-pushDir), to)
	}
	for push2 != 0 {
		to := push2.PopFirst()
		quiet.Push(NewMove(Square(int(to)-2*pushDir), to))
	}
	for attackW != 0 {
		to := attackW.PopFirst()
		emit(Square(int(to)-pushDir+1), to)
	}
	for attackE != 0 {
		to := attackE.PopFirst()
		emit(Square(int(to)-pushDir-1), to)
	}
}

func (b *Board) generatePieceMovesInto(noisy, quiet *MoveList) {
	us := b.Player
	friendlies := b.Occupied[us]
	occupied := b.AllPieces()

	emit := func(from Square, attacks Bitboard) {
		for attacks != 0 {
			to := attacks.PopFirst()
			if b.enemyOn(to) {
				noisy.Push(NewMove(from, to))
			} else {
				quiet.Push(NewMove(from, to))
			}
		}
	}

	for pieces := b.Pieces[us][Knight]; pieces != 0; {
		from := pieces.PopFirst()
		emit(from, KnightAttacks(from)&^friendlies)
	}
	for pieces := b.Pieces[us][Bishop]; pieces != 0; {
		from := pieces.PopFirst()
		emit(from, BishopAttacks(from, occupied)&^friendlies)
	}
	for pieces := b.Pieces[us][Rook]; pieces != 0; {
		from := pieces.PopFirst()
		emit(from, RookAttacks(from, occupied)&^friendlies)
	}
	for pieces := b.Pieces[us][Queen]; pieces != 0; {
		from := pieces.PopFirst()
		emit(from, QueenAttacks(from, occupied)&^friendlies)
	}
}

func (b *Board) generateKingMovesInto(noisy, quiet *MoveList) {
	us := b.Player
	from := b.KingSquare(us)
	attacks := KingAttacks(from) &^ b.Occupied[us]
	for attacks != 0 {
		to := attacks.PopFirst()
		if b.enemyOn(to) {
			noisy.Push(NewMove(from, to))
		} else {
			quiet.Push(NewMove(from, to))
		}
	}
}

// generateCastlesInto emits castling moves: the king must not be in check,
// the squares between king and rook must be empty, and the squares the king
// crosses must be empty and unattacked. The king's arrival square is
// re-checked by the make-move trial.
func (b *Board) generateCastlesInto(quiet *MoveList) {
	us := b.Player
	enemyAttacks := b.AllAttacks(us.Other())
	from := b.KingSquare(us)

	if enemyAttacks&SquareBB(from) != 0 {
		return
	}

	occupied := b.AllPieces()
	for side := 0; side < 2; side++ {
		castle := b.Castles[us][side]
		if castle == 0 {
			continue
		}
		rookFrom := castle.First()
		if Between(from, rookFrom)&occupied != 0 {
			continue
		}
		target := castleKingTargets[us][side]
		if Between(from, target)&(occupied|enemyAttacks) != 0 {
			continue
		}
		quiet.Push(NewCastle(from, rookFrom))
	}
}

// LegalMoves returns the legal moves of the position, determined by the
// make-move trial on a copy of the board.
func (b *Board) LegalMoves() []Move {
	var noisy, quiet MoveList
	b.GenerateMovesInto(&noisy, &quiet)

	legals := make([]Move, 0, noisy.Len()+quiet.Len())
	for _, list := range [2]*MoveList{&noisy, &quiet} {
		for i := 0; i < list.Len(); i++ {
			entry, _ := list.Get(i)
			next := *b
			if next.MakeMove(entry.Move) {
				legals = append(legals, entry.Move)
			}
		}
	}
	return legals
}
