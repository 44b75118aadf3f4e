package board

// Perft counts the leaf nodes of the legal move tree at the given depth.
// The standard correctness benchmark for move generation and make-move.
func Perft(b *Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var noisy, quiet MoveList
	b.GenerateMovesInto(&noisy, &quiet)

	var nodes uint64
	for _, list := range [2]*MoveList{&noisy, &quiet} {
		for i := 0; i < list.Len(); i++ {
			entry, _ := list.Get(i)
			next := *b
			if next.MakeMove(entry.Move) {
				if depth == 1 {
					nodes++
				} else {
					nodes += Perft(&next, depth-1)
				}
			}
		}
	}
	return nodes
}

// PerftResult is one line of a perft divide.
type PerftResult struct {
	Move  Move
	Nodes uint64
}

// PerftDivide returns the per-move leaf counts at the given depth, in
// generation order. Used by the `go perft` debug command.
func PerftDivide(b *Board, depth int) []PerftResult {
	var noisy, quiet MoveList
	b.GenerateMovesInto(&noisy, &quiet)

	var results []PerftResult
	for _, list := range [2]*MoveList{&noisy, &quiet} {
		for i := 0; i < list.Len(); i++ {
			entry, _ := list.Get(i)
			next := *b
			if next.MakeMove(entry.Move) {
				results = append(results, PerftResult{entry.Move, Perft(&next, depth-1)})
			}
		}
	}
	return results
}
