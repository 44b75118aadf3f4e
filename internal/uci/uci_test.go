package uci

import (
	"testing"

	"github.com/pelicanchess/pelican/internal/board"
	"github.com/pelicanchess/pelican/internal/engine"
)

func newTestDriver() *Driver {
	options := engine.DefaultOptions()
	options.Hash = 1
	return NewDriver(options, nil)
}

func TestDriverPosition(t *testing.T) {
	d := newTestDriver()

	d.dispatch(CmdPosition{Moves: []string{"e2e4", "e7e5", "g1f3"}})

	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
	if got := d.board.Fen(); got != want {
		t.Errorf("fen = %q, want %q", got, want)
	}
	if len(d.prehistory) != 3 {
		t.Errorf("prehistory holds %d hashes, want 3", len(d.prehistory))
	}
	if d.prehistory[0] != board.New().Hash {
		t.Error("first prehistory entry should be the start position hash")
	}
}

func TestDriverPositionIllegalMoveStops(t *testing.T) {
	d := newTestDriver()

	// the rook lift is illegal; the pawn move before it must stick
	d.dispatch(CmdPosition{Moves: []string{"e2e4", "a1a5", "e7e5"}})

	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	if got := d.board.Fen(); got != want {
		t.Errorf("fen = %q, want %q", got, want)
	}
	if len(d.prehistory) != 1 {
		t.Errorf("prehistory holds %d hashes, want 1", len(d.prehistory))
	}
}

func TestDriverPositionFromFen(t *testing.T) {
	d := newTestDriver()

	fen := "4k3/8/8/8/8/8/R7/4K2R w K - 0 1"
	d.dispatch(CmdPosition{StartFen: fen})

	if got := d.board.Fen(); got != fen {
		t.Errorf("fen = %q, want %q", got, fen)
	}
}

func TestDriverSetOption(t *testing.T) {
	d := newTestDriver()

	d.dispatch(CmdSetOption{Name: "Threads", Value: "3"})
	if d.options.Threads != 3 {
		t.Errorf("threads = %d, want 3", d.options.Threads)
	}
	if len(d.threads) != 3 {
		t.Errorf("thread data count = %d, want 3", len(d.threads))
	}

	// out of range: untouched
	d.dispatch(CmdSetOption{Name: "Threads", Value: "0"})
	if d.options.Threads != 3 {
		t.Errorf("threads changed to %d on an invalid set", d.options.Threads)
	}
}

func TestDriverNewGameResets(t *testing.T) {
	d := newTestDriver()

	d.dispatch(CmdPosition{Moves: []string{"e2e4"}})
	d.dispatch(CmdUciNewGame{})

	if d.board.Fen() != board.StartFen {
		t.Errorf("board not reset: %s", d.board.Fen())
	}
	if len(d.prehistory) != 0 {
		t.Error("prehistory not cleared")
	}
}
