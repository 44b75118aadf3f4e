package uci

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/op/go-logging"

	"github.com/pelicanchess/pelican/internal/board"
	"github.com/pelicanchess/pelican/internal/engine"
	"github.com/pelicanchess/pelican/internal/nnue"
	"github.com/pelicanchess/pelican/internal/storage"
)

var log = logging.MustGetLogger("uci")

// Name and Version identify the engine in the uci handshake.
const (
	Name    = "Pelican"
	Version = "1.0"
	Author  = "the Pelican authors"
)

// Driver owns the engine state and executes parsed commands. Searches run
// on their own goroutine; the driver keeps reading so stop and quit are
// observed while thinking.
type Driver struct {
	board      *board.Board
	prehistory []uint64

	options engine.SearchOptions
	tt      *engine.TT
	threads []*engine.ThreadData

	stopped     atomic.Bool
	globalNodes atomic.Uint64
	searchDone  chan struct{}

	// store persists option values between runs; nil disables persistence.
	store *storage.Store
}

// NewDriver builds a driver with the given starting options.
func NewDriver(options engine.SearchOptions, store *storage.Store) *Driver {
	d := &Driver{
		board:   board.New(),
		options: options,
		store:   store,
	}
	d.tt = engine.NewTT(d.options.Hash)
	d.rebuildThreads()
	return d
}

func (d *Driver) rebuildThreads() {
	d.threads = make([]*engine.ThreadData, d.options.Threads)
	for i := range d.threads {
		d.threads[i] = engine.NewThreadData(d.tt)
	}
}

// Run executes commands until quit or end of input.
func (d *Driver) Run(lines <-chan string) {
	for line := range lines {
		cmd, err := Parse(line)
		if err != nil {
			if !errors.Is(err, ErrEmptyCommand) {
				fmt.Printf("info string %v\n", err)
			}
			continue
		}

		if d.dispatch(cmd) {
			return
		}
	}
	// stdin closed: behave as if quit arrived
	d.stopAndWait()
}

// dispatch runs one command; returns true on quit.
func (d *Driver) dispatch(cmd Command) bool {
	switch c := cmd.(type) {
	case CmdUci:
		fmt.Printf("id name %s %s\n", Name, Version)
		fmt.Printf("id author %s\n", Author)
		for _, line := range d.options.OptionLines() {
			fmt.Println(line)
		}
		fmt.Println("uciok")

	case CmdIsReady:
		fmt.Println("readyok")

	case CmdUciNewGame:
		d.stopAndWait()
		d.tt.Clear()
		for _, t := range d.threads {
			t.NewGame()
		}
		d.board = board.New()
		d.prehistory = d.prehistory[:0]

	case CmdPosition:
		d.stopAndWait()
		d.handlePosition(c)

	case CmdGo:
		if d.searching() {
			fmt.Println("info string search already running")
			break
		}
		d.handleGo(c.Go)

	case CmdSetOption:
		d.stopAndWait()
		d.handleSetOption(c)

	case CmdStop:
		d.stopAndWait()

	case CmdFen:
		fmt.Println(d.board.Fen())

	case CmdEval:
		d.handleEval()

	case CmdQuit:
		d.stopAndWait()
		return true
	}

	return false
}

// searching reports whether a search goroutine is still running, clearing
// the done channel once it has finished on its own.
func (d *Driver) searching() bool {
	if d.searchDone == nil {
		return false
	}
	select {
	case <-d.searchDone:
		d.searchDone = nil
		return false
	default:
		return true
	}
}

// stopAndWait cancels a running search and blocks until its goroutine has
// printed bestmove and exited.
func (d *Driver) stopAndWait() {
	if d.searchDone == nil {
		return
	}
	d.stopped.Store(true)
	<-d.searchDone
	d.searchDone = nil
}

func (d *Driver) handlePosition(c CmdPosition) {
	var b *board.Board
	if c.StartFen == "" {
		b = board.New()
	} else {
		parsed, err := board.FromFen(c.StartFen)
		if err != nil {
			// the parser validated the FEN already, but stay safe
			fmt.Printf("info string %v\n", ErrInvalidFen)
			return
		}
		b = parsed
	}

	prehistory := make([]uint64, 0, len(c.Moves))
	for _, coords := range c.Moves {
		mv, err := b.MoveFromCoords(coords)
		if err != nil {
			fmt.Printf("info string Illegal move: %s\n", coords)
			break
		}
		if !b.IsPseudolegal(mv) {
			fmt.Printf("info string Illegal move: %s\n", coords)
			break
		}
		next := *b
		prev := b.Hash
		if !next.MakeMove(mv) {
			fmt.Printf("info string Illegal move: %s\n", coords)
			break
		}
		prehistory = append(prehistory, prev)
		*b = next
	}

	d.board = b
	d.prehistory = prehistory
}

func (d *Driver) handleGo(g GoCommand) {
	if g.Perft != nil {
		d.handlePerft(*g.Perft)
		return
	}

	tm := engine.NewTimeManager(time.Now())

	if g.WTime != nil || g.BTime != nil {
		var data engine.TimeData
		wtime, btime := int64Or(g.WTime, 0), int64Or(g.BTime, 0)
		winc, binc := int64Or(g.WInc, 0), int64Or(g.BInc, 0)
		if d.board.Player == board.White {
			data = engine.TimeData{StmTime: wtime, NtmTime: btime, StmInc: winc, NtmInc: binc}
		} else {
			data = engine.TimeData{StmTime: btime, NtmTime: wtime, StmInc: binc, NtmInc: winc}
		}
		if g.MovesToGo != nil {
			data.MovesToGo = *g.MovesToGo
		}
		tm = tm.TimeLimited(data, d.options.TimeOptions())
	}

	tm = tm.FixedTimeMillis(int64Or(g.MoveTime, 0), g.MoveTime != nil)
	tm = tm.FixedDepth(intOr(g.Depth, 0), g.Depth != nil)
	tm = tm.FixedNodes(uint64Or(g.Nodes, 0), g.Nodes != nil)
	tm = tm.Infinite(g.Infinite)

	info := engine.NewSearchInfo(&d.stopped, &d.globalNodes)
	info.TimeManager = tm
	info.Options = d.options
	info.Quit = &QuitRequested

	root := *d.board
	for _, t := range d.threads {
		t.PrepareSearch(&root, d.prehistory)
	}

	// reset before the goroutine starts so a stop arriving right after go
	// cannot be overwritten by the search resetting the flag itself
	d.stopped.Store(false)

	done := make(chan struct{})
	d.searchDone = done

	go func(b board.Board) {
		defer close(done)
		engine.Search(&b, info, d.threads)
	}(root)
}

func (d *Driver) handlePerft(depth int) {
	if depth <= 0 {
		fmt.Println("Total: 1\tNPS: 0")
		return
	}

	start := time.Now()
	var total uint64
	for _, result := range board.PerftDivide(d.board, depth) {
		fmt.Printf("%s: %d\n", result.Move.Coords(), result.Nodes)
		total += result.Nodes
	}
	millis := uint64(time.Since(start).Milliseconds())
	if millis == 0 {
		millis = 1
	}
	fmt.Printf("\nTotal: %d\tNPS: %d\n", total, total*1000/millis)
}

func (d *Driver) handleSetOption(c CmdSetOption) {
	oldThreads := d.options.Threads
	oldHash := d.options.Hash

	if err := d.options.Set(c.Name, c.Value); err != nil {
		fmt.Printf("info string %v\n", err)
		return
	}

	if d.options.Hash != oldHash {
		d.tt.Resize(d.options.Hash)
	}
	if d.options.Threads != oldThreads {
		d.rebuildThreads()
	}

	if d.store != nil {
		if err := d.store.SaveOptions(d.options.Names()); err != nil {
			log.Warningf("failed to persist options: %v", err)
		}
	}
}

func (d *Driver) handleEval() {
	net := nnue.Default
	acc := net.NewAccumulator()
	d.board.RefreshAccumulator(net, &acc)
	fmt.Printf("info string eval white %dcp black %dcp\n",
		net.Evaluate(&acc.White), net.Evaluate(&acc.Black))
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func int64Or(p *int64, def int64) int64 {
	if p == nil {
		return def
	}
	return *p
}

func uint64Or(p *uint64, def uint64) uint64 {
	if p == nil {
		return def
	}
	return *p
}
