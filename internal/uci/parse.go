// Package uci implements the Universal Chess Interface front-end: the
// command parser, the stdin reader thread, and the protocol driver that
// owns the engine state.
package uci

import (
	"errors"
	"strconv"
	"strings"

	"github.com/pelicanchess/pelican/internal/board"
)

// Parse errors. Every parse failure is recoverable: the driver reports it
// as `info string ...` and discards the command.
var (
	ErrEmptyCommand           = errors.New("EmptyCommand")
	ErrIncompleteCommand      = errors.New("IncompleteCommand")
	ErrUnknownCommand         = errors.New("UnknownCommand")
	ErrInvalidFen             = errors.New("InvalidFen")
	ErrInvalidPositionCommand = errors.New("InvalidPositionCommand")
	ErrInvalidGoCommand       = errors.New("InvalidGoCommand")
	ErrInvalidSetOption       = errors.New("InvalidSetOptionCommand")
)

// GoCommand carries the parsed parameters of a go command. Pointer fields
// distinguish absent from zero.
type GoCommand struct {
	Perft     *int
	Infinite  bool
	WTime     *int64
	BTime     *int64
	WInc      *int64
	BInc      *int64
	MoveTime  *int64
	MovesToGo *int
	Depth     *int
	Nodes     *uint64
}

// Command is a parsed UCI command.
type Command interface{ uciCommand() }

type (
	// CmdUci answers the identification handshake.
	CmdUci struct{}
	// CmdIsReady answers readyok.
	CmdIsReady struct{}
	// CmdUciNewGame clears the table and per-thread state.
	CmdUciNewGame struct{}
	// CmdPosition installs a position. StartFen is empty for startpos.
	CmdPosition struct {
		StartFen string
		Moves    []string
	}
	// CmdGo starts a search (or a perft run).
	CmdGo struct{ Go GoCommand }
	// CmdSetOption sets an integer option.
	CmdSetOption struct{ Name, Value string }
	// CmdStop halts the running search.
	CmdStop struct{}
	// CmdFen echoes the current position.
	CmdFen struct{}
	// CmdEval prints the two perspective evaluations.
	CmdEval struct{}
	// CmdQuit terminates the process.
	CmdQuit struct{}
)

func (CmdUci) uciCommand()        {}
func (CmdIsReady) uciCommand()    {}
func (CmdUciNewGame) uciCommand() {}
func (CmdPosition) uciCommand()   {}
func (CmdGo) uciCommand()         {}
func (CmdSetOption) uciCommand()  {}
func (CmdStop) uciCommand()       {}
func (CmdFen) uciCommand()        {}
func (CmdEval) uciCommand()       {}
func (CmdQuit) uciCommand()       {}

// Parse turns one input line into a command. Command tokens are matched
// case-insensitively.
func Parse(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil, ErrEmptyCommand
	}

	switch strings.ToLower(parts[0]) {
	case "uci":
		return CmdUci{}, nil
	case "isready":
		return CmdIsReady{}, nil
	case "ucinewgame":
		return CmdUciNewGame{}, nil
	case "position":
		return parsePosition(parts)
	case "go":
		return parseGo(parts)
	case "setoption":
		return parseSetOption(parts)
	case "stop":
		return CmdStop{}, nil
	case "fen":
		return CmdFen{}, nil
	case "eval":
		return CmdEval{}, nil
	case "quit":
		return CmdQuit{}, nil
	}
	return nil, ErrUnknownCommand
}

func parsePosition(parts []string) (Command, error) {
	if len(parts) < 2 {
		return nil, ErrIncompleteCommand
	}

	cmd := CmdPosition{}
	movesStart := 2

	switch parts[1] {
	case "startpos":
	case "fen":
		if len(parts) < 8 {
			return nil, ErrIncompleteCommand
		}
		fen := strings.Join(parts[2:8], " ")
		if _, err := board.FromFen(fen); err != nil {
			return nil, ErrInvalidFen
		}
		cmd.StartFen = fen
		movesStart = 8
	default:
		return nil, ErrInvalidPositionCommand
	}

	if movesStart < len(parts) {
		if parts[movesStart] != "moves" {
			return nil, ErrInvalidPositionCommand
		}
		cmd.Moves = parts[movesStart+1:]
	}

	return cmd, nil
}

func parseGo(parts []string) (Command, error) {
	rest := parts[1:]
	var cmd GoCommand

	intAfter := func(keyword string) (*int, error) {
		for i, w := range rest {
			if w != keyword {
				continue
			}
			if i+1 >= len(rest) {
				return nil, ErrIncompleteCommand
			}
			n, err := strconv.Atoi(rest[i+1])
			if err != nil {
				return nil, ErrInvalidGoCommand
			}
			return &n, nil
		}
		return nil, nil
	}

	int64After := func(keyword string) (*int64, error) {
		for i, w := range rest {
			if w != keyword {
				continue
			}
			if i+1 >= len(rest) {
				return nil, ErrIncompleteCommand
			}
			n, err := strconv.ParseInt(rest[i+1], 10, 64)
			if err != nil {
				return nil, ErrInvalidGoCommand
			}
			return &n, nil
		}
		return nil, nil
	}

	var err error
	if cmd.Perft, err = intAfter("perft"); err != nil {
		return nil, err
	}
	if cmd.Depth, err = intAfter("depth"); err != nil {
		return nil, err
	}
	if cmd.MovesToGo, err = intAfter("movestogo"); err != nil {
		return nil, err
	}
	if cmd.WTime, err = int64After("wtime"); err != nil {
		return nil, err
	}
	if cmd.BTime, err = int64After("btime"); err != nil {
		return nil, err
	}
	if cmd.WInc, err = int64After("winc"); err != nil {
		return nil, err
	}
	if cmd.BInc, err = int64After("binc"); err != nil {
		return nil, err
	}
	if cmd.MoveTime, err = int64After("movetime"); err != nil {
		return nil, err
	}

	for i, w := range rest {
		if w == "nodes" {
			if i+1 >= len(rest) {
				return nil, ErrIncompleteCommand
			}
			n, err := strconv.ParseUint(rest[i+1], 10, 64)
			if err != nil {
				return nil, ErrInvalidGoCommand
			}
			cmd.Nodes = &n
		}
		if w == "infinite" {
			cmd.Infinite = true
		}
	}

	return CmdGo{Go: cmd}, nil
}

func parseSetOption(parts []string) (Command, error) {
	// setoption name <Name...> value <Value>
	nameIdx := -1
	valueIdx := -1
	for i, w := range parts {
		switch strings.ToLower(w) {
		case "name":
			if nameIdx < 0 {
				nameIdx = i
			}
		case "value":
			valueIdx = i
		}
	}
	if nameIdx < 0 || valueIdx < 0 || valueIdx < nameIdx+2 || valueIdx+1 >= len(parts) {
		return nil, ErrInvalidSetOption
	}

	return CmdSetOption{
		Name:  strings.Join(parts[nameIdx+1:valueIdx], " "),
		Value: strings.Join(parts[valueIdx+1:], " "),
	}, nil
}
