package uci

import (
	"bufio"
	"io"
	"strings"
	"sync/atomic"
)

// QuitRequested is the process-wide quit flag. The stdin reader sets it as
// soon as a quit line arrives so that a running search observes it through
// the same stop path as everything else.
var QuitRequested atomic.Bool

// StdinReader consumes lines from r on a background goroutine and delivers
// them over a bounded channel. The channel closes when the input ends.
func StdinReader(r io.Reader) <-chan string {
	lines := make(chan string, 64)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := scanner.Text()
			lines <- line
			if strings.HasPrefix(strings.TrimSpace(line), "quit") {
				QuitRequested.Store(true)
				return
			}
		}
	}()

	return lines
}
