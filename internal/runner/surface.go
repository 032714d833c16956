package runner

import (
	"bufio"
	"io"
	"os"

	"github.com/andresmejia3/smilecam/internal/smile"
	"golang.org/x/term"
)

// TerminalSurface is the headless surface used when the display window is
// disabled. Nothing is shown; the first character of every line typed on
// the terminal is treated as a key press.
type TerminalSurface struct {
	keys chan int
}

// NewTerminalSurface reads keys from r in the background.
func NewTerminalSurface(r io.Reader) *TerminalSurface {
	s := &TerminalSurface{keys: make(chan int, 16)}
	go s.read(r)
	return s
}

// StdinSurface returns a TerminalSurface on stdin when it is a terminal, and
// a surface that never reports keys otherwise.
func StdinSurface() Surface {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return NewTerminalSurface(os.Stdin)
	}
	return NullSurface{}
}

func (s *TerminalSurface) read(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		select {
		case s.keys <- int(line[0]):
		default:
			// Drop keys the loop has not caught up with.
		}
	}
}

// Show is a no-op.
func (s *TerminalSurface) Show(smile.Frame) {}

// PollKey never blocks.
func (s *TerminalSurface) PollKey() int {
	select {
	case k := <-s.keys:
		return k
	default:
		return KeyNone
	}
}

// Close is a no-op; the reader goroutine ends with the process.
func (s *TerminalSurface) Close() error { return nil }

// NullSurface shows nothing and never reports a key.
type NullSurface struct{}

func (NullSurface) Show(smile.Frame) {}
func (NullSurface) PollKey() int     { return KeyNone }
func (NullSurface) Close() error     { return nil }
