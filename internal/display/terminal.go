package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// TerminalSurface prints review output to a terminal. Escape sequences and
// control characters are removed first so model output cannot drive the
// terminal.
type TerminalSurface struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTerminalSurface creates a surface that writes to w.
func NewTerminalSurface(w io.Writer) *TerminalSurface {
	return &TerminalSurface{w: w}
}

func (s *TerminalSurface) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clean := SanitizeTerminal(title)
	_, _ = fmt.Fprintf(s.w, "== %s ==\n", clean)
}

func (s *TerminalSurface) SetBody(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintln(s.w, SanitizeTerminal(text))
}

// SanitizeTerminal strips ANSI sequences and every control character except
// newline and tab.
func SanitizeTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r == '\r':
			return -1
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0):
			return -1
		default:
			return r
		}
	}, s)
}
