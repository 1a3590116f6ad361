package main

import (
	"io"

	"github.com/fatih/color"

	"github.com/sevigo/review-bridge/internal/client"
	"github.com/sevigo/review-bridge/internal/display"
)

// cliHost is the terminal editing environment.
type cliHost struct {
	editor   client.Editor
	stdout   io.Writer
	stderr   io.Writer
	htmlPath string
	surfaces []display.Surface
}

func (h *cliHost) ActiveEditor() (client.Editor, bool) {
	if h.editor == nil {
		return nil, false
	}
	return h.editor, true
}

func (h *cliHost) Warn(msg string) {
	_, _ = warnColor.Fprintln(h.stderr, "⚠ "+msg)
}

func (h *cliHost) NewSurface() display.Surface {
	var s display.Surface
	if h.htmlPath != "" {
		s = display.NewHTMLFileSurface(h.htmlPath)
	} else {
		s = display.NewTerminalSurface(h.stdout)
	}
	h.surfaces = append(h.surfaces, s)
	return s
}

// surfaceErr reports a failure to write an HTML surface.
func (h *cliHost) surfaceErr() error {
	for _, s := range h.surfaces {
		if hs, ok := s.(*display.HTMLSurface); ok {
			if err := hs.Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)
