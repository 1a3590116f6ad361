package main

import (
	"context"
	"os"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/review-bridge/internal/client"
	"github.com/sevigo/review-bridge/internal/core"
	"github.com/sevigo/review-bridge/internal/display"
)

// tuiHost is the per-invocation host. Everything it learns is forwarded to
// the program as messages so the model is only touched from Update.
type tuiHost struct {
	doc    *client.Document
	send   func(tea.Msg)
	nextID *atomic.Int64
}

func (h *tuiHost) ActiveEditor() (client.Editor, bool) {
	if h.doc == nil {
		return nil, false
	}
	return h.doc, true
}

func (h *tuiHost) Warn(msg string) {
	h.send(warnMsg(msg))
}

func (h *tuiHost) NewSurface() display.Surface {
	id := h.nextID.Add(1)
	h.send(panelOpenedMsg{id: id})
	return &panelSurface{id: id, send: h.send}
}

// panelSurface is a display.Surface backed by a panel in the model.
type panelSurface struct {
	id   int64
	send func(tea.Msg)
}

func (s *panelSurface) SetTitle(title string) {
	s.send(panelTitleMsg{id: s.id, title: title})
}

func (s *panelSurface) SetBody(text string) {
	s.send(panelBodyMsg{id: s.id, body: text})
}

type reviewAction func(*client.Reviewer, context.Context) core.Result

func reviewCmd(rc client.ReviewClient, host *tuiHost, action reviewAction) tea.Cmd {
	return func() tea.Msg {
		res := action(client.NewReviewer(rc, host), context.Background())
		return reviewFinishedMsg{err: res.Err}
	}
}

func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		b, err := os.ReadFile(path)
		if err != nil {
			return fileLoadedMsg{path: path, err: err}
		}
		return fileLoadedMsg{path: path, text: string(b)}
	}
}
