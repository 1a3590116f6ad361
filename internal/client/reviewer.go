package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sevigo/review-bridge/internal/core"
	"github.com/sevigo/review-bridge/internal/display"
)

// Surface titles and messages.
const (
	TitleRunning = "AI Code Review (running...)"
	TitleDone    = "AI Code Review"
	TitleError   = "AI Code Review (error)"

	MsgGenerating       = "Generating review..."
	MsgSelectSomeCode   = "Select some code to review."
	MsgCurrentFileEmpty = "Current file is empty."
)

// ErrNoEditor is returned when the host has no active document.
var ErrNoEditor = errors.New("no active editor")

// Editor is the host's active document.
type Editor interface {
	// Selection returns the selected text, or "" when nothing is selected.
	Selection() string
	// Text returns the whole document.
	Text() string
}

// Host is the editing environment that embeds the reviewer.
type Host interface {
	ActiveEditor() (Editor, bool)
	Warn(msg string)
	// NewSurface opens a fresh surface. Surfaces are never reused.
	NewSurface() display.Surface
}

// ReviewClient performs one gateway round-trip.
type ReviewClient interface {
	Review(ctx context.Context, code string) core.Result
}

// Reviewer implements the host commands.
type Reviewer struct {
	client ReviewClient
	host   Host
}

// NewReviewer wires a gateway client to a host.
func NewReviewer(client ReviewClient, host Host) *Reviewer {
	return &Reviewer{client: client, host: host}
}

// ReviewSelection reviews the active selection.
func (r *Reviewer) ReviewSelection(ctx context.Context) core.Result {
	return r.reviewFrom(ctx, Editor.Selection, MsgSelectSomeCode)
}

// ReviewFile reviews the whole active document.
func (r *Reviewer) ReviewFile(ctx context.Context) core.Result {
	return r.reviewFrom(ctx, Editor.Text, MsgCurrentFileEmpty)
}

func (r *Reviewer) reviewFrom(ctx context.Context, read func(Editor) string, emptyMsg string) core.Result {
	editor, ok := r.host.ActiveEditor()
	if !ok {
		return core.Result{Err: ErrNoEditor}
	}
	code := strings.TrimSpace(read(editor))
	if code == "" {
		r.host.Warn(emptyMsg)
		return core.Result{Err: fmt.Errorf("%w: %s", core.ErrInvalidInput, emptyMsg)}
	}
	return r.SubmitAndRender(ctx, code)
}

// SubmitAndRender opens a new surface, shows the running state, and replaces
// it with the review or the error once the round-trip finishes.
func (r *Reviewer) SubmitAndRender(ctx context.Context, code string) core.Result {
	surface := r.host.NewSurface()
	surface.SetTitle(TitleRunning)
	surface.SetBody(MsgGenerating)

	res := r.client.Review(ctx, code)
	if res.OK() {
		surface.SetTitle(TitleDone)
		surface.SetBody(res.Review)
		return res
	}

	surface.SetTitle(TitleError)
	surface.SetBody("Error: " + Message(res.Err))
	return res
}
