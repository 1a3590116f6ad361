package display

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// HintLine is shown above every rendered review.
const HintLine = "Tip: You can copy this and paste into a Markdown viewer if needed."

const htmlTemplate = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <meta http-equiv="Content-Security-Policy" content="default-src 'none'; style-src 'unsafe-inline'; script-src 'none'" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>%s</title>
    <style>
      body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif; padding: 16px; }
      pre { white-space: pre-wrap; word-break: break-word; line-height: 1.45; }
      .hint { opacity: 0.7; margin-bottom: 12px; }
    </style>
  </head>
  <body>
    <div class="hint">%s</div>
    <pre>%s</pre>
  </body>
</html>
`

// HTMLSurface keeps a script-free HTML document in sync with its title and
// body. Every update rewrites the whole document, either to a file or by
// calling a sink.
type HTMLSurface struct {
	mu    sync.Mutex
	title string
	body  string
	flush func(doc []byte) error
	err   error
}

// NewHTMLFileSurface returns a surface that rewrites path on every update.
func NewHTMLFileSurface(path string) *HTMLSurface {
	return &HTMLSurface{
		flush: func(doc []byte) error {
			return os.WriteFile(path, doc, 0o600)
		},
	}
}

// NewHTMLSurface returns a surface that hands each rendered document to sink.
func NewHTMLSurface(sink func(doc []byte) error) *HTMLSurface {
	return &HTMLSurface{flush: sink}
}

func (s *HTMLSurface) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
	s.render()
}

func (s *HTMLSurface) SetBody(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body = text
	s.render()
}

// Err returns the first error raised while writing the document.
func (s *HTMLSurface) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// WriteTo writes the current document to w.
func (s *HTMLSurface) WriteTo(w io.Writer) (int64, error) {
	s.mu.Lock()
	doc := s.document()
	s.mu.Unlock()
	n, err := w.Write(doc)
	return int64(n), err
}

func (s *HTMLSurface) render() {
	if s.flush == nil || s.err != nil {
		return
	}
	if err := s.flush(s.document()); err != nil {
		s.err = fmt.Errorf("failed to write review document: %w", err)
	}
}

func (s *HTMLSurface) document() []byte {
	return fmt.Appendf(nil, htmlTemplate, EscapeHTML(s.title), EscapeHTML(HintLine), EscapeHTML(s.body))
}
