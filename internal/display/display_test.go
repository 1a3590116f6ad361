package display

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "plain text", want: "plain text"},
		{in: "a < b && c > d", want: "a &lt; b &amp;&amp; c &gt; d"},
		{in: "<script>alert('x')</script>", want: "&lt;script&gt;alert('x')&lt;/script&gt;"},
		{in: "&lt; already", want: "&amp;lt; already"},
		{in: `"quotes" and 'apostrophes'`, want: `"quotes" and 'apostrophes'`},
		{in: "## Heading\n- `code`\n\tindent", want: "## Heading\n- `code`\n\tindent"},
		{in: "ünïcödé → ✓", want: "ünïcödé → ✓"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeHTML(tt.in), tt.in)
	}
}

func TestHTMLSurface_Document(t *testing.T) {
	var docs [][]byte
	s := NewHTMLSurface(func(doc []byte) error {
		docs = append(docs, doc)
		return nil
	})

	s.SetTitle("AI Code Review")
	s.SetBody("</pre><script>alert(1)</script>")

	require.Len(t, docs, 2)
	doc := string(docs[1])
	assert.Contains(t, doc, "<pre>&lt;/pre&gt;&lt;script&gt;alert(1)&lt;/script&gt;</pre>")
	assert.NotContains(t, doc, "<script>")
	assert.Contains(t, doc, "script-src 'none'")
	assert.Contains(t, doc, "white-space: pre-wrap")
	assert.Contains(t, doc, HintLine)
	assert.Contains(t, doc, "<title>AI Code Review</title>")
	assert.Equal(t, 1, strings.Count(doc, "<pre>"))
}

func TestHTMLSurface_FileAndErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "review.html")
	s := NewHTMLFileSurface(path)
	s.SetTitle("AI Code Review (running...)")
	s.SetBody("Generating review...")
	require.NoError(t, s.Err())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "<pre>Generating review...</pre>")

	var buf bytes.Buffer
	_, err = s.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, string(b), buf.String())

	failing := NewHTMLSurface(func([]byte) error { return errors.New("disk full") })
	failing.SetBody("x")
	assert.ErrorContains(t, failing.Err(), "disk full")
}

func TestSanitizeTerminal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "hello\n\tworld", want: "hello\n\tworld"},
		{name: "color codes", in: "\x1b[31mred\x1b[0m", want: "red"},
		{name: "osc title", in: "\x1b]0;pwned\x07text", want: "text"},
		{name: "bell and backspace", in: "a\x07b\x08c", want: "abc"},
		{name: "carriage return", in: "line\r\n", want: "line\n"},
		{name: "unicode kept", in: "✓ done", want: "✓ done"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeTerminal(tt.in))
		})
	}
}

func TestTerminalSurface(t *testing.T) {
	var buf bytes.Buffer
	s := NewTerminalSurface(&buf)
	s.SetTitle("AI Code Review")
	s.SetBody("\x1b[2Jcleared? no")

	assert.Equal(t, "== AI Code Review ==\ncleared? no\n", buf.String())
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	assert.Empty(t, m.Title())
	assert.Empty(t, m.Body())

	m.SetTitle("one")
	m.SetBody("a < b")
	m.SetTitle("two")

	assert.Equal(t, "two", m.Title())
	assert.Equal(t, []string{"one", "two"}, m.Titles())
	assert.Equal(t, "a &lt; b", m.Markup())
	assert.Equal(t, []string{"a < b"}, m.Bodies())
}
