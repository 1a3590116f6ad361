// Package display renders review output into surfaces that never interpret it.
package display

import "strings"

// Surface is a single review's output panel. Each invocation owns its own.
type Surface interface {
	SetTitle(title string)
	SetBody(text string)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeHTML replaces &, < and > with entities and leaves every other byte alone.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
