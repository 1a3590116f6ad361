package client

import (
	"fmt"
	"strconv"
	"strings"
)

// LineRange is a 1-based inclusive range of lines. End -1 runs to the end
// of the document; the zero value selects nothing.
type LineRange struct {
	Start int
	End   int
}

// ParseLineRange parses "a:b", "a:" or "a".
func ParseLineRange(s string) (LineRange, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LineRange{}, nil
	}
	startStr, endStr, hasColon := strings.Cut(s, ":")
	start, err := strconv.Atoi(startStr)
	if err != nil || start < 1 {
		return LineRange{}, fmt.Errorf("invalid start line %q", startStr)
	}
	end := start
	if hasColon {
		if endStr == "" {
			end = -1
		} else if end, err = strconv.Atoi(endStr); err != nil || end < start {
			return LineRange{}, fmt.Errorf("invalid end line %q", endStr)
		}
	}
	return LineRange{Start: start, End: end}, nil
}

func (r LineRange) String() string {
	switch {
	case r.Start == 0:
		return "none"
	case r.End < 0:
		return fmt.Sprintf("%d:", r.Start)
	case r.End == r.Start:
		return strconv.Itoa(r.Start)
	default:
		return fmt.Sprintf("%d:%d", r.Start, r.End)
	}
}

// Document is an in-memory Editor over a text with an optional line selection.
type Document struct {
	text      string
	selection LineRange
}

func NewDocument(text string, selection LineRange) *Document {
	return &Document{text: text, selection: selection}
}

func (d *Document) Text() string {
	return d.text
}

// Selection returns the selected lines, clamped to the document.
func (d *Document) Selection() string {
	if d.selection.Start == 0 {
		return ""
	}
	lines := strings.SplitAfter(d.text, "\n")
	start := d.selection.Start - 1
	if start >= len(lines) {
		return ""
	}
	end := d.selection.End
	if end < 0 || end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "")
}
