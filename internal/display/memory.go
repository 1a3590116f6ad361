package display

import "sync"

// Memory is an in-process surface that records every update.
type Memory struct {
	mu     sync.Mutex
	titles []string
	bodies []string
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) SetTitle(title string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.titles = append(m.titles, title)
}

func (m *Memory) SetBody(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bodies = append(m.bodies, text)
}

// Title returns the latest title.
func (m *Memory) Title() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.titles) == 0 {
		return ""
	}
	return m.titles[len(m.titles)-1]
}

// Body returns the latest body text.
func (m *Memory) Body() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.bodies) == 0 {
		return ""
	}
	return m.bodies[len(m.bodies)-1]
}

// Markup returns the latest body as it would appear inside the HTML <pre> block.
func (m *Memory) Markup() string {
	return EscapeHTML(m.Body())
}

// Titles returns every title set so far, oldest first.
func (m *Memory) Titles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.titles...)
}

// Bodies returns every body set so far, oldest first.
func (m *Memory) Bodies() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.bodies...)
}
