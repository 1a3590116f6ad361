package main

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sevigo/review-bridge/internal/client"
	"github.com/sevigo/review-bridge/internal/config"
	"github.com/sevigo/review-bridge/internal/display"
)

type panel struct {
	title string
	body  string
}

// entry is one block of the scrollback: either plain text or a review panel.
type entry struct {
	text    string
	panelID int64
}

type model struct {
	styles styles
	cfg    config.ClientConfig
	client client.ReviewClient
	send   func(tea.Msg)
	nextID atomic.Int64

	// UI Components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// Session State
	path      string
	text      string
	selection client.LineRange
	running   int
	entries   []entry
	panels    map[int64]*panel
}

func initialModel(theme ThemeName, cfg config.ClientConfig, rc client.ReviewClient) *model {
	styles := GetTheme(theme)
	ta := textarea.New()
	ta.Placeholder = "/open <file>, /lines 10:20, /selection, /file ..."
	ta.Focus()
	ta.Prompt = styles.prompt.Render("► ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = styles.success

	m := &model{
		styles:   styles,
		cfg:      cfg,
		client:   rc,
		viewport: viewport.New(80, 20),
		textarea: ta,
		spinner:  sp,
		panels:   make(map[int64]*panel),
	}
	m.appendText(styles.success.Render("AI CODE REVIEW"), styles.inactive.Render("Gateway: "+cfg.APIBaseURL), "Type /help for commands.")
	return m
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	m.spinner, spCmd = m.spinner.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}
			return m, m.processCommand(input)
		}

	case fileLoadedMsg:
		if msg.err != nil {
			m.appendText(m.styles.error.Render("⚠ " + msg.err.Error()))
			return m, nil
		}
		m.path = msg.path
		m.text = msg.text
		m.selection = client.LineRange{}
		m.appendText(m.styles.success.Render(fmt.Sprintf("✓ Opened %s (%d lines)", msg.path, strings.Count(msg.text, "\n")+1)))
		return m, nil

	case warnMsg:
		m.appendText(m.styles.warning.Render("⚠ " + string(msg)))
		return m, nil

	case panelOpenedMsg:
		m.panels[msg.id] = &panel{}
		m.entries = append(m.entries, entry{panelID: msg.id})
		m.refresh()
		return m, nil

	case panelTitleMsg:
		if p, ok := m.panels[msg.id]; ok {
			p.title = msg.title
			m.refresh()
		}
		return m, nil

	case panelBodyMsg:
		if p, ok := m.panels[msg.id]; ok {
			p.body = msg.body
			m.refresh()
		}
		return m, nil

	case reviewFinishedMsg:
		if m.running > 0 {
			m.running--
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 8
		m.textarea.SetWidth(msg.Width - 10)
		m.refresh()
	}

	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

func (m *model) View() string {
	status := []string{"FILE: none"}
	if m.path != "" {
		status[0] = "FILE: " + m.path
	}
	status = append(status, "SELECTION: "+m.selection.String(), "TIMEOUT: "+m.cfg.RequestTimeout().String())

	var loadingIndicator string
	if m.running > 0 {
		loadingIndicator = fmt.Sprintf(" %s %s", m.spinner.View(), m.styles.success.Render(fmt.Sprintf("%d RUNNING", m.running)))
	}

	return m.styles.app.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.styles.viewport.Render(m.viewport.View()),
			m.styles.footer.Render(
				lipgloss.JoinHorizontal(lipgloss.Left,
					m.textarea.View(),
					loadingIndicator,
				),
			),
			m.styles.inactive.Render(strings.Join(status, " │ ")),
		),
	)
}

func (m *model) processCommand(input string) tea.Cmd {
	m.appendText(m.styles.prompt.Render("► ") + input)

	parts := strings.Fields(input)
	command, args := parts[0], parts[1:]

	switch command {
	case "/open", "/o":
		if len(args) != 1 {
			m.appendText(m.styles.error.Render("USAGE: /open <file>"))
			return nil
		}
		return loadFileCmd(args[0])

	case "/lines", "/l":
		if len(args) != 1 {
			m.appendText(m.styles.error.Render("USAGE: /lines <start[:end]>"))
			return nil
		}
		lines, err := client.ParseLineRange(args[0])
		if err != nil {
			m.appendText(m.styles.error.Render("⚠ " + err.Error()))
			return nil
		}
		m.selection = lines
		m.appendText(m.styles.command.Render("→ Selection set to lines " + lines.String()))
		return nil

	case "/selection", "/sel":
		return m.startReview((*client.Reviewer).ReviewSelection)

	case "/file", "/f":
		return m.startReview((*client.Reviewer).ReviewFile)

	case "/clear":
		m.entries = nil
		m.panels = make(map[int64]*panel)
		m.refresh()
		return nil

	case "/help", "/h":
		m.appendText(m.styles.success.Render("AVAILABLE COMMANDS:") + `

  /open <file>         Make a file the active document.
  /lines <a[:b]>       Select lines of the active document.
  /selection, /sel     Review the selected lines.
  /file, /f            Review the whole document.
  /clear               Clear the scrollback.
  /help                Show this help message.
  /exit, /quit         Exit.`)
		return nil

	case "/exit", "/quit":
		return tea.Quit

	default:
		m.appendText(m.styles.error.Render("UNKNOWN COMMAND: "+command), m.styles.inactive.Render("Type /help for assistance."))
		return nil
	}
}

// startReview snapshots the active document so later /open or /lines
// commands cannot change what an in-flight review sees.
func (m *model) startReview(action reviewAction) tea.Cmd {
	host := &tuiHost{send: m.send, nextID: &m.nextID}
	if m.path != "" {
		host.doc = client.NewDocument(m.text, m.selection)
	}
	m.running++
	return tea.Batch(m.spinner.Tick, reviewCmd(m.client, host, action))
}

func (m *model) appendText(lines ...string) {
	for _, l := range lines {
		m.entries = append(m.entries, entry{text: l})
	}
	m.refresh()
}

func (m *model) refresh() {
	m.viewport.SetContent(m.render())
	m.viewport.GotoBottom()
}

// render draws the scrollback. Panel contents come from the model and are
// sanitized before they reach the terminal.
func (m *model) render() string {
	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		if e.panelID == 0 {
			b.WriteString(e.text)
			continue
		}
		p := m.panels[e.panelID]
		if p == nil {
			continue
		}
		title := display.SanitizeTerminal(p.title)
		if title == client.TitleError {
			b.WriteString(m.styles.error.Render(title))
		} else {
			b.WriteString(m.styles.panelTitle.Render(title))
		}
		b.WriteString("\n")
		b.WriteString(m.styles.panelBody.Render(display.SanitizeTerminal(p.body)))
	}
	return b.String()
}
