// ABOUTME: Terminal chat widget built on bubbletea
// ABOUTME: Collapsible launcher, rotating placeholders, and suggestion cycling
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chairaharder/askchaira/internal/client"
	"github.com/chairaharder/askchaira/internal/markdown"
	"github.com/chairaharder/askchaira/internal/session"
)

// placeholderInterval is how often the empty input's hint text rotates.
const placeholderInterval = 4 * time.Second

// suggestionWindow is how many suggested questions show at once.
const suggestionWindow = 3

var placeholders = []string{
	"Ask me anything about Chaira...",
	"What has she been working on?",
	"Curious about her background?",
	"Type a question and press enter",
}

var suggestionPool = []string{
	"What does Chaira do?",
	"What projects has she built?",
	"What's her technical background?",
	"How can I get in touch?",
	"What is she working on right now?",
	"Where has she worked before?",
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	launcherStyle  = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
)

type tickMsg time.Time

type answerMsg struct {
	content string
}

// Model is the chat widget's bubbletea model.
type Model struct {
	sess      *session.Session
	manager   *session.Manager
	submitter *client.Submitter
	renderer  *markdown.Renderer

	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model

	width   int
	height  int
	loading bool
	ready   bool

	placeholderIdx int
	suggestionOff  int

	saveErr error
}

// New creates the chat model. The widget starts in whatever open state the
// session last persisted.
func New(sess *session.Session, manager *session.Manager, submitter *client.Submitter) Model {
	ti := textinput.New()
	ti.Placeholder = placeholders[0]
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		sess:      sess,
		manager:   manager,
		submitter: submitter,
		renderer:  markdown.NewRenderer(72),
		input:     ti,
		spin:      sp,
	}
}

// Init schedules the placeholder rotation tick.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func tick() tea.Cmd {
	return tea.Tick(placeholderInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles input, window sizing, and answer arrival.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(msg.Width-2, max(msg.Height-8, 3))
		m.renderer = markdown.NewRenderer(max(msg.Width-6, 20))
		m.ready = true
		m.refreshTranscript()
		return m, nil

	case tickMsg:
		if m.input.Value() == "" {
			m.placeholderIdx = (m.placeholderIdx + 1) % len(placeholders)
			m.input.Placeholder = placeholders[m.placeholderIdx]
		}
		return m, tick()

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case answerMsg:
		m.loading = false
		m.sess.Append(session.RoleAssistant, msg.content)
		m.suggestionOff = (m.suggestionOff + suggestionWindow) % len(suggestionPool)
		m.refreshTranscript()
		m.persist()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.persist()
		return m, tea.Quit

	case "tab":
		m.sess.Open = !m.sess.Open
		if !m.sess.Open {
			// Closing clears the draft but keeps the transcript.
			m.input.SetValue("")
		}
		m.refreshTranscript()
		m.persist()
		return m, nil

	case "ctrl+l":
		m.sess.Clear()
		m.refreshTranscript()
		m.persist()
		return m, nil

	case "enter":
		if !m.sess.Open || m.loading {
			return m, nil
		}
		query := strings.TrimSpace(m.input.Value())
		if query == "" {
			return m, nil
		}
		m.input.SetValue("")
		return m.submit(query)

	case "1", "2", "3":
		if m.sess.Open && !m.loading && m.input.Value() == "" {
			n, _ := strconv.Atoi(msg.String())
			if q, ok := m.suggestion(n - 1); ok {
				return m.submit(q)
			}
		}
	}

	if !m.sess.Open || m.loading {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit records the user turn and starts a request. The loading flag
// gates further submission until the answer arrives; there is never more
// than one request in flight. The session is mutated only here and in
// Update: the command goroutine gets the session id and the query, never
// the session itself.
func (m Model) submit(query string) (tea.Model, tea.Cmd) {
	m.loading = true
	m.sess.Open = true
	m.sess.Append(session.RoleUser, query)
	m.refreshTranscript()
	m.persist()

	submitter, sessionID := m.submitter, m.sess.ID
	ask := func() tea.Msg {
		return answerMsg{content: submitter.Respond(context.Background(), sessionID, query)}
	}
	return m, tea.Batch(m.spin.Tick, ask)
}

// suggestion returns the i-th question of the current window.
func (m Model) suggestion(i int) (string, bool) {
	if i < 0 || i >= suggestionWindow {
		return "", false
	}
	return suggestionPool[(m.suggestionOff+i)%len(suggestionPool)], true
}

func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.transcriptView())
	m.viewport.GotoBottom()
}

func (m *Model) persist() {
	if err := m.manager.Save(m.sess); err != nil {
		m.saveErr = err
	}
}

// View renders either the collapsed launcher or the full widget.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	if !m.sess.Open {
		return m.launcherView()
	}
	return m.widgetView()
}

func (m Model) launcherView() string {
	bar := launcherStyle.Render(titleStyle.Render("Ask Chaira") + hintStyle.Render("  tab to open, esc to quit"))
	return "\n" + bar + "\n"
}

func (m Model) widgetView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Ask Chaira"))
	b.WriteString(hintStyle.Render("  tab close · ctrl+l clear · esc quit"))
	b.WriteString("\n\n")

	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spin.View())
		b.WriteString(hintStyle.Render(" thinking..."))
	} else {
		b.WriteString(m.input.View())
		if m.input.Value() == "" {
			b.WriteString("\n")
			b.WriteString(m.suggestionsView())
		}
	}

	if m.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(hintStyle.Render(fmt.Sprintf("warning: could not save session: %v", m.saveErr)))
	}

	return b.String()
}

func (m Model) suggestionsView() string {
	var b strings.Builder
	for i := 0; i < suggestionWindow; i++ {
		q, ok := m.suggestion(i)
		if !ok {
			break
		}
		b.WriteString(hintStyle.Render(fmt.Sprintf("  [%d] %s", i+1, q)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) transcriptView() string {
	if len(m.sess.Entries) == 0 {
		return hintStyle.Render("No messages yet. Ask something, or press 1-3 for a suggestion.")
	}

	var b strings.Builder
	for i, e := range m.sess.Entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch e.Role {
		case session.RoleUser:
			b.WriteString(userStyle.Render("You"))
			b.WriteString("\n")
			b.WriteString(markdown.Sanitize(e.Content))
		default:
			b.WriteString(assistantStyle.Render("Chaira"))
			b.WriteString("\n")
			b.WriteString(m.renderer.Render(e.Content))
		}
	}
	return b.String()
}
