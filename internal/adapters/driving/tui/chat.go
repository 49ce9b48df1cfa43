// Package tui provides the interactive chat session interface.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docubot-labs/docubot/internal/adapters/driving/chat"
)

// Styles for the chat transcript.
var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)

	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	sourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(lipgloss.Color("8"))
)

// replyMsg carries a router reply back into the update loop.
type replyMsg struct {
	reply chat.Reply
}

// Model is the bubbletea model for a chat session.
type Model struct {
	router   *chat.Router
	ctx      context.Context
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	transcript []string
	waiting    bool
	ready      bool
	width      int
	height     int
}

// NewModel creates a chat session model.
func NewModel(ctx context.Context, router *chat.Router) *Model {
	ti := textinput.New()
	ti.Placeholder = "Ask a question, or /help for commands"
	ti.Focus()
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(80, 20)

	m := &Model{
		router:   router,
		ctx:      ctx,
		viewport: vp,
		input:    ti,
		spinner:  sp,
		width:    80,
		height:   24,
	}

	// Greet the user the same way /start does
	m.appendBot(router.Handle(ctx, "/help"))
	return m
}

// Init starts the input cursor blink.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles terminal events and router replies.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 4
		m.viewport.SetContent(strings.Join(m.transcript, "\n"))
		m.viewport.GotoBottom()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil
			}
			m.input.Reset()
			m.appendUser(line)
			m.waiting = true
			return m, tea.Batch(m.spinner.Tick, m.dispatch(line))
		}

	case replyMsg:
		m.waiting = false
		m.appendBot(msg.reply)
		if msg.reply.Quit {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the transcript, input line and status.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.waiting {
		b.WriteString(m.spinner.View())
		b.WriteString(" thinking...")
	} else {
		b.WriteString(inputStyle.Width(m.width).Render(m.input.View()))
	}

	return b.String()
}

// dispatch sends a line to the router off the update loop.
func (m *Model) dispatch(line string) tea.Cmd {
	return func() tea.Msg {
		return replyMsg{reply: m.router.Handle(m.ctx, line)}
	}
}

// appendUser adds the user's line to the transcript.
func (m *Model) appendUser(line string) {
	m.transcript = append(m.transcript, userStyle.Render("you: ")+line)
	m.refresh()
}

// appendBot adds a router reply to the transcript, with sources.
func (m *Model) appendBot(reply chat.Reply) {
	if reply.Text == "" {
		return
	}
	m.transcript = append(m.transcript, botStyle.Render("bot: ")+reply.Text)

	for i, src := range reply.Sources {
		title := src.DocumentTitle
		if title == "" {
			title = src.Chunk.DocumentID
		}
		m.transcript = append(m.transcript,
			sourceStyle.Render(fmt.Sprintf("     [%d] %s (%.2f)", i+1, title, src.Score)))
	}
	m.refresh()
}

// refresh pushes the transcript into the viewport.
func (m *Model) refresh() {
	m.viewport.SetContent(strings.Join(m.transcript, "\n"))
	m.viewport.GotoBottom()
}

// Run starts the chat session and blocks until it ends.
func Run(ctx context.Context, router *chat.Router) error {
	p := tea.NewProgram(NewModel(ctx, router), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
