package bubbletea

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/eli5"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

var _ tea.Model = Model{}

const (
	headerHeight = 2
	statusHeight = 1
	inputHeight  = 3

	title       = "🧠 ELI5 Bot"
	subtitle    = "Explains everything like you're 5!"
	placeholder = "Ask me anything... like 'what is gravity?' 🚀"
)

// Model is the Bubble Tea model for the eli5 TUI. It renders the session's
// history and drives the session's Begin/Exchange/Finish cycle; the session
// itself stays the single source of truth.
type Model struct {
	// Input is the text entry component. Exported for test access.
	Input textarea.Model
	// Viewport is the scrollable conversation area. Exported for test access.
	Viewport viewport.Model
	// Spinner animates the busy indicator. Exported for test access.
	Spinner spinner.Model

	session  *eli5.Session
	renderer eli5.Renderer
	styles   Styles
	config   Config

	// blocks mirrors the session history one-to-one. History is append-only,
	// so new messages are converted incrementally.
	blocks []MessageBlock

	notice   string
	ready    bool
	scrolled bool // viewport has been scrolled to the bottom once
}

// New creates a new TUI Model for session. Assistant replies are rendered
// with renderer.
func New(session *eli5.Session, renderer eli5.Renderer, theme eli5.Theme, config Config) Model {
	ti := textarea.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.ShowLineNumbers = false
	ti.CharLimit = 0
	ti.SetHeight(inputHeight)
	ti.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))
	ti.SetValue(session.Draft())
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	styles := NewStyles(theme)
	sp.Style = styles.Assistant

	return Model{
		Input:    ti,
		Spinner:  sp,
		session:  session,
		renderer: renderer,
		styles:   styles,
		config:   config,
	}
}

// Pending reports whether a request is in flight.
func (m Model) Pending() bool { return m.session.Pending() }

// Notice returns the transient status message, if any.
func (m Model) Notice() string { return m.notice }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		m = m.refresh()
		cmd := m.Input.Focus()
		return m, cmd

	case CopiedMsg:
		if msg.Err != nil {
			m.notice = fmt.Sprintf("Could not copy: %v", msg.Err)
		} else {
			m.notice = "Copied the last answer! 📋"
		}
		return m, nil

	case spinner.TickMsg:
		if !m.session.Pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		m = m.refresh()
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	if !m.session.Pending() {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	vpHeight := max(msg.Height-headerHeight-statusHeight-inputHeight, 1)

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.Input.SetWidth(msg.Width)
	return m.refresh()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyEnter:
		if msg.Alt {
			break
		}
		return m.submit()

	case tea.KeyCtrlY:
		return m, m.copyLastReply()

	case tea.KeyPgUp, tea.KeyPgDown:
		var cmd tea.Cmd
		m.Viewport, cmd = m.Viewport.Update(msg)
		return m, cmd
	}

	if m.session.Pending() {
		return m, nil
	}

	m.notice = ""
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	m.session.SetDraft(m.Input.Value())
	return m, cmd
}

// submit starts a round trip for the current input. Blank input and input
// arriving while a request is pending are ignored by the session.
func (m Model) submit() (tea.Model, tea.Cmd) {
	req, ok := m.session.Begin(m.Input.Value())
	if !ok {
		return m, nil
	}
	m.notice = ""
	m.Input.Reset()
	m.Input.Blur()
	m = m.refresh()
	return m, tea.Batch(exchange(m.session, req), m.Spinner.Tick)
}

// refresh converts new history entries to blocks and re-renders the
// viewport. It scrolls to the newest message only when history grew or on
// first layout; spinner frames and resizes keep the scroll position.
func (m Model) refresh() Model {
	history := m.session.History()
	grew := len(history) > len(m.blocks)
	for _, msg := range history[len(m.blocks):] {
		m.blocks = append(m.blocks, m.newBlock(msg))
	}
	if !m.ready {
		return m
	}
	m.Viewport.SetContent(m.renderContent())
	if grew || !m.scrolled {
		m.Viewport.GotoBottom()
		m.scrolled = true
	}
	return m
}

func (m Model) newBlock(msg eli5.Message) MessageBlock {
	if msg.Role == eli5.RoleUser {
		return NewUserMessageBlock(msg.Content, m.styles)
	}
	return NewAssistantMessageBlock(msg.Content, m.renderer)
}

func (m Model) renderContent() string {
	width := m.Viewport.Width
	parts := make([]string, 0, len(m.blocks)+1)
	for _, block := range m.blocks {
		parts = append(parts, block.View(width))
	}
	if m.session.Pending() {
		parts = append(parts, NewTypingBlock(m.Spinner.View(), m.styles).View(width))
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) header() string {
	width := m.Viewport.Width
	top := m.styles.Title.Render(runewidth.Truncate(title, width, "…"))
	sub := subtitle
	if m.config.ModelName != "" {
		sub += " · " + m.config.ModelName
	}
	return top + "\n" + m.styles.Subtitle.Render(runewidth.Truncate(sub, width, "…"))
}

func (m Model) statusLine() string {
	width := m.Viewport.Width
	switch {
	case m.notice != "":
		return m.styles.Accent.Render(runewidth.Truncate(m.notice, width, "…"))
	case m.session.Pending():
		return m.styles.Muted.Render(runewidth.Truncate("Thinking really hard...", width, "…"))
	}
	status := "Enter to send · Alt+Enter new line · Ctrl+Y copy · Ctrl+C quit"
	if n := uniseg.GraphemeClusterCount(m.Input.Value()); n > 0 {
		status = fmt.Sprintf("%d chars · %s", n, status)
	}
	return m.styles.Muted.Render(runewidth.Truncate(status, width, "…"))
}

// copyLastReply copies the newest assistant message to the clipboard.
func (m Model) copyLastReply() tea.Cmd {
	history := m.session.History()
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role != eli5.RoleAssistant {
			continue
		}
		text := history[i].Content
		write := m.config.copyFunc()
		return func() tea.Msg {
			return CopiedMsg{Err: write(text)}
		}
	}
	return nil
}

// exchange performs the round trip off the event loop. There is no
// cancellation: the request runs to completion or failure.
func exchange(session *eli5.Session, req eli5.Request) tea.Cmd {
	return func() tea.Msg {
		return ReplyMsg{Message: session.Exchange(context.Background(), req)}
	}
}
