package picker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/runger/recents/internal/logging"
	"github.com/runger/recents/internal/recent"
)

// pickerState represents the current state of the picker's state machine.
type pickerState int

const (
	stateOpen     pickerState = iota // Showing every candidate
	stateFiltered                    // A non-empty query narrows the rows
	stateClosed                      // Dismissed or activated; terminal
)

const (
	title = "Recent Files"

	// listTop is the screen row of the first list entry: one row for the
	// title and one for the search box.
	listTop = 2
)

// openedMsg is sent when the editor process started by an activation exits.
type openedMsg struct {
	path string
	err  error
}

// copiedMsg reports the outcome of a clipboard copy.
type copiedMsg struct {
	path string
	err  error
}

// Model is the Bubble Tea model for the recent files modal.
type Model struct {
	state pickerState
	view  recent.View
	input textinput.Model
	keys  keyMap
	help  help.Model

	activator *Activator
	persist   func([]string)
	clipboard func(string) error
	ctx       context.Context
	logger    *slog.Logger

	width    int // Terminal width
	height   int // Terminal height
	top      int // First visible row of the list
	showHelp bool

	// opened is the path handed to the activator, "" if none.
	opened string
	status string
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for activation and clipboard failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithHelp toggles the key help line.
func WithHelp(show bool) Option {
	return func(m *Model) { m.showHelp = show }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.clipboard = write
		}
	}
}

// WithContext sets the context activations run under.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// New creates a modal showing candidates. persist receives the original
// candidate list exactly once, when the modal closes for any reason.
func New(candidates []string, activator *Activator, persist func([]string), opts ...Option) Model {
	input := textinput.New()
	input.Placeholder = "Search"
	input.Prompt = "> "
	input.Focus()

	m := Model{
		state:     stateOpen,
		view:      recent.Open(candidates),
		input:     input,
		keys:      defaultKeyMap(),
		help:      help.New(),
		activator: activator,
		persist:   persist,
		clipboard: clipboard.WriteAll,
		ctx:       context.Background(),
		logger:    logging.Discard(),
		showHelp:  true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Opened returns the path that was activated, or "" if the modal was
// dismissed without opening anything.
func (m Model) Opened() string {
	return m.opened
}

// IsClosed reports whether the modal reached its terminal state.
func (m Model) IsClosed() bool {
	return m.state == stateClosed
}

// Candidates returns the list the modal was opened with.
func (m Model) Candidates() []string {
	return m.view.All()
}

// Close dismisses the modal outside a running program, for backends that
// only borrow its candidate list. Persistence still happens exactly once.
func (m Model) Close() Model {
	next, _ := m.close()
	return next.(Model)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateClosed {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 0)
		m.help.Width = msg.Width
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case openedMsg:
		if msg.err != nil {
			m.logger.Warn("editor exited with error", "path", msg.path, "error", msg.err)
		}
		return m.close()

	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard copy failed", "path", msg.path, "error", msg.err)
			m.status = "Copy failed: " + msg.err.Error()
		} else {
			m.status = "Copied " + msg.path
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		return m.close()

	case key.Matches(msg, m.keys.Enter):
		path, ok := m.view.Selected()
		if !ok {
			return m, nil
		}
		return m.activate(path)

	case key.Matches(msg, m.keys.Up):
		m.view = m.view.Up()
		m.ensureVisible()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.view = m.view.Down()
		m.ensureVisible()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		path, ok := m.view.Selected()
		if !ok {
			return m, nil
		}
		write := m.clipboard
		return m, func() tea.Msg {
			return copiedMsg{path: path, err: write(path)}
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.search(after)
	}
	return m, cmd
}

// handleMouse activates a clicked row and scrolls on the wheel.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.view = m.view.Up()
		m.ensureVisible()
		return m, nil

	case msg.Button == tea.MouseButtonWheelDown:
		m.view = m.view.Down()
		m.ensureVisible()
		return m, nil

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		row := msg.Y - listTop
		if row < 0 || row >= m.listHeight() {
			return m, nil
		}
		path, ok := m.view.At(m.top + row)
		if !ok {
			return m, nil
		}
		return m.activate(path)
	}
	return m, nil
}

// search applies a changed query and moves the state between Open and
// Filtered.
func (m *Model) search(query string) {
	m.view = m.view.Search(query)
	m.top = 0
	m.status = ""
	if m.view.Filtered() {
		m.state = stateFiltered
	} else {
		m.state = stateOpen
	}
}

// activate opens path through the activator. A path that no longer
// resolves leaves the modal open and unchanged.
func (m Model) activate(path string) (tea.Model, tea.Cmd) {
	if m.activator == nil {
		return m, nil
	}
	cmd, ok := m.activator.Prepare(m.ctx, path)
	if !ok {
		return m, nil
	}
	m.opened = path
	if cmd == nil {
		return m.close()
	}
	return m, tea.ExecProcess(cmd, func(err error) tea.Msg {
		return openedMsg{path: path, err: err}
	})
}

// close moves to the terminal state and hands the original candidate list
// to the persistence callback.
func (m Model) close() (tea.Model, tea.Cmd) {
	if m.state == stateClosed {
		return m, nil
	}
	m.state = stateClosed
	m.input.Blur()
	if m.persist != nil {
		m.persist(m.view.All())
	}
	return m, tea.Quit
}

// listHeight returns the number of visible list rows (terminal height minus
// title, search box, status and help).
func (m Model) listHeight() int {
	const chrome = listTop + 2
	if m.height == 0 {
		return 20 // Sensible default before first WindowSizeMsg
	}
	return max(m.height-chrome, 1)
}

// ensureVisible scrolls the list window so the cursor row is on screen.
func (m *Model) ensureVisible() {
	cursor := m.view.Cursor()
	h := m.listHeight()
	if cursor < m.top {
		m.top = cursor
	}
	if cursor >= m.top+h {
		m.top = cursor - h + 1
	}
	if m.top < 0 {
		m.top = 0
	}
}

// --- View rendering ---

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62"))
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// View implements tea.Model.
func (m Model) View() string {
	if m.state == stateClosed {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteRune('\n')
	b.WriteString(m.input.View())
	b.WriteRune('\n')
	b.WriteString(m.viewList())
	b.WriteRune('\n')
	b.WriteString(m.viewStatus())
	if m.showHelp {
		b.WriteRune('\n')
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

// viewList renders the visible window of rows with the cursor row
// highlighted.
func (m Model) viewList() string {
	if m.view.Len() == 0 {
		if m.view.Filtered() {
			return dimStyle.Render("No matches")
		}
		return dimStyle.Render("No recent files")
	}

	rows := m.view.Displayed()
	end := min(m.top+m.listHeight(), len(rows))
	maxWidth := 0
	if m.width > 4 {
		maxWidth = m.width - 4
	}

	var b strings.Builder
	for i := m.top; i < end; i++ {
		display := rowText(rows[i], maxWidth)
		if i == m.view.Cursor() {
			b.WriteString(selectedStyle.Render("> " + display))
		} else {
			b.WriteString(normalStyle.Render("  " + display))
		}
		if i < end-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// viewStatus renders the match count or the last clipboard result.
func (m Model) viewStatus() string {
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	total := len(m.view.All())
	if m.view.Filtered() {
		return dimStyle.Render(fmt.Sprintf("%d/%d", m.view.Len(), total))
	}
	return dimStyle.Render(fmt.Sprintf("%d files", total))
}
