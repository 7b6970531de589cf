package picker

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runger/recents/internal/host"
)

// --- Fake host ---

type fakePane struct {
	id     string
	kind   host.PaneKind
	opened []string
	cmd    func(host.File) *exec.Cmd
}

func (p *fakePane) ID() string          { return p.id }
func (p *fakePane) Kind() host.PaneKind { return p.kind }

func (p *fakePane) Open(_ context.Context, f host.File) *exec.Cmd {
	p.opened = append(p.opened, f.Path)
	if p.cmd != nil {
		return p.cmd(f)
	}
	return nil
}

type fakeWorkspace struct {
	files   map[string]bool
	last    *fakePane
	created []*fakePane
}

func newFakeWorkspace(files ...string) *fakeWorkspace {
	ws := &fakeWorkspace{files: make(map[string]bool)}
	for _, f := range files {
		ws.files[f] = true
	}
	return ws
}

func (w *fakeWorkspace) RecentlyActive(context.Context) []string { return nil }

func (w *fakeWorkspace) Resolve(path string) (host.File, bool) {
	if !w.files[path] {
		return host.File{}, false
	}
	return host.File{Path: path, AbsPath: "/vault/" + path}, true
}

func (w *fakeWorkspace) MostRecentPane(context.Context) (host.Pane, bool) {
	if w.last == nil {
		return nil, false
	}
	return w.last, true
}

func (w *fakeWorkspace) CreatePane(_ context.Context, kind host.PaneKind) host.Pane {
	p := &fakePane{id: "pane-new", kind: kind}
	w.created = append(w.created, p)
	w.last = p
	return p
}

// persistRecorder counts persistence callbacks.
type persistRecorder struct {
	calls [][]string
}

func (r *persistRecorder) persist(files []string) {
	r.calls = append(r.calls, files)
}

func newTestModel(ws host.Workspace, candidates []string, opts ...Option) (Model, *persistRecorder) {
	rec := &persistRecorder{}
	m := New(candidates, NewActivator(ws, nil), rec.persist, opts...)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model), rec
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func backspace(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	return m
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: k})
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// --- State machine ---

func TestInitialState(t *testing.T) {
	m, rec := newTestModel(newFakeWorkspace(), []string{"a.md", "b.md"})
	assert.Equal(t, stateOpen, m.state)
	assert.Equal(t, 0, m.view.Cursor())
	assert.Equal(t, "", m.input.Value())
	assert.Equal(t, "Search", m.input.Placeholder)
	assert.True(t, m.input.Focused())
	assert.False(t, m.IsClosed())
	assert.Empty(t, rec.calls)
	assert.NotNil(t, m.Init())
}

func TestTyping_FiltersAndEntersFiltered(t *testing.T) {
	m, _ := newTestModel(newFakeWorkspace(), []string{"Alpha.md", "beta.md", "gamma.md"})

	m = typeText(t, m, "A")
	assert.Equal(t, stateFiltered, m.state)
	assert.Equal(t, []string{"Alpha.md", "beta.md", "gamma.md"}, m.view.Displayed())

	m = typeText(t, m, "L")
	assert.Equal(t, "AL", m.view.Query())
	assert.Equal(t, []string{"Alpha.md"}, m.view.Displayed())
}

func TestClearingQuery_ReturnsToOpen(t *testing.T) {
	m, _ := newTestModel(newFakeWorkspace(), []string{"a.md", "b.md"})
	m = typeText(t, m, "a")
	require.Equal(t, stateFiltered, m.state)

	m = backspace(t, m)
	assert.Equal(t, stateOpen, m.state)
	assert.Equal(t, []string{"a.md", "b.md"}, m.view.Displayed())
}

func TestBackspace_KeepsCompoundedNarrowing(t *testing.T) {
	m, _ := newTestModel(newFakeWorkspace(), []string{"ab.md", "ac.md"})
	m = typeText(t, m, "ab")
	require.Equal(t, []string{"ab.md"}, m.view.Displayed())

	m = backspace(t, m)
	assert.Equal(t, "a", m.view.Query())
	assert.Equal(t, []string{"ab.md"}, m.view.Displayed())
}

func TestQueryChange_ResetsCursor(t *testing.T) {
	m, _ := newTestModel(newFakeWorkspace(), []string{"a1.md", "a2.md", "a3.md"})
	m, _ = press(t, m, tea.KeyDown)
	m, _ = press(t, m, tea.KeyDown)
	require.Equal(t, 2, m.view.Cursor())

	m = typeText(t, m, "a")
	assert.Equal(t, 0, m.view.Cursor())
}

func TestUpDown_Navigation(t *testing.T) {
	m, _ := newTestModel(newFakeWorkspace(), []string{"a.md", "b.md", "c.md"})

	m, _ = press(t, m, tea.KeyUp)
	assert.Equal(t, 0, m.view.Cursor(), "up at top is a no-op")

	m, _ = press(t, m, tea.KeyDown)
	m, _ = press(t, m, tea.KeyDown)
	assert.Equal(t, 2, m.view.Cursor())

	m, _ = press(t, m, tea.KeyDown)
	assert.Equal(t, 2, m.view.Cursor(), "down at bottom is a no-op")

	m, _ = press(t, m, tea.KeyCtrlP)
	assert.Equal(t, 1, m.view.Cursor())
	m, _ = press(t, m, tea.KeyCtrlN)
	assert.Equal(t, 2, m.view.Cursor())
}

func TestUpDown_NoOpWhenEmpty(t *testing.T) {
	m, _ := newTestModel(newFakeWorkspace(), nil)
	m, _ = press(t, m, tea.KeyDown)
	m, _ = press(t, m, tea.KeyUp)
	assert.Equal(t, 0, m.view.Cursor())
}

// --- Close ---

func TestEsc_ClosesAndPersistsOriginalList(t *testing.T) {
	candidates := []string{"a.md", "b.md", "c.md"}
	m, rec := newTestModel(newFakeWorkspace(), candidates)
	m = typeText(t, m, "b")

	m, cmd := press(t, m, tea.KeyEsc)
	assert.True(t, m.IsClosed())
	assert.True(t, isQuit(cmd))
	require.Len(t, rec.calls, 1)
	assert.Equal(t, candidates, rec.calls[0])
	assert.Equal(t, "", m.Opened())
}

func TestCtrlC_Closes(t *testing.T) {
	m, rec := newTestModel(newFakeWorkspace(), []string{"a.md"})
	m, cmd := press(t, m, tea.KeyCtrlC)
	assert.True(t, m.IsClosed())
	assert.True(t, isQuit(cmd))
	assert.Len(t, rec.calls, 1)
}

func TestClosed_IgnoresFurtherInput(t *testing.T) {
	m, rec := newTestModel(newFakeWorkspace(), []string{"a.md"})
	m, _ = press(t, m, tea.KeyEsc)

	m, cmd := press(t, m, tea.KeyEsc)
	assert.Nil(t, cmd)
	m, _ = update(t, m, openedMsg{path: "a.md"})
	assert.True(t, m.IsClosed())
	assert.Len(t, rec.calls, 1, "persist runs exactly once")
	assert.Equal(t, "", m.View())
}

// --- Activation ---

func TestEnter_ActivatesSelectedInNewTab(t *testing.T) {
	ws := newFakeWorkspace("a.md", "b.md")
	m, rec := newTestModel(ws, []string{"a.md", "b.md"})
	m, _ = press(t, m, tea.KeyDown)

	m, cmd := press(t, m, tea.KeyEnter)
	assert.True(t, m.IsClosed())
	assert.True(t, isQuit(cmd))
	assert.Equal(t, "b.md", m.Opened())
	require.Len(t, ws.created, 1)
	assert.Equal(t, host.PaneTab, ws.created[0].Kind())
	assert.Equal(t, []string{"b.md"}, ws.created[0].opened)
	assert.Equal(t, [][]string{{"a.md", "b.md"}}, rec.calls)
}

func TestEnter_ReusesMostRecentPane(t *testing.T) {
	ws := newFakeWorkspace("a.md")
	existing := &fakePane{id: "pane-1", kind: host.PaneTab}
	ws.last = existing
	m, _ := newTestModel(ws, []string{"a.md"})

	m, _ = press(t, m, tea.KeyEnter)
	assert.True(t, m.IsClosed())
	assert.Empty(t, ws.created)
	assert.Equal(t, []string{"a.md"}, existing.opened)
}

func TestEnter_RunsEditorThenCloses(t *testing.T) {
	ws := newFakeWorkspace("a.md")
	ws.last = &fakePane{id: "pane-1", kind: host.PaneTab, cmd: func(f host.File) *exec.Cmd {
		return exec.Command("true", f.AbsPath)
	}}
	m, rec := newTestModel(ws, []string{"a.md"})

	m, cmd := press(t, m, tea.KeyEnter)
	require.NotNil(t, cmd)
	assert.False(t, m.IsClosed(), "modal stays up while the editor runs")
	assert.Equal(t, "a.md", m.Opened())
	assert.Empty(t, rec.calls)

	m, cmd = update(t, m, openedMsg{path: "a.md"})
	assert.True(t, m.IsClosed())
	assert.True(t, isQuit(cmd))
	assert.Len(t, rec.calls, 1)
}

func TestEditorFailure_StillCloses(t *testing.T) {
	m, rec := newTestModel(newFakeWorkspace("a.md"), []string{"a.md"})
	m.opened = "a.md"

	m, cmd := update(t, m, openedMsg{path: "a.md", err: errors.New("exit status 1")})
	assert.True(t, m.IsClosed())
	assert.True(t, isQuit(cmd))
	assert.Len(t, rec.calls, 1)
}

func TestEnter_MissingFileIsNoOp(t *testing.T) {
	ws := newFakeWorkspace()
	m, rec := newTestModel(ws, []string{"gone.md"})

	m, cmd := press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.False(t, m.IsClosed())
	assert.Equal(t, "", m.Opened())
	assert.Empty(t, ws.created)
	assert.Empty(t, rec.calls)
}

func TestEnter_EmptyListIsNoOp(t *testing.T) {
	ws := newFakeWorkspace("a.md")
	m, rec := newTestModel(ws, []string{"a.md"})
	m = typeText(t, m, "zzz")
	require.Equal(t, 0, m.view.Len())

	m, cmd := press(t, m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Equal(t, stateFiltered, m.state)
	assert.Empty(t, ws.created)
	assert.Empty(t, rec.calls)
}

// --- Mouse ---

func click(t *testing.T, m Model, y int) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, tea.MouseMsg{
		X:      3,
		Y:      y,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})
}

func TestClick_ActivatesRowIgnoringCursor(t *testing.T) {
	ws := newFakeWorkspace("a.md", "b.md", "c.md")
	m, _ := newTestModel(ws, []string{"a.md", "b.md", "c.md"})

	m, _ = click(t, m, listTop+2)
	assert.True(t, m.IsClosed())
	assert.Equal(t, "c.md", m.Opened())
	assert.Equal(t, 0, m.view.Cursor())
}

func TestClick_OutsideRowsIsNoOp(t *testing.T) {
	ws := newFakeWorkspace("a.md")
	m, _ := newTestModel(ws, []string{"a.md"})

	m, _ = click(t, m, 0)
	assert.False(t, m.IsClosed())
	m, _ = click(t, m, listTop+5)
	assert.False(t, m.IsClosed())
	assert.Empty(t, ws.created)
}

func TestMouseWheel_MovesCursor(t *testing.T) {
	m, _ := newTestModel(newFakeWorkspace(), []string{"a.md", "b.md"})
	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Equal(t, 1, m.view.Cursor())
	m, _ = update(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Equal(t, 0, m.view.Cursor())
}

// --- Clipboard ---

func TestCopy_WritesSelectedPath(t *testing.T) {
	var copied string
	m, _ := newTestModel(newFakeWorkspace(), []string{"a.md", "b.md"},
		WithClipboard(func(s string) error { copied = s; return nil }))
	m, _ = press(t, m, tea.KeyDown)

	m, cmd := press(t, m, tea.KeyCtrlY)
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, "b.md", copied)
	assert.Contains(t, m.View(), "Copied b.md")
	assert.False(t, m.IsClosed())
}

func TestCopy_FailureShownInStatus(t *testing.T) {
	m, _ := newTestModel(newFakeWorkspace(), []string{"a.md"},
		WithClipboard(func(string) error { return errors.New("no clipboard") }))

	m, cmd := press(t, m, tea.KeyCtrlY)
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Contains(t, m.View(), "Copy failed: no clipboard")
}

func TestCopy_EmptyListIsNoOp(t *testing.T) {
	m, _ := newTestModel(newFakeWorkspace(), nil,
		WithClipboard(func(string) error { t.Fatal("clipboard written"); return nil }))
	_, cmd := press(t, m, tea.KeyCtrlY)
	assert.Nil(t, cmd)
}

// --- Rendering ---

func TestView_ShowsTitleSearchAndRows(t *testing.T) {
	m, _ := newTestModel(newFakeWorkspace(), []string{"notes/todo.md", "journal.txt"})
	out := m.View()
	assert.Contains(t, out, "Recent Files")
	assert.Contains(t, out, "Search")
	assert.Contains(t, out, "> notes/todo")
	assert.Contains(t, out, "  journal")
	assert.NotContains(t, out, "todo.md")
	assert.Contains(t, out, "2 files")
}

func TestView_EmptyStates(t *testing.T) {
	m, _ := newTestModel(newFakeWorkspace(), nil)
	assert.Contains(t, m.View(), "No recent files")

	m, _ = newTestModel(newFakeWorkspace(), []string{"a.md"})
	m = typeText(t, m, "x")
	assert.Contains(t, m.View(), "No matches")
	assert.Contains(t, m.View(), "0/1")
}

func TestView_HelpToggle(t *testing.T) {
	m, _ := newTestModel(newFakeWorkspace(), []string{"a.md"})
	assert.Contains(t, m.View(), "copy path")

	m, _ = newTestModel(newFakeWorkspace(), []string{"a.md"}, WithHelp(false))
	assert.NotContains(t, m.View(), "copy path")
}

func TestView_ScrollKeepsCursorVisible(t *testing.T) {
	var files []string
	for _, c := range "abcdefghij" {
		files = append(files, string(c)+".md")
	}
	m, _ := newTestModel(newFakeWorkspace(), files)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 7})
	require.Equal(t, 3, m.listHeight())

	for range 5 {
		m, _ = press(t, m, tea.KeyDown)
	}
	assert.Equal(t, 3, m.top)
	out := m.View()
	assert.Contains(t, out, "> f")
	assert.NotContains(t, out, "  a\n")

	m = typeText(t, m, "a")
	assert.Equal(t, 0, m.top)
}

func TestView_ShortTerminalClampsList(t *testing.T) {
	var files []string
	for i := range 30 {
		files = append(files, fmt.Sprintf("f%02d.md", i))
	}
	m, rec := newTestModel(newFakeWorkspace(files...), files)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 4})
	require.Equal(t, 1, m.listHeight())
	assert.Equal(t, 1, strings.Count(m.viewList(), "\n")+1)

	for range 3 {
		m, _ = press(t, m, tea.KeyDown)
	}
	assert.Equal(t, 3, m.top)
	assert.Contains(t, m.viewList(), "> f03")
	assert.NotContains(t, m.viewList(), "f04")

	m, cmd := click(t, m, listTop+1)
	assert.Nil(t, cmd)
	assert.False(t, m.IsClosed())
	assert.Empty(t, rec.calls)
}

func TestView_TruncatesToWidth(t *testing.T) {
	long := strings.Repeat("x", 30) + "/" + strings.Repeat("y", 30) + ".md"
	m, _ := newTestModel(newFakeWorkspace(), []string{long})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 24, Height: 10})
	assert.Contains(t, m.View(), "…")
}

func TestClick_UsesScrollOffset(t *testing.T) {
	var files []string
	for _, c := range "abcdef" {
		files = append(files, string(c)+".md")
	}
	m, _ := newTestModel(newFakeWorkspace(files...), files)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 6})
	for range 4 {
		m, _ = press(t, m, tea.KeyDown)
	}
	require.Equal(t, 3, m.top)

	m, _ = click(t, m, listTop)
	assert.Equal(t, "d.md", m.Opened())
}

func TestCandidates_IgnoresFilter(t *testing.T) {
	m, _ := newTestModel(newFakeWorkspace(), []string{"a.md", "b.md"})
	m = typeText(t, m, "a")
	assert.Equal(t, []string{"a.md", "b.md"}, m.Candidates())
}

// --- Program runs ---

func TestProgram_TypeThenDismiss(t *testing.T) {
	candidates := []string{"alpha.md", "beta.md"}
	rec := &persistRecorder{}
	m := New(candidates, NewActivator(newFakeWorkspace(), nil), rec.persist)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))
	tm.Type("bet")
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})

	fm, ok := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	require.True(t, ok)
	assert.True(t, fm.IsClosed())
	assert.Equal(t, "bet", fm.view.Query())
	assert.Equal(t, [][]string{candidates}, rec.calls)
}

func TestProgram_TypeThenOpen(t *testing.T) {
	ws := newFakeWorkspace("alpha.md", "beta.md")
	rec := &persistRecorder{}
	m := New([]string{"alpha.md", "beta.md"}, NewActivator(ws, nil), rec.persist)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))
	tm.Type("be")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	fm, ok := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	require.True(t, ok)
	assert.Equal(t, "beta.md", fm.Opened())
	require.Len(t, ws.created, 1)
	assert.Equal(t, []string{"beta.md"}, ws.created[0].opened)
	assert.Len(t, rec.calls, 1)
}

func TestClose_OutsideProgramPersistsOnce(t *testing.T) {
	m, rec := newTestModel(newFakeWorkspace(), []string{"a.md"})
	m = m.Close()
	m = m.Close()
	assert.True(t, m.IsClosed())
	assert.Len(t, rec.calls, 1)
}
