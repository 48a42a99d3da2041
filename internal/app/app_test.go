package app

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidyasagar/tpopup/internal/storage"
)

func newTestModel(t *testing.T) (Model, *storage.FileStore) {
	t.Helper()
	db, err := storage.OpenDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	files := storage.NewFileStore(db)
	require.NoError(t, files.Seed(context.Background(), []string{"a.txt", "b.txt"}))

	cfg := storage.DefaultConfig()
	cfg.Render.Style = "plain"
	cfg.Demo.DeleteDelay = time.Millisecond

	m := New(Options{Config: &cfg, Files: files})
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = send(t, m, m.Init()())
	return m, files
}

// send feeds msg to the model and returns the updated model.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func sendCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_LoadsFiles(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, 2, m.fileList.Len())
	assert.Contains(t, m.View(), "a.txt")
	assert.Equal(t, ModeNormal, m.mode)
}

func TestModel_BasicPopup(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, runes("o"))
	assert.Equal(t, ModePopup, m.mode)
	assert.Contains(t, m.View(), "Basic popup")
	assert.Contains(t, m.View(), "close")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeNormal, m.mode)
	assert.False(t, m.basic.ctrl.Visible())
}

func TestModel_HTMLPopup(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, runes("p"))
	view := m.View()
	assert.Contains(t, view, "This is HTML content with")
	assert.NotContains(t, view, "<b>")
}

func TestModel_QuitOnlyInNormalMode(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, runes("o"))
	m, cmd := sendCmd(t, m, runes("q"))
	assert.Nil(t, cmd)
	assert.True(t, m.basic.ctrl.Visible())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd = sendCmd(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_DeleteFlow(t *testing.T) {
	m, files := newTestModel(t)

	m = send(t, m, runes("d"))
	require.True(t, m.confirm.ctrl.Visible())
	assert.Contains(t, m.View(), "Are you sure you want to delete a.txt?")
	_, total := m.confirm.ctrl.HistoryPos()
	assert.Equal(t, 1, total)

	// Delete is the first button and starts focused.
	m, tick := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, tick)
	assert.Contains(t, m.View(), "File is being deleted, please wait...")
	assert.False(t, m.confirm.ctrl.AllowClosing())
	_, total = m.confirm.ctrl.HistoryPos()
	assert.Equal(t, 1, total, "busy state is not recorded")

	// Locked: escape is ignored.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.confirm.ctrl.Visible())

	m, del := sendCmd(t, m, tick())
	require.NotNil(t, del)
	m, reload := sendCmd(t, m, del())
	assert.Contains(t, m.View(), "File was deleted!")
	assert.True(t, m.confirm.ctrl.AllowClosing())
	_, total = m.confirm.ctrl.HistoryPos()
	assert.Equal(t, 2, total)

	n, err := files.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	m = send(t, m, reload())
	assert.Equal(t, 1, m.fileList.Len())

	// OK closes the dialog.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.confirm.ctrl.Visible())
	assert.Equal(t, ModeNormal, m.mode)
}

func TestModel_DeleteCancel(t *testing.T) {
	m, files := newTestModel(t)

	m = send(t, m, runes("d"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, cmd := sendCmd(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, m.confirm.ctrl.Visible())

	n, err := files.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestModel_LateDeleteResultAfterClose(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, fileDeletedMsg{name: "a.txt"})
	assert.False(t, m.confirm.ctrl.Visible())
	assert.Equal(t, ModeNormal, m.mode)

	m = send(t, m, runes("d"))
	require.True(t, m.confirm.ctrl.Visible())
	pos, total := m.confirm.ctrl.HistoryPos()
	assert.Equal(t, 1, pos)
	assert.Equal(t, 1, total)

	m = send(t, m, runes("["))
	assert.Contains(t, m.View(), "Are you sure you want to delete a.txt?")
	assert.NotContains(t, m.View(), "File was deleted!")
}

func TestModel_DeleteMissingFile(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, runes("d"))
	m, del := sendCmd(t, m, deleteFileMsg{id: 999, name: "ghost.txt"})
	require.NotNil(t, del)
	m = send(t, m, del())
	assert.Contains(t, m.View(), "Could not delete ghost.txt")
}

func TestModel_HelpPages(t *testing.T) {
	m, _ := newTestModel(t)

	m = send(t, m, runes("?"))
	pos, total := m.basic.ctrl.HistoryPos()
	assert.Equal(t, 1, pos)
	assert.Equal(t, 3, total)
	assert.Contains(t, m.View(), "Help (1/3)")
	assert.Contains(t, m.View(), "move through the file list")
	assert.Contains(t, m.View(), "delete the selected file")

	m = send(t, m, runes("]"))
	assert.Contains(t, m.View(), "Help (2/3)")
	assert.Contains(t, m.View(), "copies the dialog text")

	m = send(t, m, runes("}"))
	pos, _ = m.basic.ctrl.HistoryPos()
	assert.Equal(t, 3, pos)

	m = send(t, m, runes("{"))
	pos, _ = m.basic.ctrl.HistoryPos()
	assert.Equal(t, 1, pos)

	// The Next button pages forward too.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	pos, _ = m.basic.ctrl.HistoryPos()
	assert.Equal(t, 2, pos)

	m = send(t, m, runes("["))
	assert.Contains(t, m.View(), "Help (1/3)")
	assert.Contains(t, m.statusBar.View(), "1/3")
}

func TestModel_StartContent(t *testing.T) {
	cfg := storage.DefaultConfig()
	cfg.Render.Style = "plain"
	m := New(Options{Config: &cfg, Content: "hello from a file"})
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, ModePopup, m.mode)
	assert.Contains(t, m.View(), "hello from a file")
	assert.Nil(t, m.Init())
}

func TestModel_DeleteWithoutCatalog(t *testing.T) {
	cfg := storage.DefaultConfig()
	cfg.Render.Style = "plain"
	m := New(Options{Config: &cfg})
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m = send(t, m, runes("d"))
	assert.False(t, m.confirm.ctrl.Visible())
	assert.Contains(t, m.statusBar.Message(), "unavailable")
}
