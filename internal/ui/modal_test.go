package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidyasagar/tpopup/internal/markup"
	"github.com/vidyasagar/tpopup/internal/popup"
)

func newTestModal(t *testing.T) (*Modal, *popup.Controller) {
	t.Helper()
	m := NewModal(markup.New(markup.WithStyle("plain")))
	m.SetSize(80, 24)
	ctrl := popup.NewController(m, popup.Snapshot{})
	return m, ctrl
}

func blankScreen(w, h int) string {
	line := strings.Repeat(" ", w)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func okCancel(pressed *[]string) popup.Buttons {
	record := func(label string) popup.Handler {
		return func() tea.Cmd {
			*pressed = append(*pressed, label)
			return nil
		}
	}
	return popup.Buttons{Items: []popup.Button{
		{Text: "OK", Handler: record("OK"), Kind: popup.KindConfirm},
		{Text: "Cancel", Handler: record("Cancel")},
	}}
}

func TestModal_HiddenUntilDisplayed(t *testing.T) {
	m, ctrl := newTestModal(t)
	base := blankScreen(80, 24)

	assert.False(t, m.IsVisible())
	assert.Equal(t, base, m.View(base))

	ctrl.Display(popup.Snapshot{Title: "Hello", Content: "Some body text"})
	assert.True(t, m.IsVisible())
	view := m.View(base)
	assert.Contains(t, view, "Hello")
	assert.Contains(t, view, "Some body text")
	assert.Contains(t, view, defaultCloseLabel)
}

func TestModal_FooterOmittedWithoutButtons(t *testing.T) {
	m, ctrl := newTestModal(t)

	ctrl.Display(popup.Snapshot{Title: "T", Content: "one line"})
	assert.Equal(t, 5, lineCount(m.renderBox()))
	assert.Empty(t, m.buttonHits)

	var pressed []string
	ctrl.Update(popup.Patch{Buttons: popup.WithButtons(okCancel(&pressed))})
	assert.Equal(t, 7, lineCount(m.renderBox()))
	assert.Len(t, m.buttonHits, 2)
}

func lineCount(s string) int {
	return strings.Count(s, "\n") + 1
}

func TestModal_EscapeDismisses(t *testing.T) {
	m, ctrl := newTestModal(t)
	ctrl.Display(popup.Snapshot{Title: "T"})

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.IsVisible())
	assert.False(t, ctrl.Visible())
}

func TestModal_LockedIgnoresDismiss(t *testing.T) {
	m, ctrl := newTestModal(t)
	ctrl.Display(popup.Snapshot{Title: "Busy"}, popup.Locked())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.Update(click(0, 23))
	m.Update(click(m.closeHit.x, m.closeHit.y))
	assert.True(t, m.IsVisible())
	assert.True(t, ctrl.Visible())
}

func TestModal_CloseLabelClick(t *testing.T) {
	m, ctrl := newTestModal(t)
	ctrl.Display(popup.Snapshot{Title: "T", Content: "x"})

	m.Update(click(m.closeHit.x, m.closeHit.y))
	assert.False(t, ctrl.Visible())
}

func TestModal_OutsideClick(t *testing.T) {
	m, ctrl := newTestModal(t)
	ctrl.Display(popup.Snapshot{Title: "T", Content: "x"})

	// Inside the box but not on a control.
	m.Update(click(m.box.x+1, m.box.y+2))
	assert.True(t, ctrl.Visible())

	m.Update(click(0, 23))
	assert.False(t, ctrl.Visible())
}

func TestModal_PreventExternalClose(t *testing.T) {
	m, ctrl := newTestModal(t)
	opts := popup.DefaultOptions()
	opts.PreventExternalClose = true
	ctrl.Options(opts)
	ctrl.Display(popup.Snapshot{Title: "T", Content: "x"})

	m.Update(click(0, 23))
	assert.True(t, ctrl.Visible())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, ctrl.Visible())
}

func TestModal_ButtonClick(t *testing.T) {
	m, ctrl := newTestModal(t)
	var pressed []string
	ctrl.Display(popup.Snapshot{Title: "T", Content: "x", Buttons: okCancel(&pressed)})

	require.Len(t, m.buttonHits, 2)
	hit := m.buttonHits[1]
	m.Update(click(hit.x, hit.y))
	assert.Equal(t, []string{"Cancel"}, pressed)
	assert.Equal(t, 1, m.Focus())
	assert.True(t, ctrl.Visible())
}

func TestModal_KeyboardFocusAndPress(t *testing.T) {
	m, ctrl := newTestModal(t)
	var pressed []string
	buttons := okCancel(&pressed)
	buttons.Items = append(buttons.Items, popup.Button{Text: "Never", Disabled: true})
	ctrl.Display(popup.Snapshot{Title: "T", Buttons: buttons})

	assert.Equal(t, 0, m.Focus())
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.Focus())
	// The disabled third button is skipped.
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.Focus())
	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 1, m.Focus())

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"Cancel"}, pressed)
}

func TestModal_PressReturnsHandlerCmd(t *testing.T) {
	m, ctrl := newTestModal(t)
	type doneMsg struct{}
	ctrl.Display(popup.Snapshot{Title: "T", Buttons: popup.Buttons{Items: []popup.Button{
		{Text: "Go", Handler: func() tea.Cmd {
			return func() tea.Msg { return doneMsg{} }
		}},
	}}})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, doneMsg{}, cmd())
}

func TestModal_HandlerCanUpdateController(t *testing.T) {
	m, ctrl := newTestModal(t)
	ctrl.Display(popup.Snapshot{Title: "Delete file", Content: "Sure?", Buttons: popup.Buttons{Items: []popup.Button{
		{Text: "Delete", Kind: popup.KindError, Handler: func() tea.Cmd {
			ctrl.Update(popup.Patch{Content: popup.Text("Deleting..."), Buttons: popup.NoButtons()},
				popup.Transient(), popup.Locked())
			return nil
		}},
	}}})

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(blankScreen(80, 24)), "Deleting...")
	assert.Empty(t, m.buttonHits)
	assert.Equal(t, -1, m.Focus())
	assert.False(t, ctrl.AllowClosing())
	_, total := ctrl.HistoryPos()
	assert.Equal(t, 1, total)
}

func TestModal_Copy(t *testing.T) {
	m, ctrl := newTestModal(t)
	var copied string
	m.copyFn = func(s string) error {
		copied = s
		return nil
	}
	ctrl.Display(popup.Snapshot{Title: "T", Content: "copy me"})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	msg, ok := cmd().(CopyResultMsg)
	require.True(t, ok)
	assert.NoError(t, msg.Err)
	assert.Equal(t, 7, msg.Chars)
	assert.Equal(t, "copy me", copied)
}

func TestModal_CopyDisabled(t *testing.T) {
	m, ctrl := newTestModal(t)
	opts := popup.DefaultOptions()
	opts.AllowSelect = false
	ctrl.Options(opts)
	ctrl.Display(popup.Snapshot{Title: "T", Content: "copy me"})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	assert.Nil(t, cmd)
}

func TestModal_Placement(t *testing.T) {
	m, ctrl := newTestModal(t)
	ctrl.Display(popup.Snapshot{Title: "T", Content: "x"})

	assert.Equal(t, 1, m.box.y)
	assert.Equal(t, 60, m.box.w)
	assert.Equal(t, 10, m.box.x)

	opts := popup.DefaultOptions()
	opts.Placement = popup.PlacementBottom
	opts.Margin = 2
	ctrl.Options(opts)
	assert.Equal(t, 24-2, m.box.y+m.box.h)

	opts.Placement = popup.PlacementCenter
	opts.MaxWidth = 200
	ctrl.Options(opts)
	assert.Equal(t, (24-m.box.h)/2, m.box.y)
	assert.Equal(t, 80-4, m.box.w)
}

func TestModal_ButtonPosition(t *testing.T) {
	m, ctrl := newTestModal(t)
	var pressed []string
	buttons := okCancel(&pressed)

	ctrl.Display(popup.Snapshot{Title: "T", Buttons: buttons})
	left := m.buttonHits[0].x
	assert.Equal(t, m.box.x+2, left)

	buttons.Position = popup.PositionRight
	ctrl.Update(popup.Patch{Buttons: popup.WithButtons(buttons)})
	last := m.buttonHits[len(m.buttonHits)-1]
	assert.Equal(t, m.box.x+2+m.innerWidth, last.x+last.w)

	buttons.Position = popup.PositionCenter
	ctrl.Update(popup.Patch{Buttons: popup.WithButtons(buttons)})
	assert.Greater(t, m.buttonHits[0].x, left)
}

func TestModal_LongButtonLabelsStayInBox(t *testing.T) {
	m, ctrl := newTestModal(t)
	var pressed []string
	label := strings.Repeat("very long label ", 3)
	items := make([]popup.Button, 3)
	for i := range items {
		items[i] = popup.Button{Text: label}
	}
	ctrl.Display(popup.Snapshot{
		Title:   "T",
		Content: "x",
		Buttons: popup.Buttons{
			Items:  items,
			Shared: func(l string) tea.Cmd { pressed = append(pressed, l); return nil },
		},
	})

	box := m.renderBox()
	assert.Equal(t, m.box.h, lineCount(box))
	for _, line := range strings.Split(box, "\n") {
		assert.Equal(t, m.box.w, ansi.StringWidth(line))
	}
	assert.Contains(t, box, "…")

	require.Len(t, m.buttonHits, 3)
	end := m.box.x + 2 + m.innerWidth
	for _, hit := range m.buttonHits {
		assert.Positive(t, hit.w)
		assert.LessOrEqual(t, hit.x+hit.w, end)
	}

	hit := m.buttonHits[2]
	m.Update(click(hit.x, hit.y))
	assert.Equal(t, []string{label}, pressed)
}

func TestModal_LongBodyScrolls(t *testing.T) {
	m, ctrl := newTestModal(t)
	lines := make([]string, 60)
	for i := range lines {
		lines[i] = "line"
	}
	ctrl.Display(popup.Snapshot{Title: "T", Content: strings.Join(lines, "\n")})

	assert.LessOrEqual(t, m.box.y+m.box.h, 24)
	assert.Equal(t, "TOP", m.ScrollInfo())
	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.NotEqual(t, "TOP", m.ScrollInfo())
}

func TestModal_CustomCloseLabel(t *testing.T) {
	m := NewModal(markup.New(markup.WithStyle("plain")))
	ctrl := popup.NewController(m, popup.Snapshot{}, popup.WithCloseLabel("[close]"))
	ctrl.Display(popup.Snapshot{Title: "T"})

	assert.Contains(t, m.View(blankScreen(80, 24)), "[close]")
	assert.Equal(t, 7, m.closeHit.w)
}

func TestModal_CloseRestoresInitial(t *testing.T) {
	m := NewModal(markup.New(markup.WithStyle("plain")))
	ctrl := popup.NewController(m, popup.Snapshot{Title: "Idle"})
	ctrl.Display(popup.Snapshot{Title: "Busy"})
	ctrl.Close()

	assert.Equal(t, "Idle", m.snapshot.Title)
}
