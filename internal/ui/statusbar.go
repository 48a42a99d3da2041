package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tpopup/internal/theme"
)

// StatusBar shows the current mode and dialog state at the bottom of the screen.
type StatusBar struct {
	mode       string
	message    string // temporary status message
	isError    bool
	pos        int
	total      int
	locked     bool
	scrollInfo string
	width      int
}

// NewStatusBar creates a new status bar.
func NewStatusBar() StatusBar {
	return StatusBar{
		mode: "NORMAL",
	}
}

// SetWidth sets the status bar width.
func (s *StatusBar) SetWidth(w int) {
	s.width = w
}

// SetMode sets the current mode indicator (NORMAL or POPUP).
func (s *StatusBar) SetMode(mode string) {
	s.mode = mode
}

// SetMessage sets a temporary status message.
func (s *StatusBar) SetMessage(msg string) {
	s.message = msg
	s.isError = false
}

// SetError sets a temporary error message.
func (s *StatusBar) SetError(msg string) {
	s.message = msg
	s.isError = true
}

// Message returns the current status message.
func (s *StatusBar) Message() string {
	return s.message
}

// SetHistory sets the dialog history position. pos is 1-based, 0 when empty.
func (s *StatusBar) SetHistory(pos, total int) {
	s.pos = pos
	s.total = total
}

// SetLocked marks the dialog as not closable.
func (s *StatusBar) SetLocked(locked bool) {
	s.locked = locked
}

// SetScrollInfo sets the dialog body scroll position ("" hides it).
func (s *StatusBar) SetScrollInfo(info string) {
	s.scrollInfo = info
}

// View renders the status bar.
func (s *StatusBar) View() string {
	t := theme.Current

	modeStyle := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(t.Background)

	switch s.mode {
	case "NORMAL":
		modeStyle = modeStyle.Background(t.Primary)
	case "POPUP":
		modeStyle = modeStyle.Background(t.Accent)
	default:
		modeStyle = modeStyle.Background(t.Secondary)
	}
	mode := modeStyle.Render(s.mode)

	barStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Background(t.Surface)

	var left string
	if s.message != "" {
		color := t.Info
		if s.isError {
			color = t.Error
		}
		msgStyle := lipgloss.NewStyle().
			Foreground(color).
			Background(t.Surface).
			Padding(0, 1)
		left = msgStyle.Render(s.message)
	}

	rightStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface).
		Padding(0, 1)

	var right string
	if s.locked {
		right += rightStyle.Render("locked")
	}
	if s.scrollInfo != "" {
		right += rightStyle.Render(s.scrollInfo)
	}
	if s.total > 0 {
		histStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary).
			Background(t.Surface).
			Padding(0, 1)
		right += histStyle.Render(fmt.Sprintf("%d/%d", s.pos, s.total))
	}

	modeWidth := lipgloss.Width(mode)
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	spacerWidth := max(s.width-modeWidth-leftWidth-rightWidth, 0)

	spacerStyle := lipgloss.NewStyle().
		Background(t.Surface)
	spacer := spacerStyle.Render(fmt.Sprintf("%*s", spacerWidth, ""))

	return barStyle.Render(mode + left + spacer + right)
}
