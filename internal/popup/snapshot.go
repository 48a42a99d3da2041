package popup

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ButtonKind selects the visual treatment of a footer button.
type ButtonKind int

const (
	KindNone ButtonKind = iota
	KindConfirm
	KindError
)

// Position is the alignment of the footer button row.
type Position int

const (
	PositionLeft Position = iota
	PositionRight
	PositionCenter
)

// Handler runs when its button is pressed. A non-nil command is handed back
// to the Bubble Tea runtime, which is how deferred work re-enters the dialog.
type Handler func() tea.Cmd

// SharedHandler runs after every button's own handler with the pressed label.
type SharedHandler func(label string) tea.Cmd

// Button is one entry of the footer row.
type Button struct {
	Text     string
	Handler  Handler
	Kind     ButtonKind
	Style    lipgloss.Style
	Disabled bool
}

// Buttons describes the whole footer row.
type Buttons struct {
	Items       []Button
	Shared      SharedHandler
	SharedStyle lipgloss.Style
	Position    Position
}

// Len returns the number of buttons.
func (b Buttons) Len() int {
	return len(b.Items)
}

// EffectiveStyle returns the style of item i with the shared style underneath it.
func (b Buttons) EffectiveStyle(i int) lipgloss.Style {
	return b.Items[i].Style.Inherit(b.SharedStyle)
}

// Press runs the handler of item i followed by the shared handler.
// Disabled or out of range items do nothing.
func (b Buttons) Press(i int) tea.Cmd {
	if i < 0 || i >= len(b.Items) || b.Items[i].Disabled {
		return nil
	}
	item := b.Items[i]
	var cmds []tea.Cmd
	if item.Handler != nil {
		cmds = append(cmds, item.Handler())
	}
	if b.Shared != nil {
		cmds = append(cmds, b.Shared(item.Text))
	}
	return tea.Batch(cmds...)
}

func (b Buttons) clone() Buttons {
	out := b
	if b.Items != nil {
		out.Items = make([]Button, len(b.Items))
		copy(out.Items, b.Items)
	}
	return out
}

// Snapshot is one displayed state of a dialog.
type Snapshot struct {
	Title   string
	Content string
	Buttons Buttons
}

// Clone returns a copy that shares no mutable state with s.
func (s Snapshot) Clone() Snapshot {
	s.Buttons = s.Buttons.clone()
	return s
}

// Patch describes a partial update. Nil fields are left unchanged.
type Patch struct {
	Title   *string
	Content *string
	Buttons *Buttons
}

// Text returns a pointer to s for use in a Patch.
func Text(s string) *string {
	return &s
}

// WithButtons returns a pointer to b for use in a Patch.
func WithButtons(b Buttons) *Buttons {
	b = b.clone()
	return &b
}

// NoButtons returns an explicit empty button row for use in a Patch.
func NoButtons() *Buttons {
	return &Buttons{}
}

// Apply overlays the provided fields of p onto base and returns the result.
func (p Patch) Apply(base Snapshot) Snapshot {
	out := base.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Content != nil {
		out.Content = *p.Content
	}
	if p.Buttons != nil {
		out.Buttons = p.Buttons.clone()
	}
	return out
}
