package ui

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/vidyasagar/tpopup/internal/clipboard"
	"github.com/vidyasagar/tpopup/internal/logging"
	"github.com/vidyasagar/tpopup/internal/markup"
	"github.com/vidyasagar/tpopup/internal/popup"
	"github.com/vidyasagar/tpopup/internal/theme"
)

const (
	defaultCloseLabel = "✕"
	minBoxWidth       = 20
	fallbackWidth     = 80
	fallbackHeight    = 24
	wheelDelta        = 3
)

// CopyResultMsg reports the outcome of copying the dialog body.
type CopyResultMsg struct {
	Chars int
	Err   error
}

type modalKeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Press    key.Binding
	Dismiss  key.Binding
	Copy     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

var modalKeys = modalKeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "right", "l"),
		key.WithHelp("tab", "next button"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "left", "h"),
		key.WithHelp("shift+tab", "prev button"),
	),
	Press: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "press"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy text"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("k/↑", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/↓", "scroll down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "page down"),
	),
}

var _ popup.Surface = (*Modal)(nil)

// Modal draws a dialog box over the rest of the screen. It is the terminal
// Surface for a popup.Controller: it renders snapshots, turns keys and mouse
// presses into button presses and dismiss requests, and never decides on its
// own whether to close.
type Modal struct {
	renderer   *markup.Renderer
	snapshot   popup.Snapshot
	opts       popup.Options
	closeLabel string
	visible    bool
	focus      int // button index, -1 when nothing is focusable
	body       Body
	width      int
	height     int
	onDismiss  func(popup.DismissReason)
	copyFn     func(string) error
	log        *slog.Logger

	// Geometry of the last layout, in screen cells.
	innerWidth int
	box        rect
	closeHit   rect
	buttonHits []rect
	footerOff  int
	labelMax   int // button label cap in cells, 0 when labels fit
}

// NewModal creates a hidden modal that renders content with r.
func NewModal(r *markup.Renderer) *Modal {
	m := &Modal{
		renderer:   r,
		opts:       popup.DefaultOptions(),
		closeLabel: defaultCloseLabel,
		focus:      -1,
		copyFn:     clipboard.Copy,
		log:        logging.ForComponent(logging.CompUI),
	}
	m.layout()
	return m
}

// Render replaces the displayed snapshot.
func (m *Modal) Render(s popup.Snapshot) {
	m.snapshot = s.Clone()
	m.focus = m.firstEnabled()
	m.layout()
}

// Show makes the modal visible.
func (m *Modal) Show() {
	m.visible = true
}

// Hide hides the modal.
func (m *Modal) Hide() {
	m.visible = false
}

// ApplyOptions updates placement, width, margin and interaction settings.
func (m *Modal) ApplyOptions(o popup.Options) {
	m.opts = o
	m.layout()
}

// SetCloseLabel sets the text of the header close control.
func (m *Modal) SetCloseLabel(label string) {
	if label == "" {
		label = defaultCloseLabel
	}
	m.closeLabel = label
	m.layout()
}

// OnDismiss registers the dismiss listener.
func (m *Modal) OnDismiss(fn func(popup.DismissReason)) {
	m.onDismiss = fn
}

// SetSize updates the screen dimensions the modal is placed in.
func (m *Modal) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.layout()
}

// IsVisible reports whether the modal is shown.
func (m *Modal) IsVisible() bool {
	return m.visible
}

// Focus returns the focused button index, or -1.
func (m *Modal) Focus() int {
	return m.focus
}

// ScrollInfo returns the body scroll position, or "" when it all fits.
func (m *Modal) ScrollInfo() string {
	if !m.body.Scrollable() {
		return ""
	}
	return m.body.ScrollInfo()
}

// Update handles input while the modal is visible.
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}
	return m, nil
}

func (m *Modal) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, modalKeys.Dismiss):
		m.dismiss(popup.DismissEscape)
	case key.Matches(msg, modalKeys.Next):
		m.moveFocus(1)
	case key.Matches(msg, modalKeys.Prev):
		m.moveFocus(-1)
	case key.Matches(msg, modalKeys.Press):
		return m.press(m.focus)
	case key.Matches(msg, modalKeys.Copy):
		return m.copyBody()
	case key.Matches(msg, modalKeys.Up):
		m.body.LineUp(1)
	case key.Matches(msg, modalKeys.Down):
		m.body.LineDown(1)
	case key.Matches(msg, modalKeys.PageUp):
		m.body.PageUp()
	case key.Matches(msg, modalKeys.PageDown):
		m.body.PageDown()
	}
	return nil
}

func (m *Modal) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.body.LineUp(wheelDelta)
		return nil
	case tea.MouseButtonWheelDown:
		m.body.LineDown(wheelDelta)
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	switch {
	case m.closeHit.contains(msg.X, msg.Y):
		m.dismiss(popup.DismissCloseButton)
	case !m.box.contains(msg.X, msg.Y):
		m.dismiss(popup.DismissOutside)
	default:
		for i, r := range m.buttonHits {
			if r.contains(msg.X, msg.Y) {
				if !m.snapshot.Buttons.Items[i].Disabled {
					m.focus = i
				}
				return m.press(i)
			}
		}
	}
	return nil
}

func (m *Modal) press(i int) tea.Cmd {
	// Handlers may re-render the modal, so read the buttons first.
	buttons := m.snapshot.Buttons
	if i < 0 || i >= buttons.Len() {
		return nil
	}
	m.log.Debug("button pressed", "label", buttons.Items[i].Text)
	return buttons.Press(i)
}

func (m *Modal) dismiss(r popup.DismissReason) {
	m.log.Debug("dismiss requested", "reason", r.String())
	if m.onDismiss != nil {
		m.onDismiss(r)
	}
}

func (m *Modal) copyBody() tea.Cmd {
	if !m.opts.AllowSelect {
		return nil
	}
	text := m.body.Plain()
	if text == "" {
		return nil
	}
	copyFn := m.copyFn
	return func() tea.Msg {
		return CopyResultMsg{Chars: utf8.RuneCountInString(text), Err: copyFn(text)}
	}
}

func (m *Modal) firstEnabled() int {
	for i, b := range m.snapshot.Buttons.Items {
		if !b.Disabled {
			return i
		}
	}
	return -1
}

func (m *Modal) moveFocus(dir int) {
	items := m.snapshot.Buttons.Items
	n := len(items)
	if n == 0 {
		return
	}
	start := m.focus
	if start < 0 {
		if dir > 0 {
			start = -1
		} else {
			start = n
		}
	}
	for step := 1; step <= n; step++ {
		i := ((start+dir*step)%n + n) % n
		if !items[i].Disabled {
			m.focus = i
			return
		}
	}
}

func (m *Modal) screen() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = fallbackWidth
	}
	if h <= 0 {
		h = fallbackHeight
	}
	return w, h
}

// layout renders the body for the current width and recomputes the box
// geometry used for drawing and mouse hit-testing.
func (m *Modal) layout() {
	sw, sh := m.screen()
	margin := max(m.opts.Margin, 0)

	boxW := m.opts.MaxWidth
	if boxW <= 0 {
		boxW = popup.DefaultOptions().MaxWidth
	}
	if avail := sw - 2*margin; boxW > avail {
		boxW = avail
	}
	if boxW < minBoxWidth {
		boxW = min(minBoxWidth, sw)
	}
	m.innerWidth = max(boxW-4, 1)

	m.body.SetContent(m.renderer.Render(m.snapshot.Content, m.innerWidth))

	// Borders, header and separator; the footer adds a separator and a row.
	chrome := 4
	hasFooter := m.snapshot.Buttons.Len() > 0
	if hasFooter {
		chrome += 2
	}
	bodyH := min(m.body.Lines(), sh-2*margin-chrome)
	if bodyH < 1 {
		bodyH = 1
	}
	m.body.SetSize(m.innerWidth, bodyH)

	boxH := chrome + bodyH
	x := (sw - boxW) / 2
	var y int
	switch m.opts.Placement {
	case popup.PlacementCenter:
		y = (sh - boxH) / 2
	case popup.PlacementBottom:
		y = sh - boxH - margin
	default:
		y = margin
	}
	m.box = rect{x: max(x, 0), y: max(y, 0), w: boxW, h: boxH}

	closeW := ansi.StringWidth(m.closeLabel)
	m.closeHit = rect{x: m.box.x + 2 + m.innerWidth - closeW, y: m.box.y + 1, w: closeW, h: 1}

	m.buttonHits = m.buttonHits[:0]
	m.footerOff = 0
	m.labelMax = 0
	if !hasFooter {
		return
	}
	n := m.snapshot.Buttons.Len()
	widths, total := m.buttonWidths(n)
	if total > m.innerWidth {
		// Share the row evenly; each button carries one cell of padding per side.
		m.labelMax = max((m.innerWidth-(n-1))/n-2, 1)
		widths, total = m.buttonWidths(n)
	}

	switch m.snapshot.Buttons.Position {
	case popup.PositionRight:
		m.footerOff = m.innerWidth - total
	case popup.PositionCenter:
		m.footerOff = (m.innerWidth - total) / 2
	}
	m.footerOff = max(m.footerOff, 0)

	col := m.box.x + 2 + m.footerOff
	end := m.box.x + 2 + m.innerWidth
	row := m.box.y + boxH - 2
	for _, w := range widths {
		// Buttons pushed past the edge by wide styles stay unclickable.
		w = max(min(w, end-col), 0)
		m.buttonHits = append(m.buttonHits, rect{x: col, y: row, w: w, h: 1})
		col = min(col+w+1, end)
	}
}

func (m *Modal) buttonWidths(n int) ([]int, int) {
	widths := make([]int, n)
	total := n - 1
	for i := range widths {
		widths[i] = lipgloss.Width(m.renderButton(i))
		total += widths[i]
	}
	return widths, total
}

func (m *Modal) kindStyle(kind popup.ButtonKind) lipgloss.Style {
	t := theme.Current
	switch kind {
	case popup.KindConfirm:
		return lipgloss.NewStyle().Foreground(t.Background).Background(t.Confirm)
	case popup.KindError:
		return lipgloss.NewStyle().Foreground(t.Background).Background(t.Error)
	default:
		return lipgloss.NewStyle().Foreground(t.Text).Background(t.Surface)
	}
}

func (m *Modal) renderButton(i int) string {
	t := theme.Current
	b := m.snapshot.Buttons
	item := b.Items[i]

	style := b.EffectiveStyle(i).Inherit(m.kindStyle(item.Kind))
	switch {
	case item.Disabled:
		style = style.Foreground(t.Disabled).Faint(true)
	case i == m.focus:
		style = style.Bold(true).Underline(true)
	}
	label := markup.Inline(item.Text)
	if m.labelMax > 0 {
		label = ansi.Truncate(label, m.labelMax, "…")
	}
	return style.Render(" " + label + " ")
}

func (m *Modal) renderBox() string {
	t := theme.Current

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary)

	closeStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	sepStyle := lipgloss.NewStyle().
		Foreground(t.Border)

	closeW := ansi.StringWidth(m.closeLabel)
	title := ansi.Truncate(markup.Inline(m.snapshot.Title), max(m.innerWidth-closeW-1, 0), "…")
	gap := max(m.innerWidth-ansi.StringWidth(title)-closeW, 0)
	header := titleStyle.Render(title) + strings.Repeat(" ", gap) + closeStyle.Render(m.closeLabel)
	sep := sepStyle.Render(strings.Repeat("─", m.innerWidth))

	rows := []string{header, sep, m.body.View()}
	if n := m.snapshot.Buttons.Len(); n > 0 {
		parts := make([]string, n)
		for i := range parts {
			parts[i] = m.renderButton(i)
		}
		footer := strings.Repeat(" ", m.footerOff) + strings.Join(parts, " ")
		rows = append(rows, sep, ansi.Truncate(footer, m.innerWidth, ""))
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Width(m.innerWidth + 2)

	return boxStyle.Render(strings.Join(rows, "\n"))
}

// View draws the modal over base, or returns base unchanged when hidden.
func (m *Modal) View(base string) string {
	if !m.visible {
		return base
	}
	sw, _ := m.screen()
	return Place(base, m.renderBox(), m.box.x, m.box.y, sw)
}
