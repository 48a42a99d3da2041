package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"
)

// Body is the scrollable content area of a dialog.
type Body struct {
	viewport viewport.Model
	ready    bool
	content  string
	lines    int
}

// SetSize updates the body dimensions.
func (b *Body) SetSize(width, height int) {
	if !b.ready {
		b.viewport = viewport.New(width, height)
		b.ready = true
	} else {
		b.viewport.Width = width
		b.viewport.Height = height
	}
	if b.content != "" {
		b.viewport.SetContent(b.content)
	}
}

// SetContent replaces the rendered content and scrolls to the top.
func (b *Body) SetContent(content string) {
	b.content = content
	b.lines = strings.Count(content, "\n") + 1
	if content == "" {
		b.lines = 0
	}
	if !b.ready {
		return
	}
	b.viewport.SetContent(content)
	b.viewport.GotoTop()
}

// Lines returns the number of rendered lines.
func (b *Body) Lines() int {
	return b.lines
}

// Plain returns the content without styling, trailing padding removed.
func (b *Body) Plain() string {
	lines := strings.Split(ansi.Strip(b.content), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// LineDown scrolls down n lines.
func (b *Body) LineDown(n int) {
	if b.ready {
		b.viewport.LineDown(n)
	}
}

// LineUp scrolls up n lines.
func (b *Body) LineUp(n int) {
	if b.ready {
		b.viewport.LineUp(n)
	}
}

// PageDown scrolls down one page.
func (b *Body) PageDown() {
	if b.ready {
		b.viewport.ViewDown()
	}
}

// PageUp scrolls up one page.
func (b *Body) PageUp() {
	if b.ready {
		b.viewport.ViewUp()
	}
}

// Scrollable reports whether the content is taller than the body.
func (b *Body) Scrollable() bool {
	return b.ready && b.lines > b.viewport.Height
}

// ScrollInfo returns a string like "42%" or "TOP" or "BOT".
func (b *Body) ScrollInfo() string {
	if !b.ready {
		return "TOP"
	}
	pct := b.viewport.ScrollPercent()
	switch {
	case pct <= 0:
		return "TOP"
	case pct >= 1:
		return "BOT"
	default:
		return fmt.Sprintf("%d%%", int(pct*100))
	}
}

// View renders the visible part of the content.
func (b *Body) View() string {
	if !b.ready {
		return ""
	}
	return b.viewport.View()
}
