package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/vidyasagar/tpopup/internal/storage"
	"github.com/vidyasagar/tpopup/internal/theme"
)

// FileList displays the demo files with a cursor.
type FileList struct {
	entries []storage.File
	cursor  int
	offset  int // scroll offset for visible window
	width   int
	height  int
}

// NewFileList creates an empty file list.
func NewFileList() FileList {
	return FileList{}
}

// SetEntries replaces the files, keeping the cursor in range.
func (fl *FileList) SetEntries(entries []storage.File) {
	fl.entries = entries
	if fl.cursor >= len(entries) {
		fl.cursor = len(entries) - 1
	}
	if fl.cursor < 0 {
		fl.cursor = 0
	}
	fl.ensureVisible()
}

// SetSize updates the list dimensions.
func (fl *FileList) SetSize(w, h int) {
	fl.width = w
	fl.height = h
	fl.ensureVisible()
}

// Len returns the number of files.
func (fl *FileList) Len() int {
	return len(fl.entries)
}

// CursorUp moves the cursor up one entry.
func (fl *FileList) CursorUp() {
	if fl.cursor > 0 {
		fl.cursor--
		fl.ensureVisible()
	}
}

// CursorDown moves the cursor down one entry.
func (fl *FileList) CursorDown() {
	if fl.cursor < len(fl.entries)-1 {
		fl.cursor++
		fl.ensureVisible()
	}
}

// GotoTop moves to the first entry.
func (fl *FileList) GotoTop() {
	fl.cursor = 0
	fl.offset = 0
}

// GotoBottom moves to the last entry.
func (fl *FileList) GotoBottom() {
	if len(fl.entries) > 0 {
		fl.cursor = len(fl.entries) - 1
		fl.ensureVisible()
	}
}

// Selected returns the file at the cursor, or nil if empty.
func (fl *FileList) Selected() *storage.File {
	if len(fl.entries) == 0 || fl.cursor < 0 || fl.cursor >= len(fl.entries) {
		return nil
	}
	f := fl.entries[fl.cursor]
	return &f
}

// visibleCount returns how many entries fit below the header.
func (fl *FileList) visibleCount() int {
	// title + separator, and one line for the footer hint
	available := fl.height - 3
	if available < 1 {
		return 1
	}
	return available
}

// ensureVisible adjusts offset so the cursor is within the visible window.
func (fl *FileList) ensureVisible() {
	visible := fl.visibleCount()
	if fl.cursor < fl.offset {
		fl.offset = fl.cursor
	}
	if fl.cursor >= fl.offset+visible {
		fl.offset = fl.cursor - visible + 1
	}
	if fl.offset < 0 {
		fl.offset = 0
	}
}

// View renders the file list.
func (fl *FileList) View() string {
	t := theme.Current

	panelStyle := lipgloss.NewStyle().
		Width(fl.width).
		Height(fl.height)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Background(t.Surface).
		Width(fl.width).
		Padding(0, 1)

	separatorStyle := lipgloss.NewStyle().
		Foreground(t.Border)

	selectedStyle := lipgloss.NewStyle().
		Foreground(t.TextBright).
		Background(t.Focus).
		Bold(true).
		Width(fl.width).
		Padding(0, 1)

	normalStyle := lipgloss.NewStyle().
		Foreground(t.Text).
		Width(fl.width).
		Padding(0, 1)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Padding(0, 1)

	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("Files (%d)", len(fl.entries))))
	sb.WriteString("\n")

	sepWidth := max(fl.width-2, 1)
	sb.WriteString(separatorStyle.Render(strings.Repeat("─", sepWidth)))
	sb.WriteString("\n")

	if len(fl.entries) == 0 {
		sb.WriteString(dimStyle.Render("No files left."))
		sb.WriteString("\n")
		return panelStyle.Render(sb.String())
	}

	end := min(fl.offset+fl.visibleCount(), len(fl.entries))
	sizeCol := 10
	nameWidth := max(fl.width-sizeCol-6, 8)

	for i := fl.offset; i < end; i++ {
		f := fl.entries[i]
		name := ansi.Truncate(f.Name, nameWidth, "…")
		line := fmt.Sprintf("%-*s %*s", nameWidth, name, sizeCol, humanize.Bytes(uint64(f.Size)))

		if i == fl.cursor {
			sb.WriteString(selectedStyle.Render("▸ " + line))
		} else {
			sb.WriteString(normalStyle.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	linesUsed := 2 + (end - fl.offset)
	if remaining := fl.height - linesUsed; remaining > 1 {
		sb.WriteString(strings.Repeat("\n", remaining-1))
		hintStyle := lipgloss.NewStyle().
			Foreground(t.TextDim).
			Italic(true).
			Padding(0, 1)
		sb.WriteString(hintStyle.Render("j/k:move  o:popup  p:html  d:delete  ?:help  q:quit"))
	}

	return panelStyle.Render(sb.String())
}
