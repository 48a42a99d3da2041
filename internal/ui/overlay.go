package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// rect is a screen region in cells.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// Place draws box over base with its top-left corner at (x, y).
// Base lines shorter than width are padded. The function is ANSI-aware.
func Place(base, box string, x, y, width int) string {
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < y {
		baseLines = append(baseLines, "")
	}

	for i, boxLine := range strings.Split(box, "\n") {
		row := y + i
		if row >= len(baseLines) {
			baseLines = append(baseLines, "")
		}

		boxWidth := ansi.StringWidth(boxLine)
		if boxWidth == 0 {
			continue
		}
		endCol := x + boxWidth

		baseLine := baseLines[row]
		if w := ansi.StringWidth(baseLine); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}

		// base[0:x] + box + base[endCol:]
		result := ansi.Cut(baseLine, 0, x) + boxLine
		if endCol < width {
			result += ansi.Cut(baseLine, endCol, width)
		}
		baseLines[row] = result
	}

	return strings.Join(baseLines, "\n")
}
