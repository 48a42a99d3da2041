package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for dialogs and the demo screen.
type Theme struct {
	Name string

	// Core colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Text colors
	Text       lipgloss.Color
	TextDim    lipgloss.Color
	TextBright lipgloss.Color

	// Surfaces
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Markup
	Link    lipgloss.Color
	Heading lipgloss.Color
	Code    lipgloss.Color
	CodeBg  lipgloss.Color
	Quote   lipgloss.Color

	// Buttons and status
	Confirm  lipgloss.Color
	Error    lipgloss.Color
	Disabled lipgloss.Color
	Focus    lipgloss.Color
	Info     lipgloss.Color
}

var themes = map[string]Theme{
	"default":    Default,
	"gruvbox":    Gruvbox,
	"catppuccin": Catppuccin,
	"nord":       Nord,
	"dracula":    Dracula,
}

var Default = Theme{
	Name:       "default",
	Primary:    lipgloss.Color("#7C3AED"),
	Secondary:  lipgloss.Color("#06B6D4"),
	Accent:     lipgloss.Color("#F59E0B"),
	Text:       lipgloss.Color("#E2E8F0"),
	TextDim:    lipgloss.Color("#64748B"),
	TextBright: lipgloss.Color("#F8FAFC"),
	Background: lipgloss.Color("#0F172A"),
	Surface:    lipgloss.Color("#1E293B"),
	Border:     lipgloss.Color("#334155"),
	Link:       lipgloss.Color("#38BDF8"),
	Heading:    lipgloss.Color("#A78BFA"),
	Code:       lipgloss.Color("#34D399"),
	CodeBg:     lipgloss.Color("#1E293B"),
	Quote:      lipgloss.Color("#94A3B8"),
	Confirm:    lipgloss.Color("#22C55E"),
	Error:      lipgloss.Color("#EF4444"),
	Disabled:   lipgloss.Color("#475569"),
	Focus:      lipgloss.Color("#F59E0B"),
	Info:       lipgloss.Color("#3B82F6"),
}

var Gruvbox = Theme{
	Name:       "gruvbox",
	Primary:    lipgloss.Color("#D65D0E"),
	Secondary:  lipgloss.Color("#458588"),
	Accent:     lipgloss.Color("#D79921"),
	Text:       lipgloss.Color("#EBDBB2"),
	TextDim:    lipgloss.Color("#928374"),
	TextBright: lipgloss.Color("#FBF1C7"),
	Background: lipgloss.Color("#282828"),
	Surface:    lipgloss.Color("#3C3836"),
	Border:     lipgloss.Color("#504945"),
	Link:       lipgloss.Color("#83A598"),
	Heading:    lipgloss.Color("#FB4934"),
	Code:       lipgloss.Color("#B8BB26"),
	CodeBg:     lipgloss.Color("#3C3836"),
	Quote:      lipgloss.Color("#928374"),
	Confirm:    lipgloss.Color("#B8BB26"),
	Error:      lipgloss.Color("#FB4934"),
	Disabled:   lipgloss.Color("#665C54"),
	Focus:      lipgloss.Color("#FABD2F"),
	Info:       lipgloss.Color("#83A598"),
}

var Catppuccin = Theme{
	Name:       "catppuccin",
	Primary:    lipgloss.Color("#CBA6F7"),
	Secondary:  lipgloss.Color("#89DCEB"),
	Accent:     lipgloss.Color("#F9E2AF"),
	Text:       lipgloss.Color("#CDD6F4"),
	TextDim:    lipgloss.Color("#6C7086"),
	TextBright: lipgloss.Color("#F5E0DC"),
	Background: lipgloss.Color("#1E1E2E"),
	Surface:    lipgloss.Color("#313244"),
	Border:     lipgloss.Color("#45475A"),
	Link:       lipgloss.Color("#89B4FA"),
	Heading:    lipgloss.Color("#CBA6F7"),
	Code:       lipgloss.Color("#A6E3A1"),
	CodeBg:     lipgloss.Color("#313244"),
	Quote:      lipgloss.Color("#9399B2"),
	Confirm:    lipgloss.Color("#A6E3A1"),
	Error:      lipgloss.Color("#F38BA8"),
	Disabled:   lipgloss.Color("#585B70"),
	Focus:      lipgloss.Color("#F9E2AF"),
	Info:       lipgloss.Color("#89B4FA"),
}

var Nord = Theme{
	Name:       "nord",
	Primary:    lipgloss.Color("#88C0D0"),
	Secondary:  lipgloss.Color("#81A1C1"),
	Accent:     lipgloss.Color("#EBCB8B"),
	Text:       lipgloss.Color("#ECEFF4"),
	TextDim:    lipgloss.Color("#4C566A"),
	TextBright: lipgloss.Color("#ECEFF4"),
	Background: lipgloss.Color("#2E3440"),
	Surface:    lipgloss.Color("#3B4252"),
	Border:     lipgloss.Color("#434C5E"),
	Link:       lipgloss.Color("#88C0D0"),
	Heading:    lipgloss.Color("#81A1C1"),
	Code:       lipgloss.Color("#A3BE8C"),
	CodeBg:     lipgloss.Color("#3B4252"),
	Quote:      lipgloss.Color("#4C566A"),
	Confirm:    lipgloss.Color("#A3BE8C"),
	Error:      lipgloss.Color("#BF616A"),
	Disabled:   lipgloss.Color("#4C566A"),
	Focus:      lipgloss.Color("#EBCB8B"),
	Info:       lipgloss.Color("#5E81AC"),
}

var Dracula = Theme{
	Name:       "dracula",
	Primary:    lipgloss.Color("#BD93F9"),
	Secondary:  lipgloss.Color("#8BE9FD"),
	Accent:     lipgloss.Color("#F1FA8C"),
	Text:       lipgloss.Color("#F8F8F2"),
	TextDim:    lipgloss.Color("#6272A4"),
	TextBright: lipgloss.Color("#F8F8F2"),
	Background: lipgloss.Color("#282A36"),
	Surface:    lipgloss.Color("#44475A"),
	Border:     lipgloss.Color("#6272A4"),
	Link:       lipgloss.Color("#8BE9FD"),
	Heading:    lipgloss.Color("#FF79C6"),
	Code:       lipgloss.Color("#50FA7B"),
	CodeBg:     lipgloss.Color("#44475A"),
	Quote:      lipgloss.Color("#6272A4"),
	Confirm:    lipgloss.Color("#50FA7B"),
	Error:      lipgloss.Color("#FF5555"),
	Disabled:   lipgloss.Color("#6272A4"),
	Focus:      lipgloss.Color("#F1FA8C"),
	Info:       lipgloss.Color("#8BE9FD"),
}

// Current is the active theme.
var Current = Default

// Set changes the active theme by name.
func Set(name string) bool {
	if t, ok := themes[name]; ok {
		Current = t
		return true
	}
	return false
}

// List returns all available theme names, sorted.
func List() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
