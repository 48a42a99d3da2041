package popup

// DismissReason identifies which user interaction asked the dialog to close.
type DismissReason int

const (
	DismissCloseButton DismissReason = iota
	DismissOutside
	DismissEscape
)

func (r DismissReason) String() string {
	switch r {
	case DismissCloseButton:
		return "close-button"
	case DismissOutside:
		return "outside"
	case DismissEscape:
		return "escape"
	default:
		return "unknown"
	}
}

// Placement is the vertical position of the dialog on screen.
type Placement int

const (
	PlacementTop Placement = iota
	PlacementCenter
	PlacementBottom
)

// ParsePlacement maps a config value to a Placement. Unknown values map to top.
func ParsePlacement(s string) Placement {
	switch s {
	case "center":
		return PlacementCenter
	case "bottom":
		return PlacementBottom
	default:
		return PlacementTop
	}
}

// Options are the presentation settings of a dialog.
type Options struct {
	AllowSelect          bool
	PreventExternalClose bool
	Placement            Placement
	MaxWidth             int // cells
	Margin               int // cells between the dialog and the screen edge
}

// DefaultOptions returns the settings a new dialog starts with.
func DefaultOptions() Options {
	return Options{
		AllowSelect:          true,
		PreventExternalClose: false,
		Placement:            PlacementTop,
		MaxWidth:             60,
		Margin:               1,
	}
}

// Surface draws a dialog and reports user interactions. The Bubble Tea
// implementation lives in internal/ui.
type Surface interface {
	// Render replaces the visible title, body and button row.
	Render(s Snapshot)
	Show()
	Hide()
	ApplyOptions(o Options)
	SetCloseLabel(label string)
	// OnDismiss registers the listener for close-button, outside-click and
	// escape interactions. The surface never hides itself on those.
	OnDismiss(fn func(DismissReason))
}
