package popup

// History records the snapshots a dialog has shown and a cursor into them.
//
// Unlike a browser history, adding never truncates entries after the cursor:
// new snapshots are always appended and the cursor moves to the end. Every
// read hands out a clone, so callers may modify what they receive.
type History struct {
	entries []Snapshot
	pos     int // cursor; -1 when empty
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{
		entries: nil,
		pos:     -1,
	}
}

// Add appends a snapshot and moves the cursor to it.
func (h *History) Add(title, content string, buttons Buttons) {
	h.entries = append(h.entries, Snapshot{
		Title:   title,
		Content: content,
		Buttons: buttons.clone(),
	})
	h.pos = len(h.entries) - 1
}

// Current returns the snapshot at the cursor. It reports false when empty.
func (h *History) Current() (Snapshot, bool) {
	if len(h.entries) == 0 {
		return Snapshot{}, false
	}
	return h.entries[h.pos].Clone(), true
}

// Previous moves the cursor one step back, stopping at the first entry.
// With fewer than two entries there is nowhere to go and it reports false.
func (h *History) Previous() (Snapshot, bool) {
	if len(h.entries) < 2 {
		return Snapshot{}, false
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.entries[h.pos].Clone(), true
}

// Next moves the cursor one step forward, stopping at the last entry.
func (h *History) Next() (Snapshot, bool) {
	if len(h.entries) < 2 {
		return Snapshot{}, false
	}
	if h.pos < len(h.entries)-1 {
		h.pos++
	}
	return h.entries[h.pos].Clone(), true
}

// First moves the cursor to the oldest entry.
func (h *History) First() (Snapshot, bool) {
	if len(h.entries) < 2 {
		return Snapshot{}, false
	}
	h.pos = 0
	return h.entries[h.pos].Clone(), true
}

// Last moves the cursor to the newest entry.
func (h *History) Last() (Snapshot, bool) {
	if len(h.entries) < 2 {
		return Snapshot{}, false
	}
	h.pos = len(h.entries) - 1
	return h.entries[h.pos].Clone(), true
}

// CanGoBack reports whether Previous would move the cursor.
func (h *History) CanGoBack() bool {
	return h.pos > 0
}

// CanGoForward reports whether Next would move the cursor.
func (h *History) CanGoForward() bool {
	return h.pos >= 0 && h.pos < len(h.entries)-1
}

// Len returns the number of recorded snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// Pos returns the cursor, or -1 when the history is empty.
func (h *History) Pos() int {
	return h.pos
}

// Clear drops every snapshot.
func (h *History) Clear() {
	h.entries = nil
	h.pos = -1
}
