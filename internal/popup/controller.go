package popup

import (
	"io"
	"log/slog"
)

// Controller owns one dialog: what it shows, whether it may be dismissed,
// and the history of what it has shown since it was last closed.
//
// A Controller is driven from the Bubble Tea update loop and is not safe for
// concurrent use.
type Controller struct {
	surface      Surface
	history      *History
	initial      Snapshot
	opts         Options
	allowClosing bool
	visible      bool
	log          *slog.Logger
}

// ControllerOption configures a Controller at construction.
type ControllerOption func(*Controller)

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithOptions sets the initial presentation options.
func WithOptions(o Options) ControllerOption {
	return func(c *Controller) {
		c.opts = o
	}
}

// WithCloseLabel sets the label of the header close button.
func WithCloseLabel(label string) ControllerOption {
	return func(c *Controller) {
		c.surface.SetCloseLabel(label)
	}
}

// NewController binds a controller to surface. The initial snapshot is what
// the surface shows before anything is displayed and after every Close.
func NewController(surface Surface, initial Snapshot, opts ...ControllerOption) *Controller {
	c := &Controller{
		surface:      surface,
		history:      NewHistory(),
		initial:      initial.Clone(),
		opts:         DefaultOptions(),
		allowClosing: true,
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(c)
	}
	surface.OnDismiss(func(r DismissReason) { c.Dismiss(r) })
	surface.ApplyOptions(c.opts)
	surface.Render(c.initial.Clone())
	return c
}

// Option adjusts a single Display or Update call.
type Option func(*callOptions)

type callOptions struct {
	allowClosing bool
	preserve     bool
}

func newCallOptions(opts []Option) callOptions {
	co := callOptions{allowClosing: true, preserve: true}
	for _, o := range opts {
		o(&co)
	}
	return co
}

// Locked keeps the dialog open against close-button, outside-click and
// escape dismissal until the next Display, Update or Close.
func Locked() Option {
	return func(co *callOptions) { co.allowClosing = false }
}

// Transient shows an Update without recording it in the history.
// Display always records and ignores it.
func Transient() Option {
	return func(co *callOptions) { co.preserve = false }
}

// Display shows s as a new history entry and makes the dialog visible.
func (c *Controller) Display(s Snapshot, opts ...Option) *Controller {
	co := newCallOptions(opts)
	c.surface.Render(s.Clone())
	c.allowClosing = co.allowClosing
	c.history.Add(s.Title, s.Content, s.Buttons)
	c.surface.Show()
	c.visible = true
	c.log.Debug("popup display",
		slog.String("title", s.Title),
		slog.Int("entries", c.history.Len()),
		slog.Bool("allow_closing", c.allowClosing))
	return c
}

// Update merges p over the current snapshot and renders the result. An empty
// history is treated as a blank snapshot. Unless Transient is given, the
// merged snapshot is appended. A hidden dialog never records, so late
// callbacks after Close cannot leak into the next Display.
func (c *Controller) Update(p Patch, opts ...Option) *Controller {
	co := newCallOptions(opts)
	current, _ := c.history.Current()
	merged := p.Apply(current)
	c.surface.Render(merged.Clone())
	c.allowClosing = co.allowClosing
	if co.preserve && c.visible {
		c.history.Add(merged.Title, merged.Content, merged.Buttons)
	}
	c.log.Debug("popup update",
		slog.Bool("preserve", co.preserve),
		slog.Int("entries", c.history.Len()),
		slog.Bool("allow_closing", c.allowClosing))
	return c
}

// GoBack re-renders the previous snapshot.
func (c *Controller) GoBack() *Controller {
	return c.navigate("back", c.history.Previous)
}

// GoNext re-renders the next snapshot.
func (c *Controller) GoNext() *Controller {
	return c.navigate("next", c.history.Next)
}

// GoFirst re-renders the oldest snapshot.
func (c *Controller) GoFirst() *Controller {
	return c.navigate("first", c.history.First)
}

// GoLast re-renders the newest snapshot.
func (c *Controller) GoLast() *Controller {
	return c.navigate("last", c.history.Last)
}

func (c *Controller) navigate(dir string, step func() (Snapshot, bool)) *Controller {
	s, ok := step()
	if !ok {
		return c
	}
	c.surface.Render(s)
	c.log.Debug("popup navigate", slog.String("dir", dir), slog.Int("pos", c.history.Pos()))
	return c
}

// Close hides the dialog, forgets its history and restores the initial
// snapshot on the surface.
func (c *Controller) Close() *Controller {
	c.surface.Hide()
	c.visible = false
	c.history.Clear()
	c.allowClosing = true
	c.surface.Render(c.initial.Clone())
	c.log.Debug("popup close")
	return c
}

// Dismiss handles a close request coming from the surface. It reports
// whether the dialog was closed.
func (c *Controller) Dismiss(r DismissReason) bool {
	if !c.visible || !c.allowClosing {
		c.log.Debug("popup dismiss ignored", slog.String("reason", r.String()))
		return false
	}
	if r == DismissOutside && c.opts.PreventExternalClose {
		return false
	}
	c.Close()
	return true
}

// Options replaces the presentation options.
func (c *Controller) Options(o Options) *Controller {
	c.opts = o
	c.surface.ApplyOptions(o)
	return c
}

// PresentationOptions returns the current presentation options.
func (c *Controller) PresentationOptions() Options {
	return c.opts
}

// Visible reports whether the dialog is shown.
func (c *Controller) Visible() bool {
	return c.visible
}

// AllowClosing reports whether user dismissal is currently honored.
func (c *Controller) AllowClosing() bool {
	return c.allowClosing
}

// HistoryPos returns the 1-based cursor and the number of entries, or 0, 0
// when nothing has been recorded since the last Close.
func (c *Controller) HistoryPos() (pos, total int) {
	return c.history.Pos() + 1, c.history.Len()
}
