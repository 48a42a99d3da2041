package app

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tpopup/internal/logging"
	"github.com/vidyasagar/tpopup/internal/markup"
	"github.com/vidyasagar/tpopup/internal/popup"
	"github.com/vidyasagar/tpopup/internal/storage"
	"github.com/vidyasagar/tpopup/internal/ui"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePopup       // a dialog is visible and receives input
)

const dbTimeout = 5 * time.Second

const (
	basicContent = "This is a basic popup. Press esc, click outside or use the close button to dismiss it."
	htmlContent  = "<p>This is HTML content with <b>bold</b> and <i>cursive</i> text.</p>"
)

// dialog pairs a controller with the modal it drives.
type dialog struct {
	ctrl  *popup.Controller
	modal *ui.Modal
}

// Options configures a new Model.
type Options struct {
	Config *storage.Config
	// Files backs the delete-file demo. Nil disables it.
	Files *storage.FileStore
	// Content, when set, is shown in the basic popup at start.
	Content      string
	ContentTitle string
}

// Model is the top-level bubbletea model for the demo.
type Model struct {
	fileList  ui.FileList
	statusBar ui.StatusBar

	basic   dialog
	confirm dialog

	files  *storage.FileStore
	config *storage.Config
	keys   KeyMap
	mode   Mode
	width  int
	height int
	ready  bool
	log    *slog.Logger
}

// filesLoadedMsg carries the result of listing the file catalog.
type filesLoadedMsg struct {
	files []storage.File
	err   error
}

// deleteFileMsg fires when the simulated delete delay has passed.
type deleteFileMsg struct {
	id   int64
	name string
}

// fileDeletedMsg carries the result of removing a file from the catalog.
type fileDeletedMsg struct {
	name string
	err  error
}

// New creates the demo Model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		def := storage.DefaultConfig()
		cfg = &def
	}

	renderer := markup.New(
		markup.WithStyle(cfg.Render.Style),
		markup.WithCacheSize(cfg.Render.CacheSize),
	)

	m := Model{
		fileList:  ui.NewFileList(),
		statusBar: ui.NewStatusBar(),
		files:     opts.Files,
		config:    cfg,
		keys:      DefaultKeyMap(),
		mode:      ModeNormal,
		log:       logging.ForComponent(logging.CompApp),
	}

	m.basic = newDialog(renderer, cfg, popup.Snapshot{Title: "Basic popup", Content: basicContent}, "close")
	m.confirm = newDialog(renderer, cfg, popup.Snapshot{Title: "Delete file"}, cfg.Popup.CloseLabel)

	if opts.Content != "" {
		title := opts.ContentTitle
		if title == "" {
			title = "Basic popup"
		}
		m.basic.ctrl.Display(popup.Snapshot{Title: title, Content: opts.Content})
	}
	m.syncStatus()
	return m
}

func newDialog(r *markup.Renderer, cfg *storage.Config, initial popup.Snapshot, closeLabel string) dialog {
	modal := ui.NewModal(r)
	ctrl := popup.NewController(modal, initial,
		popup.WithLogger(logging.ForComponent(logging.CompPopup)),
		popup.WithOptions(cfg.PopupOptions()),
		popup.WithCloseLabel(closeLabel),
	)
	return dialog{ctrl: ctrl, modal: modal}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadFiles()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case filesLoadedMsg:
		if msg.err != nil {
			m.statusBar.SetError(fmt.Sprintf("Loading files: %v", msg.err))
			return m, nil
		}
		m.fileList.SetEntries(msg.files)
		return m, nil

	case deleteFileMsg:
		return m, m.deleteFile(msg)

	case fileDeletedMsg:
		m.handleFileDeleted(msg)
		m.syncStatus()
		return m, m.loadFiles()

	case ui.CopyResultMsg:
		if msg.Err != nil {
			m.statusBar.SetError(fmt.Sprintf("Copy failed: %v", msg.Err))
		} else {
			m.statusBar.SetMessage(fmt.Sprintf("Copied %d characters", msg.Chars))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		if d := m.active(); d != nil {
			_, cmd := d.modal.Update(msg)
			m.syncStatus()
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.mode == ModePopup {
		return m.handlePopupMode(msg)
	}
	return m.handleNormalMode(msg)
}

func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusBar.SetMessage("")

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.CursorDown):
		m.fileList.CursorDown()
	case key.Matches(msg, m.keys.CursorUp):
		m.fileList.CursorUp()
	case key.Matches(msg, m.keys.GotoTop):
		m.fileList.GotoTop()
	case key.Matches(msg, m.keys.GotoBottom):
		m.fileList.GotoBottom()
	case key.Matches(msg, m.keys.BasicPopup):
		m.basic.ctrl.Display(popup.Snapshot{Title: "Basic popup", Content: basicContent})
	case key.Matches(msg, m.keys.HTMLPopup):
		m.basic.ctrl.Display(popup.Snapshot{Title: "Basic popup", Content: htmlContent})
	case key.Matches(msg, m.keys.DeleteFile):
		m.showDeleteDialog()
	case key.Matches(msg, m.keys.Help):
		m.showHelp()
	}

	m.syncStatus()
	return m, nil
}

func (m Model) handlePopupMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.active()
	if d == nil {
		m.syncStatus()
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Back):
		d.ctrl.GoBack()
	case key.Matches(msg, m.keys.Next):
		d.ctrl.GoNext()
	case key.Matches(msg, m.keys.First):
		d.ctrl.GoFirst()
	case key.Matches(msg, m.keys.Last):
		d.ctrl.GoLast()
	default:
		_, cmd = d.modal.Update(msg)
	}

	m.syncStatus()
	return m, cmd
}

// showDeleteDialog asks for confirmation before deleting the selected file.
// Delete switches to a locked busy state that is kept out of the history,
// then a timer stands in for the slow operation.
func (m *Model) showDeleteDialog() {
	if m.files == nil {
		m.statusBar.SetError("File catalog unavailable")
		return
	}
	f := m.fileList.Selected()
	if f == nil {
		m.statusBar.SetMessage("No file selected")
		return
	}

	ctrl := m.confirm.ctrl
	delay := m.config.Demo.DeleteDelay
	id, name := f.ID, f.Name
	log := m.log

	buttons := popup.Buttons{
		Items: []popup.Button{
			{
				Text: "Delete",
				Kind: popup.KindError,
				Handler: func() tea.Cmd {
					ctrl.Update(popup.Patch{
						Content: popup.Text("File is being deleted, please wait..."),
						Buttons: popup.NoButtons(),
					}, popup.Transient(), popup.Locked())
					return tea.Tick(delay, func(time.Time) tea.Msg {
						return deleteFileMsg{id: id, name: name}
					})
				},
			},
			{
				Text: "Cancel",
				Kind: popup.KindConfirm,
				Handler: func() tea.Cmd {
					ctrl.Close()
					return nil
				},
			},
		},
		Shared: func(label string) tea.Cmd {
			log.Debug("delete dialog", slog.String("button", label), slog.String("file", name))
			return nil
		},
		SharedStyle: lipgloss.NewStyle().Bold(true),
		Position:    popup.PositionRight,
	}

	ctrl.Display(popup.Snapshot{
		Title:   "Delete file",
		Content: fmt.Sprintf("<p>Are you sure you want to delete <b>%s</b>?</p>", html.EscapeString(name)),
		Buttons: buttons,
	})
}

// showHelp displays the help pages as consecutive history entries, so the
// dialog history keys and the Next/Back buttons page through them.
func (m *Model) showHelp() {
	ctrl := m.basic.ctrl
	next := func() tea.Cmd {
		ctrl.GoNext()
		return nil
	}
	back := func() tea.Cmd {
		ctrl.GoBack()
		return nil
	}
	closeDialog := func() tea.Cmd {
		ctrl.Close()
		return nil
	}

	pages := []popup.Snapshot{
		{
			Title: "Help (1/3): files",
			Content: "<ul>" +
				"<li><b>j</b> / <b>k</b> move through the file list</li>" +
				"<li><b>g</b> / <b>G</b> jump to the first or last file</li>" +
				"<li><b>d</b> delete the selected file</li>" +
				"<li><b>q</b> quit</li></ul>",
			Buttons: popup.Buttons{Items: []popup.Button{
				{Text: "Next", Handler: next, Kind: popup.KindConfirm},
				{Text: "Close", Handler: closeDialog},
			}},
		},
		{
			Title: "Help (2/3): dialogs",
			Content: "<ul>" +
				"<li><b>tab</b> / <b>shift+tab</b> move between buttons, <b>enter</b> presses</li>" +
				"<li><b>esc</b>, a click outside or the close label dismiss the dialog</li>" +
				"<li><b>y</b> copies the dialog text</li></ul>",
			Buttons: popup.Buttons{Items: []popup.Button{
				{Text: "Back", Handler: back},
				{Text: "Next", Handler: next, Kind: popup.KindConfirm},
				{Text: "Close", Handler: closeDialog},
			}, Position: popup.PositionCenter},
		},
		{
			Title: "Help (3/3): history",
			Content: "<p>Every dialog remembers what it showed. Use <code>[</code> and <code>]</code> " +
				"to step back and forward, <code>{</code> and <code>}</code> to jump to the ends.</p>" +
				"<p>Busy states, like a file being deleted, are not recorded.</p>",
			Buttons: popup.Buttons{Items: []popup.Button{
				{Text: "Back", Handler: back},
				{Text: "Close", Handler: closeDialog, Kind: popup.KindConfirm},
			}, Position: popup.PositionRight},
		},
	}

	ctrl.Close()
	for _, p := range pages {
		ctrl.Display(p)
	}
	ctrl.GoFirst()
}

func (m Model) loadFiles() tea.Cmd {
	files := m.files
	if files == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()
		list, err := files.List(ctx)
		return filesLoadedMsg{files: list, err: err}
	}
}

func (m Model) deleteFile(msg deleteFileMsg) tea.Cmd {
	files := m.files
	if files == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()
		return fileDeletedMsg{name: msg.name, err: files.Delete(ctx, msg.id)}
	}
}

// handleFileDeleted reports the outcome in the delete dialog. When the
// dialog was closed in the meantime the update lands on a blank snapshot.
func (m *Model) handleFileDeleted(msg fileDeletedMsg) {
	ctrl := m.confirm.ctrl
	ok := popup.Buttons{Items: []popup.Button{{
		Text: "OK",
		Kind: popup.KindConfirm,
		Handler: func() tea.Cmd {
			ctrl.Close()
			return nil
		},
	}}}

	content := "File was deleted!"
	if msg.err != nil {
		m.log.Error("delete file", slog.String("file", msg.name), slog.String("error", msg.err.Error()))
		content = fmt.Sprintf("Could not delete %s: %v", msg.name, msg.err)
		m.statusBar.SetError(content)
	} else {
		m.log.Info("file deleted", slog.String("file", msg.name))
		m.statusBar.SetMessage(fmt.Sprintf("Deleted %s", msg.name))
	}
	ctrl.Update(popup.Patch{Content: popup.Text(content), Buttons: popup.WithButtons(ok)})
}

// active returns the visible dialog, if any.
func (m *Model) active() *dialog {
	switch {
	case m.confirm.ctrl.Visible():
		return &m.confirm
	case m.basic.ctrl.Visible():
		return &m.basic
	}
	return nil
}

// syncStatus derives the mode and status bar fields from the dialogs.
func (m *Model) syncStatus() {
	d := m.active()
	if d == nil {
		m.mode = ModeNormal
		m.statusBar.SetMode("NORMAL")
		m.statusBar.SetHistory(0, 0)
		m.statusBar.SetLocked(false)
		m.statusBar.SetScrollInfo("")
		return
	}
	m.mode = ModePopup
	m.statusBar.SetMode("POPUP")
	m.statusBar.SetHistory(d.ctrl.HistoryPos())
	m.statusBar.SetLocked(!d.ctrl.AllowClosing())
	m.statusBar.SetScrollInfo(d.modal.ScrollInfo())
}

// layout recalculates component sizes after a resize.
func (m *Model) layout() {
	m.statusBar.SetWidth(m.width)
	m.fileList.SetSize(m.width, max(m.height-1, 1))
	m.basic.modal.SetSize(m.width, m.height)
	m.confirm.modal.SetSize(m.width, m.height)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Loading tpopup..."
	}

	base := lipgloss.JoinVertical(lipgloss.Left,
		m.fileList.View(),
		m.statusBar.View(),
	)
	if d := m.active(); d != nil {
		return d.modal.View(base)
	}
	return base
}
