package editor

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/totonoo/action"
	"github.com/iw2rmb/totonoo/buffer"
	"github.com/iw2rmb/totonoo/edit"
	"github.com/iw2rmb/totonoo/hotkey"
	"github.com/iw2rmb/totonoo/internal/observer"
)

// Model is a Bubble Tea component that edits Markdown in a buffer.
type Model struct {
	cfg    Config
	buf    *buffer.Buffer
	events *observer.Registry[Event]

	focused    bool
	theme      Theme
	style      Style
	preview    bool
	fullscreen bool
	showHelp   bool
	help       help.Model

	width, height int
	viewport      viewport.Model
	previewPort   viewport.Model

	mouseDragging bool
	mouseAnchor   int

	lastVersion    uint64
	lastChange     uint64
	lastSelections []edit.Range
}

func New(cfg Config) Model {
	cfg = cfg.withDefaults()
	m := Model{
		cfg:         cfg,
		buf:         buffer.New(cfg.Text, buffer.Options{HistoryLimit: cfg.HistoryLimit}),
		events:      &observer.Registry[Event]{},
		focused:     true,
		theme:       cfg.Theme,
		preview:     cfg.Preview,
		fullscreen:  cfg.Fullscreen,
		help:        help.New(),
		viewport:    viewport.New(0, 0),
		previewPort: viewport.New(0, 0),
	}
	m.applyTheme()
	m.lastVersion = m.buf.Version()
	m.lastSelections = m.buf.Selections()
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

// Text returns the current Markdown source.
func (m Model) Text() string { return m.buf.Text() }

// SetText replaces the buffer, dropping its history and selection.
func (m Model) SetText(s string) Model {
	m.buf = buffer.New(s, buffer.Options{HistoryLimit: m.cfg.HistoryLimit})
	m.lastVersion = m.buf.Version()
	m.lastChange = 0
	m.lastSelections = m.buf.Selections()
	m.rebuildContent()
	m.followCursorWithForce(true)
	return m
}

func (m Model) Catalog() *action.Catalog { return m.cfg.Catalog }

func (m Model) Hotkeys() *hotkey.Map { return m.cfg.Hotkeys }

// Subscribe registers fn for editor events. Copies of the Model share
// subscriptions.
func (m Model) Subscribe(fn func(Event)) (cancel func()) {
	return m.events.Subscribe(fn)
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	m.width = maxInt(width, 0)
	m.height = maxInt(height, 0)
	m.layout()
	m.followCursorWithForce(true)
	return m
}

func (m Model) Focus() Model {
	m.setFocused(true)
	return m
}

func (m Model) Blur() Model {
	m.setFocused(false)
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Theme() Theme { return m.theme }

func (m Model) SetTheme(t Theme) Model {
	if t == m.theme {
		return m
	}
	m.theme = t
	m.applyTheme()
	m.emit(m.newEvent(EventTheme))
	return m
}

func (m Model) PreviewOpen() bool { return m.preview }

func (m Model) Fullscreen() bool { return m.fullscreen }

func (m Model) HelpOpen() bool { return m.showHelp }

// Invoke runs the named catalog action against the buffer, then applies its
// editor-side effect: save and theme emit events, preview, fullscreen and
// helper toggle panes. Unknown names, and editing actions on a read-only
// editor, are ignored.
func (m Model) Invoke(name action.Name) Model {
	a, ok := m.cfg.Catalog.Lookup(name)
	if !ok || (m.cfg.ReadOnly && a.Edits()) {
		return m
	}

	m.cfg.Catalog.Invoke(a.Name, host{m: &m})
	if m.sync() {
		m.followCursorWithForce(true)
	}

	switch a.Name {
	case action.Save:
		m.emit(m.newEvent(EventSave))
	case action.Theme:
		m.theme = m.theme.Toggle()
		m.applyTheme()
		m.emit(m.newEvent(EventTheme))
	case action.Preview:
		m.preview = !m.preview
		m.layout()
	case action.Fullscreen:
		m.fullscreen = !m.fullscreen
		m.layout()
	case action.Helper:
		m.showHelp = !m.showHelp
		m.layout()
	}

	ev := m.newEvent(EventAction)
	ev.Action = a.Name
	m.emit(ev)
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.updateKey(msg)
		if m.sync() {
			m.followCursorWithForce(true)
		}
		return m, cmd
	case tea.MouseMsg:
		var cmd tea.Cmd
		m, cmd = m.updateMouse(msg)
		if m.sync() {
			m.followCursorWithForce(false)
		}
		return m, cmd
	default:
		// Hosts may mutate the buffer directly between updates.
		if m.sync() {
			m.followCursorWithForce(true)
		}
		return m, nil
	}
}

func (m *Model) setFocused(focused bool) {
	if m.focused == focused {
		return
	}
	m.focused = focused
	m.rebuildContent()
	if focused {
		m.followCursorWithForce(true)
		m.emit(m.newEvent(EventFocus))
		return
	}
	m.emit(m.newEvent(EventBlur))
}

func (m *Model) applyTheme() {
	if m.cfg.Style != nil {
		m.style = *m.cfg.Style
	} else {
		m.style = StyleFor(m.theme)
	}
	m.rebuildContent()
}

// sync reports buffer mutations made since the last call as events and
// re-renders. It reports whether the selection moved.
func (m *Model) sync() (selectionChanged bool) {
	if m.buf == nil {
		return false
	}
	if ch, ok := m.buf.LastChange(); ok && ch.VersionAfter != m.lastChange {
		m.lastChange = ch.VersionAfter
		ev := m.newEvent(EventChange)
		ev.Change = ch
		m.emit(ev)
	}

	sel := m.buf.Selections()
	if !rangesEqual(sel, m.lastSelections) {
		m.lastSelections = sel
		selectionChanged = true
		m.emit(m.newEvent(EventSelection))
	}

	if v := m.buf.Version(); v != m.lastVersion || selectionChanged {
		m.lastVersion = v
		m.rebuildContent()
	}
	return selectionChanged
}

func rangesEqual(a, b []edit.Range) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// host exposes the model to catalog actions.
type host struct{ m *Model }

func (h host) Text() string { return h.m.buf.Text() }

func (h host) Selections() []edit.Range { return h.m.buf.Selections() }

func (h host) ApplyEdits(edits []edit.Edit) { h.m.buf.ApplyEdits(edits) }

func (h host) SetSelections(sel []edit.Range) { h.m.buf.SetSelections(sel) }

func (h host) Focus() { h.m.setFocused(true) }

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
