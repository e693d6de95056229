package editor

import (
	"github.com/iw2rmb/totonoo/action"
	"github.com/iw2rmb/totonoo/buffer"
	"github.com/iw2rmb/totonoo/edit"
)

type EventKind uint8

const (
	// EventChange follows every text mutation.
	EventChange EventKind = iota
	// EventSelection follows every selection change, including the
	// selection move that accompanies an edit.
	EventSelection
	EventFocus
	EventBlur
	// EventSave is emitted by the save action; persisting Text is up to the
	// host.
	EventSave
	EventTheme
	// EventAction follows every catalog action the editor invokes.
	EventAction
)

func (k EventKind) String() string {
	switch k {
	case EventChange:
		return "change"
	case EventSelection:
		return "selection"
	case EventFocus:
		return "focus"
	case EventBlur:
		return "blur"
	case EventSave:
		return "save"
	case EventTheme:
		return "theme"
	case EventAction:
		return "action"
	default:
		return "unknown"
	}
}

// Event is delivered to Model subscribers.
type Event struct {
	Kind    EventKind
	Version uint64
	Text    string

	Selections []edit.Range
	// Line is the line holding the start of the primary selection.
	Line edit.Line

	// Change is set for EventChange.
	Change buffer.Change
	// Theme is the active theme.
	Theme Theme
	// Action is set for EventAction.
	Action action.Name
}

func (m *Model) newEvent(kind EventKind) Event {
	ev := Event{Kind: kind, Theme: m.theme}
	if m.buf == nil {
		return ev
	}
	ev.Version = m.buf.Version()
	ev.Text = m.buf.Text()
	ev.Selections = m.buf.Selections()
	ev.Line, _ = m.buf.Doc().LineAt(m.buf.Primary().From)
	return ev
}

func (m *Model) emit(ev Event) {
	if m.events != nil {
		m.events.Notify(ev)
	}
}
