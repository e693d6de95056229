package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/totonoo/action"
	"github.com/iw2rmb/totonoo/edit"
)

func recordEvents(m Model) (*[]Event, func()) {
	var got []Event
	cancel := m.Subscribe(func(ev Event) { got = append(got, ev) })
	return &got, cancel
}

func eventKinds(evs []Event) []EventKind {
	out := make([]EventKind, len(evs))
	for i, ev := range evs {
		out[i] = ev.Kind
	}
	return out
}

func TestSubscribe_ChangeAndSelection(t *testing.T) {
	m := New(Config{Text: "ab"})
	events, _ := recordEvents(m)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome}) // no-op

	want := []EventKind{EventSelection, EventChange, EventSelection, EventSelection}
	if got := eventKinds(*events); !cmp.Equal(got, want) {
		t.Fatalf("kinds mismatch (-got +want):\n%s", cmp.Diff(got, want))
	}

	change := (*events)[1]
	if got, want := change.Text, "aXb"; got != want {
		t.Fatalf("change text=%q, want %q", got, want)
	}
	if got, want := change.Change.AppliedEdits[0].Edit, (edit.Edit{From: 1, To: 1, Insert: "X"}); got != want {
		t.Fatalf("applied edit=%v, want %v", got, want)
	}
	if got, want := (*events)[2].Selections, []edit.Range{{From: 2, To: 2}}; !cmp.Equal(got, want) {
		t.Fatalf("selection mismatch (-got +want):\n%s", cmp.Diff(got, want))
	}
}

func TestSubscribe_SelectionCarriesLine(t *testing.T) {
	m := New(Config{Text: "ab\ncd"})
	events, _ := recordEvents(m)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if len(*events) != 1 {
		t.Fatalf("events=%d, want 1", len(*events))
	}
	if got, want := (*events)[0].Line, (edit.Line{Start: 3, End: 5, Text: "cd"}); got != want {
		t.Fatalf("line=%v, want %v", got, want)
	}
}

func TestSubscribe_FocusBlur(t *testing.T) {
	m := New(Config{Text: "ab"})
	events, _ := recordEvents(m)

	m = m.Blur()
	m = m.Blur()
	m = m.Focus()

	want := []EventKind{EventBlur, EventFocus}
	if got := eventKinds(*events); !cmp.Equal(got, want) {
		t.Fatalf("kinds mismatch (-got +want):\n%s", cmp.Diff(got, want))
	}
}

func TestSubscribe_ActionFocusesEditor(t *testing.T) {
	m := New(Config{Text: "hi"})
	m = m.Blur()
	events, _ := recordEvents(m)

	m = m.Invoke(action.Quote)
	if !m.Focused() {
		t.Fatalf("expected focus after action")
	}
	want := []EventKind{EventFocus, EventChange, EventSelection, EventAction}
	if got := eventKinds(*events); !cmp.Equal(got, want) {
		t.Fatalf("kinds mismatch (-got +want):\n%s", cmp.Diff(got, want))
	}
	if got := (*events)[3].Action; got != action.Quote {
		t.Fatalf("action=%q, want %q", got, action.Quote)
	}
}

func TestSubscribe_SaveAndTheme(t *testing.T) {
	m := New(Config{Text: "# doc"})
	events, cancel := recordEvents(m)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = m.Invoke(action.Theme)

	want := []EventKind{EventSave, EventAction, EventTheme, EventAction}
	if got := eventKinds(*events); !cmp.Equal(got, want) {
		t.Fatalf("kinds mismatch (-got +want):\n%s", cmp.Diff(got, want))
	}
	if got := (*events)[0].Text; got != "# doc" {
		t.Fatalf("save text=%q", got)
	}
	if got := (*events)[2].Theme; got != ThemeDark {
		t.Fatalf("theme=%q, want %q", got, ThemeDark)
	}

	cancel()
	m = m.Invoke(action.Save)
	if len(*events) != len(want) {
		t.Fatalf("events after cancel=%d, want %d", len(*events), len(want))
	}
}

func TestSubscribe_CatalogTriggersShared(t *testing.T) {
	c := action.NewCatalog()
	var triggers []action.Trigger
	c.Subscribe(func(tr action.Trigger) { triggers = append(triggers, tr) })

	m := New(Config{Text: "x", Catalog: c})
	m = m.Invoke(action.Media)
	m = m.Invoke("nope")

	want := []action.Trigger{{Name: action.Media, Text: "x"}}
	if !cmp.Equal(triggers, want) {
		t.Fatalf("triggers mismatch (-got +want):\n%s", cmp.Diff(triggers, want))
	}
}

func TestSubscribe_HostMutationsReportedOnNextUpdate(t *testing.T) {
	m := New(Config{Text: "ab"})
	events, _ := recordEvents(m)

	m.Buffer().InsertText("z")
	if len(*events) != 0 {
		t.Fatalf("events before update=%d, want 0", len(*events))
	}
	m, _ = m.Update(nil)

	want := []EventKind{EventChange, EventSelection}
	if got := eventKinds(*events); !cmp.Equal(got, want) {
		t.Fatalf("kinds mismatch (-got +want):\n%s", cmp.Diff(got, want))
	}
}
