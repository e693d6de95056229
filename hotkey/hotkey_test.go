package hotkey

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/totonoo/action"
	"github.com/iw2rmb/totonoo/edit"
)

type fakeHost struct {
	text string
	sel  []edit.Range
}

func (h *fakeHost) Text() string                 { return h.text }
func (h *fakeHost) Selections() []edit.Range     { return h.sel }
func (h *fakeHost) SetSelections(s []edit.Range) { h.sel = s }
func (h *fakeHost) Focus()                       {}
func (h *fakeHost) ApplyEdits(edits []edit.Edit) {
	h.text = edit.Apply(edit.NewDoc(h.text), edits)
}

func TestParseChord(t *testing.T) {
	cases := []struct {
		in   string
		want Chord
	}{
		{in: "Ctrl-Alt-b", want: Chord{Ctrl: true, Alt: true, Key: "b"}},
		{in: "Shift-Alt-o", want: Chord{Shift: true, Alt: true, Key: "o"}},
		{in: "F11", want: Chord{Key: "f11"}},
		{in: "ctrl-S", want: Chord{Ctrl: true, Key: "S"}},
		{in: "Cmd-1", want: Chord{Cmd: true, Key: "1"}},
		{in: "Ctrl--", want: Chord{Ctrl: true, Key: "-"}},
		{in: "-", want: Chord{Key: "-"}},
	}
	for _, tc := range cases {
		got, err := ParseChord(tc.in)
		if err != nil {
			t.Fatalf("ParseChord(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseChord(%q): got %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseChord_Invalid(t *testing.T) {
	for _, in := range []string{"", "Ctrl-", "Hyper-x", "Ctrl-Foo"} {
		if _, err := ParseChord(in); !errors.Is(err, ErrInvalidChord) {
			t.Fatalf("ParseChord(%q): got %v, want ErrInvalidChord", in, err)
		}
	}
}

func TestChord_StringRoundTrip(t *testing.T) {
	for _, in := range []string{"Ctrl-Alt-b", "Shift-Alt-o", "Ctrl-s", "F11", "Ctrl-4"} {
		if got := MustChord(in).String(); got != in {
			t.Fatalf("String(%q): got %q", in, got)
		}
	}
}

func TestChord_ForPlatform(t *testing.T) {
	c := MustChord("Ctrl-Alt-b")
	if got, want := c.ForPlatform(PlatformMac).String(), "Cmd-Alt-b"; got != want {
		t.Fatalf("mac: got %q, want %q", got, want)
	}
	if got, want := c.ForPlatform(PlatformDefault).String(), "Ctrl-Alt-b"; got != want {
		t.Fatalf("default: got %q, want %q", got, want)
	}
	if got := MustChord("Shift-Alt-o").ForPlatform(PlatformMac).String(); got != "Shift-Alt-o" {
		t.Fatalf("mac without ctrl: got %q", got)
	}
}

func TestChord_KeyStringMatchesTeaKeyMsg(t *testing.T) {
	cases := []struct {
		desc string
		msg  tea.KeyMsg
	}{
		{desc: "Ctrl-Alt-b", msg: tea.KeyMsg{Type: tea.KeyCtrlB, Alt: true}},
		{desc: "Ctrl-s", msg: tea.KeyMsg{Type: tea.KeyCtrlS}},
		{desc: "Shift-Alt-o", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'O'}, Alt: true}},
		{desc: "F11", msg: tea.KeyMsg{Type: tea.KeyF11}},
		{desc: "Alt-x", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}},
	}
	for _, tc := range cases {
		if got, want := MustChord(tc.desc).KeyString(), tc.msg.String(); got != want {
			t.Fatalf("KeyString(%q): got %q, want %q", tc.desc, got, want)
		}
	}
	if got := MustChord("Cmd-Alt-b").KeyString(); got != "alt+ctrl+b" {
		t.Fatalf("cmd chord: got %q", got)
	}
}

func TestDefaultBindings_Table(t *testing.T) {
	want := map[string]action.Name{
		"Ctrl-s": action.Save, "Ctrl-b": action.Beautify,
		"Ctrl-1": action.H1, "Ctrl-2": action.H2, "Ctrl-3": action.H3,
		"Ctrl-4": action.H4, "Ctrl-5": action.H5, "Ctrl-6": action.H6,
		"Ctrl-Alt-t": action.Table, "Ctrl-Alt-m": action.Media, "Ctrl-Alt-p": action.Preview,
		"Ctrl-Alt-b": action.Bold, "Ctrl-Alt-i": action.Italic, "Ctrl-Alt-l": action.Strikethrough,
		"Ctrl-Alt-h": action.Rule, "Ctrl-Alt-q": action.Quote,
		"Shift-Alt-o": action.OrderList, "Shift-Alt-u": action.UnorderList,
		"Shift-Alt-t": action.TaskList, "Shift-Alt-i": action.InlineCode,
		"Shift-Alt-b": action.BlockCode, "Shift-Alt-l": action.Link,
		"F11": action.Fullscreen,
	}
	got := map[string]action.Name{}
	for _, b := range DefaultBindings() {
		got[b.Chord.String()] = b.Action
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("bindings (-want +got):\n%s", diff)
	}
}

func TestMap_DispatchRunsAction(t *testing.T) {
	m := DefaultMap(PlatformDefault)
	c := action.NewCatalog()
	h := &fakeHost{text: "hi", sel: []edit.Range{{From: 0, To: 2}}}

	if !m.Dispatch(tea.KeyMsg{Type: tea.KeyCtrlB, Alt: true}, c, h) {
		t.Fatalf("ctrl+alt+b not dispatched")
	}
	if got, want := h.text, "**hi**"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}

	h.sel = []edit.Range{{From: 0, To: 6}}
	if !m.Dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'T'}, Alt: true}, c, h) {
		t.Fatalf("shift+alt+t not dispatched")
	}
	if got, want := h.text, "- [ ] **hi**"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}

	if m.Dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, c, h) {
		t.Fatalf("plain rune dispatched")
	}
}

func TestMap_DispatchNotifies(t *testing.T) {
	m := DefaultMap(PlatformMac)
	c := action.NewCatalog()
	var got []action.Name
	c.Subscribe(func(tr action.Trigger) { got = append(got, tr.Name) })

	m.Dispatch(tea.KeyMsg{Type: tea.KeyCtrlS}, c, &fakeHost{})
	m.Dispatch(tea.KeyMsg{Type: tea.KeyF11}, c, &fakeHost{})

	if diff := cmp.Diff([]action.Name{action.Save, action.Fullscreen}, got); diff != "" {
		t.Fatalf("triggers (-want +got):\n%s", diff)
	}
}

func TestMap_KeyBindingsHelp(t *testing.T) {
	m := DefaultMap(PlatformMac)
	for _, kb := range m.KeyBindings() {
		if kb.Help().Key == "" || kb.Help().Desc == "" {
			t.Fatalf("binding without help: %+v", kb.Keys())
		}
	}
	if got, ok := m.ShortcutFor(action.Bold); !ok || got != "Cmd-Alt-b" {
		t.Fatalf("ShortcutFor(bold): got %q, %v", got, ok)
	}
}

func TestMap_BindReplaces(t *testing.T) {
	m := DefaultMap(PlatformDefault)
	n := len(m.Bindings())
	if err := m.Bind("Ctrl-Alt-b", action.Italic, "Italic"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if len(m.Bindings()) != n {
		t.Fatalf("binding count changed: %d -> %d", n, len(m.Bindings()))
	}
	if got, _ := m.Lookup("alt+ctrl+b"); got != action.Italic {
		t.Fatalf("Lookup: got %q", got)
	}
	if err := m.Bind("Ctrl-", action.Bold, ""); !errors.Is(err, ErrInvalidChord) {
		t.Fatalf("Bind invalid: got %v", err)
	}
}

func TestToolbar_Layout(t *testing.T) {
	tb := DefaultToolbar(action.NewCatalog())
	var center, bottom []action.Name
	for _, it := range tb.Center {
		center = append(center, it.Name)
	}
	for _, it := range tb.Bottom {
		bottom = append(bottom, it.Name)
	}
	if len(tb.Top) != 0 {
		t.Fatalf("top row: got %d items", len(tb.Top))
	}
	if diff := cmp.Diff(centerItems, center); diff != "" {
		t.Fatalf("center (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]action.Name{action.Theme, action.Helper, action.Save}, bottom); diff != "" {
		t.Fatalf("bottom (-want +got):\n%s", diff)
	}
	if got, want := tb.Bottom[2].Label(PlatformMac), "Save (Cmd-s)"; got != want {
		t.Fatalf("label: got %q, want %q", got, want)
	}
}

func TestToolbar_Click(t *testing.T) {
	tb := DefaultToolbar(action.NewCatalog())
	h := &fakeHost{text: "x", sel: []edit.Range{{From: 0, To: 1}}}
	if !tb.Click(action.Italic, h) {
		t.Fatalf("italic click failed")
	}
	if h.text != "*x*" {
		t.Fatalf("text: got %q", h.text)
	}
	if tb.Click(action.H3, h) {
		t.Fatalf("h3 is not a toolbar button")
	}
}
