package action

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/totonoo/edit"
)

type fakeHost struct {
	text     string
	sel      []edit.Range
	applied  int
	focused  int
	setCalls int
}

func (h *fakeHost) Text() string                 { return h.text }
func (h *fakeHost) Selections() []edit.Range     { return append([]edit.Range(nil), h.sel...) }
func (h *fakeHost) Focus()                       { h.focused++ }
func (h *fakeHost) SetSelections(s []edit.Range) { h.sel = s; h.setCalls++ }

func (h *fakeHost) ApplyEdits(edits []edit.Edit) {
	h.text = edit.Apply(edit.NewDoc(h.text), edits)
	h.applied++
}

func TestCatalog_BoldToggles(t *testing.T) {
	c := NewCatalog()
	h := &fakeHost{text: "say hi", sel: []edit.Range{{From: 4, To: 6}}}

	if !c.Invoke(Bold, h) {
		t.Fatalf("bold not found")
	}
	if got, want := h.text, "say **hi**"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if diff := cmp.Diff([]edit.Range{{From: 6, To: 8}}, h.sel); diff != "" {
		t.Fatalf("selection (-want +got):\n%s", diff)
	}

	c.Invoke(Bold, h)
	if got, want := h.text, "say hi"; got != want {
		t.Fatalf("second toggle: got %q, want %q", got, want)
	}
	if h.focused != 2 {
		t.Fatalf("focus calls: got %d, want 2", h.focused)
	}
}

func TestCatalog_BlockCodeLandsBetweenFences(t *testing.T) {
	c := NewCatalog()
	h := &fakeHost{text: "abc", sel: []edit.Range{edit.Cursor(3)}}
	c.Invoke(BlockCode, h)

	if got, want := h.text, "abc\n```\n```\n"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if diff := cmp.Diff([]edit.Range{edit.Cursor(7)}, h.sel); diff != "" {
		t.Fatalf("selection (-want +got):\n%s", diff)
	}
}

func TestCatalog_HeadingsAndLists(t *testing.T) {
	cases := []struct {
		name Name
		text string
		sel  edit.Range
		want string
	}{
		{name: H2, text: "title", sel: edit.Cursor(2), want: "## title"},
		{name: H4, text: "title", sel: edit.Cursor(0), want: "#### title"},
		{name: H1, text: "# title", sel: edit.Cursor(3), want: "title"},
		{name: Head, text: "## x", sel: edit.Cursor(0), want: "### x"},
		{name: Quote, text: "a\nb", sel: edit.Range{From: 0, To: 3}, want: "> a\n> b"},
		{name: OrderList, text: "a\nb", sel: edit.Range{From: 0, To: 3}, want: "1. a\n2. b"},
		{name: UnorderList, text: "a", sel: edit.Range{From: 0, To: 1}, want: "- a"},
		{name: TaskList, text: "a", sel: edit.Range{From: 0, To: 1}, want: "- [ ] a"},
		{name: InlineCode, text: "x", sel: edit.Range{From: 0, To: 1}, want: "`x`"},
		{name: Strikethrough, text: "x", sel: edit.Range{From: 0, To: 1}, want: "~~x~~"},
		{name: Italic, text: "x", sel: edit.Range{From: 0, To: 1}, want: "*x*"},
		{name: Rule, text: "x", sel: edit.Cursor(1), want: "x\n\n---\n\n"},
		{name: Link, text: "", sel: edit.Cursor(0), want: `[标题](https:// "标题")`},
	}
	c := NewCatalog()
	for _, tc := range cases {
		h := &fakeHost{text: tc.text, sel: []edit.Range{tc.sel}}
		if !c.Invoke(tc.name, h) {
			t.Fatalf("%s: not found", tc.name)
		}
		if h.text != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, h.text, tc.want)
		}
	}
}

func TestCatalog_TableUsesDefaultSize(t *testing.T) {
	c := NewCatalog()
	h := &fakeHost{sel: []edit.Range{edit.Cursor(0)}}
	c.Invoke(Table, h)

	want := "\n" + edit.TableSkeleton(DefaultTableCols, DefaultTableRows) + "\n"
	if h.text != want {
		t.Fatalf("text: got %q, want %q", h.text, want)
	}
}

func TestCatalog_NotificationOnlyActionsLeaveTextAlone(t *testing.T) {
	c := NewCatalog()
	var got []Trigger
	cancel := c.Subscribe(func(tr Trigger) { got = append(got, tr) })
	defer cancel()

	for _, name := range []Name{Save, Media, Preview, Fullscreen, Theme, Helper} {
		h := &fakeHost{text: "keep", sel: []edit.Range{edit.Cursor(1)}}
		if !c.Invoke(name, h) {
			t.Fatalf("%s: not found", name)
		}
		if h.text != "keep" || h.applied != 0 || h.setCalls != 0 {
			t.Fatalf("%s: host mutated: %+v", name, h)
		}
		a, _ := c.Lookup(name)
		if a.Edits() {
			t.Fatalf("%s: Edits() = true", name)
		}
	}
	if len(got) != 6 {
		t.Fatalf("triggers: got %d, want 6", len(got))
	}
	if got[0] != (Trigger{Name: Save, Text: "keep"}) {
		t.Fatalf("first trigger: got %+v", got[0])
	}
}

func TestCatalog_BeautifyReformatsWholeText(t *testing.T) {
	c := NewCatalog()
	var got []Trigger
	c.Subscribe(func(tr Trigger) { got = append(got, tr) })

	h := &fakeHost{text: "Title\n===\n* a\n* b", sel: []edit.Range{edit.Cursor(40)}}
	if !c.Invoke(Beautify, h) {
		t.Fatalf("beautify not found")
	}
	want := "# Title\n\n- a\n- b\n"
	if h.text != want {
		t.Fatalf("text: got %q, want %q", h.text, want)
	}
	if h.applied != 1 {
		t.Fatalf("apply calls: got %d, want 1", h.applied)
	}
	if diff := cmp.Diff([]edit.Range{edit.Cursor(len(want))}, h.sel); diff != "" {
		t.Fatalf("selection (-want +got):\n%s", diff)
	}
	if len(got) != 1 || got[0] != (Trigger{Name: Beautify, Text: want}) {
		t.Fatalf("triggers: got %+v", got)
	}

	c.Invoke(Beautify, h)
	if h.applied != 1 {
		t.Fatalf("second beautify applied edits: %d", h.applied)
	}
}

func TestCatalog_TriggerCarriesTextAfterAction(t *testing.T) {
	c := NewCatalog()
	var got []Trigger
	c.Subscribe(func(tr Trigger) { got = append(got, tr) })

	h := &fakeHost{text: "x", sel: []edit.Range{{From: 0, To: 1}}}
	c.Invoke(Bold, h)

	if diff := cmp.Diff([]Trigger{{Name: Bold, Text: "**x**"}}, got); diff != "" {
		t.Fatalf("triggers (-want +got):\n%s", diff)
	}
}

func TestCatalog_UnknownName(t *testing.T) {
	c := NewCatalog()
	fired := 0
	c.Subscribe(func(Trigger) { fired++ })
	if c.Invoke("nope", &fakeHost{}) {
		t.Fatalf("unknown action reported found")
	}
	if fired != 0 {
		t.Fatalf("unknown action notified %d times", fired)
	}
}

func TestCatalog_LookupIsCaseInsensitive(t *testing.T) {
	c := NewCatalog()
	a, ok := c.Lookup("BOLD")
	if !ok || a.Name != Bold {
		t.Fatalf("Lookup(BOLD): got %+v, %v", a, ok)
	}
}

func TestCatalog_ShortcutsAreUnique(t *testing.T) {
	seen := map[string]Name{}
	for _, a := range NewCatalog().Actions() {
		if a.ShortcutKey == "" {
			continue
		}
		if prev, ok := seen[a.ShortcutKey]; ok {
			t.Fatalf("shortcut %q bound to %s and %s", a.ShortcutKey, prev, a.Name)
		}
		seen[a.ShortcutKey] = a.Name
	}
	if len(seen) != 23 {
		t.Fatalf("shortcut count: got %d, want 23", len(seen))
	}
}

func TestRun_NoSelectionOnlyFocuses(t *testing.T) {
	h := &fakeHost{text: "x"}
	Run(h, func(doc edit.Doc, sel []edit.Range) edit.Result {
		t.Fatalf("op called without selection")
		return edit.Result{}
	})
	if h.focused != 1 || h.applied != 0 {
		t.Fatalf("host: %+v", h)
	}
}
