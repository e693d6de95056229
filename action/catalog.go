package action

import (
	"sort"
	"strings"

	"github.com/iw2rmb/totonoo/edit"
	"github.com/iw2rmb/totonoo/internal/observer"
	"github.com/iw2rmb/totonoo/render"
)

// Name identifies a catalog action.
type Name string

const (
	Save          Name = "save"
	Beautify      Name = "beautify"
	Head          Name = "head"
	H1            Name = "h1"
	H2            Name = "h2"
	H3            Name = "h3"
	H4            Name = "h4"
	H5            Name = "h5"
	H6            Name = "h6"
	Table         Name = "table"
	Media         Name = "media"
	Preview       Name = "preview"
	Bold          Name = "bold"
	Italic        Name = "italic"
	Strikethrough Name = "strikethrough"
	Rule          Name = "hr"
	Quote         Name = "quote"
	OrderList     Name = "orderlist"
	UnorderList   Name = "unorderlist"
	TaskList      Name = "tasklist"
	InlineCode    Name = "inlinecode"
	BlockCode     Name = "blockcode"
	Link          Name = "link"
	Fullscreen    Name = "fullscreen"
	Theme         Name = "theme"
	Helper        Name = "helper"
)

// Default table size used by the Table action.
const (
	DefaultTableCols = 3
	DefaultTableRows = 3
)

// Action is one named catalog entry.
type Action struct {
	Name  Name
	Title string
	// ShortcutKey is a chord descriptor such as "Ctrl-Alt-b"; empty when the
	// action has no default shortcut.
	ShortcutKey string
	// Run mutates the host; nil for notification-only actions.
	Run func(Host)
}

// Invoke runs the action against h. Notification-only actions do nothing
// here; hosts observe them through Catalog.Subscribe.
func (a Action) Invoke(h Host) {
	if a.Run != nil {
		a.Run(h)
	}
}

// Edits reports whether invoking the action mutates the buffer.
func (a Action) Edits() bool { return a.Run != nil }

// Trigger is published after every Catalog.Invoke.
type Trigger struct {
	Name Name
	// Text is the host text after the action ran.
	Text string
}

// Catalog is the fixed table of actions.
type Catalog struct {
	actions  []Action
	byName   map[Name]int
	triggers observer.Registry[Trigger]
}

func NewCatalog() *Catalog {
	c := &Catalog{byName: make(map[Name]int)}
	for _, a := range defaultActions() {
		c.byName[a.Name] = len(c.actions)
		c.actions = append(c.actions, a)
	}
	return c
}

// Actions returns the catalog entries in table order.
func (c *Catalog) Actions() []Action {
	return append([]Action(nil), c.actions...)
}

// Names returns the sorted action names.
func (c *Catalog) Names() []Name {
	out := make([]Name, 0, len(c.actions))
	for _, a := range c.actions {
		out = append(out, a.Name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (c *Catalog) Lookup(name Name) (Action, bool) {
	i, ok := c.byName[Name(strings.ToLower(string(name)))]
	if !ok {
		return Action{}, false
	}
	return c.actions[i], true
}

// Invoke runs the named action against h and notifies subscribers. It
// reports false for unknown names.
func (c *Catalog) Invoke(name Name, h Host) bool {
	a, ok := c.Lookup(name)
	if !ok {
		return false
	}
	a.Invoke(h)
	tr := Trigger{Name: a.Name}
	if h != nil {
		tr.Text = h.Text()
	}
	c.triggers.Notify(tr)
	return true
}

// Subscribe registers fn for triggers and returns its cancel function.
func (c *Catalog) Subscribe(fn func(Trigger)) (cancel func()) {
	return c.triggers.Subscribe(fn)
}

func toggleAround(start, end string) func(Host) {
	return func(h Host) {
		Run(h, func(doc edit.Doc, sel []edit.Range) edit.Result {
			return edit.ToggleAround(doc, sel, start, end)
		})
	}
}

func toggleLineStart(marker string) func(Host) {
	return func(h Host) {
		Run(h, func(doc edit.Doc, sel []edit.Range) edit.Result {
			return edit.ToggleLineStart(doc, sel, marker)
		})
	}
}

func startPerLine(marker string) func(Host) {
	return func(h Host) {
		Run(h, func(doc edit.Doc, sel []edit.Range) edit.Result {
			return edit.InsertStartPerLine(doc, sel, marker)
		})
	}
}

func lineAfterCursor(text string) func(Host) {
	return func(h Host) {
		Run(h, func(doc edit.Doc, sel []edit.Range) edit.Result {
			return edit.InsertLineAfterCursor(doc, sel, text)
		})
	}
}

// beautify reformats the whole document.
func beautify(doc edit.Doc, sel []edit.Range) edit.Result {
	return edit.ReplaceAll(doc, sel, render.Beautify(doc.String()))
}

func heading(level int) Action {
	n := string(rune('0' + level))
	return Action{
		Name:        Name("h" + n),
		Title:       "Heading " + n,
		ShortcutKey: "Ctrl-" + n,
		Run:         toggleLineStart(strings.Repeat("#", level) + " "),
	}
}

func defaultActions() []Action {
	return []Action{
		{Name: Save, Title: "Save", ShortcutKey: "Ctrl-s"},
		{Name: Beautify, Title: "Beautify", ShortcutKey: "Ctrl-b", Run: func(h Host) { Run(h, beautify) }},
		{Name: Head, Title: "Heading", Run: func(h Host) { Run(h, edit.CycleHeading) }},
		heading(1), heading(2), heading(3), heading(4), heading(5), heading(6),
		{Name: Table, Title: "Table", ShortcutKey: "Ctrl-Alt-t", Run: func(h Host) {
			InsertTable(h, DefaultTableCols, DefaultTableRows)
		}},
		{Name: Media, Title: "Media", ShortcutKey: "Ctrl-Alt-m"},
		{Name: Preview, Title: "Preview", ShortcutKey: "Ctrl-Alt-p"},
		{Name: Bold, Title: "Bold", ShortcutKey: "Ctrl-Alt-b", Run: toggleAround("**", "**")},
		{Name: Italic, Title: "Italic", ShortcutKey: "Ctrl-Alt-i", Run: toggleAround("*", "*")},
		{Name: Strikethrough, Title: "Strikethrough", ShortcutKey: "Ctrl-Alt-l", Run: toggleAround("~~", "~~")},
		{Name: Rule, Title: "Horizontal rule", ShortcutKey: "Ctrl-Alt-h", Run: lineAfterCursor("\n---\n")},
		{Name: Quote, Title: "Quote", ShortcutKey: "Ctrl-Alt-q", Run: startPerLine("> ")},
		{Name: OrderList, Title: "Ordered list", ShortcutKey: "Shift-Alt-o", Run: startPerLine(edit.NumPlaceholder + ". ")},
		{Name: UnorderList, Title: "Unordered list", ShortcutKey: "Shift-Alt-u", Run: startPerLine("- ")},
		{Name: TaskList, Title: "Task list", ShortcutKey: "Shift-Alt-t", Run: startPerLine("- [ ] ")},
		{Name: InlineCode, Title: "Inline code", ShortcutKey: "Shift-Alt-i", Run: toggleAround("`", "`")},
		{Name: BlockCode, Title: "Code block", ShortcutKey: "Shift-Alt-b", Run: func(h Host) {
			lineAfterCursor("```\n```")(h)
			// Land between the fences, right after the opening one.
			Run(h, func(doc edit.Doc, sel []edit.Range) edit.Result {
				return edit.SetCursor(doc, sel, -4, -4)
			})
		}},
		{Name: Link, Title: "Link", ShortcutKey: "Shift-Alt-l", Run: func(h Host) { InsertLink(h, "", "") }},
		{Name: Fullscreen, Title: "Fullscreen", ShortcutKey: "F11"},
		{Name: Theme, Title: "Light/dark"},
		{Name: Helper, Title: "Shortcuts"},
	}
}
