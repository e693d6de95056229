package hotkey

import "github.com/iw2rmb/totonoo/action"

// Item is one toolbar button.
type Item struct {
	Name     action.Name
	Title    string
	Shortcut string
}

// Label is the button text, with the shortcut when there is one.
func (it Item) Label(p Platform) string {
	if it.Shortcut == "" {
		return it.Title
	}
	c, err := ParseChord(it.Shortcut)
	if err != nil {
		return it.Title
	}
	return it.Title + " (" + c.ForPlatform(p).String() + ")"
}

// Toolbar groups buttons in three rows. Clicking a button invokes its
// action through the catalog the toolbar was built from.
type Toolbar struct {
	Top    []Item
	Center []Item
	Bottom []Item

	catalog *action.Catalog
}

var (
	centerItems = []action.Name{
		action.Head, action.Table, action.Media, action.Bold, action.Strikethrough,
		action.Italic, action.TaskList, action.OrderList, action.UnorderList,
		action.Link, action.BlockCode, action.InlineCode, action.Quote, action.Preview,
	}
	bottomItems = []action.Name{action.Theme, action.Helper, action.Save}
)

// DefaultToolbar lays out the catalog's actions: formatting buttons in the
// center row, theme, helper and save at the bottom.
func DefaultToolbar(c *action.Catalog) Toolbar {
	return Toolbar{
		Center:  items(c, centerItems),
		Bottom:  items(c, bottomItems),
		catalog: c,
	}
}

func items(c *action.Catalog, names []action.Name) []Item {
	out := make([]Item, 0, len(names))
	for _, n := range names {
		a, ok := c.Lookup(n)
		if !ok {
			continue
		}
		out = append(out, Item{Name: a.Name, Title: a.Title, Shortcut: a.ShortcutKey})
	}
	return out
}

// Items returns all rows, top to bottom.
func (t Toolbar) Items() []Item {
	out := make([]Item, 0, len(t.Top)+len(t.Center)+len(t.Bottom))
	out = append(out, t.Top...)
	out = append(out, t.Center...)
	return append(out, t.Bottom...)
}

// Click invokes the named button. It reports false when the toolbar has no
// such button.
func (t Toolbar) Click(name action.Name, h action.Host) bool {
	if t.catalog == nil {
		return false
	}
	for _, it := range t.Items() {
		if it.Name == name {
			return t.catalog.Invoke(name, h)
		}
	}
	return false
}
