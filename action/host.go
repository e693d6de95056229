// Package action is the catalog of named Markdown editing actions.
//
// Every action reads the host buffer, computes a batch with package edit and
// hands the edits and the resulting selection back to the host.
package action

import "github.com/iw2rmb/totonoo/edit"

// Host is the buffer/view an action operates on.
//
// ApplyEdits receives edits computed against the text returned by the
// preceding Text call and must apply them as one batch, remapping offsets
// between them itself.
type Host interface {
	Text() string
	Selections() []edit.Range
	ApplyEdits(edits []edit.Edit)
	SetSelections(sel []edit.Range)
	Focus()
}

// Op is an edit engine call bound to its marker arguments.
type Op func(doc edit.Doc, sel []edit.Range) edit.Result

// Run executes op against the current host state: it applies the edits,
// restores the resulting selection and focuses the host.
func Run(h Host, op Op) {
	if h == nil || op == nil {
		return
	}
	sel := h.Selections()
	if len(sel) > 0 {
		res := op(edit.NewDoc(h.Text()), sel)
		if len(res.Edits) > 0 {
			h.ApplyEdits(res.Edits)
		}
		h.SetSelections(res.Selection)
	}
	h.Focus()
}

// InsertTable inserts a cols x rows table skeleton after the cursor.
func InsertTable(h Host, cols, rows int) {
	Run(h, func(doc edit.Doc, sel []edit.Range) edit.Result {
		return edit.InsertTable(doc, sel, cols, rows)
	})
}

// InsertMedia inserts ![desc](url) at the selection.
func InsertMedia(h Host, url, desc string) {
	Run(h, func(doc edit.Doc, sel []edit.Range) edit.Result {
		return edit.InsertMedia(doc, sel, url, desc)
	})
}

// InsertLink inserts a link and selects its URL.
func InsertLink(h Host, url, title string) {
	Run(h, func(doc edit.Doc, sel []edit.Range) edit.Result {
		return edit.InsertLink(doc, sel, url, title)
	})
}
