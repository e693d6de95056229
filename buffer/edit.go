package buffer

import (
	"github.com/iw2rmb/totonoo/edit"
	"github.com/iw2rmb/totonoo/internal/grapheme"
)

// ApplyEdits applies a batch of edits computed against the current text.
// Overlapping edits are dropped as edit.Apply does; every cursor keeps its
// direction and is mapped through the batch.
func (b *Buffer) ApplyEdits(edits []edit.Edit) {
	b.applyBatch(edits, func(batch []edit.Edit, c cursor) cursor {
		return cursor{
			anchor: edit.MapOffset(batch, c.anchor),
			head:   edit.MapOffset(batch, c.head),
		}
	})
}

// InsertText replaces every selection with s and leaves a collapsed cursor
// after each insertion.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		b.DeleteSelection()
		return
	}
	b.editEach(func(c cursor) (edit.Edit, bool) {
		r := c.rng()
		return edit.Edit{From: r.From, To: r.To, Insert: s}, true
	})
}

// InsertNewline inserts a line break at every cursor.
func (b *Buffer) InsertNewline() { b.InsertText("\n") }

// DeleteBackward removes the grapheme cluster before every collapsed cursor,
// joining lines at a line start, and the selected text of every other range.
func (b *Buffer) DeleteBackward() {
	b.editEach(func(c cursor) (edit.Edit, bool) {
		if !c.collapsed() {
			r := c.rng()
			return edit.Edit{From: r.From, To: r.To}, true
		}
		if c.head == 0 {
			return edit.Edit{}, false
		}
		line, ok := b.doc.LineAt(c.head)
		if !ok {
			return edit.Edit{}, false
		}
		if c.head == line.Start {
			return edit.Edit{From: c.head - 1, To: c.head}, true
		}
		from := line.Start + grapheme.Prev(line.Text, c.head-line.Start)
		return edit.Edit{From: from, To: c.head}, true
	})
}

// DeleteForward removes the grapheme cluster after every collapsed cursor,
// joining lines at a line end, and the selected text of every other range.
func (b *Buffer) DeleteForward() {
	b.editEach(func(c cursor) (edit.Edit, bool) {
		if !c.collapsed() {
			r := c.rng()
			return edit.Edit{From: r.From, To: r.To}, true
		}
		if c.head >= b.doc.Len() {
			return edit.Edit{}, false
		}
		line, ok := b.doc.LineAt(c.head)
		if !ok {
			return edit.Edit{}, false
		}
		if c.head == line.End {
			return edit.Edit{From: c.head, To: c.head + 1}, true
		}
		to := line.Start + grapheme.Next(line.Text, c.head-line.Start)
		return edit.Edit{From: c.head, To: to}, true
	})
}

// DeleteSelection removes the text of every non-empty range.
func (b *Buffer) DeleteSelection() {
	b.editEach(func(c cursor) (edit.Edit, bool) {
		if c.collapsed() {
			return edit.Edit{}, false
		}
		r := c.rng()
		return edit.Edit{From: r.From, To: r.To}, true
	})
}

// editEach builds one edit per cursor and collapses every cursor to the end
// of its own edit. Cursors without an edit are mapped in place.
func (b *Buffer) editEach(fn func(c cursor) (edit.Edit, bool)) {
	targets := make([]int, len(b.cursors))
	edits := make([]edit.Edit, 0, len(b.cursors))
	for i, c := range b.cursors {
		targets[i] = c.head
		if e, ok := fn(c); ok {
			targets[i] = e.To
			edits = append(edits, e)
		}
	}

	i := 0
	b.applyBatch(edits, func(batch []edit.Edit, c cursor) cursor {
		off := edit.MapOffset(batch, targets[i])
		i++
		return cursor{anchor: off, head: off}
	})
}

func (b *Buffer) applyBatch(edits []edit.Edit, move func(batch []edit.Edit, c cursor) cursor) {
	batch := edit.NormalizeEdits(b.doc, edits)
	if len(batch) == 0 {
		return
	}

	prev := b.snapshot()
	next := edit.Apply(b.doc, batch)
	if next == prev.text {
		return
	}
	change := b.beginChange()

	for _, e := range batch {
		change.addAppliedEdit(AppliedEdit{Edit: e, DeletedText: b.doc.Slice(e.From, e.To)})
	}

	cursors := make([]cursor, len(b.cursors))
	for i, c := range b.cursors {
		cursors[i] = move(batch, c)
	}

	b.doc = edit.NewDoc(next)
	b.cursors = b.clampCursors(cursors)
	b.version++
	b.recordUndo(prev)
	b.commitChange(change)
}
