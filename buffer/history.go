package buffer

import "github.com/iw2rmb/totonoo/edit"

type bufferSnapshot struct {
	text    string
	cursors []cursor
}

type historyState struct {
	undo []bufferSnapshot
	redo []bufferSnapshot
}

func (b *Buffer) snapshot() bufferSnapshot {
	return bufferSnapshot{
		text:    b.Text(),
		cursors: append([]cursor(nil), b.cursors...),
	}
}

func (b *Buffer) restore(s bufferSnapshot) {
	b.doc = edit.NewDoc(s.text)
	b.cursors = b.clampCursors(s.cursors)
}

func (b *Buffer) recordUndo(prev bufferSnapshot) {
	if b.opt.HistoryLimit <= 0 {
		return
	}
	b.hist.undo = b.pushLimited(b.hist.undo, prev)
	b.hist.redo = nil
}

func (b *Buffer) pushLimited(stack []bufferSnapshot, s bufferSnapshot) []bufferSnapshot {
	stack = append(stack, s)
	if limit := b.opt.HistoryLimit; limit > 0 && len(stack) > limit {
		stack = stack[len(stack)-limit:]
	}
	return stack
}

func (b *Buffer) CanUndo() bool { return len(b.hist.undo) > 0 }

func (b *Buffer) CanRedo() bool { return len(b.hist.redo) > 0 }

// Undo restores the text and cursors from before the last mutation.
func (b *Buffer) Undo() bool { return b.travel(&b.hist.undo, &b.hist.redo) }

func (b *Buffer) Redo() bool { return b.travel(&b.hist.redo, &b.hist.undo) }

// travel restores the top snapshot of src and pushes the current state onto
// dst. The whole-text replacement is recorded as the change.
func (b *Buffer) travel(src, dst *[]bufferSnapshot) bool {
	if len(*src) == 0 {
		return false
	}

	cur := b.snapshot()
	change := b.beginChange()

	i := len(*src) - 1
	target := (*src)[i]
	*src = (*src)[:i]
	*dst = b.pushLimited(*dst, cur)

	b.restore(target)
	b.version++
	if applied, ok := replacementAppliedEdit(cur.text, target.text); ok {
		change.addAppliedEdit(applied)
	}
	b.commitChange(change)
	return true
}
