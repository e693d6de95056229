package buffer

import (
	"strings"

	"github.com/iw2rmb/totonoo/edit"
)

type Options struct {
	HistoryLimit int // default: 1000; negative disables history
}

// Buffer is the document state: text, cursors and history.
type Buffer struct {
	doc     edit.Doc
	version uint64

	cursors []cursor

	opt  Options
	hist historyState

	lastChange    Change
	hasLastChange bool
}

func New(text string, opt Options) *Buffer {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	return &Buffer{
		doc:     edit.NewDoc(text),
		cursors: []cursor{{}},
		opt:     opt,
	}
}

func (b *Buffer) Text() string { return b.doc.String() }

// Doc returns the current immutable snapshot.
func (b *Buffer) Doc() edit.Doc { return b.doc }

func (b *Buffer) Len() int { return b.doc.Len() }

func (b *Buffer) Version() uint64 { return b.version }

// Selections returns the normalized range of every cursor.
func (b *Buffer) Selections() []edit.Range {
	out := make([]edit.Range, len(b.cursors))
	for i, c := range b.cursors {
		out[i] = c.rng()
	}
	return out
}

// Primary returns the range of the first cursor.
func (b *Buffer) Primary() edit.Range { return b.cursors[0].rng() }

// Heads returns the head offset of every cursor.
func (b *Buffer) Heads() []int {
	out := make([]int, len(b.cursors))
	for i, c := range b.cursors {
		out[i] = c.head
	}
	return out
}

// Cursor returns the head offset of the first cursor.
func (b *Buffer) Cursor() int { return b.cursors[0].head }

// SetCursor collapses the selection to a single cursor at off.
func (b *Buffer) SetCursor(off int) {
	b.setCursors([]cursor{{anchor: off, head: off}})
}

// SetSelections replaces the selection. Each range becomes a cursor with its
// anchor at From and its head at To; ranges are clamped into the text and
// duplicates dropped. An empty list is ignored.
func (b *Buffer) SetSelections(sel []edit.Range) {
	if len(sel) == 0 {
		return
	}
	next := make([]cursor, 0, len(sel))
	for _, r := range sel {
		next = append(next, cursor{anchor: r.From, head: r.To})
	}
	b.setCursors(next)
}

// AddCursor adds a collapsed cursor at off.
func (b *Buffer) AddCursor(off int) {
	next := append(append([]cursor(nil), b.cursors...), cursor{anchor: off, head: off})
	b.setCursors(next)
}

// SelectAll selects the whole text with a single range.
func (b *Buffer) SelectAll() {
	b.setCursors([]cursor{{anchor: 0, head: b.doc.Len()}})
}

// SelectedText returns the text of every non-empty range, joined by
// newlines.
func (b *Buffer) SelectedText() string {
	var sb strings.Builder
	for _, c := range b.cursors {
		if c.collapsed() {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		r := c.rng()
		sb.WriteString(b.doc.Slice(r.From, r.To))
	}
	return sb.String()
}

// PosOf converts an offset to (row, col).
func (b *Buffer) PosOf(off int) Pos {
	off = clampInt(off, 0, b.doc.Len())
	line, _ := b.doc.LineAt(off)
	return Pos{Row: b.doc.LineNumber(off), Col: off - line.Start}
}

// OffsetOf converts (row, col) to an offset, clamping both.
func (b *Buffer) OffsetOf(p Pos) int {
	row := clampInt(p.Row, 0, b.doc.LineCount()-1)
	line, ok := b.doc.Line(row)
	if !ok {
		return 0
	}
	return line.Start + clampInt(p.Col, 0, line.End-line.Start)
}

func (b *Buffer) setCursors(next []cursor) {
	next = b.clampCursors(next)
	if cursorsEqual(b.cursors, next) {
		return
	}
	b.cursors = next
	b.version++
}

func (b *Buffer) clampCursors(in []cursor) []cursor {
	out := make([]cursor, 0, len(in))
	seen := make(map[cursor]bool, len(in))
	for _, c := range in {
		c.anchor = clampInt(c.anchor, 0, b.doc.Len())
		c.head = clampInt(c.head, 0, b.doc.Len())
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	if len(out) == 0 {
		out = append(out, cursor{})
	}
	return out
}

func cursorsEqual(a, b []cursor) bool {
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
