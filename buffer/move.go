package buffer

import "github.com/iw2rmb/totonoo/internal/grapheme"

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // keep the anchor; otherwise every cursor collapses
}

// Move moves the head of every cursor.
func (b *Buffer) Move(m Move) {
	next := make([]cursor, len(b.cursors))
	for i, c := range b.cursors {
		head := b.moveOffset(c.head, m)
		if m.Extend {
			next[i] = cursor{anchor: c.anchor, head: head}
		} else {
			next[i] = cursor{anchor: head, head: head}
		}
	}
	b.setCursors(next)
}

func (b *Buffer) moveOffset(off int, m Move) int {
	switch m.Unit {
	case MoveGrapheme:
		return b.moveGrapheme(off, m.Dir)
	case MoveWord:
		return b.moveWord(off, m.Dir)
	case MoveLine:
		return b.moveLine(off, m.Dir)
	case MoveDoc:
		return b.moveDoc(off, m.Dir)
	default:
		return off
	}
}

func (b *Buffer) moveGrapheme(off int, dir MoveDir) int {
	line, ok := b.doc.LineAt(off)
	if !ok {
		return off
	}
	switch dir {
	case DirLeft:
		if off == line.Start {
			return maxInt(off-1, 0)
		}
		return line.Start + grapheme.Prev(line.Text, off-line.Start)
	case DirRight:
		if off == line.End {
			return minInt(off+1, b.doc.Len())
		}
		return line.Start + grapheme.Next(line.Text, off-line.Start)
	default:
		return b.moveLine(off, dir)
	}
}

func (b *Buffer) moveWord(off int, dir MoveDir) int {
	line, ok := b.doc.LineAt(off)
	if !ok {
		return off
	}
	switch dir {
	case DirLeft:
		return line.Start + prevWordBoundary(grapheme.Clusters(line.Text), off-line.Start)
	case DirRight:
		return line.Start + nextWordBoundary(grapheme.Clusters(line.Text), off-line.Start)
	case DirHome:
		return line.Start
	case DirEnd:
		return line.End
	default:
		return off
	}
}

func (b *Buffer) moveLine(off int, dir MoveDir) int {
	line, ok := b.doc.LineAt(off)
	if !ok {
		return off
	}
	row := b.doc.LineNumber(off)

	switch dir {
	case DirHome:
		return line.Start
	case DirEnd:
		return line.End
	case DirUp, DirDown:
		nr := row - 1
		if dir == DirDown {
			nr = row + 1
		}
		target, ok := b.doc.Line(nr)
		if !ok {
			return off
		}
		col := grapheme.Column(line.Text, off-line.Start)
		return target.Start + grapheme.OffsetAt(target.Text, col)
	default:
		return off
	}
}

func (b *Buffer) moveDoc(off int, dir MoveDir) int {
	switch dir {
	case DirHome, DirUp:
		return 0
	case DirEnd, DirDown:
		return b.doc.Len()
	default:
		return off
	}
}

// Word boundaries skip whitespace, then non-whitespace, and never cross the
// line. Offsets are relative to the line start.
func prevWordBoundary(cs []grapheme.Cluster, off int) int {
	i := len(cs)
	for i > 0 && cs[i-1].Start >= off {
		i--
	}
	for i > 0 && grapheme.IsSpace(cs[i-1].Text) {
		i--
	}
	for i > 0 && !grapheme.IsSpace(cs[i-1].Text) {
		i--
	}
	if i == 0 {
		return 0
	}
	return cs[i].Start
}

func nextWordBoundary(cs []grapheme.Cluster, off int) int {
	i := 0
	for i < len(cs) && cs[i].End <= off {
		i++
	}
	for i < len(cs) && grapheme.IsSpace(cs[i].Text) {
		i++
	}
	for i < len(cs) && !grapheme.IsSpace(cs[i].Text) {
		i++
	}
	if i == 0 {
		return off
	}
	return cs[i-1].End
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
