package edit

import "unicode/utf8"

// Range is a selection range [From, To) in rune offsets.
type Range struct {
	From int
	To   int
}

// Cursor returns an empty range at off.
func Cursor(off int) Range { return Range{From: off, To: off} }

func (r Range) Normalize() Range {
	if r.From <= r.To {
		return r
	}
	return Range{From: r.To, To: r.From}
}

func (r Range) IsEmpty() bool { return r.From == r.To }

// Edit replaces [From, To) of the original snapshot with Insert.
type Edit struct {
	From   int
	To     int
	Insert string
}

func (e Edit) isInsertion() bool { return e.From == e.To }

func (e Edit) insertLen() int { return utf8.RuneCountInString(e.Insert) }

func (e Edit) delta() int { return e.insertLen() - (e.To - e.From) }

func (e Edit) overlaps(o Edit) bool {
	if e.isInsertion() && o.isInsertion() {
		return e.From == o.From
	}
	if e.isInsertion() {
		return o.From < e.From && e.From < o.To
	}
	if o.isInsertion() {
		return e.From < o.From && o.From < e.To
	}
	return e.From < o.To && o.From < e.To
}

// Line is a derived view of one buffer line. End excludes the newline.
type Line struct {
	Start int
	End   int
	Text  string
}

// Result is the outcome of one operation.
//
// Selection[i] corresponds to the i-th input range and is expressed in the
// coordinates obtained after applying all Edits.
type Result struct {
	Edits     []Edit
	Selection []Range
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
