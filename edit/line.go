package edit

import "github.com/iw2rmb/totonoo/internal/pattern"

// InsertLineStart prepends marker to the line containing each range and
// selects the rewritten line content after the marker.
func InsertLineStart(doc Doc, sel []Range, marker string) Result {
	return byRange(doc, sel, func(r Range) (change, bool) {
		line, ok := doc.LineAt(r.From)
		if !ok {
			return change{}, false
		}
		return insertLineStart(line, marker), true
	})
}

// RemoveLineStart strips a literal marker from the start of the line
// containing each range.
func RemoveLineStart(doc Doc, sel []Range, marker string) Result {
	return byRange(doc, sel, func(r Range) (change, bool) {
		line, ok := doc.LineAt(r.From)
		if !ok {
			return change{}, false
		}
		return removeLineStart(line, marker), true
	})
}

// ToggleLineStart removes marker from lines that start with it and inserts
// it everywhere else. The test runs per range against the unedited snapshot.
func ToggleLineStart(doc Doc, sel []Range, marker string) Result {
	return byRange(doc, sel, func(r Range) (change, bool) {
		line, ok := doc.LineAt(r.From)
		if !ok {
			return change{}, false
		}
		if pattern.HasPrefix(line.Text, marker) {
			return removeLineStart(line, marker), true
		}
		return insertLineStart(line, marker), true
	})
}

func insertLineStart(line Line, marker string) change {
	n := runeLen(marker)
	return change{
		edit:    Edit{From: line.Start, To: line.End, Insert: marker + line.Text},
		hasEdit: true,
		local:   Range{From: line.Start + n, To: line.End + n},
	}
}

func removeLineStart(line Line, marker string) change {
	text := pattern.TrimPrefix(line.Text, marker)
	removed := runeLen(line.Text) - runeLen(text)
	return change{
		edit:    Edit{From: line.Start, To: line.End, Insert: text},
		hasEdit: true,
		local:   Range{From: line.Start, To: line.End - removed},
	}
}
