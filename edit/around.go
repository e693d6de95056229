package edit

import "github.com/iw2rmb/totonoo/internal/pattern"

// InsertAround wraps every selected text as start+text+end. The selection
// moves right by len(start) and keeps its width.
func InsertAround(doc Doc, sel []Range, start, end string) Result {
	return byRange(doc, sel, func(r Range) (change, bool) {
		if !doc.Contains(r.From) || !doc.Contains(r.To) {
			return change{}, false
		}
		return insertAround(doc, r, start, end), true
	})
}

// RemoveAround strips start and end from the span widened by the marker
// lengths around every range. The widened span is truncated at the document
// bounds.
func RemoveAround(doc Doc, sel []Range, start, end string) Result {
	return byRange(doc, sel, func(r Range) (change, bool) {
		if !doc.Contains(r.From) || !doc.Contains(r.To) {
			return change{}, false
		}
		return removeAround(doc, r, start, end), true
	})
}

// ToggleAround removes the markers when the widened span starts with start
// and ends with end, and inserts them otherwise. A widened span that would
// leave the document counts as "not present".
func ToggleAround(doc Doc, sel []Range, start, end string) Result {
	return byRange(doc, sel, func(r Range) (change, bool) {
		if !doc.Contains(r.From) || !doc.Contains(r.To) {
			return change{}, false
		}
		if hasAround(doc, r, start, end) {
			return removeAround(doc, r, start, end), true
		}
		return insertAround(doc, r, start, end), true
	})
}

// InsertAroundLine wraps the selection in a block delimited by blank lines:
//
//	\n\n<before>\n<text>\n<after>\n\n
//
// The newline after before is omitted when the selection is empty. The
// cursor lands right after before and its newline, or right after before
// for an empty selection.
func InsertAroundLine(doc Doc, sel []Range, before, after string) Result {
	return byRange(doc, sel, func(r Range) (change, bool) {
		if !doc.Contains(r.From) || !doc.Contains(r.To) {
			return change{}, false
		}
		text := doc.Slice(r.From, r.To)
		sep := ""
		if text != "" {
			sep = "\n"
		}
		c := r.From + 2 + runeLen(before) + runeLen(sep)
		return change{
			edit:    Edit{From: r.From, To: r.To, Insert: "\n\n" + before + sep + text + "\n" + after + "\n\n"},
			hasEdit: true,
			local:   Cursor(c),
		}, true
	})
}

func hasAround(doc Doc, r Range, start, end string) bool {
	from := r.From - runeLen(start)
	to := r.To + runeLen(end)
	if from < 0 || to > doc.Len() {
		return false
	}
	text := doc.Slice(from, to)
	return pattern.HasPrefix(text, start) && pattern.HasSuffix(text, end)
}

func insertAround(doc Doc, r Range, start, end string) change {
	if start+end == "" {
		return change{local: r}
	}
	n := runeLen(start)
	return change{
		edit:    Edit{From: r.From, To: r.To, Insert: start + doc.Slice(r.From, r.To) + end},
		hasEdit: true,
		local:   Range{From: r.From + n, To: r.To + n},
	}
}

// removeAround replaces the widened span with its text minus the markers.
// The new range is {from-len(start), to-len(start)}, whether or not the
// markers were found; a span that loses nothing yields no edit.
func removeAround(doc Doc, r Range, start, end string) change {
	from := clampInt(r.From-runeLen(start), 0, doc.Len())
	to := clampInt(r.To+runeLen(end), 0, doc.Len())
	orig := doc.Slice(from, to)
	text := pattern.TrimSuffix(pattern.TrimPrefix(orig, start), end)
	local := Range{From: from, To: maxInt(r.To-runeLen(start), from)}
	if text == orig {
		return change{local: local}
	}
	return change{
		edit:    Edit{From: from, To: to, Insert: text},
		hasEdit: true,
		local:   local,
	}
}
