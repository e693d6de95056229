package edit

// change is the contribution of one selection range, computed against the
// original snapshot as if no other range existed.
type change struct {
	edit    Edit
	hasEdit bool
	// local is the range after applying only edit.
	local Range
}

type rangeFunc func(r Range) (change, bool)

// byRange runs fn for every range and assembles one batch.
//
// Ranges that fn rejects keep their position, mapped through the accepted
// edits. An edit overlapping an earlier accepted edit is shared when
// identical and dropped otherwise. Every returned range lies within the
// text that results from the batch.
func byRange(doc Doc, sel []Range, fn rangeFunc) Result {
	type slot struct {
		r       Range
		c       change
		ok      bool
		editIdx int
	}

	slots := make([]slot, len(sel))
	var edits []Edit

	for i, r := range sel {
		r = r.Normalize()
		c, ok := fn(r)
		s := slot{r: r, c: c, ok: ok, editIdx: -1}
		if ok && c.hasEdit {
			conflict := false
			for j, e := range edits {
				if e == c.edit {
					s.editIdx = j
					break
				}
				if e.overlaps(c.edit) {
					conflict = true
					break
				}
			}
			switch {
			case s.editIdx >= 0:
			case conflict:
				s.ok = false
			default:
				edits = append(edits, c.edit)
				s.editIdx = len(edits) - 1
			}
		}
		slots[i] = s
	}

	out := Result{Edits: edits, Selection: make([]Range, len(sel))}
	for i, s := range slots {
		switch {
		case !s.ok:
			out.Selection[i] = Range{From: mapOffset(edits, s.r.From), To: mapOffset(edits, s.r.To)}
		case s.editIdx < 0:
			out.Selection[i] = Range{From: mapOffset(edits, s.c.local.From), To: mapOffset(edits, s.c.local.To)}
		default:
			own := edits[s.editIdx]
			shift := 0
			for j, e := range edits {
				if j != s.editIdx && precedes(e, own) {
					shift += e.delta()
				}
			}
			out.Selection[i] = Range{From: s.c.local.From + shift, To: s.c.local.To + shift}
		}
	}

	n := doc.Len()
	for _, e := range edits {
		n += e.delta()
	}
	for i, r := range out.Selection {
		out.Selection[i] = Range{From: clampInt(r.From, 0, n), To: clampInt(r.To, 0, n)}.Normalize()
	}
	return out
}

// precedes reports whether a is applied at a lower offset than b. At equal
// offsets an insertion goes before a replacement.
func precedes(a, b Edit) bool {
	if a.From != b.From {
		return a.From < b.From
	}
	return a.isInsertion() && !b.isInsertion()
}

// mapOffset maps an offset of the original snapshot through edits. Offsets
// inside a replaced span move to the end of the replacement; an insertion at
// off pushes off to the right.
func mapOffset(edits []Edit, off int) int {
	out := off
	for _, e := range edits {
		switch {
		case e.To < off || (e.To == off && e.From < off):
			out += e.delta()
		case e.isInsertion() && e.From == off:
			out += e.delta()
		case e.From < off && off < e.To:
			out += e.From + e.insertLen() - off
		}
	}
	return out
}
