package edit

import (
	"sort"
	"strings"
)

// NormalizeEdits returns the batch Apply performs for edits: every edit
// clamped into doc, in input order, without no-op edits and without edits
// overlapping an earlier one.
func NormalizeEdits(doc Doc, edits []Edit) []Edit {
	out := make([]Edit, 0, len(edits))
	for _, e := range edits {
		e.From = clampInt(e.From, 0, doc.Len())
		e.To = clampInt(e.To, e.From, doc.Len())
		if e.From == e.To && e.Insert == "" {
			continue
		}
		keep := true
		for _, prev := range out {
			if prev.overlaps(e) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, e)
		}
	}
	return out
}

// Apply applies a batch of edits computed against doc and returns the new
// text. Edits are applied from the highest offset down, so every edit sees
// the offsets it was computed for.
func Apply(doc Doc, edits []Edit) string {
	batch := NormalizeEdits(doc, edits)
	if len(batch) == 0 {
		return doc.String()
	}
	sort.SliceStable(batch, func(i, j int) bool {
		return precedes(batch[j], batch[i])
	})

	end := doc.Len()
	parts := make([]string, 0, 2*len(batch)+1)
	for _, e := range batch {
		parts = append(parts, string(doc.text[e.To:end]), e.Insert)
		end = e.From
	}
	parts = append(parts, string(doc.text[:end]))

	var sb strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		sb.WriteString(parts[i])
	}
	return sb.String()
}

// ApplyResult applies r to doc and returns the new text with r.Selection.
func ApplyResult(doc Doc, r Result) (string, []Range) {
	return Apply(doc, r.Edits), r.Selection
}

// MapOffset maps an offset of the snapshot a normalized batch was computed
// against into the text after the batch.
func MapOffset(edits []Edit, off int) int { return mapOffset(edits, off) }

// MapRange maps both ends of r through edits.
func MapRange(edits []Edit, r Range) Range {
	return Range{From: mapOffset(edits, r.From), To: mapOffset(edits, r.To)}
}
