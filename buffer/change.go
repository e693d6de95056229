package buffer

import "github.com/iw2rmb/totonoo/edit"

// AppliedEdit describes one effective edit in a change transaction.
type AppliedEdit struct {
	// Edit is expressed against the text before the change.
	Edit        edit.Edit
	DeletedText string
}

// Change is a normalized, versioned mutation payload.
type Change struct {
	VersionBefore   uint64
	VersionAfter    uint64
	SelectionBefore []edit.Range
	SelectionAfter  []edit.Range
	AppliedEdits    []AppliedEdit
}

type changeBuilder struct {
	versionBefore   uint64
	selectionBefore []edit.Range
	appliedEdits    []AppliedEdit
}

// LastChange returns the most recent effective change.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	return cloneChange(b.lastChange), true
}

func cloneChange(in Change) Change {
	out := in
	out.SelectionBefore = append([]edit.Range(nil), in.SelectionBefore...)
	out.SelectionAfter = append([]edit.Range(nil), in.SelectionAfter...)
	out.AppliedEdits = append([]AppliedEdit(nil), in.AppliedEdits...)
	return out
}

func (b *Buffer) beginChange() changeBuilder {
	return changeBuilder{
		versionBefore:   b.version,
		selectionBefore: b.Selections(),
	}
}

func (cb *changeBuilder) addAppliedEdit(e AppliedEdit) {
	cb.appliedEdits = append(cb.appliedEdits, e)
}

func (b *Buffer) commitChange(cb changeBuilder) {
	if b.version == cb.versionBefore {
		return
	}
	b.lastChange = Change{
		VersionBefore:   cb.versionBefore,
		VersionAfter:    b.version,
		SelectionBefore: cb.selectionBefore,
		SelectionAfter:  b.Selections(),
		AppliedEdits:    append([]AppliedEdit(nil), cb.appliedEdits...),
	}
	b.hasLastChange = true
}

func replacementAppliedEdit(beforeText, afterText string) (AppliedEdit, bool) {
	if beforeText == afterText {
		return AppliedEdit{}, false
	}
	return AppliedEdit{
		Edit:        edit.Edit{From: 0, To: edit.NewDoc(beforeText).Len(), Insert: afterText},
		DeletedText: beforeText,
	}, true
}
