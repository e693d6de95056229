// Package edit computes selection-relative Markdown edits.
//
// Every operation is a pure function of a document snapshot (Doc), a
// selection ([]Range) and marker arguments. It returns the edits to apply
// and the resulting selection; it never mutates anything.
//
// Offsets are 0-based rune offsets. Edits within one Result are disjoint and
// are expressed against the snapshot they were computed from: the host
// applies them as one batch (see Apply for the reference behavior).
package edit
