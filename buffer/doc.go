// Package buffer is a reference host document for the edit engine.
//
// Offsets are 0-based rune offsets, as in package edit. A Buffer keeps one or
// more cursors, each with an anchor and a head; its selection is the list of
// their ranges in insertion order. Every effective mutation bumps Version,
// records an undo snapshot and a Change.
package buffer
