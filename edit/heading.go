package edit

import (
	"regexp"
	"strings"
)

// MaxHeadingLevel is the deepest heading before CycleHeading wraps to 1.
const MaxHeadingLevel = 6

var headingPrefixRE = regexp.MustCompile(`^#+\s+`)

// HeadingLevel returns the number of leading '#' of a line that starts with
// a heading marker ("#"+ followed by whitespace), or 0.
func HeadingLevel(text string) int {
	m := headingPrefixRE.FindString(text)
	if m == "" {
		return 0
	}
	return strings.Count(m, "#")
}

// CycleHeading rotates the heading level of the line containing each range:
// none -> H1 -> H2 ... -> H6 -> H1. The cursor moves to the end of the
// rewritten line.
func CycleHeading(doc Doc, sel []Range) Result {
	return byRange(doc, sel, func(r Range) (change, bool) {
		line, ok := doc.LineAt(r.From)
		if !ok {
			return change{}, false
		}
		next := HeadingLevel(line.Text) + 1
		if next > MaxHeadingLevel {
			next = 1
		}
		rest := headingPrefixRE.ReplaceAllLiteralString(line.Text, "")
		text := strings.Repeat("#", next) + " " + rest
		return change{
			edit:    Edit{From: line.Start, To: line.End, Insert: text},
			hasEdit: true,
			local:   Cursor(line.Start + runeLen(text)),
		}, true
	})
}
