package edit

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultLinkTitle is the link label used when nothing is selected.
	DefaultLinkTitle = "标题"
	// DefaultLinkURL is the destination used when no URL is given.
	DefaultLinkURL = "https://"

	// NumPlaceholder in a per-line marker is replaced by the 1-based line
	// index within the selection.
	NumPlaceholder = "{num}"
)

// InsertLineAfterCursor inserts "\n"+text+"\n" at the end of every range and
// puts the cursor one rune before the final newline.
func InsertLineAfterCursor(doc Doc, sel []Range, text string) Result {
	ins := "\n" + text + "\n"
	return byRange(doc, sel, func(r Range) (change, bool) {
		if !doc.Contains(r.To) {
			return change{}, false
		}
		c := r.To + runeLen(ins) - 1
		return change{
			edit:    Edit{From: r.To, To: r.To, Insert: ins},
			hasEdit: true,
			local:   Cursor(c),
		}, true
	})
}

// InsertStartPerLine prepends marker to every line of the selected text.
// NumPlaceholder in marker is substituted with the line index (from 1).
func InsertStartPerLine(doc Doc, sel []Range, marker string) Result {
	return byRange(doc, sel, func(r Range) (change, bool) {
		if !doc.Contains(r.From) || !doc.Contains(r.To) {
			return change{}, false
		}
		lines := strings.Split(doc.Slice(r.From, r.To), "\n")
		added := 0
		for i, line := range lines {
			m := strings.ReplaceAll(marker, NumPlaceholder, strconv.Itoa(i+1))
			added += runeLen(m)
			lines[i] = m + line
		}
		return change{
			edit:    Edit{From: r.From, To: r.To, Insert: strings.Join(lines, "\n")},
			hasEdit: true,
			local:   Range{From: r.From, To: r.To + added},
		}, true
	})
}

// InsertMedia replaces every range with ![desc](url) and puts the cursor
// right after it.
func InsertMedia(doc Doc, sel []Range, url, desc string) Result {
	ins := fmt.Sprintf("![%s](%s)", desc, url)
	return byRange(doc, sel, func(r Range) (change, bool) {
		if !doc.Contains(r.From) || !doc.Contains(r.To) {
			return change{}, false
		}
		return change{
			edit:    Edit{From: r.From, To: r.To, Insert: ins},
			hasEdit: true,
			local:   Cursor(r.From + runeLen(ins)),
		}, true
	})
}

// InsertLink replaces every range with [text](url "text"), where text is the
// selected text or title, and selects the URL.
//
// Empty url and title fall back to DefaultLinkURL and DefaultLinkTitle.
func InsertLink(doc Doc, sel []Range, url, title string) Result {
	if url == "" {
		url = DefaultLinkURL
	}
	if title == "" {
		title = DefaultLinkTitle
	}
	return byRange(doc, sel, func(r Range) (change, bool) {
		if !doc.Contains(r.From) || !doc.Contains(r.To) {
			return change{}, false
		}
		text := doc.Slice(r.From, r.To)
		if text == "" {
			text = title
		}
		// Skip "[" + text + "](".
		from := r.From + runeLen(text) + 3
		return change{
			edit:    Edit{From: r.From, To: r.To, Insert: fmt.Sprintf("[%s](%s \"%s\")", text, url, text)},
			hasEdit: true,
			local:   Range{From: from, To: from + runeLen(url)},
		}, true
	})
}

// TableSkeleton returns a pipe table with cols empty cells per row. A
// "| --- |" separator row follows the first row.
func TableSkeleton(cols, rows int) string {
	if cols < 1 || rows < 1 {
		return ""
	}
	var sb strings.Builder
	for row := 0; row < rows; row++ {
		sb.WriteString("|")
		sb.WriteString(strings.Repeat("     |", cols))
		sb.WriteString("\n")
		if row == 0 {
			sb.WriteString("|")
			sb.WriteString(strings.Repeat(" --- |", cols))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// InsertTable inserts a TableSkeleton after the cursor. Non-positive sizes
// leave the selection untouched.
func InsertTable(doc Doc, sel []Range, cols, rows int) Result {
	text := TableSkeleton(cols, rows)
	if text == "" {
		return SetCursor(doc, sel, 0, 0)
	}
	return InsertLineAfterCursor(doc, sel, text)
}

// SetCursor shifts every range by fixed deltas without touching the text.
// Offsets are clamped into the document.
func SetCursor(doc Doc, sel []Range, offsetFrom, offsetTo int) Result {
	out := Result{Selection: make([]Range, len(sel))}
	for i, r := range sel {
		r = r.Normalize()
		out.Selection[i] = Range{
			From: clampInt(r.From+offsetFrom, 0, doc.Len()),
			To:   clampInt(r.To+offsetTo, 0, doc.Len()),
		}.Normalize()
	}
	return out
}

// ReplaceAll swaps the whole document for text. Ranges keep their offsets,
// clamped into the new text. An unchanged document yields no edit.
func ReplaceAll(doc Doc, sel []Range, text string) Result {
	n := runeLen(text)
	out := Result{Selection: make([]Range, len(sel))}
	for i, r := range sel {
		r = r.Normalize()
		out.Selection[i] = Range{From: clampInt(r.From, 0, n), To: clampInt(r.To, 0, n)}
	}
	if text != doc.String() {
		out.Edits = []Edit{{From: 0, To: doc.Len(), Insert: text}}
	}
	return out
}
