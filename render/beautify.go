package render

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var beautifyMarkdown = goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough))

// Beautify rewrites the block structure of src in one canonical form:
//
//   - ATX headings, "---" rules and fenced code blocks
//   - "-" bullets and renumbered "1." lists, indented to the marker width
//   - "> " quote prefixes
//   - pipe tables padded to the widest cell
//   - one blank line between blocks, link definitions at the end
//
// Inline text is copied as written. The result ends with a single newline,
// or is empty when src has no blocks.
func Beautify(src string) string {
	source := []byte(src)
	ctx := parser.NewContext()
	doc := beautifyMarkdown.Parser().Parse(text.NewReader(source), parser.WithContext(ctx))

	b := &beautifier{src: source, li: newLineIndex(source), markers: map[*ast.List]string{}}
	lines := b.blocks(doc, true)
	if defs := b.definitions(ctx.References()); len(defs) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, defs...)
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

type beautifier struct {
	src []byte
	li  lineIndex
	// markers remembers the marker chosen for each list, so that adjacent
	// lists alternate and stay separate.
	markers map[*ast.List]string
}

// blocks formats the children of parent, separated by blank lines when
// loose.
func (b *beautifier) blocks(parent ast.Node, loose bool) []string {
	var (
		out  []string
		prev ast.Node
	)
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		ls := b.block(c, prev)
		prev = c
		if len(ls) == 0 {
			continue
		}
		if len(out) > 0 && loose {
			out = append(out, "")
		}
		out = append(out, ls...)
	}
	return out
}

func (b *beautifier) block(n, prev ast.Node) []string {
	switch n := n.(type) {
	case *ast.Heading:
		parts := b.segmentLines(n)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		marker := strings.Repeat("#", n.Level)
		if t := strings.Join(parts, " "); t != "" {
			return []string{marker + " " + t}
		}
		return []string{marker}
	case *ast.Paragraph, *ast.TextBlock:
		return b.paragraph(n)
	case *ast.ThematicBreak:
		return []string{"---"}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return b.code(n)
	case *ast.Blockquote:
		inner := b.blocks(n, true)
		if len(inner) == 0 {
			return []string{">"}
		}
		for i, l := range inner {
			if l == "" {
				inner[i] = ">"
			} else {
				inner[i] = "> " + l
			}
		}
		return inner
	case *ast.List:
		return b.list(n, prev)
	case *ast.HTMLBlock:
		out := b.segmentLines(n)
		if n.HasClosure() {
			out = append(out, trimEOL(string(n.ClosureLine.Value(b.src))))
		}
		return out
	case *east.Table:
		return b.table(n)
	default:
		return b.rawLines(n)
	}
}

// segmentLines returns the source lines of n without line endings.
func (b *beautifier) segmentLines(n ast.Node) []string {
	lines := n.Lines()
	out := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		out = append(out, strings.Repeat(" ", seg.Padding)+trimEOL(string(seg.Value(b.src))))
	}
	return out
}

func (b *beautifier) paragraph(n ast.Node) []string {
	out := b.segmentLines(n)
	for i, l := range out {
		l = strings.TrimLeft(l, " \t")
		hard := i < len(out)-1 && strings.HasSuffix(l, "  ")
		l = strings.TrimRight(l, " \t")
		if hard {
			l += "  "
		}
		out[i] = l
	}
	return out
}

// code renders indented and fenced code as a fence long enough not to be
// closed by the content.
func (b *beautifier) code(n ast.Node) []string {
	body := b.segmentLines(n)
	var info string
	if fc, ok := n.(*ast.FencedCodeBlock); ok && fc.Info != nil {
		info = strings.TrimSpace(string(fc.Info.Segment.Value(b.src)))
	}
	ch := "`"
	if strings.Contains(info, "`") {
		ch = "~"
	}
	size := 3
	for _, l := range body {
		t := strings.TrimLeft(l, " ")
		run := len(t) - len(strings.TrimLeft(t, ch))
		if run >= size {
			size = run + 1
		}
	}
	fence := strings.Repeat(ch, size)

	out := make([]string, 0, len(body)+2)
	out = append(out, fence+info)
	out = append(out, body...)
	return append(out, fence)
}

func (b *beautifier) list(n *ast.List, prev ast.Node) []string {
	marker := "-"
	if n.IsOrdered() {
		marker = "."
	}
	if p, ok := prev.(*ast.List); ok && p.IsOrdered() == n.IsOrdered() && b.markers[p] == marker {
		if n.IsOrdered() {
			marker = ")"
		} else {
			marker = "*"
		}
	}
	b.markers[n] = marker

	var out []string
	num := n.Start
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		m := marker
		if n.IsOrdered() {
			m = fmt.Sprintf("%d%s", num, marker)
			num++
		}
		if len(out) > 0 && !n.IsTight {
			out = append(out, "")
		}
		inner := b.blocks(item, !n.IsTight)
		if len(inner) == 0 {
			out = append(out, m)
			continue
		}
		pad := strings.Repeat(" ", len(m)+1)
		out = append(out, m+" "+inner[0])
		for _, l := range inner[1:] {
			if l != "" {
				l = pad + l
			}
			out = append(out, l)
		}
	}
	return out
}

// table re-splits the source rows of t and pads every column to its
// widest cell.
func (b *beautifier) table(t *east.Table) []string {
	cols := len(t.Alignments)
	header := -1
	nrows := 0
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		if first, _, ok := contentLines(r, b.li); ok && header < 0 {
			header = first
			if nrows > 0 {
				header -= nrows + 1
			}
		}
		nrows++
	}

	rows := make([][]string, nrows)
	for i := range rows {
		line := header + i
		if i > 0 {
			line++
		}
		var cells []string
		if header >= 0 && line < b.li.count() {
			cells = splitTableRow(trimEOL(string(b.li.text(line))))
		}
		for len(cells) < cols {
			cells = append(cells, "")
		}
		rows[i] = cells[:cols]
	}

	widths := make([]int, cols)
	for c := range widths {
		widths[c] = 3
		for _, row := range rows {
			if w := runewidth.StringWidth(row[c]); w > widths[c] {
				widths[c] = w
			}
		}
	}

	out := make([]string, 0, nrows+1)
	for i, row := range rows {
		cells := make([]string, cols)
		for c, cell := range row {
			cells[c] = alignCell(cell, widths[c], t.Alignments[c])
		}
		out = append(out, "| "+strings.Join(cells, " | ")+" |")
		if i == 0 {
			delims := make([]string, cols)
			for c := range delims {
				delims[c] = delimiterCell(widths[c], t.Alignments[c])
			}
			out = append(out, "| "+strings.Join(delims, " | ")+" |")
		}
	}
	return out
}

// splitTableRow splits a source row on unescaped pipes. Container prefixes
// (quote markers, indentation) are dropped.
func splitTableRow(line string) []string {
	s := strings.TrimSpace(strings.TrimLeft(line, " \t>"))
	s = strings.TrimPrefix(s, "|")
	if strings.HasSuffix(s, "|") && !strings.HasSuffix(s, `\|`) {
		s = s[:len(s)-1]
	}
	var (
		cells []string
		cur   strings.Builder
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\' && i+1 < len(s):
			cur.WriteByte(c)
			cur.WriteByte(s[i+1])
			i++
		case c == '|':
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(cells, strings.TrimSpace(cur.String()))
}

func alignCell(cell string, width int, a east.Alignment) string {
	gap := width - runewidth.StringWidth(cell)
	switch a {
	case east.AlignRight:
		return strings.Repeat(" ", gap) + cell
	case east.AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", gap-left)
	default:
		return cell + strings.Repeat(" ", gap)
	}
}

func delimiterCell(width int, a east.Alignment) string {
	switch a {
	case east.AlignLeft:
		return ":" + strings.Repeat("-", width-1)
	case east.AlignRight:
		return strings.Repeat("-", width-1) + ":"
	case east.AlignCenter:
		return ":" + strings.Repeat("-", width-2) + ":"
	default:
		return strings.Repeat("-", width)
	}
}

// rawLines copies the source lines of blocks the beautifier does not know.
func (b *beautifier) rawLines(n ast.Node) []string {
	first, last, ok := contentLines(n, b.li)
	if !ok {
		return nil
	}
	out := make([]string, 0, last-first+1)
	for l := first; l <= last; l++ {
		out = append(out, strings.TrimRight(trimEOL(string(b.li.text(l))), " \t"))
	}
	return out
}

// definitions renders link reference definitions in source order.
func (b *beautifier) definitions(refs []parser.Reference) []string {
	pos := func(r parser.Reference) int {
		if i := bytes.Index(b.src, append(append([]byte("["), r.Label()...), ']', ':')); i >= 0 {
			return i
		}
		return len(b.src)
	}
	sort.SliceStable(refs, func(i, j int) bool {
		pi, pj := pos(refs[i]), pos(refs[j])
		if pi != pj {
			return pi < pj
		}
		return string(refs[i].Label()) < string(refs[j].Label())
	})

	out := make([]string, 0, len(refs))
	for _, r := range refs {
		dest := string(r.Destination())
		if dest == "" || strings.ContainsAny(dest, " ()<>") {
			dest = "<" + dest + ">"
		}
		line := "[" + string(r.Label()) + "]: " + dest
		if title := r.Title(); len(title) > 0 {
			line += ` "` + strings.ReplaceAll(string(title), `"`, `\"`) + `"`
		}
		out = append(out, line)
	}
	return out
}

func trimEOL(s string) string {
	return strings.TrimRight(s, "\r\n")
}
