package render

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Attributes set on every top-level block.
const (
	AttrSourceStart = "data-source-start"
	AttrSourceEnd   = "data-source-end"
	AttrSourceLevel = "data-source-level"
)

const (
	sourceMapTransformerPriority = 1000
	codeRendererPriority         = 100
)

// lineIndex maps byte offsets to 0-based line numbers.
type lineIndex struct {
	src    []byte
	starts []int
}

func newLineIndex(src []byte) lineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' && i+1 < len(src) {
			starts = append(starts, i+1)
		}
	}
	if len(src) == 0 {
		starts = nil
	}
	return lineIndex{src: src, starts: starts}
}

func (li lineIndex) count() int { return len(li.starts) }

func (li lineIndex) lineOf(off int) int {
	return sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > off }) - 1
}

func (li lineIndex) text(n int) []byte {
	end := len(li.src)
	if n+1 < len(li.starts) {
		end = li.starts[n+1]
	}
	return li.src[li.starts[n]:end]
}

func (li lineIndex) blank(n int) bool { return util.IsBlank(li.text(n)) }

func (li lineIndex) nextNonBlank(from int) int {
	for n := from; n < li.count(); n++ {
		if !li.blank(n) {
			return n
		}
	}
	return li.count()
}

// Span is a half-open range of 0-based source lines.
type Span struct {
	Start, End int
}

// sourceMapTransformer annotates each top-level block with its source
// lines. A block ends where the next one starts, minus trailing blank
// lines.
type sourceMapTransformer struct{}

func (t *sourceMapTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	li := newLineIndex(reader.Source())
	spans := blockSpans(doc, li)
	i := 0
	for b := doc.FirstChild(); b != nil; b = b.NextSibling() {
		sp := spans[i]
		i++
		if _, ok := b.(*ast.HTMLBlock); ok {
			continue
		}
		b.SetAttributeString(AttrSourceStart, []byte(strconv.Itoa(sp.Start+1)))
		b.SetAttributeString(AttrSourceEnd, []byte(strconv.Itoa(sp.End)))
		b.SetAttributeString(AttrSourceLevel, []byte("0"))
	}
}

// blockSpans returns the source line span of every child of doc, in order.
func blockSpans(doc ast.Node, li lineIndex) []Span {
	var (
		spans []Span
		last  = -1
	)
	for b := doc.FirstChild(); b != nil; b = b.NextSibling() {
		start, end, ok := contentLines(b, li)
		if !ok {
			start = li.nextNonBlank(last + 1)
			end = start
		}
		if fc, isFence := b.(*ast.FencedCodeBlock); isFence {
			end = closingFence(fc, li, start, end)
		}
		spans = append(spans, Span{Start: start})
		if end > last {
			last = end
		}
	}
	for i := range spans {
		next := li.count()
		if i+1 < len(spans) {
			next = spans[i+1].Start
		}
		end := next
		for end > spans[i].Start+1 && li.blank(end-1) {
			end--
		}
		if end < spans[i].Start+1 {
			end = spans[i].Start + 1
		}
		spans[i].End = end
	}
	return spans
}

// contentLines returns the first and last line holding a segment of n or
// its descendants. Fenced code blocks start at their info string; an
// unlabeled fence has no segment on its opening line and reports !ok.
func contentLines(n ast.Node, li lineIndex) (first, last int, ok bool) {
	if li.count() == 0 {
		return 0, 0, false
	}
	if fc, isFence := n.(*ast.FencedCodeBlock); isFence {
		if fc.Info == nil {
			return 0, 0, false
		}
		l := li.lineOf(fc.Info.Segment.Start)
		return l, l, true
	}
	lo, hi := -1, -1
	visit := func(seg text.Segment) {
		if seg.Stop <= seg.Start {
			return
		}
		if lo < 0 || seg.Start < lo {
			lo = seg.Start
		}
		if stop := seg.Stop - 1; stop > hi {
			hi = stop
		}
	}
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if txt, isText := c.(*ast.Text); isText {
			visit(txt.Segment)
		}
		if c.Type() == ast.TypeBlock {
			lines := c.Lines()
			for i := 0; i < lines.Len(); i++ {
				visit(lines.At(i))
			}
		}
		return ast.WalkContinue, nil
	})
	if lo < 0 {
		return 0, 0, false
	}
	return li.lineOf(lo), li.lineOf(hi), true
}

// closingFence returns the line of the fence closing a code block whose
// content ends on line end, or end when the block runs to the end of input.
func closingFence(n *ast.FencedCodeBlock, li lineIndex, start, end int) int {
	if n.Lines().Len() > 0 {
		end = li.lineOf(n.Lines().At(n.Lines().Len() - 1).Start)
	}
	for l := end + 1; l < li.count(); l++ {
		t := bytes.TrimLeft(li.text(l), " ")
		if bytes.HasPrefix(t, []byte("```")) || bytes.HasPrefix(t, []byte("~~~")) {
			return l
		}
	}
	if end < start {
		return start
	}
	return end
}

// codeBlockRenderer renders code blocks like goldmark's HTML renderer but
// keeps node attributes on <pre>.
type codeBlockRenderer struct {
	html.Config
}

func newCodeBlockRenderer() *codeBlockRenderer {
	return &codeBlockRenderer{Config: html.NewConfig()}
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) openPre(w util.BufWriter, n ast.Node) {
	_, _ = w.WriteString("<pre")
	if n.Attributes() != nil {
		html.RenderAttributes(w, n, nil)
	}
	_, _ = w.WriteString("><code")
}

func (r *codeBlockRenderer) writeLines(w util.BufWriter, source []byte, n ast.Node) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		r.Writer.RawWrite(w, line.Value(source))
	}
}

func (r *codeBlockRenderer) renderCodeBlock(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		r.openPre(w, n)
		_ = w.WriteByte('>')
		r.writeLines(w, source, n)
	} else {
		_, _ = w.WriteString("</code></pre>\n")
	}
	return ast.WalkContinue, nil
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.FencedCodeBlock)
	if entering {
		r.openPre(w, n)
		if language := n.Language(source); language != nil {
			_, _ = w.WriteString(` class="language-`)
			r.Writer.Write(w, language)
			_ = w.WriteByte('"')
		}
		_ = w.WriteByte('>')
		r.writeLines(w, source, n)
	} else {
		_, _ = w.WriteString("</code></pre>\n")
	}
	return ast.WalkContinue, nil
}

type sourceMap struct{}

// SourceMap annotates top-level blocks with data-source-start (1-based
// first line), data-source-end (last line) and data-source-level.
var SourceMap goldmark.Extender = &sourceMap{}

func (e *sourceMap) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(&sourceMapTransformer{}, sourceMapTransformerPriority),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(newCodeBlockRenderer(), codeRendererPriority),
	))
}
