package render

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Pipeline is a configured Markdown renderer. It is immutable and safe for
// concurrent use.
type Pipeline struct {
	opts Options
	md   goldmark.Markdown
}

// New validates opts and builds a pipeline.
func New(opts Options) (*Pipeline, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("render options: %w", err)
	}

	exts := []goldmark.Extender{
		extension.Table,
		extension.Strikethrough,
		NewTaskList(opts.TaskList),
		NewMediaExtension(opts.VideoAttrs, opts.AudioAttrs),
		SourceMap,
	}
	if opts.Linkify {
		exts = append(exts, extension.Linkify)
	}
	if opts.Typographer {
		q := opts.quotes()
		exts = append(exts, extension.NewTypographer(
			extension.WithTypographicSubstitutions(map[extension.TypographicPunctuation][]byte{
				extension.LeftDoubleQuote:  []byte(q[0]),
				extension.RightDoubleQuote: []byte(q[1]),
				extension.LeftSingleQuote:  []byte(q[2]),
				extension.RightSingleQuote: []byte(q[3]),
			}),
		))
	}

	var ropts []renderer.Option
	if opts.HTML {
		ropts = append(ropts, html.WithUnsafe())
	}
	if opts.XHTMLOut {
		ropts = append(ropts, html.WithXHTML())
	}
	if opts.Breaks {
		ropts = append(ropts, html.WithHardWraps())
	}

	return &Pipeline{
		opts: opts,
		md: goldmark.New(
			goldmark.WithExtensions(exts...),
			goldmark.WithRendererOptions(ropts...),
		),
	}, nil
}

// Options returns the options the pipeline was built with.
func (p *Pipeline) Options() Options { return p.opts }

// Render converts src to HTML. Malformed Markdown never fails; it renders as
// text.
func (p *Pipeline) Render(src string) string {
	var buf bytes.Buffer
	_ = p.RenderTo(&buf, src)
	return buf.String()
}

// RenderTo writes the HTML for src to w. Errors come from w only.
func (p *Pipeline) RenderTo(w io.Writer, src string) error {
	return p.md.Convert([]byte(src), w)
}

// Parse returns the transformed document tree for src. Segments in the tree
// index into []byte(src).
func (p *Pipeline) Parse(src string) ast.Node {
	return p.md.Parser().Parse(text.NewReader([]byte(src)))
}

// SourceSpans returns the 0-based half-open line span of every top-level
// block of src, the same spans the data-source attributes carry.
func (p *Pipeline) SourceSpans(src string) []Span {
	b := []byte(src)
	doc := p.md.Parser().Parse(text.NewReader(b))
	return blockSpans(doc, newLineIndex(b))
}

var (
	defaultOnce     sync.Once
	defaultPipeline *Pipeline
)

// Default returns the shared pipeline built from DefaultOptions.
func Default() *Pipeline {
	defaultOnce.Do(func() {
		p, err := New(DefaultOptions())
		if err != nil {
			panic(err)
		}
		defaultPipeline = p
	})
	return defaultPipeline
}

// Render converts src with the default pipeline.
func Render(src string) string {
	return Default().Render(src)
}
