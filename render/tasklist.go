package render

import (
	"bytes"
	"strconv"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const (
	taskItemClass = "task-list-item"
	taskListClass = "totonoo--task-list"
	taskIDPrefix  = "task-item-"
)

const (
	taskParserPriority      = 0
	taskTransformerPriority = 100
	taskRendererPriority    = 500
)

var (
	KindTaskCheckBox = ast.NewNodeKind("TaskCheckBox")
	KindTaskLabel    = ast.NewNodeKind("TaskLabel")
)

// TaskCheckBox is the checkbox of a task-list item.
type TaskCheckBox struct {
	ast.BaseInline
	Checked bool
	// Line is the 0-based source line of the item.
	Line int
	// ID is set when a label refers to the checkbox.
	ID string

	offset int
}

func (n *TaskCheckBox) Kind() ast.NodeKind { return KindTaskCheckBox }

func (n *TaskCheckBox) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Checked": strconv.FormatBool(n.Checked),
		"Line":    strconv.Itoa(n.Line),
		"ID":      n.ID,
	}, nil)
}

func NewTaskCheckBox(checked bool) *TaskCheckBox {
	return &TaskCheckBox{Checked: checked}
}

// TaskLabel wraps task item content in a <label>. For is empty when the
// label also wraps the checkbox.
type TaskLabel struct {
	ast.BaseInline
	For string
}

func (n *TaskLabel) Kind() ast.NodeKind { return KindTaskLabel }

func (n *TaskLabel) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"For": n.For}, nil)
}

func NewTaskLabel(forID string) *TaskLabel {
	return &TaskLabel{For: forID}
}

type taskCheckBoxParser struct{}

func (s *taskCheckBoxParser) Trigger() []byte {
	return []byte{'['}
}

// Parse matches "[ ] ", "[x] " or "[X] " at the very start of the first
// block of a list item and consumes the three marker characters.
func (s *taskCheckBoxParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	// List > ListItem (parent.Parent) > TextBlock or Paragraph (parent)
	if parent.HasChildren() || parent.Parent() == nil || parent.Parent().FirstChild() != parent {
		return nil
	}
	if _, ok := parent.Parent().(*ast.ListItem); !ok {
		return nil
	}
	line, segment := block.PeekLine()
	if len(line) < 4 || line[0] != '[' || line[2] != ']' || line[3] != ' ' {
		return nil
	}
	var checked bool
	switch line[1] {
	case ' ':
	case 'x', 'X':
		checked = true
	default:
		return nil
	}
	block.Advance(3)
	cb := NewTaskCheckBox(checked)
	cb.offset = segment.Start
	return cb
}

// taskListTransformer tags items and lists holding checkboxes and applies
// label wrapping.
type taskListTransformer struct {
	opts TaskListOptions
}

func (t *taskListTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	var boxes []*TaskCheckBox
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if cb, ok := n.(*TaskCheckBox); ok {
			boxes = append(boxes, cb)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	itemClass := taskItemClass
	if t.opts.Enabled {
		itemClass += " enabled"
	}
	source := reader.Source()
	for i, cb := range boxes {
		para := cb.Parent()
		item := para.Parent()
		item.SetAttributeString("class", []byte(itemClass))
		if list := item.Parent(); list != nil {
			list.SetAttributeString("class", []byte(taskListClass))
		}
		cb.Line = bytes.Count(source[:cb.offset], []byte{'\n'})

		if !t.opts.Label {
			continue
		}
		if t.opts.LabelAfter {
			cb.ID = taskIDPrefix + strconv.Itoa(i+1)
			label := NewTaskLabel(cb.ID)
			moveSiblings(label, cb.NextSibling())
			para.InsertAfter(para, cb, label)
		} else {
			label := NewTaskLabel("")
			moveSiblings(label, para.FirstChild())
			para.AppendChild(para, label)
		}
	}
}

// moveSiblings reparents from and every sibling after it under dst.
func moveSiblings(dst ast.Node, from ast.Node) {
	for c := from; c != nil; {
		next := c.NextSibling()
		dst.AppendChild(dst, c)
		c = next
	}
}

type taskListRenderer struct {
	html.Config
	opts TaskListOptions
}

func newTaskListRenderer(opts TaskListOptions) *taskListRenderer {
	return &taskListRenderer{Config: html.NewConfig(), opts: opts}
}

func (r *taskListRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindTaskCheckBox, r.renderCheckBox)
	reg.Register(KindTaskLabel, r.renderLabel)
}

func (r *taskListRenderer) renderCheckBox(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*TaskCheckBox)
	_, _ = w.WriteString(`<input type="checkbox" class="task-list-item-checkbox"`)
	if n.Checked {
		_, _ = w.WriteString(` checked=""`)
	}
	if !r.opts.Enabled {
		_, _ = w.WriteString(` disabled=""`)
	}
	if r.opts.LineNumber {
		_, _ = w.WriteString(` data-line="` + strconv.Itoa(n.Line) + `"`)
	}
	if n.ID != "" {
		_, _ = w.WriteString(` id="`)
		_, _ = w.Write(util.EscapeHTML([]byte(n.ID)))
		_ = w.WriteByte('"')
	}
	if r.XHTML {
		_, _ = w.WriteString(" />")
	} else {
		_ = w.WriteByte('>')
	}
	return ast.WalkContinue, nil
}

func (r *taskListRenderer) renderLabel(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*TaskLabel)
	if !entering {
		_, _ = w.WriteString("</label>")
		return ast.WalkContinue, nil
	}
	if n.For == "" {
		_, _ = w.WriteString("<label>")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<label class="task-list-item-label" for="`)
	_, _ = w.Write(util.EscapeHTML([]byte(n.For)))
	_, _ = w.WriteString(`">`)
	return ast.WalkContinue, nil
}

type taskList struct {
	opts TaskListOptions
}

// NewTaskList returns an extension turning "[ ] " and "[x] " list item
// prefixes into checkboxes.
func NewTaskList(opts TaskListOptions) goldmark.Extender {
	return &taskList{opts: opts}
}

func (e *taskList) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(&taskCheckBoxParser{}, taskParserPriority),
		),
		parser.WithASTTransformers(
			util.Prioritized(&taskListTransformer{opts: e.opts}, taskTransformerPriority),
		),
	)
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(newTaskListRenderer(e.opts), taskRendererPriority),
	))
}
