package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/totonoo/edit"
	"github.com/iw2rmb/totonoo/internal/grapheme"
	"github.com/iw2rmb/totonoo/render"
)

func (m Model) View() string {
	body := m.viewport.View()
	if m.preview {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.style.Preview.Render(m.previewPort.View()))
	}
	if m.statusHeight() == 0 {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusView())
}

// layout splits the available size between the text pane, the preview pane
// and the status area.
func (m *Model) layout() {
	h := maxInt(m.height-m.statusHeight(), 0)
	w := m.width
	if m.preview {
		w = m.width / 2
		m.previewPort.Width = maxInt(m.width-w-m.style.Preview.GetHorizontalFrameSize(), 0)
		m.previewPort.Height = maxInt(h-m.style.Preview.GetVerticalFrameSize(), 0)
	}
	m.viewport.Width = w
	m.viewport.Height = h
	m.help.Width = m.width
	m.rebuildContent()
}

func (m Model) statusHeight() int {
	if m.fullscreen || m.height == 0 {
		return 0
	}
	h := lipgloss.Height(m.statusView())
	if h >= m.height {
		return 0
	}
	return h
}

func (m Model) statusView() string {
	pos := m.buf.PosOf(m.buf.Cursor())
	line, _ := m.buf.Doc().Line(pos.Row)
	col := grapheme.Column(line.Text, pos.Col)
	info := fmt.Sprintf("Ln %d, Col %d  %s", pos.Row+1, col+1, m.theme)
	if m.cfg.ReadOnly {
		info += "  read-only"
	}
	status := m.style.Status.Render(info)

	if m.showHelp {
		groups := m.cfg.KeyMap.FullHelp()
		groups = append(groups, chunkBindings(m.cfg.Hotkeys.KeyBindings(), 6)...)
		return lipgloss.JoinVertical(lipgloss.Left, status, m.help.FullHelpView(groups))
	}
	h := m.help
	h.Width = maxInt(m.width-lipgloss.Width(status)-2, 1)
	return status + "  " + h.ShortHelpView(m.cfg.KeyMap.ShortHelp())
}

func chunkBindings(bs []key.Binding, n int) [][]key.Binding {
	var out [][]key.Binding
	for len(bs) > n {
		out = append(out, bs[:n])
		bs = bs[n:]
	}
	if len(bs) > 0 {
		out = append(out, bs)
	}
	return out
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
	m.rebuildPreview()
}

// rebuildPreview renders the HTML preview and scrolls it to the block that
// holds the cursor, found through the source map attributes.
func (m *Model) rebuildPreview() {
	if !m.preview || m.buf == nil {
		return
	}
	src := m.buf.Text()
	out := m.cfg.Pipeline.Render(src)
	m.previewPort.SetContent(out)

	row := m.buf.PosOf(m.buf.Cursor()).Row
	for _, sp := range m.cfg.Pipeline.SourceSpans(src) {
		if row < sp.Start || row >= sp.End {
			continue
		}
		marker := fmt.Sprintf(`%s="%d"`, render.AttrSourceStart, sp.Start+1)
		for i, l := range strings.Split(out, "\n") {
			if strings.Contains(l, marker) {
				m.previewPort.SetYOffset(i)
				return
			}
		}
	}
}

func (m Model) gutterWidth() int {
	if !m.cfg.ShowLineNums {
		return 0
	}
	return gutterDigits(m.buf.Doc().LineCount()) + 1
}

func gutterDigits(lines int) int {
	return len(fmt.Sprint(maxInt(lines, 1)))
}

func (m *Model) renderContent() string {
	if m.buf == nil {
		return ""
	}

	doc := m.buf.Doc()
	heads := m.buf.Heads()
	sels := m.buf.Selections()
	activeRow := doc.LineNumber(m.buf.Cursor())
	digits := gutterDigits(doc.LineCount())

	out := make([]string, 0, doc.LineCount())
	for row := 0; row < doc.LineCount(); row++ {
		line, _ := doc.Line(row)

		var sb strings.Builder
		if m.cfg.ShowLineNums {
			numStyle := m.style.LineNum
			if m.focused && row == activeRow {
				numStyle = m.style.LineNumActive
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digits, row+1)))
			sb.WriteString(m.style.Gutter.Render(" "))
		}
		sb.WriteString(m.renderLine(line, heads, sels))
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderLine(line edit.Line, heads []int, sels []edit.Range) string {
	var sb strings.Builder
	cell := 0
	for _, c := range grapheme.Clusters(line.Text) {
		from, to := line.Start+c.Start, line.Start+c.End
		w := grapheme.Width(c.Text, cell, m.cfg.TabWidth)
		text := c.Text
		if text == "\t" {
			text = strings.Repeat(" ", w)
		}

		style := m.style.Text
		switch {
		case m.focused && containsOffset(heads, from):
			style = m.style.Cursor
		case selected(sels, from, to):
			style = m.style.Selection
		}
		sb.WriteString(style.Render(text))
		cell += w
	}
	// Cursor at EOL is rendered as a 1-cell placeholder space.
	if m.focused && containsOffset(heads, line.End) {
		sb.WriteString(m.style.Cursor.Render(" "))
	}
	return sb.String()
}

func containsOffset(offs []int, off int) bool {
	for _, o := range offs {
		if o == off {
			return true
		}
	}
	return false
}

func selected(sels []edit.Range, from, to int) bool {
	for _, r := range sels {
		if r.From < to && from < r.To {
			return true
		}
	}
	return false
}

// offsetAtCell returns the rune offset within text of the cluster drawn at
// cell, or the length of text past its end.
func offsetAtCell(text string, cell, tabWidth int) int {
	if cell <= 0 {
		return 0
	}
	at := 0
	end := 0
	for _, c := range grapheme.Clusters(text) {
		w := grapheme.Width(c.Text, at, tabWidth)
		if cell < at+w {
			return c.Start
		}
		at += w
		end = c.End
	}
	return end
}

func (m *Model) followCursorWithForce(force bool) {
	if m.buf == nil {
		return
	}
	if !force && m.cfg.ScrollPolicy == ScrollAllowManual {
		return
	}
	row := m.buf.Doc().LineNumber(m.buf.Cursor())
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}

	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}
