package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/totonoo/edit"
)

type memClipboard struct {
	s string
}

func (c *memClipboard) ReadText() (string, error) { return c.s, nil }
func (c *memClipboard) WriteText(s string) error  { c.s = s; return nil }

func TestUpdate_TypingMovementAndDelete(t *testing.T) {
	m := New(Config{Text: "ab"})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	if got := m.buf.Text(); got != "aXb" {
		t.Fatalf("text after insert: got %q, want %q", got, "aXb")
	}
	if got := m.buf.Cursor(); got != 2 {
		t.Fatalf("cursor after insert: got %d, want %d", got, 2)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text after backspace: got %q, want %q", got, "ab")
	}
	if got := m.buf.Cursor(); got != 1 {
		t.Fatalf("cursor after backspace: got %d, want %d", got, 1)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.buf.Text(); got != "a\t\nb" {
		t.Fatalf("text after tab+enter: got %q, want %q", got, "a\t\nb")
	}
}

func TestUpdate_PasteIsLiteral(t *testing.T) {
	m := New(Config{Text: ""})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\r\nb"), Paste: true})
	if got := m.buf.Text(); got != "a\nb" {
		t.Fatalf("text after paste: got %q, want %q", got, "a\nb")
	}
}

func TestUpdate_ReadOnly_IgnoresMutations(t *testing.T) {
	m := New(Config{
		Text:     "ab",
		ReadOnly: true,
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := m.buf.Cursor(); got != 1 {
		t.Fatalf("cursor after move: got %d, want %d", got, 1)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB, Alt: true})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text in read-only: got %q, want %q", got, "ab")
	}
}

func TestUpdate_BlurredIgnoresKeys(t *testing.T) {
	m := New(Config{Text: "ab"})
	m = m.Blur()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text: got %q, want %q", got, "ab")
	}
}

func TestUpdate_UndoRedo(t *testing.T) {
	m := New(Config{Text: ""})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text after typing: got %q, want %q", got, "ab")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := m.buf.Text(); got != "a" {
		t.Fatalf("text after undo: got %q, want %q", got, "a")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text after redo: got %q, want %q", got, "ab")
	}
}

func TestUpdate_CopyCutPaste(t *testing.T) {
	cb := &memClipboard{}
	m := New(Config{
		Text:      "hello",
		Clipboard: cb,
	})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if got := cb.s; got != "he" {
		t.Fatalf("clipboard after copy: got %q, want %q", got, "he")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	if got := m.buf.Text(); got != "llo" {
		t.Fatalf("text after cut: got %q, want %q", got, "llo")
	}
	if got := m.buf.Cursor(); got != 0 {
		t.Fatalf("cursor after cut: got %d, want %d", got, 0)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := m.buf.Text(); got != "hello" {
		t.Fatalf("text after paste: got %q, want %q", got, "hello")
	}
}

func TestUpdate_HotkeysRunCatalogActions(t *testing.T) {
	m := New(Config{Text: "hi"})
	m.buf.SetSelections([]edit.Range{{From: 0, To: 2}})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB, Alt: true})
	if got, want := m.buf.Text(), "**hi**"; got != want {
		t.Fatalf("text after bold: got %q, want %q", got, want)
	}
	if got, want := m.buf.Primary(), (edit.Range{From: 2, To: 4}); got != want {
		t.Fatalf("selection after bold: got %v, want %v", got, want)
	}

	m.buf.SetCursor(0)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("T"), Alt: true})
	if got, want := m.buf.Text(), "- [ ] **hi**"; got != want {
		t.Fatalf("text after tasklist: got %q, want %q", got, want)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got, want := m.buf.Text(), "**hi**"; got != want {
		t.Fatalf("text after undo: got %q, want %q", got, want)
	}
}

func TestUpdate_BeautifyReformatsBuffer(t *testing.T) {
	m := New(Config{Text: "#   Title\n* a\n* b"})
	m.buf.SetCursor(3)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	if got, want := m.buf.Text(), "# Title\n\n- a\n- b\n"; got != want {
		t.Fatalf("text after beautify: got %q, want %q", got, want)
	}
	if got, want := m.buf.Cursor(), 3; got != want {
		t.Fatalf("cursor after beautify: got %d, want %d", got, want)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got, want := m.buf.Text(), "#   Title\n* a\n* b"; got != want {
		t.Fatalf("text after undo: got %q, want %q", got, want)
	}
}

func TestUpdate_ViewportFollowsCursor_Minimal(t *testing.T) {
	m := New(Config{Text: "0\n1\n2\n3\n4\n5\n6\n7\n8\n9", Fullscreen: true})
	m = m.SetSize(10, 3)

	if got := m.viewport.YOffset; got != 0 {
		t.Fatalf("initial yoffset: got %d, want %d", got, 0)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.viewport.YOffset; got != 0 {
		t.Fatalf("yoffset at row 2: got %d, want %d", got, 0)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.viewport.YOffset; got != 1 {
		t.Fatalf("yoffset at row 3: got %d, want %d", got, 1)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := m.viewport.YOffset; got != 2 {
		t.Fatalf("yoffset at row 4: got %d, want %d", got, 2)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.viewport.YOffset; got != 2 {
		t.Fatalf("yoffset after up within view: got %d, want %d", got, 2)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp}) // row 2
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp}) // row 1
	if got := m.viewport.YOffset; got != 1 {
		t.Fatalf("yoffset after moving above view: got %d, want %d", got, 1)
	}
}

func TestUpdate_MouseClickAndDrag(t *testing.T) {
	m := New(Config{Text: "ab\ncdef", Fullscreen: true})
	m = m.SetSize(10, 3)

	m, _ = m.Update(tea.MouseMsg{X: 3, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got := m.buf.Cursor(); got != 6 {
		t.Fatalf("cursor after click: got %d, want %d", got, 6)
	}

	m, _ = m.Update(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionRelease})
	if got, want := m.buf.Primary(), (edit.Range{From: 1, To: 6}); got != want {
		t.Fatalf("selection after drag: got %v, want %v", got, want)
	}

	m, _ = m.Update(tea.MouseMsg{X: 2, Y: 0, Action: tea.MouseActionMotion})
	if got, want := m.buf.Primary(), (edit.Range{From: 1, To: 6}); got != want {
		t.Fatalf("selection after release: got %v, want %v", got, want)
	}
}
