package hotkey

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/totonoo/action"
)

// Binding ties a chord to a catalog action.
type Binding struct {
	Chord  Chord
	Action action.Name
	// Help is the short description shown in key help.
	Help string
}

// DefaultBindings returns the shortcut of every catalog action that has one,
// in catalog order.
func DefaultBindings() []Binding {
	var out []Binding
	for _, a := range action.NewCatalog().Actions() {
		if a.ShortcutKey == "" {
			continue
		}
		out = append(out, Binding{Chord: MustChord(a.ShortcutKey), Action: a.Name, Help: a.Title})
	}
	return out
}

// Map dispatches key chords to actions.
type Map struct {
	platform Platform
	bindings []Binding
	byKey    map[string]int
}

// NewMap builds a map for p. A later binding for the same key replaces an
// earlier one.
func NewMap(p Platform, bindings []Binding) *Map {
	m := &Map{platform: p, byKey: make(map[string]int)}
	for _, b := range bindings {
		m.add(b)
	}
	return m
}

// DefaultMap is NewMap(p, DefaultBindings()).
func DefaultMap(p Platform) *Map {
	return NewMap(p, DefaultBindings())
}

func (m *Map) add(b Binding) {
	k := b.Chord.KeyString()
	if i, ok := m.byKey[k]; ok {
		m.bindings[i] = b
		return
	}
	m.byKey[k] = len(m.bindings)
	m.bindings = append(m.bindings, b)
}

// Bind adds or replaces the binding for desc.
func (m *Map) Bind(desc string, name action.Name, help string) error {
	c, err := ParseChord(desc)
	if err != nil {
		return fmt.Errorf("bind %s: %w", name, err)
	}
	m.add(Binding{Chord: c, Action: name, Help: help})
	return nil
}

func (m *Map) Platform() Platform { return m.platform }

func (m *Map) Bindings() []Binding {
	return append([]Binding(nil), m.bindings...)
}

// Lookup resolves a Bubble Tea key string.
func (m *Map) Lookup(keyString string) (action.Name, bool) {
	i, ok := m.byKey[keyString]
	if !ok {
		return "", false
	}
	return m.bindings[i].Action, true
}

// ShortcutFor returns the platform descriptor bound to name, if any.
func (m *Map) ShortcutFor(name action.Name) (string, bool) {
	for _, b := range m.bindings {
		if b.Action == name {
			return b.Chord.ForPlatform(m.platform).String(), true
		}
	}
	return "", false
}

// KeyBindings returns one key.Binding per chord, with platform help labels.
func (m *Map) KeyBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.bindings))
	for _, b := range m.bindings {
		out = append(out, key.NewBinding(
			key.WithKeys(b.Chord.KeyString()),
			key.WithHelp(b.Chord.ForPlatform(m.platform).String(), b.Help),
		))
	}
	return out
}

// Dispatch invokes the action bound to msg through c. It reports whether
// msg was consumed.
func (m *Map) Dispatch(msg tea.KeyMsg, c *action.Catalog, h action.Host) bool {
	name, ok := m.Lookup(msg.String())
	if !ok || c == nil {
		return false
	}
	return c.Invoke(name, h)
}
