// Package hotkey binds key chords and toolbar entries to catalog actions.
package hotkey

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidChord is returned for descriptors that do not parse.
var ErrInvalidChord = errors.New("invalid chord")

// Platform selects modifier naming.
type Platform int

const (
	PlatformDefault Platform = iota
	// PlatformMac shows Cmd where other platforms use Ctrl.
	PlatformMac
)

// ParsePlatform accepts "", "default", "linux", "windows", "mac", "macos"
// and "darwin".
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default", "linux", "windows":
		return PlatformDefault, nil
	case "mac", "macos", "darwin":
		return PlatformMac, nil
	}
	return PlatformDefault, fmt.Errorf("unknown platform %q", s)
}

func (p Platform) String() string {
	if p == PlatformMac {
		return "mac"
	}
	return "default"
}

// Chord is one key with its modifiers, written as "Ctrl-Alt-b".
type Chord struct {
	Cmd   bool
	Ctrl  bool
	Shift bool
	Alt   bool
	// Key is a single character or a lower-case key name ("f11", "enter").
	Key string
}

var namedKeys = map[string]bool{
	"enter": true, "tab": true, "space": true, "esc": true, "backspace": true,
	"delete": true, "insert": true, "home": true, "end": true,
	"pgup": true, "pgdown": true, "up": true, "down": true, "left": true, "right": true,
	"f1": true, "f2": true, "f3": true, "f4": true, "f5": true, "f6": true,
	"f7": true, "f8": true, "f9": true, "f10": true, "f11": true, "f12": true,
}

// ParseChord parses a descriptor such as "Ctrl-Alt-b", "Shift-Alt-o" or
// "F11". Modifier names are case-insensitive.
func ParseChord(desc string) (Chord, error) {
	s := strings.TrimSpace(desc)
	if s == "" {
		return Chord{}, fmt.Errorf("%w: empty", ErrInvalidChord)
	}
	parts := strings.Split(s, "-")
	switch {
	case s == "-":
		parts = []string{"-"}
	case strings.HasSuffix(s, "--"):
		parts = append(strings.Split(strings.TrimSuffix(s, "--"), "-"), "-")
	}

	var c Chord
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(mod) {
		case "ctrl", "control":
			c.Ctrl = true
		case "alt", "option", "opt":
			c.Alt = true
		case "shift":
			c.Shift = true
		case "cmd", "command", "meta", "super":
			c.Cmd = true
		default:
			return Chord{}, fmt.Errorf("%w: %q: unknown modifier %q", ErrInvalidChord, desc, mod)
		}
	}

	key := parts[len(parts)-1]
	switch {
	case key == "":
		return Chord{}, fmt.Errorf("%w: %q: missing key", ErrInvalidChord, desc)
	case len([]rune(key)) == 1:
		c.Key = key
	case namedKeys[strings.ToLower(key)]:
		c.Key = strings.ToLower(key)
	default:
		return Chord{}, fmt.Errorf("%w: %q: unknown key %q", ErrInvalidChord, desc, key)
	}
	return c, nil
}

// MustChord is ParseChord for static tables.
func MustChord(desc string) Chord {
	c, err := ParseChord(desc)
	if err != nil {
		panic(err)
	}
	return c
}

// String renders the chord in descriptor form, modifiers ordered
// Cmd, Ctrl, Shift, Alt.
func (c Chord) String() string {
	var b strings.Builder
	if c.Cmd {
		b.WriteString("Cmd-")
	}
	if c.Ctrl {
		b.WriteString("Ctrl-")
	}
	if c.Shift {
		b.WriteString("Shift-")
	}
	if c.Alt {
		b.WriteString("Alt-")
	}
	key := c.Key
	if len(key) > 1 {
		key = strings.ToUpper(key[:1]) + key[1:]
	}
	b.WriteString(key)
	return b.String()
}

// ForPlatform returns the chord as shown on p: Ctrl becomes Cmd on mac.
func (c Chord) ForPlatform(p Platform) Chord {
	if p == PlatformMac && c.Ctrl {
		c.Ctrl = false
		c.Cmd = true
	}
	return c
}

// KeyString returns the Bubble Tea key string for the chord, the value
// tea.KeyMsg.String reports for it. Terminals do not deliver Cmd, so it is
// sent as Ctrl.
func (c Chord) KeyString() string {
	var b strings.Builder
	if c.Alt {
		b.WriteString("alt+")
	}
	if c.Ctrl || c.Cmd {
		b.WriteString("ctrl+")
	}
	key := c.Key
	if len([]rune(key)) == 1 {
		switch {
		case c.Ctrl || c.Cmd:
			key = strings.ToLower(key)
		case c.Shift:
			key = strings.ToUpper(key)
		}
		return b.String() + key
	}
	if c.Shift {
		b.WriteString("shift+")
	}
	if key == "space" {
		key = " "
	}
	b.WriteString(key)
	return b.String()
}
