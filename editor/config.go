package editor

import (
	"github.com/iw2rmb/totonoo/action"
	"github.com/iw2rmb/totonoo/hotkey"
	"github.com/iw2rmb/totonoo/render"
)

// Config configures the editor Model.
type Config struct {
	// Initial text for the internal buffer.
	Text string

	// Rendering options.
	ShowLineNums bool
	TabWidth     int // default: 4
	Theme        Theme
	// Style overrides the theme styles when set.
	Style *Style

	ReadOnly     bool
	ScrollPolicy ScrollPolicy

	// Forwarded to buffer.Options.
	HistoryLimit int

	KeyMap KeyMap
	// Hotkeys maps chords to catalog actions. Nil uses hotkey.DefaultMap for
	// Platform.
	Hotkeys  *hotkey.Map
	Platform hotkey.Platform
	// Catalog is shared with the host so it can subscribe to triggers. Nil
	// creates a private one.
	Catalog *action.Catalog
	// Pipeline renders the preview pane. Nil uses render.Default.
	Pipeline *render.Pipeline
	// Preview opens the preview pane initially.
	Preview bool
	// Fullscreen hides the status area initially.
	Fullscreen bool

	Clipboard Clipboard
}

func (c Config) withDefaults() Config {
	if c.TabWidth <= 0 {
		c.TabWidth = 4
	}
	if c.Theme == "" {
		c.Theme = ThemeLight
	}
	// key.Binding is not comparable; an unset KeyMap has no Left keys.
	if len(c.KeyMap.Left.Keys()) == 0 {
		c.KeyMap = DefaultKeyMap()
	}
	if c.Hotkeys == nil {
		c.Hotkeys = hotkey.DefaultMap(c.Platform)
	}
	if c.Catalog == nil {
		c.Catalog = action.NewCatalog()
	}
	if c.Pipeline == nil {
		c.Pipeline = render.Default()
	}
	return c
}

// ScrollPolicy controls whether the mouse wheel may scroll away from the
// cursor.
type ScrollPolicy int

const (
	ScrollAllowManual ScrollPolicy = iota
	ScrollFollowCursorOnly
)
