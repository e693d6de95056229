// Package editor provides a Bubble Tea Markdown editor component backed by
// the buffer package.
//
// The package is responsible for input handling, viewport behavior,
// grapheme-aware rendering, hotkey dispatch into the action catalog, the
// HTML preview pane and host integration through event subscriptions.
package editor
