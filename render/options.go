// Package render converts Markdown to HTML with goldmark.
//
// A Pipeline adds three extensions to goldmark's CommonMark parser: HTML5
// audio/video detection in image syntax, GitHub style task lists and
// source-line attribution of top-level blocks. Tables and strikethrough are
// always enabled.
package render

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidQuotes is returned when Options.Quotes is not four glyphs.
var ErrInvalidQuotes = errors.New("quotes must be exactly 4 characters")

const (
	DefaultQuotes     = "“”‘’"
	DefaultVideoAttrs = `controls class="html5-video-player"`
	DefaultAudioAttrs = `controls class="html5-audio-player"`
)

// TaskListOptions controls task-list checkbox rendering.
type TaskListOptions struct {
	// Enabled leaves checkboxes clickable. They are rendered disabled
	// otherwise.
	Enabled bool
	// Label wraps each checkbox and its text in a <label>.
	Label bool
	// LabelAfter, together with Label, puts only the item text in the label
	// and links it to the checkbox by id.
	LabelAfter bool
	// LineNumber adds data-line with the item's 0-based source line.
	LineNumber bool
}

// Options configures a Pipeline.
type Options struct {
	// HTML passes raw HTML in the source through to the output.
	HTML bool
	// XHTMLOut closes void elements with " />".
	XHTMLOut bool
	// Breaks renders soft line breaks as <br>.
	Breaks bool
	// Linkify turns bare URLs into links.
	Linkify bool
	// Typographer replaces quotes, dashes and ellipses.
	Typographer bool
	// Quotes holds the double and single quote pairs used by Typographer:
	// left double, right double, left single, right single.
	Quotes string

	VideoAttrs string
	AudioAttrs string

	TaskList TaskListOptions
}

// DefaultOptions returns raw HTML enabled and every other switch off.
func DefaultOptions() Options {
	return Options{
		HTML:       true,
		Quotes:     DefaultQuotes,
		VideoAttrs: DefaultVideoAttrs,
		AudioAttrs: DefaultAudioAttrs,
	}
}

// Validate checks o. An empty Quotes is accepted and means DefaultQuotes.
func (o Options) Validate() error {
	if o.Quotes != "" && utf8.RuneCountInString(o.Quotes) != 4 {
		return fmt.Errorf("%w: got %q", ErrInvalidQuotes, o.Quotes)
	}
	return nil
}

func (o Options) quotes() []string {
	q := o.Quotes
	if q == "" {
		q = DefaultQuotes
	}
	out := make([]string, 0, 4)
	for _, r := range q {
		out = append(out, string(r))
	}
	return out
}
