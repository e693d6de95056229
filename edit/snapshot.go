package edit

import "sort"

// Doc is an immutable text snapshot addressed by rune offsets.
type Doc struct {
	text       []rune
	lineStarts []int
}

func NewDoc(text string) Doc {
	rs := []rune(text)
	starts := []int{0}
	for i, r := range rs {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return Doc{text: rs, lineStarts: starts}
}

// Len returns the document length in runes.
func (d Doc) Len() int { return len(d.text) }

func (d Doc) String() string { return string(d.text) }

// LineCount returns the number of lines; an empty document has one line.
func (d Doc) LineCount() int {
	if len(d.lineStarts) == 0 {
		return 1
	}
	return len(d.lineStarts)
}

// Slice returns the text in [from, to). Bounds are clamped into the document.
func (d Doc) Slice(from, to int) string {
	from = clampInt(from, 0, len(d.text))
	to = clampInt(to, 0, len(d.text))
	if from >= to {
		return ""
	}
	return string(d.text[from:to])
}

// Contains reports whether off is a valid offset (0 <= off <= Len()).
func (d Doc) Contains(off int) bool { return off >= 0 && off <= len(d.text) }

// LineAt returns the line containing off. ok is false when off is outside
// the document.
func (d Doc) LineAt(off int) (Line, bool) {
	if !d.Contains(off) {
		return Line{}, false
	}
	starts := d.lineStarts
	if len(starts) == 0 {
		starts = []int{0}
	}
	// Last line whose start is <= off.
	i := sort.Search(len(starts), func(i int) bool { return starts[i] > off }) - 1
	if i < 0 {
		i = 0
	}
	start := starts[i]
	end := len(d.text)
	if i+1 < len(starts) {
		end = starts[i+1] - 1
	}
	return Line{Start: start, End: end, Text: string(d.text[start:end])}, true
}

// LineNumber returns the 0-based line index containing off, clamped.
func (d Doc) LineNumber(off int) int {
	off = clampInt(off, 0, len(d.text))
	if len(d.lineStarts) == 0 {
		return 0
	}
	return sort.Search(len(d.lineStarts), func(i int) bool { return d.lineStarts[i] > off }) - 1
}

// Line returns the 0-based line n.
func (d Doc) Line(n int) (Line, bool) {
	if n < 0 || n >= d.LineCount() {
		return Line{}, false
	}
	if len(d.lineStarts) == 0 {
		return Line{}, true
	}
	return d.LineAt(d.lineStarts[n])
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
