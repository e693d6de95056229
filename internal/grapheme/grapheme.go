// Package grapheme addresses text by grapheme cluster while the document
// model counts runes.
package grapheme

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cluster is one grapheme cluster; Start and End are rune offsets.
type Cluster struct {
	Text  string
	Start int
	End   int
}

// Clusters splits text into grapheme clusters.
func Clusters(text string) []Cluster {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]Cluster, 0, len(text))
	off := 0
	for g.Next() {
		n := len(g.Runes())
		out = append(out, Cluster{Text: g.Str(), Start: off, End: off + n})
		off += n
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	return uniseg.GraphemeClusterCount(text)
}

// Prev returns the rune offset of the cluster boundary before off, or 0.
func Prev(text string, off int) int {
	prev := 0
	for _, c := range Clusters(text) {
		if c.End >= off {
			return c.Start
		}
		prev = c.End
	}
	return prev
}

// Next returns the rune offset of the cluster boundary after off, or the
// rune length of text.
func Next(text string, off int) int {
	end := 0
	for _, c := range Clusters(text) {
		if c.Start >= off {
			return c.End
		}
		if c.End > off {
			return c.End
		}
		end = c.End
	}
	return end
}

// Column returns the number of clusters that end at or before rune offset
// off.
func Column(text string, off int) int {
	col := 0
	for _, c := range Clusters(text) {
		if c.End > off {
			break
		}
		col++
	}
	return col
}

// OffsetAt returns the rune offset of cluster column col, clamped to the end
// of text.
func OffsetAt(text string, col int) int {
	cs := Clusters(text)
	if col <= 0 || len(cs) == 0 {
		return 0
	}
	if col >= len(cs) {
		return cs[len(cs)-1].End
	}
	return cs[col].Start
}

// Width returns the terminal cell width of cluster drawn at visualCol. Tabs
// advance to the next multiple of tabWidth.
func Width(cluster string, visualCol, tabWidth int) int {
	if cluster == "\t" {
		if tabWidth <= 0 {
			tabWidth = 4
		}
		return tabWidth - visualCol%tabWidth
	}
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = uniseg.StringWidth(cluster)
	}
	if w < 0 {
		return 0
	}
	return w
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsPunct reports whether all runes in cluster are Unicode punctuation.
func IsPunct(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsPunct(r) {
			return false
		}
	}
	return true
}
