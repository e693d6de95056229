package buffer

import "github.com/iw2rmb/totonoo/edit"

// Pos is a (row, col) view of an offset. Col counts runes from the line
// start.
type Pos struct {
	Row int
	Col int
}

func ComparePos(a, b Pos) int {
	if a.Row < b.Row {
		return -1
	}
	if a.Row > b.Row {
		return 1
	}
	if a.Col < b.Col {
		return -1
	}
	if a.Col > b.Col {
		return 1
	}
	return 0
}

// cursor is one selection range with direction: head moves, anchor stays.
type cursor struct {
	anchor int
	head   int
}

func (c cursor) rng() edit.Range {
	return edit.Range{From: c.anchor, To: c.head}.Normalize()
}

func (c cursor) collapsed() bool { return c.anchor == c.head }

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
