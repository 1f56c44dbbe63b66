package meta

import "fmt"

// Match is the span of one match: Length bytes starting at byte offset
// Index of the searched input. Matches are never empty.
type Match struct {
	Index  int
	Length int
}

// End returns the exclusive end offset of the match.
func (m Match) End() int {
	return m.Index + m.Length
}

// String returns the match span as [start, end).
func (m Match) String() string {
	return fmt.Sprintf("[%d, %d)", m.Index, m.End())
}
