package lazy

import "github.com/coregx/symregex/sre"

// KindTable computes the CharKind of the characters around a position.
//
// Only ASCII characters have a kind other than General, so the kind of a
// character is determined by any one of its bytes: a byte >= 0x80 belongs
// to a multi-byte or invalid sequence and is General. This lets a search
// compute contexts without decoding.
//
// A table built for a pattern without anchors reports General everywhere,
// sentinels included.
type KindTable struct {
	byteKind [256]sre.CharKind
	enabled  bool
}

// NewKindTable returns the table for a pattern; anchors reports whether the
// pattern contains any anchor.
func NewKindTable(anchors bool) *KindTable {
	t := &KindTable{enabled: anchors}
	if !anchors {
		return t
	}
	for b := 0; b < 128; b++ {
		switch {
		case b == '\n':
			t.byteKind[b] = sre.Newline
		case b == '_' || '0' <= b && b <= '9' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z':
			t.byteKind[b] = sre.WordLetter
		}
	}
	return t
}

// Enabled reports whether kinds are tracked at all.
func (t *KindTable) Enabled() bool { return t.enabled }

// at returns the kind of the character holding byte i of the input
// haystack[:end].
func (t *KindTable) at(haystack []byte, i, end int) sre.CharKind {
	k := t.byteKind[haystack[i]]
	if k == sre.Newline && i == end-1 {
		return sre.NewlineEnd
	}
	return k
}

// Before returns the kind of the character before pos in a forward scan of
// haystack[:end].
func (t *KindTable) Before(haystack []byte, pos, end int) sre.CharKind {
	switch {
	case !t.enabled:
		return sre.General
	case pos == 0:
		return sre.Start
	}
	return t.at(haystack, pos-1, end)
}

// After returns the kind of the character at pos in a forward scan of
// haystack[:end].
func (t *KindTable) After(haystack []byte, pos, end int) sre.CharKind {
	switch {
	case !t.enabled:
		return sre.General
	case pos >= end:
		return sre.End
	}
	return t.at(haystack, pos, end)
}

// RevBefore returns the kind of the character preceding pos in a backward
// scan, which is the character at pos.
func (t *KindTable) RevBefore(haystack []byte, pos, end int) sre.CharKind {
	switch {
	case !t.enabled:
		return sre.General
	case pos >= end:
		return sre.Start
	}
	return t.at(haystack, pos, end)
}

// RevAfter returns the kind of the character following pos in a backward
// scan, which is the character before pos.
func (t *KindTable) RevAfter(haystack []byte, pos, end int) sre.CharKind {
	switch {
	case !t.enabled:
		return sre.General
	case pos == 0:
		return sre.End
	}
	return t.at(haystack, pos-1, end)
}

// Rune returns the kind of character c, given whether it is the last
// character of the input.
func (t *KindTable) Rune(c rune, last bool) sre.CharKind {
	switch {
	case !t.enabled || c < 0 || c >= 0x80:
		return sre.General
	case c == '\n' && last:
		return sre.NewlineEnd
	}
	return t.byteKind[c]
}
