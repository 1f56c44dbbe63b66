package prefilter

import (
	"fmt"

	"github.com/coregx/symregex/simd"
)

// Fold searches for an ASCII literal under simple case folding. Candidates
// for the first byte are found with simd.Memchr2 over both cases and the
// rest of the literal is compared case-insensitively.
//
// Only literals whose every character folds within ASCII qualify: 'k' and
// 's' also fold to non-ASCII characters (U+212A KELVIN SIGN, U+017F LONG S)
// and are rejected by NewFold.
type Fold struct {
	lower []byte
	upper []byte
}

// NewFold returns a case-insensitive prefilter for prefix, or nil if some
// character of prefix is not ASCII or folds outside ASCII.
func NewFold(prefix []rune) *Fold {
	if len(prefix) == 0 {
		return nil
	}
	p := &Fold{
		lower: make([]byte, len(prefix)),
		upper: make([]byte, len(prefix)),
	}
	for i, c := range prefix {
		if c >= 0x80 || c == 'k' || c == 'K' || c == 's' || c == 'S' {
			return nil
		}
		p.lower[i] = toLower(byte(c))
		p.upper[i] = toUpper(byte(c))
	}
	return p
}

// Find implements Prefilter.Find.
func (p *Fold) Find(haystack []byte, start int) int {
	if start < 0 {
		return -1
	}
	n := len(p.lower)
	for pos := start; pos+n <= len(haystack); pos++ {
		i := simd.Memchr2(haystack[pos:len(haystack)-n+1], p.lower[0], p.upper[0])
		if i < 0 {
			return -1
		}
		pos += i
		if p.matchesAt(haystack[pos : pos+n]) {
			return pos
		}
	}
	return -1
}

func (p *Fold) matchesAt(window []byte) bool {
	for i, c := range window {
		if c != p.lower[i] && c != p.upper[i] {
			return false
		}
	}
	return true
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *Fold) HeapBytes() int { return 2 * len(p.lower) }

func (p *Fold) String() string { return fmt.Sprintf("fold(%q)", p.lower) }

func toLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func toUpper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
