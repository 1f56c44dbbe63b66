package prefilter

import (
	"fmt"

	"github.com/coregx/symregex/simd"
)

// Memmem searches for a single exact literal using simd.Memmem.
//
// Example patterns:
//
//	/hello/       → search for "hello"
//	/\bprefix\w+/ → search for "prefix"
type Memmem struct {
	needle []byte
}

// NewMemmem creates a prefilter for needle, which must not be empty.
// The needle slice is copied to prevent aliasing issues.
func NewMemmem(needle []byte) *Memmem {
	if len(needle) == 0 {
		panic("prefilter: empty literal")
	}
	return &Memmem{needle: append([]byte(nil), needle...)}
}

// Find implements Prefilter.Find using simd.Memmem.
func (p *Memmem) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	idx := simd.Memmem(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *Memmem) HeapBytes() int { return len(p.needle) }

func (p *Memmem) String() string { return fmt.Sprintf("memmem(%q)", p.needle) }
