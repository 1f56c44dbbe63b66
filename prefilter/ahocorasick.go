package prefilter

import (
	"fmt"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/symregex/literal"
)

// AhoCorasick finds the leftmost occurrence of any literal of a prefix set.
//
// Example patterns:
//
//	/(error|warning|fatal): .*/ → search for "error", "warning", "fatal"
//	/(?i)get /                  → search for "GET ", "GEt ", ..., "get "
type AhoCorasick struct {
	auto  *ahocorasick.Automaton
	count int
	size  int
}

// NewAhoCorasick builds an automaton over the literals of seq.
func NewAhoCorasick(seq *literal.Seq) (*AhoCorasick, error) {
	if seq.IsEmpty() {
		return nil, fmt.Errorf("prefilter: empty literal set")
	}
	builder := ahocorasick.NewBuilder()
	size := 0
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		builder.AddPattern(lit.Bytes)
		size += lit.Len()
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("prefilter: building Aho-Corasick automaton: %w", err)
	}
	tracer().Debugf("Aho-Corasick prefilter over %d literals", seq.Len())
	return &AhoCorasick{auto: auto, count: seq.Len(), size: size}, nil
}

// Find implements Prefilter.Find.
func (p *AhoCorasick) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// HeapBytes implements Prefilter.HeapBytes. The automaton's own tables are
// not visible, so the literal bytes serve as an estimate.
func (p *AhoCorasick) HeapBytes() int { return p.size }

func (p *AhoCorasick) String() string { return fmt.Sprintf("aho-corasick(%d literals)", p.count) }
