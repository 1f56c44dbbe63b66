package prefilter

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/coregx/symregex/charset"
	"github.com/coregx/symregex/classifier"
	"github.com/coregx/symregex/literal"
)

// findAll collects every candidate position, restarting one byte after
// each.
func findAll(p Prefilter, haystack string) []int {
	var out []int
	for pos := 0; ; pos++ {
		pos = p.Find([]byte(haystack), pos)
		if pos < 0 {
			return out
		}
		out = append(out, pos)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMemmem(t *testing.T) {
	p := NewMemmem([]byte("abc"))
	if got := findAll(p, "xabcabcab"); !equalInts(got, []int{1, 4}) {
		t.Errorf("Memmem candidates = %v, want [1 4]", got)
	}
	if got := p.Find([]byte("abc"), 4); got != -1 {
		t.Errorf("Find past the end = %d, want -1", got)
	}
	if p.String() != `memmem("abc")` {
		t.Errorf("String = %s", p)
	}
}

func TestFold(t *testing.T) {
	p := NewFold([]rune("hello"))
	if p == nil {
		t.Fatal("NewFold(hello) = nil")
	}
	if got := findAll(p, "say HeLLo and hello, not hell"); !equalInts(got, []int{4, 14}) {
		t.Errorf("Fold candidates = %v, want [4 14]", got)
	}
	if got := p.Find([]byte("hell"), 0); got != -1 {
		t.Errorf("Find(hell) = %d, want -1", got)
	}
	for _, prefix := range []string{"ok", "is", "é", ""} {
		if NewFold([]rune(prefix)) != nil {
			t.Errorf("NewFold(%q) != nil", prefix)
		}
	}
	if q := NewFold([]rune("a-1")); q == nil || q.Find([]byte("xA-1"), 0) != 1 {
		t.Error("Fold does not match non-letters exactly")
	}
}

func TestAhoCorasick(t *testing.T) {
	seq := literal.NewSeq(
		literal.NewLiteral([]byte("error"), true),
		literal.NewLiteral([]byte("warn"), true),
		literal.NewLiteral([]byte("fatal"), true),
	)
	p, err := NewAhoCorasick(seq)
	if err != nil {
		t.Fatalf("NewAhoCorasick: %v", err)
	}
	if got := findAll(p, "ok warn ok error fatal"); !equalInts(got, []int{3, 11, 17}) {
		t.Errorf("AhoCorasick candidates = %v, want [3 11 17]", got)
	}
	if _, err := NewAhoCorasick(literal.NewSeq()); err == nil {
		t.Error("NewAhoCorasick(empty) succeeded")
	}
}

func TestStartSet(t *testing.T) {
	tests := []struct {
		name     string
		set      charset.Set
		haystack string
		want     []int
	}{
		{"one byte", charset.Single('x'), "axbx", []int{1, 3}},
		{"three bytes", charset.FromRunes('a', 'b', 'c'), "xxcxbxa", []int{2, 4, 6}},
		{"ascii table", charset.FromRange('0', '9'), "a1b22", []int{1, 3, 4}},
		{"non-ascii", charset.FromRunes('é', 'z'), "aéz€é", []int{1, 3, 7}},
		{"skips continuation bytes", charset.FromRange(0x80, 0xBF), "é\u0080", []int{2}},
		{"invalid byte", charset.Single(utf8.RuneError), "a\xffb\xfe", []int{1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewStartSet(tt.set, classifier.DefaultPrecomputeLimit)
			if got := findAll(p, tt.haystack); !equalInts(got, tt.want) {
				t.Errorf("StartSet candidates = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartSetAgreesWithDecoding(t *testing.T) {
	set := charset.FromRanges(charset.Range{Lo: 'a', Hi: 'c'}, charset.Range{Lo: 0x400, Hi: 0x4FF})
	p := NewStartSet(set, 0)
	haystack := strings.Repeat("xyЖzбa\xc0", 20)
	var want []int
	for i, c := range haystack {
		if set.Contains(c) {
			want = append(want, i)
		}
	}
	var got []int
	for pos := 0; ; {
		pos = p.Find([]byte(haystack), pos)
		if pos < 0 {
			break
		}
		got = append(got, pos)
		_, size := utf8.DecodeRuneInString(haystack[pos:])
		pos += size
	}
	if !equalInts(got, want) {
		t.Errorf("StartSet candidates = %v, want %v", got, want)
	}
}
