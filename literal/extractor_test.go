package literal

import (
	"regexp/syntax"
	"slices"
	"testing"

	"github.com/coregx/symregex/algebra"
	"github.com/coregx/symregex/charset"
	"github.com/coregx/symregex/sre"
)

func extract(t *testing.T, pattern string, config ExtractorConfig) *Seq {
	t.Helper()
	re, err := sre.Parse(pattern, syntax.Perl)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	sets, _ := sre.Predicates(re)
	alg, err := algebra.NewBV64Algebra(charset.Minterms(sets))
	if err != nil {
		t.Fatalf("NewBV64Algebra(%q): %v", pattern, err)
	}
	b := sre.NewBuilder[uint64](alg)
	return Prefixes(New(config), b, sre.Convert(b, re, sre.Options{}))
}

func TestPrefixes(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{`hello`, []string{"hello"}},
		{`(foo|bar)baz`, []string{"foobaz", "barbaz"}},
		{`(hello|world)[a-z]+`, []string{"hello", "world"}},
		{`[ab]c`, []string{"ac", "bc"}},
		{`\bcat|dog\b`, []string{"cat", "dog"}},
		{`x*y`, []string{"y", "x"}},
		{`(?i)ok`, []string{"OK", "Ok", "O\u212a", "oK", "ok", "o\u212a"}},
		{`a.b`, []string{"a"}},
		{`.*foo`, nil},
		{`[a-z]+`, nil},
		{`a?`, nil},
		{`\x{FFFD}abc`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := words(extract(t, tt.pattern, DefaultConfig()))
			slices.Sort(got)
			want := slices.Clone(tt.want)
			slices.Sort(want)
			if !slices.Equal(got, want) {
				t.Errorf("Prefixes(%q) = %q, want %q", tt.pattern, got, want)
			}
		})
	}
}

func TestPrefixesCompleteness(t *testing.T) {
	seq := extract(t, `(cat|dog)s+`, DefaultConfig())
	for i := 0; i < seq.Len(); i++ {
		if seq.Get(i).Complete {
			t.Errorf("%s is complete, but more s may follow", seq.Get(i))
		}
	}
	seq = extract(t, `cat|dog`, DefaultConfig())
	for i := 0; i < seq.Len(); i++ {
		if !seq.Get(i).Complete {
			t.Errorf("%s is incomplete", seq.Get(i))
		}
	}
}

func TestPrefixesLimits(t *testing.T) {
	config := DefaultConfig()
	config.MaxLiteralLen = 3
	got := words(extract(t, `abcdef|xyzzy`, config))
	slices.Sort(got)
	if !slices.Equal(got, []string{"abc", "xyz"}) {
		t.Errorf("truncated Prefixes = %q", got)
	}

	config = DefaultConfig()
	config.MaxLiterals = 4
	if got := extract(t, `[ab][cd][ef]`, config); got.Len() != 2 {
		t.Errorf("limited Prefixes = %s, want the two one-character literals", got)
	}

	config = DefaultConfig()
	config.ExcludeNewline = true
	if got := extract(t, "\n(?m)^abc", config); !got.IsEmpty() {
		t.Errorf("Prefixes with a line feed = %s, want empty", got)
	}
}
