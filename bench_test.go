package symregex

import (
	"regexp"
	"strings"
	"testing"
)

// Benchmarks comparing symregex with stdlib regexp on common search
// shapes: a rare literal prefix, a literal alternation, a large Unicode
// class and word-bounded tokens.

var benchInput = []byte(strings.Repeat("The quick brown fox jumps over the lazy dog. Ελληνικά κείμενα 12345. ", 2000) +
	"ERROR 2024-01-15 disk full")

var benchPatterns = []struct {
	name    string
	pattern string
}{
	{"Prefix", `ERROR \d{4}-\d{2}-\d{2}`},
	{"Alternation", `(disk|memory|network) full`},
	{"UnicodeClass", `\p{Greek}{8,}`},
	{"WordBoundary", `\bjumps\b`},
	{"FixedLength", `[0-9]{5}`},
}

func BenchmarkFind(b *testing.B) {
	for _, bp := range benchPatterns {
		re := MustCompile(bp.pattern)
		std := regexp.MustCompile(bp.pattern)

		b.Run(bp.name+"/symregex", func(b *testing.B) {
			b.SetBytes(int64(len(benchInput)))
			for i := 0; i < b.N; i++ {
				re.Count(benchInput, -1)
			}
		})
		b.Run(bp.name+"/stdlib", func(b *testing.B) {
			b.SetBytes(int64(len(benchInput)))
			for i := 0; i < b.N; i++ {
				std.FindAllIndex(benchInput, -1)
			}
		})
	}
}

func BenchmarkIsMatch(b *testing.B) {
	re := MustCompile(`ERROR \d{4}`)
	std := regexp.MustCompile(`ERROR \d{4}`)

	b.Run("symregex", func(b *testing.B) {
		b.SetBytes(int64(len(benchInput)))
		for i := 0; i < b.N; i++ {
			re.Match(benchInput)
		}
	})
	b.Run("stdlib", func(b *testing.B) {
		b.SetBytes(int64(len(benchInput)))
		for i := 0; i < b.N; i++ {
			std.Match(benchInput)
		}
	})
}

func BenchmarkCompile(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Compile(`(\w+)@(\w+)\.(com|org|net)`); err != nil {
			b.Fatal(err)
		}
	}
}
