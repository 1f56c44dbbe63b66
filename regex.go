// Package symregex provides a regex engine for Go built on symbolic
// derivatives.
//
// A pattern is compiled into derivative automata over character classes
// (minterms) rather than bytes, so large Unicode classes cost no more than
// ASCII ones, and automaton states are built lazily while searching.
// Matching is linear in the input: a forward scan finds where the first
// match ends, a backward scan finds where it starts and a final forward
// scan extends it.
//
// Basic usage:
//
//	re, err := symregex.Compile(`\d+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	loc := re.FindIndex([]byte("hello 123 world"))
//	fmt.Println(loc) // [6 9]
//
//	if re.MatchString("hello 123") {
//	    fmt.Println("matched!")
//	}
//
// Advanced usage:
//
//	config := symregex.DefaultConfig()
//	config.Multiline = true
//	config.Engine.UsePrefilter = false
//	re, err := symregex.CompileWithConfig(`^(error|warn)`, config)
//
// Semantics:
//   - The match reported first is the one ending earliest; among matches
//     with that end the leftmost start wins, and the match is then extended
//     to its longest end (or kept at its shortest end if the pattern
//     contains a lazy quantifier)
//   - Successive matches resume at the end of the previous one
//   - Patterns that can match the empty string are rejected
//   - Word boundaries and line anchors are ASCII-only
//
// Limitations:
//   - No capture groups, backreferences or lookaround
//   - No replace functions
package symregex

import (
	"iter"

	"github.com/coregx/symregex/meta"
)

// Regex represents a compiled regular expression.
//
// A Regex is safe to use concurrently from multiple goroutines.
//
// Example:
//
//	re := symregex.MustCompile(`hello`)
//	if re.Match([]byte("hello world")) {
//	    println("matched!")
//	}
type Regex struct {
	engine  meta.Engine
	pattern string
	config  Config
}

// Compile compiles a regular expression pattern with the default
// configuration.
//
// Syntax is that of Go's regexp/syntax with Perl flags.
// Returns an error if the pattern is invalid, can match the empty string
// or can never match.
//
// Example:
//
//	re, err := symregex.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a regular expression pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var emailRegex = symregex.MustCompile(`[a-z]+@[a-z]+\.[a-z]+`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("symregex: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := symregex.DefaultConfig()
//	config.IgnoreCase = true
//	re, err := symregex.CompileWithConfig("hello", config)
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	re, err := parse(pattern, config)
	if err != nil {
		return nil, err
	}
	engine, err := meta.Compile(re, config.options(), config.Engine)
	if err != nil {
		return nil, err
	}
	return &Regex{
		engine:  engine,
		pattern: pattern,
		config:  config,
	}, nil
}

// QuoteMeta returns a string that escapes all regular expression metacharacters
// inside the argument text; the returned string is a regular expression matching
// the literal text.
//
// Example:
//
//	escaped := symregex.QuoteMeta("hello.world")
//	// escaped = "hello\\.world"
//	re := symregex.MustCompile(escaped)
//	re.MatchString("hello.world") // true
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

// isSpecial returns true if c is in the special characters string.
func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}

// Match reports whether the byte slice b contains any match of the pattern.
//
// Example:
//
//	re := symregex.MustCompile(`\d+`)
//	if re.Match([]byte("hello 123")) {
//	    println("contains digits")
//	}
func (r *Regex) Match(b []byte) bool {
	return r.engine.IsMatch(b, 0, len(b))
}

// MatchString reports whether the string s contains any match of the pattern.
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// IsMatch reports whether input[start:end] contains a match. An end of -1
// stands for len(input). Characters just outside the range still decide
// word boundaries and line anchors, but the start of text is always offset
// 0 and the end of text is always end.
//
// Example:
//
//	re := symregex.MustCompile(`\bcat\b`)
//	ok, err := re.IsMatch([]byte("concat cat"), 0, 6) // false, nil
func (r *Regex) IsMatch(input []byte, start, end int) (bool, error) {
	end, err := meta.CheckRange(len(input), start, end)
	if err != nil {
		return false, err
	}
	return r.engine.IsMatch(input, start, end), nil
}

// Find returns a slice holding the text of the first match in b.
// Returns nil if no match is found.
//
// Example:
//
//	re := symregex.MustCompile(`\d+`)
//	match := re.Find([]byte("age: 42"))
//	println(string(match)) // "42"
func (r *Regex) Find(b []byte) []byte {
	m, ok := r.engine.Find(b, 0, len(b))
	if !ok {
		return nil
	}
	return b[m.Index:m.End():m.End()]
}

// FindString returns a string holding the text of the first match in s.
// Returns empty string if no match is found.
func (r *Regex) FindString(s string) string {
	loc := r.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	return s[loc[0]:loc[1]]
}

// FindIndex returns a two-element slice of integers defining the location of
// the first match in b. The match is at b[loc[0]:loc[1]].
// Returns nil if no match is found.
//
// Example:
//
//	re := symregex.MustCompile(`\d+`)
//	loc := re.FindIndex([]byte("age: 42"))
//	println(loc[0], loc[1]) // 5, 7
func (r *Regex) FindIndex(b []byte) []int {
	m, ok := r.engine.Find(b, 0, len(b))
	if !ok {
		return nil
	}
	return []int{m.Index, m.End()}
}

// FindStringIndex returns a two-element slice of integers defining the location
// of the first match in s. The match is at s[loc[0]:loc[1]].
// Returns nil if no match is found.
func (r *Regex) FindStringIndex(s string) []int {
	return r.FindIndex([]byte(s))
}

// FindAll returns a slice of all successive matches of the pattern in b.
// If n > 0, it returns at most n matches. If n <= 0, it returns all matches.
//
// Example:
//
//	re := symregex.MustCompile(`\d+`)
//	matches := re.FindAll([]byte("1 2 3"), -1)
//	// matches = [[]byte("1"), []byte("2"), []byte("3")]
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	var matches [][]byte
	r.engine.FindAll(b, 0, len(b), n, func(m Match) bool {
		matches = append(matches, b[m.Index:m.End():m.End()])
		return true
	})
	return matches
}

// FindAllString returns a slice of all successive matches of the pattern in s.
// If n > 0, it returns at most n matches. If n <= 0, it returns all matches.
func (r *Regex) FindAllString(s string, n int) []string {
	var matches []string
	r.engine.FindAll([]byte(s), 0, len(s), n, func(m Match) bool {
		matches = append(matches, s[m.Index:m.End()])
		return true
	})
	return matches
}

// FindAllIndex returns the locations of all successive matches in b, as
// FindIndex does for one.
// If n > 0, it returns at most n matches. If n <= 0, it returns all matches.
func (r *Regex) FindAllIndex(b []byte, n int) [][]int {
	var locs [][]int
	r.engine.FindAll(b, 0, len(b), n, func(m Match) bool {
		locs = append(locs, []int{m.Index, m.End()})
		return true
	})
	return locs
}

// FindMatches returns the successive matches in input[start:end], at most
// limit of them (limit <= 0 means no limit). An end of -1 stands for
// len(input). Each match after the first is searched for from the end of
// the previous one, so calling FindMatches again with start set to the
// end of the last match returned continues the sequence.
//
// Example:
//
//	re := symregex.MustCompile(`a+`)
//	matches, err := re.FindMatches([]byte("a aa aaa"), 2, 0, -1)
//	// matches = [{0 1} {2 2}]
func (r *Regex) FindMatches(input []byte, limit, start, end int) ([]Match, error) {
	end, err := meta.CheckRange(len(input), start, end)
	if err != nil {
		return nil, err
	}
	var matches []Match
	r.engine.FindAll(input, start, end, limit, func(m Match) bool {
		matches = append(matches, m)
		return true
	})
	return matches, nil
}

// All returns an iterator over the successive matches in input.
//
// Example:
//
//	re := symregex.MustCompile(`\w+`)
//	for m := range re.All([]byte("to be")) {
//	    fmt.Println(m) // [0, 2) then [3, 5)
//	}
func (r *Regex) All(input []byte) iter.Seq[Match] {
	return func(yield func(Match) bool) {
		r.engine.FindAll(input, 0, len(input), 0, yield)
	}
}

// Count returns the number of successive matches in b.
// If n > 0, it counts at most n matches. If n <= 0, it counts all matches.
//
// Example:
//
//	re := symregex.MustCompile(`\d`)
//	count := re.Count([]byte("1a2b3c"), -1) // 3
func (r *Regex) Count(b []byte, n int) int {
	count := 0
	r.engine.FindAll(b, 0, len(b), n, func(Match) bool {
		count++
		return true
	})
	return count
}

// CountString returns the number of successive matches in s.
func (r *Regex) CountString(s string, n int) int {
	return r.Count([]byte(s), n)
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}

// Config returns the configuration the regex was compiled with.
func (r *Regex) Config() Config {
	return r.config
}

// Stats returns a snapshot of the search counters and automaton size.
func (r *Regex) Stats() Stats {
	return r.engine.Stats()
}

// Info describes how the pattern was compiled: the character algebra, the
// prefilter and the shortcuts in use.
func (r *Regex) Info() Info {
	return r.engine.Info()
}

// Warmup builds automaton states ahead of searching, breadth-first from
// the initial states, until maxStates states exist or every reachable
// state is built. It returns the number of states.
//
// Example:
//
//	re := symregex.MustCompile(`[a-z]+\d`)
//	re.Warmup(1000) // later searches find their states cached
func (r *Regex) Warmup(maxStates int) int {
	return r.engine.Warmup(maxStates)
}
