package lazy

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp/syntax"
	"slices"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/coregx/symregex/algebra"
	"github.com/coregx/symregex/charset"
	"github.com/coregx/symregex/classifier"
	"github.com/coregx/symregex/sre"
)

type testDFA struct {
	dfa   *DFA[uint64]
	node  *sre.Node[uint64]
	tree  *classifier.DecisionTree
	kinds *KindTable
}

func newTestDFA(t testing.TB, pattern string, config Config) *testDFA {
	t.Helper()
	re, err := sre.Parse(pattern, syntax.Perl)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	sets, anchors := sre.Predicates(re)
	blocks := charset.Minterms(sets)
	alg, err := algebra.NewBV64Algebra(blocks)
	if err != nil {
		t.Fatal(err)
	}
	b := sre.NewBuilder[uint64](alg)
	node := sre.Convert(b, re, sre.Options{})
	kt := NewKindTable(anchors)

	atoms := append(slices.Clone(alg.Minterms()), alg.FromSet(charset.Newline))
	kinds := make([]sre.CharKind, len(atoms))
	for i, blk := range blocks {
		c, _ := blk.Min()
		kinds[i] = kt.Rune(c, false)
	}
	kinds[len(blocks)] = kt.Rune('\n', true)

	d, err := New(b, atoms, kinds, config)
	if err != nil {
		t.Fatalf("New(%q): %v", pattern, err)
	}
	return &testDFA{dfa: d, node: node, tree: classifier.NewDecisionTree(blocks, classifier.DefaultPrecomputeLimit), kinds: kt}
}

// walk runs the .*-prefixed pattern over input and returns the final state.
func (td *testDFA) walk(input string) *State[uint64] {
	s := td.dfa.State(td.dfa.Builder().DotStarConcat(td.node), td.kinds.Before([]byte(input), 0, len(input)), false)
	runes := []rune(input)
	for i, r := range runes {
		atom := td.tree.Find(r)
		if r == '\n' && i == len(runes)-1 && td.kinds.Enabled() {
			atom = td.dfa.NumAtoms() - 1
		}
		s = td.dfa.Delta(s, atom)
	}
	return s
}

func TestDeltaIsCached(t *testing.T) {
	td := newTestDFA(t, `ab+c`, DefaultConfig())
	start := td.dfa.State(td.node, sre.General, false)
	a := td.tree.Find('a')

	first := td.dfa.Delta(start, a)
	computed := td.dfa.Stats().Transitions
	second := td.dfa.Delta(start, a)
	if first != second {
		t.Errorf("Delta returned %v then %v", first, second)
	}
	if got := td.dfa.Stats().Transitions; got != computed {
		t.Errorf("second Delta computed a transition: %d -> %d", computed, got)
	}
	if td.dfa.State(td.node, sre.General, false) != start {
		t.Error("State did not intern (node, prev, reversed)")
	}
	if td.dfa.State(td.node, sre.General, true) == start {
		t.Error("reversed state shares identity with forward state")
	}
}

func TestDeadState(t *testing.T) {
	td := newTestDFA(t, `abc`, DefaultConfig())
	start := td.dfa.State(td.node, sre.General, false)
	dead := td.dfa.Delta(start, td.tree.Find('x'))
	if !dead.IsDead() || dead != td.dfa.Dead() {
		t.Fatalf("Delta(abc, x) = %v, want dead state", dead)
	}
	for a := 0; a < td.dfa.NumAtoms(); a++ {
		if next := td.dfa.Delta(dead, a); next != dead {
			t.Errorf("Delta(dead, %d) = %v, want dead", a, next)
		}
	}
	if dead.IsNullable(sre.End) {
		t.Error("dead state is nullable")
	}
}

func TestNullabilityFollowsContext(t *testing.T) {
	td := newTestDFA(t, `ab\b`, DefaultConfig())
	s := td.dfa.State(td.node, sre.Start, false)
	s = td.dfa.Delta(s, td.tree.Find('a'))
	s = td.dfa.Delta(s, td.tree.Find('b'))
	if !s.IsNullable(sre.End) || !s.IsNullable(sre.General) {
		t.Error("ab\\b does not accept before a non-word character")
	}
	if s.IsNullable(sre.WordLetter) {
		t.Error("ab\\b accepts before a word character")
	}
}

func TestTableGrowth(t *testing.T) {
	td := newTestDFA(t, `(a|b)*a(a|b){6}`, DefaultConfig().WithInitialStateCapacity(1))
	final := td.walk("abbabaabbbabaaab")
	stats := td.dfa.Stats()
	if stats.States <= 8 {
		t.Errorf("States = %d, want more than 8", stats.States)
	}
	if stats.TableSlots <= 1<<td.dfa.shift {
		t.Errorf("TableSlots = %d, table never grew", stats.TableSlots)
	}
	if stats.TableSlots < stats.States<<td.dfa.shift {
		t.Errorf("TableSlots = %d too small for %d states", stats.TableSlots, stats.States)
	}
	if final.IsDead() {
		t.Error("walk ended in the dead state")
	}
	if td.walk("abbabaabbbabaaab") != final {
		t.Error("repeated walk reached a different state")
	}
}

func TestConcurrentDeltaIsDeterministic(t *testing.T) {
	td := newTestDFA(t, `(?i)(\bfoo|ba[rz]+)\d{1,3}$`, DefaultConfig().WithInitialStateCapacity(1))

	const goroutines = 100
	inputs := make([]string, goroutines)
	rng := rand.New(rand.NewSource(1))
	alphabet := []byte("fobarzFOBAZ019 \n")
	for i := range inputs {
		b := make([]byte, 64)
		for j := range b {
			b[j] = alphabet[rng.Intn(len(alphabet))]
		}
		inputs[i] = string(b)
	}

	results := make([]*State[uint64], goroutines)
	var g errgroup.Group
	for i := range inputs {
		g.Go(func() error {
			for rep := 0; rep < 10; rep++ {
				s := td.walk(inputs[i])
				if results[i] != nil && results[i] != s {
					return fmt.Errorf("input %d: walk reached %v, earlier %v", i, s, results[i])
				}
				results[i] = s
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	for i, in := range inputs {
		if s := td.walk(in); s != results[i] {
			t.Errorf("input %d: sequential walk reached %v, concurrent %v", i, s, results[i])
		}
	}
}

func TestNewRejectsBadAlphabet(t *testing.T) {
	td := newTestDFA(t, `a`, DefaultConfig())
	b := td.dfa.Builder()
	if _, err := New(b, []uint64{1}, []sre.CharKind{sre.General}, DefaultConfig()); !errors.Is(err, ErrInvalidAlphabet) {
		t.Errorf("New with one atom: error = %v, want ErrInvalidAlphabet", err)
	}
	if _, err := New(b, []uint64{1, 2}, []sre.CharKind{sre.General}, DefaultConfig()); !errors.Is(err, ErrInvalidAlphabet) {
		t.Errorf("New with mismatched kinds: error = %v, want ErrInvalidAlphabet", err)
	}
	bad := DefaultConfig().WithInitialStateCapacity(0)
	if _, err := New(b, []uint64{1, 2}, []sre.CharKind{sre.General, sre.General}, bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New with zero capacity: error = %v, want ErrInvalidConfig", err)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{InvalidConfig, "InvalidConfig"},
		{InvalidAlphabet, "InvalidAlphabet"},
		{ErrorKind(42), "UnknownErrorKind(42)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
	wrapped := &DFAError{Kind: InvalidConfig, Message: "outer", Cause: errors.New("inner")}
	if wrapped.Error() != "outer: inner" || !errors.Is(wrapped, ErrInvalidConfig) {
		t.Errorf("wrapped error = %q", wrapped.Error())
	}
}

func TestKindTable(t *testing.T) {
	hay := []byte("a b\n_é\n")
	end := len(hay)
	kt := NewKindTable(true)
	tests := []struct {
		name string
		got  sre.CharKind
		want sre.CharKind
	}{
		{"before 0", kt.Before(hay, 0, end), sre.Start},
		{"after 0", kt.After(hay, 0, end), sre.WordLetter},
		{"after 1", kt.After(hay, 1, end), sre.General},
		{"after 3", kt.After(hay, 3, end), sre.Newline},
		{"before 5", kt.Before(hay, 5, end), sre.WordLetter},
		{"after 5", kt.After(hay, 5, end), sre.General},
		{"after last", kt.After(hay, end-1, end), sre.NewlineEnd},
		{"after end", kt.After(hay, end, end), sre.End},
		{"before end", kt.Before(hay, end, end), sre.NewlineEnd},
		{"rev before end", kt.RevBefore(hay, end, end), sre.Start},
		{"rev after 0", kt.RevAfter(hay, 0, end), sre.End},
		{"rev after 1", kt.RevAfter(hay, 1, end), sre.WordLetter},
		{"region end", kt.After(hay, 3, 4), sre.NewlineEnd},
		{"rune", kt.Rune('\n', false), sre.Newline},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %s, want %s", tt.name, tt.got, tt.want)
		}
	}
	off := NewKindTable(false)
	if off.Before(hay, 0, end) != sre.General || off.After(hay, 3, end) != sre.General {
		t.Error("disabled table reports kinds other than General")
	}
}
