package meta

import (
	"unicode/utf8"

	"github.com/coregx/symregex/prefilter"
)

// search is the per-call state of a search: local counters and the
// effectiveness tracker of the candidate prefilter. FindAll shares one
// search across its matches.
type search struct {
	tally   tally
	tracker *prefilter.Tracker
}

func (m *Matcher[T]) newSearch() *search {
	s := &search{}
	if m.prefix == nil && m.candidates != nil {
		s.tracker = prefilter.NewTracker(m.candidates)
	}
	return s
}

func (m *Matcher[T]) finish(s *search) {
	if s.tracker != nil && !s.tracker.IsActive() {
		s.tally.retired++
	}
	m.stats.add(&s.tally)
}

// IsMatch reports whether h[start:end] contains a match. Only the forward
// scan runs. The range must be valid.
func (m *Matcher[T]) IsMatch(h []byte, start, end int) bool {
	s := m.newSearch()
	_, ok := m.find(h, start, end, true, s)
	m.finish(s)
	return ok
}

// Find returns the first match in h[start:end]: among the matches with the
// earliest end, the one starting leftmost, extended to its longest end (or
// kept at its shortest if the pattern is lazy). The range must be valid.
func (m *Matcher[T]) Find(h []byte, start, end int) (Match, bool) {
	s := m.newSearch()
	match, ok := m.find(h, start, end, false, s)
	m.finish(s)
	return match, ok
}

// FindAll calls yield with successive matches in h[start:end], each search
// resuming at the end of the previous match, until there are no more
// matches, limit matches were reported (limit <= 0 means no limit) or yield
// returns false.
func (m *Matcher[T]) FindAll(h []byte, start, end, limit int, yield func(Match) bool) {
	s := m.newSearch()
	defer m.finish(s)
	for n := 0; limit <= 0 || n < limit; n++ {
		match, ok := m.find(h, start, end, false, s)
		if !ok || !yield(match) {
			return
		}
		start = match.End()
	}
}

func (m *Matcher[T]) find(h []byte, start, end int, booleanOnly bool, s *search) (Match, bool) {
	s.tally.searches++
	h = h[:end]
	e, lo, wd := m.findEarliestEnd(h, start, end, s)
	if e < 0 {
		return Match{}, false
	}
	s.tally.matches++
	if booleanOnly {
		return Match{}, true
	}
	if wd >= 0 {
		s.tally.watchdogHits++
		first := backChars(h, start, e, wd)
		return Match{Index: first, Length: e - first}, true
	}
	first := m.findStart(h, lo, e, end)
	last := m.findLastEnd(h, first, end)
	return Match{Index: first, Length: last - first}, true
}

// findEarliestEnd runs A1 forward from start and returns the first position
// where a match ends, the last position at which A1 was in its initial
// node (no match can start before it) and the watchdog length recorded
// for the match, or -1. It returns e = -1 if there is no match.
func (m *Matcher[T]) findEarliestEnd(h []byte, start, end int, s *search) (e, lo, watchdog int) {
	pos := start
	lo = start
	state := m.dot.initial[m.kinds.Before(h, pos, end)]
	for {
		skipped := false
		if state.Node() == m.dot.node {
			lo = pos
			switch {
			case m.prefix != nil:
				i := m.candidates.Find(h, pos)
				if i < 0 {
					return -1, 0, -1
				}
				s.tally.prefixSkips++
				state = m.prefix.after[m.kinds.Before(h, i, end)]
				lo = i
				pos = i + len(m.prefix.text)
				skipped = true
			case s.tracker != nil && s.tracker.IsActive():
				i := s.tracker.Find(h, pos)
				if i < 0 {
					return -1, 0, -1
				}
				if i > pos {
					s.tally.candidateSkips++
					pos, lo = i, i
					state = m.dot.initial[m.kinds.Before(h, pos, end)]
				}
			}
		}
		if !skipped {
			if pos >= end {
				return -1, 0, -1
			}
			atom, size := m.atomAt(h, pos, end)
			state = m.dfa.Delta(state, atom)
			pos += size
			s.tally.charsStepped++
		}
		next := m.kinds.After(h, pos, end)
		if state.IsNullable(next) {
			if s.tracker != nil {
				s.tracker.ConfirmMatch()
			}
			watchdog = -1
			if m.watchdog {
				watchdog = state.WatchdogLength(next)
			}
			return pos, lo, watchdog
		}
		if state.IsDead() {
			return -1, 0, -1
		}
	}
}

// findStart runs Ar backward from the match end e down to lo and returns
// the smallest position where Ar accepts.
func (m *Matcher[T]) findStart(h []byte, lo, e, end int) int {
	pos := e
	prev := m.kinds.RevBefore(h, e, end)
	state := m.rev.initial[prev]
	if m.suffix != nil && m.hasSuffixAt(h, lo, e) {
		state = m.suffix.after[prev]
		pos = e - len(m.suffix.text)
	}
	first := -1
	for {
		if state.IsNullable(m.kinds.RevAfter(h, pos, end)) {
			first = pos
		}
		if pos <= lo || state.IsDead() {
			break
		}
		atom, size := m.atomBefore(h, lo, pos, end)
		state = m.dfa.Delta(state, atom)
		pos -= size
	}
	if first < 0 {
		panic("symregex: reverse scan found no start for a match end")
	}
	return first
}

// findLastEnd runs A forward from the match start and returns the last
// accepting position, or the first one if the pattern is lazy.
func (m *Matcher[T]) findLastEnd(h []byte, first, end int) int {
	state := m.fwd.initial[m.kinds.Before(h, first, end)]
	last := -1
	for pos := first; pos < end; {
		atom, size := m.atomAt(h, pos, end)
		state = m.dfa.Delta(state, atom)
		pos += size
		if state.IsDead() {
			break
		}
		if state.IsNullable(m.kinds.After(h, pos, end)) {
			last = pos
			if m.lazyMatch {
				break
			}
		}
	}
	if last < 0 {
		panic("symregex: forward scan found no end for a match start")
	}
	return last
}

// backChars returns the position n characters before pos, not going below
// lo.
func backChars(h []byte, lo, pos, n int) int {
	for ; n > 0 && pos > lo; n-- {
		_, size := utf8.DecodeLastRune(h[lo:pos])
		pos -= size
	}
	return pos
}
