package meta

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Stats is a snapshot of the search counters and automaton size of an
// engine.
type Stats struct {
	// Searches counts calls that ran the forward scan.
	Searches uint64

	// Matches counts matches reported.
	Matches uint64

	// CharsStepped counts characters consumed through the transition
	// cache while looking for a match end.
	CharsStepped uint64

	// PrefixSkips counts jumps to an exact literal prefix followed by a
	// fast-forward over it.
	PrefixSkips uint64

	// CandidateSkips counts jumps made by candidate prefilters (case
	// folded prefix, prefix set or start set).
	CandidateSkips uint64

	// PrefilterRetired counts searches where a candidate prefilter was
	// abandoned for producing too many false positives.
	PrefilterRetired uint64

	// WatchdogHits counts matches whose span came from the fixed-length
	// shortcut.
	WatchdogHits uint64

	// States is the number of automaton states created so far.
	States int

	// Transitions is the number of transitions computed so far.
	Transitions uint64
}

// counters are updated once per search from a local tally. The padding
// keeps the frequently written words on their own cache line.
type counters struct {
	_              cpu.CacheLinePad
	searches       atomic.Uint64
	matches        atomic.Uint64
	charsStepped   atomic.Uint64
	prefixSkips    atomic.Uint64
	candidateSkips atomic.Uint64
	retired        atomic.Uint64
	watchdogHits   atomic.Uint64
	_              cpu.CacheLinePad
}

// tally accumulates the counters of one search without synchronization.
type tally struct {
	searches       uint64
	matches        uint64
	charsStepped   uint64
	prefixSkips    uint64
	candidateSkips uint64
	retired        uint64
	watchdogHits   uint64
}

func (c *counters) add(t *tally) {
	c.searches.Add(t.searches)
	if t.matches != 0 {
		c.matches.Add(t.matches)
	}
	c.charsStepped.Add(t.charsStepped)
	if t.prefixSkips != 0 {
		c.prefixSkips.Add(t.prefixSkips)
	}
	if t.candidateSkips != 0 {
		c.candidateSkips.Add(t.candidateSkips)
	}
	if t.retired != 0 {
		c.retired.Add(t.retired)
	}
	if t.watchdogHits != 0 {
		c.watchdogHits.Add(t.watchdogHits)
	}
}

func (c *counters) snapshot() Stats {
	return Stats{
		Searches:         c.searches.Load(),
		Matches:          c.matches.Load(),
		CharsStepped:     c.charsStepped.Load(),
		PrefixSkips:      c.prefixSkips.Load(),
		CandidateSkips:   c.candidateSkips.Load(),
		PrefilterRetired: c.retired.Load(),
		WatchdogHits:     c.watchdogHits.Load(),
	}
}
