// Package promstats publishes the search counters of compiled regexes to
// Prometheus (http://prometheus.io).
package promstats

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/coregx/symregex"
)

// Source is anything reporting symregex counters, normally a
// *symregex.Regex.
type Source interface {
	Stats() symregex.Stats
}

type metric struct {
	desc      *prometheus.Desc
	valueType prometheus.ValueType
	value     func(st *symregex.Stats) float64
}

// Collector is a prometheus.Collector reporting the counters of a set of
// named sources, one time series per source labeled with its name.
// The collector still needs to be registered with a prometheus registry.
type Collector struct {
	metrics []metric

	mu      sync.Mutex
	sources map[string]Source
}

// NewCollector returns a collector whose metric names are built from the
// namespace and subsystem of opts. opts.Name is unused and opts.Help
// prefixes every help text.
func NewCollector(opts prometheus.Opts) *Collector {
	c := &Collector{sources: make(map[string]Source)}
	add := func(name, help string, vt prometheus.ValueType, value func(st *symregex.Stats) float64) {
		if opts.Help != "" {
			help = opts.Help + ": " + help
		}
		c.metrics = append(c.metrics, metric{
			desc: prometheus.NewDesc(
				prometheus.BuildFQName(opts.Namespace, opts.Subsystem, name),
				help,
				[]string{"regex"},
				opts.ConstLabels,
			),
			valueType: vt,
			value:     value,
		})
	}
	counter := func(name, help string, value func(st *symregex.Stats) uint64) {
		add(name, help, prometheus.CounterValue, func(st *symregex.Stats) float64 { return float64(value(st)) })
	}

	counter("searches_total", "Searches that ran the forward scan.",
		func(st *symregex.Stats) uint64 { return st.Searches })
	counter("matches_total", "Matches reported.",
		func(st *symregex.Stats) uint64 { return st.Matches })
	counter("chars_stepped_total", "Characters consumed through the transition cache.",
		func(st *symregex.Stats) uint64 { return st.CharsStepped })
	counter("prefix_skips_total", "Jumps to an exact literal prefix.",
		func(st *symregex.Stats) uint64 { return st.PrefixSkips })
	counter("candidate_skips_total", "Jumps made by candidate prefilters.",
		func(st *symregex.Stats) uint64 { return st.CandidateSkips })
	counter("prefilter_retired_total", "Searches that abandoned an ineffective prefilter.",
		func(st *symregex.Stats) uint64 { return st.PrefilterRetired })
	counter("watchdog_hits_total", "Matches whose start came from the fixed-length shortcut.",
		func(st *symregex.Stats) uint64 { return st.WatchdogHits })
	counter("transitions_total", "Automaton transitions computed.",
		func(st *symregex.Stats) uint64 { return st.Transitions })
	add("states", "Automaton states built.", prometheus.GaugeValue,
		func(st *symregex.Stats) float64 { return float64(st.States) })
	return c
}

// Add starts reporting src under the label value name, replacing any
// source previously added under that name.
func (c *Collector) Add(name string, src Source) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[name] = src
}

// Remove stops reporting the source added under name.
func (c *Collector) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sources, name)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, m := range c.metrics {
		ch <- m.desc
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	names := make([]string, 0, len(c.sources))
	for name := range c.sources {
		names = append(names, name)
	}
	sources := make([]Source, len(names))
	sort.Strings(names)
	for i, name := range names {
		sources[i] = c.sources[name]
	}
	c.mu.Unlock()

	for i, src := range sources {
		st := src.Stats()
		for _, m := range c.metrics {
			ch <- prometheus.MustNewConstMetric(m.desc, m.valueType, m.value(&st), names[i])
		}
	}
}
