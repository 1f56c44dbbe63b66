package symregex

import (
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/patrickmn/go-cache"
)

// tracer traces with key 'symregex'.
func tracer() tracing.Trace {
	return tracing.Select("symregex")
}

const (
	cacheExpiration      = 10 * time.Minute
	cacheCleanupInterval = 5 * time.Minute
)

// compiled holds the regexes returned by CompileCached. Entries expire
// after cacheExpiration without use, releasing their automata.
var compiled = cache.New(cacheExpiration, cacheCleanupInterval)

// CompileCached is like Compile but shares compiled regexes between
// callers. A regex that was not used for ten minutes is dropped and
// recompiled on the next call. Since a Regex keeps its automaton states,
// sharing one also shares the states built by earlier searches.
//
// Errors are not cached.
func CompileCached(pattern string) (*Regex, error) {
	if v, ok := compiled.Get(pattern); ok {
		re := v.(*Regex)
		compiled.SetDefault(pattern, re)
		return re, nil
	}
	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	if prev, ok := compiled.Get(pattern); ok {
		return prev.(*Regex), nil
	}
	compiled.SetDefault(pattern, re)
	tracer().Debugf("cached regex %q, %d cached", pattern, compiled.ItemCount())
	return re, nil
}
