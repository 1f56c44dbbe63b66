package meta

import (
	"fmt"

	"github.com/coregx/symregex/classifier"
	"github.com/coregx/symregex/dfa/lazy"
)

// Config controls compilation and search behavior.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.UsePrefilter = false // step the automaton over every character
//	engine, err := meta.Compile(re, sre.Options{}, config)
type Config struct {
	// PrecomputeLimit is the last character code classified by direct
	// table lookup; codes above it go through a decision tree.
	// 0 disables the table, classifier.MaxCode disables the tree.
	// Default: 0xFF
	PrecomputeLimit rune

	// InitialStateCapacity sizes the transition table before its first
	// growth.
	// Default: 64
	InitialStateCapacity int

	// UsePrefilter enables skipping ahead with a literal prefix, a literal
	// prefix set or the start set while no match is in progress.
	// Results are identical with it disabled.
	// Default: true
	UsePrefilter bool

	// UseWatchdog enables the fixed-length shortcut: for a pattern whose
	// matches all have the same length, the match start is computed from
	// the end instead of by a backward scan.
	// Results are identical with it disabled.
	// Default: true
	UseWatchdog bool

	// MaxPrefixSetLiterals limits the size of a literal prefix set searched
	// with Aho-Corasick.
	// Default: 64
	MaxPrefixSetLiterals int

	// MinPrefixSetLiteralLen is the minimum length, in bytes, of every
	// literal of a prefix set. Shorter literals have too many false
	// positives to beat the start-set scan.
	// Default: 2
	MinPrefixSetLiteralLen int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		PrecomputeLimit:        classifier.DefaultPrecomputeLimit,
		InitialStateCapacity:   lazy.DefaultConfig().InitialStateCapacity,
		UsePrefilter:           true,
		UseWatchdog:            true,
		MaxPrefixSetLiterals:   64,
		MinPrefixSetLiteralLen: 2,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - PrecomputeLimit: 0 to classifier.MaxCode
//   - InitialStateCapacity: 1 to 1,000,000
//   - MaxPrefixSetLiterals: 1 to 1,000 (when UsePrefilter)
//   - MinPrefixSetLiteralLen: 1 to 64 (when UsePrefilter)
func (c Config) Validate() error {
	if c.PrecomputeLimit < 0 || c.PrecomputeLimit > classifier.MaxCode {
		return configError("PrecomputeLimit", fmt.Sprintf("must be between 0 and %#x", classifier.MaxCode))
	}
	if c.InitialStateCapacity < 1 || c.InitialStateCapacity > 1_000_000 {
		return configError("InitialStateCapacity", "must be between 1 and 1,000,000")
	}
	if c.UsePrefilter {
		if c.MaxPrefixSetLiterals < 1 || c.MaxPrefixSetLiterals > 1_000 {
			return configError("MaxPrefixSetLiterals", "must be between 1 and 1,000")
		}
		if c.MinPrefixSetLiteralLen < 1 || c.MinPrefixSetLiteralLen > 64 {
			return configError("MinPrefixSetLiteralLen", "must be between 1 and 64")
		}
	}
	return nil
}

func configError(field, message string) error {
	return &Error{
		Kind:    InvalidConfig,
		Message: "invalid config: " + field + ": " + message,
	}
}

// WithPrecomputeLimit returns a new config with the specified classifier table limit
func (c Config) WithPrecomputeLimit(limit rune) Config {
	c.PrecomputeLimit = limit
	return c
}

// WithInitialStateCapacity returns a new config with the specified capacity
func (c Config) WithInitialStateCapacity(n int) Config {
	c.InitialStateCapacity = n
	return c
}

// WithPrefilter returns a new config with prefiltering enabled or disabled
func (c Config) WithPrefilter(enabled bool) Config {
	c.UsePrefilter = enabled
	return c
}

// WithWatchdog returns a new config with the fixed-length shortcut enabled or disabled
func (c Config) WithWatchdog(enabled bool) Config {
	c.UseWatchdog = enabled
	return c
}
