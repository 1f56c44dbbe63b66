package symregex

import (
	"fmt"
	"regexp/syntax"

	"github.com/coregx/symregex/meta"
	"github.com/coregx/symregex/sre"
)

// Config controls how a pattern is parsed and compiled.
//
// Example:
//
//	config := symregex.DefaultConfig()
//	config.Multiline = true
//	config.DollarEndZ = true
//	re, err := symregex.CompileWithConfig(`^\w+$`, config)
type Config struct {
	// IgnoreCase makes the whole pattern case-insensitive, as (?i) does.
	IgnoreCase bool

	// Multiline makes ^ and $ match at line boundaries, as (?m) does.
	Multiline bool

	// DotAll makes . match a line feed, as (?s) does.
	DotAll bool

	// DollarEndZ makes a non-multiline $ also match before a line feed
	// that ends the input (\Z in Perl). By default $ matches only at the
	// end of the input.
	DollarEndZ bool

	// Engine configures the matcher.
	Engine meta.Config
}

// DefaultConfig returns the default configuration for compilation.
//
// Users can customize this and pass to CompileWithConfig.
func DefaultConfig() Config {
	return Config{Engine: meta.DefaultConfig()}
}

// Validate checks the engine configuration.
func (c Config) Validate() error {
	return c.Engine.Validate()
}

func (c Config) flags() syntax.Flags {
	flags := syntax.Perl
	if c.IgnoreCase {
		flags |= syntax.FoldCase
	}
	if c.Multiline {
		flags &^= syntax.OneLine
	}
	if c.DotAll {
		flags |= syntax.DotNL
	}
	return flags
}

func (c Config) options() sre.Options {
	return sre.Options{DollarEndZ: c.DollarEndZ}
}

func parse(pattern string, config Config) (*syntax.Regexp, error) {
	re, err := sre.Parse(pattern, config.flags())
	if err != nil {
		return nil, &Error{
			Kind:    InvalidPattern,
			Message: fmt.Sprintf("parsing %q", pattern),
			Cause:   err,
		}
	}
	return re, nil
}
