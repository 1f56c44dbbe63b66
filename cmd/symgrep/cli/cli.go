// Package cli implements the symgrep command.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/coregx/symregex"
)

// ErrNoMatch is returned when no input contains a match.
var ErrNoMatch = errors.New("no match")

// options are the settings of one run, read through viper so that every
// flag can also come from a SYMGREP_* environment variable.
type options struct {
	count        bool
	onlyMatching bool
	ignoreCase   bool
	multiline    bool
	noPrefilter  bool
	workers      int
	stats        bool
}

// New returns the symgrep command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symgrep [flags] PATTERN [FILE...]",
		Short: "symgrep prints the lines of its input that contain a match of PATTERN.",
		Long: "`symgrep` searches each FILE (standard input if none is given, or for `-`) for matches of PATTERN.\n\n" +
			"PATTERN uses Go regexp syntax. Patterns that can match the empty string are rejected.\n" +
			"Every flag can also be set with an environment variable: `--only-matching` is `SYMGREP_ONLY_MATCHING`.\n" +
			"The exit status is 0 if a match was found, 1 if none was and 2 on error.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	registerFlags(cmd.Flags())
	return cmd
}

func registerFlags(fs *pflag.FlagSet) {
	fs.BoolP("count", "c", false, "Print only the number of matching lines per input, or of matches with --only-matching.")
	fs.BoolP("only-matching", "o", false, "Print each match with its byte offset instead of the matching line.")
	fs.BoolP("ignore-case", "i", false, "Match case-insensitively.")
	fs.BoolP("multiline", "m", false, "Make ^ and $ match at line boundaries.")
	fs.Bool("no-prefilter", false, "Step the automaton over every character instead of skipping ahead.")
	fs.IntP("workers", "j", runtime.GOMAXPROCS(0), "Number of files searched in parallel.")
	fs.Bool("stats", false, "Print search counters to standard error when done.")
}

func loadOptions(fs *pflag.FlagSet) (options, error) {
	v := viper.New()
	v.SetEnvPrefix("symgrep")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return options{}, err
	}
	o := options{
		count:        v.GetBool("count"),
		onlyMatching: v.GetBool("only-matching"),
		ignoreCase:   v.GetBool("ignore-case"),
		multiline:    v.GetBool("multiline"),
		noPrefilter:  v.GetBool("no-prefilter"),
		workers:      v.GetInt("workers"),
		stats:        v.GetBool("stats"),
	}
	if o.workers < 1 {
		return options{}, fmt.Errorf("--workers must be at least 1, got %d", o.workers)
	}
	return o, nil
}

func run(cmd *cobra.Command, args []string) error {
	o, err := loadOptions(cmd.Flags())
	if err != nil {
		return err
	}
	config := symregex.DefaultConfig()
	config.IgnoreCase = o.ignoreCase
	config.Multiline = o.multiline
	config.Engine.UsePrefilter = !o.noPrefilter
	re, err := symregex.CompileWithConfig(args[0], config)
	if err != nil {
		return err
	}

	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	prefix := len(files) > 1

	// Each file is searched into its own buffer; output keeps file order.
	outputs := make([]bytes.Buffer, len(files))
	found := make([]bool, len(files))
	var g errgroup.Group
	g.SetLimit(o.workers)
	for i, name := range files {
		g.Go(func() error {
			data, err := readInput(cmd.InOrStdin(), name)
			if err != nil {
				return err
			}
			label := ""
			if prefix {
				label = name + ":"
			}
			found[i] = search(&outputs[i], re, data, label, o)
			return nil
		})
	}
	err = g.Wait()

	out := cmd.OutOrStdout()
	for i := range outputs {
		if _, werr := outputs[i].WriteTo(out); werr != nil && err == nil {
			err = werr
		}
	}
	if o.stats {
		printStats(cmd.ErrOrStderr(), re)
	}
	if err != nil {
		return err
	}
	for _, f := range found {
		if f {
			return nil
		}
	}
	return ErrNoMatch
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

// search writes the results for one input and reports whether it has a
// match. A line is reported once even if it holds several matches.
func search(w *bytes.Buffer, re *symregex.Regex, data []byte, label string, o options) bool {
	n := 0
	printedTo := 0 // offset just past the last reported line
	for m := range re.All(data) {
		if o.onlyMatching {
			if !o.count {
				fmt.Fprintf(w, "%s%d:%s\n", label, m.Index, data[m.Index:m.End()])
			}
			n++
			continue
		}
		if n > 0 && m.Index < printedTo {
			continue
		}
		start := bytes.LastIndexByte(data[:m.Index], '\n') + 1
		end := bytes.IndexByte(data[m.End()-1:], '\n')
		if end < 0 {
			end = len(data)
		} else {
			end += m.End() - 1
		}
		printedTo = end + 1
		n++
		if !o.count {
			fmt.Fprintf(w, "%s%s\n", label, data[start:end])
		}
	}
	if o.count {
		fmt.Fprintf(w, "%s%d\n", label, n)
	}
	return n > 0
}

func printStats(w io.Writer, re *symregex.Regex) {
	st := re.Stats()
	info := re.Info()
	fmt.Fprintf(w, "pattern:           %s\n", info.Pattern)
	fmt.Fprintf(w, "algebra:           %s (%d minterms)\n", info.Algebra, info.Minterms)
	fmt.Fprintf(w, "prefilter:         %s\n", info.Prefilter)
	fmt.Fprintf(w, "searches:          %d\n", st.Searches)
	fmt.Fprintf(w, "matches:           %d\n", st.Matches)
	fmt.Fprintf(w, "chars stepped:     %d\n", st.CharsStepped)
	fmt.Fprintf(w, "prefix skips:      %d\n", st.PrefixSkips)
	fmt.Fprintf(w, "candidate skips:   %d\n", st.CandidateSkips)
	fmt.Fprintf(w, "prefilter retired: %d\n", st.PrefilterRetired)
	fmt.Fprintf(w, "watchdog hits:     %d\n", st.WatchdogHits)
	fmt.Fprintf(w, "states:            %d\n", st.States)
	fmt.Fprintf(w, "transitions:       %d\n", st.Transitions)
}
