// symgrep searches files for a symregex pattern.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/coregx/symregex/cmd/symgrep/cli"
)

func main() {
	if err := cli.New().Execute(); err != nil {
		if errors.Is(err, cli.ErrNoMatch) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "symgrep:", err)
		os.Exit(2)
	}
}
