// Command minotaur answers questions about a labyrinth of one-way doors:
// which routes lead from an entrance to an exit past the minotaur, and
// which of them a battery of a given charge can power.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
