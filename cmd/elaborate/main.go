// Command elaborate drives the bidirectional elaborator from the
// command line: elaborate a term and report its type, reduce one to
// normal form, print its inferred type in normal form, echo back how it
// parsed, or explore
// interactively in a REPL.
package main

import (
	"fmt"
	"os"

	"github.com/elabkit/holecalc/cmd/elaborate/cmdroot"
)

func main() {
	if err := cmdroot.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
