// Command anchorize is the workspace CLI: compile one source file,
// build every subproject's generated Rust and invoke the downstream
// framework's build command, sync program ids from a workspace
// manifest, or watch that manifest for changes. Grounded on
// chazu-procyon's cmd/procyon (the single-compile flag-parsing
// entrypoint) and CWBudde-go-dws's cmd/dwscript (the cobra verb-tree
// layout this command follows instead).
package main

import (
	"fmt"
	"os"

	"github.com/anchorize/anchorize/cmd/anchorize/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
