// Package main provides the genui CLI.
//
// Usage:
//
//	genui [flags] <command> [args]
//
// Commands:
//
//	replay  - Replay a markup document as a simulated token stream
//	chat    - Chat with a model and render its answers as UI trees
//
// Configuration:
//
//	Flags fall back to GENUI_* environment variables, see 'genui --help'.
package main

import (
	"fmt"
	"os"

	"github.com/rickchristie/genui/cmd/genui/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
