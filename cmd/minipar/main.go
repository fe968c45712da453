// Command minipar is the command-line driver for the minipar lexer,
// parser, semantic analyzer, TAC emitter, and evaluator.
package main

import (
	"fmt"
	"os"

	"github.com/minipar-lang/minipar/cmd/minipar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
