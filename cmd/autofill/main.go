// autofill suggests assistant design metadata with a language model and lets
// a person review it in a browser or a terminal.
//
// Usage:
//
//	autofill serve    [--addr=:8080] [--base-path=/tools]
//	autofill fill     [--name="header fixer"] [--export=markdown|json|yaml] [-o file]
//	autofill generate --name="header fixer" [--renderer=html|tui] [--format=json] [-o file]
//	autofill fields   [--json]
//	autofill version
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
