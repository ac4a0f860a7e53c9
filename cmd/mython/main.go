// Command mython is the CLI entry point for the mython toolchain.
//
// Usage:
//
//	mython tokens  <file>          Print the token stream
//	mython tokens  <file> --json   Print the token stream as JSON
//	mython parse   <file>          Print the AST as JSON
//	mython run     <file>          Run a source file
//	mython repl                    Start an interactive REPL
//	mython inspect <file>          Step through tokens/AST in a TUI
package main

import (
	"fmt"
	"os"

	"mython/internal/diag"
	"mython/internal/lexer"
	"mython/internal/parser"
	"mython/internal/runtime"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch command := os.Args[1]; command {
	case "tokens":
		requireFile(2)
		cmdTokens(readFile(os.Args[2]), os.Args[2], hasFlag("--json"))
	case "parse":
		requireFile(2)
		cmdParse(readFile(os.Args[2]), os.Args[2])
	case "run":
		requireFile(2)
		cmdRun(readFile(os.Args[2]), os.Args[2])
	case "repl":
		cmdRepl()
	case "inspect":
		requireFile(2)
		cmdInspect(readFile(os.Args[2]), os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", command)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  mython tokens  <file> [--json]   Tokenize and print tokens")
	fmt.Fprintln(os.Stderr, "  mython parse   <file>            Parse and print AST (JSON)")
	fmt.Fprintln(os.Stderr, "  mython run     <file>            Run a source file")
	fmt.Fprintln(os.Stderr, "  mython repl                       Start interactive REPL")
	fmt.Fprintln(os.Stderr, "  mython inspect <file>             Step through tokens/AST in a TUI")
}

func requireFile(argIndex int) {
	if len(os.Args) <= argIndex {
		fmt.Fprintln(os.Stderr, "error: missing file argument")
		os.Exit(1)
	}
}

func readFile(filename string) string {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: cannot read file %s: %v\n", filename, err)
		os.Exit(1)
	}
	return string(source)
}

func hasFlag(flag string) bool {
	for _, arg := range os.Args[3:] {
		if arg == flag {
			return true
		}
	}
	return false
}

// ---- tokens command ----

func cmdTokens(source, filename string, jsonMode bool) {
	tokens, diags := lexer.Tokenize(source, filename)

	if jsonMode {
		printTokensJSON(tokens, diags)
	} else {
		printTokensText(tokens, diags)
	}

	if diag.HasErrors(diags) {
		os.Exit(1)
	}
}

// ---- parse command ----

func cmdParse(source, filename string) {
	file, diags := parser.ParseFile(source, filename)
	printParseJSON(file, diags)

	if diag.HasErrors(diags) {
		os.Exit(1)
	}
}

// ---- run command ----

func cmdRun(source, filename string) {
	file, diags := parser.ParseFile(source, filename)
	if len(diags) > 0 {
		printDiagsText(diags)
	}
	if diag.HasErrors(diags) {
		os.Exit(1)
	}

	interp := runtime.NewInterpreter(os.Stdout)
	if err := interp.Run(file); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
