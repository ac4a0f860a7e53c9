package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"mython/internal/diag"
	"mython/internal/parser"
	"mython/internal/runtime"
)

// ---- ANSI colors ----

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorGray   = "\033[90m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// ---- repl command ----

func cmdRepl() {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".mython_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            colorGreen + "mython> " + colorReset,
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline init failed: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "%s%smython REPL%s %s(type 'exit' or Ctrl+D to quit)%s\n\n",
		colorBold, colorCyan, colorReset, colorGray, colorReset)

	interp := runtime.NewInterpreter(rl.Stdout())
	var accumulated strings.Builder

	// openBlocks tracks how many `class`/`def`/`if`/`else` headers are
	// still waiting for their indented body: a line ending in ':'
	// opens one, a blank line while any is open closes them all. This
	// stands in for lexer.indent_pos since the lexer itself closes
	// every open indent at end-of-input, so the raw indent balance of
	// a re-lexed buffer is always zero and can't signal "still typing
	// a block" on its own.
	openBlocks := 0

	for {
		if openBlocks > 0 {
			rl.SetPrompt(colorGray + "...     " + colorReset)
		} else {
			rl.SetPrompt(colorGreen + "mython> " + colorReset)
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if openBlocks > 0 {
					accumulated.Reset()
					openBlocks = 0
					continue
				}
				fmt.Fprintf(rl.Stdout(), "\n%s(use 'exit' or Ctrl+D to quit)%s\n", colorGray, colorReset)
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(rl.Stdout())
			}
			break
		}

		trimmed := strings.TrimSpace(line)
		if openBlocks == 0 && trimmed == "exit" {
			break
		}

		accumulated.WriteString(line)
		accumulated.WriteString("\n")

		if trimmed != "" && strings.HasSuffix(trimmed, ":") {
			openBlocks++
			continue
		}
		if openBlocks > 0 {
			if trimmed == "" {
				openBlocks = 0
			} else {
				continue
			}
		}

		source := accumulated.String()
		accumulated.Reset()
		if strings.TrimSpace(source) == "" {
			continue
		}

		file, diags := parser.ParseFile(source, "<repl>")
		if len(diags) > 0 {
			printDiagsColored(rl.Stderr(), diags)
		}
		if diag.HasErrors(diags) {
			continue
		}

		if err := interp.Run(file); err != nil {
			fmt.Fprintf(rl.Stderr(), "%serror: %s%s\n", colorRed, err, colorReset)
		}
	}
}

func printDiagsColored(w io.Writer, diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s%s%s\n", colorRed, d.String(), colorReset)
	}
}
