package main

import (
	"encoding/json"
	"fmt"
	"os"

	"mython/internal/ast"
	"mython/internal/diag"
	"mython/internal/token"
)

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "error: JSON encoding failed: %v\n", err)
		os.Exit(1)
	}
}

func printDiagsText(diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.String())
	}
}

func diagsToSlice(diags []diag.Diagnostic) []map[string]interface{} {
	result := make([]map[string]interface{}, len(diags))
	for i, d := range diags {
		result[i] = map[string]interface{}{
			"code":     d.Code,
			"severity": d.Severity.String(),
			"message":  d.Message,
			"line":     d.Span.Start.Line,
			"column":   d.Span.Start.Column,
			"offset":   d.Span.Start.Offset,
		}
		if d.Hint != "" {
			result[i]["hint"] = d.Hint
		}
	}
	return result
}

// tokenLexeme renders a token's payload for display — the bare payload
// for NUMBER/ID/STRING/CHAR, `\n` for NEWLINE, and the kind name (e.g.
// Eq, Class, Indent) for every other token rather than its source
// spelling.
func tokenLexeme(tok token.Token) string {
	switch tok.Kind {
	case token.NEWLINE:
		return "\\n"
	case token.NUMBER:
		return fmt.Sprintf("%d", tok.Num)
	case token.ID, token.STRING:
		return tok.Str
	case token.CHAR:
		return string(tok.Ch)
	default:
		return tok.Kind.String()
	}
}

func printTokensText(tokens []token.Token, diags []diag.Diagnostic) {
	for _, tok := range tokens {
		fmt.Printf("%-12s %-20s %d:%d\n", tok.Kind, tokenLexeme(tok), tok.Span.Start.Line, tok.Span.Start.Column)
	}
	printDiagsText(diags)
}

func printTokensJSON(tokens []token.Token, diags []diag.Diagnostic) {
	type tokenJSON struct {
		Kind   string `json:"kind"`
		Lexeme string `json:"lexeme"`
		Line   int    `json:"line"`
		Column int    `json:"column"`
		Offset int    `json:"offset"`
	}

	toks := make([]tokenJSON, len(tokens))
	for i, tok := range tokens {
		toks[i] = tokenJSON{
			Kind:   tok.Kind.String(),
			Lexeme: tokenLexeme(tok),
			Line:   tok.Span.Start.Line,
			Column: tok.Span.Start.Column,
			Offset: tok.Span.Start.Offset,
		}
	}

	printJSON(map[string]interface{}{
		"tokens":      toks,
		"diagnostics": diagsToSlice(diags),
	})
}

func printParseJSON(file *ast.File, diags []diag.Diagnostic) {
	printJSON(map[string]interface{}{
		"ast":         ast.NodeToMap(file),
		"diagnostics": diagsToSlice(diags),
	})
}
