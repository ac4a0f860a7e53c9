// Package span locates lexer tokens, parser nodes, and diagnostics in
// mython source text.
package span

import "fmt"

// Position is one point in source text: a byte offset plus the
// 1-based line/column the lexer was tracking when it reached it.
type Position struct {
	Offset int `json:"offset"` // byte offset from beginning of source
	Line   int `json:"line"`   // 1-based line number
	Column int `json:"column"` // 1-based column number
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open source range [Start, End).
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

func (s Span) String() string {
	return fmt.Sprintf("%s..%s", s.Start, s.End)
}

// Len returns the byte length of the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// FromTo builds the span a parser rule covers: from the position
// where the rule started matching to the position the cursor has now
// reached. Composite ast.Node spans are built this way; literal and
// single-name nodes reuse their token's span directly.
func FromTo(start, end Position) Span {
	return Span{Start: start, End: end}
}
