// Package token defines the token vocabulary produced by the lexer.
package token

import (
	"fmt"

	"mython/internal/span"
)

// Kind represents the type of a token.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF
	NEWLINE
	INDENT
	DEDENT

	// Payload-carrying variants.
	NUMBER // integer literal: 123
	ID     // identifier: x, foo, myVar
	STRING // string literal: "hello"
	CHAR   // a single unclassified character, e.g. '(' ')' ':' ','

	// Payload-free keyword variants.
	CLASS
	RETURN
	IF
	ELSE
	DEF
	PRINT
	AND
	OR
	NOT
	NONE
	TRUE
	FALSE

	// Two-character operators.
	EQ            // ==
	NOT_EQ        // !=
	LESS_OR_EQ    // <=
	GREATER_OR_EQ // >=
)

var kindNames = map[Kind]string{
	ILLEGAL: "Illegal",
	EOF:     "Eof",
	NEWLINE: "Newline",
	INDENT:  "Indent",
	DEDENT:  "Dedent",

	NUMBER: "Number",
	ID:     "Id",
	STRING: "String",
	CHAR:   "Char",

	CLASS:  "Class",
	RETURN: "Return",
	IF:     "If",
	ELSE:   "Else",
	DEF:    "Def",
	PRINT:  "Print",
	AND:    "And",
	OR:     "Or",
	NOT:    "Not",
	NONE:   "None",
	TRUE:   "True",
	FALSE:  "False",

	EQ:            "Eq",
	NOT_EQ:        "NotEq",
	LESS_OR_EQ:    "LessOrEq",
	GREATER_OR_EQ: "GreaterOrEq",
}

// String returns the kind's bare name, as used in debug rendering.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// keywords maps reserved words to their token kind.
var keywords = map[string]Kind{
	"class":  CLASS,
	"return": RETURN,
	"if":     IF,
	"else":   ELSE,
	"def":    DEF,
	"print":  PRINT,
	"and":    AND,
	"or":     OR,
	"not":    NOT,
	"None":   NONE,
	"True":   TRUE,
	"False":  FALSE,
}

// LookupIdent returns the keyword Kind for name, or ID if it is not reserved.
func LookupIdent(name string) Kind {
	if kind, ok := keywords[name]; ok {
		return kind
	}
	return ID
}

// Token is a tagged variant: Kind selects which payload field, if any,
// is meaningful (Num for NUMBER, Str for ID/STRING, Ch for CHAR).
type Token struct {
	Kind Kind
	Num  int
	Str  string
	Ch   byte
	Span span.Span
}

// Equal compares tag, then payload where present.
func (t Token) Equal(other Token) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case NUMBER:
		return t.Num == other.Num
	case ID, STRING:
		return t.Str == other.Str
	case CHAR:
		return t.Ch == other.Ch
	default:
		return true
	}
}

// String renders the token for debugging: "Name{value}" for payload
// variants, plain "Name" otherwise, "Char{c}" for a single character.
func (t Token) String() string {
	switch t.Kind {
	case NUMBER:
		return fmt.Sprintf("Number{%d}", t.Num)
	case ID:
		return fmt.Sprintf("Id{%s}", t.Str)
	case STRING:
		return fmt.Sprintf("String{%s}", t.Str)
	case CHAR:
		return fmt.Sprintf("Char{%c}", t.Ch)
	default:
		return t.Kind.String()
	}
}
