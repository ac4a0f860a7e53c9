package lexer

import (
	"testing"

	"mython/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func assertKinds(t *testing.T, got []token.Token, want []token.Kind) {
	t.Helper()
	gk := kinds(got)
	if len(gk) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(gk), gk)
	}
	for i, exp := range want {
		if gk[i] != exp {
			t.Errorf("token[%d]: expected %s, got %s", i, exp, gk[i])
		}
	}
}

func TestTokenizeIndentation(t *testing.T) {
	// The canonical scenario: a one-statement if body.
	source := "if x:\n  print x\n"
	toks, diags := Tokenize(source, "test.myt")
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, toks, []token.Kind{
		token.IF, token.ID, token.CHAR, token.NEWLINE,
		token.INDENT, token.PRINT, token.ID, token.NEWLINE,
		token.DEDENT, token.EOF,
	})
}

func TestTokenizeDedentAtEof(t *testing.T) {
	source := "class A:\n  def m():\n    print 1\n"
	toks, diags := Tokenize(source, "test.myt")
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, toks, []token.Kind{
		token.CLASS, token.ID, token.CHAR, token.NEWLINE,
		token.INDENT, token.DEF, token.ID, token.CHAR, token.CHAR, token.CHAR, token.NEWLINE,
		token.INDENT, token.PRINT, token.NUMBER, token.NEWLINE,
		token.DEDENT, token.DEDENT, token.EOF,
	})
}

func TestTokenizeDedentMidProgram(t *testing.T) {
	source := "if x:\n  print 1\nprint 2\n"
	toks, diags := Tokenize(source, "test.myt")
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, toks, []token.Kind{
		token.IF, token.ID, token.CHAR, token.NEWLINE,
		token.INDENT, token.PRINT, token.NUMBER, token.NEWLINE,
		token.DEDENT, token.PRINT, token.NUMBER, token.NEWLINE,
		token.EOF,
	})
}

func TestTokenizeBlankAndCommentLinesIgnored(t *testing.T) {
	source := "print 1\n\n# a comment\nprint 2\n"
	toks, diags := Tokenize(source, "test.myt")
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, toks, []token.Kind{
		token.PRINT, token.NUMBER, token.NEWLINE,
		token.PRINT, token.NUMBER, token.NEWLINE,
		token.EOF,
	})
}

func TestTokenizeKeywords(t *testing.T) {
	source := "class return if else def print and or not None True False"
	toks, diags := Tokenize(source, "test.myt")
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, toks, []token.Kind{
		token.CLASS, token.RETURN, token.IF, token.ELSE, token.DEF, token.PRINT,
		token.AND, token.OR, token.NOT, token.NONE, token.TRUE, token.FALSE,
		token.NEWLINE, token.EOF,
	})
}

func TestTokenizeComparisonOperators(t *testing.T) {
	source := "a == b <= c\n"
	toks, diags := Tokenize(source, "test.myt")
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, toks, []token.Kind{
		token.ID, token.EQ, token.ID, token.LESS_OR_EQ, token.ID, token.NEWLINE, token.EOF,
	})
}

func TestTokenizeOtherOperatorsAsChar(t *testing.T) {
	source := "a < b > c != d\n"
	toks, diags := Tokenize(source, "test.myt")
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, toks, []token.Kind{
		token.ID, token.CHAR, token.ID, token.CHAR, token.ID, token.NOT_EQ, token.ID, token.NEWLINE, token.EOF,
	})
	if toks[1].Ch != '<' {
		t.Errorf("expected Char{<}, got %s", toks[1])
	}
	if toks[3].Ch != '>' {
		t.Errorf("expected Char{>}, got %s", toks[3])
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks, diags := Tokenize(`"a\tb\n"`+"\n", "test.myt")
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if toks[0].Kind != token.STRING || toks[0].Str != "a\tb\n" {
		t.Errorf("expected String{a\\tb\\n}, got %s", toks[0])
	}
}

func TestTokenizeUnknownEscapeIsError(t *testing.T) {
	_, diags := Tokenize(`"a\zb"`+"\n", "test.myt")
	if len(diags) != 1 || diags[0].Code != "E1002" {
		t.Fatalf("expected one E1002 diagnostic, got %v", diags)
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, diags := Tokenize(`"abc`, "test.myt")
	if len(diags) != 1 || diags[0].Code != "E1001" {
		t.Fatalf("expected one E1001 diagnostic, got %v", diags)
	}
}

func TestTokenizeNumber(t *testing.T) {
	toks, diags := Tokenize("123 0\n", "test.myt")
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if toks[0].Kind != token.NUMBER || toks[0].Num != 123 {
		t.Errorf("expected Number{123}, got %s", toks[0])
	}
	if toks[1].Kind != token.NUMBER || toks[1].Num != 0 {
		t.Errorf("expected Number{0}, got %s", toks[1])
	}
}

func TestTokenizeMalformedNumber(t *testing.T) {
	_, diags := Tokenize("123abc\n", "test.myt")
	if len(diags) != 1 || diags[0].Code != "E1004" {
		t.Fatalf("expected one E1004 diagnostic, got %v", diags)
	}
}

func TestTokenStringRendering(t *testing.T) {
	toks, _ := Tokenize("x", "test.myt")
	if toks[0].String() != "Id{x}" {
		t.Errorf("expected Id{x}, got %s", toks[0].String())
	}
}

func TestTokenizeEmptySourceIsJustEof(t *testing.T) {
	toks, diags := Tokenize("", "test.myt")
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	assertKinds(t, toks, []token.Kind{token.EOF})
}
