// Package parser builds an AST from the lexer's token stream.
package parser

import (
	"mython/internal/ast"
	"mython/internal/diag"
	"mython/internal/lexer"
	"mython/internal/span"
	"mython/internal/token"
)

// Parser consumes a lexer's token cursor and produces an *ast.File,
// recovering from malformed constructs by resynchronizing at the next
// Newline or Dedent rather than aborting outright.
type Parser struct {
	lex   *lexer.Lexer
	diags []diag.Diagnostic
}

// New creates a Parser reading tokens from lex.
func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex}
}

// ParseFile parses an entire program and returns the AST root along
// with every diagnostic collected by the lexer and the parser. A
// non-empty diagnostics slice means the tree may be partial.
func ParseFile(source, filename string) (*ast.File, []diag.Diagnostic) {
	p := New(lexer.New(source, filename))
	file := p.parseFile()
	p.diags = append(p.diags, p.lex.Diagnostics()...)
	return file, p.diags
}

// ---- cursor helpers ----

func (p *Parser) cur() token.Token {
	return p.lex.Current()
}

func (p *Parser) advance() token.Token {
	t := p.lex.Current()
	p.lex.Next()
	return t
}

func (p *Parser) check(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) checkChar(ch byte) bool {
	t := p.cur()
	return t.Kind == token.CHAR && t.Ch == ch
}

func (p *Parser) isAtEnd() bool {
	return p.check(token.EOF)
}

func (p *Parser) errorf(code string, s span.Span, msg string) {
	p.diags = append(p.diags, diag.Errorf(code, s, "%s", msg))
}

// expect consumes the current token if it has kind, else records a
// diagnostic and leaves the cursor in place for synchronize to handle.
func (p *Parser) expect(kind token.Kind) (token.Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	t := p.cur()
	p.errorf("E2001", t.Span, "expected "+kind.String()+", found "+t.String())
	return t, false
}

func (p *Parser) expectChar(ch byte) (token.Token, bool) {
	if p.checkChar(ch) {
		return p.advance(), true
	}
	t := p.cur()
	p.errorf("E2001", t.Span, "expected '"+string(ch)+"', found "+t.String())
	return t, false
}

// expectLineEnd consumes a trailing Newline, tolerating Eof/Dedent
// (the last line of a file or block needs no explicit terminator).
func (p *Parser) expectLineEnd() {
	if p.check(token.NEWLINE) {
		p.advance()
		return
	}
	if p.isAtEnd() || p.check(token.DEDENT) {
		return
	}
	t := p.cur()
	p.errorf("E2004", t.Span, "expected end of line, found "+t.String())
	p.synchronize()
}

// synchronize discards tokens until the start of the next statement,
// so one malformed construct doesn't cascade into unrelated errors.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.check(token.NEWLINE) {
			p.advance()
			return
		}
		if p.check(token.DEDENT) {
			return
		}
		p.advance()
	}
}

func (p *Parser) skipNewlines() {
	for p.check(token.NEWLINE) {
		p.advance()
	}
}

// ---- top level ----

func (p *Parser) parseFile() *ast.File {
	start := p.cur().Span.Start
	file := &ast.File{}
	p.skipNewlines()
	for !p.isAtEnd() {
		file.Body = append(file.Body, p.parseTopLevel())
		p.skipNewlines()
	}
	file.Span = span.FromTo(start, p.cur().Span.End)
	return file
}

func (p *Parser) parseTopLevel() ast.Node {
	if p.check(token.CLASS) {
		return p.parseClassDecl()
	}
	return p.parseStmt()
}

func (p *Parser) parseClassDecl() *ast.ClassDecl {
	start := p.advance().Span.Start // 'class'
	decl := &ast.ClassDecl{}
	if nameTok, ok := p.expect(token.ID); ok {
		decl.Name = nameTok.Str
	} else {
		p.synchronize()
		decl.NodeBase = ast.NodeBase{Span: span.FromTo(start, p.cur().Span.End)}
		return decl
	}

	if p.checkChar('(') {
		p.advance()
		if parentTok, ok := p.expect(token.ID); ok {
			decl.Parent = parentTok.Str
		}
		p.expectChar(')')
	}

	p.expectChar(':')
	p.expect(token.NEWLINE)
	p.expect(token.INDENT)

	for !p.check(token.DEDENT) && !p.isAtEnd() {
		if p.check(token.DEF) {
			decl.Methods = append(decl.Methods, p.parseMethodDecl())
		} else {
			t := p.cur()
			p.errorf("E2002", t.Span, "expected a method definition, found "+t.String())
			p.synchronize()
		}
		p.skipNewlines()
	}
	p.expect(token.DEDENT)

	decl.NodeBase = ast.NodeBase{Span: span.FromTo(start, p.cur().Span.End)}
	return decl
}

func (p *Parser) parseMethodDecl() *ast.MethodDecl {
	start := p.advance().Span.Start // 'def'
	decl := &ast.MethodDecl{}
	if nameTok, ok := p.expect(token.ID); ok {
		decl.Name = nameTok.Str
	}
	decl.Params = p.parseParamNames()
	p.expectChar(':')
	decl.Body = p.parseMethodBody()
	decl.NodeBase = ast.NodeBase{Span: span.FromTo(start, p.cur().Span.End)}
	return decl
}

func (p *Parser) parseParamNames() []string {
	p.expectChar('(')
	var names []string
	if !p.checkChar(')') {
		if tok, ok := p.expect(token.ID); ok {
			names = append(names, tok.Str)
		}
		for p.checkChar(',') {
			p.advance()
			if tok, ok := p.expect(token.ID); ok {
				names = append(names, tok.Str)
			}
		}
	}
	p.expectChar(')')
	return names
}

// parseMethodBody parses the NEWLINE INDENT {Stmt} DEDENT that follows
// a method header's ':', wrapping the statements as the unique Return
// catch point for the method.
func (p *Parser) parseMethodBody() *ast.MethodBody {
	start := p.cur().Span.Start
	body := p.parseBlock()
	return &ast.MethodBody{
		StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Span: span.FromTo(start, p.cur().Span.End)}},
		Body:     body,
	}
}

// parseBlock parses NEWLINE INDENT {Stmt} DEDENT into a Compound —
// the body of a class method, an if-branch, or an else-branch.
func (p *Parser) parseBlock() ast.Stmt {
	start := p.cur().Span.Start
	p.expect(token.NEWLINE)
	p.expect(token.INDENT)

	var stmts []ast.Stmt
	for !p.check(token.DEDENT) && !p.isAtEnd() {
		stmts = append(stmts, p.parseStmt())
		p.skipNewlines()
	}
	p.expect(token.DEDENT)

	return &ast.Compound{
		StmtBase:   ast.StmtBase{NodeBase: ast.NodeBase{Span: span.FromTo(start, p.cur().Span.End)}},
		Statements: stmts,
	}
}

// ---- statements ----

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur().Kind {
	case token.IF:
		return p.parseIfElse()
	case token.RETURN:
		s := p.parseReturn()
		p.expectLineEnd()
		return s
	case token.PRINT:
		s := p.parsePrint()
		p.expectLineEnd()
		return s
	default:
		s := p.parseAssignOrExprStmt()
		p.expectLineEnd()
		return s
	}
}

func (p *Parser) parseIfElse() ast.Stmt {
	start := p.advance().Span.Start // 'if'
	cond := p.parseExpr(bpNone)
	p.expectChar(':')
	ifBranch := p.parseBlock()

	stmt := &ast.IfElse{Condition: cond, IfBranch: ifBranch}
	if p.check(token.ELSE) {
		p.advance()
		p.expectChar(':')
		stmt.ElseBranch = p.parseBlock()
	}
	stmt.NodeBase = ast.NodeBase{Span: span.FromTo(start, p.cur().Span.End)}
	return stmt
}

func (p *Parser) parseReturn() ast.Stmt {
	start := p.advance().Span.Start // 'return'
	var value ast.Expr
	if p.atExprStart() {
		value = p.parseExpr(bpNone)
	} else {
		t := p.cur()
		p.errorf("E2007", t.Span, "return requires a value")
		value = &ast.NoneConst{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Span: t.Span}}}
	}
	return &ast.Return{
		StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Span: span.FromTo(start, p.cur().Span.End)}},
		Value:    value,
	}
}

func (p *Parser) parsePrint() ast.Stmt {
	start := p.advance().Span.Start // 'print'
	var args []ast.Expr
	if p.atExprStart() {
		args = append(args, p.parseExpr(bpNone))
		for p.checkChar(',') {
			p.advance()
			args = append(args, p.parseExpr(bpNone))
		}
	}
	return &ast.Print{
		StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Span: span.FromTo(start, p.cur().Span.End)}},
		Args:     args,
	}
}

// atExprStart reports whether the current token can begin an
// expression — used to tell "print" / "return" with no argument
// apart from one with an argument, without committing to a parse.
func (p *Parser) atExprStart() bool {
	switch p.cur().Kind {
	case token.NEWLINE, token.DEDENT, token.EOF:
		return false
	}
	return true
}

// parseAssignOrExprStmt parses a line starting with an expression: an
// Assignment/FieldAssignment if '=' follows, else a bare MethodCall
// used as a statement.
func (p *Parser) parseAssignOrExprStmt() ast.Stmt {
	start := p.cur().Span.Start
	expr := p.parseExpr(bpNone)

	if p.checkChar('=') {
		p.advance()
		value := p.parseExpr(bpNone)
		switch target := expr.(type) {
		case *ast.VariableValue:
			if len(target.Path) == 1 {
				return &ast.Assignment{
					StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Span: span.FromTo(start, p.cur().Span.End)}},
					Name:     target.Path[0],
					Value:    value,
				}
			}
			object := &ast.VariableValue{
				ExprBase: target.ExprBase,
				Path:     target.Path[:len(target.Path)-1],
			}
			return &ast.FieldAssignment{
				StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Span: span.FromTo(start, p.cur().Span.End)}},
				Object:   object,
				Field:    target.Path[len(target.Path)-1],
				Value:    value,
			}
		default:
			t := p.cur()
			p.errorf("E2008", t.Span, "left-hand side of assignment must be a name or field path")
			return &ast.ExprStmt{
				StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Span: span.FromTo(start, p.cur().Span.End)}},
				X:        expr,
			}
		}
	}

	return &ast.ExprStmt{
		StmtBase: ast.StmtBase{NodeBase: ast.NodeBase{Span: span.FromTo(start, p.cur().Span.End)}},
		X:        expr,
	}
}

// ---- expressions: Pratt parsing with named binding powers ----

type bindingPower int

const (
	bpNone bindingPower = iota
	bpOr
	bpAnd
	bpEquality
	bpComparison
	bpAdditive
	bpMultiply
	bpPostfix
)

func (p *Parser) parseExpr(min bindingPower) ast.Expr {
	left := p.parseUnary()
	for {
		bp, ok := p.infixBP()
		if !ok || bp < min {
			return left
		}
		left = p.parseInfix(left, bp)
	}
}

// infixBP reports the binding power of the current token as an infix
// operator, if it is one.
func (p *Parser) infixBP() (bindingPower, bool) {
	switch p.cur().Kind {
	case token.OR:
		return bpOr, true
	case token.AND:
		return bpAnd, true
	case token.EQ, token.NOT_EQ:
		return bpEquality, true
	case token.LESS_OR_EQ, token.GREATER_OR_EQ:
		return bpComparison, true
	case token.CHAR:
		switch p.cur().Ch {
		case '<', '>':
			return bpComparison, true
		case '+', '-':
			return bpAdditive, true
		case '*', '/':
			return bpMultiply, true
		}
	}
	return bpNone, false
}

func (p *Parser) parseInfix(left ast.Expr, bp bindingPower) ast.Expr {
	start := left.GetSpan().Start
	opTok := p.advance()

	switch bp {
	case bpOr:
		rhs := p.parseExpr(bpOr + 1)
		return &ast.Or{ExprBase: spanFrom(start, p), Lhs: left, Rhs: rhs}
	case bpAnd:
		rhs := p.parseExpr(bpAnd + 1)
		return &ast.And{ExprBase: spanFrom(start, p), Lhs: left, Rhs: rhs}
	case bpEquality, bpComparison:
		cmp := comparatorOf(opTok)
		rhs := p.parseExpr(bp + 1)
		return &ast.Comparison{ExprBase: spanFrom(start, p), Op: cmp, Lhs: left, Rhs: rhs}
	default: // bpAdditive, bpMultiply
		op := arithOf(opTok)
		rhs := p.parseExpr(bp + 1)
		return &ast.BinaryArith{ExprBase: spanFrom(start, p), Op: op, Lhs: left, Rhs: rhs}
	}
}

func spanFrom(start span.Position, p *Parser) ast.ExprBase {
	return ast.ExprBase{NodeBase: ast.NodeBase{Span: span.FromTo(start, p.cur().Span.End)}}
}

func comparatorOf(t token.Token) ast.Comparator {
	switch t.Kind {
	case token.EQ:
		return ast.CmpEqual
	case token.NOT_EQ:
		return ast.CmpNotEqual
	case token.LESS_OR_EQ:
		return ast.CmpLessOrEqual
	case token.GREATER_OR_EQ:
		return ast.CmpGreaterOrEqual
	case token.CHAR:
		if t.Ch == '<' {
			return ast.CmpLess
		}
		return ast.CmpGreater
	}
	return ast.CmpEqual
}

func arithOf(t token.Token) ast.Arith {
	switch t.Ch {
	case '+':
		return ast.ArithAdd
	case '-':
		return ast.ArithSub
	case '*':
		return ast.ArithMult
	default:
		return ast.ArithDiv
	}
}

// parseUnary handles the `not` prefix operator, then falls through to
// postfix/primary parsing.
func (p *Parser) parseUnary() ast.Expr {
	if p.check(token.NOT) {
		start := p.advance().Span.Start
		arg := p.parseUnary()
		return &ast.Not{ExprBase: spanFrom(start, p), Arg: arg}
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by zero or more
// '.' suffixes: 'name(' as a MethodCall, plain 'name' as another
// segment of a dotted VariableValue path.
func (p *Parser) parsePostfix() ast.Expr {
	base := p.parsePrimary()
	for p.checkChar('.') {
		start := base.GetSpan().Start
		p.advance()
		nameTok, ok := p.expect(token.ID)
		if !ok {
			break
		}
		if p.checkChar('(') {
			args := p.parseArgList()
			base = &ast.MethodCall{ExprBase: spanFrom(start, p), Object: base, Method: nameTok.Str, Args: args}
			continue
		}
		vv, ok := base.(*ast.VariableValue)
		if !ok {
			p.errorf("E2005", nameTok.Span, "field access is only valid on a variable path")
			break
		}
		vv.Path = append(vv.Path, nameTok.Str)
		vv.ExprBase = spanFrom(start, p)
		base = vv
	}
	return base
}

func (p *Parser) parseArgList() []ast.Expr {
	p.expectChar('(')
	var args []ast.Expr
	if !p.checkChar(')') {
		args = append(args, p.parseExpr(bpNone))
		for p.checkChar(',') {
			p.advance()
			args = append(args, p.parseExpr(bpNone))
		}
	}
	p.expectChar(')')
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	t := p.cur()

	switch t.Kind {
	case token.NUMBER:
		p.advance()
		return &ast.NumericConst{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Span: t.Span}}, Value: t.Num}
	case token.STRING:
		p.advance()
		return &ast.StringConst{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Span: t.Span}}, Value: t.Str}
	case token.TRUE:
		p.advance()
		return &ast.BoolConst{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Span: t.Span}}, Value: true}
	case token.FALSE:
		p.advance()
		return &ast.BoolConst{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Span: t.Span}}, Value: false}
	case token.NONE:
		p.advance()
		return &ast.NoneConst{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Span: t.Span}}}
	case token.ID:
		return p.parseIdentOrCall(t)
	case token.CHAR:
		if t.Ch == '(' {
			p.advance()
			e := p.parseExpr(bpNone)
			p.expectChar(')')
			return e
		}
	}

	p.errorf("E2009", t.Span, "expected an expression, found "+t.String())
	p.advance()
	return &ast.NoneConst{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Span: t.Span}}}
}

// parseIdentOrCall distinguishes `str(arg)` (Stringify, the one
// reserved pseudo-builtin in an otherwise methodless call grammar),
// `Name(args)` (NewInstance — the only call-like syntax on a bare
// name, since this language has no free functions), and a plain
// variable reference.
func (p *Parser) parseIdentOrCall(t token.Token) ast.Expr {
	p.advance()
	if !p.checkChar('(') {
		return &ast.VariableValue{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Span: t.Span}}, Path: []string{t.Str}}
	}

	args := p.parseArgList()
	if t.Str == "str" {
		if len(args) != 1 {
			p.errorf("E2006", t.Span, "str() takes exactly one argument")
		}
		var arg ast.Expr = &ast.NoneConst{ExprBase: ast.ExprBase{NodeBase: ast.NodeBase{Span: t.Span}}}
		if len(args) > 0 {
			arg = args[0]
		}
		return &ast.Stringify{ExprBase: spanFrom(t.Span.Start, p), Arg: arg}
	}
	return &ast.NewInstance{ExprBase: spanFrom(t.Span.Start, p), ClassName: t.Str, Args: args}
}
