// Package parser implements the Mini-PL LL(1) recursive-descent parser:
// a struct holding the lexer plus current/peek tokens and an attached
// error collector, expressing operator precedence through an explicit
// chain of tail productions rather than a Pratt/precedence-climbing
// parser, with panic-mode statement recovery on syntax errors.
package parser

import (
	"strconv"

	"github.com/minipl-lang/minipl/internal/ast"
	"github.com/minipl-lang/minipl/internal/diag"
	"github.com/minipl-lang/minipl/internal/scanner"
	"github.com/minipl-lang/minipl/internal/token"
)

// Parser consumes tokens from a Scanner on demand and produces the
// top-level statement sequence.
type Parser struct {
	lex    *scanner.Scanner
	curr   token.Token
	peek   token.Token
	report diag.Reporter
}

// New creates a Parser over src.
func New(src string) *Parser {
	p := &Parser{lex: scanner.New(src)}
	p.curr = p.lex.Next()
	p.peek = p.lex.Next()
	return p
}

// HasErrors reports whether any syntax diagnostic was recorded.
func (p *Parser) HasErrors() bool { return p.report.HasErrors() }

// Diagnostics returns every syntax diagnostic recorded during parsing.
func (p *Parser) Diagnostics() []diag.Diagnostic { return p.report.Diagnostics() }

// Parse consumes the entire token stream and returns the parsed
// statement sequence. It always returns the statements it managed to
// build, even when HasErrors is true afterward.
func (p *Parser) Parse() *ast.Program {
	prog := &ast.Program{}
	for p.curr.Kind != token.Eof {
		stmt, ok := p.statement()
		if ok {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

func (p *Parser) advance() {
	p.curr = p.peek
	p.peek = p.lex.Next()
}

// match consumes curr if it has the expected kind, reporting a syntax
// error and leaving curr untouched otherwise.
func (p *Parser) match(kind token.Kind) (token.Token, bool) {
	if p.curr.Kind == kind {
		tok := p.curr
		p.advance()
		return tok, true
	}
	p.reportUnexpected()
	return token.Token{}, false
}

// reportUnexpected emits one diagnostic for the current token: a
// scanner Error token's own message, an "unexpected end of file"
// message at Eof, or a generic message otherwise.
func (p *Parser) reportUnexpected() {
	switch p.curr.Kind {
	case token.Error:
		p.report.Report(diag.New(diag.Lexical, p.curr.Pos, "%s", p.curr.Lexeme))
	case token.Eof:
		p.report.Report(diag.New(diag.Syntax, p.curr.Pos, "unexpected end of file"))
	default:
		p.report.Report(diag.New(diag.Syntax, p.curr.Pos, "invalid syntax"))
	}
}

// recover advances tokens until a StatementEnd or Eof, implementing
// panic-mode resynchronization. The offending statement contributes no
// node to the output.
func (p *Parser) recover() {
	for p.curr.Kind != token.StatementEnd && p.curr.Kind != token.Eof {
		p.advance()
	}
	if p.curr.Kind == token.StatementEnd {
		p.advance()
	}
}

// statement parses one top-level or for-body statement. On failure it
// reports a diagnostic, resynchronizes to the next ';', and returns
// ok=false so the caller omits this statement from the AST.
func (p *Parser) statement() (ast.Node, bool) {
	switch p.curr.Kind {
	case token.KeywordVar:
		return p.varDecl()
	case token.Identifier:
		return p.assignment()
	case token.KeywordFor:
		return p.forLoop()
	case token.KeywordRead:
		return p.readStmt()
	case token.KeywordPrint:
		return p.printStmt()
	case token.KeywordAssert:
		return p.assertStmt()
	default:
		p.reportUnexpected()
		p.recover()
		return nil, false
	}
}

func (p *Parser) varDecl() (ast.Node, bool) {
	kwPos := p.curr.Pos
	p.advance() // 'var'

	nameTok, ok := p.match(token.Identifier)
	if !ok {
		p.recover()
		return nil, false
	}
	if _, ok := p.match(token.Separator); !ok {
		p.recover()
		return nil, false
	}
	typ, ok := p.typeName()
	if !ok {
		p.recover()
		return nil, false
	}

	variable := &ast.Variable{Position: nameTok.Pos, Name: nameTok.Lexeme, DeclaredType: typ}

	var rhs ast.Node
	if p.curr.Kind == token.Assignment {
		p.advance()
		rhs, ok = p.expr()
		if !ok {
			p.recover()
			return nil, false
		}
	}

	if _, ok := p.match(token.StatementEnd); !ok {
		p.recover()
		return nil, false
	}
	return &ast.Expression{Position: kwPos, Op: ast.Init, Left: variable, Right: rhs}, true
}

func (p *Parser) typeName() (string, bool) {
	switch p.curr.Kind {
	case token.TypeInt:
		p.advance()
		return "int", true
	case token.TypeString:
		p.advance()
		return "string", true
	case token.TypeBool:
		p.advance()
		return "bool", true
	default:
		p.reportUnexpected()
		return "", false
	}
}

func (p *Parser) assignment() (ast.Node, bool) {
	nameTok := p.curr
	p.advance()
	assignTok, ok := p.match(token.Assignment)
	if !ok {
		p.recover()
		return nil, false
	}
	rhs, ok := p.expr()
	if !ok {
		p.recover()
		return nil, false
	}
	if _, ok := p.match(token.StatementEnd); !ok {
		p.recover()
		return nil, false
	}
	variable := &ast.Variable{Position: nameTok.Pos, Name: nameTok.Lexeme}
	return &ast.Expression{Position: assignTok.Pos, Op: ast.Assign, Left: variable, Right: rhs}, true
}

func (p *Parser) forLoop() (ast.Node, bool) {
	forPos := p.curr.Pos
	p.advance() // 'for'

	nameTok, ok := p.match(token.Identifier)
	if !ok {
		p.recover()
		return nil, false
	}
	if _, ok := p.match(token.KeywordIn); !ok {
		p.recover()
		return nil, false
	}
	start, ok := p.expr()
	if !ok {
		p.recover()
		return nil, false
	}
	if _, ok := p.match(token.Range); !ok {
		p.recover()
		return nil, false
	}
	end, ok := p.expr()
	if !ok {
		p.recover()
		return nil, false
	}
	if _, ok := p.match(token.KeywordDo); !ok {
		p.recover()
		return nil, false
	}

	var body []ast.Node
	for p.curr.Kind != token.KeywordEnd && p.curr.Kind != token.Eof {
		stmt, ok := p.statement()
		if ok {
			body = append(body, stmt)
		}
	}
	if _, ok := p.match(token.KeywordEnd); !ok {
		p.recover()
		return nil, false
	}
	if _, ok := p.match(token.KeywordFor); !ok {
		p.recover()
		return nil, false
	}
	if _, ok := p.match(token.StatementEnd); !ok {
		p.recover()
		return nil, false
	}

	return &ast.ForLoop{
		Position: forPos,
		Iterator: &ast.Variable{Position: nameTok.Pos, Name: nameTok.Lexeme},
		Start:    start,
		End:      end,
		Body:     body,
	}, true
}

func (p *Parser) readStmt() (ast.Node, bool) {
	kwPos := p.curr.Pos
	p.advance() // 'read'
	nameTok, ok := p.match(token.Identifier)
	if !ok {
		p.recover()
		return nil, false
	}
	if _, ok := p.match(token.StatementEnd); !ok {
		p.recover()
		return nil, false
	}
	variable := &ast.Variable{Position: nameTok.Pos, Name: nameTok.Lexeme}
	return &ast.Function{Position: kwPos, Name: "read", Parameter: variable}, true
}

func (p *Parser) printStmt() (ast.Node, bool) {
	kwPos := p.curr.Pos
	p.advance() // 'print'
	arg, ok := p.expr()
	if !ok {
		p.recover()
		return nil, false
	}
	if _, ok := p.match(token.StatementEnd); !ok {
		p.recover()
		return nil, false
	}
	return &ast.Function{Position: kwPos, Name: "print", Parameter: arg}, true
}

func (p *Parser) assertStmt() (ast.Node, bool) {
	kwPos := p.curr.Pos
	p.advance() // 'assert'
	if _, ok := p.match(token.OpenParen); !ok {
		p.recover()
		return nil, false
	}
	arg, ok := p.expr()
	if !ok {
		p.recover()
		return nil, false
	}
	if _, ok := p.match(token.CloseParen); !ok {
		p.recover()
		return nil, false
	}
	if _, ok := p.match(token.StatementEnd); !ok {
		p.recover()
		return nil, false
	}
	return &ast.Function{Position: kwPos, Name: "assert", Parameter: arg}, true
}

// expr and its tail productions implement the precedence chain from
// lowest to highest: & , = , < , +/- , */ , unary !.
func (p *Parser) expr() (ast.Node, bool) {
	return p.andExpr()
}

func (p *Parser) andExpr() (ast.Node, bool) {
	left, ok := p.eqExpr()
	if !ok {
		return nil, false
	}
	for p.curr.Kind == token.And {
		opPos := p.curr.Pos
		p.advance()
		right, ok := p.eqExpr()
		if !ok {
			return nil, false
		}
		left = &ast.Expression{Position: opPos, Op: ast.LogicalAnd, Left: left, Right: right}
	}
	return left, true
}

func (p *Parser) eqExpr() (ast.Node, bool) {
	left, ok := p.cmpExpr()
	if !ok {
		return nil, false
	}
	for p.curr.Kind == token.Equals {
		opPos := p.curr.Pos
		p.advance()
		right, ok := p.cmpExpr()
		if !ok {
			return nil, false
		}
		left = &ast.Expression{Position: opPos, Op: ast.Equality, Left: left, Right: right}
	}
	return left, true
}

func (p *Parser) cmpExpr() (ast.Node, bool) {
	left, ok := p.term()
	if !ok {
		return nil, false
	}
	for p.curr.Kind == token.LessThan {
		opPos := p.curr.Pos
		p.advance()
		right, ok := p.term()
		if !ok {
			return nil, false
		}
		left = &ast.Expression{Position: opPos, Op: ast.LessThan, Left: left, Right: right}
	}
	return left, true
}

func (p *Parser) term() (ast.Node, bool) {
	left, ok := p.factor()
	if !ok {
		return nil, false
	}
	for p.curr.Kind == token.Add || p.curr.Kind == token.Minus {
		op := ast.Add
		if p.curr.Kind == token.Minus {
			op = ast.Minus
		}
		opPos := p.curr.Pos
		p.advance()
		right, ok := p.factor()
		if !ok {
			return nil, false
		}
		left = &ast.Expression{Position: opPos, Op: op, Left: left, Right: right}
	}
	return left, true
}

func (p *Parser) factor() (ast.Node, bool) {
	left, ok := p.unary()
	if !ok {
		return nil, false
	}
	for p.curr.Kind == token.Multiply || p.curr.Kind == token.Divide {
		op := ast.Multiply
		if p.curr.Kind == token.Divide {
			op = ast.Divide
		}
		opPos := p.curr.Pos
		p.advance()
		right, ok := p.unary()
		if !ok {
			return nil, false
		}
		left = &ast.Expression{Position: opPos, Op: op, Left: left, Right: right}
	}
	return left, true
}

// unary treats '!' as a prefix operator, applying recursively so that
// "!!x" negates twice.
func (p *Parser) unary() (ast.Node, bool) {
	if p.curr.Kind == token.Not {
		notPos := p.curr.Pos
		p.advance()
		child, ok := p.unary()
		if !ok {
			return nil, false
		}
		return &ast.Not{Position: notPos, Child: child}, true
	}
	return p.primary()
}

func (p *Parser) primary() (ast.Node, bool) {
	switch p.curr.Kind {
	case token.Identifier:
		tok := p.curr
		p.advance()
		return &ast.Variable{Position: tok.Pos, Name: tok.Lexeme}, true
	case token.ValInteger:
		tok := p.curr
		p.advance()
		if _, err := strconv.ParseInt(tok.Lexeme, 10, 64); err != nil {
			p.report.Report(diag.New(diag.Syntax, tok.Pos, "malformed integer literal %q", tok.Lexeme))
			return nil, false
		}
		return &ast.Integer{Position: tok.Pos, Lexeme: tok.Lexeme}, true
	case token.ValString:
		tok := p.curr
		p.advance()
		return &ast.String{Position: tok.Pos, Value: tok.Lexeme}, true
	case token.OpenParen:
		p.advance()
		inner, ok := p.expr()
		if !ok {
			return nil, false
		}
		if _, ok := p.match(token.CloseParen); !ok {
			return nil, false
		}
		return inner, true
	default:
		p.reportUnexpected()
		return nil, false
	}
}
