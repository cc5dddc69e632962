package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minipl-lang/minipl/internal/ast"
)

func TestParseVarDeclWithInit(t *testing.T) {
	p := New(`var x : int := 1 + 2;`)
	program := p.Parse()

	assert.False(t, p.HasErrors())
	assert.Len(t, program.Statements, 1)

	stmt := program.Statements[0].(*ast.Expression)
	assert.Equal(t, ast.Init, stmt.Op)

	variable := stmt.Left.(*ast.Variable)
	assert.Equal(t, "x", variable.Name)
	assert.Equal(t, "int", variable.DeclaredType)

	rhs := stmt.Right.(*ast.Expression)
	assert.Equal(t, ast.Add, rhs.Op)
}

func TestParseVarDeclWithoutInit(t *testing.T) {
	p := New(`var x : bool;`)
	program := p.Parse()

	assert.False(t, p.HasErrors())
	stmt := program.Statements[0].(*ast.Expression)
	assert.Equal(t, ast.Init, stmt.Op)
	assert.Nil(t, stmt.Right)
}

func TestParseAssignment(t *testing.T) {
	p := New(`x := "hello";`)
	program := p.Parse()

	assert.False(t, p.HasErrors())
	stmt := program.Statements[0].(*ast.Expression)
	assert.Equal(t, ast.Assign, stmt.Op)

	rhs := stmt.Right.(*ast.String)
	assert.Equal(t, "hello", rhs.Value)
}

func TestParseForLoop(t *testing.T) {
	p := New(`for i in 0..2 do print i; end for;`)
	program := p.Parse()

	assert.False(t, p.HasErrors())
	loop := program.Statements[0].(*ast.ForLoop)
	assert.Equal(t, "i", loop.Iterator.Name)
	assert.Len(t, loop.Body, 1)
}

func TestParseReadPrintAssert(t *testing.T) {
	p := New(`read x; print x; assert (x = x);`)
	program := p.Parse()

	assert.False(t, p.HasErrors())
	assert.Len(t, program.Statements, 3)

	read := program.Statements[0].(*ast.Function)
	assert.Equal(t, "read", read.Name)
	print := program.Statements[1].(*ast.Function)
	assert.Equal(t, "print", print.Name)
	assertFn := program.Statements[2].(*ast.Function)
	assert.Equal(t, "assert", assertFn.Name)
}

func TestUnaryNotIsPrefix(t *testing.T) {
	p := New(`x := !y;`)
	program := p.Parse()

	assert.False(t, p.HasErrors())
	stmt := program.Statements[0].(*ast.Expression)
	not := stmt.Right.(*ast.Not)
	_, ok := not.Child.(*ast.Variable)
	assert.True(t, ok)
}

func TestOperatorPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3), not (1 + 2) * 3.
	p := New(`x := 1 + 2 * 3;`)
	program := p.Parse()

	assert.False(t, p.HasErrors())
	stmt := program.Statements[0].(*ast.Expression)
	add := stmt.Right.(*ast.Expression)
	assert.Equal(t, ast.Add, add.Op)

	left := add.Left.(*ast.Integer)
	assert.Equal(t, "1", left.Lexeme)

	right := add.Right.(*ast.Expression)
	assert.Equal(t, ast.Multiply, right.Op)
}

func TestUnterminatedStringReportsLexicalError(t *testing.T) {
	p := New(`print "oops;`)
	p.Parse()
	assert.True(t, p.HasErrors())
}

func TestSyntaxErrorRecoversAtNextStatement(t *testing.T) {
	p := New(`var x : int := ; x := 1;`)
	program := p.Parse()

	assert.True(t, p.HasErrors())
	// The malformed declaration contributes no node, but the parser
	// resynchronizes and still parses the assignment that follows.
	assert.Len(t, program.Statements, 1)
	stmt := program.Statements[0].(*ast.Expression)
	assert.Equal(t, ast.Assign, stmt.Op)
}
