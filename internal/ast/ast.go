// Package ast defines the Mini-PL abstract syntax tree as a closed set of
// tagged node variants. Every node carries its source Position;
// statement nodes keep the position of the operator or keyword that
// defines them.
package ast

import "github.com/minipl-lang/minipl/internal/token"

// Op identifies a binary operator in an Expression node.
type Op int

const (
	Init Op = iota
	Assign
	LogicalAnd
	Equality
	LessThan
	Add
	Minus
	Multiply
	Divide
)

func (o Op) String() string {
	switch o {
	case Init:
		return "Init"
	case Assign:
		return "Assign"
	case LogicalAnd:
		return "LogicalAnd"
	case Equality:
		return "Equality"
	case LessThan:
		return "LessThan"
	case Add:
		return "Add"
	case Minus:
		return "Minus"
	case Multiply:
		return "Multiply"
	case Divide:
		return "Divide"
	default:
		return "Unknown"
	}
}

// Node is implemented by every AST variant.
type Node interface {
	Pos() token.Position
}

// Variable is either a declaration site (Init's left child, with
// DeclaredType set) or a use site (DeclaredType empty; resolved via the
// symbol table).
type Variable struct {
	Position     token.Position
	Name         string
	DeclaredType string // "int" | "string" | "bool" | "" at use sites
}

func (v *Variable) Pos() token.Position { return v.Position }

// Integer holds an integer literal as its source lexeme; conversion to a
// machine integer happens at evaluation, not construction.
type Integer struct {
	Position token.Position
	Lexeme   string
}

func (i *Integer) Pos() token.Position { return i.Position }

// String holds an already-unescaped string literal value.
type String struct {
	Position token.Position
	Value    string
}

func (s *String) Pos() token.Position { return s.Position }

// Expression is a binary operator node. For Init, Left is a *Variable
// with DeclaredType set and Right may be nil. For Assign, Left is a
// *Variable with DeclaredType empty and Right is required. For every
// other Op both children are expressions and required.
type Expression struct {
	Position token.Position
	Op       Op
	Left     Node
	Right    Node
}

func (e *Expression) Pos() token.Position { return e.Position }

// Not is unary logical negation.
type Not struct {
	Position token.Position
	Child    Node
}

func (n *Not) Pos() token.Position { return n.Position }

// ForLoop ranges Iterator from Start to End inclusive, running Body once
// per iteration.
type ForLoop struct {
	Position token.Position
	Iterator *Variable
	Start    Node
	End      Node
	Body     []Node
}

func (f *ForLoop) Pos() token.Position { return f.Position }

// Function is one of the three built-ins: read, print, assert.
type Function struct {
	Position  token.Position
	Name      string // "read" | "print" | "assert"
	Parameter Node
}

func (f *Function) Pos() token.Position { return f.Position }

// Program is an ordered sequence of top-level statement nodes.
type Program struct {
	Statements []Node
}
