// Package analyzer implements the Mini-PL static semantic analysis pass:
// a single top-to-bottom walk of the parsed AST that builds a scoped
// symbol table and records type errors, without executing anything or
// mutating the tree it walks.
package analyzer

import (
	"github.com/minipl-lang/minipl/internal/ast"
	"github.com/minipl-lang/minipl/internal/diag"
	"github.com/minipl-lang/minipl/internal/symtab"
	"github.com/minipl-lang/minipl/internal/token"
)

const unknown = "unknown"

// Analyzer walks a parsed program once, recording diagnostics into its
// own Reporter and mutating its own symbol table (never the AST).
type Analyzer struct {
	table  *symtab.Table
	report diag.Reporter
}

// New creates an Analyzer with a fresh symbol table.
func New() *Analyzer {
	return &Analyzer{table: symtab.New()}
}

// NewWithTable creates an Analyzer sharing an existing symbol table, so
// that declarations made by one Analyze call are visible to the next —
// the REPL uses this to let variables persist across input lines.
func NewWithTable(table *symtab.Table) *Analyzer {
	return &Analyzer{table: table}
}

// Reset discards any diagnostics recorded by a previous Analyze call,
// without touching the symbol table.
func (a *Analyzer) Reset() { a.report = diag.Reporter{} }

// HasErrors reports whether any semantic diagnostic was recorded.
func (a *Analyzer) HasErrors() bool { return a.report.HasErrors() }

// Diagnostics returns every semantic diagnostic recorded during
// analysis.
func (a *Analyzer) Diagnostics() []diag.Diagnostic { return a.report.Diagnostics() }

// Analyze checks every top-level statement in program.
func (a *Analyzer) Analyze(program *ast.Program) {
	for _, stmt := range program.Statements {
		a.statement(stmt)
	}
}

func (a *Analyzer) statement(node ast.Node) {
	switch n := node.(type) {
	case *ast.Expression:
		switch n.Op {
		case ast.Init:
			a.initStmt(n)
		case ast.Assign:
			a.assignStmt(n)
		}
	case *ast.ForLoop:
		a.forLoop(n)
	case *ast.Function:
		a.function(n)
	}
}

func (a *Analyzer) initStmt(n *ast.Expression) {
	variable := n.Left.(*ast.Variable)
	if a.table.Contains(variable.Name) {
		a.report.Report(diag.New(diag.Semantic, n.Position, "Variable %s already defined in this scope!", variable.Name))
		// Still declare it so later references don't cascade into
		// spurious "undeclared variable" errors.
	}
	declared := variable.DeclaredType
	if n.Right != nil {
		rhsType := a.typeOf(n.Right)
		if rhsType != unknown && rhsType != declared {
			a.report.Report(diag.New(diag.Semantic, n.Right.Pos(), "cannot initialize %s variable with %s value", declared, rhsType))
		}
	}
	a.table.Declare(variable.Name, declared, defaultValue(declared))
}

func (a *Analyzer) assignStmt(n *ast.Expression) {
	variable := n.Left.(*ast.Variable)
	sym, ok := a.table.Lookup(variable.Name)
	if !ok {
		a.report.Report(diag.New(diag.Semantic, n.Position, "undeclared variable %s", variable.Name))
		a.typeOf(n.Right)
		return
	}
	rhsType := a.typeOf(n.Right)
	if rhsType != unknown && rhsType != sym.Type {
		a.report.Report(diag.New(diag.Semantic, n.Right.Pos(), "cannot assign %s value to %s variable %s", rhsType, sym.Type, variable.Name))
	}
}

func (a *Analyzer) forLoop(n *ast.ForLoop) {
	if !a.table.Contains(n.Iterator.Name) {
		a.report.Report(diag.New(diag.Semantic, n.Iterator.Position, "undeclared variable %s", n.Iterator.Name))
	}
	if t := a.typeOf(n.Start); t != unknown && t != "int" {
		a.report.Report(diag.New(diag.Semantic, n.Start.Pos(), "for-loop range start must be int, got %s", t))
	}
	if t := a.typeOf(n.End); t != unknown && t != "int" {
		a.report.Report(diag.New(diag.Semantic, n.End.Pos(), "for-loop range end must be int, got %s", t))
	}

	a.table.AddScope()
	for _, stmt := range n.Body {
		a.statement(stmt)
	}
	a.table.RemoveScope()
}

func (a *Analyzer) function(n *ast.Function) {
	switch n.Name {
	case "read":
		variable, ok := n.Parameter.(*ast.Variable)
		if !ok {
			a.report.Report(diag.New(diag.Semantic, n.Position, "read expects a variable"))
			return
		}
		if !a.table.Contains(variable.Name) {
			a.report.Report(diag.New(diag.Semantic, variable.Position, "undeclared variable %s", variable.Name))
		}
	case "print":
		a.typeOf(n.Parameter)
	case "assert":
		if t := a.typeOf(n.Parameter); t != unknown && t != "bool" {
			a.report.Report(diag.New(diag.Semantic, n.Parameter.Pos(), "assert expects bool, got %s", t))
		}
	}
}

// typeOf computes the static type of expr, recording a diagnostic on
// mismatch and returning "unknown" so the error never cascades into
// secondary diagnostics.
func (a *Analyzer) typeOf(expr ast.Node) string {
	switch n := expr.(type) {
	case *ast.Integer:
		return "int"
	case *ast.String:
		return "string"
	case *ast.Variable:
		sym, ok := a.table.Lookup(n.Name)
		if !ok {
			a.report.Report(diag.New(diag.Semantic, n.Position, "undeclared variable %s", n.Name))
			return unknown
		}
		return sym.Type
	case *ast.Not:
		t := a.typeOf(n.Child)
		if t != unknown && t != "bool" {
			a.report.Report(diag.New(diag.Semantic, n.Pos(), "! expects bool, got %s", t))
			return unknown
		}
		return "bool"
	case *ast.Expression:
		return a.typeOfBinary(n)
	default:
		return unknown
	}
}

func (a *Analyzer) typeOfBinary(n *ast.Expression) string {
	left := a.typeOf(n.Left)
	right := a.typeOf(n.Right)
	if left == unknown || right == unknown {
		return unknown
	}

	mismatch := func(pos token.Position, want string) string {
		a.report.Report(diag.New(diag.Semantic, pos, "operator %s expects %s operands, got %s and %s", n.Op, want, left, right))
		return unknown
	}

	switch n.Op {
	case ast.LogicalAnd:
		if left != "bool" || right != "bool" {
			return mismatch(n.Position, "bool")
		}
		return "bool"
	case ast.Equality, ast.LessThan:
		if left != right {
			return mismatch(n.Position, "matching")
		}
		return "bool"
	case ast.Add:
		if left != right || (left != "int" && left != "string") {
			return mismatch(n.Position, "int or string")
		}
		return left
	case ast.Minus, ast.Multiply, ast.Divide:
		if left != "int" || right != "int" {
			return mismatch(n.Position, "int")
		}
		return "int"
	default:
		return unknown
	}
}

func defaultValue(typ string) string {
	switch typ {
	case "int":
		return "0"
	case "bool":
		return "false"
	default:
		return ""
	}
}
