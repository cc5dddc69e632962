// Package eval implements the Mini-PL tree-walking evaluator: it executes
// a checked AST against a fresh symbol table, producing console output
// and stopping at the first runtime error. Every Symbol's value is plain
// text (decimal digits, "true"/"false", or raw string content), and
// arithmetic/comparison convert on demand rather than dispatching on a
// boxed value type.
package eval

import (
	"io"
	"strconv"
	"strings"

	"github.com/minipl-lang/minipl/internal/ast"
	"github.com/minipl-lang/minipl/internal/console"
	"github.com/minipl-lang/minipl/internal/diag"
	"github.com/minipl-lang/minipl/internal/symtab"
)

// Evaluator executes statements in order against its own symbol table.
type Evaluator struct {
	table  *symtab.Table
	stdin  *console.Reader
	stdout io.Writer
	report diag.Reporter
	halted bool
}

// New creates an Evaluator reading "read" input from stdin and writing
// "print" output to stdout.
func New(stdin io.Reader, stdout io.Writer) *Evaluator {
	return &Evaluator{
		table:  symtab.New(),
		stdin:  console.NewReader(stdin),
		stdout: stdout,
	}
}

// NewWithTable creates an Evaluator sharing an existing symbol table, so
// that variables declared by one Evaluate call survive into the next —
// the REPL uses this to keep state across input lines.
func NewWithTable(stdin io.Reader, stdout io.Writer, table *symtab.Table) *Evaluator {
	return &Evaluator{
		table:  table,
		stdin:  console.NewReader(stdin),
		stdout: stdout,
	}
}

// Reset clears the halted flag and any diagnostic recorded by a
// previous Evaluate call, without touching the symbol table.
func (e *Evaluator) Reset() {
	e.report = diag.Reporter{}
	e.halted = false
}

// HasErrors reports whether a runtime error halted execution.
func (e *Evaluator) HasErrors() bool { return e.report.HasErrors() }

// Diagnostics returns the (at most one) runtime diagnostic recorded.
func (e *Evaluator) Diagnostics() []diag.Diagnostic { return e.report.Diagnostics() }

// Evaluate executes every top-level statement in order, stopping
// immediately after the first one that raises a runtime error.
func (e *Evaluator) Evaluate(program *ast.Program) {
	for _, stmt := range program.Statements {
		if e.halted {
			return
		}
		e.statement(stmt)
	}
}

func (e *Evaluator) fail(node ast.Node, format string, args ...interface{}) {
	e.report.Report(diag.New(diag.Runtime, node.Pos(), format, args...))
	e.halted = true
}

func (e *Evaluator) statement(node ast.Node) {
	switch n := node.(type) {
	case *ast.Expression:
		switch n.Op {
		case ast.Init:
			e.initStmt(n)
		case ast.Assign:
			e.assignStmt(n)
		}
	case *ast.ForLoop:
		e.forLoop(n)
	case *ast.Function:
		e.function(n)
	}
}

func (e *Evaluator) initStmt(n *ast.Expression) {
	variable := n.Left.(*ast.Variable)
	value := defaultValue(variable.DeclaredType)
	if n.Right != nil {
		v, _, ok := e.eval(n.Right)
		if !ok {
			return
		}
		value = v
	}
	e.table.Declare(variable.Name, variable.DeclaredType, value)
}

func (e *Evaluator) assignStmt(n *ast.Expression) {
	variable := n.Left.(*ast.Variable)
	value, _, ok := e.eval(n.Right)
	if !ok {
		return
	}
	e.table.Update(variable.Name, value)
}

func (e *Evaluator) forLoop(n *ast.ForLoop) {
	startText, _, ok := e.eval(n.Start)
	if !ok {
		return
	}
	start, err := strconv.ParseInt(startText, 10, 64)
	if err != nil {
		e.fail(n.Start, "for-loop range start is not an integer")
		return
	}
	endText, _, ok := e.eval(n.End)
	if !ok {
		return
	}
	end, err := strconv.ParseInt(endText, 10, 64)
	if err != nil {
		e.fail(n.End, "for-loop range end is not an integer")
		return
	}

	e.table.AddScope()
	for i := start; i <= end; i++ {
		e.table.Update(n.Iterator.Name, strconv.FormatInt(i, 10))
		for _, stmt := range n.Body {
			if e.halted {
				break
			}
			e.statement(stmt)
		}
		if e.halted {
			break
		}
	}
	e.table.RemoveScope()
}

func (e *Evaluator) function(n *ast.Function) {
	switch n.Name {
	case "read":
		e.readStmt(n)
	case "print":
		v, _, ok := e.eval(n.Parameter)
		if !ok {
			return
		}
		io.WriteString(e.stdout, v)
	case "assert":
		v, _, ok := e.eval(n.Parameter)
		if !ok {
			return
		}
		if v == "false" {
			io.WriteString(e.stdout, "Expected the result to be true. Got false\n")
		}
	}
}

func (e *Evaluator) readStmt(n *ast.Function) {
	variable := n.Parameter.(*ast.Variable)
	sym, ok := e.table.Lookup(variable.Name)
	if !ok {
		e.fail(n, "cannot read into undeclared variable %s", variable.Name)
		return
	}
	line, err := e.stdin.ReadLine()
	if err != nil {
		e.fail(n, "failed to read input: %v", err)
		return
	}
	switch sym.Type {
	case "int":
		if _, err := strconv.ParseInt(line, 10, 64); err != nil {
			e.fail(n, "cannot convert input string to int")
			return
		}
		e.table.Update(variable.Name, line)
	case "bool":
		e.fail(n, "cannot convert input string to bool")
	default:
		e.table.Update(variable.Name, line)
	}
}

// eval evaluates an expression to its text value and runtime type. ok is
// false once the evaluator has halted on a runtime error encountered
// while computing expr or one of its subexpressions. The type travels
// alongside the value because by evaluation time the only source of
// truth for a value's type is the symbol table entry or literal kind
// that produced it, not the shape of the text itself.
func (e *Evaluator) eval(expr ast.Node) (string, string, bool) {
	switch n := expr.(type) {
	case *ast.Integer:
		return n.Lexeme, "int", true
	case *ast.String:
		return n.Value, "string", true
	case *ast.Variable:
		sym, ok := e.table.Lookup(n.Name)
		if !ok {
			e.fail(n, "undeclared variable %s", n.Name)
			return "", "", false
		}
		return sym.Value, sym.Type, true
	case *ast.Not:
		v, _, ok := e.eval(n.Child)
		if !ok {
			return "", "", false
		}
		if v == "true" {
			return "false", "bool", true
		}
		return "true", "bool", true
	case *ast.Expression:
		return e.evalBinary(n)
	default:
		return "", "", false
	}
}

func (e *Evaluator) evalBinary(n *ast.Expression) (string, string, bool) {
	left, leftType, ok := e.eval(n.Left)
	if !ok {
		return "", "", false
	}
	right, _, ok := e.eval(n.Right)
	if !ok {
		return "", "", false
	}

	switch n.Op {
	case ast.LogicalAnd:
		if left == "false" || right == "false" {
			return "false", "bool", true
		}
		return "true", "bool", true
	case ast.Equality:
		if left == right {
			return "true", "bool", true
		}
		return "false", "bool", true
	case ast.LessThan:
		return e.lessThan(n, left, right, leftType)
	case ast.Add:
		if leftType == "string" {
			return left + right, "string", true
		}
		a, b, ok := e.parsePair(n, left, right)
		if !ok {
			return "", "", false
		}
		return strconv.FormatInt(a+b, 10), "int", true
	case ast.Minus:
		a, b, ok := e.parsePair(n, left, right)
		if !ok {
			return "", "", false
		}
		return strconv.FormatInt(a-b, 10), "int", true
	case ast.Multiply:
		a, b, ok := e.parsePair(n, left, right)
		if !ok {
			return "", "", false
		}
		return strconv.FormatInt(a*b, 10), "int", true
	case ast.Divide:
		a, b, ok := e.parsePair(n, left, right)
		if !ok {
			return "", "", false
		}
		if b == 0 {
			e.fail(n, "division by zero")
			return "", "", false
		}
		// Go's integer division already truncates toward zero.
		return strconv.FormatInt(a/b, 10), "int", true
	default:
		return "", "", false
	}
}

// lessThan implements "<" for each of the three value types: numeric for ints,
// lexicographic for strings, and "false" < "true" for booleans.
func (e *Evaluator) lessThan(n *ast.Expression, left, right, leftType string) (string, string, bool) {
	switch leftType {
	case "bool":
		if boolRank(left) < boolRank(right) {
			return "true", "bool", true
		}
		return "false", "bool", true
	case "int":
		a, b, ok := e.parsePair(n, left, right)
		if !ok {
			return "", "", false
		}
		if a < b {
			return "true", "bool", true
		}
		return "false", "bool", true
	default:
		if strings.Compare(left, right) < 0 {
			return "true", "bool", true
		}
		return "false", "bool", true
	}
}

func boolRank(v string) int {
	if v == "true" {
		return 1
	}
	return 0
}

func (e *Evaluator) parsePair(n ast.Node, left, right string) (int64, int64, bool) {
	a, err := strconv.ParseInt(left, 10, 64)
	if err != nil {
		e.fail(n, "cannot convert %q to int", left)
		return 0, 0, false
	}
	b, err := strconv.ParseInt(right, 10, 64)
	if err != nil {
		e.fail(n, "cannot convert %q to int", right)
		return 0, 0, false
	}
	return a, b, true
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
