// Package debug implements a pretty-printer for Mini-PL's parsed AST,
// used by the -ast command-line flag to show the tree before it runs.
package debug

import (
	"bytes"
	"fmt"

	"github.com/minipl-lang/minipl/internal/ast"
)

const indentSize = 2

// Printer accumulates a formatted, indented text rendering of an AST.
type Printer struct {
	indent int
	buf    bytes.Buffer
}

// Print renders program as a tree and returns the formatted text.
func Print(program *ast.Program) string {
	p := &Printer{}
	for _, stmt := range program.Statements {
		p.node(stmt)
	}
	return p.buf.String()
}

func (p *Printer) line(format string, args ...interface{}) {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteByte(' ')
	}
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *Printer) node(n ast.Node) {
	switch v := n.(type) {
	case *ast.Expression:
		switch v.Op {
		case ast.Init:
			variable := v.Left.(*ast.Variable)
			p.line("Init %s : %s @ %s", variable.Name, variable.DeclaredType, v.Position)
			if v.Right != nil {
				p.indent += indentSize
				p.node(v.Right)
				p.indent -= indentSize
			}
		case ast.Assign:
			variable := v.Left.(*ast.Variable)
			p.line("Assign %s @ %s", variable.Name, v.Position)
			p.indent += indentSize
			p.node(v.Right)
			p.indent -= indentSize
		default:
			p.line("%s @ %s", v.Op, v.Position)
			p.indent += indentSize
			p.node(v.Left)
			p.node(v.Right)
			p.indent -= indentSize
		}
	case *ast.Not:
		p.line("Not @ %s", v.Position)
		p.indent += indentSize
		p.node(v.Child)
		p.indent -= indentSize
	case *ast.Variable:
		p.line("Variable %s @ %s", v.Name, v.Position)
	case *ast.Integer:
		p.line("Integer %s @ %s", v.Lexeme, v.Position)
	case *ast.String:
		p.line("String %q @ %s", v.Value, v.Position)
	case *ast.ForLoop:
		p.line("ForLoop %s @ %s", v.Iterator.Name, v.Position)
		p.indent += indentSize
		p.node(v.Start)
		p.node(v.End)
		for _, stmt := range v.Body {
			p.node(stmt)
		}
		p.indent -= indentSize
	case *ast.Function:
		p.line("Function %s @ %s", v.Name, v.Position)
		p.indent += indentSize
		p.node(v.Parameter)
		p.indent -= indentSize
	default:
		p.line("<unknown node>")
	}
}
