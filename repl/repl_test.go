package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minipl-lang/minipl/internal/analyzer"
	"github.com/minipl-lang/minipl/internal/eval"
	"github.com/minipl-lang/minipl/internal/symtab"
)

// evalLine is exercised directly rather than through Start, since Start
// drives an interactive readline.Instance that expects a real terminal.
func TestEvalLinePersistsDeclarationsAcrossCalls(t *testing.T) {
	var out bytes.Buffer
	table := symtab.New()
	an := analyzer.NewWithTable(table)
	ev := eval.NewWithTable(strings.NewReader(""), &out, table)
	r := New("banner", "v0", "> ", "---")

	r.evalLine(&out, "var x : int := 41;", an, ev)
	assert.False(t, ev.HasErrors())

	r.evalLine(&out, "print x + 1;", an, ev)
	assert.False(t, ev.HasErrors())
	assert.Equal(t, "42", out.String())
}

func TestEvalLineReportsSyntaxErrorsWithoutPanicking(t *testing.T) {
	var out bytes.Buffer
	table := symtab.New()
	an := analyzer.NewWithTable(table)
	ev := eval.NewWithTable(strings.NewReader(""), &out, table)
	r := New("banner", "v0", "> ", "---")

	r.evalLine(&out, "var :=;", an, ev)
	assert.Contains(t, out.String(), "SyntaxError")
}

func TestEvalLineReportsSemanticErrorsAndResetsBetweenLines(t *testing.T) {
	var out bytes.Buffer
	table := symtab.New()
	an := analyzer.NewWithTable(table)
	ev := eval.NewWithTable(strings.NewReader(""), &out, table)
	r := New("banner", "v0", "> ", "---")

	r.evalLine(&out, "print undeclared;", an, ev)
	assert.Contains(t, out.String(), "SemanticError")

	out.Reset()
	r.evalLine(&out, "var ok : int := 1; print ok;", an, ev)
	assert.Equal(t, "1", out.String())
}
