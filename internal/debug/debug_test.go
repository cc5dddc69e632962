package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minipl-lang/minipl/internal/parser"
)

func TestPrintRendersEveryStatement(t *testing.T) {
	p := parser.New(`
		var x : int := 1 + 2;
		for i in 0..1 do
			print x;
		end for;
	`)
	program := p.Parse()
	assert.False(t, p.HasErrors())

	out := Print(program)
	assert.Contains(t, out, "Init x : int")
	assert.Contains(t, out, "ForLoop i")
	assert.Contains(t, out, "Function print")
}
