package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minipl-lang/minipl/internal/token"
)

func TestDiagnosticString(t *testing.T) {
	d := New(Syntax, token.Position{Row: 3, Column: 5}, "unexpected %s", "token")
	assert.Equal(t, "SyntaxError::Row 3::Column 5::unexpected token", d.String())
}

func TestReporterSuppressesDuplicates(t *testing.T) {
	var r Reporter
	pos := token.Position{Row: 1, Column: 1}

	r.Report(New(Syntax, pos, "invalid syntax"))
	r.Report(New(Syntax, pos, "invalid syntax"))
	r.Report(New(Syntax, pos, "invalid syntax"))

	assert.True(t, r.HasErrors())
	assert.Len(t, r.Diagnostics(), 1)
}

func TestReporterKeepsDistinctDiagnostics(t *testing.T) {
	var r Reporter
	pos := token.Position{Row: 1, Column: 1}

	r.Report(New(Syntax, pos, "invalid syntax"))
	r.Report(New(Semantic, pos, "undeclared variable x"))

	assert.True(t, r.HasErrors())
	assert.Len(t, r.Diagnostics(), 2)
}

func TestReporterNoErrorsInitially(t *testing.T) {
	var r Reporter
	assert.False(t, r.HasErrors())
	assert.Empty(t, r.Diagnostics())
}
