// Package diag formats and collects the diagnostics produced by every
// pass of the interpreter (scanner, parser, analyzer, evaluator), in a
// fixed wire format: "<Kind>Error::Row <R>::Column <C>::<message>".
package diag

import (
	"fmt"

	"github.com/minipl-lang/minipl/internal/token"
)

// Kind is one of the five diagnostic categories.
type Kind string

const (
	Lexical  Kind = "Lexical"
	Syntax   Kind = "Syntax"
	Semantic Kind = "Semantic"
	Runtime  Kind = "Runtime"
	IO       Kind = "IO"
)

// Diagnostic is a single reported error, tied to a source position.
type Diagnostic struct {
	Kind    Kind
	Pos     token.Position
	Message string
}

// New builds a Diagnostic.
func New(kind Kind, pos token.Position, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// String renders the diagnostic in its fixed wire format, e.g.
// "SyntaxError::Row 3::Column 5::unexpected token".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%sError::%s::%s", d.Kind, d.Pos, d.Message)
}

// Reporter accumulates diagnostics for a single pass and tracks a sticky
// "errors detected" flag.
type Reporter struct {
	diagnostics []Diagnostic
	hasErrors   bool
}

// Report appends a diagnostic and sets the error flag. Consecutive
// diagnostics of the same kind with identical message text are
// suppressed, to keep panic-mode recovery from flooding the same error.
func (r *Reporter) Report(d Diagnostic) {
	if n := len(r.diagnostics); n > 0 {
		last := r.diagnostics[n-1]
		if last.Kind == d.Kind && last.Message == d.Message {
			r.hasErrors = true
			return
		}
	}
	r.diagnostics = append(r.diagnostics, d)
	r.hasErrors = true
}

// HasErrors reports whether any diagnostic has been recorded.
func (r *Reporter) HasErrors() bool {
	return r.hasErrors
}

// Diagnostics returns every diagnostic recorded so far, in report order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diagnostics
}
