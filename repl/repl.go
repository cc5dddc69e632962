// Package repl implements Mini-PL's interactive Read-Eval-Print Loop.
// Each line is scanned, parsed, analyzed, and evaluated against a
// symbol table that persists for the life of the session, so variables
// declared on one line are visible on the next.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/minipl-lang/minipl/internal/analyzer"
	"github.com/minipl-lang/minipl/internal/eval"
	"github.com/minipl-lang/minipl/internal/parser"
	"github.com/minipl-lang/minipl/internal/symtab"
)

var (
	blueColor   = color.New(color.FgBlue)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
	yellowColor = color.New(color.FgYellow)
)

// Repl holds the banner text shown at startup and the prompt shown on
// every line.
type Repl struct {
	Banner  string
	Version string
	Prompt  string
	Line    string
}

// New creates a Repl with the given display strings.
func New(banner, version, prompt, line string) *Repl {
	return &Repl{Banner: banner, Version: version, Prompt: prompt, Line: line}
}

func (r *Repl) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Line)
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintf(w, "%s\n", r.Line)
	yellowColor.Fprintf(w, "Mini-PL %s\n", r.Version)
	cyanColor.Fprintln(w, "Type Mini-PL statements and press enter. Type /exit to quit.")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

// Start runs the loop until the user exits or input is exhausted (EOF).
// Declarations made on one line persist for the rest of the session;
// output from "print" statements is written to w.
func (r *Repl) Start(stdin io.Reader, w io.Writer) {
	r.printBanner(w)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		redColor.Fprintf(w, "cannot start line editor: %v\n", err)
		return
	}
	defer rl.Close()

	table := symtab.New()
	an := analyzer.NewWithTable(table)
	ev := eval.NewWithTable(stdin, w, table)

	for {
		line, err := rl.Readline()
		if err != nil {
			io.WriteString(w, "Good bye!\n")
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "/exit" {
			io.WriteString(w, "Good bye!\n")
			return
		}
		rl.SaveHistory(line)

		r.evalLine(w, line, an, ev)
	}
}

func (r *Repl) evalLine(w io.Writer, line string, an *analyzer.Analyzer, ev *eval.Evaluator) {
	p := parser.New(line)
	program := p.Parse()
	if p.HasErrors() {
		for _, d := range p.Diagnostics() {
			redColor.Fprintf(w, "%s\n", d.String())
		}
		return
	}

	an.Reset()
	an.Analyze(program)
	if an.HasErrors() {
		for _, d := range an.Diagnostics() {
			redColor.Fprintf(w, "%s\n", d.String())
		}
		return
	}

	ev.Reset()
	ev.Evaluate(program)
	if ev.HasErrors() {
		for _, d := range ev.Diagnostics() {
			redColor.Fprintf(w, "%s\n", d.String())
		}
	}
}
