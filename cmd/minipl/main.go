// Command minipl runs the Mini-PL interpreter: given a source file, it
// scans, parses, analyzes, and evaluates it; given no file, it starts
// an interactive REPL.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/minipl-lang/minipl/internal/analyzer"
	"github.com/minipl-lang/minipl/internal/debug"
	"github.com/minipl-lang/minipl/internal/diag"
	"github.com/minipl-lang/minipl/internal/eval"
	"github.com/minipl-lang/minipl/internal/parser"
	"github.com/minipl-lang/minipl/repl"
)

const banner = `
 __  __ _       _       ____  _
|  \/  (_)_ __ (_)     |  _ \| |
| |\/| | | '_ \| |_____| |_) | |
| |  | | | | | | |_____|  __/| |___
|_|  |_|_|_| |_|_|     |_|   |_____|
`

const version = "v1.0.0"

var redColor = color.New(color.FgRed)

func main() {
	astFlag := flag.Bool("ast", false, "print the parsed statement tree before running")
	replFlag := flag.Bool("repl", false, "start the interactive REPL even if a file is given")
	flag.Parse()

	args := flag.Args()
	if *replFlag || len(args) == 0 {
		r := repl.New(banner, version, "mini-pl> ", "----------------------------------------")
		r.Start(os.Stdin, os.Stdout)
		return
	}

	os.Exit(runFile(args[0], *astFlag))
}

// runFile executes the named Mini-PL source file and returns the
// process exit code: 0 on success, 1 if any pass reported a diagnostic.
func runFile(path string, printAST bool) int {
	source, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "cannot read %s: %v\n", path, err)
		return 1
	}

	p := parser.New(string(source))
	program := p.Parse()
	if p.HasErrors() {
		reportAll(p.Diagnostics())
		return 1
	}

	if printAST {
		fmt.Print(debug.Print(program))
	}

	an := analyzer.New()
	an.Analyze(program)
	if an.HasErrors() {
		reportAll(an.Diagnostics())
		return 1
	}

	ev := eval.New(os.Stdin, os.Stdout)
	ev.Evaluate(program)
	if ev.HasErrors() {
		reportAll(ev.Diagnostics())
		return 1
	}
	return 0
}

func reportAll(diagnostics []diag.Diagnostic) {
	for _, d := range diagnostics {
		redColor.Fprintf(os.Stderr, "%s\n", d.String())
	}
}
