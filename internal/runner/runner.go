package runner

import (
	"brewin/pkg/color"
	"brewin/pkg/interpreter"
	"brewin/pkg/parser"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

type Runner struct {
	Help       bool      // Show help message
	Verbose    bool      // Print the decoded program before running it
	NoColor    bool      // Disable colored output
	Trace      bool      // Log every executed statement
	MaxSteps   int       // Step limit, 0 for none
	ConfigFile string    // Path to the config file
	SourceFile string    // Path to the source file
	Stdout     io.Writer // Program output, defaults to os.Stdout
	Stdin      io.Reader // Program input, defaults to os.Stdin
	Stderr     io.Writer // Error reports, defaults to os.Stderr
}

// Run loads the source file and executes it from main.
func (opts *Runner) Run() error {
	log.Info("Processing file", "file", opts.SourceFile)

	input, err := os.ReadFile(opts.SourceFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.SourceFile, err)
	}

	source := SplitLines(string(input))
	prog := parser.Load(source)

	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	in := opts.Stdin
	if in == nil {
		in = os.Stdin
	}
	errOut := opts.Stderr
	if errOut == nil {
		errOut = os.Stderr
	}

	if opts.Verbose {
		PrintListing(out, prog)
		fmt.Fprintln(out, color.GreenText("\n=== Program Output ==="))
	}

	intr := interpreter.NewInterpreter(prog,
		interpreter.WithWriter(out),
		interpreter.WithReader(in),
		interpreter.WithMaxSteps(opts.MaxSteps),
		interpreter.WithTrace(opts.Trace),
	)

	if err := intr.Run(); err != nil {
		var rerr *interpreter.Error
		if errors.As(err, &rerr) {
			src := ""
			if rerr.Line >= 0 && rerr.Line < len(source) {
				src = strings.TrimSpace(source[rerr.Line])
			}
			fmt.Fprintln(errOut, color.ErrorAtLine(rerr.Kind.String(), rerr.Line, rerr.Msg, src))
		}
		return fmt.Errorf("execution failed: %w", err)
	}

	return nil
}

// SplitLines splits file content into source lines, accepting CRLF endings.
func SplitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// PrintListing writes the decoded statements, their jump targets and the function table.
func PrintListing(w io.Writer, prog *parser.Program) {
	fmt.Fprintln(w, color.GreenText("=== Decoded Program ==="))
	if prog.Len() == 0 {
		fmt.Fprintln(w, color.GrayText("No code loaded."))
	}

	for idx, line := range prog.Lines {
		if _, ok := line.Stmt.(parser.Nop); ok {
			continue
		}

		jump := prog.Flow.Describe(idx)
		if jump != "" {
			jump = color.GrayText(" -> " + jump)
		}
		fmt.Fprintf(w, "%s: %s%s\n", color.Line(idx), color.YellowText(line.Stmt.String()), jump)
	}

	fmt.Fprintln(w, color.GreenText("\n=== Functions ==="))
	for _, fn := range prog.Funcs.Functions() {
		params := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			mode := ""
			if p.ByRef {
				mode = "ref "
			}
			params[i] = p.Name + ": " + mode + p.Type
		}
		fmt.Fprintf(w, "%s %s(%s) %s\n",
			color.Line(fn.Line),
			color.CyanText(fn.Name),
			color.BlueText(strings.Join(params, ", ")),
			color.BlueText(fn.ReturnType))
	}
}
