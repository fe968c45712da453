package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minipar-lang/minipar/internal/errors"
	"github.com/minipar-lang/minipar/internal/lexer"
	"github.com/minipar-lang/minipar/internal/parser"
	"github.com/minipar-lang/minipar/internal/semantic"
)

var parseCheckSemantics bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a minipar file and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseCheckSemantics, "check", false, "also run semantic analysis and report diagnostics")
}

func runParse(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	if len(p.Errors()) > 0 {
		compilerErrors := errors.FromStringErrors(p.Errors(), source, filename)
		fmt.Fprint(os.Stderr, errors.FormatErrors(compilerErrors, true))
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	fmt.Println(program.String())

	if parseCheckSemantics {
		analyzer := semantic.New(source, filename)
		report := analyzer.Analyze(program)
		if len(report.Warnings) > 0 {
			fmt.Fprint(os.Stderr, errors.FormatErrors(report.Warnings, true))
		}
		if !report.Success {
			fmt.Fprint(os.Stderr, errors.FormatErrors(report.Errors, true))
			return fmt.Errorf("semantic analysis failed with %d error(s)", len(report.Errors))
		}
	}

	return nil
}
