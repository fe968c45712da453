package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minipar-lang/minipar/internal/ast"
	"github.com/minipar-lang/minipar/internal/errors"
	"github.com/minipar-lang/minipar/internal/lexer"
	"github.com/minipar-lang/minipar/internal/parser"
	"github.com/minipar-lang/minipar/internal/semantic"
	"github.com/minipar-lang/minipar/internal/tac"
)

var tacOutPath string

var tacCmd = &cobra.Command{
	Use:   "tac [file]",
	Short: "Emit the three-address-code translation of a minipar file",
	Long: `Translate a minipar program into three-address code for inspection.
This output is diagnostic only; the evaluator never consumes it.`,
	Args: cobra.ExactArgs(1),
	RunE: runTAC,
}

func init() {
	rootCmd.AddCommand(tacCmd)
	tacCmd.Flags().StringVarP(&tacOutPath, "output", "o", "", "write to a file instead of stdout")
}

func runTAC(_ *cobra.Command, args []string) error {
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

	analyzer := semantic.New(source, filename)
	report := analyzer.Analyze(program)
	if !report.Success {
		fmt.Fprint(os.Stderr, errors.FormatErrors(report.Errors, true))
		return fmt.Errorf("semantic analysis failed with %d error(s)", len(report.Errors))
	}

	return handleTAC(program, tacOutPath == "", tacOutPath)
}

// handleTAC emits prog's three-address-code translation to stdout (when
// toStdout is true) and/or to path (when non-empty), shared between the
// `tac` subcommand and `run --emit-tac/--save-tac`.
func handleTAC(program *ast.Program, toStdout bool, path string) error {
	prog := tac.Emit(program)
	if toStdout {
		fmt.Println(prog.String())
	}
	if path != "" {
		if err := os.WriteFile(path, []byte(prog.String()), 0o644); err != nil {
			return fmt.Errorf("failed to write tac output to %s: %w", path, err)
		}
	}
	return nil
}

// printSymbols renders the semantic analyzer's symbol-table snapshot as
// indented JSON, used by `run --show-symbols`.
func printSymbols(report *semantic.Report) {
	data, err := json.MarshalIndent(report.Symbols(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to render symbols: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
