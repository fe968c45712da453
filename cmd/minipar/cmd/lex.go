package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minipar-lang/minipar/internal/lexer"
	"github.com/minipar-lang/minipar/internal/token"
)

var lexOnlyErrors bool

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a minipar file and print the resulting tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().BoolVar(&lexOnlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexScript(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}
	printTokens(string(content))
	return nil
}

// printTokens drains a fresh lexer over source and prints each token,
// shared between `run --show-tokens` and the `lex` subcommand.
func printTokens(source string) {
	l := lexer.New(source)
	errorCount := 0
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			errorCount++
		}
		if !lexOnlyErrors || tok.Type == token.ILLEGAL {
			fmt.Printf("[%-12s] %q @%d:%d\n", tok.Type, tok.Literal, tok.Pos.Line, tok.Pos.Column)
		}
		if tok.Type == token.EOF {
			break
		}
	}
	if lexOnlyErrors {
		fmt.Printf("illegal tokens: %d\n", errorCount)
	}
}
