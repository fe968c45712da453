package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "minipar",
	Short: "minipar interpreter and diagnostics CLI",
	Long: `minipar runs and inspects programs written in minipar, a small
SEQ/PAR concurrent scripting language with typed channels, single
inheritance, and an interactive input provider.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
`, GitCommit))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
