// =============================================================================
// GMSEC CLI - Root Command
// =============================================================================
//
// Defines the root Cobra command every subcommand (validate, schema) attaches
// to, plus the global flags shared across them: --schema-path, --spec-version,
// --schema-level.
//
// =============================================================================

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	schemaPath  string
	specVersion int
	schemaLevel int
)

var rootCmd = &cobra.Command{
	Use:   "gmsec",
	Short: "GMSEC message specification and validation tools",
	Long: `gmsec loads a GMSEC message schema directory and either validates a
wire-format message against it or prints a schema's resolved field list.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema-path", ".", "root of the GMSEC schema directory tree")
	rootCmd.PersistentFlags().IntVar(&specVersion, "spec-version", 201900, "message specification version, e.g. 201900 for 2019.00")
	rootCmd.PersistentFlags().IntVar(&schemaLevel, "schema-level", 0, "schema addendum level to resolve against")
}

// Execute runs the root command, exiting non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
