// Package cli wires the tidyup commands. Commands parse flags into
// explicit engine requests and render results; all decisions live in the
// engine.
package cli

import (
	"github.com/spf13/cobra"
)

// rootCmd is the root command for tidyup.
var rootCmd = &cobra.Command{
	Use:     "tidyup",
	Version: "dev",
	Short:   "Safe, reversible batch file renaming and organizing",
	Long: `tidyup reorganizes a local directory in reversible batches.

Every mutating run is planned first, previewed on request, executed with
per-file error isolation, and logged to a CSV that 'tidyup undo' can replay
exactly. Dry-run is the default: nothing moves without --apply.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// SetVersion overrides the version reported by --version.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(organizeCmd)
	rootCmd.AddCommand(undoCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
