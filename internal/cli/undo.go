package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/tidyup/internal/engine"
	"github.com/danieljhkim/tidyup/internal/oplog"
	"github.com/danieljhkim/tidyup/internal/planner"
)

var undoApply bool

var undoCmd = &cobra.Command{
	Use:   "undo <log.csv>",
	Short: "Revert a previous run using its CSV log",
	Long: `Replay a previous run's log in reverse, moving files back where they were.

Rows whose file has since disappeared are skipped with a warning; rows
whose original path is occupied again are reported as failures and never
overwritten. Without --apply this previews the restore.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &engine.UndoRequest{LogPath: args[0], Apply: undoApply}

		result, err := newEngine().Undo(context.Background(), req)
		if err != nil {
			return err
		}

		PrintSection("Undo")
		PrintLabelValue("Log", result.LogPath)

		for _, warning := range result.Warnings {
			PrintWarning("log: " + warning)
		}
		for _, o := range result.Outcomes {
			switch o.Status {
			case oplog.StatusOK:
				PrintInfo(fmt.Sprintf("  %s -> %s", o.NewPath, o.OldPath))
			case planner.StatusSkipped:
				PrintWarning(fmt.Sprintf("skip %s: %s", o.NewPath, o.Err))
			default:
				PrintError(fmt.Sprintf("%s: %s", o.NewPath, o.Err))
			}
		}

		fmt.Println()
		if !req.Apply {
			PrintInfo(fmt.Sprintf("Dry-run: would restore %s (%d skipped, %d failed). Re-run with --apply to restore.",
				PrintCount(result.Restored, "file", "files"), result.Skipped, result.Failed))
			return nil
		}

		if result.Failed > 0 {
			PrintWarning(fmt.Sprintf("Restored %s, %d skipped, %d failed",
				PrintCount(result.Restored, "file", "files"), result.Skipped, result.Failed))
		} else {
			PrintSuccess(fmt.Sprintf("Restored %s (%d skipped)",
				PrintCount(result.Restored, "file", "files"), result.Skipped))
		}
		return runErr(req.Apply, result.Failed, len(result.Outcomes))
	},
}

func init() {
	undoCmd.Flags().BoolVar(&undoApply, "apply", false, "Actually move files back (default is dry-run)")
}
