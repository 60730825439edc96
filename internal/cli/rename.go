package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/tidyup/internal/engine"
	"github.com/danieljhkim/tidyup/internal/planner"
)

var (
	renamePath       string
	renameRecursive  bool
	renameApply      bool
	renameDryRun     bool
	renameExts       []string
	renameTimeSource string
	renameLogPath    string
)

var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Rename image files by metadata timestamp",
	Long: `Rename image files under --path to <folder>_<YYYYMMDDHHMMSSmmm><ext>.

The timestamp comes from an ordered metadata fallback chain (EXIF capture
date, macOS Date Added, file creation time, modification time); the log
records which source won for each file. Without --apply this is a preview
and nothing is written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &engine.RenameRequest{
			Root:       renamePath,
			Recursive:  renameRecursive,
			Extensions: renameExts,
			TimeSource: renameTimeSource,
			Apply:      renameApply && !renameDryRun,
			LogPath:    renameLogPath,
		}

		result, err := newEngine().Rename(context.Background(), req)
		if err != nil {
			return err
		}

		PrintSection("Rename Plan")
		PrintLabelValue("Directory", result.Root)
		PrintLabelValue("Summary", planner.Summary(result.Plan))
		if len(result.Plan.Items) > 0 {
			fmt.Println()
			PrintLines(planner.Preview(result.Plan), maxPreviewLines)
		}

		if !req.Apply {
			fmt.Println()
			PrintInfo("Dry-run complete. Re-run with --apply to rename.")
			return nil
		}

		fmt.Println()
		if result.Failed > 0 {
			PrintWarning(fmt.Sprintf("Renamed %s, %d failed",
				PrintCount(result.Applied, "file", "files"), result.Failed))
		} else {
			PrintSuccess(fmt.Sprintf("Renamed %s", PrintCount(result.Applied, "file", "files")))
		}
		PrintLabelValue("Log", result.LogPath)
		PrintLabelValue("Undo", fmt.Sprintf("tidyup undo %s --apply", result.LogPath))
		return runErr(req.Apply, result.Failed, len(result.Plan.Items))
	},
}

func init() {
	renameCmd.Flags().StringVar(&renamePath, "path", "", "Target directory (required)")
	renameCmd.Flags().BoolVar(&renameRecursive, "recursive", false, "Include subdirectories")
	renameCmd.Flags().BoolVar(&renameApply, "apply", false, "Actually rename files (default is dry-run)")
	renameCmd.Flags().BoolVar(&renameDryRun, "dry-run", false, "Preview only, even with --apply")
	renameCmd.Flags().StringArrayVar(&renameExts, "ext", nil, "Extensions to include (repeatable; default: common images)")
	renameCmd.Flags().StringVar(&renameTimeSource, "time-source", "auto", "Timestamp preference: auto, exif, date-added, birthtime or mtime")
	renameCmd.Flags().StringVar(&renameLogPath, "log", "", "CSV log path (default: in target directory)")
	_ = renameCmd.MarkFlagRequired("path")
}
