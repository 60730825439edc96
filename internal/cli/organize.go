package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/tidyup/internal/engine"
	"github.com/danieljhkim/tidyup/internal/metadata"
	"github.com/danieljhkim/tidyup/internal/planner"
)

var (
	organizePath          string
	organizeRecursive     bool
	organizeApply         bool
	organizeDryRun        bool
	organizeKeepStructure bool
	organizeUnclassified  string
	organizeCategories    string
	organizeResultDir     string
)

var organizeCmd = &cobra.Command{
	Use:   "organize",
	Short: "Move files into category folders by extension",
	Long: `Move files under --path into category subfolders of ` + engine.ResultDirName + `.

Categories are assigned by extension from a fixed table, optionally
overridden with --categories. The result directory and its logs are never
rescanned. Without --apply this is a preview and nothing is moved.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if organizeUnclassified != "move" && organizeUnclassified != "report" {
			return fmt.Errorf("invalid --unclassified value: %s (want move or report)", organizeUnclassified)
		}

		req := &engine.OrganizeRequest{
			Root:             organizePath,
			Recursive:        organizeRecursive,
			KeepStructure:    organizeKeepStructure,
			MoveUnclassified: organizeUnclassified == "move",
			CategoriesFile:   organizeCategories,
			ResultDirName:    organizeResultDir,
			Apply:            organizeApply && !organizeDryRun,
		}

		result, err := newEngine().Organize(context.Background(), req)
		if err != nil {
			return err
		}

		PrintSection("Organize Plan")
		PrintLabelValue("Directory", result.Root)
		PrintLabelValue("Result dir", result.ResultDir)
		for _, cat := range metadata.Categories {
			if result.CategoryCounts[cat] > 0 {
				PrintLabelValue(cat, fmt.Sprintf("%d", result.CategoryCounts[cat]))
			}
		}
		if n := result.CategoryCounts[metadata.CatOther]; n > 0 {
			PrintLabelValue(metadata.CatOther, fmt.Sprintf("%d", n))
		}
		PrintLabelValue("Summary", planner.Summary(result.Plan))

		if len(result.Plan.Items) > 0 {
			fmt.Println()
			PrintLines(planner.Preview(result.Plan), maxPreviewLines)
		}
		if len(result.Unclassified) > 0 {
			fmt.Println()
			PrintWarning(fmt.Sprintf("%s left in place (no category)",
				PrintCount(len(result.Unclassified), "file", "files")))
			PrintLines(result.Unclassified, 30)
		}

		if !req.Apply {
			fmt.Println()
			PrintInfo("Dry-run complete. Re-run with --apply to move files.")
			return nil
		}

		fmt.Println()
		if result.Failed > 0 {
			PrintWarning(fmt.Sprintf("Moved %s, %d failed",
				PrintCount(result.Applied, "file", "files"), result.Failed))
		} else {
			PrintSuccess(fmt.Sprintf("Moved %s", PrintCount(result.Applied, "file", "files")))
		}
		PrintLabelValue("Log", result.LogPath)
		PrintLabelValue("Undo", fmt.Sprintf("tidyup undo %s --apply", result.LogPath))
		return runErr(req.Apply, result.Failed, len(result.Plan.Items))
	},
}

func init() {
	organizeCmd.Flags().StringVar(&organizePath, "path", "", "Target directory (required)")
	organizeCmd.Flags().BoolVar(&organizeRecursive, "recursive", false, "Scan subdirectories (the result directory is always excluded)")
	organizeCmd.Flags().BoolVar(&organizeApply, "apply", false, "Actually move files (default is dry-run)")
	organizeCmd.Flags().BoolVar(&organizeDryRun, "dry-run", false, "Preview only, even with --apply")
	organizeCmd.Flags().BoolVar(&organizeKeepStructure, "keep-structure", false, "Keep relative paths under each category instead of flattening")
	organizeCmd.Flags().StringVar(&organizeUnclassified, "unclassified", "move", "Unclassifiable files: move (to "+metadata.CatOther+") or report")
	organizeCmd.Flags().StringVar(&organizeCategories, "categories", "", "YAML file overriding the extension to category mapping")
	organizeCmd.Flags().StringVar(&organizeResultDir, "result-dir-name", "", "Name of the output directory under --path (default: "+engine.ResultDirName+")")
	_ = organizeCmd.MarkFlagRequired("path")
}
