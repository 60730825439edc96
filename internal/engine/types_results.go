package engine

import "github.com/danieljhkim/tidyup/internal/planner"

// RenameResult reports what a rename run planned and did.
type RenameResult struct {
	// Root is the resolved absolute scan root.
	Root string

	// Plan is the full plan; after an apply, item statuses reflect what
	// actually happened.
	Plan *planner.Plan

	// LogPath is where the log was written. Empty for dry-runs.
	LogPath string

	// Applied, Failed and Skipped count items by final status.
	Applied int
	Failed  int
	Skipped int
}

// OrganizeResult reports what an organize run planned and did.
type OrganizeResult struct {
	// Root is the resolved absolute scan root.
	Root string

	// ResultDir is the classification output root (root/分类结果).
	ResultDir string

	// Plan is the full plan; after an apply, item statuses reflect what
	// actually happened. Item.Key holds the category.
	Plan *planner.Plan

	// CategoryCounts counts planned items per category.
	CategoryCounts map[string]int

	// Unclassified lists files with no category when they are reported
	// rather than moved.
	Unclassified []string

	// LogPath is where the log was written. Empty for dry-runs.
	LogPath string

	Applied int
	Failed  int
	Skipped int
}

// UndoOutcome is the result of replaying one log row.
type UndoOutcome struct {
	// OldPath is where the file is being restored to.
	OldPath string

	// NewPath is where the original run left it.
	NewPath string

	// Status is ok (restored, or would restore in a preview), skipped
	// (nothing at NewPath anymore) or failed.
	Status string

	// Err describes the failure when Status is failed.
	Err string
}

// UndoResult reports an undo run.
type UndoResult struct {
	// LogPath is the log that was replayed.
	LogPath string

	// Outcomes has one entry per replayed row, in replay (reverse log)
	// order.
	Outcomes []UndoOutcome

	// Warnings lists malformed log rows that were passed over.
	Warnings []string

	Restored int
	Failed   int
	Skipped  int
}
