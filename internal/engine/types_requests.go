package engine

// RenameRequest describes one rename run. All inputs are explicit; the
// engine never reads flags, environment, or the working directory.
type RenameRequest struct {
	// Root is the directory to scan.
	Root string

	// Recursive includes subdirectories.
	Recursive bool

	// Extensions is an allow-list (without dots, any case). Empty means
	// the default image extension set.
	Extensions []string

	// TimeSource is the metadata preference: auto, exif, date-added or
	// mtime. Empty means auto.
	TimeSource string

	// Apply performs the renames. False is a dry-run: no filesystem
	// writes, no log.
	Apply bool

	// LogPath overrides the default log location (root/rename-log-<stamp>.csv).
	LogPath string
}

// OrganizeRequest describes one organize run.
type OrganizeRequest struct {
	// Root is the directory to organize.
	Root string

	// Recursive includes subdirectories. The result directory and its
	// logs are always excluded from the scan.
	Recursive bool

	// KeepStructure preserves each file's relative directory under its
	// category folder instead of flattening.
	KeepStructure bool

	// MoveUnclassified moves unclassifiable files to the 其他 category.
	// When false they are only reported.
	MoveUnclassified bool

	// CategoriesFile is an optional YAML file overriding the extension
	// to category mapping.
	CategoriesFile string

	// ResultDirName overrides the name of the classification output
	// directory created under Root. Empty means the default (分类结果).
	ResultDirName string

	// Apply performs the moves. False is a dry-run.
	Apply bool
}

// UndoRequest describes one undo run against a prior log.
type UndoRequest struct {
	// LogPath is the CSV log produced by a previous apply.
	LogPath string

	// Apply performs the restores. False previews them.
	Apply bool
}
