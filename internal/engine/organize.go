package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/tidyup/internal/metadata"
	"github.com/danieljhkim/tidyup/internal/oplog"
	"github.com/danieljhkim/tidyup/internal/planner"
	"github.com/danieljhkim/tidyup/internal/scan"
)

// ResultDirName is the classification output root created under the
// target directory.
const ResultDirName = "分类结果"

// logDirName is the log subdirectory under the result directory.
const logDirName = "_logs"

// Organize moves files under the request root into category subfolders of
// root/分类结果. The result directory and its logs are always excluded from
// the scan so a second run never reprocesses its own output.
func (e *Engine) Organize(ctx context.Context, req *OrganizeRequest) (*OrganizeResult, error) {
	root, err := e.resolveRoot(req.Root)
	if err != nil {
		return nil, err
	}
	dirName := req.ResultDirName
	if dirName == "" {
		dirName = ResultDirName
	}
	resultDir := filepath.Join(root, dirName)

	classifier := metadata.NewClassifier()
	if req.CategoriesFile != "" {
		if err := classifier.LoadOverrides(req.CategoriesFile); err != nil {
			return nil, err
		}
	}

	files, err := scan.Scan(root, scan.Options{
		Recursive:       req.Recursive,
		ExcludeSubtrees: []string{resultDir},
	})
	if err != nil {
		return nil, err
	}

	result := &OrganizeResult{
		Root:           root,
		ResultDir:      resultDir,
		CategoryCounts: make(map[string]int),
	}

	// Classification happens before planning so report-only unclassified
	// files never enter the plan at all.
	eligible := files[:0]
	categories := make(map[string]string, len(files))
	for _, f := range files {
		cat, ok := classifier.Classify(filepath.Base(f.Path))
		if !ok {
			if !req.MoveUnclassified {
				result.Unclassified = append(result.Unclassified, f.Path)
				continue
			}
			cat = metadata.CatOther
		}
		categories[f.Path] = cat
		eligible = append(eligible, f)
	}

	keyFn := func(f scan.SourceFile) (string, string, error) {
		return categories[f.Path], "", nil
	}
	targetFn := func(f scan.SourceFile, key string) string {
		destDir := filepath.Join(resultDir, key)
		if req.KeepStructure {
			if rel, err := filepath.Rel(root, filepath.Dir(f.Path)); err == nil && rel != "." {
				destDir = filepath.Join(destDir, rel)
			}
		}
		return filepath.Join(destDir, filepath.Base(f.Path))
	}

	plan := planner.NewBuilder(e.fs, metadata.SplitExt).Build(eligible, keyFn, targetFn)
	result.Plan = plan
	for _, it := range plan.Items {
		if it.Status == planner.StatusPlanned {
			result.CategoryCounts[it.Key]++
		}
	}

	if !req.Apply {
		counts := plan.Counts()
		result.Failed = counts[planner.StatusFailed]
		result.Skipped = counts[planner.StatusSkipped]
		return result, nil
	}

	logPath := filepath.Join(resultDir, logDirName, "sort-log-"+e.stamp()+".csv")
	log, err := oplog.NewWriter(logPath, oplog.OrganizeHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to create log: %w", err)
	}
	defer func() {
		_ = log.Close()
	}()
	result.LogPath = log.Path

	applied, failed, err := e.applyPlan(plan, metadata.SplitExt, func(it planner.Item) error {
		return log.Append(oplog.Record{
			OldPath: it.SourcePath,
			NewPath: it.TargetPath,
			Status:  statusColumn(it),
			Error:   it.Err,
		})
	})
	if err != nil {
		return nil, err
	}

	result.Applied = applied
	result.Failed = failed
	result.Skipped = plan.Counts()[planner.StatusSkipped]
	return result, nil
}
