package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/danieljhkim/tidyup/internal/metadata"
	"github.com/danieljhkim/tidyup/internal/oplog"
	"github.com/danieljhkim/tidyup/internal/planner"
	"github.com/danieljhkim/tidyup/internal/scan"
)

// Rename renames image files under the request root to
// <folder>_<YYYYMMDDHHMMSSmmm><ext>, using the timestamp fallback chain.
//
// Algorithm:
//  1. Validate the root and build the resolver chain (fatal on failure)
//  2. Scan eligible files in deterministic order
//  3. Build the plan: resolve a timestamp per file, derive the target
//     name, resolve collisions
//  4. Dry-run: stop here, nothing written
//  5. Apply: create the log, execute the plan item by item, log every
//     attempt
func (e *Engine) Rename(ctx context.Context, req *RenameRequest) (*RenameResult, error) {
	root, err := e.resolveRoot(req.Root)
	if err != nil {
		return nil, err
	}

	chain, err := metadata.Chain(req.TimeSource)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadTimeSource, req.TimeSource)
	}

	exts := metadata.DefaultImageExts
	if len(req.Extensions) > 0 {
		exts = make(map[string]bool, len(req.Extensions))
		for _, ext := range req.Extensions {
			ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
			if ext != "" {
				exts[ext] = true
			}
		}
	}

	files, err := scan.Scan(root, scan.Options{
		Recursive:  req.Recursive,
		Extensions: exts,
	})
	if err != nil {
		return nil, err
	}

	// Epoch milliseconds per source path, for the log's timestamp_ms
	// column. Keyed separately so the planner stays agnostic of what a
	// key means.
	millis := make(map[string]int64, len(files))

	keyFn := func(f scan.SourceFile) (string, string, error) {
		t, source, err := metadata.ResolveTime(f.Path, chain)
		if err != nil {
			return "", "", err
		}
		millis[f.Path] = t.UnixMilli()
		return metadata.FormatKey(t), source, nil
	}
	targetFn := func(f scan.SourceFile, key string) string {
		// Extension keeps its original case.
		ext := filepath.Ext(f.Path)
		return filepath.Join(filepath.Dir(f.Path), f.Folder+"_"+key+ext)
	}

	plan := planner.NewBuilder(e.fs, nil).Build(files, keyFn, targetFn)

	result := &RenameResult{Root: root, Plan: plan}
	if !req.Apply {
		counts := plan.Counts()
		result.Failed = counts[planner.StatusFailed]
		result.Skipped = counts[planner.StatusSkipped]
		return result, nil
	}

	logPath := req.LogPath
	if logPath == "" {
		logPath = filepath.Join(root, "rename-log-"+e.stamp()+".csv")
	}
	log, err := oplog.NewWriter(logPath, oplog.RenameHeader)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = log.Close()
	}()
	result.LogPath = log.Path

	applied, failed, err := e.applyPlan(plan, nil, func(it planner.Item) error {
		rec := oplog.Record{
			OldPath: it.SourcePath,
			NewPath: it.TargetPath,
			Source:  it.KeySource,
			Status:  statusColumn(it),
			Error:   it.Err,
		}
		if ms, ok := millis[it.SourcePath]; ok {
			rec.TimestampMS = strconv.FormatInt(ms, 10)
		}
		return log.Append(rec)
	})
	if err != nil {
		return nil, err
	}

	result.Applied = applied
	result.Failed = failed
	result.Skipped = plan.Counts()[planner.StatusSkipped]
	return result, nil
}
