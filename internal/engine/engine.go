// Package engine provides the core batch-mutation logic for tidyup.
//
// The engine is the orchestration layer between CLI commands and the
// lower-level packages: it scans, plans, previews, applies and undoes.
// Per-item failures are recorded on the plan and logged, never raised;
// only environment-level problems (missing target directory, unreadable
// log) surface as errors.
package engine

import (
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/tidyup/internal/clock"
	"github.com/danieljhkim/tidyup/internal/fsops"
	"github.com/danieljhkim/tidyup/internal/oplog"
	"github.com/danieljhkim/tidyup/internal/planner"
)

// Engine orchestrates all tidyup operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs    fsops.FS
	clock clock.Clock
}

// New creates a new Engine with the given dependencies.
func New(fs fsops.FS, clk clock.Clock) *Engine {
	return &Engine{fs: fs, clock: clk}
}

// stamp returns the per-run timestamp used in log file names.
func (e *Engine) stamp() string {
	return e.clock.Now().Format("20060102-150405")
}

// resolveRoot validates and absolutizes the target directory.
// A missing or non-directory root is fatal: nothing has been mutated yet.
func (e *Engine) resolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", root, err)
	}
	info, err := e.fs.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, abs)
	}
	return abs, nil
}

// applyPlan executes a plan in order, isolating per-item failures.
//
// For every planned item the target is re-probed at execution time: the
// filesystem may have changed since planning, and if the target now exists
// the item is re-resolved through the collision resolver before moving.
// The apply registry is pre-seeded with every pending target so a
// re-resolved path can never land on another item's destination.
//
// logItem is called once per attempted item (successes and failures both),
// in execution order. Skipped items are not moves and are not logged.
// A move that fails leaves its source untouched and the batch continues.
func (e *Engine) applyPlan(plan *planner.Plan, split planner.SplitFunc, logItem func(planner.Item) error) (applied, failed int, err error) {
	reg := planner.NewRegistry()
	for _, it := range plan.Items {
		if it.Status == planner.StatusPlanned {
			reg.Claim(it.TargetPath)
		}
	}
	resolver := planner.NewResolver(e.fs, reg, split)

	for i := range plan.Items {
		it := &plan.Items[i]
		switch it.Status {
		case planner.StatusFailed:
			failed++
			if err := logItem(*it); err != nil {
				return applied, failed, err
			}
		case planner.StatusPlanned:
			e.applyItem(it, resolver)
			switch it.Status {
			case planner.StatusApplied:
				applied++
			case planner.StatusSkipped:
				// Re-resolution landed on the file's own name; no move
				// happened, so nothing to log.
				continue
			default:
				failed++
			}
			if err := logItem(*it); err != nil {
				return applied, failed, err
			}
		}
	}
	return applied, failed, nil
}

// applyItem performs one move, mutating the item's status in place.
func (e *Engine) applyItem(it *planner.Item, resolver *planner.Resolver) {
	exists, err := e.fs.Exists(it.TargetPath)
	if err != nil {
		it.Status = planner.StatusFailed
		it.Err = fmt.Sprintf("failed to probe target: %v", err)
		return
	}
	if exists {
		// Something appeared at the target since planning. Find a new
		// unique path rather than overwrite.
		target, err := resolver.Resolve(it.TargetPath, it.SourcePath)
		if err != nil {
			it.Status = planner.StatusFailed
			it.Err = err.Error()
			return
		}
		it.TargetPath = target
		if target == it.SourcePath {
			// The file already carries the only free name. Nothing to move.
			it.Status = planner.StatusSkipped
			return
		}
	}

	if err := e.fs.MkdirAll(filepath.Dir(it.TargetPath), 0755); err != nil {
		it.Status = planner.StatusFailed
		it.Err = fmt.Sprintf("failed to create target directory: %v", err)
		return
	}
	if err := e.fs.Move(it.SourcePath, it.TargetPath); err != nil {
		it.Status = planner.StatusFailed
		it.Err = err.Error()
		return
	}
	it.Status = planner.StatusApplied
}

// statusColumn maps an item status to the value written in the log.
func statusColumn(it planner.Item) string {
	if it.Status == planner.StatusApplied {
		return oplog.StatusOK
	}
	return it.Status
}
