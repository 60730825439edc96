package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/tidyup/internal/oplog"
	"github.com/danieljhkim/tidyup/internal/planner"
)

// Undo replays a prior run's log in reverse, moving each successfully
// moved file back to its original path.
//
// Rows are processed newest-first so chained collision-suffix renames
// unwind without re-colliding. Per-row problems never abort the run:
//   - the moved file is gone from its new path: skipped (warning)
//   - the original path is occupied again: failed, never overwritten
//   - the move back fails: failed with the underlying error
//
// The log file itself is never deleted; undo is repeatable and each run
// produces its own reviewable outcome list. Without Apply the same
// decisions are computed but nothing is moved.
func (e *Engine) Undo(ctx context.Context, req *UndoRequest) (*UndoResult, error) {
	logPath, err := filepath.Abs(req.LogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve log path: %w", err)
	}

	parsed, err := oplog.Read(logPath)
	if err != nil {
		return nil, err
	}

	result := &UndoResult{LogPath: logPath, Warnings: parsed.Warnings}

	for i := len(parsed.Entries) - 1; i >= 0; i-- {
		entry := parsed.Entries[i]
		if entry.Status != oplog.StatusOK {
			// Failed or skipped in the original run: there is nothing
			// to move back.
			continue
		}

		outcome := UndoOutcome{OldPath: entry.OldPath, NewPath: entry.NewPath}

		exists, err := e.fs.Exists(entry.NewPath)
		if err != nil {
			outcome.Status = planner.StatusFailed
			outcome.Err = fmt.Sprintf("failed to probe %s: %v", entry.NewPath, err)
			result.Outcomes = append(result.Outcomes, outcome)
			result.Failed++
			continue
		}
		if !exists {
			outcome.Status = planner.StatusSkipped
			outcome.Err = "file no longer at logged path"
			result.Outcomes = append(result.Outcomes, outcome)
			result.Skipped++
			continue
		}

		oldExists, err := e.fs.Exists(entry.OldPath)
		if err != nil {
			outcome.Status = planner.StatusFailed
			outcome.Err = fmt.Sprintf("failed to probe %s: %v", entry.OldPath, err)
			result.Outcomes = append(result.Outcomes, outcome)
			result.Failed++
			continue
		}
		if oldExists {
			outcome.Status = planner.StatusFailed
			outcome.Err = "original path already occupied, refusing to overwrite"
			result.Outcomes = append(result.Outcomes, outcome)
			result.Failed++
			continue
		}

		if req.Apply {
			if err := e.fs.MkdirAll(filepath.Dir(entry.OldPath), 0755); err != nil {
				outcome.Status = planner.StatusFailed
				outcome.Err = fmt.Sprintf("failed to create directory: %v", err)
				result.Outcomes = append(result.Outcomes, outcome)
				result.Failed++
				continue
			}
			if err := e.fs.Move(entry.NewPath, entry.OldPath); err != nil {
				outcome.Status = planner.StatusFailed
				outcome.Err = err.Error()
				result.Outcomes = append(result.Outcomes, outcome)
				result.Failed++
				continue
			}
		}

		outcome.Status = oplog.StatusOK
		result.Outcomes = append(result.Outcomes, outcome)
		result.Restored++
	}

	return result, nil
}
