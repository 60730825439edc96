package planner

import "fmt"

// Preview renders a plan as human-readable "old -> new" lines without
// touching the filesystem. Safe to call repeatedly; rendering a plan has
// no side effects.
func Preview(plan *Plan) []string {
	lines := make([]string, 0, len(plan.Items))
	for _, it := range plan.Items {
		switch it.Status {
		case StatusFailed:
			lines = append(lines, fmt.Sprintf("%s !! %s", it.SourcePath, it.Err))
		case StatusSkipped:
			lines = append(lines, fmt.Sprintf("%s == (already in place)", it.SourcePath))
		default:
			lines = append(lines, fmt.Sprintf("%s -> %s", it.SourcePath, it.TargetPath))
		}
	}
	return lines
}

// Summary renders the per-status counts as a single line.
func Summary(plan *Plan) string {
	counts := plan.Counts()
	return fmt.Sprintf("%d to move, %d skipped, %d failed",
		counts[StatusPlanned], counts[StatusSkipped], counts[StatusFailed])
}
