package planner

import (
	"github.com/danieljhkim/tidyup/internal/fsops"
	"github.com/danieljhkim/tidyup/internal/scan"
)

// KeyFunc computes the naming key for a file, plus a label identifying
// which provider produced it. An error fails the individual item, never
// the whole build.
type KeyFunc func(f scan.SourceFile) (key, source string, err error)

// TargetFunc maps a file and its key to the candidate target path, before
// collision resolution.
type TargetFunc func(f scan.SourceFile, key string) string

// Builder constructs plans from scanned files.
type Builder struct {
	fs    fsops.FS
	split SplitFunc
}

// NewBuilder creates a Builder. split controls where collision suffixes
// are inserted; nil uses plain filepath.Ext semantics.
func NewBuilder(fs fsops.FS, split SplitFunc) *Builder {
	return &Builder{fs: fs, split: split}
}

// Build produces one Item per source file, in input order. Files whose
// key cannot be resolved become failed items; files whose target equals
// their current path become skipped items (a no-op rename is not a move).
// All planned targets are unique within the batch and unoccupied on disk
// at build time.
func (b *Builder) Build(files []scan.SourceFile, keyFn KeyFunc, targetFn TargetFunc) *Plan {
	reg := NewRegistry()
	resolver := NewResolver(b.fs, reg, b.split)

	plan := &Plan{Items: make([]Item, 0, len(files))}
	for _, f := range files {
		key, source, err := keyFn(f)
		if err != nil {
			plan.Items = append(plan.Items, Item{
				SourcePath: f.Path,
				Key:        key,
				KeySource:  source,
				Status:     StatusFailed,
				Err:        err.Error(),
			})
			continue
		}

		candidate := targetFn(f, key)
		if candidate == f.Path && !reg.Claimed(candidate) {
			// Already named correctly. Claim the path so no other item
			// can be planned onto it.
			reg.Claim(candidate)
			plan.Items = append(plan.Items, Item{
				SourcePath: f.Path,
				TargetPath: candidate,
				Key:        key,
				KeySource:  source,
				Status:     StatusSkipped,
			})
			continue
		}

		target, err := resolver.Resolve(candidate, f.Path)
		if err != nil {
			plan.Items = append(plan.Items, Item{
				SourcePath: f.Path,
				Key:        key,
				KeySource:  source,
				Status:     StatusFailed,
				Err:        err.Error(),
			})
			continue
		}
		if target == f.Path {
			// The resolver landed on the file's own name (it already
			// carries the right suffix). Nothing to move.
			plan.Items = append(plan.Items, Item{
				SourcePath: f.Path,
				TargetPath: target,
				Key:        key,
				KeySource:  source,
				Status:     StatusSkipped,
			})
			continue
		}

		plan.Items = append(plan.Items, Item{
			SourcePath: f.Path,
			TargetPath: target,
			Key:        key,
			KeySource:  source,
			Status:     StatusPlanned,
		})
	}
	return plan
}
