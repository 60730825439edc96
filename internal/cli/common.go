package cli

import (
	"fmt"

	"github.com/danieljhkim/tidyup/internal/clock"
	"github.com/danieljhkim/tidyup/internal/engine"
	"github.com/danieljhkim/tidyup/internal/fsops"
)

// maxPreviewLines caps the preview output; the full plan is always
// reflected in the summary counts.
const maxPreviewLines = 80

// newEngine creates an engine with real implementations of all dependencies.
func newEngine() *engine.Engine {
	return engine.New(fsops.NewRealFS(), &clock.RealClock{})
}

// runErr converts a run's failure count into the error that makes the
// process exit nonzero. Dry-runs always return nil: failures are surfaced
// in the preview, but nothing was mutated, so a completed dry-run exits
// zero.
func runErr(apply bool, failed, total int) error {
	if !apply || failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d items failed", failed, total)
}
