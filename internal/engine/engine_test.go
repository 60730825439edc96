package engine

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/danieljhkim/tidyup/internal/clock"
	"github.com/danieljhkim/tidyup/internal/fsops"
	"github.com/danieljhkim/tidyup/internal/planner"
)

// testEngine returns an engine over the real filesystem with a fixed clock.
func testEngine() (*Engine, *clock.FakeClock) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	return New(fsops.NewRealFS(), clk), clk
}

// failingFS delegates to a real FS but fails Move for one source path,
// standing in for a permission error on a single file.
type failingFS struct {
	fsops.FS
	failSrc string
}

func (f *failingFS) Move(src, dst string) error {
	if src == f.failSrc {
		return errors.New("permission denied")
	}
	return f.FS.Move(src, dst)
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(filepath.Base(path)), 0644); err != nil {
		t.Fatal(err)
	}
}

// setMtime pins a file's modification time so mtime-derived keys are
// deterministic.
func setMtime(t *testing.T, path string, ts time.Time) {
	t.Helper()
	if err := os.Chtimes(path, ts, ts); err != nil {
		t.Fatal(err)
	}
}

// listNames returns the sorted names of regular files directly in dir.
func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func mustExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}

func mustNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Errorf("expected %s to not exist", path)
	}
}

func TestApplyPlan_ReresolvedToOwnNameIsSkip(t *testing.T) {
	// The file already carries the first suffix of its planned target, and
	// the target itself was taken after planning. Re-resolution lands back
	// on the file's own name, which must be a skip, never a Move onto
	// itself.
	dir := t.TempDir()
	src := filepath.Join(dir, "photos_123_001.jpg")
	writeFile(t, src)
	writeFile(t, filepath.Join(dir, "photos_123.jpg"))

	eng, _ := testEngine()
	plan := &planner.Plan{Items: []planner.Item{{
		SourcePath: src,
		TargetPath: filepath.Join(dir, "photos_123.jpg"),
		Status:     planner.StatusPlanned,
	}}}

	var logged int
	applied, failed, err := eng.applyPlan(plan, nil, func(planner.Item) error {
		logged++
		return nil
	})
	if err != nil {
		t.Fatalf("applyPlan returned error: %v", err)
	}
	if applied != 0 || failed != 0 || logged != 0 {
		t.Errorf("expected 0 applied / 0 failed / 0 logged, got %d / %d / %d",
			applied, failed, logged)
	}
	if plan.Items[0].Status != planner.StatusSkipped {
		t.Errorf("expected skipped, got %s (err %q)", plan.Items[0].Status, plan.Items[0].Err)
	}
	mustExist(t, src)
	mustExist(t, filepath.Join(dir, "photos_123.jpg"))
}
