package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/danieljhkim/tidyup/internal/fsops"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
}

func TestResolver_FreePathUnchanged(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegistry()
	r := NewResolver(fsops.NewRealFS(), reg, nil)

	candidate := filepath.Join(dir, "photos_123.jpg")
	got, err := r.Resolve(candidate, filepath.Join(dir, "a.jpg"))
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != candidate {
		t.Errorf("expected unchanged path %s, got %s", candidate, got)
	}
	if !reg.Claimed(candidate) {
		t.Error("expected chosen path to be claimed in registry")
	}
}

func TestResolver_SuffixesInOrder(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegistry()
	r := NewResolver(fsops.NewRealFS(), reg, nil)

	candidate := filepath.Join(dir, "photos_123.jpg")
	want := []string{
		candidate,
		filepath.Join(dir, "photos_123_001.jpg"),
		filepath.Join(dir, "photos_123_002.jpg"),
		filepath.Join(dir, "photos_123_003.jpg"),
	}

	for i, expected := range want {
		got, err := r.Resolve(candidate, filepath.Join(dir, fmt.Sprintf("src%d.jpg", i)))
		if err != nil {
			t.Fatalf("Resolve %d returned error: %v", i, err)
		}
		if got != expected {
			t.Errorf("Resolve %d: expected %s, got %s", i, expected, got)
		}
	}
}

func TestResolver_CollidesWithExistingFile(t *testing.T) {
	dir := t.TempDir()
	candidate := filepath.Join(dir, "photos_123.jpg")
	touch(t, candidate)

	r := NewResolver(fsops.NewRealFS(), NewRegistry(), nil)
	got, err := r.Resolve(candidate, filepath.Join(dir, "a.jpg"))
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	want := filepath.Join(dir, "photos_123_001.jpg")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestResolver_OwnPathNotACollision(t *testing.T) {
	dir := t.TempDir()
	own := filepath.Join(dir, "photos_123.jpg")
	touch(t, own)

	r := NewResolver(fsops.NewRealFS(), NewRegistry(), nil)
	got, err := r.Resolve(own, own)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != own {
		t.Errorf("expected own path %s back, got %s", own, got)
	}
}

func TestResolver_WidensPast999(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegistry()
	candidate := filepath.Join(dir, "photos_123.jpg")

	reg.Claim(candidate)
	for i := 1; i <= 999; i++ {
		reg.Claim(filepath.Join(dir, fmt.Sprintf("photos_123_%03d.jpg", i)))
	}

	r := NewResolver(fsops.NewRealFS(), reg, nil)
	got, err := r.Resolve(candidate, filepath.Join(dir, "a.jpg"))
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	want := filepath.Join(dir, "photos_123_1000.jpg")
	if got != want {
		t.Errorf("expected widened suffix %s, got %s", want, got)
	}
}

func TestResolver_CompoundExtensionSplit(t *testing.T) {
	dir := t.TempDir()
	candidate := filepath.Join(dir, "backup.tar.gz")
	touch(t, candidate)

	split := func(name string) (string, string) {
		return "backup", ".tar.gz"
	}
	r := NewResolver(fsops.NewRealFS(), NewRegistry(), split)
	got, err := r.Resolve(candidate, filepath.Join(dir, "src.tar.gz"))
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	want := filepath.Join(dir, "backup_001.tar.gz")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestResolver_Deterministic(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "photos_123.jpg"))

	resolveAll := func() []string {
		r := NewResolver(fsops.NewRealFS(), NewRegistry(), nil)
		var out []string
		for i := 0; i < 3; i++ {
			got, err := r.Resolve(filepath.Join(dir, "photos_123.jpg"), filepath.Join(dir, fmt.Sprintf("src%d.jpg", i)))
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			out = append(out, got)
		}
		return out
	}

	first := resolveAll()
	second := resolveAll()
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("resolution %d differs between runs: %s vs %s", i, first[i], second[i])
		}
	}
}
