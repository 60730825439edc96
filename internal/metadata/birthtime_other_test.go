//go:build !darwin

package metadata

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestBirthTime_FallsThroughOffDarwin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.jpg")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 6, 15, 8, 30, 0, 0, time.Local)
	if err := os.Chtimes(path, want, want); err != nil {
		t.Fatal(err)
	}

	if _, err := birthTime(path); err == nil {
		t.Fatal("expected birthTime to be unavailable on this platform")
	}

	chain, err := Chain(TimeSourceBirthTime)
	if err != nil {
		t.Fatal(err)
	}
	got, source, err := ResolveTime(path, chain)
	if err != nil {
		t.Fatalf("ResolveTime returned error: %v", err)
	}
	if source != SourceMtime {
		t.Errorf("expected fall-through to %s, got %s", SourceMtime, source)
	}
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
