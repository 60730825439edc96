package metadata

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassify_Defaults(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name    string
		wantCat string
		wantOK  bool
	}{
		{"report.xlsx", CatTable, true},
		{"movie.mp4", CatVideo, true},
		{"photo.JPG", CatImage, true},
		{"notes.md", CatDoc, true},
		{"archive.tar.gz", CatArchive, true},
		{"setup.dmg", CatInstaller, true},
		{"slides.pptx", CatPresent, true},
		{"main.go", CatCode, true},
		{"Dockerfile", CatCode, true},
		{"Makefile", CatCode, true},
		{"Dockerfile.prod", CatCode, true},
		{"unknown.xyz", "", false},
		{"noextension", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, ok := c.Classify(tt.name)
			if ok != tt.wantOK || cat != tt.wantCat {
				t.Errorf("Classify(%q) = (%q, %v), want (%q, %v)", tt.name, cat, ok, tt.wantCat, tt.wantOK)
			}
		})
	}
}

func TestSplitExt(t *testing.T) {
	tests := []struct {
		name     string
		wantBase string
		wantExt  string
	}{
		{"a.jpg", "a", ".jpg"},
		{"backup.tar.gz", "backup", ".tar.gz"},
		{"backup.TAR.GZ", "backup", ".TAR.GZ"},
		{"release.tgz", "release", ".tgz"},
		{"noext", "noext", ""},
		{"double.name.txt", "double.name", ".txt"},
	}
	for _, tt := range tests {
		base, ext := SplitExt(tt.name)
		if base != tt.wantBase || ext != tt.wantExt {
			t.Errorf("SplitExt(%q) = (%q, %q), want (%q, %q)", tt.name, base, ext, tt.wantBase, tt.wantExt)
		}
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.yaml")
	content := "表格:\n  - parquet\n  - .feather\n代码:\n  - proto\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewClassifier()
	if err := c.LoadOverrides(path); err != nil {
		t.Fatalf("LoadOverrides returned error: %v", err)
	}

	if cat, ok := c.Classify("data.parquet"); !ok || cat != CatTable {
		t.Errorf("expected parquet -> %s, got (%q, %v)", CatTable, cat, ok)
	}
	if cat, ok := c.Classify("frame.feather"); !ok || cat != CatTable {
		t.Errorf("expected feather -> %s, got (%q, %v)", CatTable, cat, ok)
	}
	if cat, ok := c.Classify("api.proto"); !ok || cat != CatCode {
		t.Errorf("expected proto -> %s, got (%q, %v)", CatCode, cat, ok)
	}
	// Defaults survive the merge.
	if cat, ok := c.Classify("movie.mp4"); !ok || cat != CatVideo {
		t.Errorf("expected mp4 -> %s, got (%q, %v)", CatVideo, cat, ok)
	}
}

func TestLoadOverrides_UnknownCategory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "categories.yaml")
	if err := os.WriteFile(path, []byte("bogus:\n  - xyz\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewClassifier()
	if err := c.LoadOverrides(path); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestLoadOverrides_MissingFile(t *testing.T) {
	c := NewClassifier()
	if err := c.LoadOverrides(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing overrides file")
	}
}
