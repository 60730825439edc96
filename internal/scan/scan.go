// Package scan turns a directory tree into an ordered list of SourceFile
// records. Traversal is read-only; all exclusion rules (hidden entries,
// extension allow-lists, pruned subtrees) are applied here so the planner
// only ever sees eligible files.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceFile describes one file eligible for planning.
// Immutable once scanned.
type SourceFile struct {
	// Path is the absolute path of the file.
	Path string

	// Ext is the file extension, lowercased, without the leading dot.
	// Empty for files with no extension.
	Ext string

	// Folder is the name of the directory containing the file.
	Folder string
}

// Options controls a scan.
type Options struct {
	// Recursive includes subdirectories. Default is a flat scan of root.
	Recursive bool

	// Extensions is an allow-list of lowercased extensions without the
	// leading dot. Nil or empty means all extensions are eligible.
	Extensions map[string]bool

	// ExcludeSubtrees lists absolute directory paths that are pruned from
	// the walk, together with everything beneath them. Used to keep a
	// tool's own output root out of its input.
	ExcludeSubtrees []string
}

// Scan walks root and returns eligible files sorted lexicographically by
// path. Hidden entries (dot-prefixed names) are always excluded. The sort
// order is what makes plan construction deterministic.
func Scan(root string, opts Options) ([]SourceFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}

	var files []SourceFile
	add := func(path string) {
		name := filepath.Base(path)
		if strings.HasPrefix(name, ".") {
			return
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
		if len(opts.Extensions) > 0 && !opts.Extensions[ext] {
			return
		}
		files = append(files, SourceFile{
			Path:   path,
			Ext:    ext,
			Folder: filepath.Base(filepath.Dir(path)),
		})
	}

	if !opts.Recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", root, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			add(filepath.Join(root, entry.Name()))
		}
	} else {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == root {
					return nil
				}
				if strings.HasPrefix(d.Name(), ".") || excluded(path, opts.ExcludeSubtrees) {
					return filepath.SkipDir
				}
				return nil
			}
			if excluded(path, opts.ExcludeSubtrees) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

// excluded reports whether path equals or lies beneath any of the given
// subtree roots.
func excluded(path string, subtrees []string) bool {
	for _, sub := range subtrees {
		if path == sub || strings.HasPrefix(path, sub+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
