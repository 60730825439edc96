package planner

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/tidyup/internal/fsops"
)

// maxSuffixAttempts bounds the suffix search. fmt's zero-padding widens
// automatically past _999, so the bound exists only to turn a pathological
// directory into an error instead of an unbounded loop.
const maxSuffixAttempts = 1_000_000

// ErrCollisionExhausted indicates no free suffix was found within bounds.
var ErrCollisionExhausted = errors.New("collision suffixes exhausted")

// Registry is the set of target paths already claimed during one plan
// build (or one apply pass). It disambiguates intra-batch collisions;
// collisions against pre-existing files are checked through the FS probe.
type Registry struct {
	claimed map[string]struct{}
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{claimed: make(map[string]struct{})}
}

// Claim records a path as taken.
func (r *Registry) Claim(path string) {
	r.claimed[path] = struct{}{}
}

// Claimed reports whether a path has been claimed.
func (r *Registry) Claimed(path string) bool {
	_, ok := r.claimed[path]
	return ok
}

// SplitFunc splits a file name into base and extension, so collision
// suffixes land before the extension. Nil defaults to filepath.Ext
// semantics; the organize variant passes a compound-aware splitter so
// "x.tar.gz" suffixes as "x_001.tar.gz".
type SplitFunc func(name string) (base, ext string)

// Resolver returns unique target paths by appending numeric suffixes.
// Deterministic for identical inputs and registry state: re-running a
// dry-run twice without filesystem changes yields an identical plan.
type Resolver struct {
	fs    fsops.FS
	reg   *Registry
	split SplitFunc
}

// NewResolver creates a Resolver that claims chosen paths in reg.
func NewResolver(fs fsops.FS, reg *Registry, split SplitFunc) *Resolver {
	if split == nil {
		split = func(name string) (string, string) {
			ext := filepath.Ext(name)
			return strings.TrimSuffix(name, ext), ext
		}
	}
	return &Resolver{fs: fs, reg: reg, split: split}
}

// Resolve returns candidate unchanged if it is unclaimed and does not
// exist on disk, otherwise the first free path of the form
// base_001.ext, base_002.ext, and so on. ownPath is the source path the
// candidate would vacate: a file never collides with its own current name.
// The chosen path is claimed in the registry as a side effect.
func (r *Resolver) Resolve(candidate, ownPath string) (string, error) {
	free, err := r.free(candidate, ownPath)
	if err != nil {
		return "", err
	}
	if free {
		r.reg.Claim(candidate)
		return candidate, nil
	}

	dir := filepath.Dir(candidate)
	base, ext := r.split(filepath.Base(candidate))
	for i := 1; i <= maxSuffixAttempts; i++ {
		next := filepath.Join(dir, fmt.Sprintf("%s_%03d%s", base, i, ext))
		free, err := r.free(next, ownPath)
		if err != nil {
			return "", err
		}
		if free {
			r.reg.Claim(next)
			return next, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrCollisionExhausted, candidate)
}

// free reports whether path is neither claimed in the batch nor occupied
// on disk by anything other than ownPath itself.
func (r *Resolver) free(path, ownPath string) (bool, error) {
	if r.reg.Claimed(path) {
		return false, nil
	}
	if path == ownPath {
		return true, nil
	}
	exists, err := r.fs.Exists(path)
	if err != nil {
		return false, fmt.Errorf("failed to probe %s: %w", path, err)
	}
	return !exists, nil
}
