// Package fsops provides filesystem operations with safety guarantees.
//
// All filesystem mutations in tidyup go through the FS interface. The
// central guarantee is that Move never overwrites an existing target and
// never leaves the source missing after a failure: either the file arrives
// at the destination intact, or it stays where it was.
package fsops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
)

// FS provides an abstraction for filesystem operations.
// All filesystem mutations in tidyup must go through this interface.
type FS interface {
	// Stat returns file info, following symlinks.
	Stat(path string) (os.FileInfo, error)

	// Lstat returns file info without following symlinks.
	Lstat(path string) (os.FileInfo, error)

	// Exists checks if a path exists.
	Exists(path string) (bool, error)

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm os.FileMode) error

	// Move moves a file from src to dst. It refuses to overwrite an
	// existing dst and falls back to copy+remove across devices.
	Move(src, dst string) error

	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)
}

// RealFS implements FS using actual OS operations.
type RealFS struct{}

// NewRealFS creates a new RealFS.
func NewRealFS() *RealFS {
	return &RealFS{}
}

// Stat returns file info, following symlinks.
func (fs *RealFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Lstat returns file info without following symlinks.
func (fs *RealFS) Lstat(path string) (os.FileInfo, error) {
	return os.Lstat(path)
}

// Exists checks if a path exists.
func (fs *RealFS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// MkdirAll creates a directory and all parent directories.
func (fs *RealFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// ReadFile reads the entire contents of a file.
func (fs *RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Move moves a file from src to dst.
//
// The target must not already exist; callers are expected to have resolved
// collisions beforehand, and this check is the last line of defense against
// silent overwrites. Cross-device moves (where rename fails with EXDEV)
// fall back to copy-then-remove: the source is only removed after the copy
// has been fully written and synced.
func (fs *RealFS) Move(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("target already exists: %s", dst)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check target: %w", err)
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		return fs.copyAndRemove(src, dst)
	}
	return err
}

// copyAndRemove copies src to dst and removes src on success.
// On any copy failure the partial destination is removed and the source is
// left untouched.
func (fs *RealFS) copyAndRemove(src, dst string) error {
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}
	if srcInfo.IsDir() {
		return fmt.Errorf("cross-device move of directory not supported: %s", src)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer func() {
		_ = srcFile.Close()
	}()

	// O_EXCL keeps the no-overwrite guarantee even if dst appeared after
	// the Lstat check above.
	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("failed to copy file contents: %w", err)
	}
	if err := dstFile.Sync(); err != nil {
		_ = dstFile.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("failed to sync destination: %w", err)
	}
	if err := dstFile.Close(); err != nil {
		_ = os.Remove(dst)
		return fmt.Errorf("failed to close destination: %w", err)
	}

	if err := os.Remove(src); err != nil {
		return fmt.Errorf("copied but failed to remove source: %w", err)
	}
	return nil
}
