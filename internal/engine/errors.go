package engine

import "errors"

var (
	// ErrNotDirectory indicates the target path is missing or not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrBadTimeSource indicates an unsupported time source preference.
	ErrBadTimeSource = errors.New("invalid time source")
)
