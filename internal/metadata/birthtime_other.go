//go:build !darwin

package metadata

import (
	"errors"
	"time"
)

// birthTime errors on platforms without st_birthtime; the chain falls
// through to the next resolver.
func birthTime(path string) (time.Time, error) {
	return time.Time{}, errors.New("birth time not available on this platform")
}
