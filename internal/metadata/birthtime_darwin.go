//go:build darwin

package metadata

import (
	"errors"
	"os"
	"syscall"
	"time"
)

// birthTime returns the file's creation time (st_birthtime), which APFS
// and HFS+ track natively.
func birthTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, errors.New("no raw stat data")
	}
	return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec), nil
}
