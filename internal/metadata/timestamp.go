// Package metadata resolves naming keys for files: capture/creation
// timestamps for the rename variant and extension categories for the
// organize variant. The core engine treats both as opaque strings; this
// package is the only place that knows where they come from.
package metadata

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// Timestamp source labels, recorded in the rename log's source column.
const (
	SourceExif      = "exif"
	SourceDateAdded = "date_added"
	SourceBirthTime = "birth_time"
	SourceMtime     = "mtime"
)

// Time source preferences accepted on the command line.
const (
	TimeSourceAuto      = "auto"
	TimeSourceExif      = "exif"
	TimeSourceDateAdded = "date-added"
	TimeSourceBirthTime = "birthtime"
	TimeSourceMtime     = "mtime"
)

// ErrNoTimestamp indicates no resolver in a chain produced a timestamp.
var ErrNoTimestamp = errors.New("no timestamp available")

// TimeResolver resolves a timestamp for a file from one metadata source.
type TimeResolver struct {
	// Source is the label recorded in the log when this resolver succeeds.
	Source string

	// Resolve returns the timestamp, or an error if this source has
	// nothing usable for the file.
	Resolve func(path string) (time.Time, error)
}

// Chain returns the ordered resolver list for a time source preference.
// Every preference ends with the mtime resolver, which always succeeds,
// so a chain only fails when the file itself cannot be stat'ed.
func Chain(preference string) ([]TimeResolver, error) {
	exifResolver := TimeResolver{Source: SourceExif, Resolve: exifTime}
	addedResolver := TimeResolver{Source: SourceDateAdded, Resolve: dateAdded}
	birthResolver := TimeResolver{Source: SourceBirthTime, Resolve: birthTime}
	mtimeResolver := TimeResolver{Source: SourceMtime, Resolve: mtime}

	switch preference {
	case "", TimeSourceAuto:
		return []TimeResolver{exifResolver, addedResolver, birthResolver, mtimeResolver}, nil
	case TimeSourceExif:
		return []TimeResolver{exifResolver, mtimeResolver}, nil
	case TimeSourceDateAdded:
		return []TimeResolver{addedResolver, mtimeResolver}, nil
	case TimeSourceBirthTime:
		return []TimeResolver{birthResolver, mtimeResolver}, nil
	case TimeSourceMtime:
		return []TimeResolver{mtimeResolver}, nil
	}
	return nil, fmt.Errorf("unsupported time source: %s", preference)
}

// ResolveTime tries each resolver in order and returns the first timestamp
// along with the label of the source that produced it.
func ResolveTime(path string, chain []TimeResolver) (time.Time, string, error) {
	var lastErr error
	for _, r := range chain {
		t, err := r.Resolve(path)
		if err == nil {
			return t, r.Source, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = ErrNoTimestamp
	}
	return time.Time{}, "", fmt.Errorf("%w: %v", ErrNoTimestamp, lastErr)
}

// FormatKey renders a timestamp as YYYYMMDDHHMMSSmmm in local time,
// millisecond precision. Resolvers return times in whatever zone their
// source carries (mdls output includes an offset), so the instant is
// normalized here: one instant, one key, regardless of which resolver won.
func FormatKey(t time.Time) string {
	t = t.In(time.Local)
	return t.Format("20060102150405") + fmt.Sprintf("%03d", t.Nanosecond()/int(time.Millisecond))
}

// exifTime reads DateTimeOriginal from a photo's EXIF metadata.
func exifTime(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer func() {
		_ = f.Close()
	}()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, err
	}
	return x.DateTime()
}

// mdlsDateLayouts covers the formats `mdls -raw` is known to emit.
var mdlsDateLayouts = []string{
	"2006-01-02 15:04:05.000 -0700",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05.000 -07:00",
	"2006-01-02 15:04:05 -07:00",
}

// dateAdded reads kMDItemDateAdded via the macOS mdls tool.
// On systems without mdls (or for files Spotlight has not indexed) it
// returns an error and the chain falls through to the next resolver.
func dateAdded(path string) (time.Time, error) {
	out, err := exec.Command("mdls", "-name", "kMDItemDateAdded", "-raw", path).Output()
	if err != nil {
		return time.Time{}, fmt.Errorf("mdls unavailable: %w", err)
	}
	return parseMdlsDate(string(out))
}

// parseMdlsDate parses the raw mdls output, e.g.
// "2025-12-16 02:23:45 +0000" or "(null)" when the attribute is absent.
func parseMdlsDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "(null)" {
		return time.Time{}, errors.New("no date added attribute")
	}
	for _, layout := range mdlsDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable mdls date: %q", s)
}

// mtime returns the file's modification time. This is the terminal
// fallback and fails only when the file cannot be stat'ed at all.
func mtime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// DefaultImageExts is the extension allow-list for the rename variant,
// lowercased without the leading dot.
var DefaultImageExts = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"heic": true,
	"heif": true,
	"webp": true,
	"tif":  true,
	"tiff": true,
	"bmp":  true,
}
