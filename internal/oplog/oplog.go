// Package oplog persists one CSV record per processed item. The log file
// is the durable artifact a run leaves behind and the sole input to undo,
// so rows are flushed as they are written: if the process dies between two
// moves, everything already moved is already on disk in the log.
package oplog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Column names shared by both log schemas.
const (
	ColOldPath     = "old_path"
	ColNewPath     = "new_path"
	ColTimestampMS = "timestamp_ms"
	ColSource      = "source"
	ColStatus      = "status"
	ColError       = "error"
)

// RenameHeader is the schema of rename-variant logs. The first four
// columns identify the move and the metadata fallback that named it;
// status and error make failed attempts durable too.
var RenameHeader = []string{ColOldPath, ColNewPath, ColTimestampMS, ColSource, ColStatus, ColError}

// OrganizeHeader is the schema of organize-variant logs.
var OrganizeHeader = []string{ColOldPath, ColNewPath, ColStatus, ColError}

// Record is one processed item. Fields not present in the writer's header
// are simply not written.
type Record struct {
	OldPath     string
	NewPath     string
	TimestampMS string
	Source      string
	Status      string
	Error       string
}

// field returns the record value for a column name.
func (r Record) field(col string) string {
	switch col {
	case ColOldPath:
		return r.OldPath
	case ColNewPath:
		return r.NewPath
	case ColTimestampMS:
		return r.TimestampMS
	case ColSource:
		return r.Source
	case ColStatus:
		return r.Status
	case ColError:
		return r.Error
	}
	return ""
}

// Writer appends records to a CSV log file.
type Writer struct {
	f      *os.File
	w      *csv.Writer
	header []string

	// Path is the location of the log file.
	Path string
}

// NewWriter creates the log file (and any missing parent directories) and
// writes the header. The file must not already exist: log paths carry a
// per-run timestamp, so hitting an existing file means two runs collided
// and neither may clobber the other's history.
func NewWriter(path string, header []string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to write log header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to flush log header: %w", err)
	}

	return &Writer{f: f, w: w, header: header, Path: path}, nil
}

// Append writes one record and flushes it to disk.
func (w *Writer) Append(rec Record) error {
	row := make([]string, len(w.header))
	for i, col := range w.header {
		row[i] = rec.field(col)
	}
	if err := w.w.Write(row); err != nil {
		return fmt.Errorf("failed to write log record: %w", err)
	}
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		return fmt.Errorf("failed to flush log record: %w", err)
	}
	return nil
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	return w.f.Close()
}

// Entry is one parsed log row, reduced to what undo needs.
type Entry struct {
	OldPath string
	NewPath string
	Status  string

	// Line is the 1-based line number in the log file, for warnings.
	Line int
}

// ReadResult is the outcome of parsing a log file. Malformed rows become
// warnings, never parse aborts: the rest of the log is still processed.
type ReadResult struct {
	Entries  []Entry
	Warnings []string
}

// Read parses a log file written by either variant. An unreadable file or
// unusable header is fatal; anything wrong with an individual row is a
// per-row warning.
func Read(path string) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read log header: %w", err)
	}
	colIdx := make(map[string]int, len(header))
	for i, col := range header {
		colIdx[col] = i
	}
	oldIdx, okOld := colIdx[ColOldPath]
	newIdx, okNew := colIdx[ColNewPath]
	if !okOld || !okNew {
		return nil, fmt.Errorf("log %s has no old_path/new_path columns", path)
	}
	statusIdx, hasStatus := colIdx[ColStatus]

	result := &ReadResult{}
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		entry := Entry{Line: line}
		if len(row) > oldIdx {
			entry.OldPath = row[oldIdx]
		}
		if len(row) > newIdx {
			entry.NewPath = row[newIdx]
		}
		if hasStatus && len(row) > statusIdx {
			entry.Status = row[statusIdx]
		} else {
			// Logs from older runs without a status column recorded
			// successful moves only.
			entry.Status = StatusOK
		}

		// A successful move needs both paths to be replayable; rows
		// logged as failed may legitimately lack a target.
		if entry.Status == StatusOK && (entry.OldPath == "" || entry.NewPath == "") {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("line %d: missing old_path/new_path", line))
			continue
		}
		result.Entries = append(result.Entries, entry)
	}
	return result, nil
}

// StatusOK marks a log row whose move succeeded. Only these rows are
// replayed by undo.
const StatusOK = "ok"
