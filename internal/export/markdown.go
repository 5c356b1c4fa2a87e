// Package export writes finished quiz content to disk as markdown or PDF.
// Both exporters create parent directories, overwrite idempotently, and
// embed no timestamps, so exporting the same content twice yields the same
// bytes.
package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// StatusSaved is the status of a successful export.
const StatusSaved = "saved"

// Result reports where an export landed.
type Result struct {
	Status string
	// Path is the resolved absolute path of the written file.
	Path string
}

// Markdown writes content to path verbatim, creating parent directories as
// needed. Reading the file back yields bytes identical to content.
func Markdown(content, path string) (*Result, error) {
	abs, err := prepare(path)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		return nil, &IOError{Path: abs, Err: err}
	}
	return &Result{Status: StatusSaved, Path: abs}, nil
}

// prepare resolves path to absolute form and creates its parent directory.
func prepare(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &IOError{Path: path, Err: fmt.Errorf("resolve path: %w", err)}
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", &IOError{Path: abs, Err: err}
	}
	return abs, nil
}
