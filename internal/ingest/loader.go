// Package ingest loads study materials from disk for the materials stage.
// It resolves a glob pattern to files, extracts text from each supported
// format, and concatenates everything into one attributable blob.
package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Policy controls how files with unsupported extensions are handled.
type Policy int

const (
	// SkipUnsupported drops unsupported files, leaving a note in the
	// combined text so the omission is visible downstream.
	SkipUnsupported Policy = iota

	// RejectUnsupported fails the whole load on the first unsupported file.
	RejectUnsupported
)

// Result is the outcome of one Load call.
type Result struct {
	// Files lists the resolved paths that matched the pattern, in the same
	// order their content appears in CombinedText.
	Files []string

	// CombinedText holds each file's extracted text preceded by a header
	// line naming its source path.
	CombinedText string
}

// Loader resolves glob patterns to combined study-material text.
type Loader struct {
	policy Policy
}

// NewLoader creates a Loader with the given unsupported-extension policy.
func NewLoader(policy Policy) *Loader {
	return &Loader{policy: policy}
}

// fileHeader demarcates one file's content inside the combined text.
func fileHeader(path string) string {
	return fmt.Sprintf("===== FILE: %s =====", path)
}

// Load resolves pattern (doublestar syntax, ** supported) and extracts text
// from every matched file. Matches are sorted lexicographically so the
// combined text is deterministic regardless of filesystem iteration order.
// Zero matches fail with *NoFilesMatchedError.
func (l *Loader) Load(pattern string) (*Result, error) {
	base, rel := doublestar.SplitPattern(pattern)
	matches, err := doublestar.Glob(os.DirFS(base), rel, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
	}
	for i, m := range matches {
		matches[i] = filepath.Join(base, filepath.FromSlash(m))
	}
	sort.Strings(matches)

	if len(matches) == 0 {
		return nil, &NoFilesMatchedError{Pattern: pattern}
	}

	var (
		files []string
		parts []string
	)
	for _, path := range matches {
		text, err := extractText(path)
		if err != nil {
			var unsupported *UnsupportedFormatError
			if errors.As(err, &unsupported) && l.policy == SkipUnsupported {
				files = append(files, path)
				parts = append(parts, fileHeader(path)+"\n\n"+
					fmt.Sprintf("[skipping unsupported file type: %s]", filepath.Base(path)))
				continue
			}
			return nil, err
		}
		files = append(files, path)
		parts = append(parts, fileHeader(path)+"\n\n"+text)
	}

	return &Result{
		Files:        files,
		CombinedText: strings.Join(parts, "\n\n"),
	}, nil
}
