package ingest

import "fmt"

// NoFilesMatchedError indicates a pattern resolved to zero files.
type NoFilesMatchedError struct {
	Pattern string
}

func (e *NoFilesMatchedError) Error() string {
	return fmt.Sprintf("no files matched pattern %q", e.Pattern)
}

// UnreadableFileError indicates a matched file could not be read or decoded.
type UnreadableFileError struct {
	Path string
	Err  error
}

func (e *UnreadableFileError) Error() string {
	return fmt.Sprintf("unreadable file %q: %v", e.Path, e.Err)
}

func (e *UnreadableFileError) Unwrap() error { return e.Err }

// UnsupportedFormatError indicates a matched file has an extension the
// loader does not know how to extract text from.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %q", e.Path)
}
