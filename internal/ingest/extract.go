package ingest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/charmap"
)

// extractText reads one file and returns its text content.
// Dispatch is by extension: plain text and markdown are read directly with
// encoding fallback, PDFs go through text extraction. Anything else fails
// with *UnsupportedFormatError for the loader's policy to resolve.
func extractText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text", ".md", ".markdown":
		return readTextFile(path)
	case ".pdf":
		return readPDFFile(path)
	default:
		return "", &UnsupportedFormatError{Path: path}
	}
}

// readTextFile reads a file as UTF-8, falling back to Latin-1 when the bytes
// are not valid UTF-8. Legacy single-byte files therefore never hard-fail on
// encoding alone; every byte maps to some rune.
func readTextFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", &UnreadableFileError{Path: path, Err: err}
	}

	if utf8.Valid(raw) {
		return string(raw), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", &UnreadableFileError{Path: path, Err: err}
	}
	return string(decoded), nil
}

// readPDFFile extracts the text of every page, joined with newlines.
func readPDFFile(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", &UnreadableFileError{Path: path, Err: err}
	}
	defer f.Close()

	var b bytes.Buffer
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", &UnreadableFileError{Path: path, Err: fmt.Errorf("page %d: %w", i, err)}
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(text)
	}
	return b.String(), nil
}
