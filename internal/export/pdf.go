package export

import (
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// PDF renders content line by line into a simple A4 PDF at path. It does
// not lay out markdown, it prints the text as-is, which is enough for
// printing or sharing a quiz. The creation date is pinned so the same
// content always produces the same file.
func PDF(content, path string) (*Result, error) {
	abs, err := prepare(path)
	if err != nil {
		return nil, err
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(time.Unix(0, 0).UTC())
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()
	doc.SetFont("Arial", "", 11)

	// Core fonts are Latin-1; translate so accented source text survives.
	tr := doc.UnicodeTranslatorFromDescriptor("")
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		doc.MultiCell(0, 6, tr(line), "", "L", false)
	}

	if err := doc.OutputFileAndClose(abs); err != nil {
		return nil, &IOError{Path: abs, Err: err}
	}
	return &Result{Status: StatusSaved, Path: abs}, nil
}
