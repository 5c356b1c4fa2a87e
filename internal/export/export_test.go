package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const sampleQuiz = "# Vector Calculus Quiz\n\n## Questions\n\n### Q1 [easy | gradient]\n\nWhat is ∇f?\n"

func TestMarkdown_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.md")

	res, err := Markdown(sampleQuiz, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != StatusSaved {
		t.Fatalf("expected status %q, got %q", StatusSaved, res.Status)
	}
	if !filepath.IsAbs(res.Path) {
		t.Fatalf("expected absolute path, got %q", res.Path)
	}

	got, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != sampleQuiz {
		t.Fatalf("round trip mismatch:\n%s", got)
	}
}

func TestMarkdown_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.md")

	if _, err := Markdown(sampleQuiz, path); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Markdown(sampleQuiz, path); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Fatal("exporting the same content twice must produce the same bytes")
	}
}

func TestMarkdown_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "quiz.md")

	res, err := Markdown(sampleQuiz, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(res.Path); err != nil {
		t.Fatalf("expected file at %s: %v", res.Path, err)
	}
}

func TestMarkdown_UnwritableDestination(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits not enforced")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	_, err := Markdown(sampleQuiz, filepath.Join(dir, "quiz.md"))
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %T: %v", err, err)
	}
	if ioErr.Path == "" {
		t.Fatal("IOError must carry the destination path")
	}
}

func TestPDF_WritesDeterministicFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quiz.pdf")

	res, err := PDF(sampleQuiz, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != StatusSaved || !filepath.IsAbs(res.Path) {
		t.Fatalf("unexpected result: %+v", res)
	}

	first, err := os.ReadFile(res.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(first, []byte("%PDF")) {
		t.Fatal("expected a PDF header")
	}

	if _, err := PDF(sampleQuiz, path); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("PDF export must be idempotent for identical content")
	}
}

func TestPDF_UnwritableDestination(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits not enforced")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	_, err := PDF(sampleQuiz, filepath.Join(dir, "quiz.pdf"))
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError, got %T: %v", err, err)
	}
}
