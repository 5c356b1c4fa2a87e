package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/quizcrafter/internal/ingest"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if cfg.Ingest.Policy != PolicySkip {
		t.Fatalf("expected default skip policy, got %q", cfg.Ingest.Policy)
	}
	if cfg.Output.Markdown != "quiz_output.md" || cfg.Output.PDF != "quiz_output.pdf" {
		t.Fatalf("unexpected output defaults: %+v", cfg.Output)
	}
	if cfg.IngestPolicy() != ingest.SkipUnsupported {
		t.Fatal("default policy must map to SkipUnsupported")
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Ingest.Policy != PolicySkip {
		t.Fatalf("expected default skip policy, got %q", cfg.Ingest.Policy)
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizcrafter.yaml")
	data := `
ingest:
  policy: strict
output:
  markdown: out/quiz.md
llm:
  provider: openai
  model: gpt-4o
  max_tokens: 2000
  temperature: 0.2
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IngestPolicy() != ingest.RejectUnsupported {
		t.Fatal("strict policy must map to RejectUnsupported")
	}
	if cfg.Output.Markdown != "out/quiz.md" {
		t.Fatalf("unexpected markdown path: %q", cfg.Output.Markdown)
	}
	// Unset fields still get defaults.
	if cfg.Output.PDF != "quiz_output.pdf" {
		t.Fatalf("unexpected pdf default: %q", cfg.Output.PDF)
	}
	if cfg.LLM.Provider != "openai" || cfg.LLM.Model != "gpt-4o" || cfg.LLM.MaxTokens != 2000 {
		t.Fatalf("unexpected llm config: %+v", cfg.LLM)
	}
	if cfg.LLM.Temperature == nil || *cfg.LLM.Temperature != 0.2 {
		t.Fatalf("unexpected temperature: %v", cfg.LLM.Temperature)
	}
}

func TestLoad_RejectsBadPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizcrafter.yaml")
	if err := os.WriteFile(path, []byte("ingest:\n  policy: lenient\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "ingest.policy") {
		t.Fatalf("expected policy validation error, got %v", err)
	}
}

func TestLoad_RejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizcrafter.yaml")
	if err := os.WriteFile(path, []byte("ingest: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
