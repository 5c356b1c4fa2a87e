// Package config loads the optional quizcrafter config file. A missing file
// is not an error, the zero config plus defaults is a fully working setup.
// Credentials never live here, those come from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/quizcrafter/internal/ingest"
)

const (
	PolicySkip   = "skip"
	PolicyStrict = "strict"
)

// IngestConfig controls document ingestion.
type IngestConfig struct {
	// Policy is "skip" (unsupported files dropped with a note) or "strict"
	// (any unsupported file fails the run).
	Policy string `yaml:"policy"`
}

// OutputConfig sets default export destinations. CLI flags override these.
type OutputConfig struct {
	Markdown string `yaml:"markdown"`
	PDF      string `yaml:"pdf"`
}

// LLMConfig overrides provider selection and generation parameters. Empty
// fields defer to environment discovery and per-stage defaults.
type LLMConfig struct {
	Provider    string   `yaml:"provider"`
	Model       string   `yaml:"model"`
	MaxTokens   int      `yaml:"max_tokens"`
	Temperature *float64 `yaml:"temperature"`
}

// Config models the quizcrafter config file.
type Config struct {
	Ingest IngestConfig `yaml:"ingest"`
	Output OutputConfig `yaml:"output"`
	LLM    LLMConfig    `yaml:"llm"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Ingest: IngestConfig{Policy: PolicySkip},
		Output: OutputConfig{Markdown: "quiz_output.md", PDF: "quiz_output.pdf"},
	}
}

// Load reads the config file at path. A missing file returns the defaults;
// an unreadable or invalid file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Ingest.Policy == "" {
		c.Ingest.Policy = PolicySkip
	}
	if c.Output.Markdown == "" {
		c.Output.Markdown = "quiz_output.md"
	}
	if c.Output.PDF == "" {
		c.Output.PDF = "quiz_output.pdf"
	}
}

func (c *Config) validate() error {
	switch c.Ingest.Policy {
	case PolicySkip, PolicyStrict:
	default:
		return fmt.Errorf("ingest.policy must be %q or %q, got %q", PolicySkip, PolicyStrict, c.Ingest.Policy)
	}
	if c.LLM.MaxTokens < 0 {
		return fmt.Errorf("llm.max_tokens must not be negative, got %d", c.LLM.MaxTokens)
	}
	if c.LLM.Temperature != nil && (*c.LLM.Temperature < 0 || *c.LLM.Temperature > 2) {
		return fmt.Errorf("llm.temperature must be between 0 and 2, got %v", *c.LLM.Temperature)
	}
	return nil
}

// IngestPolicy maps the configured policy string onto the loader's enum.
func (c *Config) IngestPolicy() ingest.Policy {
	if c.Ingest.Policy == PolicyStrict {
		return ingest.RejectUnsupported
	}
	return ingest.SkipUnsupported
}
