package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizcrafter/internal/app"
	"github.com/abhisek/quizcrafter/internal/config"
	"github.com/abhisek/quizcrafter/internal/ingest"
	"github.com/abhisek/quizcrafter/internal/llm"
	"github.com/abhisek/quizcrafter/internal/materials"
	"github.com/abhisek/quizcrafter/internal/planner"
	"github.com/abhisek/quizcrafter/internal/store"
	"github.com/abhisek/quizcrafter/internal/writer"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	pathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a quiz from a goal and optional study materials",
	Example: `  quizcrafter generate -g "10 question quiz on photosynthesis"
  quizcrafter generate -g "exam prep" -m "notes/**/*.md" -o quiz.md --pdf quiz.pdf`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		goal, _ := cmd.Flags().GetString("goal")
		pattern, _ := cmd.Flags().GetString("materials")
		outPath, _ := cmd.Flags().GetString("out")
		pdfPath, _ := cmd.Flags().GetString("pdf")
		save, _ := cmd.Flags().GetBool("save")
		strict, _ := cmd.Flags().GetBool("strict")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if save {
			if outPath == "" {
				outPath = cfg.Output.Markdown
			}
			if pdfPath == "" {
				pdfPath = cfg.Output.PDF
			}
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		providerFlag, _ := cmd.Flags().GetString("provider")
		modelFlag, _ := cmd.Flags().GetString("model")
		provider, err := buildProvider(cmd, cfg, providerFlag, modelFlag, st)
		if err != nil {
			return err
		}

		opts := app.Options{
			Provider:     provider,
			Runs:         st.RunRepo(),
			IngestPolicy: cfg.IngestPolicy(),
			Materials:    materials.DefaultConfig(),
			Planner:      planner.DefaultConfig(),
			Writer:       writer.DefaultConfig(),
			MarkdownPath: outPath,
			PDFPath:      pdfPath,
		}
		applyLLMOverrides(&opts, cfg.LLM)
		if strict {
			opts.IngestPolicy = ingest.RejectUnsupported
		}

		out, err := app.Run(ctx, opts, app.Input{Goal: goal, MaterialPattern: pattern})
		if err != nil {
			return fmt.Errorf("%s: %w", app.ErrorKind(err), err)
		}

		if len(out.ExportedPaths) == 0 {
			fmt.Println(out.QuizMarkdown)
		} else {
			fmt.Println(headerStyle.Render("Quiz generated."))
			for _, p := range out.ExportedPaths {
				fmt.Printf("  %s %s\n", faintStyle.Render("saved"), pathStyle.Render(p))
			}
		}
		fmt.Fprintln(os.Stderr, faintStyle.Render("run "+out.RunID))
		return nil
	},
}

// buildProvider assembles the LLM provider: env config first, then config
// file overrides, then flags, then discovery of standard API key variables.
func buildProvider(cmd *cobra.Command, cfg *config.Config, providerFlag, modelFlag string, st *store.Store) (llm.Provider, error) {
	name := cfg.LLM.Provider
	if providerFlag != "" {
		name = providerFlag
	}
	model := cfg.LLM.Model
	if modelFlag != "" {
		model = modelFlag
	}

	// No overrides: env config with discovery fallback.
	if name == "" && model == "" {
		return llm.NewProviderFromEnv(cmd.Context(), st.EventRepo())
	}

	llmCfg := llm.ConfigFromEnv()
	if name != "" {
		llmCfg.Provider = name
	}
	setModel(&llmCfg, model)

	if err := llmCfg.Validate(); err != nil {
		if name != "" {
			// The user asked for this provider explicitly, do not fall back.
			return nil, err
		}
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, err
		}
		llmCfg = discovered
		setModel(&llmCfg, model)
	}
	return llm.NewProvider(cmd.Context(), llmCfg, st.EventRepo())
}

// setModel overrides the model of the selected provider.
func setModel(cfg *llm.Config, model string) {
	if model == "" {
		return
	}
	switch cfg.Provider {
	case "gemini":
		cfg.Gemini.Model = model
	case "openai":
		cfg.OpenAI.Model = model
	case "anthropic":
		cfg.Anthropic.Model = model
	case "openrouter":
		cfg.OpenRouter.Model = model
	}
}

// applyLLMOverrides pushes config file generation parameters onto every
// stage that did not get an explicit value.
func applyLLMOverrides(opts *app.Options, over config.LLMConfig) {
	if over.MaxTokens > 0 {
		opts.Writer.MaxTokens = over.MaxTokens
	}
	if over.Temperature != nil {
		t := *over.Temperature
		opts.Materials.Temperature = t
		opts.Planner.Temperature = t
		opts.Writer.Temperature = t
	}
}

func init() {
	generateCmd.Flags().StringP("goal", "g", "", "What the quiz should cover (required)")
	generateCmd.Flags().StringP("materials", "m", "", "Glob pattern for study material files (txt, md, pdf)")
	generateCmd.Flags().StringP("out", "o", "", "Export quiz markdown to this path")
	generateCmd.Flags().String("pdf", "", "Export quiz PDF to this path")
	generateCmd.Flags().Bool("save", false, "Export to the configured default output paths")
	generateCmd.Flags().Bool("strict", false, "Fail on unsupported material files instead of skipping them")
	generateCmd.Flags().String("provider", "", "LLM provider (gemini, openai, anthropic, openrouter)")
	generateCmd.Flags().String("model", "", "Model override for the selected provider")
	generateCmd.MarkFlagRequired("goal")
}
