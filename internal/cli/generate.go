package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/pressbrief/internal/model"
	"github.com/ppiankov/pressbrief/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	outFile        string
	outputFormat   string
	daysBack       int
	stories        int
	sourcesDir     string
	newsTitle      string
	newsTagline    string
	newsFooter     string
	instructions   string
	runTimeout     time.Duration
	userAgent      string
	noCache        bool
	requireSources bool
	llmProvider    string
	llmModel       string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a newsletter from feeds and source files",
	Long: `Generate runs the full newsletter pipeline:
- Read user source files (URL lists, text, JSON, markdown) and RSS feeds
- Merge, deduplicate, and apply the recency window
- Shortlist and score candidates with the configured LLM
- Write themed sections and render HTML or Markdown

Example:
  pressbrief generate
  pressbrief generate --sources ./sources --days 7 --out-file brief.html
  pressbrief generate --output markdown --llm-provider openai --llm-model gpt-4o-mini`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	// Output flags
	generateCmd.Flags().StringVar(&outputFormat, "output", "", "output format: html or markdown")
	generateCmd.Flags().StringVar(&outFile, "out-file", "", "output path (default: newsletter.html or newsletter.md)")

	// Selection flags
	generateCmd.Flags().IntVar(&daysBack, "days", 0, "recency window in days (0 = use config, default 7)")
	generateCmd.Flags().IntVar(&stories, "stories", 0, "target stories per section (0 = use config, default 3)")
	generateCmd.Flags().StringVar(&sourcesDir, "sources", "", "directory of user source files")
	generateCmd.Flags().BoolVar(&requireSources, "require-sources", false, "fail when no feeds or source files are configured")

	// Newsletter chrome
	generateCmd.Flags().StringVar(&newsTitle, "title", "", "newsletter title")
	generateCmd.Flags().StringVar(&newsTagline, "tagline", "", "newsletter tagline")
	generateCmd.Flags().StringVar(&newsFooter, "footer", "", "newsletter footer")
	generateCmd.Flags().StringVar(&instructions, "instructions", "", "extra editorial instructions for the LLM")

	// HTTP flags
	generateCmd.Flags().DurationVar(&runTimeout, "timeout", 10*time.Minute, "overall run timeout")
	generateCmd.Flags().StringVar(&userAgent, "ua", "pressbrief/0.1 (+https://github.com/ppiankov/pressbrief)", "HTTP User-Agent")
	generateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable feed cache (force fresh fetch)")

	// LLM flags
	generateCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	generateCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg := loadConfig()
	applyGenerateFlags(cfg)

	if err := resolveAPIKey(cfg); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Feeds: %d\n", len(cfg.Feeds))
		fmt.Fprintf(os.Stderr, "Sources dir: %s\n", orNone(cfg.SourcesDir))
		fmt.Fprintf(os.Stderr, "Window: %d days\n", cfg.DaysBack)
		fmt.Fprintf(os.Stderr, "LLM: %s/%s\n", cfg.LLM.Provider, orNone(cfg.LLM.Model))
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	result, err := p.Generate(ctx)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ %d collected, %d shortlisted, %d written\n",
			result.Collected, result.Shortlist, result.Newsletter.StoryCount())
		fmt.Fprintln(os.Stderr)
	}

	path := outFile
	if path == "" {
		path = defaultOutputPath(cfg.Output.Format)
	}
	if err := p.Render(result.Newsletter, path); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Newsletter written: %s (%d stories)\n", path, result.Newsletter.StoryCount())
	return nil
}

// applyGenerateFlags overlays explicitly set flags on the loaded config.
func applyGenerateFlags(cfg *model.Config) {
	if outputFormat != "" {
		cfg.Output.Format = outputFormat
	}
	if daysBack > 0 {
		cfg.DaysBack = daysBack
	}
	if stories > 0 {
		cfg.StoriesPerSection = stories
	}
	if sourcesDir != "" {
		cfg.SourcesDir = sourcesDir
	}
	if requireSources {
		cfg.RequireSources = true
	}
	if newsTitle != "" {
		cfg.Newsletter.Title = newsTitle
	}
	if newsTagline != "" {
		cfg.Newsletter.Tagline = newsTagline
	}
	if newsFooter != "" {
		cfg.Newsletter.Footer = newsFooter
	}
	if instructions != "" {
		cfg.LLM.Instructions = instructions
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	cfg.Output.Verbose = verbose
}

// resolveAPIKey loads provider credentials from the environment.
func resolveAPIKey(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}

func defaultOutputPath(format string) string {
	if format == "markdown" || format == "md" {
		return "newsletter.md"
	}
	return "newsletter.html"
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
