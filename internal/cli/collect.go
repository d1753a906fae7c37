package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/pressbrief/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	collectOut     string
	collectTimeout time.Duration
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect and aggregate items without calling the LLM",
	Long: `Collect runs the read and aggregate stages only:
- Read user source files and RSS feeds
- Merge, deduplicate, and apply the recency window
- Print the resulting items as JSON

Useful for inspecting what the LLM stages would see, and for tuning
feeds and the recency window without spending tokens.

Example:
  pressbrief collect
  pressbrief collect --sources ./sources --days 3
  pressbrief collect --json items.json`,
	Args: cobra.NoArgs,
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().StringVar(&collectOut, "json", "", "write items to this path instead of stdout")
	collectCmd.Flags().DurationVar(&collectTimeout, "timeout", 5*time.Minute, "overall collection timeout")

	// Shared selection flags
	collectCmd.Flags().IntVar(&daysBack, "days", 0, "recency window in days (0 = use config, default 7)")
	collectCmd.Flags().StringVar(&sourcesDir, "sources", "", "directory of user source files")
	collectCmd.Flags().BoolVar(&requireSources, "require-sources", false, "fail when no feeds or source files are configured")
	collectCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable feed cache (force fresh fetch)")
	collectCmd.Flags().StringVar(&userAgent, "ua", "pressbrief/0.1 (+https://github.com/ppiankov/pressbrief)", "HTTP User-Agent")
}

func runCollect(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), collectTimeout)
	defer cancel()

	cfg := loadConfig()
	applyGenerateFlags(cfg)

	p := pipeline.NewPipeline(cfg)

	items, err := p.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collect failed: %w", err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	if collectOut != "" {
		if err := os.WriteFile(collectOut, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", collectOut, err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote %d items: %s\n", len(items), collectOut)
		return nil
	}

	fmt.Println(string(data))
	fmt.Fprintf(os.Stderr, "✓ Collected %d items\n", len(items))
	return nil
}
