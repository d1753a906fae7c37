package cli

import (
	"fmt"
	"os"

	"github.com/ppiankov/pressbrief/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pressbrief",
	Short: "Pressbrief - LLM-curated newsletters from trade press and your own sources",
	Long: `Pressbrief assembles a weekly intelligence newsletter from RSS feeds and
user-supplied source files.

It reads the configured trade-press feeds and any files dropped in the
sources directory, merges and deduplicates them, asks an LLM to filter
and score the candidates at board level, then writes the surviving
stories into themed sections and renders the result as HTML or Markdown.

User-supplied sources always take priority over feed items.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Pressbrief.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("pressbrief v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.pressbrief/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.pressbrief")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match PRESSBRIEF_*
	viper.SetEnvPrefix("PRESSBRIEF")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: defaults overlaid with any
// values from the config file. Flags are applied on top by each command.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if feeds := viper.GetStringMapString("feeds"); len(feeds) > 0 {
		cfg.Feeds = feeds
	}
	if v := viper.GetString("sources_dir"); v != "" {
		cfg.SourcesDir = v
	}
	if viper.IsSet("days_back") {
		cfg.DaysBack = viper.GetInt("days_back")
	}
	if viper.IsSet("stories_per_section") {
		cfg.StoriesPerSection = viper.GetInt("stories_per_section")
	}
	if viper.IsSet("require_sources") {
		cfg.RequireSources = viper.GetBool("require_sources")
	}
	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("llm.instructions"); v != "" {
		cfg.LLM.Instructions = v
	}
	if v := viper.GetString("newsletter.title"); v != "" {
		cfg.Newsletter.Title = v
	}
	if v := viper.GetString("newsletter.tagline"); v != "" {
		cfg.Newsletter.Tagline = v
	}
	if v := viper.GetString("newsletter.footer"); v != "" {
		cfg.Newsletter.Footer = v
	}
	if v := viper.GetString("output.format"); v != "" {
		cfg.Output.Format = v
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}

	return cfg
}
