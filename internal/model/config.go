package model

import "time"

// Config holds all pressbrief settings. It is passed explicitly into the
// pipeline and aggregator constructors; there is no package-level state.
type Config struct {
	Feeds      map[string]string `yaml:"feeds"`
	SourcesDir string            `yaml:"sources_dir"`

	DaysBack          int  `yaml:"days_back"`
	StoriesPerSection int  `yaml:"stories_per_section"`
	RequireSources    bool `yaml:"require_sources"`

	HTTP       HTTPConfig       `yaml:"http"`
	Cache      CacheConfig      `yaml:"cache"`
	LLM        LLMConfig        `yaml:"llm"`
	Newsletter NewsletterConfig `yaml:"newsletter"`
	Output     OutputConfig     `yaml:"output"`
}

// HTTPConfig controls feed fetching.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// CacheConfig controls the feed response cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// LLMConfig selects and configures the ranking/writing provider.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, anthropic, ollama
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // env only, never persisted
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout_seconds"`
	MaxTokens int    `yaml:"max_tokens"`

	// Instructions are optional extra editorial instructions appended to
	// both LLM stages.
	Instructions string `yaml:"instructions"`
}

// NewsletterConfig controls the rendered document chrome.
type NewsletterConfig struct {
	Title   string `yaml:"title"`
	Tagline string `yaml:"tagline"`
	Footer  string `yaml:"footer"`
}

// OutputConfig controls rendering and verbosity.
type OutputConfig struct {
	Format  string `yaml:"format"` // html or markdown
	Verbose bool   `yaml:"verbose"`
}

// DefaultConfig returns the built-in configuration: the stock trade-press feed
// map and the defaults the CLI flags override.
func DefaultConfig() *Config {
	return &Config{
		Feeds:             DefaultFeeds(),
		SourcesDir:        "",
		DaysBack:          7,
		StoriesPerSection: 3,
		HTTP: HTTPConfig{
			Timeout:      15 * time.Second,
			UserAgent:    "pressbrief/0.1 (+https://github.com/ppiankov/pressbrief)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Minute,
		},
		LLM: LLMConfig{
			Provider:  "anthropic",
			Timeout:   120,
			MaxTokens: 6000,
		},
		Newsletter: NewsletterConfig{
			Title:   "The Second Curves Media & Events Brief",
			Tagline: "Intelligence for the global exhibitions, events & trade media industry",
			Footer:  "Published by Events Industry Intelligence",
		},
		Output: OutputConfig{
			Format: "html",
		},
	}
}

// DefaultFeeds returns the stock feed map covering the exhibition, events and
// B2B media trade press.
func DefaultFeeds() map[string]string {
	return map[string]string{
		// Exhibition & events industry
		"exhibition_world":  "https://www.exhibitionworld.co.uk/feed",
		"exhibition_news":   "https://www.exhibitionnews.co.uk/feed",
		"mash_media":        "https://www.mashmedia.net/feed/",
		"conference_news":   "https://www.conference-news.co.uk/feed",
		"access_aa":         "https://accessaa.co.uk/feed/",
		"eventindustrynews": "https://www.eventindustrynews.com/feed",
		"tsnn":              "https://www.tsnn.com/feed",
		"exhibitor_online":  "https://www.exhibitoronline.com/news/rss.xml",

		// B2B media & publishing
		"fipp":              "https://www.fipp.com/feed/",
		"inpublishing":      "https://www.inpublishing.co.uk/feed",
		"pressgazette":      "https://pressgazette.co.uk/feed/",
		"journalism_co_uk":  "https://www.journalism.co.uk/feed/",

		// Business news filtered for media/events M&A
		"pe_hub_media": "https://www.pehub.com/feed/",

		// Marketing & events adjacent
		"event_marketer": "https://www.eventmarketer.com/feed/",
		"bizbash":        "https://www.bizbash.com/rss.xml",
		"skift_meetings": "https://skift.com/meetings/feed/",
	}
}
