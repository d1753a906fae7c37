package model

import (
	"fmt"
	"strings"
	"time"
)

// Origin tags where an item came from. Anything other than OriginFeed is
// user-provided and carries priority through the pipeline.
type Origin string

const (
	OriginFeed     Origin = "feed"
	OriginUserURL  Origin = "user_url"
	OriginUserText Origin = "user_text"
	OriginUserJSON Origin = "user_json"
	OriginUserMD   Origin = "user_markdown"
)

// SourceUserProvided is the fallback source label for items loaded from the
// sources directory without a declared source field.
const SourceUserProvided = "user-provided"

func (o Origin) String() string {
	return string(o)
}

// IsUserProvided reports whether the origin is anything other than an RSS feed.
func (o Origin) IsUserProvided() bool {
	return o != OriginFeed && o != ""
}

// Item is one normalized candidate news entry before ranking.
type Item struct {
	Title       string     `json:"title"`
	Source      string     `json:"source"`
	Link        string     `json:"link,omitempty"`
	Content     string     `json:"content,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"` // nil = undated, exempt from recency window
	Origin      Origin     `json:"origin"`
	Priority    bool       `json:"priority"`

	// SectionHints are candidate section keys assigned by keyword matching.
	// Advisory only; the ranking stage makes the final call.
	SectionHints []string `json:"section_hints,omitempty"`
}

// NewItem validates and constructs an Item. Title and origin are required;
// everything else is optional. Unknown extra data in source records is the
// reader's problem, not this constructor's.
func NewItem(title, source string, origin Origin) (Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Item{}, fmt.Errorf("item: empty title")
	}
	if origin == "" {
		return Item{}, fmt.Errorf("item %q: empty origin", title)
	}

	source = strings.TrimSpace(source)
	if source == "" {
		source = SourceUserProvided
	}

	return Item{
		Title:    title,
		Source:   source,
		Origin:   origin,
		Priority: origin.IsUserProvided(),
	}, nil
}

// Identity returns the deduplication key: the normalized link when present,
// otherwise the normalized (title, source) pair.
func (it Item) Identity() string {
	if link := NormalizeLink(it.Link); link != "" {
		return "link:" + link
	}
	return "ts:" + normalizeText(it.Title) + "\x00" + normalizeText(it.Source)
}

// NormalizeLink canonicalizes a URL for identity comparison: lowercased,
// scheme and fragment stripped, trailing slash removed. Returns "" for blank
// input so callers can fall back to the title/source identity.
func NormalizeLink(link string) string {
	link = strings.TrimSpace(strings.ToLower(link))
	if link == "" {
		return ""
	}
	link = strings.TrimPrefix(link, "https://")
	link = strings.TrimPrefix(link, "http://")
	link = strings.TrimPrefix(link, "www.")
	if idx := strings.IndexByte(link, '#'); idx >= 0 {
		link = link[:idx]
	}
	return strings.TrimSuffix(link, "/")
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
