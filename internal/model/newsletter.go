package model

import "time"

// ShortlistEntry is one item that survived the stage-1 board-level filter,
// enriched with the original Item fields for stage 2 and rendering.
type ShortlistEntry struct {
	Item Item `json:"item"`

	PrimaryLens   string `json:"primary_lens"`
	WhyItMatters  string `json:"why_it_matters"`
	BoardQuestion string `json:"board_question"`
	Scores        Scores `json:"scores"`
	IncludeTier   string `json:"include_tier"` // must_include or space_allows
	Notes         string `json:"notes,omitempty"`
}

// Scores is the stage-1 scoring breakdown, each dimension 0-5, total /25.
type Scores struct {
	StrategicRelevance int `json:"strategic_relevance"`
	EconomicImpact     int `json:"economic_impact"`
	DecisionUsefulness int `json:"decision_usefulness"`
	SignalStrength     int `json:"signal_strength"`
	Transferability    int `json:"transferability"`
	Total              int `json:"total"`
}

// Story is one written-up entry in a rendered newsletter section.
type Story struct {
	Headline  string `json:"headline"`
	Summary   string `json:"summary"`
	Source    string `json:"source"`
	Link      string `json:"link,omitempty"`
	Published string `json:"published,omitempty"`
	SubTheme  string `json:"sub_theme,omitempty"`
}

// NewsletterSection pairs a section definition with its written stories.
type NewsletterSection struct {
	Key       string   `json:"key"`
	Title     string   `json:"title"`
	Icon      string   `json:"icon"`
	SubThemes []string `json:"sub_themes,omitempty"`
	Stories   []Story  `json:"stories"`
}

// StoriesFor returns the section's stories tagged with the given sub-theme,
// in order. Used by templates for sub-themed sections.
func (s NewsletterSection) StoriesFor(subTheme string) []Story {
	var out []Story
	for _, story := range s.Stories {
		if story.SubTheme == subTheme {
			out = append(out, story)
		}
	}
	return out
}

// Newsletter is the composed document before rendering.
type Newsletter struct {
	Title       string              `json:"title"`
	Tagline     string              `json:"tagline"`
	Date        time.Time           `json:"date"`
	Intro       string              `json:"intro,omitempty"`
	Sections    []NewsletterSection `json:"sections"`
	Footer      string              `json:"footer,omitempty"`
	GeneratedBy string              `json:"generated_by,omitempty"` // provider/model, informational
}

// StoryCount returns the total number of stories across all sections.
func (n *Newsletter) StoryCount() int {
	total := 0
	for _, s := range n.Sections {
		total += len(s.Stories)
	}
	return total
}
