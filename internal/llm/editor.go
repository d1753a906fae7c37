package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"

	"github.com/ppiankov/pressbrief/internal/model"
)

// Editor drives the two LLM stages: a board-level filter/score pass that
// produces a shortlist, and a writing pass that turns the shortlist into
// sectioned newsletter copy.
type Editor struct {
	provider Provider
	config   Config
}

// NewEditor creates an Editor for the configured provider.
func NewEditor(config Config) (*Editor, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Editor{provider: provider, config: config}, nil
}

// NewEditorWithProvider wires an explicit provider; used by tests and the
// pipeline's dry-run paths.
func NewEditorWithProvider(provider Provider, config Config) *Editor {
	return &Editor{provider: provider, config: config}
}

// ProviderName returns the active provider's name, or "" when unset.
func (e *Editor) ProviderName() string {
	if e.provider == nil {
		return ""
	}
	return e.provider.Name()
}

// stage-1 wire format
type shortlistResult struct {
	Included []shortlistRecord `json:"included"`
}

type shortlistRecord struct {
	ArticleIndex  int          `json:"article_index"`
	PrimaryLens   string       `json:"primary_lens"`
	WhyItMatters  string       `json:"why_it_matters"`
	BoardQuestion string       `json:"board_question"`
	Scores        model.Scores `json:"scores"`
	IncludeTier   string       `json:"include_tier"`
	Notes         string       `json:"notes"`
}

// Shortlist runs stage 1: filter and score the aggregated items, returning a
// ranked shortlist enriched with the original item fields.
func (e *Editor) Shortlist(ctx context.Context, items []model.Item) ([]model.ShortlistEntry, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}
	if len(items) == 0 {
		return nil, nil
	}

	resp, err := e.provider.Complete(ctx, CompletionRequest{
		System:      "You are a research desk assistant producing strictly formatted JSON for a newsletter pipeline.",
		Prompt:      buildShortlistPrompt(items, e.config.Instructions),
		MaxTokens:   firstNonZero(e.config.MaxTokens, 4500),
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("shortlist stage: %w", err)
	}

	var result shortlistResult
	if err := unmarshalResponse(resp.Text, &result); err != nil {
		return nil, fmt.Errorf("shortlist stage: %w", err)
	}

	var entries []model.ShortlistEntry
	for _, rec := range result.Included {
		idx := rec.ArticleIndex - 1
		if idx < 0 || idx >= len(items) {
			continue
		}
		entries = append(entries, model.ShortlistEntry{
			Item:          items[idx],
			PrimaryLens:   rec.PrimaryLens,
			WhyItMatters:  rec.WhyItMatters,
			BoardQuestion: rec.BoardQuestion,
			Scores:        rec.Scores,
			IncludeTier:   rec.IncludeTier,
			Notes:         rec.Notes,
		})
	}

	sortShortlist(entries)
	return entries, nil
}

// sortShortlist ranks by total score desc, then user-provided first, then
// recency desc. Stable, so equal entries keep their model-given order.
func sortShortlist(entries []model.ShortlistEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Scores.Total != b.Scores.Total {
			return a.Scores.Total > b.Scores.Total
		}
		if a.Item.Priority != b.Item.Priority {
			return a.Item.Priority
		}
		return publishedUnix(a) > publishedUnix(b)
	})
}

func publishedUnix(e model.ShortlistEntry) int64 {
	if e.Item.PublishedAt == nil {
		return 0
	}
	return e.Item.PublishedAt.Unix()
}

// stage-2 wire format
type composeResult struct {
	Intro    string                    `json:"intro"`
	Sections map[string]composeSection `json:"sections"`
}

type composeSection struct {
	Stories []composeStory `json:"stories"`
}

type composeStory struct {
	ShortlistIndex int    `json:"shortlist_index"`
	Headline       string `json:"headline"`
	Summary        string `json:"summary"`
	SubTheme       string `json:"sub_theme"`
	WhySelected    string `json:"why_selected"`
}

// Compose runs stage 2: write the newsletter sections from the shortlist.
// Section order and definitions come from model.Sections; stories are
// enriched with source/link/date from the shortlisted items.
func (e *Editor) Compose(ctx context.Context, entries []model.ShortlistEntry, storiesPerSection int) (*model.Newsletter, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("no LLM provider configured")
	}

	newsletter := &model.Newsletter{}
	if len(entries) == 0 {
		newsletter.Sections = emptySections()
		return newsletter, nil
	}

	resp, err := e.provider.Complete(ctx, CompletionRequest{
		System:      "You are a newsletter editor producing strictly formatted JSON.",
		Prompt:      buildComposePrompt(entries, storiesPerSection, e.config.Instructions),
		MaxTokens:   firstNonZero(e.config.MaxTokens, 6000),
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("compose stage: %w", err)
	}

	var result composeResult
	if err := unmarshalResponse(resp.Text, &result); err != nil {
		return nil, fmt.Errorf("compose stage: %w", err)
	}

	newsletter.Intro = result.Intro
	newsletter.GeneratedBy = e.provider.Name() + "/" + resp.Model

	for _, def := range model.Sections() {
		section := model.NewsletterSection{
			Key:       def.Key,
			Title:     def.Title,
			Icon:      def.Icon,
			SubThemes: def.SubThemes,
		}

		for _, story := range result.Sections[def.Key].Stories {
			idx := story.ShortlistIndex - 1
			if idx < 0 || idx >= len(entries) {
				continue
			}
			entry := entries[idx]

			headline := story.Headline
			if headline == "" {
				headline = entry.Item.Title
			}

			section.Stories = append(section.Stories, model.Story{
				Headline:  headline,
				Summary:   story.Summary,
				Source:    entry.Item.Source,
				Link:      entry.Item.Link,
				Published: formatPublished(entry.Item.PublishedAt),
				SubTheme:  story.SubTheme,
			})
		}

		newsletter.Sections = append(newsletter.Sections, section)
	}

	return newsletter, nil
}

func emptySections() []model.NewsletterSection {
	var sections []model.NewsletterSection
	for _, def := range model.Sections() {
		sections = append(sections, model.NewsletterSection{
			Key:       def.Key,
			Title:     def.Title,
			Icon:      def.Icon,
			SubThemes: def.SubThemes,
		})
	}
	return sections
}

var jsonBlockPattern = regexp.MustCompile(`\{[\s\S]*\}`)

// unmarshalResponse extracts the first JSON object from LLM output, which
// may be wrapped in prose or a code fence despite instructions.
func unmarshalResponse(text string, v any) error {
	block := jsonBlockPattern.FindString(text)
	if block == "" {
		block = text
	}
	if err := json.Unmarshal([]byte(block), v); err != nil {
		preview := text
		if len(preview) > 200 {
			preview = preview[:200]
		}
		return fmt.Errorf("parse LLM JSON: %w (response preview: %q)", err, preview)
	}
	return nil
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
