package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/pressbrief/internal/model"
)

const (
	// maxShortlistPromptItems caps stage 1 input to keep the prompt inside
	// a sane token budget.
	maxShortlistPromptItems = 60

	// maxComposePromptItems caps stage 2 input.
	maxComposePromptItems = 30

	// promptSnippetRunes caps the content excerpt quoted per item.
	promptSnippetRunes = 900
)

const publishedLayout = "02 January 2006"

// filteringSpec is the board-level inclusion brief applied in stage 1.
const filteringSpec = `AI BRIEF: ARTICLE FILTERING & PRIORITISATION (BOARD-LEVEL)

Role:
- You are a senior industry intelligence analyst.
Audience:
- PE investors, board directors, CEOs, corp dev leaders in global B2B media & live events.

Objective:
- Filter and prioritise only articles that reveal structural change or economically meaningful shifts.
- Focus on implications for capital allocation, valuation, strategy, revenue quality, margins, or risk.
Exclude:
- Product launches, vendor marketing, event-tech hype, tactical "how-to", generic macro with no industry transmission.

Core Analytical Lenses (article must fit at least one):
1) Macro & Capital
2) Formats & Attention
3) Geography & Exposure
4) Pricing, Yield & Revenue Quality
5) Portfolio Strategy & M&A
6) Cost Structure & Operating Leverage

Mandatory questions:
- What is the signal?
- Why does this matter economically?
- Who is affected?
- Structural or cyclical?
- What board-level question does it raise?

Scoring (/25): 0-5 each:
- Strategic relevance
- Economic impact
- Decision usefulness
- Signal strength
- Transferability

Interpretation:
- 20-25 Must include
- 14-19 Include if space allows
- <14 Exclude`

// writingStyle is the editorial standard applied in stage 2.
const writingStyle = `WRITING STYLE - FT/ECONOMIST EDITORIAL STANDARDS:

TONE:
- Authoritative and analytical, never promotional
- Assume reader is a senior executive or board member
- Focus on strategic implications, not just facts
- Use measured, confident language - avoid hyperbole
- Be direct and concise - every sentence must earn its place

STRUCTURE:
- Lead with the strategic significance ("why this matters")
- Follow with the key facts
- Close with forward-looking implications
- Use short paragraphs (2-3 sentences max)

LANGUAGE:
- Prefer active voice
- Avoid jargon unless industry-standard
- No exclamation marks
- No marketing speak ("excited to announce", "thrilled", "game-changing")
- Use precise numbers and attribution
- "Sources suggest" or "according to" for unconfirmed information

ANALYSIS:
- Connect individual stories to broader market trends
- Reference comparable deals/moves where relevant
- Note what isn't being said as well as what is
- Consider competitive implications

EXAMPLES OF GOOD PHRASING:
- "The acquisition signals..." not "This is a game-changing deal"
- "The move comes amid..." not "In exciting news..."
- "Industry observers note..." not "Everyone is talking about..."
- "The appointment suggests a strategic shift toward..." not "Great hire!"`

// buildShortlistPrompt constructs the stage-1 filter/score prompt.
func buildShortlistPrompt(items []model.Item, instructions string) string {
	var sb strings.Builder

	sb.WriteString("You are the research desk for a board-level intelligence newsletter in global B2B media & live events.\n\n")
	sb.WriteString(filteringSpec)
	sb.WriteString("\n\n")

	if instructions != "" {
		fmt.Fprintf(&sb, "SPECIAL EDITORIAL INSTRUCTIONS: %s\n\n", instructions)
	}

	sb.WriteString("ARTICLES:\n")
	for i, item := range items {
		if i >= maxShortlistPromptItems {
			break
		}
		writeItemBlock(&sb, i+1, item)
	}

	sb.WriteString(`
TASK:
1) Exclude anything that does not meet the inclusion criteria.
2) For each INCLUDED article:
   - Assign ONE primary lens from the six.
   - Write why_it_matters (2-3 sentences; implications only, not a summary).
   - Write board_question (1 sentence).
   - Score each dimension 0-5 and provide total /25.
3) Rank included articles by:
   - total_score desc,
   - then user_provided first,
   - then recency.

OUTPUT:
Return ONLY valid JSON in exactly this structure:
{
  "included": [
    {
      "article_index": 1,
      "primary_lens": "Pricing, Yield & Revenue Quality",
      "why_it_matters": "...",
      "board_question": "...",
      "scores": {
        "strategic_relevance": 0,
        "economic_impact": 0,
        "decision_usefulness": 0,
        "signal_strength": 0,
        "transferability": 0,
        "total": 0
      },
      "include_tier": "must_include|space_allows",
      "notes": "Optional: 1 short sentence on what to watch next"
    }
  ]
}

Rules:
- Do not invent facts not present in the article snippet.
- If unsure, state assumptions briefly in notes.
- Aim for 8-20 included items if available; otherwise include fewer.
`)

	return sb.String()
}

func writeItemBlock(sb *strings.Builder, index int, item model.Item) {
	flag := ""
	if item.Priority {
		flag = " [USER-PROVIDED SOURCE - PRIORITIZE]"
	}

	published := ""
	if item.PublishedAt != nil {
		published = item.PublishedAt.Format(publishedLayout)
	}

	fmt.Fprintf(sb, "\n---\n[Article %d]%s\n", index, flag)
	fmt.Fprintf(sb, "Source: %s\n", item.Source)
	fmt.Fprintf(sb, "Title: %s\n", item.Title)
	fmt.Fprintf(sb, "Published: %s\n", published)
	fmt.Fprintf(sb, "Link: %s\n", item.Link)
	if len(item.SectionHints) > 0 {
		fmt.Fprintf(sb, "SectionHints: %s\n", strings.Join(item.SectionHints, ", "))
	}
	snippet := item.Content
	if len([]rune(snippet)) > promptSnippetRunes {
		snippet = string([]rune(snippet)[:promptSnippetRunes])
	}
	fmt.Fprintf(sb, "Content: %s\n---\n", snippet)
}

// buildComposePrompt constructs the stage-2 writing prompt from a shortlist.
func buildComposePrompt(entries []model.ShortlistEntry, storiesPerSection int, instructions string) string {
	var sb strings.Builder

	sb.WriteString("You are the editor of a prestigious industry intelligence newsletter covering the global B2B trade press, conferences, exhibitions, and events industry. Your readers are C-suite executives, board members, investors, and senior strategists.\n\n")
	sb.WriteString(writingStyle)
	sb.WriteString("\n\nYOUR TASK:\nUsing ONLY the shortlisted items, produce a newsletter with three sections. For each section, select the most significant stories and write them in FT/Economist editorial style.\n\nSECTIONS TO PRODUCE:\n")

	for _, section := range model.Sections() {
		fmt.Fprintf(&sb, "\n%s:\n- %s\n- Focus: %s\n", strings.ToUpper(section.Title), section.Description, section.PromptFocus)
	}

	fmt.Fprintf(&sb, `
IMPORTANT RULES:
1. USER-PROVIDED SOURCES (marked with [USER-PROVIDED SOURCE]) should be prioritized - the editor specifically collected these
2. Each section should have %d main stories (if enough quality content exists)
3. If a story doesn't clearly fit a section, use your judgment or skip it
4. Avoid duplicating the same story across sections
5. Write headlines that are informative, not clickbait
6. Summaries should be 2-3 short paragraphs analyzing the strategic significance
`, storiesPerSection)

	if instructions != "" {
		fmt.Fprintf(&sb, "\nSPECIAL EDITORIAL INSTRUCTIONS: %s\n", instructions)
	}

	sb.WriteString("\nSHORTLISTED ITEMS TO ANALYZE:\n")
	for i, entry := range entries {
		if i >= maxComposePromptItems {
			break
		}
		writeShortlistBlock(&sb, i+1, entry)
	}

	sb.WriteString(`
Respond with valid JSON in this exact structure:
{
    "intro": "A 2-3 sentence editorial overview of this period's key themes and what they signal for the industry",
    "sections": {
        "market_signals": {
            "stories": [
                {
                    "shortlist_index": 1,
                    "headline": "Strategic, informative headline",
                    "summary": "2-3 paragraph analysis in FT style. Focus on strategic implications.",
                    "sub_theme": "Macro Economy",
                    "why_selected": "Brief editorial note on significance"
                }
            ]
        },
        "deals": {
            "stories": []
        },
        "hires_fires": {
            "stories": []
        }
    }
}

IMPORTANT: For market_signals stories, you MUST include "sub_theme" field with either "Macro Economy" or "Consumer Trends".
Do NOT include any "briefs" or "in brief" items - only main stories.
If a section has no relevant stories, use empty arrays.
Return ONLY valid JSON, no other text.`)

	return sb.String()
}

func writeShortlistBlock(sb *strings.Builder, index int, entry model.ShortlistEntry) {
	flag := ""
	if entry.Item.Priority {
		flag = " [USER-PROVIDED SOURCE - PRIORITIZE]"
	}

	published := ""
	if entry.Item.PublishedAt != nil {
		published = entry.Item.PublishedAt.Format(publishedLayout)
	}

	fmt.Fprintf(sb, "\n---\n[Shortlist %d]%s\n", index, flag)
	fmt.Fprintf(sb, "Source: %s\n", entry.Item.Source)
	fmt.Fprintf(sb, "Title: %s\n", entry.Item.Title)
	fmt.Fprintf(sb, "Published: %s\n", published)
	fmt.Fprintf(sb, "Link: %s\n", entry.Item.Link)
	fmt.Fprintf(sb, "PrimaryLens: %s\n", entry.PrimaryLens)
	fmt.Fprintf(sb, "ScoreTotal: %d/25\n", entry.Scores.Total)
	fmt.Fprintf(sb, "WhyItMatters: %s\n", entry.WhyItMatters)
	fmt.Fprintf(sb, "BoardQuestion: %s\n---\n", entry.BoardQuestion)
}

// formatPublished renders a timestamp the way the newsletter displays dates.
func formatPublished(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(publishedLayout)
}
