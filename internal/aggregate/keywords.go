package aggregate

import (
	"regexp"
	"strings"
	"sync"

	"github.com/ppiankov/pressbrief/internal/model"
)

// sectionPattern matches a section's keyword list against item text.
type sectionPattern struct {
	key string
	re  *regexp.Regexp
}

var sectionPatterns = sync.OnceValue(func() []sectionPattern {
	var patterns []sectionPattern
	for _, def := range model.Sections() {
		alts := make([]string, 0, len(def.Keywords))
		for _, kw := range def.Keywords {
			p := `\b` + regexp.QuoteMeta(strings.ToLower(kw))
			// Short keywords (PE, AI, MD...) need a closing boundary to
			// avoid matching inside unrelated words.
			if len(kw) < 4 {
				p += `\b`
			}
			alts = append(alts, p)
		}
		patterns = append(patterns, sectionPattern{
			key: def.Key,
			re:  regexp.MustCompile(`(` + strings.Join(alts, "|") + `)`),
		})
	}
	return patterns
})

// SectionHints returns the keys of sections whose keywords appear in the
// item's title or content. Advisory only: hints ride into the shortlist
// prompt, the ranking stage assigns the final section.
func SectionHints(item model.Item) []string {
	text := strings.ToLower(item.Title + " " + item.Content)

	var hints []string
	for _, sp := range sectionPatterns() {
		if sp.re.MatchString(text) {
			hints = append(hints, sp.key)
		}
	}
	return hints
}
