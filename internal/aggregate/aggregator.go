// Package aggregate merges reader outputs into one deduplicated,
// time-windowed, priority-ordered collection of items.
package aggregate

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/pressbrief/internal/model"
	"github.com/ppiankov/pressbrief/internal/source"
)

// Aggregator runs readers in their declared order and merges the results.
// Given identical static inputs the output is byte-identical across runs.
type Aggregator struct {
	readers        []source.Reader
	daysBack       int
	requireSources bool
	verbose        bool

	// Now is the clock for the recency window. Overridable in tests.
	Now func() time.Time
}

// New creates an Aggregator over the given readers. daysBack <= 0 disables
// the recency window.
func New(readers []source.Reader, daysBack int, requireSources, verbose bool) *Aggregator {
	return &Aggregator{
		readers:        readers,
		daysBack:       daysBack,
		requireSources: requireSources,
		verbose:        verbose,
		Now:            time.Now,
	}
}

// Collect gathers, deduplicates, windows, and orders all items. Data-quality
// problems are never fatal: a failing reader is logged and skipped. The only
// error cases are zero configured readers when sources are required, and
// context cancellation.
func (a *Aggregator) Collect(ctx context.Context) ([]model.Item, error) {
	if len(a.readers) == 0 {
		if a.requireSources {
			return nil, fmt.Errorf("no sources configured: no feeds and no sources directory")
		}
		fmt.Fprintln(os.Stderr, "  ⚠️  No sources configured; newsletter will be empty")
		return nil, nil
	}

	merged, err := a.merge(ctx)
	if err != nil {
		return nil, err
	}

	windowed := a.applyWindow(merged)

	for i := range windowed {
		windowed[i].SectionHints = SectionHints(windowed[i])
	}

	return orderByPriority(windowed), nil
}

// merge collects reader outputs in declared order and deduplicates by
// identity. On collision the first occurrence stays, but priority and the
// longer non-empty content survive from either side: a user's intent to
// include a story is kept even when a feed emitted it first.
func (a *Aggregator) merge(ctx context.Context) ([]model.Item, error) {
	seen := make(map[string]int)
	var merged []model.Item

	for _, r := range a.readers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items, err := r.Read(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ⚠️  Skipping reader %s: %v\n", r.Name(), err)
			continue
		}
		if a.verbose {
			fmt.Fprintf(os.Stderr, "  %s: %d items\n", r.Name(), len(items))
		}

		for _, item := range items {
			id := item.Identity()
			if idx, ok := seen[id]; ok {
				kept := &merged[idx]
				if item.Priority {
					kept.Priority = true
				}
				if len(item.Content) > len(kept.Content) {
					kept.Content = item.Content
				}
				if kept.Link == "" {
					kept.Link = item.Link
				}
				if kept.PublishedAt == nil {
					kept.PublishedAt = item.PublishedAt
				}
				continue
			}
			seen[id] = len(merged)
			merged = append(merged, item)
		}
	}

	return merged, nil
}

// applyWindow drops non-priority dated items older than the cutoff. Priority
// and undated items always pass.
func (a *Aggregator) applyWindow(items []model.Item) []model.Item {
	if a.daysBack <= 0 {
		return items
	}

	cutoff := a.Now().AddDate(0, 0, -a.daysBack)
	kept := items[:0:0]
	for _, item := range items {
		if !item.Priority && item.PublishedAt != nil && item.PublishedAt.Before(cutoff) {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

// orderByPriority puts priority items first, preserving merge order within
// each group.
func orderByPriority(items []model.Item) []model.Item {
	ordered := make([]model.Item, 0, len(items))
	for _, item := range items {
		if item.Priority {
			ordered = append(ordered, item)
		}
	}
	for _, item := range items {
		if !item.Priority {
			ordered = append(ordered, item)
		}
	}
	return ordered
}
