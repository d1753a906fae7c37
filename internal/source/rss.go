package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"

	"github.com/ppiankov/pressbrief/internal/model"
)

const (
	maxEntriesPerFeed   = 15
	maxFeedContentRunes = 2000
)

// FeedFetcher retrieves a raw feed document. Satisfied by fetch.Fetcher.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// RSSReader converts a feed-name → feed-URL map into items. Feeds are fetched
// in sorted-name order; a feed that fails to fetch or parse is logged and
// skipped so one dead publisher never aborts the run.
type RSSReader struct {
	feeds   map[string]string
	fetcher FeedFetcher
	parser  *gofeed.Parser
	verbose bool
}

// NewRSSReader creates an RSS reader over the given feed map.
func NewRSSReader(feeds map[string]string, fetcher FeedFetcher, verbose bool) *RSSReader {
	return &RSSReader{
		feeds:   feeds,
		fetcher: fetcher,
		parser:  gofeed.NewParser(),
		verbose: verbose,
	}
}

func (r *RSSReader) Name() string {
	return fmt.Sprintf("rss(%d feeds)", len(r.feeds))
}

func (r *RSSReader) Read(ctx context.Context) ([]model.Item, error) {
	names := make([]string, 0, len(r.feeds))
	for name := range r.feeds {
		names = append(names, name)
	}
	sort.Strings(names)

	var items []model.Item
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return items, err
		}

		feedItems, err := r.readFeed(ctx, name, r.feeds[name])
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ⚠️  Skipping feed %s: %v\n", name, err)
			continue
		}
		if r.verbose {
			fmt.Fprintf(os.Stderr, "  Fetched %s: %d entries\n", name, len(feedItems))
		}
		items = append(items, feedItems...)
	}

	return items, nil
}

func (r *RSSReader) readFeed(ctx context.Context, name, feedURL string) ([]model.Item, error) {
	body, err := r.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	feed, err := r.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	source := feedDisplayName(name)

	var items []model.Item
	for i, entry := range feed.Items {
		if i >= maxEntriesPerFeed {
			break
		}

		item, err := model.NewItem(entry.Title, source, model.OriginFeed)
		if err != nil {
			continue
		}
		item.Link = entry.Link
		item.Content = truncateRunes(StripHTML(entry.Description), maxFeedContentRunes)
		if item.Content == "" && entry.Content != "" {
			item.Content = truncateRunes(StripHTML(entry.Content), maxFeedContentRunes)
		}

		// Published wins over Updated; entries with neither stay undated
		// and bypass the recency window downstream.
		if entry.PublishedParsed != nil {
			t := entry.PublishedParsed.UTC()
			item.PublishedAt = &t
		} else if entry.UpdatedParsed != nil {
			t := entry.UpdatedParsed.UTC()
			item.PublishedAt = &t
		}

		items = append(items, item)
	}

	return items, nil
}

// StripHTML drops markup from a feed summary and collapses whitespace.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	var b strings.Builder
	tz := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := tz.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.WriteString(tz.Token().Data)
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// feedDisplayName turns a feed key like "exhibition_world" into
// "Exhibition World".
func feedDisplayName(name string) string {
	return capitalizeWords(strings.ReplaceAll(name, "_", " "))
}
