package aggregate

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/ppiankov/pressbrief/internal/model"
	"github.com/ppiankov/pressbrief/internal/source"
)

// stubReader implements source.Reader over a fixed item list.
type stubReader struct {
	name  string
	items []model.Item
	err   error
}

func (s *stubReader) Name() string { return s.name }

func (s *stubReader) Read(ctx context.Context) ([]model.Item, error) {
	return s.items, s.err
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
}

func daysAgo(n int) *time.Time {
	t := fixedNow().AddDate(0, 0, -n)
	return &t
}

func feedItem(title, link string, published *time.Time) model.Item {
	return model.Item{
		Title:       title,
		Source:      "Some Feed",
		Link:        link,
		Origin:      model.OriginFeed,
		PublishedAt: published,
	}
}

func userItem(title, link, content string) model.Item {
	return model.Item{
		Title:    title,
		Source:   model.SourceUserProvided,
		Link:     link,
		Content:  content,
		Origin:   model.OriginUserURL,
		Priority: true,
	}
}

func newAggregator(stubs []*stubReader, daysBack int) *Aggregator {
	readers := make([]source.Reader, len(stubs))
	for i, s := range stubs {
		readers[i] = s
	}
	agg := New(readers, daysBack, false, false)
	agg.Now = fixedNow
	return agg
}

func TestCollect_EmptyInputs(t *testing.T) {
	agg := New(nil, 7, false, false)
	items, err := agg.Collect(context.Background())
	if err != nil {
		t.Fatalf("Expected no error for empty inputs, got %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty collection, got %d items", len(items))
	}
}

func TestCollect_RequireSources(t *testing.T) {
	agg := New(nil, 7, true, false)
	if _, err := agg.Collect(context.Background()); err == nil {
		t.Error("Expected error when sources are required but none configured")
	}
}

func TestCollect_DedupeByLink_UserIntentSurvives(t *testing.T) {
	// urls.txt item comes first (user readers run before feeds) with empty
	// content; the feed later emits the same link with a body. One item must
	// come out: priority, with the feed's content.
	agg := newAggregator([]*stubReader{
		{name: "urls", items: []model.Item{userItem("Source: https://example.com/deal", "https://example.com/deal", "")}},
		{name: "rss", items: []model.Item{feedItem("Clarion deal closes", "https://example.com/deal", daysAgo(1))}},
	}, 7)

	items, err := agg.Collect(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 merged item, got %d", len(items))
	}

	got := items[0]
	if !got.Priority {
		t.Error("Expected merged item to keep priority")
	}
	if got.Content != "" {
		// The feed entry had no content either in this fixture.
		t.Errorf("Unexpected content %q", got.Content)
	}
	if got.Title != "Source: https://example.com/deal" {
		t.Errorf("Expected first-seen item to be kept, got title %q", got.Title)
	}
}

func TestCollect_DedupeKeepsLongerContent(t *testing.T) {
	agg := newAggregator([]*stubReader{
		{name: "urls", items: []model.Item{userItem("Source: https://example.com/deal", "https://example.com/deal", "")}},
		{name: "rss", items: []model.Item{
			func() model.Item {
				it := feedItem("Clarion deal closes", "https://example.com/deal", daysAgo(1))
				it.Content = "Clarion announced the acquisition of a venue operator."
				return it
			}(),
		}},
	}, 7)

	items, err := agg.Collect(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 merged item, got %d", len(items))
	}
	if items[0].Content != "Clarion announced the acquisition of a venue operator." {
		t.Errorf("Expected feed content to be merged in, got %q", items[0].Content)
	}
	if !items[0].Priority {
		t.Error("Expected priority to survive the merge")
	}
}

func TestCollect_PromotesPriorityOntoKeptFeedItem(t *testing.T) {
	// Feed emits the story first; a user duplicate arrives later. The kept
	// feed item must be promoted to priority.
	agg := newAggregator([]*stubReader{
		{name: "rss", items: []model.Item{
			func() model.Item {
				it := feedItem("Hyve names CFO", "https://example.com/cfo", daysAgo(2))
				it.Content = "Full feed body."
				return it
			}(),
		}},
		{name: "json", items: []model.Item{userItem("Hyve names CFO", "https://example.com/cfo", "short")}},
	}, 7)

	items, err := agg.Collect(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 merged item, got %d", len(items))
	}
	if !items[0].Priority {
		t.Error("Expected kept feed item to be promoted to priority")
	}
	if items[0].Content != "Full feed body." {
		t.Errorf("Expected longer content to be kept, got %q", items[0].Content)
	}
}

func TestCollect_DedupeByTitleSource(t *testing.T) {
	a := model.Item{Title: "Venue Notes", Source: "user-provided", Origin: model.OriginUserText, Priority: true, Content: "short"}
	b := model.Item{Title: "venue  notes", Source: "User-Provided", Origin: model.OriginUserMD, Priority: true, Content: "a longer body of text"}

	agg := newAggregator([]*stubReader{
		{name: "text", items: []model.Item{a}},
		{name: "md", items: []model.Item{b}},
	}, 7)

	items, err := agg.Collect(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("Expected 1 merged item, got %d", len(items))
	}
	if items[0].Content != "a longer body of text" {
		t.Errorf("Expected longer content to win, got %q", items[0].Content)
	}
}

func TestCollect_RecencyWindow(t *testing.T) {
	fresh := feedItem("Fresh story", "https://example.com/fresh", daysAgo(3))
	stale := feedItem("Stale story", "https://example.com/stale", daysAgo(30))
	undated := feedItem("Undated story", "https://example.com/undated", nil)
	oldButUser := userItem("Old pick", "https://example.com/old-pick", "body")
	oldButUser.PublishedAt = daysAgo(90)

	agg := newAggregator([]*stubReader{
		{name: "urls", items: []model.Item{oldButUser}},
		{name: "rss", items: []model.Item{fresh, stale, undated}},
	}, 7)

	items, err := agg.Collect(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	titles := make([]string, len(items))
	for i, it := range items {
		titles[i] = it.Title
	}
	want := []string{"Old pick", "Fresh story", "Undated story"}
	if !reflect.DeepEqual(titles, want) {
		t.Errorf("Expected %v, got %v", want, titles)
	}
}

func TestCollect_PriorityOrdering(t *testing.T) {
	agg := newAggregator([]*stubReader{
		{name: "rss", items: []model.Item{
			feedItem("Feed one", "https://example.com/1", daysAgo(1)),
			feedItem("Feed two", "https://example.com/2", daysAgo(1)),
		}},
		{name: "text", items: []model.Item{
			{Title: "User note", Source: "user-provided", Origin: model.OriginUserText, Priority: true},
		}},
	}, 7)

	items, err := agg.Collect(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	if items[0].Title != "User note" {
		t.Errorf("Expected priority item first, got %q", items[0].Title)
	}
	if items[1].Title != "Feed one" || items[2].Title != "Feed two" {
		t.Errorf("Expected feed items in merge order, got %q then %q", items[1].Title, items[2].Title)
	}
}

func TestCollect_FailingReaderIsSkipped(t *testing.T) {
	agg := newAggregator([]*stubReader{
		{name: "broken", err: fmt.Errorf("disk exploded")},
		{name: "rss", items: []model.Item{feedItem("Survivor", "https://example.com/s", daysAgo(1))}},
	}, 7)

	items, err := agg.Collect(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 1 || items[0].Title != "Survivor" {
		t.Errorf("Expected the surviving reader's item, got %v", items)
	}
}

func TestCollect_Deterministic(t *testing.T) {
	readers := []*stubReader{
		{name: "text", items: []model.Item{
			{Title: "Alpha", Source: "user-provided", Origin: model.OriginUserText, Priority: true, Content: "alpha body"},
		}},
		{name: "rss", items: []model.Item{
			feedItem("Beta", "https://example.com/b", daysAgo(2)),
			feedItem("Gamma", "https://example.com/g", nil),
		}},
	}

	first, err := newAggregator(readers, 7).Collect(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := newAggregator(readers, 7).Collect(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical output across runs on static inputs")
	}
}

func TestSectionHints(t *testing.T) {
	deal := model.Item{Title: "Informa completes acquisition of RX", Content: "The merger creates the largest organizer."}
	hires := model.Item{Title: "New CEO appointed at Emerald", Content: ""}
	nothing := model.Item{Title: "Quiet week", Content: "Nothing happened."}

	if hints := SectionHints(deal); !containsHint(hints, "deals") {
		t.Errorf("Expected deals hint, got %v", hints)
	}
	if hints := SectionHints(hires); !containsHint(hints, "hires_fires") {
		t.Errorf("Expected hires_fires hint, got %v", hints)
	}
	if hints := SectionHints(nothing); len(hints) != 0 {
		t.Errorf("Expected no hints, got %v", hints)
	}
}

func TestSectionHints_ShortKeywordBoundaries(t *testing.T) {
	// "PE" must not match inside "person"; "AI" must not match inside "air".
	item := model.Item{Title: "A person said the air was fine"}
	for _, hint := range SectionHints(item) {
		if hint == "deals" {
			t.Error("Did not expect deals hint from substring matches")
		}
	}
}

func containsHint(hints []string, key string) bool {
	for _, h := range hints {
		if h == key {
			return true
		}
	}
	return false
}
