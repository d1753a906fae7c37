package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/pressbrief/internal/llm"
	"github.com/ppiankov/pressbrief/internal/model"
)

// stubProvider returns canned responses in call order.
type stubProvider struct {
	responses []string
	call      int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if s.call >= len(s.responses) {
		return nil, fmt.Errorf("stub: no response %d", s.call)
	}
	text := s.responses[s.call]
	s.call++
	return &llm.CompletionResponse{Text: text, Model: "stub-model"}, nil
}

func (s *stubProvider) IsAvailable(ctx context.Context) bool { return true }

func testConfig(sourcesDir string) *model.Config {
	cfg := model.DefaultConfig()
	cfg.Feeds = nil // no network in tests
	cfg.SourcesDir = sourcesDir
	cfg.Cache.Enabled = false
	cfg.Newsletter.Title = "Test Brief"
	cfg.Newsletter.Tagline = "Testing signals"
	cfg.Newsletter.Footer = "Test footer"
	return cfg
}

func newTestPipeline(cfg *model.Config, provider llm.Provider) *Pipeline {
	p := NewPipelineWithEditor(cfg, llm.NewEditorWithProvider(provider, llm.DefaultConfig()))
	p.Now = func() time.Time {
		return time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC)
	}
	return p
}

func TestGenerate_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	md := "# Board Memo\n\nWe are considering a bolt-on acquisition in trade media.\n"
	if err := os.WriteFile(filepath.Join(dir, "memo.md"), []byte(md), 0o644); err != nil {
		t.Fatal(err)
	}

	provider := &stubProvider{responses: []string{
		`{"included":[{"article_index":1,"primary_lens":"Portfolio Strategy & M&A","why_it_matters":"Member intent.","board_question":"Fit?","scores":{"total":22},"include_tier":"must_include"}]}`,
		`{"intro":"One memo drove this issue.","sections":{"market_signals":{"stories":[]},"deals":{"stories":[{"shortlist_index":1,"headline":"Bolt-on in trade media","summary":"The board memo analysis."}]},"hires_fires":{"stories":[]}}}`,
	}}
	p := newTestPipeline(testConfig(dir), provider)

	result, err := p.Generate(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Collected != 1 || result.Shortlist != 1 {
		t.Errorf("Unexpected counters: %+v", result)
	}

	n := result.Newsletter
	if n.Title != "Test Brief" || n.Tagline != "Testing signals" || n.Footer != "Test footer" {
		t.Errorf("Expected configured chrome, got %q / %q / %q", n.Title, n.Tagline, n.Footer)
	}
	if !n.Date.Equal(time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected issue date: %v", n.Date)
	}
	if n.Intro != "One memo drove this issue." {
		t.Errorf("Unexpected intro: %q", n.Intro)
	}
	if n.StoryCount() != 1 {
		t.Fatalf("Expected 1 story, got %d", n.StoryCount())
	}
	if n.Sections[1].Stories[0].Headline != "Bolt-on in trade media" {
		t.Errorf("Unexpected story: %+v", n.Sections[1].Stories[0])
	}
	// Story source comes from the aggregated item, not the LLM.
	if n.Sections[1].Stories[0].Source != model.SourceUserProvided {
		t.Errorf("Expected user-provided source, got %q", n.Sections[1].Stories[0].Source)
	}
}

func TestGenerate_NoInputsStillCompletes(t *testing.T) {
	provider := &stubProvider{}
	p := newTestPipeline(testConfig(""), provider)

	result, err := p.Generate(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Collected != 0 || result.Shortlist != 0 {
		t.Errorf("Unexpected counters: %+v", result)
	}
	if len(result.Newsletter.Sections) != 3 {
		t.Errorf("Expected empty section scaffold, got %d sections", len(result.Newsletter.Sections))
	}
	if provider.call != 0 {
		t.Errorf("Expected no LLM calls on empty input, got %d", provider.call)
	}
}

func TestGenerate_RequireSourcesFails(t *testing.T) {
	cfg := testConfig("")
	cfg.RequireSources = true
	p := newTestPipeline(cfg, &stubProvider{})

	if _, err := p.Generate(context.Background()); err == nil {
		t.Error("Expected error when sources are required but absent")
	}
}

func TestCollect_DryRunNeedsNoProvider(t *testing.T) {
	dir := t.TempDir()
	urls := "https://example.com/story-one\nhttps://example.com/story-two\n"
	if err := os.WriteFile(filepath.Join(dir, "picks.txt"), []byte(urls), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(dir)
	p := NewPipeline(cfg)

	items, err := p.Collect(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if !items[0].Priority {
		t.Error("Expected user URL items to be priority")
	}
}

func TestRender_WritesFile(t *testing.T) {
	cfg := testConfig("")
	cfg.Output.Format = "markdown"
	p := newTestPipeline(cfg, &stubProvider{})

	n := &model.Newsletter{
		Title:   "Test Brief",
		Tagline: "Testing signals",
		Date:    time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC),
		Sections: []model.NewsletterSection{
			{Key: "deals", Title: "Deals & Moves", Icon: "🤝"},
		},
	}

	path := filepath.Join(t.TempDir(), "brief.md")
	if err := p.Render(n, path); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected output file, got %v", err)
	}
	if !strings.Contains(string(data), "# Test Brief") {
		t.Errorf("Unexpected rendered output: %q", data)
	}
}

func TestGenerate_NoProviderConfigured(t *testing.T) {
	cfg := testConfig("")
	cfg.LLM.Provider = ""
	p := NewPipeline(cfg)

	if _, err := p.Generate(context.Background()); err == nil {
		t.Error("Expected error without a configured provider")
	}
}
