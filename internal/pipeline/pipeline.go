// Package pipeline orchestrates the complete newsletter run: read sources,
// aggregate, shortlist, compose, render.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ppiankov/pressbrief/internal/aggregate"
	"github.com/ppiankov/pressbrief/internal/cache"
	"github.com/ppiankov/pressbrief/internal/fetch"
	"github.com/ppiankov/pressbrief/internal/llm"
	"github.com/ppiankov/pressbrief/internal/model"
	"github.com/ppiankov/pressbrief/internal/render"
	"github.com/ppiankov/pressbrief/internal/source"
)

// Pipeline wires the stages together from a single Config.
type Pipeline struct {
	fetcher  *fetch.Fetcher
	editor   *llm.Editor
	renderer *render.Renderer
	config   *model.Config

	// Now is the clock used for the recency window and the issue date.
	// Overridable in tests.
	Now func() time.Time
}

// NewPipeline creates a pipeline with the given configuration. The LLM
// provider is constructed lazily on Generate, so dry-run collection works
// without credentials.
func NewPipeline(cfg *model.Config) *Pipeline {
	fetcher := fetch.NewFetcher(cfg.HTTP.Timeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes)
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if dir == "" {
			dir = filepath.Join(os.TempDir(), "pressbrief-cache")
		}
		fetcher = fetcher.WithCache(cache.NewLayeredCache(cfg.Cache.TTL, dir, cfg.Cache.TTL), cfg.Cache.TTL)
	}

	return &Pipeline{
		fetcher:  fetcher,
		renderer: render.NewRenderer(),
		config:   cfg,
		Now:      time.Now,
	}
}

// NewPipelineWithEditor wires an explicit editor; used by tests.
func NewPipelineWithEditor(cfg *model.Config, editor *llm.Editor) *Pipeline {
	p := NewPipeline(cfg)
	p.editor = editor
	return p
}

// readers builds the source readers in their fixed order: user files first,
// sorted by filename, then the feed reader.
func (p *Pipeline) readers() ([]source.Reader, error) {
	var readers []source.Reader

	if p.config.SourcesDir != "" {
		fileReaders, err := source.FromDir(p.config.SourcesDir)
		if err != nil {
			return nil, fmt.Errorf("read sources dir: %w", err)
		}
		readers = append(readers, fileReaders...)
	}

	if len(p.config.Feeds) > 0 {
		readers = append(readers, source.NewRSSReader(p.config.Feeds, p.fetcher, p.config.Output.Verbose))
	}

	return readers, nil
}

// Collect runs the read and aggregate stages only. Used by Generate and by
// the dry-run command.
func (p *Pipeline) Collect(ctx context.Context) ([]model.Item, error) {
	readers, err := p.readers()
	if err != nil {
		return nil, err
	}

	agg := aggregate.New(readers, p.config.DaysBack, p.config.RequireSources, p.config.Output.Verbose)
	agg.Now = p.Now
	return agg.Collect(ctx)
}

// Result carries the composed newsletter plus run counters.
type Result struct {
	Newsletter *model.Newsletter
	Collected  int
	Shortlist  int
}

// Generate runs the full pipeline and returns the composed newsletter.
func (p *Pipeline) Generate(ctx context.Context) (*Result, error) {
	if p.editor == nil {
		editor, err := llm.NewEditor(llm.ConfigFromModel(p.config.LLM))
		if err != nil {
			return nil, err
		}
		p.editor = editor
	}

	verbose := p.config.Output.Verbose

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Collecting sources...\n")
	}
	items, err := p.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Collected %d items\n", len(items))
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Shortlisting with %s...\n", p.editor.ProviderName())
	}
	shortlist, err := p.editor.Shortlist(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("shortlist: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Shortlisted %d items\n", len(shortlist))
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Writing sections...\n")
	}
	newsletter, err := p.editor.Compose(ctx, shortlist, p.config.StoriesPerSection)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}

	newsletter.Title = p.config.Newsletter.Title
	newsletter.Tagline = p.config.Newsletter.Tagline
	newsletter.Footer = p.config.Newsletter.Footer
	newsletter.Date = p.Now().UTC()

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Composed %d stories\n", newsletter.StoryCount())
	}

	return &Result{
		Newsletter: newsletter,
		Collected:  len(items),
		Shortlist:  len(shortlist),
	}, nil
}

// Render renders the newsletter in the configured format and writes it to
// path, or to stdout when path is empty.
func (p *Pipeline) Render(n *model.Newsletter, path string) error {
	doc, err := p.renderer.Render(n, p.config.Output.Format)
	if err != nil {
		return err
	}

	if path == "" {
		fmt.Println(doc)
		return nil
	}

	if err := p.renderer.WriteFile(path, doc); err != nil {
		return err
	}
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", path)
	}
	return nil
}
