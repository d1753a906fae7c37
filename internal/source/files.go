package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/pressbrief/internal/model"
)

const maxFileContentRunes = 3000

// FromDir scans the sources directory and returns one reader per usable file,
// in sorted filename order so aggregation is deterministic. A missing
// directory yields no readers and no error; any other directory failure is an
// environment error and propagates.
func FromDir(dir string) ([]Reader, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sources dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var readers []Reader
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ⚠️  Skipping unreadable file %s: %v\n", path, err)
			continue
		}

		switch DetectFormat(name, data) {
		case FormatURLList:
			readers = append(readers, &URLListReader{Path: path})
		case FormatText:
			readers = append(readers, &TextReader{Path: path})
		case FormatJSON:
			readers = append(readers, &JSONReader{Path: path})
		case FormatMarkdown:
			readers = append(readers, &MarkdownReader{Path: path})
		}
	}

	return readers, nil
}

// URLListReader emits one placeholder item per URL line. Content stays empty:
// resolving the article body is the ranking stage's concern.
type URLListReader struct {
	Path string
}

func (r *URLListReader) Name() string {
	return "urls(" + filepath.Base(r.Path) + ")"
}

func (r *URLListReader) Read(ctx context.Context) ([]model.Item, error) {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.Path, err)
	}

	var items []model.Item
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parsed, err := url.Parse(line)
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			fmt.Fprintf(os.Stderr, "  ⚠️  Skipping non-URL line in %s: %q\n", r.Path, line)
			continue
		}

		item, err := model.NewItem("Source: "+truncateRunes(line, 80), "", model.OriginUserURL)
		if err != nil {
			continue
		}
		item.Link = line
		items = append(items, item)
	}

	return items, nil
}

// TextReader emits one item per plain-text file: title from the filename,
// body as content.
type TextReader struct {
	Path string
}

func (r *TextReader) Name() string {
	return "text(" + filepath.Base(r.Path) + ")"
}

func (r *TextReader) Read(ctx context.Context) ([]model.Item, error) {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.Path, err)
	}

	item, err := model.NewItem(titleFromFilename(filepath.Base(r.Path)), "", model.OriginUserText)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Path, err)
	}
	item.Content = truncateRunes(strings.TrimSpace(string(data)), maxFileContentRunes)

	return []model.Item{item}, nil
}

// jsonRecord is the accepted shape of one source record. Only title is
// required; unknown extra keys are ignored. url and summary/text are accepted
// as aliases the way user exports commonly name them.
type jsonRecord struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	Content string `json:"content"`
	Summary string `json:"summary"`
	Text    string `json:"text"`
	Link    string `json:"link"`
	URL     string `json:"url"`
}

// JSONReader parses an array of records (or a single record) and emits one
// item per record that carries a title. Records without a title are skipped
// with a warning.
type JSONReader struct {
	Path string
}

func (r *JSONReader) Name() string {
	return "json(" + filepath.Base(r.Path) + ")"
}

func (r *JSONReader) Read(ctx context.Context) ([]model.Item, error) {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.Path, err)
	}

	var records []jsonRecord
	if err := json.Unmarshal(data, &records); err != nil {
		var single jsonRecord
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("parse %s: %w", r.Path, err)
		}
		records = []jsonRecord{single}
	}

	var items []model.Item
	for i, rec := range records {
		item, err := model.NewItem(rec.Title, rec.Source, model.OriginUserJSON)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  ⚠️  Skipping record %d in %s: %v\n", i, r.Path, err)
			continue
		}

		item.Link = rec.Link
		if item.Link == "" {
			item.Link = rec.URL
		}

		content := rec.Content
		if content == "" {
			content = rec.Summary
		}
		if content == "" {
			content = rec.Text
		}
		item.Content = truncateRunes(content, maxFileContentRunes)

		items = append(items, item)
	}

	return items, nil
}

// MarkdownReader emits one item per markdown file: title from the first
// level-1 heading when present, else the filename; content is the remaining
// body.
type MarkdownReader struct {
	Path string
}

func (r *MarkdownReader) Name() string {
	return "markdown(" + filepath.Base(r.Path) + ")"
}

func (r *MarkdownReader) Read(ctx context.Context) ([]model.Item, error) {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.Path, err)
	}

	title := ""
	var body []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if title == "" && strings.HasPrefix(trimmed, "# ") {
			title = strings.TrimSpace(strings.TrimPrefix(trimmed, "# "))
			continue
		}
		body = append(body, line)
	}
	if title == "" {
		title = titleFromFilename(filepath.Base(r.Path))
	}

	item, err := model.NewItem(title, "", model.OriginUserMD)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Path, err)
	}
	item.Content = truncateRunes(strings.TrimSpace(strings.Join(body, "\n")), maxFileContentRunes)

	return []model.Item{item}, nil
}
