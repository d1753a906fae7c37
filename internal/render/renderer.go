// Package render turns a composed newsletter into an HTML or Markdown
// document.
package render

import (
	"fmt"
	htmltemplate "html/template"
	"os"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/ppiankov/pressbrief/internal/model"
)

const dateLayout = "02 January 2006"

var templateFuncs = map[string]any{
	"date":  func(t time.Time) string { return t.Format(dateLayout) },
	"lower": strings.ToLower,
}

// Renderer renders newsletters. HTML output goes through html/template so
// story text is escaped; Markdown goes through text/template.
type Renderer struct {
	html *htmltemplate.Template
	md   *texttemplate.Template
}

// NewRenderer creates a Renderer with the built-in templates.
func NewRenderer() *Renderer {
	return &Renderer{
		html: htmltemplate.Must(htmltemplate.New("newsletter").Funcs(templateFuncs).Parse(htmlTemplate)),
		md:   texttemplate.Must(texttemplate.New("newsletter").Funcs(templateFuncs).Parse(markdownTemplate)),
	}
}

// Render produces the document in the given format ("html", "markdown" or
// "md").
func (r *Renderer) Render(n *model.Newsletter, format string) (string, error) {
	var sb strings.Builder
	switch strings.ToLower(format) {
	case "html":
		if err := r.html.Execute(&sb, n); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	case "markdown", "md":
		if err := r.md.Execute(&sb, n); err != nil {
			return "", fmt.Errorf("render markdown: %w", err)
		}
	default:
		return "", fmt.Errorf("unknown output format: %s (supported: html, markdown)", format)
	}
	return sb.String(), nil
}

// WriteFile persists a rendered document.
func (r *Renderer) WriteFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
