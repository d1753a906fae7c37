package source

import (
	"path/filepath"
	"strings"
)

// Format classifies a sources-directory file. Detection is deterministic and
// needs no filesystem access: callers pass the file name and its bytes.
type Format int

const (
	FormatUnknown Format = iota
	FormatURLList
	FormatText
	FormatJSON
	FormatMarkdown
)

func (f Format) String() string {
	switch f {
	case FormatURLList:
		return "urls"
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// DetectFormat classifies a file by extension, with content sniffing to
// separate URL lists from free text: a .txt file whose non-blank,
// non-comment lines all start with http(s):// is a URL list.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".md", ".markdown":
		return FormatMarkdown
	case ".txt":
		if isURLList(string(data)) {
			return FormatURLList
		}
		return FormatText
	default:
		return FormatUnknown
	}
}

func isURLList(content string) bool {
	seen := false
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, "http://") && !strings.HasPrefix(line, "https://") {
			return false
		}
		seen = true
	}
	return seen
}
