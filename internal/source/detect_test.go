package source

import "testing"

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Format
	}{
		{"items.json", `[{"title":"x"}]`, FormatJSON},
		{"notes.md", "# Heading\nbody", FormatMarkdown},
		{"notes.markdown", "body", FormatMarkdown},
		{"story.txt", "A plain paragraph of text.", FormatText},
		{"urls.txt", "https://example.com/a\nhttp://example.com/b\n", FormatURLList},
		{"urls.txt", "# comment\n\nhttps://example.com/a\n", FormatURLList},
		{"mixed.txt", "https://example.com/a\nnot a url\n", FormatText},
		{"empty.txt", "", FormatText},
		{"blanks.txt", "\n# only comments\n\n", FormatText},
		{"image.png", "\x89PNG", FormatUnknown},
		{"noext", "whatever", FormatUnknown},
	}

	for _, tt := range tests {
		if got := DetectFormat(tt.name, []byte(tt.data)); got != tt.want {
			t.Errorf("DetectFormat(%q, %q) = %v, want %v", tt.name, tt.data, got, tt.want)
		}
	}
}

func TestFormatString(t *testing.T) {
	if FormatURLList.String() != "urls" {
		t.Errorf("Expected 'urls', got %q", FormatURLList.String())
	}
	if FormatUnknown.String() != "unknown" {
		t.Errorf("Expected 'unknown', got %q", FormatUnknown.String())
	}
}
