// Package source converts external inputs (RSS feeds, files under the sources
// directory) into normalized model.Items. Every reader fails open: a malformed
// entry, file, or feed is logged and skipped, never fatal.
package source

import (
	"context"
	"strings"
	"unicode"

	"github.com/ppiankov/pressbrief/internal/model"
)

// Reader converts one input into zero or more Items.
type Reader interface {
	// Name identifies the reader for logging.
	Name() string

	// Read produces items. An error means the whole input was unusable;
	// partial failures inside the input are skipped, not returned.
	Read(ctx context.Context) ([]model.Item, error)
}

// titleFromFilename sanitizes a file name into a story title: extension
// stripped, separators replaced with spaces, words capitalized.
func titleFromFilename(name string) string {
	if idx := strings.LastIndexByte(name, '.'); idx > 0 {
		name = name[:idx]
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return capitalizeWords(name)
}

func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// truncateRunes caps s at n runes without splitting a rune.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
