package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cognicore/wordstat/internal/logger"
	"github.com/cognicore/wordstat/pkg/wordstat/internalerr"
)

// Item is one document line of a JSONL corpus.
type Item struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Body  string `json:"text"`
}

// JSONL is a corpus file holding one JSON document per line.
// Malformed lines are skipped with a warning.
type JSONL struct {
	Path string
	// IncludeTitle prepends each item's title to its body.
	IncludeTitle bool
}

// Load returns the text of every valid item.
func (j JSONL) Load(ctx context.Context) ([]string, error) {
	items, err := LoadItems(j.Path)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(items))
	for _, item := range items {
		if j.IncludeTitle && item.Title != "" {
			texts = append(texts, item.Title)
		}
		texts = append(texts, item.Body)
	}
	return texts, nil
}

// LoadItems parses a JSONL corpus.
func LoadItems(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, unavailable(path, err)
	}

	log := logger.WithComponent("source")
	var items []Item
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var item Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			log.Warn("skipping malformed JSON line", "path", path, "line", i+1, "error", err)
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no valid items found in %s: %w", path, internalerr.ErrSourceUnavailable)
	}

	return items, nil
}
