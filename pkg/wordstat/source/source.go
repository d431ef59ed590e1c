// Package source reads raw text for the tokenizer from files, JSONL
// corpora, HTML pages and SQLite databases.
package source

import (
	"context"
	"fmt"
	"os"

	"github.com/cognicore/wordstat/pkg/wordstat/internalerr"
)

// Loader yields the raw texts of one input. Each text is tokenized on its
// own, so a word never spans two texts.
type Loader interface {
	Load(ctx context.Context) ([]string, error)
}

// Strings is an in-memory list of texts.
type Strings []string

// Load returns a copy of the list.
func (s Strings) Load(ctx context.Context) ([]string, error) {
	return append([]string(nil), s...), nil
}

// File is a plain UTF-8 text file.
type File struct {
	Path string
}

// Load reads the whole file.
func (f File) Load(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, unavailable(f.Path, err)
	}
	return []string{string(data)}, nil
}

func unavailable(path string, err error) error {
	return fmt.Errorf("read %s: %w: %w", path, internalerr.ErrSourceUnavailable, err)
}
