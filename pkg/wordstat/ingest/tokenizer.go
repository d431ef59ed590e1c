package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Tokenizer turns raw text into normalized words: lowercase letters and
// digits only. Space, tab, newline and carriage return separate words;
// every other character is dropped without splitting the word around it,
// so "don't" becomes "dont".
type Tokenizer struct{}

// NewTokenizer creates a new tokenizer
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize splits a single text into normalized tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	var s scanState
	for _, r := range text {
		s.feed(r)
	}
	s.flush()
	return s.tokens
}

// TokenizeAll normalizes each string independently and concatenates the
// results. A word never spans two input strings.
func (t *Tokenizer) TokenizeAll(texts []string) []string {
	var tokens []string
	for _, text := range texts {
		tokens = append(tokens, t.Tokenize(text)...)
	}
	return tokens
}

// TokenizeReader streams runes from r. Tokens read before a failure are
// returned alongside the error.
func (t *Tokenizer) TokenizeReader(r io.Reader) ([]string, error) {
	var s scanState
	br := bufio.NewReader(r)
	for {
		c, _, err := br.ReadRune()
		if err != nil {
			s.flush()
			if errors.Is(err, io.EOF) {
				return s.tokens, nil
			}
			return s.tokens, fmt.Errorf("read text: %w", err)
		}
		s.feed(c)
	}
}

type scanState struct {
	current strings.Builder
	tokens  []string
}

func (s *scanState) feed(r rune) {
	switch {
	case unicode.IsLetter(r) || unicode.IsDigit(r):
		s.current.WriteRune(unicode.ToLower(r))
	case isSeparator(r):
		s.flush()
	}
}

func (s *scanState) flush() {
	if s.current.Len() > 0 {
		s.tokens = append(s.tokens, s.current.String())
		s.current.Reset()
	}
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}
