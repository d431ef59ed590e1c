package ingest

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestTokenizerBasic(t *testing.T) {
	tokenizer := NewTokenizer()

	tokens := tokenizer.Tokenize("The Quick brown FOX")
	expected := []string{"the", "quick", "brown", "fox"}

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d: %v", len(expected), len(tokens), tokens)
	}
	for i, exp := range expected {
		if tokens[i] != exp {
			t.Errorf("Token %d: expected %q, got %q", i, exp, tokens[i])
		}
	}
}

func TestTokenizerDropsPunctuationWithoutSplitting(t *testing.T) {
	tokenizer := NewTokenizer()

	tokens := tokenizer.Tokenize("don't re-use e.g. C++, 4.5!")
	expected := []string{"dont", "reuse", "eg", "c", "45"}

	if len(tokens) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, tokens)
	}
	for i, exp := range expected {
		if tokens[i] != exp {
			t.Errorf("Token %d: expected %q, got %q", i, exp, tokens[i])
		}
	}
}

func TestTokenizerSeparators(t *testing.T) {
	tokenizer := NewTokenizer()

	tokens := tokenizer.Tokenize("  one\ttwo\r\nthree \n\n four  ")
	if strings.Join(tokens, ",") != "one,two,three,four" {
		t.Errorf("Unexpected tokens: %v", tokens)
	}
}

func TestTokenizerPunctuationOnlyWordsVanish(t *testing.T) {
	tokenizer := NewTokenizer()

	tokens := tokenizer.Tokenize("hello -- ... world ?!")
	if strings.Join(tokens, ",") != "hello,world" {
		t.Errorf("Expected [hello world], got %v", tokens)
	}
}

func TestTokenizerUnicodeLetters(t *testing.T) {
	tokenizer := NewTokenizer()

	tokens := tokenizer.Tokenize("Çağ Ünïcode ΣΟΦΙΑ")
	expected := []string{"çağ", "ünïcode", "σοφια"}
	if strings.Join(tokens, ",") != strings.Join(expected, ",") {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerEmpty(t *testing.T) {
	tokenizer := NewTokenizer()

	if tokens := tokenizer.Tokenize(""); len(tokens) != 0 {
		t.Errorf("Expected no tokens, got %v", tokens)
	}
	if tokens := tokenizer.TokenizeAll(nil); len(tokens) != 0 {
		t.Errorf("Expected no tokens for nil list, got %v", tokens)
	}
}

func TestTokenizeAllKeepsStringBoundaries(t *testing.T) {
	tokenizer := NewTokenizer()

	tokens := tokenizer.TokenizeAll([]string{"alpha", "beta gamma", "", "Delta"})
	if strings.Join(tokens, ",") != "alpha,beta,gamma,delta" {
		t.Errorf("Unexpected tokens: %v", tokens)
	}
}

func TestTokenizeReader(t *testing.T) {
	tokenizer := NewTokenizer()

	tokens, err := tokenizer.TokenizeReader(strings.NewReader("A a\nB, b b\tc"))
	if err != nil {
		t.Fatalf("TokenizeReader: %v", err)
	}
	if strings.Join(tokens, ",") != "a,a,b,b,b,c" {
		t.Errorf("Unexpected tokens: %v", tokens)
	}
}

func TestTokenizeReaderError(t *testing.T) {
	tokenizer := NewTokenizer()
	boom := errors.New("boom")

	_, err := tokenizer.TokenizeReader(iotest.ErrReader(boom))
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped read error, got %v", err)
	}
}
