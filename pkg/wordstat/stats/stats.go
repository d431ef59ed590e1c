package stats

import (
	"fmt"
	"io"
	"os"

	"github.com/cognicore/wordstat/internal/logger"
	"github.com/cognicore/wordstat/pkg/wordstat/hashtable"
	"github.com/cognicore/wordstat/pkg/wordstat/ingest"
	"github.com/cognicore/wordstat/pkg/wordstat/internalerr"
)

// Table sizes used when no option overrides them.
const (
	DefaultFrequencyCapacity = 100
	DefaultRankCapacity      = hashtable.DefaultCapacity
)

type options struct {
	frequencyCapacity int
	rankCapacity      int
	growth            hashtable.Growth
}

// Option configures the tables backing a Stat.
type Option func(*options)

// WithFrequencyCapacity sets the bucket count of the frequency table.
func WithFrequencyCapacity(n int) Option {
	return func(o *options) { o.frequencyCapacity = n }
}

// WithRankCapacity sets the bucket count of the rank table.
func WithRankCapacity(n int) Option {
	return func(o *options) { o.rankCapacity = n }
}

// WithGrowth sets the growth policy of every table the engine builds.
func WithGrowth(g hashtable.Growth) Option {
	return func(o *options) { o.growth = g }
}

// Stat holds word frequencies and competition ranks for one token sequence.
// Everything is computed in New and never mutated afterwards.
type Stat struct {
	order  []string
	freq   *hashtable.Table[int]
	ranks  *hashtable.Table[int]
	sorted []hashtable.Entry[int] // ascending by count
	opts   options
}

// New builds frequency and rank tables from normalized tokens.
// A nil or empty sequence yields an engine with no data.
func New(tokens []string, opts ...Option) (*Stat, error) {
	o := options{
		frequencyCapacity: DefaultFrequencyCapacity,
		rankCapacity:      DefaultRankCapacity,
		growth:            hashtable.GrowAppend,
	}
	for _, opt := range opts {
		opt(&o)
	}

	freq, err := hashtable.NewCounter(o.frequencyCapacity, hashtable.WithGrowth[int](o.growth))
	if err != nil {
		return nil, fmt.Errorf("frequency table: %w", err)
	}
	ranks, err := hashtable.New(o.rankCapacity, hashtable.WithGrowth[int](o.growth))
	if err != nil {
		return nil, fmt.Errorf("rank table: %w", err)
	}

	s := &Stat{
		order: append([]string(nil), tokens...),
		freq:  freq,
		ranks: ranks,
		opts:  o,
	}
	for _, tok := range s.order {
		s.freq.Put(tok, 1)
	}
	s.sorted = hashtable.Ranked(s.freq)
	s.assignRanks()

	logger.WithComponent("stats").Debug("built word statistics",
		"tokens", len(s.order),
		"distinct", s.freq.Len(),
		"buckets", s.freq.BucketCount(),
		"growth", o.growth.String())
	return s, nil
}

// assignRanks walks from the most frequent entry down. Ties share the
// position of the first entry with that count: [5 5 3 3 3 1] -> [1 1 3 3 3 6].
func (s *Stat) assignRanks() {
	rank, rankN, prevFreq := 0, 0, -1
	for i := len(s.sorted) - 1; i >= 0; i-- {
		e := s.sorted[i]
		rank++
		if e.Value != prevFreq {
			rankN = rank
		}
		s.ranks.Put(e.Key, rankN)
		prevFreq = e.Value
	}
}

// FromStrings tokenizes each string and builds a Stat.
func FromStrings(texts []string, opts ...Option) (*Stat, error) {
	return New(ingest.NewTokenizer().TokenizeAll(texts), opts...)
}

// FromReader tokenizes everything readable from r. On a read failure the
// returned Stat is empty but usable.
func FromReader(r io.Reader, opts ...Option) (*Stat, error) {
	tokens, readErr := ingest.NewTokenizer().TokenizeReader(r)
	if readErr != nil {
		return emptyOnFailure(fmt.Errorf("%w: %w", internalerr.ErrSourceUnavailable, readErr), opts)
	}
	return New(tokens, opts...)
}

// FromFile tokenizes a text file. An unreadable file is reported as an
// error alongside an empty, usable Stat.
func FromFile(path string, opts ...Option) (*Stat, error) {
	f, err := os.Open(path)
	if err != nil {
		return emptyOnFailure(fmt.Errorf("open %s: %w: %w", path, internalerr.ErrSourceUnavailable, err), opts)
	}
	defer f.Close()

	s, err := FromReader(f, opts...)
	if err != nil {
		return s, fmt.Errorf("read %s: %w", path, err)
	}
	return s, nil
}

func emptyOnFailure(cause error, opts []Option) (*Stat, error) {
	s, err := New(nil, opts...)
	if err != nil {
		return nil, err
	}
	return s, cause
}

// WordCount returns how often word occurred.
func (s *Stat) WordCount(word string) (int, error) {
	n, err := s.freq.Get(word)
	if err != nil {
		return 0, fmt.Errorf("word count: %w", err)
	}
	return n, nil
}

// WordRank returns the competition rank of word, 1 being most frequent.
// Words that never occurred rank 0.
func (s *Stat) WordRank(word string) int {
	r, err := s.ranks.Get(word)
	if err != nil {
		return 0
	}
	return r
}

// MostCommonWords returns the k most frequent words, most frequent first.
func (s *Stat) MostCommonWords(k int) ([]string, error) {
	if err := s.checkK(k); err != nil {
		return nil, fmt.Errorf("most common words: %w", err)
	}
	return topK(s.sorted, k), nil
}

// LeastCommonWords returns the k least frequent words, least frequent first.
func (s *Stat) LeastCommonWords(k int) ([]string, error) {
	if err := s.checkK(k); err != nil {
		return nil, fmt.Errorf("least common words: %w", err)
	}
	return hashtable.Keys(s.sorted[:k]), nil
}

func (s *Stat) checkK(k int) error {
	if k < 0 {
		return fmt.Errorf("k=%d is negative: %w", k, internalerr.ErrInvalidInput)
	}
	if k > len(s.sorted) {
		return fmt.Errorf("k=%d exceeds %d distinct words: %w", k, len(s.sorted), internalerr.ErrInvalidInput)
	}
	return nil
}

// topK reads entries from the tail of an ascending list.
func topK(sorted []hashtable.Entry[int], k int) []string {
	k = min(k, len(sorted))
	out := make([]string, 0, k)
	for i := len(sorted) - 1; len(out) < k; i-- {
		out = append(out, sorted[i].Key)
	}
	return out
}

// Tokens returns a copy of the normalized token sequence.
func (s *Stat) Tokens() []string {
	return append([]string(nil), s.order...)
}

// TotalWords returns the number of tokens.
func (s *Stat) TotalWords() int {
	return len(s.order)
}

// DistinctWords returns the number of different words.
func (s *Stat) DistinctWords() int {
	return s.freq.Len()
}

// WordFrequency is one row of the frequency table.
type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
	Rank  int    `json:"rank"`
}

// Frequencies returns every word with its count and rank, most frequent first.
func (s *Stat) Frequencies() []WordFrequency {
	out := make([]WordFrequency, 0, len(s.sorted))
	for i := len(s.sorted) - 1; i >= 0; i-- {
		e := s.sorted[i]
		out = append(out, WordFrequency{Word: e.Key, Count: e.Value, Rank: s.WordRank(e.Key)})
	}
	return out
}
