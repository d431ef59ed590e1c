package report

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/wordstat/pkg/wordstat/internalerr"
	"github.com/cognicore/wordstat/pkg/wordstat/stats"
)

// Builder assembles reports with monotonic ULID identifiers.
type Builder struct {
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New creates a new report builder
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Request selects what goes into a report.
type Request struct {
	Source       string
	TopK         int
	BottomK      int
	Words        []string
	BaseWord     string
	CollocationK int
}

// Report is a JSON-ready summary of one text.
type Report struct {
	ID            string                `json:"id"`
	Source        string                `json:"source,omitempty"`
	GeneratedAt   time.Time             `json:"generated_at"`
	TotalWords    int                   `json:"total_words"`
	DistinctWords int                   `json:"distinct_words"`
	MostCommon    []stats.WordFrequency `json:"most_common"`
	LeastCommon   []stats.WordFrequency `json:"least_common"`
	Words         []WordDetail          `json:"words,omitempty"`
	Collocations  *Collocations         `json:"collocations,omitempty"`
}

// WordDetail reports one requested word. Absent words have Found=false,
// Count 0 and Rank 0.
type WordDetail struct {
	Word  string `json:"word"`
	Found bool   `json:"found"`
	Count int    `json:"count"`
	Rank  int    `json:"rank"`
}

// Collocations lists neighbours on both sides of a base word.
type Collocations struct {
	BaseWord  string   `json:"base_word"`
	Preceding []string `json:"preceding"`
	Following []string `json:"following"`
}

// Build creates a report. TopK and BottomK are clamped to the number of
// distinct words.
func (b *Builder) Build(s *stats.Stat, req Request) (Report, error) {
	if req.TopK < 0 || req.BottomK < 0 || req.CollocationK < 0 {
		return Report{}, fmt.Errorf("report: negative k: %w", internalerr.ErrInvalidInput)
	}

	now := b.now().UTC()
	rep := Report{
		ID:            ulid.MustNew(ulid.Timestamp(now), b.entropy).String(),
		Source:        req.Source,
		GeneratedAt:   now,
		TotalWords:    s.TotalWords(),
		DistinctWords: s.DistinctWords(),
	}

	freqs := s.Frequencies()
	top := min(req.TopK, len(freqs))
	rep.MostCommon = freqs[:top]
	bottom := min(req.BottomK, len(freqs))
	rep.LeastCommon = make([]stats.WordFrequency, 0, bottom)
	for i := len(freqs) - 1; len(rep.LeastCommon) < bottom; i-- {
		rep.LeastCommon = append(rep.LeastCommon, freqs[i])
	}

	for _, w := range req.Words {
		detail := WordDetail{Word: w, Rank: s.WordRank(w)}
		count, err := s.WordCount(w)
		switch {
		case err == nil:
			detail.Found = true
			detail.Count = count
		case !errors.Is(err, internalerr.ErrNotFound):
			return Report{}, err
		}
		rep.Words = append(rep.Words, detail)
	}

	if req.BaseWord != "" {
		pre, err := s.MostCommonCollocations(req.CollocationK, req.BaseWord, true)
		if err != nil {
			return Report{}, fmt.Errorf("report: %w", err)
		}
		post, err := s.MostCommonCollocations(req.CollocationK, req.BaseWord, false)
		if err != nil {
			return Report{}, fmt.Errorf("report: %w", err)
		}
		rep.Collocations = &Collocations{BaseWord: req.BaseWord, Preceding: pre, Following: post}
	}

	return rep, nil
}
