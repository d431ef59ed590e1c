package stats

import (
	"fmt"

	"github.com/cognicore/wordstat/pkg/wordstat/hashtable"
	"github.com/cognicore/wordstat/pkg/wordstat/internalerr"
)

// MostCommonCollocations returns up to k distinct words seen before
// (precede) or after the first occurrence of baseWord, ordered by their
// frequency in the whole text, most frequent first.
//
// With precede the scan stops at the first baseWord. Otherwise everything
// up to and including it is skipped, and later occurrences of baseWord
// are never collected.
func (s *Stat) MostCommonCollocations(k int, baseWord string, precede bool) ([]string, error) {
	if k < 0 {
		return nil, fmt.Errorf("collocations: k=%d is negative: %w", k, internalerr.ErrInvalidInput)
	}
	if len(s.order) == 0 {
		return nil, fmt.Errorf("collocations: no words: %w", internalerr.ErrInvalidInput)
	}

	neighbors, found, err := s.scanNeighbors(baseWord, precede)
	if err != nil {
		return nil, fmt.Errorf("collocations: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("collocations: base word %q not in text: %w", baseWord, internalerr.ErrInvalidInput)
	}

	return topK(hashtable.Ranked(neighbors), k), nil
}

// scanNeighbors collects each eligible word once with its global count.
func (s *Stat) scanNeighbors(baseWord string, precede bool) (*hashtable.Table[int], bool, error) {
	neighbors := hashtable.NewDefault(hashtable.WithGrowth[int](s.opts.growth))
	found := false
	for _, word := range s.order {
		if word == baseWord {
			if precede {
				return neighbors, true, nil
			}
			found = true
			continue
		}
		if !precede && !found {
			continue
		}
		if neighbors.Contains(word) {
			continue
		}
		n, err := s.freq.Get(word)
		if err != nil {
			return nil, false, err
		}
		neighbors.Put(word, n)
	}
	return neighbors, found, nil
}
