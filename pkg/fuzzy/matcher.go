// Package fuzzy ranks candidate strings against a typed pattern.
//
// Matching is tiered. A numeric pattern found in the text beats an exact
// substring, which beats a prefix, which beats an approximate subsequence
// match. Scores are only comparable within one pattern.
package fuzzy

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

const (
	// NumericScore is awarded when an all-digit pattern occurs in the text.
	NumericScore = 1200

	exactBase     = 1000
	exactPerChar  = 10
	prefixBase    = 800
	prefixPerChar = 8

	// maxApproxScore keeps approximate matches below every prefix match.
	maxApproxScore = prefixBase - 1
)

// Match is a successful match of one pattern against one text.
type Match struct {
	Score int
	// Indexes are the byte offsets of matched characters in the text.
	Indexes []int
}

// Score matches pattern against text. An empty pattern matches everything
// with a score of zero.
func Score(pattern, text string) (Match, bool) {
	if pattern == "" {
		return Match{}, true
	}

	// A numeric pattern missing from the text tries the remaining tiers.
	if isDigits(pattern) {
		if pos := strings.Index(text, pattern); pos >= 0 {
			return Match{Score: NumericScore, Indexes: span(pos, len(pattern))}, true
		}
	}

	if pos := strings.Index(text, pattern); pos >= 0 {
		return Match{Score: exactBase + exactPerChar*len(pattern), Indexes: span(pos, len(pattern))}, true
	}

	if strings.HasPrefix(text, pattern) {
		return Match{Score: prefixBase + prefixPerChar*len(pattern), Indexes: span(0, len(pattern))}, true
	}

	matches := fuzzy.Find(pattern, []string{text})
	if len(matches) == 0 {
		return Match{}, false
	}
	score := matches[0].Score
	if score > maxApproxScore {
		score = maxApproxScore
	}
	return Match{Score: score, Indexes: matches[0].MatchedIndexes}, true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func span(start, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = start + i
	}
	return out
}

// Candidate pairs an item with the text it is searched by.
type Candidate[T any] struct {
	Item T
	Text string
}

// Result is a matched candidate.
type Result[T any] struct {
	Item T
	Text string
	Match
}

// MatchAndSort keeps the candidates matching pattern, best score first and
// shorter text first among equal scores. Equal candidates keep their order.
func MatchAndSort[T any](pattern string, candidates []Candidate[T]) []Result[T] {
	results := make([]Result[T], 0, len(candidates))
	for _, c := range candidates {
		if m, ok := Score(pattern, c.Text); ok {
			results = append(results, Result[T]{Item: c.Item, Text: c.Text, Match: m})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return len(results[i].Text) < len(results[j].Text)
	})
	return results
}
