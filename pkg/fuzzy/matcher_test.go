package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sfuzzy "github.com/sahilm/fuzzy"
)

func TestScore_Tiers(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		want    int
	}{
		{"empty pattern", "", "anything", 0},
		{"numeric", "123", "item 123: test", NumericScore},
		{"exact", "test", "this is a test string", 1000 + 4*10},
		{"exact at start", "this", "this is a test", 1000 + 4*10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := Score(tt.pattern, tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, m.Score)
		})
	}
}

func TestScore_NoMatch(t *testing.T) {
	_, ok := Score("xyz", "test string")
	assert.False(t, ok)

	_, ok = Score("42", "no digits here")
	assert.False(t, ok)
}

func TestScore_NumericFallsThrough(t *testing.T) {
	m, ok := Score("12", "1 x 2")
	require.True(t, ok, "a numeric pattern absent from the text still matches approximately")
	assert.Less(t, m.Score, prefixBase)
	assert.Equal(t, []int{0, 4}, m.Indexes)

	m, ok = Score("12", "run 12 again")
	require.True(t, ok)
	assert.Equal(t, NumericScore, m.Score)
}

func TestScore_Approximate(t *testing.T) {
	m, ok := Score("tst", "test")
	require.True(t, ok)
	assert.Less(t, m.Score, prefixBase)
	assert.Len(t, m.Indexes, 3)
}

func TestScore_NumericBeatsApproximate(t *testing.T) {
	numeric, ok := Score("12", "item 12: ok")
	require.True(t, ok)

	approx := fuzzyOnly(t, "12", "item 12: ok")
	assert.Greater(t, numeric.Score, approx)
	assert.Equal(t, NumericScore, numeric.Score)
	assert.Equal(t, []int{5, 6}, numeric.Indexes)
}

func TestScore_ApproximateIsCapped(t *testing.T) {
	pattern := "abcdefghijklmnopqrstuvwxyz"
	text := "a-b-c-d-e-f-g-h-i-j-k-l-m-n-o-p-q-r-s-t-u-v-w-x-y-z"
	for i := 0; i < 5; i++ {
		pattern += pattern
		text += "-" + text
	}
	m, ok := Score(pattern, text)
	require.True(t, ok)
	assert.LessOrEqual(t, m.Score, maxApproxScore)
}

func TestMatchAndSort(t *testing.T) {
	candidates := []Candidate[int]{
		{Item: 1, Text: "apple"},
		{Item: 2, Text: "application"},
		{Item: 3, Text: "banana"},
		{Item: 4, Text: "app"},
	}

	results := MatchAndSort("app", candidates)
	require.Len(t, results, 3)
	assert.Equal(t, 4, results[0].Item)
	assert.Equal(t, 1, results[1].Item)
	assert.Equal(t, 2, results[2].Item)
}

func TestMatchAndSort_ExactOutranksApproximate(t *testing.T) {
	candidates := []Candidate[string]{
		{Item: "fuzzy", Text: "g-i-t s-t-a-t-u-s"},
		{Item: "exact", Text: "run git status now"},
	}
	results := MatchAndSort("git", candidates)
	require.Len(t, results, 2)
	assert.Equal(t, "exact", results[0].Item)
}

func TestMatchAndSort_EmptyPatternKeepsOrderByLength(t *testing.T) {
	candidates := []Candidate[int]{
		{Item: 1, Text: "longer text"},
		{Item: 2, Text: "short"},
		{Item: 3, Text: "tiny"},
	}
	results := MatchAndSort("", candidates)
	require.Len(t, results, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{results[0].Item, results[1].Item, results[2].Item})
}

// fuzzyOnly returns the uncapped approximate score, or a very low value
// when the approximate matcher rejects the pair.
func fuzzyOnly(t *testing.T, pattern, text string) int {
	t.Helper()
	matches := sfuzzy.Find(pattern, []string{text})
	if len(matches) == 0 {
		return -1 << 31
	}
	return matches[0].Score
}
