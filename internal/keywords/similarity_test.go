package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		k1   string
		k2   string
		want float64
	}{
		{name: "exact", k1: "python", k2: "python", want: 1},
		{name: "exact ignores case", k1: "Python", k2: "python ", want: 1},
		{name: "same stem", k1: "developer", k2: "development", want: 0.9},
		{name: "sequence ratio", k1: "javascript", k2: "javascrpt", want: 2.0 * 9 / 19 * 0.8},
		{name: "sub-word overlap", k1: "machine learning", k2: "deep learning", want: 0.35},
		{name: "abbreviation", k1: "js", k2: "json", want: 0.6},
		{name: "substring", k1: "script", k2: "javascript", want: 0.5},
		{name: "unrelated", k1: "python", k2: "excel", want: 0},
		{name: "empty", k1: "", k2: "python", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.k1, tt.k2), 0.001)
		})
	}
}

func TestSimilarityReflexive(t *testing.T) {
	for _, k := range []string{"a", "go", "kubernetes", "project management", "c"} {
		assert.Equal(t, 1.0, Similarity(k, k), k)
	}
}

func TestSimilarityAbbreviationIsAsymmetric(t *testing.T) {
	assert.Equal(t, 0.6, Similarity("js", "json"))
	assert.Equal(t, 0.5, Similarity("json", "js"))
}

func TestFindSimilar(t *testing.T) {
	got := FindSimilar([]string{"javascript", "cobol"}, []string{"javascrpt", "java", "javascripts"}, DefaultSimilarityThreshold)

	require.Len(t, got, 1)
	matches := got["javascript"]
	require.Len(t, matches, 2)
	assert.Equal(t, "javascripts", matches[0].Keyword)
	assert.Equal(t, "javascrpt", matches[1].Keyword)
	assert.NotContains(t, got, "cobol")
}

func TestFindSimilarKeepsResumeOrderOnTies(t *testing.T) {
	got := FindSimilar([]string{"develop"}, []string{"developer", "developing", "developed", "development"}, 0.7)

	require.Len(t, got["develop"], MaxSimilarPerKeyword)
	assert.Equal(t, "developer", got["develop"][0].Keyword)
	assert.Equal(t, "developing", got["develop"][1].Keyword)
	assert.Equal(t, "developed", got["develop"][2].Keyword)
}
