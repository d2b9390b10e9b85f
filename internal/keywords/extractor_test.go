package keywords

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/ats-scorer/internal/nlp"
	"github.com/spigell/ats-scorer/internal/nlp/nlptest"
)

func newTestAnalyzer() *nlptest.Analyzer {
	return &nlptest.Analyzer{
		Tags: map[string]nlp.POS{
			"managed": nlp.Verb,
			"made":    nlp.Verb,
		},
		Lemmas: map[string]string{
			"managed": "manage",
			"teams":   "team",
			"made":    "make",
		},
	}
}

func TestExtract(t *testing.T) {
	e := NewExtractor(newTestAnalyzer())

	got := e.Extract("Jane managed teams and was building APIs in 2020 with C++. Made everything q")
	assert.Equal(t, KeywordSet{"apis", "building", "jane", "manage", "team"}, got)
}

func TestExtractEmpty(t *testing.T) {
	analyzer := newTestAnalyzer()
	e := NewExtractor(analyzer)

	assert.Empty(t, e.Extract(""))
	assert.Empty(t, e.Extract("   \n\t"))
	assert.NotNil(t, e.Extract(""))
	assert.Zero(t, analyzer.Calls())
}

func TestExtractDropsStopwords(t *testing.T) {
	assert.True(t, IsStopword("the"))
	assert.False(t, IsStopword("kubernetes"))

	e := NewExtractor(&nlptest.Analyzer{Tags: map[string]nlp.POS{"through": nlp.Noun}})
	assert.Equal(t, KeywordSet{"kubernetes"}, e.Extract("through kubernetes"))
}

func TestExtractIdempotent(t *testing.T) {
	e := NewExtractor(newTestAnalyzer())

	first := e.Extract("Jane managed teams building APIs")
	second := e.Extract(first.Join())
	assert.Equal(t, first, second)
}

func TestExtractMinLength(t *testing.T) {
	e := NewExtractor(newTestAnalyzer(), WithMinLength(5))

	assert.Equal(t, KeywordSet{"building", "manage"}, e.Extract("Jane managed building"))
}

func TestExtractAnalyzerError(t *testing.T) {
	e := NewExtractor(&nlptest.Analyzer{Err: errors.New("model missing")})

	assert.Empty(t, e.Extract("Python developer"))
}

func TestKeywordSetContains(t *testing.T) {
	set := KeywordSet{"django", "python", "team"}

	require.True(t, set.Contains("python"))
	require.False(t, set.Contains("java"))
	require.False(t, KeywordSet{}.Contains("python"))
}
