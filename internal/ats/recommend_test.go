package ats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allScores(v float64) map[Component]float64 {
	scores := make(map[Component]float64, len(Components))
	for _, c := range Components {
		scores[c] = v
	}
	return scores
}

func TestRecommendWorstCase(t *testing.T) {
	recs := Recommend(allScores(0), 0, "", []string{"python", "go"})

	require.Len(t, recs, MaxRecommendations)
	assert.Equal(t, []Priority{Critical, Critical, OverallCritical, High, High, Medium, Medium}, priorities(recs))
	assert.Equal(t, "CRITICAL: Add complete contact information (name, email, phone) at the top of your resume", recs[0].String())
	assert.Equal(t, "Incorporate these key skills naturally: python, go", recs[1].Text)
	assert.Equal(t, "OVERALL", recs[2].Priority.Marker())
	assert.Equal(t, "Add these missing keywords: python, go", recs[3].Text)
}

func TestRecommendMissingKeywordWindows(t *testing.T) {
	kws := []string{"a1", "b2", "c3", "d4", "e5", "f6", "g7", "h8", "i9"}
	scores := allScores(100)
	scores[KeywordMatch] = 10

	recs := Recommend(scores, 80, "c3 is here", kws)

	assert.Equal(t, "Incorporate these key skills naturally: a1, b2, d4, e5", recs[0].Text)
	assert.Equal(t, "Add these missing keywords: a1, b2, d4", recs[1].Text)
}

func TestRecommendCriticalKeywordsOnlyFromTopEight(t *testing.T) {
	kws := []string{"a1", "b2", "c3", "d4", "e5", "f6", "g7", "h8", "i9"}
	scores := allScores(100)
	scores[KeywordMatch] = 10

	recs := Recommend(scores, 80, "a1 b2 c3 d4 e5 f6 g7 h8", kws)

	assert.Equal(t, High, recs[0].Priority)
	assert.Equal(t, "Add these missing keywords: i9", recs[0].Text)
}

func TestRecommendOverallBrackets(t *testing.T) {
	tests := []struct {
		overall  float64
		priority Priority
		text     string
	}{
		{39.9, OverallCritical, "Major resume revision needed - consider professional resume writing services"},
		{40, OverallFair, "Significant improvements needed - focus on keywords and personal info"},
		{74.9, OverallFair, "Good foundation - focus on fine-tuning keyword usage and formatting"},
		{75, OverallGood, "Very good - minor optimizations can achieve excellence"},
		{85, OverallExcellent, "Excellent ATS optimization! Your resume should perform well"},
	}

	for _, tt := range tests {
		scores := allScores(90)
		recs := Recommend(scores, tt.overall, "", nil)

		require.Len(t, recs, 1, "overall %v", tt.overall)
		assert.Equal(t, tt.priority, recs[0].Priority)
		assert.Equal(t, tt.text, recs[0].Text)
	}
}

func TestRecommendDensityAndLocation(t *testing.T) {
	scores := allScores(100)
	scores[PersonalInfo] = 60

	recs := Recommend(scores, 95, "", nil)

	require.Len(t, recs, 3)
	assert.Equal(t, "HIGH: Reduce keyword repetition - ATS may flag over-optimization", recs[0].String())
	assert.Equal(t, "MEDIUM: Add location information to improve geographical matching", recs[1].String())
	assert.Equal(t, OverallExcellent, recs[2].Priority)
}

func TestRecommendSortedForAnyScores(t *testing.T) {
	for _, v := range []float64{0, 35, 45, 59.9, 60, 70, 79.9, 96, 100} {
		recs := Recommend(allScores(v), v, "", []string{"go", "sql"})

		assert.LessOrEqual(t, len(recs), MaxRecommendations)
		for i := 1; i < len(recs); i++ {
			assert.LessOrEqual(t, recs[i-1].Priority, recs[i].Priority, "scores %v", v)
		}
	}
}

func TestRecommendationJSON(t *testing.T) {
	raw, err := json.Marshal(Recommendation{Priority: OverallGood, Text: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"priority":"overall_good","text":"x"}`, string(raw))
}

func priorities(recs []Recommendation) []Priority {
	out := make([]Priority, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Priority)
	}
	return out
}
