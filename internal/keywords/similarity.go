package keywords

import (
	"sort"
	"strings"

	"github.com/kljensen/snowball/english"
	"github.com/pmezard/go-difflib/difflib"
)

const (
	// DefaultSimilarityThreshold is the minimum score for a similar match.
	DefaultSimilarityThreshold = 0.7
	// MaxSimilarPerKeyword caps similar résumé keywords kept per job keyword.
	MaxSimilarPerKeyword = 3

	stemScore         = 0.9
	ratioThreshold    = 0.85
	ratioWeight       = 0.8
	subwordWeight     = 0.7
	abbreviationLen   = 5
	abbreviationScore = 0.6
	substringMaxDiff  = 4
	substringScore    = 0.5
)

// SimilarMatch is a résumé keyword similar to a job keyword.
type SimilarMatch struct {
	Keyword string  `json:"keyword"`
	Score   float64 `json:"score"`
}

// Similarity scores two keywords in [0, 1]. Rules are tried in order and the first
// one that applies wins. The abbreviation rule only treats k1 as the short form.
func Similarity(k1, k2 string) float64 {
	k1 = strings.ToLower(strings.TrimSpace(k1))
	k2 = strings.ToLower(strings.TrimSpace(k2))
	if k1 == "" || k2 == "" {
		return 0
	}

	if k1 == k2 {
		return 1
	}

	if stem(k1) == stem(k2) {
		return stemScore
	}

	if ratio := sequenceRatio(k1, k2); ratio > ratioThreshold {
		return ratio * ratioWeight
	}

	w1, w2 := strings.Fields(k1), strings.Fields(k2)
	if overlap := wordOverlap(w1, w2); overlap > 0 {
		return float64(overlap) / float64(max(len(w1), len(w2))) * subwordWeight
	}

	if len(k1) <= abbreviationLen && strings.HasPrefix(k2, k1) {
		return abbreviationScore
	}

	if strings.Contains(k1, k2) || strings.Contains(k2, k1) {
		diff := len(k1) - len(k2)
		if diff < 0 {
			diff = -diff
		}
		if diff <= substringMaxDiff {
			return substringScore
		}
	}

	return 0
}

// FindSimilar returns, per job keyword, up to three résumé keywords scoring at or
// above threshold, best first. Ties keep résumé order. Job keywords without any
// similar keyword are omitted.
func FindSimilar(jobKeywords, resumeKeywords []string, threshold float64) map[string][]SimilarMatch {
	result := make(map[string][]SimilarMatch)
	for _, job := range jobKeywords {
		var matches []SimilarMatch
		for _, res := range resumeKeywords {
			if score := Similarity(job, res); score >= threshold {
				matches = append(matches, SimilarMatch{Keyword: res, Score: score})
			}
		}
		if len(matches) == 0 {
			continue
		}

		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].Score > matches[j].Score
		})
		if len(matches) > MaxSimilarPerKeyword {
			matches = matches[:MaxSimilarPerKeyword]
		}
		result[job] = matches
	}
	return result
}

func stem(word string) string {
	parts := strings.Fields(word)
	for i, p := range parts {
		parts[i] = english.Stem(p, false)
	}
	return strings.Join(parts, " ")
}

func sequenceRatio(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

func wordOverlap(a, b []string) int {
	set := make(map[string]bool, len(a))
	for _, w := range a {
		set[w] = true
	}

	overlap := 0
	seen := make(map[string]bool, len(b))
	for _, w := range b {
		if set[w] && !seen[w] {
			overlap++
			seen[w] = true
		}
	}
	return overlap
}
