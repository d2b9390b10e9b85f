package keywords

import (
	"math"
	"strings"
)

const similarCredit = 0.8

// CategoryMatch is the match breakdown of one bucket.
type CategoryMatch struct {
	Score   float64                   `json:"score"`
	Exact   []string                  `json:"exact"`
	Similar map[string][]SimilarMatch `json:"similar"`
	Total   int                       `json:"total"`
}

// MatchResult is the outcome of matching job keywords against a résumé.
type MatchResult struct {
	Score              float64                     `json:"score"`
	ExactMatches       []string                    `json:"exact_matches"`
	SimilarMatches     map[string][]SimilarMatch   `json:"similar_matches"`
	CategorizedMatches map[Category]*CategoryMatch `json:"categorized_matches"`
	TotalJobKeywords   int                         `json:"total_job_keywords"`
}

// EmptyMatchResult is the zero-score result with allocated collections.
func EmptyMatchResult() *MatchResult {
	return &MatchResult{
		ExactMatches:       []string{},
		SimilarMatches:     map[string][]SimilarMatch{},
		CategorizedMatches: map[Category]*CategoryMatch{},
	}
}

// Matcher combines exact and fuzzy matches into a percentage score.
type Matcher struct {
	extractor   *Extractor
	categorizer *Categorizer
	threshold   float64
}

// NewMatcher creates a Matcher. A threshold outside (0, 1] falls back to
// DefaultSimilarityThreshold; a nil categorizer uses DefaultRules.
func NewMatcher(extractor *Extractor, categorizer *Categorizer, threshold float64) *Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultSimilarityThreshold
	}
	if categorizer == nil {
		categorizer = NewCategorizer(nil)
	}
	return &Matcher{extractor: extractor, categorizer: categorizer, threshold: threshold}
}

// Match scores resumeText against jobKeywords. Job keywords are normalized to
// lowercase and deduplicated first; an empty list scores 0.
func (m *Matcher) Match(jobKeywords []string, resumeText string, useSimilarity bool) *MatchResult {
	jobs := NormalizeKeywords(jobKeywords)
	result := EmptyMatchResult()
	result.TotalJobKeywords = len(jobs)
	if len(jobs) == 0 {
		return result
	}

	lower := strings.ToLower(resumeText)
	exactSet := make(map[string]bool)
	for _, k := range jobs {
		if ContainsVariant(lower, k) {
			exactSet[k] = true
			result.ExactMatches = append(result.ExactMatches, k)
		}
	}

	if useSimilarity && m.extractor != nil {
		var unmatched []string
		for _, k := range jobs {
			if !exactSet[k] {
				unmatched = append(unmatched, k)
			}
		}
		if len(unmatched) > 0 {
			resumeKeywords := m.extractor.Extract(resumeText)
			result.SimilarMatches = FindSimilar(unmatched, resumeKeywords, m.threshold)
		}
	}

	result.Score = score(jobs, exactSet, result.SimilarMatches)

	groups := m.categorizer.Group(jobs)
	for _, cat := range Categories {
		members := groups[cat]
		if len(members) == 0 {
			continue
		}

		cm := &CategoryMatch{
			Exact:   []string{},
			Similar: map[string][]SimilarMatch{},
			Total:   len(members),
		}
		for _, k := range members {
			if exactSet[k] {
				cm.Exact = append(cm.Exact, k)
			} else if sim, ok := result.SimilarMatches[k]; ok {
				cm.Similar[k] = sim
			}
		}
		cm.Score = score(members, exactSet, result.SimilarMatches)
		result.CategorizedMatches[cat] = cm
	}

	return result
}

// score credits 1 per exact keyword and 0.8 per unmatched keyword with at least one
// similar résumé keyword, as a capped percentage.
func score(jobs []string, exact map[string]bool, similar map[string][]SimilarMatch) float64 {
	if len(jobs) == 0 {
		return 0
	}

	total := 0.0
	for _, k := range jobs {
		switch {
		case exact[k]:
			total++
		case len(similar[k]) > 0:
			total += similarCredit * math.Min(1, float64(len(similar[k])))
		}
	}
	return math.Min(total/float64(len(jobs)), 1) * 100
}

// ContainsVariant reports whether lowerText contains keyword or one of its simple
// morphological variants. lowerText must already be lowercase.
func ContainsVariant(lowerText, keyword string) bool {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" || lowerText == "" {
		return false
	}
	for _, v := range Variants(keyword) {
		if strings.Contains(lowerText, v) {
			return true
		}
	}
	return false
}

// Variants returns keyword followed by its plural, gerund, past and comparative forms.
func Variants(keyword string) []string {
	variants := []string{keyword, keyword + "s", keyword + "es", keyword + "ing"}
	if strings.HasSuffix(keyword, "e") && len(keyword) > 1 {
		variants = append(variants, keyword[:len(keyword)-1]+"ing")
	}
	return append(variants, keyword+"ed", keyword+"er", keyword+"est")
}

// NormalizeKeywords trims, lowercases and deduplicates keywords, keeping first
// occurrence order and dropping empties.
func NormalizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	result := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, k)
	}
	return result
}
