package ats

import (
	"math"
	"strings"

	"github.com/spigell/ats-scorer/internal/profile"
)

const (
	stuffingThreshold = 80.0
	stuffingFactor    = 0.5

	densityLow     = 3.0
	densityHigh    = 8.0
	densityPenalty = 10.0

	contactPoints = 20.0
	contactBonus  = 10.0

	skillsMissing = 30.0
	skillsNone    = 20.0
	skillsFew     = 60.0
	skillsSome    = 80.0
	skillsMany    = 95.0

	experienceMissing = 40.0
	experienceNeutral = 70.0

	educationMissing = 50.0
	educationNeutral = 75.0

	formattingBase      = 100.0
	formattingAllBonus  = 10.0
	formattingSomeBonus = 5.0
	bulletBonus         = 5.0
	shortPenalty        = 20.0
	longPenalty         = 10.0
	optimalBonus        = 5.0
)

var (
	experienceTerms = []string{"experience", "year", "skill", "project", "team"}
	educationTerms  = []string{"degree", "education", "university", "college", "graduate"}
	bulletMarkers   = []string{"•", "-", "*", "·"}
)

// keywordMatchScore damps match scores above 80 to discourage keyword stuffing.
func keywordMatchScore(match float64) float64 {
	if match > stuffingThreshold {
		match = stuffingThreshold + (match-stuffingThreshold)*stuffingFactor
	}
	return math.Min(match, 100)
}

// keywordDensityScore rewards 3 to 8 keyword occurrences per 100 words.
func keywordDensityScore(lowerText string, keywords []string) float64 {
	if len(keywords) == 0 || lowerText == "" {
		return 0
	}
	words := len(strings.Fields(lowerText))
	if words == 0 {
		return 0
	}

	occurrences := 0
	for _, k := range keywords {
		occurrences += strings.Count(lowerText, k)
	}

	density := float64(occurrences) / float64(words) * 100
	switch {
	case density < densityLow:
		return density / densityLow * 100
	case density <= densityHigh:
		return 100
	default:
		return math.Max(0, 100-(density-densityHigh)*densityPenalty)
	}
}

func personalInfoScore(p profile.BasicProfile) float64 {
	required := 0.0
	for _, v := range []string{p.Name, p.Email, p.PhoneNumber} {
		if v != "" {
			required += contactPoints
		}
	}
	optional := 0.0
	for _, v := range []string{p.Province, p.MajorCity} {
		if v != "" {
			optional += contactPoints
		}
	}

	total := required + optional
	if required == 3*contactPoints && optional == 2*contactPoints {
		total += contactBonus
	}
	return math.Min(total, 100)
}

func skillsAlignmentScore(section string, keywords []string) float64 {
	if section == "" {
		return skillsMissing
	}

	matched := countContained(strings.ToLower(section), keywords)
	switch {
	case matched == 0:
		return skillsNone
	case matched <= 3:
		return skillsFew
	case matched <= 6:
		return skillsSome
	default:
		return skillsMany
	}
}

func experienceMatchScore(section string, keywords []string) float64 {
	if section == "" {
		return experienceMissing
	}
	return sectionRatio(section, filterByTerms(keywords, experienceTerms), experienceNeutral)
}

func educationMatchScore(section string, keywords []string) float64 {
	if section == "" {
		return educationMissing
	}
	return sectionRatio(section, filterByTerms(keywords, educationTerms), educationNeutral)
}

// formattingScore rates structure from the number of detected section types, bullet
// characters and length.
func formattingScore(text string, sectionsFound int) float64 {
	score := formattingBase

	switch {
	case sectionsFound >= 4:
		score += formattingAllBonus
	case sectionsFound >= 2:
		score += formattingSomeBonus
	}

	for _, b := range bulletMarkers {
		if strings.Contains(text, b) {
			score += bulletBonus
			break
		}
	}

	words := len(strings.Fields(text))
	switch {
	case words < 100:
		score -= shortPenalty
	case words > 800:
		score -= longPenalty
	case words >= 300 && words <= 600:
		score += optimalBonus
	}

	return clamp(score)
}

func sectionRatio(section string, relevant []string, neutral float64) float64 {
	if len(relevant) == 0 {
		return neutral
	}
	matched := countContained(strings.ToLower(section), relevant)
	return math.Min(float64(matched)/float64(len(relevant))*100, 100)
}

func filterByTerms(keywords, terms []string) []string {
	var result []string
	for _, k := range keywords {
		for _, t := range terms {
			if strings.Contains(k, t) {
				result = append(result, k)
				break
			}
		}
	}
	return result
}

func countContained(lowerText string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(lowerText, k) {
			n++
		}
	}
	return n
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(v, 100))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
