package ats

import (
	"fmt"
	"sort"
	"strings"
)

// MaxRecommendations caps the recommendation list.
const MaxRecommendations = 7

// Priority ranks a recommendation; lower sorts first.
type Priority int

const (
	Critical Priority = iota
	OverallCritical
	High
	Medium
	Low
	OverallFair
	OverallGood
	OverallExcellent
)

var priorityNames = map[Priority]string{
	Critical:         "critical",
	OverallCritical:  "overall_critical",
	High:             "high",
	Medium:           "medium",
	Low:              "low",
	OverallFair:      "overall_fair",
	OverallGood:      "overall_good",
	OverallExcellent: "overall_excellent",
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("priority(%d)", int(p))
}

// MarshalText encodes the priority by name.
func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a priority name written by MarshalText.
func (p *Priority) UnmarshalText(text []byte) error {
	for candidate, name := range priorityNames {
		if name == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown priority %q", text)
}

// Marker is the display tag of the priority.
func (p Priority) Marker() string {
	switch p {
	case Critical:
		return "CRITICAL"
	case High:
		return "HIGH"
	case Medium:
		return "MEDIUM"
	case Low:
		return "LOW"
	default:
		return "OVERALL"
	}
}

// Recommendation is one actionable suggestion.
type Recommendation struct {
	Priority Priority `json:"priority"`
	Text     string   `json:"text"`
}

func (r Recommendation) String() string {
	return r.Priority.Marker() + ": " + r.Text
}

const (
	criticalKeywordWindow = 8
	criticalKeywordLimit  = 4
	highKeywordLimit      = 3
)

// Recommend derives the prioritized suggestions from component scores. keywords must be
// normalized and lowerText lowercase.
func Recommend(scores map[Component]float64, overall float64, lowerText string, keywords []string) []Recommendation {
	var recs []Recommendation
	add := func(p Priority, text string) {
		recs = append(recs, Recommendation{Priority: p, Text: text})
	}

	if scores[PersonalInfo] < 60 {
		add(Critical, "Add complete contact information (name, email, phone) at the top of your resume")
	}

	if scores[KeywordMatch] < 40 {
		window := keywords
		if len(window) > criticalKeywordWindow {
			window = window[:criticalKeywordWindow]
		}
		if missing := missingKeywords(lowerText, window, criticalKeywordLimit); len(missing) > 0 {
			add(Critical, "Incorporate these key skills naturally: "+strings.Join(missing, ", "))
		}
	}

	if scores[KeywordMatch] < 60 {
		if missing := missingKeywords(lowerText, keywords, highKeywordLimit); len(missing) > 0 {
			add(High, "Add these missing keywords: "+strings.Join(missing, ", "))
		}
	}

	if scores[KeywordDensity] < 40 {
		add(High, "Increase relevant keyword usage - aim for 3-8 job-related terms per 100 words")
	}
	if scores[KeywordDensity] > 95 {
		add(High, "Reduce keyword repetition - ATS may flag over-optimization")
	}

	if scores[SkillsAlignment] < 60 {
		add(Medium, "Create or enhance skills section with job-specific technologies and tools")
	}
	if scores[ExperienceMatch] < 60 {
		add(Medium, "Quantify achievements and use action verbs in experience section")
	}
	if scores[PersonalInfo] >= 60 && scores[PersonalInfo] < 80 {
		add(Medium, "Add location information to improve geographical matching")
	}

	if scores[Formatting] < 70 {
		add(Low, "Use standard section headers (Experience, Skills, Education) and bullet points")
	}
	if scores[EducationMatch] < 70 {
		add(Low, "Ensure education section includes relevant degrees and certifications")
	}

	switch {
	case overall < 40:
		add(OverallCritical, "Major resume revision needed - consider professional resume writing services")
	case overall < 60:
		add(OverallFair, "Significant improvements needed - focus on keywords and personal info")
	case overall < 75:
		add(OverallFair, "Good foundation - focus on fine-tuning keyword usage and formatting")
	case overall < 85:
		add(OverallGood, "Very good - minor optimizations can achieve excellence")
	default:
		add(OverallExcellent, "Excellent ATS optimization! Your resume should perform well")
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority < recs[j].Priority
	})
	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}

func missingKeywords(lowerText string, keywords []string, limit int) []string {
	var missing []string
	for _, k := range keywords {
		if len(missing) == limit {
			break
		}
		if !strings.Contains(lowerText, k) {
			missing = append(missing, k)
		}
	}
	return missing
}
