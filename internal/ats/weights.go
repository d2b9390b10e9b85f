package ats

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// Component names one scoring dimension.
type Component string

const (
	KeywordMatch    Component = "keyword_match"
	KeywordDensity  Component = "keyword_density"
	PersonalInfo    Component = "personal_info"
	SkillsAlignment Component = "skills_alignment"
	ExperienceMatch Component = "experience_match"
	EducationMatch  Component = "education_match"
	Formatting      Component = "formatting"
)

// Components lists every dimension in reporting order.
var Components = []Component{
	KeywordMatch, KeywordDensity, PersonalInfo, SkillsAlignment, ExperienceMatch, EducationMatch, Formatting,
}

const weightTolerance = 0.001

// Weights holds the contribution of each component to the overall score.
type Weights struct {
	KeywordMatch    float64 `json:"keyword_match" mapstructure:"keyword_match" validate:"gte=0,lte=1"`
	KeywordDensity  float64 `json:"keyword_density" mapstructure:"keyword_density" validate:"gte=0,lte=1"`
	PersonalInfo    float64 `json:"personal_info" mapstructure:"personal_info" validate:"gte=0,lte=1"`
	SkillsAlignment float64 `json:"skills_alignment" mapstructure:"skills_alignment" validate:"gte=0,lte=1"`
	ExperienceMatch float64 `json:"experience_match" mapstructure:"experience_match" validate:"gte=0,lte=1"`
	EducationMatch  float64 `json:"education_match" mapstructure:"education_match" validate:"gte=0,lte=1"`
	Formatting      float64 `json:"formatting" mapstructure:"formatting" validate:"gte=0,lte=1"`
}

// DefaultWeights returns the standard weighting.
func DefaultWeights() Weights {
	return Weights{
		KeywordMatch:    0.40,
		KeywordDensity:  0.15,
		PersonalInfo:    0.15,
		SkillsAlignment: 0.10,
		ExperienceMatch: 0.10,
		EducationMatch:  0.05,
		Formatting:      0.05,
	}
}

// Of returns the weight of c, or 0 for an unknown component.
func (w Weights) Of(c Component) float64 {
	switch c {
	case KeywordMatch:
		return w.KeywordMatch
	case KeywordDensity:
		return w.KeywordDensity
	case PersonalInfo:
		return w.PersonalInfo
	case SkillsAlignment:
		return w.SkillsAlignment
	case ExperienceMatch:
		return w.ExperienceMatch
	case EducationMatch:
		return w.EducationMatch
	case Formatting:
		return w.Formatting
	}
	return 0
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	total := 0.0
	for _, c := range Components {
		total += w.Of(c)
	}
	return total
}

// Validate checks that every weight is in [0, 1] and that they sum to 1.
func (w Weights) Validate() error {
	validate := validator.New()
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("invalid weights: %w", err)
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("invalid weights: sum is %.3f, want 1.0", sum)
	}
	return nil
}
