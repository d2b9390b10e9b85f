// Package ats combines keyword matching, section analysis and contact completeness
// into a weighted ATS compatibility score with recommendations.
package ats

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/keywords"
	"github.com/spigell/ats-scorer/internal/profile"
	"github.com/spigell/ats-scorer/internal/sections"
)

// Deps configures a Scorer. Zero values get working defaults: a matcher without
// similarity, the default section table, the heuristic résumé extractor and
// DefaultWeights.
type Deps struct {
	Matcher       *keywords.Matcher
	Sections      *sections.Extractor
	InfoExtractor profile.InfoExtractor
	Weights       Weights
	Logger        *zap.Logger
}

// Scorer computes Breakdowns. It is safe for concurrent use when its dependencies are.
type Scorer struct {
	matcher  *keywords.Matcher
	sections *sections.Extractor
	info     profile.InfoExtractor
	weights  Weights
	logger   *zap.Logger
}

// NewScorer validates the weights and builds a Scorer.
func NewScorer(deps Deps) (*Scorer, error) {
	if deps.Weights == (Weights{}) {
		deps.Weights = DefaultWeights()
	}
	if err := deps.Weights.Validate(); err != nil {
		return nil, err
	}
	if deps.Matcher == nil {
		deps.Matcher = keywords.NewMatcher(nil, nil, 0)
	}
	if deps.Sections == nil {
		deps.Sections = sections.NewExtractor(nil)
	}
	if deps.InfoExtractor == nil {
		deps.InfoExtractor = profile.NewHeuristicExtractor()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Scorer{
		matcher:  deps.Matcher,
		sections: deps.Sections,
		info:     deps.InfoExtractor,
		weights:  deps.Weights,
		logger:   deps.Logger,
	}, nil
}

// Input is one résumé scored against one job.
type Input struct {
	ResumeText   string
	JobKeywords  []string
	PersonalInfo profile.PersonalInfo
	JobInfo      JobInfo
}

// Breakdown is the full scoring result.
type Breakdown struct {
	OverallScore    float64               `json:"overall_score"`
	ComponentScores map[Component]float64 `json:"component_scores"`
	Grade           string                `json:"grade"`
	Compatibility   string                `json:"ats_compatibility"`
	Recommendations []Recommendation      `json:"recommendations"`
	KeywordAnalysis *keywords.MatchResult `json:"keyword_analysis"`
	JobAnalysis     JobAnalysis           `json:"job_analysis"`
	ResumeAnalysis  ResumeAnalysis        `json:"resume_analysis"`
}

// Score computes the Breakdown of in. Bad or missing data lowers the score instead of
// failing; the only error is a done context.
func (s *Scorer) Score(ctx context.Context, in Input) (*Breakdown, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	jobKeywords := keywords.NormalizeKeywords(in.JobKeywords)
	lower := strings.ToLower(in.ResumeText)
	hasText := strings.TrimSpace(in.ResumeText) != ""

	var contact profile.BasicProfile
	if in.PersonalInfo != nil {
		contact = in.PersonalInfo.Basic()
	}

	match := s.matchKeywords(jobKeywords, in.ResumeText)

	raw := make(map[Component]float64, len(Components))
	if len(jobKeywords) > 0 && hasText {
		raw[KeywordMatch] = keywordMatchScore(match.Score)
	}
	raw[KeywordDensity] = keywordDensityScore(lower, jobKeywords)
	raw[PersonalInfo] = personalInfoScore(contact)
	s.sectionScores(in.ResumeText, jobKeywords, raw)

	overall := 0.0
	scores := make(map[Component]float64, len(Components))
	for _, c := range Components {
		overall += raw[c] * s.weights.Of(c)
		scores[c] = round1(raw[c])
	}
	overall = round1(overall)

	var (
		info    *profile.ResumeInfo
		infoErr error
	)
	if hasText {
		info, infoErr = s.resumeInfo(ctx, in.ResumeText)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if infoErr != nil {
			s.logger.Warn("resume content analysis failed", zap.Error(infoErr))
		}
	}

	s.logger.Debug("resume scored",
		zap.Float64("overall_score", overall),
		zap.Any("component_scores", scores),
		zap.Int("job_keywords", len(jobKeywords)),
	)

	return &Breakdown{
		OverallScore:    overall,
		ComponentScores: scores,
		Grade:           Grade(overall),
		Compatibility:   Compatibility(overall),
		Recommendations: Recommend(scores, overall, lower, jobKeywords),
		KeywordAnalysis: match,
		JobAnalysis:     AnalyzeJob(in.JobInfo),
		ResumeAnalysis:  AnalyzeResume(contact, info, infoErr),
	}, nil
}

// matchKeywords runs the matcher and falls back to an empty result if it panics.
func (s *Scorer) matchKeywords(jobKeywords []string, text string) (result *keywords.MatchResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("keyword analysis panicked", zap.Any("panic", r))
			result = keywords.EmptyMatchResult()
		}
	}()
	return s.matcher.Match(jobKeywords, text, true)
}

// sectionScores fills the section-scoped components. A panic leaves every section
// treated as missing.
func (s *Scorer) sectionScores(text string, jobKeywords []string, scores map[Component]float64) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("section analysis panicked", zap.Any("panic", r))
			scores[SkillsAlignment] = skillsMissing
			scores[ExperienceMatch] = experienceMissing
			scores[EducationMatch] = educationMissing
			scores[Formatting] = formattingScore(text, 0)
		}
	}()

	scores[SkillsAlignment] = skillsAlignmentScore(s.sections.Extract(text, sections.Skills), jobKeywords)
	scores[ExperienceMatch] = experienceMatchScore(s.sections.Extract(text, sections.Experience), jobKeywords)
	scores[EducationMatch] = educationMatchScore(s.sections.Extract(text, sections.Education), jobKeywords)
	scores[Formatting] = formattingScore(text, len(s.sections.Detect(text)))
}

func (s *Scorer) resumeInfo(ctx context.Context, text string) (info *profile.ResumeInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			info, err = nil, fmt.Errorf("resume info extraction panicked: %v", r)
		}
	}()

	info, err = s.info.ExtractInfo(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extract resume info: %w", err)
	}
	return info, nil
}
