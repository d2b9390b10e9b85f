package ranking

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/keywords"
)

var gradeRank = map[string]int{"A": 4, "B": 3, "C": 2, "D": 1, "F": 0}

type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

type minimumScoreFilter struct {
	toggle
	min float64
}

// NewMinimumScore creates a filter that drops candidates below the configured overall score.
func NewMinimumScore() Filter {
	return &minimumScoreFilter{}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Validate(cfg *Config) error {
	f.min = cfg.MinimumScore
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	excluded := c.Exclude(func(cand *Candidate) bool {
		return overall(cand) < f.min
	})
	if len(excluded) > 0 {
		deps.Logger.Info("excluding candidates below minimum score",
			zap.Float64("minimum_score", f.min),
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *minimumScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum_score": fmt.Sprintf("%.1f", f.min)},
	}
}

type minimumGradeFilter struct {
	toggle
	grade string
}

// NewMinimumGrade creates a filter that drops candidates graded below the configured letter.
func NewMinimumGrade() Filter {
	return &minimumGradeFilter{}
}

func (f *minimumGradeFilter) Name() string { return "minimum_grade" }

func (f *minimumGradeFilter) Validate(cfg *Config) error {
	f.grade = strings.ToUpper(strings.TrimSpace(cfg.MinimumGrade))
	if f.grade == "" {
		return nil
	}
	if _, ok := gradeRank[f.grade]; !ok {
		return fmt.Errorf("unknown grade %q", cfg.MinimumGrade)
	}
	return nil
}

func (f *minimumGradeFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	if f.grade == "" {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	excluded := c.Exclude(func(cand *Candidate) bool {
		if cand.Breakdown == nil {
			return true
		}
		return gradeRank[cand.Breakdown.Grade] < gradeRank[f.grade]
	})
	if len(excluded) > 0 {
		deps.Logger.Info("excluding candidates below minimum grade",
			zap.String("minimum_grade", f.grade),
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *minimumGradeFilter) Status() Status {
	details := map[string]string{}
	if f.grade != "" {
		details["minimum_grade"] = f.grade
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type requiredKeywordsFilter struct {
	toggle
	required []string
}

// NewRequiredKeywords creates a filter that keeps only candidates whose résumé contains
// every required keyword or one of its simple variants.
func NewRequiredKeywords() Filter {
	return &requiredKeywordsFilter{}
}

func (f *requiredKeywordsFilter) Name() string { return "required_keywords" }

func (f *requiredKeywordsFilter) Validate(cfg *Config) error {
	f.required = keywords.NormalizeKeywords(cfg.RequiredKeywords)
	return nil
}

func (f *requiredKeywordsFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	if len(f.required) == 0 {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	excluded := c.Exclude(func(cand *Candidate) bool {
		lower := strings.ToLower(cand.Input.ResumeText)
		for _, k := range f.required {
			if !keywords.ContainsVariant(lower, k) {
				return true
			}
		}
		return false
	})
	if len(excluded) > 0 {
		deps.Logger.Info("excluding candidates missing required keywords",
			zap.Strings("required_keywords", f.required),
			zap.Strings("excluded_candidates", excluded),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(excluded), Left: c.Len()}, nil
}

func (f *requiredKeywordsFilter) Status() Status {
	details := map[string]string{}
	if len(f.required) > 0 {
		details["required_keywords"] = strings.Join(f.required, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type excludeFileFilter struct {
	toggle
	path string
}

// NewExcludeFile creates a filter that removes candidates listed in the exclude file.
func NewExcludeFile() Filter {
	return &excludeFileFilter{}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Validate(cfg *Config) error {
	f.path = strings.TrimSpace(cfg.ExcludeFile)
	return nil
}

func (f *excludeFileFilter) Apply(_ context.Context, deps Deps, c *Candidates) (*Candidates, Step, error) {
	initial := c.Len()
	if f.path == "" {
		return c, Step{Initial: initial, Dropped: 0, Left: c.Len()}, nil
	}

	excludedFile, err := LoadExcluded(f.path)
	if err != nil {
		return c, Step{}, fmt.Errorf("getting excluded candidates from file: %w", err)
	}

	names := make(map[string]bool)
	for _, n := range excludedFile.Names() {
		names[n] = true
	}
	removed := c.Exclude(func(cand *Candidate) bool { return names[cand.Name] })
	if len(removed) > 0 {
		deps.Logger.Info("excluding candidates based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", c.Len()),
		)
	}

	return c, Step{Initial: initial, Dropped: len(removed), Left: c.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
