// Package report wraps a score breakdown with identity and renders it for people.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/ats-scorer/internal/ats"
	"github.com/spigell/ats-scorer/internal/keywords"
)

// Report is one scoring run of a résumé against a job.
type Report struct {
	ID        uuid.UUID      `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Resume    string         `json:"resume"`
	Job       string         `json:"job"`
	Breakdown *ats.Breakdown `json:"breakdown"`
}

// New creates a report with a fresh ID.
func New(resume, job string, b *ats.Breakdown) *Report {
	return &Report{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Resume:    resume,
		Job:       job,
		Breakdown: b,
	}
}

// DumpToTmpFile writes the report as indented JSON to a new temporary file and returns
// its path.
func (r *Report) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "ats_report_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := r.encode(file); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ToFile writes the report as indented JSON, replacing path.
func (r *Report) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	return r.encode(file)
}

// WriteJSON writes the report as indented JSON to w.
func (r *Report) WriteJSON(w io.Writer) error {
	return r.encode(w)
}

func (r *Report) encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report %s: %w", r.ID, err)
	}
	return nil
}

// Load reads a report written by ToFile.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &r, nil
}

// Render writes a plain-text summary of the report.
func (r *Report) Render(w io.Writer) error {
	b := r.Breakdown
	if b == nil {
		_, err := fmt.Fprintf(w, "Report %s: no breakdown\n", r.ID)
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "ATS report %s\n", r.ID)
	if r.Resume != "" || r.Job != "" {
		fmt.Fprintf(&sb, "Resume: %s\nJob:    %s\n", r.Resume, r.Job)
	}
	fmt.Fprintf(&sb, "\nOverall score: %.1f (grade %s)\n", b.OverallScore, b.Grade)
	fmt.Fprintf(&sb, "Compatibility: %s\n", b.Compatibility)

	sb.WriteString("\nComponents:\n")
	for _, c := range ats.Components {
		fmt.Fprintf(&sb, "  %-18s %5.1f\n", c, b.ComponentScores[c])
	}

	if ka := b.KeywordAnalysis; ka != nil && ka.TotalJobKeywords > 0 {
		fmt.Fprintf(&sb, "\nKeywords: %.1f%% of %d matched\n", ka.Score, ka.TotalJobKeywords)
		if len(ka.ExactMatches) > 0 {
			fmt.Fprintf(&sb, "  exact:   %s\n", strings.Join(ka.ExactMatches, ", "))
		}
		if len(ka.SimilarMatches) > 0 {
			fmt.Fprintf(&sb, "  similar: %s\n", similarSummary(ka))
		}
	}

	if len(b.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for i, rec := range b.Recommendations {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, rec)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// similarSummary lists "job~resume" pairs for the best similar match of each job
// keyword, sorted by job keyword.
func similarSummary(ka *keywords.MatchResult) string {
	jobs := make([]string, 0, len(ka.SimilarMatches))
	for k, matches := range ka.SimilarMatches {
		if len(matches) > 0 {
			jobs = append(jobs, k)
		}
	}
	sort.Strings(jobs)

	pairs := make([]string, 0, len(jobs))
	for _, k := range jobs {
		pairs = append(pairs, k+"~"+ka.SimilarMatches[k][0].Keyword)
	}
	return strings.Join(pairs, ", ")
}
