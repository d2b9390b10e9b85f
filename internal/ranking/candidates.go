package ranking

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/spigell/ats-scorer/internal/ats"
)

// DefaultConcurrency bounds parallel scoring when no limit is given.
const DefaultConcurrency = 4

// Candidate is one résumé scored against the job.
type Candidate struct {
	Name      string         `json:"name"`
	Input     ats.Input      `json:"-"`
	Breakdown *ats.Breakdown `json:"breakdown,omitempty"`
}

// Candidates is an ordered candidate list.
type Candidates struct {
	Items []*Candidate `json:"items"`
}

// Len returns the number of candidates.
func (c *Candidates) Len() int {
	return len(c.Items)
}

// Names lists candidate names in order.
func (c *Candidates) Names() []string {
	names := make([]string, 0, len(c.Items))
	for _, cand := range c.Items {
		names = append(names, cand.Name)
	}
	return names
}

// FindByName returns the candidate called name, or nil.
func (c *Candidates) FindByName(name string) *Candidate {
	for _, cand := range c.Items {
		if cand.Name == name {
			return cand
		}
	}
	return nil
}

// Exclude removes every candidate for which drop returns true, preserving the order
// of the rest, and returns the removed names.
func (c *Candidates) Exclude(drop func(*Candidate) bool) []string {
	var excluded []string
	kept := c.Items[:0]
	for _, cand := range c.Items {
		if drop(cand) {
			excluded = append(excluded, cand.Name)
			continue
		}
		kept = append(kept, cand)
	}
	for i := len(kept); i < len(c.Items); i++ {
		c.Items[i] = nil
	}
	c.Items = kept
	return excluded
}

// Sort orders candidates by overall score, highest first. Equal scores keep their
// input order and unscored candidates go last.
func (c *Candidates) Sort() {
	sort.SliceStable(c.Items, func(i, j int) bool {
		return overall(c.Items[i]) > overall(c.Items[j])
	})
}

func overall(c *Candidate) float64 {
	if c.Breakdown == nil {
		return -1
	}
	return c.Breakdown.OverallScore
}

// ScoreAll scores every candidate with at most limit concurrent calls. It stops at the
// first error, which only happens when ctx is done.
func ScoreAll(ctx context.Context, scorer *ats.Scorer, c *Candidates, limit int) error {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, cand := range c.Items {
		g.Go(func() error {
			b, err := scorer.Score(gctx, cand.Input)
			if err != nil {
				return fmt.Errorf("score %s: %w", cand.Name, err)
			}
			cand.Breakdown = b
			return nil
		})
	}
	return g.Wait()
}

// DumpToTmpFile writes the candidates as indented JSON to a new temporary file and
// returns its path.
func (c *Candidates) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// ExcludedCandidates is the persisted list of candidates to skip in later runs.
type ExcludedCandidates struct {
	Items []*ExcludedCandidate `json:"items"`
}

// ExcludedCandidate records why and when a candidate was excluded.
type ExcludedCandidate struct {
	Name       string    `json:"name"`
	Score      float64   `json:"score"`
	ExcludedAt time.Time `json:"excluded_at"`
}

// ToExcluded converts the candidates into exclusion records.
func (c *Candidates) ToExcluded() *ExcludedCandidates {
	excluded := &ExcludedCandidates{}
	for _, cand := range c.Items {
		excluded.Items = append(excluded.Items, &ExcludedCandidate{
			Name:       cand.Name,
			Score:      overall(cand),
			ExcludedAt: time.Now().UTC(),
		})
	}
	return excluded
}

// Names lists the excluded names.
func (e *ExcludedCandidates) Names() []string {
	names := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		names = append(names, item.Name)
	}
	return names
}

// Append adds the records of other.
func (e *ExcludedCandidates) Append(other *ExcludedCandidates) {
	if other == nil {
		return
	}
	e.Items = append(e.Items, other.Items...)
}

// ToFile writes the records as indented JSON, replacing the file.
func (e *ExcludedCandidates) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// LoadExcluded reads an exclusion file. A missing or empty file yields no records.
func LoadExcluded(path string) (*ExcludedCandidates, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ExcludedCandidates{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() == 0 {
		return &ExcludedCandidates{}, nil
	}

	var excluded ExcludedCandidates
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &excluded, nil
}
