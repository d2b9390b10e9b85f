// Package sections slices résumé text into labeled regions using ordered header tables.
package sections

import "strings"

// Type names a résumé section.
type Type string

const (
	Experience     Type = "experience"
	Education      Type = "education"
	Skills         Type = "skills"
	Summary        Type = "summary"
	Projects       Type = "projects"
	Certifications Type = "certifications"
	Languages      Type = "languages"
	Achievements   Type = "achievements"
)

// Section maps a Type to its header synonyms.
type Section struct {
	Type    Type     `mapstructure:"type"`
	Headers []string `mapstructure:"headers"`
}

// DefaultTable holds the four section types used for scoring. Any header of any
// type ends the current section, so the table order and contents are part of the
// scoring contract.
var DefaultTable = []Section{
	{Type: Experience, Headers: []string{
		"experience", "work experience", "professional experience", "employment",
		"work history", "career history", "professional background",
	}},
	{Type: Education, Headers: []string{
		"education", "academic background", "qualifications", "degrees",
		"certifications", "academic credentials",
	}},
	{Type: Skills, Headers: []string{
		"skills", "technical skills", "core competencies", "expertise",
		"proficiencies", "abilities", "competencies",
	}},
	{Type: Summary, Headers: []string{
		"summary", "professional summary", "objective", "profile",
		"career objective", "personal statement",
	}},
}

// ExtendedTable adds the sections counted by résumé content analysis.
var ExtendedTable = []Section{
	{Type: Summary, Headers: []string{
		"summary", "professional summary", "objective", "profile", "career objective",
		"personal statement", "about me",
	}},
	{Type: Experience, Headers: []string{
		"experience", "work history", "employment", "career history", "professional background",
	}},
	{Type: Education, Headers: []string{
		"education", "academic background", "academic credentials", "degrees",
	}},
	{Type: Skills, Headers: []string{
		"skills", "core competencies", "expertise", "proficiencies", "competencies",
	}},
	{Type: Projects, Headers: []string{"projects", "personal projects", "portfolio"}},
	{Type: Certifications, Headers: []string{"certifications", "certificates", "licenses"}},
	{Type: Languages, Headers: []string{"languages", "language skills"}},
	{Type: Achievements, Headers: []string{"achievements", "awards", "honors", "accomplishments"}},
}

// Extractor finds sections in text using one header table.
type Extractor struct {
	table []Section
	all   []string
}

// NewExtractor copies table; an empty table falls back to DefaultTable.
func NewExtractor(table []Section) *Extractor {
	if len(table) == 0 {
		table = DefaultTable
	}

	e := &Extractor{table: make([]Section, 0, len(table))}
	for _, s := range table {
		headers := make([]string, 0, len(s.Headers))
		for _, h := range s.Headers {
			if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
				headers = append(headers, h)
			}
		}
		e.table = append(e.table, Section{Type: s.Type, Headers: headers})
		e.all = append(e.all, headers...)
	}
	return e
}

// Types lists the section types of the table in order.
func (e *Extractor) Types() []Type {
	types := make([]Type, 0, len(e.table))
	for _, s := range e.table {
		types = append(types, s.Type)
	}
	return types
}

// Headers returns the header synonyms of t, or nil for an unknown type.
func (e *Extractor) Headers(t Type) []string {
	for _, s := range e.table {
		if s.Type == t {
			return s.Headers
		}
	}
	return nil
}

// Lines returns the non-blank lines of section t. A line containing a header of t
// opens the section and is dropped unless a longer header of another type matches
// it too ("language skills" is a languages header, not a skills one); the first line
// containing a header of any other type closes it.
func (e *Extractor) Lines(text string, t Type) []string {
	target := e.Headers(t)
	if len(target) == 0 || text == "" {
		return nil
	}

	var (
		lines     []string
		inSection bool
	)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)

		if e.opens(lower, t, target) {
			inSection = true
			continue
		}
		if !inSection || trimmed == "" {
			continue
		}
		if containsAny(lower, e.all) {
			break
		}
		lines = append(lines, trimmed)
	}
	return lines
}

// Extract returns the lines of section t joined by single spaces, or "" when the
// section is absent.
func (e *Extractor) Extract(text string, t Type) string {
	return strings.Join(e.Lines(text, t), " ")
}

// Detect lists, in table order, the types whose headers occur anywhere in text.
func (e *Extractor) Detect(text string) []Type {
	lower := strings.ToLower(text)
	found := []Type{}
	for _, s := range e.table {
		if containsAny(lower, s.Headers) {
			found = append(found, s.Type)
		}
	}
	return found
}

// opens reports whether line holds a header of t that no other type beats with a
// longer match.
func (e *Extractor) opens(line string, t Type, target []string) bool {
	own := longestMatch(line, target)
	if own == 0 {
		return false
	}
	for _, s := range e.table {
		if s.Type != t && longestMatch(line, s.Headers) > own {
			return false
		}
	}
	return true
}

func longestMatch(s string, subs []string) int {
	longest := 0
	for _, sub := range subs {
		if len(sub) > longest && strings.Contains(s, sub) {
			longest = len(sub)
		}
	}
	return longest
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
