package profile

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/spigell/ats-scorer/internal/sections"
)

// ResumeInfo is the structured content of a résumé.
type ResumeInfo struct {
	Summary        string   `json:"professional_summary"`
	WorkExperience []string `json:"work_experience"`
	Education      []string `json:"education"`
	Certifications []string `json:"certifications"`
	Projects       []string `json:"projects"`
	Skills         []string `json:"skills"`
	Languages      []string `json:"languages"`
	Achievements   []string `json:"achievements"`
	Websites       []string `json:"websites"`
}

// SectionsFound lists the display names of the populated parts.
func (i *ResumeInfo) SectionsFound() []string {
	found := []string{}
	if i == nil {
		return found
	}

	add := func(ok bool, name string) {
		if ok {
			found = append(found, name)
		}
	}
	add(i.Summary != "", "Professional Summary")
	add(len(i.WorkExperience) > 0, "Work Experience")
	add(len(i.Education) > 0, "Education")
	add(len(i.Certifications) > 0, "Certifications")
	add(len(i.Projects) > 0, "Projects")
	add(len(i.Skills) > 0, "Skills")
	add(len(i.Achievements) > 0, "Achievements")
	add(len(i.Websites) > 0, "Websites")
	return found
}

// InfoExtractor turns résumé text into ResumeInfo.
type InfoExtractor interface {
	ExtractInfo(ctx context.Context, text string) (*ResumeInfo, error)
}

// HeuristicExtractor reads ResumeInfo from section headers without any network call.
type HeuristicExtractor struct {
	sections *sections.Extractor
}

// NewHeuristicExtractor creates a HeuristicExtractor over sections.ExtendedTable.
func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{sections: sections.NewExtractor(sections.ExtendedTable)}
}

// ExtractInfo implements InfoExtractor.
func (h *HeuristicExtractor) ExtractInfo(ctx context.Context, text string) (*ResumeInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &ResumeInfo{
		Summary:        h.sections.Extract(text, sections.Summary),
		WorkExperience: entries(h.sections.Lines(text, sections.Experience)),
		Education:      items(h.sections.Lines(text, sections.Education)),
		Certifications: items(h.sections.Lines(text, sections.Certifications)),
		Projects:       entries(h.sections.Lines(text, sections.Projects)),
		Skills:         split(h.sections.Lines(text, sections.Skills)),
		Languages:      split(h.sections.Lines(text, sections.Languages)),
		Achievements:   items(h.sections.Lines(text, sections.Achievements)),
		Websites:       Websites(text),
	}, nil
}

const bulletMarkers = "-*•·"

func isBullet(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	return strings.ContainsRune(bulletMarkers, r)
}

func trimBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, bulletMarkers+" "))
}

// entries keeps heading lines and drops their bullet details. A section made only of
// bullets counts each bullet as an entry.
func entries(lines []string) []string {
	result := []string{}
	for _, l := range lines {
		if !isBullet(l) {
			result = append(result, l)
		}
	}
	if len(result) == 0 {
		return items(lines)
	}
	return result
}

func items(lines []string) []string {
	result := []string{}
	for _, l := range lines {
		if l = trimBullet(l); l != "" {
			result = append(result, l)
		}
	}
	return result
}

func split(lines []string) []string {
	result := []string{}
	for _, l := range lines {
		for _, part := range strings.FieldsFunc(trimBullet(l), func(r rune) bool {
			return r == ',' || r == ';' || r == '|' || r == '•' || r == '·'
		}) {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
	}
	return result
}
