package ats

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/spigell/ats-scorer/internal/profile"
)

const notSpecified = "Not specified"

// JobInfo is the structured job posting consumed by job analysis.
type JobInfo struct {
	SalaryInfo            any      `json:"salary_info" mapstructure:"salary_info"`
	ExperienceLevel       string   `json:"experience_level" mapstructure:"experience_level"`
	WorkType              string   `json:"work_type" mapstructure:"work_type"`
	EmploymentType        string   `json:"employment_type" mapstructure:"employment_type"`
	EducationRequirements []string `json:"education_requirements" mapstructure:"education_requirements"`
	Benefits              []string `json:"benefits" mapstructure:"benefits"`
	KeySkills             []string `json:"key_skills" mapstructure:"key_skills"`
	CompanyName           string   `json:"company_name" mapstructure:"company_name"`
	Website               string   `json:"website" mapstructure:"website"`
	Industry              string   `json:"industry" mapstructure:"industry"`
}

// DecodeJobInfo builds a JobInfo from a loosely typed record. Fields that fail to
// decode stay empty and are reported in the error.
func DecodeJobInfo(raw map[string]any) (JobInfo, error) {
	var info JobInfo
	if raw == nil {
		return info, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &info,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return info, fmt.Errorf("create job info decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return info, fmt.Errorf("decode job info: %w", err)
	}
	return info, nil
}

// CompanyInfo describes the hiring company.
type CompanyInfo struct {
	Name     string `json:"name"`
	Website  string `json:"website"`
	Industry string `json:"industry"`
}

// JobAnalysis summarizes a job posting.
type JobAnalysis struct {
	HasSalaryInfo         bool        `json:"has_salary_info"`
	ExperienceLevel       string      `json:"experience_level"`
	WorkType              string      `json:"work_type"`
	EmploymentType        string      `json:"employment_type"`
	EducationRequirements []string    `json:"education_requirements"`
	BenefitsOffered       []string    `json:"benefits_offered"`
	KeySkillsRequired     []string    `json:"key_skills_required"`
	CompanyInfo           CompanyInfo `json:"company_info"`
}

// AnalyzeJob summarizes info. Missing descriptive fields read "Not specified".
func AnalyzeJob(info JobInfo) JobAnalysis {
	return JobAnalysis{
		HasSalaryInfo:         truthy(info.SalaryInfo),
		ExperienceLevel:       orNotSpecified(info.ExperienceLevel),
		WorkType:              orNotSpecified(info.WorkType),
		EmploymentType:        orNotSpecified(info.EmploymentType),
		EducationRequirements: cloneStrings(info.EducationRequirements),
		BenefitsOffered:       cloneStrings(info.Benefits),
		KeySkillsRequired:     cloneStrings(info.KeySkills),
		CompanyInfo: CompanyInfo{
			Name:     info.CompanyName,
			Website:  info.Website,
			Industry: info.Industry,
		},
	}
}

// AnalysisStatus tells an empty résumé analysis apart from a failed one.
type AnalysisStatus string

const (
	StatusOK     AnalysisStatus = "ok"
	StatusEmpty  AnalysisStatus = "empty"
	StatusFailed AnalysisStatus = "failed"
)

// ResumeAnalysis summarizes résumé content.
type ResumeAnalysis struct {
	Status              AnalysisStatus `json:"status"`
	Error               string         `json:"error,omitempty"`
	ContactCompleteness float64        `json:"contact_completeness"`
	HasSummary          bool           `json:"has_summary"`
	ExperienceEntries   int            `json:"experience_entries"`
	EducationEntries    int            `json:"education_entries"`
	CertificationsCount int            `json:"certifications_count"`
	ProjectsCount       int            `json:"projects_count"`
	SkillsCount         int            `json:"skills_count"`
	LanguagesKnown      []string       `json:"languages_known"`
	AchievementsCount   int            `json:"achievements_count"`
	WebsitesCount       int            `json:"websites_count"`
	SectionsFound       []string       `json:"sections_found"`
}

// AnalyzeResume summarizes extracted résumé content. A nil info with a nil error
// means nothing was found.
func AnalyzeResume(p profile.BasicProfile, info *profile.ResumeInfo, err error) ResumeAnalysis {
	a := ResumeAnalysis{
		Status:              StatusOK,
		ContactCompleteness: ContactCompleteness(p),
		LanguagesKnown:      []string{},
		SectionsFound:       []string{},
	}

	if err != nil {
		a.Status = StatusFailed
		a.Error = err.Error()
		return a
	}
	if info == nil {
		a.Status = StatusEmpty
		return a
	}

	a.HasSummary = info.Summary != ""
	a.ExperienceEntries = len(info.WorkExperience)
	a.EducationEntries = len(info.Education)
	a.CertificationsCount = len(info.Certifications)
	a.ProjectsCount = len(info.Projects)
	a.SkillsCount = len(info.Skills)
	a.LanguagesKnown = cloneStrings(info.Languages)
	a.AchievementsCount = len(info.Achievements)
	a.WebsitesCount = len(info.Websites)
	a.SectionsFound = info.SectionsFound()
	if len(a.SectionsFound) == 0 && len(a.LanguagesKnown) == 0 {
		a.Status = StatusEmpty
	}
	return a
}

// ContactCompleteness is the share of name, email and phone present, in percent.
func ContactCompleteness(p profile.BasicProfile) float64 {
	completed := 0
	for _, v := range []string{p.Name, p.Email, p.PhoneNumber} {
		if v != "" {
			completed++
		}
	}
	return float64(completed) / 3 * 100
}

func orNotSpecified(s string) string {
	if s == "" {
		return notSpecified
	}
	return s
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// truthy reports whether v carries a value: non-nil, non-zero and non-empty.
func truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	default:
		return !rv.IsZero()
	}
}
