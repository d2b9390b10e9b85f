package keywords

import "strings"

// Category is a semantic keyword bucket.
type Category string

const (
	TechnicalSkills   Category = "technical_skills"
	ToolsTechnologies Category = "tools_technologies"
	SoftSkills        Category = "soft_skills"
	EducationTerms    Category = "education_terms"
	Certifications    Category = "certifications"
	Languages         Category = "languages"
	OtherCategory     Category = "other"
)

// Rule assigns a keyword to Category when it contains any of Terms.
type Rule struct {
	Category Category `mapstructure:"category"`
	Terms    []string `mapstructure:"terms"`
}

// DefaultRules is evaluated top to bottom and the first match wins. Reordering the
// rules changes classification ("postgresql" is technical because "sql" comes first).
var DefaultRules = []Rule{
	{Category: TechnicalSkills, Terms: []string{
		"python", "java", "javascript", "typescript", "golang", "rust", "ruby", "php",
		"scala", "kotlin", "swift", "sql", "html", "css", "programming", "algorithm",
		"software", "backend", "frontend", "fullstack", "api", "microservice", "analytics",
		"database", "security", "network", "devops", "cloud", "data", "engineer", "develop",
		"architecture", "testing", "debug", "machine learning",
	}},
	{Category: ToolsTechnologies, Terms: []string{
		"docker", "kubernetes", "aws", "azure", "gcp", "terraform", "ansible", "jenkins",
		"git", "jira", "linux", "django", "flask", "fastapi", "spring", "react", "angular",
		"vue", "node", "postgres", "mysql", "mongo", "redis", "kafka", "spark", "hadoop",
		"tableau", "excel", "salesforce", "figma", "grafana", "prometheus",
	}},
	{Category: SoftSkills, Terms: []string{
		"communication", "leadership", "teamwork", "team", "collaborat", "problem",
		"analytical", "creative", "adapt", "organiz", "manage", "mentor", "negotiat",
		"presentation", "interpersonal", "critical", "initiative", "motivat",
	}},
	{Category: EducationTerms, Terms: []string{
		"degree", "bachelor", "master", "phd", "doctor", "university", "college",
		"graduate", "education", "diploma", "academic", "school", "gpa", "coursework",
	}},
	{Category: Certifications, Terms: []string{
		"certif", "licens", "pmp", "cissp", "cpa", "accredit", "credential", "cka", "ccna",
	}},
	{Category: Languages, Terms: []string{
		"english", "french", "spanish", "german", "mandarin", "chinese", "japanese",
		"hindi", "arabic", "portuguese", "italian", "korean", "russian", "bilingual",
		"multilingual", "fluent", "language",
	}},
}

// Categories lists every bucket in evaluation order, "other" last.
var Categories = []Category{
	TechnicalSkills, ToolsTechnologies, SoftSkills, EducationTerms, Certifications, Languages, OtherCategory,
}

// Categorizer assigns keywords to buckets using ordered rules.
type Categorizer struct {
	rules []Rule
}

// NewCategorizer copies rules; nil or empty rules fall back to DefaultRules.
func NewCategorizer(rules []Rule) *Categorizer {
	if len(rules) == 0 {
		rules = DefaultRules
	}

	copied := make([]Rule, 0, len(rules))
	for _, r := range rules {
		terms := make([]string, 0, len(r.Terms))
		for _, t := range r.Terms {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
				terms = append(terms, t)
			}
		}
		copied = append(copied, Rule{Category: r.Category, Terms: terms})
	}
	return &Categorizer{rules: copied}
}

// Categorize returns the bucket of keyword.
func (c *Categorizer) Categorize(keyword string) Category {
	lower := strings.ToLower(strings.TrimSpace(keyword))
	if lower == "" {
		return OtherCategory
	}

	for _, rule := range c.rules {
		for _, term := range rule.Terms {
			if strings.Contains(lower, term) {
				return rule.Category
			}
		}
	}
	return OtherCategory
}

// Group buckets keywords, preserving input order inside each bucket.
func (c *Categorizer) Group(keywords []string) map[Category][]string {
	groups := make(map[Category][]string)
	for _, k := range keywords {
		cat := c.Categorize(k)
		groups[cat] = append(groups[cat], k)
	}
	return groups
}
