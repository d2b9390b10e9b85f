package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	c := NewCategorizer(nil)

	tests := map[string]Category{
		"postgresql":    TechnicalSkills,
		"python":        TechnicalSkills,
		"docker":        ToolsTechnologies,
		"Kubernetes":    ToolsTechnologies,
		"communication": SoftSkills,
		"bachelor":      EducationTerms,
		"certified":     Certifications,
		"french":        Languages,
		"banana":        OtherCategory,
		"":              OtherCategory,
	}

	for keyword, want := range tests {
		assert.Equal(t, want, c.Categorize(keyword), keyword)
	}
}

func TestCategorizeRuleOrderMatters(t *testing.T) {
	c := NewCategorizer([]Rule{
		{Category: ToolsTechnologies, Terms: []string{"postgres"}},
		{Category: TechnicalSkills, Terms: []string{"sql"}},
	})

	assert.Equal(t, ToolsTechnologies, c.Categorize("postgresql"))
	assert.Equal(t, TechnicalSkills, c.Categorize("mysql"))
}

func TestGroup(t *testing.T) {
	c := NewCategorizer(nil)

	groups := c.Group([]string{"docker", "python", "teamwork", "git", "banana"})
	assert.Equal(t, []string{"docker", "git"}, groups[ToolsTechnologies])
	assert.Equal(t, []string{"python"}, groups[TechnicalSkills])
	assert.Equal(t, []string{"teamwork"}, groups[SoftSkills])
	assert.Equal(t, []string{"banana"}, groups[OtherCategory])
}
