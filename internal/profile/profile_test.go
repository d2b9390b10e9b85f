package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/ats-scorer/internal/nlp"
	"github.com/spigell/ats-scorer/internal/nlp/nlptest"
)

func TestDecodeBasic(t *testing.T) {
	info, err := Decode(map[string]any{
		"name":         "Jane Doe",
		"email":        "jane@x.com",
		"phone_number": 5551234567,
	})
	require.NoError(t, err)

	assert.IsType(t, BasicProfile{}, info)
	assert.Equal(t, BasicProfile{Name: "Jane Doe", Email: "jane@x.com", PhoneNumber: "5551234567"}, info.Basic())
}

func TestDecodeComprehensive(t *testing.T) {
	info, err := Decode(map[string]any{
		"personal_info": map[string]any{
			"name":     "Jane Doe",
			"phone":    "555-123-4567",
			"location": "Vancouver, BC",
		},
		"skills": []any{"go", "python"},
	})
	require.NoError(t, err)

	require.IsType(t, ComprehensiveProfile{}, info)
	assert.Equal(t, BasicProfile{
		Name:        "Jane Doe",
		PhoneNumber: "555-123-4567",
		Province:    "bc",
		MajorCity:   "vancouver",
	}, info.Basic())
	assert.Equal(t, []string{"go", "python"}, info.(ComprehensiveProfile).Skills)
}

func TestDecodeTopLevelWinsOverNested(t *testing.T) {
	info, err := Decode(map[string]any{
		"email":         "top@x.com",
		"personal_info": map[string]any{"email": "nested@x.com", "name": "Jane"},
	})
	require.NoError(t, err)

	assert.Equal(t, "top@x.com", info.Basic().Email)
	assert.Equal(t, "Jane", info.Basic().Name)
}

func TestDecodeMixedKeepsTopLevelLocation(t *testing.T) {
	info, err := Decode(map[string]any{
		"province":      "ON",
		"major_city":    "Toronto",
		"personal_info": map[string]any{"name": "Jane", "location": "Vancouver, BC"},
	})
	require.NoError(t, err)

	b := info.Basic()
	assert.Equal(t, "on", b.Province)
	assert.Equal(t, "toronto", b.MajorCity)
	assert.Equal(t, "Jane", b.Name)
}

func TestDecodeMalformedFieldIsAbsent(t *testing.T) {
	info, err := Decode(map[string]any{
		"name":  map[string]any{"first": "Jane"},
		"email": "jane@x.com",
	})
	require.Error(t, err)
	require.NotNil(t, info)

	assert.Equal(t, "", info.Basic().Name)
	assert.Equal(t, "jane@x.com", info.Basic().Email)
}

func TestDecodeNil(t *testing.T) {
	info, err := Decode(nil)
	require.NoError(t, err)
	assert.Equal(t, BasicProfile{}, info.Basic())
}

func TestExtract(t *testing.T) {
	analyzer := &nlptest.Analyzer{Entities: []nlp.Entity{
		{Text: "Jane Doe", Label: nlp.LabelPerson},
		{Text: "Acme", Label: nlp.LabelOrg},
		{Text: "Toronto", Label: nlp.LabelGPE},
	}}

	text := "Jane Doe\nSenior Engineer, Toronto ON\njane.doe@example.com | (555) 123-4567\n"
	assert.Equal(t, BasicProfile{
		Name:        "Jane Doe",
		Email:       "jane.doe@example.com",
		PhoneNumber: "5551234567",
		Province:    "on",
		MajorCity:   "toronto",
	}, Extract(analyzer, text))
}

func TestExtractInfersProvinceFromCity(t *testing.T) {
	analyzer := &nlptest.Analyzer{Entities: []nlp.Entity{{Text: "Calgary", Label: nlp.LabelGPE}}}

	p := Extract(analyzer, "Based in Calgary")
	assert.Equal(t, "calgary", p.MajorCity)
	assert.Equal(t, "ab", p.Province)
}

func TestExtractNameFallback(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "capitalized first line", text: "John Smith\nEngineer", want: "John Smith"},
		{name: "lowercase word", text: "john Smith\nEngineer", want: ""},
		{name: "single word", text: "Resume\nJohn Smith", want: ""},
		{name: "too many words", text: "A Very Long Capitalized Title\n", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(nil, tt.text).Name)
		})
	}
}

func TestParseLocation(t *testing.T) {
	province, city := ParseLocation("Halifax, NS")
	assert.Equal(t, "ns", province)
	assert.Equal(t, "halifax", city)

	province, city = ParseLocation("Berlin, Germany")
	assert.Empty(t, province)
	assert.Empty(t, city)
}

func TestWebsites(t *testing.T) {
	text := "Portfolio: www.janedoe.dev, GitHub https://github.com/jane. Email jane.doe@example.com WWW.JANEDOE.DEV"

	assert.Equal(t, []string{"https://www.janedoe.dev", "https://github.com/jane"}, Websites(text))
	assert.Empty(t, Websites("no links here"))
}

func TestHeuristicExtractor(t *testing.T) {
	text := `Jane Doe
https://github.com/jane
Summary
Backend engineer.
Experience
Acme Corp - Engineer
- Built APIs
Beta Inc - Intern
Education
BSc Computer Science
Skills
Go, Python; SQL
Projects
- ats-scorer
Certifications
AWS Solutions Architect
Languages
English, French
Awards
Hackathon winner`

	info, err := NewHeuristicExtractor().ExtractInfo(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, "Backend engineer.", info.Summary)
	assert.Equal(t, []string{"Acme Corp - Engineer", "Beta Inc - Intern"}, info.WorkExperience)
	assert.Equal(t, []string{"BSc Computer Science"}, info.Education)
	assert.Equal(t, []string{"Go", "Python", "SQL"}, info.Skills)
	assert.Equal(t, []string{"ats-scorer"}, info.Projects)
	assert.Equal(t, []string{"AWS Solutions Architect"}, info.Certifications)
	assert.Equal(t, []string{"English", "French"}, info.Languages)
	assert.Equal(t, []string{"Hackathon winner"}, info.Achievements)
	assert.Equal(t, []string{"https://github.com/jane"}, info.Websites)
	assert.Equal(t, []string{
		"Professional Summary", "Work Experience", "Education", "Certifications",
		"Projects", "Skills", "Achievements", "Websites",
	}, info.SectionsFound())
}

func TestHeuristicExtractorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHeuristicExtractor().ExtractInfo(ctx, "Skills\nGo")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHeuristicExtractorLanguageSkillsHeader(t *testing.T) {
	text := "Language Skills\nEnglish, Spanish\nTechnical Expertise\nGo, Kubernetes"

	info, err := NewHeuristicExtractor().ExtractInfo(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, []string{"English", "Spanish"}, info.Languages)
	assert.Equal(t, []string{"Go", "Kubernetes"}, info.Skills)
}
