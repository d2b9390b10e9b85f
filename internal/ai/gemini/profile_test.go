package gemini

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/ats-scorer/internal/profile"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

const reply = "```json\n" + `{
  "personal_info": {"name": "Jane Doe", "linkedin": "linkedin.com/in/jane", "github": "https://github.com/jane", "website": ""},
  "summary": " Backend engineer ",
  "skills": ["Go", "SQL", ""],
  "experience": [{"title": "Engineer", "company": "Acme"}, {"title": "Intern"}],
  "education": [{"degree": "BSc", "institution": "University of Toronto"}],
  "certifications": "CKA, AWS SAA",
  "projects": [{"name": "ats-scorer", "technologies": ["go"]}, "side project"],
  "languages": ["English", "French"],
  "awards": []
}` + "\n```"

func TestProfileExtractorExtractInfo(t *testing.T) {
	stub := &stubGenerator{response: reply}
	extractor := NewProfileExtractor(stub, nil, zap.NewNop(), 0)

	info, err := extractor.ExtractInfo(context.Background(), "Jane Doe\nBackend engineer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &profile.ResumeInfo{
		Summary:        "Backend engineer",
		WorkExperience: []string{"Engineer at Acme", "Intern"},
		Education:      []string{"BSc, University of Toronto"},
		Certifications: []string{"CKA", "AWS SAA"},
		Projects:       []string{"ats-scorer", "side project"},
		Skills:         []string{"Go", "SQL"},
		Languages:      []string{"English", "French"},
		Achievements:   []string{},
		Websites:       []string{"https://linkedin.com/in/jane", "https://github.com/jane"},
	}
	if !reflect.DeepEqual(want, info) {
		t.Fatalf("unexpected info:\nwant %+v\ngot  %+v", want, info)
	}

	if !strings.Contains(stub.lastPrompt, "Jane Doe\nBackend engineer") {
		t.Fatalf("expected resume in prompt")
	}
	if strings.Contains(stub.lastPrompt, "{{RESUME}}") {
		t.Fatalf("expected placeholder to be replaced")
	}
}

func TestProfileExtractorWebsitesFromText(t *testing.T) {
	stub := &stubGenerator{response: `{"summary": ""}`}
	extractor := NewProfileExtractor(stub, nil, nil, 0)

	info, err := extractor.ExtractInfo(context.Background(), "Portfolio www.jane.dev")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual([]string{"https://www.jane.dev"}, info.Websites) {
		t.Fatalf("unexpected websites: %v", info.Websites)
	}
}

func TestProfileExtractorFallback(t *testing.T) {
	cases := []struct {
		name string
		stub *stubGenerator
	}{
		{name: "generator error", stub: &stubGenerator{err: errors.New("quota exceeded")}},
		{name: "invalid json", stub: &stubGenerator{response: "I cannot help with that"}},
		{name: "not an object", stub: &stubGenerator{response: `["a"]`}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			core, observed := observer.New(zapcore.WarnLevel)
			extractor := NewProfileExtractor(tc.stub, profile.NewHeuristicExtractor(), zap.New(core), 0)

			info, err := extractor.ExtractInfo(context.Background(), "Skills\nGo, SQL")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual([]string{"Go", "SQL"}, info.Skills) {
				t.Fatalf("expected fallback skills, got %v", info.Skills)
			}

			entries := observed.FilterMessage("llm profile extraction failed, using fallback").All()
			if len(entries) != 1 {
				t.Fatalf("expected 1 warning, got %d", len(entries))
			}
			if entries[0].ContextMap()["ai_model"] != "stub-model" {
				t.Fatalf("expected model field, got %v", entries[0].ContextMap())
			}
		})
	}
}

func TestProfileExtractorWithoutFallback(t *testing.T) {
	extractor := NewProfileExtractor(&stubGenerator{err: errors.New("quota exceeded")}, nil, nil, 0)

	if _, err := extractor.ExtractInfo(context.Background(), "Skills\nGo"); err == nil {
		t.Fatalf("expected error without fallback")
	}
}

func TestBuildPromptTruncatesResume(t *testing.T) {
	long := strings.Repeat("é", maxResumeRunes+100)

	prompt := buildPrompt(long)
	if strings.Contains(prompt, strings.Repeat("é", maxResumeRunes+1)) {
		t.Fatalf("expected resume to be truncated to %d runes", maxResumeRunes)
	}
	if !strings.Contains(prompt, strings.Repeat("é", maxResumeRunes)) {
		t.Fatalf("expected truncated resume in prompt")
	}
}

func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```":     `{"a":1}`,
		"Here you go: {\"a\":1} done": `{"a":1}`,
		`{"a":{"b":2}}`:               `{"a":{"b":2}}`,
		"no json":                     "no json",
	}
	for in, want := range cases {
		if got := extractJSON(in); got != want {
			t.Fatalf("extractJSON(%q) = %q, want %q", in, got, want)
		}
	}
}
