package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"
)

type fakeModels struct {
	resp   *genai.GenerateContentResponse
	err    error
	model  string
	config *genai.GenerateContentConfig
	prompt string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	for _, c := range contents {
		for _, p := range c.Parts {
			f.prompt += p.Text
		}
	}
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: genai.RoleModel}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestGeneratorGenerateContent(t *testing.T) {
	models := &fakeModels{resp: textResponse(` {"summary": "x"} `, "", "tail")}
	g := newGenerator(models, "")

	out, err := g.GenerateContent(context.Background(), "  parse this  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out != "{\"summary\": \"x\"}\ntail" {
		t.Fatalf("unexpected output: %q", out)
	}
	if models.model != defaultModel || g.Model() != defaultModel {
		t.Fatalf("expected default model, got %q", models.model)
	}
	if models.prompt != "parse this" {
		t.Fatalf("expected trimmed prompt, got %q", models.prompt)
	}
	if models.config.ResponseMIMEType != "application/json" {
		t.Fatalf("expected json response type, got %q", models.config.ResponseMIMEType)
	}
	if models.config.Temperature == nil || *models.config.Temperature != defaultTemperature {
		t.Fatalf("expected low temperature")
	}
}

func TestGeneratorErrors(t *testing.T) {
	cases := []struct {
		name   string
		models *fakeModels
		prompt string
		want   string
	}{
		{name: "empty prompt", models: &fakeModels{}, prompt: "  ", want: "prompt must not be empty"},
		{name: "api error", models: &fakeModels{err: errors.New("quota")}, prompt: "p", want: "generate content: quota"},
		{name: "nil response", models: &fakeModels{}, prompt: "p", want: "empty response"},
		{name: "blank parts", models: &fakeModels{resp: textResponse(" ", "")}, prompt: "p", want: "empty response"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newGenerator(tc.models, "gemini-pro").GenerateContent(context.Background(), tc.prompt)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}

	var nilGenerator *Generator
	if _, err := nilGenerator.GenerateContent(context.Background(), "p"); err == nil {
		t.Fatalf("expected error from nil generator")
	}
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), "  ", ""); err == nil {
		t.Fatalf("expected error for empty api key")
	}
}
