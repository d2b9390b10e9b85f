package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai"
	"github.com/spigell/ats-scorer/internal/logger"
	"github.com/spigell/ats-scorer/internal/profile"
)

//go:embed prompt.md
var promptTemplate string

const (
	maxResumeRunes      = 1500
	defaultMaxLogLength = 200
)

// ProfileExtractor parses résumé structure with a language model. It implements
// profile.InfoExtractor.
type ProfileExtractor struct {
	generator ai.Generator
	fallback  profile.InfoExtractor
	logger    *zap.Logger
	maxLogLen int
}

// NewProfileExtractor creates a ProfileExtractor. When fallback is not nil it
// answers whenever the model call or its reply fails.
func NewProfileExtractor(generator ai.Generator, fallback profile.InfoExtractor, log *zap.Logger, maxLogLength int) *ProfileExtractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}
	if generator != nil {
		log = logger.WithFields(log, logger.AIFields(Provider, generator.Model())...)
	}

	return &ProfileExtractor{
		generator: generator,
		fallback:  fallback,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// ExtractInfo implements profile.InfoExtractor.
func (p *ProfileExtractor) ExtractInfo(ctx context.Context, text string) (*profile.ResumeInfo, error) {
	info, err := p.extract(ctx, text)
	if err == nil {
		return info, nil
	}
	if p.fallback == nil || ctx.Err() != nil {
		return nil, err
	}

	p.logger.Warn("llm profile extraction failed, using fallback", zap.Error(err))
	return p.fallback.ExtractInfo(ctx, text)
}

func (p *ProfileExtractor) extract(ctx context.Context, text string) (*profile.ResumeInfo, error) {
	if p.generator == nil {
		return nil, errors.New("generator is not configured")
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("resume text is empty")
	}

	prompt := buildPrompt(text)
	p.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, p.maxLogLen)),
	)

	raw, err := p.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, p.maxLogLen)),
	)

	info, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}
	if len(info.Websites) == 0 {
		info.Websites = profile.Websites(text)
	}
	return info, nil
}

func buildPrompt(text string) string {
	if runes := []rune(text); len(runes) > maxResumeRunes {
		text = string(runes[:maxResumeRunes])
	}

	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Return the résumé below as JSON.\n\n{{RESUME}}"
	}
	return strings.ReplaceAll(template, "{{RESUME}}", text)
}

func parseResponse(raw string) (*profile.ResumeInfo, error) {
	cleaned := extractJSON(raw)
	if !gjson.Valid(cleaned) {
		return nil, fmt.Errorf("parse gemini response: invalid json")
	}

	doc := gjson.Parse(cleaned)
	if !doc.IsObject() {
		return nil, fmt.Errorf("parse gemini response: expected object, got %s", doc.Type)
	}

	info := &profile.ResumeInfo{
		Summary:        strings.TrimSpace(doc.Get("summary").String()),
		Skills:         stringList(doc.Get("skills")),
		Certifications: stringList(doc.Get("certifications")),
		Languages:      stringList(doc.Get("languages")),
		Achievements:   stringList(doc.Get("awards")),
		WorkExperience: joinedList(doc.Get("experience"), " at ", "title", "company"),
		Education:      joinedList(doc.Get("education"), ", ", "degree", "institution"),
		Projects:       joinedList(doc.Get("projects"), "", "name"),
		Websites:       []string{},
	}

	seen := make(map[string]bool)
	for _, key := range []string{"personal_info.linkedin", "personal_info.github", "personal_info.website"} {
		url := strings.TrimSpace(doc.Get(key).String())
		if url == "" {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(url), "http://") && !strings.HasPrefix(strings.ToLower(url), "https://") {
			url = "https://" + url
		}
		if seen[strings.ToLower(url)] {
			continue
		}
		seen[strings.ToLower(url)] = true
		info.Websites = append(info.Websites, url)
	}

	return info, nil
}

// extractJSON strips code fences and any prose around the outermost object.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")

	start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		raw = raw[start : end+1]
	}
	return strings.TrimSpace(raw)
}

// stringList reads an array of scalars, or a single comma-separated string.
func stringList(r gjson.Result) []string {
	out := []string{}
	if r.Type == gjson.String {
		for _, part := range strings.Split(r.String(), ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}

	for _, item := range r.Array() {
		if item.IsObject() || item.IsArray() {
			continue
		}
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// joinedList reads an array of objects, joining the named fields of each element.
// Plain string elements are kept as they are.
func joinedList(r gjson.Result, sep string, fields ...string) []string {
	out := []string{}
	for _, item := range r.Array() {
		if !item.IsObject() {
			if s := strings.TrimSpace(item.String()); s != "" {
				out = append(out, s)
			}
			continue
		}

		var parts []string
		for _, f := range fields {
			if s := strings.TrimSpace(item.Get(f).String()); s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			out = append(out, strings.Join(parts, sep))
		}
	}
	return out
}
