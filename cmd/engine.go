package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/ai/gemini"
	"github.com/spigell/ats-scorer/internal/ats"
	"github.com/spigell/ats-scorer/internal/config"
	"github.com/spigell/ats-scorer/internal/keywords"
	"github.com/spigell/ats-scorer/internal/nlp"
	"github.com/spigell/ats-scorer/internal/profile"
	"github.com/spigell/ats-scorer/internal/secrets"
	"github.com/spigell/ats-scorer/internal/sections"
)

// engine holds the collaborators shared by the scoring commands.
type engine struct {
	analyzer  nlp.Analyzer
	extractor *keywords.Extractor
	scorer    *ats.Scorer
}

func newEngine(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*engine, error) {
	analyzer, extractor, err := newKeywordExtractor(cfg, logger)
	if err != nil {
		return nil, err
	}

	var similarity *keywords.Extractor
	if cfg.Keywords.UseSimilarity {
		similarity = extractor
	}
	matcher := keywords.NewMatcher(similarity, keywords.NewCategorizer(cfg.Keywords.Categories), cfg.Keywords.SimilarityThreshold)

	info, err := newInfoExtractor(ctx, cfg.AI, logger)
	if err != nil {
		return nil, err
	}

	scorer, err := ats.NewScorer(ats.Deps{
		Matcher:       matcher,
		Sections:      sections.NewExtractor(cfg.Sections),
		InfoExtractor: info,
		Weights:       cfg.Weights,
		Logger:        logger.Named("ats"),
	})
	if err != nil {
		return nil, fmt.Errorf("building scorer: %w", err)
	}

	return &engine{analyzer: analyzer, extractor: extractor, scorer: scorer}, nil
}

// newKeywordExtractor loads the NLP models and builds the keyword extractor.
func newKeywordExtractor(cfg *config.Config, logger *zap.Logger) (*nlp.ProseAnalyzer, *keywords.Extractor, error) {
	var nlpOpts []nlp.ProseOption
	if cfg.NLP != nil && cfg.NLP.ModelDir != "" {
		nlpOpts = append(nlpOpts, nlp.WithModelDir(cfg.NLP.ModelDir))
	}
	analyzer := nlp.NewProseAnalyzer(logger.Named("nlp"), nlpOpts...)
	if err := analyzer.Warm(); err != nil {
		return nil, nil, fmt.Errorf("loading nlp models: %w", err)
	}

	extractor := keywords.NewExtractor(analyzer,
		keywords.WithMinLength(cfg.Keywords.MinLength),
		keywords.WithLogger(logger.Named("keywords")),
	)
	return analyzer, extractor, nil
}

// newInfoExtractor returns the heuristic résumé extractor, wrapped by the Gemini one
// when AI is enabled.
func newInfoExtractor(ctx context.Context, cfg *config.AIConfig, logger *zap.Logger) (profile.InfoExtractor, error) {
	heuristic := profile.NewHeuristicExtractor()
	if cfg == nil || !cfg.Enabled {
		return heuristic, nil
	}

	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(cfg.Gemini.APIKey)
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key.file, ai.gemini.api-key.value or %s)", err, cfg.Gemini.APIKey.Env)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	return gemini.NewProfileExtractor(generator, heuristic, logger.Named("ai"), cfg.Gemini.MaxLogLength), nil
}

// jobKeywords returns the explicit keywords when given, else the keywords extracted
// from the job description.
func (e *engine) jobKeywords(explicit []string, description string) []string {
	if len(explicit) > 0 {
		return explicit
	}
	return e.extractor.Extract(description)
}

// personalInfo decodes the JSON record at path when given, else extracts contact
// details from the résumé text.
func (e *engine) personalInfo(path, resumeText string) (profile.PersonalInfo, error) {
	if path == "" {
		return profile.Extract(e.analyzer, resumeText), nil
	}

	raw, err := readJSONObject(path)
	if err != nil {
		return nil, err
	}
	return profile.Decode(raw)
}

// jobInfo decodes the JSON record at path, or returns an empty JobInfo.
func jobInfo(path string) (ats.JobInfo, error) {
	if path == "" {
		return ats.JobInfo{}, nil
	}

	raw, err := readJSONObject(path)
	if err != nil {
		return ats.JobInfo{}, err
	}
	return ats.DecodeJobInfo(raw)
}

func readJSONObject(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return raw, nil
}
