package nlp

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"
)

// ProseAnalyzer is the production Analyzer backed by prose (tokenizer, tagger, NER)
// and golem (lemmatizer). Models are loaded once on first use or on Warm; prose
// documents are built under a mutex.
type ProseAnalyzer struct {
	modelDir string
	logger   *zap.Logger

	once       sync.Once
	initErr    error
	lemmatizer *golem.Lemmatizer
	model      *prose.Model

	mu sync.Mutex
}

// ProseOption configures a ProseAnalyzer.
type ProseOption func(*ProseAnalyzer)

// WithModelDir makes the analyzer load a custom prose model from disk instead of the
// embedded default one.
func WithModelDir(dir string) ProseOption {
	return func(a *ProseAnalyzer) {
		a.modelDir = strings.TrimSpace(dir)
	}
}

// NewProseAnalyzer creates an analyzer. Models are not loaded until Warm or the first
// Analyze call.
func NewProseAnalyzer(logger *zap.Logger, opts ...ProseOption) *ProseAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &ProseAnalyzer{logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Warm loads the lemmatizer and tagging models.
func (a *ProseAnalyzer) Warm() error {
	a.once.Do(func() {
		lemmatizer, err := golem.New(en.New())
		if err != nil {
			a.initErr = fmt.Errorf("load english lemmatizer: %w", err)
			return
		}
		a.lemmatizer = lemmatizer

		if a.modelDir != "" {
			a.model = prose.ModelFromDisk(a.modelDir)
			a.logger.Debug("loaded prose model from disk", zap.String("model_dir", a.modelDir))
			return
		}

		// prose builds its embedded tagger and entity model per document unless one
		// is passed in, so build it once here and reuse it.
		doc, err := prose.NewDocument("", prose.WithSegmentation(false))
		if err != nil {
			a.initErr = fmt.Errorf("load prose model: %w", err)
			return
		}
		a.model = doc.Model
		a.logger.Debug("loaded embedded prose model")
	})
	return a.initErr
}

// Analyze implements Analyzer.
func (a *ProseAnalyzer) Analyze(text string) (*Document, error) {
	if err := a.Warm(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return &Document{}, nil
	}

	a.mu.Lock()
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false), prose.UsingModel(a.model))
	a.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("analyze text: %w", err)
	}

	result := &Document{}
	for _, tok := range doc.Tokens() {
		lower := strings.ToLower(tok.Text)
		alpha := IsAlpha(tok.Text)
		lemma := lower
		if alpha {
			lemma = strings.ToLower(a.lemmatizer.Lemma(lower))
		}
		result.Tokens = append(result.Tokens, Token{
			Text:  tok.Text,
			Lemma: lemma,
			POS:   TagToPOS(tok.Tag),
			Alpha: alpha,
		})
	}

	for _, ent := range doc.Entities() {
		result.Entities = append(result.Entities, Entity{Text: ent.Text, Label: ent.Label})
	}

	return result, nil
}
