// Package keywords extracts, compares, categorizes and matches lemmatized keywords.
package keywords

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/ats-scorer/internal/nlp"
)

// DefaultMinLength is the shortest surface form kept as a keyword.
const DefaultMinLength = 2

// KeywordSet is a sorted, duplicate-free list of lowercase alphabetic lemmas.
type KeywordSet []string

// Contains reports whether the set holds keyword.
func (s KeywordSet) Contains(keyword string) bool {
	i := sort.SearchStrings(s, keyword)
	return i < len(s) && s[i] == keyword
}

// Join returns the keywords separated by a single space.
func (s KeywordSet) Join() string {
	return strings.Join(s, " ")
}

// Extractor turns text into a KeywordSet.
type Extractor struct {
	analyzer  nlp.Analyzer
	minLength int
	logger    *zap.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMinLength sets the minimum token length. Values below 1 are ignored.
func WithMinLength(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.minLength = n
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExtractor creates an Extractor on top of the shared analyzer.
func NewExtractor(analyzer nlp.Analyzer, opts ...Option) *Extractor {
	e := &Extractor{
		analyzer:  analyzer,
		minLength: DefaultMinLength,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the keyword set of text. Blank text and analyzer failures yield an
// empty set.
func (e *Extractor) Extract(text string) KeywordSet {
	if strings.TrimSpace(text) == "" || e.analyzer == nil {
		return KeywordSet{}
	}

	doc, err := e.analyzer.Analyze(text)
	if err != nil {
		e.logger.Warn("keyword extraction failed", zap.Error(err))
		return KeywordSet{}
	}

	seen := make(map[string]bool)
	for _, tok := range doc.Tokens {
		if !tok.POS.IsContent() || !tok.Alpha {
			continue
		}

		word := strings.ToLower(tok.Text)
		if IsStopword(word) || len([]rune(word)) < e.minLength {
			continue
		}

		lemma := strings.ToLower(strings.TrimSpace(tok.Lemma))
		if lemma == "" {
			lemma = word
		}
		if !nlp.IsAlpha(lemma) || lowInformationLemmas[lemma] {
			continue
		}
		seen[lemma] = true
	}

	result := make(KeywordSet, 0, len(seen))
	for k := range seen {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}
