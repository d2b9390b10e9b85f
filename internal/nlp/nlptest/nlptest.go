// Package nlptest provides a deterministic nlp.Analyzer for tests.
package nlptest

import (
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/spigell/ats-scorer/internal/nlp"
)

var functionWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "of": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "with": true,
	"by": true, "from": true, "as": true, "is": true, "are": true, "was": true,
	"were": true, "our": true, "we": true, "you": true, "your": true, "i": true,
	"my": true, "it": true, "its": true, "this": true, "that": true,
}

// Analyzer splits on anything that is not a letter, digit or one of "+#@.", tags
// function words as nlp.Other and everything else as a noun unless Tags says
// otherwise. Lemmas default to the lowercase surface form.
type Analyzer struct {
	Tags     map[string]nlp.POS
	Lemmas   map[string]string
	Entities []nlp.Entity
	Err      error

	calls atomic.Int64
}

// Analyze implements nlp.Analyzer.
func (a *Analyzer) Analyze(text string) (*nlp.Document, error) {
	a.calls.Add(1)
	if a.Err != nil {
		return nil, a.Err
	}

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#' && r != '@' && r != '.'
	})

	doc := &nlp.Document{}
	for _, f := range fields {
		f = strings.Trim(f, ".")
		if f == "" {
			continue
		}
		lower := strings.ToLower(f)

		pos := nlp.Noun
		if functionWords[lower] {
			pos = nlp.Other
		}
		if tag, ok := a.Tags[lower]; ok {
			pos = tag
		}

		lemma := lower
		if l, ok := a.Lemmas[lower]; ok {
			lemma = l
		}

		doc.Tokens = append(doc.Tokens, nlp.Token{
			Text:  f,
			Lemma: lemma,
			POS:   pos,
			Alpha: nlp.IsAlpha(f),
		})
	}

	doc.Entities = append(doc.Entities, a.Entities...)
	return doc, nil
}

// Calls returns how many times Analyze was invoked.
func (a *Analyzer) Calls() int64 {
	return a.calls.Load()
}
