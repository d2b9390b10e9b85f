// Package nlp defines the tokenizer, lemmatizer and named-entity capability the
// scoring engine depends on.
package nlp

import (
	"strings"
	"unicode"
)

// POS is a coarse, universal part-of-speech tag.
type POS string

const (
	Noun       POS = "NOUN"
	ProperNoun POS = "PROPN"
	Verb       POS = "VERB"
	Other      POS = "X"
)

// Entity labels produced by the recognizer.
const (
	LabelPerson = "PERSON"
	LabelGPE    = "GPE"
	LabelOrg    = "ORG"
)

// Token is a single lexical unit.
type Token struct {
	Text  string
	Lemma string
	POS   POS
	Alpha bool
}

// Entity is a named-entity span.
type Entity struct {
	Text  string
	Label string
}

// Document is the result of analyzing a piece of text.
type Document struct {
	Tokens   []Token
	Entities []Entity
}

// Analyzer turns raw text into tokens and entities. Implementations must be safe for
// concurrent use.
type Analyzer interface {
	Analyze(text string) (*Document, error)
}

// EntitiesByLabel returns entities with the given label in document order.
func (d *Document) EntitiesByLabel(label string) []Entity {
	if d == nil {
		return nil
	}

	var result []Entity
	for _, e := range d.Entities {
		if e.Label == label {
			result = append(result, e)
		}
	}
	return result
}

// IsAlpha reports whether s is non-empty and made of letters only.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// TagToPOS maps a Penn Treebank tag to a universal part of speech.
func TagToPOS(tag string) POS {
	switch {
	case tag == "NNP" || tag == "NNPS":
		return ProperNoun
	case strings.HasPrefix(tag, "NN"):
		return Noun
	case strings.HasPrefix(tag, "VB"):
		return Verb
	default:
		return Other
	}
}

// IsContent reports whether the part of speech carries keyword content.
func (p POS) IsContent() bool {
	return p == Noun || p == ProperNoun || p == Verb
}
