// Package ai defines the language-model collaborator used for structured résumé parsing.
package ai

import "context"

// Generator turns a prompt into model text.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}
