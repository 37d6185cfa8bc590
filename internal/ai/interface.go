package ai

import (
	"context"
	"errors"
)

var (
	// ErrEmptyResponse is returned when the model answers with no text parts.
	ErrEmptyResponse = errors.New("ai: empty response")
	// ErrNotConfigured is returned by Unconfigured.
	ErrNotConfigured = errors.New("ai: no model configured")
)

// TextGenerator is a black-box text-to-text model call.
// Implementations must be safe for concurrent use.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to TextGenerator.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Unconfigured fails every call with ErrNotConfigured. It stands in for the
// model when no API key is set so the keyword path keeps working.
func Unconfigured() TextGenerator {
	return GeneratorFunc(func(context.Context, string) (string, error) {
		return "", ErrNotConfigured
	})
}
