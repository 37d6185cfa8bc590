package intent

import (
	"context"
	"fmt"

	"atlas/internal/ai"
)

// Extractor sends a query through the extraction prompt and returns the
// model's raw, untrusted text.
type Extractor struct {
	gen ai.TextGenerator
}

func NewExtractor(gen ai.TextGenerator) *Extractor {
	return &Extractor{gen: gen}
}

// Extract does not sanitize or decode; callers own that.
func (e *Extractor) Extract(ctx context.Context, query string) (string, error) {
	raw, err := e.gen.Generate(ctx, BuildExtractionPrompt(query))
	if err != nil {
		return "", fmt.Errorf("intent: extract: %w", err)
	}
	return raw, nil
}
